package querycache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type webhookFilters struct {
	IsActive *bool  `json:"is_active,omitempty"`
	Event    string `json:"event,omitempty"`
}

func boolPtr(b bool) *bool { return &b }

func TestKeyFactory_Shapes(t *testing.T) {
	assert.Equal(t, Key{"webhooks"}, All("webhooks"))
	assert.Equal(t, Key{"webhooks", "list"}, Lists("webhooks"))
	assert.Equal(t, Key{"webhooks", "detail"}, Details("webhooks"))
	assert.Equal(t, Key{"webhooks", "detail", "wh_42"}, Detail("webhooks", "wh_42"))

	list := List("webhooks", webhookFilters{Event: "finding.created"})
	require.Len(t, list, 3)
	assert.Equal(t, "webhooks", list[0])
	assert.Equal(t, "list", list[1])
}

func TestKey_PrefixCompatibility(t *testing.T) {
	detail := Detail("webhooks", "wh_42")
	list := List("webhooks", nil)

	assert.True(t, detail.HasPrefix(All("webhooks")))
	assert.True(t, detail.HasPrefix(Details("webhooks")))
	assert.True(t, detail.HasPrefix(detail))
	assert.False(t, detail.HasPrefix(Lists("webhooks")))

	assert.True(t, list.HasPrefix(All("webhooks")))
	assert.True(t, list.HasPrefix(Lists("webhooks")))
	assert.False(t, list.HasPrefix(All("projects")))

	assert.True(t, detail.HasPrefix(Key{}), "empty key is a prefix of all")
	assert.False(t, Lists("webhooks").HasPrefix(detail), "longer prefix never matches")
}

func TestFingerprint_EqualFiltersEqualKeys(t *testing.T) {
	a := List("webhooks", webhookFilters{IsActive: boolPtr(true), Event: "scan.done"})
	b := List("webhooks", webhookFilters{IsActive: boolPtr(true), Event: "scan.done"})

	assert.Equal(t, a, b)
}

func TestFingerprint_DistinctFiltersDistinctKeys(t *testing.T) {
	base := webhookFilters{IsActive: boolPtr(true), Event: "scan.done"}

	variants := []webhookFilters{
		{IsActive: boolPtr(false), Event: "scan.done"},
		{IsActive: boolPtr(true), Event: "finding.created"},
		{IsActive: nil, Event: "scan.done"},
		{},
	}

	baseKey := List("webhooks", base)
	for _, v := range variants {
		assert.NotEqual(t, baseKey, List("webhooks", v), "filters %+v", v)
	}
}

func TestFingerprint_NilFilter(t *testing.T) {
	assert.Equal(t, "unfiltered", Fingerprint(nil))
	assert.Equal(t, List("webhooks", nil), List("webhooks", nil))
	assert.NotEqual(t, List("webhooks", nil), List("webhooks", webhookFilters{}))
}

func TestDetailKeys_Stable(t *testing.T) {
	for i := 0; i < 3; i++ {
		assert.Equal(t, Detail("cves", "CVE-2024-3094"), Detail("cves", "CVE-2024-3094"))
	}
	assert.NotEqual(t, Detail("cves", "CVE-2024-3094"), Detail("cves", "CVE-2021-44228"))
}

func TestKey_String(t *testing.T) {
	assert.Equal(t, "webhooks/detail/wh_42", Detail("webhooks", "wh_42").String())
}
