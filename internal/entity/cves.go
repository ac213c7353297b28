package entity

import (
	"context"
)

// CVEs is the entity service for CVE tracking.
type CVEs struct {
	d Deps
}

// NewCVEs creates the CVEs service.
func NewCVEs(d Deps) *CVEs {
	return &CVEs{d: d}
}

func (s *CVEs) List(ctx context.Context, filters CVEFilters) (ListResult[CVE], error) {
	return fetchList[CVE](ctx, s.d, ResourceCVEs, filters)
}

func (s *CVEs) Get(ctx context.Context, id string) (*CVE, error) {
	return fetchDetail[CVE](ctx, s.d, ResourceCVEs, id)
}

// Track subscribes the organization to updates for a CVE.
func (s *CVEs) Track(ctx context.Context, id string) (*CVE, error) {
	return actionOne[CVE](ctx, s.d, ResourceCVEs, id, "track")
}

// Untrack removes the CVE from the tracked set.
func (s *CVEs) Untrack(ctx context.Context, id string) (*CVE, error) {
	return actionOne[CVE](ctx, s.d, ResourceCVEs, id, "untrack")
}
