package entity

import (
	"net/url"
	"strconv"
)

// Filter builds the query string for a list request. Filter types are
// flat tagged structs so they double as cache-key qualifiers: two
// structurally equal filters always address the same cache entry.
type Filter interface {
	Values() url.Values
}

// pageValues appends pagination params when set.
func pageValues(v url.Values, page, perPage int) {
	if page > 0 {
		v.Set("page", strconv.Itoa(page))
	}
	if perPage > 0 {
		v.Set("per_page", strconv.Itoa(perPage))
	}
}

// ProjectFilters narrows project lists.
type ProjectFilters struct {
	Status  string `json:"status,omitempty"`
	Search  string `json:"search,omitempty"`
	Page    int    `json:"page,omitempty"`
	PerPage int    `json:"per_page,omitempty"`
}

func (f ProjectFilters) Values() url.Values {
	v := url.Values{}
	if f.Status != "" {
		v.Set("status", f.Status)
	}
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	pageValues(v, f.Page, f.PerPage)
	return v
}

// ScopeFilters narrows scope lists.
type ScopeFilters struct {
	ProjectID string `json:"project_id,omitempty"`
	Type      string `json:"type,omitempty"`
	InScope   *bool  `json:"in_scope,omitempty"`
	Page      int    `json:"page,omitempty"`
	PerPage   int    `json:"per_page,omitempty"`
}

func (f ScopeFilters) Values() url.Values {
	v := url.Values{}
	if f.ProjectID != "" {
		v.Set("project_id", f.ProjectID)
	}
	if f.Type != "" {
		v.Set("type", f.Type)
	}
	if f.InScope != nil {
		v.Set("in_scope", strconv.FormatBool(*f.InScope))
	}
	pageValues(v, f.Page, f.PerPage)
	return v
}

// FindingFilters narrows finding lists.
type FindingFilters struct {
	ProjectID string `json:"project_id,omitempty"`
	Severity  string `json:"severity,omitempty"`
	Status    string `json:"status,omitempty"`
	Search    string `json:"search,omitempty"`
	Page      int    `json:"page,omitempty"`
	PerPage   int    `json:"per_page,omitempty"`
}

func (f FindingFilters) Values() url.Values {
	v := url.Values{}
	if f.ProjectID != "" {
		v.Set("project_id", f.ProjectID)
	}
	if f.Severity != "" {
		v.Set("severity", f.Severity)
	}
	if f.Status != "" {
		v.Set("status", f.Status)
	}
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	pageValues(v, f.Page, f.PerPage)
	return v
}

// CVEFilters narrows CVE lists.
type CVEFilters struct {
	Severity string  `json:"severity,omitempty"`
	MinScore float64 `json:"min_score,omitempty"`
	Tracked  *bool   `json:"tracked,omitempty"`
	Search   string  `json:"search,omitempty"`
	Page     int     `json:"page,omitempty"`
	PerPage  int     `json:"per_page,omitempty"`
}

func (f CVEFilters) Values() url.Values {
	v := url.Values{}
	if f.Severity != "" {
		v.Set("severity", f.Severity)
	}
	if f.MinScore > 0 {
		v.Set("min_score", strconv.FormatFloat(f.MinScore, 'f', -1, 64))
	}
	if f.Tracked != nil {
		v.Set("tracked", strconv.FormatBool(*f.Tracked))
	}
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	pageValues(v, f.Page, f.PerPage)
	return v
}

// WebhookFilters narrows webhook lists.
type WebhookFilters struct {
	IsActive *bool  `json:"is_active,omitempty"`
	Event    string `json:"event,omitempty"`
	Page     int    `json:"page,omitempty"`
	PerPage  int    `json:"per_page,omitempty"`
}

func (f WebhookFilters) Values() url.Values {
	v := url.Values{}
	if f.IsActive != nil {
		v.Set("is_active", strconv.FormatBool(*f.IsActive))
	}
	if f.Event != "" {
		v.Set("event", f.Event)
	}
	pageValues(v, f.Page, f.PerPage)
	return v
}

// NotificationFilters narrows notification lists.
type NotificationFilters struct {
	Unread  *bool  `json:"unread,omitempty"`
	Type    string `json:"type,omitempty"`
	Page    int    `json:"page,omitempty"`
	PerPage int    `json:"per_page,omitempty"`
}

func (f NotificationFilters) Values() url.Values {
	v := url.Values{}
	if f.Unread != nil {
		v.Set("unread", strconv.FormatBool(*f.Unread))
	}
	if f.Type != "" {
		v.Set("type", f.Type)
	}
	pageValues(v, f.Page, f.PerPage)
	return v
}

// ReportFilters narrows report lists.
type ReportFilters struct {
	ProjectID string `json:"project_id,omitempty"`
	Status    string `json:"status,omitempty"`
	Page      int    `json:"page,omitempty"`
	PerPage   int    `json:"per_page,omitempty"`
}

func (f ReportFilters) Values() url.Values {
	v := url.Values{}
	if f.ProjectID != "" {
		v.Set("project_id", f.ProjectID)
	}
	if f.Status != "" {
		v.Set("status", f.Status)
	}
	pageValues(v, f.Page, f.PerPage)
	return v
}

// UserFilters narrows user lists.
type UserFilters struct {
	Role    string `json:"role,omitempty"`
	Active  *bool  `json:"active,omitempty"`
	Page    int    `json:"page,omitempty"`
	PerPage int    `json:"per_page,omitempty"`
}

func (f UserFilters) Values() url.Values {
	v := url.Values{}
	if f.Role != "" {
		v.Set("role", f.Role)
	}
	if f.Active != nil {
		v.Set("active", strconv.FormatBool(*f.Active))
	}
	pageValues(v, f.Page, f.PerPage)
	return v
}
