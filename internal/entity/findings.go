package entity

import (
	"context"
)

// Findings is the entity service for findings.
type Findings struct {
	d Deps
}

// NewFindings creates the findings service.
func NewFindings(d Deps) *Findings {
	return &Findings{d: d}
}

// List returns a page of findings matching the filters.
func (s *Findings) List(ctx context.Context, filters FindingFilters) (ListResult[Finding], error) {
	return fetchList[Finding](ctx, s.d, ResourceFindings, filters)
}

// Get returns a single finding by id.
func (s *Findings) Get(ctx context.Context, id string) (*Finding, error) {
	return fetchDetail[Finding](ctx, s.d, ResourceFindings, id)
}

// Create adds a finding.
func (s *Findings) Create(ctx context.Context, input FindingInput) (*Finding, error) {
	return createOne(ctx, s.d, ResourceFindings, input, func(f *Finding) string { return f.ID })
}

// Update modifies a finding.
func (s *Findings) Update(ctx context.Context, id string, input FindingInput) (*Finding, error) {
	return updateOne[Finding](ctx, s.d, ResourceFindings, id, input)
}

// Delete removes a finding.
func (s *Findings) Delete(ctx context.Context, id string) error {
	return deleteOne(ctx, s.d, ResourceFindings, id)
}

// UpdateStatus moves a finding through its workflow (open, triaged,
// resolved, closed, false_positive).
func (s *Findings) UpdateStatus(ctx context.Context, id, status string) (*Finding, error) {
	return updateOne[Finding](ctx, s.d, ResourceFindings, id, map[string]string{"status": status})
}
