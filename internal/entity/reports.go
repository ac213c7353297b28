package entity

import (
	"context"
)

// Reports is the entity service for generated reports.
type Reports struct {
	d Deps
}

// NewReports creates the reports service.
func NewReports(d Deps) *Reports {
	return &Reports{d: d}
}

func (s *Reports) List(ctx context.Context, filters ReportFilters) (ListResult[Report], error) {
	return fetchList[Report](ctx, s.d, ResourceReports, filters)
}

func (s *Reports) Get(ctx context.Context, id string) (*Report, error) {
	return fetchDetail[Report](ctx, s.d, ResourceReports, id)
}

// Generate queues report generation for a project. The report comes
// back in status "pending"; poll Get until it reads "ready".
func (s *Reports) Generate(ctx context.Context, projectID, format string) (*Report, error) {
	input := map[string]string{"project_id": projectID, "format": format}
	return createOne(ctx, s.d, ResourceReports, input, func(r *Report) string { return r.ID })
}

// Delete removes a report.
func (s *Reports) Delete(ctx context.Context, id string) error {
	return deleteOne(ctx, s.d, ResourceReports, id)
}
