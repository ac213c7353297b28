package entity

import (
	"context"

	"github.com/nebstarmalala/securion-console/internal/querycache"
)

// Projects is the entity service for projects.
type Projects struct {
	d Deps
}

// NewProjects creates the projects service.
func NewProjects(d Deps) *Projects {
	return &Projects{d: d}
}

// List returns a page of projects matching the filters.
func (s *Projects) List(ctx context.Context, filters ProjectFilters) (ListResult[Project], error) {
	return fetchList[Project](ctx, s.d, ResourceProjects, filters)
}

// Get returns a single project by id.
func (s *Projects) Get(ctx context.Context, id string) (*Project, error) {
	return fetchDetail[Project](ctx, s.d, ResourceProjects, id)
}

// Create adds a project.
func (s *Projects) Create(ctx context.Context, input ProjectInput) (*Project, error) {
	return createOne(ctx, s.d, ResourceProjects, input, func(p *Project) string { return p.ID })
}

// Update modifies a project.
func (s *Projects) Update(ctx context.Context, id string, input ProjectInput) (*Project, error) {
	return updateOne[Project](ctx, s.d, ResourceProjects, id, input)
}

// Delete removes a project. Scopes, findings, and reports hang off the
// project, so their subtrees are cross-invalidated.
func (s *Projects) Delete(ctx context.Context, id string) error {
	return deleteOne(ctx, s.d, ResourceProjects, id,
		querycache.All(ResourceScopes),
		querycache.All(ResourceFindings),
		querycache.All(ResourceReports),
	)
}

// Archive marks a project archived without deleting its data.
func (s *Projects) Archive(ctx context.Context, id string) (*Project, error) {
	return actionOne[Project](ctx, s.d, ResourceProjects, id, "archive")
}
