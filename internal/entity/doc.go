// Package entity provides the typed services the CLI and TUI use to
// read and mutate backend resources: projects, scopes, findings, CVEs,
// webhooks, notifications, reports, and users.
//
// Each service wraps the api client and the shared query cache. Lists
// and details are cached under hierarchical query keys; every mutation
// invalidates the entity's list subtree on success and writes or
// removes the affected detail entry directly, so a follow-up detail
// read needs no extra round trip. Failed mutations never touch the
// cache. Mutations that affect other entities cross-invalidate those
// subtrees explicitly (deleting a project stales its scopes, findings,
// and reports).
package entity
