// Package pagination provides page-based pagination primitives shared by
// list commands and the interactive browser: CLI flag parsing and
// validation, an in-memory paginator for client-side slicing, page
// metadata mirroring the backend's list envelope, and the windowed
// page-number generator used by the pagination control.
package pagination
