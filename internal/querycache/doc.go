// Package querycache provides the process-wide cache for REST query
// results, addressed by hierarchical query keys.
//
// Keys are ordered tuples of the form [entity, scope, qualifiers...],
// e.g. ["webhooks", "list", <filter fingerprint>] or
// ["webhooks", "detail", <id>]. Keys for the same logical resource are
// prefix-compatible: invalidating a coarse key such as ["webhooks"]
// marks every finer key sharing that prefix stale, forcing a refetch on
// next access. Entries expire after a configurable TTL and are garbage
// collected after inactivity.
package querycache
