// Package store persists board records as a single JSON document.
//
// The document is the published artifact: the hand viewer reads it
// directly, so the store never writes a partially merged state. Records
// are keyed by event id and board number; upserts merge field by field,
// with parsed hands immutable once stored and solver results free to
// improve. A small negative cache remembers boards the site reported as
// nonexistent so later passes skip them.
package store
