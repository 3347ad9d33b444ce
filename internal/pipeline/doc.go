// Package pipeline drives the ingestion passes: refreshing hands from
// the Vugraph site into the store, running double-dummy analysis over
// records that lack it, and verifying the store invariants.
//
// Every pass is resumable. Work already in the store is skipped, the
// store is saved after each event, and item-level failures are counted
// and logged rather than aborting the pass.
package pipeline
