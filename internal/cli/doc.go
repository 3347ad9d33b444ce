// Package cli implements the command-line interface for vugraph-archive.
//
// The cli package provides the Cobra-based CLI with subcommands to fetch
// tournament boards from Vugraph, run double-dummy analysis, export the
// store as PBN or LIN, import LIN files, and verify the store invariants.
// Errors map onto distinct exit codes so cron wrappers can tell network
// trouble from data corruption.
package cli
