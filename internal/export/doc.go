// Package export renders stored boards as PBN or LIN text and reads the
// same LIN dialect back for file imports.
package export
