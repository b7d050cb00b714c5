// Package diag holds the diagnostics produced while checking a crate: lint
// emissions from passes and the orchestrator's own findings.
//
// Producers talk to a Reporter; Bag collects diagnostics for sorting and
// de-duplication, and the renderers in this package turn them into text
// against a source.FileSet. A Diagnostic is plain data, so it can cross the
// driver/orchestrator boundary unchanged.
package diag
