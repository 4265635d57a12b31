// Package driven defines interfaces the core consumes.
// Adapters implement these to plug in OCR, PDF tooling, rule tables,
// and report persistence. The core never imports adapter packages.
package driven
