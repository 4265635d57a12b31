// Package driving defines interfaces adapters use to call into the core.
// The CLI and HTTP adapters depend only on these.
package driving
