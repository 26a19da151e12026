// Package citegrab collects the sources cited in a rendered chat answer.
// It discovers the outbound links in the answer region, fetches each one,
// extracts the readable text, and assembles a single source-ordered
// document that is delivered to a file or the clipboard.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, readability/).
package citegrab
