// Package overviewer extracts the main descriptive text of a website.
// It tries a fixed ladder of fetch strategies (plain HTTP, then a headless
// browser), follows at most one hop of "about"-style links, and returns the
// first result whose cleaned text is long enough to be useful.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, http/).
package overviewer
