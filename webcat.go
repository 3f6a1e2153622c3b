// Package webcat fetches web pages and merges them into a single ordered
// markdown document. It can discover the pages of a site section from one
// seed URL, fetches them concurrently, converts each page to markdown and
// writes the results in the order the caller asked for.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, htmltomarkdown/, rod/).
package webcat

// Version is reported in the HTTP User-Agent.
const Version = "0.3.0"
