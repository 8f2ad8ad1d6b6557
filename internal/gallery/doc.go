// Package gallery drives the browse view: one bulk page of recently modified
// characters, a facet list of common series computed once per load, and
// activity/series filters applied in memory.
package gallery
