// Package catalog holds the browsing data model and the pure transformations
// over it: projections from API records, activity classification, series tags,
// facet ranking, gallery filtering, list comparators and neighbor lists.
//
// Nothing in this package performs I/O or keeps state between calls, so every
// function can be tested without a client or a terminal.
package catalog
