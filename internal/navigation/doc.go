// Package navigation holds the detail view's record and the ordered neighbor
// list used for previous/next stepping, rebuilding the list when the record
// was reached without one.
package navigation
