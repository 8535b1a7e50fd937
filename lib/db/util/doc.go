// Package util provides supporting data structures for the database layer.
//
// The package contains:
//   - keyheap: a string-keyed min-heap with O(1) key lookup, used by the
//     expiry janitor (deadlines) and the group recency index (LRU ranking)
//   - statistics: a size histogram and distribution statistics used for
//     Info() reporting without full keyspace scans
package util
