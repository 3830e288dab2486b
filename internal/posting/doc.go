// Package posting maintains the reverse index: one Roaring bitmap of rows
// per tag. Buckets are created on first use and deleted the moment they
// become empty, so the set of keys is always exactly the set of tags carried
// by at least one resident row.
package posting
