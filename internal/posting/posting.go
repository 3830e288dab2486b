package posting

import (
	"sort"

	"github.com/RoaringBitmap/roaring/v2"
)

// Index is a tag -> row-set reverse index backed by Roaring bitmaps.
// It is not safe for concurrent use; the owning structure serializes access.
type Index struct {
	buckets map[string]*roaring.Bitmap
}

// New creates an empty index.
func New() *Index {
	return &Index{buckets: make(map[string]*roaring.Bitmap)}
}

// Add inserts row into the bucket for tag, creating the bucket if needed.
func (ix *Index) Add(row uint32, tag string) {
	b, ok := ix.buckets[tag]
	if !ok {
		b = roaring.New()
		ix.buckets[tag] = b
	}
	b.Add(row)
}

// Remove deletes row from the bucket for tag and prunes the bucket if it
// becomes empty. It reports whether the row was present.
func (ix *Index) Remove(row uint32, tag string) bool {
	b, ok := ix.buckets[tag]
	if !ok {
		return false
	}
	if !b.CheckedRemove(row) {
		return false
	}
	if b.IsEmpty() {
		delete(ix.buckets, tag)
	}
	return true
}

// Contains reports whether row is in the bucket for tag.
func (ix *Index) Contains(row uint32, tag string) bool {
	b, ok := ix.buckets[tag]
	return ok && b.Contains(row)
}

// Intersect returns a new bitmap holding the rows present in every requested
// bucket. A tag with no bucket contributes an empty set, so any unknown tag
// yields an empty result. The returned bitmap is owned by the caller.
func (ix *Index) Intersect(tags []string) *roaring.Bitmap {
	if len(tags) == 0 {
		return roaring.New()
	}

	// Start from the smallest bucket to reduce work.
	base := -1
	var baseCard uint64
	for i, tag := range tags {
		b, ok := ix.buckets[tag]
		if !ok {
			return roaring.New()
		}
		if card := b.GetCardinality(); base < 0 || card < baseCard {
			base = i
			baseCard = card
		}
	}

	out := ix.buckets[tags[base]].Clone()
	for i, tag := range tags {
		if i == base {
			continue
		}
		out.And(ix.buckets[tag])
		if out.IsEmpty() {
			return out
		}
	}
	return out
}

// Rows returns the rows carrying tag as a sorted slice, nil if the tag is
// unknown.
func (ix *Index) Rows(tag string) []uint32 {
	b, ok := ix.buckets[tag]
	if !ok {
		return nil
	}
	return b.ToArray()
}

// Count returns the number of rows carrying tag, zero if unknown.
func (ix *Index) Count(tag string) int {
	b, ok := ix.buckets[tag]
	if !ok {
		return 0
	}
	return int(b.GetCardinality())
}

// Tags returns every in-use tag, sorted.
func (ix *Index) Tags() []string {
	tags := make([]string, 0, len(ix.buckets))
	for tag := range ix.buckets {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Len returns the number of in-use tags.
func (ix *Index) Len() int {
	return len(ix.buckets)
}

// SizeInBytes returns the serialized size of all buckets, for diagnostics.
func (ix *Index) SizeInBytes() uint64 {
	var n uint64
	for _, b := range ix.buckets {
		n += b.GetSizeInBytes()
	}
	return n
}
