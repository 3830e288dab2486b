package tagdict

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/kitchoi/tagdict/internal/ident"
	"github.com/kitchoi/tagdict/internal/posting"
)

// Wildcard is the tag that selects every resident item in Get.
const Wildcard = "*"

// Ref is a stable, opaque handle to a stored item. It is issued by Add,
// unique across every TagDict in the process, and identifies the item for
// its whole lifetime regardless of the payload's value. The zero Ref is
// never issued.
type Ref uint64

// Entry is one resident item together with its current tag set.
// Tags is a sorted copy; mutating it does not affect the dict.
type Entry[T any] struct {
	Ref  Ref
	Item T
	Tags []string
}

// slot holds the forward-index state for one row.
type slot[T any] struct {
	item T
	tags map[string]struct{}
}

// TagDict is an in-memory multi-index: each item carries a set of string
// tags, and items are retrieved by exact tag intersection. A forward index
// (ref -> payload + tag set) and a reverse index (tag -> row bitmap) are kept
// in lockstep; after every operation a row is in a tag's bucket exactly when
// its tag set contains that tag, and no empty bucket survives.
//
// TagDict is not safe for concurrent use. Mutations briefly pass through
// states where the two indexes disagree, so callers must serialize all
// mutating calls against each other and against readers, e.g. with one
// exclusive lock around the whole structure.
type TagDict[T any] struct {
	ids     *ident.Arena
	posting *posting.Index
	slots   []slot[T]

	metrics MetricsCollector
	logger  *Logger
}

// New creates an empty TagDict.
func New[T any](optFns ...Option) *TagDict[T] {
	opts := applyOptions(optFns)
	return &TagDict[T]{
		ids:     ident.New(),
		posting: posting.New(),
		metrics: opts.metricsCollector,
		logger:  opts.logger,
	}
}

// normalizeTags collapses tags to a set, dropping duplicates and empty
// strings.
func normalizeTags(tags []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		set[tag] = struct{}{}
	}
	return set
}

// Add registers item under a fresh Ref carrying the given tags. Duplicate
// and empty tags are dropped; if no tags remain the item is not registered
// and the zero Ref is returned. Add always mints a new identity, so it
// cannot collide with a resident one; see Insert for registering under an
// existing handle.
func (td *TagDict[T]) Add(item T, tags ...string) Ref {
	start := time.Now()
	set := normalizeTags(tags)
	if len(set) == 0 {
		return 0
	}

	ref, row := td.ids.Allocate()
	td.register(row, item, set)

	td.metrics.RecordAdd(time.Since(start), nil)
	td.logger.LogAdd(Ref(ref), len(set), nil)
	return Ref(ref)
}

// Insert registers item under an existing handle, preserving its identity.
// Merge uses this to carry identities across dicts; it also lets callers
// rebuild a dict from a dump. It fails with ErrDuplicateItem if ref is
// already resident and ErrZeroRef for the zero handle. As with Add, an
// empty normalized tag set means the item is not registered (and no error).
func (td *TagDict[T]) Insert(ref Ref, item T, tags ...string) error {
	start := time.Now()
	err := td.insert(ref, item, normalizeTags(tags))
	td.metrics.RecordAdd(time.Since(start), err)
	td.logger.LogAdd(ref, len(tags), err)
	return err
}

func (td *TagDict[T]) insert(ref Ref, item T, set map[string]struct{}) error {
	if ref == 0 {
		return ErrZeroRef
	}
	if len(set) == 0 {
		return nil
	}
	if _, resident := td.ids.Row(uint64(ref)); resident {
		return &ErrDuplicateItem{Ref: ref}
	}
	row, _ := td.ids.Bind(uint64(ref))
	td.register(row, item, set)
	return nil
}

func (td *TagDict[T]) register(row uint32, item T, set map[string]struct{}) {
	for int(row) >= len(td.slots) {
		td.slots = append(td.slots, slot[T]{})
	}
	td.slots[row] = slot[T]{item: item, tags: set}
	for tag := range set {
		td.posting.Add(row, tag)
	}
}

// Get returns the items carrying all of the given tags. Passing Wildcard as
// the first tag selects every resident item. Unknown tags contribute no
// matches and never error; with no arguments the selection is empty.
//
// The result collapses per convention: Selection.Item or Selection.One for
// an unambiguous single match, Selection.Items or Selection.Entries for the
// multi-item view.
func (td *TagDict[T]) Get(tags ...string) Selection[T] {
	start := time.Now()

	var refs []Ref
	switch {
	case len(tags) == 0:
	case tags[0] == Wildcard:
		refs = make([]Ref, 0, td.ids.Len())
		for ref := range td.ids.All() {
			refs = append(refs, Ref(ref))
		}
	default:
		rows := td.posting.Intersect(tags)
		refs = make([]Ref, 0, rows.GetCardinality())
		it := rows.Iterator()
		for it.HasNext() {
			if ref, ok := td.ids.Ref(it.Next()); ok {
				refs = append(refs, Ref(ref))
			}
		}
	}

	td.metrics.RecordQuery(len(tags), len(refs), time.Since(start))
	td.logger.LogQuery(tags, len(refs))
	return Selection[T]{dict: td, refs: refs}
}

// AddTag adds tag to the item's tag set, idempotently. It fails with
// ErrNotFound if ref is not resident. An empty tag is ignored.
func (td *TagDict[T]) AddTag(ref Ref, tag string) error {
	start := time.Now()
	err := td.addTag(ref, tag)
	td.metrics.RecordMutation(time.Since(start), err)
	td.logger.LogMutate("add_tag", ref, err)
	return err
}

func (td *TagDict[T]) addTag(ref Ref, tag string) error {
	row, ok := td.ids.Row(uint64(ref))
	if !ok {
		return notFound(ref)
	}
	if tag == "" {
		return nil
	}
	if _, present := td.slots[row].tags[tag]; present {
		return nil
	}
	td.slots[row].tags[tag] = struct{}{}
	td.posting.Add(row, tag)
	return nil
}

// RemoveTag removes tag from the item's tag set. It fails with ErrNotFound
// if ref is not resident or the item does not carry tag (one error kind for
// both). A bucket left empty is pruned, and an item whose last tag is
// removed is deregistered.
func (td *TagDict[T]) RemoveTag(ref Ref, tag string) error {
	start := time.Now()
	err := td.removeTag(ref, tag)
	td.metrics.RecordMutation(time.Since(start), err)
	td.logger.LogMutate("remove_tag", ref, err)
	return err
}

func (td *TagDict[T]) removeTag(ref Ref, tag string) error {
	row, ok := td.ids.Row(uint64(ref))
	if !ok {
		return notFound(ref)
	}
	if _, present := td.slots[row].tags[tag]; !present {
		return notFound(ref)
	}
	delete(td.slots[row].tags, tag)
	td.posting.Remove(row, tag)
	if len(td.slots[row].tags) == 0 {
		td.release(ref, row)
	}
	return nil
}

// ReplaceTags replaces the item's tag set with the given tags, normalized as
// in Add. Tags present in both sets are untouched; removals are applied
// before additions. Replacing with an empty set deregisters the item. It
// fails with ErrNotFound if ref is not resident.
func (td *TagDict[T]) ReplaceTags(ref Ref, tags ...string) error {
	start := time.Now()
	err := td.replaceTags(ref, normalizeTags(tags))
	td.metrics.RecordMutation(time.Since(start), err)
	td.logger.LogMutate("replace_tags", ref, err)
	return err
}

func (td *TagDict[T]) replaceTags(ref Ref, next map[string]struct{}) error {
	row, ok := td.ids.Row(uint64(ref))
	if !ok {
		return notFound(ref)
	}

	cur := td.slots[row].tags

	// Removals before additions, so a tag in both sets never leaves its
	// bucket even transiently.
	for tag := range cur {
		if _, keep := next[tag]; !keep {
			delete(cur, tag)
			td.posting.Remove(row, tag)
		}
	}
	for tag := range next {
		if _, present := cur[tag]; !present {
			cur[tag] = struct{}{}
			td.posting.Add(row, tag)
		}
	}

	if len(cur) == 0 {
		td.release(ref, row)
	}
	return nil
}

// Remove deregisters the item entirely, pruning any bucket left empty. It
// fails with ErrNotFound if ref is not resident.
func (td *TagDict[T]) Remove(ref Ref) error {
	start := time.Now()
	err := td.replaceTags(ref, nil)
	td.metrics.RecordRemove(time.Since(start), err)
	td.logger.LogRemove(ref, err)
	return err
}

// release drops the forward slot and recycles the row. The posting index
// must already be clean for this row.
func (td *TagDict[T]) release(ref Ref, row uint32) {
	td.ids.Release(uint64(ref))
	td.slots[row] = slot[T]{}
}

// Tags returns a sorted copy of the item's current tag set. It fails with
// ErrNotFound if ref is not resident.
func (td *TagDict[T]) Tags(ref Ref) ([]string, error) {
	row, ok := td.ids.Row(uint64(ref))
	if !ok {
		return nil, notFound(ref)
	}
	return sortedTags(td.slots[row].tags), nil
}

// Item returns the payload stored under ref. It fails with ErrNotFound if
// ref is not resident.
func (td *TagDict[T]) Item(ref Ref) (T, error) {
	row, ok := td.ids.Row(uint64(ref))
	if !ok {
		var zero T
		return zero, notFound(ref)
	}
	return td.slots[row].item, nil
}

// Entries returns every resident (ref, item, tag set) triple, for
// diagnostic dumping. Order is not specified.
func (td *TagDict[T]) Entries() []Entry[T] {
	entries := make([]Entry[T], 0, td.ids.Len())
	for ref, row := range td.ids.All() {
		entries = append(entries, Entry[T]{
			Ref:  Ref(ref),
			Item: td.slots[row].item,
			Tags: sortedTags(td.slots[row].tags),
		})
	}
	return entries
}

// ByTag returns, for each requested tag, the entries carrying it. With no
// arguments it covers every in-use tag. Requested tags carried by no item
// are omitted.
func (td *TagDict[T]) ByTag(tags ...string) map[string][]Entry[T] {
	if len(tags) == 0 {
		tags = td.posting.Tags()
	}
	out := make(map[string][]Entry[T], len(tags))
	for _, tag := range tags {
		rows := td.posting.Rows(tag)
		if rows == nil {
			continue
		}
		entries := make([]Entry[T], 0, len(rows))
		for _, row := range rows {
			ref, ok := td.ids.Ref(row)
			if !ok {
				continue
			}
			entries = append(entries, Entry[T]{
				Ref:  Ref(ref),
				Item: td.slots[row].item,
				Tags: sortedTags(td.slots[row].tags),
			})
		}
		out[tag] = entries
	}
	return out
}

// TagNames returns every in-use tag, sorted.
func (td *TagDict[T]) TagNames() []string {
	return td.posting.Tags()
}

// Len returns the number of resident items.
func (td *TagDict[T]) Len() int {
	return td.ids.Len()
}

// Count returns the number of items carrying tag, zero for unknown tags.
func (td *TagDict[T]) Count(tag string) int {
	return td.posting.Count(tag)
}

// Merge imports every entry of other into td. An identity already resident
// in td keeps its payload and ends up with the union of both tag sets; other
// identities are registered with other's payload and tags. other is read
// only and left unmodified.
func (td *TagDict[T]) Merge(other *TagDict[T]) error {
	start := time.Now()
	var added, updated int
	var err error

	for ref, row := range other.ids.All() {
		theirs := other.slots[row].tags
		if myRow, resident := td.ids.Row(ref); resident {
			union := make(map[string]struct{}, len(td.slots[myRow].tags)+len(theirs))
			for tag := range td.slots[myRow].tags {
				union[tag] = struct{}{}
			}
			for tag := range theirs {
				union[tag] = struct{}{}
			}
			if err = td.replaceTags(Ref(ref), union); err != nil {
				break
			}
			updated++
		} else {
			set := make(map[string]struct{}, len(theirs))
			for tag := range theirs {
				set[tag] = struct{}{}
			}
			if err = td.insert(Ref(ref), other.slots[row].item, set); err != nil {
				break
			}
			added++
		}
	}

	td.metrics.RecordMerge(other.ids.Len(), time.Since(start))
	td.logger.LogMerge(added, updated, err)
	return err
}

// Stats holds diagnostic counters.
type Stats struct {
	// Items is the number of resident items.
	Items int
	// Tags is the number of in-use tags.
	Tags int
	// PostingBytes is the serialized size of the reverse-index bitmaps.
	PostingBytes uint64
}

// Stats returns diagnostic counters.
func (td *TagDict[T]) Stats() Stats {
	return Stats{
		Items:        td.ids.Len(),
		Tags:         td.posting.Len(),
		PostingBytes: td.posting.SizeInBytes(),
	}
}

// String renders a tag -> item-count summary for diagnostics and logging.
// The format is not a parseable contract.
func (td *TagDict[T]) String() string {
	var sb strings.Builder
	sb.WriteString("tagdict{")
	for i, tag := range td.posting.Tags() {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s: %d", tag, td.posting.Count(tag))
	}
	sb.WriteString("}")
	return sb.String()
}

func sortedTags(set map[string]struct{}) []string {
	tags := make([]string, 0, len(set))
	for tag := range set {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
