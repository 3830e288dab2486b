package tagdict

// Selection is the result of a Get query. It realizes the collapse
// convention: a selection matching exactly one item behaves like that item
// (One, Item, and the chained mutators succeed), while a selection matching
// several must be consumed through the multi-item views (Entries, Items,
// Refs). Applying a single-item operation to a multi-item selection fails
// with ErrAmbiguousSelection instead of silently picking one.
//
// A Selection captures refs at query time; items removed afterwards simply
// drop out of the views.
type Selection[T any] struct {
	dict *TagDict[T]
	refs []Ref
}

// Len returns the number of matched items.
func (s Selection[T]) Len() int {
	return len(s.refs)
}

// Empty reports whether no item matched.
func (s Selection[T]) Empty() bool {
	return len(s.refs) == 0
}

// Refs returns the matched handles. Order is not guaranteed stable across
// queries.
func (s Selection[T]) Refs() []Ref {
	out := make([]Ref, len(s.refs))
	copy(out, s.refs)
	return out
}

// single collapses the selection to its sole ref, or reports why it cannot.
func (s Selection[T]) single() (Ref, error) {
	switch len(s.refs) {
	case 0:
		return 0, ErrNotFound
	case 1:
		return s.refs[0], nil
	default:
		return 0, &ErrAmbiguousSelection{Count: len(s.refs)}
	}
}

// One returns the single matched entry. It fails with ErrNotFound on an
// empty selection and ErrAmbiguousSelection when several items matched.
func (s Selection[T]) One() (Entry[T], error) {
	ref, err := s.single()
	if err != nil {
		return Entry[T]{}, err
	}
	item, err := s.dict.Item(ref)
	if err != nil {
		return Entry[T]{}, err
	}
	tags, err := s.dict.Tags(ref)
	if err != nil {
		return Entry[T]{}, err
	}
	return Entry[T]{Ref: ref, Item: item, Tags: tags}, nil
}

// Item returns the single matched payload; shorthand for One().Item.
func (s Selection[T]) Item() (T, error) {
	ref, err := s.single()
	if err != nil {
		var zero T
		return zero, err
	}
	return s.dict.Item(ref)
}

// Entries returns the matched entries. Items removed since the query are
// skipped.
func (s Selection[T]) Entries() []Entry[T] {
	entries := make([]Entry[T], 0, len(s.refs))
	for _, ref := range s.refs {
		item, err := s.dict.Item(ref)
		if err != nil {
			continue
		}
		tags, err := s.dict.Tags(ref)
		if err != nil {
			continue
		}
		entries = append(entries, Entry[T]{Ref: ref, Item: item, Tags: tags})
	}
	return entries
}

// Items returns the matched payloads. Items removed since the query are
// skipped.
func (s Selection[T]) Items() []T {
	items := make([]T, 0, len(s.refs))
	for _, ref := range s.refs {
		if item, err := s.dict.Item(ref); err == nil {
			items = append(items, item)
		}
	}
	return items
}

// AddTag adds tag to the single matched item. It fails with
// ErrAmbiguousSelection when several items matched; iterate Refs to mutate
// each explicitly.
func (s Selection[T]) AddTag(tag string) error {
	ref, err := s.single()
	if err != nil {
		return err
	}
	return s.dict.AddTag(ref, tag)
}

// RemoveTag removes tag from the single matched item.
func (s Selection[T]) RemoveTag(tag string) error {
	ref, err := s.single()
	if err != nil {
		return err
	}
	return s.dict.RemoveTag(ref, tag)
}

// ReplaceTags replaces the single matched item's tag set.
func (s Selection[T]) ReplaceTags(tags ...string) error {
	ref, err := s.single()
	if err != nil {
		return err
	}
	return s.dict.ReplaceTags(ref, tags...)
}

// Remove deregisters the single matched item.
func (s Selection[T]) Remove() error {
	ref, err := s.single()
	if err != nil {
		return err
	}
	return s.dict.Remove(ref)
}
