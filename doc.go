// Package tagdict provides an in-memory multi-index: items annotated with
// string tags, retrieved by exact tag intersection.
//
// Each item is registered under a stable opaque handle (Ref) and carries a
// set of tags. A forward index (ref -> payload + tags) and a Roaring-bitmap
// reverse index (tag -> items) are kept in lockstep, so intersection queries
// and per-tag enumeration stay O(tags) and O(matches).
//
// # Quick start
//
//	td := tagdict.New[map[string]string]()
//
//	ben := td.Add(map[string]string{"name": "Ben"}, "male", "student")
//	td.Add(map[string]string{"name": "Tina"}, "female", "teacher")
//
//	// Single match: collapse to the item.
//	tina, err := td.Get("teacher", "female").Item()
//
//	// Several matches: use the multi-item views.
//	for _, e := range td.Get("student").Entries() {
//	    fmt.Println(e.Ref, e.Item, e.Tags)
//	}
//
//	// Everything.
//	all := td.Get(tagdict.Wildcard).Items()
//
//	// Mutate tag sets; both indexes stay consistent.
//	td.AddTag(ben, "martian")
//	td.ReplaceTags(ben, "human")
//	td.Remove(ben)
//
// Items are tracked by identity, never by value: two payloads that compare
// equal are distinct entries, and payloads do not need to be comparable or
// hashable. An item whose tag set becomes empty is deregistered; a tag
// carried by no item disappears from every view.
//
// TagDict is not safe for concurrent use; serialize access externally.
package tagdict
