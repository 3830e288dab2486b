// Package ident allocates stable item handles and interns them to dense rows.
//
// A handle (uint64) identifies one stored item for its whole lifetime and is
// unique across every arena in the process, so handles can be carried from
// one dict into another without collision. A row (uint32) is a small dense
// index local to one arena, suitable for Roaring posting bitmaps. Rows are
// recycled through a free list when a handle is released; handles never are.
package ident
