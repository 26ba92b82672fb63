package modset

import (
	"cmp"
	"slices"

	"dom-compiler/internal/entry"
)

// Sort orders every sortable bucket by absolute id, new declarations
// before selections of existing ones. Equal keys keep parse order.
func Sort(c *entry.Collection) {
	for _, cat := range entry.Categories() {
		if cat.Sortable() {
			slices.SortStableFunc(c.Get(cat), compareEntries)
		}
	}
}

func compareEntries(a, b *entry.Entry) int {
	if c := cmp.Compare(declarationGroup(a), declarationGroup(b)); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

func declarationGroup(e *entry.Entry) int {
	if e.IsNew() {
		return 0
	}
	return 1
}
