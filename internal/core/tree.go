package core

// Index is an explicit parent-linked view over one collection's item tree.
// Ancestor walks for open-item restoration are pure tree lookups here,
// decoupled from whatever the presentation layer built. Ids are only
// resolved within the owning collection: two collections with structurally
// identical trees share id values, so cross-collection lookups would be
// ambiguous by construction.
type Index struct {
	nodes  map[string]*Item
	parent map[string]*Item
}

// BuildIndex indexes a collection's items by id. It assumes AssignIDs has
// already run; items with empty ids are skipped.
func BuildIndex(c *Collection) *Index {
	ix := &Index{
		nodes:  make(map[string]*Item),
		parent: make(map[string]*Item),
	}
	var walk func(items []*Item, parent *Item)
	walk = func(items []*Item, parent *Item) {
		for _, it := range items {
			if it.ID != "" {
				ix.nodes[it.ID] = it
				if parent != nil {
					ix.parent[it.ID] = parent
				}
			}
			walk(it.Items, it)
		}
	}
	walk(c.Items, nil)
	return ix
}

// Find returns the item with the given id, or nil.
func (ix *Index) Find(id string) *Item {
	if ix == nil {
		return nil
	}
	return ix.nodes[id]
}

// Parent returns the parent item of id, or nil for roots and unknown ids.
func (ix *Index) Parent(id string) *Item {
	if ix == nil {
		return nil
	}
	return ix.parent[id]
}

// OpenChain returns the ids of every expandable node that must be open for
// the target to be visible, ordered root to target. The target itself is
// included when expandable, matching disclosure semantics. An unknown id
// yields nil: a stale open-item reference is a silent miss, not an error.
func (ix *Index) OpenChain(id string) []string {
	target := ix.Find(id)
	if target == nil {
		return nil
	}
	var chain []string
	if target.Expandable() {
		chain = append(chain, target.ID)
	}
	for p := ix.Parent(id); p != nil; p = ix.Parent(p.ID) {
		chain = append(chain, p.ID)
	}
	// Discovered bottom-up; callers force containers open root-first.
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// Len returns the number of indexed items.
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.nodes)
}
