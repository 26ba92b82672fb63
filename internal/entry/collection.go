package entry

// Collection holds entries bucketed by category in parse order.
type Collection struct {
	buckets map[Category][]*Entry
}

func NewCollection() *Collection {
	c := &Collection{buckets: make(map[Category][]*Entry)}
	for _, cat := range Categories() {
		c.buckets[cat] = nil
	}
	return c
}

// Add appends e to the bucket of its category.
func (c *Collection) Add(e *Entry) {
	c.buckets[e.Category] = append(c.buckets[e.Category], e)
}

// Get returns the bucket for cat. The returned slice aliases the collection.
func (c *Collection) Get(cat Category) []*Entry {
	return c.buckets[cat]
}

// Len returns the total number of entries across all buckets.
func (c *Collection) Len() int {
	n := 0
	for _, b := range c.buckets {
		n += len(b)
	}
	return n
}

// Each calls fn for every entry, buckets in output order.
func (c *Collection) Each(fn func(*Entry) error) error {
	for _, cat := range Categories() {
		for _, e := range c.buckets[cat] {
			if err := fn(e); err != nil {
				return err
			}
		}
	}
	return nil
}
