package lru

// node is an entry in the recency list. head is the most recently used.
type node[K comparable, V any] struct {
	key   K
	value V
	prev  *node[K, V]
	next  *node[K, V]
}

// Cache is a fixed-capacity LRU cache.
// A limit of 0 or less means unlimited.
type Cache[K comparable, V any] struct {
	limit     int
	entries   map[K]*node[K, V]
	head      *node[K, V]
	tail      *node[K, V]
	onEvict   func(K, V)
	evictions uint64
}

// New creates a cache holding at most limit entries. onEvict, if non-nil,
// is called for every entry removed by eviction, replacement or Clear.
func New[K comparable, V any](limit int, onEvict func(K, V)) *Cache[K, V] {
	return &Cache[K, V]{
		limit:   limit,
		entries: make(map[K]*node[K, V]),
		onEvict: onEvict,
	}
}

// Get returns the value for key and marks it most recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	n, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.moveToFront(n)
	return n.value, true
}

// Add stores value under key, evicting the least recently used entry if
// the cache is full. An existing value for key is replaced.
func (c *Cache[K, V]) Add(key K, value V) {
	if n, ok := c.entries[key]; ok {
		old := n.value
		n.value = value
		c.moveToFront(n)
		if c.onEvict != nil {
			c.onEvict(key, old)
		}
		return
	}

	n := &node[K, V]{key: key, value: value}
	c.entries[key] = n
	c.pushFront(n)

	if c.limit > 0 && len(c.entries) > c.limit {
		c.removeOldest()
	}
}

// Len returns the number of entries.
func (c *Cache[K, V]) Len() int {
	return len(c.entries)
}

// Evictions returns the number of entries dropped for capacity.
func (c *Cache[K, V]) Evictions() uint64 {
	return c.evictions
}

// Clear removes every entry.
func (c *Cache[K, V]) Clear() {
	for n := c.head; n != nil; n = n.next {
		if c.onEvict != nil {
			c.onEvict(n.key, n.value)
		}
	}
	c.entries = make(map[K]*node[K, V])
	c.head, c.tail = nil, nil
}

func (c *Cache[K, V]) removeOldest() {
	n := c.tail
	if n == nil {
		return
	}
	c.unlink(n)
	delete(c.entries, n.key)
	c.evictions++
	if c.onEvict != nil {
		c.onEvict(n.key, n.value)
	}
}

func (c *Cache[K, V]) pushFront(n *node[K, V]) {
	n.prev = nil
	n.next = c.head
	if c.head != nil {
		c.head.prev = n
	}
	c.head = n
	if c.tail == nil {
		c.tail = n
	}
}

func (c *Cache[K, V]) moveToFront(n *node[K, V]) {
	if c.head == n {
		return
	}
	c.unlink(n)
	c.pushFront(n)
}

func (c *Cache[K, V]) unlink(n *node[K, V]) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		c.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		c.tail = n.prev
	}
	n.prev, n.next = nil, nil
}
