package pseudonym

import "sync"

// Cache maps every known representation of a host (names, aliases, IP
// literals) to its assigned pseudonym. It grows monotonically for the life
// of one run; entries are never evicted or persisted.
type Cache struct {
	mu sync.RWMutex
	m  map[string]string
}

// NewCache returns a cache seeded with the loopback identities, which are
// never pseudonymized.
func NewCache() *Cache {
	return &Cache{m: map[string]string{
		"127.0.0.1": "localhost",
		"::1":       "localhost",
		"localhost": "localhost",
	}}
}

// Lookup returns the pseudonym assigned to token, if any.
func (c *Cache) Lookup(token string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.m[token]
	return p, ok
}

// Insert assigns a pseudonym to token, overwriting any previous assignment.
func (c *Cache) Insert(token, pseudonym string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[token] = pseudonym
}

// Len returns the number of cached representations.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}
