package validation

import (
	"container/list"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/crypto/blake2b"
)

// schemaKey identifies a schema by the BLAKE2b-256 sum of its JSON form.
type schemaKey [blake2b.Size256]byte

func keyOf(raw []byte) schemaKey {
	return blake2b.Sum256(raw)
}

type cached struct {
	key    schemaKey
	schema *jsonschema.Schema
}

// schemaCache keeps the most recently used compiled schemas.
type schemaCache struct {
	mu      sync.Mutex
	order   *list.List // front is most recent
	entries map[schemaKey]*list.Element
	limit   int
}

func newSchemaCache(limit int) *schemaCache {
	return &schemaCache{
		order:   list.New(),
		entries: make(map[schemaKey]*list.Element),
		limit:   max(limit, 1),
	}
}

func (c *schemaCache) get(key schemaKey) (*jsonschema.Schema, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*cached).schema, true
}

func (c *schemaCache) put(key schemaKey, s *jsonschema.Schema) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		el.Value.(*cached).schema = s
		c.order.MoveToFront(el)
		return
	}

	c.entries[key] = c.order.PushFront(&cached{key: key, schema: s})
	for c.order.Len() > c.limit {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cached).key)
	}
}

func (c *schemaCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
