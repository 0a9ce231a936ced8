package bindings

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// RecordStore is the backing storage of the binding record cache, keyed by
// node UUID strings. The default implementation wraps patrickmn/go-cache with
// expiration disabled; records live until explicitly invalidated.
type RecordStore interface {
	Get(key string) (any, bool)
	Set(key string, value any)
	Delete(key string)
}

// NewMemoryRecordStore returns the default go-cache backed store.
func NewMemoryRecordStore() RecordStore {
	return &memoryRecordStore{
		cache: gocache.New(gocache.NoExpiration, 0),
	}
}

type memoryRecordStore struct {
	cache *gocache.Cache
}

func (s *memoryRecordStore) Get(key string) (any, bool) {
	return s.cache.Get(key)
}

func (s *memoryRecordStore) Set(key string, value any) {
	s.cache.Set(key, value, gocache.NoExpiration)
}

func (s *memoryRecordStore) Delete(key string) {
	s.cache.Delete(key)
}

// Status summarises a node's binding state for the debug surface.
type Status int

const (
	StatusUnresolved Status = iota
	StatusBound
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusBound:
		return "bound"
	case StatusFailed:
		return "failed"
	default:
		return "unresolved"
	}
}

// Outcome records the latest resolution or apply result for a node, kept for
// debug inspection even when resolution failed and no record exists.
type Outcome struct {
	Err error
	At  time.Time
}

// Status derives the debug status from the outcome.
func (o Outcome) Status() Status {
	if o.At.IsZero() {
		return StatusUnresolved
	}
	if o.Err != nil {
		return StatusFailed
	}
	return StatusBound
}

// Cache holds binding records and last outcomes keyed by node identity.
// Invalidation is always explicit; nothing expires on its own. The cache is
// confined to the traversal thread and does no locking of its own.
type Cache struct {
	store    RecordStore
	outcomes map[string]Outcome
}

// NewCache wraps store; a nil store gets the default in-memory one.
func NewCache(store RecordStore) *Cache {
	if store == nil {
		store = NewMemoryRecordStore()
	}
	return &Cache{
		store:    store,
		outcomes: make(map[string]Outcome),
	}
}

// Get returns the record cached for node.
func (c *Cache) Get(node *Node) (*Record, bool) {
	if node == nil {
		return nil, false
	}
	value, ok := c.store.Get(node.ID().String())
	if !ok {
		return nil, false
	}
	record, ok := value.(*Record)
	return record, ok
}

// Put stores the record for node, replacing any previous one.
func (c *Cache) Put(node *Node, record *Record) {
	if node == nil || record == nil {
		return
	}
	c.store.Set(node.ID().String(), record)
}

// Invalidate discards the record and outcome cached for node.
func (c *Cache) Invalidate(node *Node) {
	if node == nil {
		return
	}
	key := node.ID().String()
	c.store.Delete(key)
	delete(c.outcomes, key)
}

// InvalidateSubtree discards records and outcomes for node and every
// descendant, regardless of recursion opt-outs.
func (c *Cache) InvalidateSubtree(node *Node) {
	if node == nil {
		return
	}
	c.Invalidate(node)
	for _, child := range node.children {
		c.InvalidateSubtree(child)
	}
}

// SetOutcome records the latest result for node.
func (c *Cache) SetOutcome(node *Node, err error) {
	if node == nil {
		return
	}
	c.outcomes[node.ID().String()] = Outcome{Err: err, At: time.Now()}
}

// OutcomeOf returns the last recorded outcome for node.
func (c *Cache) OutcomeOf(node *Node) Outcome {
	if node == nil {
		return Outcome{}
	}
	return c.outcomes[node.ID().String()]
}
