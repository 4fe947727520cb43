package entity

import (
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// None is the edit target meaning "append".
const None = -1

// Collection owns one ordered sequence persisted as a whole under a key.
// Every mutation is followed by a full persist.
type Collection[T any] struct {
	doc   *Document[[]T]
	ident func(*T) *string
	log   *log.Logger
}

// NewCollection builds a collection. ident returns a pointer to the
// record's ID field; pass nil for positional-only collections.
func NewCollection[T any](b Backend, key string, schema *jsonschema.Schema, ident func(*T) *string, logger *log.Logger) *Collection[T] {
	logger = orDiscard(logger)
	return &Collection[T]{
		doc:   NewDocument(b, key, schema, func() []T { return []T{} }, logger),
		ident: ident,
		log:   logger.With("key", key),
	}
}

func (c *Collection[T]) Key() string {
	return c.doc.Key()
}

// Load returns the persisted sequence, empty when absent or malformed.
// Records stored without an ID are given one and written back so that
// later lookups see the same IDs.
func (c *Collection[T]) Load() ([]T, error) {
	items, err := c.doc.Load()
	if err != nil {
		return []T{}, err
	}
	if items == nil {
		items = []T{}
	}
	if c.assignIDs(items) {
		c.log.Info("assigned ids to legacy records", "count", len(items))
		if err := c.doc.Persist(items); err != nil {
			return items, err
		}
	}
	return items, nil
}

func (c *Collection[T]) Persist(items []T) error {
	if items == nil {
		items = []T{}
	}
	return c.doc.Persist(items)
}

// Upsert appends item when index is None, otherwise replaces the element
// at index. A replacement keeps the existing ID when item has none.
func (c *Collection[T]) Upsert(item T, index int) ([]T, error) {
	items, err := c.Load()
	if err != nil {
		return nil, err
	}
	if index == None {
		c.ensureID(&item)
		items = append(items, item)
	} else {
		if index < 0 || index >= len(items) {
			return nil, outOfRange(index, len(items))
		}
		if c.ident != nil && *c.ident(&item) == "" {
			*c.ident(&item) = *c.ident(&items[index])
		}
		items[index] = item
	}
	return items, c.commit(items, "upsert")
}

func (c *Collection[T]) Remove(index int) ([]T, error) {
	items, err := c.Load()
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(items) {
		return nil, outOfRange(index, len(items))
	}
	items = append(items[:index], items[index+1:]...)
	return items, c.commit(items, "remove")
}

// Update applies fn to the element at index in place.
func (c *Collection[T]) Update(index int, fn func(*T)) ([]T, error) {
	items, err := c.Load()
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(items) {
		return nil, outOfRange(index, len(items))
	}
	fn(&items[index])
	return items, c.commit(items, "update")
}

// Find returns the record with id and its current position.
func (c *Collection[T]) Find(id string) (T, int, error) {
	var zero T
	items, err := c.Load()
	if err != nil {
		return zero, None, err
	}
	i := c.IndexOf(items, id)
	if i == None {
		return zero, None, unknownID(id)
	}
	return items[i], i, nil
}

// IndexOf returns the position of id in items, or None.
func (c *Collection[T]) IndexOf(items []T, id string) int {
	if c.ident == nil || id == "" {
		return None
	}
	for i := range items {
		if *c.ident(&items[i]) == id {
			return i
		}
	}
	return None
}

// UpsertByID appends when id is empty, otherwise replaces the record
// carrying id.
func (c *Collection[T]) UpsertByID(item T, id string) ([]T, error) {
	if id == "" {
		return c.Upsert(item, None)
	}
	_, i, err := c.Find(id)
	if err != nil {
		return nil, err
	}
	return c.Upsert(item, i)
}

func (c *Collection[T]) RemoveByID(id string) ([]T, error) {
	_, i, err := c.Find(id)
	if err != nil {
		return nil, err
	}
	return c.Remove(i)
}

func (c *Collection[T]) UpdateByID(id string, fn func(*T)) ([]T, error) {
	_, i, err := c.Find(id)
	if err != nil {
		return nil, err
	}
	return c.Update(i, fn)
}

func (c *Collection[T]) commit(items []T, op string) error {
	if err := c.Persist(items); err != nil {
		return err
	}
	c.log.Debug("persisted", "op", op, "len", len(items))
	return nil
}

func (c *Collection[T]) ensureID(item *T) {
	if c.ident == nil {
		return
	}
	if id := c.ident(item); *id == "" {
		*id = NewID()
	}
}

func (c *Collection[T]) assignIDs(items []T) bool {
	if c.ident == nil {
		return false
	}
	changed := false
	for i := range items {
		if id := c.ident(&items[i]); *id == "" {
			*id = NewID()
			changed = true
		}
	}
	return changed
}

func NewID() string {
	return uuid.NewString()
}
