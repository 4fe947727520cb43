package entity

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// Backend is the key-value persistence surface.
type Backend interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Document reads and writes one whole JSON document under a key.
type Document[T any] struct {
	backend  Backend
	key      string
	schema   *jsonschema.Schema
	fallback func() T
	log      *log.Logger
}

func NewDocument[T any](b Backend, key string, schema *jsonschema.Schema, fallback func() T, logger *log.Logger) *Document[T] {
	return &Document[T]{
		backend:  b,
		key:      key,
		schema:   schema,
		fallback: fallback,
		log:      orDiscard(logger).With("key", key),
	}
}

func (d *Document[T]) Key() string {
	return d.key
}

// Read decodes the stored document. An absent key yields the fallback
// value; a malformed one yields a *DecodeError.
func (d *Document[T]) Read() (T, error) {
	raw, ok, err := d.backend.Get(d.key)
	if err != nil {
		return d.fallback(), fmt.Errorf("read %q: %w", d.key, err)
	}
	if !ok || strings.TrimSpace(raw) == "" || strings.TrimSpace(raw) == "null" {
		return d.fallback(), nil
	}

	if d.schema != nil {
		var generic any
		if err := json.Unmarshal([]byte(raw), &generic); err != nil {
			return d.fallback(), &DecodeError{Key: d.key, Err: err}
		}
		if err := d.schema.Validate(generic); err != nil {
			return d.fallback(), &DecodeError{Key: d.key, Err: err}
		}
	}

	v := d.fallback()
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return d.fallback(), &DecodeError{Key: d.key, Err: err}
	}
	return v, nil
}

// Load is Read that fails open: a malformed document is logged and
// treated as empty. Only backend failures are returned.
func (d *Document[T]) Load() (T, error) {
	v, err := d.Read()
	if err != nil && IsDecodeError(err) {
		d.log.Warn("discarding unreadable document", "err", err)
		return v, nil
	}
	return v, err
}

// Persist replaces the stored document with v.
func (d *Document[T]) Persist(v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %q: %w", d.key, err)
	}
	if err := d.backend.Set(d.key, string(data)); err != nil {
		return fmt.Errorf("write %q: %w", d.key, err)
	}
	return nil
}

func orDiscard(l *log.Logger) *log.Logger {
	if l != nil {
		return l
	}
	return log.New(io.Discard)
}
