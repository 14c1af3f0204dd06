// Package catalog holds the ordered list of generated posts and its local
// JSON mirror.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// TimestampLayout is the format of Record.CreatedAt.
const TimestampLayout = "2006-01-02 15:04:05"

// Record is one catalog entry.
type Record struct {
	Filename  string `json:"filename"`
	Topic     string `json:"topic"`
	Category  string `json:"category"`
	Tags      string `json:"tags"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// NewRecord stamps a record with createdAt.
func NewRecord(filename, topic, category, tags, content string, createdAt time.Time) Record {
	return Record{
		Filename:  filename,
		Topic:     topic,
		Category:  category,
		Tags:      tags,
		Content:   content,
		CreatedAt: createdAt.Format(TimestampLayout),
	}
}

// Catalog is an insertion-ordered list of records mirrored to a local file.
// Filenames are unique within it.
type Catalog struct {
	mu      sync.Mutex
	path    string
	records []Record
}

// New creates an empty catalog mirrored at path.
func New(path string) *Catalog {
	return &Catalog{path: path, records: []Record{}}
}

// Load reads the catalog mirrored at path. A missing file yields an empty
// catalog.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return New(path), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}

	records, err := Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}

	return &Catalog{path: path, records: dedupe(records)}, nil
}

// Path returns the local mirror path.
func (c *Catalog) Path() string {
	return c.path
}

// Append adds rec to the end of the catalog and rewrites the local mirror.
// A record with the same filename is replaced in place instead.
func (c *Catalog) Append(rec Record) error {
	_, err := c.Upsert(rec)

	return err
}

// Upsert replaces the record sharing rec's filename, keeping its position,
// or appends rec when there is none. It rewrites the local mirror and
// reports whether an existing record was replaced.
func (c *Catalog) Upsert(rec Record) (replaced bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.index(rec.Filename); i >= 0 {
		c.records[i] = rec
		replaced = true
	} else {
		c.records = append(c.records, rec)
	}

	return replaced, c.save()
}

// Save overwrites the local mirror with the full catalog.
func (c *Catalog) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.save()
}

func (c *Catalog) save() error {
	data, err := Marshal(c.records)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("failed to create catalog directory: %w", err)
	}

	//nolint:gosec // Catalog is not secret
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write catalog %s: %w", c.path, err)
	}

	return nil
}

// Replace swaps the whole catalog for records and rewrites the local mirror.
// Later records win over earlier ones sharing a filename.
func (c *Catalog) Replace(records []Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.records = dedupe(records)

	return c.save()
}

// Records returns a copy of all records in insertion order.
func (c *Catalog) Records() []Record {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]Record(nil), c.records...)
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.records)
}

// Find returns the record with filename.
func (c *Catalog) Find(filename string) (Record, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.index(filename); i >= 0 {
		return c.records[i], true
	}

	return Record{}, false
}

func (c *Catalog) index(filename string) int {
	for i, rec := range c.records {
		if rec.Filename == filename {
			return i
		}
	}

	return -1
}

// dedupe collapses records sharing a filename onto the first position,
// keeping the last value. Catalogs written before filenames were unique may
// contain such repeats.
func dedupe(records []Record) []Record {
	out := make([]Record, 0, len(records))
	pos := make(map[string]int, len(records))
	for _, rec := range records {
		if i, ok := pos[rec.Filename]; ok {
			out[i] = rec
			continue
		}
		pos[rec.Filename] = len(out)
		out = append(out, rec)
	}

	return out
}

// Marshal encodes records as the catalog JSON array. A nil slice encodes as
// an empty array.
func Marshal(records []Record) ([]byte, error) {
	if records == nil {
		records = []Record{}
	}

	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to encode catalog: %w", err)
	}

	return data, nil
}

// Unmarshal decodes a catalog JSON array.
func Unmarshal(data []byte) ([]Record, error) {
	records := []Record{}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	return records, nil
}
