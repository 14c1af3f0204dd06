// Package batchfile reads batch topic lists.
//
// A batch file is CSV with a header row naming at least the topic and
// category columns. An optional keyword column is substituted into the
// topic's <<KEYWORD>> placeholder. Column order does not matter and extra
// columns are ignored.
package batchfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alkime/postauto/internal/content"
	"github.com/alkime/postauto/internal/pipeline"
)

// ErrInvalidBatch is returned for unreadable or incomplete batch files.
var ErrInvalidBatch = errors.New("invalid batch file")

const (
	columnTopic    = "topic"
	columnCategory = "category"
	columnKeyword  = "keyword"
)

// ReadFile opens path and reads it as a batch file.
func ReadFile(path string) ([]pipeline.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open batch file: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Read parses a batch file. Rows keep file order; keyword substitution has
// already been applied to every returned topic.
func Read(r io.Reader) ([]pipeline.Row, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty file", ErrInvalidBatch)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBatch, err)
	}

	cols := indexColumns(header)
	for _, required := range []string{columnTopic, columnCategory} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: missing %q column", ErrInvalidBatch, required)
		}
	}

	var rows []pipeline.Row
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidBatch, err)
		}

		line, _ := cr.FieldPos(0)
		if blank(record) {
			continue
		}

		topic := field(record, cols, columnTopic)
		category := field(record, cols, columnCategory)
		if topic == "" || category == "" {
			return nil, fmt.Errorf("%w: line %d: topic and category are required", ErrInvalidBatch, line)
		}

		if keyword := field(record, cols, columnKeyword); keyword != "" {
			topic = content.ApplyKeyword(topic, keyword)
		}

		rows = append(rows, pipeline.Row{Topic: topic, Category: category})
	}

	return rows, nil
}

func indexColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}

	return cols
}

func field(record []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(record) {
		return ""
	}

	return strings.TrimSpace(record[i])
}

func blank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}

	return true
}
