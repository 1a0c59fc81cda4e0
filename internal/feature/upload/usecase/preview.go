// Package usecase implements the business logic for the upload feature:
// filename validation, bounded preview parsing and metadata persistence.
package usecase

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"logsearch_backend/internal/feature/upload/domain/entity"
)

// DefaultPreviewLines is the number of rows/entries included in a preview.
const DefaultPreviewLines = 10

// AllowedFile reports whether the filename has an accepted extension. The
// name must carry a dot, a non-empty basename before the suffix, and a
// lowercased suffix present in allowed.
func AllowedFile(name string, allowed map[string]struct{}) bool {
	i := strings.LastIndex(name, ".")
	if i <= 0 {
		// No dot, or nothing before the suffix (".csv" has no basename).
		return false
	}
	_, ok := allowed[strings.ToLower(name[i+1:])]
	return ok
}

// Extension returns the lowercased suffix after the last dot.
func Extension(name string) string {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SecureFilename strips path components and traversal sequences and reduces
// the remainder to a safe character set.
func SecureFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	return name
}

// ParseCSVPreview reads the header row and up to lines data rows. An empty
// file yields no headers and zero rows.
func ParseCSVPreview(path string, lines int) (*entity.Preview, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv parse error: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // ragged rows are previewed as-is

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &entity.Preview{}, nil
		}
		return nil, fmt.Errorf("csv parse error: %w", err)
	}

	preview := &entity.Preview{Headers: headers}
	for i := 0; i < lines; i++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv parse error: %w", err)
		}
		preview.Rows = append(preview.Rows, row)
	}
	return preview, nil
}

// rootKind tags the supported shapes of a JSON document root.
type rootKind int

const (
	rootRecords rootKind = iota // array of entries
	rootObject                  // single object, previewed as key/value pairs
	rootUnsupported
)

// jsonRoot is a tagged union over the JSON document root.
type jsonRoot struct {
	kind    rootKind
	records []any
	object  map[string]any
}

func classifyRoot(doc any) jsonRoot {
	switch v := doc.(type) {
	case []any:
		return jsonRoot{kind: rootRecords, records: v}
	case map[string]any:
		return jsonRoot{kind: rootObject, object: v}
	default:
		return jsonRoot{kind: rootUnsupported}
	}
}

// ParseJSONPreview parses a JSON file and previews its first entries.
// An array root yields up to lines elements with headers taken from the first
// element's keys when it is an object; an object root becomes a two-column
// key/value table; any other root is rejected.
func ParseJSONPreview(path string, lines int) (*entity.Preview, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("json parse error: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON file: %w", err)
	}

	root := classifyRoot(doc)
	switch root.kind {
	case rootRecords:
		entries := root.records
		if len(entries) > lines {
			entries = entries[:lines]
		}
		preview := &entity.Preview{Rows: entries}
		if len(entries) > 0 {
			if first, ok := entries[0].(map[string]any); ok {
				preview.Headers = sortedKeys(first)
			}
		}
		return preview, nil

	case rootObject:
		preview := &entity.Preview{Headers: []string{"Key", "Value"}}
		for _, k := range sortedKeys(root.object) {
			if len(preview.Rows) >= lines {
				break
			}
			preview.Rows = append(preview.Rows, []string{k, fmt.Sprintf("%v", root.object[k])})
		}
		return preview, nil

	default:
		return nil, errors.New("unsupported JSON format (root must be an array or an object)")
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// Stable order keeps previews deterministic; JSON objects are unordered
	// in Go's decoder.
	sort.Strings(keys)
	return keys
}
