// Package extract pulls submission fields out of the script block embedded
// in the legacy submission detail page.
package extract

import (
	"errors"
	"regexp"

	"github.com/wanglun/leetcode.vim/internal/judge/model"
)

var errFieldNotFound = errors.New("field not found")

// Field is one row of an extraction table. The first capture group of
// Pattern is the value.
type Field struct {
	Name    string
	Pattern *regexp.Regexp
	// Unescape decodes backslash escapes in the captured value.
	Unescape bool
	// After names an earlier field; the search starts where that field's
	// match ended, or at the beginning when it did not match.
	After string
}

// Table extracts a fixed set of fields from a page.
type Table struct {
	fields []Field
}

// NewTable builds a table. Fields are evaluated in order, so a field may only
// refer to an earlier one with After.
func NewTable(fields ...Field) *Table {
	return &Table{fields: fields}
}

// Values holds extracted fields. Missing fields read as model.NotFound.
type Values struct {
	values map[string]string
	found  map[string]bool
}

// Get returns the field value or the NotFound sentinel.
func (v Values) Get(name string) string {
	if !v.found[name] {
		return model.NotFound
	}
	return v.values[name]
}

// Found reports whether the page carried the field.
func (v Values) Found(name string) bool {
	return v.found[name]
}

// Extract runs every field of the table against text.
func (t *Table) Extract(text string) Values {
	out := Values{
		values: make(map[string]string, len(t.fields)),
		found:  make(map[string]bool, len(t.fields)),
	}
	ends := make(map[string]int, len(t.fields))
	for _, f := range t.fields {
		start := 0
		if f.After != "" {
			start = ends[f.After]
		}
		value, end, err := find(f.Pattern, text, start)
		if err != nil {
			continue
		}
		ends[f.Name] = end
		if f.Unescape {
			value = Unescape(value)
		}
		out.values[f.Name] = value
		out.found[f.Name] = true
	}
	return out
}

func find(pattern *regexp.Regexp, text string, start int) (string, int, error) {
	if start > len(text) {
		return "", 0, errFieldNotFound
	}
	loc := pattern.FindStringSubmatchIndex(text[start:])
	if loc == nil || len(loc) < 4 || loc[2] < 0 {
		return "", 0, errFieldNotFound
	}
	return text[start+loc[2] : start+loc[3]], start + loc[1], nil
}
