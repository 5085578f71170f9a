// Package jsonpath evaluates the tiny path expressions used by the
// brondatum archiefprocedure: segments joined by "." or "/" navigating a
// decoded JSON document.
package jsonpath

import (
	"fmt"
	"strings"
)

// ErrNotFound is returned when a path segment is absent. Missing paths are
// hard errors for archive-date derivation, never silent nulls.
type ErrNotFound struct {
	Path    string
	Segment string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("path %q: segment %q not found", e.Path, e.Segment)
}

// Split breaks a datumkenmerk into its segments. Both "." and "/" act as
// separators; empty segments are dropped.
func Split(path string) []string {
	fields := strings.FieldsFunc(path, func(r rune) bool {
		return r == '.' || r == '/'
	})
	return fields
}

// Lookup walks the document along path and returns the value at the leaf.
func Lookup(doc map[string]any, path string) (any, error) {
	segments := Split(path)
	if len(segments) == 0 {
		return nil, &ErrNotFound{Path: path, Segment: path}
	}
	var current any = doc
	for _, seg := range segments {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, &ErrNotFound{Path: path, Segment: seg}
		}
		current, ok = obj[seg]
		if !ok {
			return nil, &ErrNotFound{Path: path, Segment: seg}
		}
	}
	return current, nil
}

// LookupString is Lookup constrained to string leaves.
func LookupString(doc map[string]any, path string) (string, error) {
	value, err := Lookup(doc, path)
	if err != nil {
		return "", err
	}
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("path %q: value %v is not a string", path, value)
	}
	return s, nil
}
