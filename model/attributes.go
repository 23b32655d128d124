package model

import (
	"strconv"
	"strings"

	"github.com/syssam/relgraph"
)

// Attributes is a flat attribute bag, as produced by a schema reader for one
// element. Keys are matched case-insensitively and unknown keys are ignored
// by every LoadMapping implementation.
type Attributes map[string]string

// Lookup returns the value stored under key and whether it was present.
func (a Attributes) Lookup(key string) (string, bool) {
	if v, ok := a[key]; ok {
		return v, true
	}
	for k, v := range a {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return "", false
}

// Get returns the value stored under key, or "".
func (a Attributes) Get(key string) string {
	v, _ := a.Lookup(key)
	return v
}

// GetDefault returns the value stored under key, or def when absent.
func (a Attributes) GetDefault(key, def string) string {
	if v, ok := a.Lookup(key); ok {
		return v
	}
	return def
}

// Bool interprets the value under key as a boolean. "true", "1", "yes"
// and "y" are true, anything else is false. Absent keys return def.
func (a Attributes) Bool(key string, def bool) bool {
	v, ok := a.Lookup(key)
	if !ok {
		return def
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "yes", "y":
		return true
	}
	return false
}

// Int interprets the value under key as an integer. It returns nil when the
// key is absent or blank.
func (a Attributes) Int(key string) (*int, error) {
	v, ok := a.Lookup(key)
	if !ok || strings.TrimSpace(v) == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return nil, relgraph.NewBuildError("attribute", key, "", "not an integer: "+v)
	}
	return &n, nil
}

// List splits a comma separated value into trimmed, non-empty items.
func (a Attributes) List(key string) []string {
	v := a.Get(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
