package model

import (
	"regexp"
	"strings"
	"sync"
)

// placeholderToken 占位符名不含花括号
var placeholderToken = regexp.MustCompile(`\{\{([^{}]*)\}\}`)

// PlaceholderTable holds the values substituted for {{name}} tokens in response bodies.
// It is safe for concurrent use.
type PlaceholderTable struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewPlaceholderTable(initial map[string]string) *PlaceholderTable {
	values := make(map[string]string, len(initial))
	for k, v := range initial {
		values[k] = v
	}
	return &PlaceholderTable{values: values}
}

func (t *PlaceholderTable) Set(name, value string) {
	t.mu.Lock()
	t.values[name] = value
	t.mu.Unlock()
}

func (t *PlaceholderTable) Get(name string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.values[name]
	return v, ok
}

func (t *PlaceholderTable) Delete(name string) {
	t.mu.Lock()
	delete(t.values, name)
	t.mu.Unlock()
}

// Snapshot returns a copy of the current values.
func (t *PlaceholderTable) Snapshot() map[string]string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[string]string, len(t.values))
	for k, v := range t.values {
		out[k] = v
	}
	return out
}

// Substitute replaces {{name}} tokens in text using the current values.
func (t *PlaceholderTable) Substitute(text string) string {
	return Substitute(text, t.Snapshot())
}

// Substitute replaces every {{name}} token in text with values[name]. Text is
// scanned once, left to right, so substituted values are never expanded again.
// Tokens without a value are kept as they are.
func Substitute(text string, values map[string]string) string {
	if len(values) == 0 || !strings.Contains(text, "{{") {
		return text
	}

	return placeholderToken.ReplaceAllStringFunc(text, func(token string) string {
		if value, ok := values[token[2:len(token)-2]]; ok {
			return value
		}
		return token
	})
}
