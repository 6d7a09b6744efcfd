package model

import (
	"context"
	"regexp"
	"strings"
	"sync"
)

type MockRuleIface interface {
	IsMatch(ctx context.Context, requestInfo RequestInfo) bool
	Next() (*ResponseVariant, int)
}

var _ MockRuleIface = (*MockRule)(nil)

// MockRule is the matchable form of one rule file.
type MockRule struct {
	ID            string         // 文件名
	Source        string         // 文件路径
	MethodPattern *regexp.Regexp // 大小写不敏感
	URLPattern    *regexp.Regexp
	Variants      []*ResponseVariant

	mu     sync.Mutex
	cursor int
}

// IsMatch reports whether both patterns find a match in the request method and URL.
func (m *MockRule) IsMatch(_ context.Context, requestInfo RequestInfo) bool {
	return m.Matches(requestInfo.GetMethod(), requestInfo.GetURL())
}

func (m *MockRule) Matches(method, url string) bool {
	return m.MethodPattern.MatchString(method) && m.URLPattern.MatchString(url)
}

// Next returns the variant at the cursor together with its index and advances
// the cursor, which stays pinned once it reaches the last variant.
func (m *MockRule) Next() (*ResponseVariant, int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.cursor
	if m.cursor < len(m.Variants)-1 {
		m.cursor++
	}
	return m.Variants[idx], idx
}

// Cursor returns the index of the variant the next match will serve.
func (m *MockRule) Cursor() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cursor
}

// Reset rewinds the cursor to the first variant.
func (m *MockRule) Reset() {
	m.mu.Lock()
	m.cursor = 0
	m.mu.Unlock()
}

// RuleSummary is a read-only view of a rule used for listing and diagnostics.
type RuleSummary struct {
	ID            string `json:"id"`
	Source        string `json:"source"`
	MethodPattern string `json:"methodPattern"`
	URLPattern    string `json:"urlPattern"`
	Variants      int    `json:"variants"`
	Cursor        int    `json:"cursor"`
}

func (m *MockRule) Summary() RuleSummary {
	return RuleSummary{
		ID:            m.ID,
		Source:        m.Source,
		MethodPattern: m.methodPatternSource(),
		URLPattern:    m.URLPattern.String(),
		Variants:      len(m.Variants),
		Cursor:        m.Cursor(),
	}
}

func (m *MockRule) methodPatternSource() string {
	return strings.TrimPrefix(m.MethodPattern.String(), caseInsensitiveFlag)
}
