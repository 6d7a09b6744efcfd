package model

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, source, content string) *MockRule {
	t.Helper()
	rule, err := ParseRule(source, []byte(content))
	require.NoError(t, err)
	return rule
}

func TestMockRuleSingleVariantRepeats(t *testing.T) {
	rule := mustParse(t, "one.tail", "GET\n/one\n200\nX-A: 1\n\nbody")

	for i := 0; i < 5; i++ {
		v, idx := rule.Next()
		assert.Equal(t, 0, idx)
		assert.Equal(t, 200, v.StatusCode)
		assert.Equal(t, "body", string(v.Body))
		assert.Equal(t, 0, rule.Cursor())
	}
}

func TestMockRuleCursorPinsAtLastVariant(t *testing.T) {
	rule := mustParse(t, "seq.tail", "GET\n/seq\n200\n--\n200\n--\n404\n--\n200\n")

	var statuses []int
	var indexes []int
	for i := 0; i < 5; i++ {
		v, idx := rule.Next()
		statuses = append(statuses, v.StatusCode)
		indexes = append(indexes, idx)
	}

	assert.Equal(t, []int{200, 200, 404, 200, 200}, statuses)
	assert.Equal(t, []int{0, 1, 2, 3, 3}, indexes)
	assert.Equal(t, 3, rule.Cursor())

	rule.Reset()
	assert.Equal(t, 0, rule.Cursor())
}

func TestMockRuleIsMatch(t *testing.T) {
	rule := mustParse(t, "users.tail", "GET|HEAD\nhttps://api\\.example\\.com/users/\\d+\n200\n")

	req := &http.Request{Method: "head", URL: &url.URL{Scheme: "https", Host: "api.example.com", Path: "/users/42"}}
	assert.True(t, rule.IsMatch(context.Background(), NewHTTPRequest(req)))
	assert.True(t, rule.IsMatch(context.Background(), NewRequest("GET", "https://api.example.com/users/7")))
	assert.False(t, rule.IsMatch(context.Background(), NewRequest("DELETE", "https://api.example.com/users/7")))
	assert.False(t, rule.IsMatch(context.Background(), NewRequest("GET", "https://api.example.com/users/me")))
}

func TestRuleStoreMatchFirstRuleWins(t *testing.T) {
	specific := mustParse(t, "a.tail", "GET\n/users/1\n201\n")
	generic := mustParse(t, "b.tail", "GET\n/users\n200\n")
	store := NewRuleStore([]*MockRule{specific, generic})

	res, err := store.Match("GET", "https://api.example.com/users/1")
	require.NoError(t, err)
	assert.Same(t, specific, res.Rule)
	assert.Equal(t, 201, res.Variant.StatusCode)

	res, err = store.Match("GET", "https://api.example.com/users/2")
	require.NoError(t, err)
	assert.Same(t, generic, res.Rule)

	// 顺序决定优先级，而非具体程度
	reversed := NewRuleStore([]*MockRule{generic, specific})
	res, err = reversed.Match("GET", "https://api.example.com/users/1")
	require.NoError(t, err)
	assert.Same(t, generic, res.Rule)
}

func TestRuleStoreNoMatch(t *testing.T) {
	store := NewRuleStore([]*MockRule{mustParse(t, "a.tail", "POST\n/login\n200\n")})

	res, err := store.Match("GET", "/login")
	assert.ErrorIs(t, err, ErrNoMatch)
	assert.Nil(t, res)

	var empty *RuleStore
	_, err = empty.Match("GET", "/login")
	assert.ErrorIs(t, err, ErrNoMatch)
	assert.Equal(t, 0, empty.Len())
}

func TestRuleStoreMatchAdvancesOnlyMatchedRule(t *testing.T) {
	a := mustParse(t, "a.tail", "GET\n/a\n200\n--\n500\n")
	b := mustParse(t, "b.tail", "GET\n/b\n200\n--\n503\n")
	store := NewRuleStore([]*MockRule{a, b})

	res, err := store.Match("GET", "/a")
	require.NoError(t, err)
	assert.Equal(t, 200, res.Variant.StatusCode)
	assert.Equal(t, 1, a.Cursor())
	assert.Equal(t, 0, b.Cursor())

	res, err = store.Match("GET", "/b")
	require.NoError(t, err)
	assert.Equal(t, 200, res.Variant.StatusCode)
	assert.Equal(t, 0, res.Index)
}

func TestRuleStoreConcurrentMatch(t *testing.T) {
	rule := mustParse(t, "pair.tail", "GET\n/pair\n200\n\nfirst\n--\n200\n\nsecond\n")
	store := NewRuleStore([]*MockRule{rule})

	const callers = 64
	var wg sync.WaitGroup
	bodies := make(chan string, callers)

	start := make(chan struct{})
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			res, err := store.Match("GET", "/pair")
			if err != nil {
				bodies <- err.Error()
				return
			}
			bodies <- string(res.Variant.Body)
		}()
	}
	close(start)
	wg.Wait()
	close(bodies)

	counts := map[string]int{}
	for body := range bodies {
		counts[body]++
	}
	assert.Equal(t, 1, counts["first"])
	assert.Equal(t, callers-1, counts["second\n"])
}

func TestRuleStoreSummaries(t *testing.T) {
	rule := mustParse(t, "mocks/a.tail", "GET\n/a\n200\n--\n404\n")
	store := NewRuleStore([]*MockRule{rule})
	_, _ = store.Match("GET", "/a")

	assert.Equal(t, []RuleSummary{{
		ID:            "a.tail",
		Source:        "mocks/a.tail",
		MethodPattern: "GET",
		URLPattern:    "/a",
		Variants:      2,
		Cursor:        1,
	}}, store.Summaries())
}
