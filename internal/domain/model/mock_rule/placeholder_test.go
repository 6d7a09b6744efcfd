package model

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubstitute(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		values map[string]string
		want   string
	}{
		{
			name:   "all set",
			text:   "Hello {{username}}, id {{userId}}",
			values: map[string]string{"username": "John Doe", "userId": "123"},
			want:   "Hello John Doe, id 123",
		},
		{
			name:   "unset token kept",
			text:   "Hello {{username}}, id {{userId}}",
			values: map[string]string{"username": "John Doe"},
			want:   "Hello John Doe, id {{userId}}",
		},
		{
			name:   "repeated token",
			text:   "{{a}}-{{a}}-{{a}}",
			values: map[string]string{"a": "x"},
			want:   "x-x-x",
		},
		{
			name:   "values are not expanded again",
			text:   "{{a}} {{b}}",
			values: map[string]string{"a": "{{b}}", "b": "{{a}}"},
			want:   "{{b}} {{a}}",
		},
		{
			name:   "no values",
			text:   "{{a}}",
			values: nil,
			want:   "{{a}}",
		},
		{
			name:   "overlapping names resolve to the shortest token",
			text:   "{{a}}} {{a}}",
			values: map[string]string{"a": "x", "a}": "y"},
			want:   "x} x",
		},
		{
			name:   "extra braces around a token",
			text:   "{{{a}}}",
			values: map[string]string{"a": "x"},
			want:   "{x}",
		},
		{
			name:   "empty name",
			text:   "{{}} {{a}}",
			values: map[string]string{"": "e", "a": "x"},
			want:   "e x",
		},
		{
			name:   "spaces are part of the name",
			text:   "{{ a }} {{a}}",
			values: map[string]string{"a": "x"},
			want:   "{{ a }} x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// 结果不应依赖 map 遍历顺序
			for i := 0; i < 20; i++ {
				assert.Equal(t, tt.want, Substitute(tt.text, tt.values))
			}
		})
	}
}

func TestPlaceholderTable(t *testing.T) {
	initial := map[string]string{"username": "John Doe"}
	table := NewPlaceholderTable(initial)
	initial["username"] = "changed"

	v, ok := table.Get("username")
	assert.True(t, ok)
	assert.Equal(t, "John Doe", v)

	table.Set("userId", "123")
	assert.Equal(t, `{"name": "John Doe", "id": 123}`, table.Substitute(`{"name": "{{username}}", "id": {{userId}}}`))

	table.Delete("userId")
	_, ok = table.Get("userId")
	assert.False(t, ok)

	snapshot := table.Snapshot()
	snapshot["username"] = "mutated"
	v, _ = table.Get("username")
	assert.Equal(t, "John Doe", v)
}

func TestPlaceholderTableConcurrentAccess(t *testing.T) {
	table := NewPlaceholderTable(nil)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			table.Set(fmt.Sprintf("k%d", i%4), fmt.Sprintf("v%d", i))
		}(i)
		go func() {
			defer wg.Done()
			_ = table.Substitute("{{k0}} {{k1}} {{k2}} {{k3}}")
		}()
	}
	wg.Wait()

	assert.Len(t, table.Snapshot(), 4)
}
