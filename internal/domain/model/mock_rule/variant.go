package model

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// ResponseVariant is one concrete response within a rule. It is never mutated after parsing.
type ResponseVariant struct {
	StatusCode int
	Headers    map[string]string // 按原样保留大小写
	Body       []byte
	Delay      time.Duration
}

var _ ResponseInfo = (*ResponseVariant)(nil)

func (v *ResponseVariant) GetStatus() int {
	return v.StatusCode
}

func (v *ResponseVariant) GetHeaders() map[string]string {
	return v.Headers
}

func (v *ResponseVariant) GetBody() []byte {
	return v.Body
}

func (v *ResponseVariant) GetDelay() time.Duration {
	return v.Delay
}

// IsText reports whether the body can be treated as text for placeholder substitution.
func (v *ResponseVariant) IsText() bool {
	return utf8.Valid(v.Body)
}

func (v *ResponseVariant) String() string {
	return fmt.Sprintf("Status: %d, Headers: %v, Body: %d bytes, Delay: %v",
		v.StatusCode,
		v.Headers,
		len(v.Body),
		v.Delay)
}
