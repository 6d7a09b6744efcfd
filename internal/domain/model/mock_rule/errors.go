package model

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRule marks a malformed rule file. Loading a directory stops at the first one.
	ErrInvalidRule = errors.New("invalid rule file")
	// ErrNoMatch is returned when no loaded rule matches a request.
	ErrNoMatch = errors.New("no matching mock rule")
)

// InvalidRuleError describes why a rule file could not be parsed.
type InvalidRuleError struct {
	Source string // 规则文件路径
	Reason string
	Err    error
}

func newInvalidRuleError(source, reason string, err error) *InvalidRuleError {
	return &InvalidRuleError{Source: source, Reason: reason, Err: err}
}

func (e *InvalidRuleError) Error() string {
	msg := fmt.Sprintf("%s: %s", ErrInvalidRule, e.Reason)
	if e.Source != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Source)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *InvalidRuleError) Is(target error) bool {
	return target == ErrInvalidRule
}

func (e *InvalidRuleError) Unwrap() error {
	return e.Err
}
