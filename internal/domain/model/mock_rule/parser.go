package model

import (
	"encoding/base64"
	"fmt"
	"math"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go_tail_mock/utils"
)

const caseInsensitiveFlag = "(?i)"

// maxDelaySeconds keeps the delay representable as a time.Duration.
const maxDelaySeconds = float64(math.MaxInt64 / int64(time.Second))

// ParseRule parses the content of one rule file. source names the file in errors and logs.
//
// Layout:
//
//	GET                          method pattern, case-insensitive
//	https://api\.example\.com/a  URL pattern
//	200                          status code of the first response
//	#networkDelay: 0.5           optional delay directive
//	Content-Type: text/plain     headers, up to the first blank line
//
//	body text or base64:<data>
//	--
//	404                          next response, served on the following match
func ParseRule(source string, content []byte) (*MockRule, error) {
	text := strings.ReplaceAll(string(content), "\r\n", "\n")

	// 最后一个响应体的结尾换行保留
	lines := strings.Split(text, "\n")
	if len(lines) < minRuleLines {
		return nil, newInvalidRuleError(source, fmt.Sprintf("file must have at least %d lines", minRuleLines), nil)
	}

	methodPattern, err := regexp.Compile(caseInsensitiveFlag + strings.TrimSpace(lines[0]))
	if err != nil {
		return nil, newInvalidRuleError(source, fmt.Sprintf("invalid method pattern: %s", lines[0]), err)
	}
	urlPattern, err := regexp.Compile(strings.TrimSpace(lines[1]))
	if err != nil {
		return nil, newInvalidRuleError(source, fmt.Sprintf("invalid url pattern: %s", lines[1]), err)
	}

	var variants []*ResponseVariant
	for _, block := range splitBlocks(lines[2:]) {
		variant, err := parseBlock(source, block)
		if err != nil {
			return nil, err
		}
		if variant == nil {
			continue
		}
		variants = append(variants, variant)
	}

	if len(variants) == 0 {
		return nil, newInvalidRuleError(source, "no response variants found", nil)
	}

	rule := &MockRule{
		Source:        source,
		MethodPattern: methodPattern,
		URLPattern:    urlPattern,
		Variants:      variants,
	}
	if source != "" {
		rule.ID = filepath.Base(source)
	}
	return rule, nil
}

// splitBlocks cuts lines at separator lines. A blank line right before a
// separator is part of the separator.
func splitBlocks(lines []string) [][]string {
	var blocks [][]string
	var current []string
	for _, line := range lines {
		if line != BlockSeparator {
			current = append(current, line)
			continue
		}
		if n := len(current); n > 0 && isBlank(current[n-1]) {
			current = current[:n-1]
		}
		blocks = append(blocks, current)
		current = nil
	}
	return append(blocks, current)
}

// parseBlock returns nil without error for blocks that carry no status code.
func parseBlock(source string, lines []string) (*ResponseVariant, error) {
	i := 0
	for i < len(lines) && isBlank(lines[i]) {
		i++
	}
	if i == len(lines) {
		return nil, nil
	}

	status, err := strconv.Atoi(strings.TrimSpace(lines[i]))
	if err != nil {
		return nil, newInvalidRuleError(source, fmt.Sprintf("invalid status code: %s", lines[i]), err)
	}

	variant := &ResponseVariant{
		StatusCode: status,
		Headers:    make(map[string]string),
	}

	bodyStart := len(lines)
	for j := i + 1; j < len(lines); j++ {
		line := strings.TrimSpace(lines[j])
		if line == "" {
			bodyStart = j + 1
			break
		}
		parseHeaderLine(source, line, variant)
	}

	body := ""
	if bodyStart < len(lines) {
		body = strings.Join(lines[bodyStart:], "\n")
	}

	if strings.HasPrefix(body, Base64BodyPrefix) {
		payload := strings.TrimSpace(strings.TrimPrefix(body, Base64BodyPrefix))
		decoded, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, newInvalidRuleError(source, "invalid base64 data", err)
		}
		variant.Body = decoded
	} else {
		variant.Body = []byte(body)
	}

	return variant, nil
}

// parseHeaderLine treats #networkDelay as a reserved key; a real header with
// that name cannot be expressed.
func parseHeaderLine(source, line string, variant *ResponseVariant) {
	if rest, ok := strings.CutPrefix(line, DirectiveNetworkDelay); ok && strings.HasPrefix(rest, ":") {
		variant.Delay = parseDelay(source, strings.TrimSpace(rest[1:]))
		return
	}

	key, value, ok := strings.Cut(line, HeaderSeparator)
	if !ok {
		return
	}
	variant.Headers[key] = value
}

func parseDelay(source, value string) time.Duration {
	seconds, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(seconds) || seconds < 0 || seconds > maxDelaySeconds {
		utils.GetLogger().WithFields(map[string]interface{}{
			"source": source,
			"value":  value,
		}).Warn("invalid network delay directive, using no delay")
		return 0
	}
	return time.Duration(seconds * float64(time.Second))
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
