// Package query runs jq expressions over stored analytics payloads.
package query

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/itchyny/gojq"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCompiledCacheSize bounds the compiled-expression cache.
const DefaultCompiledCacheSize = 64

// Engine executes jq queries against JSON documents. Compiled expressions are
// cached.
type Engine struct {
	compiled *lru.Cache[string, *gojq.Code]
}

// NewEngine creates a query engine caching up to cacheSize compiled
// expressions. Non-positive sizes use DefaultCompiledCacheSize.
func NewEngine(cacheSize int) *Engine {
	if cacheSize <= 0 {
		cacheSize = DefaultCompiledCacheSize
	}
	c, _ := lru.New[string, *gojq.Code](cacheSize)
	return &Engine{compiled: c}
}

// Input is one labeled document.
type Input struct {
	Label string
	Data  []byte
}

// Options controls result collection.
type Options struct {
	Deduplicate bool
	// MaxResults stops collection once reached. Zero means unlimited.
	MaxResults int
}

// Result contains the values extracted by a query.
type Result struct {
	Values    []any    `json:"values"`
	Errors    []string `json:"errors,omitempty"`
	RawCount  int      `json:"raw_count"`
	Matched   []string `json:"matched,omitempty"`
	Truncated bool     `json:"truncated,omitempty"`
}

// Query runs expression against a single document.
func (e *Engine) Query(data []byte, expression string, opts Options) (*Result, error) {
	code, err := e.compile(expression)
	if err != nil {
		return nil, err
	}
	var input any
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("invalid JSON data: %w", err)
	}
	r := newRun(opts)
	r.exec(code, "payload", input)
	return r.result, nil
}

// QueryAll runs expression against every input. Invalid inputs and runtime
// errors are reported in Errors, each message once.
func (e *Engine) QueryAll(inputs []Input, expression string, opts Options) (*Result, error) {
	code, err := e.compile(expression)
	if err != nil {
		return nil, err
	}
	r := newRun(opts)
	for i, in := range inputs {
		if r.full() {
			r.result.Truncated = true
			break
		}
		label := in.Label
		if label == "" {
			label = fmt.Sprintf("payload[%d]", i)
		}
		var input any
		if err := json.Unmarshal(in.Data, &input); err != nil {
			r.addError(fmt.Sprintf("%s: invalid JSON: %v", label, err))
			continue
		}
		r.exec(code, label, input)
	}
	return r.result, nil
}

// Validate checks that expression parses and compiles.
func (e *Engine) Validate(expression string) error {
	_, err := e.compile(expression)
	return err
}

func (e *Engine) compile(expression string) (*gojq.Code, error) {
	if code, ok := e.compiled.Get(expression); ok {
		return code, nil
	}
	q, err := gojq.Parse(expression)
	if err != nil {
		var parseErr *gojq.ParseError
		if errors.As(err, &parseErr) {
			return nil, fmt.Errorf("invalid jq expression at position %d: %w", parseErr.Offset, err)
		}
		return nil, fmt.Errorf("invalid jq expression: %w", err)
	}
	code, err := gojq.Compile(q)
	if err != nil {
		return nil, fmt.Errorf("failed to compile jq expression: %w", err)
	}
	e.compiled.Add(expression, code)
	return code, nil
}

type run struct {
	opts       Options
	result     *Result
	seen       map[string]bool
	seenErrors map[string]bool
}

func newRun(opts Options) *run {
	return &run{
		opts:       opts,
		result:     &Result{Values: make([]any, 0)},
		seen:       make(map[string]bool),
		seenErrors: make(map[string]bool),
	}
}

func (r *run) full() bool {
	return r.opts.MaxResults > 0 && len(r.result.Values) >= r.opts.MaxResults
}

func (r *run) addError(msg string) {
	if !r.seenErrors[msg] {
		r.seenErrors[msg] = true
		r.result.Errors = append(r.result.Errors, msg)
	}
}

func (r *run) exec(code *gojq.Code, label string, input any) {
	matched := false
	iter := code.Run(input)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := v.(error); isErr {
			r.addError(formatJQError(label, err))
			continue
		}
		if v == nil {
			continue
		}
		if r.full() {
			r.result.Truncated = true
			break
		}

		r.result.RawCount++
		matched = true
		if r.opts.Deduplicate {
			key := valueKey(v)
			if r.seen[key] {
				continue
			}
			r.seen[key] = true
		}
		r.result.Values = append(r.result.Values, v)
	}
	if matched {
		r.result.Matched = append(r.result.Matched, label)
	}
}

// formatJQError decorates runtime errors with hints for common mistakes.
// gojq runtime errors are untyped, so hints come from message text.
func formatJQError(label string, err error) string {
	var haltErr *gojq.HaltError
	if errors.As(err, &haltErr) {
		if haltErr.Value() == nil {
			return fmt.Sprintf("%s: query halted", label)
		}
		return fmt.Sprintf("%s: query halted with: %v", label, haltErr.Value())
	}

	errStr := err.Error()
	var hint string
	switch {
	case strings.Contains(errStr, "cannot iterate over: null"):
		hint = " (the key path may not exist in this payload)"
	case strings.Contains(errStr, "cannot index") && strings.Contains(errStr, "with"):
		hint = " (key not found or wrong type)"
	case strings.Contains(errStr, "object") && strings.Contains(errStr, "cannot be iterated"):
		hint = " (payload levels are objects: use .[] or to_entries)"
	case strings.Contains(errStr, "array") && strings.Contains(errStr, "cannot be indexed"):
		hint = " (expected object but got array, try adding '[]')"
	}
	return fmt.Sprintf("%s: %s%s", label, errStr, hint)
}

// valueKey creates a string key for deduplication.
func valueKey(v any) string {
	switch val := v.(type) {
	case string:
		return "s:" + val
	case float64:
		return fmt.Sprintf("n:%v", val)
	case bool:
		return fmt.Sprintf("b:%v", val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("?:%v", val)
		}
		return "j:" + string(b)
	}
}
