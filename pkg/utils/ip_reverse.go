package utils

import (
	"fmt"
	"strings"
)

// ReverseKind tags the outcome of ReverseIPv4.
type ReverseKind int

const (
	Reversed ReverseKind = iota
	InvalidFormat
	InternalError
)

func (k ReverseKind) String() string {
	switch k {
	case Reversed:
		return "reversed"
	case InvalidFormat:
		return "invalid_format"
	case InternalError:
		return "internal_error"
	default:
		return "unknown"
	}
}

// ReverseResult is the outcome of reversing an address. Every kind renders to
// a displayable string, so callers never have to branch to build a response.
type ReverseResult struct {
	Kind  ReverseKind
	Input string
	Value string
	Err   error // set only for InternalError
}

func (r ReverseResult) String() string {
	return r.Value
}

// splitSegments is replaced in tests to force the recovery path.
var splitSegments = strings.Split

// ReverseIPv4 reverses the dot-separated segments of addr when there are
// exactly four of them. Segments are not checked to be numeric octets, so
// "a.b.c.d" becomes "d.c.b.a".
func ReverseIPv4(addr string) (res ReverseResult) {
	defer func() {
		if r := recover(); r != nil {
			res = ReverseResult{
				Kind:  InternalError,
				Input: addr,
				Value: "Error processing IP: " + addr,
				Err:   fmt.Errorf("reverse %q: %v", addr, r),
			}
		}
	}()

	// Segment count is the only check.
	segments := splitSegments(addr, ".")
	if len(segments) != 4 {
		return ReverseResult{
			Kind:  InvalidFormat,
			Input: addr,
			Value: "Invalid IP format: " + addr,
		}
	}

	segments[0], segments[1], segments[2], segments[3] = segments[3], segments[2], segments[1], segments[0]
	return ReverseResult{
		Kind:  Reversed,
		Input: addr,
		Value: strings.Join(segments, "."),
	}
}
