package gorecord

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/gorecord/i18n"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeMissingField       = "missing_field"
	CodeUnknownField       = "unknown_field"
	CodeFrozen             = "frozen"
	CodeAmbiguousNesting   = "ambiguous_nesting"
	CodeForbiddenWrite     = "forbidden_write"
	CodeDefaultFailed      = "default_failed"
	CodeInvalidDeclaration = "invalid_declaration"
)

// Sentinel errors for errors.Is checks. An Issues value matches a sentinel when
// any of its entries carries the corresponding code.
var (
	ErrMissingField       = errors.New("gorecord: missing field")
	ErrUnknownField       = errors.New("gorecord: unknown field")
	ErrFrozen             = errors.New("gorecord: frozen")
	ErrAmbiguousNesting   = errors.New("gorecord: ambiguous nesting")
	ErrForbiddenWrite     = errors.New("gorecord: forbidden write")
	ErrInvalidDeclaration = errors.New("gorecord: invalid declaration")
)

var sentinelByCode = map[string]error{
	CodeMissingField:       ErrMissingField,
	CodeUnknownField:       ErrUnknownField,
	CodeFrozen:             ErrFrozen,
	CodeAmbiguousNesting:   ErrAmbiguousNesting,
	CodeForbiddenWrite:     ErrForbiddenWrite,
	CodeInvalidDeclaration: ErrInvalidDeclaration,
}

// Issue represents a single failure entry.
type Issue struct {
	Path    string // Field path (for example: /address/street).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints, type names, etc.
	Cause   error  // Optional: underlying error.
	// Params carries structured parameters (e.g., {"type":"Point"}) for i18n
	// and observability.
	Params map[string]any
}

// Issues is a collection of failures that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. missing_field at /foo
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Is reports whether any entry maps to target (one of the Err* sentinels).
func (iss Issues) Is(target error) bool {
	for _, it := range iss {
		if s, ok := sentinelByCode[it.Code]; ok && s == target {
			return true
		}
	}
	return false
}

// Unwrap exposes the causes of the entries so errors.Is/As can reach errors
// returned by computed defaults.
func (iss Issues) Unwrap() []error {
	var out []error
	for _, it := range iss {
		if it.Cause != nil {
			out = append(out, it.Cause)
		}
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// MissingFields lists every field reported as missing by err, in schema order.
func MissingFields(err error) []string {
	iss, ok := AsIssues(err)
	if !ok {
		return nil
	}
	var out []string
	for _, it := range iss {
		if it.Code == CodeMissingField {
			out = append(out, strings.TrimPrefix(it.Path, "/"))
		}
	}
	return out
}

// IssueAt creates an Issue for the given field with the translated message for code.
func IssueAt(field, code string, params map[string]any) Issue {
	data := map[string]string{"field": field}
	for k, v := range params {
		data[k] = fmt.Sprint(v)
	}
	return Issue{Path: fieldPath(field), Code: code, Message: i18n.T(code, data), Params: params}
}

func fieldPath(field string) string {
	if field == "" {
		return "/"
	}
	if strings.HasPrefix(field, "/") {
		return field
	}
	return "/" + field
}

// rebase prefixes each issue path with the given field, used when a nested
// construction fails inside a computed default.
func rebase(field string, iss Issues) Issues {
	out := make(Issues, 0, len(iss))
	base := fieldPath(field)
	for _, it := range iss {
		p := it.Path
		switch {
		case p == "" || p == "/":
			p = base
		case p[0] == '/':
			p = base + p
		default:
			p = base + "/" + p
		}
		it.Path = p
		out = append(out, it)
	}
	return out
}
