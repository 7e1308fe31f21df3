package dsl

import (
	"bytes"
	"errors"
	"io"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// pointerEscaper escapes a key as a JSON pointer reference token (RFC 6901).
var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

type frameKind uint8

const (
	frameObject frameKind = iota
	frameArray
)

type dupFrame struct {
	kind         frameKind
	path         string
	keys         map[string]struct{}
	expectingKey bool
	index        int
}

// duplicateKeys scans a JSON document and returns the JSON pointer of every
// object key that appears more than once in its object. json.Unmarshal keeps
// the last occurrence silently; declaration documents must not.
func duplicateKeys(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var (
		stack []dupFrame
		dups  []string
	)
	// child returns the path of the value about to be read and advances the
	// enclosing frame.
	child := func() string {
		if len(stack) == 0 {
			return ""
		}
		top := &stack[len(stack)-1]
		if top.kind == frameArray {
			p := top.path + "/" + strconv.Itoa(top.index)
			top.index++
			return p
		}
		top.expectingKey = true
		return top.path
	}
	var pending string
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return dups, nil
		}
		if err != nil {
			return dups, err
		}
		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '{', '[':
				p := pending
				if len(stack) > 0 && stack[len(stack)-1].kind == frameArray {
					p = child()
				} else if len(stack) > 0 {
					stack[len(stack)-1].expectingKey = true
				}
				f := dupFrame{kind: frameArray, path: p}
				if v == '{' {
					f = dupFrame{kind: frameObject, path: p, keys: map[string]struct{}{}, expectingKey: true}
				}
				stack = append(stack, f)
			case '}', ']':
				stack = stack[:len(stack)-1]
			}
		case string:
			if len(stack) > 0 {
				top := &stack[len(stack)-1]
				if top.kind == frameObject && top.expectingKey {
					pending = top.path + "/" + pointerEscaper.Replace(v)
					if _, seen := top.keys[v]; seen {
						dups = append(dups, pending)
					}
					top.keys[v] = struct{}{}
					top.expectingKey = false
					continue
				}
			}
			child()
		default:
			child()
		}
	}
}
