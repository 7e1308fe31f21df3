package dsl

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	gorecord "github.com/reoring/gorecord"
	"gopkg.in/yaml.v3"
)

// LoadYAML declares the record types described by a (multi-document) YAML
// stream into reg. Each document is either a single type declaration or a
// mapping with a "types" list. Types are declared in document order, so
// "extends" may refer to a type declared earlier in the same stream.
//
// A type declaration looks like:
//
//	name: Order
//	extends: Base        # optional, a type already in reg
//	unknown: strip       # optional, strict (default) or strip
//	keywords:
//	  - name: id                   # required keyword
//	  - name: tags
//	    default: []                # eager default
//	  - name: label
//	    copy_of: id                # computed: value of another keyword
//	  - name: secret
//	    visibility: private
//	  - name: address
//	    construct: true            # computed: new record of the nested type
//	    nested:
//	      name: Address            # optional, defaults to Camelize(keyword)
//	      keywords:
//	        - name: city
//	          default: Tokyo
func LoadYAML(reg *gorecord.Registry, data []byte) ([]*gorecord.Type, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var out []*gorecord.Type
	for {
		var node any
		if err := dec.Decode(&node); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return out, err
		}
		ts, err := declareDocument(reg, yamlNormalizeValue(node), "")
		out = append(out, ts...)
		if err != nil {
			return out, err
		}
	}
	return out, nil
}

// LoadJSON is LoadYAML for JSON input: a single declaration, an array of
// declarations, or an object with a "types" array. Repeated object keys are
// rejected, as yaml.v3 does for YAML mappings.
func LoadJSON(reg *gorecord.Registry, data []byte) ([]*gorecord.Type, error) {
	dups, err := duplicateKeys(data)
	if err != nil {
		return nil, err
	}
	if len(dups) > 0 {
		var iss gorecord.Issues
		for _, p := range dups {
			it := gorecord.IssueAt(p, gorecord.CodeInvalidDeclaration, nil)
			it.Hint = "duplicate key"
			iss = gorecord.AppendIssues(iss, it)
		}
		return nil, iss
	}
	var node any
	if err := json.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	return declareDocument(reg, node, "")
}

// LoadFile dispatches on the file extension (.yaml, .yml or .json).
func LoadFile(reg *gorecord.Registry, path string) ([]*gorecord.Type, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LoadJSON(reg, data)
	case ".yaml", ".yml":
		return LoadYAML(reg, data)
	}
	return nil, fmt.Errorf("dsl: unsupported declaration file extension %q", filepath.Ext(path))
}

func declareDocument(reg *gorecord.Registry, node any, at string) ([]*gorecord.Type, error) {
	switch t := node.(type) {
	case nil:
		return nil, nil
	case []any:
		var out []*gorecord.Type
		for i, item := range t {
			m, ok := item.(map[string]any)
			if !ok {
				return out, declIssue(fmt.Sprintf("%s/%d", at, i), "type declaration must be a mapping")
			}
			typ, err := declareType(reg, m, fmt.Sprintf("%s/%d", at, i))
			if err != nil {
				return out, err
			}
			out = append(out, typ)
		}
		return out, nil
	case map[string]any:
		if list, ok := t["types"]; ok {
			return declareDocument(reg, list, at+"/types")
		}
		typ, err := declareType(reg, t, at)
		if err != nil {
			return nil, err
		}
		return []*gorecord.Type{typ}, nil
	}
	return nil, declIssue(at+"/", "declaration document must be a mapping or a list")
}

func declareType(reg *gorecord.Registry, m map[string]any, at string) (*gorecord.Type, error) {
	name, _ := m["name"].(string)
	if name == "" {
		return nil, declIssue(at+"/name", "type name missing")
	}
	var b *Builder
	if ext, _ := m["extends"].(string); ext != "" {
		base, ok := reg.Lookup(ext)
		if !ok {
			return nil, declIssue(at+"/extends", "unknown base type "+ext)
		}
		b = Extend(base, name)
	} else {
		b = DefineIn(reg, name)
	}
	if u, _ := m["unknown"].(string); u != "" {
		b.t.SetUnknownPolicy(gorecord.ParseUnknownPolicy(u))
	}
	if err := declareKeywords(b, m["keywords"], at+"/keywords"); err != nil {
		return nil, err
	}
	return b.Build()
}

// declareKeywords declares the keyword list found at JSON pointer at.
func declareKeywords(b *Builder, raw any, at string) error {
	if raw == nil {
		return nil
	}
	list, ok := raw.([]any)
	if !ok {
		return declIssue(at, "keywords must be a list")
	}
	for i, item := range list {
		kw, ok := item.(map[string]any)
		if !ok {
			return declIssue(fmt.Sprintf("%s/%d", at, i), "keyword must be a mapping")
		}
		name, _ := kw["name"].(string)
		if name == "" {
			return declIssue(fmt.Sprintf("%s/%d/name", at, i), "keyword name missing")
		}
		opts, err := keywordOpts(fmt.Sprintf("%s/%d", at, i), kw)
		if err != nil {
			return err
		}
		if nested, ok := kw["nested"].(map[string]any); ok {
			if n, _ := nested["name"].(string); n != "" {
				opts = append(opts, As(n))
			}
			var inner error
			b.Nest(name, func(nb *Builder) {
				inner = declareKeywords(nb, nested["keywords"], fmt.Sprintf("%s/%d/nested/keywords", at, i))
			}, opts...)
			if inner != nil {
				return inner
			}
			continue
		}
		b.Keyword(name, opts...)
	}
	return nil
}

func keywordOpts(at string, kw map[string]any) ([]KeywordOpt, error) {
	var opts []KeywordOpt
	if v, ok := kw["default"]; ok {
		opts = append(opts, Default(v))
	}
	if src, _ := kw["copy_of"].(string); src != "" {
		opts = append(opts, Computed(copyOf(src)))
	}
	switch c := kw["construct"].(type) {
	case bool:
		if c {
			opts = append(opts, Construct(nil))
		}
	case map[string]any:
		opts = append(opts, Construct(gorecord.Values(c)))
	}
	if vis, ok := kw["visibility"].(string); ok {
		v, known := gorecord.ParseVisibility(vis)
		if !known {
			return nil, declIssue(at+"/visibility", "unknown visibility "+vis)
		}
		opts = append(opts, Visibility(v))
	}
	return opts, nil
}

// copyOf computes a keyword from the value of another one.
func copyOf(src string) gorecord.Computation {
	return func(self gorecord.View) (any, error) {
		return gorecord.DupValue(self.Get(src)), nil
	}
}

func declIssue(path, hint string) error {
	it := gorecord.IssueAt(path, gorecord.CodeInvalidDeclaration, nil)
	it.Hint = hint
	return gorecord.Issues{it}
}

// yamlNormalizeValue converts YAML-decoded values (which may contain
// map[any]any) into JSON-like values recursively.
func yamlNormalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = yamlNormalizeValue(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[fmt.Sprint(k)] = yamlNormalizeValue(vv)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = yamlNormalizeValue(t[i])
		}
		return out
	default:
		return v
	}
}
