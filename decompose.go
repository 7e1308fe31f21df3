package gorecord

// Deconstruct returns the public keyword values in schema order, read
// through their readers. Protected and private keywords are skipped.
func (r *Record) Deconstruct() []any {
	out := make([]any, 0, len(r.typ.schema.names))
	for _, n := range r.typ.schema.names {
		if r.typ.Visibility(n) != Public {
			continue
		}
		out = append(out, r.Get(n))
	}
	return out
}

// DeconstructKeys returns public keyword values by name. A nil keys selects
// every public keyword; otherwise only the listed ones. Undeclared or
// non-public names are ignored, and an empty non-nil keys yields an empty map.
func (r *Record) DeconstructKeys(keys []string) map[string]any {
	if keys == nil {
		keys = r.typ.schema.names
	}
	out := make(map[string]any, len(keys))
	for _, k := range keys {
		if !r.typ.schema.Has(k) || r.typ.Visibility(k) != Public {
			continue
		}
		out[k] = r.Get(k)
	}
	return out
}
