package gorecord

// Schema is the ordered keyword registry of one record type. Order is
// insertion order, except that registering an existing name moves it to the
// end.
type Schema struct {
	names    []string
	defaults map[string]Default
}

// NewSchema returns an empty schema.
func NewSchema() *Schema {
	return &Schema{defaults: map[string]Default{}}
}

// Register inserts or replaces name. A redeclared name lands at the end of
// the order.
func (s *Schema) Register(name string, d Default) {
	if _, ok := s.defaults[name]; ok {
		for i, n := range s.names {
			if n == name {
				s.names = append(s.names[:i], s.names[i+1:]...)
				break
			}
		}
	}
	s.names = append(s.names, name)
	s.defaults[name] = d
}

// Duplicate returns an independent copy with the same order. Eager default
// values are duplicated as well.
func (s *Schema) Duplicate() *Schema {
	out := &Schema{
		names:    append([]string(nil), s.names...),
		defaults: make(map[string]Default, len(s.defaults)),
	}
	for k, d := range s.defaults {
		out.defaults[k] = d.dup()
	}
	return out
}

// Fields returns keyword names in declared order.
func (s *Schema) Fields() []string {
	return append([]string(nil), s.names...)
}

// Lookup returns the descriptor for name or an unknown_field issue.
func (s *Schema) Lookup(name string) (Default, error) {
	d, ok := s.defaults[name]
	if !ok {
		return Default{}, Issues{IssueAt(name, CodeUnknownField, nil)}
	}
	return d, nil
}

// Has reports whether name is declared.
func (s *Schema) Has(name string) bool {
	_, ok := s.defaults[name]
	return ok
}

// Len returns the number of keywords.
func (s *Schema) Len() int { return len(s.names) }

// Required returns the names without a default, in declared order.
func (s *Schema) Required() []string {
	var out []string
	for _, n := range s.names {
		if !s.defaults[n].Optional() {
			out = append(out, n)
		}
	}
	return out
}
