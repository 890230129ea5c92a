package directive

// Set collects the directives found in one file, in source order.
type Set struct {
	items  []Directive
	byKind map[Kind][]int // kind -> indices into items
}

// NewSet creates an empty directive set.
func NewSet() *Set {
	return &Set{byKind: make(map[Kind][]int)}
}

// Add appends a directive.
func (s *Set) Add(d Directive) {
	s.byKind[d.Kind] = append(s.byKind[d.Kind], len(s.items))
	s.items = append(s.items, d)
}

// All returns every directive in source order.
func (s *Set) All() []Directive {
	return append([]Directive(nil), s.items...)
}

func (s *Set) Len() int { return len(s.items) }

// Filter returns directives of any of the given kinds, in source order.
// With no kinds it returns all of them.
func (s *Set) Filter(kinds ...Kind) []Directive {
	if len(kinds) == 0 {
		return s.All()
	}
	allowed := make(map[Kind]bool, len(kinds))
	for _, k := range kinds {
		allowed[k] = true
	}
	var out []Directive
	for _, d := range s.items {
		if allowed[d.Kind] {
			out = append(out, d)
		}
	}
	return out
}

// Version returns the #version number. GLSL ES sources without one are
// version 100.
func (s *Set) Version() (int, bool) {
	idx := s.byKind[KindVersion]
	if len(idx) == 0 {
		return 100, false
	}
	return s.items[idx[0]].Number, true
}

// Extensions returns the #extension lines in source order.
func (s *Set) Extensions() []Directive {
	out := make([]Directive, 0, len(s.byKind[KindExtension]))
	for _, i := range s.byKind[KindExtension] {
		out = append(out, s.items[i])
	}
	return out
}
