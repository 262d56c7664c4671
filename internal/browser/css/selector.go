package css

// SimpleSelector is one compound selector component: a type name, a
// class, an id, an attribute match, or a pseudo-class.
type SimpleSelector struct {
	Type       string // element tag, "" if none, "*" for universal
	Classes    []string
	ID         string
	AttrName   string
	AttrValue  string
	HasAttr    bool
	Pseudo     string // "hover", "first-child", "last-child", "nth-child"
	NthA       int    // nth-child(aN+b): a
	NthB       int    // nth-child(aN+b): b
	HasNth     bool
}

// Combinator connects one compound selector to the next one in a chain.
type Combinator int

const (
	CombDescendant Combinator = iota // whitespace
	CombChild                        // >
	CombAdjacent                      // +
)

// SelectorStep is one compound selector plus the combinator linking it
// to the NEXT step (CombDescendant on the last step is unused).
type SelectorStep struct {
	Simple      SimpleSelector
	Combinator  Combinator
}

// Selector is a chain of compound selectors; Steps[len-1] is the
// rightmost (subject) selector.
type Selector struct {
	Steps []SelectorStep
}

// Specificity returns (id-count, class/attr/pseudo-count, type-count)
// per the CSS specificity algorithm.
func (s Selector) Specificity() (a, b, c int) {
	for _, step := range s.Steps {
		ss := step.Simple
		if ss.ID != "" {
			a++
		}
		b += len(ss.Classes)
		if ss.HasAttr {
			b++
		}
		if ss.Pseudo != "" {
			b++
		}
		if ss.Type != "" && ss.Type != "*" {
			c++
		}
	}
	return
}

// specificityLess reports whether x has lower specificity than y
// (compared as a 3-tuple, most significant first).
func specificityLess(xa, xb, xc, ya, yb, yc int) bool {
	if xa != ya {
		return xa < ya
	}
	if xb != yb {
		return xb < yb
	}
	return xc < yc
}
