package css

import (
	"strings"

	"github.com/oasis-os/oasis/internal/browser/dom"
)

// ComputedStyle is the fully resolved set of property values for one
// DOM element: no inheritance pending, every property either explicit
// or defaulted.
type ComputedStyle struct {
	Values map[string]string
}

// Get returns a property's resolved value, or "" if unset.
func (c ComputedStyle) Get(prop string) string {
	return c.Values[prop]
}

// inheritedProperties propagate from parent to child when unset on the
// child; every other property resets to its initial value.
var inheritedProperties = map[string]bool{
	"color": true, "font-size": true, "font-family": true,
	"font-weight": true, "font-style": true, "text-align": true,
	"line-height": true, "white-space": true, "text-transform": true,
	"list-style-type": true, "visibility": true,
}

// initialValues gives each property's documented initial value.
var initialValues = map[string]string{
	"display":         "inline",
	"color":           "black",
	"background-color": "transparent",
	"font-size":       "16px",
	"font-weight":     "normal",
	"font-style":      "normal",
	"text-align":      "left",
	"white-space":     "normal",
	"text-transform":  "none",
	"float":           "none",
	"clear":           "none",
	"position":        "static",
	"list-style-type": "disc",
	"visibility":      "visible",
}

// ResolveStyle computes nodeIdx's ComputedStyle: matches sheet rules in
// cascade order (lowest precedence first so later declarations win),
// applies !important overrides last, then fills in inheritance and
// initial values for anything left unset.
func ResolveStyle(sheet Stylesheet, doc *dom.Document, nodeIdx int, parent *ComputedStyle) ComputedStyle {
	var normal, important []struct {
		decl      Declaration
		specA, specB, specC, order int
	}

	for _, rule := range sheet.Rules {
		matched := false
		for _, sel := range rule.Selectors {
			if selectorMatches(sel, doc, nodeIdx) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		bestA, bestB, bestC := 0, 0, 0
		for _, sel := range rule.Selectors {
			if selectorMatches(sel, doc, nodeIdx) {
				a, b, c := sel.Specificity()
				if specificityLess(bestA, bestB, bestC, a, b, c) {
					bestA, bestB, bestC = a, b, c
				}
			}
		}

		for _, d := range rule.Decls {
			for _, longhand := range ExpandShorthand(d) {
				entry := struct {
					decl                        Declaration
					specA, specB, specC, order int
				}{longhand, bestA, bestB, bestC, rule.Order}
				if longhand.Important {
					important = append(important, entry)
				} else {
					normal = append(normal, entry)
				}
			}
		}
	}

	sortByCascadeKey(normal)
	sortByCascadeKey(important)

	values := map[string]string{}
	for _, e := range normal {
		values[e.decl.Property] = e.decl.Value
	}
	for _, e := range important {
		values[e.decl.Property] = e.decl.Value
	}

	final := map[string]string{}
	for prop := range initialValues {
		final[prop] = initialValues[prop]
	}
	if parent != nil {
		for prop := range inheritedProperties {
			if v, ok := parent.Values[prop]; ok {
				final[prop] = v
			}
		}
	}
	for prop, v := range values {
		final[prop] = v
	}

	return ComputedStyle{Values: final}
}

func sortByCascadeKey(entries []struct {
	decl                        Declaration
	specA, specB, specC, order int
}) {
	// Insertion sort: ascending by (specA, specB, specC, order), so a
	// later pass over `values[prop]=...` lets the highest-precedence
	// entry win (later assignment overwrites earlier).
	for i := 1; i < len(entries); i++ {
		j := i
		for j > 0 && cascadeLess(entries[j], entries[j-1]) {
			entries[j], entries[j-1] = entries[j-1], entries[j]
			j--
		}
	}
}

func cascadeLess(x, y struct {
	decl                        Declaration
	specA, specB, specC, order int
}) bool {
	if x.specA != y.specA {
		return x.specA < y.specA
	}
	if x.specB != y.specB {
		return x.specB < y.specB
	}
	if x.specC != y.specC {
		return x.specC < y.specC
	}
	return x.order < y.order
}

// selectorMatches reports whether sel matches the element at nodeIdx.
func selectorMatches(sel Selector, doc *dom.Document, nodeIdx int) bool {
	if len(sel.Steps) == 0 {
		return false
	}
	return matchChain(sel.Steps, len(sel.Steps)-1, doc, nodeIdx)
}

func matchChain(steps []SelectorStep, stepIdx int, doc *dom.Document, nodeIdx int) bool {
	if !matchSimple(steps[stepIdx].Simple, doc, nodeIdx) {
		return false
	}
	if stepIdx == 0 {
		return true
	}
	comb := steps[stepIdx-1].Combinator
	switch comb {
	case CombChild:
		parent := doc.Node(nodeIdx).Parent
		if parent < 0 {
			return false
		}
		return matchChain(steps, stepIdx-1, doc, parent)
	case CombAdjacent:
		prev := previousSibling(doc, nodeIdx)
		if prev < 0 {
			return false
		}
		return matchChain(steps, stepIdx-1, doc, prev)
	default: // descendant
		for p := doc.Node(nodeIdx).Parent; p >= 0; p = doc.Node(p).Parent {
			if matchChain(steps, stepIdx-1, doc, p) {
				return true
			}
		}
		return false
	}
}

func previousSibling(doc *dom.Document, nodeIdx int) int {
	n := doc.Node(nodeIdx)
	if n.Parent < 0 {
		return -1
	}
	siblings := doc.Node(n.Parent).Children
	for i, c := range siblings {
		if c == nodeIdx {
			if i == 0 {
				return -1
			}
			return siblings[i-1]
		}
	}
	return -1
}

func matchSimple(s SimpleSelector, doc *dom.Document, nodeIdx int) bool {
	n := doc.Node(nodeIdx)
	if n == nil || n.Kind != dom.KindElement {
		return false
	}
	if s.Type != "" && s.Type != "*" && n.Tag != s.Type {
		return false
	}
	if s.ID != "" {
		id, ok := n.Attr("id")
		if !ok || id != s.ID {
			return false
		}
	}
	for _, class := range s.Classes {
		classAttr, _ := n.Attr("class")
		if !hasClass(classAttr, class) {
			return false
		}
	}
	if s.HasAttr {
		v, ok := n.Attr(s.AttrName)
		if !ok {
			return false
		}
		if s.AttrValue != "" && v != s.AttrValue {
			return false
		}
	}
	if s.Pseudo != "" {
		if !matchPseudo(s, doc, nodeIdx) {
			return false
		}
	}
	return true
}

func hasClass(classAttr, class string) bool {
	for _, c := range strings.Fields(classAttr) {
		if c == class {
			return true
		}
	}
	return false
}

func matchPseudo(s SimpleSelector, doc *dom.Document, nodeIdx int) bool {
	switch s.Pseudo {
	case "hover":
		// Static layout/style resolution has no pointer state; :hover
		// never matches outside an interactive session.
		return false
	case "first-child":
		return elementIndexAmongSiblings(doc, nodeIdx) == 0
	case "last-child":
		idx := elementIndexAmongSiblings(doc, nodeIdx)
		return idx >= 0 && idx == elementSiblingCount(doc, nodeIdx)-1
	case "nth-child":
		idx := elementIndexAmongSiblings(doc, nodeIdx)
		if idx < 0 {
			return false
		}
		return matchesNth(idx+1, s.NthA, s.NthB)
	default:
		return false
	}
}

func elementIndexAmongSiblings(doc *dom.Document, nodeIdx int) int {
	n := doc.Node(nodeIdx)
	if n.Parent < 0 {
		return 0
	}
	count := 0
	for _, c := range doc.Node(n.Parent).Children {
		if doc.Node(c).Kind != dom.KindElement {
			continue
		}
		if c == nodeIdx {
			return count
		}
		count++
	}
	return -1
}

func elementSiblingCount(doc *dom.Document, nodeIdx int) int {
	n := doc.Node(nodeIdx)
	if n.Parent < 0 {
		return 1
	}
	count := 0
	for _, c := range doc.Node(n.Parent).Children {
		if doc.Node(c).Kind == dom.KindElement {
			count++
		}
	}
	return count
}

// matchesNth reports whether position (1-based) satisfies an+b.
func matchesNth(position, a, b int) bool {
	if a == 0 {
		return position == b
	}
	diff := position - b
	if diff%a != 0 {
		return false
	}
	return diff/a >= 0
}
