package css

import "testing"

func TestParseSimpleRule(t *testing.T) {
	sheet := Parse("p { color: red; margin: 5px; }")
	if len(sheet.Rules) != 1 {
		t.Fatalf("got %d rules: %+v", len(sheet.Rules), sheet.Rules)
	}
	rule := sheet.Rules[0]
	if len(rule.Selectors) != 1 || rule.Selectors[0].Steps[0].Simple.Type != "p" {
		t.Errorf("got selectors %+v", rule.Selectors)
	}
	if len(rule.Decls) != 2 {
		t.Fatalf("got %d decls: %+v", len(rule.Decls), rule.Decls)
	}
	if rule.Decls[0].Property != "color" || rule.Decls[0].Value != "red" {
		t.Errorf("got %+v", rule.Decls[0])
	}
}

func TestParseMultipleSelectorsShareBlock(t *testing.T) {
	sheet := Parse("h1, h2 { color: blue; }")
	if len(sheet.Rules[0].Selectors) != 2 {
		t.Fatalf("got %d selectors", len(sheet.Rules[0].Selectors))
	}
}

func TestParseClassAndIdSelectors(t *testing.T) {
	sheet := Parse(".card { color: red; } #main { color: blue; }")
	if sheet.Rules[0].Selectors[0].Steps[0].Simple.Classes[0] != "card" {
		t.Errorf("got %+v", sheet.Rules[0].Selectors[0])
	}
	if sheet.Rules[1].Selectors[0].Steps[0].Simple.ID != "main" {
		t.Errorf("got %+v", sheet.Rules[1].Selectors[0])
	}
}

func TestParseDescendantAndChildCombinators(t *testing.T) {
	sheet := Parse("div p { color: red; } div > span { color: blue; }")
	sel1 := sheet.Rules[0].Selectors[0]
	if len(sel1.Steps) != 2 || sel1.Steps[0].Combinator != CombDescendant {
		t.Errorf("got %+v", sel1)
	}
	sel2 := sheet.Rules[1].Selectors[0]
	if len(sel2.Steps) != 2 || sel2.Steps[0].Combinator != CombChild {
		t.Errorf("got %+v", sel2)
	}
}

func TestParseAttributeSelector(t *testing.T) {
	sheet := Parse(`a[href="x"] { color: green; }`)
	s := sheet.Rules[0].Selectors[0].Steps[0].Simple
	if !s.HasAttr || s.AttrName != "href" || s.AttrValue != "x" {
		t.Errorf("got %+v", s)
	}
}

func TestParseNthChildSelector(t *testing.T) {
	sheet := Parse("li:nth-child(2n+1) { color: red; }")
	s := sheet.Rules[0].Selectors[0].Steps[0].Simple
	if s.Pseudo != "nth-child" || !s.HasNth || s.NthA != 2 || s.NthB != 1 {
		t.Errorf("got %+v", s)
	}
}

func TestParseNthChildOddEven(t *testing.T) {
	sheet := Parse("li:nth-child(odd) { color: red; }")
	s := sheet.Rules[0].Selectors[0].Steps[0].Simple
	if s.NthA != 2 || s.NthB != 1 {
		t.Errorf("got %+v", s)
	}
}

func TestParseImportantDeclaration(t *testing.T) {
	sheet := Parse("p { color: red !important; }")
	if !sheet.Rules[0].Decls[0].Important {
		t.Error("expected !important to be parsed")
	}
	if sheet.Rules[0].Decls[0].Value != "red" {
		t.Errorf("got value %q", sheet.Rules[0].Decls[0].Value)
	}
}

func TestParseSkipsAtRules(t *testing.T) {
	sheet := Parse("@media screen { p { color: red; } } p { color: blue; }")
	if len(sheet.Rules) != 1 || sheet.Rules[0].Decls[0].Value != "blue" {
		t.Errorf("expected @media block skipped, got %+v", sheet.Rules)
	}
}

func TestExpandMarginShorthandFourValues(t *testing.T) {
	decls := ExpandShorthand(Declaration{Property: "margin", Value: "1px 2px 3px 4px"})
	want := map[string]string{
		"margin-top": "1px", "margin-right": "2px",
		"margin-bottom": "3px", "margin-left": "4px",
	}
	if len(decls) != 4 {
		t.Fatalf("got %d decls", len(decls))
	}
	for _, d := range decls {
		if want[d.Property] != d.Value {
			t.Errorf("got %s=%s", d.Property, d.Value)
		}
	}
}

func TestExpandMarginShorthandOneValue(t *testing.T) {
	decls := ExpandShorthand(Declaration{Property: "margin", Value: "10px"})
	for _, d := range decls {
		if d.Value != "10px" {
			t.Errorf("got %s=%s", d.Property, d.Value)
		}
	}
}

func TestExpandMarginShorthandTwoValues(t *testing.T) {
	decls := ExpandShorthand(Declaration{Property: "margin", Value: "5px 10px"})
	vals := map[string]string{}
	for _, d := range decls {
		vals[d.Property] = d.Value
	}
	if vals["margin-top"] != "5px" || vals["margin-bottom"] != "5px" {
		t.Errorf("got %+v", vals)
	}
	if vals["margin-left"] != "10px" || vals["margin-right"] != "10px" {
		t.Errorf("got %+v", vals)
	}
}

func TestExpandBorderShorthand(t *testing.T) {
	decls := ExpandShorthand(Declaration{Property: "border", Value: "1px solid red"})
	vals := map[string]string{}
	for _, d := range decls {
		vals[d.Property] = d.Value
	}
	if vals["border-width"] != "1px" || vals["border-style"] != "solid" || vals["border-color"] != "red" {
		t.Errorf("got %+v", vals)
	}
}
