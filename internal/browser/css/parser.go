package css

import "strings"

// Declaration is one property:value pair, with CSS's trailing
// "!important" flag stripped out into Important.
type Declaration struct {
	Property  string
	Value     string
	Important bool
}

// Rule is a selector list sharing one declaration block.
type Rule struct {
	Selectors []Selector
	Decls     []Declaration
	Order     int // source order, for cascade tie-breaking
}

// Stylesheet is an ordered list of rules.
type Stylesheet struct {
	Rules []Rule
}

// Parse splits a CSS source into rules by brace-balancing the raw
// source (comments and strings are skipped so braces inside them don't
// confuse the split), then parses each rule's selector list and
// declaration block.
func Parse(input string) Stylesheet {
	var sheet Stylesheet
	i := 0
	order := 0
	for i < len(input) {
		braceStart := indexOfBraceOutsideCommentsAndStrings(input, i)
		if braceStart < 0 {
			break
		}
		selectorText := input[i:braceStart]
		braceEnd := matchingCloseBrace(input, braceStart)
		if braceEnd < 0 {
			break
		}
		declText := input[braceStart+1 : braceEnd]

		selText := strings.TrimSpace(selectorText)
		if selText != "" && !strings.HasPrefix(selText, "@") {
			rule := Rule{
				Selectors: parseSelectorList(selText),
				Decls:     parseDeclarations(declText),
				Order:     order,
			}
			sheet.Rules = append(sheet.Rules, rule)
			order++
		}
		i = braceEnd + 1
	}
	return sheet
}

func indexOfBraceOutsideCommentsAndStrings(s string, from int) int {
	inString := byte(0)
	i := from
	for i < len(s) {
		c := s[i]
		if inString != 0 {
			if c == '\\' {
				i += 2
				continue
			}
			if c == inString {
				inString = 0
			}
			i++
			continue
		}
		switch {
		case c == '"' || c == '\'':
			inString = c
		case c == '/' && i+1 < len(s) && s[i+1] == '*':
			end := strings.Index(s[i+2:], "*/")
			if end < 0 {
				return -1
			}
			i += 2 + end + 2
			continue
		case c == '{':
			return i
		}
		i++
	}
	return -1
}

func matchingCloseBrace(s string, openIdx int) int {
	depth := 0
	inString := byte(0)
	for i := openIdx; i < len(s); i++ {
		c := s[i]
		if inString != 0 {
			if c == '\\' {
				i++
				continue
			}
			if c == inString {
				inString = 0
			}
			continue
		}
		if c == '/' && i+1 < len(s) && s[i+1] == '*' {
			end := strings.Index(s[i+2:], "*/")
			if end < 0 {
				return -1
			}
			i += 2 + end + 1
			continue
		}
		switch c {
		case '"', '\'':
			inString = c
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// parseSelectorList splits a comma-separated selector list and parses
// each selector chain.
func parseSelectorList(s string) []Selector {
	var out []Selector
	for _, part := range splitTopLevelComma(s) {
		sel := parseSelector(strings.TrimSpace(part))
		if len(sel.Steps) > 0 {
			out = append(out, sel)
		}
	}
	return out
}

func splitTopLevelComma(s string) []string {
	var parts []string
	depth := 0
	last := 0
	for i, c := range s {
		switch c {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[last:i])
				last = i + 1
			}
		}
	}
	parts = append(parts, s[last:])
	return parts
}

// parseSelector parses one selector chain, e.g. "div.card > p.intro".
func parseSelector(s string) Selector {
	toks := Tokenize(s)
	var steps []SelectorStep
	var cur SimpleSelector
	curStarted := false

	flush := func() {
		if curStarted {
			steps = append(steps, SelectorStep{Simple: cur, Combinator: CombDescendant})
			cur = SimpleSelector{}
			curStarted = false
		}
	}
	// setCombinator stores comb on the step left of it, which is where
	// SelectorStep keeps the link to the next step.
	setCombinator := func(comb Combinator) {
		if len(steps) > 0 {
			steps[len(steps)-1].Combinator = comb
		}
	}

	i := 0
	for i < len(toks) {
		tok := toks[i]
		switch tok.Kind {
		case TokEOF:
			i++
			continue
		case TokWhitespace:
			if curStarted {
				flush()
			}
			i++
			continue
		case TokGreater:
			flush()
			setCombinator(CombChild)
			i++
			continue
		case TokPlus:
			flush()
			setCombinator(CombAdjacent)
			i++
			continue
		case TokStar:
			cur.Type = "*"
			curStarted = true
			i++
			continue
		case TokIdent:
			cur.Type = tok.Str
			curStarted = true
			i++
			continue
		case TokDot:
			if i+1 < len(toks) && toks[i+1].Kind == TokIdent {
				cur.Classes = append(cur.Classes, toks[i+1].Str)
				curStarted = true
				i += 2
				continue
			}
			i++
			continue
		case TokHash:
			cur.ID = tok.Str
			curStarted = true
			i++
			continue
		case TokOpenBracket:
			name, value, hasValue, consumed := parseAttrSelector(toks, i)
			cur.AttrName = name
			cur.AttrValue = value
			cur.HasAttr = true
			_ = hasValue
			curStarted = true
			i += consumed
			continue
		case TokColon:
			name, consumed := parseNthOrPseudo(toks, i, &cur)
			cur.Pseudo = name
			curStarted = true
			i += consumed
			continue
		default:
			i++
		}
	}
	flush()
	return Selector{Steps: steps}
}

func parseAttrSelector(toks []Token, openIdx int) (name, value string, hasValue bool, consumed int) {
	i := openIdx + 1
	for i < len(toks) && toks[i].Kind == TokWhitespace {
		i++
	}
	if i < len(toks) && toks[i].Kind == TokIdent {
		name = toks[i].Str
		i++
	}
	for i < len(toks) && toks[i].Kind == TokWhitespace {
		i++
	}
	if i < len(toks) && toks[i].Kind == TokDelim {
		i++ // '='
		for i < len(toks) && toks[i].Kind == TokWhitespace {
			i++
		}
		if i < len(toks) && (toks[i].Kind == TokString || toks[i].Kind == TokIdent) {
			value = toks[i].Str
			hasValue = true
			i++
		}
	}
	for i < len(toks) && toks[i].Kind != TokCloseBracket && toks[i].Kind != TokEOF {
		i++
	}
	if i < len(toks) && toks[i].Kind == TokCloseBracket {
		i++
	}
	return name, value, hasValue, i - openIdx
}

// parseNthOrPseudo handles ":hover", ":first-child", ":last-child",
// and ":nth-child(odd|even|N)".
func parseNthOrPseudo(toks []Token, colonIdx int, cur *SimpleSelector) (name string, consumed int) {
	i := colonIdx + 1
	if i < len(toks) && toks[i].Kind == TokFunction && toks[i].Str == "nth-child" {
		i++
		argStart := i
		for i < len(toks) && toks[i].Kind != TokCloseParen && toks[i].Kind != TokEOF {
			i++
		}
		a, b := parseNthTokens(toks[argStart:i])
		cur.NthA, cur.NthB, cur.HasNth = a, b, true
		if i < len(toks) && toks[i].Kind == TokCloseParen {
			i++
		}
		return "nth-child", i - colonIdx
	}
	if i < len(toks) && toks[i].Kind == TokIdent {
		name = toks[i].Str
		i++
	}
	return name, i - colonIdx
}

// parseNthTokens parses the argument tokens of "nth-child(...)" into the
// (a, b) coefficients of the an+b form. Handles "odd", "even", a bare
// "n"/"-n"/dimension coefficient, and an optional trailing "+N"/"-N". The
// tokenizer keeps a "-N" written directly after the "n" in the same token
// ("2n-1" is Dimension(2, "n-1"), "n-1" is Ident("n-1")), so that suffix
// is split off here; a separate trailing term is accepted as a number or
// an ident.
func parseNthTokens(toks []Token) (a, b int) {
	var ts []Token
	for _, t := range toks {
		if t.Kind != TokWhitespace {
			ts = append(ts, t)
		}
	}
	if len(ts) == 1 && ts[0].Kind == TokIdent {
		switch ts[0].Str {
		case "odd":
			return 2, 1
		case "even":
			return 2, 0
		case "n":
			return 1, 0
		case "-n":
			return -1, 0
		}
	}

	i := 0
	if i < len(ts) {
		t := ts[i]
		switch {
		case t.Kind == TokDimension && t.Str == "n":
			a = int(t.Num)
			i++
		case t.Kind == TokDimension && strings.HasPrefix(t.Str, "n-"):
			return int(t.Num), parseSignedInt(t.Str[1:])
		case t.Kind == TokIdent && strings.HasPrefix(t.Str, "n-"):
			return 1, parseSignedInt(t.Str[1:])
		case t.Kind == TokIdent && t.Str == "n":
			a = 1
			i++
		case t.Kind == TokIdent && t.Str == "-n":
			a = -1
			i++
		case t.Kind == TokNumber:
			return 0, int(t.Num)
		}
	}

	sign := 1
	if i < len(ts) && ts[i].Kind == TokPlus {
		i++
	}
	if i < len(ts) {
		t := ts[i]
		if t.Kind == TokNumber {
			b = sign * int(t.Num)
		} else if t.Kind == TokIdent {
			b = sign * parseSignedInt(t.Str)
		}
	}
	return a, b
}

func parseSignedInt(s string) int {
	n := 0
	neg := false
	for _, c := range s {
		if c == '-' {
			neg = true
			continue
		}
		if c >= '0' && c <= '9' {
			n = n*10 + int(c-'0')
		}
	}
	if neg {
		n = -n
	}
	return n
}

// parseDeclarations splits a declaration block on top-level semicolons
// and parses each "property: value" pair.
func parseDeclarations(s string) []Declaration {
	var out []Declaration
	for _, part := range splitTopLevelSemicolon(s) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		colon := strings.IndexByte(part, ':')
		if colon < 0 {
			continue
		}
		prop := strings.ToLower(strings.TrimSpace(part[:colon]))
		value := strings.TrimSpace(part[colon+1:])
		important := false
		if idx := strings.Index(strings.ToLower(value), "!important"); idx >= 0 {
			important = true
			value = strings.TrimSpace(value[:idx])
		}
		out = append(out, Declaration{Property: prop, Value: value, Important: important})
	}
	return out
}

func splitTopLevelSemicolon(s string) []string {
	var parts []string
	depth := 0
	last := 0
	for i, c := range s {
		switch c {
		case '(':
			depth++
		case ')':
			depth--
		case ';':
			if depth == 0 {
				parts = append(parts, s[last:i])
				last = i + 1
			}
		}
	}
	parts = append(parts, s[last:])
	return parts
}
