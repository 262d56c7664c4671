package shell

import (
	"strings"

	"github.com/oasis-os/oasis/internal/oerr"
)

const maxRecursionDepth = 64

// RunScript executes a multi-line script: one command per logical line,
// '#' starts a comment, and block constructs (if/while/for) nest up to
// maxRecursionDepth.
func (ip *Interpreter) RunScript(source string, env *Environment) (Output, error) {
	lines := scriptLines(source)
	out, _, err := ip.runBlock(lines, 0, 0)
	if err != nil {
		return Output{}, err
	}
	return ip.execBlockStatements(out, env)
}

func scriptLines(source string) []string {
	raw := strings.Split(source, "\n")
	var lines []string
	for _, l := range raw {
		trimmed := strings.TrimSpace(l)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		lines = append(lines, trimmed)
	}
	return lines
}

// blockStmt is one parsed statement: either a plain command line, or a
// control-flow node with nested statement blocks.
type blockStmt struct {
	line string // set for plain statements

	kind     string // "if", "while", "for", ""
	cond     string // if/while condition line
	forVar   string
	forVals  []string
	body     []blockStmt
	elseBody []blockStmt
}

// runBlock parses lines[start:] into a flat list of statements at the top
// level, stopping at end-of-input or at a "fi", "done" or "else" line
// (which it leaves unconsumed). Returns the statements, the index where
// parsing stopped, and an error if recursion depth was exceeded.
func (ip *Interpreter) runBlock(lines []string, start, depth int) ([]blockStmt, int, error) {
	if depth > maxRecursionDepth {
		return nil, start, oerr.New(oerr.KindCommand, "max script recursion depth exceeded")
	}
	var stmts []blockStmt
	i := start
	for i < len(lines) {
		line := lines[i]
		switch {
		case strings.HasPrefix(line, "if "):
			cond := strings.TrimSuffix(strings.TrimPrefix(line, "if "), " then")
			body, next, elseBody, err := ip.parseIf(lines, i+1, depth+1)
			if err != nil {
				return nil, i, err
			}
			stmts = append(stmts, blockStmt{kind: "if", cond: cond, body: body, elseBody: elseBody})
			i = next
		case strings.HasPrefix(line, "while "):
			cond := strings.TrimSuffix(strings.TrimPrefix(line, "while "), " do")
			body, next, err := ip.parseUntil(lines, i+1, depth+1, "done")
			if err != nil {
				return nil, i, err
			}
			stmts = append(stmts, blockStmt{kind: "while", cond: cond, body: body})
			i = next
		case strings.HasPrefix(line, "for "):
			varName, vals := parseForHeader(line)
			body, next, err := ip.parseUntil(lines, i+1, depth+1, "done")
			if err != nil {
				return nil, i, err
			}
			stmts = append(stmts, blockStmt{kind: "for", forVar: varName, forVals: vals, body: body})
			i = next
		case line == "fi" || line == "done" || line == "else":
			return stmts, i, nil
		default:
			stmts = append(stmts, blockStmt{line: line})
			i++
		}
	}
	return stmts, i, nil
}

func (ip *Interpreter) parseIf(lines []string, start, depth int) (body []blockStmt, next int, elseBody []blockStmt, err error) {
	body, next, err = ip.runBlock(lines, start, depth)
	if err != nil {
		return nil, next, nil, err
	}
	if next < len(lines) && lines[next] == "else" {
		elseBody, next, err = ip.runBlock(lines, next+1, depth)
		if err != nil {
			return nil, next, nil, err
		}
	}
	if next < len(lines) && lines[next] == "fi" {
		next++
	}
	return body, next, elseBody, nil
}

func (ip *Interpreter) parseUntil(lines []string, start, depth int, terminator string) ([]blockStmt, int, error) {
	body, next, err := ip.runBlock(lines, start, depth)
	if err != nil {
		return nil, next, err
	}
	if next < len(lines) && lines[next] == terminator {
		next++
	}
	return body, next, nil
}

func parseForHeader(line string) (varName string, vals []string) {
	// "for NAME in VAL1 VAL2 ... do"
	rest := strings.TrimPrefix(line, "for ")
	rest = strings.TrimSuffix(rest, " do")
	parts := strings.Fields(rest)
	if len(parts) < 2 || parts[1] != "in" {
		return "", nil
	}
	return parts[0], parts[2:]
}

func (ip *Interpreter) execBlockStatements(stmts []blockStmt, env *Environment) (Output, error) {
	var last Output
	for _, s := range stmts {
		out, err := ip.execStmt(s, env)
		if err != nil {
			return out, err
		}
		last = out
	}
	return last, nil
}

func (ip *Interpreter) execStmt(s blockStmt, env *Environment) (Output, error) {
	switch s.kind {
	case "if":
		_, condErr := ip.RunLine(s.cond, env)
		if condErr == nil {
			return ip.execBlockStatements(s.body, env)
		}
		return ip.execBlockStatements(s.elseBody, env)
	case "while":
		var last Output
		for {
			_, condErr := ip.RunLine(s.cond, env)
			if condErr != nil {
				break
			}
			out, err := ip.execBlockStatements(s.body, env)
			if err != nil {
				return out, err
			}
			last = out
		}
		return last, nil
	case "for":
		var last Output
		for _, val := range s.forVals {
			ip.Vars.Set(s.forVar, val)
			out, err := ip.execBlockStatements(s.body, env)
			if err != nil {
				return out, err
			}
			last = out
		}
		return last, nil
	default:
		return ip.RunLine(s.line, env)
	}
}
