package shell

import (
	"sort"
	"strings"

	"github.com/oasis-os/oasis/internal/oerr"
)

type echoCmd struct{}

func (echoCmd) Name() string        { return "echo" }
func (echoCmd) Description() string { return "Print arguments" }
func (echoCmd) Usage() string       { return "echo <text...>" }
func (echoCmd) Category() string    { return "text" }
func (echoCmd) Execute(args []string, env *Environment) (Output, error) {
	return TextOutput(strings.Join(args, " ") + "\n"), nil
}

type grepCmd struct{}

func (grepCmd) Name() string        { return "grep" }
func (grepCmd) Description() string { return "Filter stdin lines matching a substring" }
func (grepCmd) Usage() string       { return "grep <pattern>" }
func (grepCmd) Category() string    { return "text" }
func (grepCmd) Execute(args []string, env *Environment) (Output, error) {
	if len(args) < 1 {
		return Output{}, oerr.New(oerr.KindCommand, "usage: grep <pattern>")
	}
	pattern := args[0]
	var b strings.Builder
	for _, line := range splitLines(string(env.Stdin)) {
		if strings.Contains(line, pattern) {
			b.WriteString(line + "\n")
		}
	}
	return TextOutput(b.String()), nil
}

type wcCmd struct{}

func (wcCmd) Name() string        { return "wc" }
func (wcCmd) Description() string { return "Count lines, words, and bytes of stdin" }
func (wcCmd) Usage() string       { return "wc" }
func (wcCmd) Category() string    { return "text" }
func (wcCmd) Execute(args []string, env *Environment) (Output, error) {
	text := string(env.Stdin)
	lines := len(splitLines(text))
	words := len(strings.Fields(text))
	bytes := len(env.Stdin)
	return StructuredOutput(map[string]string{
		"lines": itoa(lines), "words": itoa(words), "bytes": itoa(bytes),
	}), nil
}

type headCmd struct{}

func (headCmd) Name() string        { return "head" }
func (headCmd) Description() string { return "First N lines of stdin (default 10)" }
func (headCmd) Usage() string       { return "head [n]" }
func (headCmd) Category() string    { return "text" }
func (headCmd) Execute(args []string, env *Environment) (Output, error) {
	n := 10
	if len(args) > 0 {
		n = atoiOr(args[0], 10)
	}
	lines := splitLines(string(env.Stdin))
	if n > len(lines) {
		n = len(lines)
	}
	return TextOutput(strings.Join(lines[:n], "\n") + "\n"), nil
}

type tailCmd struct{}

func (tailCmd) Name() string        { return "tail" }
func (tailCmd) Description() string { return "Last N lines of stdin (default 10)" }
func (tailCmd) Usage() string       { return "tail [n]" }
func (tailCmd) Category() string    { return "text" }
func (tailCmd) Execute(args []string, env *Environment) (Output, error) {
	n := 10
	if len(args) > 0 {
		n = atoiOr(args[0], 10)
	}
	lines := splitLines(string(env.Stdin))
	start := len(lines) - n
	if start < 0 {
		start = 0
	}
	return TextOutput(strings.Join(lines[start:], "\n") + "\n"), nil
}

type sortCmd struct{}

func (sortCmd) Name() string        { return "sort" }
func (sortCmd) Description() string { return "Sort stdin lines" }
func (sortCmd) Usage() string       { return "sort" }
func (sortCmd) Category() string    { return "text" }
func (sortCmd) Execute(args []string, env *Environment) (Output, error) {
	lines := splitLines(string(env.Stdin))
	sort.Strings(lines)
	return TextOutput(strings.Join(lines, "\n") + "\n"), nil
}

type uniqCmd struct{}

func (uniqCmd) Name() string        { return "uniq" }
func (uniqCmd) Description() string { return "Collapse adjacent duplicate lines" }
func (uniqCmd) Usage() string       { return "uniq" }
func (uniqCmd) Category() string    { return "text" }
func (uniqCmd) Execute(args []string, env *Environment) (Output, error) {
	lines := splitLines(string(env.Stdin))
	var out []string
	for i, l := range lines {
		if i == 0 || l != lines[i-1] {
			out = append(out, l)
		}
	}
	return TextOutput(strings.Join(out, "\n") + "\n"), nil
}

type trCmd struct{}

func (trCmd) Name() string        { return "tr" }
func (trCmd) Description() string { return "Translate characters in stdin" }
func (trCmd) Usage() string       { return "tr <from> <to>" }
func (trCmd) Category() string    { return "text" }
func (trCmd) Execute(args []string, env *Environment) (Output, error) {
	if len(args) < 2 {
		return Output{}, oerr.New(oerr.KindCommand, "usage: tr <from> <to>")
	}
	from, to := []rune(args[0]), []rune(args[1])
	text := []rune(string(env.Stdin))
	for i, r := range text {
		for j, f := range from {
			if r == f && j < len(to) {
				text[i] = to[j]
				break
			}
		}
	}
	return TextOutput(string(text)), nil
}

// sedCmd supports the common "s/old/new/" substitution subset over stdin.
type sedCmd struct{}

func (sedCmd) Name() string        { return "sed" }
func (sedCmd) Description() string { return "Apply an s/old/new/ substitution to stdin" }
func (sedCmd) Usage() string       { return "sed s/old/new/" }
func (sedCmd) Category() string    { return "text" }
func (sedCmd) Execute(args []string, env *Environment) (Output, error) {
	if len(args) < 1 || !strings.HasPrefix(args[0], "s/") {
		return Output{}, oerr.New(oerr.KindCommand, "usage: sed s/old/new/")
	}
	parts := strings.Split(strings.TrimPrefix(args[0], "s/"), "/")
	if len(parts) < 2 {
		return Output{}, oerr.New(oerr.KindCommand, "malformed sed expression")
	}
	old, new := parts[0], parts[1]
	return TextOutput(strings.ReplaceAll(string(env.Stdin), old, new)), nil
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

func atoiOr(s string, fallback int) int {
	n := 0
	neg := false
	for i, r := range s {
		if i == 0 && r == '-' {
			neg = true
			continue
		}
		if r < '0' || r > '9' {
			return fallback
		}
		n = n*10 + int(r-'0')
	}
	if neg {
		n = -n
	}
	return n
}

// RegisterText adds every text-processing builtin to r.
func RegisterText(r *Registry) {
	r.Register(echoCmd{})
	r.Register(grepCmd{})
	r.Register(wcCmd{})
	r.Register(headCmd{})
	r.Register(tailCmd{})
	r.Register(sortCmd{})
	r.Register(uniqCmd{})
	r.Register(trCmd{})
	r.Register(sedCmd{})
}
