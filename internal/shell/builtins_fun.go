package shell

import (
	"fmt"
	"strings"

	"github.com/oasis-os/oasis/internal/oerr"
)

type calCmd struct{}

func (calCmd) Name() string        { return "cal" }
func (calCmd) Description() string { return "Print the current month's calendar" }
func (calCmd) Usage() string       { return "cal" }
func (calCmd) Category() string    { return "fun" }
func (calCmd) Execute(args []string, env *Environment) (Output, error) {
	if env.Clock == nil {
		return Output{}, oerr.New(oerr.KindCommand, "no time service available")
	}
	now := env.Clock.Now()
	year, month, _ := now.Date()
	first := now.AddDate(0, 0, 1-now.Day())
	daysInMonth := first.AddDate(0, 1, -first.Day()).Day()

	var b strings.Builder
	fmt.Fprintf(&b, "%s %d\n", month, year)
	b.WriteString("Su Mo Tu We Th Fr Sa\n")
	for i := 0; i < int(first.Weekday()); i++ {
		b.WriteString("   ")
	}
	weekday := int(first.Weekday())
	for day := 1; day <= daysInMonth; day++ {
		fmt.Fprintf(&b, "%2d ", day)
		weekday++
		if weekday%7 == 0 {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	return TextOutput(b.String()), nil
}

var fortunes = []string{
	"A journey of a thousand miles begins with a single step.",
	"The best way to predict the future is to invent it.",
	"Simplicity is the ultimate sophistication.",
	"Slow is smooth, smooth is fast.",
}

type fortuneCmd struct{}

func (fortuneCmd) Name() string        { return "fortune" }
func (fortuneCmd) Description() string { return "Print a random fortune" }
func (fortuneCmd) Usage() string       { return "fortune" }
func (fortuneCmd) Category() string    { return "fun" }
func (fortuneCmd) Execute(args []string, env *Environment) (Output, error) {
	if env.Clock == nil {
		return TextOutput(fortunes[0] + "\n"), nil
	}
	idx := int(env.Clock.Now().UnixNano()) % len(fortunes)
	if idx < 0 {
		idx += len(fortunes)
	}
	return TextOutput(fortunes[idx] + "\n"), nil
}

type bannerCmd struct{}

func (bannerCmd) Name() string        { return "banner" }
func (bannerCmd) Description() string { return "Print text in a box" }
func (bannerCmd) Usage() string       { return "banner <text>" }
func (bannerCmd) Category() string    { return "fun" }
func (bannerCmd) Execute(args []string, env *Environment) (Output, error) {
	text := strings.Join(args, " ")
	if text == "" {
		text = "OASIS"
	}
	border := strings.Repeat("*", len(text)+4)
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n* %s *\n%s\n", border, text, border)
	return TextOutput(b.String()), nil
}

type matrixCmd struct{}

func (matrixCmd) Name() string        { return "matrix" }
func (matrixCmd) Description() string { return "Print a screen of falling-code noise" }
func (matrixCmd) Usage() string       { return "matrix" }
func (matrixCmd) Category() string    { return "fun" }
func (matrixCmd) Execute(args []string, env *Environment) (Output, error) {
	const cols, rows = 40, 12
	glyphs := "01"
	seed := uint64(1)
	if env.Clock != nil {
		seed = uint64(env.Clock.Now().UnixNano())
	}
	var b strings.Builder
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			seed = seed*6364136223846793005 + 1442695040888963407
			b.WriteByte(glyphs[(seed>>33)%uint64(len(glyphs))])
		}
		b.WriteString("\n")
	}
	return TextOutput(b.String()), nil
}

type yesCmd struct{}

func (yesCmd) Name() string        { return "yes" }
func (yesCmd) Description() string { return "Print a line repeatedly (capped)" }
func (yesCmd) Usage() string       { return "yes [text]" }
func (yesCmd) Category() string    { return "fun" }
func (yesCmd) Execute(args []string, env *Environment) (Output, error) {
	text := "y"
	if len(args) > 0 {
		text = strings.Join(args, " ")
	}
	const maxLines = 1000
	var b strings.Builder
	for i := 0; i < maxLines; i++ {
		b.WriteString(text)
		b.WriteString("\n")
	}
	return TextOutput(b.String()), nil
}

type timeCmd struct{}

func (timeCmd) Name() string        { return "time" }
func (timeCmd) Description() string { return "Run a command and report its duration" }
func (timeCmd) Usage() string       { return "time <command...>" }
func (timeCmd) Category() string    { return "fun" }
func (timeCmd) Execute(args []string, env *Environment) (Output, error) {
	if len(args) < 1 {
		return Output{}, oerr.New(oerr.KindCommand, "usage: time <command...>")
	}
	if env.Interp == nil {
		return Output{}, oerr.New(oerr.KindCommand, "no interpreter available")
	}
	var before int64
	if env.Clock != nil {
		before = env.Clock.Now().UnixNano()
	}
	out, err := env.Interp.RunLine(strings.Join(args, " "), env)
	var elapsed string
	if env.Clock != nil {
		elapsed = fmt.Sprintf("%.3fms", float64(env.Clock.Now().UnixNano()-before)/1e6)
	} else {
		elapsed = "unknown"
	}
	if err != nil {
		return Output{}, err
	}
	return TextOutput(out.Stdout() + fmt.Sprintf("\nreal\t%s\n", elapsed)), nil
}

type watchCmd struct{}

func (watchCmd) Name() string        { return "watch" }
func (watchCmd) Description() string { return "Run a command once and label its output as a snapshot" }
func (watchCmd) Usage() string       { return "watch <command...>" }
func (watchCmd) Category() string    { return "fun" }
func (watchCmd) Execute(args []string, env *Environment) (Output, error) {
	if len(args) < 1 {
		return Output{}, oerr.New(oerr.KindCommand, "usage: watch <command...>")
	}
	if env.Interp == nil {
		return Output{}, oerr.New(oerr.KindCommand, "no interpreter available")
	}
	out, err := env.Interp.RunLine(strings.Join(args, " "), env)
	if err != nil {
		return Output{}, err
	}
	return TextOutput("-- snapshot --\n" + out.Stdout()), nil
}

// RegisterFun adds every fun builtin to r.
func RegisterFun(r *Registry) {
	r.Register(calCmd{})
	r.Register(fortuneCmd{})
	r.Register(bannerCmd{})
	r.Register(matrixCmd{})
	r.Register(yesCmd{})
	r.Register(timeCmd{})
	r.Register(watchCmd{})
}
