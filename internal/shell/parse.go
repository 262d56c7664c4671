package shell

import "github.com/oasis-os/oasis/internal/oerr"

// SeqOp joins two pipelines in a Sequence.
type SeqOp int

const (
	SeqNone SeqOp = iota // terminal item, no following pipeline
	SeqAnd                // && : run next only if this succeeded
	SeqOr                 // || : run next only if this failed
	SeqThen               // ;  : always run next
)

// Stage is one command invocation within a pipeline.
type Stage struct {
	Name string
	Args []string
}

// Pipeline is Stages joined by '|', with optional file redirection.
type Pipeline struct {
	Stages []Stage

	InputFile  string // from '<', empty if none
	OutputFile string // from '>' or '>>', empty if none
	Append     bool
}

// SeqItem is one pipeline in a Sequence plus the operator joining it to the
// next item.
type SeqItem struct {
	Pipeline Pipeline
	Op       SeqOp
}

// Sequence is the full parsed line: a chain of pipelines joined by
// &&/||/;.
type Sequence struct {
	Items []SeqItem
}

var operatorTokens = map[string]bool{
	"|": true, ">": true, ">>": true, "<": true, "&&": true, "||": true, ";": true,
}

// Parse tokenizes line (expanding variables per vars) and builds a
// Sequence AST. Operators must be separated from adjacent words by
// whitespace.
func Parse(line string, vars *VarScope) (Sequence, error) {
	tokens := tokenize(line, vars)
	if len(tokens) == 0 {
		return Sequence{}, nil
	}

	var seq Sequence
	var stages []Stage
	var cur Stage
	haveCur := false
	pipeline := Pipeline{}

	flushStage := func() {
		if haveCur {
			stages = append(stages, cur)
			cur = Stage{}
			haveCur = false
		}
	}
	flushPipeline := func(op SeqOp) error {
		flushStage()
		if len(stages) == 0 {
			return oerr.New(oerr.KindCommand, "empty pipeline")
		}
		pipeline.Stages = stages
		seq.Items = append(seq.Items, SeqItem{Pipeline: pipeline, Op: op})
		stages = nil
		pipeline = Pipeline{}
		return nil
	}

	i := 0
	for i < len(tokens) {
		tok := tokens[i]
		switch tok {
		case "|":
			if !haveCur {
				return Sequence{}, oerr.New(oerr.KindCommand, "empty pipeline stage")
			}
			flushStage()
			i++
		case ">":
			flushStage()
			i++
			if i >= len(tokens) {
				return Sequence{}, oerr.New(oerr.KindCommand, "missing redirect target after >")
			}
			pipeline.OutputFile = tokens[i]
			pipeline.Append = false
			i++
		case ">>":
			flushStage()
			i++
			if i >= len(tokens) {
				return Sequence{}, oerr.New(oerr.KindCommand, "missing redirect target after >>")
			}
			pipeline.OutputFile = tokens[i]
			pipeline.Append = true
			i++
		case "<":
			flushStage()
			i++
			if i >= len(tokens) {
				return Sequence{}, oerr.New(oerr.KindCommand, "missing redirect source after <")
			}
			pipeline.InputFile = tokens[i]
			i++
		case "&&":
			if err := flushPipeline(SeqAnd); err != nil {
				return Sequence{}, err
			}
			i++
		case "||":
			if err := flushPipeline(SeqOr); err != nil {
				return Sequence{}, err
			}
			i++
		case ";":
			if err := flushPipeline(SeqThen); err != nil {
				return Sequence{}, err
			}
			i++
		default:
			if !haveCur {
				cur.Name = tok
				haveCur = true
			} else {
				cur.Args = append(cur.Args, tok)
			}
			i++
		}
	}
	if err := flushPipeline(SeqNone); err != nil {
		return Sequence{}, err
	}
	return seq, nil
}
