package shell

import "github.com/oasis-os/oasis/internal/oerr"

// Interpreter ties a Registry and VarScope together and runs parsed
// Sequences against an Environment.
type Interpreter struct {
	Registry *Registry
	Vars     *VarScope
}

func NewInterpreter(registry *Registry, vars *VarScope) *Interpreter {
	return &Interpreter{Registry: registry, Vars: vars}
}

// RunLine parses and executes a single line against env, returning the
// final stage's Output. env.Cwd is written back after execution (cd
// mutates it via env.Cwd directly).
func (ip *Interpreter) RunLine(line string, env *Environment) (Output, error) {
	seq, err := Parse(line, ip.Vars)
	if err != nil {
		return Output{}, err
	}
	return ip.RunSequence(seq, env)
}

// RunSequence executes every pipeline in seq left to right, gating
// execution of each item on the previous item's success/failure per its Op.
func (ip *Interpreter) RunSequence(seq Sequence, env *Environment) (Output, error) {
	var last Output
	var lastErr error
	ranAny := false

	for idx, item := range seq.Items {
		if idx > 0 {
			prevOp := seq.Items[idx-1].Op
			switch prevOp {
			case SeqAnd:
				if lastErr != nil {
					continue
				}
			case SeqOr:
				if lastErr == nil {
					continue
				}
			}
		}
		last, lastErr = ip.runPipeline(item.Pipeline, env)
		ranAny = true
	}
	if !ranAny {
		return Output{}, nil
	}
	return last, lastErr
}

func (ip *Interpreter) runPipeline(p Pipeline, env *Environment) (Output, error) {
	var stdin []byte
	if p.InputFile != "" {
		data, err := env.VFS.Read(p.InputFile)
		if err != nil {
			return Output{}, err
		}
		stdin = data
	} else {
		stdin = env.Stdin
	}

	var out Output
	var err error
	cwd := env.Cwd
	for i, stage := range p.Stages {
		name := ip.Vars.ResolveAlias(stage.Name)
		cmd, ok := ip.Registry.Lookup(name)
		if !ok {
			return Output{}, oerr.Newf(oerr.KindCommand, "unknown command: %s", name)
		}
		stageEnv := env.Clone(stdin)
		stageEnv.Cwd = cwd
		out, err = cmd.Execute(stage.Args, stageEnv)
		cwd = stageEnv.Cwd
		if err != nil {
			env.Cwd = cwd
			return out, err
		}
		stdin = []byte(out.Stdout())
		_ = i
	}
	env.Cwd = cwd

	if p.OutputFile != "" {
		if p.Append {
			existing, _ := env.VFS.Read(p.OutputFile)
			if werr := env.VFS.Write(p.OutputFile, append(existing, stdin...)); werr != nil {
				return out, werr
			}
		} else {
			if werr := env.VFS.Write(p.OutputFile, stdin); werr != nil {
				return out, werr
			}
		}
	}
	return out, nil
}
