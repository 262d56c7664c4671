package shell

import "testing"

func TestParsePipelineAndRedirect(t *testing.T) {
	vars := newTestVars()
	seq, err := Parse(`cat foo.txt | grep bar > out.txt`, vars)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(seq.Items) != 1 {
		t.Fatalf("want 1 sequence item, got %d", len(seq.Items))
	}
	p := seq.Items[0].Pipeline
	if len(p.Stages) != 2 {
		t.Fatalf("want 2 stages, got %d", len(p.Stages))
	}
	if p.Stages[0].Name != "cat" || p.Stages[0].Args[0] != "foo.txt" {
		t.Errorf("unexpected stage 0: %+v", p.Stages[0])
	}
	if p.Stages[1].Name != "grep" || p.Stages[1].Args[0] != "bar" {
		t.Errorf("unexpected stage 1: %+v", p.Stages[1])
	}
	if p.OutputFile != "out.txt" || p.Append {
		t.Errorf("unexpected redirect: file=%q append=%v", p.OutputFile, p.Append)
	}
}

func TestParseAppendRedirect(t *testing.T) {
	vars := newTestVars()
	seq, err := Parse(`echo hi >> log.txt`, vars)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	p := seq.Items[0].Pipeline
	if p.OutputFile != "log.txt" || !p.Append {
		t.Errorf("want append redirect to log.txt, got %+v", p)
	}
}

func TestParseSequencingOperators(t *testing.T) {
	vars := newTestVars()
	seq, err := Parse(`mkdir a && cd a || echo failed ; pwd`, vars)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(seq.Items) != 4 {
		t.Fatalf("want 4 sequence items, got %d", len(seq.Items))
	}
	wantOps := []SeqOp{SeqAnd, SeqOr, SeqThen, SeqNone}
	for i, op := range wantOps {
		if seq.Items[i].Op != op {
			t.Errorf("item %d: op = %v, want %v", i, seq.Items[i].Op, op)
		}
	}
}

func TestParseEmptyPipelineFails(t *testing.T) {
	vars := newTestVars()
	if _, err := Parse(`cat foo | | grep bar`, vars); err == nil {
		t.Error("want error for empty pipeline stage, got nil")
	}
}

func TestParseMissingRedirectTargetFails(t *testing.T) {
	vars := newTestVars()
	if _, err := Parse(`echo hi >`, vars); err == nil {
		t.Error("want error for missing redirect target, got nil")
	}
}
