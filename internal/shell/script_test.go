package shell

import (
	"strings"
	"testing"
)

func TestRunScriptForLoop(t *testing.T) {
	env, ip := newTestEnv(t)
	script := `
for name in a b c do
  write /log.txt $name
done
`
	// write inside the loop overwrites each iteration; assert the final one.
	if _, err := ip.RunScript(script, env); err != nil {
		t.Fatalf("RunScript: %v", err)
	}
	out, err := ip.RunLine(`cat /log.txt`, env)
	if err != nil {
		t.Fatalf("cat: %v", err)
	}
	if strings.TrimSpace(out.Stdout()) != "c" {
		t.Errorf("got %q, want final loop value c", out.Stdout())
	}
}

func TestRunScriptIfElse(t *testing.T) {
	env, ip := newTestEnv(t)
	script := `
if cd /missing then
  write /result.txt yes
else
  write /result.txt no
fi
`
	if _, err := ip.RunScript(script, env); err != nil {
		t.Fatalf("RunScript: %v", err)
	}
	out, err := ip.RunLine(`cat /result.txt`, env)
	if err != nil {
		t.Fatalf("cat: %v", err)
	}
	if strings.TrimSpace(out.Stdout()) != "no" {
		t.Errorf("got %q, want no", out.Stdout())
	}
}

func TestRunScriptWhileLoop(t *testing.T) {
	env, ip := newTestEnv(t)
	if _, err := ip.RunLine(`write /counter.txt 0`, env); err != nil {
		t.Fatalf("setup: %v", err)
	}
	script := `
set n 0
while cd /missing do
  write /should_not_run.txt x
done
`
	if _, err := ip.RunScript(script, env); err != nil {
		t.Fatalf("RunScript: %v", err)
	}
	if env.VFS.Exists("/should_not_run.txt") {
		t.Error("while body ran despite a failing condition")
	}
}

func TestScriptRecursionDepthLimit(t *testing.T) {
	ip := &Interpreter{Registry: NewRegistry(), Vars: newTestVars()}
	var b strings.Builder
	depth := maxRecursionDepth + 10
	for i := 0; i < depth; i++ {
		b.WriteString("if true then\n")
	}
	b.WriteString("echo deep\n")
	for i := 0; i < depth; i++ {
		b.WriteString("fi\n")
	}
	_, _, err := ip.runBlock(scriptLines(b.String()), 0, 0)
	if err == nil {
		t.Error("want recursion depth error for deeply nested if blocks")
	}
}
