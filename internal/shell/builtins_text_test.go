package shell

import (
	"strings"
	"testing"
)

func TestTextPipelineChain(t *testing.T) {
	env, ip := newTestEnv(t)

	if _, err := ip.RunLine(`echo one > /lines.txt`, env); err != nil {
		t.Fatalf("echo: %v", err)
	}
	if _, err := ip.RunLine(`echo two >> /lines.txt`, env); err != nil {
		t.Fatalf("echo: %v", err)
	}
	if _, err := ip.RunLine(`echo one >> /lines.txt`, env); err != nil {
		t.Fatalf("echo: %v", err)
	}

	sorted, err := ip.RunLine(`cat /lines.txt | sort`, env)
	if err != nil {
		t.Fatalf("sort: %v", err)
	}
	if sorted.Stdout() != "one\none\ntwo\n" {
		t.Errorf("sort output = %q", sorted.Stdout())
	}

	uniqued, err := ip.RunLine(`cat /lines.txt | sort | uniq`, env)
	if err != nil {
		t.Fatalf("uniq: %v", err)
	}
	if uniqued.Stdout() != "one\ntwo\n" {
		t.Errorf("uniq output = %q", uniqued.Stdout())
	}

	wc, err := ip.RunLine(`cat /lines.txt | wc`, env)
	if err != nil {
		t.Fatalf("wc: %v", err)
	}
	if wc.Fields["lines"] != "3" {
		t.Errorf("wc lines = %q, want 3", wc.Fields["lines"])
	}
}

func TestSedSubstitution(t *testing.T) {
	env, ip := newTestEnv(t)
	if _, err := ip.RunLine(`echo hello_world > /f.txt`, env); err != nil {
		t.Fatalf("echo: %v", err)
	}
	out, err := ip.RunLine(`cat /f.txt | sed s/world/there/`, env)
	if err != nil {
		t.Fatalf("sed: %v", err)
	}
	if !strings.Contains(out.Stdout(), "hello_there") {
		t.Errorf("sed output = %q", out.Stdout())
	}
}

func TestTrTranslation(t *testing.T) {
	env, ip := newTestEnv(t)
	if _, err := ip.RunLine(`echo abcabc > /f.txt`, env); err != nil {
		t.Fatalf("echo: %v", err)
	}
	out, err := ip.RunLine(`cat /f.txt | tr abc xyz`, env)
	if err != nil {
		t.Fatalf("tr: %v", err)
	}
	if strings.TrimSpace(out.Stdout()) != "xyzxyz" {
		t.Errorf("tr output = %q", out.Stdout())
	}
}

func TestHeadAndTail(t *testing.T) {
	env, ip := newTestEnv(t)
	if _, err := ip.RunLine(`echo 1 > /nums.txt`, env); err != nil {
		t.Fatalf("echo: %v", err)
	}
	for _, n := range []string{"2", "3", "4", "5"} {
		if _, err := ip.RunLine("echo "+n+" >> /nums.txt", env); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	head, err := ip.RunLine(`cat /nums.txt | head 2`, env)
	if err != nil {
		t.Fatalf("head: %v", err)
	}
	if strings.TrimSpace(head.Stdout()) != "1\n2" {
		t.Errorf("head = %q", head.Stdout())
	}
	tail, err := ip.RunLine(`cat /nums.txt | tail 2`, env)
	if err != nil {
		t.Fatalf("tail: %v", err)
	}
	if strings.TrimSpace(tail.Stdout()) != "4\n5" {
		t.Errorf("tail = %q", tail.Stdout())
	}
}
