package shell

import (
	"strings"
	"testing"
)

func TestSetUnsetEnv(t *testing.T) {
	env, ip := newTestEnv(t)
	if _, err := ip.RunLine(`set GREETING hello`, env); err != nil {
		t.Fatalf("set: %v", err)
	}
	out, err := ip.RunLine(`echo $GREETING`, env)
	if err != nil {
		t.Fatalf("echo: %v", err)
	}
	if strings.TrimSpace(out.Stdout()) != "hello" {
		t.Errorf("got %q", out.Stdout())
	}

	envOut, err := ip.RunLine(`env`, env)
	if err != nil {
		t.Fatalf("env: %v", err)
	}
	if !strings.Contains(envOut.Stdout(), "GREETING=hello") {
		t.Errorf("env output missing variable: %q", envOut.Stdout())
	}

	if _, err := ip.RunLine(`unset GREETING`, env); err != nil {
		t.Fatalf("unset: %v", err)
	}
	out, err = ip.RunLine(`echo $GREETING`, env)
	if err != nil {
		t.Fatalf("echo after unset: %v", err)
	}
	if strings.TrimSpace(out.Stdout()) != "" {
		t.Errorf("expected empty after unset, got %q", out.Stdout())
	}
}

func TestAliasAndUnalias(t *testing.T) {
	env, ip := newTestEnv(t)
	if _, err := ip.RunLine(`alias ll ls`, env); err != nil {
		t.Fatalf("alias: %v", err)
	}
	if _, err := ip.RunLine(`ll /`, env); err != nil {
		t.Fatalf("aliased call: %v", err)
	}
	if _, err := ip.RunLine(`unalias ll`, env); err != nil {
		t.Fatalf("unalias: %v", err)
	}
	if _, err := ip.RunLine(`ll /`, env); err == nil {
		t.Error("want error after unalias removed the mapping")
	}
}

func TestUiBuiltinsWriteRequestFiles(t *testing.T) {
	env, ip := newTestEnv(t)
	cases := []struct {
		line string
		path string
	}{
		{`theme dark`, "/var/theme/request"},
		{`notify hello there`, "/var/notify/message"},
		{`wm focus 1`, "/var/wm/request"},
		{`sdi create rect`, "/var/sdi/request"},
		{`screenshot /home/shot.bmp`, "/var/screenshot/request"},
	}
	for _, c := range cases {
		if _, err := ip.RunLine(c.line, env); err != nil {
			t.Fatalf("%s: %v", c.line, err)
		}
		if !env.VFS.Exists(c.path) {
			t.Errorf("%s did not create %s", c.line, c.path)
		}
	}
}
