package shell

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/oasis-os/oasis/internal/oerr"
	"github.com/oasis-os/oasis/internal/vfs"
)

// resolvePath joins a possibly-relative argument against cwd, matching
// oasis-terminal's resolve_path helper: absolute args pass through,
// relative ones join against cwd.
func resolvePath(cwd, arg string) string {
	if strings.HasPrefix(arg, "/") {
		return vfs.Normalize(arg)
	}
	return vfs.Join(cwd, arg)
}

type lsCmd struct{}

func (lsCmd) Name() string        { return "ls" }
func (lsCmd) Description() string { return "List directory contents" }
func (lsCmd) Usage() string       { return "ls [path]" }
func (lsCmd) Category() string    { return "filesystem" }
func (lsCmd) Execute(args []string, env *Environment) (Output, error) {
	target := env.Cwd
	if len(args) > 0 {
		target = resolvePath(env.Cwd, args[0])
	}
	entries, err := env.VFS.Readdir(target)
	if err != nil {
		return Output{}, err
	}
	var b strings.Builder
	for _, e := range entries {
		if e.Kind == vfs.KindDir {
			b.WriteString(e.Name + "/\n")
		} else {
			fmt.Fprintf(&b, "%s\t%d\n", e.Name, e.Size)
		}
	}
	return TextOutput(b.String()), nil
}

type cdCmd struct{}

func (cdCmd) Name() string        { return "cd" }
func (cdCmd) Description() string { return "Change the working directory" }
func (cdCmd) Usage() string       { return "cd <path>" }
func (cdCmd) Category() string    { return "filesystem" }
func (cdCmd) Execute(args []string, env *Environment) (Output, error) {
	if len(args) < 1 {
		return Output{}, oerr.New(oerr.KindCommand, "usage: cd <path>")
	}
	target := resolvePath(env.Cwd, args[0])
	stat, err := env.VFS.Stat(target)
	if err != nil {
		return Output{}, err
	}
	if stat.Kind != vfs.KindDir {
		return Output{}, oerr.Newf(oerr.KindCommand, "not a directory: %s", target)
	}
	env.Cwd = target
	return TextOutput(""), nil
}

type pwdCmd struct{}

func (pwdCmd) Name() string        { return "pwd" }
func (pwdCmd) Description() string { return "Print the working directory" }
func (pwdCmd) Usage() string       { return "pwd" }
func (pwdCmd) Category() string    { return "filesystem" }
func (pwdCmd) Execute(args []string, env *Environment) (Output, error) {
	return TextOutput(env.Cwd + "\n"), nil
}

type catCmd struct{}

func (catCmd) Name() string        { return "cat" }
func (catCmd) Description() string { return "Print file contents" }
func (catCmd) Usage() string       { return "cat <file>" }
func (catCmd) Category() string    { return "filesystem" }
func (catCmd) Execute(args []string, env *Environment) (Output, error) {
	if len(args) < 1 {
		return Output{}, oerr.New(oerr.KindCommand, "usage: cat <file>")
	}
	data, err := env.VFS.Read(resolvePath(env.Cwd, args[0]))
	if err != nil {
		return Output{}, err
	}
	return TextOutput(string(data)), nil
}

type writeCmd struct{}

func (writeCmd) Name() string        { return "write" }
func (writeCmd) Description() string { return "Write text to a file" }
func (writeCmd) Usage() string       { return "write <file> <text...>" }
func (writeCmd) Category() string    { return "filesystem" }
func (writeCmd) Execute(args []string, env *Environment) (Output, error) {
	if len(args) < 2 {
		return Output{}, oerr.New(oerr.KindCommand, "usage: write <file> <text...>")
	}
	path := resolvePath(env.Cwd, args[0])
	text := strings.Join(args[1:], " ")
	if err := env.VFS.Write(path, []byte(text)); err != nil {
		return Output{}, err
	}
	return TextOutput(fmt.Sprintf("Wrote %d bytes to %s", len(text), path)), nil
}

type appendCmd struct{}

func (appendCmd) Name() string        { return "append" }
func (appendCmd) Description() string { return "Append text to a file" }
func (appendCmd) Usage() string       { return "append <file> <text...>" }
func (appendCmd) Category() string    { return "filesystem" }
func (appendCmd) Execute(args []string, env *Environment) (Output, error) {
	if len(args) < 2 {
		return Output{}, oerr.New(oerr.KindCommand, "usage: append <file> <text...>")
	}
	path := resolvePath(env.Cwd, args[0])
	text := strings.Join(args[1:], " ")
	existing, _ := env.VFS.Read(path)
	if err := env.VFS.Write(path, append(existing, []byte(text)...)); err != nil {
		return Output{}, err
	}
	return TextOutput(fmt.Sprintf("Appended %d bytes to %s", len(text), path)), nil
}

type treeCmd struct{}

func (treeCmd) Name() string        { return "tree" }
func (treeCmd) Description() string { return "Recursively list a directory" }
func (treeCmd) Usage() string       { return "tree [path]" }
func (treeCmd) Category() string    { return "filesystem" }
func (treeCmd) Execute(args []string, env *Environment) (Output, error) {
	root := env.Cwd
	if len(args) > 0 {
		root = resolvePath(env.Cwd, args[0])
	}
	var b strings.Builder
	var walk func(path string, depth int) error
	walk = func(path string, depth int) error {
		entries, err := env.VFS.Readdir(path)
		if err != nil {
			return err
		}
		for _, e := range entries {
			fmt.Fprintf(&b, "%s%s\n", strings.Repeat("  ", depth), e.Name)
			if e.Kind == vfs.KindDir {
				if err := walk(vfs.Join(path, e.Name), depth+1); err != nil {
					return err
				}
			}
		}
		return nil
	}
	if err := walk(root, 0); err != nil {
		return Output{}, err
	}
	return TextOutput(b.String()), nil
}

type duCmd struct{}

func (duCmd) Name() string        { return "du" }
func (duCmd) Description() string { return "Report disk usage of a directory" }
func (duCmd) Usage() string       { return "du [path]" }
func (duCmd) Category() string    { return "filesystem" }
func (duCmd) Execute(args []string, env *Environment) (Output, error) {
	root := env.Cwd
	if len(args) > 0 {
		root = resolvePath(env.Cwd, args[0])
	}
	var total int64
	var walk func(path string) error
	walk = func(path string) error {
		entries, err := env.VFS.Readdir(path)
		if err != nil {
			return err
		}
		for _, e := range entries {
			if e.Kind == vfs.KindDir {
				if err := walk(vfs.Join(path, e.Name)); err != nil {
					return err
				}
			} else {
				total += e.Size
			}
		}
		return nil
	}
	if err := walk(root); err != nil {
		return Output{}, err
	}
	return TextOutput(fmt.Sprintf("%d\t%s\n", total, root)), nil
}

type statCmd struct{}

func (statCmd) Name() string        { return "stat" }
func (statCmd) Description() string { return "Show metadata for a path" }
func (statCmd) Usage() string       { return "stat <path>" }
func (statCmd) Category() string    { return "filesystem" }
func (statCmd) Execute(args []string, env *Environment) (Output, error) {
	if len(args) < 1 {
		return Output{}, oerr.New(oerr.KindCommand, "usage: stat <path>")
	}
	path := resolvePath(env.Cwd, args[0])
	st, err := env.VFS.Stat(path)
	if err != nil {
		return Output{}, err
	}
	return StructuredOutput(map[string]string{
		"path": path,
		"kind": st.Kind.String(),
		"size": fmt.Sprintf("%d", st.Size),
	}), nil
}

type xxdCmd struct{}

func (xxdCmd) Name() string        { return "xxd" }
func (xxdCmd) Description() string { return "Hex dump a file" }
func (xxdCmd) Usage() string       { return "xxd <file>" }
func (xxdCmd) Category() string    { return "filesystem" }
func (xxdCmd) Execute(args []string, env *Environment) (Output, error) {
	if len(args) < 1 {
		return Output{}, oerr.New(oerr.KindCommand, "usage: xxd <file>")
	}
	data, err := env.VFS.Read(resolvePath(env.Cwd, args[0]))
	if err != nil {
		return Output{}, err
	}
	var b strings.Builder
	for i := 0; i < len(data); i += 16 {
		end := i + 16
		if end > len(data) {
			end = len(data)
		}
		fmt.Fprintf(&b, "%08x: % x\n", i, data[i:end])
	}
	return TextOutput(b.String()), nil
}

type checksumCmd struct{}

func (checksumCmd) Name() string        { return "checksum" }
func (checksumCmd) Description() string { return "SHA-256 checksum of a file" }
func (checksumCmd) Usage() string       { return "checksum <file>" }
func (checksumCmd) Category() string    { return "filesystem" }
func (checksumCmd) Execute(args []string, env *Environment) (Output, error) {
	if len(args) < 1 {
		return Output{}, oerr.New(oerr.KindCommand, "usage: checksum <file>")
	}
	data, err := env.VFS.Read(resolvePath(env.Cwd, args[0]))
	if err != nil {
		return Output{}, err
	}
	sum := sha256.Sum256(data)
	return TextOutput(hex.EncodeToString(sum[:]) + "\n"), nil
}

type cpCmd struct{}

func (cpCmd) Name() string        { return "cp" }
func (cpCmd) Description() string { return "Copy a file" }
func (cpCmd) Usage() string       { return "cp <src> <dst>" }
func (cpCmd) Category() string    { return "filesystem" }
func (cpCmd) Execute(args []string, env *Environment) (Output, error) {
	if len(args) < 2 {
		return Output{}, oerr.New(oerr.KindCommand, "usage: cp <src> <dst>")
	}
	data, err := env.VFS.Read(resolvePath(env.Cwd, args[0]))
	if err != nil {
		return Output{}, err
	}
	if err := env.VFS.Write(resolvePath(env.Cwd, args[1]), data); err != nil {
		return Output{}, err
	}
	return TextOutput(""), nil
}

type mvCmd struct{}

func (mvCmd) Name() string        { return "mv" }
func (mvCmd) Description() string { return "Move/rename a file" }
func (mvCmd) Usage() string       { return "mv <src> <dst>" }
func (mvCmd) Category() string    { return "filesystem" }
func (mvCmd) Execute(args []string, env *Environment) (Output, error) {
	if len(args) < 2 {
		return Output{}, oerr.New(oerr.KindCommand, "usage: mv <src> <dst>")
	}
	src := resolvePath(env.Cwd, args[0])
	dst := resolvePath(env.Cwd, args[1])
	data, err := env.VFS.Read(src)
	if err != nil {
		return Output{}, err
	}
	if err := env.VFS.Write(dst, data); err != nil {
		return Output{}, err
	}
	if err := env.VFS.Remove(src); err != nil {
		return Output{}, err
	}
	return TextOutput(""), nil
}

type rmCmd struct{}

func (rmCmd) Name() string        { return "rm" }
func (rmCmd) Description() string { return "Remove a file or empty directory" }
func (rmCmd) Usage() string       { return "rm <path>" }
func (rmCmd) Category() string    { return "filesystem" }
func (rmCmd) Execute(args []string, env *Environment) (Output, error) {
	if len(args) < 1 {
		return Output{}, oerr.New(oerr.KindCommand, "usage: rm <path>")
	}
	if err := env.VFS.Remove(resolvePath(env.Cwd, args[0])); err != nil {
		return Output{}, err
	}
	return TextOutput(""), nil
}

type mkdirCmd struct{}

func (mkdirCmd) Name() string        { return "mkdir" }
func (mkdirCmd) Description() string { return "Create a directory" }
func (mkdirCmd) Usage() string       { return "mkdir <path>" }
func (mkdirCmd) Category() string    { return "filesystem" }
func (mkdirCmd) Execute(args []string, env *Environment) (Output, error) {
	if len(args) < 1 {
		return Output{}, oerr.New(oerr.KindCommand, "usage: mkdir <path>")
	}
	if err := env.VFS.Mkdir(resolvePath(env.Cwd, args[0])); err != nil {
		return Output{}, err
	}
	return TextOutput(""), nil
}

// RegisterFilesystem adds every filesystem builtin to r.
func RegisterFilesystem(r *Registry) {
	r.Register(lsCmd{})
	r.Register(cdCmd{})
	r.Register(pwdCmd{})
	r.Register(catCmd{})
	r.Register(writeCmd{})
	r.Register(appendCmd{})
	r.Register(treeCmd{})
	r.Register(duCmd{})
	r.Register(statCmd{})
	r.Register(xxdCmd{})
	r.Register(checksumCmd{})
	r.Register(cpCmd{})
	r.Register(mvCmd{})
	r.Register(rmCmd{})
	r.Register(mkdirCmd{})
}
