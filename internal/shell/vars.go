package shell

import "sync"

// VarScope holds the current environment's variables plus alias
// definitions. Built-ins $CWD/$USER/$SHELL/$HOME are synthesized on lookup
// rather than stored, so they always reflect live state.
type VarScope struct {
	mu      sync.Mutex
	vars    map[string]string
	aliases map[string]string

	cwdFn func() string
	user  string
	home  string
}

// NewVarScope creates an empty scope. cwdFn is consulted for $CWD so it
// always reflects the live working directory even after cd.
func NewVarScope(cwdFn func() string, user, home string) *VarScope {
	return &VarScope{
		vars:    make(map[string]string),
		aliases: make(map[string]string),
		cwdFn:   cwdFn,
		user:    user,
		home:    home,
	}
}

func (v *VarScope) Get(name string) (string, bool) {
	switch name {
	case "CWD":
		return v.cwdFn(), true
	case "USER":
		return v.user, true
	case "SHELL":
		return "oasis-shell", true
	case "HOME":
		return v.home, true
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	val, ok := v.vars[name]
	return val, ok
}

func (v *VarScope) Set(name, value string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.vars[name] = value
}

func (v *VarScope) Unset(name string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.vars, name)
}

// All returns a snapshot of user-set (non-built-in) variables, for the env
// builtin.
func (v *VarScope) All() map[string]string {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make(map[string]string, len(v.vars))
	for k, val := range v.vars {
		out[k] = val
	}
	return out
}

func (v *VarScope) SetAlias(name, target string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.aliases[name] = target
}

func (v *VarScope) UnsetAlias(name string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.aliases, name)
}

// ResolveAlias returns the alias's target command name, or name unchanged
// if no alias is defined.
func (v *VarScope) ResolveAlias(name string) string {
	v.mu.Lock()
	defer v.mu.Unlock()
	if target, ok := v.aliases[name]; ok {
		return target
	}
	return name
}

func (v *VarScope) Aliases() map[string]string {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make(map[string]string, len(v.aliases))
	for k, val := range v.aliases {
		out[k] = val
	}
	return out
}
