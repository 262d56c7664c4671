package shell

// RegisterAll wires every built-in category into r: filesystem, text,
// system, fun, UI control, documentation, variables, scripting.
func RegisterAll(r *Registry) {
	RegisterFilesystem(r)
	RegisterText(r)
	RegisterSystem(r)
	RegisterFun(r)
	RegisterUI(r)
	RegisterDoc(r)
	RegisterVars(r)
	RegisterScripting(r)
}
