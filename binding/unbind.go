package binding

// Unbind tears down every value binding that writes keyPath of owner and
// returns how many were removed.
func Unbind(owner Ref, keyPath string) int {
	return unbindAll(SetterBindingsForKeyPath(owner, keyPath))
}

// UnbindAction tears down the action bindings invoking action on target and
// returns how many were removed.
func UnbindAction(target Ref, action string) int {
	return unbindAll(query(target, action, GroupAction))
}

// UnbindAll tears down every binding touching owner in any role.
func UnbindAll(owner Ref) int {
	r := RegistryOf(owner)
	if r == nil {
		return 0
	}

	return unbindAll(prune(r.All()))
}

func unbindAll(list []Binding) int {
	n := 0

	for _, b := range list {
		if b.IsActive() {
			b.Unbind()
			n++
		}
	}

	return n
}
