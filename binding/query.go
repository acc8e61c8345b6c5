package binding

import (
	"slices"

	"kvbind/internal/common"
)

// RegistryOf returns the registry of owner, or nil when nothing has ever
// been bound to it.
func RegistryOf(owner Ref) *Registry {
	return owners.registry(owner.key)
}

// query collects the bindings of owner in groups. Bindings found with a
// collected endpoint are unbound on the way and left out.
func query(owner Ref, keyPath string, groups ...Group) []Binding {
	r := RegistryOf(owner)
	if r == nil {
		return nil
	}

	var out []Binding

	for _, g := range groups {
		out = common.AppendUnique(out, r.Query(keyPath, g)...)
	}

	return prune(out)
}

// BindingsForKeyPath returns the value and action bindings registered for
// keyPath on owner, getters first, then setters, then triggers.
func BindingsForKeyPath(owner Ref, keyPath string) []Binding {
	return query(owner, keyPath, GroupGetter, GroupSetter, GroupTrigger)
}

// GetterBindingsForKeyPath returns the bindings reading keyPath of owner.
func GetterBindingsForKeyPath(owner Ref, keyPath string) []Binding {
	return query(owner, keyPath, GroupGetter)
}

// SetterBindingsForKeyPath returns the bindings writing keyPath of owner.
func SetterBindingsForKeyPath(owner Ref, keyPath string) []Binding {
	return query(owner, keyPath, GroupSetter)
}

// TriggeringBindingsForKeyPath returns the action bindings triggered by
// keyPath of owner.
func TriggeringBindingsForKeyPath(owner Ref, keyPath string) []Binding {
	return query(owner, keyPath, GroupTrigger)
}

// BindingForAction returns the first action binding invoking action on
// target, or nil.
func BindingForAction(target Ref, action string) Binding {
	b, _ := common.First(query(target, action, GroupAction))

	return b
}

// SetBindingAssertionDisabled opts owner in or out of the Assert* checks.
func SetBindingAssertionDisabled(owner Ref, disabled bool) {
	owners.setAssertionDisabled(owner, disabled)
}

// BindingAssertionDisabled reports whether owner opted out of the Assert*
// checks.
func BindingAssertionDisabled(owner Ref) bool {
	return owners.assertionDisabled(owner.key)
}

func anyActive(list []Binding) bool {
	return slices.ContainsFunc(list, Binding.IsActive)
}
