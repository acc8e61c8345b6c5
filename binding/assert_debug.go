//go:build !kvbind_release

package binding

import "fmt"

// AssertionsEnabled reports whether the Assert* functions check anything.
const AssertionsEnabled = true

// AssertTrigger panics unless an active action binding is triggered by
// keyPath of owner.
func AssertTrigger(owner Ref, keyPath string) {
	if BindingAssertionDisabled(owner) {
		return
	}

	if !anyActive(TriggeringBindingsForKeyPath(owner, keyPath)) {
		panic(fmt.Errorf("%w: %s", ErrMissingTriggerBinding, keyPath))
	}
}

// AssertAction panics unless an active action binding invokes action on owner.
func AssertAction(owner Ref, action string) {
	if BindingAssertionDisabled(owner) {
		return
	}

	if !anyActive(query(owner, action, GroupAction)) {
		panic(fmt.Errorf("%w: %s", ErrMissingActionBinding, action))
	}
}

// AssertGetter panics unless an active value binding reads keyPath of owner.
func AssertGetter(owner Ref, keyPath string) {
	if BindingAssertionDisabled(owner) {
		return
	}

	if !anyActive(GetterBindingsForKeyPath(owner, keyPath)) {
		panic(fmt.Errorf("%w: %s", ErrMissingGetterBinding, keyPath))
	}
}

// AssertSetter panics unless an active value binding writes keyPath of owner.
func AssertSetter(owner Ref, keyPath string) {
	if BindingAssertionDisabled(owner) {
		return
	}

	if !anyActive(SetterBindingsForKeyPath(owner, keyPath)) {
		panic(fmt.Errorf("%w: %s", ErrMissingSetterBinding, keyPath))
	}
}
