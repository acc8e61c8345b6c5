//go:build kvbind_release

package binding

// AssertionsEnabled reports whether the Assert* functions check anything.
const AssertionsEnabled = false

// AssertTrigger does nothing in release builds.
func AssertTrigger(Ref, string) {}

// AssertAction does nothing in release builds.
func AssertAction(Ref, string) {}

// AssertGetter does nothing in release builds.
func AssertGetter(Ref, string) {}

// AssertSetter does nothing in release builds.
func AssertSetter(Ref, string) {}
