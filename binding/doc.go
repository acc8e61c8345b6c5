// Package binding keeps attributes of host objects synchronized and wires
// attribute changes to named actions.
//
// A value binding copies the value at a key path of a source object to a key
// path of a target object whenever the source changes, optionally through a
// transform.Transformer and optionally in both directions. An action binding
// invokes a named action on a target whenever a trigger attribute of the
// source changes.
//
// Bindings do not own their endpoints. Objects are referenced through Ref,
// created with To, which holds a weak pointer; a binding whose endpoint has
// been collected deactivates itself the next time it is notified. A value
// binding created with RetainsTarget keeps its target alive for as long as
// its source is alive.
//
// Every bound object gets a Registry in a process-wide side table, indexed by
// key path and Group. The registry drives the query functions and the
// AssertTrigger, AssertAction, AssertGetter and AssertSetter checks; the
// checks compile to nothing when built with the kvbind_release tag.
//
// Propagation is synchronous on the goroutine that changed the source. A
// binding never re-enters itself: a change that arrives while the binding is
// writing its own destination is ignored. Errors and panics raised while
// propagating are reported through Options.OnError, or logged, and never
// escape into the code that changed the source.
package binding
