package binding

//go:generate go tool stringer -type=Group -linecomment -output=group_string.go

// Group classifies the role a binding plays for the object it is registered on.
type Group int

const (
	_            Group = iota
	GroupGetter        // getter
	GroupSetter        // setter
	GroupTrigger       // trigger
	GroupAction        // action
)

// Groups returns every group in registration order.
func Groups() []Group {
	return []Group{GroupGetter, GroupSetter, GroupTrigger, GroupAction}
}

// IsValid reports whether g is one of the defined groups.
func (g Group) IsValid() bool {
	return g >= GroupGetter && g <= GroupAction
}
