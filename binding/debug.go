package binding

import (
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"kvbind/keypath"
)

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
	MaxDepth:                3,
}

// DebugDescription lists the bindings of owner, one per line, grouped as
// getter, setter, trigger and action with key paths sorted. Value bindings
// also show the current value of the key path on owner.
func DebugDescription(owner Ref) string {
	r := RegistryOf(owner)
	if r != nil {
		prune(r.All())
	}

	if r == nil || r.Len() == 0 {
		return fmt.Sprintf("%s: no bindings\n", owner)
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "%s:\n", owner)

	for _, g := range Groups() {
		for _, key := range r.Keys(g) {
			for _, b := range r.Query(key, g) {
				fmt.Fprintf(&sb, "  %-7s %s: %s", g, key, b)

				if g == GroupGetter || g == GroupSetter {
					fmt.Fprintf(&sb, " = %s", currentValue(owner, key))
				}

				sb.WriteByte('\n')
			}
		}
	}

	return sb.String()
}

func currentValue(owner Ref, key string) string {
	obj, ok := owner.Object().(keypath.Object)
	if !ok {
		return "?"
	}

	p, err := keypath.Parse(key)
	if err != nil {
		return "?"
	}

	v, err := obj.ValueForKeyPath(p)
	if err != nil {
		return "error: " + err.Error()
	}

	return strings.TrimSpace(dumpConfig.Sprintf("%v", v))
}
