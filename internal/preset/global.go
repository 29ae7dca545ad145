package preset

import (
	"fmt"
	"strings"
)

// GlobalAccess is the permission level of a declared global variable.
type GlobalAccess string

const (
	Readonly GlobalAccess = "readonly"
	Writable GlobalAccess = "writable"
	Disabled GlobalAccess = "off"
)

// ParseGlobal decodes a global declaration. Besides the canonical names it
// accepts the legacy forms still found in older presets: booleans, 0/1 and
// the "readable"/"writeable" spellings.
func ParseGlobal(v any) (GlobalAccess, error) {
	switch x := v.(type) {
	case GlobalAccess:
		return ParseGlobal(string(x))
	case bool:
		if x {
			return Writable, nil
		}
		return Readonly, nil
	case string:
		switch strings.ToLower(x) {
		case "readonly", "readable", "false":
			return Readonly, nil
		case "writable", "writeable", "true":
			return Writable, nil
		case "off":
			return Disabled, nil
		}
	case int, int64, uint64, float64:
		switch fmt.Sprint(x) {
		case "0":
			return Readonly, nil
		case "1":
			return Writable, nil
		}
	}
	return "", fmt.Errorf("invalid global access %v", v)
}
