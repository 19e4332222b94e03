package reflectutil

import (
	"reflect"
	"strconv"
)

// IsTrue reports whether s parses as a true boolean. Unparsable input
// is false.
func IsTrue(s string) bool {
	b, _ := strconv.ParseBool(s)
	return b
}

// IsIntegerKind reports whether k is a signed or unsigned integer kind.
// Uintptr is not a GraphQL integer.
func IsIntegerKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}
