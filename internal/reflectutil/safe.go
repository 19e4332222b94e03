package reflectutil

import "reflect"

// IndexSafe returns v.Index(i), or an invalid Value when v is invalid or
// i is out of range. Query construction walks types through empty slices,
// so the value side is frequently missing.
func IndexSafe(v reflect.Value, i int) reflect.Value {
	if v.IsValid() && i >= 0 && i < v.Len() {
		return v.Index(i)
	}
	return reflect.Value{}
}

// ElemSafe returns the element of a pointer or interface, or an invalid
// Value.
func ElemSafe(v reflect.Value) reflect.Value {
	if v.IsValid() && (v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface) {
		return v.Elem()
	}
	return reflect.Value{}
}

// FieldSafe returns the i-th field of a struct value, or an invalid Value.
func FieldSafe(v reflect.Value, i int) reflect.Value {
	if v.IsValid() {
		return v.Field(i)
	}
	return reflect.Value{}
}

// IsNillable reports whether values of kind can be nil.
func IsNillable(kind reflect.Kind) bool {
	switch kind {
	case reflect.Ptr,
		reflect.Interface,
		reflect.Slice,
		reflect.Map,
		reflect.Chan,
		reflect.Func:
		return true
	default:
		return false
	}
}

// IsNilValue reports whether v is invalid or a nil of a nillable kind.
func IsNilValue(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	return IsNillable(v.Kind()) && v.IsNil()
}

// UnwrapToConcreteValue follows pointers and interfaces down to the
// concrete value. A nil along the way yields an invalid Value.
func UnwrapToConcreteValue(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

// NewZeroOrPointerValue returns new(T) for a pointer type *T and the zero
// value for any other type.
func NewZeroOrPointerValue(t reflect.Type) reflect.Value {
	if t.Kind() == reflect.Ptr {
		return reflect.New(t.Elem())
	}
	return reflect.Zero(t)
}
