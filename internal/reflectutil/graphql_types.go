package reflectutil

import (
	"encoding"
	"encoding/json"
	"reflect"

	"github.com/llehouerou/go-mcd/types"
)

var (
	jsonMarshalerType = reflect.TypeOf((*json.Marshaler)(nil)).Elem()
	textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
)

// ImplementsGraphQLType reports whether t names its own GraphQL type via
// GetGraphQLType().
func ImplementsGraphQLType(t reflect.Type) bool {
	return t.Implements(types.GraphqlTypeInterface)
}

// IsSelfMarshaling reports whether t is a named type that controls its own
// JSON form. Such types travel as custom scalars (uuid.UUID, DateTime)
// whatever their underlying kind.
func IsSelfMarshaling(t reflect.Type) bool {
	if t.Name() == "" {
		return false
	}
	return t.Implements(jsonMarshalerType) || t.Implements(textMarshalerType)
}

// GetGraphQLType returns the GraphQL type name reported by v. It fails for
// types that do not implement types.GraphQLType and for nil values.
func GetGraphQLType(v reflect.Value, t reflect.Type) (string, bool) {
	if !ImplementsGraphQLType(t) || IsNilValue(v) {
		return "", false
	}
	named, ok := v.Interface().(types.GraphQLType)
	if !ok {
		return "", false
	}
	// An interface may still hold a typed nil pointer.
	if inner := reflect.ValueOf(named); inner.Kind() == reflect.Ptr && inner.IsNil() {
		return "", false
	}
	return named.GetGraphQLType(), true
}

// GetGraphQLTypeFromType returns the GraphQL type name of t without
// needing an instance: it asks a zero value (or a fresh pointer).
func GetGraphQLTypeFromType(t reflect.Type) (string, bool) {
	if !ImplementsGraphQLType(t) {
		return "", false
	}
	named, ok := NewZeroOrPointerValue(t).Interface().(types.GraphQLType)
	if !ok {
		return "", false
	}
	return named.GetGraphQLType(), true
}
