package types

import "reflect"

// GraphQLType is implemented by Go types whose GraphQL type name cannot be
// derived from the Go type name, e.g. an int64 that travels as BigInt.
// The name is used when declaring operation variables.
type GraphQLType interface {
	GetGraphQLType() string
}

// GraphqlTypeInterface is the reflect.Type of GraphQLType.
var GraphqlTypeInterface = reflect.TypeOf((*GraphQLType)(nil)).Elem()
