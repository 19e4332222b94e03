// Package schema describes the Monte Carlo GraphQL API.
//
// schema.graphql, embedded in the package, is the local copy of the
// server schema. The Go types mirror it: each struct selects the fields of
// the GraphQL type of the same name and is used directly as a selection
// set by the graphql package. Field names follow the lowerCamelCase
// naming of the API, nullable fields are pointers and enumerations are
// typed strings.
//
// Output types never select a field leading back to one of their
// enclosing types, since selection sets cannot recurse. UserSummary
// selects a subset of User where the full type is not needed.
package schema
