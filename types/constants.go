package types

// Struct tag names and reserved GraphQL tokens shared by query
// construction and response decoding.
const (
	// GraphQLTag names the struct tag holding a field's GraphQL
	// representation: name, alias, arguments or inline fragment.
	GraphQLTag = "graphql"

	// ScalarTag marks a field whose GraphQL value is a leaf even though the
	// Go type is composite. Tagged fields are neither expanded into a
	// selection set nor walked during decoding.
	ScalarTag = "scalar"

	// TypenameField is the meta field used to tell union members apart.
	TypenameField = "__typename"

	// FragmentPrefix starts an inline fragment tag.
	FragmentPrefix = "..."

	// FragmentOnPrefix starts a typed inline fragment tag ("... on Incident").
	FragmentOnPrefix = "... on "
)
