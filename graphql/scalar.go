package graphql

// ID is the GraphQL ID scalar. The Monte Carlo API uses relay-style global
// ids for Node objects; they are opaque strings.
type ID string

// NewID returns a pointer to an ID, for optional ID variables.
func NewID(v string) *ID {
	id := ID(v)
	return &id
}
