// Package introspection fetches the schema a GraphQL server reports about
// itself and compares it with the embedded SDL, so that drift between the
// bindings and the live API shows up before a query fails.
package introspection

import (
	"context"
	"fmt"
	"strings"
)

// Query is the standard introspection query. Type references are
// unwrapped seven levels deep, enough for [[T!]!]!.
const Query = `query IntrospectionQuery {
  __schema {
    queryType { name }
    mutationType { name }
    subscriptionType { name }
    types { ...FullType }
    directives {
      name
      description
      locations
      args { ...InputValue }
    }
  }
}

fragment FullType on __Type {
  kind
  name
  description
  fields(includeDeprecated: true) {
    name
    description
    args { ...InputValue }
    type { ...TypeRef }
    isDeprecated
    deprecationReason
  }
  inputFields { ...InputValue }
  interfaces { ...TypeRef }
  enumValues(includeDeprecated: true) {
    name
    description
    isDeprecated
    deprecationReason
  }
  possibleTypes { ...TypeRef }
}

fragment InputValue on __InputValue {
  name
  description
  type { ...TypeRef }
  defaultValue
}

fragment TypeRef on __Type {
  kind
  name
  ofType {
    kind
    name
    ofType {
      kind
      name
      ofType {
        kind
        name
        ofType {
          kind
          name
          ofType {
            kind
            name
            ofType {
              kind
              name
              ofType {
                kind
                name
              }
            }
          }
        }
      }
    }
  }
}`

// Type kinds as reported by __Type.kind.
const (
	KindScalar      = "SCALAR"
	KindObject      = "OBJECT"
	KindInterface   = "INTERFACE"
	KindUnion       = "UNION"
	KindEnum        = "ENUM"
	KindInputObject = "INPUT_OBJECT"
	KindList        = "LIST"
	KindNonNull     = "NON_NULL"
)

// Executor runs a GraphQL document and decodes its data into v.
// *mcd.Client satisfies it.
type Executor interface {
	Exec(ctx context.Context, document string, v any, variables map[string]any) error
}

// Schema is the result of the introspection query.
type Schema struct {
	QueryType        *NamedRef
	MutationType     *NamedRef
	SubscriptionType *NamedRef
	Types            []Type
	Directives       []Directive
}

type NamedRef struct {
	Name string
}

// Type is a named type of the schema. Which lists are set depends on
// Kind.
type Type struct {
	Kind          string
	Name          string
	Description   *string
	Fields        []Field
	InputFields   []InputValue
	Interfaces    []TypeRef
	EnumValues    []EnumValue
	PossibleTypes []TypeRef
}

type Field struct {
	Name              string
	Description       *string
	Args              []InputValue
	Type              TypeRef
	IsDeprecated      bool
	DeprecationReason *string
}

// InputValue is an argument or an input object field. DefaultValue is in
// GraphQL literal syntax.
type InputValue struct {
	Name         string
	Description  *string
	Type         TypeRef
	DefaultValue *string
}

type EnumValue struct {
	Name              string
	Description       *string
	IsDeprecated      bool
	DeprecationReason *string
}

type Directive struct {
	Name        string
	Description *string
	Locations   []string
	Args        []InputValue
}

// TypeRef is a possibly wrapped reference to a named type.
type TypeRef struct {
	Kind   string
	Name   *string
	OfType *TypeRef
}

// String renders the reference in SDL syntax, e.g. "[String!]!".
func (r *TypeRef) String() string {
	if r == nil {
		return ""
	}
	switch r.Kind {
	case KindNonNull:
		return r.OfType.String() + "!"
	case KindList:
		return "[" + r.OfType.String() + "]"
	}
	if r.Name == nil {
		return ""
	}
	return *r.Name
}

// NamedType returns the name of the innermost type.
func (r *TypeRef) NamedType() string {
	for r != nil {
		if r.Name != nil {
			return *r.Name
		}
		r = r.OfType
	}
	return ""
}

// Fetch runs the introspection query through exec.
func Fetch(ctx context.Context, exec Executor) (*Schema, error) {
	var q struct {
		Schema Schema `graphql:"__schema"`
	}
	if err := exec.Exec(ctx, Query, &q, nil); err != nil {
		return nil, fmt.Errorf("introspection: %w", err)
	}
	if len(q.Schema.Types) == 0 {
		return nil, fmt.Errorf("introspection: server returned no types")
	}
	return &q.Schema, nil
}

// Type returns the type named name, or nil.
func (s *Schema) Type(name string) *Type {
	for i := range s.Types {
		if s.Types[i].Name == name {
			return &s.Types[i]
		}
	}
	return nil
}

// Field returns the field named name, or nil.
func (t *Type) Field(name string) *Field {
	for i := range t.Fields {
		if t.Fields[i].Name == name {
			return &t.Fields[i]
		}
	}
	return nil
}

// InputField returns the input field named name, or nil.
func (t *Type) InputField(name string) *InputValue {
	return findInputValue(t.InputFields, name)
}

// Arg returns the argument named name, or nil.
func (f *Field) Arg(name string) *InputValue {
	return findInputValue(f.Args, name)
}

func findInputValue(values []InputValue, name string) *InputValue {
	for i := range values {
		if values[i].Name == name {
			return &values[i]
		}
	}
	return nil
}

// IsIntrospectionType reports whether name is one of the __ types every
// server exposes.
func IsIntrospectionType(name string) bool {
	return strings.HasPrefix(name, "__")
}
