package graphql

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/llehouerou/go-mcd/internal/ident"
	"github.com/llehouerou/go-mcd/internal/reflectutil"
	"github.com/llehouerou/go-mcd/types"
)

type constructOptionsOutput struct {
	operationName       string
	operationDirectives []string
}

func (coo constructOptionsOutput) operationDirectivesString() string {
	directives := strings.Join(coo.operationDirectives, " ")
	if directives != "" {
		return fmt.Sprintf(" %s ", directives)
	}
	return ""
}

func constructOptions(options []Option) (*constructOptionsOutput, error) {
	output := &constructOptionsOutput{}
	for _, option := range options {
		switch option.Type() {
		case optionTypeOperationName:
			output.operationName = option.String()
		case OptionTypeOperationDirective:
			output.operationDirectives = append(output.operationDirectives, option.String())
		default:
			return nil, fmt.Errorf("invalid query option type: %s", option.Type())
		}
	}
	return output, nil
}

// hasVariables reports whether variables should be declared: nil and empty
// maps declare nothing, anything else does.
func hasVariables(variables any) bool {
	if variables == nil {
		return false
	}
	v := reflect.ValueOf(variables)
	return v.Kind() != reflect.Map || v.Len() > 0
}

// constructOperation renders "<kind> <name>(<variables>) <directives>{...}".
// An anonymous query without variables or directives is written in the
// shorthand form "{...}".
func constructOperation(
	kind string,
	v any,
	variables any,
	options ...Option,
) (string, error) {
	selection, err := query(v)
	if err != nil {
		return "", err
	}

	opts, err := constructOptions(options)
	if err != nil {
		return "", err
	}

	if hasVariables(variables) {
		return fmt.Sprintf(
			"%s %s(%s)%s%s",
			kind,
			opts.operationName,
			queryArguments(variables),
			opts.operationDirectivesString(),
			selection,
		), nil
	}

	if opts.operationName == "" && len(opts.operationDirectives) == 0 {
		if kind == "query" {
			return selection, nil
		}
		return kind + selection, nil
	}

	return fmt.Sprintf(
		"%s %s%s%s",
		kind,
		opts.operationName,
		opts.operationDirectivesString(),
		selection,
	), nil
}

// ConstructQuery builds a query document from the struct v and variables.
func ConstructQuery(v any, variables any, options ...Option) (string, error) {
	return constructOperation("query", v, variables, options...)
}

// ConstructMutation builds a mutation document from the struct v and
// variables.
func ConstructMutation(v any, variables any, options ...Option) (string, error) {
	return constructOperation("mutation", v, variables, options...)
}

// query renders the minified selection set described by v.
//
// E.g., struct{Mcon string; FullTableID *string} -> "{mcon,fullTableId}".
func query(v any) (string, error) {
	var buf bytes.Buffer
	if err := writeQuery(&buf, reflect.TypeOf(v), reflect.ValueOf(v), false); err != nil {
		return "", fmt.Errorf("failed to write query: %w", err)
	}
	return buf.String(), nil
}

// writeQuery writes the selection set for t to w. Values are consulted
// only to resolve interfaces; everything else is driven by the type.
// With inline set, the fields of t are merged into the enclosing set.
func writeQuery(w io.Writer, t reflect.Type, v reflect.Value, inline bool) error {
	switch t.Kind() {
	case reflect.Interface:
		return writeInterfaceQuery(w, t, v, inline)
	case reflect.Ptr:
		if err := writeQuery(w, t.Elem(), reflectutil.ElemSafe(v), false); err != nil {
			return fmt.Errorf("failed to write query for ptr `%v`: %w", t, err)
		}
	case reflect.Struct:
		return writeStructQuery(w, t, v, inline)
	case reflect.Slice:
		if err := writeQuery(w, t.Elem(), reflectutil.IndexSafe(v, 0), false); err != nil {
			return fmt.Errorf("failed to write query for slice item `%v`: %w", t, err)
		}
	case reflect.Map:
		return fmt.Errorf("type %v is not supported, use a struct or Exec with a raw document", t)
	}
	return nil
}

func writeInterfaceQuery(w io.Writer, t reflect.Type, v reflect.Value, inline bool) error {
	if !v.IsValid() {
		return nil
	}
	concrete := reflect.ValueOf(v.Interface())
	if reflectutil.IsNilValue(concrete) {
		return nil
	}
	if err := writeQuery(w, concrete.Type(), concrete, inline); err != nil {
		return fmt.Errorf("failed to write query for interface `%v`: %w", t, err)
	}
	return nil
}

// fieldOutput is how one struct field appears in a selection set.
type fieldOutput struct {
	skip     bool
	name     string
	inline   bool
	isScalar bool
}

// processStructField decides the selection for field f: its tag, or its
// lowerCamelCase name. Anonymous untagged fields are inlined.
func processStructField(f reflect.StructField) fieldOutput {
	if f.PkgPath != "" && !f.Anonymous {
		return fieldOutput{skip: true}
	}
	tag, tagged := f.Tag.Lookup(types.GraphQLTag)
	if tag == "-" {
		return fieldOutput{skip: true}
	}

	out := fieldOutput{
		inline:   f.Anonymous && !tagged,
		isScalar: reflectutil.IsTrue(f.Tag.Get(types.ScalarTag)),
	}
	switch {
	case out.inline:
	case tagged:
		out.name = tag
	default:
		out.name = ident.ParseMixedCaps(f.Name).ToLowerCamelCase()
	}
	return out
}

func writeStructQuery(w io.Writer, t reflect.Type, v reflect.Value, inline bool) error {
	// Types that decode themselves are scalars and have no selection.
	if reflect.PointerTo(t).Implements(jsonUnmarshaler) {
		return nil
	}
	if !inline {
		_, _ = io.WriteString(w, "{")
	}
	written := 0
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		out := processStructField(f)
		if out.skip {
			continue
		}
		if written != 0 {
			_, _ = io.WriteString(w, ",")
		}
		written++

		if !out.inline {
			_, _ = io.WriteString(w, out.name)
		}
		if out.isScalar {
			continue
		}
		if err := writeQuery(w, f.Type, reflectutil.FieldSafe(v, i), out.inline); err != nil {
			return fmt.Errorf("failed to write query for struct field `%v`: %w", f.Name, err)
		}
	}
	if !inline {
		_, _ = io.WriteString(w, "}")
	}
	return nil
}

var jsonUnmarshaler = reflect.TypeOf((*json.Unmarshaler)(nil)).Elem()
