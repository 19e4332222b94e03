package graphql

import (
	"bytes"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"github.com/llehouerou/go-mcd/internal/reflectutil"
)

// argumentFieldInfo is one variable declared from a struct field.
type argumentFieldInfo struct {
	jsonName  string
	fieldType reflect.Type
	value     reflect.Value
}

// queryArguments renders the variable definitions for variables, sorted by
// name.
//
// E.g., map[string]any{"first": 10, "mcon": "x"} -> "$first:Int!$mcon:String!".
func queryArguments(variables any) string {
	var buf bytes.Buffer
	switch v := variables.(type) {
	case map[string]any:
		writeArgumentsFromMap(&buf, v)
	default:
		writeArgumentsFromFields(&buf, collectStructFieldsForArguments(variables))
	}
	return buf.String()
}

func writeArgumentsFromMap(buf *bytes.Buffer, variables map[string]any) {
	keys := make([]string, 0, len(variables))
	for k := range variables {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		_, _ = io.WriteString(buf, "$")
		_, _ = io.WriteString(buf, k)
		_, _ = io.WriteString(buf, ":")
		writeArgumentType(buf, reflect.TypeOf(variables[k]), variables[k], true)
	}
}

// collectStructFieldsForArguments lists the exported, json-tagged fields
// of the variables struct, sorted by json name. Anything other than a
// struct or pointer to struct panics: it is a programming error.
func collectStructFieldsForArguments(variables any) []argumentFieldInfo {
	val := reflect.ValueOf(variables)
	typ := reflect.TypeOf(variables)
	if typ.Kind() == reflect.Ptr {
		val = val.Elem()
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		panic(fmt.Sprintf("variables must be a struct or a map; got %T", variables))
	}

	var fields []argumentFieldInfo
	for i := 0; i < val.NumField(); i++ {
		field := typ.Field(i)
		if field.PkgPath != "" {
			continue
		}
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		fields = append(fields, argumentFieldInfo{
			jsonName:  name,
			fieldType: field.Type,
			value:     val.Field(i),
		})
	}

	sort.Slice(fields, func(i, j int) bool {
		return fields[i].jsonName < fields[j].jsonName
	})
	return fields
}

func writeArgumentsFromFields(buf *bytes.Buffer, fields []argumentFieldInfo) {
	for _, f := range fields {
		_, _ = io.WriteString(buf, "$")
		_, _ = io.WriteString(buf, f.jsonName)
		_, _ = io.WriteString(buf, ":")
		writeArgumentType(buf, f.fieldType, f.value.Interface(), true)
	}
}

// writeArgumentType writes the GraphQL type of a variable of Go type t.
// Pointers are nullable, every other type is written with a trailing "!".
func writeArgumentType(w io.Writer, t reflect.Type, v any, value bool) {
	if t == nil {
		// Untyped nil in a variables map.
		_, _ = io.WriteString(w, "String")
		return
	}

	if reflectutil.ImplementsGraphQLType(t) {
		var name string
		var ok bool
		if v != nil {
			name, ok = reflectutil.GetGraphQLType(reflect.ValueOf(v), t)
		}
		if !ok {
			name, ok = reflectutil.GetGraphQLTypeFromType(t)
		}
		if ok {
			_, _ = io.WriteString(w, name)
			if t.Kind() != reflect.Ptr {
				_, _ = io.WriteString(w, "!")
			}
			return
		}
	}

	if t.Kind() == reflect.Ptr {
		writeArgumentType(w, t.Elem(), nil, false)
		return
	}

	switch {
	case reflectutil.IsSelfMarshaling(t):
		// Custom scalars are declared by their Go type name, whatever the
		// underlying representation (uuid.UUID is a byte array).
		_, _ = io.WriteString(w, t.Name())
	case reflectutil.IsIntegerKind(t.Kind()):
		_, _ = io.WriteString(w, "Int")
	case t.Kind() == reflect.Slice || t.Kind() == reflect.Array:
		_, _ = io.WriteString(w, "[")
		writeArgumentType(w, t.Elem(), nil, true)
		_, _ = io.WriteString(w, "]")
	case t.Kind() == reflect.Float32 || t.Kind() == reflect.Float64:
		_, _ = io.WriteString(w, "Float")
	case t.Kind() == reflect.Bool:
		_, _ = io.WriteString(w, "Boolean")
	default:
		name := t.Name()
		if name == "string" {
			name = "String"
		}
		_, _ = io.WriteString(w, name)
	}

	if value {
		_, _ = io.WriteString(w, "!")
	}
}
