// Package jsonutil decodes GraphQL response data into the annotated structs
// the queries were built from.
package jsonutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/llehouerou/go-mcd/internal/reflectutil"
	"github.com/llehouerou/go-mcd/internal/tagparser"
	"github.com/llehouerou/go-mcd/types"
)

// maxTemplateSliceSize is the number of elements a destination slice may
// hold before decoding: none, or one element used as a template for every
// decoded item.
const maxTemplateSliceSize = 1

var jsonUnmarshalerType = reflect.TypeOf((*json.Unmarshaler)(nil)).Elem()

// decodesItself reports whether values of t (or *t) unmarshal their own
// JSON. Such values are leaves: json.RawMessage, timestamps, custom
// scalars.
func decodesItself(t reflect.Type) bool {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return reflect.PointerTo(t).Implements(jsonUnmarshalerType)
}

// UnmarshalGraphQL parses the JSON-encoded GraphQL response data and stores
// the result in the query struct pointed to by v.
//
// Keys are matched against graphql tags (the alias when one is given) and,
// for untagged fields, against field names case-insensitively. A key with
// no destination is an error: the struct that built the query is expected
// to describe every key of the response.
//
// Inline fragments ("... on T") and embedded structs receive the keys of
// the enclosing object. When "__typename" precedes them, a key declared by
// several fragments only lands in the fragment matching the typename.
func UnmarshalGraphQL(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := (&decoder{tokenizer: dec}).Decode(v); err != nil {
		return err
	}
	tok, err := dec.Token()
	switch err {
	case io.EOF:
		return nil
	case nil:
		return fmt.Errorf("invalid token '%v' after top-level value", tok)
	default:
		return err
	}
}

// decoder walks the token stream and writes into one or more parallel
// destinations at once: the field itself plus every fragment or embedded
// struct that shares the enclosing object.
type decoder struct {
	tokenizer interface {
		Token() (json.Token, error)
		Decode(v any) error
	}

	// parseState tracks the objects and arrays we are inside of.
	parseState []json.Delim

	vs valueStack

	// currentTypename is the __typename of the innermost object; it selects
	// which inline fragment receives keys that several fragments declare.
	// Enclosing objects' typenames are saved in outerTypenames.
	currentTypename string
	outerTypenames  []string

	// currentKey is the object key being decoded.
	currentKey string
}

type stack []reflect.Value

func (s stack) Top() reflect.Value {
	return s[len(s)-1]
}

func (s stack) Pop() stack {
	return s[:len(s)-1]
}

// valueStack keeps the destination stacks and the fragment type condition
// of each stack in step.
type valueStack struct {
	values        []stack
	fragmentTypes []string
}

func (vs *valueStack) len() int {
	return len(vs.values)
}

func (vs *valueStack) top(i int) reflect.Value {
	return vs.values[i].Top()
}

func (vs *valueStack) push(i int, v reflect.Value) {
	vs.values[i] = append(vs.values[i], v)
}

func (vs *valueStack) addStack(v reflect.Value, fragmentType string) {
	vs.values = append(vs.values, stack{v})
	vs.fragmentTypes = append(vs.fragmentTypes, fragmentType)
}

// popAll pops every stack and drops the ones left empty.
func (vs *valueStack) popAll() {
	var values []stack
	var fragmentTypes []string
	for i := range vs.values {
		vs.values[i] = vs.values[i].Pop()
		if len(vs.values[i]) > 0 {
			values = append(values, vs.values[i])
			fragmentTypes = append(fragmentTypes, vs.fragmentType(i))
		}
	}
	vs.values = values
	vs.fragmentTypes = fragmentTypes
}

// popLeftArrayTemplates drops the template element kept at index 0 of
// every slice being decoded.
func (vs *valueStack) popLeftArrayTemplates() {
	for i := range vs.values {
		v := reflectutil.UnwrapToConcreteValue(vs.values[i].Top())
		if v.IsValid() && v.Kind() == reflect.Slice {
			v.Set(v.Slice(1, v.Len()))
		}
	}
}

func (vs *valueStack) fragmentType(i int) string {
	if i < len(vs.fragmentTypes) {
		return vs.fragmentTypes[i]
	}
	return ""
}

// Decode decodes one JSON value from the tokenizer into v.
func (d *decoder) Decode(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr {
		return fmt.Errorf("cannot decode into non-pointer %T", v)
	}
	d.vs = valueStack{
		values:        []stack{{rv.Elem()}},
		fragmentTypes: []string{""},
	}
	return d.decode()
}

// decode runs until every destination stack is empty. The top of each
// stack is where the next JSON value goes.
func (d *decoder) decode() error {
	for d.vs.len() > 0 {
		tok, err := d.tokenizer.Token()
		if err == io.EOF {
			return errors.New("unexpected end of JSON input")
		} else if err != nil {
			return err
		}

		switch {
		case d.state() == '{' && tok != json.Delim('}'):
			key, ok := tok.(string)
			if !ok {
				return errors.New("unexpected non-key in JSON input")
			}
			tok, err = d.decodeObjectKey(key)
			if err != nil {
				return err
			}
		case d.state() == '[' && tok != json.Delim(']'):
			if err := d.decodeArrayValue(); err != nil {
				return err
			}
		}

		switch tok := tok.(type) {
		case string, json.Number, bool, nil, json.RawMessage:
			if err := d.decodeScalarValue(tok); err != nil {
				return err
			}
		case json.Delim:
			if err := d.handleDelimiter(tok); err != nil {
				return err
			}
		default:
			return errors.New("unexpected token in JSON input")
		}
	}
	return nil
}

// fieldInfo is the destination found for a key in one stack.
type fieldInfo struct {
	field         reflect.Value
	isScalar      bool
	fragmentMatch bool
}

// decodeObjectKey pushes the destinations of key and returns the token
// holding its value.
func (d *decoder) decodeObjectKey(key string) (any, error) {
	d.currentKey = key

	fields, matchingFragmentHasField, raw := d.findFieldsForKey(key)
	found, isScalar := d.selectAndPushFields(fields, matchingFragmentHasField)
	if !found {
		return nil, fmt.Errorf(
			"struct field for %q doesn't exist in any of %v places to unmarshal",
			key,
			d.vs.len(),
		)
	}
	return d.readNextToken(raw, isScalar)
}

// findFieldsForKey looks key up in the top of every stack. It also reports
// whether a fragment matching the current __typename declares the key, and
// whether any destination decodes the raw JSON itself.
func (d *decoder) findFieldsForKey(key string) ([]fieldInfo, bool, bool) {
	fields := make([]fieldInfo, d.vs.len())
	matchingFragmentHasField := false
	raw := false

	for i := 0; i < d.vs.len(); i++ {
		v := reflectutil.UnwrapToConcreteValue(d.vs.top(i))

		var f reflect.Value
		var scalar bool
		if v.Kind() == reflect.Struct {
			f, scalar = fieldByGraphQLName(v, key)
			if f.IsValid() && decodesItself(f.Type()) {
				raw = true
			}
		}

		fragmentMatch := true
		if fragType := d.vs.fragmentType(i); fragType != "" && d.currentTypename != "" {
			fragmentMatch = fragType == d.currentTypename
		}

		fields[i] = fieldInfo{
			field:         f,
			isScalar:      scalar,
			fragmentMatch: fragmentMatch,
		}
		if f.IsValid() && fragmentMatch {
			matchingFragmentHasField = true
		}
	}
	return fields, matchingFragmentHasField, raw
}

// selectAndPushFields pushes each destination, dropping the ones that
// belong to a non-matching fragment when a matching fragment also has the
// key.
func (d *decoder) selectAndPushFields(
	fields []fieldInfo,
	matchingFragmentHasField bool,
) (found, isScalar bool) {
	for i := 0; i < d.vs.len(); i++ {
		f := fields[i].field
		if f.IsValid() {
			found = true
			if fields[i].isScalar {
				isScalar = true
			}
			if !fields[i].fragmentMatch && matchingFragmentHasField {
				f = reflect.Value{}
			}
		}
		d.vs.push(i, f)
	}
	return found, isScalar
}

// readNextToken returns the value following a key. Self-decoding and
// scalar-tagged destinations get the whole value as a json.RawMessage.
func (d *decoder) readNextToken(raw, isScalar bool) (any, error) {
	if raw || isScalar {
		var data json.RawMessage
		if err := d.tokenizer.Decode(&data); err != nil {
			return nil, err
		}
		return data, nil
	}

	tok, err := d.tokenizer.Token()
	if err == io.EOF {
		return nil, errors.New("unexpected end of JSON input")
	} else if err != nil {
		return nil, err
	}
	return tok, nil
}

// decodeArrayValue appends a copy of the template element to every slice
// destination and pushes the new element.
func (d *decoder) decodeArrayValue() error {
	someSliceExist := false
	for i := 0; i < d.vs.len(); i++ {
		v := reflectutil.UnwrapToConcreteValue(d.vs.top(i))

		var f reflect.Value
		if v.IsValid() && v.Kind() == reflect.Slice {
			v.Set(reflect.Append(v, v.Index(0)))
			f = v.Index(v.Len() - 1)
			someSliceExist = true
		}
		d.vs.push(i, f)
	}
	if !someSliceExist {
		return fmt.Errorf("slice doesn't exist in any of %v places to unmarshal", d.vs.len())
	}
	return nil
}

func (d *decoder) decodeScalarValue(tok any) error {
	if d.currentKey == types.TypenameField {
		if typename, ok := tok.(string); ok {
			d.currentTypename = typename
		}
	}

	for i := 0; i < d.vs.len(); i++ {
		v := d.vs.top(i)
		if !v.IsValid() {
			continue
		}
		if err := unmarshalValue(tok, v); err != nil {
			return err
		}
	}
	d.vs.popAll()
	return nil
}

// decodeObjectStart allocates nil pointers on '{' and registers every
// inline fragment and embedded struct of the destinations as additional
// destinations for the object's keys.
func (d *decoder) decodeObjectStart() {
	d.pushState('{')
	d.outerTypenames = append(d.outerTypenames, d.currentTypename)
	d.currentTypename = ""

	frontier := make([]reflect.Value, d.vs.len())
	for i := 0; i < d.vs.len(); i++ {
		v := d.vs.top(i)
		frontier[i] = v
		if v.Kind() == reflect.Ptr && v.IsNil() {
			v.Set(reflect.New(v.Type().Elem()))
		}
	}

	for len(frontier) > 0 {
		v := reflectutil.UnwrapToConcreteValue(frontier[0])
		frontier = frontier[1:]
		if v.Kind() != reflect.Struct {
			continue
		}
		for i := 0; i < v.NumField(); i++ {
			field := v.Type().Field(i)
			switch {
			case isGraphQLFragment(field):
				tag := field.Tag.Get(types.GraphQLTag)
				d.vs.addStack(v.Field(i), extractFragmentTypename(tag))
				frontier = append(frontier, v.Field(i))
			case field.Anonymous:
				d.vs.addStack(v.Field(i), "")
				frontier = append(frontier, v.Field(i))
			}
		}
	}
}

func (d *decoder) handleObjectEnd() {
	d.vs.popAll()
	d.popState()
	if n := len(d.outerTypenames); n > 0 {
		d.currentTypename = d.outerTypenames[n-1]
		d.outerTypenames = d.outerTypenames[:n-1]
	}
}

func (d *decoder) handleArrayEnd() {
	d.vs.popLeftArrayTemplates()
	d.vs.popAll()
	d.popState()
}

func (d *decoder) handleDelimiter(tok json.Delim) error {
	switch tok {
	case '{':
		d.decodeObjectStart()
		return nil
	case '[':
		return d.decodeArrayStart()
	case '}':
		d.handleObjectEnd()
		return nil
	case ']':
		d.handleArrayEnd()
		return nil
	default:
		return errors.New("unexpected delimiter in JSON input")
	}
}

// decodeArrayStart resets every slice destination to hold just its
// template element (a zero value when none was given).
func (d *decoder) decodeArrayStart() error {
	d.pushState('[')

	for i := 0; i < d.vs.len(); i++ {
		v := d.vs.top(i)
		if v.Kind() == reflect.Ptr && v.IsNil() {
			v.Set(reflect.New(v.Type().Elem()))
		}
		v = reflectutil.UnwrapToConcreteValue(v)
		if v.Kind() != reflect.Slice {
			continue
		}

		if v.Len() > maxTemplateSliceSize {
			return fmt.Errorf(
				"template slice can only have %d item, got %d",
				maxTemplateSliceSize,
				v.Len(),
			)
		}
		template := reflect.Zero(v.Type().Elem())
		if v.Len() == maxTemplateSliceSize {
			template = v.Index(0)
		}
		v.Set(reflect.Append(reflect.MakeSlice(v.Type(), 0, 1), template))
	}
	return nil
}

func (d *decoder) pushState(s json.Delim) {
	d.parseState = append(d.parseState, s)
}

func (d *decoder) popState() {
	d.parseState = d.parseState[:len(d.parseState)-1]
}

// state returns the innermost parse state, or 0 at top level.
func (d *decoder) state() json.Delim {
	if len(d.parseState) == 0 {
		return 0
	}
	return d.parseState[len(d.parseState)-1]
}

// fieldByGraphQLName returns the exported field of struct v whose GraphQL
// response key is name, and whether it is tagged as a scalar.
func fieldByGraphQLName(v reflect.Value, name string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue
		}
		if hasGraphQLName(f, name) {
			return v.Field(i), reflectutil.IsTrue(f.Tag.Get(types.ScalarTag))
		}
	}
	return reflect.Value{}, false
}

// hasGraphQLName reports whether the response key of f is name.
func hasGraphQLName(f reflect.StructField, name string) bool {
	tag, ok := f.Tag.Lookup(types.GraphQLTag)
	if !ok {
		// Untagged fields are named by ident's lowerCamelCase rendering,
		// which differs from the Go name only in letter case.
		return strings.EqualFold(f.Name, name)
	}
	parsed, err := tagparser.ParseGraphQLTag(tag)
	if err != nil || parsed.IsFragment {
		return false
	}
	return parsed.ResponseKey() == name
}

func isGraphQLFragment(f reflect.StructField) bool {
	tag, ok := f.Tag.Lookup(types.GraphQLTag)
	if !ok {
		return false
	}
	parsed, err := tagparser.ParseGraphQLTag(tag)
	return err == nil && parsed.IsFragment
}

// extractFragmentTypename returns T for a "... on T" tag and "" otherwise.
func extractFragmentTypename(tag string) string {
	parsed, err := tagparser.ParseGraphQLTag(tag)
	if err != nil || !parsed.IsFragment {
		return ""
	}
	return parsed.TypeName
}

// unmarshalValue stores the JSON token value into v through encoding/json,
// so custom UnmarshalJSON methods of scalar types apply. v must be
// settable.
func unmarshalValue(value any, v reflect.Value) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	ty := v.Type()
	if ty.Kind() == reflect.Interface {
		if !v.Elem().IsValid() {
			return json.Unmarshal(b, v.Addr().Interface())
		}
		ty = v.Elem().Type()
	}
	newVal := reflect.New(ty)
	if err := json.Unmarshal(b, newVal.Interface()); err != nil {
		return err
	}
	v.Set(newVal.Elem())
	return nil
}
