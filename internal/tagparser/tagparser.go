// Package tagparser reads the `graphql:"..."` struct tags that describe a
// field's alias, arguments or inline fragment.
package tagparser

import (
	"strings"

	"github.com/llehouerou/go-mcd/types"
)

// ParsedTag is the structured form of a graphql struct tag.
type ParsedTag struct {
	// FieldName is the schema field being selected.
	FieldName string
	// Arguments is the raw text between the outer parentheses.
	Arguments string
	// Alias is the response key requested for the field, if any.
	Alias string
	// IsFragment is set for inline fragments ("..." tags).
	IsFragment bool
	// TypeName is the type condition of a "... on T" fragment.
	TypeName string
}

// ResponseKey returns the key the server uses for the field in the
// response: the alias when present, otherwise the field name.
func (p ParsedTag) ResponseKey() string {
	if p.Alias != "" {
		return p.Alias
	}
	return p.FieldName
}

// ParseGraphQLTag parses a graphql tag value.
//
//	"mcon"                                     -> {FieldName: "mcon"}
//	"getTable(mcon: $mcon)"                    -> {FieldName: "getTable", Arguments: "mcon: $mcon"}
//	"upstream: getTableLineage(hops: 2)"       -> {Alias: "upstream", FieldName: "getTableLineage", Arguments: "hops: 2"}
//	"... on VolumeConfiguration"               -> {IsFragment: true, TypeName: "VolumeConfiguration"}
func ParseGraphQLTag(tag string) (ParsedTag, error) {
	tag = strings.TrimSpace(tag)

	var parsed ParsedTag
	switch {
	case tag == "":
		return parsed, nil
	case tag == "-":
		parsed.FieldName = "-"
		return parsed, nil
	case strings.HasPrefix(tag, types.FragmentPrefix):
		parsed.IsFragment = true
		rest := strings.TrimSpace(tag[len(types.FragmentPrefix):])
		if strings.HasPrefix(rest, "on ") {
			parsed.TypeName = strings.TrimSpace(rest[len("on "):])
		}
		return parsed, nil
	}

	// The alias separator must be looked up before the arguments, which
	// may contain colons of their own.
	head := tag
	if open := strings.Index(tag, "("); open != -1 {
		if end := strings.LastIndex(tag, ")"); end > open {
			parsed.Arguments = tag[open+1 : end]
		}
		head = strings.TrimSpace(tag[:open])
	}

	if colon := strings.Index(head, ":"); colon != -1 {
		parsed.Alias = strings.TrimSpace(head[:colon])
		parsed.FieldName = strings.TrimSpace(head[colon+1:])
	} else {
		parsed.FieldName = strings.TrimSpace(head)
	}
	return parsed, nil
}
