package introspection

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
)

// Severity ranks a Drift.
type Severity int

const (
	// SeverityInfo marks something the live schema has and the local one
	// lacks. Existing queries keep working.
	SeverityInfo Severity = iota
	// SeverityBreaking marks a local declaration the live schema no longer
	// matches. Queries using it may be rejected or decode wrongly.
	SeverityBreaking
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityBreaking:
		return "breaking"
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

// Drift is one difference between the local and the live schema. Path
// names the type, "Type.field", "Type.field(arg)" or "Enum.VALUE".
type Drift struct {
	Path     string
	Severity Severity
	Message  string
}

func (d Drift) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Severity, d.Path, d.Message)
}

// Breaking reports whether any drift is breaking.
func Breaking(drifts []Drift) bool {
	for _, d := range drifts {
		if d.Severity == SeverityBreaking {
			return true
		}
	}
	return false
}

var builtinScalars = map[string]bool{
	"String":  true,
	"Int":     true,
	"Float":   true,
	"Boolean": true,
	"ID":      true,
}

// Diff compares every type declared in local with its live counterpart.
// The result is sorted by path.
func Diff(local *ast.Schema, live *Schema) []Drift {
	var d differ
	for _, def := range local.Types {
		if def.BuiltIn || IsIntrospectionType(def.Name) {
			continue
		}
		lt := live.Type(def.Name)
		if lt == nil {
			d.breaking(def.Name, "type missing from live schema")
			continue
		}
		d.diffType(def, lt)
	}
	for _, lt := range live.Types {
		if IsIntrospectionType(lt.Name) || isServerType(lt.Name) || builtinScalars[lt.Name] {
			continue
		}
		if _, ok := local.Types[lt.Name]; !ok {
			d.info(lt.Name, fmt.Sprintf("%s only in live schema", strings.ToLower(kindName(lt.Kind))))
		}
	}

	sort.SliceStable(d.drifts, func(i, j int) bool {
		if d.drifts[i].Path != d.drifts[j].Path {
			return d.drifts[i].Path < d.drifts[j].Path
		}
		return d.drifts[i].Message < d.drifts[j].Message
	})
	return d.drifts
}

// isServerType reports whether name is a type a server adds on its own,
// such as the _Service, _Any and _Entity types of federation support.
func isServerType(name string) bool {
	return strings.HasPrefix(name, "_") && !IsIntrospectionType(name)
}

type differ struct {
	drifts []Drift
}

func (d *differ) breaking(path, msg string) {
	d.drifts = append(d.drifts, Drift{Path: path, Severity: SeverityBreaking, Message: msg})
}

func (d *differ) info(path, msg string) {
	d.drifts = append(d.drifts, Drift{Path: path, Severity: SeverityInfo, Message: msg})
}

func (d *differ) diffType(def *ast.Definition, lt *Type) {
	if string(def.Kind) != lt.Kind {
		d.breaking(def.Name, fmt.Sprintf("kind is %s, live schema has %s", def.Kind, lt.Kind))
		return
	}
	switch def.Kind {
	case ast.Object, ast.Interface:
		d.diffFields(def, lt)
		d.diffInterfaces(def, lt)
	case ast.InputObject:
		d.diffInputFields(def, lt)
	case ast.Enum:
		d.diffEnumValues(def, lt)
	case ast.Union:
		d.diffPossibleTypes(def, lt)
	}
}

func (d *differ) diffFields(def *ast.Definition, lt *Type) {
	local := make(map[string]bool, len(def.Fields))
	for _, f := range def.Fields {
		if strings.HasPrefix(f.Name, "__") {
			continue
		}
		local[f.Name] = true
		path := def.Name + "." + f.Name
		lf := lt.Field(f.Name)
		if lf == nil {
			d.breaking(path, "field missing from live schema")
			continue
		}
		d.diffTypeRef(path, f.Type, &lf.Type)
		d.diffArgs(path, f.Arguments, lf)
	}
	for _, lf := range lt.Fields {
		if !local[lf.Name] {
			d.info(def.Name+"."+lf.Name, "field only in live schema")
		}
	}
}

func (d *differ) diffArgs(fieldPath string, args ast.ArgumentDefinitionList, lf *Field) {
	local := make(map[string]bool, len(args))
	for _, a := range args {
		local[a.Name] = true
		path := fieldPath + "(" + a.Name + ")"
		la := lf.Arg(a.Name)
		if la == nil {
			d.breaking(path, "argument missing from live schema")
			continue
		}
		d.diffTypeRef(path, a.Type, &la.Type)
		d.diffDefault(path, a.DefaultValue, la.DefaultValue)
	}
	for _, la := range lf.Args {
		if local[la.Name] {
			continue
		}
		path := fieldPath + "(" + la.Name + ")"
		if la.Type.Kind == KindNonNull && la.DefaultValue == nil {
			d.breaking(path, "required argument only in live schema")
			continue
		}
		d.info(path, "argument only in live schema")
	}
}

func (d *differ) diffInputFields(def *ast.Definition, lt *Type) {
	local := make(map[string]bool, len(def.Fields))
	for _, f := range def.Fields {
		local[f.Name] = true
		path := def.Name + "." + f.Name
		lf := lt.InputField(f.Name)
		if lf == nil {
			d.breaking(path, "input field missing from live schema")
			continue
		}
		d.diffTypeRef(path, f.Type, &lf.Type)
		d.diffDefault(path, f.DefaultValue, lf.DefaultValue)
	}
	for _, lf := range lt.InputFields {
		if local[lf.Name] {
			continue
		}
		path := def.Name + "." + lf.Name
		if lf.Type.Kind == KindNonNull && lf.DefaultValue == nil {
			d.breaking(path, "required input field only in live schema")
			continue
		}
		d.info(path, "input field only in live schema")
	}
}

func (d *differ) diffEnumValues(def *ast.Definition, lt *Type) {
	live := make(map[string]bool, len(lt.EnumValues))
	for _, v := range lt.EnumValues {
		live[v.Name] = true
	}
	local := make(map[string]bool, len(def.EnumValues))
	for _, v := range def.EnumValues {
		local[v.Name] = true
		if !live[v.Name] {
			d.breaking(def.Name+"."+v.Name, "enum value missing from live schema")
		}
	}
	for _, v := range lt.EnumValues {
		if !local[v.Name] {
			d.info(def.Name+"."+v.Name, "enum value only in live schema")
		}
	}
}

func (d *differ) diffInterfaces(def *ast.Definition, lt *Type) {
	live := make(map[string]bool, len(lt.Interfaces))
	for _, r := range lt.Interfaces {
		live[r.NamedType()] = true
	}
	for _, name := range def.Interfaces {
		if !live[name] {
			d.breaking(def.Name, "does not implement "+name+" in live schema")
		}
	}
}

func (d *differ) diffPossibleTypes(def *ast.Definition, lt *Type) {
	live := make(map[string]bool, len(lt.PossibleTypes))
	for _, r := range lt.PossibleTypes {
		live[r.NamedType()] = true
	}
	local := make(map[string]bool, len(def.Types))
	for _, name := range def.Types {
		local[name] = true
		if !live[name] {
			d.breaking(def.Name, "member "+name+" missing from live schema")
		}
	}
	for name := range live {
		if !local[name] {
			d.info(def.Name, "member "+name+" only in live schema")
		}
	}
}

func (d *differ) diffTypeRef(path string, local *ast.Type, live *TypeRef) {
	if got, want := local.String(), live.String(); got != want {
		d.breaking(path, fmt.Sprintf("type is %s, live schema has %s", got, want))
	}
}

func (d *differ) diffDefault(path string, local *ast.Value, live *string) {
	var l, r string
	if local != nil {
		l = local.String()
	}
	if live != nil {
		r = *live
	}
	if l == r {
		return
	}
	switch {
	case l == "":
		d.breaking(path, fmt.Sprintf("live schema adds default %s", r))
	case r == "":
		d.breaking(path, fmt.Sprintf("default %s missing from live schema", l))
	default:
		d.breaking(path, fmt.Sprintf("default is %s, live schema has %s", l, r))
	}
}

func kindName(kind string) string {
	return strings.ReplaceAll(kind, "_", " ")
}
