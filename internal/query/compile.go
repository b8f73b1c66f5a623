// Package query compiles structured filter parameters into the
// text-based search grammar the Shortcut search endpoints understand.
//
// Each entity type has a declarative table of supported fields (see
// fields.go); Compile walks the table in order, rendering one clause
// per present parameter. The compiler is pure string assembly — it
// never touches the network.
package query

import "strings"

// Kind classifies how a field's clause is rendered.
type Kind int

const (
	// Scalar renders field:value with the value passed through as-is.
	Scalar Kind = iota
	// Text renders field:value, quoting the value when it contains
	// whitespace.
	Text
	// Flag renders the bare field name with no value, e.g. is:archived.
	Flag
	// Date validates the value as a date expression before rendering.
	Date
	// Me is a scalar whose literal value "me" is substituted with the
	// current user's mention name (supplied by the caller).
	Me
)

// Field is one entry of an entity's supported-field table.
type Field struct {
	Name string
	Kind Kind
}

// Param is one filter value. Negated clauses render with a ! prefix.
type Param struct {
	Value   string
	Negated bool
}

// Params maps field name to filter value. Fields absent from the map
// emit no clause.
type Params map[string]Param

// Set stores a string filter. A leading "!" on the value negates the
// clause and is stripped from it.
func (p Params) Set(name, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	negated := false
	if strings.HasPrefix(value, "!") {
		negated = true
		value = strings.TrimSpace(strings.TrimPrefix(value, "!"))
		if value == "" {
			return
		}
	}
	p[name] = Param{Value: value, Negated: negated}
}

// SetFlag stores a presence-only filter. enabled=false negates it, so
// archived=false compiles to !is:archived.
func (p Params) SetFlag(name string, enabled bool) {
	p[name] = Param{Negated: !enabled}
}

// MeValue is the sentinel users pass for owner/requester filters that
// should match the current authenticated user.
const MeValue = "me"

// UsesMe reports whether any Me-kind field in the table is set to the
// "me" sentinel, meaning the caller must resolve the current user's
// mention name before compiling.
func UsesMe(fields []Field, params Params) bool {
	for _, f := range fields {
		if f.Kind != Me {
			continue
		}
		if param, ok := params[f.Name]; ok && param.Value == MeValue {
			return true
		}
	}
	return false
}

// Compile renders params into a single space-joined query string.
// Clauses appear in field-table order, so output is deterministic.
// Parameters whose name is not in the table are ignored. An empty
// parameter bag compiles to the empty string.
//
// me is the current user's mention name, used only when a Me-kind
// field carries the "me" sentinel; callers resolve it up front (see
// UsesMe) so compilation itself stays free of network calls.
func Compile(fields []Field, params Params, me string) (string, error) {
	var clauses []string

	for _, f := range fields {
		param, ok := params[f.Name]
		if !ok {
			continue
		}
		if f.Kind != Flag && param.Value == "" {
			continue
		}

		prefix := ""
		if param.Negated {
			prefix = "!"
		}

		switch f.Kind {
		case Flag:
			clauses = append(clauses, prefix+f.Name)
		case Date:
			expr, err := parseDateExpr(param.Value)
			if err != nil {
				return "", err
			}
			clauses = append(clauses, prefix+f.Name+":"+expr)
		case Me:
			value := param.Value
			if value == MeValue {
				value = me
			}
			if value == "" {
				continue
			}
			clauses = append(clauses, prefix+f.Name+":"+quote(value))
		case Text:
			clauses = append(clauses, prefix+f.Name+":"+quote(param.Value))
		default: // Scalar
			clauses = append(clauses, prefix+f.Name+":"+param.Value)
		}
	}

	return strings.Join(clauses, " "), nil
}

// quote wraps values containing whitespace in double quotes; the
// grammar treats unquoted whitespace as a clause boundary.
func quote(v string) string {
	if strings.ContainsAny(v, " \t") {
		return `"` + v + `"`
	}
	return v
}
