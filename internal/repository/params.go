package repository

import (
	"database/sql"
	"strings"
	"time"
)

// Param is one statement parameter. An empty Name binds the value positionally.
type Param struct {
	Name  string
	Value any
}

// Params is an ordered parameter list. A nil Params is the same as an empty one.
type Params []Param

// Named builds a named parameter. A leading @, : or $ in name is dropped when bound.
func Named(name string, value any) Param {
	return Param{Name: name, Value: value}
}

// Positional turns builder arguments into positional parameters.
func Positional(args ...any) Params {
	params := make(Params, len(args))
	for i, arg := range args {
		params[i] = Param{Value: arg}
	}
	return params
}

// Args sanitizes every value and returns the list ready to bind.
func (p Params) Args() []any {
	args := make([]any, 0, len(p))
	for _, param := range Sanitize(p) {
		name := strings.TrimLeft(param.Name, "@:$")
		if name == "" {
			args = append(args, param.Value)
			continue
		}
		args = append(args, sql.Named(name, param.Value))
	}
	return args
}

// Sanitize returns a copy of params with every date/time value truncated to whole seconds.
func Sanitize(params Params) Params {
	out := make(Params, len(params))
	for i, param := range params {
		out[i] = Param{Name: param.Name, Value: SanitizeValue(param.Value)}
	}
	return out
}

// SanitizeValue drops the sub-second part of date/time values. The location is kept
// and other values are returned unchanged.
func SanitizeValue(v any) any {
	switch t := v.(type) {
	case time.Time:
		return t.Truncate(time.Second)
	case *time.Time:
		if t == nil {
			return t
		}
		truncated := t.Truncate(time.Second)
		return &truncated
	case sql.NullTime:
		if t.Valid {
			t.Time = t.Time.Truncate(time.Second)
		}
		return t
	default:
		return v
	}
}
