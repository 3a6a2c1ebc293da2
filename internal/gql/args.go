package gql

import (
	"github.com/botobag/artemis/graphql"
)

// Argument accessors. Coerced argument values arrive as interface{}; absent
// optional arguments are simply missing from the map, while an explicit null
// is present with a nil value. The distinction matters for editPhoto's album
// argument, which is tri-state.

func stringArg(info graphql.ResolveInfo, name string) string {
	s, _ := info.Args().Get(name).(string)
	return s
}

func optStringArg(info graphql.ResolveInfo, name string) *string {
	v, ok := info.Args().Lookup(name)
	if !ok || v == nil {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return &s
}

func intArg(info graphql.ResolveInfo, name string, fallback int) int {
	if n, ok := info.Args().Get(name).(int); ok {
		return n
	}
	return fallback
}

func boolArg(info graphql.ResolveInfo, name string) bool {
	b, _ := info.Args().Get(name).(bool)
	return b
}

func optBoolArg(info graphql.ResolveInfo, name string) *bool {
	v, ok := info.Args().Lookup(name)
	if !ok || v == nil {
		return nil
	}
	b, ok := v.(bool)
	if !ok {
		return nil
	}
	return &b
}

func stringListArg(info graphql.ResolveInfo, name string) []string {
	v, ok := info.Args().Lookup(name)
	if !ok || v == nil {
		return nil
	}
	return toStringList(v)
}

func optStringListArg(info graphql.ResolveInfo, name string) *[]string {
	v, ok := info.Args().Lookup(name)
	if !ok || v == nil {
		return nil
	}
	list := toStringList(v)
	return &list
}

func toStringList(v interface{}) []string {
	raw, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// albumArg distinguishes "argument omitted" (set=false), "explicit null"
// (set=true, nil) and a concrete album id (set=true, non-nil).
func albumArg(info graphql.ResolveInfo) (value *string, set bool) {
	v, ok := info.Args().Lookup("album")
	if !ok {
		return nil, false
	}
	if v == nil {
		return nil, true
	}
	if s, ok := v.(string); ok {
		return &s, true
	}
	return nil, true
}
