package gostructs

import (
	"go/types"
	"reflect"
	"strings"
	"unicode"
)

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// javaFieldName lowers the leading run of capitals so that Go initialisms read
// naturally: ID -> id, URLPath -> urlPath, Name -> name.
func javaFieldName(goName string) string {
	r := []rune(goName)
	n := 0
	for n < len(r) && unicode.IsUpper(r[n]) {
		n++
	}
	switch {
	case n == 0:
		return goName
	case n == 1 || n == len(r):
		return strings.ToLower(string(r[:n])) + string(r[n:])
	default:
		// The last capital starts the next word.
		return strings.ToLower(string(r[:n-1])) + string(r[n-1:])
	}
}

func underlyingStruct(t types.Type) (*types.Struct, bool) {
	switch tt := t.(type) {
	case *types.Pointer:
		if s, ok := tt.Elem().Underlying().(*types.Struct); ok {
			return s, true
		}
	default:
		if s, ok := tt.Underlying().(*types.Struct); ok {
			return s, false
		}
	}
	return nil, false
}

func isStructLike(t types.Type) bool {
	_, ok := t.Underlying().(*types.Struct)
	return ok
}

// jsonName returns the name from a json struct tag and whether the field is
// skipped with json:"-".
func jsonName(tag string) (name string, skip bool) {
	v, ok := reflect.StructTag(tag).Lookup("json")
	if !ok {
		return "", false
	}
	name, _, _ = strings.Cut(v, ",")
	if name == "-" {
		// json:"-," names a field "-".
		return "", !strings.Contains(v, ",")
	}
	return name, false
}
