package gostructs

import (
	"go/types"

	"github.com/calumari/javagen/javapoet"
)

var (
	listClass     = javapoet.MustClassName("java.util", "List")
	mapClass      = javapoet.MustClassName("java.util", "Map")
	instantClass  = javapoet.MustClassName("java.time", "Instant")
	durationClass = javapoet.MustClassName("java.time", "Duration")
)

var basicTypes = map[types.BasicKind]javapoet.TypeName{
	types.Bool:    javapoet.Boolean,
	types.Int8:    javapoet.Byte,
	types.Int16:   javapoet.Short,
	types.Int32:   javapoet.Int,
	types.Int:     javapoet.Long,
	types.Int64:   javapoet.Long,
	types.Uint8:   javapoet.Short,
	types.Uint16:  javapoet.Int,
	types.Uint32:  javapoet.Long,
	types.Uint:    javapoet.Long,
	types.Uint64:  javapoet.Long,
	types.Uintptr: javapoet.Long,
	types.Float32: javapoet.Float,
	types.Float64: javapoet.Double,
	types.String:  javapoet.StringClass,
}

// typeMapper maps Go types to Java types. Structs declared in the source
// package become classes in the target Java package.
type typeMapper struct {
	pkg     *types.Package
	javaPkg string
}

func (m typeMapper) javaType(t types.Type) javapoet.TypeName {
	switch tt := t.(type) {
	case *types.Basic:
		if j, ok := basicTypes[tt.Kind()]; ok {
			return j
		}
	case *types.Pointer:
		return m.javaType(tt.Elem()).Box()
	case *types.Slice:
		if b, ok := tt.Elem().(*types.Basic); ok && b.Kind() == types.Byte {
			return javapoet.ArrayOf(javapoet.Byte)
		}
		return m.parameterized(listClass, tt.Elem())
	case *types.Array:
		return javapoet.ArrayOf(m.javaType(tt.Elem()))
	case *types.Map:
		return m.parameterized(mapClass, tt.Key(), tt.Elem())
	case *types.Named:
		return m.named(tt)
	case *types.Alias:
		return m.javaType(types.Unalias(tt))
	}
	return javapoet.ObjectClass
}

func (m typeMapper) named(t *types.Named) javapoet.TypeName {
	obj := t.Obj()
	if obj.Pkg() != nil && obj.Pkg().Path() == "time" {
		switch obj.Name() {
		case "Time":
			return instantClass
		case "Duration":
			return durationClass
		}
	}
	if obj.Pkg() == m.pkg && isStructLike(t) && t.TypeArgs().Len() == 0 {
		if c, err := javapoet.NewClassName(m.javaPkg, obj.Name()); err == nil {
			return c
		}
	}
	// Named non-structs such as "type Status string" map by their underlying type.
	if _, ok := t.Underlying().(*types.Struct); !ok {
		return m.javaType(t.Underlying())
	}
	return javapoet.ObjectClass
}

func (m typeMapper) parameterized(raw javapoet.TypeName, args ...types.Type) javapoet.TypeName {
	boxed := make([]javapoet.TypeName, 0, len(args))
	for _, a := range args {
		boxed = append(boxed, m.javaType(a).Box())
	}
	p, err := javapoet.ParameterizedTypeOf(raw, boxed...)
	if err != nil {
		return raw
	}
	return p
}
