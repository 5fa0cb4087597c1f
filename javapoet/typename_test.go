package javapoet

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestTypeName(t *testing.T) {
	mapClass := MustClassName("java.util", "Map")
	nullable := MustAnnotation(MustClassName("org.jspecify.annotations", "Nullable"))

	t.Run("canonical form does not depend on construction path", func(t *testing.T) {
		guessed, err := BestGuessClassName("java.util.Map")
		require.NoError(t, err)
		integer, err := Int.Box().Unbox()
		require.NoError(t, err)

		a := MustParameterized(mapClass, StringClass, Int.Box())
		b := MustParameterized(guessed, MustClassName("java.lang", "String"), integer.Box())
		require.Equal(t, "java.util.Map<java.lang.String, java.lang.Integer>", a.CanonicalForm())
		require.Equal(t, a.CanonicalForm(), b.CanonicalForm())
		require.True(t, a.Equal(b))
	})

	t.Run("nested class names", func(t *testing.T) {
		entry := MustClassName("java.util", "Map", "Entry")
		guessed, err := BestGuessClassName("java.util.Map.Entry")
		require.NoError(t, err)
		require.True(t, entry.Equal(guessed))
		require.Equal(t, "java.util.Map.Entry", entry.CanonicalName())
		require.Equal(t, "Entry", entry.SimpleName())
		require.Equal(t, []string{"Map", "Entry"}, entry.SimpleNames())
		require.Equal(t, "java.util", entry.PackageName())

		enclosing, ok := entry.EnclosingClassName()
		require.True(t, ok)
		require.True(t, enclosing.Equal(mapClass))
		require.True(t, entry.TopLevelClassName().Equal(mapClass))

		_, ok = mapClass.EnclosingClassName()
		require.False(t, ok)

		peer, err := entry.PeerClass("Node")
		require.NoError(t, err)
		require.Equal(t, "java.util.Map.Node", peer.CanonicalName())

		nested, err := entry.NestedClass("Key")
		require.NoError(t, err)
		require.Equal(t, "java.util.Map.Entry.Key", nested.CanonicalName())
	})

	t.Run("best guess rejects names without a class", func(t *testing.T) {
		for _, name := range []string{"java.util", "", "java..Map", "com.example.Foo.bar"} {
			_, err := BestGuessClassName(name)
			require.Error(t, err, name)
			require.True(t, errors.Is(err, ErrInvalidArgument), name)
		}

		top, err := BestGuessClassName("Foo")
		require.NoError(t, err)
		require.Empty(t, top.PackageName())
		require.Equal(t, "Foo", top.CanonicalName())
	})

	t.Run("class names are validated", func(t *testing.T) {
		_, err := NewClassName("com.example", "1Foo")
		requireMarked(t, err, ErrInvalidArgument)
		_, err = NewClassName("com.example", "class")
		requireMarked(t, err, ErrInvalidArgument)
		_, err = NewClassName("com.class", "Foo")
		requireMarked(t, err, ErrInvalidArgument)
		require.Panics(t, func() { MustClassName("", "") })
	})

	t.Run("arrays", func(t *testing.T) {
		require.Equal(t, "int[]", ArrayOf(Int).String())
		require.Equal(t, "java.lang.String[][]", ArrayOf(ArrayOf(StringClass)).String())
		component, ok := ArrayOf(Int).Component()
		require.True(t, ok)
		require.True(t, component.Equal(Int))
		_, ok = Int.Component()
		require.False(t, ok)
	})

	t.Run("type variable bounds drop java.lang.Object", func(t *testing.T) {
		tv, err := TypeVariable("T", ObjectClass)
		require.NoError(t, err)
		require.Empty(t, tv.Bounds())
		require.Equal(t, "T", tv.String())

		explicit, err := tv.WithBounds(ObjectClass)
		require.NoError(t, err)
		require.Len(t, explicit.Bounds(), 1)

		number := MustClassName("java.lang", "Number")
		bounded := MustTypeVariable("N", number, ObjectClass)
		require.Len(t, bounded.Bounds(), 1)
		require.True(t, bounded.Bounds()[0].Equal(number))
	})

	t.Run("type variable bounds reject primitives and void", func(t *testing.T) {
		_, err := TypeVariable("T", Int)
		requireMarked(t, err, ErrInvalidArgument)
		_, err = TypeVariable("T", Void)
		requireMarked(t, err, ErrInvalidArgument)
		_, err = MustTypeVariable("T").WithBounds(Boolean)
		requireMarked(t, err, ErrInvalidArgument)
		_, err = TypeVariable("int")
		requireMarked(t, err, ErrInvalidArgument)
	})

	t.Run("wildcards", func(t *testing.T) {
		number := MustClassName("java.lang", "Number")
		extends, err := SubtypeOf(number)
		require.NoError(t, err)
		require.Equal(t, "? extends java.lang.Number", extends.String())

		super, err := SupertypeOf(StringClass)
		require.NoError(t, err)
		require.Equal(t, "? super java.lang.String", super.String())

		require.Equal(t, "?", Wildcard().String())

		unbounded, err := SubtypeOf(ObjectClass)
		require.NoError(t, err)
		require.True(t, unbounded.Equal(Wildcard()))

		_, err = SupertypeOf(Int)
		requireMarked(t, err, ErrInvalidArgument)

		list := MustParameterized(MustClassName("java.util", "List"), extends)
		require.Equal(t, "java.util.List<? extends java.lang.Number>", list.String())
	})

	t.Run("boxing", func(t *testing.T) {
		require.Equal(t, "java.lang.Integer", Int.Box().String())
		require.Equal(t, "java.lang.Character", Char.Box().String())
		require.Equal(t, "java.lang.Void", Void.Box().String())
		require.True(t, Int.Box().IsBoxedPrimitive())
		require.False(t, StringClass.IsBoxedPrimitive())
		require.True(t, StringClass.Box().Equal(StringClass))

		unboxed, err := MustClassName("java.lang", "Long").Unbox()
		require.NoError(t, err)
		require.True(t, unboxed.Equal(Long))

		_, err = StringClass.Unbox()
		requireMarked(t, err, ErrInvalidArgument)
	})

	t.Run("annotations take part in equality", func(t *testing.T) {
		annotated := StringClass.Annotated(nullable)
		require.Equal(t, "java.lang. @org.jspecify.annotations.Nullable String", annotated.String())
		require.False(t, annotated.Equal(StringClass))
		require.True(t, annotated.WithoutAnnotations().Equal(StringClass))
		require.True(t, annotated.IsAnnotated())

		require.Equal(t, "@org.jspecify.annotations.Nullable int", Int.Annotated(nullable).String())
		require.Equal(t, "int @org.jspecify.annotations.Nullable []", ArrayOf(Int).Annotated(nullable).String())
	})

	t.Run("annotating does not alias the original", func(t *testing.T) {
		base := StringClass.Annotated(nullable)
		deprecated := MustAnnotation(MustClassName("java.lang", "Deprecated"))
		a := base.Annotated(deprecated)
		b := base.Annotated(nullable)
		require.Len(t, base.Annotations(), 1)
		require.Contains(t, a.String(), "Deprecated")
		require.NotContains(t, b.String(), "Deprecated")
	})

	t.Run("parameterized types are validated", func(t *testing.T) {
		_, err := ParameterizedTypeOf(Int, StringClass)
		requireMarked(t, err, ErrInvalidArgument)
		_, err = ParameterizedTypeOf(mapClass)
		requireMarked(t, err, ErrInvalidArgument)
		_, err = ParameterizedTypeOf(mapClass, Int, StringClass)
		requireMarked(t, err, ErrInvalidArgument)

		p := MustParameterized(mapClass, StringClass, StringClass)
		require.Equal(t, KindParameterized, p.Kind())
		require.True(t, p.Raw().Equal(mapClass))
		require.Len(t, p.TypeArguments(), 2)
	})

	t.Run("primitive keywords", func(t *testing.T) {
		p, ok := PrimitiveType("double")
		require.True(t, ok)
		require.True(t, p.Equal(Double))
		v, ok := PrimitiveType("void")
		require.True(t, ok)
		require.Equal(t, KindVoid, v.Kind())
		_, ok = PrimitiveType("string")
		require.False(t, ok)
	})

	t.Run("zero value is invalid", func(t *testing.T) {
		var zero TypeName
		require.False(t, zero.IsValid())
		require.Equal(t, "invalid", zero.Kind().String())
		_, err := CodeBlockOf("$T", zero)
		requireMarked(t, err, ErrTemplate)
	})
}
