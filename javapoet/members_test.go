package javapoet

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFieldSpec(t *testing.T) {
	t.Run("plain field", func(t *testing.T) {
		f, err := Field(Int, "x")
		require.NoError(t, err)
		require.Equal(t, "int x;\n", f.String())
	})

	t.Run("documented and initialized field", func(t *testing.T) {
		f, err := NewFieldBuilder(StringClass, "NAME", Private, Static, Final).
			AddJavadoc("The display name.\n").
			AddAnnotation(MustAnnotation(MustClassName("java.lang", "Deprecated"))).
			Initializer("$S", "widget").
			Build()
		require.NoError(t, err)
		require.Equal(t, "/**\n * The display name.\n */\n"+
			"@java.lang.Deprecated\n"+
			"private static final java.lang.String NAME = \"widget\";\n", f.String())
		require.True(t, f.HasModifier(Static))
	})

	t.Run("modifiers are written in declaration order", func(t *testing.T) {
		f := must(Field(Long, "counter", Volatile, Static, Private))
		require.Equal(t, "private static volatile long counter;\n", f.String())
	})

	t.Run("initializer may be set once", func(t *testing.T) {
		_, err := NewFieldBuilder(Int, "x").Initializer("1").Initializer("2").Build()
		requireMarked(t, err, ErrInvalidArgument)
		require.ErrorContains(t, err, "initializer was already set")
	})

	t.Run("invalid declarations", func(t *testing.T) {
		_, err := Field(Void, "x")
		requireMarked(t, err, ErrInvalidArgument)
		_, err = Field(Int, "class")
		requireMarked(t, err, ErrInvalidArgument)
		require.ErrorContains(t, err, "not a valid name: class")
	})

	t.Run("to builder round trip", func(t *testing.T) {
		f := must(NewFieldBuilder(Int, "x", Final).Initializer("$L", 3).Build())
		again := must(f.ToBuilder().Build())
		require.True(t, f.Equal(again))
		require.Equal(t, "final int x = 3;\n", again.String())
	})
}

func TestParameterSpec(t *testing.T) {
	nullable := MustAnnotation(MustClassName("org.jspecify.annotations", "Nullable"))

	t.Run("annotated parameter", func(t *testing.T) {
		p, err := NewParameterBuilder(StringClass, "name", Final).AddAnnotation(nullable).Build()
		require.NoError(t, err)
		require.Equal(t, "@org.jspecify.annotations.Nullable final java.lang.String name", p.String())
	})

	t.Run("receiver parameters", func(t *testing.T) {
		_, err := Parameter(MustClassName("com.example", "Foo"), "this")
		require.NoError(t, err)
		_, err = Parameter(MustClassName("com.example", "Foo"), "Foo.this")
		require.NoError(t, err)
	})

	t.Run("keywords are not names", func(t *testing.T) {
		_, err := Parameter(Int, "super")
		requireMarked(t, err, ErrInvalidArgument)
		require.ErrorContains(t, err, "not a valid name: super")
	})

	t.Run("only final is allowed", func(t *testing.T) {
		_, err := Parameter(Int, "x", Public)
		requireMarked(t, err, ErrInvalidArgument)
		require.ErrorContains(t, err, "unexpected parameter modifier: public")
	})

	t.Run("equality covers annotations", func(t *testing.T) {
		a := must(Parameter(Int, "x"))
		b := must(NewParameterBuilder(Int, "x").AddAnnotation(nullable).Build())
		require.False(t, a.Equal(b))
		require.True(t, a.Equal(must(a.ToBuilder().Build())))
	})
}

func TestReturnAndThrowSpecs(t *testing.T) {
	ioException := MustClassName("java.io", "IOException")

	t.Run("return spec", func(t *testing.T) {
		r, err := NewReturnBuilder(Int).AddJavadoc("the count").Build()
		require.NoError(t, err)
		require.Equal(t, "int the count", r.String())
		require.True(t, r.Type().Equal(Int))

		_, err = NewReturnBuilder(TypeName{}).Build()
		requireMarked(t, err, ErrInvalidArgument)
	})

	t.Run("throw spec", func(t *testing.T) {
		th, err := NewThrowBuilder(ioException).AddJavadoc("when reading fails").Build()
		require.NoError(t, err)
		require.Equal(t, "java.io.IOException when reading fails", th.String())

		_, err = NewThrowBuilder(Int).Build()
		requireMarked(t, err, ErrInvalidArgument)
		_, err = NewThrowBuilder(ArrayOf(ioException)).Build()
		requireMarked(t, err, ErrInvalidArgument)

		_, err = NewThrowBuilder(MustTypeVariable("E")).Build()
		require.NoError(t, err)
	})
}

func TestAnnotationSpec(t *testing.T) {
	column := MustClassName("javax.persistence", "Column")
	suppress := MustClassName("java.lang", "SuppressWarnings")

	t.Run("marker annotation", func(t *testing.T) {
		require.Equal(t, "@java.lang.Override", MustAnnotation(MustClassName("java.lang", "Override")).String())
	})

	t.Run("single value member", func(t *testing.T) {
		a := must(NewAnnotationBuilder(suppress).AddMember("value", "$S", "unchecked").Build())
		require.Equal(t, `@java.lang.SuppressWarnings("unchecked")`, a.String())
	})

	t.Run("repeated member becomes an array", func(t *testing.T) {
		a := must(NewAnnotationBuilder(suppress).
			AddMember("value", "$S", "unchecked").
			AddMember("value", "$S", "rawtypes").
			Build())
		require.Equal(t, `@java.lang.SuppressWarnings({"unchecked", "rawtypes"})`, a.String())
		require.Len(t, a.Members("value"), 2)
	})

	t.Run("named members inline", func(t *testing.T) {
		a := must(NewAnnotationBuilder(column).
			AddMember("name", "$S", "updated_at").
			AddMember("nullable", "$L", false).
			Build())
		require.Equal(t, `@javax.persistence.Column(name = "updated_at", nullable = false)`, a.String())
		require.Equal(t, []string{"name", "nullable"}, a.MemberNames())
	})

	t.Run("named members on a declaration go one per line", func(t *testing.T) {
		a := must(NewAnnotationBuilder(column).
			AddMember("name", "$S", "updated_at").
			AddMember("nullable", "$L", false).
			Build())
		f := must(NewFieldBuilder(StringClass, "updatedAt").AddAnnotation(a).Build())
		require.Equal(t, "@javax.persistence.Column(\n"+
			"  name = \"updated_at\",\n"+
			"  nullable = false\n"+
			")\n"+
			"java.lang.String updatedAt;\n", f.String())
	})

	t.Run("invalid annotations", func(t *testing.T) {
		_, err := NewAnnotationBuilder(Int).Build()
		requireMarked(t, err, ErrInvalidArgument)
		_, err = NewAnnotationBuilder(column).AddMember("1name", "$L", 1).Build()
		requireMarked(t, err, ErrInvalidArgument)
		require.ErrorContains(t, err, "not a valid name: 1name")
		_, err = NewAnnotationBuilder(column).AddMember("name", "$L").Build()
		requireMarked(t, err, ErrTemplate)
	})

	t.Run("to builder round trip", func(t *testing.T) {
		a := must(NewAnnotationBuilder(column).AddMember("length", "$L", 32).Build())
		require.True(t, a.Equal(must(a.ToBuilder().Build())))
	})
}

func TestModifiers(t *testing.T) {
	t.Run("parse and print", func(t *testing.T) {
		m, err := ParseModifier("non-sealed")
		require.NoError(t, err)
		require.Equal(t, NonSealed, m)
		require.Equal(t, "non-sealed", m.String())
		require.Equal(t, "Modifier(0)", Modifier(0).String())

		_, err = ParseModifier("const")
		requireMarked(t, err, ErrInvalidArgument)
	})

	t.Run("sorted without implicit or duplicate modifiers", func(t *testing.T) {
		got := sortedModifiers([]Modifier{Final, Public, Static, Public}, []Modifier{Public})
		require.Equal(t, []Modifier{Static, Final}, got)
	})
}

func TestNames(t *testing.T) {
	t.Run("identifiers and keywords", func(t *testing.T) {
		require.True(t, IsName("com.example.widget"))
		require.True(t, IsName("$value_1"))
		require.True(t, IsName("ñame"))
		require.False(t, IsName("com.class.widget"))
		require.False(t, IsName("1abc"))
		require.False(t, IsName(""))
		require.False(t, IsName("a..b"))
		require.False(t, IsName("_"))
		require.True(t, IsKeyword("package"))
		require.True(t, IsKeyword("null"))
		require.False(t, IsKeyword("widget"))
	})

	t.Run("member names stop at the first non identifier rune", func(t *testing.T) {
		require.Equal(t, "max", memberName("max(1, 2)"))
		require.Equal(t, "SECONDS", memberName("SECONDS"))
	})

	t.Run("character literals", func(t *testing.T) {
		require.Equal(t, `\'`, characterLiteral('\''))
		require.Equal(t, `"`, characterLiteral('"'))
		require.Equal(t, `\u0007`, characterLiteral('\a'))
		require.Equal(t, "é", characterLiteral('é'))
	})

	t.Run("string literals continue on the next line", func(t *testing.T) {
		require.Equal(t, "\"a\\n\"\n    + \"b\\n\"", stringLiteral("a\nb\n", "    "))
		require.Equal(t, `"it's"`, stringLiteral("it's", "  "))
	})
}
