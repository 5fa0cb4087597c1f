package javapoet

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestJavaFile(t *testing.T) {
	awtList := MustClassName("java.awt", "List")
	utilList := MustClassName("java.util", "List")

	t.Run("colliding simple names are never imported", func(t *testing.T) {
		typ := must(NewClassBuilder("Lists").
			AddFieldOf(awtList, "a").
			AddFieldOf(MustParameterized(utilList, StringClass), "b").
			Build())
		file, err := NewJavaFileBuilder("com.example", typ).SkipJavaLangImports(true).Build()
		require.NoError(t, err)
		require.Equal(t, "package com.example;\n"+
			"\n"+
			"class Lists {\n"+
			"  java.awt.List a;\n"+
			"\n"+
			"  java.util.List<String> b;\n"+
			"}\n", file.String())
	})

	t.Run("java.lang is imported unless skipped", func(t *testing.T) {
		typ := must(NewClassBuilder("Names").
			AddFieldOf(MustParameterized(utilList, StringClass), "names").
			Build())
		file := must(NewJavaFileBuilder("com.example", typ).Build())
		require.Equal(t, "package com.example;\n"+
			"\n"+
			"import java.lang.String;\n"+
			"import java.util.List;\n"+
			"\n"+
			"class Names {\n"+
			"  List<String> names;\n"+
			"}\n", file.String())
	})

	t.Run("elided packages are written by simple name", func(t *testing.T) {
		typ := must(NewClassBuilder("Names").
			AddFieldOf(MustParameterized(utilList, StringClass), "names").
			Build())
		file := must(NewJavaFileBuilder("com.example", typ).
			ElideImports(func(pkg string) bool { return pkg == "java.util" }).
			Build())
		require.Equal(t, "package com.example;\n"+
			"\n"+
			"import java.lang.String;\n"+
			"\n"+
			"class Names {\n"+
			"  List<String> names;\n"+
			"}\n", file.String())
	})

	t.Run("type variables shadow imports only in their scope", func(t *testing.T) {
		other := MustClassName("com.other", "T")
		tv := MustTypeVariable("T")
		typ := must(NewClassBuilder("Holder").
			AddMethod(must(NewMethodBuilder("first").
				AddTypeVariables(tv).
				AddParameterOf(tv, "a").
				AddParameterOf(other, "b").
				Build())).
			AddMethod(must(NewMethodBuilder("second").AddParameterOf(other, "b").Build())).
			Build())
		file := must(NewJavaFileBuilder("com.example", typ).Build())
		require.Equal(t, "package com.example;\n"+
			"\n"+
			"import com.other.T;\n"+
			"\n"+
			"class Holder {\n"+
			"  <T> void first(T a, com.other.T b) {\n"+
			"  }\n"+
			"\n"+
			"  void second(T b) {\n"+
			"  }\n"+
			"}\n", file.String())
	})

	t.Run("nested types shadow imports", func(t *testing.T) {
		typ := must(NewClassBuilder("Outer").
			AddModifiers(Public).
			AddFieldOf(MustClassName("com.example", "Outer", "Inner"), "a").
			AddFieldOf(MustClassName("com.other", "Inner"), "b").
			AddType(must(NewClassBuilder("Inner").AddModifiers(Static).Build())).
			Build())
		file := must(NewJavaFileBuilder("com.example", typ).Build())
		require.Equal(t, "package com.example;\n"+
			"\n"+
			"public class Outer {\n"+
			"  Inner a;\n"+
			"\n"+
			"  com.other.Inner b;\n"+
			"\n"+
			"  static class Inner {\n"+
			"  }\n"+
			"}\n", file.String())
	})

	t.Run("same package names block imports of other packages", func(t *testing.T) {
		typ := must(NewClassBuilder("Pair").
			AddFieldOf(MustClassName("com.example", "Other"), "a").
			AddFieldOf(MustClassName("com.third", "Other"), "b").
			Build())
		file := must(NewJavaFileBuilder("com.example", typ).Build())
		require.Equal(t, "package com.example;\n"+
			"\n"+
			"class Pair {\n"+
			"  Other a;\n"+
			"\n"+
			"  com.third.Other b;\n"+
			"}\n", file.String())
	})

	t.Run("always qualified names stay qualified", func(t *testing.T) {
		typ := must(NewClassBuilder("Texts").
			AddFieldOf(StringClass, "s").
			AlwaysQualify("String").
			Build())
		file := must(NewJavaFileBuilder("com.example", typ).Build())
		require.Equal(t, "package com.example;\n"+
			"\n"+
			"class Texts {\n"+
			"  java.lang.String s;\n"+
			"}\n", file.String())
	})

	t.Run("file comment and static imports", func(t *testing.T) {
		math := MustClassName("java.lang", "Math")
		typ := must(NewClassBuilder("Util").
			AddMethod(must(NewMethodBuilder("pick").
				AddModifiers(Static).
				Returns(Int).
				AddStatement("return $T.max($L, $L)", math, 1, 2).
				Build())).
			Build())
		file := must(NewJavaFileBuilder("com.example", typ).
			AddFileComment("Generated.").
			AddStaticImport(math, "max").
			AddStaticImport(math, "max").
			Build())
		require.Equal(t, "// Generated.\n"+
			"package com.example;\n"+
			"\n"+
			"import static java.lang.Math.max;\n"+
			"\n"+
			"class Util {\n"+
			"  static int pick() {\n"+
			"    return max(1, 2);\n"+
			"  }\n"+
			"}\n", file.String())
	})

	t.Run("file comments start on their own line", func(t *testing.T) {
		typ := must(NewClassBuilder("Notes").Build())
		file := must(NewJavaFileBuilder("", typ).
			AddFileComment("Code generated by $L. DO NOT EDIT.", "javagen").
			AddFileComment("Source: $L", "notes.yaml").
			Build())
		require.Equal(t, "// Code generated by javagen. DO NOT EDIT.\n"+
			"// Source: notes.yaml\n"+
			"class Notes {\n"+
			"}\n", file.String())
	})

	t.Run("default package", func(t *testing.T) {
		typ := must(NewClassBuilder("Main").Build())
		file := must(NewJavaFileBuilder("", typ).Build())
		require.Equal(t, "class Main {\n}\n", file.String())
		require.Equal(t, "Main.java", file.Path())
	})

	t.Run("path follows the package", func(t *testing.T) {
		typ := must(NewClassBuilder("Widget").Build())
		file := must(NewJavaFileBuilder("com.example.ui", typ).Build())
		require.Equal(t, "com/example/ui/Widget.java", file.Path())
	})

	t.Run("long parameter lists wrap one indent deeper", func(t *testing.T) {
		m := NewMethodBuilder("m")
		for i := range 10 {
			m.AddParameterOf(Int, fmt.Sprintf("a%d", i))
		}
		typ := must(NewClassBuilder("Wide").AddMethod(must(m.Build())).Build())
		file := must(NewJavaFileBuilder("", typ).ColumnLimit(40).Build())
		out := file.String()
		require.Equal(t, "class Wide {\n"+
			"  void m(int a0, int a1, int a2, int a3,\n"+
			"    int a4, int a5, int a6, int a7,\n"+
			"    int a8, int a9) {\n"+
			"  }\n"+
			"}\n", out)
		for _, line := range strings.Split(out, "\n") {
			require.LessOrEqual(t, runewidth.StringWidth(line), 40, line)
		}
	})

	t.Run("custom indent", func(t *testing.T) {
		typ := must(NewClassBuilder("Tabs").AddFieldOf(Int, "x").Build())
		file := must(NewJavaFileBuilder("", typ).Indent("\t").Build())
		require.Equal(t, "class Tabs {\n\tint x;\n}\n", file.String())
	})

	t.Run("rendering is repeatable", func(t *testing.T) {
		typ := must(NewClassBuilder("Lists").
			AddFieldOf(awtList, "a").
			AddFieldOf(utilList, "b").
			AddFieldOf(MustClassName("java.util", "Map"), "c").
			Build())
		file := must(NewJavaFileBuilder("com.example", typ).Build())
		require.Equal(t, file.String(), file.String())

		var buf bytes.Buffer
		n, err := file.WriteTo(&buf)
		require.NoError(t, err)
		require.Equal(t, int64(buf.Len()), n)
		require.Equal(t, file.String(), buf.String())

		b, err := file.Bytes()
		require.NoError(t, err)
		require.Equal(t, buf.Bytes(), b)
	})

	t.Run("skipped imports are logged", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		typ := must(NewClassBuilder("Lists").
			AddFieldOf(awtList, "a").
			AddFieldOf(utilList, "b").
			Build())
		file := must(NewJavaFileBuilder("com.example", typ).Logger(zap.New(core)).Build())
		_ = file.String()

		entries := logs.FilterMessage("class not imported").All()
		require.Len(t, entries, 1)
		fields := entries[0].ContextMap()
		require.Equal(t, "List", fields["simple_name"])
		require.Equal(t, "collision", fields["reason"])
	})

	t.Run("unbalanced indentation aborts the render", func(t *testing.T) {
		typ := must(NewClassBuilder("Broken").
			AddMethod(must(NewMethodBuilder("m").AddCode("$>x();\n").Build())).
			Build())
		file := must(NewJavaFileBuilder("com.example", typ).Build())
		_, err := file.WriteTo(&bytes.Buffer{})
		requireMarked(t, err, ErrEmitState)
		require.ErrorContains(t, err, "render com/example/Broken.java")
		require.ErrorContains(t, err, "unbalanced indentation in method m")
	})

	t.Run("unterminated statements abort the render", func(t *testing.T) {
		typ := must(NewClassBuilder("Broken").
			AddMethod(must(NewMethodBuilder("m").AddCode("$[x();\n").Build())).
			Build())
		file := must(NewJavaFileBuilder("", typ).Build())
		_, err := file.Bytes()
		requireMarked(t, err, ErrEmitState)
		require.ErrorContains(t, err, "unterminated statement in method m")
	})

	t.Run("sink errors are returned", func(t *testing.T) {
		boom := errors.New("disk full")
		typ := must(NewClassBuilder("Widget").Build())
		file := must(NewJavaFileBuilder("com.example", typ).Build())
		_, err := file.WriteTo(failingWriter{err: boom})
		require.Error(t, err)
		require.True(t, errors.Is(err, boom))
	})

	t.Run("invalid configuration", func(t *testing.T) {
		typ := must(NewClassBuilder("Widget").Build())

		_, err := NewJavaFileBuilder("com.class", typ).Build()
		requireMarked(t, err, ErrInvalidArgument)
		_, err = NewJavaFileBuilder("com.example", typ).ColumnLimit(-1).Build()
		requireMarked(t, err, ErrInvalidArgument)
		_, err = NewJavaFileBuilder("com.example", typ).Indent("ab").Build()
		requireMarked(t, err, ErrInvalidArgument)
		_, err = NewJavaFileBuilder("com.example", TypeSpec{}).Build()
		requireMarked(t, err, ErrInvalidArgument)
		_, err = NewJavaFileBuilder("com.example", typ).AddStaticImport(Int, "x").Build()
		requireMarked(t, err, ErrInvalidArgument)
		_, err = NewJavaFileBuilder("com.example", typ).AddStaticImport(StringClass).Build()
		requireMarked(t, err, ErrInvalidArgument)
	})
}
