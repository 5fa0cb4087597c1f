package javapoet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func render(t *testing.T, cfg writerConfig, emit func(w *codeWriter)) (string, error) {
	t.Helper()
	var b strings.Builder
	w := newCodeWriter(&b, cfg)
	emit(w)
	err := w.close()
	return b.String(), err
}

func TestCodeWriter(t *testing.T) {
	narrow := writerConfig{indent: "  ", columnLimit: 20}

	t.Run("wrapped statements continue one indent deeper", func(t *testing.T) {
		block := MustCodeBlock("$[x = $L +$W$L;\n$]", "aaaaaaaaaa", "bbbbbbbbbb")
		out, err := render(t, narrow, func(w *codeWriter) { w.emitBlock(block, false) })
		require.NoError(t, err)
		require.Equal(t, "x = aaaaaaaaaa +\n  bbbbbbbbbb;\n", out)
	})

	t.Run("explicit newlines in a statement are indented once", func(t *testing.T) {
		block := MustCodeBlock("$[a(\nb,\nc);\n$]d;\n")
		out, err := render(t, defaultWriterConfig(), func(w *codeWriter) { w.emitBlock(block, false) })
		require.NoError(t, err)
		require.Equal(t, "a(\n  b,\n  c);\nd;\n", out)
	})

	t.Run("statement markers must pair", func(t *testing.T) {
		_, err := render(t, defaultWriterConfig(), func(w *codeWriter) {
			w.emitBlock(MustCodeBlock("$]"), false)
		})
		requireMarked(t, err, ErrEmitState)

		_, err = render(t, defaultWriterConfig(), func(w *codeWriter) {
			w.emitBlock(MustCodeBlock("$[$["), false)
		})
		requireMarked(t, err, ErrEmitState)
	})

	t.Run("unindent below zero fails", func(t *testing.T) {
		_, err := render(t, defaultWriterConfig(), func(w *codeWriter) {
			w.emitBlock(MustCodeBlock("$<x"), false)
		})
		requireMarked(t, err, ErrEmitState)
		require.ErrorContains(t, err, "cannot unindent 1 from 0")
	})

	t.Run("balance check restores the level", func(t *testing.T) {
		_, err := render(t, defaultWriterConfig(), func(w *codeWriter) {
			w.emitBlock(MustCodeBlock("$>x"), false)
			w.checkBalanced("test", 0)
			require.Equal(t, 0, w.indentLevel)
		})
		requireMarked(t, err, ErrEmitState)
		require.ErrorContains(t, err, "unbalanced indentation in test: 1, want 0")

		_, err = render(t, defaultWriterConfig(), func(w *codeWriter) {
			w.emitBlock(MustCodeBlock("$[x\ny"), false)
			w.checkBalanced("test", 0)
			require.Equal(t, 0, w.indentLevel)
			require.Equal(t, -1, w.statementLine)
		})
		requireMarked(t, err, ErrEmitState)
		require.ErrorContains(t, err, "unterminated statement in test")
	})

	t.Run("javadoc lines get a leader", func(t *testing.T) {
		doc := MustCodeBlock("First line.\n\nSecond line.\n")
		out, err := render(t, defaultWriterConfig(), func(w *codeWriter) {
			w.indentBy(1)
			w.emitJavadoc(doc)
		})
		require.NoError(t, err)
		require.Equal(t, "  /**\n   * First line.\n   *\n   * Second line.\n   */\n", out)
	})

	t.Run("comments get a leader on every line", func(t *testing.T) {
		out, err := render(t, defaultWriterConfig(), func(w *codeWriter) {
			w.emitComment(MustCodeBlock("one\ntwo"))
		})
		require.NoError(t, err)
		require.Equal(t, "// one\n// two\n", out)
	})

	t.Run("static imports replace the qualifying class", func(t *testing.T) {
		math := MustClassName("java.lang", "Math")
		cfg := defaultWriterConfig()
		cfg.staticImports = []string{"java.lang.Math.max"}
		out, err := render(t, cfg, func(w *codeWriter) {
			w.emitBlock(MustCodeBlock("$T.max(1, 2) + $T.min(1, 2)", math, math), false)
		})
		require.NoError(t, err)
		require.Equal(t, "max(1, 2) + java.lang.Math.min(1, 2)", out)
	})

	t.Run("wildcard static imports cover every member", func(t *testing.T) {
		units := MustClassName("java.util.concurrent", "TimeUnit")
		cfg := defaultWriterConfig()
		cfg.staticImports = []string{"java.util.concurrent.TimeUnit.*"}
		out, err := render(t, cfg, func(w *codeWriter) {
			w.emitBlock(MustCodeBlock("$T.SECONDS", units), false)
		})
		require.NoError(t, err)
		require.Equal(t, "SECONDS", out)
	})

	t.Run("collecting resolver records qualified classes", func(t *testing.T) {
		collector := newCollectingResolver()
		cfg := defaultWriterConfig()
		cfg.resolver = collector
		awt := MustClassName("java.awt", "List")
		util := MustClassName("java.util", "List")
		entry := MustClassName("java.util", "Map", "Entry")
		_, err := render(t, cfg, func(w *codeWriter) {
			w.emitBlock(MustCodeBlock("$T $T $T $T", awt, util, entry, util), false)
		})
		require.NoError(t, err)

		table, skipped := collector.table()
		require.Len(t, table, 1)
		require.True(t, table["Map"].Equal(MustClassName("java.util", "Map")))
		require.Equal(t, []importDecision{{
			name:    "List",
			classes: []string{"java.awt.List", "java.util.List"},
			reason:  "collision",
		}}, skipped)
	})

	t.Run("javadoc references are not recorded", func(t *testing.T) {
		collector := newCollectingResolver()
		cfg := defaultWriterConfig()
		cfg.resolver = collector
		_, err := render(t, cfg, func(w *codeWriter) {
			w.emitJavadoc(MustCodeBlock("See {@link $T}.\n", MustClassName("java.util", "List")))
		})
		require.NoError(t, err)
		table, skipped := collector.table()
		require.Empty(t, table)
		require.Empty(t, skipped)
	})

	t.Run("imported names resolve to simple names", func(t *testing.T) {
		list := MustClassName("java.util", "List")
		cfg := defaultWriterConfig()
		cfg.resolver = tableResolver{"List": list}
		out, err := render(t, cfg, func(w *codeWriter) {
			w.emitBlock(MustCodeBlock("$T<$T>", list, StringClass), false)
		})
		require.NoError(t, err)
		require.Equal(t, "List<java.lang.String>", out)
	})

	t.Run("type variables shadow imports", func(t *testing.T) {
		other := MustClassName("com.other", "T")
		cfg := defaultWriterConfig()
		cfg.resolver = tableResolver{"T": other}
		out, err := render(t, cfg, func(w *codeWriter) {
			w.emitTypeVariables([]TypeName{MustTypeVariable("T")})
			w.emitf(" $T", other)
			w.popTypeVariables([]TypeName{MustTypeVariable("T")})
			w.emitf(" $T", other)
		})
		require.NoError(t, err)
		require.Equal(t, "<T> com.other.T T", out)
	})
}
