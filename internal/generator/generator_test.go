package generator

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func baseConfig(output string, inputs ...string) Config {
	return Config{
		Mode:                ModeDeclarations,
		Inputs:              inputs,
		Output:              output,
		SkipJavaLangImports: true,
		ColumnLimit:         100,
		Command:             "javagen render",
		Version:             "v0.1.0",
	}
}

func TestRun(t *testing.T) {
	t.Run("declarations are written under their package path", func(t *testing.T) {
		out := t.TempDir()
		require.NoError(t, Run(baseConfig(out, "testdata/widget.yaml")))

		data, err := os.ReadFile(filepath.Join(out, "com", "example", "Widget.java"))
		require.NoError(t, err)
		require.Equal(t, "// Code generated by javagen v0.1.0. DO NOT EDIT.\n"+
			"// Source: testdata/widget.yaml\n"+
			"// Command: javagen render\n"+
			"package com.example;\n"+
			"\n"+
			"class Widget {\n"+
			"  private String label;\n"+
			"}\n", string(data))
	})

	t.Run("stdout output separates files", func(t *testing.T) {
		var stdout bytes.Buffer
		cfg := baseConfig("-", "testdata/widget.yaml", "testdata/gadget.toml")
		cfg.Stdout = &stdout
		cfg.JavaPackage = "com.fallback"
		cfg.Command = ""
		cfg.Indent = "    "
		require.NoError(t, Run(cfg))
		require.Equal(t, "// Code generated by javagen v0.1.0. DO NOT EDIT.\n"+
			"// Source: testdata/widget.yaml\n"+
			"package com.example;\n"+
			"\n"+
			"class Widget {\n"+
			"    private String label;\n"+
			"}\n"+
			"\n"+
			"// Code generated by javagen v0.1.0. DO NOT EDIT.\n"+
			"// Source: testdata/gadget.toml\n"+
			"package com.fallback;\n"+
			"\n"+
			"interface Gadget {\n"+
			"    void run();\n"+
			"}\n", stdout.String())
	})

	t.Run("unchanged files are left alone", func(t *testing.T) {
		out := t.TempDir()
		core, logs := observer.New(zapcore.DebugLevel)
		cfg := baseConfig(out, "testdata/widget.yaml")
		cfg.Logger = zap.New(core)

		require.NoError(t, Run(cfg))
		require.Len(t, logs.FilterMessage("wrote file").All(), 1)
		require.NoError(t, Run(cfg))
		require.Len(t, logs.FilterMessage("wrote file").All(), 1)
		require.Len(t, logs.FilterMessage("file unchanged").All(), 1)
	})

	t.Run("a failing input writes nothing", func(t *testing.T) {
		out := t.TempDir()
		err := Run(baseConfig(out, "testdata/widget.yaml", "testdata/broken.yaml"))
		require.Error(t, err)
		require.Contains(t, err.Error(), "testdata/broken.yaml")
		require.Contains(t, err.Error(), "field xs")

		entries, err := os.ReadDir(out)
		require.NoError(t, err)
		require.Empty(t, entries)
	})

	t.Run("two inputs cannot claim one file", func(t *testing.T) {
		err := Run(baseConfig(t.TempDir(), "testdata/widget.yaml", "testdata/widget.yaml"))
		require.ErrorContains(t, err, "both generate com/example/Widget.java")
	})

	t.Run("go structs become beans", func(t *testing.T) {
		out := t.TempDir()
		cfg := baseConfig(out)
		cfg.Mode = ModeStructs
		cfg.Dir = "testdata/models"
		cfg.JavaPackage = "com.example.geo"
		require.NoError(t, Run(cfg))

		data, err := os.ReadFile(filepath.Join(out, "com", "example", "geo", "Point.java"))
		require.NoError(t, err)
		require.Contains(t, string(data), "// Source: testdata/models\n")
		require.Contains(t, string(data), "/**\n * Point is a position on a grid.\n */\npublic class Point {\n")
		require.Contains(t, string(data), "  public int getX() {\n    return x;\n  }\n")
	})

	t.Run("configuration errors", func(t *testing.T) {
		require.ErrorContains(t, Run(baseConfig(t.TempDir())), "no declaration files provided")
		require.ErrorContains(t, Run(baseConfig("", "testdata/widget.yaml")), "no output configured")

		cfg := baseConfig(t.TempDir(), "testdata/widget.yaml")
		cfg.Mode = Mode(7)
		require.ErrorContains(t, Run(cfg), "unknown mode 7")

		cfg = baseConfig(t.TempDir(), "testdata/widget.yaml")
		cfg.ColumnLimit = -1
		require.ErrorContains(t, Run(cfg), "column")
	})
}

func TestRenderHeader(t *testing.T) {
	t.Run("all fields", func(t *testing.T) {
		h, err := renderHeader(headerModel{Source: "a.yaml", Command: "javagen render a.yaml", Version: "v1.0.0"})
		require.NoError(t, err)
		require.Equal(t, "Code generated by javagen v1.0.0. DO NOT EDIT.\nSource: a.yaml\nCommand: javagen render a.yaml", h)
	})

	t.Run("empty fields are omitted", func(t *testing.T) {
		h, err := renderHeader(headerModel{})
		require.NoError(t, err)
		require.Equal(t, "Code generated by javagen. DO NOT EDIT.", h)
	})
}
