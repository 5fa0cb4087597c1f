package generator

import (
	"io"

	"go.uber.org/zap"
)

// Mode selects where type declarations come from.
type Mode int

const (
	// ModeDeclarations reads YAML or TOML declaration documents.
	ModeDeclarations Mode = iota
	// ModeStructs converts the struct types of a Go package.
	ModeStructs
)

// Config holds generation settings for a javagen run.
type Config struct {
	Mode   Mode
	Inputs []string // declaration documents (ModeDeclarations)
	Dir    string   // Go package directory (ModeStructs)
	// Structs limits ModeStructs to these type names; empty means all exported structs.
	Structs     []string
	JavaPackage string // package for generated classes, or the default for documents without one
	Output      string // output directory, or "-" for stdout

	Indent              string
	ColumnLimit         int
	SkipJavaLangImports bool
	AlwaysQualify       []string

	Command string // canonical invocation recorded in the header
	Version string // javagen build version

	Logger *zap.Logger
	Stdout io.Writer // destination when Output is "-"; defaults to os.Stdout
}

// headerModel is the template model for the generated file header.
type headerModel struct {
	Source  string
	Command string
	Version string
}
