package generator

import (
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/calumari/javagen/internal/declfile"
	"github.com/calumari/javagen/internal/gostructs"
	"github.com/calumari/javagen/javapoet"
)

// generator holds transient state while building and writing files.
type generator struct {
	cfg    Config
	log    *zap.Logger
	stdout io.Writer
	// paths guards against two inputs producing the same output file.
	paths map[string]string
}

func Run(cfg Config) error { return newGenerator(cfg).run() }

func newGenerator(cfg Config) *generator {
	g := &generator{cfg: cfg, log: cfg.Logger, stdout: cfg.Stdout, paths: map[string]string{}}
	if g.log == nil {
		g.log = zap.NewNop()
	}
	if g.stdout == nil {
		g.stdout = os.Stdout
	}
	return g
}

// run builds every file first and writes only when all of them built, so a
// bad input never leaves a partial set of outputs behind.
func (g *generator) run() error {
	if g.cfg.Output == "" {
		return errors.New("no output configured")
	}
	if err := ensureTemplates(); err != nil {
		return err
	}

	var (
		files []javapoet.JavaFile
		err   error
	)
	switch g.cfg.Mode {
	case ModeDeclarations:
		files, err = g.buildDeclarations()
	case ModeStructs:
		files, err = g.buildStructs()
	default:
		err = errors.Newf("unknown mode %d", g.cfg.Mode)
	}
	if err != nil {
		return err
	}

	rendered := make([]renderedFile, 0, len(files))
	for _, f := range files {
		r, err := render(f)
		if err != nil {
			return err
		}
		rendered = append(rendered, r)
	}
	return g.write(rendered)
}

func (g *generator) buildDeclarations() ([]javapoet.JavaFile, error) {
	if len(g.cfg.Inputs) == 0 {
		return nil, errors.New("no declaration files provided")
	}
	files := make([]javapoet.JavaFile, 0, len(g.cfg.Inputs))
	for _, in := range g.cfg.Inputs {
		configure, err := g.configure(in)
		if err != nil {
			return nil, err
		}
		f, err := declfile.BuildFile(in, g.cfg.JavaPackage, declfile.Configure(configure))
		if err != nil {
			return nil, err
		}
		if err := g.claim(f.Path(), in); err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

func (g *generator) buildStructs() ([]javapoet.JavaFile, error) {
	if g.cfg.JavaPackage == "" {
		g.log.Warn("no java package configured; classes go to the default package")
	}
	dir := g.cfg.Dir
	if dir == "" {
		dir = "."
	}
	configure, err := g.configure(dir)
	if err != nil {
		return nil, err
	}
	files, err := gostructs.Generate(gostructs.Options{
		Dir:         dir,
		Structs:     g.cfg.Structs,
		JavaPackage: g.cfg.JavaPackage,
		Logger:      g.log,
	}, configure)
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		if err := g.claim(f.Path(), dir); err != nil {
			return nil, err
		}
	}
	return files, nil
}

// configure returns the builder settings shared by every generated file: the
// render options and the generated-code header naming source.
func (g *generator) configure(source string) (func(*javapoet.JavaFileBuilder), error) {
	header, err := renderHeader(headerModel{Source: source, Command: g.cfg.Command, Version: g.cfg.Version})
	if err != nil {
		return nil, err
	}
	return func(fb *javapoet.JavaFileBuilder) {
		fb.AddFileComment("$L", header).
			SkipJavaLangImports(g.cfg.SkipJavaLangImports).
			ColumnLimit(g.cfg.ColumnLimit).
			Logger(g.log)
		if g.cfg.Indent != "" {
			fb.Indent(g.cfg.Indent)
		}
		if len(g.cfg.AlwaysQualify) > 0 {
			fb.AlwaysQualify(g.cfg.AlwaysQualify...)
		}
	}, nil
}

func (g *generator) claim(path, source string) error {
	if prev, ok := g.paths[path]; ok {
		return errors.Newf("%s and %s both generate %s", prev, source, path)
	}
	g.paths[path] = source
	return nil
}

func toStdout(output string) bool { return strings.TrimSpace(output) == "-" }
