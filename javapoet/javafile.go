package javapoet

import (
	"bufio"
	"bytes"
	"io"
	"path"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// JavaFile is a compilation unit holding one top-level type.
type JavaFile struct {
	pkg           string
	typeSpec      TypeSpec
	comment       CodeBlock
	staticImports []string
	skipJavaLang  bool
	elide         func(pkg string) bool
	indent        string
	columnLimit   int
	alwaysQualify map[string]bool
	log           *zap.Logger
}

func (f JavaFile) PackageName() string { return f.pkg }
func (f JavaFile) TypeSpec() TypeSpec  { return f.typeSpec }

// Path returns the slash-separated path of the file relative to a source root, such as
// "com/example/Foo.java".
func (f JavaFile) Path() string {
	name := f.typeSpec.name + ".java"
	if f.pkg == "" {
		return name
	}
	return path.Join(append(strings.Split(f.pkg, "."), name)...)
}

// String renders the file, returning whatever was produced before an error.
func (f JavaFile) String() string {
	var b strings.Builder
	_, _ = f.WriteTo(&b)
	return b.String()
}

// WriteTo renders the file to out. The first pass renders into io.Discard to learn which
// classes the file references; the second writes the file with the resulting imports.
func (f JavaFile) WriteTo(out io.Writer) (int64, error) {
	collector := newCollectingResolver()
	declared := map[string]bool{}
	f.typeSpec.declaredNames(declared)
	for name := range declared {
		collector.reserve(name)
	}

	first := newCodeWriter(io.Discard, f.writerConfig(collector))
	f.emit(first, nil)
	if err := first.close(); err != nil {
		return 0, emitError(err, f.Path())
	}

	table, skipped := collector.table()
	for _, d := range skipped {
		f.logger().Debug("class not imported",
			zap.String("file", f.Path()),
			zap.String("simple_name", d.name),
			zap.Strings("classes", d.classes),
			zap.String("reason", d.reason))
	}

	imports := make([]TypeName, 0, len(table))
	for _, c := range table {
		imports = append(imports, c)
	}
	slices.SortFunc(imports, func(a, b TypeName) int {
		return strings.Compare(a.CanonicalName(), b.CanonicalName())
	})

	cw := &countingWriter{w: out}
	bw := bufio.NewWriter(cw)
	second := newCodeWriter(bw, f.writerConfig(table))
	f.emit(second, imports)
	if err := second.close(); err != nil {
		return cw.n, emitError(err, f.Path())
	}
	if err := bw.Flush(); err != nil {
		return cw.n, errors.Wrapf(err, "write %s", f.Path())
	}
	return cw.n, nil
}

// Bytes renders the file into memory.
func (f JavaFile) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (f JavaFile) writerConfig(resolver importResolver) writerConfig {
	return writerConfig{
		indent:        f.indent,
		columnLimit:   f.columnLimit,
		staticImports: f.staticImports,
		alwaysQualify: f.alwaysQualify,
		resolver:      resolver,
	}
}

func (f JavaFile) logger() *zap.Logger {
	if f.log == nil {
		return zap.NewNop()
	}
	return f.log
}

func (f JavaFile) elided(pkg string) bool {
	return (f.skipJavaLang && pkg == "java.lang") || (f.elide != nil && f.elide(pkg))
}

func (f JavaFile) emit(w *codeWriter, imports []TypeName) {
	w.pkg = f.pkg
	if !f.comment.IsEmpty() {
		w.emitComment(f.comment)
	}
	if f.pkg != "" {
		w.emitf("package $L;\n", f.pkg)
		w.emit("\n")
	}
	if len(f.staticImports) > 0 {
		for _, signature := range f.staticImports {
			w.emitf("import static $L;\n", signature)
		}
		w.emit("\n")
	}

	n := 0
	for _, c := range imports {
		if f.elided(c.pkg) && !f.alwaysQualify[c.SimpleName()] {
			f.logger().Debug("import elided", zap.String("file", f.Path()), zap.String("class", c.CanonicalName()))
			continue
		}
		w.emitf("import $L;\n", c.CanonicalName())
		n++
	}
	if n > 0 {
		w.emit("\n")
	}

	f.typeSpec.emit(w, nil)
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// JavaFileBuilder configures how a JavaFile renders.
type JavaFileBuilder struct {
	pkg           string
	typeSpec      TypeSpec
	comment       *CodeBlockBuilder
	staticImports []string
	skipJavaLang  bool
	elide         func(pkg string) bool
	indent        string
	columnLimit   int
	alwaysQualify []string
	log           *zap.Logger
	err           stickyErr
}

// NewJavaFileBuilder starts a file declaring t in package pkg ("" for the default
// package). Indent defaults to two spaces and the column limit to 100.
func NewJavaFileBuilder(pkg string, t TypeSpec) *JavaFileBuilder {
	b := &JavaFileBuilder{
		pkg:         pkg,
		typeSpec:    t,
		comment:     NewCodeBlockBuilder(),
		indent:      "  ",
		columnLimit: 100,
		log:         zap.NewNop(),
	}
	switch {
	case pkg != "" && !IsName(pkg):
		b.err.fail(invalidArgf("invalid package name: %s", pkg))
	case t.kind == 0:
		b.err.fail(invalidArgf("file for package %q has no type", pkg))
	}
	return b
}

// AddFileComment appends to the "//" comment written before the package declaration.
// Each call after the first starts on a new line.
func (b *JavaFileBuilder) AddFileComment(format string, args ...any) *JavaFileBuilder {
	if !b.comment.IsEmpty() {
		b.comment.Add("\n")
	}
	b.comment.Add(format, args...)
	return b
}

// AddStaticImport imports members of class statically; "*" imports all of them.
func (b *JavaFileBuilder) AddStaticImport(class TypeName, members ...string) *JavaFileBuilder {
	if b.err.failed() {
		return b
	}
	switch {
	case class.kind != KindClass:
		b.err.fail(invalidArgf("static import of non-class %s", class))
		return b
	case len(members) == 0:
		b.err.fail(invalidArgf("no members to import from %s", class))
		return b
	}
	for _, m := range members {
		if m != "*" && !isIdentifier(m) {
			b.err.fail(invalidArgf("invalid static import member: %s", m))
			return b
		}
		b.staticImports = append(b.staticImports, class.CanonicalName()+"."+m)
	}
	return b
}

// SkipJavaLangImports leaves java.lang classes out of the import list; they are still
// written by simple name.
func (b *JavaFileBuilder) SkipJavaLangImports(skip bool) *JavaFileBuilder {
	b.skipJavaLang = skip
	return b
}

// ElideImports leaves classes of every package matching elide out of the import list, as
// SkipJavaLangImports does for java.lang.
func (b *JavaFileBuilder) ElideImports(elide func(pkg string) bool) *JavaFileBuilder {
	b.elide = elide
	return b
}

func (b *JavaFileBuilder) Indent(indent string) *JavaFileBuilder {
	if b.err.failed() {
		return b
	}
	if strings.Trim(indent, " \t") != "" {
		b.err.fail(invalidArgf("indent must be whitespace: %q", indent))
		return b
	}
	b.indent = indent
	return b
}

// ColumnLimit sets the width at which wrap points break lines; 0 disables wrapping.
func (b *JavaFileBuilder) ColumnLimit(limit int) *JavaFileBuilder {
	if b.err.failed() {
		return b
	}
	if limit < 0 {
		b.err.fail(invalidArgf("column limit must not be negative: %d", limit))
		return b
	}
	b.columnLimit = limit
	return b
}

// AlwaysQualify keeps simple names from being imported.
func (b *JavaFileBuilder) AlwaysQualify(simpleNames ...string) *JavaFileBuilder {
	b.alwaysQualify = append(b.alwaysQualify, simpleNames...)
	return b
}

// Logger receives debug records about import decisions.
func (b *JavaFileBuilder) Logger(log *zap.Logger) *JavaFileBuilder {
	if log != nil {
		b.log = log
	}
	return b
}

func (b *JavaFileBuilder) Build() (JavaFile, error) {
	if b.err.failed() {
		return JavaFile{}, b.err.err
	}
	comment, err := b.comment.Build()
	if err != nil {
		return JavaFile{}, err
	}
	alwaysQualify := map[string]bool{}
	for _, n := range b.alwaysQualify {
		alwaysQualify[n] = true
	}
	b.typeSpec.alwaysQualifiedNames(alwaysQualify)

	static := slices.Clone(b.staticImports)
	slices.Sort(static)
	static = slices.Compact(static)

	return JavaFile{
		pkg:           b.pkg,
		typeSpec:      b.typeSpec,
		comment:       comment,
		staticImports: static,
		skipJavaLang:  b.skipJavaLang,
		elide:         b.elide,
		indent:        b.indent,
		columnLimit:   b.columnLimit,
		alwaysQualify: alwaysQualify,
		log:           b.log,
	}, nil
}
