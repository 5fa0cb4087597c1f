package javapoet

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
)

// importResolver decides which classes may be written by simple name. A render runs the
// same traversal twice: first with a collectingResolver, then with the tableResolver it
// produced.
type importResolver interface {
	// imported returns the class imported under simpleName.
	imported(simpleName string) (TypeName, bool)
	// importable records a top-level class that had to be written fully qualified.
	importable(top TypeName)
	// reserve marks simpleName as unavailable for imports.
	reserve(simpleName string)
}

// tableResolver serves a frozen import table.
type tableResolver map[string]TypeName

func (r tableResolver) imported(simpleName string) (TypeName, bool) {
	t, ok := r[simpleName]
	return t, ok
}

func (tableResolver) importable(TypeName) {}
func (tableResolver) reserve(string)      {}

// collectingResolver imports nothing and records every class written fully qualified.
type collectingResolver struct {
	seen     map[string][]TypeName
	order    []string
	reserved map[string]bool
}

func newCollectingResolver() *collectingResolver {
	return &collectingResolver{seen: map[string][]TypeName{}, reserved: map[string]bool{}}
}

func (*collectingResolver) imported(string) (TypeName, bool) { return TypeName{}, false }

func (r *collectingResolver) importable(top TypeName) {
	name := top.SimpleName()
	classes, ok := r.seen[name]
	if !ok {
		r.order = append(r.order, name)
	}
	for _, c := range classes {
		if c.CanonicalName() == top.CanonicalName() {
			return
		}
	}
	r.seen[name] = append(classes, top.WithoutAnnotations())
}

func (r *collectingResolver) reserve(simpleName string) { r.reserved[simpleName] = true }

// importDecision explains why a recorded simple name was not imported.
type importDecision struct {
	name    string
	classes []string
	reason  string
}

// table resolves the recorded names: a name seen with exactly one class is imported, a
// name seen with several is imported for none of them.
func (r *collectingResolver) table() (tableResolver, []importDecision) {
	out := tableResolver{}
	var skipped []importDecision
	for _, name := range r.order {
		classes := r.seen[name]
		switch {
		case r.reserved[name]:
			skipped = append(skipped, importDecision{name, canonicalNames(classes), "reserved"})
		case len(classes) > 1:
			skipped = append(skipped, importDecision{name, canonicalNames(classes), "collision"})
		default:
			out[name] = classes[0]
		}
	}
	return out, skipped
}

func canonicalNames(types []TypeName) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = t.CanonicalName()
	}
	return out
}

// scopeFrame is one enclosing type declaration.
type scopeFrame struct {
	name   string
	nested map[string]bool
}

type writerConfig struct {
	indent        string
	columnLimit   int
	staticImports []string
	alwaysQualify map[string]bool
	resolver      importResolver
}

func defaultWriterConfig() writerConfig {
	return writerConfig{indent: "  ", columnLimit: 100}
}

// codeWriter renders declarations. It tracks indentation, the enclosing type and
// type-variable scopes, and javadoc or comment mode.
type codeWriter struct {
	out    *lineWrapper
	indent string

	indentLevel     int
	javadoc         bool
	comment         bool
	trailingNewline bool
	// statementLine is -1 outside a statement, else the number of lines the current
	// statement has spanned so far.
	statementLine int

	pkg                 string
	typeSpecs           []scopeFrame
	typeVariables       []string
	staticImports       []string
	staticImportClasses map[string]bool
	alwaysQualify       map[string]bool
	resolver            importResolver

	err error
}

func newCodeWriter(out io.Writer, cfg writerConfig) *codeWriter {
	resolver := cfg.resolver
	if resolver == nil {
		resolver = tableResolver{}
	}
	w := &codeWriter{
		out:                 newLineWrapper(out, cfg.indent, cfg.columnLimit),
		indent:              cfg.indent,
		trailingNewline:     true,
		statementLine:       -1,
		staticImports:       slices.Clone(cfg.staticImports),
		staticImportClasses: map[string]bool{},
		alwaysQualify:       cfg.alwaysQualify,
		resolver:            resolver,
	}
	if w.alwaysQualify == nil {
		w.alwaysQualify = map[string]bool{}
	}
	for _, signature := range cfg.staticImports {
		if dot := strings.LastIndexByte(signature, '.'); dot > 0 {
			w.staticImportClasses[signature[:dot]] = true
		}
	}
	return w
}

// renderString emits with a default configuration and no imports.
func renderString(emit func(w *codeWriter)) string {
	var b strings.Builder
	w := newCodeWriter(&b, defaultWriterConfig())
	emit(w)
	_ = w.close()
	return b.String()
}

func (w *codeWriter) fail(err error) {
	if err != nil && w.err == nil {
		w.err = err
	}
}

// close flushes buffered text and reports the first emission or sink error.
func (w *codeWriter) close() error {
	werr := w.out.close()
	if w.err != nil {
		return w.err
	}
	return werr
}

func (w *codeWriter) indentBy(levels int) {
	w.indentLevel += levels
}

func (w *codeWriter) unindentBy(levels int) {
	if w.indentLevel-levels < 0 {
		w.fail(emitStateErrf("cannot unindent %d from %d", levels, w.indentLevel))
		return
	}
	w.indentLevel -= levels
}

func (w *codeWriter) pushType(name string, nested map[string]bool) {
	w.typeSpecs = append(w.typeSpecs, scopeFrame{name: name, nested: nested})
}

func (w *codeWriter) popType() {
	w.typeSpecs = w.typeSpecs[:len(w.typeSpecs)-1]
}

func (w *codeWriter) popTypeVariables(vars []TypeName) {
	w.typeVariables = w.typeVariables[:len(w.typeVariables)-len(vars)]
}

// checkBalanced fails the render when a declaration left the indentation or a statement
// open.
func (w *codeWriter) checkBalanced(what string, indentLevel int) {
	// An open statement also leaves its continuation indent behind, so report it first.
	if w.statementLine != -1 {
		w.fail(emitStateErrf("unterminated statement in %s", what))
		w.statementLine = -1
	}
	if w.indentLevel != indentLevel {
		w.fail(emitStateErrf("unbalanced indentation in %s: %d, want %d", what, w.indentLevel, indentLevel))
		w.indentLevel = indentLevel
	}
}

// emit writes literal text.
func (w *codeWriter) emit(s string) {
	w.emitAndIndent(s)
}

// emitf parses format and emits the resulting block.
func (w *codeWriter) emitf(format string, args ...any) {
	block, err := CodeBlockOf(format, args...)
	if err != nil {
		w.fail(err)
		return
	}
	w.emitBlock(block, false)
}

func (w *codeWriter) emitBlock(block CodeBlock, ensureTrailingNewline bool) {
	a := 0
	var deferred *TypeName // a class that may be covered by a static import
	for i, part := range block.parts {
		switch part {
		case "$L":
			w.emitLiteral(block.args[a])
			a++
		case "$N":
			w.emitAndIndent(block.args[a].(string))
			a++
		case "$S":
			if s, ok := block.args[a].(string); ok {
				w.emitAndIndent(stringLiteral(s, w.indent))
			} else {
				w.emitAndIndent("null")
			}
			a++
		case "$T":
			t := block.args[a].(TypeName)
			a++
			if t.kind == KindClass && i+1 < len(block.parts) &&
				!strings.HasPrefix(block.parts[i+1], "$") && w.staticImportClasses[t.CanonicalName()] {
				deferred = &t
				continue
			}
			t.emit(w)
		case "$$":
			w.emitAndIndent("$")
		case "$>":
			w.indentBy(1)
		case "$<":
			w.unindentBy(1)
		case "$[":
			if w.statementLine != -1 {
				w.fail(emitStateErrf("statement enter $[ followed by statement enter $["))
				continue
			}
			w.statementLine = 0
		case "$]":
			if w.statementLine == -1 {
				w.fail(emitStateErrf("statement exit $] has no matching statement enter $["))
				continue
			}
			if w.statementLine > 0 {
				w.unindentBy(1)
			}
			w.statementLine = -1
		case "$W":
			w.out.wrappingSpace(w.indentLevel + 1)
		case "$Z":
			w.out.zeroWidthSpace(w.indentLevel + 1)
		default:
			if deferred != nil {
				if strings.HasPrefix(part, ".") && w.emitStaticImportMember(deferred.CanonicalName(), part) {
					deferred = nil
					continue
				}
				deferred.emit(w)
				deferred = nil
			}
			w.emitAndIndent(part)
		}
	}
	if ensureTrailingNewline && w.out.lastChar() != '\n' {
		w.emit("\n")
	}
}

// emitStaticImportMember writes part without its leading dot when it names a statically
// imported member of the class canonical.
func (w *codeWriter) emitStaticImportMember(canonical, part string) bool {
	member := part[1:]
	if member == "" {
		return false
	}
	first := []rune(member)[0]
	if !isIdentifierStart(first) {
		return false
	}
	explicit := canonical + "." + memberName(member)
	wildcard := canonical + ".*"
	if slices.Contains(w.staticImports, explicit) || slices.Contains(w.staticImports, wildcard) {
		w.emitAndIndent(member)
		return true
	}
	return false
}

func (w *codeWriter) emitLiteral(o any) {
	switch v := o.(type) {
	case CodeBlock:
		w.emitBlock(v, false)
	case AnnotationSpec:
		v.emit(w, true)
	case TypeSpec:
		v.emit(w, nil)
	case nil:
		w.emitAndIndent("null")
	default:
		w.emitAndIndent(fmt.Sprint(v))
	}
}

// emitAndIndent writes s, prefixing each new line with indentation and, in javadoc or
// comment mode, the comment leader.
func (w *codeWriter) emitAndIndent(s string) {
	for i, line := range strings.Split(s, "\n") {
		if i > 0 {
			if (w.javadoc || w.comment) && w.trailingNewline {
				w.emitIndentation()
				if w.javadoc {
					w.out.append(" *")
				} else {
					w.out.append("//")
				}
			}
			w.out.append("\n")
			w.trailingNewline = true
			if w.statementLine != -1 {
				if w.statementLine == 0 {
					w.indentBy(1) // continuation of a multi-line statement
				}
				w.statementLine++
			}
		}

		if line == "" {
			continue
		}
		if w.trailingNewline {
			w.emitIndentation()
			switch {
			case w.javadoc:
				w.out.append(" * ")
			case w.comment:
				w.out.append("// ")
			}
		}
		w.out.append(line)
		w.trailingNewline = false
	}
}

func (w *codeWriter) emitIndentation() {
	for range w.indentLevel {
		w.out.append(w.indent)
	}
}

// lookupName returns the shortest form of c that resolves to it at this point of the
// file, recording c for import when it must be qualified.
func (w *codeWriter) lookupName(c TypeName) string {
	top := c.TopLevelClassName()
	if slices.Contains(w.typeVariables, top.SimpleName()) {
		return c.CanonicalName()
	}

	resolvedAny := false
	for i := len(c.names); i >= 1; i-- {
		resolved, ok := w.resolve(c.names[i-1])
		resolvedAny = ok
		if ok && resolved.CanonicalName() == className(c.pkg, c.names[:i]...).CanonicalName() {
			return strings.Join(c.names[i-1:], ".")
		}
	}
	if resolvedAny {
		return c.CanonicalName()
	}

	if c.pkg == w.pkg {
		w.resolver.reserve(top.SimpleName())
		return strings.Join(c.names, ".")
	}

	if !w.javadoc {
		w.importable(c)
	}
	return c.CanonicalName()
}

func (w *codeWriter) importable(c TypeName) {
	if c.pkg == "" {
		return
	}
	top := c.TopLevelClassName()
	if w.alwaysQualify[c.SimpleName()] || w.alwaysQualify[top.SimpleName()] {
		return
	}
	w.resolver.importable(top)
}

// resolve finds the class a simple name refers to: a type nested in an enclosing
// declaration, the file's top-level type, or an import.
func (w *codeWriter) resolve(simpleName string) (TypeName, bool) {
	for i := len(w.typeSpecs) - 1; i >= 0; i-- {
		if w.typeSpecs[i].nested[simpleName] {
			return w.stackClassName(i, simpleName), true
		}
	}
	if len(w.typeSpecs) > 0 && w.typeSpecs[0].name == simpleName {
		return className(w.pkg, simpleName), true
	}
	return w.resolver.imported(simpleName)
}

func (w *codeWriter) stackClassName(depth int, simpleName string) TypeName {
	names := make([]string, 0, depth+2)
	for _, f := range w.typeSpecs[:depth+1] {
		names = append(names, f.name)
	}
	return className(w.pkg, append(names, simpleName)...)
}

func (w *codeWriter) emitJavadoc(doc CodeBlock) {
	if doc.IsEmpty() {
		return
	}
	w.emit("/**\n")
	w.javadoc = true
	w.emitBlock(doc, true)
	w.javadoc = false
	w.emit(" */\n")
}

// emitMethodJavadoc folds parameter, return and exception documentation into the
// method's javadoc as tag lines.
func (w *codeWriter) emitMethodJavadoc(doc CodeBlock, params []ParameterSpec, ret *ReturnSpec, throws []ThrowSpec) {
	var tags []CodeBlock
	for _, p := range params {
		if !p.javadoc.IsEmpty() {
			tags = append(tags, MustCodeBlock("@param $L $L", p.name, p.javadoc))
		}
	}
	if ret != nil && !ret.javadoc.IsEmpty() {
		tags = append(tags, MustCodeBlock("@return $L", ret.javadoc))
	}
	for _, t := range throws {
		if !t.javadoc.IsEmpty() {
			tags = append(tags, MustCodeBlock("@throws $T $L", t.typ, t.javadoc))
		}
	}
	if len(tags) == 0 {
		w.emitJavadoc(doc)
		return
	}

	w.emit("/**\n")
	w.javadoc = true
	if !doc.IsEmpty() {
		w.emitBlock(doc, true)
		w.emit("\n")
	}
	for _, tag := range tags {
		w.emitBlock(tag, true)
	}
	w.javadoc = false
	w.emit(" */\n")
}

func (w *codeWriter) emitComment(block CodeBlock) {
	w.trailingNewline = true // force the "//" prefix
	w.comment = true
	w.emitBlock(block, false)
	w.emit("\n")
	w.comment = false
}

func (w *codeWriter) emitAnnotations(annotations []AnnotationSpec, inline bool) {
	for _, a := range annotations {
		a.emit(w, inline)
		if inline {
			w.emit(" ")
		} else {
			w.emit("\n")
		}
	}
}

func (w *codeWriter) emitModifiers(mods, implicit []Modifier) {
	for _, m := range sortedModifiers(mods, implicit) {
		w.emitAndIndent(m.String())
		w.emitAndIndent(" ")
	}
}

// emitTypeVariables writes a declaration's type parameters with their bounds and brings
// the names into scope. Callers pop them once the declaration is complete.
func (w *codeWriter) emitTypeVariables(vars []TypeName) {
	if len(vars) == 0 {
		return
	}
	for _, v := range vars {
		w.typeVariables = append(w.typeVariables, v.name)
	}
	w.emit("<")
	for i, v := range vars {
		if i > 0 {
			w.emit(", ")
		}
		w.emitAnnotations(v.annotations, true)
		w.emitAndIndent(v.name)
		for j, bound := range v.upper {
			if j == 0 {
				w.emitf(" extends $T", bound)
			} else {
				w.emitf(" & $T", bound)
			}
		}
	}
	w.emit(">")
}

// emitError attaches the render position to an emission error.
func emitError(err error, what string) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(err, "render %s", what)
}
