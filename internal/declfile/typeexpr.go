package declfile

import (
	"strings"
	"unicode"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/cockroachdb/errors"

	"github.com/calumari/javagen/javapoet"
)

var (
	typeLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "Ident", Pattern: `[A-Za-z_$][A-Za-z0-9_$]*`},
		{Name: "Symbol", Pattern: `[<>,.?@\[\]]`},
	})

	typeParser = participle.MustBuild[typeExpr](
		participle.Lexer(typeLexer),
		participle.Elide("Whitespace"),
	)
)

// typeExpr is a Java type as written in a declaration document, e.g.
// "java.util.Map<String, ? extends Number>[]".
type typeExpr struct {
	Annotations []*annotationRef `parser:"@@*"`
	Wildcard    *wildcardExpr    `parser:"( @@"`
	Ref         *refExpr         `parser:"| @@ )"`
	Dims        []string         `parser:"( @'[' ']' )*"`
}

type annotationRef struct {
	Parts []string `parser:"'@' @Ident ( '.' @Ident )*"`
}

type wildcardExpr struct {
	Mark  string    `parser:"@'?'"`
	Kind  string    `parser:"( @( 'extends' | 'super' )"`
	Bound *typeExpr `parser:"  @@ )?"`
}

type refExpr struct {
	Parts []string    `parser:"@Ident ( '.' @Ident )*"`
	Args  []*typeExpr `parser:"( '<' @@ ( ',' @@ )* '>' )?"`
}

// javaLang lists the java.lang types a document may name without a package.
var javaLang = map[string]bool{
	"Object": true, "String": true, "CharSequence": true, "Number": true,
	"Boolean": true, "Byte": true, "Short": true, "Integer": true, "Long": true,
	"Character": true, "Float": true, "Double": true, "Void": true,
	"Iterable": true, "Comparable": true, "Runnable": true, "AutoCloseable": true,
	"Class": true, "Enum": true, "Record": true, "Math": true, "System": true,
	"Thread": true, "StringBuilder": true, "Throwable": true, "Exception": true,
	"Error": true, "RuntimeException": true, "IllegalArgumentException": true,
	"IllegalStateException": true, "NullPointerException": true,
	"UnsupportedOperationException": true, "InterruptedException": true,
	"Override": true, "Deprecated": true, "SuppressWarnings": true,
	"FunctionalInterface": true, "SafeVarargs": true,
}

// typeScope resolves the names a type expression refers to. Single names are
// looked up as type variables, then declared types, then java.lang, and finally
// the document's own package.
type typeScope struct {
	pkg      string
	declared map[string]javapoet.TypeName
	vars     []map[string]bool
}

func newTypeScope(pkg string) *typeScope {
	return &typeScope{pkg: pkg, declared: map[string]javapoet.TypeName{}}
}

func (s *typeScope) pushVars(names []string) {
	frame := make(map[string]bool, len(names))
	for _, n := range names {
		frame[n] = true
	}
	s.vars = append(s.vars, frame)
}

func (s *typeScope) popVars() { s.vars = s.vars[:len(s.vars)-1] }

func (s *typeScope) isVar(name string) bool {
	for i := len(s.vars) - 1; i >= 0; i-- {
		if s.vars[i][name] {
			return true
		}
	}
	return false
}

// parse resolves src to a TypeName. Wildcards are only accepted as type arguments.
func (s *typeScope) parse(src string) (javapoet.TypeName, error) {
	expr, err := typeParser.ParseString("", src)
	if err != nil {
		return javapoet.TypeName{}, errors.Wrapf(err, "parse type %q", src)
	}
	t, err := s.resolve(expr, false)
	if err != nil {
		return javapoet.TypeName{}, errors.Wrapf(err, "type %q", src)
	}
	return t, nil
}

func (s *typeScope) resolve(e *typeExpr, argument bool) (javapoet.TypeName, error) {
	var (
		t   javapoet.TypeName
		err error
	)
	switch {
	case e.Wildcard != nil:
		if !argument {
			return t, errors.New("wildcard is only allowed as a type argument")
		}
		if len(e.Dims) > 0 {
			return t, errors.New("wildcard cannot be an array")
		}
		t, err = s.resolveWildcard(e.Wildcard)
	default:
		t, err = s.resolveRef(e.Ref)
	}
	if err != nil {
		return t, err
	}

	if len(e.Annotations) > 0 {
		annotations := make([]javapoet.AnnotationSpec, 0, len(e.Annotations))
		for _, a := range e.Annotations {
			spec, err := s.annotation(a.Parts)
			if err != nil {
				return t, err
			}
			annotations = append(annotations, spec)
		}
		t = t.Annotated(annotations...)
	}
	for range e.Dims {
		t = javapoet.ArrayOf(t)
	}
	return t, nil
}

func (s *typeScope) resolveWildcard(w *wildcardExpr) (javapoet.TypeName, error) {
	if w.Bound == nil {
		return javapoet.Wildcard(), nil
	}
	bound, err := s.resolve(w.Bound, false)
	if err != nil {
		return javapoet.TypeName{}, err
	}
	if w.Kind == "super" {
		return javapoet.SupertypeOf(bound)
	}
	return javapoet.SubtypeOf(bound)
}

func (s *typeScope) resolveRef(r *refExpr) (javapoet.TypeName, error) {
	if len(r.Parts) == 1 {
		if p, ok := javapoet.PrimitiveType(r.Parts[0]); ok {
			if len(r.Args) > 0 {
				return javapoet.TypeName{}, errors.Newf("primitive %s cannot have type arguments", r.Parts[0])
			}
			return p, nil
		}
		if s.isVar(r.Parts[0]) {
			if len(r.Args) > 0 {
				return javapoet.TypeName{}, errors.Newf("type variable %s cannot have type arguments", r.Parts[0])
			}
			return javapoet.TypeVariable(r.Parts[0])
		}
	}

	raw, err := s.className(r.Parts)
	if err != nil {
		return raw, err
	}
	if len(r.Args) == 0 {
		return raw, nil
	}
	args := make([]javapoet.TypeName, 0, len(r.Args))
	for _, a := range r.Args {
		arg, err := s.resolve(a, true)
		if err != nil {
			return raw, err
		}
		args = append(args, arg)
	}
	return javapoet.ParameterizedTypeOf(raw, args...)
}

// className splits a dotted name into package and simple names: the package
// ends before the first segment that starts with an upper-case letter.
func (s *typeScope) className(parts []string) (javapoet.TypeName, error) {
	first := -1
	for i, p := range parts {
		if unicode.IsUpper([]rune(p)[0]) {
			first = i
			break
		}
	}
	if first < 0 {
		return javapoet.TypeName{}, errors.Newf("%s does not name a class", strings.Join(parts, "."))
	}
	if first > 0 {
		return javapoet.NewClassName(strings.Join(parts[:first], "."), parts[first], parts[first+1:]...)
	}

	outer, err := s.simpleClass(parts[0])
	if err != nil {
		return outer, err
	}
	for _, n := range parts[1:] {
		if outer, err = outer.NestedClass(n); err != nil {
			return outer, err
		}
	}
	return outer, nil
}

func (s *typeScope) simpleClass(name string) (javapoet.TypeName, error) {
	if t, ok := s.declared[name]; ok {
		return t, nil
	}
	if javaLang[name] {
		return javapoet.NewClassName("java.lang", name)
	}
	return javapoet.NewClassName(s.pkg, name)
}

func (s *typeScope) annotation(parts []string) (javapoet.AnnotationSpec, error) {
	typ, err := s.className(parts)
	if err != nil {
		return javapoet.AnnotationSpec{}, err
	}
	return javapoet.Annotation(typ)
}
