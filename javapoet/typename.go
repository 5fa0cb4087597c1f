package javapoet

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind discriminates the TypeName variants.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindPrimitive
	KindVoid
	KindClass
	KindParameterized
	KindArray
	KindTypeVariable
	KindWildcard
)

var kindNames = [...]string{
	KindInvalid:       "invalid",
	KindPrimitive:     "primitive",
	KindVoid:          "void",
	KindClass:         "class",
	KindParameterized: "parameterized",
	KindArray:         "array",
	KindTypeVariable:  "type variable",
	KindWildcard:      "wildcard",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[KindInvalid]
}

// TypeName is a reference to a Java type. The zero value is invalid.
//
// Which fields are populated depends on kind:
//   - primitive, void: keyword
//   - class: pkg, names
//   - parameterized: pkg, names (the raw class) and args
//   - array: component
//   - type variable: name, upper (bounds)
//   - wildcard: upper (exactly one) and lower (at most one)
//
// Slices are never modified after construction, so copies of a TypeName may share them.
type TypeName struct {
	kind        Kind
	keyword     string
	pkg         string
	names       []string
	args        []TypeName
	component   *TypeName
	name        string
	upper       []TypeName
	lower       []TypeName
	annotations []AnnotationSpec
}

func primitive(keyword string) TypeName {
	return TypeName{kind: KindPrimitive, keyword: keyword}
}

// className builds a class reference without validation; callers pass known-good names.
func className(pkg string, names ...string) TypeName {
	return TypeName{kind: KindClass, pkg: pkg, names: names}
}

var (
	Void    = TypeName{kind: KindVoid, keyword: "void"}
	Boolean = primitive("boolean")
	Byte    = primitive("byte")
	Short   = primitive("short")
	Int     = primitive("int")
	Long    = primitive("long")
	Char    = primitive("char")
	Float   = primitive("float")
	Double  = primitive("double")

	ObjectClass = className("java.lang", "Object")
	StringClass = className("java.lang", "String")
)

var boxedTypes = map[string]TypeName{
	"void":    className("java.lang", "Void"),
	"boolean": className("java.lang", "Boolean"),
	"byte":    className("java.lang", "Byte"),
	"short":   className("java.lang", "Short"),
	"int":     className("java.lang", "Integer"),
	"long":    className("java.lang", "Long"),
	"char":    className("java.lang", "Character"),
	"float":   className("java.lang", "Float"),
	"double":  className("java.lang", "Double"),
}

// PrimitiveType returns the primitive (or void) named by keyword.
func PrimitiveType(keyword string) (TypeName, bool) {
	if keyword == "void" {
		return Void, true
	}
	if _, ok := boxedTypes[keyword]; ok {
		return primitive(keyword), true
	}
	return TypeName{}, false
}

func isSimpleName(s string) bool {
	return isIdentifier(s) && !javaKeywords[s]
}

// NewClassName returns a reference to the class simpleName in pkg, or to a class nested
// inside it when nested names are given. An empty pkg is the default package.
func NewClassName(pkg, simpleName string, nested ...string) (TypeName, error) {
	if pkg != "" && !IsName(pkg) {
		return TypeName{}, invalidArgf("invalid package name: %s", pkg)
	}
	names := make([]string, 0, 1+len(nested))
	names = append(names, simpleName)
	names = append(names, nested...)
	for _, n := range names {
		if !isSimpleName(n) {
			return TypeName{}, invalidArgf("%s is not a valid simple name", n)
		}
	}
	return className(pkg, names...), nil
}

// MustClassName is like NewClassName but panics on invalid input.
func MustClassName(pkg, simpleName string, nested ...string) TypeName {
	t, err := NewClassName(pkg, simpleName, nested...)
	if err != nil {
		panic(err)
	}
	return t
}

// BestGuessClassName splits a canonical name such as "java.util.Map.Entry" into package
// and class names, assuming packages are lowercase and classes start uppercase.
func BestGuessClassName(canonical string) (TypeName, error) {
	p := 0
	for p < len(canonical) {
		r, _ := utf8.DecodeRuneInString(canonical[p:])
		if !unicode.IsLower(r) {
			break
		}
		dot := strings.IndexByte(canonical[p:], '.')
		if dot < 0 {
			return TypeName{}, invalidArgf("couldn't make a guess for %s", canonical)
		}
		p += dot + 1
	}
	pkg := ""
	if p > 0 {
		pkg = canonical[:p-1]
	}
	parts := strings.Split(canonical[p:], ".")
	for _, part := range parts {
		r, _ := utf8.DecodeRuneInString(part)
		if part == "" || !unicode.IsUpper(r) {
			return TypeName{}, invalidArgf("couldn't make a guess for %s", canonical)
		}
	}
	return NewClassName(pkg, parts[0], parts[1:]...)
}

// ParameterizedTypeOf applies type arguments to a raw class.
func ParameterizedTypeOf(raw TypeName, args ...TypeName) (TypeName, error) {
	if raw.kind != KindClass {
		return TypeName{}, invalidArgf("raw type must be a class: %s", raw)
	}
	if len(args) == 0 {
		return TypeName{}, invalidArgf("no type arguments: %s", raw)
	}
	for _, a := range args {
		if !a.IsValid() || a.kind == KindPrimitive || a.kind == KindVoid {
			return TypeName{}, invalidArgf("invalid type parameter: %s", a)
		}
	}
	return TypeName{
		kind:        KindParameterized,
		pkg:         raw.pkg,
		names:       raw.names,
		args:        slices.Clone(args),
		annotations: raw.annotations,
	}, nil
}

// MustParameterized is like ParameterizedTypeOf but panics on invalid input.
func MustParameterized(raw TypeName, args ...TypeName) TypeName {
	t, err := ParameterizedTypeOf(raw, args...)
	if err != nil {
		panic(err)
	}
	return t
}

// ArrayOf returns the array type whose elements are component.
func ArrayOf(component TypeName) TypeName {
	c := component
	return TypeName{kind: KindArray, component: &c}
}

// TypeVariable returns a type variable with the given bounds. A java.lang.Object bound is
// dropped since it is implied.
func TypeVariable(name string, bounds ...TypeName) (TypeName, error) {
	if !isSimpleName(name) {
		return TypeName{}, invalidArgf("not a valid name: %s", name)
	}
	kept := make([]TypeName, 0, len(bounds))
	for _, b := range bounds {
		if b.isObject() {
			continue
		}
		kept = append(kept, b)
	}
	return newTypeVariable(name, kept, nil)
}

// MustTypeVariable is like TypeVariable but panics on invalid input.
func MustTypeVariable(name string, bounds ...TypeName) TypeName {
	t, err := TypeVariable(name, bounds...)
	if err != nil {
		panic(err)
	}
	return t
}

func newTypeVariable(name string, bounds []TypeName, annotations []AnnotationSpec) (TypeName, error) {
	for _, b := range bounds {
		if !b.IsValid() || b.kind == KindPrimitive || b.kind == KindVoid {
			return TypeName{}, invalidArgf("invalid bound: %s", b)
		}
	}
	return TypeName{kind: KindTypeVariable, name: name, upper: bounds, annotations: annotations}, nil
}

// WithBounds returns a copy of the type variable t with bounds appended. Unlike
// TypeVariable it keeps an explicit java.lang.Object bound.
func (t TypeName) WithBounds(bounds ...TypeName) (TypeName, error) {
	if t.kind != KindTypeVariable {
		return TypeName{}, invalidArgf("not a type variable: %s", t)
	}
	return newTypeVariable(t.name, slices.Concat(t.upper, bounds), t.annotations)
}

// SubtypeOf returns the wildcard "? extends upper".
func SubtypeOf(upper TypeName) (TypeName, error) {
	if !upper.IsValid() || upper.kind == KindPrimitive || upper.kind == KindVoid {
		return TypeName{}, invalidArgf("invalid upper bound: %s", upper)
	}
	return TypeName{kind: KindWildcard, upper: []TypeName{upper}}, nil
}

// SupertypeOf returns the wildcard "? super lower".
func SupertypeOf(lower TypeName) (TypeName, error) {
	if !lower.IsValid() || lower.kind == KindPrimitive || lower.kind == KindVoid {
		return TypeName{}, invalidArgf("invalid lower bound: %s", lower)
	}
	return TypeName{kind: KindWildcard, upper: []TypeName{ObjectClass}, lower: []TypeName{lower}}, nil
}

// Wildcard returns the unbounded wildcard "?".
func Wildcard() TypeName {
	return TypeName{kind: KindWildcard, upper: []TypeName{ObjectClass}}
}

func (t TypeName) Kind() Kind        { return t.kind }
func (t TypeName) IsValid() bool     { return t.kind != KindInvalid }
func (t TypeName) IsPrimitive() bool { return t.kind == KindPrimitive }
func (t TypeName) IsAnnotated() bool { return len(t.annotations) > 0 }

// IsBoxedPrimitive reports whether t is one of the java.lang wrappers of a primitive.
func (t TypeName) IsBoxedPrimitive() bool {
	_, ok := t.unboxed()
	return ok
}

func (t TypeName) isObject() bool {
	return t.kind == KindClass && t.pkg == "java.lang" && len(t.names) == 1 &&
		t.names[0] == "Object" && len(t.annotations) == 0
}

// Annotations returns the type annotations attached to t.
func (t TypeName) Annotations() []AnnotationSpec { return slices.Clone(t.annotations) }

// Annotated returns a copy of t with annotations appended.
func (t TypeName) Annotated(annotations ...AnnotationSpec) TypeName {
	t.annotations = slices.Concat(t.annotations, annotations)
	return t
}

// WithoutAnnotations returns t with its own annotations removed. Annotations on type
// arguments or components are kept.
func (t TypeName) WithoutAnnotations() TypeName {
	t.annotations = nil
	return t
}

// Box returns the wrapper class of a primitive or void; other types are returned as is.
func (t TypeName) Box() TypeName {
	if t.kind != KindPrimitive && t.kind != KindVoid {
		return t
	}
	b := boxedTypes[t.keyword]
	b.annotations = t.annotations
	return b
}

// Unbox returns the primitive for a wrapper class.
func (t TypeName) Unbox() (TypeName, error) {
	if t.kind == KindPrimitive {
		return t, nil
	}
	p, ok := t.unboxed()
	if !ok {
		return TypeName{}, invalidArgf("cannot unbox %s", t)
	}
	p.annotations = t.annotations
	return p, nil
}

func (t TypeName) unboxed() (TypeName, bool) {
	if t.kind != KindClass || t.pkg != "java.lang" || len(t.names) != 1 {
		return TypeName{}, false
	}
	for keyword, b := range boxedTypes {
		if b.names[0] == t.names[0] && keyword != "void" {
			return primitive(keyword), true
		}
	}
	return TypeName{}, false
}

// PackageName returns the package of a class or parameterized type.
func (t TypeName) PackageName() string { return t.pkg }

// SimpleName returns the innermost class name, the type variable name, or the keyword.
func (t TypeName) SimpleName() string {
	switch t.kind {
	case KindClass, KindParameterized:
		return t.names[len(t.names)-1]
	case KindTypeVariable:
		return t.name
	case KindPrimitive, KindVoid:
		return t.keyword
	}
	return ""
}

// SimpleNames returns the nesting chain of a class, outermost first.
func (t TypeName) SimpleNames() []string { return slices.Clone(t.names) }

// CanonicalName returns the dotted fully qualified name of a class without annotations or
// type arguments. Other kinds return their canonical form.
func (t TypeName) CanonicalName() string {
	if t.kind != KindClass && t.kind != KindParameterized {
		return t.CanonicalForm()
	}
	name := strings.Join(t.names, ".")
	if t.pkg == "" {
		return name
	}
	return t.pkg + "." + name
}

// Raw returns the class of a parameterized type, or t itself for a class.
func (t TypeName) Raw() TypeName {
	if t.kind == KindParameterized {
		return className(t.pkg, t.names...)
	}
	return t
}

// TypeArguments returns the arguments of a parameterized type.
func (t TypeName) TypeArguments() []TypeName { return slices.Clone(t.args) }

// Component returns the element type of an array; ok is false for other kinds.
func (t TypeName) Component() (TypeName, bool) {
	if t.kind != KindArray {
		return TypeName{}, false
	}
	return *t.component, true
}

// Bounds returns the bounds of a type variable or the upper bounds of a wildcard.
func (t TypeName) Bounds() []TypeName { return slices.Clone(t.upper) }

// LowerBounds returns the lower bounds of a wildcard.
func (t TypeName) LowerBounds() []TypeName { return slices.Clone(t.lower) }

// EnclosingClassName returns the class t is nested in.
func (t TypeName) EnclosingClassName() (TypeName, bool) {
	if (t.kind != KindClass && t.kind != KindParameterized) || len(t.names) < 2 {
		return TypeName{}, false
	}
	return className(t.pkg, t.names[:len(t.names)-1]...), true
}

// TopLevelClassName returns the outermost class enclosing t.
func (t TypeName) TopLevelClassName() TypeName {
	return className(t.pkg, t.names[0])
}

// NestedClass returns a class named name nested inside t.
func (t TypeName) NestedClass(name string) (TypeName, error) {
	if t.kind != KindClass {
		return TypeName{}, invalidArgf("not a class: %s", t)
	}
	return NewClassName(t.pkg, t.names[0], append(slices.Clone(t.names[1:]), name)...)
}

// PeerClass returns a class named name that shares t's enclosing class or package.
func (t TypeName) PeerClass(name string) (TypeName, error) {
	if t.kind != KindClass {
		return TypeName{}, invalidArgf("not a class: %s", t)
	}
	if len(t.names) == 1 {
		return NewClassName(t.pkg, name)
	}
	peers := append(slices.Clone(t.names[1:len(t.names)-1]), name)
	return NewClassName(t.pkg, t.names[0], peers...)
}

// CanonicalForm renders t fully qualified, with type arguments and annotations. Two
// TypeNames are equal exactly when their canonical forms are.
func (t TypeName) CanonicalForm() string {
	return renderString(func(w *codeWriter) { t.emit(w) })
}

func (t TypeName) String() string { return t.CanonicalForm() }

// Equal reports whether t and o denote the same type.
func (t TypeName) Equal(o TypeName) bool {
	return t.CanonicalForm() == o.CanonicalForm()
}

func (t TypeName) emit(w *codeWriter) {
	switch t.kind {
	case KindPrimitive, KindVoid:
		t.emitAnnotations(w)
		w.emitAndIndent(t.keyword)
	case KindClass:
		t.emitClass(w)
	case KindParameterized:
		raw := className(t.pkg, t.names...)
		raw.annotations = t.annotations
		raw.emitClass(w)
		w.emitAndIndent("<")
		for i, a := range t.args {
			if i > 0 {
				w.emitAndIndent(", ")
			}
			a.emit(w)
		}
		w.emitAndIndent(">")
	case KindArray:
		t.emitArray(w, false)
	case KindTypeVariable:
		t.emitAnnotations(w)
		w.emitAndIndent(t.name)
	case KindWildcard:
		t.emitAnnotations(w)
		switch {
		case len(t.lower) == 1:
			w.emitAndIndent("? super ")
			t.lower[0].emit(w)
		case t.upper[0].isObject():
			w.emitAndIndent("?")
		default:
			w.emitAndIndent("? extends ")
			t.upper[0].emit(w)
		}
	default:
		w.fail(invalidArgf("cannot emit an invalid type name"))
	}
}

func (t TypeName) emitAnnotations(w *codeWriter) {
	for _, a := range t.annotations {
		a.emit(w, true)
		w.emitAndIndent(" ")
	}
}

func (t TypeName) emitClass(w *codeWriter) {
	qualified := w.lookupName(t)
	if len(t.annotations) == 0 {
		w.emitAndIndent(qualified)
		return
	}
	if dot := strings.LastIndexByte(qualified, '.'); dot >= 0 {
		w.emitAndIndent(qualified[:dot+1])
		w.emitAndIndent(" ")
		t.emitAnnotations(w)
		w.emitAndIndent(qualified[dot+1:])
		return
	}
	t.emitAnnotations(w)
	w.emitAndIndent(qualified)
}

// emitArray writes the leaf component followed by one bracket pair per dimension; the
// last pair becomes "..." for a varargs parameter.
func (t TypeName) emitArray(w *codeWriter, varargs bool) {
	leaf := *t.component
	for leaf.kind == KindArray {
		leaf = *leaf.component
	}
	leaf.emit(w)
	t.emitBrackets(w, varargs)
}

func (t TypeName) emitBrackets(w *codeWriter, varargs bool) {
	if len(t.annotations) > 0 {
		w.emitAndIndent(" ")
		t.emitAnnotations(w)
	}
	if t.component.kind != KindArray {
		if varargs {
			w.emitAndIndent("...")
		} else {
			w.emitAndIndent("[]")
		}
		return
	}
	w.emitAndIndent("[]")
	t.component.emitBrackets(w, varargs)
}
