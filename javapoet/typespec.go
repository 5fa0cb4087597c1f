package javapoet

import (
	"slices"
	"strings"
)

// TypeKind is the flavor of a type declaration.
type TypeKind uint8

const (
	ClassKind TypeKind = iota + 1
	InterfaceKind
	EnumKind
	AnnotationKind
)

func (k TypeKind) String() string {
	switch k {
	case ClassKind:
		return "class"
	case InterfaceKind:
		return "interface"
	case EnumKind:
		return "enum"
	case AnnotationKind:
		return "@interface"
	}
	return "invalid"
}

// ParseTypeKind maps "class", "interface", "enum" or "annotation" to a TypeKind.
func ParseTypeKind(s string) (TypeKind, error) {
	switch s {
	case "class":
		return ClassKind, nil
	case "interface":
		return InterfaceKind, nil
	case "enum":
		return EnumKind, nil
	case "annotation", "@interface":
		return AnnotationKind, nil
	}
	return 0, invalidArgf("unknown type kind: %s", s)
}

// Modifiers a member of each kind has without writing them.
func (k TypeKind) implicitFieldModifiers() []Modifier {
	if k == InterfaceKind || k == AnnotationKind {
		return []Modifier{Public, Static, Final}
	}
	return nil
}

func (k TypeKind) implicitMethodModifiers() []Modifier {
	if k == InterfaceKind || k == AnnotationKind {
		return []Modifier{Public, Abstract}
	}
	return nil
}

func (k TypeKind) implicitTypeModifiers() []Modifier {
	if k == InterfaceKind || k == AnnotationKind {
		return []Modifier{Public, Static}
	}
	return nil
}

// asMemberModifiers are implied when a type of this kind is nested in another.
func (k TypeKind) asMemberModifiers() []Modifier {
	if k == ClassKind {
		return nil
	}
	return []Modifier{Static}
}

// EnumConstant is one constant of an enum. Args, when present, are passed to the enum's
// constructor; Methods form a constant-specific class body.
type EnumConstant struct {
	Name        string
	Args        CodeBlock
	Javadoc     CodeBlock
	Annotations []AnnotationSpec
	Methods     []MethodSpec
}

func (c EnumConstant) emit(w *codeWriter) {
	w.emitJavadoc(c.Javadoc)
	w.emitAnnotations(c.Annotations, false)
	w.emitf("$L", c.Name)
	if len(c.Args.parts) > 0 {
		w.emit("(")
		w.emitBlock(c.Args, false)
		w.emit(")")
	}
	if len(c.Methods) == 0 {
		return
	}
	w.emit(" {\n")
	w.indentBy(1)
	for i, m := range c.Methods {
		if i > 0 {
			w.emit("\n")
		}
		m.emit(w, c.Name, nil)
	}
	w.unindentBy(1)
	w.emit("}")
}

// TypeSpec is a class, interface, enum or annotation type declaration.
type TypeSpec struct {
	kind             TypeKind
	name             string
	javadoc          CodeBlock
	annotations      []AnnotationSpec
	modifiers        []Modifier
	typeVariables    []TypeName
	superclass       TypeName
	superinterfaces  []TypeName
	enumConstants    []EnumConstant
	fields           []FieldSpec
	staticBlock      CodeBlock
	initializerBlock CodeBlock
	methods          []MethodSpec
	types            []TypeSpec
	alwaysQualify    []string
	nested           map[string]bool
}

func (t TypeSpec) Kind() TypeKind                  { return t.kind }
func (t TypeSpec) Name() string                    { return t.name }
func (t TypeSpec) Javadoc() CodeBlock              { return t.javadoc }
func (t TypeSpec) Annotations() []AnnotationSpec   { return slices.Clone(t.annotations) }
func (t TypeSpec) Modifiers() []Modifier           { return slices.Clone(t.modifiers) }
func (t TypeSpec) TypeVariables() []TypeName       { return slices.Clone(t.typeVariables) }
func (t TypeSpec) Superinterfaces() []TypeName     { return slices.Clone(t.superinterfaces) }
func (t TypeSpec) EnumConstants() []EnumConstant   { return slices.Clone(t.enumConstants) }
func (t TypeSpec) Fields() []FieldSpec             { return slices.Clone(t.fields) }
func (t TypeSpec) Methods() []MethodSpec           { return slices.Clone(t.methods) }
func (t TypeSpec) Types() []TypeSpec               { return slices.Clone(t.types) }
func (t TypeSpec) HasModifier(m Modifier) bool     { return hasModifier(t.modifiers, m) }

// Superclass returns the declared superclass; ok is false when there is none.
func (t TypeSpec) Superclass() (TypeName, bool) { return t.superclass, t.superclass.IsValid() }

func (t TypeSpec) String() string {
	return renderString(func(w *codeWriter) { t.emit(w, nil) })
}

// Equal reports whether both declarations render identically.
func (t TypeSpec) Equal(o TypeSpec) bool { return t.String() == o.String() }

// declaredNames returns the simple names of t and every type nested in it.
func (t TypeSpec) declaredNames(into map[string]bool) {
	into[t.name] = true
	for _, nested := range t.types {
		nested.declaredNames(into)
	}
}

// alwaysQualifiedNames collects the always-qualify names of t and its nested types.
func (t TypeSpec) alwaysQualifiedNames(into map[string]bool) {
	for _, n := range t.alwaysQualify {
		into[n] = true
	}
	for _, nested := range t.types {
		nested.alwaysQualifiedNames(into)
	}
}

func (t TypeSpec) emit(w *codeWriter, implicit []Modifier) {
	// Nested types interrupt wrapped statement indentation; restore it afterwards.
	previousStatementLine := w.statementLine
	w.statementLine = -1
	level := w.indentLevel

	// The header resolves names without this type's nested types in scope.
	w.pushType(t.name, nil)
	w.emitJavadoc(t.javadoc)
	w.emitAnnotations(t.annotations, false)
	w.emitModifiers(t.modifiers, slices.Concat(implicit, t.kind.asMemberModifiers()))
	w.emitf("$L $L", t.kind.String(), t.name)
	w.emitTypeVariables(t.typeVariables)

	var extends, implements []TypeName
	if t.kind == InterfaceKind {
		extends = t.superinterfaces
	} else {
		if t.superclass.IsValid() && !t.superclass.isObject() {
			extends = []TypeName{t.superclass}
		}
		implements = t.superinterfaces
	}
	emitSupertypes(w, " extends", extends)
	emitSupertypes(w, " implements", implements)
	w.popType()
	w.emit(" {\n")

	w.pushType(t.name, t.nested)
	w.indentBy(1)
	first := true
	separate := func() {
		if !first {
			w.emit("\n")
		}
		first = false
	}

	needsSeparator := t.kind == EnumKind && (len(t.fields) > 0 || len(t.methods) > 0 || len(t.types) > 0)
	for i, c := range t.enumConstants {
		separate()
		c.emit(w)
		switch {
		case i < len(t.enumConstants)-1:
			w.emit(",\n")
		case !needsSeparator:
			w.emit("\n")
		}
	}
	if needsSeparator {
		w.emit(";\n")
	}

	for _, f := range t.fields {
		if f.HasModifier(Static) {
			separate()
			f.emit(w, t.kind.implicitFieldModifiers())
		}
	}
	if !t.staticBlock.IsEmpty() {
		separate()
		w.emitBlock(t.staticBlock, false)
	}
	for _, f := range t.fields {
		if !f.HasModifier(Static) {
			separate()
			f.emit(w, t.kind.implicitFieldModifiers())
		}
	}
	if !t.initializerBlock.IsEmpty() {
		separate()
		w.emitBlock(t.initializerBlock, false)
	}
	for _, m := range t.methods {
		if m.IsConstructor() {
			separate()
			m.emit(w, t.name, t.kind.implicitMethodModifiers())
		}
	}
	for _, m := range t.methods {
		if !m.IsConstructor() {
			separate()
			m.emit(w, t.name, t.kind.implicitMethodModifiers())
		}
	}
	for _, nested := range t.types {
		separate()
		nested.emit(w, t.kind.implicitTypeModifiers())
	}

	w.unindentBy(1)
	w.popType()
	w.popTypeVariables(t.typeVariables)
	w.emit("}\n")
	w.checkBalanced(t.kind.String()+" "+t.name, level)
	w.statementLine = previousStatementLine
}

func emitSupertypes(w *codeWriter, keyword string, types []TypeName) {
	if len(types) == 0 {
		return
	}
	w.emit(keyword)
	for i, typ := range types {
		if i > 0 {
			w.emit(",")
		}
		w.emitf(" $T", typ)
	}
}

// TypeSpecBuilder accumulates a TypeSpec. Member checks that depend on the kind (such as
// interface fields being public static final) run when the member is added.
type TypeSpecBuilder struct {
	kind             TypeKind
	name             string
	javadoc          *CodeBlockBuilder
	annotations      []AnnotationSpec
	modifiers        []Modifier
	typeVariables    []TypeName
	superclass       TypeName
	superinterfaces  []TypeName
	enumConstants    []EnumConstant
	fields           []FieldSpec
	staticBlock      *CodeBlockBuilder
	initializerBlock *CodeBlockBuilder
	methods          []MethodSpec
	types            []TypeSpec
	alwaysQualify    []string
	err              stickyErr
}

// NewTypeBuilder starts a declaration of the given kind.
func NewTypeBuilder(kind TypeKind, name string) *TypeSpecBuilder {
	b := &TypeSpecBuilder{
		kind:             kind,
		name:             name,
		javadoc:          NewCodeBlockBuilder(),
		staticBlock:      NewCodeBlockBuilder(),
		initializerBlock: NewCodeBlockBuilder(),
	}
	switch {
	case kind < ClassKind || kind > AnnotationKind:
		b.err.fail(invalidArgf("invalid type kind: %d", uint8(kind)))
	case !isSimpleName(name):
		b.err.fail(invalidArgf("not a valid name: %s", name))
	}
	return b
}

func NewClassBuilder(name string) *TypeSpecBuilder      { return NewTypeBuilder(ClassKind, name) }
func NewInterfaceBuilder(name string) *TypeSpecBuilder  { return NewTypeBuilder(InterfaceKind, name) }
func NewEnumBuilder(name string) *TypeSpecBuilder       { return NewTypeBuilder(EnumKind, name) }
func NewAnnotationTypeBuilder(name string) *TypeSpecBuilder {
	return NewTypeBuilder(AnnotationKind, name)
}

func (b *TypeSpecBuilder) AddJavadoc(format string, args ...any) *TypeSpecBuilder {
	b.javadoc.Add(format, args...)
	return b
}

func (b *TypeSpecBuilder) AddJavadocBlock(block CodeBlock) *TypeSpecBuilder {
	b.javadoc.AddBlock(block)
	return b
}

func (b *TypeSpecBuilder) AddAnnotation(a AnnotationSpec) *TypeSpecBuilder {
	b.annotations = append(b.annotations, a)
	return b
}

func (b *TypeSpecBuilder) AddModifiers(modifiers ...Modifier) *TypeSpecBuilder {
	if b.err.failed() || b.err.fail(validModifiers(modifiers)) {
		return b
	}
	b.modifiers = append(b.modifiers, modifiers...)
	return b
}

func (b *TypeSpecBuilder) AddTypeVariables(vars ...TypeName) *TypeSpecBuilder {
	if b.err.failed() {
		return b
	}
	for _, v := range vars {
		if v.kind != KindTypeVariable {
			b.err.fail(invalidArgf("not a type variable: %s", v))
			return b
		}
	}
	b.typeVariables = append(b.typeVariables, vars...)
	return b
}

// Superclass sets the class this class extends.
func (b *TypeSpecBuilder) Superclass(typ TypeName) *TypeSpecBuilder {
	if b.err.failed() {
		return b
	}
	switch {
	case b.kind != ClassKind:
		b.err.fail(invalidArgf("only classes have super classes, not %s", b.kind))
	case b.superclass.IsValid():
		b.err.fail(invalidArgf("superclass already set to %s", b.superclass))
	case typ.kind != KindClass && typ.kind != KindParameterized:
		b.err.fail(invalidArgf("superclass must be a class: %s", typ))
	default:
		b.superclass = typ
	}
	return b
}

// AddSuperinterface adds an implemented interface, or an extended one for interfaces.
func (b *TypeSpecBuilder) AddSuperinterface(typ TypeName) *TypeSpecBuilder {
	if b.err.failed() {
		return b
	}
	if typ.kind != KindClass && typ.kind != KindParameterized {
		b.err.fail(invalidArgf("superinterface must be a class: %s", typ))
		return b
	}
	b.superinterfaces = append(b.superinterfaces, typ)
	return b
}

// AddEnumConstant adds a constant without arguments or body.
func (b *TypeSpecBuilder) AddEnumConstant(name string) *TypeSpecBuilder {
	return b.AddEnumConstantSpec(EnumConstant{Name: name})
}

// AddEnumConstantArgs adds a constant whose constructor arguments are format.
func (b *TypeSpecBuilder) AddEnumConstantArgs(name, format string, args ...any) *TypeSpecBuilder {
	if b.err.failed() {
		return b
	}
	block, err := CodeBlockOf(format, args...)
	if b.err.fail(err) {
		return b
	}
	return b.AddEnumConstantSpec(EnumConstant{Name: name, Args: block})
}

func (b *TypeSpecBuilder) AddEnumConstantSpec(c EnumConstant) *TypeSpecBuilder {
	if b.err.failed() {
		return b
	}
	switch {
	case b.kind != EnumKind:
		b.err.fail(invalidArgf("%s is not enum", b.name))
	case !isSimpleName(c.Name):
		b.err.fail(invalidArgf("not a valid enum constant: %s", c.Name))
	case slices.ContainsFunc(c.Methods, MethodSpec.IsConstructor):
		b.err.fail(invalidArgf("enum constant %s cannot declare a constructor", c.Name))
	default:
		c.Annotations = slices.Clone(c.Annotations)
		c.Methods = slices.Clone(c.Methods)
		b.enumConstants = append(b.enumConstants, c)
	}
	return b
}

// AddField adds a field. Interface and annotation fields must be public (or private),
// static and final.
func (b *TypeSpecBuilder) AddField(f FieldSpec) *TypeSpecBuilder {
	if b.err.failed() {
		return b
	}
	if b.kind == InterfaceKind || b.kind == AnnotationKind {
		if err := requireExactlyOne(f.modifiers, Public, Private); err != nil {
			b.err.fail(invalidArgf("%s %s.%s requires exactly one of public, private", b.kind, b.name, f.name))
			return b
		}
		if !f.HasModifier(Static) || !f.HasModifier(Final) {
			b.err.fail(invalidArgf("%s %s.%s requires modifiers [static, final]", b.kind, b.name, f.name))
			return b
		}
	}
	b.fields = append(b.fields, f)
	return b
}

// AddFieldOf adds a field without documentation or initializer.
func (b *TypeSpecBuilder) AddFieldOf(typ TypeName, name string, modifiers ...Modifier) *TypeSpecBuilder {
	if b.err.failed() {
		return b
	}
	f, err := Field(typ, name, modifiers...)
	if b.err.fail(err) {
		return b
	}
	return b.AddField(f)
}

// AddMethod adds a method or constructor, checking the modifiers the kind allows.
func (b *TypeSpecBuilder) AddMethod(m MethodSpec) *TypeSpecBuilder {
	if b.err.failed() {
		return b
	}
	if err := b.checkMethod(m); err != nil {
		b.err.fail(err)
		return b
	}
	b.methods = append(b.methods, m)
	return b
}

func (b *TypeSpecBuilder) checkMethod(m MethodSpec) error {
	switch b.kind {
	case InterfaceKind:
		if requireExactlyOne(m.modifiers, Public, Private) != nil {
			return invalidArgf("%s %s.%s requires exactly one of public, private", b.kind, b.name, m.name)
		}
		if m.HasModifier(Private) {
			if m.HasModifier(Default) {
				return invalidArgf("%s %s.%s cannot be private and default", b.kind, b.name, m.name)
			}
			if m.HasModifier(Abstract) {
				return invalidArgf("%s %s.%s cannot be private and abstract", b.kind, b.name, m.name)
			}
		} else if requireExactlyOne(m.modifiers, Abstract, Static, Default) != nil {
			return invalidArgf("%s %s.%s requires exactly one of abstract, static, default", b.kind, b.name, m.name)
		}
	case AnnotationKind:
		mods := sortedModifiers(m.modifiers, nil)
		if !slices.Equal(mods, []Modifier{Public, Abstract}) {
			return invalidArgf("%s %s.%s requires modifiers [public, abstract]", b.kind, b.name, m.name)
		}
	}
	if b.kind != AnnotationKind && m.defaultValue != nil {
		return invalidArgf("%s %s.%s cannot have a default value", b.kind, b.name, m.name)
	}
	if b.kind != InterfaceKind && m.HasModifier(Default) {
		return invalidArgf("%s %s.%s cannot be default", b.kind, b.name, m.name)
	}
	if m.HasModifier(Abstract) && b.kind == ClassKind && !hasModifier(b.modifiers, Abstract) {
		return invalidArgf("non-abstract type %s cannot declare abstract method %s", b.name, m.name)
	}
	if m.IsConstructor() && (b.kind == InterfaceKind || b.kind == AnnotationKind) {
		return invalidArgf("%s %s cannot declare a constructor", b.kind, b.name)
	}
	return nil
}

func requireExactlyOne(mods []Modifier, candidates ...Modifier) error {
	n := 0
	for _, c := range candidates {
		if hasModifier(mods, c) {
			n++
		}
	}
	if n != 1 {
		return invalidArgf("expected exactly one of %v, got %v", candidates, mods)
	}
	return nil
}

// AddStaticBlock appends block to the static initializer.
func (b *TypeSpecBuilder) AddStaticBlock(block CodeBlock) *TypeSpecBuilder {
	b.staticBlock.AddBlock(block)
	return b
}

// AddInitializerBlock appends block to the instance initializer.
func (b *TypeSpecBuilder) AddInitializerBlock(block CodeBlock) *TypeSpecBuilder {
	if b.err.failed() {
		return b
	}
	if b.kind != ClassKind && b.kind != EnumKind {
		b.err.fail(invalidArgf("%s can't have initializer blocks", b.kind))
		return b
	}
	b.initializerBlock.AddBlock(block)
	return b
}

// AddType nests a type declaration.
func (b *TypeSpecBuilder) AddType(t TypeSpec) *TypeSpecBuilder {
	if b.err.failed() {
		return b
	}
	if t.name == b.name || slices.ContainsFunc(b.types, func(o TypeSpec) bool { return o.name == t.name }) {
		b.err.fail(invalidArgf("duplicate nested type %s in %s", t.name, b.name))
		return b
	}
	b.types = append(b.types, t)
	return b
}

// AlwaysQualify keeps simple names from being imported anywhere in the file containing
// this type, for names that would otherwise clash with members or nested types.
func (b *TypeSpecBuilder) AlwaysQualify(simpleNames ...string) *TypeSpecBuilder {
	if b.err.failed() {
		return b
	}
	for _, n := range simpleNames {
		if !isSimpleName(n) {
			b.err.fail(invalidArgf("not a valid name: %s", n))
			return b
		}
	}
	b.alwaysQualify = append(b.alwaysQualify, simpleNames...)
	return b
}

func (b *TypeSpecBuilder) Build() (TypeSpec, error) {
	if b.err.failed() {
		return TypeSpec{}, b.err.err
	}
	if b.kind == EnumKind && len(b.enumConstants) == 0 {
		return TypeSpec{}, invalidArgf("at least one enum constant is required for %s", b.name)
	}
	blocks := make([]CodeBlock, 0, 3)
	for _, bb := range []*CodeBlockBuilder{b.javadoc, b.staticBlock, b.initializerBlock} {
		block, err := bb.Build()
		if err != nil {
			return TypeSpec{}, err
		}
		blocks = append(blocks, block)
	}

	t := TypeSpec{
		kind:            b.kind,
		name:            b.name,
		javadoc:         blocks[0],
		annotations:     slices.Clone(b.annotations),
		modifiers:       slices.Clone(b.modifiers),
		typeVariables:   slices.Clone(b.typeVariables),
		superclass:      b.superclass,
		superinterfaces: slices.Clone(b.superinterfaces),
		enumConstants:   slices.Clone(b.enumConstants),
		fields:          slices.Clone(b.fields),
		methods:         slices.Clone(b.methods),
		types:           slices.Clone(b.types),
		alwaysQualify:   slices.Clone(b.alwaysQualify),
		nested:          map[string]bool{},
	}
	if !blocks[1].IsEmpty() {
		t.staticBlock = MustCodeBlock("static {\n$>$L$<}\n", blocks[1])
	}
	if !blocks[2].IsEmpty() {
		t.initializerBlock = MustCodeBlock("{\n$>$L$<}\n", blocks[2])
	}
	for _, nested := range t.types {
		t.nested[nested.name] = true
	}
	return t, nil
}

// ToBuilder returns a builder seeded with t. Static and instance initializers are kept
// as already wrapped blocks.
func (t TypeSpec) ToBuilder() *TypeSpecBuilder {
	b := NewTypeBuilder(t.kind, t.name)
	b.javadoc.AddBlock(t.javadoc)
	b.annotations = slices.Clone(t.annotations)
	b.modifiers = slices.Clone(t.modifiers)
	b.typeVariables = slices.Clone(t.typeVariables)
	b.superclass = t.superclass
	b.superinterfaces = slices.Clone(t.superinterfaces)
	b.enumConstants = slices.Clone(t.enumConstants)
	b.fields = slices.Clone(t.fields)
	b.methods = slices.Clone(t.methods)
	b.types = slices.Clone(t.types)
	b.alwaysQualify = slices.Clone(t.alwaysQualify)
	if !t.staticBlock.IsEmpty() {
		b.staticBlock.AddBlock(unwrapInitializer(t.staticBlock))
	}
	if !t.initializerBlock.IsEmpty() {
		b.initializerBlock.AddBlock(unwrapInitializer(t.initializerBlock))
	}
	return b
}

// unwrapInitializer recovers the body of a block built as "header {\n$>$L$<}\n".
func unwrapInitializer(block CodeBlock) CodeBlock {
	if len(block.args) == 1 {
		if inner, ok := block.args[0].(CodeBlock); ok && strings.HasSuffix(block.parts[0], "{\n") {
			return inner
		}
	}
	return block
}
