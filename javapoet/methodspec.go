package javapoet

import "slices"

const constructorName = "<init>"

// MethodSpec is a method or constructor declaration.
type MethodSpec struct {
	name          string
	javadoc       CodeBlock
	annotations   []AnnotationSpec
	modifiers     []Modifier
	typeVariables []TypeName
	returns       *ReturnSpec
	parameters    []ParameterSpec
	varargs       bool
	exceptions    []ThrowSpec
	code          CodeBlock
	defaultValue  *CodeBlock
}

func (m MethodSpec) Name() string                  { return m.name }
func (m MethodSpec) Javadoc() CodeBlock            { return m.javadoc }
func (m MethodSpec) Code() CodeBlock               { return m.code }
func (m MethodSpec) IsVarargs() bool               { return m.varargs }
func (m MethodSpec) IsConstructor() bool           { return m.name == constructorName }
func (m MethodSpec) Annotations() []AnnotationSpec { return slices.Clone(m.annotations) }
func (m MethodSpec) Modifiers() []Modifier         { return slices.Clone(m.modifiers) }
func (m MethodSpec) TypeVariables() []TypeName     { return slices.Clone(m.typeVariables) }
func (m MethodSpec) Parameters() []ParameterSpec   { return slices.Clone(m.parameters) }
func (m MethodSpec) Exceptions() []ThrowSpec       { return slices.Clone(m.exceptions) }

func (m MethodSpec) HasModifier(mod Modifier) bool { return hasModifier(m.modifiers, mod) }

// Returns reports the return spec; ok is false for constructors.
func (m MethodSpec) Returns() (ReturnSpec, bool) {
	if m.returns == nil {
		return ReturnSpec{}, false
	}
	return *m.returns, true
}

// DefaultValue reports the annotation member default, if any.
func (m MethodSpec) DefaultValue() (CodeBlock, bool) {
	if m.defaultValue == nil {
		return CodeBlock{}, false
	}
	return *m.defaultValue, true
}

// String renders m on its own. Constructors are named "Constructor".
func (m MethodSpec) String() string {
	return renderString(func(w *codeWriter) { m.emit(w, "Constructor", nil) })
}

// Equal reports whether both methods render identically.
func (m MethodSpec) Equal(o MethodSpec) bool { return m.String() == o.String() }

func (m MethodSpec) emit(w *codeWriter, enclosingName string, implicit []Modifier) {
	level := w.indentLevel
	w.emitMethodJavadoc(m.javadoc, m.parameters, m.returns, m.exceptions)
	w.emitAnnotations(m.annotations, false)
	w.emitModifiers(m.modifiers, implicit)

	if len(m.typeVariables) > 0 {
		w.emitTypeVariables(m.typeVariables)
		w.emit(" ")
	}

	if m.IsConstructor() {
		w.emitf("$L($Z", enclosingName)
	} else {
		w.emitf("$T $L($Z", m.returns.typ, m.name)
	}
	for i, p := range m.parameters {
		if i > 0 {
			w.emitf(",$W")
		}
		p.emit(w, m.varargs && i == len(m.parameters)-1)
	}
	w.emit(")")

	if m.defaultValue != nil && !m.defaultValue.IsEmpty() {
		w.emit(" default ")
		w.emitBlock(*m.defaultValue, false)
	}

	if len(m.exceptions) > 0 {
		w.emitf("$Wthrows")
		for i, t := range m.exceptions {
			if i > 0 {
				w.emit(",")
			}
			w.emitf("$W$T", t.typ)
		}
	}

	switch {
	case m.HasModifier(Abstract):
		w.emit(";\n")
	case m.HasModifier(Native):
		w.emitBlock(m.code, false)
		w.emit(";\n")
	default:
		w.emit(" {\n")
		w.indentBy(1)
		w.emitBlock(m.code, true)
		w.unindentBy(1)
		w.emit("}\n")
	}

	w.popTypeVariables(m.typeVariables)
	w.checkBalanced("method "+m.name, level)
}

// ToBuilder returns a builder seeded with m.
func (m MethodSpec) ToBuilder() *MethodSpecBuilder {
	b := &MethodSpecBuilder{
		name:          m.name,
		javadoc:       m.javadoc.ToBuilder(),
		annotations:   slices.Clone(m.annotations),
		modifiers:     slices.Clone(m.modifiers),
		typeVariables: slices.Clone(m.typeVariables),
		returns:       m.returns,
		parameters:    slices.Clone(m.parameters),
		varargs:       m.varargs,
		exceptions:    slices.Clone(m.exceptions),
		code:          m.code.ToBuilder(),
		defaultValue:  m.defaultValue,
	}
	return b
}

// MethodSpecBuilder accumulates a MethodSpec. Body helpers (AddStatement and the
// control-flow methods) forward to an internal CodeBlockBuilder.
type MethodSpecBuilder struct {
	name          string
	javadoc       *CodeBlockBuilder
	annotations   []AnnotationSpec
	modifiers     []Modifier
	typeVariables []TypeName
	returns       *ReturnSpec
	parameters    []ParameterSpec
	varargs       bool
	exceptions    []ThrowSpec
	code          *CodeBlockBuilder
	defaultValue  *CodeBlock
	err           stickyErr
}

// NewMethodBuilder starts a method returning void.
func NewMethodBuilder(name string) *MethodSpecBuilder {
	b := &MethodSpecBuilder{javadoc: NewCodeBlockBuilder(), code: NewCodeBlockBuilder()}
	return b.SetName(name)
}

// NewConstructorBuilder starts a constructor.
func NewConstructorBuilder() *MethodSpecBuilder {
	return NewMethodBuilder(constructorName)
}

// SetName renames the method. Naming a method resets its return type to void.
func (b *MethodSpecBuilder) SetName(name string) *MethodSpecBuilder {
	if b.err.failed() {
		return b
	}
	if name != constructorName && !IsName(name) {
		b.err.fail(invalidArgf("not a valid name: %s", name))
		return b
	}
	b.name = name
	b.returns = nil
	if name != constructorName {
		b.returns = &ReturnSpec{typ: Void}
	}
	return b
}

func (b *MethodSpecBuilder) AddJavadoc(format string, args ...any) *MethodSpecBuilder {
	b.javadoc.Add(format, args...)
	return b
}

func (b *MethodSpecBuilder) AddJavadocBlock(block CodeBlock) *MethodSpecBuilder {
	b.javadoc.AddBlock(block)
	return b
}

func (b *MethodSpecBuilder) AddAnnotation(a AnnotationSpec) *MethodSpecBuilder {
	b.annotations = append(b.annotations, a)
	return b
}

func (b *MethodSpecBuilder) AddAnnotations(as ...AnnotationSpec) *MethodSpecBuilder {
	b.annotations = append(b.annotations, as...)
	return b
}

func (b *MethodSpecBuilder) AddModifiers(modifiers ...Modifier) *MethodSpecBuilder {
	if b.err.failed() || b.err.fail(validModifiers(modifiers)) {
		return b
	}
	b.modifiers = append(b.modifiers, modifiers...)
	return b
}

func (b *MethodSpecBuilder) AddTypeVariables(vars ...TypeName) *MethodSpecBuilder {
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

// Returns sets the return type.
func (b *MethodSpecBuilder) Returns(typ TypeName) *MethodSpecBuilder {
	if b.err.failed() {
		return b
	}
	r, err := NewReturnBuilder(typ).Build()
	if b.err.fail(err) {
		return b
	}
	return b.ReturnsSpec(r)
}

// ReturnsSpec sets the return type together with its documentation.
func (b *MethodSpecBuilder) ReturnsSpec(r ReturnSpec) *MethodSpecBuilder {
	if b.err.failed() {
		return b
	}
	if b.name == constructorName {
		b.err.fail(invalidArgf("constructor cannot have return type."))
		return b
	}
	b.returns = &r
	return b
}

func (b *MethodSpecBuilder) AddParameter(p ParameterSpec) *MethodSpecBuilder {
	b.parameters = append(b.parameters, p)
	return b
}

func (b *MethodSpecBuilder) AddParameters(ps ...ParameterSpec) *MethodSpecBuilder {
	b.parameters = append(b.parameters, ps...)
	return b
}

// AddParameterOf adds an undocumented parameter.
func (b *MethodSpecBuilder) AddParameterOf(typ TypeName, name string, modifiers ...Modifier) *MethodSpecBuilder {
	if b.err.failed() {
		return b
	}
	p, err := Parameter(typ, name, modifiers...)
	if b.err.fail(err) {
		return b
	}
	return b.AddParameter(p)
}

// Varargs marks the last parameter, which must be an array, as variable arity.
func (b *MethodSpecBuilder) Varargs(varargs bool) *MethodSpecBuilder {
	b.varargs = varargs
	return b
}

// AddException adds typ to the throws clause. Duplicates are dropped.
func (b *MethodSpecBuilder) AddException(typ TypeName) *MethodSpecBuilder {
	if b.err.failed() {
		return b
	}
	t, err := NewThrowBuilder(typ).Build()
	if b.err.fail(err) {
		return b
	}
	return b.AddThrowSpec(t)
}

func (b *MethodSpecBuilder) AddThrowSpec(t ThrowSpec) *MethodSpecBuilder {
	if slices.ContainsFunc(b.exceptions, t.Equal) {
		return b
	}
	b.exceptions = append(b.exceptions, t)
	return b
}

func (b *MethodSpecBuilder) AddCode(format string, args ...any) *MethodSpecBuilder {
	b.code.Add(format, args...)
	return b
}

func (b *MethodSpecBuilder) AddNamedCode(format string, args map[string]any) *MethodSpecBuilder {
	b.code.AddNamed(format, args)
	return b
}

func (b *MethodSpecBuilder) AddCodeBlock(block CodeBlock) *MethodSpecBuilder {
	b.code.AddBlock(block)
	return b
}

func (b *MethodSpecBuilder) AddComment(format string, args ...any) *MethodSpecBuilder {
	b.code.AddComment(format, args...)
	return b
}

func (b *MethodSpecBuilder) AddStatement(format string, args ...any) *MethodSpecBuilder {
	b.code.AddStatement(format, args...)
	return b
}

func (b *MethodSpecBuilder) AddNamedStatement(format string, args map[string]any) *MethodSpecBuilder {
	b.code.AddNamedStatement(format, args)
	return b
}

func (b *MethodSpecBuilder) BeginControlFlow(controlFlow string, args ...any) *MethodSpecBuilder {
	b.code.BeginControlFlow(controlFlow, args...)
	return b
}

func (b *MethodSpecBuilder) BeginNamedControlFlow(controlFlow string, args map[string]any) *MethodSpecBuilder {
	b.code.BeginNamedControlFlow(controlFlow, args)
	return b
}

func (b *MethodSpecBuilder) NextControlFlow(controlFlow string, args ...any) *MethodSpecBuilder {
	b.code.NextControlFlow(controlFlow, args...)
	return b
}

func (b *MethodSpecBuilder) NextNamedControlFlow(controlFlow string, args map[string]any) *MethodSpecBuilder {
	b.code.NextNamedControlFlow(controlFlow, args)
	return b
}

func (b *MethodSpecBuilder) EndControlFlow() *MethodSpecBuilder {
	b.code.EndControlFlow()
	return b
}

func (b *MethodSpecBuilder) EndControlFlowWith(controlFlow string, args ...any) *MethodSpecBuilder {
	b.code.EndControlFlowWith(controlFlow, args...)
	return b
}

func (b *MethodSpecBuilder) EndNamedControlFlowWith(controlFlow string, args map[string]any) *MethodSpecBuilder {
	b.code.EndNamedControlFlowWith(controlFlow, args)
	return b
}

// DefaultValue sets the default of an annotation member. It may be set once.
func (b *MethodSpecBuilder) DefaultValue(format string, args ...any) *MethodSpecBuilder {
	if b.err.failed() {
		return b
	}
	block, err := CodeBlockOf(format, args...)
	if b.err.fail(err) {
		return b
	}
	return b.DefaultValueBlock(block)
}

func (b *MethodSpecBuilder) DefaultValueBlock(block CodeBlock) *MethodSpecBuilder {
	if b.err.failed() {
		return b
	}
	if b.defaultValue != nil {
		b.err.fail(invalidArgf("defaultValue was already set"))
		return b
	}
	b.defaultValue = &block
	return b
}

func (b *MethodSpecBuilder) Build() (MethodSpec, error) {
	if b.err.failed() {
		return MethodSpec{}, b.err.err
	}
	javadoc, err := b.javadoc.Build()
	if err != nil {
		return MethodSpec{}, err
	}
	code, err := b.code.Build()
	if err != nil {
		return MethodSpec{}, err
	}
	if hasModifier(b.modifiers, Abstract) && !code.IsEmpty() {
		return MethodSpec{}, invalidArgf("abstract method %s cannot have code", b.name)
	}
	if b.varargs && (len(b.parameters) == 0 || b.parameters[len(b.parameters)-1].typ.kind != KindArray) {
		return MethodSpec{}, invalidArgf("last parameter of varargs method %s must be an array", b.name)
	}
	return MethodSpec{
		name:          b.name,
		javadoc:       javadoc,
		annotations:   slices.Clone(b.annotations),
		modifiers:     slices.Clone(b.modifiers),
		typeVariables: slices.Clone(b.typeVariables),
		returns:       b.returns,
		parameters:    slices.Clone(b.parameters),
		varargs:       b.varargs,
		exceptions:    slices.Clone(b.exceptions),
		code:          code,
		defaultValue:  b.defaultValue,
	}, nil
}
