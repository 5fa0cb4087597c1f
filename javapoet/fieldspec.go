package javapoet

import "slices"

// FieldSpec is a field declaration.
type FieldSpec struct {
	typ         TypeName
	name        string
	javadoc     CodeBlock
	annotations []AnnotationSpec
	modifiers   []Modifier
	initializer CodeBlock
}

func (f FieldSpec) Name() string                  { return f.name }
func (f FieldSpec) Type() TypeName                { return f.typ }
func (f FieldSpec) Javadoc() CodeBlock            { return f.javadoc }
func (f FieldSpec) Initializer() CodeBlock        { return f.initializer }
func (f FieldSpec) Annotations() []AnnotationSpec { return slices.Clone(f.annotations) }
func (f FieldSpec) Modifiers() []Modifier         { return slices.Clone(f.modifiers) }

func (f FieldSpec) HasModifier(m Modifier) bool { return hasModifier(f.modifiers, m) }

func (f FieldSpec) String() string {
	return renderString(func(w *codeWriter) { f.emit(w, nil) })
}

// Equal reports whether both fields render identically.
func (f FieldSpec) Equal(o FieldSpec) bool { return f.String() == o.String() }

// ToBuilder returns a builder seeded with f.
func (f FieldSpec) ToBuilder() *FieldSpecBuilder {
	b := NewFieldBuilder(f.typ, f.name, f.modifiers...)
	b.javadoc.AddBlock(f.javadoc)
	b.annotations = slices.Clone(f.annotations)
	if len(f.initializer.parts) > 0 {
		b.initializer = &f.initializer
	}
	return b
}

func (f FieldSpec) emit(w *codeWriter, implicit []Modifier) {
	w.emitJavadoc(f.javadoc)
	w.emitAnnotations(f.annotations, false)
	w.emitModifiers(f.modifiers, implicit)
	w.emitf("$T $L", f.typ, f.name)
	if !f.initializer.IsEmpty() {
		w.emit(" = ")
		w.emitBlock(f.initializer, false)
	}
	w.emit(";\n")
}

// FieldSpecBuilder accumulates a FieldSpec.
type FieldSpecBuilder struct {
	typ         TypeName
	name        string
	javadoc     *CodeBlockBuilder
	annotations []AnnotationSpec
	modifiers   []Modifier
	initializer *CodeBlock
	err         stickyErr
}

func NewFieldBuilder(typ TypeName, name string, modifiers ...Modifier) *FieldSpecBuilder {
	b := &FieldSpecBuilder{typ: typ, name: name, javadoc: NewCodeBlockBuilder()}
	switch {
	case !typ.IsValid() || typ.kind == KindVoid:
		b.err.fail(invalidArgf("invalid type for field %s: %s", name, typ))
	case !IsName(name):
		b.err.fail(invalidArgf("not a valid name: %s", name))
	}
	return b.AddModifiers(modifiers...)
}

// Field builds a field without documentation, annotations or initializer.
func Field(typ TypeName, name string, modifiers ...Modifier) (FieldSpec, error) {
	return NewFieldBuilder(typ, name, modifiers...).Build()
}

func (b *FieldSpecBuilder) AddJavadoc(format string, args ...any) *FieldSpecBuilder {
	b.javadoc.Add(format, args...)
	return b
}

func (b *FieldSpecBuilder) AddJavadocBlock(block CodeBlock) *FieldSpecBuilder {
	b.javadoc.AddBlock(block)
	return b
}

func (b *FieldSpecBuilder) AddAnnotation(a AnnotationSpec) *FieldSpecBuilder {
	b.annotations = append(b.annotations, a)
	return b
}

func (b *FieldSpecBuilder) AddModifiers(modifiers ...Modifier) *FieldSpecBuilder {
	if b.err.failed() || b.err.fail(validModifiers(modifiers)) {
		return b
	}
	b.modifiers = append(b.modifiers, modifiers...)
	return b
}

// Initializer sets the expression after "=". It may be set once.
func (b *FieldSpecBuilder) Initializer(format string, args ...any) *FieldSpecBuilder {
	if b.err.failed() {
		return b
	}
	block, err := CodeBlockOf(format, args...)
	if b.err.fail(err) {
		return b
	}
	return b.InitializerBlock(block)
}

func (b *FieldSpecBuilder) InitializerBlock(block CodeBlock) *FieldSpecBuilder {
	if b.err.failed() {
		return b
	}
	if b.initializer != nil {
		b.err.fail(invalidArgf("initializer was already set"))
		return b
	}
	b.initializer = &block
	return b
}

func (b *FieldSpecBuilder) Build() (FieldSpec, error) {
	if b.err.failed() {
		return FieldSpec{}, b.err.err
	}
	javadoc, err := b.javadoc.Build()
	if err != nil {
		return FieldSpec{}, err
	}
	f := FieldSpec{
		typ:         b.typ,
		name:        b.name,
		javadoc:     javadoc,
		annotations: slices.Clone(b.annotations),
		modifiers:   slices.Clone(b.modifiers),
	}
	if b.initializer != nil {
		f.initializer = *b.initializer
	}
	return f, nil
}
