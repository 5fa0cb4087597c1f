package javapoet

import (
	"slices"
	"strings"
)

// ParameterSpec is a method or constructor parameter.
type ParameterSpec struct {
	name        string
	typ         TypeName
	javadoc     CodeBlock
	annotations []AnnotationSpec
	modifiers   []Modifier
}

func (p ParameterSpec) Name() string                  { return p.name }
func (p ParameterSpec) Type() TypeName                { return p.typ }
func (p ParameterSpec) Javadoc() CodeBlock            { return p.javadoc }
func (p ParameterSpec) Annotations() []AnnotationSpec { return slices.Clone(p.annotations) }
func (p ParameterSpec) Modifiers() []Modifier         { return slices.Clone(p.modifiers) }

func (p ParameterSpec) String() string {
	return renderString(func(w *codeWriter) { p.emit(w, false) })
}

// Equal reports whether both parameters render identically.
func (p ParameterSpec) Equal(o ParameterSpec) bool { return p.String() == o.String() }

// ToBuilder returns a builder seeded with p.
func (p ParameterSpec) ToBuilder() *ParameterSpecBuilder {
	return &ParameterSpecBuilder{
		name:        p.name,
		typ:         p.typ,
		javadoc:     p.javadoc.ToBuilder(),
		annotations: slices.Clone(p.annotations),
		modifiers:   slices.Clone(p.modifiers),
	}
}

func (p ParameterSpec) emit(w *codeWriter, varargs bool) {
	w.emitAnnotations(p.annotations, true)
	w.emitModifiers(p.modifiers, nil)
	if varargs && p.typ.kind == KindArray {
		p.typ.emitArray(w, true)
	} else {
		w.emitf("$T", p.typ)
	}
	w.emitf(" $L", p.name)
}

// ParameterSpecBuilder accumulates a ParameterSpec.
type ParameterSpecBuilder struct {
	name        string
	typ         TypeName
	javadoc     *CodeBlockBuilder
	annotations []AnnotationSpec
	modifiers   []Modifier
	err         stickyErr
}

// NewParameterBuilder starts a parameter. Receiver parameters are named "this" or
// "Outer.this".
func NewParameterBuilder(typ TypeName, name string, modifiers ...Modifier) *ParameterSpecBuilder {
	b := &ParameterSpecBuilder{name: name, typ: typ, javadoc: NewCodeBlockBuilder()}
	switch {
	case !typ.IsValid():
		b.err.fail(invalidArgf("invalid type for parameter %s", name))
	case !IsName(name) && name != "this" && !(strings.HasSuffix(name, ".this") && IsName(strings.TrimSuffix(name, ".this"))):
		b.err.fail(invalidArgf("not a valid name: %s", name))
	}
	return b.AddModifiers(modifiers...)
}

// Parameter builds a parameter without documentation or annotations.
func Parameter(typ TypeName, name string, modifiers ...Modifier) (ParameterSpec, error) {
	return NewParameterBuilder(typ, name, modifiers...).Build()
}

func (b *ParameterSpecBuilder) AddJavadoc(format string, args ...any) *ParameterSpecBuilder {
	b.javadoc.Add(format, args...)
	return b
}

func (b *ParameterSpecBuilder) AddJavadocBlock(block CodeBlock) *ParameterSpecBuilder {
	b.javadoc.AddBlock(block)
	return b
}

func (b *ParameterSpecBuilder) AddAnnotation(a AnnotationSpec) *ParameterSpecBuilder {
	b.annotations = append(b.annotations, a)
	return b
}

// AddModifiers adds modifiers; only final is allowed on a parameter.
func (b *ParameterSpecBuilder) AddModifiers(modifiers ...Modifier) *ParameterSpecBuilder {
	if b.err.failed() {
		return b
	}
	for _, m := range modifiers {
		if m != Final {
			b.err.fail(invalidArgf("unexpected parameter modifier: %s", m))
			return b
		}
	}
	b.modifiers = append(b.modifiers, modifiers...)
	return b
}

func (b *ParameterSpecBuilder) Build() (ParameterSpec, error) {
	if b.err.failed() {
		return ParameterSpec{}, b.err.err
	}
	javadoc, err := b.javadoc.Build()
	if err != nil {
		return ParameterSpec{}, err
	}
	return ParameterSpec{
		name:        b.name,
		typ:         b.typ,
		javadoc:     javadoc,
		annotations: slices.Clone(b.annotations),
		modifiers:   slices.Clone(b.modifiers),
	}, nil
}
