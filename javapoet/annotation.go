package javapoet

import (
	"slices"
)

// AnnotationSpec is an annotation use such as @Override or @Column(name = "id").
type AnnotationSpec struct {
	typ     TypeName
	names   []string
	members map[string][]CodeBlock
}

// Type returns the annotation class.
func (a AnnotationSpec) Type() TypeName { return a.typ }

// Members returns the values of member name in declaration order.
func (a AnnotationSpec) Members(name string) []CodeBlock { return slices.Clone(a.members[name]) }

// MemberNames returns the member names in the order they were first added.
func (a AnnotationSpec) MemberNames() []string { return slices.Clone(a.names) }

func (a AnnotationSpec) String() string {
	return renderString(func(w *codeWriter) { a.emit(w, true) })
}

// Equal reports whether both annotations render identically.
func (a AnnotationSpec) Equal(o AnnotationSpec) bool { return a.String() == o.String() }

// ToBuilder returns a builder seeded with a's type and members.
func (a AnnotationSpec) ToBuilder() *AnnotationSpecBuilder {
	b := NewAnnotationBuilder(a.typ)
	for _, name := range a.names {
		for _, v := range a.members[name] {
			b.AddMemberBlock(name, v)
		}
	}
	return b
}

// emit writes the annotation on one line when inline, otherwise with one member per
// line.
func (a AnnotationSpec) emit(w *codeWriter, inline bool) {
	whitespace, separator := "\n", ",\n"
	if inline {
		whitespace, separator = "", ", "
	}

	switch {
	case len(a.names) == 0:
		w.emitf("@$T", a.typ)
	case len(a.names) == 1 && a.names[0] == "value":
		w.emitf("@$T(", a.typ)
		emitAnnotationValues(w, whitespace, separator, a.members["value"])
		w.emit(")")
	default:
		w.emitf("@$T("+whitespace, a.typ)
		w.indentBy(1)
		for i, name := range a.names {
			w.emitf("$L = ", name)
			emitAnnotationValues(w, whitespace, separator, a.members[name])
			if i < len(a.names)-1 {
				w.emit(separator)
			}
		}
		w.unindentBy(1)
		w.emit(whitespace + ")")
	}
}

func emitAnnotationValues(w *codeWriter, whitespace, separator string, values []CodeBlock) {
	if len(values) == 1 {
		w.indentBy(1)
		w.emitBlock(values[0], false)
		w.unindentBy(1)
		return
	}
	w.emit("{" + whitespace)
	w.indentBy(1)
	for i, v := range values {
		if i > 0 {
			w.emit(separator)
		}
		w.emitBlock(v, false)
	}
	w.unindentBy(1)
	w.emit(whitespace + "}")
}

// AnnotationSpecBuilder accumulates the members of an annotation.
type AnnotationSpecBuilder struct {
	typ     TypeName
	names   []string
	members map[string][]CodeBlock
	err     stickyErr
}

// NewAnnotationBuilder starts an annotation of class typ.
func NewAnnotationBuilder(typ TypeName) *AnnotationSpecBuilder {
	b := &AnnotationSpecBuilder{typ: typ, members: map[string][]CodeBlock{}}
	if typ.kind != KindClass {
		b.err.fail(invalidArgf("annotation type must be a class: %s", typ))
	}
	return b
}

// Annotation returns an annotation without members.
func Annotation(typ TypeName) (AnnotationSpec, error) {
	return NewAnnotationBuilder(typ).Build()
}

// MustAnnotation is like Annotation but panics on a non-class type.
func MustAnnotation(typ TypeName) AnnotationSpec {
	a, err := Annotation(typ)
	if err != nil {
		panic(err)
	}
	return a
}

// AddMember appends a value to member name. A member given several values is written
// as an array initializer.
func (b *AnnotationSpecBuilder) AddMember(name, format string, args ...any) *AnnotationSpecBuilder {
	if b.err.failed() {
		return b
	}
	block, err := CodeBlockOf(format, args...)
	if b.err.fail(err) {
		return b
	}
	return b.AddMemberBlock(name, block)
}

// AddMemberBlock is AddMember with a prebuilt value.
func (b *AnnotationSpecBuilder) AddMemberBlock(name string, value CodeBlock) *AnnotationSpecBuilder {
	if b.err.failed() {
		return b
	}
	if !IsName(name) {
		b.err.fail(invalidArgf("not a valid name: %s", name))
		return b
	}
	if _, ok := b.members[name]; !ok {
		b.names = append(b.names, name)
	}
	b.members[name] = append(b.members[name], value)
	return b
}

func (b *AnnotationSpecBuilder) Build() (AnnotationSpec, error) {
	if b.err.failed() {
		return AnnotationSpec{}, b.err.err
	}
	members := make(map[string][]CodeBlock, len(b.members))
	for name, values := range b.members {
		members[name] = slices.Clone(values)
	}
	return AnnotationSpec{typ: b.typ, names: slices.Clone(b.names), members: members}, nil
}
