package javapoet

// ThrowSpec is an exception in a throws clause with the documentation for its @throws
// tag.
type ThrowSpec struct {
	typ     TypeName
	javadoc CodeBlock
}

func (t ThrowSpec) Type() TypeName     { return t.typ }
func (t ThrowSpec) Javadoc() CodeBlock { return t.javadoc }

func (t ThrowSpec) String() string {
	s := t.typ.String()
	if !t.javadoc.IsEmpty() {
		s += " " + t.javadoc.String()
	}
	return s
}

// Equal reports whether both throw specs have the same type and documentation.
func (t ThrowSpec) Equal(o ThrowSpec) bool { return t.String() == o.String() }

type ThrowSpecBuilder struct {
	typ     TypeName
	javadoc *CodeBlockBuilder
	err     stickyErr
}

func NewThrowBuilder(typ TypeName) *ThrowSpecBuilder {
	b := &ThrowSpecBuilder{typ: typ, javadoc: NewCodeBlockBuilder()}
	switch typ.kind {
	case KindClass, KindParameterized, KindTypeVariable:
	default:
		b.err.fail(invalidArgf("invalid exception type: %s", typ))
	}
	return b
}

func (b *ThrowSpecBuilder) AddJavadoc(format string, args ...any) *ThrowSpecBuilder {
	b.javadoc.Add(format, args...)
	return b
}

func (b *ThrowSpecBuilder) AddJavadocBlock(block CodeBlock) *ThrowSpecBuilder {
	b.javadoc.AddBlock(block)
	return b
}

func (b *ThrowSpecBuilder) Build() (ThrowSpec, error) {
	if b.err.failed() {
		return ThrowSpec{}, b.err.err
	}
	javadoc, err := b.javadoc.Build()
	if err != nil {
		return ThrowSpec{}, err
	}
	return ThrowSpec{typ: b.typ, javadoc: javadoc}, nil
}
