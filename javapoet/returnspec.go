package javapoet

// ReturnSpec is a method's return type with the documentation for its @return tag.
type ReturnSpec struct {
	typ     TypeName
	javadoc CodeBlock
}

func (r ReturnSpec) Type() TypeName     { return r.typ }
func (r ReturnSpec) Javadoc() CodeBlock { return r.javadoc }

func (r ReturnSpec) String() string {
	s := r.typ.String()
	if !r.javadoc.IsEmpty() {
		s += " " + r.javadoc.String()
	}
	return s
}

// Equal reports whether both return specs have the same type and documentation.
func (r ReturnSpec) Equal(o ReturnSpec) bool { return r.String() == o.String() }

type ReturnSpecBuilder struct {
	typ     TypeName
	javadoc *CodeBlockBuilder
	err     stickyErr
}

func NewReturnBuilder(typ TypeName) *ReturnSpecBuilder {
	b := &ReturnSpecBuilder{typ: typ, javadoc: NewCodeBlockBuilder()}
	if !typ.IsValid() {
		b.err.fail(invalidArgf("invalid return type"))
	}
	return b
}

func (b *ReturnSpecBuilder) AddJavadoc(format string, args ...any) *ReturnSpecBuilder {
	b.javadoc.Add(format, args...)
	return b
}

func (b *ReturnSpecBuilder) AddJavadocBlock(block CodeBlock) *ReturnSpecBuilder {
	b.javadoc.AddBlock(block)
	return b
}

func (b *ReturnSpecBuilder) Build() (ReturnSpec, error) {
	if b.err.failed() {
		return ReturnSpec{}, b.err.err
	}
	javadoc, err := b.javadoc.Build()
	if err != nil {
		return ReturnSpec{}, err
	}
	return ReturnSpec{typ: b.typ, javadoc: javadoc}, nil
}
