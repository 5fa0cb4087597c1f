package declfile

import (
	"regexp"

	"github.com/cockroachdb/errors"

	"github.com/calumari/javagen/javapoet"
)

// Configure adjusts a file builder before the document's own file settings are
// applied, e.g. to add render options or a header comment. The document's
// indent wins over one set here.
type Configure func(*javapoet.JavaFileBuilder)

// BuildFile loads the document at path and builds it. Errors name the path.
func BuildFile(path, defaultPkg string, configure Configure) (javapoet.JavaFile, error) {
	doc, err := Load(path)
	if err != nil {
		return javapoet.JavaFile{}, err
	}
	file, err := Build(doc, defaultPkg, configure)
	if err != nil {
		return file, errors.Wrapf(err, "%s", path)
	}
	return file, nil
}

// Build turns doc into a JavaFile. defaultPkg is used when the document does
// not name a package.
func Build(doc *Document, defaultPkg string, configure Configure) (javapoet.JavaFile, error) {
	pkg := doc.Package
	if pkg == "" {
		pkg = defaultPkg
	}
	b := &builder{scope: newTypeScope(pkg), types: map[string]javapoet.TypeName{}}

	top, err := javapoet.NewClassName(pkg, doc.Type.Name)
	if err != nil {
		return javapoet.JavaFile{}, errors.Wrapf(err, "type %s", doc.Type.Name)
	}
	if err := b.declare(top, doc.Type); err != nil {
		return javapoet.JavaFile{}, err
	}
	for alias, src := range doc.Types {
		t, err := b.scope.parse(src)
		if err != nil {
			return javapoet.JavaFile{}, errors.Wrapf(err, "types.%s", alias)
		}
		b.types[alias] = t
	}

	spec, err := b.typeSpec(doc.Type)
	if err != nil {
		return javapoet.JavaFile{}, err
	}

	fb := javapoet.NewJavaFileBuilder(pkg, spec)
	if configure != nil {
		configure(fb)
	}
	if doc.FileComment != "" {
		// Pass the comment as a literal so '$' is not parsed.
		fb.AddFileComment("$L", doc.FileComment)
	}
	for _, si := range doc.StaticImports {
		class, err := b.scope.parse(si.Type)
		if err != nil {
			return javapoet.JavaFile{}, errors.Wrap(err, "static_imports")
		}
		fb.AddStaticImport(class, si.Members...)
	}
	if doc.Indent != "" {
		fb.Indent(doc.Indent)
	}
	file, err := fb.Build()
	if err != nil {
		return file, errors.Wrapf(err, "file %s", doc.Type.Name)
	}
	return file, nil
}

type builder struct {
	scope *typeScope
	// types holds the document's type aliases, referenced from code as $alias:T.
	types map[string]javapoet.TypeName
}

// declare registers the declared type and its nested types by simple name so
// that references to them resolve to the right class.
func (b *builder) declare(class javapoet.TypeName, t TypeDecl) error {
	if _, ok := b.scope.declared[t.Name]; !ok {
		b.scope.declared[t.Name] = class
	}
	for _, nested := range t.Types {
		inner, err := class.NestedClass(nested.Name)
		if err != nil {
			return errors.Wrapf(err, "type %s", nested.Name)
		}
		if err := b.declare(inner, nested); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) typeSpec(t TypeDecl) (javapoet.TypeSpec, error) {
	spec, err := b.buildType(t)
	if err != nil {
		return spec, errors.Wrapf(err, "type %s", t.Name)
	}
	return spec, nil
}

func (b *builder) buildType(t TypeDecl) (javapoet.TypeSpec, error) {
	kind := javapoet.ClassKind
	if t.Kind != "" {
		var err error
		if kind, err = javapoet.ParseTypeKind(t.Kind); err != nil {
			return javapoet.TypeSpec{}, err
		}
	}
	tb := javapoet.NewTypeBuilder(kind, t.Name)

	vars, err := b.typeVariables(t.TypeVariables)
	defer b.scope.popVars()
	if err != nil {
		return javapoet.TypeSpec{}, err
	}
	tb.AddTypeVariables(vars...)

	mods, err := modifiers(t.Modifiers)
	if err != nil {
		return javapoet.TypeSpec{}, err
	}
	tb.AddModifiers(mods...)

	if t.Javadoc != "" {
		doc, err := b.code(t.Javadoc)
		if err != nil {
			return javapoet.TypeSpec{}, errors.Wrap(err, "javadoc")
		}
		tb.AddJavadocBlock(doc)
	}
	annotations, err := b.annotations(t.Annotations)
	if err != nil {
		return javapoet.TypeSpec{}, err
	}
	for _, a := range annotations {
		tb.AddAnnotation(a)
	}

	if t.Superclass != "" {
		super, err := b.scope.parse(t.Superclass)
		if err != nil {
			return javapoet.TypeSpec{}, errors.Wrap(err, "superclass")
		}
		tb.Superclass(super)
	}
	for _, src := range t.Interfaces {
		iface, err := b.scope.parse(src)
		if err != nil {
			return javapoet.TypeSpec{}, errors.Wrap(err, "interfaces")
		}
		tb.AddSuperinterface(iface)
	}

	for _, c := range t.EnumConstants {
		constant, err := b.enumConstant(c)
		if err != nil {
			return javapoet.TypeSpec{}, errors.Wrapf(err, "enum constant %s", c.Name)
		}
		tb.AddEnumConstantSpec(constant)
	}
	for _, f := range t.Fields {
		field, err := b.field(f)
		if err != nil {
			return javapoet.TypeSpec{}, errors.Wrapf(err, "field %s", f.Name)
		}
		tb.AddField(field)
	}
	if t.StaticBlock != "" {
		block, err := b.code(t.StaticBlock)
		if err != nil {
			return javapoet.TypeSpec{}, errors.Wrap(err, "static_block")
		}
		tb.AddStaticBlock(block)
	}
	if t.InitializerBlock != "" {
		block, err := b.code(t.InitializerBlock)
		if err != nil {
			return javapoet.TypeSpec{}, errors.Wrap(err, "initializer_block")
		}
		tb.AddInitializerBlock(block)
	}
	for _, m := range t.Methods {
		method, err := b.method(m)
		if err != nil {
			return javapoet.TypeSpec{}, errors.Wrapf(err, "method %s", methodName(m))
		}
		tb.AddMethod(method)
	}
	for _, nested := range t.Types {
		spec, err := b.typeSpec(nested)
		if err != nil {
			return spec, err
		}
		tb.AddType(spec)
	}
	return tb.Build()
}

func (b *builder) enumConstant(c EnumConstantDecl) (javapoet.EnumConstant, error) {
	constant := javapoet.EnumConstant{Name: c.Name}
	var err error
	if c.Args != "" {
		if constant.Args, err = b.code(c.Args); err != nil {
			return constant, errors.Wrap(err, "args")
		}
	}
	if c.Javadoc != "" {
		if constant.Javadoc, err = b.code(c.Javadoc); err != nil {
			return constant, errors.Wrap(err, "javadoc")
		}
	}
	for _, m := range c.Methods {
		method, err := b.method(m)
		if err != nil {
			return constant, errors.Wrapf(err, "method %s", methodName(m))
		}
		constant.Methods = append(constant.Methods, method)
	}
	return constant, nil
}

func (b *builder) field(f FieldDecl) (javapoet.FieldSpec, error) {
	typ, err := b.scope.parse(f.Type)
	if err != nil {
		return javapoet.FieldSpec{}, err
	}
	mods, err := modifiers(f.Modifiers)
	if err != nil {
		return javapoet.FieldSpec{}, err
	}
	fb := javapoet.NewFieldBuilder(typ, f.Name, mods...)
	if f.Javadoc != "" {
		doc, err := b.code(f.Javadoc)
		if err != nil {
			return javapoet.FieldSpec{}, errors.Wrap(err, "javadoc")
		}
		fb.AddJavadocBlock(doc)
	}
	annotations, err := b.annotations(f.Annotations)
	if err != nil {
		return javapoet.FieldSpec{}, err
	}
	for _, a := range annotations {
		fb.AddAnnotation(a)
	}
	if f.Initializer != "" {
		value, err := b.code(f.Initializer)
		if err != nil {
			return javapoet.FieldSpec{}, errors.Wrap(err, "initializer")
		}
		fb.InitializerBlock(value)
	}
	return fb.Build()
}

func methodName(m MethodDecl) string {
	if m.Constructor {
		return "<init>"
	}
	return m.Name
}

func (b *builder) method(m MethodDecl) (javapoet.MethodSpec, error) {
	mb := javapoet.NewConstructorBuilder()
	if !m.Constructor {
		mb = javapoet.NewMethodBuilder(m.Name)
	}

	vars, err := b.typeVariables(m.TypeVariables)
	defer b.scope.popVars()
	if err != nil {
		return javapoet.MethodSpec{}, err
	}
	mb.AddTypeVariables(vars...)

	mods, err := modifiers(m.Modifiers)
	if err != nil {
		return javapoet.MethodSpec{}, err
	}
	mb.AddModifiers(mods...)

	if m.Javadoc != "" {
		doc, err := b.code(m.Javadoc)
		if err != nil {
			return javapoet.MethodSpec{}, errors.Wrap(err, "javadoc")
		}
		mb.AddJavadocBlock(doc)
	}
	annotations, err := b.annotations(m.Annotations)
	if err != nil {
		return javapoet.MethodSpec{}, err
	}
	mb.AddAnnotations(annotations...)

	switch {
	case m.Returns != "":
		typ, err := b.scope.parse(m.Returns)
		if err != nil {
			return javapoet.MethodSpec{}, errors.Wrap(err, "returns")
		}
		rb := javapoet.NewReturnBuilder(typ)
		if m.ReturnsDoc != "" {
			doc, err := b.code(m.ReturnsDoc)
			if err != nil {
				return javapoet.MethodSpec{}, errors.Wrap(err, "returns_doc")
			}
			rb.AddJavadocBlock(doc)
		}
		ret, err := rb.Build()
		if err != nil {
			return javapoet.MethodSpec{}, err
		}
		mb.ReturnsSpec(ret)
	case m.ReturnsDoc != "":
		return javapoet.MethodSpec{}, errors.New("returns_doc needs returns")
	}

	for _, p := range m.Parameters {
		param, err := b.parameter(p)
		if err != nil {
			return javapoet.MethodSpec{}, errors.Wrapf(err, "parameter %s", p.Name)
		}
		mb.AddParameter(param)
	}
	mb.Varargs(m.Varargs)

	for _, th := range m.Throws {
		typ, err := b.scope.parse(th.Type)
		if err != nil {
			return javapoet.MethodSpec{}, errors.Wrap(err, "throws")
		}
		tb := javapoet.NewThrowBuilder(typ)
		if th.Doc != "" {
			doc, err := b.code(th.Doc)
			if err != nil {
				return javapoet.MethodSpec{}, errors.Wrap(err, "throws")
			}
			tb.AddJavadocBlock(doc)
		}
		spec, err := tb.Build()
		if err != nil {
			return javapoet.MethodSpec{}, err
		}
		mb.AddThrowSpec(spec)
	}

	if m.DefaultValue != "" {
		value, err := b.code(m.DefaultValue)
		if err != nil {
			return javapoet.MethodSpec{}, errors.Wrap(err, "default_value")
		}
		mb.DefaultValueBlock(value)
	}
	for _, stmt := range m.Statements {
		args, err := b.typeArgs(stmt)
		if err != nil {
			return javapoet.MethodSpec{}, err
		}
		mb.AddNamedStatement(stmt, args)
	}
	if m.Code != "" {
		code, err := b.code(m.Code)
		if err != nil {
			return javapoet.MethodSpec{}, errors.Wrap(err, "code")
		}
		mb.AddCodeBlock(code)
	}
	return mb.Build()
}

func (b *builder) parameter(p ParameterDecl) (javapoet.ParameterSpec, error) {
	typ, err := b.scope.parse(p.Type)
	if err != nil {
		return javapoet.ParameterSpec{}, err
	}
	mods, err := modifiers(p.Modifiers)
	if err != nil {
		return javapoet.ParameterSpec{}, err
	}
	pb := javapoet.NewParameterBuilder(typ, p.Name, mods...)
	if p.Doc != "" {
		doc, err := b.code(p.Doc)
		if err != nil {
			return javapoet.ParameterSpec{}, errors.Wrap(err, "doc")
		}
		pb.AddJavadocBlock(doc)
	}
	annotations, err := b.annotations(p.Annotations)
	if err != nil {
		return javapoet.ParameterSpec{}, err
	}
	for _, a := range annotations {
		pb.AddAnnotation(a)
	}
	return pb.Build()
}

// typeVariables declares vars in a new scope frame before resolving bounds, so
// a bound may refer to its own variable. Callers pop the frame, even on error.
func (b *builder) typeVariables(decls []TypeVariableDecl) ([]javapoet.TypeName, error) {
	names := make([]string, 0, len(decls))
	for _, d := range decls {
		names = append(names, d.Name)
	}
	b.scope.pushVars(names)

	vars := make([]javapoet.TypeName, 0, len(decls))
	for _, d := range decls {
		bounds := make([]javapoet.TypeName, 0, len(d.Bounds))
		for _, src := range d.Bounds {
			bound, err := b.scope.parse(src)
			if err != nil {
				return nil, errors.Wrapf(err, "type variable %s", d.Name)
			}
			bounds = append(bounds, bound)
		}
		tv, err := javapoet.TypeVariable(d.Name, bounds...)
		if err != nil {
			return nil, errors.Wrapf(err, "type variable %s", d.Name)
		}
		vars = append(vars, tv)
	}
	return vars, nil
}

func (b *builder) annotations(decls []AnnotationDecl) ([]javapoet.AnnotationSpec, error) {
	var out []javapoet.AnnotationSpec
	for _, d := range decls {
		typ, err := b.scope.parse(d.Type)
		if err != nil {
			return nil, errors.Wrap(err, "annotation")
		}
		ab := javapoet.NewAnnotationBuilder(typ)
		for _, m := range d.Members {
			value, err := b.code(m.Value)
			if err != nil {
				return nil, errors.Wrapf(err, "annotation %s member %s", d.Type, m.Name)
			}
			ab.AddMemberBlock(m.Name, value)
		}
		a, err := ab.Build()
		if err != nil {
			return nil, errors.Wrapf(err, "annotation %s", d.Type)
		}
		out = append(out, a)
	}
	return out, nil
}

func modifiers(names []string) ([]javapoet.Modifier, error) {
	mods := make([]javapoet.Modifier, 0, len(names))
	for _, n := range names {
		m, err := javapoet.ParseModifier(n)
		if err != nil {
			return nil, err
		}
		mods = append(mods, m)
	}
	return mods, nil
}

var typeRef = regexp.MustCompile(`^\$([a-z][a-zA-Z0-9_]*):T`)

// typeArgs collects the aliases text references as $alias:T. Escaped dollars
// ("$$") are skipped.
func (b *builder) typeArgs(text string) (map[string]any, error) {
	args := map[string]any{}
	for i := 0; i < len(text); i++ {
		if text[i] != '$' {
			continue
		}
		if i+1 < len(text) && text[i+1] == '$' {
			i++
			continue
		}
		m := typeRef.FindStringSubmatch(text[i:])
		if m == nil {
			continue
		}
		t, ok := b.types[m[1]]
		if !ok {
			return nil, errors.Newf("unknown type alias $%s", m[1])
		}
		args[m[1]] = t
		i += len(m[0]) - 1
	}
	return args, nil
}

// code builds a block from document text. Layout markers such as $> and $W
// are honored; types come from the document's aliases.
func (b *builder) code(text string) (javapoet.CodeBlock, error) {
	args, err := b.typeArgs(text)
	if err != nil {
		return javapoet.CodeBlock{}, err
	}
	return javapoet.NewCodeBlockBuilder().AddNamed(text, args).Build()
}
