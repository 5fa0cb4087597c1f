// Package gostructs generates Java bean classes from Go struct declarations.
package gostructs

import (
	"go/types"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/calumari/javagen/javapoet"
)

// Options selects the Go structs to convert and where the classes go.
type Options struct {
	// Dir is the directory of the Go package to load.
	Dir string
	// Structs names the struct types to convert; empty means all exported ones.
	Structs []string
	// JavaPackage is the package of the generated classes.
	JavaPackage string
	Logger      *zap.Logger
}

// Generate loads the package in opts.Dir and returns one Java file per struct.
// configure, when non-nil, is applied to every file builder.
func Generate(opts Options, configure func(*javapoet.JavaFileBuilder)) ([]javapoet.JavaFile, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	absDir, err := filepath.Abs(opts.Dir)
	if err != nil {
		return nil, errors.Wrap(err, "resolve dir")
	}
	pkgs, err := loadDir(absDir)
	if err != nil {
		return nil, err
	}
	if len(pkgs) == 0 {
		return nil, errors.Newf("no packages found in %s", absDir)
	}
	pkg := pkgs[0]

	docs := collectDocs(pkg.Syntax)
	decls, err := discoverStructs(pkg, opts.Structs, docs)
	if err != nil {
		return nil, err
	}

	c := converter{mapper: typeMapper{pkg: pkg.Types, javaPkg: opts.JavaPackage}, docs: docs, log: log}
	files := make([]javapoet.JavaFile, 0, len(decls))
	for _, d := range decls {
		spec, err := c.class(d)
		if err != nil {
			return nil, errors.Wrapf(err, "struct %s", d.name)
		}
		fb := javapoet.NewJavaFileBuilder(opts.JavaPackage, spec).Logger(log)
		if configure != nil {
			configure(fb)
		}
		file, err := fb.Build()
		if err != nil {
			return nil, errors.Wrapf(err, "struct %s", d.name)
		}
		files = append(files, file)
	}
	return files, nil
}

type converter struct {
	mapper typeMapper
	docs   map[string]typeDocs
	log    *zap.Logger
}

// property is one bean property derived from an exported Go field.
type property struct {
	goName string
	name   string // java field name, escaped when it is a keyword
	// accessor is the getter/setter suffix; keywords are valid there unescaped.
	accessor string
	typ      javapoet.TypeName
	doc      string
}

// class builds a bean: private fields, a no-arg constructor, then a getter and
// setter per field.
func (c converter) class(d structDecl) (javapoet.TypeSpec, error) {
	props, err := c.properties(d.strct, d.fields, map[*types.Struct]bool{})
	if err != nil {
		return javapoet.TypeSpec{}, err
	}

	tb := javapoet.NewClassBuilder(d.name).AddModifiers(javapoet.Public)
	if d.doc != "" {
		tb.AddJavadoc("$L", d.doc)
	}
	for _, p := range props {
		fb := javapoet.NewFieldBuilder(p.typ, p.name, javapoet.Private)
		if p.doc != "" {
			fb.AddJavadoc("$L", p.doc)
		}
		f, err := fb.Build()
		if err != nil {
			return javapoet.TypeSpec{}, errors.Wrapf(err, "field %s", p.goName)
		}
		tb.AddField(f)
	}

	ctor, err := javapoet.NewConstructorBuilder().AddModifiers(javapoet.Public).Build()
	if err != nil {
		return javapoet.TypeSpec{}, err
	}
	tb.AddMethod(ctor)

	for _, p := range props {
		getter, err := javapoet.NewMethodBuilder(getterName(p)).
			AddModifiers(javapoet.Public).
			Returns(p.typ).
			AddStatement("return $N", p.name).
			Build()
		if err != nil {
			return javapoet.TypeSpec{}, errors.Wrapf(err, "getter for %s", p.goName)
		}
		setter, err := javapoet.NewMethodBuilder("set"+p.accessor).
			AddModifiers(javapoet.Public).
			AddParameterOf(p.typ, p.name).
			AddStatement("this.$N = $N", p.name, p.name).
			Build()
		if err != nil {
			return javapoet.TypeSpec{}, errors.Wrapf(err, "setter for %s", p.goName)
		}
		tb.AddMethod(getter).AddMethod(setter)
	}
	return tb.Build()
}

func getterName(p property) string {
	if p.typ.Equal(javapoet.Boolean) {
		return "is" + p.accessor
	}
	return "get" + p.accessor
}

// properties lists the exported fields of s in declaration order. Embedded
// structs contribute their fields, as encoding/json promotes them.
func (c converter) properties(s *types.Struct, docs map[string]string, seen map[*types.Struct]bool) ([]property, error) {
	if seen[s] {
		return nil, nil
	}
	seen[s] = true

	var props []property
	names := map[string]string{}
	for i := 0; i < s.NumFields(); i++ {
		f := s.Field(i)
		name, skip := jsonName(s.Tag(i))
		if skip {
			continue
		}
		if f.Embedded() && name == "" {
			if inner, _ := underlyingStruct(f.Type()); inner != nil {
				var innerDocs map[string]string
				if named, ok := derefNamed(f.Type()); ok && named.Obj().Pkg() == c.mapper.pkg {
					innerDocs = c.docs[named.Obj().Name()].fields
				}
				embedded, err := c.properties(inner, innerDocs, seen)
				if err != nil {
					return nil, err
				}
				for _, p := range embedded {
					if prev, dup := names[p.name]; dup {
						return nil, errors.Newf("property %s from %s collides with %s", p.name, p.goName, prev)
					}
					names[p.name] = p.goName
				}
				props = append(props, embedded...)
				continue
			}
		}
		if !f.Exported() {
			continue
		}
		if name == "" || !(javapoet.IsName(name) || javapoet.IsKeyword(name)) || strings.Contains(name, ".") {
			if name != "" {
				c.log.Debug("json name is not a java identifier", zap.String("field", f.Name()), zap.String("json", name))
			}
			name = javaFieldName(f.Name())
		}
		accessor := upperFirst(name)
		if javapoet.IsKeyword(name) {
			c.log.Debug("field name is a java keyword", zap.String("field", f.Name()), zap.String("name", name))
			name += "_"
		}
		if prev, dup := names[name]; dup {
			return nil, errors.Newf("property %s from %s collides with %s", name, f.Name(), prev)
		}
		names[name] = f.Name()
		props = append(props, property{
			goName:   f.Name(),
			name:     name,
			accessor: accessor,
			typ:      c.mapper.javaType(f.Type()),
			doc:      docs[f.Name()],
		})
	}
	return props, nil
}

func derefNamed(t types.Type) (*types.Named, bool) {
	if p, ok := t.(*types.Pointer); ok {
		t = p.Elem()
	}
	n, ok := t.(*types.Named)
	return n, ok
}
