package gostructs

import (
	"go/ast"
	"go/token"
	"go/types"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/tools/go/packages"
)

// loadDir loads the Go package(s) for a directory.
func loadDir(dir string) ([]*packages.Package, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo | packages.NeedDeps | packages.NeedFiles | packages.NeedCompiledGoFiles,
		Dir:  dir,
	}
	pkgs, err := packages.Load(cfg, "./")
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", dir)
	}
	var result []*packages.Package
	for _, p := range pkgs {
		if len(p.Errors) > 0 {
			return nil, errors.Wrapf(p.Errors[0], "load %s", dir)
		}
		result = append(result, p)
	}
	return result, nil
}

// structDecl is a named struct type found in the loaded package.
type structDecl struct {
	name   string
	typ    *types.Named
	strct  *types.Struct
	doc    string
	fields map[string]string // Go field name -> doc comment
}

// discoverStructs looks up the requested struct types, or every exported one
// when names is empty. The result is sorted by name.
func discoverStructs(pkg *packages.Package, names []string, docs map[string]typeDocs) ([]structDecl, error) {
	scope := pkg.Types.Scope()

	if len(names) == 0 {
		for _, n := range scope.Names() {
			if !token.IsExported(n) {
				continue
			}
			if tn, ok := scope.Lookup(n).(*types.TypeName); ok && !tn.IsAlias() && isStructLike(tn.Type()) {
				names = append(names, n)
			}
		}
	}
	if len(names) == 0 {
		return nil, errors.Newf("no exported struct types in package %s", pkg.PkgPath)
	}

	var (
		out     []structDecl
		missing []string
	)
	for _, n := range names {
		obj := scope.Lookup(n)
		if obj == nil {
			missing = append(missing, n)
			continue
		}
		named, ok := obj.Type().(*types.Named)
		if !ok {
			return nil, errors.Newf("%s is not a named type", n)
		}
		s, ok := named.Underlying().(*types.Struct)
		if !ok {
			return nil, errors.Newf("%s is not a struct", n)
		}
		if named.TypeParams().Len() > 0 {
			return nil, errors.Newf("%s: generic structs are not supported", n)
		}
		d := docs[n]
		out = append(out, structDecl{name: n, typ: named, strct: s, doc: d.doc, fields: d.fields})
	}
	if len(missing) > 0 {
		return nil, errors.Newf("structs not found: %s", strings.Join(missing, ", "))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out, nil
}

type typeDocs struct {
	doc    string
	fields map[string]string
}

// collectDocs reads the doc comments of struct types and their fields.
func collectDocs(files []*ast.File) map[string]typeDocs {
	docs := map[string]typeDocs{}
	for _, file := range files {
		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, spec := range gd.Specs {
				ts := spec.(*ast.TypeSpec)
				st, ok := ts.Type.(*ast.StructType)
				if !ok {
					continue
				}
				doc := ts.Doc
				if doc == nil && len(gd.Specs) == 1 {
					doc = gd.Doc
				}
				td := typeDocs{doc: doc.Text(), fields: map[string]string{}}
				for _, f := range st.Fields.List {
					text := f.Doc.Text()
					if text == "" {
						text = f.Comment.Text()
					}
					for _, name := range f.Names {
						td.fields[name.Name] = text
					}
				}
				docs[ts.Name.Name] = td
			}
		}
	}
	return docs
}
