// Package declfile reads Java file declarations from YAML or TOML documents
// and turns them into javapoet files.
package declfile

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a declaration document.
type Format string

const (
	YAML Format = "yaml"
	TOML Format = "toml"
)

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	}
	return "", errors.Newf("%s: unsupported declaration format %q", path, filepath.Ext(path))
}

// Document describes one Java source file.
type Document struct {
	Package       string            `yaml:"package" toml:"package"`
	FileComment   string            `yaml:"file_comment" toml:"file_comment"`
	Indent        string            `yaml:"indent" toml:"indent"`
	Types         map[string]string `yaml:"types" toml:"types"`
	StaticImports []StaticImport    `yaml:"static_imports" toml:"static_imports"`
	Type          TypeDecl          `yaml:"type" toml:"type"`
}

// StaticImport imports members of a class statically. "*" imports all of them.
type StaticImport struct {
	Type    string   `yaml:"type" toml:"type"`
	Members []string `yaml:"members" toml:"members"`
}

type TypeDecl struct {
	Kind             string             `yaml:"kind" toml:"kind"`
	Name             string             `yaml:"name" toml:"name"`
	Modifiers        []string           `yaml:"modifiers" toml:"modifiers"`
	Javadoc          string             `yaml:"javadoc" toml:"javadoc"`
	Annotations      []AnnotationDecl   `yaml:"annotations" toml:"annotations"`
	TypeVariables    []TypeVariableDecl `yaml:"type_variables" toml:"type_variables"`
	Superclass       string             `yaml:"superclass" toml:"superclass"`
	Interfaces       []string           `yaml:"interfaces" toml:"interfaces"`
	EnumConstants    []EnumConstantDecl `yaml:"enum_constants" toml:"enum_constants"`
	Fields           []FieldDecl        `yaml:"fields" toml:"fields"`
	StaticBlock      string             `yaml:"static_block" toml:"static_block"`
	InitializerBlock string             `yaml:"initializer_block" toml:"initializer_block"`
	Methods          []MethodDecl       `yaml:"methods" toml:"methods"`
	Types            []TypeDecl         `yaml:"types" toml:"types"`
}

type AnnotationDecl struct {
	Type    string             `yaml:"type" toml:"type"`
	Members []AnnotationMember `yaml:"members" toml:"members"`
}

// AnnotationMember is one name = value pair; repeating a name builds an array value.
type AnnotationMember struct {
	Name  string `yaml:"name" toml:"name"`
	Value string `yaml:"value" toml:"value"`
}

type TypeVariableDecl struct {
	Name   string   `yaml:"name" toml:"name"`
	Bounds []string `yaml:"bounds" toml:"bounds"`
}

type EnumConstantDecl struct {
	Name    string       `yaml:"name" toml:"name"`
	Args    string       `yaml:"args" toml:"args"`
	Javadoc string       `yaml:"javadoc" toml:"javadoc"`
	Methods []MethodDecl `yaml:"methods" toml:"methods"`
}

type FieldDecl struct {
	Type        string           `yaml:"type" toml:"type"`
	Name        string           `yaml:"name" toml:"name"`
	Modifiers   []string         `yaml:"modifiers" toml:"modifiers"`
	Javadoc     string           `yaml:"javadoc" toml:"javadoc"`
	Annotations []AnnotationDecl `yaml:"annotations" toml:"annotations"`
	Initializer string           `yaml:"initializer" toml:"initializer"`
}

type MethodDecl struct {
	Name          string             `yaml:"name" toml:"name"`
	Constructor   bool               `yaml:"constructor" toml:"constructor"`
	Modifiers     []string           `yaml:"modifiers" toml:"modifiers"`
	Javadoc       string             `yaml:"javadoc" toml:"javadoc"`
	Annotations   []AnnotationDecl   `yaml:"annotations" toml:"annotations"`
	TypeVariables []TypeVariableDecl `yaml:"type_variables" toml:"type_variables"`
	Returns       string             `yaml:"returns" toml:"returns"`
	ReturnsDoc    string             `yaml:"returns_doc" toml:"returns_doc"`
	Parameters    []ParameterDecl    `yaml:"parameters" toml:"parameters"`
	Throws        []ThrowDecl        `yaml:"throws" toml:"throws"`
	Varargs       bool               `yaml:"varargs" toml:"varargs"`
	DefaultValue  string             `yaml:"default_value" toml:"default_value"`
	Statements    []string           `yaml:"statements" toml:"statements"`
	Code          string             `yaml:"code" toml:"code"`
}

type ParameterDecl struct {
	Type        string           `yaml:"type" toml:"type"`
	Name        string           `yaml:"name" toml:"name"`
	Doc         string           `yaml:"doc" toml:"doc"`
	Modifiers   []string         `yaml:"modifiers" toml:"modifiers"`
	Annotations []AnnotationDecl `yaml:"annotations" toml:"annotations"`
}

type ThrowDecl struct {
	Type string `yaml:"type" toml:"type"`
	Doc  string `yaml:"doc" toml:"doc"`
}

// Load reads the document at path; the extension selects the format.
func Load(path string) (*Document, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read declaration")
	}
	doc, err := Parse(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return doc, nil
}

// Parse decodes a document. Unknown keys are rejected so typos do not silently
// drop declarations.
func Parse(data []byte, format Format) (*Document, error) {
	var doc Document
	switch format {
	case YAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return nil, errors.Wrap(err, "decode yaml")
		}
	case TOML:
		md, err := toml.Decode(string(data), &doc)
		if err != nil {
			return nil, errors.Wrap(err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, 0, len(undecoded))
			for _, k := range undecoded {
				keys = append(keys, k.String())
			}
			slices.Sort(keys)
			return nil, errors.Newf("decode toml: unknown keys %s", strings.Join(keys, ", "))
		}
	default:
		return nil, errors.Newf("unsupported declaration format %q", format)
	}
	return &doc, nil
}
