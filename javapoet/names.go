package javapoet

import (
	"fmt"
	"strings"
	"unicode"
)

var javaKeywords = map[string]bool{
	"abstract": true, "assert": true, "boolean": true, "break": true, "byte": true,
	"case": true, "catch": true, "char": true, "class": true, "const": true,
	"continue": true, "default": true, "do": true, "double": true, "else": true,
	"enum": true, "extends": true, "final": true, "finally": true, "float": true,
	"for": true, "goto": true, "if": true, "implements": true, "import": true,
	"instanceof": true, "int": true, "interface": true, "long": true, "native": true,
	"new": true, "package": true, "private": true, "protected": true, "public": true,
	"return": true, "short": true, "static": true, "strictfp": true, "super": true,
	"switch": true, "synchronized": true, "this": true, "throw": true, "throws": true,
	"transient": true, "try": true, "void": true, "volatile": true, "while": true,
	"true": true, "false": true, "null": true, "_": true,
}

func isIdentifierStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentifierPart(r rune) bool {
	return isIdentifierStart(r) || unicode.IsDigit(r)
}

// isIdentifier reports whether s is lexically an identifier; keywords pass.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 && !isIdentifierStart(r) {
			return false
		}
		if !isIdentifierPart(r) {
			return false
		}
	}
	return true
}

// IsName reports whether s is a dotted sequence of identifiers, none of them a keyword.
func IsName(s string) bool {
	if s == "" {
		return false
	}
	for _, part := range strings.Split(s, ".") {
		if !isIdentifier(part) || javaKeywords[part] {
			return false
		}
	}
	return true
}

// IsKeyword reports whether s is a reserved word or literal that cannot name anything.
func IsKeyword(s string) bool { return javaKeywords[s] }

// memberName returns the identifier prefix of s.
func memberName(s string) string {
	for i, r := range s {
		if !isIdentifierPart(r) {
			return s[:i]
		}
	}
	return s
}

// characterLiteral escapes c for use between single quotes.
func characterLiteral(c rune) string {
	switch c {
	case '\b':
		return `\b`
	case '\t':
		return `\t`
	case '\n':
		return `\n`
	case '\f':
		return `\f`
	case '\r':
		return `\r`
	case '"':
		return `"`
	case '\'':
		return `\'`
	case '\\':
		return `\\`
	}
	if unicode.IsControl(c) {
		return fmt.Sprintf(`\u%04x`, c)
	}
	return string(c)
}

// stringLiteral quotes value as a Java string literal. Embedded line feeds split the
// literal into a concatenation continued on the next line.
func stringLiteral(value, indent string) string {
	var b strings.Builder
	b.Grow(len(value) + 2)
	b.WriteByte('"')
	runes := []rune(value)
	for i, c := range runes {
		switch c {
		case '\'':
			b.WriteByte('\'')
			continue
		case '"':
			b.WriteString(`\"`)
			continue
		}
		b.WriteString(characterLiteral(c))
		if c == '\n' && i+1 < len(runes) {
			b.WriteString("\"\n")
			b.WriteString(indent)
			b.WriteString("+ \"")
		}
	}
	b.WriteByte('"')
	return b.String()
}
