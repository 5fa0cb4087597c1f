package javapoet

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// CodeBlock is a fragment of Java code: literal text interleaved with placeholders that
// were bound to arguments when the block was built.
//
// Placeholders:
//
//	$L  literal, emitted as is (a CodeBlock argument is emitted recursively)
//	$S  string, quoted and escaped; nil becomes null
//	$T  type, a TypeName, imported or qualified as needed
//	$N  name, a string or any value with a Name() string method
//	$$  a dollar sign
//	$W  a space, or a newline if the line would exceed the column limit
//	$Z  nothing, or a newline if the line would exceed the column limit
//	$>  increase the indentation level
//	$<  decrease the indentation level
//	$[  begin a statement; continuation lines are indented
//	$]  end a statement
//
// Arguments are bound positionally ($L, $S), by 1-based index ($1L, $2T) or by name
// ($count:L) with AddNamed.
type CodeBlock struct {
	// parts is either literal text or a two-character placeholder. Literal parts never
	// start with '$'.
	parts []string
	args  []any
}

// CodeBlockOf builds a block from a single format string.
func CodeBlockOf(format string, args ...any) (CodeBlock, error) {
	return NewCodeBlockBuilder().Add(format, args...).Build()
}

// MustCodeBlock is like CodeBlockOf but panics on a malformed template.
func MustCodeBlock(format string, args ...any) CodeBlock {
	b, err := CodeBlockOf(format, args...)
	if err != nil {
		panic(err)
	}
	return b
}

// IsEmpty reports whether the block has no placeholders and no non-whitespace text.
func (c CodeBlock) IsEmpty() bool {
	for _, p := range c.parts {
		if strings.HasPrefix(p, "$") || strings.TrimSpace(p) != "" {
			return false
		}
	}
	return true
}

// ToBuilder returns a builder seeded with the block's content.
func (c CodeBlock) ToBuilder() *CodeBlockBuilder {
	b := NewCodeBlockBuilder()
	b.AddBlock(c)
	return b
}

// String renders the block with fully qualified type names.
func (c CodeBlock) String() string {
	return renderString(func(w *codeWriter) { w.emitBlock(c, false) })
}

// Equal reports whether both blocks render identically.
func (c CodeBlock) Equal(o CodeBlock) bool {
	return c.String() == o.String()
}

// JoinCodeBlocks concatenates blocks with separator between them. The separator is
// parsed as a format string, so it may contain layout placeholders such as $W.
func JoinCodeBlocks(blocks []CodeBlock, separator string) (CodeBlock, error) {
	b := NewCodeBlockBuilder()
	for i, block := range blocks {
		if i > 0 {
			b.Add(separator)
		}
		b.AddBlock(block)
	}
	return b.Build()
}

// CodeBlockBuilder accumulates parts of a CodeBlock. The first error stops further
// accumulation and is returned from Build.
type CodeBlockBuilder struct {
	parts     []string
	args      []any
	flowDepth int
	depth     int
	err       stickyErr
}

func NewCodeBlockBuilder() *CodeBlockBuilder {
	return &CodeBlockBuilder{}
}

// IsEmpty reports whether nothing but whitespace has been added.
func (b *CodeBlockBuilder) IsEmpty() bool {
	return CodeBlock{parts: b.parts}.IsEmpty()
}

func isNoArgPlaceholder(c byte) bool {
	switch c {
	case '$', '>', '<', '[', ']', 'W', 'Z':
		return true
	}
	return false
}

// Add appends format with positional or indexed arguments.
func (b *CodeBlockBuilder) Add(format string, args ...any) *CodeBlockBuilder {
	if b.err.failed() {
		return b
	}
	b.err.fail(b.add(format, args))
	return b
}

func (b *CodeBlockBuilder) add(format string, args []any) error {
	var (
		parts         []string
		bound         []any
		hasRelative   bool
		hasIndexed    bool
		relativeCount int
		placeholders  int
	)
	indexedCount := make([]int, len(args))

	for p := 0; p < len(format); {
		if format[p] != '$' {
			next := strings.IndexByte(format[p+1:], '$')
			if next < 0 {
				next = len(format)
			} else {
				next += p + 1
			}
			parts = append(parts, format[p:next])
			p = next
			continue
		}
		p++ // '$'

		indexStart := p
		var c byte
		for {
			if p >= len(format) {
				return templateErrf("dangling format characters in '%s'", format)
			}
			c = format[p]
			p++
			if c < '0' || c > '9' {
				break
			}
		}
		indexEnd := p - 1

		if isNoArgPlaceholder(c) {
			if indexStart != indexEnd {
				return templateErrf("$$, $>, $<, $[, $], $W, and $Z may not have an index")
			}
			parts = append(parts, "$"+string(c))
			continue
		}

		var index int
		if indexStart < indexEnd {
			n, err := strconv.Atoi(format[indexStart:indexEnd])
			if err != nil {
				return templateErrf("invalid index in '%s'", format)
			}
			index = n - 1
			hasIndexed = true
			if index >= 0 && index < len(args) {
				indexedCount[index]++
			}
		} else {
			index = relativeCount
			hasRelative = true
			relativeCount++
		}

		if index < 0 || index >= len(args) {
			return templateErrf("index %d for '%s' not in range (received %d arguments)",
				index+1, format[indexStart-1:indexEnd+1], len(args))
		}
		if hasIndexed && hasRelative {
			return templateErrf("cannot mix indexed and positional parameters")
		}

		arg, err := bindArgument(format, c, args[index])
		if err != nil {
			return err
		}
		bound = append(bound, arg)
		parts = append(parts, "$"+string(c))
		placeholders++
	}

	if hasRelative && relativeCount < len(args) {
		return templateErrf("too many arguments; expected %d, received %d", relativeCount, len(args))
	}
	if hasIndexed {
		var unused []string
		for i, n := range indexedCount {
			if n == 0 {
				unused = append(unused, "$"+strconv.Itoa(i+1))
			}
		}
		if len(unused) > 0 {
			s := "s"
			if len(unused) == 1 {
				s = ""
			}
			return templateErrf("unused argument%s: %s", s, strings.Join(unused, ", "))
		}
	}
	if placeholders == 0 && len(args) > 0 {
		return templateErrf("too many arguments; expected 0, received %d", len(args))
	}

	b.appendParts(parts)
	b.args = append(b.args, bound...)
	return nil
}

var (
	namedArgument  = regexp.MustCompile(`^\$(\w+):(\w)`)
	lowercaseStart = regexp.MustCompile(`^[a-z][a-zA-Z0-9_]*$`)
)

// AddNamed appends format whose placeholders name their arguments, as in
// "$count:L". Every argument must be referenced at least once.
func (b *CodeBlockBuilder) AddNamed(format string, args map[string]any) *CodeBlockBuilder {
	if b.err.failed() {
		return b
	}
	b.err.fail(b.addNamed(format, args))
	return b
}

func (b *CodeBlockBuilder) addNamed(format string, args map[string]any) error {
	for name := range args {
		if !lowercaseStart.MatchString(name) {
			return templateErrf("argument '%s' must start with a lowercase character", name)
		}
	}

	var (
		parts []string
		bound []any
	)
	used := make(map[string]bool, len(args))
	for p := 0; p < len(format); {
		next := strings.IndexByte(format[p:], '$')
		if next < 0 {
			parts = append(parts, format[p:])
			break
		}
		if next > 0 {
			parts = append(parts, format[p:p+next])
			p += next
		}

		if m := namedArgument.FindStringSubmatch(format[p:]); m != nil {
			name, c := m[1], m[2][0]
			value, ok := args[name]
			if !ok {
				return templateErrf("missing named argument for $%s", name)
			}
			arg, err := bindArgument(format, c, value)
			if err != nil {
				return err
			}
			used[name] = true
			bound = append(bound, arg)
			parts = append(parts, "$"+string(c))
			p += len(m[0])
			continue
		}

		if p >= len(format)-1 {
			return templateErrf("dangling $ at end")
		}
		if !isNoArgPlaceholder(format[p+1]) {
			return templateErrf("unknown format $%c at %d in '%s'", format[p+1], p+1, format)
		}
		parts = append(parts, format[p:p+2])
		p += 2
	}

	if len(used) < len(args) {
		var unused []string
		for name := range args {
			if !used[name] {
				unused = append(unused, name)
			}
		}
		slices.Sort(unused)
		return templateErrf("unused named argument(s): %s", strings.Join(unused, ", "))
	}

	b.appendParts(parts)
	b.args = append(b.args, bound...)
	return nil
}

type namer interface {
	Name() string
}

// bindArgument validates arg for placeholder c and converts it to the form emitBlock
// expects.
func bindArgument(format string, c byte, arg any) (any, error) {
	switch c {
	case 'N':
		switch v := arg.(type) {
		case string:
			return v, nil
		case namer:
			return v.Name(), nil
		}
		return nil, templateErrf("expected name but was %v", arg)
	case 'L':
		return arg, nil
	case 'S':
		switch v := arg.(type) {
		case nil:
			return nil, nil
		case string:
			return v, nil
		case fmt.Stringer:
			return v.String(), nil
		}
		return fmt.Sprint(arg), nil
	case 'T':
		if t, ok := arg.(TypeName); ok && t.IsValid() {
			return t, nil
		}
		return nil, templateErrf("expected type but was %v", arg)
	}
	return nil, templateErrf("invalid format string: '%s'", format)
}

// appendParts adds parts and tracks the indentation they leave open, whichever
// call wrote the $> or $<.
func (b *CodeBlockBuilder) appendParts(parts []string) {
	for _, p := range parts {
		switch p {
		case "$>":
			b.depth++
		case "$<":
			b.depth--
		}
	}
	b.parts = append(b.parts, parts...)
}

// AddBlock appends every part of block.
func (b *CodeBlockBuilder) AddBlock(block CodeBlock) *CodeBlockBuilder {
	if b.err.failed() {
		return b
	}
	b.appendParts(block.parts)
	b.args = append(b.args, block.args...)
	return b
}

// AddStatement appends format as one statement: terminated by ";\n", with continuation
// lines indented.
func (b *CodeBlockBuilder) AddStatement(format string, args ...any) *CodeBlockBuilder {
	b.Add("$[")
	b.Add(format, args...)
	return b.Add(";\n$]")
}

// AddNamedStatement is AddStatement with named arguments.
func (b *CodeBlockBuilder) AddNamedStatement(format string, args map[string]any) *CodeBlockBuilder {
	b.Add("$[")
	b.AddNamed(format, args)
	return b.Add(";\n$]")
}

// AddComment appends a single-line "//" comment.
func (b *CodeBlockBuilder) AddComment(format string, args ...any) *CodeBlockBuilder {
	return b.Add("// "+format+"\n", args...)
}

// BeginControlFlow opens a braced block such as "if (x)" or "for (...)".
func (b *CodeBlockBuilder) BeginControlFlow(controlFlow string, args ...any) *CodeBlockBuilder {
	b.Add(controlFlow+" {\n", args...)
	b.flowDepth++
	return b.Indent()
}

// BeginNamedControlFlow is BeginControlFlow with named arguments.
func (b *CodeBlockBuilder) BeginNamedControlFlow(controlFlow string, args map[string]any) *CodeBlockBuilder {
	b.AddNamed(controlFlow+" {\n", args)
	b.flowDepth++
	return b.Indent()
}

// NextControlFlow closes the current block and opens the next one, as in "else if (y)".
func (b *CodeBlockBuilder) NextControlFlow(controlFlow string, args ...any) *CodeBlockBuilder {
	if !b.closeFlow("nextControlFlow") {
		return b
	}
	b.Add("} "+controlFlow+" {\n", args...)
	return b.Indent()
}

// NextNamedControlFlow is NextControlFlow with named arguments.
func (b *CodeBlockBuilder) NextNamedControlFlow(controlFlow string, args map[string]any) *CodeBlockBuilder {
	if !b.closeFlow("nextControlFlow") {
		return b
	}
	b.AddNamed("} "+controlFlow+" {\n", args)
	return b.Indent()
}

// EndControlFlow closes the current block.
func (b *CodeBlockBuilder) EndControlFlow() *CodeBlockBuilder {
	if !b.closeFlow("endControlFlow") {
		return b
	}
	b.flowDepth--
	return b.Add("}\n")
}

// EndControlFlowWith closes the current block with a trailing clause, as in
// "} while (more);".
func (b *CodeBlockBuilder) EndControlFlowWith(controlFlow string, args ...any) *CodeBlockBuilder {
	if !b.closeFlow("endControlFlow") {
		return b
	}
	b.flowDepth--
	return b.Add("} "+controlFlow+";\n", args...)
}

// EndNamedControlFlowWith is EndControlFlowWith with named arguments.
func (b *CodeBlockBuilder) EndNamedControlFlowWith(controlFlow string, args map[string]any) *CodeBlockBuilder {
	if !b.closeFlow("endControlFlow") {
		return b
	}
	b.flowDepth--
	return b.AddNamed("} "+controlFlow+";\n", args)
}

func (b *CodeBlockBuilder) closeFlow(op string) bool {
	if b.err.failed() {
		return false
	}
	if b.flowDepth == 0 {
		b.err.fail(invalidArgf("%s without a matching beginControlFlow", op))
		return false
	}
	b.Unindent()
	return true
}

// Indent appends an indentation increase.
func (b *CodeBlockBuilder) Indent() *CodeBlockBuilder {
	return b.Add("$>")
}

// Unindent appends an indentation decrease. Unindenting past the indentation opened so
// far, by Indent or by $> in added formats and blocks, is an error.
func (b *CodeBlockBuilder) Unindent() *CodeBlockBuilder {
	if b.err.failed() {
		return b
	}
	if b.depth <= 0 {
		b.err.fail(invalidArgf("unindent without a matching indent"))
		return b
	}
	return b.Add("$<")
}

// Clear drops everything added so far, including a recorded error.
func (b *CodeBlockBuilder) Clear() *CodeBlockBuilder {
	*b = CodeBlockBuilder{}
	return b
}

// Build returns the accumulated block or the first error recorded.
func (b *CodeBlockBuilder) Build() (CodeBlock, error) {
	if b.err.failed() {
		return CodeBlock{}, b.err.err
	}
	return CodeBlock{parts: slices.Clone(b.parts), args: slices.Clone(b.args)}, nil
}
