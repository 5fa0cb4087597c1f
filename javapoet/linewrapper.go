package javapoet

import (
	"io"
	"math"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/mattn/go-runewidth"
)

type flushKind uint8

const (
	flushNone flushKind = iota
	flushWrap
	flushSpace
	flushEmpty
)

// lineWrapper writes text to out, deferring the decision at each wrap point until the
// text after it is known to fit on the line or not. Widths count display cells.
type lineWrapper struct {
	out         io.Writer
	indent      string
	columnLimit int
	closed      bool

	// buffer holds text written since the pending wrap point.
	buffer strings.Builder
	// column counts cells since the last newline, buffered text included.
	column int
	// indentLevel is the number of indents to write after wrapping, -1 when nothing is
	// pending.
	indentLevel int
	next        flushKind
	last        byte
	err         error
}

func newLineWrapper(out io.Writer, indent string, columnLimit int) *lineWrapper {
	if columnLimit <= 0 {
		columnLimit = math.MaxInt
	}
	return &lineWrapper{out: out, indent: indent, columnLimit: columnLimit, indentLevel: -1}
}

// lastChar returns the last byte written, counting buffered and pending text.
func (l *lineWrapper) lastChar() byte {
	if l.buffer.Len() > 0 {
		s := l.buffer.String()
		return s[len(s)-1]
	}
	if l.next == flushSpace {
		return ' '
	}
	return l.last
}

func (l *lineWrapper) write(s string) {
	if l.err != nil || s == "" {
		return
	}
	if _, err := io.WriteString(l.out, s); err != nil {
		l.err = errors.Wrap(err, "write output")
		return
	}
	l.last = s[len(s)-1]
}

// append emits s, buffering it when a wrap point is pending.
func (l *lineWrapper) append(s string) {
	if l.closed {
		l.fail(errors.AssertionFailedf("line wrapper is closed"))
		return
	}
	if l.next != flushNone {
		nextNewline := strings.IndexByte(s, '\n')
		if nextNewline < 0 && l.column+runewidth.StringWidth(s) <= l.columnLimit {
			l.buffer.WriteString(s)
			l.column += runewidth.StringWidth(s)
			return
		}
		wrap := nextNewline < 0 || l.column+runewidth.StringWidth(s[:nextNewline]) > l.columnLimit
		if wrap {
			l.flush(flushWrap)
		} else {
			l.flush(l.next)
		}
	}

	l.write(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		l.column = runewidth.StringWidth(s[i+1:])
	} else {
		l.column += runewidth.StringWidth(s)
	}
}

// wrappingSpace emits a space, or a newline followed by indentLevel indents.
func (l *lineWrapper) wrappingSpace(indentLevel int) {
	if l.next != flushNone {
		l.flush(l.next)
	}
	l.column++ // the space is deferred to the next flush
	l.next = flushSpace
	l.indentLevel = indentLevel
}

// zeroWidthSpace emits nothing, or a newline followed by indentLevel indents.
func (l *lineWrapper) zeroWidthSpace(indentLevel int) {
	if l.column == 0 {
		return
	}
	if l.next != flushNone {
		l.flush(l.next)
	}
	l.next = flushEmpty
	l.indentLevel = indentLevel
}

func (l *lineWrapper) flush(kind flushKind) {
	switch kind {
	case flushWrap:
		l.write("\n")
		for range l.indentLevel {
			l.write(l.indent)
		}
		l.column = l.indentLevel*runewidth.StringWidth(l.indent) + runewidth.StringWidth(l.buffer.String())
	case flushSpace:
		l.write(" ")
	}
	l.write(l.buffer.String())
	l.buffer.Reset()
	l.indentLevel = -1
	l.next = flushNone
}

func (l *lineWrapper) fail(err error) {
	if l.err == nil {
		l.err = err
	}
}

// close flushes pending text and returns the first write error.
func (l *lineWrapper) close() error {
	if l.next != flushNone {
		l.flush(l.next)
	}
	l.closed = true
	return l.err
}
