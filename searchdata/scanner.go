package searchdata

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/symdex"
)

type kind int

const (
	kindString kind = iota
	kindNumber
	kindArray
	kindObject
)

func (k kind) String() string {
	switch k {
	case kindString:
		return "string"
	case kindNumber:
		return "number"
	case kindArray:
		return "array"
	default:
		return "object"
	}
}

// value is a parsed JavaScript literal with the offset it started at.
type value struct {
	kind   kind
	off    int
	str    string
	num    int64
	items  []value
	fields []field
}

type field struct {
	key string
	val value
}

// scanner reads the subset of JavaScript literal syntax the generator emits:
// var declarations initialised with strings, integers, arrays and objects.
type scanner struct {
	source string
	data   string
	pos    int

	// entry is the record currently being interpreted, -1 outside records.
	entry int
}

func newScanner(source string, data []byte) *scanner {
	return &scanner{source: source, data: string(data), entry: -1}
}

func (s *scanner) errorf(off int, format string, args ...any) *symdex.ParseError {
	line, col := s.lineCol(off)
	return &symdex.ParseError{
		Source: s.source,
		Entry:  s.entry,
		Offset: off,
		Line:   line,
		Column: col,
		Msg:    fmt.Sprintf(format, args...),
	}
}

func (s *scanner) lineCol(off int) (int, int) {
	if off > len(s.data) {
		off = len(s.data)
	}
	before := s.data[:off]
	line := strings.Count(before, "\n") + 1
	col := off - strings.LastIndexByte(before, '\n')
	return line, col
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.data)
}

// skipSpace skips whitespace and comments.
func (s *scanner) skipSpace() {
	for !s.eof() {
		switch c := s.data[s.pos]; {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v':
			s.pos++
		case strings.HasPrefix(s.data[s.pos:], "\ufeff"):
			s.pos += len("\ufeff")
		case strings.HasPrefix(s.data[s.pos:], "//"):
			if i := strings.IndexByte(s.data[s.pos:], '\n'); i >= 0 {
				s.pos += i + 1
			} else {
				s.pos = len(s.data)
			}
		case strings.HasPrefix(s.data[s.pos:], "/*"):
			if i := strings.Index(s.data[s.pos+2:], "*/"); i >= 0 {
				s.pos += i + 4
			} else {
				s.pos = len(s.data)
			}
		default:
			return
		}
	}
}

// peek returns the next non-space byte without consuming it, or 0 at EOF.
func (s *scanner) peek() byte {
	s.skipSpace()
	if s.eof() {
		return 0
	}
	return s.data[s.pos]
}

func (s *scanner) expect(c byte) error {
	if got := s.peek(); got != c {
		return s.errorf(s.pos, "expected %q, found %s", c, s.describe())
	}
	s.pos++
	return nil
}

// describe names the token at the current position for error messages.
func (s *scanner) describe() string {
	if s.eof() {
		return "end of input"
	}
	r, _ := utf8.DecodeRuneInString(s.data[s.pos:])
	return strconv.QuoteRune(r)
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func (s *scanner) ident() (string, error) {
	s.skipSpace()
	start := s.pos
	if s.eof() || !isIdentStart(s.data[s.pos]) {
		return "", s.errorf(s.pos, "expected identifier, found %s", s.describe())
	}
	for !s.eof() && isIdentPart(s.data[s.pos]) {
		s.pos++
	}
	return s.data[start:s.pos], nil
}

// declaration reads "var name =" and returns name.
func (s *scanner) declaration() (string, error) {
	kw, err := s.ident()
	if err != nil {
		return "", err
	}
	if kw != "var" && kw != "let" && kw != "const" {
		return "", s.errorf(s.pos-len(kw), "expected var declaration, found %q", kw)
	}
	name, err := s.ident()
	if err != nil {
		return "", err
	}
	if err := s.expect('='); err != nil {
		return "", err
	}
	return name, nil
}

// terminator consumes an optional semicolon.
func (s *scanner) terminator() {
	if s.peek() == ';' {
		s.pos++
	}
}

func (s *scanner) parseValue() (value, error) {
	switch c := s.peek(); {
	case c == '\'' || c == '"':
		return s.quoted()
	case c == '-' || (c >= '0' && c <= '9'):
		return s.parseNumber()
	case c == '[':
		return s.parseArray()
	case c == '{':
		return s.parseObject()
	default:
		return value{}, s.errorf(s.pos, "expected value, found %s", s.describe())
	}
}

func (s *scanner) parseArray() (value, error) {
	return s.parseArrayWith(nil)
}

// parseArrayWith reads an array, calling item with each element's index
// before the element is parsed.
func (s *scanner) parseArrayWith(item func(i int)) (value, error) {
	v := value{kind: kindArray, off: s.pos}
	s.pos++ // [
	for {
		if s.peek() == ']' {
			s.pos++
			return v, nil
		}
		if item != nil {
			item(len(v.items))
		}
		elem, err := s.parseValue()
		if err != nil {
			return value{}, err
		}
		v.items = append(v.items, elem)

		switch s.peek() {
		case ',':
			s.pos++
		case ']':
		default:
			return value{}, s.errorf(s.pos, "expected ',' or ']', found %s", s.describe())
		}
	}
}

func (s *scanner) parseObject() (value, error) {
	v := value{kind: kindObject, off: s.pos}
	s.pos++ // {
	for {
		c := s.peek()
		if c == '}' {
			s.pos++
			return v, nil
		}

		var key string
		switch {
		case c == '\'' || c == '"':
			k, err := s.quoted()
			if err != nil {
				return value{}, err
			}
			key = k.str
		case c >= '0' && c <= '9':
			k, err := s.parseNumber()
			if err != nil {
				return value{}, err
			}
			key = strconv.FormatInt(k.num, 10)
		default:
			k, err := s.ident()
			if err != nil {
				return value{}, err
			}
			key = k
		}

		if err := s.expect(':'); err != nil {
			return value{}, err
		}
		val, err := s.parseValue()
		if err != nil {
			return value{}, err
		}
		v.fields = append(v.fields, field{key: key, val: val})

		switch s.peek() {
		case ',':
			s.pos++
		case '}':
		default:
			return value{}, s.errorf(s.pos, "expected ',' or '}', found %s", s.describe())
		}
	}
}

func (s *scanner) parseNumber() (value, error) {
	start := s.pos
	if s.data[s.pos] == '-' {
		s.pos++
	}
	for !s.eof() && s.data[s.pos] >= '0' && s.data[s.pos] <= '9' {
		s.pos++
	}
	n, err := strconv.ParseInt(s.data[start:s.pos], 10, 64)
	if err != nil {
		return value{}, s.errorf(start, "invalid number %q", s.data[start:s.pos])
	}
	return value{kind: kindNumber, off: start, num: n}, nil
}

func (s *scanner) quoted() (value, error) {
	start := s.pos
	quote := s.data[s.pos]
	s.pos++

	var b strings.Builder
	for {
		if s.eof() {
			return value{}, s.errorf(start, "unterminated string")
		}
		c := s.data[s.pos]
		switch {
		case c == quote:
			s.pos++
			return value{kind: kindString, off: start, str: b.String()}, nil
		case c == '\n':
			return value{}, s.errorf(s.pos, "newline in string")
		case c == '\\':
			if err := s.escape(&b); err != nil {
				return value{}, err
			}
		default:
			b.WriteByte(c)
			s.pos++
		}
	}
}

func (s *scanner) escape(b *strings.Builder) error {
	start := s.pos
	s.pos++ // backslash
	if s.eof() {
		return s.errorf(start, "unterminated escape")
	}
	c := s.data[s.pos]
	s.pos++
	switch c {
	case 'n':
		b.WriteByte('\n')
	case 't':
		b.WriteByte('\t')
	case 'r':
		b.WriteByte('\r')
	case 'b':
		b.WriteByte('\b')
	case 'f':
		b.WriteByte('\f')
	case 'v':
		b.WriteByte('\v')
	case '0':
		b.WriteByte(0)
	case 'x':
		r, err := s.hex(start, 2)
		if err != nil {
			return err
		}
		b.WriteRune(r)
	case 'u':
		r, err := s.hex(start, 4)
		if err != nil {
			return err
		}
		b.WriteRune(r)
	case '\n':
		// line continuation
	default:
		b.WriteByte(c)
	}
	return nil
}

func (s *scanner) hex(start, n int) (rune, error) {
	if s.pos+n > len(s.data) {
		return 0, s.errorf(start, "short escape sequence")
	}
	v, err := strconv.ParseUint(s.data[s.pos:s.pos+n], 16, 32)
	if err != nil {
		return 0, s.errorf(start, "invalid escape sequence %q", s.data[start:s.pos+n])
	}
	s.pos += n
	return rune(v), nil
}
