package svg

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Namespace is the SVG XML namespace written on the root element.
const Namespace = "http://www.w3.org/2000/svg"

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;", "\n", "&#10;")
)

// EscapeText escapes s for use as XML character data. Characters XML does
// not allow, and invalid UTF-8, become U+FFFD as with xml.EscapeText.
func EscapeText(s string) string { return textEscaper.Replace(legal(s)) }

// EscapeAttr escapes s for use inside a double-quoted attribute value.
func EscapeAttr(s string) string { return attrEscaper.Replace(legal(s)) }

// legal replaces runes outside the XML Char production with U+FFFD.
func legal(s string) string {
	clean := true
	for _, r := range s {
		if r == utf8.RuneError || !isXMLChar(r) {
			clean = false
			break
		}
	}
	if clean {
		return s
	}
	return strings.Map(func(r rune) rune {
		if isXMLChar(r) {
			return r
		}
		return utf8.RuneError
	}, strings.ToValidUTF8(s, string(utf8.RuneError)))
}

func isXMLChar(r rune) bool {
	return r == '\t' || r == '\n' || r == '\r' ||
		r >= 0x20 && r <= 0xD7FF ||
		r >= 0xE000 && r <= 0xFFFD ||
		r >= 0x10000 && r <= 0x10FFFF
}

// Node is anything that can be written into an element tree.
type Node interface {
	writeTo(b *strings.Builder)
}

// Attr is a single name/value pair. Value is stored unescaped.
type Attr struct {
	Name  string
	Value string
}

// Element is an SVG element with ordered attributes and child nodes.
type Element struct {
	name     string
	attrs    []Attr
	children []Node
	root     bool
}

// E creates an element with the given tag name and children.
func E(name string, children ...Node) *Element {
	return &Element{name: name, children: children}
}

// Doc creates a root <svg> element sized width×height with a matching viewBox.
func Doc(width, height int) *Element {
	e := E("svg").
		Attr("xmlns", Namespace).
		Attr("width", width).
		Attr("height", height).
		Attr("viewBox", fmt.Sprintf("0 0 %d %d", width, height))
	e.root = true
	return e
}

// Attr sets an attribute, replacing an existing value with the same name
// without changing its position.
func (e *Element) Attr(name string, value any) *Element {
	v := Format(value)
	for i := range e.attrs {
		if e.attrs[i].Name == name {
			e.attrs[i].Value = v
			return e
		}
	}
	e.attrs = append(e.attrs, Attr{Name: name, Value: v})
	return e
}

// get returns the value of the named attribute.
func (e *Element) get(name string) (string, bool) {
	for _, a := range e.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Class sets the class attribute. Empty classes are ignored.
func (e *Element) Class(classes ...string) *Element {
	var parts []string
	for _, c := range classes {
		if c != "" {
			parts = append(parts, c)
		}
	}
	if len(parts) == 0 {
		return e
	}
	return e.Attr("class", strings.Join(parts, " "))
}

// Add appends children. Nil children are skipped.
func (e *Element) Add(children ...Node) *Element {
	for _, c := range children {
		if c == nil {
			continue
		}
		if el, ok := c.(*Element); ok && el == nil {
			continue
		}
		e.children = append(e.children, c)
	}
	return e
}

// String serializes the element and its subtree.
func (e *Element) String() string {
	var b strings.Builder
	e.writeTo(&b)
	return b.String()
}

func (e *Element) writeTo(b *strings.Builder) {
	b.WriteByte('<')
	b.WriteString(e.name)
	for _, a := range e.attrs {
		b.WriteByte(' ')
		b.WriteString(a.Name)
		b.WriteString(`="`)
		b.WriteString(EscapeAttr(a.Value))
		b.WriteByte('"')
	}
	if len(e.children) == 0 {
		b.WriteString("/>")
		return
	}
	b.WriteByte('>')
	for _, c := range e.children {
		if e.root {
			b.WriteByte('\n')
		}
		c.writeTo(b)
	}
	if e.root {
		b.WriteByte('\n')
	}
	b.WriteString("</")
	b.WriteString(e.name)
	b.WriteByte('>')
}

type text string

func (t text) writeTo(b *strings.Builder) { b.WriteString(EscapeText(string(t))) }

// Text creates an escaped character data node.
func Text(s string) Node { return text(s) }

// Textf is Text with fmt.Sprintf formatting.
func Textf(format string, args ...any) Node { return text(fmt.Sprintf(format, args...)) }

// Group wraps children in a <g> element.
func Group(children ...Node) *Element { return E("g", children...) }

// Format renders an attribute value. Floats are rounded to two decimals and
// printed without trailing zeros.
func Format(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return FormatFloat(x)
	case float32:
		return FormatFloat(float64(x))
	case bool:
		return strconv.FormatBool(x)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(v)
	}
}

// FormatFloat prints f rounded to two decimals without trailing zeros.
func FormatFloat(f float64) string {
	r := math.Round(f*100) / 100
	if r == 0 {
		r = 0 // normalize -0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
