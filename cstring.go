package vendorboot

import (
	"bytes"
	"fmt"

	"go4.org/bytereplacer"
)

// escaper rewrites every byte outside printable ASCII as a \xNN escape, so
// arbitrary header bytes are safe to print on a terminal.
var escaper = newEscaper()

func newEscaper() *bytereplacer.Replacer {
	pairs := make([]string, 0, 2*(0x20+0x81+1))
	add := func(b byte, to string) {
		pairs = append(pairs, string([]byte{b}), to)
	}

	add('\\', `\\`)
	for b := 0; b < 0x100; b++ {
		if b < 0x20 || b >= 0x7f {
			add(byte(b), fmt.Sprintf(`\x%02x`, b))
		}
	}

	return bytereplacer.New(pairs...)
}

// Escape returns a printable rendition of b.
func Escape(b []byte) string {
	// Replace may work in place; never touch the caller's bytes.
	buf := append([]byte(nil), b...)
	return string(escaper.Replace(buf))
}

// CString is a fixed-size C character field cut at its first NUL. If the
// field holds no NUL, it spans the whole field.
type CString []byte

// NewCString bounds field at its first NUL byte without reading past it.
func NewCString(field []byte) CString {
	if i := bytes.IndexByte(field, 0); i >= 0 {
		return CString(field[:i])
	}

	return CString(field)
}

// Printable reports whether the string is plain printable ASCII.
func (c CString) Printable() bool {
	for _, b := range c {
		if b < 0x20 || b >= 0x7f {
			return false
		}
	}

	return true
}

// Raw returns the bytes of the string, without the terminator.
func (c CString) Raw() []byte {
	return []byte(c)
}

// String returns the text verbatim if printable and escaped otherwise.
func (c CString) String() string {
	if c.Printable() {
		return string(c)
	}

	return Escape(c)
}
