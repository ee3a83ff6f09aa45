// Package serial renders harness output the way the firmware wrote it over
// its debug UART: line feeds become carriage-return line-feed pairs and
// values print as fixed-width uppercase hexadecimal.
package serial

import (
	"io"
	"sync"
)

const hexDigits = "0123456789ABCDEF"

// A Writer renders report text to an underlying transport. It is safe for
// use from one writer goroutine; the harness serializes its own output.
type Writer struct {
	mu  sync.Mutex
	out io.Writer
}

// NewWriter creates a writer over the given transport.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// WriteString writes s, translating every \n into \r\n.
func (w *Writer) WriteString(s string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	buf := make([]byte, 0, len(s)+8)
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			buf = append(buf, '\r')
		}

		buf = append(buf, s[i])
	}

	w.write(buf)
}

// WriteHex8 writes one byte as two uppercase hex digits.
func (w *Writer) WriteHex8(v uint8) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.write([]byte{hexDigits[v>>4], hexDigits[v&0x0f]})
}

// WriteHex16 writes a half-word as four uppercase hex digits.
func (w *Writer) WriteHex16(v uint16) {
	w.WriteHex8(uint8(v >> 8))
	w.WriteHex8(uint8(v))
}

// WriteHex32 writes a word as eight uppercase hex digits.
func (w *Writer) WriteHex32(v uint32) {
	w.WriteHex16(uint16(v >> 16))
	w.WriteHex16(uint16(v))
}

func (w *Writer) write(b []byte) {
	// The transport owns transmission timing; a short or failed write is
	// not something a report line can recover from, so errors are dropped
	// the way firmware drops a failed UART write.
	_, _ = w.out.Write(b)
}
