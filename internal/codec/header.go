package codec

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// Magic opens a file written with a header. Headerless files start with a
// completed flag of 0 or 1 and can never match it.
const Magic = "TODO"

// Version is the record layout version written after Magic.
const Version byte = 1

// ErrUnsupportedVersion is returned for a header with an unknown version.
var ErrUnsupportedVersion = errors.New("unsupported format version")

// WriteHeader writes Magic and Version.
func WriteHeader(w io.Writer) error {
	if _, err := io.WriteString(w, Magic); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if _, err := w.Write([]byte{Version}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	return nil
}

// ReadHeader consumes a header from br if one is present and reports
// whether it found one. Without a header nothing is consumed.
func ReadHeader(br *bufio.Reader) (bool, error) {
	peek, err := br.Peek(len(Magic))
	if err != nil || string(peek) != Magic {
		// short or foreign prefix: leave it for Decode
		return false, nil
	}
	if _, err := br.Discard(len(Magic)); err != nil {
		return false, fmt.Errorf("read header: %w", err)
	}
	v, err := br.ReadByte()
	if err != nil {
		return true, fmt.Errorf("%w: header has no version byte", ErrCorruptTail)
	}
	if v != Version {
		return true, fmt.Errorf("%w: %d", ErrUnsupportedVersion, v)
	}
	return true, nil
}
