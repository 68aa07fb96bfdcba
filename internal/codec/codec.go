// Package codec reads and writes the binary task record format.
//
// A record is laid out as
//
//	completed  1 byte   0 = false, anything else = true
//	desc_len   8 bytes  length of desc_bytes, terminator included
//	desc_bytes          description followed by one 0x00 byte
//	due_len    8 bytes  same scheme for the due date
//	due_bytes
//	priority   4 bytes  ordinal, 0 = low, 1 = medium, 2 = high
//
// Integers use the host byte order. A file is a plain concatenation of
// records, optionally preceded by a Header.
package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/Makepad-fr/taskbin/internal/model"
)

var (
	// ErrCorruptTail means the stream ended in the middle of a record.
	ErrCorruptTail = errors.New("corrupt tail")
	// ErrInvalidLength means a text field declared a length of zero.
	ErrInvalidLength = errors.New("invalid text length")
)

const (
	lenWidth      = 8
	priorityWidth = 4
	terminator    = 0x00

	// payloads up to this size are read into a single allocation; larger
	// ones grow as bytes actually arrive so a bogus length can't blow up memory.
	directReadLimit = 64 << 10
)

var order = binary.NativeEndian

// Encode writes one record for t to w.
func Encode(w io.Writer, t model.Task) error {
	var buf bytes.Buffer
	buf.Grow(1 + 2*lenWidth + len(t.Description) + len(t.DueDate) + 2 + priorityWidth)

	if t.Completed {
		buf.WriteByte(1)
	} else {
		buf.WriteByte(0)
	}
	putText(&buf, t.Description)
	putText(&buf, t.DueDate)
	buf.Write(order.AppendUint32(nil, uint32(t.Priority)))

	n, err := w.Write(buf.Bytes())
	if err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	if n != buf.Len() {
		return fmt.Errorf("write record: %w", io.ErrShortWrite)
	}
	return nil
}

func putText(buf *bytes.Buffer, s string) {
	buf.Write(order.AppendUint64(nil, uint64(len(s))+1))
	buf.WriteString(s)
	buf.WriteByte(terminator)
}

// Decode reads the next record from r.
//
// It returns io.EOF, and nothing else, when r is exhausted exactly on a
// record boundary. A stream that stops inside a record yields an error
// wrapping ErrCorruptTail. On any error the returned Task is the zero value.
func Decode(r io.Reader) (model.Task, error) {
	var flag [1]byte
	if _, err := io.ReadFull(r, flag[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return model.Task{}, io.EOF
		}
		return model.Task{}, fmt.Errorf("read completed flag: %w", err)
	}

	desc, err := readText(r, "description")
	if err != nil {
		return model.Task{}, err
	}
	due, err := readText(r, "due date")
	if err != nil {
		return model.Task{}, err
	}

	var p [priorityWidth]byte
	if _, err := io.ReadFull(r, p[:]); err != nil {
		return model.Task{}, truncated("priority", err)
	}

	return model.Task{
		Priority:    model.Priority(order.Uint32(p[:])),
		Description: desc,
		DueDate:     due,
		Completed:   flag[0] != 0,
	}, nil
}

func readText(r io.Reader, field string) (string, error) {
	var l [lenWidth]byte
	if _, err := io.ReadFull(r, l[:]); err != nil {
		return "", truncated(field+" length", err)
	}
	n := order.Uint64(l[:])
	if n == 0 {
		return "", fmt.Errorf("%w: %s length is 0", ErrInvalidLength, field)
	}
	if n > math.MaxInt64 {
		// no stream can satisfy this
		return "", fmt.Errorf("%w: %s declares %d bytes", ErrCorruptTail, field, n)
	}

	var payload []byte
	if n <= directReadLimit {
		payload = make([]byte, n)
		if _, err := io.ReadFull(r, payload); err != nil {
			return "", truncated(field, err)
		}
	} else {
		var buf bytes.Buffer
		if _, err := io.CopyN(&buf, r, int64(n)); err != nil {
			return "", truncated(field, err)
		}
		payload = buf.Bytes()
	}
	// drop the terminator
	return string(payload[:n-1]), nil
}

func truncated(field string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: stream ended reading %s: %w", ErrCorruptTail, field, io.ErrUnexpectedEOF)
	}
	return fmt.Errorf("read %s: %w", field, err)
}
