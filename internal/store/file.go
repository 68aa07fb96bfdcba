package store

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Makepad-fr/taskbin/internal/codec"
	"github.com/Makepad-fr/taskbin/internal/model"
)

// Binary-backed storage. Single flat file of codec records.
// No locking; one process owns the file.

// DefaultFileName is the data file used when nothing else is configured.
const DefaultFileName = "todo.bin"

// WriteOptions controls how WriteFile lays out and commits the file.
type WriteOptions struct {
	// Durable writes to a temp file, fsyncs and renames it over the target.
	// Without it the target is truncated and rewritten in place.
	Durable bool
	// Header prefixes the records with codec.Magic and codec.Version.
	Header bool
}

// ReadFile decodes every record in path, in file order.
//
// A missing file is an empty list. If the file ends inside a record, the
// records decoded before it are returned together with an error wrapping
// codec.ErrCorruptTail. At most limit records are returned (limit <= 0
// means no limit); more than that yields ErrCapacityExceeded.
func ReadFile(path string, limit int) ([]model.Task, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Task{}, nil
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	if _, err := codec.ReadHeader(br); err != nil {
		return []model.Task{}, fmt.Errorf("read %s: %w", path, err)
	}

	tasks := []model.Task{}
	for {
		t, err := codec.Decode(br)
		if errors.Is(err, io.EOF) {
			return tasks, nil
		}
		if err != nil {
			return tasks, fmt.Errorf("read %s: record %d: %w", path, len(tasks), err)
		}
		if limit > 0 && len(tasks) == limit {
			return tasks, fmt.Errorf("read %s: %w (limit %d)", path, ErrCapacityExceeded, limit)
		}
		tasks = append(tasks, t)
	}
}

// WriteFile replaces the contents of path with tasks, in order. It stops at
// the first record that fails to encode.
func WriteFile(path string, tasks []model.Task, opt WriteOptions) error {
	if opt.Durable {
		return writeFileAtomic(path, tasks, opt.Header)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	if err := writeRecords(f, tasks, opt.Header); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

func writeRecords(w io.Writer, tasks []model.Task, header bool) error {
	bw := bufio.NewWriter(w)
	if header {
		if err := codec.WriteHeader(bw); err != nil {
			return err
		}
	}
	for i, t := range tasks {
		if err := codec.Encode(bw, t); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	return bw.Flush()
}

// writeFileAtomic commits through a sibling temp file so a crash mid-save
// leaves either the old or the new list on disk.
func writeFileAtomic(path string, tasks []model.Task, header bool) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if err := writeRecords(tmp, tasks, header); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	committed = true
	return syncDir(dir)
}

func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return fmt.Errorf("open dir %s: %w", dir, err)
	}
	defer d.Close()
	if err := d.Sync(); err != nil && !errors.Is(err, os.ErrInvalid) {
		return fmt.Errorf("sync dir %s: %w", dir, err)
	}
	return nil
}
