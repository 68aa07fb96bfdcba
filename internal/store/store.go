// Package store keeps the ordered task list and its backing file in step.
//
// Every mutation (Append, Delete, Toggle) rewrites the whole file before it
// returns. If that write fails the change stays in memory and the error is
// returned; a later successful Save catches the file up.
package store

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/Makepad-fr/taskbin/internal/model"
)

// DefaultCapacity is the historical limit of the task list.
const DefaultCapacity = 1024

var (
	ErrCapacityExceeded = errors.New("task list is full")
	ErrIndexOutOfRange  = errors.New("index out of range")
	ErrEmptyDescription = errors.New("task description cannot be empty")
	ErrInvalidPriority  = errors.New("invalid priority")
)

// Store is the in-memory task list bound to one data file.
// It is not safe for concurrent use.
type Store struct {
	path     string
	capacity int
	write    WriteOptions
	logger   *slog.Logger

	tasks []model.Task
}

// Option configures a Store.
type Option func(*Store)

// WithCapacity bounds the number of tasks. n <= 0 keeps DefaultCapacity.
func WithCapacity(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.capacity = n
		}
	}
}

// WithDurable selects temp-file-and-rename saves.
func WithDurable(v bool) Option {
	return func(s *Store) { s.write.Durable = v }
}

// WithHeader makes saves write the format header.
func WithHeader(v bool) Option {
	return func(s *Store) { s.write.Header = v }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New returns an empty store for path. Call Load to hydrate it.
func New(path string, opts ...Option) *Store {
	s := &Store{
		path:     path,
		capacity: DefaultCapacity,
		write:    WriteOptions{Durable: true},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		tasks:    []model.Task{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Path() string { return s.path }
func (s *Store) Len() int     { return len(s.tasks) }
func (s *Store) Cap() int     { return s.capacity }

// Tasks returns a copy of the list in display order.
func (s *Store) Tasks() []model.Task {
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// At returns the task at index.
func (s *Store) At(index int) (model.Task, error) {
	if err := s.checkIndex(index); err != nil {
		return model.Task{}, err
	}
	return s.tasks[index], nil
}

// Load replaces the list with the contents of the data file. A missing file
// leaves the list empty. On a corrupt tail or an over-long file the entries
// read so far are kept and the error is returned.
func (s *Store) Load() error {
	tasks, err := ReadFile(s.path, s.capacity)
	if tasks != nil {
		s.tasks = tasks
	}
	if err != nil {
		s.logger.Warn("load tasks", "path", s.path, "recovered", len(s.tasks), "err", err)
		return err
	}
	s.logger.Debug("loaded tasks", "path", s.path, "count", len(s.tasks))
	return nil
}

// Save writes the whole list to the data file.
func (s *Store) Save() error {
	if err := WriteFile(s.path, s.tasks, s.write); err != nil {
		s.logger.Error("save tasks", "path", s.path, "count", len(s.tasks), "err", err)
		return err
	}
	s.logger.Debug("saved tasks", "path", s.path, "count", len(s.tasks))
	return nil
}

// Append adds a task at the end of the list and saves. An empty due date is
// stored as model.UnsetDueDate.
func (s *Store) Append(description string, p model.Priority, dueDate string, completed bool) error {
	if strings.TrimSpace(description) == "" {
		return ErrEmptyDescription
	}
	if !p.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidPriority, uint32(p))
	}
	if len(s.tasks) >= s.capacity {
		return fmt.Errorf("%w (capacity %d)", ErrCapacityExceeded, s.capacity)
	}
	if dueDate == "" {
		dueDate = model.UnsetDueDate
	}

	s.tasks = append(s.tasks, model.Task{
		Priority:    p,
		Description: description,
		DueDate:     dueDate,
		Completed:   completed,
	})
	s.logger.Info("task added", "index", len(s.tasks)-1, "priority", p.String())
	return s.Save()
}

// Delete removes the task at index, keeping the order of the rest, and saves.
func (s *Store) Delete(index int) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	s.tasks = slices.Delete(s.tasks, index, index+1)
	s.logger.Info("task deleted", "index", index)
	return s.Save()
}

// Toggle flips the completed flag of the task at index and saves.
func (s *Store) Toggle(index int) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	s.tasks[index].Completed = !s.tasks[index].Completed
	s.logger.Info("task toggled", "index", index, "completed", s.tasks[index].Completed)
	return s.Save()
}

func (s *Store) checkIndex(index int) error {
	if index < 0 || index >= len(s.tasks) {
		return fmt.Errorf("%w: have %d, got %d", ErrIndexOutOfRange, len(s.tasks), index)
	}
	return nil
}
