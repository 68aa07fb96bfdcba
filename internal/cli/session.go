package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/Makepad-fr/taskbin/internal/codec"
	"github.com/Makepad-fr/taskbin/internal/config"
	"github.com/Makepad-fr/taskbin/internal/logging"
	"github.com/Makepad-fr/taskbin/internal/store"
	"github.com/Makepad-fr/taskbin/internal/ui"
)

// session owns everything one invocation works on.
type session struct {
	cfg      *config.Config
	store    *store.Store
	closeLog func() error
	// notice is a load problem the user should see before anything is saved.
	notice string
}

// openSession loads config, starts logging and hydrates the store. A corrupt
// tail is reported on warn and the recovered tasks are used.
func openSession(flags *rootFlags, warn io.Writer) (*session, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}
	if flags.dataFile != "" {
		cfg.DataFile = flags.dataFile
	}
	if flags.theme != "" {
		cfg.Theme = flags.theme
	}
	ui.SetTheme(cfg.Theme)

	closeLog, err := logging.Init(cfg.LogFile)
	if err != nil {
		// logging is best effort; keep the terminal clean
		closeLog = func() error { return nil }
	}
	logger := logging.Logger.With("component", "store")

	s := store.New(cfg.DataFile,
		store.WithCapacity(cfg.Capacity),
		store.WithDurable(cfg.IsDurable()),
		store.WithHeader(cfg.Header),
		store.WithLogger(logger),
	)
	sess := &session{cfg: cfg, store: s, closeLog: closeLog}

	if err := s.Load(); err != nil {
		if errors.Is(err, codec.ErrCorruptTail) {
			sess.notice = fmt.Sprintf("%v; recovered %d task(s), the damaged tail is dropped on the next save", err, s.Len())
			ui.Warn(warn, sess.notice)
			return sess, nil
		}
		// saving over a partially read file would drop the rest of it
		_ = sess.close()
		return nil, err
	}
	slog.Debug("session opened", "data_file", cfg.DataFile, "tasks", s.Len())
	return sess, nil
}

func (s *session) close() error {
	return s.closeLog()
}
