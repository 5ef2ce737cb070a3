package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/taskpad/internal/config"
	"github.com/sandeepkv93/taskpad/internal/logging"
	"github.com/sandeepkv93/taskpad/internal/persistence"
	"github.com/sandeepkv93/taskpad/internal/storage"
	"github.com/sandeepkv93/taskpad/internal/store"
)

// session wires storage, persistence and the store for one run.
type session struct {
	cfg     config.Config
	logger  *log.Logger
	kv      storage.KV
	adapter *persistence.Adapter
	store   *store.Store
	closers []io.Closer
}

func openSession(cfg config.Config) (*session, error) {
	opts := logging.Options{
		Level:           logging.ParseLevel(cfg.LogLevel),
		Formatter:       logging.ParseFormat(cfg.LogFormat),
		ReportTimestamp: cfg.LogTimestamps,
		Prefix:          "taskpad",
	}
	base, logFile, err := logging.OpenFile(cfg.LogPath(), opts)
	if err != nil {
		return nil, err
	}
	logger, id := logging.WithSession(base)

	kv, err := storage.Open(cfg.Backend, cfg.DataDir)
	if err != nil {
		_ = logFile.Close()
		return nil, fmt.Errorf("open %s storage: %w", cfg.Backend, err)
	}
	logger.Info("session started", "id", id, "backend", cfg.Backend, "data_dir", cfg.DataDir)

	adapter := persistence.NewAdapter(kv, persistence.WithLogger(logger.WithPrefix("persistence")))
	s := store.New(adapter, store.WithLogger(logger.WithPrefix("store")))
	return &session{
		cfg:     cfg,
		logger:  logger,
		kv:      kv,
		adapter: adapter,
		store:   s,
		closers: []io.Closer{kv, logFile},
	}, nil
}

// Close waits for outstanding writes, bounded by the shutdown timeout, and
// releases storage and the log file.
func (s *session) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := s.adapter.Wait(ctx); err != nil {
		s.logger.Warn("pending writes abandoned", "err", err)
	}
	if cp, ok := s.adapter.LastPersisted(); ok {
		s.logger.Debug("last persisted", "seq", cp.Seq, "tasks", len(cp.Tasks))
	}
	s.logger.Info("session closed")
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
