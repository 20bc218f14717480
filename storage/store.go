package storage

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/supabase-community/postgrest-go"
	"gorm.io/gorm"
)

// Backend names as reported by Store.Backend and carried in Fault values.
const (
	BackendLocal  = "local"
	BackendHosted = "hosted"
)

// Config holds the hosted-backend credentials probed at first use.
type Config struct {
	SupabaseURL string
	SupabaseKey string
}

// Store is the process-wide backend-selection handle. The hosted backend is
// probed once, lazily; any construction failure falls back to the local
// engine with a logged diagnostic. Operators restart the process to change
// backends.
type Store struct {
	db     *gorm.DB
	cfg    Config
	logger *slog.Logger

	once   sync.Once
	remote *postgrest.Client
}

func New(db *gorm.DB, cfg Config, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, cfg: cfg, logger: logger}
}

// DB returns the local relational engine.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Remote returns the hosted-table client, or nil when the local engine is
// active. The first call decides for the lifetime of the process.
func (s *Store) Remote() *postgrest.Client {
	s.once.Do(s.probe)
	return s.remote
}

// Backend reports which engine is active.
func (s *Store) Backend() string {
	if s.Remote() != nil {
		return BackendHosted
	}
	return BackendLocal
}

func (s *Store) probe() {
	if s.cfg.SupabaseURL == "" || s.cfg.SupabaseKey == "" {
		s.logger.Info("hosted backend not configured, using local engine")
		return
	}

	defer func() {
		if r := recover(); r != nil {
			s.remote = nil
			s.logger.Error("hosted backend construction panicked, using local engine", "panic", r)
		}
	}()

	base := strings.TrimSuffix(s.cfg.SupabaseURL, "/") + "/rest/v1"
	client := postgrest.NewClient(base, "public", map[string]string{
		"apikey":        s.cfg.SupabaseKey,
		"Authorization": "Bearer " + s.cfg.SupabaseKey,
	})
	if client.ClientError != nil {
		s.logger.Error("hosted backend unavailable, using local engine", "error", client.ClientError)
		return
	}

	s.remote = client
	s.logger.Info("hosted backend selected", "url", base)
}
