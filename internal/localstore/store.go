package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Ivetta-Luis-Alberto-114588/front-startup/pkg/logger"
	"github.com/go-playground/validator/v10"
)

// ErrNotFound is returned by backends when no record exists under the key.
var ErrNotFound = errors.New("record not found")

// Backend is the raw key/value surface a store persists through.
type Backend interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, payload []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

// Store is the best-effort durable copy of the guest cart. Read problems
// surface as "no record", write problems are logged and swallowed.
type Store struct {
	backend  Backend
	key      string
	validate *validator.Validate
	logg     *logger.Logger
}

func New(backend Backend, key string, logg *logger.Logger) (*Store, error) {
	if backend == nil {
		return nil, fmt.Errorf("local store backend required")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, fmt.Errorf("local store key required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Store{
		backend:  backend,
		key:      key,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logg:     logg,
	}, nil
}

// Load returns the stored record. Missing, undecodable and structurally
// invalid records all report false; invalid ones are purged.
func (s *Store) Load(ctx context.Context) (*Record, bool) {
	ctx = s.logg.WithField(ctx, "store_key", s.key)

	payload, err := s.backend.Read(ctx, s.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "guest cart read failed")
		}
		return nil, false
	}

	record, err := s.decode(payload)
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "discarding invalid guest cart record")
		s.Delete(ctx)
		return nil, false
	}
	return record, true
}

func (s *Store) decode(payload []byte) (*Record, error) {
	var record Record
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	if err := s.validate.Struct(record); err != nil {
		return nil, fmt.Errorf("validate record: %w", err)
	}
	return &record, nil
}

// Save overwrites the stored record.
func (s *Store) Save(ctx context.Context, record Record) {
	ctx = s.logg.WithField(ctx, "store_key", s.key)

	payload, err := json.Marshal(record)
	if err != nil {
		s.logg.Error(ctx, "encode guest cart record", err)
		return
	}
	if err := s.backend.Write(ctx, s.key, payload); err != nil {
		s.logg.Error(ctx, "guest cart write failed", err)
	}
}

func (s *Store) Delete(ctx context.Context) {
	if err := s.backend.Delete(ctx, s.key); err != nil && !errors.Is(err, ErrNotFound) {
		s.logg.Error(s.logg.WithField(ctx, "store_key", s.key), "guest cart delete failed", err)
	}
}

// Ping reports whether the backend is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.backend.Ping(ctx)
}
