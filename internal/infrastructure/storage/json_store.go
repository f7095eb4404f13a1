package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/yourusername/crm-records/internal/domain/entity"
	"github.com/yourusername/crm-records/internal/domain/repository"
)

// stateFile on-disk layout of the record store
type stateFile struct {
	Customers []entity.Record `json:"customers"`
	Products  []entity.Record `json:"products"`
}

type jsonRecordStore struct {
	path   string
	logger *zap.Logger
}

// NewJSONRecordStore record store backed by a single UTF-8 JSON file
func NewJSONRecordStore(path string, logger *zap.Logger) (repository.RecordStore, error) {
	if path == "" {
		return nil, errors.New("state file path must not be empty")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &jsonRecordStore{path: path, logger: logger}, nil
}

// Save writes both tables to a temp file next to the target and renames it into place.
func (s *jsonRecordStore) Save(ctx context.Context, snapshot entity.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := encodeState(snapshot)
	if err != nil {
		return &entity.PersistenceError{Path: s.path, Err: err}
	}

	if err := writeFileAtomic(s.path, data); err != nil {
		return &entity.PersistenceError{Path: s.path, Err: err}
	}

	s.logger.Debug("state saved",
		zap.String("path", s.path),
		zap.Int("customers", tableLen(snapshot.Customers)),
		zap.Int("products", tableLen(snapshot.Products)),
	)
	return nil
}

// Load reads the state file. A missing file yields two empty tables.
func (s *jsonRecordStore) Load(ctx context.Context) (entity.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return entity.Snapshot{}, err
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Info("state file not found, starting empty", zap.String("path", s.path))
		return entity.NewSnapshot(), nil
	}
	if err != nil {
		return entity.Snapshot{}, &entity.PersistenceError{Path: s.path, Err: err}
	}

	snapshot, err := decodeState(data)
	if err != nil {
		return entity.Snapshot{}, &entity.PersistenceError{Path: s.path, Err: err}
	}

	s.logger.Debug("state loaded",
		zap.String("path", s.path),
		zap.Int("customers", snapshot.Customers.Len()),
		zap.Int("products", snapshot.Products.Len()),
	)
	return snapshot, nil
}

func encodeState(snapshot entity.Snapshot) ([]byte, error) {
	state := stateFile{
		Customers: tableRows(snapshot.Customers),
		Products:  tableRows(snapshot.Products),
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(state); err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeState(data []byte) (entity.Snapshot, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return entity.Snapshot{}, errors.New("empty state file")
	}

	var state stateFile
	if err := json.Unmarshal(data, &state); err != nil {
		return entity.Snapshot{}, fmt.Errorf("decode state: %w", err)
	}

	snapshot := entity.NewSnapshot()
	snapshot.Customers.Merge(state.Customers)
	snapshot.Products.Merge(state.Products)
	return snapshot, nil
}

func tableRows(t *entity.RecordTable) []entity.Record {
	if t == nil {
		return []entity.Record{}
	}
	return t.Rows()
}

func tableLen(t *entity.RecordTable) int {
	if t == nil {
		return 0
	}
	return t.Len()
}

// writeFileAtomic temp file in the target directory, fsync, rename.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}
	committed = true
	return nil
}
