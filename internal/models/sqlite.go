package models

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// LocalDatabase stores namespaced state blobs in an on-disk SQLite file
type LocalDatabase struct {
	db *sql.DB
}

// NewLocalDatabase opens (or creates) the SQLite file at path.
func NewLocalDatabase(path string) (*LocalDatabase, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, errors.Wrapf(err, "failed to create %s", dir)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite database")
	}
	db.SetMaxOpenConns(1) // SQLite: single writer

	if _, err := db.Exec(createStateTable); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to create app_state table")
	}

	logrus.WithField("path", path).Info("opened local state database")
	return &LocalDatabase{db: db}, nil
}

// Load returns the blob stored under namespace, or nil if none was saved yet.
func (d *LocalDatabase) Load(ctx context.Context, namespace string) ([]byte, error) {
	var data string
	err := d.db.QueryRowContext(ctx, selectState, namespace).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load state %q", namespace)
	}
	return []byte(data), nil
}

// Save replaces the blob stored under namespace.
func (d *LocalDatabase) Save(ctx context.Context, namespace string, data []byte) error {
	if _, err := d.db.ExecContext(ctx, upsertState, namespace, string(data)); err != nil {
		return errors.Wrapf(err, "failed to save state %q", namespace)
	}
	return nil
}

// Close closes the database
func (d *LocalDatabase) Close() error {
	return d.db.Close()
}
