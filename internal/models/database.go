package models

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	sqlitecloud "github.com/sqlitecloud/sqlitecloud-go"
)

const createStateTable = `CREATE TABLE IF NOT EXISTS app_state (
	namespace TEXT PRIMARY KEY,
	data TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

const upsertState = `INSERT INTO app_state (namespace, data) VALUES (?, ?)
	ON CONFLICT(namespace) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP`

const selectState = `SELECT data FROM app_state WHERE namespace = ?`

// Database stores namespaced state blobs in SQLite Cloud
type Database struct {
	db *sqlitecloud.SQCloud
}

// NewDatabase creates a new database connection
func NewDatabase(connStr string) (*Database, error) {
	logrus.WithField("db", maskConnectionString(connStr)).Info("connecting to SQLite Cloud")

	db, err := sqlitecloud.Connect(connStr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to SQLite Cloud")
	}

	database := &Database{
		db: db,
	}

	if err := database.db.Execute(createStateTable); err != nil {
		database.db.Close()
		return nil, errors.Wrap(err, "failed to create app_state table")
	}

	return database, nil
}

// maskConnectionString hides the API key in logs
func maskConnectionString(connStr string) string {
	if strings.Contains(connStr, "apikey=") {
		parts := strings.Split(connStr, "apikey=")
		if len(parts) > 1 {
			return parts[0] + "apikey=***"
		}
	}
	return connStr
}

// Load returns the blob stored under namespace, or nil if none was saved yet.
func (d *Database) Load(_ context.Context, namespace string) ([]byte, error) {
	result, err := d.db.SelectArray(selectState, []interface{}{namespace})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load state %q", namespace)
	}

	if result.GetNumberOfRows() == 0 {
		return nil, nil
	}

	data, err := result.GetStringValue(0, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read state %q", namespace)
	}
	return []byte(data), nil
}

// Save replaces the blob stored under namespace.
func (d *Database) Save(_ context.Context, namespace string, data []byte) error {
	if err := d.db.ExecuteArray(upsertState, []interface{}{namespace, string(data)}); err != nil {
		return errors.Wrapf(err, "failed to save state %q", namespace)
	}
	return nil
}

// Close closes the database connection
func (d *Database) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}
