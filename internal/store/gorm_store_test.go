package store

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/worktrackhq/worktrack/internal/config"
)

func newSQLiteStore(t *testing.T) *GormStore {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	s, err := NewGormStore(db)
	require.NoError(t, err)
	return s
}

func TestGormStoreRoundTrip(t *testing.T) {
	s := newSQLiteStore(t)

	_, found, err := s.Get("users")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Put("users", []byte(`[{"id":"u1"}]`)))

	raw, found, err := s.Get("users")
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `[{"id":"u1"}]`, string(raw))
}

func TestGormStorePutOverwrites(t *testing.T) {
	s := newSQLiteStore(t)

	require.NoError(t, s.Put("users", []byte(`[]`)))
	require.NoError(t, s.Put("users", []byte(`[{"id":"u2"}]`)))

	raw, _, err := s.Get("users")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"u2"}]`, string(raw))

	// Each key is an independent document.
	_, found, err := s.Get("tasks")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestConnectRejectsUnknownDriver(t *testing.T) {
	_, err := Connect(&config.Config{DBDriver: "oracle"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oracle")
}

// A failing database must surface as an error from Get so the JSON layer
// can fall back, not as a panic or silent empty read.
func TestGormStoreGetSurfacesDriverError(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      conn,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	mock.ExpectQuery("SELECT").WillReturnError(assert.AnError)

	s := &GormStore{db: db}
	_, _, err = s.Get("users")
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

// The write path gets the same treatment: a rejected upsert comes back
// as an error from Put, never a silent success.
func TestGormStorePutSurfacesDriverError(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      conn,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT").WillReturnError(assert.AnError)
	mock.ExpectRollback()

	s := &GormStore{db: db}
	err = s.Put("users", []byte(`[]`))
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
