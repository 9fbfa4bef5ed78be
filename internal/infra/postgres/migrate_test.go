package postgres

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/loftfit-bot/migrations"
)

type execRecorder struct {
	statements []string
	failOn     int
}

func (e *execRecorder) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	e.statements = append(e.statements, sql)
	if e.failOn > 0 && len(e.statements) == e.failOn {
		return pgconn.CommandTag{}, errors.New("syntax error")
	}
	return pgconn.NewCommandTag("CREATE TABLE"), nil
}

func (e *execRecorder) Query(context.Context, string, ...any) (pgx.Rows, error) { return nil, nil }
func (e *execRecorder) QueryRow(context.Context, string, ...any) pgx.Row        { return nil }

func TestMigrate_AppliesInOrder(t *testing.T) {
	fsys := fstest.MapFS{
		"0002_b.sql": {Data: []byte("SELECT 2;")},
		"0001_a.sql": {Data: []byte("SELECT 1;")},
		"README.md":  {Data: []byte("ignored")},
	}
	db := &execRecorder{}

	applied, err := Migrate(context.Background(), db, fsys)
	require.NoError(t, err)

	assert.Equal(t, []string{"0001_a.sql", "0002_b.sql"}, applied)
	assert.Equal(t, []string{"SELECT 1;", "SELECT 2;"}, db.statements)
}

func TestMigrate_StopsOnError(t *testing.T) {
	fsys := fstest.MapFS{
		"0001_a.sql": {Data: []byte("SELECT 1;")},
		"0002_b.sql": {Data: []byte("SELEC 2;")},
		"0003_c.sql": {Data: []byte("SELECT 3;")},
	}
	db := &execRecorder{failOn: 2}

	applied, err := Migrate(context.Background(), db, fsys)
	require.Error(t, err)

	assert.Contains(t, err.Error(), "0002_b.sql")
	assert.Equal(t, []string{"0001_a.sql"}, applied)
}

func TestMigrate_EmbeddedSchema(t *testing.T) {
	db := &execRecorder{}

	applied, err := Migrate(context.Background(), db, migrations.FS)
	require.NoError(t, err)

	require.NotEmpty(t, applied)
	assert.Contains(t, db.statements[0], "CREATE TABLE IF NOT EXISTS quiz_events")
}
