package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/loftfit-bot/internal/domain/entities"
)

type fakeDB struct {
	execSQL  string
	execArgs []any
	execErr  error

	queryArgs []any
	rows      *fakeRows
}

func (db *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	db.execSQL = sql
	db.execArgs = args
	return pgconn.NewCommandTag("INSERT 0 1"), db.execErr
}

func (db *fakeDB) Query(_ context.Context, _ string, args ...any) (pgx.Rows, error) {
	db.queryArgs = args
	return db.rows, nil
}

func (db *fakeDB) QueryRow(context.Context, string, ...any) pgx.Row {
	return nil
}

type fakeRows struct {
	data [][2]any
	pos  int
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.NewCommandTag("SELECT") }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Values() ([]any, error)                       { return nil, nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	r.pos++
	return r.pos <= len(r.data)
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.data[r.pos-1]
	*dest[0].(*string) = row[0].(string)
	*dest[1].(*int64) = row[1].(int64)
	return nil
}

func TestEventRepository_Save(t *testing.T) {
	db := &fakeDB{}
	repo := NewEventRepository(db)
	runID := uuid.New()
	event := entities.NewEvent(entities.EventQuizComplete, entities.Payload{
		"run_id":      runID.String(),
		"loft_inches": 4.5,
	})

	require.NoError(t, repo.Save(context.Background(), event))

	assert.Contains(t, db.execSQL, "INSERT INTO quiz_events")
	require.Len(t, db.execArgs, 5)
	assert.Equal(t, event.ID, db.execArgs[0])
	assert.Equal(t, &runID, db.execArgs[1])
	assert.Equal(t, "quiz_complete", db.execArgs[2])

	var payload map[string]any
	require.NoError(t, json.Unmarshal(db.execArgs[3].([]byte), &payload))
	assert.Equal(t, 4.5, payload["loft_inches"])
	assert.Equal(t, event.OccurredAt, db.execArgs[4])
}

func TestEventRepository_SaveWithoutRunID(t *testing.T) {
	db := &fakeDB{}
	repo := NewEventRepository(db)

	require.NoError(t, repo.Publish(context.Background(), entities.NewEvent(entities.EventQuizOpen, nil)))

	assert.Nil(t, db.execArgs[1])
}

func TestEventRepository_SaveError(t *testing.T) {
	repo := NewEventRepository(&fakeDB{execErr: errors.New("relation does not exist")})

	err := repo.Save(context.Background(), entities.NewEvent(entities.EventQuizOpen, nil))

	assert.ErrorContains(t, err, "save quiz event")
}

func TestEventRepository_CountByName(t *testing.T) {
	db := &fakeDB{rows: &fakeRows{data: [][2]any{
		{"quiz_open", int64(10)},
		{"quiz_complete", int64(4)},
	}}}
	repo := NewEventRepository(db)
	since := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	counts, err := repo.CountByName(context.Background(), since)

	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"quiz_open": 10, "quiz_complete": 4}, counts)
	assert.Equal(t, []any{since}, db.queryArgs)
}
