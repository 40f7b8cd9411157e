package postgres_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-b2b-api/internal/infrastructure/postgres"
)

type recordingQuerier struct {
	execs []string
	err   error
}

func (q *recordingQuerier) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	q.execs = append(q.execs, sql)
	return pgconn.CommandTag{}, q.err
}

func (q *recordingQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("no usado")
}

func (q *recordingQuerier) QueryRow(context.Context, string, ...any) pgx.Row { return nil }

func TestMigrate_AplicaScriptsEnOrden(t *testing.T) {
	q := &recordingQuerier{}

	applied, err := postgres.Migrate(context.Background(), q)
	require.NoError(t, err)

	require.NotEmpty(t, applied)
	assert.Equal(t, "migrations/001_b2b_pricing.sql", applied[0])
	require.Len(t, q.execs, len(applied))
	assert.True(t, strings.Contains(q.execs[0], "ux_price_overrides_target"))
	assert.True(t, strings.Contains(q.execs[0], "COALESCE(customer_id, '')"))
}

func TestMigrate_PropagaError(t *testing.T) {
	q := &recordingQuerier{err: errors.New("sin conexión")}

	_, err := postgres.Migrate(context.Background(), q)
	assert.ErrorContains(t, err, "001_b2b_pricing.sql")
}
