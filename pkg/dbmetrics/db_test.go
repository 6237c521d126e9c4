package dbmetrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperation(t *testing.T) {
	assert.Equal(t, "select", operation("SELECT id FROM bookings"))
	assert.Equal(t, "insert", operation("  INSERT INTO slots (kind) VALUES ($1)"))
	assert.Equal(t, "update", operation("UPDATE bookings\nSET status = $1"))
	assert.Equal(t, "other", operation("VACUUM"))
	assert.Equal(t, "other", operation(""))
}

func TestGetExecutor_PrefersTransaction(t *testing.T) {
	db := &DB{}
	ctx := context.Background()

	assert.False(t, IsInTransaction(ctx))
	assert.Same(t, db, GetExecutor(ctx, db))

	tx := &SqlTxWrapper{}
	txCtx := WithTx(ctx, tx)

	assert.True(t, IsInTransaction(txCtx))
	assert.Same(t, tx, GetExecutor(txCtx, db))
}
