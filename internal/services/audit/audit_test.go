package audit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"inventra/internal/testutil"
)

func TestRecordAndList(t *testing.T) {
	ctx := context.Background()
	r := NewRecorder(testutil.NewDB(t), zap.NewNop().Sugar())

	r.Record(ctx, "u1", "", ActionLogin, nil)
	r.Record(ctx, "u1", "p1", ActionProductCreate, map[string]any{"name": "Widget"})
	r.Record(ctx, "u2", "", ActionLogin, nil)

	mine, err := r.ForUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, ActionProductCreate, mine[0].Action, "newest first")
	require.NotNil(t, mine[0].ProductID)
	assert.Equal(t, "p1", *mine[0].ProductID)
	assert.JSONEq(t, `{"name":"Widget"}`, string(mine[0].Metadata))

	all, err := r.Recent(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	none, err := r.ForUser(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestRecordNilRecorder(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() { r.Record(context.Background(), "u1", "", ActionLogin, nil) })
}
