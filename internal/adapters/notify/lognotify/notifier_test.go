package lognotify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"pet-social/internal/ports/notify"
)

func TestNotifyLogs(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	n := New(zap.New(core))

	n.Notify(context.Background(), 3, notify.Payload{Kind: notify.KindFollow, Message: "new follower"})

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, int64(3), fields["user_id"])
	assert.Equal(t, "follow", fields["kind"])
}
