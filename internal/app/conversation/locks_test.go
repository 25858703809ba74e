package conversation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/agentlink/internal/adapters/idgen"
	"github.com/PabloGalante/agentlink/internal/adapters/storage/memory"
	"github.com/PabloGalante/agentlink/internal/app/agentflow"
	"github.com/PabloGalante/agentlink/internal/domain"
)

func TestUnknownSessionsDoNotAllocateLocks(t *testing.T) {
	ctx := context.Background()
	ids := idgen.NewCounter("id-")
	svc := NewService(agentflow.NewDispatcher(ids), memory.NewSessionStore(), memory.NewMessageStore(), ids)

	for _, id := range []domain.SessionID{"ghost-1", "ghost-2", "ghost-3"} {
		_, err := svc.SendMessage(ctx, SendMessageInput{SessionID: id, Text: "help"})
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	}
	assert.Empty(t, svc.locks.locks)

	out, err := svc.StartSession(ctx, StartSessionInput{UserID: "u"})
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, SendMessageInput{SessionID: out.Session.ID, Text: "help"})
	require.NoError(t, err)
	assert.Len(t, svc.locks.locks, 1)
}
