package memory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/agentlink/internal/adapters/storage/memory"
	"github.com/PabloGalante/agentlink/internal/domain"
)

func TestSessionStoreCopiesSessions(t *testing.T) {
	store := memory.NewSessionStore()
	sess := &domain.Session{ID: "s1", UserID: "u1", Title: "first"}
	require.NoError(t, store.CreateSession(sess))

	sess.Title = "changed outside"
	got, err := store.GetSession("s1")
	require.NoError(t, err)
	assert.Equal(t, "first", got.Title)

	got.Title = "updated"
	require.NoError(t, store.UpdateSession(got))
	again, err := store.GetSession("s1")
	require.NoError(t, err)
	assert.Equal(t, "updated", again.Title)
}

func TestSessionStoreErrors(t *testing.T) {
	store := memory.NewSessionStore()
	require.NoError(t, store.CreateSession(&domain.Session{ID: "s1"}))

	assert.ErrorIs(t, store.CreateSession(&domain.Session{ID: "s1"}), domain.ErrSessionExists)
	assert.ErrorIs(t, store.UpdateSession(&domain.Session{ID: "nope"}), domain.ErrSessionNotFound)

	_, err := store.GetSession("nope")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestListSessionsByUser(t *testing.T) {
	store := memory.NewSessionStore()
	for _, s := range []domain.Session{
		{ID: "a", UserID: "u1"},
		{ID: "b", UserID: "u2"},
		{ID: "c", UserID: "u1"},
		{ID: "d", UserID: "u1"},
	} {
		require.NoError(t, store.CreateSession(&s))
	}

	all, err := store.ListSessionsByUser("u1", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, domain.SessionID("a"), all[0].ID)
	assert.Equal(t, domain.SessionID("d"), all[2].ID)

	limited, err := store.ListSessionsByUser("u1", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestMessageStoreLimit(t *testing.T) {
	store := memory.NewMessageStore()
	for _, id := range []domain.MessageID{"1", "2", "3"} {
		require.NoError(t, store.AppendMessage(&domain.Message{ID: id, SessionID: "s"}))
	}

	last, err := store.GetMessagesBySession("s", 2)
	require.NoError(t, err)
	require.Len(t, last, 2)
	assert.Equal(t, domain.MessageID("2"), last[0].ID)
	assert.Equal(t, domain.MessageID("3"), last[1].ID)

	none, err := store.GetMessagesBySession("other", 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMessageStoreKeepsItsOwnCopies(t *testing.T) {
	store := memory.NewMessageStore()
	msg := &domain.Message{ID: "1", SessionID: "s", Text: "remind me to buy milk", Function: domain.IntentAddTask}
	require.NoError(t, store.AppendMessage(msg))

	msg.Text = "edited by the caller"
	got, err := store.GetMessagesBySession("s", 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "remind me to buy milk", got[0].Text)

	got[0].Function = domain.IntentNone
	again, err := store.GetMessagesBySession("s", 0)
	require.NoError(t, err)
	assert.Equal(t, domain.IntentAddTask, again[0].Function)
}
