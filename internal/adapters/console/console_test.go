package console_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/agentlink/internal/adapters/console"
	"github.com/PabloGalante/agentlink/internal/adapters/idgen"
	"github.com/PabloGalante/agentlink/internal/adapters/storage/memory"
	"github.com/PabloGalante/agentlink/internal/app/agentflow"
	"github.com/PabloGalante/agentlink/internal/app/conversation"
	"github.com/PabloGalante/agentlink/internal/app/workspace"
)

func newConsole(t *testing.T) *console.Console {
	t.Helper()

	ids := idgen.NewCounter("id-")
	sessions := memory.NewSessionStore()
	svc := conversation.NewService(agentflow.NewDispatcher(ids), sessions, memory.NewMessageStore(), ids)
	return console.New(svc, workspace.NewService(sessions), "console-user")
}

func TestConsoleChat(t *testing.T) {
	in := strings.NewReader(strings.Join([]string{
		"remind me to buy milk",
		"",
		"note: milk is in aisle 4",
		"done buy milk",
		"asdkjasd",
		"/state",
		"/quit",
		"help",
	}, "\n"))
	var out bytes.Buffer

	require.NoError(t, newConsole(t).Run(context.Background(), in, &out))

	got := out.String()
	assert.Contains(t, got, conversation.DefaultWelcome)
	assert.Contains(t, got, `Added "buy milk" to your tasks.`)
	assert.Contains(t, got, "[📝 Add Task]")
	assert.Contains(t, got, "[✅ Complete Task]")
	assert.Contains(t, got, "I'm not sure how to handle that yet.")
	assert.Contains(t, got, "Open Tasks:\n  Nothing queued")
	assert.Contains(t, got, "Completed:\n  - buy milk")
	assert.Contains(t, got, "  - milk is in aisle 4 (")
	assert.NotContains(t, got, "Here's what I can do", "input after /quit must be ignored")
}

func TestConsoleStopsAtEOF(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, newConsole(t).Run(context.Background(), strings.NewReader("/functions"), &out))

	for _, d := range agentflow.DefaultRegistry {
		assert.Contains(t, out.String(), d.Name)
	}
}
