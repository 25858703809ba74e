package agentflow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/PabloGalante/agentlink/internal/app/agentflow"
	"github.com/PabloGalante/agentlink/internal/domain"
)

func TestRegistryKeysAreUniqueAndComplete(t *testing.T) {
	seen := map[domain.Intent]bool{}
	for _, d := range agentflow.DefaultRegistry {
		assert.False(t, seen[d.Key], "duplicate key %s", d.Key)
		seen[d.Key] = true
		assert.NotEmpty(t, d.Name)
		assert.NotEmpty(t, d.Description)
		assert.NotEmpty(t, d.Icon)
		assert.NotEmpty(t, d.SamplePhrases)
		assert.NotEmpty(t, d.Triggers)
	}
	for _, key := range []domain.Intent{
		domain.IntentHelp, domain.IntentAddTask, domain.IntentCompleteTask,
		domain.IntentAddNote, domain.IntentDefineAutomation,
	} {
		assert.True(t, seen[key], "missing %s", key)
	}
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "📝 Add Task", agentflow.DefaultRegistry.Label(domain.IntentAddTask))
	assert.Equal(t, "Custom Action", agentflow.DefaultRegistry.Label("teleport"))

	_, ok := agentflow.DefaultRegistry.Lookup(domain.IntentNone)
	assert.False(t, ok)
}
