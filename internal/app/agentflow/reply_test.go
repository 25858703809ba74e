package agentflow_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/PabloGalante/agentlink/internal/app/agentflow"
	"github.com/PabloGalante/agentlink/internal/domain"
)

func TestHelpReplyListsEveryFunction(t *testing.T) {
	reply := agentflow.Synthesize(agentflow.DefaultRegistry, domain.IntentHelp, agentflow.Entities{TaskIndex: -1}, agentflow.CreateInitialState())

	for _, d := range agentflow.DefaultRegistry {
		assert.Contains(t, reply, d.Name)
		assert.Contains(t, reply, d.SamplePhrases[0])
	}
	assert.Equal(t, len(agentflow.DefaultRegistry)+1, len(strings.Split(reply, "\n")))
}

func TestFallbackReplyOnlySuggestsRegisteredPhrases(t *testing.T) {
	r := agentflow.Registry{agentflow.DefaultRegistry[0]}
	reply := agentflow.Synthesize(r, domain.IntentNone, agentflow.Entities{TaskIndex: -1}, agentflow.CreateInitialState())

	assert.Contains(t, reply, "remind me to buy milk")
	assert.NotContains(t, reply, "help")
	assert.NotContains(t, reply, "note:")
}

func TestTaskRepliesEchoTitleAndCount(t *testing.T) {
	one := stateWithTasks(domain.Task{ID: "1", Title: "buy milk"})
	reply := agentflow.Synthesize(agentflow.DefaultRegistry, domain.IntentAddTask, agentflow.Entities{Title: "buy milk", TaskIndex: -1}, one)
	assert.Contains(t, reply, `"buy milk"`)
	assert.Contains(t, reply, "1 open task.")

	two := stateWithTasks(domain.Task{ID: "1", Title: "a"}, domain.Task{ID: "2", Title: "b"}, domain.Task{ID: "3", Title: "c", Done: true})
	reply = agentflow.Synthesize(agentflow.DefaultRegistry, domain.IntentCompleteTask, agentflow.Entities{Title: "c", TaskIndex: 2}, two)
	assert.Contains(t, reply, `"c"`)
	assert.Contains(t, reply, "2 open tasks")

	reply = agentflow.Synthesize(agentflow.DefaultRegistry, domain.IntentCompleteTask,
		agentflow.Entities{Reference: "walk dog", TaskIndex: -1, Problem: agentflow.ProblemNotFound}, two)
	assert.Contains(t, reply, "couldn't find")
	assert.Contains(t, reply, `"walk dog"`)
}

func TestMalformedAutomationReplyShowsShape(t *testing.T) {
	reply := agentflow.Synthesize(agentflow.DefaultRegistry, domain.IntentDefineAutomation,
		agentflow.Entities{TaskIndex: -1, Problem: agentflow.ProblemMalformed}, agentflow.CreateInitialState())
	assert.Contains(t, reply, "when <trigger> then <action>")
}
