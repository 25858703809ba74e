package agentflow

import (
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode"

	"github.com/PabloGalante/agentlink/internal/domain"
)

const automationNameWords = 6

// Reducer applies at most one structural change to a state.
type Reducer struct {
	ids domain.IDSource
}

// NewReducer returns a Reducer drawing fresh identifiers from ids.
func NewReducer(ids domain.IDSource) Reducer {
	return Reducer{ids: ids}
}

// Reduce returns the state after applying intent. The input is never
// modified; when nothing applies the input is returned as is.
func (r Reducer) Reduce(state domain.State, intent domain.Intent, ent Entities, at time.Time) domain.State {
	if !ent.OK() {
		return state
	}

	next := state
	switch intent {
	case domain.IntentAddTask:
		next.Tasks = append(slices.Clip(state.Tasks), domain.Task{
			ID:    domain.TaskID(r.ids.NewID()),
			Title: ent.Title,
		})

	case domain.IntentCompleteTask:
		if ent.TaskIndex < 0 || ent.TaskIndex >= len(state.Tasks) || state.Tasks[ent.TaskIndex].Done {
			return state
		}
		next.Tasks = slices.Clone(state.Tasks)
		next.Tasks[ent.TaskIndex].Done = true

	case domain.IntentAddNote:
		next.Notes = append(slices.Clip(state.Notes), domain.Note{
			ID:        domain.NoteID(r.ids.NewID()),
			Content:   ent.Content,
			CreatedAt: at,
		})

	case domain.IntentDefineAutomation:
		next.Automations = append(slices.Clip(state.Automations), domain.Automation{
			ID:      domain.AutomationID(r.ids.NewID()),
			Name:    automationName(ent.Trigger, len(state.Automations)+1),
			Trigger: ent.Trigger,
			Action:  ent.Action,
		})

	default:
		return state
	}

	return next
}

// automationName derives a short title from the trigger, falling back to a
// numbered label when the trigger has nothing readable in it.
func automationName(trigger string, n int) string {
	words := strings.FieldsFunc(trigger, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
	if len(words) == 0 {
		return fmt.Sprintf("Automation %d", n)
	}
	if len(words) > automationNameWords {
		words = append(words[:automationNameWords], "…")
	}
	return "When " + strings.Join(words, " ")
}
