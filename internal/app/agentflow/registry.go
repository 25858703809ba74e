package agentflow

import "github.com/PabloGalante/agentlink/internal/domain"

// Descriptor describes one capability of the agent.
type Descriptor struct {
	Key         domain.Intent
	Name        string
	Description string
	Icon        string

	// SamplePhrases are shown to users; the first one is the canonical usage.
	SamplePhrases []string

	// Triggers are the lowercase phrase hints the classifier looks for.
	Triggers []string
}

// Registry is the read-only catalog of descriptors, in display order.
type Registry []Descriptor

// DefaultRegistry is the catalog every session shares.
var DefaultRegistry = Registry{
	{
		Key:         domain.IntentAddTask,
		Name:        "Add Task",
		Description: "Capture something you need to do.",
		Icon:        "📝",
		SamplePhrases: []string{
			"remind me to buy milk",
			"add todo call the dentist",
			"todo: renew passport",
			"need to water the plants",
		},
		Triggers: []string{"remind me to", "add todo", "todo:", "need to"},
	},
	{
		Key:         domain.IntentCompleteTask,
		Name:        "Complete Task",
		Description: "Mark an open task as done.",
		Icon:        "✅",
		SamplePhrases: []string{
			"done buy milk",
			"finished call the dentist",
			"complete renew passport",
		},
		Triggers: []string{"done", "finished", "completed", "complete"},
	},
	{
		Key:         domain.IntentAddNote,
		Name:        "Add Note",
		Description: "Keep a thought or fact for later.",
		Icon:        "🗒️",
		SamplePhrases: []string{
			"note: the wifi password is on the fridge",
			"remember that Sam prefers tea",
			"jot down ideas for the offsite",
		},
		Triggers: []string{"note:", "remember that", "jot down"},
	},
	{
		Key:         domain.IntentDefineAutomation,
		Name:        "Define Automation",
		Description: "Sketch a trigger and action pair to operationalize later.",
		Icon:        "⚙️",
		SamplePhrases: []string{
			"when it rains then bring umbrella",
			"when I get home, turn on the lights",
		},
		Triggers: []string{"when"},
	},
	{
		Key:         domain.IntentHelp,
		Name:        "Help",
		Description: "List everything the agent can do.",
		Icon:        "💡",
		SamplePhrases: []string{
			"help",
			"what can you do?",
		},
		Triggers: []string{"help", "what can you do"},
	},
}

// Lookup returns the descriptor registered under key.
func (r Registry) Lookup(key domain.Intent) (Descriptor, bool) {
	for _, d := range r {
		if d.Key == key {
			return d, true
		}
	}
	return Descriptor{}, false
}

// Label is the tag shown next to a message that executed key.
func (r Registry) Label(key domain.Intent) string {
	d, ok := r.Lookup(key)
	if !ok {
		return "Custom Action"
	}
	return d.Icon + " " + d.Name
}

// Sample returns the canonical usage example for key, or "".
func (d Descriptor) Sample() string {
	if len(d.SamplePhrases) == 0 {
		return ""
	}
	return d.SamplePhrases[0]
}
