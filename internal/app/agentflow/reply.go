package agentflow

import (
	"fmt"
	"strings"

	"github.com/PabloGalante/agentlink/internal/domain"
)

// Synthesize writes the reply for one turn. It echoes the extracted entities
// so the user can check what was understood.
func Synthesize(r Registry, intent domain.Intent, ent Entities, next domain.State) string {
	switch intent {
	case domain.IntentHelp:
		return helpReply(r)

	case domain.IntentAddTask:
		if !ent.OK() {
			return fmt.Sprintf("What should I remind you to do? Try %q.", sampleFor(r, intent, "remind me to buy milk"))
		}
		return fmt.Sprintf("Added %q to your tasks. You now have %s.", ent.Title, openTasks(next))

	case domain.IntentCompleteTask:
		switch ent.Problem {
		case ProblemNone:
			return fmt.Sprintf("Nice work! Marked %q as done. You now have %s.", ent.Title, openTasks(next))
		case ProblemAlreadyDone:
			return fmt.Sprintf("Every task matching %q is already done. You have %s.", ent.Reference, openTasks(next))
		case ProblemNotFound:
			return fmt.Sprintf("I couldn't find a task matching %q. You have %s.", ent.Reference, openTasks(next))
		default:
			return fmt.Sprintf("Which task did you finish? Try %q.", sampleFor(r, intent, "done buy milk"))
		}

	case domain.IntentAddNote:
		if !ent.OK() {
			return fmt.Sprintf("What would you like me to note? Try %q.", sampleFor(r, intent, "note: the wifi password is on the fridge"))
		}
		return fmt.Sprintf("Saved your note: %q. You now have %s.", ent.Content, count(len(next.Notes), "note", "notes"))

	case domain.IntentDefineAutomation:
		if !ent.OK() {
			return fmt.Sprintf("I can save that automation if you phrase it as \"when <trigger> then <action>\", for example %q.",
				sampleFor(r, intent, "when it rains then bring umbrella"))
		}
		name := ""
		if n := len(next.Automations); n > 0 {
			name = next.Automations[n-1].Name
		}
		return fmt.Sprintf("Saved automation %q: when %s, then %s. You now have %s.",
			name, ent.Trigger, ent.Action, count(len(next.Automations), "automation", "automations"))
	}

	return fallbackReply(r)
}

func helpReply(r Registry) string {
	var b strings.Builder
	b.WriteString("Here's what I can do:")
	for _, d := range r {
		fmt.Fprintf(&b, "\n- %s %s: %s", d.Icon, d.Name, d.Description)
		if s := d.Sample(); s != "" {
			fmt.Fprintf(&b, " Try %q.", s)
		}
	}
	return b.String()
}

// fallbackReply only suggests phrasings that the registry can handle.
func fallbackReply(r Registry) string {
	var samples []string
	hasHelp := false
	for _, d := range r {
		if d.Key == domain.IntentHelp {
			hasHelp = true
			continue
		}
		if s := d.Sample(); s != "" {
			samples = append(samples, fmt.Sprintf("%q", s))
		}
	}

	msg := "I'm not sure how to handle that yet."
	if len(samples) > 0 {
		msg += " Try something like " + strings.Join(samples, ", ") + "."
	}
	if hasHelp {
		msg += ` Say "help" to see everything I can do.`
	}
	return msg
}

func sampleFor(r Registry, intent domain.Intent, def string) string {
	if d, ok := r.Lookup(intent); ok && d.Sample() != "" {
		return d.Sample()
	}
	return def
}

func openTasks(s domain.State) string {
	return count(s.OpenTasks(), "open task", "open tasks")
}

func count(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return fmt.Sprintf("%d %s", n, many)
}
