package agentflow

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/PabloGalante/agentlink/internal/domain"
)

// Problem explains why extracted entities cannot be applied.
type Problem int

const (
	ProblemNone Problem = iota
	// ProblemEmpty means the trigger was found but nothing usable followed it.
	ProblemEmpty
	// ProblemNotFound means no task title matched the reference.
	ProblemNotFound
	// ProblemAlreadyDone means the only matching tasks are already done.
	ProblemAlreadyDone
	// ProblemMalformed means the automation did not split into trigger and action.
	ProblemMalformed
)

// Entities is the structured payload pulled out of one utterance.
type Entities struct {
	Title     string
	Reference string
	// TaskIndex is the position of the resolved task, or -1.
	TaskIndex int
	Content   string
	Trigger   string
	Action    string
	Problem   Problem
}

// OK reports whether the entities can be applied to the state.
func (e Entities) OK() bool {
	return e.Problem == ProblemNone
}

var (
	separatorThen = regexp.MustCompile(`(?i),|\bthen\b`)
	leadingThen   = regexp.MustCompile(`(?i)^\s*then\b`)
	leadingWith   = regexp.MustCompile(`(?i)^with\b`)
)

// Extractor pulls entities out of the raw, un-normalized text so that
// stored content keeps the casing the user typed.
type Extractor struct {
	m *matchers
}

// NewExtractor compiles the phrase hints of r.
func NewExtractor(r Registry) *Extractor {
	return &Extractor{m: newMatchers(r)}
}

// Extract returns the entities intent needs. The state is only read, to
// resolve task references.
func (e *Extractor) Extract(intent domain.Intent, text string, state domain.State) Entities {
	ent := Entities{TaskIndex: -1}

	switch intent {
	case domain.IntentAddTask:
		rest, _ := e.m.after(intent, text)
		ent.Title = cleanFragment(rest)
		if !readable(ent.Title) {
			ent.Problem = ProblemEmpty
		}

	case domain.IntentCompleteTask:
		rest, _ := e.m.after(intent, text)
		ent.Reference = cleanReference(rest)
		if ent.Reference == "" {
			// Unreachable through the classifier, which already demands a
			// reference; kept for direct Extract callers.
			ent.Problem = ProblemEmpty
			return ent
		}
		idx, done := resolveTask(state.Tasks, ent.Reference)
		switch {
		case idx < 0 && done:
			ent.Problem = ProblemAlreadyDone
		case idx < 0:
			ent.Problem = ProblemNotFound
		default:
			ent.TaskIndex = idx
			ent.Title = state.Tasks[idx].Title
		}

	case domain.IntentAddNote:
		content := strings.TrimSpace(text)
		if rest, ok := e.m.after(intent, text); ok {
			content = rest
		}
		ent.Content = cleanFragment(content)
		if !readable(ent.Content) {
			ent.Problem = ProblemEmpty
		}

	case domain.IntentDefineAutomation:
		trigger, action, ok := e.splitAutomation(text)
		if !ok {
			ent.Problem = ProblemMalformed
			return ent
		}
		ent.Trigger = trigger
		ent.Action = action
	}

	return ent
}

// splitAutomation splits "when X then Y" (or "when X, Y") at the first
// comma or standalone "then".
func (e *Extractor) splitAutomation(text string) (trigger, action string, ok bool) {
	body, _ := e.m.stripLeading(domain.IntentDefineAutomation, strings.TrimSpace(text))

	loc := separatorThen.FindStringIndex(body)
	if loc == nil {
		return "", "", false
	}
	trigger = cleanFragment(body[:loc[0]])
	action = body[loc[1]:]
	if body[loc[0]:loc[1]] == "," {
		action = leadingThen.ReplaceAllString(action, "")
	}
	action = cleanFragment(action)

	if trigger == "" || action == "" {
		return "", "", false
	}
	return trigger, action, true
}

// resolveTask finds the earliest open task whose title contains ref, case
// insensitively. When only done tasks match, it returns -1 and true.
func resolveTask(tasks []domain.Task, ref string) (int, bool) {
	needle := normalize(ref)
	matchedDone := false
	for i, t := range tasks {
		if !strings.Contains(normalize(t.Title), needle) {
			continue
		}
		if !t.Done {
			return i, false
		}
		matchedDone = true
	}
	return -1, matchedDone
}

// cleanFragment trims whitespace and separator punctuation around a fragment.
func cleanFragment(s string) string {
	s = strings.TrimLeft(strings.TrimSpace(s), ":;,-–— \t")
	s = strings.TrimRight(s, ",;: \t")
	return strings.TrimSpace(s)
}

// readable reports whether s holds at least one letter or digit.
func readable(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	}) >= 0
}

// cleanReference also drops a leading "with" ("done with the report") and
// closing punctuation.
func cleanReference(s string) string {
	s = cleanFragment(s)
	s = cleanFragment(leadingWith.ReplaceAllString(s, ""))
	return strings.TrimRight(s, ".!? ")
}
