package agentflow

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PabloGalante/agentlink/internal/domain"
)

// predicate pairs an intent with the test that selects it.
type predicate struct {
	intent domain.Intent
	match  func(m *matchers, text string) bool
}

// predicates are evaluated top-down and the first match wins, so the order
// here is the tie break between overlapping phrasings.
var predicates = []predicate{
	{domain.IntentHelp, func(m *matchers, text string) bool {
		return m.contains(domain.IntentHelp, text)
	}},
	{domain.IntentCompleteTask, func(m *matchers, text string) bool {
		ref, ok := m.after(domain.IntentCompleteTask, text)
		return ok && cleanReference(ref) != ""
	}},
	{domain.IntentAddTask, func(m *matchers, text string) bool {
		return m.contains(domain.IntentAddTask, text)
	}},
	{domain.IntentAddNote, func(m *matchers, text string) bool {
		return m.contains(domain.IntentAddNote, text)
	}},
	{domain.IntentDefineAutomation, func(m *matchers, text string) bool {
		return m.leads(domain.IntentDefineAutomation, text)
	}},
}

// Classifier maps raw text to at most one intent.
type Classifier struct {
	m *matchers
}

// NewClassifier compiles the phrase hints of r.
func NewClassifier(r Registry) *Classifier {
	return &Classifier{m: newMatchers(r)}
}

// Classify returns the first intent whose predicate accepts text, or
// domain.IntentNone. The result depends only on text and the registry.
func (c *Classifier) Classify(text string) domain.Intent {
	norm := normalize(text)
	if norm == "" {
		return domain.IntentNone
	}
	for _, p := range predicates {
		if p.match(c.m, norm) {
			return p.intent
		}
	}
	return domain.IntentNone
}

// Classify is a one-shot helper for callers without a compiled Classifier.
func Classify(text string, r Registry) domain.Intent {
	return NewClassifier(r).Classify(text)
}

// normalize case-folds, trims and collapses runs of whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// matchers holds one compiled alternation per intent, built from the
// registry's trigger phrases.
type matchers struct {
	anywhere map[domain.Intent]*regexp.Regexp
	leading  map[domain.Intent]*regexp.Regexp
}

func newMatchers(r Registry) *matchers {
	m := &matchers{
		anywhere: make(map[domain.Intent]*regexp.Regexp),
		leading:  make(map[domain.Intent]*regexp.Regexp),
	}
	for _, d := range r {
		alt := phraseAlternation(d.Triggers)
		if alt == "" {
			continue
		}
		m.anywhere[d.Key] = regexp.MustCompile(`(?i)` + alt)
		m.leading[d.Key] = regexp.MustCompile(`(?i)^\s*` + alt)
	}
	return m
}

func (m *matchers) contains(intent domain.Intent, text string) bool {
	re, ok := m.anywhere[intent]
	return ok && re.MatchString(text)
}

func (m *matchers) leads(intent domain.Intent, text string) bool {
	re, ok := m.leading[intent]
	return ok && re.MatchString(text)
}

// after returns what follows the leftmost trigger of intent in text.
func (m *matchers) after(intent domain.Intent, text string) (string, bool) {
	re, ok := m.anywhere[intent]
	if !ok {
		return "", false
	}
	loc := re.FindStringIndex(text)
	if loc == nil {
		return "", false
	}
	return text[loc[1]:], true
}

// stripLeading removes a leading trigger of intent from text.
func (m *matchers) stripLeading(intent domain.Intent, text string) (string, bool) {
	re, ok := m.leading[intent]
	if !ok {
		return text, false
	}
	loc := re.FindStringIndex(text)
	if loc == nil {
		return text, false
	}
	return text[loc[1]:], true
}

// phraseAlternation turns trigger phrases into one regexp alternation.
// Words may be separated by any whitespace, and word boundaries are required
// wherever a phrase starts or ends with a word character.
func phraseAlternation(phrases []string) string {
	var alts []string
	for _, p := range phrases {
		words := strings.Fields(p)
		if len(words) == 0 {
			continue
		}
		for i, w := range words {
			words[i] = regexp.QuoteMeta(w)
		}
		expr := strings.Join(words, `\s+`)
		if first, _ := utf8.DecodeRuneInString(p); isWordRune(first) {
			expr = `\b` + expr
		}
		if last, _ := utf8.DecodeLastRuneInString(p); isWordRune(last) {
			expr += `\b`
		}
		alts = append(alts, expr)
	}
	if len(alts) == 0 {
		return ""
	}
	return `(?:` + strings.Join(alts, `|`) + `)`
}

func isWordRune(r rune) bool {
	return r == '_' || (r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r)))
}
