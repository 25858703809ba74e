package agentflow

import (
	"log/slog"
	"time"

	"github.com/PabloGalante/agentlink/internal/domain"
	"github.com/PabloGalante/agentlink/internal/observability"
)

// Dispatcher runs one turn: classify, extract, reduce, reply.
// It holds no session state; callers thread the State through every call and
// must not run two turns against the same snapshot.
type Dispatcher struct {
	registry   Registry
	classifier *Classifier
	extractor  *Extractor
	reducer    Reducer
	now        func() time.Time
	log        *slog.Logger
}

type Option func(*Dispatcher)

// WithRegistry replaces DefaultRegistry.
func WithRegistry(r Registry) Option {
	return func(d *Dispatcher) {
		d.registry = r
	}
}

// WithClock sets the source of turn timestamps.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) {
		d.now = now
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.log = l
	}
}

// NewDispatcher builds a dispatcher that draws identifiers from ids.
func NewDispatcher(ids domain.IDSource, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		registry: DefaultRegistry,
		now:      time.Now,
		log:      observability.Logger(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.classifier = NewClassifier(d.registry)
	d.extractor = NewExtractor(d.registry)
	d.reducer = NewReducer(ids)
	return d
}

// CreateInitialState returns a state with no tasks, notes or automations.
func CreateInitialState() domain.State {
	return domain.State{
		Tasks:       []domain.Task{},
		Notes:       []domain.Note{},
		Automations: []domain.Automation{},
	}
}

// Registry returns the catalog this dispatcher classifies against.
func (d *Dispatcher) Registry() Registry {
	return d.registry
}

// RunTurn handles one utterance against state. It never fails: requests
// that cannot be satisfied come back as a clarification with state unchanged.
func (d *Dispatcher) RunTurn(text string, state domain.State) domain.TurnResponse {
	at := d.now()

	intent := d.classifier.Classify(text)
	ent := d.extractor.Extract(intent, text, state)
	next := d.reducer.Reduce(state, intent, ent, at)
	reply := Synthesize(d.registry, intent, ent, next)

	executed := domain.IntentNone
	if intent == domain.IntentHelp || (!intent.IsNone() && ent.OK()) {
		executed = intent
	}

	d.log.Debug("turn dispatched",
		"intent", string(intent),
		"executed", string(executed),
		"problem", int(ent.Problem),
		"tasks", len(next.Tasks),
		"notes", len(next.Notes),
		"automations", len(next.Automations),
	)

	return domain.TurnResponse{
		Reply:    reply,
		State:    next,
		Executed: executed,
		At:       at,
	}
}
