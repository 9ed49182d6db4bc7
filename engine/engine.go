// Package engine owns a 3D lattice and advances it one generation at a time.
//
// The engine keeps no history and knows nothing of time or rendering. A
// presenter reads the current generation with CurrentGrid and decides when to
// call AdvanceGeneration.
package engine

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/sheikhrachel/go-gol3d/model"
	"github.com/sheikhrachel/go-gol3d/rules"
)

// Settings is the full engine configuration
type Settings struct {
	Width   int
	Height  int
	Depth   int
	Initial float64 // probability that a seeded cell is Alive
	Rule    rules.Rule

	// Step tuning; neither changes results
	Workers int
	Bounded bool
}

// Validate checks dimensions and rule bounds. Initial is clamped, not rejected.
func (s Settings) Validate() error {
	if err := model.ValidateDimensions(s.Width, s.Height, s.Depth); err != nil {
		return errors.Wrap(err, "[Validate]")
	}
	if err := s.Rule.Validate(); err != nil {
		return errors.Wrap(err, "[Validate]")
	}
	return nil
}

// needsReseed reports whether moving from s to next invalidates the grid
func (s Settings) needsReseed(next Settings) bool {
	return s.Width != next.Width || s.Height != next.Height || s.Depth != next.Depth ||
		s.Initial != next.Initial
}

func (s Settings) stepOptions() model.StepOptions {
	return model.StepOptions{Workers: s.Workers, Bounded: s.Bounded}
}

// Option customises an Engine
type Option func(*Engine)

// WithLogger replaces the default logger. A nil entry is ignored.
func WithLogger(log *logrus.Entry) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// Engine holds the current generation of a lattice.
//
// All methods are safe for concurrent use. Steps are serialised; readers of
// CurrentGrid are never blocked by a step in progress because the successor
// is built in a separate grid and swapped in when complete.
type Engine struct {
	stepMu sync.Mutex // serialises AdvanceGeneration

	mu         sync.RWMutex
	settings   Settings
	src        model.RandSource
	current    *model.Grid
	generation int

	log *logrus.Entry

	// stepped runs after a successor is computed and before it is swapped in
	stepped func()
}

// New validates settings and seeds the first generation from src
func New(settings Settings, src model.RandSource, opts ...Option) (*Engine, error) {
	if src == nil {
		return nil, errors.New("[New] nil randomness source")
	}
	if err := settings.Validate(); err != nil {
		return nil, errors.Wrap(err, "[New]")
	}

	e := &Engine{
		settings: settings,
		src:      src,
		log:      logrus.WithField("component", "engine"),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.reseedLocked(); err != nil {
		return nil, errors.Wrap(err, "[New]")
	}
	return e, nil
}

// reseedLocked replaces the grid with a random one. Caller holds mu.
func (e *Engine) reseedLocked() error {
	s := e.settings
	g, err := model.NewRandomGrid(s.Width, s.Height, s.Depth, s.Initial, e.src)
	if err != nil {
		return err
	}
	e.current = g
	e.generation = 0
	e.log.WithFields(logrus.Fields{
		"width":   s.Width,
		"height":  s.Height,
		"depth":   s.Depth,
		"initial": s.Initial,
		"alive":   g.CountLivingCells(),
	}).Debug("seeded grid")
	return nil
}

// Configure validates and applies new settings. A change of dimensions or
// initial probability reseeds the grid; any other change only affects later
// steps. On error the engine is left unchanged.
func (e *Engine) Configure(settings Settings) error {
	if err := settings.Validate(); err != nil {
		return errors.Wrap(err, "[Configure]")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	prev := e.settings
	e.settings = settings
	if !prev.needsReseed(settings) {
		e.log.WithField("rule", settings.Rule).Debug("configuration updated without reseed")
		return nil
	}
	if err := e.reseedLocked(); err != nil {
		e.settings = prev
		return errors.Wrap(err, "[Configure]")
	}
	e.log.Info("configuration changed, grid reseeded")
	return nil
}

// Reseed discards the current grid and seeds a new one with the current settings
func (e *Engine) Reseed() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return errors.Wrap(e.reseedLocked(), "[Reseed]")
}

// CurrentGrid returns the current generation. The grid is never modified.
func (e *Engine) CurrentGrid() *model.Grid {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.current
}

// Settings returns the active settings
func (e *Engine) Settings() Settings {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.settings
}

// Generation returns the number of steps since the grid was last seeded
func (e *Engine) Generation() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.generation
}

// AdvanceGeneration computes the successor of the current grid and makes it
// current. The previous grid stays readable by anyone holding it. A rule
// change made while a step is running applies from the next step.
func (e *Engine) AdvanceGeneration() *model.Grid {
	e.stepMu.Lock()
	defer e.stepMu.Unlock()

	e.mu.RLock()
	prev, settings := e.current, e.settings
	e.mu.RUnlock()

	next := prev.NextGeneration(settings.Rule, settings.stepOptions())
	if e.stepped != nil {
		e.stepped()
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.current != prev {
		// Reseeded while stepping; the reseeded grid wins.
		e.log.Debug("grid replaced during step, discarding successor")
		return e.current
	}
	e.current = next
	e.generation++
	e.log.WithFields(logrus.Fields{
		"generation": e.generation,
		"alive":      next.CountLivingCells(),
	}).Trace("advanced generation")
	return next
}
