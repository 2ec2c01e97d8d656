package memory

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/cbodonnell/memoryline/pkg/clock"
	"github.com/cbodonnell/memoryline/pkg/log"
	"github.com/cbodonnell/memoryline/pkg/queue"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

const (
	DefaultRows       = 4
	DefaultCols       = 4
	DefaultResetDelay = time.Second
)

// Grid is a board of cards with a two-slot comparison buffer.
type Grid struct {
	// id identifies the grid in logs.
	id uuid.UUID
	// rows and cols are the board dimensions.
	rows int
	cols int
	// cards is the board in row-major order.
	cards []*Card
	// mode is how the grid reacts to activations.
	mode Mode
	// policy decides what a third activation does while resolving.
	policy ResolvePolicy
	// first and second are the selection slots.
	first  *Card
	second *Card
	// pending holds the scheduled resets that have not fired yet.
	pending []clock.Task
	// resetDelay is how long a mismatched pair stays face-up.
	resetDelay time.Duration
	scheduler  clock.Scheduler
	speaker    Speaker
	events     queue.Queue[Event]
	logger     *log.Logger
}

// GridOptions configures a new Grid.
type GridOptions struct {
	// Rows and Cols are the board dimensions. Their product must be even.
	Rows int
	Cols int
	// Kind is the presentation of the category the values come from.
	Kind Kind
	// Values is the population values are dealt from. Ignored in ModeStatic.
	Values []Value
	// Mode selects static, preview or match behavior.
	Mode Mode
	// Policy decides what a third activation does while resolving.
	Policy ResolvePolicy
	// ResetDelay is how long a mismatched pair stays face-up. Zero means DefaultResetDelay.
	ResetDelay time.Duration
	// Rand is the shuffle source. Nil means a fresh unseeded source.
	Rand *rand.Rand
	// Scheduler runs the deferred reset. Nil means a new clock.TickScheduler.
	Scheduler clock.Scheduler
	// Speaker plays sound values when they are revealed. Optional.
	Speaker Speaker
	// Events receives the grid's effects. Optional.
	Events queue.Queue[Event]
}

// NewGrid deals a new board.
func NewGrid(opts GridOptions) (*Grid, error) {
	if opts.Rows <= 0 || opts.Cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, opts.Rows, opts.Cols)
	}
	cells := opts.Rows * opts.Cols
	if cells%2 != 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrOddGrid, opts.Rows, opts.Cols)
	}
	if opts.Mode < ModeMatch || opts.Mode > ModeStatic {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, opts.Mode)
	}
	if opts.Policy < PolicyFlush || opts.Policy > PolicyLegacy {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPolicy, opts.Policy)
	}

	values := make([]Value, cells)
	if opts.Mode != ModeStatic {
		dealt, err := Deal(opts.Values, cells, opts.Rand)
		if err != nil {
			return nil, fmt.Errorf("failed to deal cards: %w", err)
		}
		values = dealt
	}

	delay := opts.ResetDelay
	if delay <= 0 {
		delay = DefaultResetDelay
	}
	scheduler := opts.Scheduler
	if scheduler == nil {
		scheduler = clock.NewTickScheduler()
	}

	id := uuid.New()
	g := &Grid{
		id:         id,
		rows:       opts.Rows,
		cols:       opts.Cols,
		mode:       opts.Mode,
		policy:     opts.Policy,
		resetDelay: delay,
		scheduler:  scheduler,
		speaker:    opts.Speaker,
		events:     opts.Events,
		logger:     log.Default().With("grid", id.String()),
	}
	g.cards = lo.Map(values, func(v Value, i int) *Card {
		return &Card{index: i, kind: opts.Kind, value: v, grid: g}
	})

	if preloader, ok := g.speaker.(Preloader); ok && opts.Kind == KindSound && g.mode != ModeStatic {
		preloader.Preload(lo.Uniq(values))
	}

	g.logger.Debug("Dealt %dx%d %s grid (%s, policy %s)", g.rows, g.cols, opts.Kind, g.mode, g.policy)
	return g, nil
}

func (g *Grid) ID() uuid.UUID {
	return g.id
}

func (g *Grid) Rows() int {
	return g.rows
}

func (g *Grid) Cols() int {
	return g.cols
}

func (g *Grid) Mode() Mode {
	return g.mode
}

func (g *Grid) Scheduler() clock.Scheduler {
	return g.scheduler
}

// Cards returns the board in row-major order.
func (g *Grid) Cards() []*Card {
	return g.cards
}

// Card returns the card at index, or nil if there is none.
func (g *Grid) Card(index int) *Card {
	if index < 0 || index >= len(g.cards) {
		return nil
	}
	return g.cards[index]
}

// Values returns a copy of the dealt values in board order.
func (g *Grid) Values() []Value {
	return lo.Map(g.cards, func(c *Card, _ int) Value {
		return c.value
	})
}

// State derives the protocol state from the selection slots.
func (g *Grid) State() State {
	switch {
	case g.first == nil:
		return StateIdle
	case g.second == nil:
		return StateOneSelected
	default:
		return StateResolving
	}
}

// Selection returns the cards in the selection slots. Either may be nil.
func (g *Grid) Selection() (first, second *Card) {
	return g.first, g.second
}

// Pending reports whether a reset is scheduled.
func (g *Grid) Pending() bool {
	return lo.SomeBy(g.pending, func(t clock.Task) bool {
		return t.Pending()
	})
}

// Remaining returns the number of pairs not yet found.
func (g *Grid) Remaining() int {
	return lo.CountBy(g.cards, func(c *Card) bool {
		return !c.matched
	}) / 2
}

// Complete reports whether every pair has been found.
func (g *Grid) Complete() bool {
	return g.mode == ModeMatch && g.Remaining() == 0
}

// Activate handles a user activation of the card at index.
func (g *Grid) Activate(index int) error {
	card := g.Card(index)
	if card == nil {
		return fmt.Errorf("%w: %d", ErrNoSuchCard, index)
	}
	switch g.mode {
	case ModeStatic:
		g.logger.Trace("Ignoring activation of placeholder card %d", index)
	case ModePreview:
		card.Toggle()
	case ModeMatch:
		card.Activate()
	}
	return nil
}

// Close cancels any scheduled reset and silences the speaker if it supports
// it. The grid must not be used afterwards.
func (g *Grid) Close() {
	for _, t := range g.pending {
		t.Cancel()
	}
	g.pending = nil
	if stopper, ok := g.speaker.(Stopper); ok {
		stopper.Stop()
	}
}

// beforeSelect applies the resolve policy before a face-down card is revealed.
// It returns false if the card must stay face-down.
func (g *Grid) beforeSelect(card *Card) bool {
	if g.State() != StateResolving {
		return true
	}
	switch g.policy {
	case PolicyIgnore:
		g.logger.Debug("Rejected card %d while resolving", card.index)
		g.emit(Event{Type: EventSelectionRejected, Cards: []int{card.index}})
		return false
	case PolicyFlush:
		g.logger.Debug("Flushing pending reset for card %d", card.index)
		for _, t := range g.pending {
			t.Cancel()
		}
		g.pending = nil
		g.resolveMismatch()
	}
	return true
}

// reportSelected advances the protocol after card was revealed.
func (g *Grid) reportSelected(card *Card) {
	switch g.State() {
	case StateIdle:
		g.first = card
		return
	case StateOneSelected:
		g.second = card
	case StateResolving:
		// Only reachable under PolicyLegacy: the previous second card is
		// dropped from the buffer and stays face-up.
		g.logger.Warn("Card %d overwrote card %d while a reset is pending", card.index, g.second.index)
		g.second = card
	}
	g.compare()
}

func (g *Grid) compare() {
	first, second := g.first, g.second
	pair := []int{first.index, second.index}

	if first.value == second.value {
		first.matched = true
		second.matched = true
		g.first, g.second = nil, nil
		g.logger.Debug("Matched cards %d and %d", first.index, second.index)
		g.emit(Event{Type: EventPairMatched, Cards: pair, Value: first.value})
		if g.Complete() {
			g.logger.Info("All pairs found")
			g.emit(Event{Type: EventGridComplete})
		}
		return
	}

	g.logger.Debug("Mismatched cards %d and %d, flipping back in %s", first.index, second.index, g.resetDelay)
	g.emit(Event{Type: EventPairMismatched, Cards: pair})
	g.prunePending()
	g.pending = append(g.pending, g.scheduler.AfterFunc(g.resetDelay, g.resolveMismatch))
	g.emit(Event{Type: EventResetScheduled, Cards: pair})
}

// resolveMismatch flips back whatever is in the selection slots and empties them.
func (g *Grid) resolveMismatch() {
	g.prunePending()
	first, second := g.first, g.second
	if first == nil || second == nil {
		g.logger.Trace("Reset fired with nothing to resolve")
		return
	}
	g.first, g.second = nil, nil
	first.Reset()
	second.Reset()
	g.emit(Event{Type: EventResetFired, Cards: []int{first.index, second.index}})
}

func (g *Grid) prunePending() {
	g.pending = lo.Filter(g.pending, func(t clock.Task, _ int) bool {
		return t.Pending()
	})
}

func (g *Grid) play(v Value) {
	if g.speaker == nil {
		return
	}
	g.speaker.Play(v)
}

func (g *Grid) emit(e Event) {
	if g.events == nil {
		return
	}
	g.events.Enqueue(e)
}
