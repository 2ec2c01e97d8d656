package memory

import (
	"testing"
	"time"

	"github.com/cbodonnell/memoryline/pkg/clock"
	"github.com/cbodonnell/memoryline/pkg/queue"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSpeaker struct {
	mock.Mock
}

func (m *mockSpeaker) Play(v Value) {
	m.Called(v)
}

// mockManagedSpeaker also preloads and stops.
type mockManagedSpeaker struct {
	mockSpeaker
}

func (m *mockManagedSpeaker) Preload(values []Value) {
	m.Called(values)
}

func (m *mockManagedSpeaker) Stop() {
	m.Called()
}

type testGrid struct {
	*Grid
	clock  *clock.TickScheduler
	events *queue.InMemoryQueue[Event]
}

func newTestGrid(t *testing.T, opts GridOptions) *testGrid {
	t.Helper()
	s := clock.NewTickScheduler()
	events := queue.NewInMemoryQueue[Event]()
	if opts.Rows == 0 {
		opts.Rows, opts.Cols = 3, 4
	}
	if opts.Values == nil {
		opts.Values = textPairs()
	}
	if opts.Rand == nil {
		opts.Rand = NewSeededRand(42)
	}
	opts.Scheduler = s
	opts.Events = events
	g, err := NewGrid(opts)
	require.NoError(t, err)
	return &testGrid{Grid: g, clock: s, events: events}
}

// matchingPair returns the indices of two cards with the same value.
func (g *testGrid) matchingPair() (int, int) {
	values := g.Values()
	for i := range values {
		for j := i + 1; j < len(values); j++ {
			if values[i] == values[j] {
				return i, j
			}
		}
	}
	panic("no matching pair")
}

// mismatchedPair returns the indices of two face-down cards with different values,
// skipping the given indices.
func (g *testGrid) mismatchedPair(skip ...int) (int, int) {
	values := g.Values()
	for i := range values {
		if lo.Contains(skip, i) || g.Card(i).FaceUp() {
			continue
		}
		for j := i + 1; j < len(values); j++ {
			if lo.Contains(skip, j) || g.Card(j).FaceUp() {
				continue
			}
			if values[i] != values[j] {
				return i, j
			}
		}
	}
	panic("no mismatched pair")
}

func (g *testGrid) eventTypes() []EventType {
	return lo.Map(g.events.ReadAllMessages(), func(e Event, _ int) EventType {
		return e.Type
	})
}

func faceUpIndices(g *Grid) []int {
	return lo.FilterMap(g.Cards(), func(c *Card, _ int) (int, bool) {
		return c.Index(), c.FaceUp()
	})
}

func TestNewGrid_errors(t *testing.T) {
	tests := []struct {
		name    string
		opts    GridOptions
		wantErr error
	}{
		{name: "zero rows", opts: GridOptions{Rows: 0, Cols: 4, Values: textPairs()}, wantErr: ErrInvalidSize},
		{name: "odd cells", opts: GridOptions{Rows: 3, Cols: 3, Values: textPairs()}, wantErr: ErrOddGrid},
		{name: "catalog too small", opts: GridOptions{Rows: 4, Cols: 4, Values: textPairs()}, wantErr: ErrCatalogTooSmall},
		{name: "unknown mode", opts: GridOptions{Rows: 3, Cols: 4, Values: textPairs(), Mode: Mode(9)}, wantErr: ErrUnknownMode},
		{name: "unknown policy", opts: GridOptions{Rows: 3, Cols: 4, Values: textPairs(), Policy: ResolvePolicy(9)}, wantErr: ErrUnknownPolicy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGrid(tt.opts)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, g)
		})
	}
}

func TestGrid_firstSelection(t *testing.T) {
	g := newTestGrid(t, GridOptions{})

	require.NoError(t, g.Activate(3))

	assert.Equal(t, StateOneSelected, g.State())
	assert.Equal(t, []int{3}, faceUpIndices(g.Grid))
	first, second := g.Selection()
	assert.Same(t, g.Card(3), first)
	assert.Nil(t, second)
	assert.Equal(t, g.Card(3).Value(), g.Card(3).Displayed())
	assert.Equal(t, []EventType{EventCardRevealed}, g.eventTypes())
}

func TestGrid_activateFaceUpIsNoop(t *testing.T) {
	g := newTestGrid(t, GridOptions{})

	require.NoError(t, g.Activate(0))
	g.events.ClearQueue()
	require.NoError(t, g.Activate(0))

	assert.Equal(t, StateOneSelected, g.State())
	assert.True(t, g.Card(0).FaceUp())
	assert.Equal(t, g.Card(0).Value(), g.Card(0).Displayed())
	assert.Empty(t, g.eventTypes())
}

func TestGrid_match(t *testing.T) {
	g := newTestGrid(t, GridOptions{})
	i, j := g.matchingPair()

	require.NoError(t, g.Activate(i))
	require.NoError(t, g.Activate(j))

	assert.Equal(t, StateIdle, g.State())
	assert.False(t, g.Pending())
	assert.Equal(t, 0, g.clock.Len())
	assert.True(t, g.Card(i).Matched())
	assert.True(t, g.Card(j).Matched())
	assert.Equal(t, 5, g.Remaining())

	g.clock.Advance(10 * time.Second)
	assert.True(t, g.Card(i).FaceUp())
	assert.True(t, g.Card(j).FaceUp())
	assert.Equal(t, []EventType{EventCardRevealed, EventCardRevealed, EventPairMatched}, g.eventTypes())
}

func TestGrid_mismatch(t *testing.T) {
	g := newTestGrid(t, GridOptions{})
	i, j := g.mismatchedPair()

	require.NoError(t, g.Activate(i))
	require.NoError(t, g.Activate(j))

	assert.Equal(t, StateResolving, g.State())
	assert.True(t, g.Pending())
	assert.Equal(t, g.Card(i).Value(), g.Card(i).Displayed())
	assert.Equal(t, g.Card(j).Value(), g.Card(j).Displayed())
	assert.NotEqual(t, g.Card(i).Displayed(), g.Card(j).Displayed())

	g.clock.Advance(DefaultResetDelay / 2)
	assert.Equal(t, StateResolving, g.State())
	assert.Equal(t, []int{i, j}, faceUpIndices(g.Grid))

	g.clock.Advance(DefaultResetDelay / 2)
	assert.Equal(t, StateIdle, g.State())
	assert.False(t, g.Pending())
	assert.Empty(t, faceUpIndices(g.Grid))
	assert.Equal(t, Value(""), g.Card(i).Displayed())
	assert.Equal(t, Value(""), g.Card(j).Displayed())
	assert.Equal(t, []EventType{
		EventCardRevealed, EventCardRevealed, EventPairMismatched, EventResetScheduled,
		EventCardHidden, EventCardHidden, EventResetFired,
	}, g.eventTypes())
}

func TestGrid_customResetDelay(t *testing.T) {
	g := newTestGrid(t, GridOptions{ResetDelay: 3 * time.Second})
	i, j := g.mismatchedPair()
	require.NoError(t, g.Activate(i))
	require.NoError(t, g.Activate(j))

	g.clock.Advance(2 * time.Second)
	assert.Equal(t, StateResolving, g.State())
	g.clock.Advance(time.Second)
	assert.Equal(t, StateIdle, g.State())
}

func TestGrid_concreteScenario(t *testing.T) {
	g := newTestGrid(t, GridOptions{Rows: 3, Cols: 4, Rand: NewSeededRand(42)})

	assert.Equal(t, map[Value]int{
		"a / 1": 2, "b / 2": 2, "c / 3": 2, "d / 4": 2, "e / 5": 2, "f / 6": 2,
	}, lo.CountValues(g.Values()))

	require.NoError(t, g.Activate(0))
	require.NoError(t, g.Activate(1))

	if g.Card(0).Value() == g.Card(1).Value() {
		assert.True(t, g.Card(0).FaceUp())
		assert.True(t, g.Card(1).FaceUp())
		assert.Equal(t, StateIdle, g.State())
		return
	}
	assert.True(t, g.Pending())
	g.clock.Advance(DefaultResetDelay + time.Millisecond)
	assert.False(t, g.Card(0).FaceUp())
	assert.False(t, g.Card(1).FaceUp())
	assert.Equal(t, StateIdle, g.State())
}

func TestGrid_resolvePolicies(t *testing.T) {
	tests := []struct {
		name        string
		policy      ResolvePolicy
		wantState   State
		wantFaceUp  func(a, b, c int) []int
		wantPending bool
	}{
		{
			name:        "flush flips the pair back and starts a new turn",
			policy:      PolicyFlush,
			wantState:   StateOneSelected,
			wantFaceUp:  func(a, b, c int) []int { return []int{c} },
			wantPending: false,
		},
		{
			name:        "ignore rejects the third card",
			policy:      PolicyIgnore,
			wantState:   StateResolving,
			wantFaceUp:  func(a, b, c int) []int { return []int{a, b} },
			wantPending: true,
		},
		{
			name:        "legacy overwrites the second slot",
			policy:      PolicyLegacy,
			wantState:   StateResolving,
			wantFaceUp:  func(a, b, c int) []int { return []int{a, b, c} },
			wantPending: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGrid(t, GridOptions{Policy: tt.policy})
			a, b := g.mismatchedPair()
			require.NoError(t, g.Activate(a))
			require.NoError(t, g.Activate(b))

			// a card that matches neither a nor b, so legacy schedules another reset
			c := lo.IndexOf(lo.Map(g.Values(), func(v Value, i int) bool {
				return i != a && i != b && v != g.Card(a).Value() && v != g.Card(b).Value()
			}), true)
			require.NotEqual(t, -1, c)
			require.NoError(t, g.Activate(c))

			assert.Equal(t, tt.wantState, g.State())
			assert.ElementsMatch(t, tt.wantFaceUp(a, b, c), faceUpIndices(g.Grid))
			assert.Equal(t, tt.wantPending, g.Pending())
		})
	}
}

func TestGrid_ignorePolicyEmitsRejection(t *testing.T) {
	g := newTestGrid(t, GridOptions{Policy: PolicyIgnore})
	a, b := g.mismatchedPair()
	require.NoError(t, g.Activate(a))
	require.NoError(t, g.Activate(b))
	c, _ := g.mismatchedPair(a, b)
	g.events.ClearQueue()

	require.NoError(t, g.Activate(c))
	assert.Equal(t, []EventType{EventSelectionRejected}, g.eventTypes())

	g.clock.Advance(DefaultResetDelay)
	require.NoError(t, g.Activate(c))
	assert.Equal(t, StateOneSelected, g.State())
}

// The legacy policy keeps the defect of the original sample: a third card
// opened while a reset is pending replaces the second selection, so the
// replaced card is never flipped back and the board can no longer be cleared.
func TestGrid_legacyPolicyStrandsCard(t *testing.T) {
	g := newTestGrid(t, GridOptions{Policy: PolicyLegacy})
	a, b := g.mismatchedPair()
	require.NoError(t, g.Activate(a))
	require.NoError(t, g.Activate(b))

	c := lo.IndexOf(lo.Map(g.Values(), func(v Value, i int) bool {
		return i != a && i != b && v != g.Card(a).Value() && v != g.Card(b).Value()
	}), true)
	require.NoError(t, g.Activate(c))

	g.clock.Advance(DefaultResetDelay)
	assert.Equal(t, StateIdle, g.State())
	assert.False(t, g.Card(a).FaceUp())
	assert.False(t, g.Card(c).FaceUp())
	assert.True(t, g.Card(b).FaceUp(), "overwritten card stays face-up")
	assert.False(t, g.Card(b).Matched())

	g.clock.Advance(DefaultResetDelay)
	assert.True(t, g.Card(b).FaceUp())
	assert.False(t, g.Pending())

	require.NoError(t, g.Activate(b))
	assert.Equal(t, StateIdle, g.State(), "stranded card cannot be selected again")
}

func TestGrid_complete(t *testing.T) {
	g := newTestGrid(t, GridOptions{})
	byValue := lo.GroupBy(lo.Range(len(g.Cards())), func(i int) Value {
		return g.Card(i).Value()
	})
	for _, idx := range byValue {
		require.Len(t, idx, 2)
		require.NoError(t, g.Activate(idx[0]))
		require.NoError(t, g.Activate(idx[1]))
	}

	assert.True(t, g.Complete())
	assert.Equal(t, 0, g.Remaining())
	assert.Contains(t, g.eventTypes(), EventGridComplete)
}

func TestGrid_soundCardsPlay(t *testing.T) {
	speaker := &mockSpeaker{}
	g := newTestGrid(t, GridOptions{
		Kind:    KindSound,
		Values:  []Value{"cat.wav", "dog.wav", "cow.wav", "owl.wav", "pig.wav", "hen.wav"},
		Speaker: speaker,
	})
	speaker.On("Play", g.Card(0).Value()).Once()

	require.NoError(t, g.Activate(0))
	require.NoError(t, g.Activate(0))

	speaker.AssertExpectations(t)
}

func TestGrid_textCardsAreSilent(t *testing.T) {
	speaker := &mockSpeaker{}
	g := newTestGrid(t, GridOptions{Kind: KindText, Speaker: speaker})

	require.NoError(t, g.Activate(0))

	speaker.AssertNotCalled(t, "Play", mock.Anything)
}

func TestGrid_previewMode(t *testing.T) {
	g := newTestGrid(t, GridOptions{Mode: ModePreview})
	i, j := g.mismatchedPair()

	require.NoError(t, g.Activate(i))
	require.NoError(t, g.Activate(j))
	assert.Equal(t, StateIdle, g.State())
	assert.ElementsMatch(t, []int{i, j}, faceUpIndices(g.Grid))
	assert.False(t, g.Pending())

	require.NoError(t, g.Activate(i))
	assert.Equal(t, []int{j}, faceUpIndices(g.Grid))
	assert.False(t, g.Complete())
}

func TestGrid_staticMode(t *testing.T) {
	g := newTestGrid(t, GridOptions{Mode: ModeStatic, Values: []Value{}, Rows: 4, Cols: 4})

	require.NoError(t, g.Activate(5))
	assert.Empty(t, faceUpIndices(g.Grid))
	assert.Len(t, g.Cards(), 16)
	assert.Equal(t, "5", g.Card(5).Label())
	assert.Empty(t, g.eventTypes())
}

func TestGrid_activateOutOfRange(t *testing.T) {
	g := newTestGrid(t, GridOptions{})
	assert.ErrorIs(t, g.Activate(-1), ErrNoSuchCard)
	assert.ErrorIs(t, g.Activate(12), ErrNoSuchCard)
}

func TestGrid_Close(t *testing.T) {
	g := newTestGrid(t, GridOptions{})
	i, j := g.mismatchedPair()
	require.NoError(t, g.Activate(i))
	require.NoError(t, g.Activate(j))

	g.Close()
	g.clock.Advance(time.Minute)

	assert.False(t, g.Pending())
	assert.True(t, g.Card(i).FaceUp())
}

func TestGrid_independentInstances(t *testing.T) {
	population := append(textPairs(), "g / 7", "h / 8", "i / 9", "j / 10")
	first, err := NewGrid(GridOptions{Rows: 4, Cols: 4, Values: population})
	require.NoError(t, err)
	second, err := NewGrid(GridOptions{Rows: 4, Cols: 4, Values: population})
	require.NoError(t, err)

	assert.NotEqual(t, first.ID(), second.ID())
	assert.NotEqual(t, first.Values(), second.Values(), "each grid gets its own shuffle")
	assert.NotSame(t, first.Card(0), second.Card(0))

	require.NoError(t, first.Activate(0))
	assert.Equal(t, StateOneSelected, first.State())
	assert.Equal(t, StateIdle, second.State())
	assert.False(t, second.Card(0).FaceUp())
}

func TestGrid_differentSeedsDealDifferently(t *testing.T) {
	population := append(textPairs(), "g / 7", "h / 8", "i / 9", "j / 10")
	deal := func(seed uint64) []Value {
		g, err := NewGrid(GridOptions{Rows: 4, Cols: 4, Values: population, Rand: NewSeededRand(seed)})
		require.NoError(t, err)
		return g.Values()
	}

	assert.Equal(t, deal(1), deal(1))
	assert.NotEqual(t, deal(1), deal(2))
}

func TestGrid_PendingDoesNotMutate(t *testing.T) {
	g := newTestGrid(t, GridOptions{})
	i, j := g.mismatchedPair()
	require.NoError(t, g.Activate(i))
	require.NoError(t, g.Activate(j))
	require.Len(t, g.pending, 1)

	require.True(t, g.pending[0].Cancel())

	assert.False(t, g.Pending())
	assert.False(t, g.Pending())
	assert.Len(t, g.pending, 1)
}

func TestGrid_speakerLifecycle(t *testing.T) {
	speaker := &mockManagedSpeaker{}
	speaker.On("Preload", mock.Anything).Return()
	speaker.On("Stop").Return()

	g := newTestGrid(t, GridOptions{Kind: KindSound, Speaker: speaker})
	speaker.AssertCalled(t, "Preload", lo.Uniq(g.Values()))
	speaker.AssertNotCalled(t, "Stop")

	g.Close()
	speaker.AssertNumberOfCalls(t, "Stop", 1)
}

func TestGrid_textGridDoesNotPreloadSounds(t *testing.T) {
	speaker := &mockManagedSpeaker{}
	speaker.On("Stop").Return()

	g := newTestGrid(t, GridOptions{Kind: KindText, Speaker: speaker})
	g.Close()

	speaker.AssertNotCalled(t, "Preload", mock.Anything)
	speaker.AssertNumberOfCalls(t, "Stop", 1)
}

func TestCard_Reset(t *testing.T) {
	g := newTestGrid(t, GridOptions{})
	card := g.Card(2)

	card.Reset()
	assert.False(t, card.FaceUp())
	assert.Empty(t, g.eventTypes())

	require.NoError(t, g.Activate(2))
	card.Reset()
	card.Reset()
	assert.False(t, card.FaceUp())
	assert.Equal(t, Value(""), card.Displayed())
	assert.Equal(t, []EventType{EventCardRevealed, EventCardHidden}, g.eventTypes())
}
