package memory

type EventType int

const (
	EventCardRevealed EventType = iota
	EventCardHidden
	EventPairMatched
	EventPairMismatched
	EventResetScheduled
	EventResetFired
	EventSelectionRejected
	EventGridComplete
)

func (t EventType) String() string {
	switch t {
	case EventCardRevealed:
		return "CardRevealed"
	case EventCardHidden:
		return "CardHidden"
	case EventPairMatched:
		return "PairMatched"
	case EventPairMismatched:
		return "PairMismatched"
	case EventResetScheduled:
		return "ResetScheduled"
	case EventResetFired:
		return "ResetFired"
	case EventSelectionRejected:
		return "SelectionRejected"
	case EventGridComplete:
		return "GridComplete"
	}
	return "Unknown"
}

// Event is an effect the grid reports to whoever renders it.
type Event struct {
	Type EventType
	// Cards are the indices of the cards involved, in selection order.
	Cards []int
	// Value is the value involved, when there is exactly one.
	Value Value
}
