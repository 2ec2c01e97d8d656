package memory

import "fmt"

// Value identifies the content of a card. Two cards match when their values
// are equal. The core never looks inside a value.
type Value string

// Kind is how a category's values are presented.
type Kind int

const (
	KindText Kind = iota
	KindImage
	KindSound
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindImage:
		return "image"
	case KindSound:
		return "sound"
	}
	return "unknown"
}

// ParseKind parses a kind string into a Kind.
// Valid kinds are: text, image, sound.
func ParseKind(kind string) (Kind, error) {
	switch kind {
	case "text":
		return KindText, nil
	case "image":
		return KindImage, nil
	case "sound":
		return KindSound, nil
	}
	return KindText, fmt.Errorf("unknown kind: %s", kind)
}

// Mode selects how a grid reacts to activations.
type Mode int

const (
	// ModeMatch is the full matching game.
	ModeMatch Mode = iota
	// ModePreview flips cards back and forth without matching.
	ModePreview
	// ModeStatic shows placeholder cards that ignore activation.
	ModeStatic
)

func (m Mode) String() string {
	switch m {
	case ModeMatch:
		return "match"
	case ModePreview:
		return "preview"
	case ModeStatic:
		return "static"
	}
	return "unknown"
}

// ParseMode parses a mode string into a Mode.
func ParseMode(mode string) (Mode, error) {
	switch mode {
	case "match":
		return ModeMatch, nil
	case "preview":
		return ModePreview, nil
	case "static":
		return ModeStatic, nil
	}
	return ModeMatch, fmt.Errorf("%w: %s", ErrUnknownMode, mode)
}

// ResolvePolicy decides what happens when a card is activated while a
// mismatched pair is waiting to be flipped back.
type ResolvePolicy int

const (
	// PolicyFlush flips the waiting pair back immediately and starts a new
	// selection with the activated card.
	PolicyFlush ResolvePolicy = iota
	// PolicyIgnore rejects activations until the waiting pair is flipped back.
	PolicyIgnore
	// PolicyLegacy lets the activated card overwrite the second selection and
	// schedules another reset. The overwritten card stays face-up.
	PolicyLegacy
)

func (p ResolvePolicy) String() string {
	switch p {
	case PolicyFlush:
		return "flush"
	case PolicyIgnore:
		return "ignore"
	case PolicyLegacy:
		return "legacy"
	}
	return "unknown"
}

// ParsePolicy parses a policy string into a ResolvePolicy.
func ParsePolicy(policy string) (ResolvePolicy, error) {
	switch policy {
	case "flush":
		return PolicyFlush, nil
	case "ignore":
		return PolicyIgnore, nil
	case "legacy":
		return PolicyLegacy, nil
	}
	return PolicyFlush, fmt.Errorf("%w: %s", ErrUnknownPolicy, policy)
}

// State is the position of a grid in the matching protocol.
type State int

const (
	// StateIdle means no card is selected.
	StateIdle State = iota
	// StateOneSelected means the first card of a turn is face-up.
	StateOneSelected
	// StateResolving means a mismatched pair is waiting to be flipped back.
	StateResolving
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateOneSelected:
		return "OneSelected"
	case StateResolving:
		return "Resolving"
	}
	return "Unknown"
}

// Speaker plays the sound identified by a value. Playback is fire-and-forget
// and implementations swallow missing or broken assets.
type Speaker interface {
	Play(value Value)
}

// Preloader is implemented by asset sources that can decode values before
// they are first shown or played.
type Preloader interface {
	Preload(values []Value)
}

// Stopper is implemented by speakers that can silence playback in progress.
type Stopper interface {
	Stop()
}

// Activatable is anything that reacts to a user activation.
type Activatable interface {
	Activate()
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (p ResolvePolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *ResolvePolicy) UnmarshalText(text []byte) error {
	parsed, err := ParsePolicy(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
