package flow

type GameMode int

const (
	GameModeMenu GameMode = iota
	GameModePlay
	GameModeComplete
	GameModeError
)

func (m GameMode) String() string {
	switch m {
	case GameModeMenu:
		return "Menu"
	case GameModePlay:
		return "Play"
	case GameModeComplete:
		return "Complete"
	case GameModeError:
		return "Error"
	}
	return "Unknown"
}
