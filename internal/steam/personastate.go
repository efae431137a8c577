package steam

// Persona state labels as reported by the friends tool.
const (
	StateOffline         = "OFFLINE"
	StateOnline          = "ONLINE"
	StateBusy            = "BUSY"
	StateAway            = "AWAY"
	StateSnooze          = "SNOOZE"
	StateLookingForTrade = "LOOKING FOR TRADE"
	StateLookingForPlay  = "LOOKING FOR PLAY"
	StateUnknown         = "UNKNOWN"
)

// PersonaState maps an upstream personastate code to its label.
func PersonaState(code int) string {
	switch code {
	case 0:
		return StateOffline
	case 1:
		return StateOnline
	case 2:
		return StateBusy
	case 3:
		return StateAway
	case 4:
		return StateSnooze
	case 5:
		return StateLookingForTrade
	case 6:
		return StateLookingForPlay
	default:
		return StateUnknown
	}
}
