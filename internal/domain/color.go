package domain

// Color is the rendering color of a word
type Color string

const (
	ColorRed    Color = "red"
	ColorOrange Color = "orange"
	ColorGreen  Color = "green"
	ColorBlack  Color = "black"
)

// StatusColor maps a status to its palette color.
// Unknown statuses render like words without an entry.
func StatusColor(s Status) Color {
	switch s {
	case StatusUnfamiliar:
		return ColorRed
	case StatusLearning:
		return ColorOrange
	case StatusFamiliar:
		return ColorGreen
	default:
		return ColorBlack
	}
}
