package core

// Color is the foreground color of a screen cell. The platform maps it to an
// ANSI 256-color code with ANSI.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray

	numColors
)

// ansiCodes holds the 256-color code of each Color; ColorDefault has none.
var ansiCodes = [numColors]string{
	"", "1", "2", "3", "4", "5", "6", "7",
	"9", "10", "11", "12", "13", "14", "15",
	"208", "245",
}

// ANSI returns the 256-color code for c, or "" for the terminal default.
func (c Color) ANSI() string {
	if c >= numColors {
		return ""
	}
	return ansiCodes[c]
}

// Colors returns every defined color, ColorDefault first.
func Colors() []Color {
	out := make([]Color, numColors)
	for i := range out {
		out[i] = Color(i)
	}
	return out
}
