package enum

import "strings"

// PaperSize selects the physical receipt layout.
type PaperSize int

const (
	// PaperSizeThermal80 is the 80mm thermal roll layout (the default).
	PaperSizeThermal80 PaperSize = iota
	// PaperSizeA4 is the standard A4 sheet layout.
	PaperSizeA4
)

// ParsePaperSize maps the shop config value to a PaperSize. "A4" (in any
// case, with or without the UI's descriptive suffix) selects A4; anything
// else, including the empty string, selects the thermal layout.
func ParsePaperSize(s string) PaperSize {
	v := strings.ToUpper(strings.TrimSpace(s))
	if v == "A4" || strings.HasPrefix(v, "A4 ") {
		return PaperSizeA4
	}
	return PaperSizeThermal80
}

// String returns the string representation of the paper size.
func (p PaperSize) String() string {
	if p == PaperSizeA4 {
		return "A4"
	}
	return "80mm"
}
