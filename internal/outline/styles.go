package outline

import "github.com/gdamore/tcell/v2"

// Styles are the cell styles used when drawing.
type Styles struct {
	Node          tcell.Style
	Selected      tcell.Style
	Dragging      tcell.Style
	Header        tcell.Style
	HeaderCurrent tcell.Style
	Divider       tcell.Style
	Status        tcell.Style
	Muted         tcell.Style
}

// DefaultStyles returns the default palette.
func DefaultStyles() Styles {
	base := tcell.StyleDefault
	return Styles{
		Node:          base,
		Selected:      base.Reverse(true),
		Dragging:      base.Foreground(tcell.ColorYellow).Bold(true),
		Header:        base.Bold(true),
		HeaderCurrent: base.Bold(true).Underline(true).Foreground(tcell.ColorAqua),
		Divider:       base.Foreground(tcell.ColorGray),
		Status:        base.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite),
		Muted:         base.Foreground(tcell.ColorGray),
	}
}
