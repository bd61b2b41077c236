package calendar

import (
	"math"

	"github.com/hy4ri/calgrid/internal/dates"
)

const (
	// WideCellWidth is the cell width above which the grid uses the wide layout.
	WideCellWidth = 60

	// DefaultCellHeight is used until the container width is known.
	DefaultCellHeight = 41
)

// CellSize derives the cell height and wide flag from the container width.
// A non-positive width means the container could not be measured.
func CellSize(containerWidth float64) (cellHeight float64, wide bool) {
	if containerWidth <= 0 {
		return DefaultCellHeight, false
	}

	cellWidth := containerWidth / dates.DaysPerWeek
	if cellWidth > WideCellWidth {
		return 1 + math.Round(cellWidth*0.75), true
	}
	return 1 + math.Round(cellWidth), false
}

func (s State) resize(width float64) State {
	height, wide := CellSize(width)
	if s.CellHeight > 0 && height != s.CellHeight {
		// Offsets are whole rows except mid-drag, so scaling keeps the
		// same rows in view.
		s.Offset = s.Offset * height / s.CellHeight
		if d, ok := s.Phase.(Dragging); ok {
			d.Base = d.Base * height / s.CellHeight
			s.Phase = d
		}
	}
	s.CellHeight = height
	s.IsWide = wide
	return s
}
