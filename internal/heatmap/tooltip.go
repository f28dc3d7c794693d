package heatmap

import (
	"fmt"
)

// DefaultTooltipOffset lifts the tooltip above the hovered cell.
const DefaultTooltipOffset = 8

// Rect is an axis-aligned bounding box in the renderer's units.
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Tooltip is the floating label shown for a hovered day.
type Tooltip struct {
	Date  string
	Count int
	X     float64
	Y     float64
}

// NewTooltip places a tooltip centered horizontally over cell and offset
// above it, in coordinates relative to container.
func NewTooltip(day Day, cell, container Rect, offset float64) Tooltip {
	return Tooltip{
		Date:  day.Date,
		Count: day.Count,
		X:     cell.Left - container.Left + cell.Width/2,
		Y:     cell.Top - container.Top - offset,
	}
}

// Text renders the tooltip body, e.g. "5 contributions on Thursday, July 4, 2024".
func (t Tooltip) Text() string {
	return ContributionPhrase(t.Count) + " on " + FormatLongDate(t.Date)
}

// ContributionPhrase pluralizes a contribution count.
func ContributionPhrase(count int) string {
	if count == 1 {
		return "1 contribution"
	}
	return fmt.Sprintf("%d contributions", count)
}

// FormatLongDate renders a YYYY-MM-DD date in long US English form. Unparseable
// input is returned unchanged.
func FormatLongDate(date string) string {
	t, err := ParseDate(date)
	if err != nil {
		return date
	}
	return t.Format("Monday, January 2, 2006")
}

// TooltipState tracks the tooltip for pointer enter/leave events. The most
// recent event wins.
type TooltipState struct {
	current *Tooltip
}

// Enter publishes a tooltip for day hovered at cell.
func (s *TooltipState) Enter(day Day, cell, container Rect, offset float64) Tooltip {
	t := NewTooltip(day, cell, container, offset)
	s.current = &t
	return t
}

// Leave clears the tooltip.
func (s *TooltipState) Leave() {
	s.current = nil
}

// Current returns the visible tooltip, if any.
func (s *TooltipState) Current() (Tooltip, bool) {
	if s.current == nil {
		return Tooltip{}, false
	}
	return *s.current, true
}
