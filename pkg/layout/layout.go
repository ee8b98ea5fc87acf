// Package layout keeps passages on the story map from overlapping.
//
// Every passage occupies a fixed [Width] x [Height] rectangle whose top-left
// corner is its position. For collision purposes the rectangle is grown by
// [Padding] on every side, so two passages count as overlapping while their
// padded rectangles share any area.
//
// [Displace] separates an overlapping pair by moving only the second passage
// along a single axis, so passages never drift diagonally.
package layout

import "math"

// Passage geometry in canvas units.
const (
	Width   = 100.0
	Height  = 100.0
	Padding = 12.5
)

// Pos is the top-left corner of a passage on the canvas.
type Pos struct {
	Left float64 `json:"left"`
	Top  float64 `json:"top"`
}

// Clamp returns p with negative coordinates raised to 0.
func (p Pos) Clamp() Pos {
	return Pos{Left: math.Max(0, p.Left), Top: math.Max(0, p.Top)}
}

// Rect is an axis-aligned rectangle given by its edges.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// Bounds returns the padded collision rectangle of a passage at p.
func Bounds(p Pos) Rect {
	return Rect{
		Left:   p.Left - Padding,
		Top:    p.Top - Padding,
		Right:  p.Left + Width + Padding,
		Bottom: p.Top + Height + Padding,
	}
}

// Intersects reports whether passages at a and b overlap once padded.
// Padded edges that merely touch do not intersect.
func Intersects(a, b Pos) bool {
	return a.Left-Padding < b.Left+Width+Padding &&
		a.Left+Width+Padding > b.Left-Padding &&
		a.Top-Padding < b.Top+Height+Padding &&
		a.Top+Height+Padding > b.Top-Padding
}

// Axis names the direction a passage was moved in.
type Axis int

const (
	AxisNone Axis = iota
	AxisX
	AxisY
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	default:
		return "none"
	}
}

// Move is a signed single-axis displacement.
type Move struct {
	Axis   Axis
	Amount float64
}

// Apply returns p shifted by m.
func (m Move) Apply(p Pos) Pos {
	switch m.Axis {
	case AxisX:
		p.Left += m.Amount
	case AxisY:
		p.Top += m.Amount
	}
	return p
}

// Displace computes where other has to go so that it no longer intersects
// anchor. Each axis gets the shorter of the two moves that clear the anchor's
// padded bounds (before its near edge or past its far edge); of those two, the
// one with the larger magnitude is applied and the other coordinate is kept.
// X wins ties.
//
// Positions never go below zero, so a backward move that would cross the
// origin is not a candidate and the far side is used instead. The result
// therefore always clears the anchor and survives [Pos.Clamp].
//
// If the pair does not intersect, other is returned unchanged with a zero Move.
func Displace(anchor, other Pos) (Pos, Move) {
	if !Intersects(anchor, other) {
		return other, Move{}
	}

	a, o := Bounds(anchor), Bounds(other)
	dx := axisMove(a.Left, a.Right, o.Left, o.Right, other.Left)
	dy := axisMove(a.Top, a.Bottom, o.Top, o.Bottom, other.Top)

	m := Move{Axis: AxisX, Amount: dx}
	if math.Abs(dy) > math.Abs(dx) {
		m = Move{Axis: AxisY, Amount: dy}
	}
	return m.Apply(other), m
}

// overlap is the length shared by [aMin, aMax] and [oMin, oMax].
func overlap(aMin, aMax, oMin, oMax float64) float64 {
	return math.Max(0, math.Min(aMax, oMax)-math.Max(aMin, oMin))
}

// axisMove returns the signed move of least magnitude that takes the interval
// [oMin, oMax] clear of [aMin, aMax], or 0 if they do not overlap. A backward
// move is only allowed if it keeps the coordinate at at least zero.
func axisMove(aMin, aMax, oMin, oMax, coord float64) float64 {
	if overlap(aMin, aMax, oMin, oMax) == 0 {
		return 0
	}
	forward := aMax - oMin
	backward := aMin - oMax
	if -backward < forward && coord+backward >= 0 {
		return backward
	}
	return forward
}
