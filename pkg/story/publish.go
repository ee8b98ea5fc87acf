package story

import "strings"

// Published is the data handed to the story-format template for one passage.
type Published struct {
	ID   int
	Name string
	Left float64
	Top  float64
	Text string
	Tags string // space-separated
}

// Publish returns the display-ready data of the passage under the numeric id
// the published story assigns to it.
func (p *Passage) Publish(id int) Published {
	return Published{
		ID:   id,
		Name: p.name,
		Left: p.pos.Left,
		Top:  p.pos.Top,
		Text: p.text,
		Tags: strings.Join(p.tags, " "),
	}
}
