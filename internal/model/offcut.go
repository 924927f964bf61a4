package model

import (
	"sort"

	"github.com/google/uuid"
)

// MinOffcutLength is the shortest remnant (in mm) worth keeping. Anything
// shorter is scrap.
const MinOffcutLength = 500.0

// LayoutSettings controls the bar layout.
type LayoutSettings struct {
	KerfWidth       float64        `json:"kerf_width"`
	Strategy        LayoutStrategy `json:"strategy"`
	MinOffcutLength float64        `json:"min_offcut_length"`
}

// BarPiece is a single piece placed on a bar.
type BarPiece struct {
	Length   float64 `json:"length"`
	Position string  `json:"position"`
	Offset   float64 `json:"offset"` // mm from the bar start
}

// Bar is one stock bar of a profile and the pieces cut from it.
type Bar struct {
	ID         string     `json:"id"`
	PartNumber string     `json:"part_number"`
	Color      string     `json:"color"`
	Length     float64    `json:"length"`
	Pieces     []BarPiece `json:"pieces"`
	Kerf       float64    `json:"kerf"`
}

// NewBar returns an empty bar of the given stock length.
func NewBar(partNumber, color string, length, kerf float64) Bar {
	return Bar{
		ID:         uuid.New().String()[:8],
		PartNumber: partNumber,
		Color:      color,
		Length:     length,
		Kerf:       kerf,
	}
}

// UsedLength returns the length consumed by pieces and saw cuts.
func (b Bar) UsedLength() float64 {
	if len(b.Pieces) == 0 {
		return 0
	}
	last := b.Pieces[len(b.Pieces)-1]
	return last.Offset + last.Length
}

// Remaining returns the uncut length at the end of the bar.
func (b Bar) Remaining() float64 {
	r := b.Length - b.UsedLength()
	if len(b.Pieces) > 0 {
		r -= b.Kerf
	}
	if r < 0 {
		return 0
	}
	return r
}

// Efficiency returns the usage percentage of the bar.
func (b Bar) Efficiency() float64 {
	if b.Length == 0 {
		return 0
	}
	var pieces float64
	for _, p := range b.Pieces {
		pieces += p.Length
	}
	return pieces / b.Length * 100.0
}

// ProfileLayout is the bar layout of one profile.
type ProfileLayout struct {
	PartNumber string     `json:"part_number"`
	Color      string     `json:"color"`
	Bars       []Bar      `json:"bars"`
	Unplaced   []BarPiece `json:"unplaced"`
}

// BarsUsed returns the number of bars with at least one piece.
func (pl ProfileLayout) BarsUsed() int {
	n := 0
	for _, b := range pl.Bars {
		if len(b.Pieces) > 0 {
			n++
		}
	}
	return n
}

// LayoutResult holds the layouts of all profiles.
type LayoutResult struct {
	Profiles []ProfileLayout `json:"profiles"`
}

// TotalEfficiency returns the usage percentage across all used bars.
func (lr LayoutResult) TotalEfficiency() float64 {
	var used, total float64
	for _, p := range lr.Profiles {
		for _, b := range p.Bars {
			if len(b.Pieces) == 0 {
				continue
			}
			for _, piece := range b.Pieces {
				used += piece.Length
			}
			total += b.Length
		}
	}
	if total == 0 {
		return 0
	}
	return used / total * 100.0
}

// UnplacedCount returns the number of pieces that did not fit on any bar.
func (lr LayoutResult) UnplacedCount() int {
	n := 0
	for _, p := range lr.Profiles {
		n += len(p.Unplaced)
	}
	return n
}

// Offcut is a reusable remnant left at the end of a bar.
type Offcut struct {
	ID         string  `json:"id"`
	BarID      string  `json:"bar_id"`
	PartNumber string  `json:"part_number"`
	Color      string  `json:"color"`
	Length     float64 `json:"length"`
}

// DetectOffcuts returns the remnants of a layout at least minLength long,
// longest first.
func DetectOffcuts(pl ProfileLayout, minLength float64) []Offcut {
	var offcuts []Offcut
	for _, b := range pl.Bars {
		if len(b.Pieces) == 0 {
			continue
		}
		rest := b.Remaining()
		if rest < minLength {
			continue
		}
		offcuts = append(offcuts, Offcut{
			ID:         uuid.New().String()[:8],
			BarID:      b.ID,
			PartNumber: pl.PartNumber,
			Color:      pl.Color,
			Length:     rest,
		})
	}

	sort.SliceStable(offcuts, func(i, j int) bool {
		return offcuts[i].Length > offcuts[j].Length
	})
	return offcuts
}

// DetectAllOffcuts finds offcuts across all profiles of a layout.
func DetectAllOffcuts(result LayoutResult, minLength float64) []Offcut {
	var all []Offcut
	for _, p := range result.Profiles {
		all = append(all, DetectOffcuts(p, minLength)...)
	}
	return all
}

// TotalOffcutLength returns the summed length of offcuts in mm.
func TotalOffcutLength(offcuts []Offcut) float64 {
	var total float64
	for _, o := range offcuts {
		total += o.Length
	}
	return total
}
