package export

import (
	"fmt"

	"github.com/piwi3910/profilecut/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
)

// DXF layer names.
const (
	LayerBars   = "BARS"
	LayerCuts   = "CUTS"
	LayerLabels = "LABELS"
)

// Drawing geometry in drawing units (mm). Bars are drawn at full length and
// a fixed display height.
const (
	dxfBarHeight   = 60.0
	dxfBarGap      = 40.0
	dxfProfileGap  = 150.0
	dxfTextHeight  = 20.0
	dxfLabelOffset = 10.0
)

// ExportLayoutDXF draws every used bar of a layout as a rectangle with the
// saw cuts as vertical lines, one profile below the other.
func ExportLayoutDXF(path string, result model.LayoutResult) error {
	if len(result.Profiles) == 0 {
		return fmt.Errorf("no profiles to export")
	}

	d := dxf.NewDrawing()
	if _, err := d.AddLayer(LayerBars, color.White, dxf.DefaultLineType, false); err != nil {
		return fmt.Errorf("add layer: %w", err)
	}
	if _, err := d.AddLayer(LayerCuts, color.Red, dxf.DefaultLineType, false); err != nil {
		return fmt.Errorf("add layer: %w", err)
	}
	if _, err := d.AddLayer(LayerLabels, color.Cyan, dxf.DefaultLineType, false); err != nil {
		return fmt.Errorf("add layer: %w", err)
	}

	y := 0.0
	for _, pl := range result.Profiles {
		if err := d.ChangeLayer(LayerLabels); err != nil {
			return err
		}
		heading := fmt.Sprintf("%s %s", pl.PartNumber, pl.Color)
		if _, err := d.Text(heading, 0, y, 0, dxfTextHeight*1.5); err != nil {
			return err
		}
		y -= dxfTextHeight*1.5 + dxfBarGap

		for _, bar := range pl.Bars {
			if len(bar.Pieces) == 0 {
				continue
			}
			if err := drawDXFBar(d, bar, y); err != nil {
				return fmt.Errorf("bar %s: %w", bar.ID, err)
			}
			y -= dxfBarHeight + dxfBarGap
		}
		y -= dxfProfileGap
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("save drawing: %w", err)
	}
	return nil
}

// drawDXFBar draws one bar with its top edge at y.
func drawDXFBar(d *drawing.Drawing, bar model.Bar, y float64) error {
	bottom := y - dxfBarHeight

	if err := d.ChangeLayer(LayerBars); err != nil {
		return err
	}
	edges := [][4]float64{
		{0, y, bar.Length, y},
		{bar.Length, y, bar.Length, bottom},
		{bar.Length, bottom, 0, bottom},
		{0, bottom, 0, y},
	}
	for _, e := range edges {
		if _, err := d.Line(e[0], e[1], 0, e[2], e[3], 0); err != nil {
			return err
		}
	}

	for _, p := range bar.Pieces {
		if err := d.ChangeLayer(LayerCuts); err != nil {
			return err
		}
		end := p.Offset + p.Length
		if end < bar.Length {
			if _, err := d.Line(end, y, 0, end, bottom, 0); err != nil {
				return err
			}
		}

		if err := d.ChangeLayer(LayerLabels); err != nil {
			return err
		}
		label := fmt.Sprintf("%s %.0f", p.Position, p.Length)
		if _, err := d.Text(label, p.Offset+dxfLabelOffset, bottom+dxfLabelOffset, 0, dxfTextHeight); err != nil {
			return err
		}
	}
	return nil
}
