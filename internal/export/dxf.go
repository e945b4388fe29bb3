package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/piwi3910/BarCut/internal/model"
)

// DXF layer names.
const (
	LayerOutline = "STOCK"
	LayerCuts    = "CUTS"
	LayerText    = "TEXT"
)

// Bars are drawn at true length along X. Their height and vertical spacing
// are fixed drawing units.
const (
	dxfBarHeight  = 40.0
	dxfBarSpacing = 40.0
	dxfTextHeight = 12.0
)

// ExportDXF draws every cutting plan as a bar outline with a vertical line
// at each cut position. Bars are stacked downwards in plan order.
func ExportDXF(path string, result model.Result) error {
	if len(result.CuttingPlans) == 0 {
		return fmt.Errorf("no cutting plans to export")
	}

	d := dxf.NewDrawing()
	if _, err := d.AddLayer(LayerOutline, color.White, dxf.DefaultLineType, false); err != nil {
		return fmt.Errorf("add layer %s: %w", LayerOutline, err)
	}
	if _, err := d.AddLayer(LayerCuts, color.Red, dxf.DefaultLineType, false); err != nil {
		return fmt.Errorf("add layer %s: %w", LayerCuts, err)
	}
	if _, err := d.AddLayer(LayerText, color.Cyan, dxf.DefaultLineType, false); err != nil {
		return fmt.Errorf("add layer %s: %w", LayerText, err)
	}

	for i, plan := range result.CuttingPlans {
		y := -float64(i) * (dxfBarHeight + dxfBarSpacing)
		if err := drawPlan(d, plan, i+1, y); err != nil {
			return fmt.Errorf("draw plan %d: %w", i+1, err)
		}
	}

	return d.SaveAs(path)
}

func drawPlan(d *drawing.Drawing, plan model.CuttingPlan, num int, y float64) error {
	top := y + dxfBarHeight

	if err := d.ChangeLayer(LayerOutline); err != nil {
		return err
	}
	outline := [][4]float64{
		{0, y, plan.Stock, y},
		{plan.Stock, y, plan.Stock, top},
		{plan.Stock, top, 0, top},
		{0, top, 0, y},
	}
	for _, l := range outline {
		if _, err := d.Line(l[0], l[1], 0, l[2], l[3], 0); err != nil {
			return err
		}
	}

	if err := d.ChangeLayer(LayerCuts); err != nil {
		return err
	}
	x := 0.0
	for _, cut := range plan.Cutting {
		x += cut
		if x >= plan.Stock {
			break
		}
		if _, err := d.Line(x, y, 0, x, top, 0); err != nil {
			return err
		}
	}

	if err := d.ChangeLayer(LayerText); err != nil {
		return err
	}
	caption := fmt.Sprintf("#%d %s (rest %s)", num, formatLength(plan.Stock), formatLength(plan.Remaining))
	if _, err := d.Text(caption, 0, top+dxfTextHeight/2, 0, dxfTextHeight); err != nil {
		return err
	}
	x = 0
	for _, cut := range plan.Cutting {
		if _, err := d.Text(formatLength(cut), x+dxfTextHeight/2, y+dxfBarHeight/2-dxfTextHeight/2, 0, dxfTextHeight); err != nil {
			return err
		}
		x += cut
	}
	return nil
}
