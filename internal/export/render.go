package export

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/ironsheep/rock-contours/internal/detection"
)

// RenderContours draws contours as strokes on a black canvas the size of
// original. Only the dimensions of original are used.
func RenderContours(original image.Image, contours []detection.Contour, style Style) *image.RGBA {
	size := original.Bounds().Size()
	dc := gg.NewContext(size.X, size.Y)
	dc.SetRGB(0, 0, 0)
	dc.Clear()

	drawContours(dc, contours, style.StrokeWidth, style.ContourColor)
	return dc.Image().(*image.RGBA)
}

// RenderOverlay draws contours as strokes over a copy of original. The
// original image is not modified.
func RenderOverlay(original image.Image, contours []detection.Contour, style Style) *image.RGBA {
	// Clone rebases the copy to a (0,0) origin, matching contour coordinates.
	dc := gg.NewContextForImage(imaging.Clone(original))

	drawContours(dc, contours, style.StrokeWidth, style.OverlayColor)
	return dc.Image().(*image.RGBA)
}

// drawContours strokes each contour as a closed path through pixel centers.
func drawContours(dc *gg.Context, contours []detection.Contour, width float64, c color.Color) {
	dc.SetColor(c)
	dc.SetLineWidth(width)
	dc.SetLineJoinRound()
	dc.SetLineCapRound()

	for _, contour := range contours {
		switch len(contour) {
		case 0:
			continue
		case 1:
			p := contour[0]
			dc.DrawPoint(float64(p.X)+0.5, float64(p.Y)+0.5, width/2)
			dc.Fill()
			continue
		}

		dc.MoveTo(float64(contour[0].X)+0.5, float64(contour[0].Y)+0.5)
		for _, p := range contour[1:] {
			dc.LineTo(float64(p.X)+0.5, float64(p.Y)+0.5)
		}
		dc.ClosePath()
		dc.Stroke()
	}
}
