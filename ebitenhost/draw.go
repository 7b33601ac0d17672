package ebitenhost

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/pigface"
)

var (
	colorBackground = color.RGBA{R: 250, G: 240, B: 230, A: 255}
	colorSkin       = color.RGBA{R: 255, G: 182, B: 193, A: 255}
	colorEar        = color.RGBA{R: 255, G: 160, B: 180, A: 255}
	colorSnout      = color.RGBA{R: 255, G: 140, B: 165, A: 255}
	colorNostril    = color.RGBA{R: 150, G: 60, B: 80, A: 255}
	colorEyeWhite   = color.White
	colorPupil      = color.Black
)

var whitePixelImage *ebiten.Image

func whitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.White)
	}
	return whitePixelImage
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	l := g.layout

	g.fillPolygon(screen, l.LeftEar[:], colorEar)
	g.fillPolygon(screen, l.RightEar[:], colorEar)
	g.fillCircle(screen, l.Head, colorSkin)
	g.fillPolygon(screen, ellipsePoints(l.Snout, 40), colorSnout)
	for _, n := range l.Nostrils {
		g.fillCircle(screen, n, colorNostril)
	}
	for i, eye := range l.Eyes {
		g.fillCircle(screen, pigface.HitCircle{CenterX: eye.X, CenterY: eye.Y, Radius: l.EyeRadius}, colorEyeWhite)
		p := eye.Add(g.pupils.offsets[i])
		g.fillCircle(screen, pigface.HitCircle{CenterX: p.X, CenterY: p.Y, Radius: l.PupilRadius}, colorPupil)
	}

	if g.overlay {
		g.drawOverlay(screen)
	}
}

func (g *Game) fillCircle(dst *ebiten.Image, c pigface.HitCircle, clr color.Color) {
	p := g.mapper.LocalToScreen(pigface.Vec2{X: c.CenterX, Y: c.CenterY})
	r := c.Radius * g.mapper.ScreenScale()
	vector.DrawFilledCircle(dst, float32(p.X), float32(p.Y), float32(r), clr, true)
}

// fillPolygon fills a convex polygon given in local coordinates as a
// triangle fan.
func (g *Game) fillPolygon(dst *ebiten.Image, pts []pigface.Vec2, clr color.Color) {
	if len(pts) < 3 {
		return
	}
	r, gr, b, a := clr.RGBA()
	cr, cg, cb, ca := float32(r)/0xffff, float32(gr)/0xffff, float32(b)/0xffff, float32(a)/0xffff

	verts := make([]ebiten.Vertex, len(pts))
	for i, p := range pts {
		s := g.mapper.LocalToScreen(p)
		verts[i] = ebiten.Vertex{
			DstX: float32(s.X), DstY: float32(s.Y),
			SrcX: 0, SrcY: 0,
			ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
		}
	}
	inds := make([]uint16, 0, 3*(len(pts)-2))
	for i := 1; i < len(pts)-1; i++ {
		inds = append(inds, 0, uint16(i), uint16(i+1))
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	dst.DrawTriangles(verts, inds, whitePixel(), op)
}

func ellipsePoints(e pigface.HitEllipse, n int) []pigface.Vec2 {
	pts := make([]pigface.Vec2, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = pigface.Vec2{
			X: e.CenterX + e.RadiusX*math.Cos(a),
			Y: e.CenterY + e.RadiusY*math.Sin(a),
		}
	}
	return pts
}

func (g *Game) drawOverlay(screen *ebiten.Image) {
	t := g.tally.Totals()
	o := g.engine.Offsets()
	msg := fmt.Sprintf("FPS: %.1f\nTPS: %.1f\ndriver: %s\nL %+.1f,%+.1f  R %+.1f,%+.1f\nmoves %d  ticks %d\noinks %d  blinks %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(), g.engine.Driver(),
		o[pigface.EyeLeft].X, o[pigface.EyeLeft].Y, o[pigface.EyeRight].X, o[pigface.EyeRight].Y,
		t.Moves, t.Ticks, t.Oinks, t.Blinks)
	vector.DrawFilledRect(screen, 0, 0, 200, 100, color.RGBA{0, 0, 0, 128}, false)
	ebitenutil.DebugPrint(screen, msg)
}
