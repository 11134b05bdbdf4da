package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/yetislope/common"
	"github.com/milk9111/yetislope/ecs/component"
	"github.com/milk9111/yetislope/ecs/system"
	"github.com/milk9111/yetislope/prefabs"
	"golang.org/x/image/colornames"
)

// camera sits behind and above the skier looking down the fall line
const (
	camDistance = 6.0
	camHeight   = 3.5
	focal       = 560.0
	horizonY    = 180.0
	nearClip    = 0.5
)

// project maps a slope point to the screen. Looking behind mirrors depth so
// the yeti side of the slope faces the camera.
func project(x, y, z float64, behind bool) (cp.Vector, float64, bool) {
	if behind {
		z = -z
		x = -x
	}
	depth := z + camDistance
	if depth < nearClip {
		return cp.Vector{}, 0, false
	}
	scale := focal / depth
	return cp.Vector{
		X: common.BaseWidth/2 + x*scale,
		Y: horizonY + (camHeight-y)*scale,
	}, scale, true
}

func drawSnapshot(screen *ebiten.Image, snap system.Snapshot, palette prefabs.PaletteSpec, best int) {
	screen.Fill(palette.Snow.Or(colornames.Snow))
	vector.FillRect(screen, 0, 0, common.BaseWidth, horizonY, colornames.Lightsteelblue, false)

	behind := snap.LookBehind
	treeColor := palette.Tree.Or(colornames.Forestgreen)

	// far to near so closer sprites overlap
	trees := snap.Trees
	if behind {
		trees = make([]system.TreeView, len(snap.Trees))
		for i, t := range snap.Trees {
			trees[len(trees)-1-i] = t
		}
	}
	for _, t := range trees {
		drawTree(screen, t, behind, treeColor)
	}

	if snap.Yeti != nil {
		drawYeti(screen, *snap.Yeti, behind, palette.Yeti.Or(colornames.Whitesmoke))
	}

	skier := palette.Skier.Or(colornames.Crimson)
	if snap.Crashed {
		skier = palette.Crashed.Or(colornames.Gray)
	}
	drawSkier(screen, snap, behind, skier)

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("SCORE %d    BEST %d", snap.Score, best), 16, 16)
	if snap.WarningVisible {
		ebitenutil.DebugPrintAt(screen, "SOMETHING IS COMING...", common.BaseWidth/2-66, 48)
	}
	if snap.Crashed && !snap.Caught {
		ebitenutil.DebugPrintAt(screen, "CRASHED", common.BaseWidth/2-21, 72)
	}
	if behind {
		ebitenutil.DebugPrintAt(screen, "looking behind", 16, 32)
	}
}

func drawTree(screen *ebiten.Image, t system.TreeView, behind bool, clr color.Color) {
	base, scale, ok := project(t.X, 0, t.Z, behind)
	if !ok {
		return
	}
	w := float32(0.8 * scale)
	h := float32(2.4 * scale)
	bx, by := float32(base.X), float32(base.Y)

	vector.FillRect(screen, bx-w/8, by-h/4, w/4, h/4, colornames.Saddlebrown, false)
	for i := 0; i < 3; i++ {
		f := float32(i)
		r := w * (1 - f*0.25)
		vector.FillCircle(screen, bx, by-h/4-f*h/4-r/2, r, clr, true)
	}
}

func drawSkier(screen *ebiten.Image, snap system.Snapshot, behind bool, clr color.Color) {
	feet, scale, ok := project(snap.PlayerX, snap.PlayerY, 0, behind)
	if !ok {
		return
	}
	fx, fy := float32(feet.X), float32(feet.Y)
	s := float32(scale)
	lean := float32(snap.PlayerRotation)
	if behind {
		lean = -lean
	}

	if snap.Crashed {
		vector.FillRect(screen, fx-0.6*s, fy-0.25*s, 1.2*s, 0.25*s, clr, false)
		return
	}

	// skis
	vector.StrokeLine(screen, fx-0.35*s, fy, fx-0.35*s+lean*0.2*s, fy-0.1*s, 3, colornames.Black, true)
	vector.StrokeLine(screen, fx+0.35*s, fy, fx+0.35*s+lean*0.2*s, fy-0.1*s, 3, colornames.Black, true)
	// body
	headX := fx + lean*0.6*s
	headY := fy - 1.6*s
	vector.StrokeLine(screen, fx, fy-0.2*s, headX, headY+0.2*s, 0.35*s, clr, true)
	vector.FillCircle(screen, headX, headY, 0.18*s, colornames.Peachpuff, true)
}

func drawYeti(screen *ebiten.Image, y system.YetiView, behind bool, clr color.Color) {
	feet, scale, ok := project(y.X, y.Y, y.Z, behind)
	if !ok {
		return
	}
	fx, fy := float32(feet.X), float32(feet.Y)
	s := float32(scale)

	body := 2.2 * s
	vector.FillRect(screen, fx-0.5*s, fy-body, 1.0*s, body, clr, false)
	vector.FillCircle(screen, fx, fy-body-0.3*s, 0.4*s, clr, true)

	arm := float32(0.9) * s
	angle := y.ArmAngle
	for _, side := range []float64{-1, 1} {
		sx := fx + float32(side)*0.5*s
		sy := fy - body*0.8
		a := math.Pi/2 + side*angle
		ex := sx + float32(side*math.Cos(a-math.Pi/2))*arm
		ey := sy - float32(math.Sin(a))*arm*0.5
		vector.StrokeLine(screen, sx, sy, ex, ey, 0.25*s, clr, true)
	}

	if y.Phase == component.PursuitAttack {
		vector.FillCircle(screen, fx-0.15*s, fy-body-0.35*s, 0.06*s, colornames.Red, true)
		vector.FillCircle(screen, fx+0.15*s, fy-body-0.35*s, 0.06*s, colornames.Red, true)
	}
}
