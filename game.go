package main

import (
	"fmt"
	"log"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/yetislope/common"
	"github.com/milk9111/yetislope/ecs/system"
	"github.com/milk9111/yetislope/prefabs"
)

type Game struct {
	tuning *prefabs.TuningSpec
	yeti   *prefabs.YetiSpec
	seed   int64
	debug  bool

	sim      *system.Simulation
	sessions int
	best     int

	paused  bool
	pauseUI *ebitenui.UI
	overUI  *ebitenui.UI

	watcher *prefabs.Watcher
	stale   bool
	last    time.Time
}

func NewGame(seed int64, debug, watch bool) (*Game, error) {
	tuning, err := prefabs.LoadTuning(prefabs.TuningFile)
	if err != nil {
		return nil, err
	}
	yeti, err := prefabs.LoadYeti(prefabs.YetiFile)
	if err != nil {
		return nil, err
	}

	g := &Game{tuning: tuning, yeti: yeti, seed: seed, debug: debug}
	if watch {
		w, err := prefabs.NewWatcher(prefabs.Dir, prefabs.Dir+"/scripts")
		if err != nil {
			log.Printf("prefabs: watch disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	g.pauseUI = NewPauseUI(g, "Paused", true)
	g.overUI = NewPauseUI(g, "Caught by the yeti", false)
	if err := g.restart(); err != nil {
		return nil, err
	}
	return g, nil
}

// restart tears down the current session and starts a fresh one, picking up
// any prefab edits seen since the last session began.
func (g *Game) restart() error {
	if g.stale {
		g.reload()
	}

	if g.sim != nil {
		g.sim.Close()
	}
	sim, err := system.NewSimulation(system.Options{
		Tuning: *g.tuning,
		Yeti:   *g.yeti,
		Keys:   Keyboard{},
		Seed:   g.seed + int64(g.sessions),
		Debug:  g.debug,
	})
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	g.sim = sim
	g.sessions++
	g.paused = false
	g.last = time.Time{}
	return nil
}

func (g *Game) reload() {
	g.stale = false
	tuning, err := prefabs.LoadTuning(prefabs.TuningFile)
	if err != nil {
		log.Printf("prefabs: reload tuning: %v", err)
	} else {
		g.tuning = tuning
	}
	yeti, err := prefabs.LoadYeti(prefabs.YetiFile)
	if err != nil {
		log.Printf("prefabs: reload yeti: %v", err)
	} else {
		g.yeti = yeti
	}
	log.Printf("prefabs: reloaded")
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if g.debug {
				log.Printf("prefabs: %s changed, applying next session", name)
			}
			g.stale = true
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("prefabs: watch: %v", err)
		default:
			return
		}
	}
}

func (g *Game) Update() error {
	g.pollWatcher()

	now := time.Now()
	delta := 0.0
	if !g.last.IsZero() {
		delta = now.Sub(g.last).Seconds()
	}
	g.last = now

	if g.sim.Over() {
		g.overUI.Update()
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyR) {
			return g.restart()
		}
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		g.last = time.Time{}
		return nil
	}

	g.sim.Step(delta)
	if score := g.sim.Session().Score; score > g.best {
		g.best = score
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	drawSnapshot(screen, g.sim.Snapshot(), g.tuning.Palette, g.best)

	switch {
	case g.sim.Over():
		g.overUI.Draw(screen)
	case g.paused:
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (g *Game) Close() {
	if g.sim != nil {
		g.sim.Close()
	}
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}
