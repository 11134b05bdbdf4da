package main

import (
	"flag"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/milk9111/yetislope/ecs/system"
	"github.com/milk9111/yetislope/prefabs"
)

// bot steers away from the nearest tree that is about to reach the skier.
type bot struct {
	rng       *rand.Rand
	lookahead float64
	clearance float64
	steer     int
}

func (b *bot) plan(snap system.Snapshot) {
	b.steer = 0
	nearest := math.Inf(1)
	for _, t := range snap.Trees {
		if t.Z < 0 || t.Z > b.lookahead {
			continue
		}
		dx := t.X - snap.PlayerX
		if math.Abs(dx) > b.clearance || t.Z > nearest {
			continue
		}
		nearest = t.Z
		if dx > 0 || (dx == 0 && b.rng.Intn(2) == 0) {
			b.steer = -1
		} else {
			b.steer = 1
		}
	}
	if snap.PlayerX < -7 && b.steer < 0 {
		b.steer = 1
	}
	if snap.PlayerX > 7 && b.steer > 0 {
		b.steer = -1
	}
}

func (b *bot) Pressed(intent system.Intent) bool {
	switch intent {
	case system.IntentSteerLeft:
		return b.steer < 0
	case system.IntentSteerRight:
		return b.steer > 0
	}
	return false
}

type result struct {
	ticks   int
	score   int
	best    int
	crashes int
	caught  bool
	elapsed time.Duration
}

func run(tuning prefabs.TuningSpec, yeti prefabs.YetiSpec, seed int64, maxTicks int, lookahead float64, debug bool) (result, error) {
	b := &bot{rng: rand.New(rand.NewSource(seed)), lookahead: lookahead, clearance: 1.5}
	sim, err := system.NewSimulation(system.Options{
		Tuning: tuning,
		Yeti:   yeti,
		Keys:   b,
		Seed:   seed,
		Debug:  debug,
	})
	if err != nil {
		return result{}, err
	}
	defer sim.Close()

	var res result
	for res.ticks < maxTicks && !sim.Over() {
		b.plan(sim.Snapshot())
		sim.Step(1.0 / 60)
		res.ticks++
		if s := sim.Session().Score; s > res.best {
			res.best = s
		}
	}
	sess := sim.Session()
	res.score = sess.Score
	res.crashes = sess.Crashes
	res.caught = sess.Caught
	res.elapsed = sim.Now()
	return res, nil
}

func main() {
	sessions := flag.Int("n", 10, "number of sessions to run")
	seconds := flag.Float64("seconds", 120, "session length cap in simulated seconds")
	seed := flag.Int64("seed", 1, "base seed; session i uses seed+i")
	lookahead := flag.Float64("lookahead", 12, "how far down the slope the bot reacts to trees")
	tuningFile := flag.String("tuning", prefabs.TuningFile, "tuning prefab")
	yetiFile := flag.String("yeti", prefabs.YetiFile, "yeti prefab")
	placement := flag.String("placement", "", "override obstacles.placement (uniform, lanes, script)")
	debug := flag.Bool("debug", false, "log session events")
	flag.Parse()

	tuning, err := prefabs.LoadTuning(*tuningFile)
	if err != nil {
		log.Fatal(err)
	}
	if *placement != "" {
		tuning.Obstacles.Placement = *placement
	}
	yeti, err := prefabs.LoadYeti(*yetiFile)
	if err != nil {
		log.Fatal(err)
	}

	maxTicks := int(*seconds * 60)
	var caught, crashes, best int
	var survived time.Duration
	for i := 0; i < *sessions; i++ {
		res, err := run(*tuning, *yeti, *seed+int64(i), maxTicks, *lookahead, *debug)
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("session %d: %v survived, best %d, final %d, crashes %d, caught %v",
			i, res.elapsed.Round(time.Millisecond), res.best, res.score, res.crashes, res.caught)
		if res.caught {
			caught++
		}
		crashes += res.crashes
		survived += res.elapsed
		if res.best > best {
			best = res.best
		}
	}

	if *sessions > 0 {
		log.Printf("simulate: %d sessions, caught %d, avg crashes %.2f, avg time %v, best score %d",
			*sessions, caught, float64(crashes)/float64(*sessions),
			(survived / time.Duration(*sessions)).Round(time.Millisecond), best)
	}
}
