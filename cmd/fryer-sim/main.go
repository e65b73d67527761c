// Command fryer-sim runs a level headless for a fixed number of frames with
// scripted controls and prints a report.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/plus3/fryer/assets"
	"github.com/plus3/fryer/backend/audio"
	"github.com/plus3/fryer/backend/physics"
	"github.com/plus3/fryer/backend/scene"
	"github.com/plus3/fryer/ecs"
	"github.com/plus3/fryer/game"
	"github.com/plus3/fryer/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	cfg.LogLevel = "warn"
	cfg.RegisterFlags(flag.CommandLine)
	frames := flag.Int("frames", 1200, "Number of frames to simulate.")
	dt := flag.Float64("dt", 0, "Frame delta in seconds. Defaults to 1/fps.")
	scriptName := flag.String("script", "shake", "Controls script: "+fmt.Sprint(scriptNames()))
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	play, err := lookupScript(*scriptName)
	if err != nil {
		log.Fatal(err)
	}
	if *dt <= 0 {
		*dt = cfg.Interval().Seconds()
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	catalog := assets.Default()
	recorder := &scene.Recorder{}
	host, err := game.NewHost(cfg.StartLevel(), game.Servers{
		Render:  recorder,
		Audio:   audio.NewMixer(catalog, audio.SampleRate, logger.Named("audio")),
		Physics: physics.New(physics.DefaultConfig()),
		Assets:  catalog,
		Logger:  logger,
	})
	if err != nil {
		log.Fatal(err)
	}

	report := &Report{
		Level:  cfg.Level,
		Script: *scriptName,
		Frames: *frames,
		Delta:  time.Duration(*dt * float64(time.Second)),
		FrameTime: Stats{
			Samples: make([]time.Duration, 0, *frames),
		},
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Simulating %d frames of %s...\n", *frames, cfg.Level)
	var tracker game.MotionTracker
	startTime := time.Now()
	for frame := range *frames {
		if !host.Running() {
			break
		}
		controls := tracker.Update(play(frame))

		frameStart := time.Now()
		if err := host.Frame(*dt, controls); err != nil {
			log.Fatal(err)
		}
		report.FrameTime.Samples = append(report.FrameTime.Samples, time.Since(frameStart))
	}
	report.TotalTime = time.Since(startTime)
	report.FrameTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	state := host.State()
	report.Simulated = host.Frames()
	report.Rebuilds = host.Swaps()
	report.Mode = state.Session().Mode.String()
	report.Pans = collectPans(state.Storage)
	report.Systems = state.Scheduler.GetStats().Systems
	report.Storage = state.Storage.CollectStats()
	report.Sprites = len(recorder.Latest().Meshes)

	logger.Info("simulation finished", zap.Uint64("frames", report.Simulated), zap.Int("rebuilds", report.Rebuilds))

	fmt.Println("\n--- Simulation Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}

func collectPans(storage *ecs.Storage) []PanScore {
	var pans []PanScore
	for pan := range ecs.NewView[struct{ Pan *game.FryAssignment }](storage).Iter() {
		pans = append(pans, PanScore{Player: pan.Pan.ID + 1, Score: pan.Pan.Score})
	}
	slices.SortFunc(pans, func(a, b PanScore) int { return a.Player - b.Player })
	return pans
}
