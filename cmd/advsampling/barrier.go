package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/advsampling/internal/config"
	"github.com/san-kum/advsampling/internal/landscape"
	"github.com/san-kum/advsampling/internal/metrics"
	"github.com/san-kum/advsampling/internal/render"
	"github.com/san-kum/advsampling/internal/sampler"
	"github.com/san-kum/advsampling/internal/storage"
	"github.com/san-kum/advsampling/internal/viz"
)

// samplerConfig layers defaults, preset, config file and finally any
// flag set on the command line.
func samplerConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Resolve(preset, configFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("x0") {
		cfg.InitialPosition = x0
	}
	if flags.Changed("trials") {
		cfg.Trials = trials
	}
	if flags.Changed("max-displacement") {
		cfg.MaxDisplacement = maxDisplacement
	}
	if flags.Changed("beta") {
		cfg.Beta = beta
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("radius") {
		cfg.MarkerRadius = markerRadius
	}
	if f := flags.Lookup("out"); f != nil && f.Changed {
		cfg.Output = outFile
	}
	if f := flags.Lookup("frames-dir"); f != nil && f.Changed {
		cfg.FramesDir = framesDir
	}
	if f := flags.Lookup("keep-frames"); f != nil && f.Changed {
		cfg.KeepFrames = keepFrames
	}
	if f := flags.Lookup("delay"); f != nil && f.Changed {
		cfg.FrameDelay = frameDelay
	}

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// barrierLocation is where crossings are counted. It falls back to the
// middle of the plotted range when the curve has no interior maximum.
func barrierLocation(cmd *cobra.Command) float64 {
	b, err := landscape.Default.Barrier(0, render.BarrierXMax)
	if err != nil {
		warnf(cmd, "%v", err)
		return render.BarrierXMax / 2
	}
	return b.X
}

// animate renders frames and assembles the GIF. Frames written before a
// failure are removed unless they are to be kept.
func animate(ctx context.Context, anim *render.Animation, frames []sampler.Frame) error {
	var err error
	for _, f := range frames {
		if err = ctx.Err(); err != nil {
			break
		}
		if err = anim.Add(f); err != nil {
			break
		}
	}
	if err == nil {
		err = anim.Finish()
	}
	if err != nil && !anim.Keep {
		if derr := anim.Discard(); derr != nil {
			return errors.Join(err, derr)
		}
	}
	return err
}

func runBarrier(cmd *cobra.Command, args []string) error {
	cfg, err := samplerConfig(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	ctx := cmd.Context()

	s := sampler.New(landscape.Default, rand.New(rand.NewSource(cfg.Seed)))
	stats := metrics.Default(barrierLocation(cmd))
	s.AddObserver(stats)

	fmt.Fprintf(out, "%s\n", viz.Title.Render("energy barrier"))
	fmt.Fprintf(out, "running %d trials from x0=%.5f (beta=%g, seed=%d)...\n", cfg.Trials, cfg.InitialPosition, cfg.Beta, cfg.Seed)
	start := time.Now()

	frames, err := s.Run(cfg.InitialPosition, cfg.Options())
	if err != nil {
		return err
	}

	anim := render.NewAnimation(landscape.Default, cfg.FramesDir, cfg.Output)
	anim.Delay = cfg.FrameDelay
	anim.Keep = cfg.KeepFrames
	if err := animate(ctx, anim, frames); err != nil {
		return err
	}

	fmt.Fprintf(out, "completed in %v\n", time.Since(start).Round(time.Millisecond))
	fmt.Fprintf(out, "animation: %s (%d frames)\n", cfg.Output, anim.Frames())
	if cfg.KeepFrames {
		fmt.Fprintf(out, "frames kept in %s\n", cfg.FramesDir)
	}

	vals := stats.Values()
	if saveRun {
		st := storage.New(dataDir)
		runID, err := st.Save(storage.RunMetadata{
			Seed:            cfg.Seed,
			InitialPosition: cfg.InitialPosition,
			Trials:          cfg.Trials,
			MaxDisplacement: cfg.MaxDisplacement,
			Beta:            cfg.Beta,
			Metrics:         vals,
		}, frames)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "run id: %s\n", runID)
	}

	printMetrics(cmd, vals)
	return nil
}

func printMetrics(cmd *cobra.Command, vals map[string]float64) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\n%s\n", viz.HeaderStyle.Render("metrics"))
	for _, name := range sortedKeys(vals) {
		fmt.Fprintf(out, "%s\n", viz.Metric(name, fmt.Sprintf("%.6f", vals[name])))
	}
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := samplerConfig(cmd)
	if err != nil {
		return err
	}
	m := viz.NewLiveModel(landscape.Default, rand.New(rand.NewSource(cfg.Seed)), cfg.InitialPosition, cfg.Options(), barrierLocation(cmd), frameRate)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	_, err = p.Run()
	return err
}

func showInfo(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	f := landscape.Default

	fmt.Fprintf(out, "%s\n\n", viz.Title.Render("free-energy landscape"))
	c := f.Coefficients()
	fmt.Fprintf(out, "%s\n", viz.Metric("degree", fmt.Sprintf("%d", landscape.Degree)))
	fmt.Fprintf(out, "%s\n", viz.Metric("coefficients", fmt.Sprintf("%v", c)))

	ext, err := f.Extrema(0, render.BarrierXMax, 0.01)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%s\n", viz.HeaderStyle.Render("stationary points"))
	for _, e := range ext {
		fmt.Fprintf(out, "%s\n", viz.Metric(e.Kind.String(), fmt.Sprintf("x=%.4f nm  F=%.4f kT", e.X, e.F)))
	}

	b, err := f.Barrier(0, render.BarrierXMax)
	if err != nil {
		warnf(cmd, "%v", err)
		return nil
	}
	var left landscape.Extremum
	for _, e := range ext {
		if e.Kind == landscape.Minimum && e.X < b.X {
			left = e
		}
	}
	fmt.Fprintf(out, "\n%s\n", viz.Rule(40))
	fmt.Fprintf(out, "%s\n", viz.Metric("barrier", fmt.Sprintf("x=%.4f nm  height %.4f kT", b.X, b.F-left.F)))
	return nil
}
