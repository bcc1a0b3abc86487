package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/advsampling/internal/convergence"
	"github.com/san-kum/advsampling/internal/datafile"
	"github.com/san-kum/advsampling/internal/gromacs"
	"github.com/san-kum/advsampling/internal/plumed"
	"github.com/san-kum/advsampling/internal/pmf"
	"github.com/san-kum/advsampling/internal/render"
	"github.com/san-kum/advsampling/internal/runner"
	"github.com/san-kum/advsampling/internal/viz"
)

// nameOf defaults a run name to the file name without its extension.
func nameOf(name, path string) string {
	if name != "" {
		return name
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func runFESConv(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	dt, err := convergence.Interval(float64(stride), gaussians)
	if err != nil {
		return err
	}
	name := nameOf(runName, hillsFile)

	fmt.Fprintf(out, "%s\n", viz.Title.Render("free-energy convergence"))
	fmt.Fprintf(out, "summing %s every %d Gaussians...\n", hillsFile, stride)
	if err := plumed.SumHills(cmd.Context(), runner.Exec{}, ".", hillsFile, stride); err != nil {
		return err
	}
	if !keepFES {
		defer func() {
			if err := plumed.Cleanup("."); err != nil {
				warnf(cmd, "cleanup: %v", err)
			}
		}()
	}

	snaps, err := plumed.Snapshots(".", temperature)
	if err != nil {
		return err
	}
	series, err := convergence.RMSD(snaps, dt)
	if err != nil {
		return err
	}

	path := render.ConvergenceName(name)
	if err := render.SaveConvergence(series, fmt.Sprintf("RMSD of the free energy (%s)", name), path); err != nil {
		return err
	}

	fmt.Fprintf(out, "%d snapshots, %.3f ns apart\n", len(snaps), dt)
	if series.Len() > 1 {
		fmt.Fprintln(out, asciigraph.Plot(series.RMSD, asciigraph.Height(8), asciigraph.Caption("RMSD (kT) vs snapshot")))
	}
	fmt.Fprintf(out, "final RMSD %.4f kT at %.3f ns\n", series.RMSD[series.Len()-1], series.Time[series.Len()-1])
	fmt.Fprintf(out, "plot: %s\n", path)
	return nil
}

func runExtract(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	tab, err := datafile.ReadFile(cvFile)
	if err != nil {
		return err
	}
	cols, err := tab.Columns(0, cvColumn)
	if err != nil {
		return err
	}

	times, err := gromacs.Select(cols[0], cols[1], gromacs.Selection{
		Times:        dumpTimes,
		Threshold:    threshold,
		UseThreshold: cmd.Flags().Changed("threshold"),
	})
	if err != nil {
		return err
	}
	if len(dumpTimes) == 0 && !cmd.Flags().Changed("threshold") {
		t, cv, _ := gromacs.MaxCV(cols[0], cols[1])
		fmt.Fprintf(out, "largest CV %.4f at t=%s ps\n", cv, gromacs.FormatTime(t))
	}

	opts := gromacs.Options{
		Trajectory: trajFile,
		Structure:  tprFile,
		Prefix:     prefix,
		MPI:        useMPI,
		Group:      group,
	}
	var r runner.Runner = runner.Exec{}
	dry := &runner.DryRun{}
	if dryRun {
		r = dry
	}

	files, err := gromacs.Dump(cmd.Context(), r, opts, times)
	if err != nil {
		return err
	}
	for _, c := range dry.Commands {
		fmt.Fprintln(out, c.String())
	}
	for _, f := range files {
		fmt.Fprintf(out, "wrote %s\n", f)
	}
	return nil
}

func runPMF2D(cmd *cobra.Command, args []string) error {
	tab, err := datafile.ReadFile(pmfFile)
	if err != nil {
		return err
	}
	g, err := pmf.FromTable(tab, xbins, ybins)
	if err != nil {
		return err
	}
	g.Convert(temperature)

	o := render.DefaultContourOptions()
	o.Levels = levels
	o.Title = title
	o.XLabel = xlabel
	o.YLabel = ylabel

	path := render.ContourName(nameOf(runName, pmfFile))
	if err := render.SaveContour(g, o, path); err != nil {
		return err
	}
	lo, hi := g.Range()
	fmt.Fprintf(cmd.OutOrStdout(), "free energy %.3f to %.3f kT over %d x %d bins\n", lo, hi, xbins, ybins)
	fmt.Fprintf(cmd.OutOrStdout(), "plot: %s\n", path)
	return nil
}
