package main

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/advsampling/internal/config"
	"github.com/san-kum/advsampling/internal/storage"
	"github.com/san-kum/advsampling/internal/viz"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tX0\tTRIALS\tMAX_D\tBETA\tACCEPT")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.5f\t%d\t%.3f\t%.3f\t%.3f\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.InitialPosition,
			run.Trials,
			run.MaxDisplacement,
			run.Beta,
			run.Metrics["acceptance_rate"],
		)
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n", viz.HeaderStyle.Render("run "+meta.ID))
	fmt.Fprintf(out, "%s\n", viz.Metric("seed", fmt.Sprintf("%d", meta.Seed)))
	fmt.Fprintf(out, "%s\n\n", viz.Metric("trials", fmt.Sprintf("%d", len(frames))))

	pos := make([]float64, len(frames))
	energy := make([]float64, len(frames))
	for i, f := range frames {
		pos[i], energy[i] = f.Position, f.Energy
	}
	fmt.Fprintln(out, asciigraph.Plot(pos, asciigraph.Height(10), asciigraph.Width(70), asciigraph.Caption("position (nm)")))
	fmt.Fprintln(out)
	fmt.Fprintln(out, asciigraph.Plot(energy, asciigraph.Height(10), asciigraph.Width(70), asciigraph.Caption("free energy (kT)")))

	printMetrics(cmd, meta.Metrics)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tTRIALS\tMAX_D\tBETA")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%.2f\t%.2f\n", name, p.Trials, p.MaxDisplacement, p.Beta)
	}
	return w.Flush()
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
