package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/san-kum/advsampling/internal/storage"
	"github.com/san-kum/advsampling/internal/units"
)

var (
	dataDir string

	// Sampler
	configFile      string
	preset          string
	x0              float64
	trials          int
	maxDisplacement float64
	beta            float64
	seed            int64
	markerRadius    float64
	outFile         string
	framesDir       string
	keepFrames      bool
	frameDelay      int
	saveRun         bool
	frameRate       int

	// PLUMED / GROMACS tools
	hillsFile   string
	stride      int
	gaussians   float64
	runName     string
	keepFES     bool
	temperature float64
	trajFile    string
	tprFile     string
	cvFile      string
	cvColumn    int
	dumpTimes   []float64
	threshold   float64
	prefix      string
	useMPI      bool
	group       string
	dryRun      bool
	pmfFile     string
	xbins       int
	ybins       int
	levels      int
	xlabel      string
	ylabel      string
	title       string
)

// main registers the commands and exits with status 1 when one fails.
// Ctrl-C cancels the command context, which stops external tools.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "advsampling",
		Short:        "energy-barrier demos and enhanced-sampling analysis",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", storage.DefaultDir, "data directory")

	barrierCmd := &cobra.Command{
		Use:   "barrier",
		Short: "animate a Metropolis walker on the free-energy curve",
		Args:  cobra.NoArgs,
		RunE:  runBarrier,
	}
	addSamplerFlags(barrierCmd)
	barrierCmd.Flags().StringVar(&outFile, "out", "", "output GIF")
	barrierCmd.Flags().StringVar(&framesDir, "frames-dir", "", "directory for PNG frames")
	barrierCmd.Flags().BoolVar(&keepFrames, "keep-frames", false, "keep PNG frames after assembling the GIF")
	barrierCmd.Flags().IntVar(&frameDelay, "delay", 0, "GIF frame delay in 1/100 s")
	barrierCmd.Flags().BoolVar(&saveRun, "save", false, "store the run in the data directory")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch the walker in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addSamplerFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "show the minima and barrier of the free-energy curve",
		Args:  cobra.NoArgs,
		RunE:  showInfo,
	}

	fesConvCmd := &cobra.Command{
		Use:   "fes-conv",
		Short: "RMSD of the free energy over time from a HILLS file",
		Args:  cobra.NoArgs,
		RunE:  runFESConv,
	}
	fesConvCmd.Flags().StringVarP(&hillsFile, "hills", "f", "HILLS", "PLUMED HILLS file")
	fesConvCmd.Flags().IntVarP(&stride, "stride", "s", 0, "Gaussians per free-energy snapshot")
	fesConvCmd.Flags().Float64Var(&gaussians, "gaussians", 0, "Gaussians deposited per ns")
	fesConvCmd.Flags().StringVarP(&runName, "name", "n", "", "name used in the plot title and file")
	fesConvCmd.Flags().BoolVar(&keepFES, "keep-fes", false, "keep fes_*.dat snapshots")
	fesConvCmd.Flags().Float64Var(&temperature, "temperature", units.Room, "temperature in K")
	fesConvCmd.MarkFlagRequired("stride")
	fesConvCmd.MarkFlagRequired("gaussians")

	extractCmd := &cobra.Command{
		Use:   "extract",
		Short: "dump structures at selected COLVAR times with gmx trjconv",
		Args:  cobra.NoArgs,
		RunE:  runExtract,
	}
	extractCmd.Flags().StringVarP(&trajFile, "traj", "f", "", "trajectory file")
	extractCmd.Flags().StringVarP(&tprFile, "tpr", "s", "", "run input file")
	extractCmd.Flags().StringVar(&cvFile, "cv-file", "COLVAR", "PLUMED COLVAR file")
	extractCmd.Flags().IntVar(&cvColumn, "cv-col", 1, "COLVAR column of the CV")
	extractCmd.Flags().Float64SliceVarP(&dumpTimes, "time", "t", nil, "times in ps to dump")
	extractCmd.Flags().Float64VarP(&threshold, "threshold", "c", 0, "dump every frame with CV above this")
	extractCmd.Flags().StringVarP(&prefix, "prefix", "p", "", "output prefix")
	extractCmd.Flags().BoolVar(&useMPI, "mpi", false, "use gmx_mpi")
	extractCmd.Flags().StringVar(&group, "group", "0", "output group answered to trjconv")
	extractCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print commands without running them")
	extractCmd.MarkFlagRequired("traj")
	extractCmd.MarkFlagRequired("tpr")

	pmfCmd := &cobra.Command{
		Use:   "pmf2d",
		Short: "contour plot of a 2D free-energy surface",
		Args:  cobra.NoArgs,
		RunE:  runPMF2D,
	}
	pmfCmd.Flags().StringVarP(&pmfFile, "file", "f", "", "x y f data file")
	pmfCmd.Flags().IntVar(&xbins, "xbins", 0, "bins along x")
	pmfCmd.Flags().IntVar(&ybins, "ybins", 0, "bins along y")
	pmfCmd.Flags().IntVar(&levels, "levels", 20, "number of contour levels")
	pmfCmd.Flags().StringVarP(&xlabel, "xlabel", "x", "CV 1", "x axis label")
	pmfCmd.Flags().StringVarP(&ylabel, "ylabel", "y", "CV 2 (degrees)", "y axis label")
	pmfCmd.Flags().StringVarP(&title, "title", "t", "Free energy surface", "plot title")
	pmfCmd.Flags().StringVarP(&runName, "name", "n", "", "output name without extension")
	pmfCmd.Flags().Float64Var(&temperature, "temperature", units.Room, "temperature in K")
	pmfCmd.MarkFlagRequired("file")
	pmfCmd.MarkFlagRequired("xbins")
	pmfCmd.MarkFlagRequired("ybins")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "plot a stored run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run frames to CSV on stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportCSV(cmd.OutOrStdout(), args[0])
		},
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and frames to JSON on stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportJSON(cmd.OutOrStdout(), args[0])
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list sampler presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	rootCmd.AddCommand(barrierCmd, liveCmd, newSweepCmd(), infoCmd, fesConvCmd, extractCmd, pmfCmd, listCmd, showCmd, exportCSVCmd, exportJSONCmd, presetsCmd)
	return rootCmd
}

func addSamplerFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Float64Var(&x0, "x0", 0, "initial position (nm)")
	cmd.Flags().IntVar(&trials, "trials", 0, "number of trials")
	cmd.Flags().Float64Var(&maxDisplacement, "max-displacement", 0, "largest trial move (nm)")
	cmd.Flags().Float64Var(&beta, "beta", 0, "inverse temperature (1/kT)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed, 0 seeds from the clock")
	cmd.Flags().Float64Var(&markerRadius, "radius", 0, "marker radius")
}

func warnf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.ErrOrStderr(), "warning: "+format+"\n", args...)
}
