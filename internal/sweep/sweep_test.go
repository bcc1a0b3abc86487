package sweep

import (
	"context"
	"testing"

	"github.com/san-kum/advsampling/internal/landscape"
	"github.com/san-kum/advsampling/internal/sampler"
)

func newEnsemble(seeds int) *Ensemble {
	opts := sampler.DefaultOptions()
	opts.Trials = 50
	return &Ensemble{
		Surface:   landscape.Default,
		Initial:   1.44908,
		Base:      opts,
		Barrier:   4.819,
		Seeds:     seeds,
		SeedStart: 100,
		Workers:   3,
	}
}

func TestGridPoints(t *testing.T) {
	g := Grid{Betas: []float64{0.5, 1}, Displacements: []float64{0.4, 0.8, 1.2}}
	pts := g.Points()
	if len(pts) != 6 {
		t.Fatalf("expected 6 points, got %d", len(pts))
	}
	if pts[0] != (Point{Beta: 0.5, MaxDisplacement: 0.4}) || pts[5] != (Point{Beta: 1, MaxDisplacement: 1.2}) {
		t.Errorf("unexpected order %v", pts)
	}
}

func TestEnsembleRun(t *testing.T) {
	g := Grid{Betas: []float64{0.5, 2}, Displacements: []float64{0.8}}
	results, err := newEnsemble(4).Run(context.Background(), g)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		if len(r.Runs) != 4 {
			t.Errorf("point %v has %d runs", r.Point, len(r.Runs))
		}
		rate := r.Mean["acceptance_rate"]
		if rate <= 0 || rate > 1 {
			t.Errorf("point %v acceptance %f", r.Point, rate)
		}
	}
}

func TestEnsembleDeterministic(t *testing.T) {
	g := Grid{Betas: []float64{1}, Displacements: []float64{0.8}}
	a, err := newEnsemble(3).Run(context.Background(), g)
	if err != nil {
		t.Fatal(err)
	}
	b, err := newEnsemble(3).Run(context.Background(), g)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a[0].Runs {
		if a[0].Runs[i]["mean_energy"] != b[0].Runs[i]["mean_energy"] {
			t.Errorf("run %d differs between identical sweeps", i)
		}
	}
}

func TestEnsembleErrors(t *testing.T) {
	e := newEnsemble(0)
	if _, err := e.Run(context.Background(), Grid{Betas: []float64{1}, Displacements: []float64{1}}); err == nil {
		t.Error("expected error for zero seeds")
	}

	e = newEnsemble(1)
	if _, err := e.Run(context.Background(), Grid{}); err == nil {
		t.Error("expected error for empty grid")
	}

	e.Base.Trials = 0
	if _, err := e.Run(context.Background(), Grid{Betas: []float64{1}, Displacements: []float64{1}}); err == nil {
		t.Error("expected error for zero trials")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e = newEnsemble(2)
	if _, err := e.Run(ctx, Grid{Betas: []float64{1}, Displacements: []float64{1}}); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestBest(t *testing.T) {
	results := []Result{
		{Point: Point{Beta: 1}, Mean: map[string]float64{"acceptance_rate": 0.2}},
		{Point: Point{Beta: 2}, Mean: map[string]float64{"acceptance_rate": 0.7}},
	}
	best, ok := Best(results, "acceptance_rate")
	if !ok || best.Beta != 2 {
		t.Errorf("Best = %+v, %v", best, ok)
	}
	if _, ok := Best(nil, "x"); ok {
		t.Error("Best of nothing should report false")
	}
}
