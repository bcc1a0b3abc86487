// Package sweep runs independent sampler chains over a grid of beta and
// maximum displacement, several seeds per point, and summarises their
// metrics.
package sweep

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/san-kum/advsampling/internal/metrics"
	"github.com/san-kum/advsampling/internal/sampler"
)

// Point is one grid cell.
type Point struct {
	Beta            float64
	MaxDisplacement float64
}

type Grid struct {
	Betas         []float64
	Displacements []float64
}

// Points enumerates the grid, betas outermost.
func (g Grid) Points() []Point {
	out := make([]Point, 0, len(g.Betas)*len(g.Displacements))
	for _, b := range g.Betas {
		for _, d := range g.Displacements {
			out = append(out, Point{Beta: b, MaxDisplacement: d})
		}
	}
	return out
}

// Result holds the metrics of every chain at one point and their means.
type Result struct {
	Point
	Runs []map[string]float64
	Mean map[string]float64
}

// Ensemble runs Seeds chains per point starting at SeedStart.
type Ensemble struct {
	Surface   sampler.Surface
	Initial   float64
	Base      sampler.Options
	Barrier   float64
	Seeds     int
	SeedStart int64
	// Workers bounds concurrent chains; zero means one per chain.
	Workers int
}

type job struct {
	point, run int
	opts       sampler.Options
	seed       int64
}

func (e *Ensemble) Run(ctx context.Context, g Grid) ([]Result, error) {
	if e.Seeds <= 0 {
		return nil, fmt.Errorf("sweep: seeds must be positive, got %d", e.Seeds)
	}
	points := g.Points()
	if len(points) == 0 {
		return nil, fmt.Errorf("sweep: empty grid")
	}

	results := make([]Result, len(points))
	jobs := make([]job, 0, len(points)*e.Seeds)
	for i, p := range points {
		results[i] = Result{Point: p, Runs: make([]map[string]float64, e.Seeds)}
		opts := e.Base
		opts.Beta = p.Beta
		opts.MaxDisplacement = p.MaxDisplacement
		for r := 0; r < e.Seeds; r++ {
			jobs = append(jobs, job{point: i, run: r, opts: opts, seed: e.SeedStart + int64(r)})
		}
	}

	workers := e.Workers
	if workers <= 0 || workers > len(jobs) {
		workers = len(jobs)
	}
	errs := make([]error, len(jobs))
	queue := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range queue {
				j := jobs[idx]
				vals, err := e.chain(j)
				if err != nil {
					errs[idx] = err
					continue
				}
				results[j.point].Runs[j.run] = vals
			}
		}()
	}

feed:
	for idx := range jobs {
		select {
		case <-ctx.Done():
			break feed
		case queue <- idx:
		}
	}
	close(queue)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	for i := range results {
		results[i].Mean = mean(results[i].Runs)
	}
	return results, nil
}

// chain runs one walk with its own source and metrics.
func (e *Ensemble) chain(j job) (map[string]float64, error) {
	s := sampler.New(e.Surface, rand.New(rand.NewSource(j.seed)))
	stats := metrics.Default(e.Barrier)
	s.AddObserver(stats)
	err := s.Stream(e.Initial, j.opts, func(sampler.Frame) bool { return true })
	if err != nil {
		return nil, fmt.Errorf("sweep: beta=%g max_d=%g seed=%d: %w", j.opts.Beta, j.opts.MaxDisplacement, j.seed, err)
	}
	return stats.Values(), nil
}

func mean(runs []map[string]float64) map[string]float64 {
	out := make(map[string]float64)
	if len(runs) == 0 {
		return out
	}
	for _, r := range runs {
		for k, v := range r {
			out[k] += v
		}
	}
	for k := range out {
		out[k] /= float64(len(runs))
	}
	return out
}

// Best returns the result with the largest mean of metric.
func Best(results []Result, metric string) (Result, bool) {
	if len(results) == 0 {
		return Result{}, false
	}
	sorted := make([]Result, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Mean[metric] > sorted[j].Mean[metric] })
	return sorted[0], true
}
