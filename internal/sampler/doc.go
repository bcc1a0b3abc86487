// Package sampler runs a single-chain Metropolis-Hastings walk over a
// one-dimensional free-energy surface and emits one [Frame] per trial.
//
//   - [Source]: uniform [0, 1) random numbers, injected by the caller
//   - [Walker]: position and energy, kept in sync
//   - [Trial]: one proposal and its acceptance test
//   - [Sampler]: drives the walk and notifies observers
//
// # Example
//
//	s := sampler.New(landscape.Default, rand.New(rand.NewSource(42)))
//	frames, err := s.Run(1.44908, sampler.DefaultOptions())
//
// Each trial draws from the source twice, displacement first and the
// acceptance test second, so a scripted source reproduces a walk exactly.
//
// # Thread Safety
//
// A Sampler is NOT safe for concurrent use; it owns its random source.
package sampler
