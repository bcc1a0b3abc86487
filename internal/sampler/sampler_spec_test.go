package sampler_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/advsampling/internal/landscape"
	"github.com/san-kum/advsampling/internal/sampler"
)

// constant always returns the same draw.
type constant float64

func (c constant) Float64() float64 { return float64(c) }

var _ = Describe("Metropolis walk", func() {
	var opts sampler.Options

	BeforeEach(func() {
		opts = sampler.DefaultOptions()
		opts.Trials = 50
	})

	It("emits exactly one frame per trial", func() {
		s := sampler.New(landscape.Default, rand.New(rand.NewSource(11)))
		frames, err := s.Run(1.44908, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(frames).To(HaveLen(50))
	})

	It("keeps energy in sync with position on every frame", func() {
		s := sampler.New(landscape.Default, rand.New(rand.NewSource(5)))
		frames, err := s.Run(1.44908, opts)
		Expect(err).NotTo(HaveOccurred())
		for _, f := range frames {
			Expect(f.Energy).To(Equal(landscape.Evaluate(f.Position)))
		}
	})

	It("rests the marker on the walker", func() {
		s := sampler.New(landscape.Default, rand.New(rand.NewSource(9)))
		frames, err := s.Run(1.44908, opts)
		Expect(err).NotTo(HaveOccurred())
		for _, f := range frames {
			Expect(f.Marker.X[0]).To(BeNumerically("~", f.Position+sampler.DefaultMarkerRadius, 1e-12))
			Expect(f.Marker.Y[0]).To(BeNumerically("~", f.Energy+sampler.DefaultMarkerRadius, 1e-12))
		}
	})

	Context("when every acceptance draw is zero", func() {
		It("accepts every proposal with positive probability", func() {
			s := sampler.New(landscape.Default, constant(0.0))
			frames, err := s.Run(2.0, opts)
			Expect(err).NotTo(HaveOccurred())
			for _, f := range frames {
				Expect(f.Accepted).To(BeTrue())
			}
			// u=0 always proposes -maxDisplacement.
			Expect(frames[0].Position).To(BeNumerically("~", 2.0-0.8, 1e-12))
		})
	})

	Context("with invalid arguments", func() {
		It("rejects a non-positive trial count", func() {
			opts.Trials = 0
			_, err := sampler.New(landscape.Default, constant(0.5)).Run(1.0, opts)
			Expect(err).To(MatchError(sampler.ErrInvalidArgument))
		})
	})
})
