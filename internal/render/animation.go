package render

import (
	"errors"
	"fmt"
	"image"
	"image/color/palette"
	imagedraw "image/draw"
	"image/gif"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/advsampling/internal/sampler"
)

const (
	// DefaultDelay is the GIF frame delay in hundredths of a second.
	DefaultDelay = 5
	framePrefix  = "energy_barrier_"
)

// ErrFramesDir is returned when the frame directory already holds files.
var ErrFramesDir = errors.New("render: frame directory is not empty")

// Animation writes barrier frames as PNG files into Dir and assembles them
// into a GIF at Output.
type Animation struct {
	Dir    string
	Output string
	Delay  int
	// Keep preserves the frames after the GIF is written.
	Keep          bool
	Width, Height vg.Length

	curve   plotter.XYs
	frames  int
	created bool
}

func NewAnimation(surface sampler.Surface, dir, output string) *Animation {
	return &Animation{
		Dir:    dir,
		Output: output,
		Delay:  DefaultDelay,
		Width:  6 * vg.Inch,
		Height: 4.5 * vg.Inch,
		curve:  Curve(surface),
	}
}

func (a *Animation) FrameName(i int) string {
	return filepath.Join(a.Dir, fmt.Sprintf("%s%d.png", framePrefix, i))
}

func (a *Animation) Frames() int { return a.frames }

// Add renders f as the next frame. The first call creates Dir, or accepts
// it if it exists and is empty.
func (a *Animation) Add(f sampler.Frame) error {
	if a.frames == 0 {
		if err := a.prepare(); err != nil {
			return err
		}
	}
	p, err := BarrierFrame(a.curve, f)
	if err != nil {
		return err
	}
	if err := p.Save(a.Width, a.Height, a.FrameName(a.frames)); err != nil {
		return fmt.Errorf("render: save frame %d: %w", f.Step, err)
	}
	a.frames++
	return nil
}

func (a *Animation) prepare() error {
	err := os.Mkdir(a.Dir, 0755)
	if err == nil {
		a.created = true
		return nil
	}
	if !errors.Is(err, fs.ErrExist) {
		return err
	}
	entries, err := os.ReadDir(a.Dir)
	if err != nil {
		return err
	}
	if len(entries) > 0 {
		return fmt.Errorf("%w: %s", ErrFramesDir, a.Dir)
	}
	return nil
}

// Paths lists the frames written so far, in order.
func (a *Animation) Paths() []string {
	paths := make([]string, a.frames)
	for i := range paths {
		paths[i] = a.FrameName(i)
	}
	return paths
}

// Finish assembles the GIF and, unless Keep is set, removes the frames it
// wrote. Dir itself is removed only if Add created it.
func (a *Animation) Finish() error {
	if a.frames == 0 {
		return fmt.Errorf("render: no frames to assemble")
	}
	if err := AssembleGIF(a.Paths(), a.Output, a.Delay); err != nil {
		return err
	}
	if a.Keep {
		return nil
	}
	return a.Discard()
}

// Discard removes the frames written so far.
func (a *Animation) Discard() error {
	for _, path := range a.Paths() {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	if a.created {
		return os.Remove(a.Dir)
	}
	return nil
}

// AssembleGIF encodes the PNG files at paths, in the given order, as one
// looping GIF.
func AssembleGIF(paths []string, output string, delay int) error {
	if len(paths) == 0 {
		return fmt.Errorf("render: no png frames for %s", output)
	}
	anim := &gif.GIF{LoopCount: 0}
	for _, path := range paths {
		img, err := readPNG(path)
		if err != nil {
			return err
		}
		anim.Image = append(anim.Image, toPaletted(img))
		anim.Delay = append(anim.Delay, delay)
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := gif.EncodeAll(f, anim); err != nil {
		return fmt.Errorf("render: encode %s: %w", output, err)
	}
	return f.Close()
}

func readPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("render: decode %s: %w", path, err)
	}
	return img, nil
}

func toPaletted(img image.Image) *image.Paletted {
	b := img.Bounds()
	out := image.NewPaletted(b, palette.Plan9)
	imagedraw.FloydSteinberg.Draw(out, b, img, b.Min)
	return out
}
