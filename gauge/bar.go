// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package gauge

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/GermanBionicSystems/airvelocity/fs3000"
	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/display"
)

var (
	colorLow  = color.NRGBA{0x00, 0xc0, 0x00, 0xff}
	colorHigh = color.NRGBA{0xe0, 0x00, 0x00, 0xff}
	colorOff  = color.NRGBA{0x30, 0x30, 0x30, 0xff}
)

// Opts represents the options available for a Bar.
type Opts struct {
	// X is the number of cells.
	X       int
	Palette *ansi256.Palette
	// W receives the output. Defaults to a colorable stdout.
	W io.Writer

	_ struct{}
}

// Bar is a terminal bar graph.
type Bar struct {
	w       io.Writer
	l       int
	palette ansi256.Palette

	pixels []byte
	label  string
	buf    bytes.Buffer
}

// NewBar returns a Bar that displays at the console.
func NewBar(opts *Opts) *Bar {
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	w := opts.W
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	return &Bar{
		w:       w,
		l:       opts.X,
		palette: *p,
		pixels:  make([]byte, 3*opts.X),
	}
}

func (b *Bar) String() string {
	return "Bar"
}

// Halt implements conn.Resource.
//
// It resets the terminal colors and moves to the next line.
func (b *Bar) Halt() error {
	_, err := b.w.Write([]byte("\n\033[0m"))
	return err
}

// Show draws r on a scale from 0 to full m/s. Invalid readings leave every
// cell dark.
func (b *Bar) Show(r fs3000.Reading, full float64) error {
	lit := 0
	b.label = "-- m/s"
	if r.Valid {
		lit = litCells(r.MetresPerSecond, full, b.l)
		b.label = fmt.Sprintf("%5.2f m/s", r.MetresPerSecond)
	}
	for i := 0; i < b.l; i++ {
		c := colorOff
		if i < lit {
			c = ramp(i, b.l)
		}
		b.pixels[3*i] = c.R
		b.pixels[3*i+1] = c.G
		b.pixels[3*i+2] = c.B
	}
	_, err := b.refresh()
	return err
}

// Write accepts a stream of raw RGB pixels and writes it to the console.
func (b *Bar) Write(pixels []byte) (int, error) {
	if len(pixels)%3 != 0 {
		return 0, errors.New("gauge: invalid RGB stream length")
	}
	b.label = ""
	copy(b.pixels, pixels)
	return b.refresh()
}

// ColorModel implements display.Drawer.
func (b *Bar) ColorModel() color.Model {
	return color.NRGBAModel
}

// Bounds implements display.Drawer.
func (b *Bar) Bounds() image.Rectangle {
	return image.Rectangle{Max: image.Point{X: b.l, Y: 1}}
}

// Draw implements display.Drawer.
func (b *Bar) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	r = r.Intersect(b.Bounds())
	srcR := src.Bounds()
	srcR.Min = srcR.Min.Add(sp)
	if dX := r.Dx(); dX < srcR.Dx() {
		srcR.Max.X = srcR.Min.X + dX
	}
	deltaX3 := 3 * (r.Min.X - srcR.Min.X)
	for sX := srcR.Min.X; sX < srcR.Max.X; sX++ {
		r16, g16, b16, _ := src.At(sX, srcR.Min.Y).RGBA()
		dX3 := 3*sX + deltaX3
		b.pixels[dX3] = byte(r16 >> 8)
		b.pixels[dX3+1] = byte(g16 >> 8)
		b.pixels[dX3+2] = byte(b16 >> 8)
	}
	b.label = ""
	_, err := b.refresh()
	return err
}

func (b *Bar) refresh() (int, error) {
	b.buf.Reset()
	_, _ = b.buf.WriteString("\r\033[0m")
	for i := 0; i < len(b.pixels)/3; i++ {
		c := color.NRGBA{b.pixels[3*i], b.pixels[3*i+1], b.pixels[3*i+2], 255}
		_, _ = io.WriteString(&b.buf, b.palette.Block(c))
	}
	_, _ = b.buf.WriteString("\033[0m ")
	_, _ = b.buf.WriteString(b.label)
	_, err := b.buf.WriteTo(b.w)
	return len(b.pixels), err
}

// litCells returns how many of n cells represent v on a 0 to full scale.
func litCells(v, full float64, n int) int {
	if full <= 0 || v <= 0 || n <= 0 {
		return 0
	}
	if v >= full {
		return n
	}
	lit := int(math.Round(v / full * float64(n)))
	if lit == 0 {
		// Any airflow at all shows.
		lit = 1
	}
	return lit
}

// ramp returns the color of cell i of n, going from colorLow to colorHigh.
func ramp(i, n int) color.NRGBA {
	if n <= 1 {
		return colorLow
	}
	f := float64(i) / float64(n-1)
	mix := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a) + (float64(b)-float64(a))*f))
	}
	return color.NRGBA{mix(colorLow.R, colorHigh.R), mix(colorLow.G, colorHigh.G), mix(colorLow.B, colorHigh.B), 0xff}
}

var _ display.Drawer = &Bar{}
var _ fmt.Stringer = &Bar{}
