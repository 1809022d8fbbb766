// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package gauge

import (
	"errors"
	"fmt"
	"image"
	"math"
	"sync"

	"github.com/GermanBionicSystems/airvelocity/fs3000"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
)

// minDialSize is the smallest dial that still fits its label.
const minDialSize = 32

var (
	fontOnce sync.Once
	fontErr  error
	fontTTF  *truetype.Font
)

func regularFont() (*truetype.Font, error) {
	fontOnce.Do(func() {
		fontTTF, fontErr = truetype.Parse(goregular.TTF)
	})
	return fontTTF, fontErr
}

// Dial draws r as a half circle needle gauge scaled from 0 to full m/s into
// a size×size image. Invalid readings draw the scale without a needle.
func Dial(r fs3000.Reading, full float64, size int) (image.Image, error) {
	if size < minDialSize {
		return nil, fmt.Errorf("gauge: dial size %d below %d", size, minDialSize)
	}
	if full <= 0 {
		return nil, errors.New("gauge: dial range must be positive")
	}
	f, err := regularFont()
	if err != nil {
		return nil, fmt.Errorf("gauge: loading font %w", err)
	}
	s := float64(size)
	cx, cy, radius := s/2, s*0.6, s*0.4

	dc := gg.NewContext(size, size)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	// Scale.
	dc.SetLineWidth(s / 16)
	dc.SetRGB(0.8, 0.8, 0.8)
	dc.DrawArc(cx, cy, radius, math.Pi, 2*math.Pi)
	dc.Stroke()

	label := "--"
	if r.Valid {
		frac := math.Min(math.Max(r.MetresPerSecond/full, 0), 1)
		angle := math.Pi + math.Pi*frac
		if frac > 0 {
			dc.SetRGB(1-frac*0.2, 0.75*(1-frac), 0)
			dc.DrawArc(cx, cy, radius, math.Pi, angle)
			dc.Stroke()
		}
		dc.SetRGB(0, 0, 0)
		dc.SetLineWidth(s / 48)
		dc.DrawLine(cx, cy, cx+radius*0.9*math.Cos(angle), cy+radius*0.9*math.Sin(angle))
		dc.Stroke()
		dc.DrawCircle(cx, cy, s/32)
		dc.Fill()
		label = fmt.Sprintf("%.2f m/s", r.MetresPerSecond)
	}

	dc.SetRGB(0, 0, 0)
	dc.SetFontFace(truetype.NewFace(f, &truetype.Options{Size: s / 9}))
	dc.DrawStringAnchored(label, cx, cy+s*0.2, 0.5, 0.5)
	return dc.Image(), nil
}
