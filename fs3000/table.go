// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package fs3000

import (
	"errors"
	"fmt"
)

// Point is one breakpoint of a calibration curve.
type Point struct {
	Raw             uint16
	MetresPerSecond float64
}

// Table maps raw sensor counts to air velocity. Points are ordered by
// strictly increasing Raw.
type Table []Point

// maxRaw is the largest value the 12-bit count can hold.
const maxRaw = 0x0fff

// Curves from datasheet figures 2 and 3.
var (
	table1005 = Table{
		{409, 0.00},
		{915, 1.07},
		{1522, 2.01},
		{2066, 3.00},
		{2523, 3.97},
		{2908, 4.96},
		{3256, 5.98},
		{3572, 6.99},
		{3686, 7.23},
	}

	table1015 = Table{
		{409, 0.00},
		{1203, 2.00},
		{1597, 3.00},
		{1908, 4.00},
		{2187, 5.00},
		{2400, 6.00},
		{2629, 7.00},
		{2801, 8.00},
		{3006, 9.00},
		{3178, 10.00},
		{3309, 11.00},
		{3563, 13.00},
		{3686, 15.00},
	}
)

// Validate returns an error if the table cannot be interpolated.
func (t Table) Validate() error {
	if len(t) < 2 {
		return errors.New("fs3000: calibration table needs at least 2 points")
	}
	for i, p := range t {
		if p.Raw > maxRaw {
			return fmt.Errorf("fs3000: calibration point %d raw value %d exceeds %d", i, p.Raw, maxRaw)
		}
		if i > 0 && p.Raw <= t[i-1].Raw {
			return fmt.Errorf("fs3000: calibration point %d raw value %d is not above %d", i, p.Raw, t[i-1].Raw)
		}
	}
	return nil
}

// Interpolate converts a raw count to metres per second.
//
// Counts at or below the first breakpoint return the first velocity, and
// counts at or above the last breakpoint return the last one. A count that
// lands exactly on a breakpoint returns that breakpoint's velocity. ok is
// false if no pair of points brackets raw, which only an empty table can
// cause.
func (t Table) Interpolate(raw uint16) (mps float64, ok bool) {
	if len(t) == 0 {
		return 0, false
	}
	first, last := t[0], t[len(t)-1]
	if raw <= first.Raw {
		return first.MetresPerSecond, true
	}
	if raw >= last.Raw {
		return last.MetresPerSecond, true
	}
	for i := 0; i < len(t)-1; i++ {
		low, high := t[i], t[i+1]
		if raw < low.Raw || raw > high.Raw {
			continue
		}
		switch raw {
		case low.Raw:
			return low.MetresPerSecond, true
		case high.Raw:
			return high.MetresPerSecond, true
		}
		fraction := float64(raw-low.Raw) / float64(high.Raw-low.Raw)
		return low.MetresPerSecond + (high.MetresPerSecond-low.MetresPerSecond)*fraction, true
	}
	return 0, false
}
