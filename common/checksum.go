// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package common contains functions used across multiple packages. For
// example, the additive checksum of a sensor frame.
package common

// Sum8 returns the sum of all bytes modulo 256.
//
// Sensors such as the Renesas FS3000 append a checksum byte chosen so that
// the sum of the whole frame is zero. For those, a frame is valid when
// Sum8(frame) == 0.
func Sum8(bytes []byte) byte {
	var sum byte
	for _, val := range bytes {
		sum += val
	}
	return sum
}
