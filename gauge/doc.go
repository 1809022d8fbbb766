// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package gauge renders air velocity readings.
//
// Bar is a 1D display.Drawer that outputs to the terminal using ANSI color
// codes, lighting a share of its cells proportional to the reading. Dial
// draws a classic needle gauge into an image, for small displays or to be
// saved as PNG.
package gauge
