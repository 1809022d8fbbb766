// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package airvelocity holds drivers and tools for air velocity sensors.
//
// The fs3000 package drives the Renesas FS3000 over I²C, gauge renders its
// readings and cmd/fs3000 polls a sensor from the command line.
package airvelocity
