// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package fs3000 controls a Renesas FS3000 air velocity sensor over I²C.
//
// The sensor streams a 5 byte frame holding a checksum and a 12-bit raw
// velocity count. The count is converted to metres per second by piecewise
// linear interpolation over the datasheet curve of the part in use. There
// is nothing to configure on the chip, so a Dev only needs a bus and the
// model.
//
// # Models
//
//	FS3000-1005  0 to 7.23 m/s
//	FS3000-1015  0 to 15.00 m/s
//
// The device address is fixed at 0x28.
//
// # Datasheet
//
// https://www.renesas.com/en/document/dst/fs3000-datasheet
package fs3000
