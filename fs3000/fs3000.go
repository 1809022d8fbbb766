// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package fs3000

import (
	"fmt"
	"sync"

	"github.com/GermanBionicSystems/airvelocity/common"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// SensorAddress is the fixed I²C address of the FS3000.
const SensorAddress uint16 = 0x28

// frameSize is the number of bytes streamed by the sensor on each read.
const frameSize = 5

// Model identifies an FS3000 part number.
type Model int

const (
	// Model1005 is the FS3000-1005, 0 to 7.23 m/s.
	Model1005 Model = 1005
	// Model1015 is the FS3000-1015, 0 to 15 m/s.
	Model1015 Model = 1015
)

func (m Model) table() (Table, bool) {
	switch m {
	case Model1005:
		return table1005, true
	case Model1015:
		return table1015, true
	default:
		return nil, false
	}
}

// Table returns a copy of the calibration curve of the model, or nil for an
// unknown model.
func (m Model) Table() Table {
	t, ok := m.table()
	if !ok {
		return nil
	}
	return append(Table(nil), t...)
}

// MaxVelocity returns the top of the measurement range in m/s.
func (m Model) MaxVelocity() float64 {
	t, ok := m.table()
	if !ok {
		return 0
	}
	return t[len(t)-1].MetresPerSecond
}

func (m Model) String() string {
	return fmt.Sprintf("FS3000-%04d", int(m))
}

// Reading is the result of one airflow query. Valid is false when the
// sensor returned a frame that failed its checksum; the other fields are
// then meaningless and the caller is expected to poll again.
type Reading struct {
	Raw             uint16
	MetresPerSecond float64
	Valid           bool
}

// Speed returns the velocity as a physic.Speed.
func (r Reading) Speed() physic.Speed {
	return physic.Speed(r.MetresPerSecond * float64(physic.MetrePerSecond))
}

func (r Reading) String() string {
	if !r.Valid {
		return "unavailable"
	}
	return fmt.Sprintf("%.2f m/s", r.MetresPerSecond)
}

// Dev is a handle to an FS3000 sensor.
//
// A Dev serializes its own reads, but the bus may be shared with other
// devices.
type Dev struct {
	d     *i2c.Dev
	mu    sync.Mutex
	model Model
	table Table
}

// NewI2C returns a Dev for the given model on bus b.
func NewI2C(b i2c.Bus, m Model) (*Dev, error) {
	t, ok := m.table()
	if !ok {
		return nil, &UnknownModelError{Model: m}
	}
	return &Dev{d: &i2c.Dev{Bus: b, Addr: SensorAddress}, model: m, table: t}, nil
}

// New1005 returns a Dev for an FS3000-1005.
func New1005(b i2c.Bus) (*Dev, error) {
	return NewI2C(b, Model1005)
}

// New1015 returns a Dev for an FS3000-1015.
func New1015(b i2c.Bus) (*Dev, error) {
	return NewI2C(b, Model1015)
}

// newDev binds b to an arbitrary calibration curve.
func newDev(b i2c.Bus, t Table) (*Dev, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &Dev{d: &i2c.Dev{Bus: b, Addr: SensorAddress}, table: t}, nil
}

// Decode validates a frame and extracts the 12-bit raw velocity count.
// ok is false if the frame is not 5 bytes long or its checksum fails.
func Decode(frame []byte) (raw uint16, ok bool) {
	if len(frame) != frameSize || common.Sum8(frame) != 0 {
		return 0, false
	}
	return uint16(frame[1]&0x0f)<<8 | uint16(frame[2]), true
}

// readFrame performs the single streaming read of a measurement. The bus
// is held for the one transaction only.
func (dev *Dev) readFrame() ([]byte, error) {
	r := make([]byte, frameSize)
	dev.mu.Lock()
	defer dev.mu.Unlock()
	if err := dev.d.Tx(nil, r); err != nil {
		return nil, fmt.Errorf("fs3000: error reading %w", err)
	}
	return r, nil
}

// ReadRaw returns the uncalibrated 12-bit count. ok is false if the frame
// failed its checksum. Bus errors are returned as is and never retried.
func (dev *Dev) ReadRaw() (raw uint16, ok bool, err error) {
	r, err := dev.readFrame()
	if err != nil {
		return 0, false, err
	}
	raw, ok = Decode(r)
	return raw, ok, nil
}

// Airflow reads the sensor and returns the air velocity.
//
// An error means the bus transaction failed. A frame with a bad checksum is
// not an error: it yields a Reading with Valid set to false.
func (dev *Dev) Airflow() (Reading, error) {
	raw, ok, err := dev.ReadRaw()
	if err != nil || !ok {
		return Reading{}, err
	}
	mps, ok := dev.table.Interpolate(raw)
	if !ok {
		return Reading{Raw: raw}, nil
	}
	return Reading{Raw: raw, MetresPerSecond: mps, Valid: true}, nil
}

// Model returns the part number the Dev was created for.
func (dev *Dev) Model() Model {
	return dev.model
}

// Halt implements conn.Resource. The sensor streams on demand only, so
// there is nothing to stop.
func (dev *Dev) Halt() error {
	return nil
}

func (dev *Dev) String() string {
	if dev.model == 0 {
		return fmt.Sprintf("fs3000: %s", dev.d)
	}
	return fmt.Sprintf("%s: %s", dev.model, dev.d)
}

var _ conn.Resource = &Dev{}
