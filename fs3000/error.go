// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package fs3000

import "fmt"

// UnknownModelError is returned when a Dev is requested for a part number
// the package has no calibration curve for.
type UnknownModelError struct {
	Model Model
}

func (e *UnknownModelError) Error() string {
	return fmt.Sprintf("fs3000: unknown model %d", int(e.Model))
}
