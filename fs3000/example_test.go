// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package fs3000_test

import (
	"fmt"
	"log"
	"time"

	"github.com/GermanBionicSystems/airvelocity/fs3000"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// Example polls an FS3000-1015 every 2 seconds.
func Example() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	// Use i2creg I²C bus registry to find the first available I²C bus.
	b, err := i2creg.Open("")
	if err != nil {
		log.Fatalf("failed to open I²C: %v", err)
	}
	defer b.Close()

	dev, err := fs3000.New1015(b)
	if err != nil {
		log.Fatal(err)
	}

	for i := 0; i < 10; i++ {
		r, err := dev.Airflow()
		if err != nil {
			log.Println(err)
		} else {
			fmt.Printf("Airflow: %s\n", r)
		}
		time.Sleep(2 * time.Second)
	}
}
