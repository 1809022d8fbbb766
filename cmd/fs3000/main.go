// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// fs3000 polls an FS3000 air velocity sensor and prints the readings.
//
// Readings can also be exported to Prometheus, drawn as a terminal bar or
// rendered as a dial into a PNG file.
package main

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/GermanBionicSystems/airvelocity/fs3000"
	"github.com/GermanBionicSystems/airvelocity/gauge"
	"github.com/fogleman/gg"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// CLI args
var (
	busName    = flag.String("bus", "", "I²C bus to use, the first one if empty")
	modelName  = flag.String("model", "1015", "sensor model, 1005 or 1015")
	interval   = flag.Duration("interval", 2*time.Second, "time between sensor reads")
	count      = flag.Int("count", 0, "number of reads, 0 to poll forever")
	listenAddr = flag.String("listen-address", "", "address to serve Prometheus metrics on, disabled if empty")
	showBar    = flag.Bool("bar", false, "draw readings as a bar in the terminal")
	barWidth   = flag.Int("bar-width", 40, "number of cells of the terminal bar")
	pngPath    = flag.String("png", "", "render each reading as a dial into this PNG file")
	pngSize    = flag.Int("png-size", 240, "size of the PNG dial in pixels")
	verbose    = flag.Bool("v", false, "log raw counts")
)

// metrics to expose to Prometheus
var (
	gaugeVelocity = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "air_velocity_mps",
			Help: "Air velocity (units: m/s)",
		},
		[]string{"model"},
	)
	counterInvalid = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "air_velocity_invalid_total",
			Help: "Reads that returned a frame with a bad checksum",
		},
		[]string{"model"},
	)
	counterErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "air_velocity_errors_total",
			Help: "Reads that failed on the bus",
		},
		[]string{"model"},
	)
)

func init() {
	prometheus.MustRegister(gaugeVelocity)
	prometheus.MustRegister(counterInvalid)
	prometheus.MustRegister(counterErrors)

	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})
}

// sensor is the part of *fs3000.Dev the poller uses.
type sensor interface {
	Airflow() (fs3000.Reading, error)
	Model() fs3000.Model
}

// sink receives each valid or invalid reading.
type sink func(r fs3000.Reading) error

func parseModel(s string) (fs3000.Model, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid model %q", s)
	}
	m := fs3000.Model(n)
	if m.Table() == nil {
		return 0, errors.Errorf("unsupported model %q, use 1005 or 1015", s)
	}
	return m, nil
}

// poll reads dev n times, or forever if n is 0, waiting for tick between
// reads. Bus errors are logged and counted, polling goes on.
func poll(dev sensor, n int, tick <-chan time.Time, out io.Writer, sinks ...sink) error {
	label := dev.Model().String()
	for i := 0; n == 0 || i < n; i++ {
		if i > 0 {
			<-tick
		}
		r, err := dev.Airflow()
		if err != nil {
			log.WithError(err).Error("failed to read sensor")
			counterErrors.WithLabelValues(label).Inc()
			continue
		}
		if r.Valid {
			gaugeVelocity.WithLabelValues(label).Set(r.MetresPerSecond)
			log.WithField("raw", r.Raw).Debug("reading")
		} else {
			counterInvalid.WithLabelValues(label).Inc()
			log.Debug("checksum mismatch")
		}
		if _, err := fmt.Fprintf(out, "Airflow: %s\n", r); err != nil {
			return errors.Wrap(err, "writing reading")
		}
		for _, s := range sinks {
			if err := s(r); err != nil {
				return err
			}
		}
	}
	return nil
}

func barSink(b *gauge.Bar, full float64) sink {
	return func(r fs3000.Reading) error {
		return errors.Wrap(b.Show(r, full), "drawing bar")
	}
}

func pngSink(path string, full float64, size int) sink {
	return func(r fs3000.Reading) error {
		img, err := gauge.Dial(r, full, size)
		if err != nil {
			return errors.Wrap(err, "rendering dial")
		}
		return errors.Wrapf(gg.SavePNG(path, img), "saving %s", path)
	}
}

func serveMetrics(addr string) {
	http.Handle("/metrics", promhttp.HandlerFor(
		prometheus.DefaultGatherer,
		promhttp.HandlerOpts{
			EnableOpenMetrics: true,
		},
	))
	log.Panic(http.ListenAndServe(addr, nil))
}

func mainImpl() error {
	flag.Parse()
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}
	m, err := parseModel(*modelName)
	if err != nil {
		return err
	}

	if _, err := host.Init(); err != nil {
		return errors.Wrap(err, "initializing host")
	}
	b, err := i2creg.Open(*busName)
	if err != nil {
		return errors.Wrap(err, "opening I²C bus")
	}
	defer b.Close()

	dev, err := fs3000.NewI2C(b, m)
	if err != nil {
		return err
	}
	log.Infof("polling %s every %s", dev, *interval)

	if *listenAddr != "" {
		go serveMetrics(*listenAddr)
	}

	out := io.Writer(os.Stdout)
	var sinks []sink
	if *showBar {
		bar := gauge.NewBar(&gauge.Opts{X: *barWidth})
		defer bar.Halt()
		// The bar redraws in place, keep the plain lines out of its way.
		out = io.Discard
		sinks = append(sinks, barSink(bar, m.MaxVelocity()))
	}
	if *pngPath != "" {
		sinks = append(sinks, pngSink(*pngPath, m.MaxVelocity(), *pngSize))
	}

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()
	return poll(dev, *count, ticker.C, out, sinks...)
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "fs3000: %s.\n", err)
		os.Exit(1)
	}
}
