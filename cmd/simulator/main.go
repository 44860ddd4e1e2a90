package main

import (
	"flag"
	"os"
	"time"

	"go.uber.org/zap"
)

var (
	serverURL = flag.String("server", "http://localhost:8080", "API base URL")
	devices   = flag.Int("devices", 10, "Number of devices to simulate")
	days      = flag.Int("days", 7, "Number of trailing days to report, today included")
	fourG     = flag.Bool("4g", false, "Bias reports towards heavy 4G usage")
	brand     = flag.String("brand", "", "Fix the brand for all devices (random when empty)")
	model     = flag.String("model", "", "Fix the model for all devices (random when empty)")
	chart     = flag.Bool("chart", true, "Query the usage chart after uploading")
	timeout   = flag.Duration("timeout", 10*time.Second, "HTTP request timeout")
	verbose   = flag.Bool("verbose", false, "Enable verbose logging")
)

func main() {
	flag.Parse()

	var logger *zap.Logger
	var err error
	if *verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	sim := NewSimulator(SimulatorConfig{
		ServerURL:  *serverURL,
		Devices:    *devices,
		Days:       *days,
		Heavy4G:    *fourG,
		Brand:      *brand,
		Model:      *model,
		QueryChart: *chart,
		Timeout:    *timeout,
	}, logger)

	if err := sim.Run(); err != nil {
		logger.Fatal("Simulation failed", zap.Error(err))
	}
}
