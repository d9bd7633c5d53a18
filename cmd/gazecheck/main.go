package main

import (
	"flag"
	"log"
	"os"
	"time"

	shim "github.com/moeilijk/gaze-shim/internal/app/gazeshim"
)

var samples = flag.Int("samples", 20, "Number of gaze samples to print before exiting")
var interval = flag.Duration("interval", 100*time.Millisecond, "Delay between samples")

func main() {
	flag.Parse()

	if err := shim.Diagnose(os.Stdout, *samples, *interval); err != nil {
		log.Fatalf("gazecheck: %v", err)
	}
}
