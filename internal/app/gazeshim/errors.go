package gazeshim

import (
	"errors"
	"log"
	"os"
)

// errUnsupported marks any capability gap that downgrades the shim to
// pass-through behavior: tracker service unreachable, wrong headset, or a
// host without the eye tracking input interface. Never fatal to the host.
var errUnsupported = errors.New("eye tracker is not supported")

// debugMode enables verbose logging when GAZESHIM_DEBUG=1
var debugMode = os.Getenv("GAZESHIM_DEBUG") == "1"

func debugLog(format string, v ...interface{}) {
	if debugMode {
		log.Printf(format, v...)
	}
}
