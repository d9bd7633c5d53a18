package main

import (
	"log"
	"os"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"
	"github.com/sstallion/go-hid"

	"github.com/moeilijk/gaze-shim/internal/bridge"
	"github.com/moeilijk/gaze-shim/pkg/tracker"
)

func main() {
	hid.Init()
	defer hid.Exit()

	service := bridge.StartService()
	go func() {
		for {
			err := service.Recv()
			if err != nil {
				log.Printf("tracker recv failed: %v\n", err)
			}
		}
	}()

	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: tracker.Handshake,
		Plugins: map[string]plugin.Plugin{
			"tracker": &tracker.ServicePlugin{Impl: service},
		},
		Logger: hclog.New(&hclog.LoggerOptions{
			Name:   "tracker-bridge",
			Level:  hclog.Info,
			Output: os.Stderr,
		}),

		// A non-nil value here enables gRPC serving for this plugin...
		GRPCServer: plugin.DefaultGRPCServer,
	})
}
