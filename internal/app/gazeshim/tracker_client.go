package gazeshim

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/hashicorp/go-plugin"

	"github.com/moeilijk/gaze-shim/pkg/tracker"
)

func bridgeCommand() string {
	if path := os.Getenv("GAZESHIM_BRIDGE"); path != "" {
		return path
	}
	name := "./tracker-bridge"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	return name
}

// startTrackerClient launches the tracker bridge sidecar and dispenses the
// tracker service from it. The returned function kills the bridge.
func startTrackerClient() (tracker.Service, func(), error) {
	cmd := exec.Command(bridgeCommand())

	// We're a host. Start by launching the bridge process.
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  tracker.Handshake,
		Plugins:          tracker.PluginMap,
		Cmd:              cmd,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		AutoMTLS:         true,
	})

	rpcClient, err := client.Client()
	if err != nil {
		client.Kill()
		return nil, nil, err
	}

	// Tie the bridge to this process so it cannot outlive the host. Best
	// effort: a bridge without a job object still dies with client.Kill.
	if err := bindProcessGroup(cmd.Process); err != nil {
		debugLog("bind bridge process group: %v", err)
	}

	raw, err := rpcClient.Dispense("tracker")
	if err != nil {
		client.Kill()
		return nil, nil, err
	}
	svc, ok := raw.(tracker.Service)
	if !ok {
		client.Kill()
		return nil, nil, fmt.Errorf("unexpected tracker plugin type %T", raw)
	}

	return svc, client.Kill, nil
}
