// Package tracker is the contract shared by the driver shim and the
// tracker-bridge sidecar that fronts the vendor's eye tracking runtime.
package tracker

import (
	"context"

	"google.golang.org/grpc"

	"github.com/hashicorp/go-plugin"

	"github.com/moeilijk/gaze-shim/pkg/tracker/trackerrpc"
)

// Handshake is shared by the bridge process and its host.
var Handshake = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "TRACKER_PLUGIN",
	MagicCookieValue: "gaze",
}

// PluginMap is the map of plugins the bridge can dispense.
var PluginMap = map[string]plugin.Plugin{
	"tracker": &ServicePlugin{},
}

// SessionID identifies a sub-session created on the tracker service.
type SessionID uint32

// Vec2 is a 2-D tangent-space vector in the tracker's coordinate frame.
type Vec2 struct {
	X float64
	Y float64
}

// HmdInfo is the hardware identity read from the attached headset.
type HmdInfo struct {
	VendorID  uint16
	ProductID uint16
	Serial    string
}

// EyeInfo is one raw eye tracking sample. A TimeSeconds of zero or less
// means the tracker had no valid data for the requested cycle. GazeTan holds
// the left and right eye tangent pairs, in that order.
type EyeInfo struct {
	TimeSeconds float64
	GazeTan     [2]Vec2
}

// Service is the interface the bridge exposes as a plugin.
type Service interface {
	CreateSession() (SessionID, error)
	DestroySession(id SessionID) error
	HmdInfo(id SessionID) (HmdInfo, error)
	TimeSeconds() (float64, error)
	EyeTrackingInfo(id SessionID, atSeconds float64) (EyeInfo, error)
}

// ServicePlugin is the plugin.GRPCPlugin implementation so the service can be
// served and consumed across the process boundary.
type ServicePlugin struct {
	plugin.Plugin
	// Impl is the concrete service, set on the serving side.
	Impl Service
}

// GRPCServer constructor
func (p *ServicePlugin) GRPCServer(broker *plugin.GRPCBroker, s *grpc.Server) error {
	trackerrpc.RegisterTrackerServer(s, &grpcServer{impl: p.Impl})
	return nil
}

// GRPCClient constructor
func (p *ServicePlugin) GRPCClient(ctx context.Context, broker *plugin.GRPCBroker, c *grpc.ClientConn) (interface{}, error) {
	return &grpcClient{client: trackerrpc.NewTrackerClient(c)}, nil
}
