package tracker

import (
	"context"
	"time"

	"github.com/moeilijk/gaze-shim/pkg/tracker/trackerrpc"
)

// callTimeout bounds every bridge call. The bridge answers from an in-memory
// cache, so a call that takes longer than this is a wedged bridge; the
// deadline turns that into an error instead of an indefinite stall.
const callTimeout = 3 * time.Second

func callContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), callTimeout)
}

// grpcClient adapts the wire contract to the Service interface on the
// consuming side.
type grpcClient struct {
	client trackerrpc.TrackerClient
}

func (c *grpcClient) CreateSession() (SessionID, error) {
	ctx, cancel := callContext()
	defer cancel()
	resp, err := c.client.CreateSession(ctx, &trackerrpc.CreateSessionRequest{})
	if err != nil {
		return 0, err
	}
	return SessionID(resp.SessionID), nil
}

func (c *grpcClient) DestroySession(id SessionID) error {
	ctx, cancel := callContext()
	defer cancel()
	_, err := c.client.DestroySession(ctx, &trackerrpc.DestroySessionRequest{SessionID: uint32(id)})
	return err
}

func (c *grpcClient) HmdInfo(id SessionID) (HmdInfo, error) {
	ctx, cancel := callContext()
	defer cancel()
	resp, err := c.client.HmdInfo(ctx, &trackerrpc.HmdInfoRequest{SessionID: uint32(id)})
	if err != nil {
		return HmdInfo{}, err
	}
	return HmdInfo{
		VendorID:  uint16(resp.VendorID),
		ProductID: uint16(resp.ProductID),
		Serial:    resp.Serial,
	}, nil
}

func (c *grpcClient) TimeSeconds() (float64, error) {
	ctx, cancel := callContext()
	defer cancel()
	resp, err := c.client.TimeSeconds(ctx, &trackerrpc.TimeRequest{})
	if err != nil {
		return 0, err
	}
	return resp.Seconds, nil
}

func (c *grpcClient) EyeTrackingInfo(id SessionID, atSeconds float64) (EyeInfo, error) {
	ctx, cancel := callContext()
	defer cancel()
	resp, err := c.client.EyeTrackingInfo(ctx, &trackerrpc.EyeTrackingInfoRequest{
		SessionID: uint32(id),
		AtSeconds: atSeconds,
	})
	if err != nil {
		return EyeInfo{}, err
	}
	return EyeInfo{
		TimeSeconds: resp.TimeSeconds,
		GazeTan: [2]Vec2{
			{X: resp.LeftTanX, Y: resp.LeftTanY},
			{X: resp.RightTanX, Y: resp.RightTanY},
		},
	}, nil
}

// grpcServer adapts a Service to the wire contract on the serving side.
type grpcServer struct {
	trackerrpc.UnimplementedTrackerServer
	impl Service
}

func (s *grpcServer) CreateSession(ctx context.Context, req *trackerrpc.CreateSessionRequest) (*trackerrpc.CreateSessionResponse, error) {
	id, err := s.impl.CreateSession()
	if err != nil {
		return nil, err
	}
	return &trackerrpc.CreateSessionResponse{SessionID: uint32(id)}, nil
}

func (s *grpcServer) DestroySession(ctx context.Context, req *trackerrpc.DestroySessionRequest) (*trackerrpc.DestroySessionResponse, error) {
	if err := s.impl.DestroySession(SessionID(req.SessionID)); err != nil {
		return nil, err
	}
	return &trackerrpc.DestroySessionResponse{}, nil
}

func (s *grpcServer) HmdInfo(ctx context.Context, req *trackerrpc.HmdInfoRequest) (*trackerrpc.HmdInfoResponse, error) {
	info, err := s.impl.HmdInfo(SessionID(req.SessionID))
	if err != nil {
		return nil, err
	}
	return &trackerrpc.HmdInfoResponse{
		VendorID:  uint32(info.VendorID),
		ProductID: uint32(info.ProductID),
		Serial:    info.Serial,
	}, nil
}

func (s *grpcServer) TimeSeconds(ctx context.Context, req *trackerrpc.TimeRequest) (*trackerrpc.TimeResponse, error) {
	secs, err := s.impl.TimeSeconds()
	if err != nil {
		return nil, err
	}
	return &trackerrpc.TimeResponse{Seconds: secs}, nil
}

func (s *grpcServer) EyeTrackingInfo(ctx context.Context, req *trackerrpc.EyeTrackingInfoRequest) (*trackerrpc.EyeTrackingInfoResponse, error) {
	info, err := s.impl.EyeTrackingInfo(SessionID(req.SessionID), req.AtSeconds)
	if err != nil {
		return nil, err
	}
	return &trackerrpc.EyeTrackingInfoResponse{
		TimeSeconds: info.TimeSeconds,
		LeftTanX:    info.GazeTan[0].X,
		LeftTanY:    info.GazeTan[0].Y,
		RightTanX:   info.GazeTan[1].X,
		RightTanY:   info.GazeTan[1].Y,
	}, nil
}
