// Package trackerrpc carries the wire contract between the shim and the
// tracker bridge. It is intentionally handwritten to avoid protoc: messages
// are plain structs moved by the codec in this package, and the service is
// described directly with grpc.ServiceDesc.
package trackerrpc

import (
	"context"

	"google.golang.org/grpc"
)

const serviceName = "gazeshim.tracker.Tracker"

type CreateSessionRequest struct{}

type CreateSessionResponse struct {
	SessionID uint32
}

type DestroySessionRequest struct {
	SessionID uint32
}

type DestroySessionResponse struct{}

type HmdInfoRequest struct {
	SessionID uint32
}

type HmdInfoResponse struct {
	VendorID  uint32
	ProductID uint32
	Serial    string
}

type TimeRequest struct{}

type TimeResponse struct {
	Seconds float64
}

type EyeTrackingInfoRequest struct {
	SessionID uint32
	AtSeconds float64
}

type EyeTrackingInfoResponse struct {
	TimeSeconds float64
	LeftTanX    float64
	LeftTanY    float64
	RightTanX   float64
	RightTanY   float64
}

// TrackerClient is the client API for the Tracker service.
type TrackerClient interface {
	CreateSession(ctx context.Context, in *CreateSessionRequest, opts ...grpc.CallOption) (*CreateSessionResponse, error)
	DestroySession(ctx context.Context, in *DestroySessionRequest, opts ...grpc.CallOption) (*DestroySessionResponse, error)
	HmdInfo(ctx context.Context, in *HmdInfoRequest, opts ...grpc.CallOption) (*HmdInfoResponse, error)
	TimeSeconds(ctx context.Context, in *TimeRequest, opts ...grpc.CallOption) (*TimeResponse, error)
	EyeTrackingInfo(ctx context.Context, in *EyeTrackingInfoRequest, opts ...grpc.CallOption) (*EyeTrackingInfoResponse, error)
}

type trackerClient struct{ cc grpc.ClientConnInterface }

func NewTrackerClient(cc grpc.ClientConnInterface) TrackerClient {
	return &trackerClient{cc}
}

// invoke routes a unary call through the plain-struct codec. Forcing the
// codec per call keeps go-plugin's own protobuf services untouched on the
// shared connection.
func (c *trackerClient) invoke(ctx context.Context, method string, in, out interface{}, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.ForceCodec(Codec{})}, opts...)
	return c.cc.Invoke(ctx, "/"+serviceName+"/"+method, in, out, opts...)
}

func (c *trackerClient) CreateSession(ctx context.Context, in *CreateSessionRequest, opts ...grpc.CallOption) (*CreateSessionResponse, error) {
	out := new(CreateSessionResponse)
	if err := c.invoke(ctx, "CreateSession", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *trackerClient) DestroySession(ctx context.Context, in *DestroySessionRequest, opts ...grpc.CallOption) (*DestroySessionResponse, error) {
	out := new(DestroySessionResponse)
	if err := c.invoke(ctx, "DestroySession", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *trackerClient) HmdInfo(ctx context.Context, in *HmdInfoRequest, opts ...grpc.CallOption) (*HmdInfoResponse, error) {
	out := new(HmdInfoResponse)
	if err := c.invoke(ctx, "HmdInfo", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *trackerClient) TimeSeconds(ctx context.Context, in *TimeRequest, opts ...grpc.CallOption) (*TimeResponse, error) {
	out := new(TimeResponse)
	if err := c.invoke(ctx, "TimeSeconds", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *trackerClient) EyeTrackingInfo(ctx context.Context, in *EyeTrackingInfoRequest, opts ...grpc.CallOption) (*EyeTrackingInfoResponse, error) {
	out := new(EyeTrackingInfoResponse)
	if err := c.invoke(ctx, "EyeTrackingInfo", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// TrackerServer is the server API for the Tracker service.
type TrackerServer interface {
	CreateSession(context.Context, *CreateSessionRequest) (*CreateSessionResponse, error)
	DestroySession(context.Context, *DestroySessionRequest) (*DestroySessionResponse, error)
	HmdInfo(context.Context, *HmdInfoRequest) (*HmdInfoResponse, error)
	TimeSeconds(context.Context, *TimeRequest) (*TimeResponse, error)
	EyeTrackingInfo(context.Context, *EyeTrackingInfoRequest) (*EyeTrackingInfoResponse, error)
	mustEmbedUnimplementedTrackerServer()
}

type UnimplementedTrackerServer struct{}

func (UnimplementedTrackerServer) CreateSession(context.Context, *CreateSessionRequest) (*CreateSessionResponse, error) {
	return nil, errUnimplemented("CreateSession")
}
func (UnimplementedTrackerServer) DestroySession(context.Context, *DestroySessionRequest) (*DestroySessionResponse, error) {
	return nil, errUnimplemented("DestroySession")
}
func (UnimplementedTrackerServer) HmdInfo(context.Context, *HmdInfoRequest) (*HmdInfoResponse, error) {
	return nil, errUnimplemented("HmdInfo")
}
func (UnimplementedTrackerServer) TimeSeconds(context.Context, *TimeRequest) (*TimeResponse, error) {
	return nil, errUnimplemented("TimeSeconds")
}
func (UnimplementedTrackerServer) EyeTrackingInfo(context.Context, *EyeTrackingInfoRequest) (*EyeTrackingInfoResponse, error) {
	return nil, errUnimplemented("EyeTrackingInfo")
}
func (UnimplementedTrackerServer) mustEmbedUnimplementedTrackerServer() {}

func unaryHandler[Req any](call func(context.Context, *Req) (interface{}, error)) func(interface{}, context.Context, func(interface{}) error, grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(_ interface{}, ctx context.Context, dec func(interface{}) error, _ grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		return call(ctx, in)
	}
}

func RegisterTrackerServer(s grpc.ServiceRegistrar, srv TrackerServer) {
	s.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*TrackerServer)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "CreateSession",
				Handler: unaryHandler(func(ctx context.Context, in *CreateSessionRequest) (interface{}, error) {
					return srv.CreateSession(ctx, in)
				}),
			},
			{
				MethodName: "DestroySession",
				Handler: unaryHandler(func(ctx context.Context, in *DestroySessionRequest) (interface{}, error) {
					return srv.DestroySession(ctx, in)
				}),
			},
			{
				MethodName: "HmdInfo",
				Handler: unaryHandler(func(ctx context.Context, in *HmdInfoRequest) (interface{}, error) {
					return srv.HmdInfo(ctx, in)
				}),
			},
			{
				MethodName: "TimeSeconds",
				Handler: unaryHandler(func(ctx context.Context, in *TimeRequest) (interface{}, error) {
					return srv.TimeSeconds(ctx, in)
				}),
			},
			{
				MethodName: "EyeTrackingInfo",
				Handler: unaryHandler(func(ctx context.Context, in *EyeTrackingInfoRequest) (interface{}, error) {
					return srv.EyeTrackingInfo(ctx, in)
				}),
			},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "tracker.proto",
	}, srv)
}
