package tracker

import (
	"context"
	"testing"
	"time"

	"google.golang.org/grpc"

	"github.com/moeilijk/gaze-shim/pkg/tracker/trackerrpc"
)

// recordingClient captures the context of every call so the tests can check
// the deadlines the adapter attaches.
type recordingClient struct {
	deadlines []time.Time
	missing   int
}

func (r *recordingClient) record(ctx context.Context) {
	if deadline, ok := ctx.Deadline(); ok {
		r.deadlines = append(r.deadlines, deadline)
	} else {
		r.missing++
	}
}

func (r *recordingClient) CreateSession(ctx context.Context, in *trackerrpc.CreateSessionRequest, opts ...grpc.CallOption) (*trackerrpc.CreateSessionResponse, error) {
	r.record(ctx)
	return &trackerrpc.CreateSessionResponse{}, nil
}

func (r *recordingClient) DestroySession(ctx context.Context, in *trackerrpc.DestroySessionRequest, opts ...grpc.CallOption) (*trackerrpc.DestroySessionResponse, error) {
	r.record(ctx)
	return &trackerrpc.DestroySessionResponse{}, nil
}

func (r *recordingClient) HmdInfo(ctx context.Context, in *trackerrpc.HmdInfoRequest, opts ...grpc.CallOption) (*trackerrpc.HmdInfoResponse, error) {
	r.record(ctx)
	return &trackerrpc.HmdInfoResponse{}, nil
}

func (r *recordingClient) TimeSeconds(ctx context.Context, in *trackerrpc.TimeRequest, opts ...grpc.CallOption) (*trackerrpc.TimeResponse, error) {
	r.record(ctx)
	return &trackerrpc.TimeResponse{}, nil
}

func (r *recordingClient) EyeTrackingInfo(ctx context.Context, in *trackerrpc.EyeTrackingInfoRequest, opts ...grpc.CallOption) (*trackerrpc.EyeTrackingInfoResponse, error) {
	r.record(ctx)
	return &trackerrpc.EyeTrackingInfoResponse{}, nil
}

func TestClientCallsCarryDeadlines(t *testing.T) {
	rec := &recordingClient{}
	c := &grpcClient{client: rec}

	before := time.Now()
	if _, err := c.CreateSession(); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if err := c.DestroySession(1); err != nil {
		t.Fatalf("DestroySession: %v", err)
	}
	if _, err := c.HmdInfo(1); err != nil {
		t.Fatalf("HmdInfo: %v", err)
	}
	if _, err := c.TimeSeconds(); err != nil {
		t.Fatalf("TimeSeconds: %v", err)
	}
	if _, err := c.EyeTrackingInfo(1, 0); err != nil {
		t.Fatalf("EyeTrackingInfo: %v", err)
	}

	if rec.missing != 0 {
		t.Fatalf("%d calls carried no deadline", rec.missing)
	}
	if len(rec.deadlines) != 5 {
		t.Fatalf("recorded %d calls, want 5", len(rec.deadlines))
	}
	// Each deadline must bound the call, not push it into the far future.
	limit := before.Add(callTimeout + time.Second)
	for i, deadline := range rec.deadlines {
		if deadline.After(limit) {
			t.Errorf("call %d deadline %v exceeds the call timeout", i, deadline)
		}
	}
}
