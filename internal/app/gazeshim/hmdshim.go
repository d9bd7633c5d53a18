package gazeshim

import (
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/moeilijk/gaze-shim/internal/gaze"
	"github.com/moeilijk/gaze-shim/pkg/openvr"
	"github.com/moeilijk/gaze-shim/pkg/tracker"
)

const (
	// eyeTrackingComponentPath is mandated by the host input interface.
	eyeTrackingComponentPath = "/eyetracking"

	// samplePeriod is how often the worker publishes. It is also the only
	// blocking point, so it bounds shutdown latency.
	samplePeriod = 5 * time.Millisecond
)

// inputSink abstracts the two driver-input flavors the host has shipped, so
// one shim type serves both.
type inputSink interface {
	createComponent(container openvr.PropertyContainerHandle) (openvr.InputComponentHandle, error)
	publish(component openvr.InputComponentHandle, p gaze.Published) error
}

type structuredSink struct {
	input openvr.DriverInputInternal
}

func (s structuredSink) createComponent(container openvr.PropertyContainerHandle) (openvr.InputComponentHandle, error) {
	component, ierr := s.input.CreateEyeTrackingComponent(container, eyeTrackingComponentPath)
	if ierr != openvr.InputErrorNone {
		return 0, fmt.Errorf("create eye tracking component: input error %d", ierr)
	}
	return component, nil
}

func (s structuredSink) publish(component openvr.InputComponentHandle, p gaze.Published) error {
	update := openvr.EyeTrackingUpdate{
		Direction: p.Direction,
		Valid:     p.Valid,
		Tracked:   p.Tracked,
		Active:    p.Active,
	}
	if ierr := s.input.UpdateEyeTrackingComponent(component, &update); ierr != openvr.InputErrorNone {
		return fmt.Errorf("update eye tracking component: input error %d", ierr)
	}
	return nil
}

type legacySink struct {
	input openvr.DriverInputLegacy
}

func (s legacySink) createComponent(container openvr.PropertyContainerHandle) (openvr.InputComponentHandle, error) {
	component, ierr := s.input.CreateEyeTrackingComponent(container, eyeTrackingComponentPath)
	if ierr != openvr.InputErrorNone {
		return 0, fmt.Errorf("create eye tracking component: input error %d", ierr)
	}
	return component, nil
}

func (s legacySink) publish(component openvr.InputComponentHandle, p gaze.Published) error {
	flags, engaged := p.LegacyBits()
	update := openvr.LegacyEyeTrackingUpdate{
		Flags:     flags,
		Engaged:   engaged,
		Direction: p.Direction,
	}
	if ierr := s.input.UpdateEyeTrackingComponent(component, &update); ierr != openvr.InputErrorNone {
		return fmt.Errorf("update eye tracking component: input error %d", ierr)
	}
	return nil
}

// probeInputSink discovers which input interface flavor this host exposes.
// Neither being present is the "host cannot take eye tracking data" case.
func probeInputSink(dctx *openvr.DriverContext) (inputSink, error) {
	if raw, ierr := dctx.GetGenericInterface(openvr.DriverInputInternalVersion); ierr == openvr.InitErrorNone {
		if input, ok := raw.(openvr.DriverInputInternal); ok {
			return structuredSink{input: input}, nil
		}
	}
	if raw, ierr := dctx.GetGenericInterface(openvr.DriverInputLegacyVersion); ierr == openvr.InitErrorNone {
		if input, ok := raw.(openvr.DriverInputLegacy); ok {
			return legacySink{input: input}, nil
		}
	}
	return nil, fmt.Errorf("%w: host exposes no eye tracking input interface", errUnsupported)
}

// hmdShim wraps the vendor's HMD driver with the intent to add an eye
// tracking component, forwarding everything else. The wrapped device stays
// host-owned: the shim never destroys it.
type hmdShim struct {
	wrapped openvr.TrackedDeviceServerDriver
	props   openvr.Properties
	sink    inputSink
	svc     tracker.Service
	session tracker.SessionID

	deviceIndex atomic.Uint32
	active      atomic.Bool
	workerDone  chan struct{}
	component   openvr.InputComponentHandle
}

// newHmdShim probes the host for the capabilities the shim needs. Probe
// failure means the caller must register the original device instead.
func newHmdShim(device openvr.TrackedDeviceServerDriver, dctx *openvr.DriverContext, svc tracker.Service, session tracker.SessionID) (*hmdShim, error) {
	sink, err := probeInputSink(dctx)
	if err != nil {
		return nil, err
	}

	raw, ierr := dctx.GetGenericInterface(openvr.PropertiesVersion)
	if ierr != openvr.InitErrorNone {
		return nil, fmt.Errorf("%w: host exposes no property interface", errUnsupported)
	}
	props, ok := raw.(openvr.Properties)
	if !ok {
		return nil, fmt.Errorf("%w: property interface has unexpected type %T", errUnsupported, raw)
	}

	s := &hmdShim{
		wrapped: device,
		props:   props,
		sink:    sink,
		svc:     svc,
		session: session,
	}
	s.deviceIndex.Store(openvr.TrackedDeviceIndexInvalid)
	return s, nil
}

// Activate forwards to the real device first; its verdict is returned
// unmodified and nothing of ours runs if it fails. The worker is only
// spawned once the input component handle is in place, so the worker never
// observes it unset.
func (s *hmdShim) Activate(deviceIndex uint32) openvr.InitError {
	if ierr := s.wrapped.Activate(deviceIndex); ierr != openvr.InitErrorNone {
		return ierr
	}

	s.deviceIndex.Store(deviceIndex)

	container := s.props.TrackedDeviceToPropertyContainer(deviceIndex)

	// Advertise that we will pass eye tracking data.
	if err := s.props.SetBoolProperty(container, openvr.PropSupportsEyeTracking, true); err != nil {
		debugLog("set eye tracking property: %v", err)
	}

	component, err := s.sink.createComponent(container)
	if err != nil {
		// The device itself activated fine; stay transparent rather than
		// failing the host's activation.
		log.Printf("gazeshim: %v; eye tracking disabled for device %d", err, deviceIndex)
		return openvr.InitErrorNone
	}
	s.component = component

	s.active.Store(true)
	s.workerDone = make(chan struct{})
	go s.update()

	return openvr.InitErrorNone
}

// Deactivate stops the worker before anything else, so no sample publish can
// land after the wrapped device starts tearing down. Safe to call twice.
func (s *hmdShim) Deactivate() {
	if s.active.CompareAndSwap(true, false) {
		<-s.workerDone
	}

	s.deviceIndex.Store(openvr.TrackedDeviceIndexInvalid)

	s.wrapped.Deactivate()
}

func (s *hmdShim) EnterStandby() {
	s.wrapped.EnterStandby()
}

func (s *hmdShim) GetComponent(nameAndVersion string) interface{} {
	return s.wrapped.GetComponent(nameAndVersion)
}

func (s *hmdShim) GetPose() openvr.DriverPose {
	return s.wrapped.GetPose()
}

func (s *hmdShim) DebugRequest(request string) string {
	return s.wrapped.DebugRequest(request)
}

// update is the sampling worker. Cancellation is cooperative: the flag is
// checked after every sleep, bounding shutdown latency at one period.
func (s *hmdShim) update() {
	defer close(s.workerDone)

	for {
		time.Sleep(samplePeriod)
		if !s.active.Load() {
			return
		}

		if err := s.sink.publish(s.component, gaze.Transform(s.readSample())); err != nil {
			debugLog("publish gaze sample: %v", err)
		}
	}
}

// readSample queries the tracker for the current cycle. Any failure is the
// same as "no data": the transform then publishes the forward fallback.
func (s *hmdShim) readSample() gaze.Sample {
	now, err := s.svc.TimeSeconds()
	if err != nil {
		return gaze.Sample{}
	}
	info, err := s.svc.EyeTrackingInfo(s.session, now)
	if err != nil {
		return gaze.Sample{}
	}
	return gaze.Sample{
		OK:          true,
		TimeSeconds: info.TimeSeconds,
		Left:        [2]float64{info.GazeTan[0].X, info.GazeTan[0].Y},
		Right:       [2]float64{info.GazeTan[1].X, info.GazeTan[1].Y},
	}
}
