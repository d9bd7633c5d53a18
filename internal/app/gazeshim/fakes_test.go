package gazeshim

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/moeilijk/gaze-shim/pkg/openvr"
	"github.com/moeilijk/gaze-shim/pkg/tracker"
)

// fakeTracker is an in-process tracker.Service.
type fakeTracker struct {
	mu          sync.Mutex
	nextSession tracker.SessionID
	destroyed   []tracker.SessionID
	createErr   error
	hmd         tracker.HmdInfo
	hmdErr      error
	eye         tracker.EyeInfo
}

func (f *fakeTracker) CreateSession() (tracker.SessionID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.nextSession++
	return f.nextSession, nil
}

func (f *fakeTracker) DestroySession(id tracker.SessionID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.destroyed = append(f.destroyed, id)
	return nil
}

func (f *fakeTracker) HmdInfo(id tracker.SessionID) (tracker.HmdInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.hmdErr != nil {
		return tracker.HmdInfo{}, f.hmdErr
	}
	return f.hmd, nil
}

func (f *fakeTracker) TimeSeconds() (float64, error) {
	return float64(time.Now().UnixNano()) / 1e9, nil
}

func (f *fakeTracker) EyeTrackingInfo(id tracker.SessionID, atSeconds float64) (tracker.EyeInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.eye, nil
}

// fakeDevice is the vendor device the shim wraps.
type fakeDevice struct {
	activateErr openvr.InitError

	activated   atomic.Bool
	deactivated atomic.Bool
	standbys    atomic.Int32
	debugs      atomic.Int32
	components  atomic.Int32
	poses       atomic.Int32
}

func (d *fakeDevice) Activate(deviceIndex uint32) openvr.InitError {
	if d.activateErr != openvr.InitErrorNone {
		return d.activateErr
	}
	d.activated.Store(true)
	d.deactivated.Store(false)
	return openvr.InitErrorNone
}

func (d *fakeDevice) Deactivate() {
	d.deactivated.Store(true)
}

func (d *fakeDevice) EnterStandby() {
	d.standbys.Add(1)
}

func (d *fakeDevice) GetComponent(nameAndVersion string) interface{} {
	d.components.Add(1)
	return nil
}

func (d *fakeDevice) GetPose() openvr.DriverPose {
	d.poses.Add(1)
	return openvr.DriverPose{PoseIsValid: true, DeviceIsConnected: true}
}

func (d *fakeDevice) DebugRequest(request string) string {
	d.debugs.Add(1)
	return "ok"
}

// fakeProps records property writes.
type fakeProps struct {
	mu       sync.Mutex
	boolSets map[openvr.Property]bool
}

func (p *fakeProps) TrackedDeviceToPropertyContainer(deviceIndex uint32) openvr.PropertyContainerHandle {
	return openvr.PropertyContainerHandle(1000 + uint64(deviceIndex))
}

func (p *fakeProps) SetBoolProperty(container openvr.PropertyContainerHandle, prop openvr.Property, value bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.boolSets == nil {
		p.boolSets = make(map[openvr.Property]bool)
	}
	p.boolSets[prop] = value
	return nil
}

const fakeComponentHandle openvr.InputComponentHandle = 42

// fakeInputInternal is the structured host input interface. It keeps
// violation flags for the ordering guarantees the shim makes, checked by the
// lifecycle tests.
type fakeInputInternal struct {
	dev *fakeDevice

	created atomic.Bool
	updates atomic.Int32

	createBeforeActivate   atomic.Bool
	publishBeforeCreate    atomic.Bool
	publishAfterDeactivate atomic.Bool
	badHandle              atomic.Bool
	badPath                atomic.Bool

	lastValid atomic.Bool
}

func (f *fakeInputInternal) CreateEyeTrackingComponent(container openvr.PropertyContainerHandle, name string) (openvr.InputComponentHandle, openvr.InputError) {
	if f.dev != nil && !f.dev.activated.Load() {
		f.createBeforeActivate.Store(true)
	}
	if name != "/eyetracking" {
		f.badPath.Store(true)
	}
	f.created.Store(true)
	return fakeComponentHandle, openvr.InputErrorNone
}

func (f *fakeInputInternal) UpdateEyeTrackingComponent(component openvr.InputComponentHandle, update *openvr.EyeTrackingUpdate) openvr.InputError {
	if component != fakeComponentHandle {
		f.badHandle.Store(true)
	}
	if !f.created.Load() {
		f.publishBeforeCreate.Store(true)
	}
	if f.dev != nil && f.dev.deactivated.Load() {
		f.publishAfterDeactivate.Store(true)
	}
	f.lastValid.Store(update.Valid)
	f.updates.Add(1)
	return openvr.InputErrorNone
}

// fakeInputLegacy is the older bit-flag flavor.
type fakeInputLegacy struct {
	updates   atomic.Int32
	lastFlags atomic.Uint32
}

func (f *fakeInputLegacy) CreateEyeTrackingComponent(container openvr.PropertyContainerHandle, name string) (openvr.InputComponentHandle, openvr.InputError) {
	return fakeComponentHandle, openvr.InputErrorNone
}

func (f *fakeInputLegacy) UpdateEyeTrackingComponent(component openvr.InputComponentHandle, update *openvr.LegacyEyeTrackingUpdate) openvr.InputError {
	f.lastFlags.Store(uint32(update.Flags)<<8 | uint32(update.Engaged))
	f.updates.Add(1)
	return openvr.InputErrorNone
}

type addedRecord struct {
	serial string
	class  openvr.DeviceClass
	device openvr.TrackedDeviceServerDriver
}

// fakeHost is the host registration surface.
type fakeHost struct {
	mu          sync.Mutex
	added       []addedRecord
	ret         bool
	poseUpdates int
	events      int
}

func (h *fakeHost) TrackedDeviceAdded(serial string, class openvr.DeviceClass, device openvr.TrackedDeviceServerDriver) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.added = append(h.added, addedRecord{serial: serial, class: class, device: device})
	return h.ret
}

func (h *fakeHost) TrackedDevicePoseUpdated(deviceIndex uint32, pose *openvr.DriverPose) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.poseUpdates++
}

func (h *fakeHost) VendorSpecificEvent(deviceIndex uint32, eventType int32, eventAgeSeconds float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events++
}

func (h *fakeHost) lastAdded(t *testing.T) addedRecord {
	t.Helper()
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.added) == 0 {
		t.Fatal("no device was registered")
	}
	return h.added[len(h.added)-1]
}

// newTestContext returns a context with the host surfaces a full-featured
// fake host exposes.
func newTestContext(host *fakeHost, props *fakeProps, input *fakeInputInternal) *openvr.DriverContext {
	ctx := openvr.NewDriverContext()
	if host != nil {
		ctx.SetGenericInterface(openvr.ServerDriverHostVersion, host)
	}
	if props != nil {
		ctx.SetGenericInterface(openvr.PropertiesVersion, props)
	}
	if input != nil {
		ctx.SetGenericInterface(openvr.DriverInputInternalVersion, input)
	}
	return ctx
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}
