package gazeshim

import (
	"fmt"
	"log"
	"runtime"
	"strings"

	"github.com/moeilijk/gaze-shim/pkg/openvr"
	"github.com/moeilijk/gaze-shim/pkg/tracker"
)

// The vendor driver whose HMD registrations get wrapped. Devices registered
// by any other driver in the process always pass through untouched.
const targetVendorModule = "github.com/pimaxvr/driver-aapvr"

// selfModule is skipped during caller attribution so the resolver lands on
// the frame that entered the hook, not on the hook itself.
const selfModule = "github.com/moeilijk/gaze-shim"

// callerResolver reports the Go module of the nearest calling frame outside
// this module. Injectable so tests can simulate any attribution outcome.
type callerResolver func() (string, bool)

// deviceHook wraps the host's registration interface, substituting a
// decorated device when the targeted vendor driver registers its HMD.
type deviceHook struct {
	openvr.ServerDriverHost // untouched slots forward to the original

	original      openvr.ServerDriverHost
	dctx          *openvr.DriverContext
	svc           tracker.Service
	session       tracker.SessionID
	resolveCaller callerResolver
}

// installDeviceHook replaces the registered host interface with the hook.
// Install exactly once: a second install would chain hooks and double-wrap.
// Registrations funnel through the replacement from then on; the binding is
// never torn down, matching the host's lifetime expectations for a driver.
func installDeviceHook(dctx *openvr.DriverContext, svc tracker.Service, session tracker.SessionID) error {
	raw, ierr := dctx.GetGenericInterface(openvr.ServerDriverHostVersion)
	if ierr != openvr.InitErrorNone {
		return fmt.Errorf("resolve %s: %v", openvr.ServerDriverHostVersion, ierr)
	}
	host, ok := raw.(openvr.ServerDriverHost)
	if !ok {
		return fmt.Errorf("%s has unexpected type %T", openvr.ServerDriverHostVersion, raw)
	}

	hook := &deviceHook{
		ServerDriverHost: host,
		original:         host,
		dctx:             dctx,
		svc:              svc,
		session:          session,
		resolveCaller:    callerModule,
	}
	dctx.SetGenericInterface(openvr.ServerDriverHostVersion, hook)
	return nil
}

// TrackedDeviceAdded decides whether to decorate, then hands the (possibly
// substituted) device to the original registration method. Its return value
// is the host's, unchanged.
func (h *deviceHook) TrackedDeviceAdded(serial string, class openvr.DeviceClass, device openvr.TrackedDeviceServerDriver) bool {
	if h.isTargetDriver() && class == openvr.DeviceClassHMD {
		device = h.wrapDevice(serial, device)
	}
	return h.original.TrackedDeviceAdded(serial, class, device)
}

// wrapDevice never lets a construction failure block registration: on error
// or panic the original device is registered undecorated.
func (h *deviceHook) wrapDevice(serial string, device openvr.TrackedDeviceServerDriver) (out openvr.TrackedDeviceServerDriver) {
	out = device
	defer func() {
		if r := recover(); r != nil {
			log.Printf("gazeshim: shim construction panicked, leaving %q undecorated: %v", serial, r)
		}
	}()

	shim, err := newHmdShim(device, h.dctx, h.svc, h.session)
	if err != nil {
		log.Printf("gazeshim: leaving %q undecorated: %v", serial, err)
		return
	}
	log.Printf("gazeshim: wrapping HMD %q", serial)
	out = shim
	return
}

// isTargetDriver is the attribution check. An unresolvable caller is never
// the target.
func (h *deviceHook) isTargetDriver() bool {
	module, ok := h.resolveCaller()
	return ok && module == targetVendorModule
}

// callerModule walks the call stack out of this module and maps the first
// foreign frame to the module that declared it.
func callerModule() (string, bool) {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(2, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if frame.Function != "" {
			if m := moduleOf(frame.Function); m != "" && m != selfModule {
				return m, true
			}
		}
		if !more {
			return "", false
		}
	}
}

// moduleOf reduces a fully qualified function name, e.g.
// "github.com/vendor/driver/internal/hmd.(*Device).Register", to its module
// path. Module paths are assumed to be the conventional host/org/repo three
// segments; shorter package paths (stdlib) are returned whole.
func moduleOf(function string) string {
	slash := strings.LastIndex(function, "/")
	dot := strings.Index(function[slash+1:], ".")
	if dot < 0 {
		return ""
	}
	pkg := function[:slash+1+dot]
	parts := strings.SplitN(pkg, "/", 4)
	if len(parts) < 3 {
		return pkg
	}
	return strings.Join(parts[:3], "/")
}
