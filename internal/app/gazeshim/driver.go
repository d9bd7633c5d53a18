// Package gazeshim is the eye tracking shim driver. Loaded next to the
// targeted vendor driver, it validates that a supported headset is attached,
// hooks the host's device registration surface and wraps the vendor's HMD so
// that gaze samples flow into the host's eye tracking input component.
package gazeshim

import (
	"fmt"
	"log"

	"github.com/moeilijk/gaze-shim/pkg/openvr"
	"github.com/moeilijk/gaze-shim/pkg/tracker"
)

// Identity of the headsets this shim supports; anything else leaves the
// vendor driver untouched.
const targetVendorID = 0x34A4

var supportedProducts = map[uint16]string{
	0x0012: "Crystal",
	0x0040: "Crystal Super",
}

func isSupportedHeadset(info tracker.HmdInfo) bool {
	if info.VendorID != targetVendorID {
		return false
	}
	_, ok := supportedProducts[info.ProductID]
	return ok
}

// Driver is the provider handed to the host through the factory entry point.
// One instance exists per process, mirroring the host's plugin model.
type Driver struct {
	// dial starts (or attaches to) the tracker bridge. Overridable in tests;
	// the returned kill function tears the bridge down.
	dial func() (tracker.Service, func(), error)

	loaded      bool
	svc         tracker.Service
	kill        func()
	session     tracker.SessionID
	sessionOpen bool
}

var thisDriver *Driver

// HmdDriverFactory is the entry point the host resolves after loading the
// shim. Unrecognized interface names report InterfaceNotFound.
func HmdDriverFactory(interfaceName string) (interface{}, openvr.InitError) {
	if interfaceName == openvr.ServerTrackedDeviceProviderVersion {
		if thisDriver == nil {
			thisDriver = &Driver{dial: startTrackerClient}
		}
		return thisDriver, openvr.InitErrorNone
	}
	return nil, openvr.InitErrorInterfaceNotFound
}

// Init runs the hardware session gate and, only when a supported headset is
// present, installs the device registration hook. A failed gate leaves the
// shim inert and reports HmdNotFound so the host can tell "nothing to shim"
// from a successful load.
func (d *Driver) Init(dctx *openvr.DriverContext) openvr.InitError {
	if !d.loaded {
		if err := d.openSession(); err != nil {
			log.Printf("gazeshim: %v", err)
		} else if info, err := d.svc.HmdInfo(d.session); err != nil {
			log.Printf("gazeshim: headset identity: %v", err)
		} else if !isSupportedHeadset(info) {
			log.Printf("gazeshim: headset %04x:%04x is not compatible", info.VendorID, info.ProductID)
		} else if err := installDeviceHook(dctx, d.svc, d.session); err != nil {
			log.Printf("gazeshim: install hook: %v", err)
		} else {
			log.Printf("gazeshim: hooked TrackedDeviceAdded for %s", supportedProducts[info.ProductID])
			d.loaded = true
		}
	}

	if !d.loaded {
		return openvr.InitErrorHmdNotFound
	}
	return openvr.InitErrorNone
}

// openSession brings up the tracker bridge and creates the sub-session all
// later hardware queries run on. Each step maps to the same unsupported
// outcome for the caller. Steps that already succeeded on an earlier Init
// are reused, not redone: re-dialing would leak the running bridge.
func (d *Driver) openSession() error {
	if d.svc == nil {
		svc, kill, err := d.dial()
		if err != nil {
			return fmt.Errorf("%w: tracker service: %v", errUnsupported, err)
		}
		d.svc = svc
		d.kill = kill
	}

	if !d.sessionOpen {
		session, err := d.svc.CreateSession()
		if err != nil {
			return fmt.Errorf("%w: create session: %v", errUnsupported, err)
		}
		d.session = session
		d.sessionOpen = true
	}
	return nil
}

// Cleanup releases the sub-session, then the bridge. Both tolerate having
// never been opened.
func (d *Driver) Cleanup() {
	if d.sessionOpen {
		if err := d.svc.DestroySession(d.session); err != nil {
			debugLog("destroy session: %v", err)
		}
		d.sessionOpen = false
	}
	if d.kill != nil {
		d.kill()
		d.kill = nil
	}
	d.svc = nil
}

// GetInterfaceVersions reports the host interface versions this provider was
// built against.
func (d *Driver) GetInterfaceVersions() []string {
	return openvr.InterfaceVersions
}

func (d *Driver) RunFrame() {}

func (d *Driver) ShouldBlockStandbyMode() bool { return false }

func (d *Driver) EnterStandby() {}

func (d *Driver) LeaveStandby() {}
