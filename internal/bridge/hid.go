package bridge

import (
	"errors"
	"fmt"

	"github.com/sstallion/go-hid"

	"github.com/moeilijk/gaze-shim/pkg/tracker"
)

// vendorPimax is the USB vendor id the bridge reports headsets for. Which
// products are actually supported is the shim's decision, not the bridge's.
const vendorPimax = 0x34A4

// errHeadsetFound stops enumeration at the first matching device.
var errHeadsetFound = errors.New("headset found")

// enumerateHID is swappable in tests, which have no hardware on the bus.
var enumerateHID = hid.Enumerate

// headsetInfo reads the attached headset's identity off the HID bus.
func headsetInfo() (tracker.HmdInfo, error) {
	var info tracker.HmdInfo

	err := enumerateHID(vendorPimax, 0, func(d *hid.DeviceInfo) error {
		info = tracker.HmdInfo{
			VendorID:  d.VendorID,
			ProductID: d.ProductID,
			Serial:    d.SerialNbr,
		}
		return errHeadsetFound
	})
	if errors.Is(err, errHeadsetFound) {
		return info, nil
	}
	if err != nil {
		return tracker.HmdInfo{}, fmt.Errorf("enumerate hid devices: %w", err)
	}
	return tracker.HmdInfo{}, fmt.Errorf("no headset with vendor id %#04x attached", vendorPimax)
}
