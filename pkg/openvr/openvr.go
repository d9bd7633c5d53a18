// Package openvr declares the slice of the OpenVR driver-side runtime
// contract that gaze-shim compiles against. The runtime itself lives in the
// hosting VR server process; this package only mirrors the interfaces,
// handles and error codes the shim exchanges with it.
package openvr

// InitError mirrors the host's EVRInitError codes. Values forwarded from the
// wrapped device or the host are passed through unchanged.
type InitError int32

const (
	InitErrorNone InitError = 0

	InitErrorInterfaceNotFound InitError = 105
	InitErrorHmdNotFound       InitError = 108
)

func (e InitError) String() string {
	switch e {
	case InitErrorNone:
		return "None"
	case InitErrorInterfaceNotFound:
		return "Init_InterfaceNotFound"
	case InitErrorHmdNotFound:
		return "Init_HmdNotFound"
	}
	return "Unknown"
}

// InputError mirrors the host's EVRInputError codes.
type InputError int32

const (
	InputErrorNone          InputError = 0
	InputErrorInvalidHandle InputError = 4
)

// DeviceClass identifies what kind of tracked device a driver registers.
type DeviceClass int32

const (
	DeviceClassInvalid           DeviceClass = 0
	DeviceClassHMD               DeviceClass = 1
	DeviceClassController        DeviceClass = 2
	DeviceClassGenericTracker    DeviceClass = 3
	DeviceClassTrackingReference DeviceClass = 4
)

// TrackedDeviceIndexInvalid is the sentinel for "no device index assigned".
const TrackedDeviceIndexInvalid uint32 = 0xFFFFFFFF

// PropertyContainerHandle addresses a device's property store in the host.
type PropertyContainerHandle uint64

// InputComponentHandle addresses an input component created in the host.
type InputComponentHandle uint64

// Property is a tracked-device property tag.
type Property int32

// PropSupportsEyeTracking advertises that the device will publish eye
// tracking data. Undocumented by the host, but honored by it.
const PropSupportsEyeTracking Property = 6009

// DriverPose is the per-frame pose a tracked device reports.
type DriverPose struct {
	PoseIsValid       bool
	DeviceIsConnected bool
	Position          [3]float64
	Rotation          [4]float64 // w, x, y, z
	Velocity          [3]float64
}

// Interface version strings used with the generic-interface lookup.
const (
	ServerTrackedDeviceProviderVersion = "IServerTrackedDeviceProvider_004"
	ServerDriverHostVersion            = "IVRServerDriverHost_006"
	PropertiesVersion                  = "IVRProperties_001"
	DriverInputInternalVersion         = "IVRDriverInputInternal_002"
	DriverInputLegacyVersion           = "IVRDriverInputInternal_001"
)

// InterfaceVersions is what a provider reports from GetInterfaceVersions.
var InterfaceVersions = []string{
	ServerTrackedDeviceProviderVersion,
	ServerDriverHostVersion,
	PropertiesVersion,
}

// EyeTrackingUpdate is the structured per-cycle eye tracking payload used by
// the current host input interface.
type EyeTrackingUpdate struct {
	Direction [3]float64 // unit gaze direction, -Z forward
	Valid     bool
	Tracked   bool
	Active    bool
}

// LegacyEyeTrackingUpdate is the bit-flag payload used by the older host
// input interface.
type LegacyEyeTrackingUpdate struct {
	Flags     uint16
	Engaged   uint8
	Direction [3]float64
}
