package openvr

// ServerTrackedDeviceProvider is the top-level contract a driver exposes to
// the host through the factory entry point.
type ServerTrackedDeviceProvider interface {
	Init(ctx *DriverContext) InitError
	Cleanup()
	GetInterfaceVersions() []string
	RunFrame()
	ShouldBlockStandbyMode() bool
	EnterStandby()
	LeaveStandby()
}

// TrackedDeviceServerDriver is the per-device lifecycle and control contract.
// The host drives it from threads of its own choosing.
type TrackedDeviceServerDriver interface {
	Activate(deviceIndex uint32) InitError
	Deactivate()
	EnterStandby()
	GetComponent(nameAndVersion string) interface{}
	GetPose() DriverPose
	DebugRequest(request string) string
}

// ServerDriverHost is the host-side registration surface every driver in the
// process calls into. TrackedDeviceAdded occupies the first slot.
type ServerDriverHost interface {
	TrackedDeviceAdded(serial string, class DeviceClass, device TrackedDeviceServerDriver) bool
	TrackedDevicePoseUpdated(deviceIndex uint32, pose *DriverPose)
	VendorSpecificEvent(deviceIndex uint32, eventType int32, eventAgeSeconds float64)
}

// Properties is the host's property-container surface.
type Properties interface {
	TrackedDeviceToPropertyContainer(deviceIndex uint32) PropertyContainerHandle
	SetBoolProperty(container PropertyContainerHandle, prop Property, value bool) error
}

// DriverInputInternal is the current host input interface for eye tracking
// components. Internal to the host, resolved by name at runtime.
type DriverInputInternal interface {
	CreateEyeTrackingComponent(container PropertyContainerHandle, name string) (InputComponentHandle, InputError)
	UpdateEyeTrackingComponent(component InputComponentHandle, update *EyeTrackingUpdate) InputError
}

// DriverInputLegacy is the older flavor of the same interface, taking the
// bit-flag payload.
type DriverInputLegacy interface {
	CreateEyeTrackingComponent(container PropertyContainerHandle, name string) (InputComponentHandle, InputError)
	UpdateEyeTrackingComponent(component InputComponentHandle, update *LegacyEyeTrackingUpdate) InputError
}
