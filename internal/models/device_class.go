package models

// DeviceClass is the coarse device classification derived from the user agent
// during normalization.
type DeviceClass string

const (
	DeviceDesktop DeviceClass = "desktop"
	DeviceMobile  DeviceClass = "mobile"
	DeviceTablet  DeviceClass = "tablet"
	DeviceBot     DeviceClass = "bot"
)

// DeviceClasses lists every class in a stable order, used when iterating
// per-device counters deterministically.
var DeviceClasses = []DeviceClass{DeviceDesktop, DeviceMobile, DeviceTablet, DeviceBot}
