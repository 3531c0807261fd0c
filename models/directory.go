package models

import "time"

// User is an account of the reference backend.
type User struct {
	GUID      string    `json:"guid"`
	Handle    string    `json:"handle"`
	Phone     string    `json:"phone"`
	PINHash   string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Device is the backend record of a device key: whom it is bound to, how far
// it is trusted and whether its session is alive.
type Device struct {
	Key          string
	UserGUID     string
	Confidence   DeviceConfidence
	SessionAlive bool
	UserAgent    string
	UpdatedAt    time.Time
}

// Bound reports whether the device belongs to guid.
func (d Device) Bound(guid string) bool {
	return d.UserGUID != "" && d.UserGUID == guid
}

// PasskeyCredential is a stored WebAuthn credential. Data is the serialized
// credential as produced by the relying party library.
type PasskeyCredential struct {
	ID       string
	UserGUID string
	Data     []byte
}

// SeedUser describes an account created when the backend starts.
type SeedUser struct {
	Handle  string                      `json:"handle"`
	Phone   string                      `json:"phone"`
	PIN     string                      `json:"pin,omitempty"`
	Devices map[string]DeviceConfidence `json:"devices,omitempty"`
}
