// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "strings"

// DeviceHeader is the signed bundle that binds a device key to the last user
// who authenticated on this device. It is persisted in the local scope under
// [KeyDeviceHeader] and sent to the backend as the X-Device-Header value.
type DeviceHeader struct {
	// DeviceID is the 64-character hex device key.
	DeviceID string `json:"deviceId"`

	// UserGUID is the backend identifier of the bound user.
	UserGUID string `json:"userGuid"`

	// UserHandle is the public handle of the bound user (without "@").
	UserHandle string `json:"userHandle"`

	// Timestamp is the creation time in Unix milliseconds. Headers older than
	// the configured maximum age are discarded on read.
	Timestamp int64 `json:"timestamp"`

	// DeviceCharacteristics is a coarse, non-authoritative fingerprint.
	DeviceCharacteristics DeviceCharacteristics `json:"deviceCharacteristics"`

	// Signature covers DeviceID, UserGUID and Timestamp.
	Signature string `json:"signature"`
}

// IsComplete reports whether all three identity fields are present.
// Incomplete headers are never trusted.
func (h DeviceHeader) IsComplete() bool {
	return strings.TrimSpace(h.DeviceID) != "" &&
		strings.TrimSpace(h.UserGUID) != "" &&
		strings.TrimSpace(h.UserHandle) != ""
}

// MissingField returns the JSON name of the first absent identity field, or an
// empty string when the header is complete.
func (h DeviceHeader) MissingField() string {
	switch {
	case strings.TrimSpace(h.DeviceID) == "":
		return "deviceId"
	case strings.TrimSpace(h.UserGUID) == "":
		return "userGuid"
	case strings.TrimSpace(h.UserHandle) == "":
		return "userHandle"
	}
	return ""
}

// DeviceCharacteristics is the static part of a device fingerprint embedded in
// every header.
type DeviceCharacteristics struct {
	Platform   string  `json:"platform"`
	ScreenSize string  `json:"screenSize"`
	Timezone   string  `json:"timezone"`
	Language   string  `json:"language"`
	PixelRatio float64 `json:"pixelRatio"`
	Browser    string  `json:"browser"`
	ColorDepth int     `json:"colorDepth"`
}

// DeviceFingerprint is the full descriptive profile of the current device.
// It carries no trust weight by itself.
type DeviceFingerprint struct {
	DeviceType    string  `json:"deviceType"`
	DeviceModel   string  `json:"deviceModel"`
	OS            string  `json:"os"`
	Browser       string  `json:"browser"`
	UserAgent     string  `json:"userAgent"`
	Viewport      string  `json:"viewport"`
	Timezone      string  `json:"timezone"`
	Language      string  `json:"language"`
	PixelRatio    float64 `json:"pixelRatio"`
	HardwareCores int     `json:"hardwareConcurrency"`
	TouchSupport  bool    `json:"touchSupport"`
	ColorDepth    int     `json:"colorDepth"`
}

// Characteristics projects the fingerprint onto the subset stored in a
// [DeviceHeader].
func (f DeviceFingerprint) Characteristics() DeviceCharacteristics {
	return DeviceCharacteristics{
		Platform:   f.OS,
		ScreenSize: f.Viewport,
		Timezone:   f.Timezone,
		Language:   f.Language,
		PixelRatio: f.PixelRatio,
		Browser:    f.Browser,
		ColorDepth: f.ColorDepth,
	}
}

// MinimalDeviceHeader is the fingerprint-only variant of X-Device-Header sent
// when no complete header is persisted. It lets the backend recognize the
// device but asserts no user binding.
type MinimalDeviceHeader struct {
	DeviceID              string                `json:"deviceId"`
	Timestamp             int64                 `json:"timestamp"`
	DeviceCharacteristics DeviceCharacteristics `json:"deviceCharacteristics"`
	FingerprintOnly       bool                  `json:"fingerprintOnly"`
}

// DeviceHeaderData is the identity triple the backend returns on successful
// authentication.
type DeviceHeaderData struct {
	DeviceID   string `json:"deviceId"`
	UserGUID   string `json:"userGuid"`
	UserHandle string `json:"userHandle"`
}
