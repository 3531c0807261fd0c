// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "github.com/MKhiriev/go-device-trust/models"

func renderBuildInfoWindow(info models.AppBuildInfo) string {
	return renderPage("ABOUT", "Application: go-device-trust\n"+info.String(), "esc: back")
}
