// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-device-trust/internal/flow"
)

func humanizeDispatchError(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, flow.ErrBusy) {
		return "Still working on the last step..."
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "clipboard") ||
		strings.Contains(s, "xclip") ||
		strings.Contains(s, "xsel") ||
		strings.Contains(s, "wl-paste") {
		return "The clipboard is not available here. Type the code instead."
	}

	return err.Error()
}
