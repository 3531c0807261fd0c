package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while allowing extension with additional application-specific behavior.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates an HTTPClient that speaks JSON, identifies itself with
// userAgent and gives up on a request after timeout. A zero timeout leaves
// requests bounded by their context only.
//
// Each call returns an independent client instance with its own
// configuration, connection pool, and state.
//
// Example usage:
//
//	client := utils.NewHTTPClient("go-device-trust/1.0", 30*time.Second)
//	resp, err := client.R().Get("https://api.example.com/auth/check_device")
func NewHTTPClient(userAgent string, timeout time.Duration) *HTTPClient {
	c := resty.New().
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")
	if userAgent != "" {
		c.SetHeader("User-Agent", userAgent)
	}
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return &HTTPClient{Client: c}
}
