// Package crypto holds the primitives behind device identity: random device
// keys and the signature carried by persisted device headers.
package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/signer_mock.go -package=mock

// Signer produces and checks the signature of a device header. The signed
// message is always deviceId|userGuid|timestamp.
type Signer interface {
	// Sign returns the signature for the given header fields.
	Sign(deviceID, userGUID string, timestamp int64) string

	// Verify reports whether signature matches the header fields.
	Verify(deviceID, userGUID string, timestamp int64, signature string) bool

	// Scheme names the algorithm, for logs.
	Scheme() string
}
