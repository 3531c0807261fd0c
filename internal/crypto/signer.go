package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"io"
	"strconv"

	"golang.org/x/crypto/hkdf"
)

const headerKeyInfo = "go-device-trust/device-header/v1"

// NewSigner returns an HMAC signer when secret is set and the legacy checksum
// signer otherwise.
func NewSigner(secret string) Signer {
	if secret == "" {
		return checksumSigner{}
	}
	return &hmacSigner{secret: []byte(secret)}
}

func headerMessage(deviceID, userGUID string, timestamp int64) string {
	return deviceID + "|" + userGUID + "|" + strconv.FormatInt(timestamp, 10)
}

// hmacSigner signs with HMAC-SHA256 under a key derived per device with HKDF,
// so a leaked header never exposes the root secret.
type hmacSigner struct {
	secret []byte
}

func (s *hmacSigner) deviceKey(deviceID string) []byte {
	key := make([]byte, sha256.Size)
	r := hkdf.New(sha256.New, s.secret, []byte(deviceID), []byte(headerKeyInfo))
	if _, err := io.ReadFull(r, key); err != nil {
		// hkdf only fails after 255*32 bytes of output
		panic(err)
	}
	return key
}

func (s *hmacSigner) Sign(deviceID, userGUID string, timestamp int64) string {
	mac := hmac.New(sha256.New, s.deviceKey(deviceID))
	mac.Write([]byte(headerMessage(deviceID, userGUID, timestamp)))
	return hex.EncodeToString(mac.Sum(nil))
}

func (s *hmacSigner) Verify(deviceID, userGUID string, timestamp int64, signature string) bool {
	want, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	got, _ := hex.DecodeString(s.Sign(deviceID, userGUID, timestamp))
	return hmac.Equal(got, want)
}

func (s *hmacSigner) Scheme() string {
	return "hmac-sha256"
}

// checksumSigner reproduces the legacy 32-bit rolling hash
// (h = h*31 + c over the message bytes, absolute value in base 36). It only
// detects accidental edits; anybody can forge it.
type checksumSigner struct{}

func (checksumSigner) Sign(deviceID, userGUID string, timestamp int64) string {
	return RollingChecksum(headerMessage(deviceID, userGUID, timestamp))
}

func (c checksumSigner) Verify(deviceID, userGUID string, timestamp int64, signature string) bool {
	expected := c.Sign(deviceID, userGUID, timestamp)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}

func (checksumSigner) Scheme() string {
	return "checksum"
}

// RollingChecksum returns the base-36 absolute value of the 32-bit
// h = (h << 5) - h + c hash of s.
func RollingChecksum(s string) string {
	var h int32
	for i := 0; i < len(s); i++ {
		h = (h << 5) - h + int32(s[i])
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return strconv.FormatInt(v, 36)
}
