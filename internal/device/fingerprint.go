package device

import (
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/MKhiriev/go-device-trust/models"
)

// Environment is the static description of the host a tab runs on. Tests
// build it by hand; production code uses [HostEnvironment].
type Environment struct {
	UserAgent      string
	GOOS           string
	ViewportWidth  int
	ViewportHeight int
	Timezone       string
	Language       string
	PixelRatio     float64
	Cores          int
	TouchSupport   bool
	ColorDepth     int
}

// HostEnvironment describes the current process. language overrides the
// locale found in LC_ALL/LANG when non-empty.
func HostEnvironment(userAgent, language string) Environment {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		width, height = 80, 24
	}

	if language == "" {
		language = localeLanguage()
	}

	return Environment{
		UserAgent:      userAgent,
		GOOS:           runtime.GOOS,
		ViewportWidth:  width,
		ViewportHeight: height,
		Timezone:       time.Local.String(),
		Language:       language,
		PixelRatio:     1,
		Cores:          runtime.NumCPU(),
		ColorDepth:     colorDepth(),
	}
}

func localeLanguage() string {
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		v := os.Getenv(name)
		if v == "" || v == "C" || v == "POSIX" {
			continue
		}
		v, _, _ = strings.Cut(v, ".")
		return strings.ReplaceAll(v, "_", "-")
	}
	return "en-US"
}

func colorDepth() int {
	switch {
	case os.Getenv("COLORTERM") == "truecolor" || os.Getenv("COLORTERM") == "24bit":
		return 24
	case strings.Contains(os.Getenv("TERM"), "256color"):
		return 8
	default:
		return 4
	}
}

// Fingerprint derives the descriptive device profile from env.
func Fingerprint(env Environment) models.DeviceFingerprint {
	deviceType, model, osName := classify(env.UserAgent, env.GOOS)

	return models.DeviceFingerprint{
		DeviceType:    deviceType,
		DeviceModel:   model,
		OS:            osName,
		Browser:       browserFamily(env.UserAgent),
		UserAgent:     env.UserAgent,
		Viewport:      strconv.Itoa(env.ViewportWidth) + "x" + strconv.Itoa(env.ViewportHeight),
		Timezone:      env.Timezone,
		Language:      env.Language,
		PixelRatio:    env.PixelRatio,
		HardwareCores: env.Cores,
		TouchSupport:  env.TouchSupport || deviceType == "mobile" || deviceType == "tablet",
		ColorDepth:    env.ColorDepth,
	}
}

// classify returns device type, model and OS family. The user agent wins;
// GOOS is the fallback for agents that name no platform.
func classify(ua, goos string) (deviceType, model, osName string) {
	switch {
	case strings.Contains(ua, "iPhone") || strings.Contains(ua, "iPod"):
		return "mobile", "iPhone", "iOS"
	case strings.Contains(ua, "iPad"):
		return "tablet", "iPad", "iOS"
	case strings.Contains(ua, "Android"):
		deviceType = "tablet"
		if strings.Contains(ua, "Mobile") {
			deviceType = "mobile"
		}
		return deviceType, androidModel(ua), "Android"
	case strings.Contains(ua, "Macintosh") || strings.Contains(ua, "Mac OS X"):
		return "desktop", "Mac", "macOS"
	case strings.Contains(ua, "Windows"):
		return "desktop", "PC", "Windows"
	case strings.Contains(ua, "CrOS"):
		return "desktop", "Chromebook", "ChromeOS"
	case strings.Contains(ua, "Linux"):
		return "desktop", "PC", "Linux"
	}

	switch goos {
	case "darwin":
		return "desktop", "Mac", "macOS"
	case "windows":
		return "desktop", "PC", "Windows"
	case "linux", "freebsd", "openbsd", "netbsd":
		return "desktop", "PC", "Linux"
	case "ios":
		return "mobile", "iPhone", "iOS"
	case "android":
		return "mobile", "Android", "Android"
	}
	return "unknown", "unknown", "unknown"
}

// androidModel extracts "Pixel 7" from
// "Mozilla/5.0 (Linux; Android 13; Pixel 7 Build/TQ3A) AppleWebKit/...".
func androidModel(ua string) string {
	_, rest, ok := strings.Cut(ua, "Android")
	if !ok {
		return "Android"
	}
	rest, _, _ = strings.Cut(rest, ")")

	parts := strings.Split(rest, ";")
	if len(parts) < 2 {
		return "Android"
	}
	model := strings.TrimSpace(parts[len(parts)-1])
	model, _, _ = strings.Cut(model, " Build/")
	if model == "" || model == "K" || model == "wv" {
		return "Android"
	}
	return model
}

func browserFamily(ua string) string {
	switch {
	case strings.Contains(ua, "Edg/") || strings.Contains(ua, "EdgA/") || strings.Contains(ua, "EdgiOS/"):
		return "Edge"
	case strings.Contains(ua, "OPR/") || strings.Contains(ua, "Opera"):
		return "Opera"
	case strings.Contains(ua, "Firefox/") || strings.Contains(ua, "FxiOS/"):
		return "Firefox"
	case strings.Contains(ua, "Chrome/") || strings.Contains(ua, "CriOS/"):
		return "Chrome"
	case strings.Contains(ua, "Safari/"):
		return "Safari"
	case ua == "":
		return "unknown"
	default:
		name, _, _ := strings.Cut(ua, "/")
		return name
	}
}
