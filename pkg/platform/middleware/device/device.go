// Package device derives the client platform from the request so that
// notification log entries and lookup events can be attributed to the app
// build that produced them.
package device

import (
	"net/http"
	"strings"

	"github.com/mssola/useragent"

	"motorhub/pkg/requestcontext"
)

// PlatformHeader lets the mobile apps state their platform explicitly.
// Their HTTP stacks send generic User-Agents (okhttp, CFNetwork).
const PlatformHeader = "X-Client-Platform"

const (
	PlatformAndroid = "android"
	PlatformIOS     = "ios"
	PlatformWeb     = "web"
	PlatformBot     = "bot"
	PlatformUnknown = "unknown"
)

var knownPlatforms = map[string]bool{
	PlatformAndroid: true,
	PlatformIOS:     true,
	PlatformWeb:     true,
}

// Platform stores the User-Agent and the derived platform in the request context.
func Platform(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent := r.Header.Get("User-Agent")
		platform := strings.ToLower(strings.TrimSpace(r.Header.Get(PlatformHeader)))
		if !knownPlatforms[platform] {
			platform = DetectPlatform(userAgent)
		}
		ctx := requestcontext.WithClient(r.Context(), userAgent, platform)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// DetectPlatform classifies a User-Agent string.
func DetectPlatform(userAgent string) string {
	if strings.TrimSpace(userAgent) == "" {
		return PlatformUnknown
	}
	lower := strings.ToLower(userAgent)
	switch {
	case strings.HasPrefix(lower, "okhttp"):
		return PlatformAndroid
	case strings.Contains(lower, "cfnetwork") || strings.Contains(lower, "darwin/"):
		return PlatformIOS
	}

	ua := useragent.New(userAgent)
	if ua.Bot() {
		return PlatformBot
	}
	os := strings.ToLower(ua.OS())
	switch {
	case strings.Contains(os, "android"):
		return PlatformAndroid
	case strings.Contains(os, "iphone"), strings.Contains(os, "ipad"), strings.Contains(os, "ios"):
		return PlatformIOS
	}
	if browser, _ := ua.Browser(); browser != "" {
		return PlatformWeb
	}
	return PlatformUnknown
}

// DisplayName returns "Browser on OS" for log and notification attribution.
func DisplayName(userAgent string) string {
	if userAgent == "" {
		return "Unknown Device"
	}
	ua := useragent.New(userAgent)
	browser, _ := ua.Browser()
	if browser == "" {
		browser = "Unknown Browser"
	}
	if ua.Mobile() {
		if p := ua.Platform(); p != "" {
			return strings.TrimSpace(browser + " on " + p)
		}
	}
	os := ua.OS()
	if os == "" {
		os = "Unknown OS"
	}
	return strings.TrimSpace(browser + " on " + os)
}
