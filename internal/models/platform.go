package models

import (
	"fmt"
	"strings"
)

// Platform identifies which store's dataset a query runs against.
type Platform string

const (
	PlatformAndroid Platform = "Android"
	PlatformIOS     Platform = "iOS"
)

// Platforms lists every platform the service can serve, in the order
// connections are established at startup.
var Platforms = []Platform{PlatformAndroid, PlatformIOS}

// ParsePlatform resolves a case-insensitive platform name. Anything outside
// the known set is rejected so the token can never leak into SQL identifiers.
func ParsePlatform(s string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "android":
		return PlatformAndroid, nil
	case "ios":
		return PlatformIOS, nil
	}
	return "", &ValidationError{Field: "platform", Message: fmt.Sprintf("unknown platform %q, expected Android or iOS", s)}
}

// Token returns the lowercase form used in per-platform database names.
func (p Platform) Token() string {
	return strings.ToLower(string(p))
}
