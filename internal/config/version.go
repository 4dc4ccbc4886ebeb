package config

// Overridden at build time via -ldflags
var (
	version    = "1.0.0"
	subversion = "local"
)

func GetFullVersion() string {
	if subversion != "" {
		return version + "-" + subversion
	}
	return version
}
