package config

// Commonly used pingrs configuration, cached once at startup.
// These come from exported shell variables. The probe knobs
// (target, count, interval, timeout) come from the command line
// and are not cached here.
type configCache struct {
	debugLevel   int
	payloadSize  uint
	exporterPort uint16
}

var cache configCache
