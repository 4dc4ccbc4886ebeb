package config

func GetDebugLevel() int {
	return cache.debugLevel
}

// GetPayloadSize returns the configured echo request payload size.
// The effective payload never shrinks below the built in tag.
func GetPayloadSize() uint {
	return cache.payloadSize
}

func MetricsExporterEnabled() bool {
	return cache.exporterPort > 0
}

func MetricsExporterPort() uint16 {
	return cache.exporterPort
}
