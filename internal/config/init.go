package config

import (
	"os"
	"strings"

	"github.com/fzappa/pingrs/internal/logger"
)

const (
	maxPort            = 65535
	defaultPayloadSize = 32
)

func Init() {
	initLogLevel()

	initUint(&cache.payloadSize, "PINGRS_PAYLOAD_SIZE", defaultPayloadSize)

	var tmpval uint
	initUint(&tmpval, "PINGRS_EXPORTER_PORT", 0)
	if tmpval > maxPort {
		tmpval = 0
	}
	cache.exporterPort = uint16(tmpval)
}

func Close() {
	// Anything needed to be closed or destroyed at the end of program, goes here
}

func initLogLevel() {
	switch strings.ToUpper(os.Getenv("PINGRS_LOG_LEVEL")) {
	case "DEBUG":
		cache.debugLevel = logger.DebugLevel
	case "INFO":
		cache.debugLevel = logger.InfoLevel
	case "WARNING":
		cache.debugLevel = logger.WarningLevel
	case "ERROR":
		cache.debugLevel = logger.ErrorLevel
	default:
		cache.debugLevel = logger.InfoLevel
	}
}
