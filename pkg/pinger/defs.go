package pinger

import "errors"

const (
	// readBufferSize fits the largest reply of interest: a 60 byte
	// IPv4 header plus the echo header and payload
	readBufferSize = 1500

	// enobufsRetries bounds resend attempts when the kernel send
	// queue is full
	enobufsRetries = 6
)

var (
	ErrClosed      = errors.New("connection closed")
	ErrTimeout     = errors.New("receive timed out")
	ErrInvalidAddr = errors.New("invalid address")
)
