// icmp implements the ICMPv4 echo wire format (RFC 792).
// It is a pure codec: no sockets, no clocks.
package icmp

import "errors"

const (
	// Message types used by the echo exchange
	TypeEchoRequest = 8
	TypeEchoReply   = 0

	// HeaderLen is the fixed echo header size in bytes
	HeaderLen = 8

	// ProtoNumber is the IANA protocol number of ICMPv4
	ProtoNumber = 1
)

var (
	ErrMessageTooShort = errors.New("icmp message too short")
)
