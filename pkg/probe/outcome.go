package probe

import (
	"net/netip"
	"time"
)

// Result classifies a single probe
type Result int

const (
	Success Result = iota
	Timeout
	SendFailed
	RecvFailed
)

func (r Result) String() string {
	switch r {
	case Success:
		return "success"
	case Timeout:
		return "timeout"
	case SendFailed:
		return "send failed"
	case RecvFailed:
		return "receive failed"
	default:
		return "unknown"
	}
}

// Outcome is the record of one completed probe. It is handed to the
// registered clients right after the probe finishes and not retained,
// so unbounded runs hold no per probe history.
type Outcome struct {
	Seq    uint16
	SentAt time.Time
	Result Result
	RTT    time.Duration // round trip time, set on success only
	Size   int           // reply size on success, request size otherwise
	TTL    int           // reply TTL, 0 when the platform does not deliver it
	Src    netip.Addr    // reply source, set on success only
	Err    error         // send or receive error detail
}
