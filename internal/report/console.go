// report renders probe outcomes in the classic ping utility shape
package report

import (
	"fmt"
	"io"
	"net/netip"
	"time"

	"github.com/fzappa/pingrs/pkg/probe"
)

// Console prints one line per probe outcome and a closing summary
type Console struct {
	w      io.Writer
	target netip.Addr
}

func New(w io.Writer, target netip.Addr) *Console {
	return &Console{
		w:      w,
		target: target,
	}
}

// Banner prints the opening line with the payload size in bytes
func (c *Console) Banner(payloadLen int) {
	fmt.Fprintf(c.w, "PING %s: %d data bytes\n", c.target, payloadLen)
}

// ProbeProcess implements probe.Client
func (c *Console) ProbeProcess(out probe.Outcome) {
	switch out.Result {
	case probe.Success:
		fmt.Fprintf(c.w, "%d bytes from %s: icmp_seq=%d ttl=%d time=%.3f ms\n",
			out.Size, out.Src, out.Seq, out.TTL, rttMs(out.RTT))
	case probe.Timeout:
		fmt.Fprintf(c.w, "request timeout for icmp_seq=%d\n", out.Seq)
	default:
		fmt.Fprintf(c.w, "probe failed for icmp_seq=%d: %s\n", out.Seq, out.Err)
	}
}

// Summary prints the closing statistics block. The round trip line
// is omitted when no reply ever arrived.
func (c *Console) Summary(sum probe.Summary) {
	fmt.Fprintf(c.w, "--- %s ping statistics ---\n", c.target)
	fmt.Fprintf(c.w, "%d packets transmitted, %d packets received, %.1f%% packet loss\n",
		sum.Sent, sum.Received, sum.Loss)

	if sum.Received > 0 {
		fmt.Fprintf(c.w, "round-trip min/avg/max = %.3f/%.3f/%.3f ms\n",
			rttMs(sum.Min), rttMs(sum.Avg), rttMs(sum.Max))
	}
}

func rttMs(rtt time.Duration) float64 {
	return float64(rtt.Microseconds()) / 1000
}
