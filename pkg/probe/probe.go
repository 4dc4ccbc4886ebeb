// probe drives timed echo exchanges against a single target and
// folds per probe outcomes into run statistics.
package probe

import (
	"errors"
	"net/netip"
	"os"
	"time"

	"github.com/fzappa/pingrs/pkg/icmp"
	"github.com/fzappa/pingrs/pkg/pinger"
)

const (
	DefaultInterval = time.Second
	DefaultTimeout  = 2 * time.Second
)

// Transport is the socket facing side of the loop. Implemented by
// pinger.Pinger.
type Transport interface {
	Send(pkt []byte) error
	Recv(timeout time.Duration) (*pinger.Packet, error)
}

// Config carries the resolved knobs of one run
type Config struct {
	Target   netip.Addr    // probed host, replies from other sources are ignored
	ID       uint16        // echo identifier, derived from the PID when 0
	Count    uint          // probes to run, 0 means run until stopped
	Interval time.Duration // pause between probe starts
	Timeout  time.Duration // reply budget of a single probe
	Payload  []byte        // request payload
}

// Probe is the sequential probe loop
type Probe struct {
	transport Transport
	cfg       Config
	clients   []Client
	stats     Stats
}

// New prepares a probe run. Unset interval and timeout fall back to
// the classic ping defaults. Registered clients observe every outcome.
func New(t Transport, cfg Config, clients ...Client) *Probe {
	if cfg.ID == 0 {
		cfg.ID = uint16(os.Getpid())
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Probe{
		transport: t,
		cfg:       cfg,
		clients:   clients,
	}
}

// Run executes the probe loop until count is exhausted or flag is
// raised. The flag is polled at iteration boundaries only: a started
// probe always completes or times out before the loop exits.
func (p *Probe) Run(flag *Flag) Summary {
	var seq uint16

	for n := uint(0); ; n++ {
		if flag.Stopped() {
			break
		}
		if p.cfg.Count > 0 && n >= p.cfg.Count {
			break
		}

		seq = nextSeq(seq)
		out := p.once(seq)

		for _, c := range p.clients {
			c.ProbeProcess(out)
		}

		last := p.cfg.Count > 0 && n+1 >= p.cfg.Count
		if last || flag.Stopped() {
			continue
		}
		if wait := p.cfg.Interval - time.Since(out.SentAt); wait > 0 {
			time.Sleep(wait)
		}
	}

	return p.stats.Summary()
}

// once runs a single echo exchange
func (p *Probe) once(seq uint16) Outcome {
	req := icmp.BuildEchoRequest(p.cfg.ID, seq, p.cfg.Payload)

	out := Outcome{
		Seq:    seq,
		SentAt: time.Now(),
		Size:   len(req),
	}

	p.stats.Send()
	if err := p.transport.Send(req); err != nil {
		out.Result = SendFailed
		out.Err = err
		return out
	}

	deadline := out.SentAt.Add(p.cfg.Timeout)
	for {
		remain := time.Until(deadline)
		if remain <= 0 {
			out.Result = Timeout
			return out
		}

		pkt, err := p.transport.Recv(remain)
		if errors.Is(err, pinger.ErrTimeout) {
			out.Result = Timeout
			return out
		}
		if err != nil {
			out.Result = RecvFailed
			out.Err = err
			return out
		}

		msg, err := icmp.ParseEchoReply(pkt.Data)
		if err != nil {
			// Too short to carry an echo header. Not ours.
			continue
		}
		if !msg.IsEchoReply() || msg.ID != p.cfg.ID || msg.Seq != seq {
			continue
		}
		if pkt.Src != p.cfg.Target {
			// Matching id and seq from an unexpected host. Ignore it.
			continue
		}

		out.Result = Success
		out.RTT = time.Since(out.SentAt)
		out.Size = len(pkt.Data)
		out.TTL = pkt.TTL
		out.Src = pkt.Src
		p.stats.Recv(out.RTT)
		return out
	}
}

// nextSeq advances the echo sequence. 0 is skipped on wrap.
func nextSeq(seq uint16) uint16 {
	seq++
	if seq == 0 {
		seq = 1
	}
	return seq
}
