// pinger owns the raw ICMPv4 socket. It writes fully formed echo
// requests and hands back raw datagrams together with their receive
// metadata. Building and matching packets is the caller's job.
package pinger

import (
	"net/netip"

	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
)

// Pinger is a raw ICMPv4 socket bound to a single target host.
type Pinger struct {
	target netip.Addr
	conn   *icmp.PacketConn
}

// New opens a raw ICMPv4 socket for probing target. On most systems
// this requires super-user privileges or CAP_NET_RAW.
func New(target netip.Addr) (*Pinger, error) {
	if !target.Is4() {
		return nil, ErrInvalidAddr
	}

	conn, err := icmp.ListenPacket("ip4:icmp", "")
	if err != nil {
		return nil, err
	}
	// TTL is best effort. Not all platforms deliver the control
	// message and Recv reports 0 in that case.
	conn.IPv4PacketConn().SetControlMessage(ipv4.FlagTTL, true)

	return &Pinger{
		target: target,
		conn:   conn,
	}, nil
}

// Target returns the probed address
func (p *Pinger) Target() netip.Addr {
	return p.target
}

// Close releases the socket. A blocked Recv returns with an error.
func (p *Pinger) Close() error {
	if p.conn == nil {
		return nil
	}
	return p.conn.Close()
}
