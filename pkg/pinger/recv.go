package pinger

import (
	"net"
	"net/netip"
	"time"
)

// Packet is one raw datagram delivered by the socket
type Packet struct {
	Data []byte     // ICMP message, any IP header already stripped
	TTL  int        // TTL from the IP header, 0 if not delivered
	Src  netip.Addr // source address of the datagram
}

// Recv blocks for up to timeout waiting for the next ICMP datagram.
// Returns ErrTimeout when the deadline passes with nothing read.
// Datagrams are not filtered here: the socket observes all ICMP
// traffic on the host and matching replies to requests is the
// caller's job.
func (p *Pinger) Recv(timeout time.Duration) (*Packet, error) {
	if p.conn == nil {
		return nil, ErrClosed
	}

	if err := p.conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return nil, err
	}

	buf := make([]byte, readBufferSize)
	n, cm, src, err := p.conn.IPv4PacketConn().ReadFrom(buf)
	if err != nil {
		if neterr, ok := err.(net.Error); ok && neterr.Timeout() {
			return nil, ErrTimeout
		}
		return nil, err
	}

	var ttl int
	if cm != nil {
		ttl = cm.TTL
	}

	addr, err := addrFromNet(src)
	if err != nil {
		return nil, err
	}

	return &Packet{
		Data: stripIPv4Header(buf[:n]),
		TTL:  ttl,
		Src:  addr,
	}, nil
}

// stripIPv4Header returns the transport payload of buf. Raw ICMP
// sockets deliver the IPv4 header on some systems and not on others,
// so its presence is detected from the version nibble and the header
// skipped by its IHL field.
func stripIPv4Header(buf []byte) []byte {
	if len(buf) == 0 || buf[0]>>4 != 4 {
		return buf
	}

	ihl := int(buf[0]&0x0f) * 4
	if ihl < 20 || ihl > len(buf) {
		return buf
	}

	return buf[ihl:]
}

func addrFromNet(src net.Addr) (netip.Addr, error) {
	ipaddr, ok := src.(*net.IPAddr)
	if !ok {
		return netip.Addr{}, ErrInvalidAddr
	}

	addr, ok := netip.AddrFromSlice(ipaddr.IP)
	if !ok {
		return netip.Addr{}, ErrInvalidAddr
	}

	return addr.Unmap(), nil
}
