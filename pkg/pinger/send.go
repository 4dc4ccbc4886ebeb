package pinger

import (
	"net"
	"syscall"
)

// Send writes one fully formed ICMP packet to the target.
func (p *Pinger) Send(pkt []byte) error {
	if p.conn == nil {
		return ErrClosed
	}

	dst := &net.IPAddr{IP: p.target.AsSlice()}

	// Some retries in case of ENOBUFS may occure
	// Do not retry infinitely
	var err error
	for tries := enobufsRetries; tries > 0; tries-- {
		_, err = p.conn.WriteTo(pkt, dst)

		if err != nil {
			if neterr, ok := err.(*net.OpError); ok {
				if neterr.Err == syscall.ENOBUFS {
					continue
				}
			}
		}

		break
	}

	return err
}
