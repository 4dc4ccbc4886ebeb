package icmp

import "encoding/binary"

// EchoReply is a decoded ICMPv4 message in echo layout. Decoding does
// not check type or code: a raw socket observes ICMP traffic unrelated
// to the echo exchange, and classifying it is the caller's job.
type EchoReply struct {
	Type     uint8
	Code     uint8
	Checksum uint16
	ID       uint16
	Seq      uint16
	Payload  []byte
}

// IsEchoReply reports whether the message is an Echo Reply (type 0, code 0)
func (r *EchoReply) IsEchoReply() bool {
	return r.Type == TypeEchoReply && r.Code == 0
}

// BuildEchoRequest serializes an Echo Request: type, code and a zeroed
// checksum field, identifier and sequence in big-endian order, then the
// payload. The checksum is computed over the complete packet and
// written back into bytes 2..3.
func BuildEchoRequest(id, seq uint16, payload []byte) []byte {
	pkt := make([]byte, HeaderLen+len(payload))

	pkt[0] = TypeEchoRequest
	pkt[1] = 0
	binary.BigEndian.PutUint16(pkt[4:6], id)
	binary.BigEndian.PutUint16(pkt[6:8], seq)
	copy(pkt[HeaderLen:], payload)

	binary.BigEndian.PutUint16(pkt[2:4], Checksum(pkt))

	return pkt
}

// ParseEchoReply decodes the echo header fields and payload from buf.
// buf must start at the ICMP header, i.e. with any IP header already
// stripped. Returns ErrMessageTooShort when buf cannot hold the header.
func ParseEchoReply(buf []byte) (EchoReply, error) {
	if len(buf) < HeaderLen {
		return EchoReply{}, ErrMessageTooShort
	}

	return EchoReply{
		Type:     buf[0],
		Code:     buf[1],
		Checksum: binary.BigEndian.Uint16(buf[2:4]),
		ID:       binary.BigEndian.Uint16(buf[4:6]),
		Seq:      binary.BigEndian.Uint16(buf[6:8]),
		Payload:  buf[HeaderLen:],
	}, nil
}
