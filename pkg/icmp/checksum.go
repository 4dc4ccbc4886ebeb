package icmp

// Checksum computes the RFC 1071 Internet checksum over data.
// The buffer is folded as big-endian 16 bit words, an odd trailing
// byte is padded with a zero low byte. Any length is valid,
// including empty.
func Checksum(data []byte) uint16 {
	var sum uint32

	for len(data) >= 2 {
		sum += uint32(data[0])<<8 | uint32(data[1])
		data = data[2:]
	}
	if len(data) > 0 {
		sum += uint32(data[0]) << 8
	}

	for sum>>16 != 0 {
		sum = sum&0xffff + sum>>16
	}

	return ^uint16(sum)
}
