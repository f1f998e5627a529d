package pinger

// Checksum returns the RFC 1071 internet checksum of b as a network order
// value. Words are summed low byte first and the result swapped at the end,
// which gives the same value as summing big-endian words.
func Checksum(b []byte) uint16 {
	var sum uint32

	n := len(b) &^ 1
	for i := 0; i < n; i += 2 {
		sum += uint32(b[i+1])<<8 | uint32(b[i])
	}
	if n < len(b) {
		sum += uint32(b[len(b)-1])
	}

	for sum > 0xffff {
		sum = (sum >> 16) + (sum & 0xffff)
	}

	answer := ^uint16(sum)
	return answer>>8 | answer<<8
}

// VerifyChecksum reports whether b, checksum field included, sums to zero.
func VerifyChecksum(b []byte) bool {
	return Checksum(b) == 0
}
