package probe

import (
	"fmt"
	"time"
)

// Stats aggregates the counters of one probe run. The zero value is
// ready to use. No per probe history is kept, only the running fold.
type Stats struct {
	tx  uint
	rx  uint
	min time.Duration
	max time.Duration
	sum time.Duration
}

// Summary is the final aggregate view of a finished run
type Summary struct {
	Sent     uint
	Received uint
	Loss     float64 // packet loss percentage, 0..100
	Min      time.Duration
	Avg      time.Duration
	Max      time.Duration
}

// Send counts one transmitted probe. Failed sends are counted too.
func (s *Stats) Send() {
	s.tx++
}

// Recv folds one successful round trip. Min and max are initialized
// on the first success.
func (s *Stats) Recv(rtt time.Duration) {
	if s.rx == 0 || rtt < s.min {
		s.min = rtt
	}
	if rtt > s.max {
		s.max = rtt
	}

	s.rx++
	s.sum += rtt
}

// Summary computes the aggregate view. Loss is 0 when nothing was
// sent and the RTT fields are 0 when nothing was received, so empty
// and all failed runs report zeros instead of faulting.
func (s *Stats) Summary() Summary {
	sum := Summary{
		Sent:     s.tx,
		Received: s.rx,
	}

	if s.tx > 0 {
		sum.Loss = float64(s.tx-s.rx) / float64(s.tx) * 100
	}
	if s.rx > 0 {
		sum.Min = s.min
		sum.Avg = s.sum / time.Duration(s.rx)
		sum.Max = s.max
	}

	return sum
}

func (s *Stats) String() string {
	return fmt.Sprintf("tx=%d, rx=%d, min=%s, max=%s", s.tx, s.rx, s.min, s.max)
}
