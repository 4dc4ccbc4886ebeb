package probe

import (
	"errors"
	"net/netip"
	"os"
	"testing"
	"time"

	"github.com/fzappa/pingrs/pkg/icmp"
	"github.com/fzappa/pingrs/pkg/pinger"
)

const testID = 0x55aa

var testTarget = netip.MustParseAddr("192.0.2.1")

// step is one scripted datagram delivered by the fake transport
type step struct {
	data  []byte
	src   netip.Addr
	ttl   int
	err   error
	delay time.Duration
}

// fakeTransport answers Recv from a per sequence script. An exhausted
// script times out, like an idle socket would.
type fakeTransport struct {
	sendErr map[uint16]error
	steps   map[uint16][]step

	cur  uint16
	sent []uint16
	ids  []uint16
}

func (f *fakeTransport) Send(pkt []byte) error {
	msg, err := icmp.ParseEchoReply(pkt)
	if err != nil {
		return err
	}

	f.cur = msg.Seq
	f.sent = append(f.sent, msg.Seq)
	f.ids = append(f.ids, msg.ID)

	return f.sendErr[msg.Seq]
}

func (f *fakeTransport) Recv(timeout time.Duration) (*pinger.Packet, error) {
	q := f.steps[f.cur]
	if len(q) == 0 {
		return nil, pinger.ErrTimeout
	}

	st := q[0]
	f.steps[f.cur] = q[1:]

	if st.delay > 0 {
		time.Sleep(st.delay)
	}
	if st.err != nil {
		return nil, st.err
	}

	src := st.src
	if !src.IsValid() {
		src = testTarget
	}
	ttl := st.ttl
	if ttl == 0 {
		ttl = 64
	}

	return &pinger.Packet{Data: st.data, TTL: ttl, Src: src}, nil
}

// reply builds echo reply bytes for the given exchange. Matching is
// done on type, id and seq, so flipping the type in place is enough.
func reply(id, seq uint16) []byte {
	pkt := icmp.BuildEchoRequest(id, seq, []byte("pingrs probe"))
	pkt[0] = icmp.TypeEchoReply
	return pkt
}

// collector records outcomes and optionally raises the stop flag
// after a fixed number of probes
type collector struct {
	outcomes []Outcome
	stopAt   int
	flag     *Flag
}

func (c *collector) ProbeProcess(out Outcome) {
	c.outcomes = append(c.outcomes, out)
	if c.stopAt > 0 && len(c.outcomes) == c.stopAt {
		c.flag.Stop()
	}
}

func testConfig(count uint) Config {
	return Config{
		Target:   testTarget,
		ID:       testID,
		Count:    count,
		Interval: time.Millisecond,
		Timeout:  50 * time.Millisecond,
		Payload:  []byte("pingrs probe"),
	}
}

func TestRunAllSuccess(t *testing.T) {
	ft := &fakeTransport{
		steps: map[uint16][]step{
			1: {{data: reply(testID, 1)}},
			2: {{data: reply(testID, 2)}},
			3: {{data: reply(testID, 3)}},
		},
	}
	sink := &collector{}

	var flag Flag
	sum := New(ft, testConfig(3), sink).Run(&flag)

	if len(sink.outcomes) != 3 {
		t.Fatalf("outcomes = %d, want 3", len(sink.outcomes))
	}
	for i, out := range sink.outcomes {
		if out.Result != Success {
			t.Fatalf("probe %d result = %s, want success", i+1, out.Result)
		}
		if out.Seq != uint16(i+1) {
			t.Fatalf("probe %d seq = %d, want %d", i+1, out.Seq, i+1)
		}
		if out.TTL != 64 {
			t.Fatalf("probe %d ttl = %d, want 64", i+1, out.TTL)
		}
		if out.Src != testTarget {
			t.Fatalf("probe %d src = %s, want %s", i+1, out.Src, testTarget)
		}
	}

	if sum.Sent != 3 || sum.Received != 3 || sum.Loss != 0 {
		t.Fatalf("summary = %+v", sum)
	}
	if sum.Min <= 0 || sum.Min > sum.Avg || sum.Avg > sum.Max {
		t.Fatalf("rtt fold out of order: %+v", sum)
	}
}

func TestRunTimeoutCounted(t *testing.T) {
	ft := &fakeTransport{
		steps: map[uint16][]step{
			1: {{data: reply(testID, 1)}},
			3: {{data: reply(testID, 3)}},
			4: {{data: reply(testID, 4)}},
		},
	}
	sink := &collector{}

	var flag Flag
	sum := New(ft, testConfig(4), sink).Run(&flag)

	if sink.outcomes[1].Result != Timeout {
		t.Fatalf("probe 2 result = %s, want timeout", sink.outcomes[1].Result)
	}
	if sum.Sent != 4 || sum.Received != 3 {
		t.Fatalf("summary = %+v", sum)
	}
	if sum.Loss != 25 {
		t.Fatalf("Loss = %f, want 25", sum.Loss)
	}
}

func TestRunSendFailureContinues(t *testing.T) {
	sendErr := errors.New("no buffer space available")
	ft := &fakeTransport{
		sendErr: map[uint16]error{2: sendErr},
		steps: map[uint16][]step{
			1: {{data: reply(testID, 1)}},
			3: {{data: reply(testID, 3)}},
		},
	}
	sink := &collector{}

	var flag Flag
	sum := New(ft, testConfig(3), sink).Run(&flag)

	out := sink.outcomes[1]
	if out.Result != SendFailed || !errors.Is(out.Err, sendErr) {
		t.Fatalf("probe 2 outcome = %+v", out)
	}
	if sum.Sent != 3 || sum.Received != 2 {
		t.Fatalf("summary = %+v", sum)
	}
	if len(ft.sent) != 3 {
		t.Fatalf("transport saw %d sends, want 3", len(ft.sent))
	}
}

func TestRunRecvError(t *testing.T) {
	recvErr := errors.New("read: connection reset")
	ft := &fakeTransport{
		steps: map[uint16][]step{
			1: {{err: recvErr}},
			2: {{data: reply(testID, 2)}},
		},
	}
	sink := &collector{}

	var flag Flag
	sum := New(ft, testConfig(2), sink).Run(&flag)

	out := sink.outcomes[0]
	if out.Result != RecvFailed || !errors.Is(out.Err, recvErr) {
		t.Fatalf("probe 1 outcome = %+v", out)
	}
	if sum.Sent != 2 || sum.Received != 1 {
		t.Fatalf("summary = %+v", sum)
	}
}

func TestRunNoCrossMatching(t *testing.T) {
	// A reply for the next sequence arrives during the first probe.
	// It must not satisfy the first probe.
	ft := &fakeTransport{
		steps: map[uint16][]step{
			1: {{data: reply(testID, 2)}},
			2: {{data: reply(testID, 2)}},
		},
	}
	sink := &collector{}

	var flag Flag
	sum := New(ft, testConfig(2), sink).Run(&flag)

	if sink.outcomes[0].Result != Timeout {
		t.Fatalf("probe 1 result = %s, want timeout", sink.outcomes[0].Result)
	}
	if sink.outcomes[1].Result != Success {
		t.Fatalf("probe 2 result = %s, want success", sink.outcomes[1].Result)
	}
	if sum.Received != 1 {
		t.Fatalf("summary = %+v", sum)
	}
}

func TestRunWrongIDIgnored(t *testing.T) {
	ft := &fakeTransport{
		steps: map[uint16][]step{
			1: {
				{data: reply(testID+1, 1)},
				{data: reply(testID, 1)},
			},
		},
	}
	sink := &collector{}

	var flag Flag
	sum := New(ft, testConfig(1), sink).Run(&flag)

	if sink.outcomes[0].Result != Success {
		t.Fatalf("result = %s, want success", sink.outcomes[0].Result)
	}
	if sum.Received != 1 {
		t.Fatalf("summary = %+v", sum)
	}
}

func TestRunDiscardsUnrelatedDatagrams(t *testing.T) {
	ft := &fakeTransport{
		steps: map[uint16][]step{
			1: {
				{data: []byte{0x0b}},
				{data: icmp.BuildEchoRequest(testID, 1, nil)},
				{data: reply(testID, 1), src: netip.MustParseAddr("198.51.100.7")},
				{data: reply(testID, 1)},
			},
		},
	}
	sink := &collector{}

	var flag Flag
	sum := New(ft, testConfig(1), sink).Run(&flag)

	if sink.outcomes[0].Result != Success {
		t.Fatalf("result = %s, want success", sink.outcomes[0].Result)
	}
	if sum.Sent != 1 || sum.Received != 1 {
		t.Fatalf("summary = %+v", sum)
	}
}

func TestRunBudgetExhaustedByNoise(t *testing.T) {
	cfg := testConfig(1)
	cfg.Timeout = 5 * time.Millisecond

	ft := &fakeTransport{
		steps: map[uint16][]step{
			1: {
				{data: []byte{0x01}, delay: 10 * time.Millisecond},
				{data: reply(testID, 1)},
			},
		},
	}
	sink := &collector{}

	var flag Flag
	New(ft, cfg, sink).Run(&flag)

	if sink.outcomes[0].Result != Timeout {
		t.Fatalf("result = %s, want timeout", sink.outcomes[0].Result)
	}
}

func TestRunStopFlag(t *testing.T) {
	// Unbounded run, every probe times out instantly. The flag is
	// raised right after the second outcome, so the loop must not
	// start a third probe.
	ft := &fakeTransport{}
	var flag Flag
	sink := &collector{stopAt: 2, flag: &flag}

	sum := New(ft, testConfig(0), sink).Run(&flag)

	if len(sink.outcomes) != 2 {
		t.Fatalf("outcomes = %d, want 2", len(sink.outcomes))
	}
	if sum.Sent != 2 {
		t.Fatalf("summary = %+v", sum)
	}
	if sum.Loss != 100 {
		t.Fatalf("Loss = %f, want 100", sum.Loss)
	}
}

func TestRunDerivesIdentifier(t *testing.T) {
	ft := &fakeTransport{}
	cfg := testConfig(1)
	cfg.ID = 0

	var flag Flag
	New(ft, cfg, &collector{}).Run(&flag)

	if len(ft.ids) != 1 || ft.ids[0] != uint16(os.Getpid()) {
		t.Fatalf("sent ids = %v, want [%d]", ft.ids, uint16(os.Getpid()))
	}
}

func TestNextSeq(t *testing.T) {
	if got := nextSeq(0); got != 1 {
		t.Fatalf("nextSeq(0) = %d, want 1", got)
	}
	if got := nextSeq(1); got != 2 {
		t.Fatalf("nextSeq(1) = %d, want 2", got)
	}
	if got := nextSeq(0xffff); got != 1 {
		t.Fatalf("nextSeq(0xffff) = %d, want 1", got)
	}
}
