package exporter

import (
	"net/netip"
	"sync"
	"time"

	"github.com/fzappa/pingrs/pkg/probe"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	labels   = []string{"target"}
	descSent = prometheus.NewDesc(
		"pingrs_packets_sent_total",
		"Echo requests sent",
		labels, nil,
	)
	descReceived = prometheus.NewDesc(
		"pingrs_packets_received_total",
		"Matching echo replies received",
		labels, nil,
	)
	descLoss = prometheus.NewDesc(
		"pingrs_packet_loss_ratio",
		"Packet loss ratio, 0 to 1",
		labels, nil,
	)
	descRtt = prometheus.NewDesc(
		"pingrs_rtt_seconds",
		"Round trip time",
		[]string{"target", "stat"}, nil,
	)
)

// Collector folds probe outcomes into a scrape friendly snapshot.
// The probe loop writes, Prometheus scrapes read concurrently.
type Collector struct {
	sync.Mutex
	target string
	stats  probe.Stats
	last   time.Duration
}

func NewCollector(target netip.Addr) *Collector {
	return &Collector{target: target.String()}
}

// ProbeProcess implements probe.Client
func (c *Collector) ProbeProcess(out probe.Outcome) {
	c.Lock()
	defer c.Unlock()

	c.stats.Send()
	if out.Result == probe.Success {
		c.stats.Recv(out.RTT)
		c.last = out.RTT
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	prometheus.DescribeByCollect(c, ch)
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.Lock()
	defer c.Unlock()

	sum := c.stats.Summary()

	ch <- prometheus.MustNewConstMetric(descSent,
		prometheus.CounterValue, float64(sum.Sent), c.target)
	ch <- prometheus.MustNewConstMetric(descReceived,
		prometheus.CounterValue, float64(sum.Received), c.target)
	ch <- prometheus.MustNewConstMetric(descLoss,
		prometheus.GaugeValue, sum.Loss/100, c.target)

	ch <- prometheus.MustNewConstMetric(descRtt,
		prometheus.GaugeValue, c.last.Seconds(), c.target, "last")
	ch <- prometheus.MustNewConstMetric(descRtt,
		prometheus.GaugeValue, sum.Min.Seconds(), c.target, "min")
	ch <- prometheus.MustNewConstMetric(descRtt,
		prometheus.GaugeValue, sum.Avg.Seconds(), c.target, "avg")
	ch <- prometheus.MustNewConstMetric(descRtt,
		prometheus.GaugeValue, sum.Max.Seconds(), c.target, "max")
}
