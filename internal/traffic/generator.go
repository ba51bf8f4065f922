// Package traffic writes synthetic network-traffic fixtures: a normal
// baseline of HTTPS and DNS flows plus a handful of injected anomalies for
// exercising detection tooling.
package traffic

import (
	"fmt"
	"math/rand"
	"time"
)

// Event is one observed flow.
type Event struct {
	Timestamp time.Time
	SrcIP     string
	SrcPort   int
	DstIP     string
	DstPort   int
	Protocol  string
	Bytes     int64
	Duration  float64
}

type service struct {
	ip    string
	port  int
	proto string
}

var dstServers = []service{
	{"93.184.216.34", 443, "TCP"},
	{"172.217.14.206", 443, "TCP"},
	{"151.101.1.69", 443, "TCP"},
	{"104.244.42.1", 443, "TCP"},
	{"52.94.236.248", 443, "TCP"},
	{"8.8.8.8", 53, "UDP"},
	{"8.8.4.4", 53, "UDP"},
}

var srcIPs = []string{
	"192.168.1.10",
	"192.168.1.11",
	"192.168.1.12",
	"192.168.1.13",
	"192.168.1.14",
}

var baseTime = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

// Config drives generation. Deterministic for a fixed seed.
type Config struct {
	Seed      int64
	Count     int
	Anomalies bool
}

func DefaultConfig() Config {
	return Config{
		Seed:      42,
		Count:     350,
		Anomalies: true,
	}
}

// Generate produces the baseline events followed by the anomalies.
func Generate(cfg Config) []Event {
	rng := rand.New(rand.NewSource(cfg.Seed))

	events := make([]Event, 0, cfg.Count+5)
	for i := 0; i < cfg.Count; i++ {
		jitter := rng.Float64() - 0.5
		ts := baseTime.Add(time.Duration(float64(i*2)+jitter) * time.Second)

		src := srcIPs[rng.Intn(len(srcIPs))]
		srcPort := 49152 + rng.Intn(51999-49152+1)
		dst := dstServers[rng.Intn(len(dstServers))]

		var bytes int64
		var duration float64
		if dst.proto == "UDP" { // DNS
			bytes = int64(50 + rng.Intn(71))
			duration = round4(0.005 + rng.Float64()*(0.03-0.005))
		} else { // HTTPS
			bytes = int64(500 + rng.Intn(2501))
			duration = round4(0.02 + rng.Float64()*(0.12-0.02))
		}

		events = append(events, Event{
			Timestamp: ts,
			SrcIP:     src,
			SrcPort:   srcPort,
			DstIP:     dst.ip,
			DstPort:   dst.port,
			Protocol:  dst.proto,
			Bytes:     bytes,
			Duration:  duration,
		})
	}

	if cfg.Anomalies {
		events = append(events, Anomalies()...)
	}

	return events
}

// Anomalies returns the five injected incidents: bulk exfiltration, an ICMP
// probe, an oversized DNS response, an off-hours high-port transfer and a
// zero-byte SSH hit.
func Anomalies() []Event {
	return []Event{
		{
			Timestamp: baseTime.Add(12 * time.Minute),
			SrcIP:     "192.168.1.10", SrcPort: 49200,
			DstIP: "45.33.32.156", DstPort: 8443,
			Protocol: "TCP", Bytes: 9500000, Duration: 120.50,
		},
		{
			Timestamp: baseTime.Add(12*time.Minute + 5*time.Second),
			SrcIP:     "192.168.1.99", SrcPort: 1,
			DstIP: "10.0.0.1", DstPort: 0,
			Protocol: "ICMP", Bytes: 28, Duration: 0.001,
		},
		{
			Timestamp: baseTime.Add(12*time.Minute + 10*time.Second),
			SrcIP:     "192.168.1.10", SrcPort: 51250,
			DstIP: "8.8.8.8", DstPort: 53,
			Protocol: "UDP", Bytes: 4500000, Duration: 30.00,
		},
		{
			Timestamp: time.Date(2024, 1, 15, 3, 15, 0, 0, time.UTC),
			SrcIP:     "192.168.1.50", SrcPort: 60000,
			DstIP: "198.51.100.1", DstPort: 31337,
			Protocol: "TCP", Bytes: 5000000, Duration: 300.00,
		},
		{
			Timestamp: baseTime.Add(12*time.Minute + 20*time.Second),
			SrcIP:     "192.168.1.10", SrcPort: 49300,
			DstIP: "10.0.0.1", DstPort: 22,
			Protocol: "TCP", Bytes: 0, Duration: 0.0001,
		},
	}
}

func round4(v float64) float64 {
	return float64(int64(v*10000+0.5)) / 10000
}

func (e Event) String() string {
	return fmt.Sprintf("%s %s %d %s %d %s %d %g",
		e.Timestamp.Format("2006-01-02T15:04:05"),
		e.SrcIP, e.SrcPort, e.DstIP, e.DstPort, e.Protocol, e.Bytes, e.Duration)
}
