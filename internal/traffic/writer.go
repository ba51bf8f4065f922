package traffic

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// WriteLog emits the whitespace-separated log format with a comment header
// and an anomaly marker between the baseline and the injected events.
func WriteLog(w io.Writer, baseline, anomalies []Event) error {
	if _, err := fmt.Fprintln(w, "# Sample network traffic data for anomaly detection"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "# Format: timestamp src_ip src_port dst_ip dst_port protocol bytes duration"); err != nil {
		return err
	}

	for _, event := range baseline {
		if _, err := fmt.Fprintln(w, event.String()); err != nil {
			return err
		}
	}

	if len(anomalies) > 0 {
		for _, line := range []string{"#", "# ===== ANOMALIES BELOW =====", "#"} {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		for _, event := range anomalies {
			if _, err := fmt.Fprintln(w, event.String()); err != nil {
				return err
			}
		}
	}

	return nil
}

var csvHeader = []string{
	"timestamp", "src_ip", "src_port", "dst_ip", "dst_port", "protocol", "bytes", "duration",
}

// WriteCSV emits a header row followed by one row per event.
func WriteCSV(w io.Writer, events []Event) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, event := range events {
		record := []string{
			event.Timestamp.Format("2006-01-02T15:04:05"),
			event.SrcIP,
			strconv.Itoa(event.SrcPort),
			event.DstIP,
			strconv.Itoa(event.DstPort),
			event.Protocol,
			strconv.FormatInt(event.Bytes, 10),
			strconv.FormatFloat(event.Duration, 'g', -1, 64),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
