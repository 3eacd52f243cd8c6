package timing

import (
	"testing"
	"time"
)

func TestGetMetricsZeroUntilMarked(t *testing.T) {
	tm := NewTimer()
	m := tm.GetMetrics()
	if m.DNSLookup != 0 || m.TCPConnect != 0 || m.TLSHandshake != 0 || m.TTFB != 0 {
		t.Fatalf("got %+v, want all phases zero before Start/End calls", m)
	}
	if m.TotalTime <= 0 {
		t.Fatal("expected TotalTime to advance from NewTimer")
	}
}

func TestGetMetricsRecordsEachPhase(t *testing.T) {
	tm := NewTimer()
	tm.StartDNS()
	time.Sleep(time.Millisecond)
	tm.EndDNS()
	tm.StartTCP()
	time.Sleep(time.Millisecond)
	tm.EndTCP()
	tm.StartTLS()
	time.Sleep(time.Millisecond)
	tm.EndTLS()
	tm.StartTTFB()
	time.Sleep(time.Millisecond)
	tm.EndTTFB()

	m := tm.GetMetrics()
	if m.DNSLookup <= 0 || m.TCPConnect <= 0 || m.TLSHandshake <= 0 || m.TTFB <= 0 {
		t.Fatalf("got %+v, want all phases positive", m)
	}
}

func TestMetricsString(t *testing.T) {
	m := Metrics{DNSLookup: time.Millisecond}
	if s := m.String(); s == "" {
		t.Fatal("expected non-empty String()")
	}
}
