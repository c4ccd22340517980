package monitoring

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"k8s.io/utils/ptr"

	cloudstreamsv1 "github.com/cloud-streams/cloud-streams-operator/api/v1"
)

func resetHealthGauges(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		subscriptionInfo.Reset()
		subscriptionPartitionLength.Reset()
		subscriptionLag.Reset()
	})
}

func TestSetSubscriptionHealth(t *testing.T) {
	resetHealthGauges(t)

	SetSubscriptionHealth(&cloudstreamsv1.SubscriptionHealth{
		Name:            "orders",
		Namespace:       "default",
		Phase:           cloudstreamsv1.SubscriptionPhaseActive,
		PartitionId:     ptr.To("orders-source"),
		AckedOffset:     ptr.To(uint64(100)),
		PartitionLength: ptr.To(uint64(150)),
		Lag:             ptr.To(int64(50)),
	})

	if val := gaugeValue(t, subscriptionInfo, "orders", "default", "Active"); val != 1 {
		t.Errorf("expected subscriptionInfo gauge to be 1, got %f", val)
	}
	if val := gaugeValue(t, subscriptionPartitionLength, "orders", "default", "orders-source"); val != 150 {
		t.Errorf("expected partition length=150, got %f", val)
	}
	if val := gaugeValue(t, subscriptionLag, "orders", "default", "orders-source"); val != 50 {
		t.Errorf("expected lag=50, got %f", val)
	}
}

func TestSetSubscriptionHealth_PhaseChangeAndTelemetryLoss(t *testing.T) {
	resetHealthGauges(t)

	SetSubscriptionHealth(&cloudstreamsv1.SubscriptionHealth{
		Name:            "orders",
		Namespace:       "default",
		Phase:           cloudstreamsv1.SubscriptionPhaseActive,
		PartitionId:     ptr.To("orders-source"),
		AckedOffset:     ptr.To(uint64(1)),
		PartitionLength: ptr.To(uint64(2)),
		Lag:             ptr.To(int64(1)),
	})

	// Telemetry unavailable on the next pass: series must disappear, not go stale.
	SetSubscriptionHealth(&cloudstreamsv1.SubscriptionHealth{
		Name:        "orders",
		Namespace:   "default",
		Phase:       cloudstreamsv1.SubscriptionPhaseInactive,
		PartitionId: ptr.To("orders-source"),
		AckedOffset: ptr.To(uint64(1)),
	})

	if n := testutil.CollectAndCount(subscriptionInfo); n != 1 {
		t.Errorf("expected a single subscriptionInfo series after phase change, got %d", n)
	}
	if val := gaugeValue(t, subscriptionInfo, "orders", "default", "Inactive"); val != 1 {
		t.Errorf("expected Inactive phase gauge to be 1, got %f", val)
	}
	if n := testutil.CollectAndCount(subscriptionPartitionLength); n != 0 {
		t.Errorf("expected no partition length series, got %d", n)
	}
	if n := testutil.CollectAndCount(subscriptionLag); n != 0 {
		t.Errorf("expected no lag series, got %d", n)
	}
}

func TestDeleteSubscriptionHealth(t *testing.T) {
	resetHealthGauges(t)

	for _, name := range []string{"a", "b"} {
		SetSubscriptionHealth(&cloudstreamsv1.SubscriptionHealth{
			Name:            name,
			Namespace:       "default",
			Phase:           cloudstreamsv1.SubscriptionPhaseActive,
			PartitionLength: ptr.To(uint64(3)),
		})
	}

	DeleteSubscriptionHealth("a", "default")

	if n := testutil.CollectAndCount(subscriptionInfo); n != 1 {
		t.Errorf("expected 1 subscriptionInfo series, got %d", n)
	}
	if n := testutil.CollectAndCount(subscriptionPartitionLength); n != 1 {
		t.Errorf("expected 1 partition length series, got %d", n)
	}
}

func TestRecordTelemetryLookup(t *testing.T) {
	t.Cleanup(func() { telemetryLookupTotal.Reset() })

	RecordTelemetryLookup(nil, 5*time.Millisecond)
	RecordTelemetryLookup(errors.New("stream not found"), 10*time.Millisecond)
	RecordTelemetryLookup(errors.New("timeout"), 10*time.Millisecond)

	if v := counterValue(t, telemetryLookupTotal, "success"); v != 1 {
		t.Errorf("expected success counter=1, got %f", v)
	}
	if v := counterValue(t, telemetryLookupTotal, "error"); v != 2 {
		t.Errorf("expected error counter=2, got %f", v)
	}
}

func TestRecordHealthRequest(t *testing.T) {
	t.Cleanup(func() { healthRequestTotal.Reset() })

	RecordHealthRequest(200, 20*time.Millisecond)
	RecordHealthRequest(400, time.Millisecond)

	if v := counterValue(t, healthRequestTotal, "200"); v != 1 {
		t.Errorf("expected 200 counter=1, got %f", v)
	}
	if v := counterValue(t, healthRequestTotal, "400"); v != 1 {
		t.Errorf("expected 400 counter=1, got %f", v)
	}
}

// --- helpers ---

func gaugeValue(t *testing.T, vec *prometheus.GaugeVec, labels ...string) float64 {
	t.Helper()
	g, err := vec.GetMetricWithLabelValues(labels...)
	if err != nil {
		t.Fatalf("GetMetricWithLabelValues(%v): %v", labels, err)
	}
	m := &dto.Metric{}
	if err := g.Write(m); err != nil {
		t.Fatalf("Write: %v", err)
	}
	return m.GetGauge().GetValue()
}

func counterValue(t *testing.T, vec *prometheus.CounterVec, labels ...string) float64 {
	t.Helper()
	c, err := vec.GetMetricWithLabelValues(labels...)
	if err != nil {
		t.Fatalf("GetMetricWithLabelValues(%v): %v", labels, err)
	}
	m := &dto.Metric{}
	if err := c.Write(m); err != nil {
		t.Fatalf("Write: %v", err)
	}
	return m.GetCounter().GetValue()
}

func TestSetEventStoreConnected(t *testing.T) {
	t.Cleanup(func() { eventStoreConnected.Set(0) })

	SetEventStoreConnected(true)
	if v := testutil.ToFloat64(eventStoreConnected); v != 1 {
		t.Errorf("expected connected gauge=1, got %f", v)
	}

	SetEventStoreConnected(false)
	if v := testutil.ToFloat64(eventStoreConnected); v != 0 {
		t.Errorf("expected connected gauge=0 after disconnect, got %f", v)
	}
}
