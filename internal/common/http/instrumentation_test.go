package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"player-api/internal/common/metrics"
	"player-api/internal/common/observability"
)

type instrumented struct {
	client   *Client
	reader   *sdkmetric.ManualReader
	recorder *tracetest.SpanRecorder
}

func newInstrumentedClient(t *testing.T) *instrumented {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	recorder := tracetest.NewSpanRecorder()
	obs := observability.NewWithReader("test", reader, sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(obs.Shutdown)

	return &instrumented{
		client:   NewClient("balldontlie", 0, obs),
		reader:   reader,
		recorder: recorder,
	}
}

func attrValue(set attribute.Set, key string) string {
	v, _ := set.Value(attribute.Key(key))
	return v.AsString()
}

// collect returns upstream.calls counts and upstream.duration sample counts keyed by outcome.
func (i *instrumented) collect(t *testing.T) (calls map[string]int64, durations map[string]uint64) {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, i.reader.Collect(context.Background(), &rm))

	calls = map[string]int64{}
	durations = map[string]uint64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch m.Name {
			case "upstream.calls":
				sum, ok := m.Data.(metricdata.Sum[int64])
				require.True(t, ok, "upstream.calls is %T", m.Data)
				for _, dp := range sum.DataPoints {
					assert.Equal(t, "balldontlie", attrValue(dp.Attributes, "provider"))
					assert.Equal(t, "search", attrValue(dp.Attributes, "operation"))
					calls[attrValue(dp.Attributes, "outcome")] += dp.Value
				}
			case "upstream.duration":
				hist, ok := m.Data.(metricdata.Histogram[float64])
				require.True(t, ok, "upstream.duration is %T", m.Data)
				for _, dp := range hist.DataPoints {
					assert.Equal(t, "balldontlie", attrValue(dp.Attributes, "provider"))
					assert.Equal(t, "search", attrValue(dp.Attributes, "operation"))
					durations[attrValue(dp.Attributes, "outcome")] += dp.Count
				}
			}
		}
	}
	return calls, durations
}

func spanOutcome(span sdktrace.ReadOnlySpan) string {
	for _, kv := range span.Attributes() {
		if kv.Key == "upstream.outcome" {
			return kv.Value.AsString()
		}
	}
	return ""
}

func TestClient_RecordsMetricsAndSpans(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/players" {
			w.Write([]byte(`{"data":[]}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	okCounter := metrics.UpstreamRequestsTotal.WithLabelValues("balldontlie", "search", "ok")
	notFoundCounter := metrics.UpstreamRequestsTotal.WithLabelValues("balldontlie", "search", "http_404")
	okBefore := testutil.ToFloat64(okCounter)
	notFoundBefore := testutil.ToFloat64(notFoundCounter)

	inst := newInstrumentedClient(t)
	_, err := inst.client.Get(context.Background(), "search", server.URL+"/players")
	require.NoError(t, err)
	resp, err := inst.client.Get(context.Background(), "search", server.URL+"/missing")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	assert.Equal(t, okBefore+1, testutil.ToFloat64(okCounter))
	assert.Equal(t, notFoundBefore+1, testutil.ToFloat64(notFoundCounter))

	calls, durations := inst.collect(t)
	assert.Equal(t, map[string]int64{"ok": 1, "http_404": 1}, calls)
	assert.Equal(t, map[string]uint64{"ok": 1, "http_404": 1}, durations)

	spans := inst.recorder.Ended()
	require.Len(t, spans, 2)
	outcomes := []string{}
	for _, span := range spans {
		assert.Equal(t, "balldontlie.search", span.Name())
		assert.Equal(t, trace.SpanKindClient, span.SpanKind())
		assert.NotEqual(t, codes.Error, span.Status().Code)
		outcomes = append(outcomes, spanOutcome(span))
	}
	assert.ElementsMatch(t, []string{"ok", "http_404"}, outcomes)
}

func TestClient_TransportErrorMarksSpan(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	errCounter := metrics.UpstreamRequestsTotal.WithLabelValues("balldontlie", "search", "error")
	before := testutil.ToFloat64(errCounter)

	inst := newInstrumentedClient(t)
	_, err := inst.client.Get(context.Background(), "search", url+"/players")
	require.Error(t, err)

	assert.Equal(t, before+1, testutil.ToFloat64(errCounter))

	calls, _ := inst.collect(t)
	assert.Equal(t, map[string]int64{"error": 1}, calls)

	spans := inst.recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "error", spanOutcome(spans[0]))
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}
