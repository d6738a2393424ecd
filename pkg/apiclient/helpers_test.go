package apiclient_test

import (
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

// counter reads the value of the counter series carrying labels.
// A series that was never written reads as zero.
func (h *harness) counter(t *testing.T, name string, labels map[string]string) float64 {
	t.Helper()

	families, err := h.registry.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if matches(m, labels) {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func (h *harness) requestCount(t *testing.T, method, kind string) float64 {
	return h.counter(t, "adminkit_requests_total", map[string]string{"method": method, "kind": kind})
}

func (h *harness) invalidationCount(t *testing.T) float64 {
	return h.counter(t, "adminkit_session_invalidations_total", map[string]string{"reason": "auth_expired"})
}

func matches(m *dto.Metric, labels map[string]string) bool {
	found := 0
	for _, lp := range m.GetLabel() {
		if want, ok := labels[lp.GetName()]; ok {
			if want != lp.GetValue() {
				return false
			}
			found++
		}
	}
	return found == len(labels)
}
