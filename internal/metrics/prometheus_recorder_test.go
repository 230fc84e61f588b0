package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)

	pr.ObserveValidationDuration(3 * time.Millisecond)
	pr.SetSidebarSize(8, 140)
	pr.IncIssue("duplicate-entry", "WARNING")
	pr.IncIssue("duplicate-entry", "WARNING")
	pr.IncBuildOutcome("warning")

	require.Equal(t, 2.0, testutil.ToFloat64(pr.issues.WithLabelValues("duplicate-entry", "WARNING")))
	require.Equal(t, 8.0, testutil.ToFloat64(pr.categories))
	require.Equal(t, 140.0, testutil.ToFloat64(pr.entries))
	require.Equal(t, 1, testutil.CollectAndCount(pr.validationDuration))

	mfs, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, mfs, 5)
}

func TestWriteTextfile(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.IncBuildOutcome("clean")

	path := filepath.Join(t.TempDir(), "docnav.prom")
	require.NoError(t, pr.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(data), `docnav_validation_outcomes_total{outcome="clean"} 1`))
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveValidationDuration(time.Second)
	r.SetSidebarSize(1, 1)
	r.IncIssue("x", "y")
	r.IncBuildOutcome("clean")
}
