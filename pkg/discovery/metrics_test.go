package discovery_test

import (
	"context"
	stderrors "errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kubev2v/migration-discovery/pkg/discovery"
)

var _ = Describe("Metrics", func() {
	// Given an orchestrator observed by the Prometheus metrics
	// When a run with one failing unit completes
	// Then unit, resource and run counters should be updated
	It("should record unit outcomes", func() {
		// Arrange
		reg := prometheus.NewRegistry()
		metrics := discovery.NewMetrics(reg)
		o := fakeOrchestrator(map[string]unitFunc{
			"ok":  records("1", "", "3"),
			"bad": failing(stderrors.New("boom")),
		}).WithObserver(metrics)

		// Act
		_, err := o.Run(context.Background(), awsRequest("ok", "bad"))

		// Assert
		Expect(err).NotTo(HaveOccurred())
		Expect(testutil.ToFloat64(metrics.UnitsTotal.WithLabelValues("aws", "succeeded"))).To(Equal(1.0))
		Expect(testutil.ToFloat64(metrics.UnitsTotal.WithLabelValues("aws", "failed"))).To(Equal(1.0))
		Expect(testutil.ToFloat64(metrics.ResourcesTotal.WithLabelValues("aws"))).To(Equal(2.0))
		Expect(testutil.ToFloat64(metrics.DroppedTotal.WithLabelValues("aws"))).To(Equal(1.0))
		Expect(testutil.ToFloat64(metrics.UnitsInFlight.WithLabelValues("aws"))).To(Equal(0.0))
		Expect(testutil.ToFloat64(metrics.RunsTotal)).To(Equal(1.0))
		Expect(testutil.ToFloat64(metrics.LastRunResources)).To(Equal(2.0))
	})
})
