package discovery_test

import (
	"context"
	stderrors "errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/migration-discovery/internal/models"
	"github.com/kubev2v/migration-discovery/pkg/discovery"
)

var _ = Describe("Execute", func() {
	var (
		ctx  context.Context
		unit models.ScanUnit
	)

	BeforeEach(func() {
		ctx = context.Background()
		unit = models.NewScanUnit(models.ProviderAWS, "A")
	})

	// Given an adapter returning valid records
	// When the unit is executed
	// Then every record should be normalized in order
	It("should normalize every record", func() {
		// Arrange
		adapter := &fakeAdapter{units: map[string]func(context.Context) ([]fakeRecord, error){"A": records("1", "2")}}

		// Act
		result := discovery.Execute[fakeRecord](ctx, unit, adapter, normalizeFake)

		// Assert
		Expect(result.Err).To(BeNil())
		Expect(result.Unit).To(Equal(unit))
		Expect(result.Resources).To(HaveLen(2))
		Expect(result.Resources[0].ID).To(Equal("1"))
		Expect(result.Resources[1].ID).To(Equal("2"))
		Expect(result.Dropped).To(BeZero())
		Expect(result.StartedAt).NotTo(BeZero())
	})

	// Given an adapter returning one record without an id
	// When the unit is executed
	// Then the record should be dropped and counted without failing the unit
	It("should drop records failing normalization", func() {
		// Arrange
		adapter := &fakeAdapter{units: map[string]func(context.Context) ([]fakeRecord, error){"A": records("1", "", "3")}}

		// Act
		result := discovery.Execute[fakeRecord](ctx, unit, adapter, normalizeFake)

		// Assert
		Expect(result.Err).To(BeNil())
		Expect(result.Dropped).To(Equal(1))
		Expect(result.Resources).To(HaveLen(2))
		Expect(result.Resources[0].ID).To(Equal("1"))
		Expect(result.Resources[1].ID).To(Equal("3"))
	})

	// Given an adapter failing at the provider level
	// When the unit is executed
	// Then the result should carry no resources and a provider unit error
	It("should report a provider error", func() {
		// Arrange
		adapter := &fakeAdapter{units: map[string]func(context.Context) ([]fakeRecord, error){"A": failing(stderrors.New("region unreachable"))}}

		// Act
		result := discovery.Execute[fakeRecord](ctx, unit, adapter, normalizeFake)

		// Assert
		Expect(result.Resources).To(BeEmpty())
		Expect(result.Err).NotTo(BeNil())
		Expect(result.Err.Kind).To(Equal(models.UnitErrorProvider))
		Expect(result.Err.Unit).To(Equal(unit))
		Expect(result.Err.Message).To(Equal("region unreachable"))
	})

	// Given a cancelled context
	// When the adapter returns the context error
	// Then the unit error should be of kind cancelled
	It("should report a cancelled unit when the context is done", func() {
		// Arrange
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		adapter := discovery.AdapterFunc[fakeRecord](func(ctx context.Context, _ models.ScanUnit) ([]fakeRecord, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})

		// Act
		result := discovery.Execute[fakeRecord](cctx, unit, adapter, normalizeFake)

		// Assert
		Expect(result.Err).NotTo(BeNil())
		Expect(result.Err.Kind).To(Equal(models.UnitErrorCancelled))
		Expect(result.Resources).To(BeEmpty())
	})

	It("should return an empty, non nil resource list for an empty unit", func() {
		adapter := &fakeAdapter{units: map[string]func(context.Context) ([]fakeRecord, error){}}

		result := discovery.Execute[fakeRecord](ctx, unit, adapter, normalizeFake)

		Expect(result.Err).To(BeNil())
		Expect(result.Resources).NotTo(BeNil())
		Expect(result.Resources).To(BeEmpty())
	})
})
