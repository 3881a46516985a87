package handlers_test

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/migration-discovery/internal/handlers"
	srvErrors "github.com/kubev2v/migration-discovery/pkg/errors"
)

var _ = Describe("Credentials Handlers", func() {
	var (
		mockDiscovery *MockDiscoveryService
		router        *gin.Engine
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		mockDiscovery = &MockDiscoveryService{}
		router = gin.New()
		handlers.New(mockDiscovery, &MockCatalogService{}).Register(router.Group("/api/v1"))
	})

	put := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPut, "/api/v1/credentials", bytes.NewReader([]byte(body)))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("should report whether credentials are stored", func() {
		mockDiscovery.Stored = true
		w := httptest.NewRecorder()

		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/credentials", nil))

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(MatchJSON(`{"stored": true}`))
	})

	It("should save credentials", func() {
		w := put(`{"vsphere": {"username": "admin", "password": "secret", "insecure": true}}`)

		Expect(w.Code).To(Equal(http.StatusNoContent))
		Expect(mockDiscovery.SavedCredentials).NotTo(BeNil())
		Expect(mockDiscovery.SavedCredentials.VSphere.Username).To(Equal("admin"))
		Expect(mockDiscovery.SavedCredentials.VSphere.Insecure).To(BeTrue())
	})

	It("should return 400 for invalid JSON body", func() {
		w := put("{")
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("should return 400 when no storage is configured", func() {
		mockDiscovery.SaveError = srvErrors.NewInvalidConfigurationError("credentials storage requires a data folder")

		w := put(`{}`)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("should return 500 when saving fails", func() {
		mockDiscovery.SaveError = errors.New("disk full")

		w := put(`{}`)

		Expect(w.Code).To(Equal(http.StatusInternalServerError))
	})
})
