package server_test

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/migration-discovery/internal/config"
	"github.com/kubev2v/migration-discovery/internal/server"
)

var _ = Describe("HTTP Server", func() {
	var (
		cfg               *config.Configuration
		registerHandlerFn func(router *gin.RouterGroup)
		srv               *server.Server
		client            *http.Client
		scheme            string
	)

	BeforeEach(func() {
		registerHandlerFn = func(router *gin.RouterGroup) {
			router.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{"status": "ok"})
			})
		}
		client = &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		}
	})

	AfterEach(func() {
		if srv != nil {
			srv.Stop(context.TODO())
			srv = nil
		}
	})

	start := func(opts ...server.ServerOption) {
		var err error
		srv, err = server.NewServer(cfg, registerHandlerFn, opts...)
		Expect(err).ToNot(HaveOccurred())

		go func() {
			_ = srv.Start(context.TODO())
		}()

		Eventually(func() error {
			resp, err := client.Get(fmt.Sprintf("%s://localhost:%d/api/v1/health", scheme, cfg.Server.HTTPPort))
			if err != nil {
				return err
			}
			return resp.Body.Close()
		}).Should(Succeed())
	}

	get := func(path string) (*http.Response, error) {
		return client.Get(fmt.Sprintf("%s://localhost:%d%s", scheme, cfg.Server.HTTPPort, path))
	}

	Context("dev server mode", func() {
		BeforeEach(func() {
			scheme = "http"
			cfg = &config.Configuration{
				Server: config.Server{
					ServerMode: server.DevServer,
					HTTPPort:   18080,
				},
			}
		})

		It("serves over HTTP", func() {
			start()

			resp, err := get("/api/v1/health")
			Expect(err).ToNot(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(200))
			resp.Body.Close()
		})

		// Given a server with a metrics handler
		// When we request /metrics
		// Then the handler should answer outside the API group
		It("serves the metrics handler at the root", func() {
			// Arrange
			metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("discovery_runs_total 1\n"))
			})

			// Act
			start(server.WithMetricsHandler(metrics))
			resp, err := get("/metrics")

			// Assert
			Expect(err).ToNot(HaveOccurred())
			defer resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(200))
			body, err := io.ReadAll(resp.Body)
			Expect(err).ToNot(HaveOccurred())
			Expect(string(body)).To(ContainSubstring("discovery_runs_total"))
		})

		It("returns 404 JSON for unknown routes", func() {
			start()

			resp, err := get("/api/v1/nonexistent")
			Expect(err).ToNot(HaveOccurred())
			defer resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(404))
			Expect(resp.Header.Get("Content-Type")).To(ContainSubstring("application/json"))
		})

		It("recovers from handler panics", func() {
			registerHandlerFn = func(router *gin.RouterGroup) {
				router.GET("/health", func(c *gin.Context) { c.Status(200) })
				router.GET("/panic", func(c *gin.Context) { panic("boom") })
			}
			start()

			resp, err := get("/api/v1/panic")
			Expect(err).ToNot(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(500))
			resp.Body.Close()
		})
	})

	Context("production server mode", func() {
		BeforeEach(func() {
			scheme = "https"
			cfg = &config.Configuration{
				Server: config.Server{
					ServerMode: server.ProductionServer,
					HTTPPort:   18443,
				},
			}
		})

		It("serves over HTTPS with TLS", func() {
			start()

			resp, err := get("/api/v1/health")
			Expect(err).ToNot(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(200))
			Expect(resp.TLS).NotTo(BeNil())
			resp.Body.Close()
		})

		// Given a running production server
		// When we call Stop
		// Then subsequent requests should fail
		It("stops accepting requests after Stop", func() {
			start()

			// Act
			srv.Stop(context.TODO())
			srv = nil

			// Assert
			_, err := get("/api/v1/health")
			Expect(err).To(HaveOccurred())
		})
	})
})
