package vmware

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/vmware/govmomi"
	"github.com/vmware/govmomi/session"
	"github.com/vmware/govmomi/vim25"
	"github.com/vmware/govmomi/vim25/soap"
	"go.uber.org/zap"

	"github.com/kubev2v/migration-discovery/internal/models"
)

const (
	logoutTimeout = 10 * time.Second
	userAgent     = "migration-discovery"
)

// vcenterSession is an authenticated connection to one vCenter.
type vcenterSession struct {
	*govmomi.Client
	endpoint string
	logger   *zap.SugaredLogger
}

// endpointURL completes a bare host name to "https://<host>/sdk".
func endpointURL(endpoint string) (*url.URL, error) {
	u, err := soap.ParseURL(endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to parse vCenter URL: %w", err)
	}
	if u == nil || u.Host == "" {
		return nil, fmt.Errorf("failed to parse vCenter URL: no host in %q", endpoint)
	}
	return u, nil
}

// openSession logs into endpoint with the configured credentials.
func openSession(ctx context.Context, endpoint string, cfg models.VSphereConfig, logger *zap.SugaredLogger) (*vcenterSession, error) {
	if cfg.Username == "" {
		return nil, errors.New("missing vSphere username")
	}

	u, err := endpointURL(endpoint)
	if err != nil {
		return nil, err
	}
	u.User = url.UserPassword(cfg.Username, cfg.Password)

	soapClient := soap.NewClient(u, cfg.Insecure)
	soapClient.UserAgent = userAgent

	vimClient, err := vim25.NewClient(ctx, soapClient)
	if err != nil {
		return nil, fmt.Errorf("failed to create vim25 client: %w", err)
	}

	client := &govmomi.Client{
		Client:         vimClient,
		SessionManager: session.NewManager(vimClient),
	}
	if err := client.Login(ctx, u.User); err != nil {
		return nil, fmt.Errorf("failed to login to vCenter: %w", err)
	}

	logger.Debugw("logged into vCenter", "endpoint", endpoint, "host", u.Host, "user", cfg.Username)
	return &vcenterSession{Client: client, endpoint: endpoint, logger: logger}, nil
}

// Close logs out on a fresh context so a cancelled scan still releases the session.
func (s *vcenterSession) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), logoutTimeout)
	defer cancel()
	if err := s.Logout(ctx); err != nil {
		s.logger.Debugw("failed to logout from vCenter", "endpoint", s.endpoint, "error", err)
	}
}
