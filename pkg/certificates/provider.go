// Package certificates generates the self-signed certificate the agent serves
// its API with in production mode.
package certificates

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"fmt"
	"math/big"
	"net"
	"time"
)

const keyBits = 4096

// DefaultHosts are the names the agent certificate is valid for when none are given.
var DefaultHosts = []string{"localhost", "127.0.0.1", "::1"}

// GenerateSelfSignedCertificate creates a certificate valid until expire for the
// given DNS names and IP addresses, signed by its own key.
func GenerateSelfSignedCertificate(expire time.Time, hosts ...string) (*x509.Certificate, *rsa.PrivateKey, error) {
	if len(hosts) == 0 {
		hosts = DefaultHosts
	}

	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate serial number: %w", err)
	}

	template := &x509.Certificate{
		SerialNumber: serial,
		Subject: pkix.Name{
			Organization:       []string{"Konveyor"},
			OrganizationalUnit: []string{"Migration Discovery"},
			CommonName:         hosts[0],
		},
		NotBefore:             time.Now().Add(-time.Minute),
		NotAfter:              expire,
		IsCA:                  true,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageKeyEncipherment | x509.KeyUsageCertSign,
		BasicConstraintsValid: true,
	}

	for _, h := range hosts {
		if ip := net.ParseIP(h); ip != nil {
			template.IPAddresses = append(template.IPAddresses, ip)
			continue
		}
		template.DNSNames = append(template.DNSNames, h)
	}

	privateKey, err := rsa.GenerateKey(rand.Reader, keyBits)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate rsa private key: %w", err)
	}

	certData, err := x509.CreateCertificate(rand.Reader, template, template, privateKey.Public(), privateKey)
	if err != nil {
		return nil, nil, err
	}

	cert, err := x509.ParseCertificate(certData)
	if err != nil {
		return nil, nil, err
	}

	return cert, privateKey, nil
}

// TLSConfig serves cert with a minimum version of TLS 1.2.
func TLSConfig(cert *x509.Certificate, privateKey *rsa.PrivateKey) (*tls.Config, error) {
	certPEM := new(bytes.Buffer)
	if err := pem.Encode(certPEM, &pem.Block{
		Type:  "CERTIFICATE",
		Bytes: cert.Raw,
	}); err != nil {
		return nil, err
	}

	privKeyPEM := new(bytes.Buffer)
	if err := pem.Encode(privKeyPEM, &pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(privateKey),
	}); err != nil {
		return nil, err
	}

	serverCert, err := tls.X509KeyPair(certPEM.Bytes(), privKeyPEM.Bytes())
	if err != nil {
		return nil, err
	}

	return &tls.Config{
		Certificates: []tls.Certificate{serverCert},
		MinVersion:   tls.VersionTLS12,
	}, nil
}

// NewSelfSignedTLSConfig generates a certificate valid for validFor and returns
// a server TLS configuration using it.
func NewSelfSignedTLSConfig(validFor time.Duration, hosts ...string) (*tls.Config, error) {
	cert, key, err := GenerateSelfSignedCertificate(time.Now().Add(validFor), hosts...)
	if err != nil {
		return nil, err
	}
	return TLSConfig(cert, key)
}
