package utils

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"fmt"
	"os"
)

// Managed kafka brokers hand out client certs as base64 blobs. They are
// materialized under /tmp so the tls package can load them by path.
func decodeToFile(envVar, destPath string) error {
	b64 := os.Getenv(envVar)
	if b64 == "" {
		return fmt.Errorf("missing env var: %s", envVar)
	}
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", envVar, err)
	}
	return os.WriteFile(destPath, data, 0600)
}

// LoadBrokerTLS builds the client keypair and CA pool for a TLS kafka
// connection from SERVICE_CERT_BASE64, SERVICE_KEY_BASE64 and
// CA_PEM_BASE64.
func LoadBrokerTLS() (tls.Certificate, *x509.CertPool, error) {
	if err := decodeToFile("SERVICE_CERT_BASE64", "/tmp/service.cert"); err != nil {
		return tls.Certificate{}, nil, err
	}
	if err := decodeToFile("SERVICE_KEY_BASE64", "/tmp/service.key"); err != nil {
		return tls.Certificate{}, nil, err
	}
	if err := decodeToFile("CA_PEM_BASE64", "/tmp/ca.pem"); err != nil {
		return tls.Certificate{}, nil, err
	}

	keypair, err := tls.LoadX509KeyPair("/tmp/service.cert", "/tmp/service.key")
	if err != nil {
		return tls.Certificate{}, nil, fmt.Errorf("failed to load TLS keypair: %w", err)
	}

	caCert, err := os.ReadFile("/tmp/ca.pem")
	if err != nil {
		return tls.Certificate{}, nil, fmt.Errorf("failed to read CA cert: %w", err)
	}
	caCertPool := x509.NewCertPool()
	if !caCertPool.AppendCertsFromPEM(caCert) {
		return tls.Certificate{}, nil, fmt.Errorf("failed to parse CA PEM")
	}
	return keypair, caCertPool, nil
}
