package cert

import (
	"crypto/tls"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"sigs.k8s.io/controller-runtime/pkg/certwatcher"
)

const (
	// CertFile is the name of the certificate file in a serving cert directory.
	CertFile = "tls.crt"
	// KeyFile is the name of the key file in a serving cert directory.
	KeyFile = "tls.key"
)

// Serving is a TLS configuration ready for a listener.
type Serving struct {
	TLS *tls.Config

	// Generated reports whether the key pair was generated in memory.
	Generated bool

	// CAPEM is the generated CA. Empty for mounted certificates.
	CAPEM []byte

	// Watcher reloads a mounted key pair when it is rotated on disk. It must
	// be started (it is a manager Runnable) for rotations to be picked up.
	// Nil for generated certificates.
	Watcher *certwatcher.CertWatcher
}

// Exists reports whether dir holds both CertFile and KeyFile.
func Exists(dir string) bool {
	_, errCrt := os.Stat(filepath.Join(dir, CertFile))
	_, errKey := os.Stat(filepath.Join(dir, KeyFile))
	return errCrt == nil && errKey == nil
}

// ServingConfig loads the key pair from dir, or generates a self-signed one
// for hosts when dir holds none. A directory with only one of the two files
// is an error rather than a reason to generate.
func ServingConfig(dir string, hosts []string) (*Serving, error) {
	certPath := filepath.Join(dir, CertFile)
	keyPath := filepath.Join(dir, KeyFile)

	if dir != "" && Exists(dir) {
		watcher, err := certwatcher.New(certPath, keyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load serving certificate from %s: %w", dir, err)
		}
		cfg := newTLSConfig()
		cfg.GetCertificate = watcher.GetCertificate
		return &Serving{TLS: cfg, Watcher: watcher}, nil
	}
	if dir != "" && (fileExists(certPath) || fileExists(keyPath)) {
		return nil, fmt.Errorf("incomplete key pair in %s: need both %s and %s", dir, CertFile, KeyFile)
	}

	arts, err := GenerateSelfSigned(hosts)
	if err != nil {
		return nil, err
	}
	pair, err := tls.X509KeyPair(arts.CertPEM, arts.KeyPEM)
	if err != nil {
		return nil, fmt.Errorf("failed to load generated certificate: %w", err)
	}
	cfg := newTLSConfig()
	cfg.Certificates = []tls.Certificate{pair}
	return &Serving{TLS: cfg, Generated: true, CAPEM: arts.CAPEM}, nil
}

func newTLSConfig() *tls.Config {
	return &tls.Config{
		MinVersion: tls.VersionTLS12,
		NextProtos: []string{"http/1.1"},
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, os.ErrNotExist)
}
