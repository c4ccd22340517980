// Package cert provides serving certificates for the subscription health API.
//
// Two sources are supported:
//
//  1. External (e.g., cert-manager): tls.crt and tls.key are mounted into a
//     directory and loaded as-is.
//
//  2. Self-signed: when the directory holds no key pair, an ephemeral CA and a
//     server certificate signed by it are generated in memory at startup.
//     Nothing is written to disk or to the cluster, so clients must skip
//     verification or trust the CA returned alongside the config.
//
// Usage:
//
//	cfg, err := cert.ServingConfig("/var/run/secrets/health-api", []string{"cloud-streams-health.cloud-streams.svc"})
//	if err != nil {
//	    // handle error
//	}
//	srv := api.NewServer(addr, router, api.WithTLSConfig(cfg.TLS))
package cert
