/*
Copyright 2026.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"context"
	"crypto/tls"
	"flag"
	"os"
	"strconv"
	"time"

	// Import all Kubernetes client auth plugins (e.g. Azure, GCP, OIDC, etc.)
	_ "k8s.io/client-go/plugin/pkg/client/auth"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"k8s.io/apimachinery/pkg/runtime"
	utilruntime "k8s.io/apimachinery/pkg/util/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/healthz"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
	"sigs.k8s.io/controller-runtime/pkg/metrics/filters"
	metricsserver "sigs.k8s.io/controller-runtime/pkg/metrics/server"

	cloudstreamsv1 "github.com/cloud-streams/cloud-streams-operator/api/v1"
	"github.com/cloud-streams/cloud-streams-operator/pkg/api"
	"github.com/cloud-streams/cloud-streams-operator/pkg/cert"
	"github.com/cloud-streams/cloud-streams-operator/pkg/eventstore"
	"github.com/cloud-streams/cloud-streams-operator/pkg/exporter"
	"github.com/cloud-streams/cloud-streams-operator/pkg/health"
	"github.com/cloud-streams/cloud-streams-operator/pkg/monitoring"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	scheme   = runtime.NewScheme()
	setupLog = ctrl.Log.WithName("setup")
)

func init() {
	utilruntime.Must(clientgoscheme.AddToScheme(scheme))
	utilruntime.Must(cloudstreamsv1.AddToScheme(scheme))
	// +kubebuilder:scaffold:scheme
}

func main() {
	var metricsAddr string
	var enableLeaderElection bool
	var probeAddr string
	var secureMetrics bool
	var enableHTTP2 bool
	var tlsOpts []func(*tls.Config)

	// Health API Flags
	var healthAPIAddr string
	var healthAPISecure bool
	var healthAPICertDir string
	var healthAPIServiceName string
	var serviceNamespace string
	var lookupConcurrency int
	var exportInterval time.Duration

	// Event Store Flags
	var natsURL string
	var eventStream string
	var subjectPrefix string
	var lookupTimeout time.Duration

	defaultNS := os.Getenv("POD_NAMESPACE")
	if defaultNS == "" {
		defaultNS = "cloud-streams-system"
	}

	defaultNATSURL := os.Getenv("NATS_URL")
	if defaultNATSURL == "" {
		defaultNATSURL = nats.DefaultURL
	}

	defaultConcurrency := 1
	if v, err := strconv.Atoi(os.Getenv("HEALTH_LOOKUP_CONCURRENCY")); err == nil && v > 0 {
		defaultConcurrency = v
	}

	// General Flags
	flag.StringVar(&metricsAddr, "metrics-bind-address", "0", "The address the metrics endpoint binds to.")
	flag.StringVar(&probeAddr, "health-probe-bind-address", ":8081", "The address the probe endpoint binds to.")
	flag.BoolVar(&enableLeaderElection, "leader-elect", false, "Enable leader election for controller manager.")
	flag.BoolVar(&secureMetrics, "metrics-secure", true, "If set, the metrics endpoint is served securely via HTTPS.")
	flag.BoolVar(&enableHTTP2, "enable-http2", false, "If set, HTTP/2 will be enabled for the metrics server")

	// Health API Flag Configuration
	flag.StringVar(&healthAPIAddr, "health-api-bind-address", api.DefaultBindAddress, "The address the subscription health API binds to.")
	flag.BoolVar(&healthAPISecure, "health-api-secure", false, "If set, the subscription health API is served via HTTPS.")
	flag.StringVar(&healthAPICertDir, "health-api-cert-dir", "/var/run/secrets/health-api", "Directory holding tls.crt and tls.key for the health API. A self-signed pair is generated when empty.")
	flag.StringVar(&healthAPIServiceName, "health-api-service-name", "cloud-streams-operator-health", "Name of the Kubernetes Service in front of the health API")
	flag.StringVar(&serviceNamespace, "service-namespace", defaultNS, "Namespace where the operator's services reside")
	flag.IntVar(&lookupConcurrency, "health-lookup-concurrency", defaultConcurrency, "Number of partition lookups allowed to run ahead of a health response. 1 keeps lookups sequential.")
	flag.DurationVar(&exportInterval, "health-export-interval", exporter.DefaultInterval, "How often subscription health is exported as metrics. 0 disables the exporter.")

	// Event Store Flag Configuration
	flag.StringVar(&natsURL, "nats-url", defaultNATSURL, "URL of the NATS server backing the event store")
	flag.StringVar(&eventStream, "event-stream", "CLOUDEVENTS", "Name of the JetStream stream holding cloud events")
	flag.StringVar(&subjectPrefix, "event-subject-prefix", eventstore.DefaultSubjectPrefix, "Subject prefix of partition subjects in the event stream")
	flag.DurationVar(&lookupTimeout, "partition-lookup-timeout", eventstore.DefaultLookupTimeout, "Upper bound on a single partition metadata lookup")

	opts := zap.Options{Development: true}
	opts.BindFlags(flag.CommandLine)
	flag.Parse()

	ctrl.SetLogger(zap.New(zap.UseFlagOptions(&opts)))

	disableHTTP2 := func(c *tls.Config) {
		setupLog.Info("disabling http/2")
		c.NextProtos = []string{"http/1.1"}
	}
	if !enableHTTP2 {
		tlsOpts = append(tlsOpts, disableHTTP2)
	}

	metricsServerOptions := metricsserver.Options{
		BindAddress:   metricsAddr,
		SecureServing: secureMetrics,
		TLSOpts:       tlsOpts,
	}

	if secureMetrics {
		metricsServerOptions.FilterProvider = filters.WithAuthenticationAndAuthorization
	}

	ctx := ctrl.SetupSignalHandler()

	// 1. Tracing (no-op unless OTEL_EXPORTER_OTLP_ENDPOINT is set)
	shutdownTracing, err := monitoring.InitTracing(ctx, "cloud-streams-operator", version)
	if err != nil {
		setupLog.Error(err, "unable to initialize tracing")
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			setupLog.Error(err, "failed to flush traces")
		}
	}()

	mgr, err := ctrl.NewManager(ctrl.GetConfigOrDie(), ctrl.Options{
		Scheme:                 scheme,
		Metrics:                metricsServerOptions,
		HealthProbeBindAddress: probeAddr,
		LeaderElection:         enableLeaderElection,
		LeaderElectionID:       "cloud-streams-operator.cloud-streams.io",
	})
	if err != nil {
		setupLog.Error(err, "unable to start manager")
		os.Exit(1)
	}

	// 2. Connect to the event store. An unreachable server only degrades
	// health records, so the connection retries in the background.
	nc, err := eventstore.Connect(natsURL, ctrl.Log.WithName("nats"))
	if err != nil {
		setupLog.Error(err, "invalid NATS configuration", "url", natsURL)
		os.Exit(1)
	}
	defer nc.Close()

	js, err := jetstream.New(nc)
	if err != nil {
		setupLog.Error(err, "unable to create JetStream context")
		os.Exit(1)
	}

	store := eventstore.NewJetStreamStore(js, eventStream,
		eventstore.WithSubjectPrefix(subjectPrefix),
		eventstore.WithLookupTimeout(lookupTimeout),
	)

	// 3. Health query pipeline
	queries := health.NewQueryHandler(
		health.NewClientLister(mgr.GetClient()),
		health.NewAggregator(store, health.WithConcurrency(lookupConcurrency)),
	)

	var serverOpts []api.ServerOption
	if healthAPISecure {
		svc := healthAPIServiceName + "." + serviceNamespace + ".svc"
		serving, err := cert.ServingConfig(healthAPICertDir, []string{svc, healthAPIServiceName, svc + ".cluster.local"})
		if err != nil {
			setupLog.Error(err, "unable to set up health API certificates")
			os.Exit(1)
		}
		if serving.Generated {
			setupLog.Info("health API certificates not found on disk; using a self-signed certificate", "dir", healthAPICertDir)
		} else {
			setupLog.Info("health API certificates found on disk; using external certificate management", "dir", healthAPICertDir)
			if err := mgr.Add(serving.Watcher); err != nil {
				setupLog.Error(err, "unable to add health API certificate watcher to manager")
				os.Exit(1)
			}
		}
		serverOpts = append(serverOpts, api.WithTLSConfig(serving.TLS))
	}

	if err := mgr.Add(api.NewServer(healthAPIAddr, api.NewRouter(api.NewHandler(queries)), serverOpts...)); err != nil {
		setupLog.Error(err, "unable to add health API server to manager")
		os.Exit(1)
	}

	if exportInterval > 0 {
		if err := mgr.Add(exporter.New(queries, exportInterval)); err != nil {
			setupLog.Error(err, "unable to add health exporter to manager")
			os.Exit(1)
		}
	}

	if err := mgr.AddHealthzCheck("healthz", healthz.Ping); err != nil {
		setupLog.Error(err, "unable to set up health check")
		os.Exit(1)
	}
	if err := mgr.AddReadyzCheck("readyz", healthz.Ping); err != nil {
		setupLog.Error(err, "unable to set up ready check")
		os.Exit(1)
	}

	setupLog.Info("starting manager", "version", version, "stream", store.Stream())
	if err := mgr.Start(ctx); err != nil {
		setupLog.Error(err, "problem running manager")
		os.Exit(1)
	}
}
