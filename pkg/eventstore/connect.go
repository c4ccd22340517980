package eventstore

import (
	"time"

	"github.com/go-logr/logr"
	"github.com/nats-io/nats.go"

	"github.com/cloud-streams/cloud-streams-operator/pkg/monitoring"
)

// DefaultReconnectWait is the pause between attempts to reach NATS.
const DefaultReconnectWait = 2 * time.Second

// Connect dials the NATS server backing a JetStreamStore.
//
// An unreachable server is not an error. The returned connection keeps
// retrying in the background, and lookups made before it comes up fail
// with ErrUnavailable so that health records degrade instead of the
// operator refusing to start.
func Connect(url string, log logr.Logger, opts ...nats.Option) (*nats.Conn, error) {
	base := []nats.Option{
		nats.Name("cloud-streams-operator"),
		nats.Timeout(5 * time.Second),
		nats.RetryOnFailedConnect(true),
		nats.ReconnectWait(DefaultReconnectWait),
		nats.MaxReconnects(-1),
		nats.ConnectHandler(func(c *nats.Conn) {
			monitoring.SetEventStoreConnected(true)
			log.Info("connected to NATS", "url", c.ConnectedUrlRedacted())
		}),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			monitoring.SetEventStoreConnected(false)
			if err != nil {
				log.Error(err, "disconnected from NATS")
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			monitoring.SetEventStoreConnected(true)
			log.Info("reconnected to NATS", "url", c.ConnectedUrlRedacted())
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			monitoring.SetEventStoreConnected(false)
		}),
	}

	nc, err := nats.Connect(url, append(base, opts...)...)
	if err != nil {
		return nil, err
	}
	monitoring.SetEventStoreConnected(nc.IsConnected())
	if !nc.IsConnected() {
		log.Info("NATS unreachable; health records will lack telemetry until it connects", "url", url)
	}
	return nc, nil
}
