package api

import (
	"context"
	"encoding/json"
	"errors"
	"iter"
	"net/http"

	"k8s.io/apimachinery/pkg/labels"
	"sigs.k8s.io/controller-runtime/pkg/log"

	cloudstreamsv1 "github.com/cloud-streams/cloud-streams-operator/api/v1"
	"github.com/cloud-streams/cloud-streams-operator/pkg/health"
)

const (
	// NamespaceParam restricts the query to one namespace.
	NamespaceParam = "namespace"
	// LabelSelectorParam filters subscriptions by label, e.g. "team=sales,tier!=bronze".
	LabelSelectorParam = "labelSelector"
)

// HealthQuerier answers subscription health queries.
type HealthQuerier interface {
	Handle(ctx context.Context, q health.Query) (iter.Seq[cloudstreamsv1.SubscriptionHealth], error)
}

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	queries HealthQuerier
}

// NewHandler creates a new API handler.
func NewHandler(queries HealthQuerier) *Handler {
	return &Handler{queries: queries}
}

// ListSubscriptionHealth handles GET /api/resources/v1/subscriptions/health.
func (h *Handler) ListSubscriptionHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.FromContext(ctx)

	params := r.URL.Query()
	q := health.Query{Namespace: params.Get(NamespaceParam)}
	if raw := params.Get(LabelSelectorParam); raw != "" {
		selector, err := labels.Parse(raw)
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "invalid labelSelector: "+err.Error())
			return
		}
		q.Selector = selector
	}

	seq, err := h.queries.Handle(ctx, q)
	if err != nil {
		logger.Error(err, "Failed to query subscription health", "namespace", q.Namespace)
		writeProblem(w, statusForError(err), err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	written, err := streamArray(w, seq)
	if err != nil {
		// Headers are gone; the client sees a truncated array.
		logger.V(1).Info("Stopped streaming subscription health", "written", written, "error", err.Error())
		return
	}
	logger.V(1).Info("Streamed subscription health", "namespace", q.Namespace, "count", written)
}

// streamArray writes seq as a JSON array, flushing after every element.
// It stops at the first write error, which is typically a client disconnect.
func streamArray(w http.ResponseWriter, seq iter.Seq[cloudstreamsv1.SubscriptionHealth]) (int, error) {
	rc := http.NewResponseController(w)
	flush := func() error {
		if err := rc.Flush(); err != nil && !errors.Is(err, http.ErrNotSupported) {
			return err
		}
		return nil
	}

	if _, err := w.Write([]byte{'['}); err != nil {
		return 0, err
	}

	n := 0
	for item := range seq {
		b, err := json.Marshal(item)
		if err != nil {
			return n, err
		}
		if n > 0 {
			if _, err := w.Write([]byte{','}); err != nil {
				return n, err
			}
		}
		if _, err := w.Write(b); err != nil {
			return n, err
		}
		if err := flush(); err != nil {
			return n, err
		}
		n++
	}

	if _, err := w.Write([]byte("]\n")); err != nil {
		return n, err
	}
	return n, flush()
}
