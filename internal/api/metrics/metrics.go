// Package metrics defines the custom Prometheus metrics for the todo service.
// It is the single source of truth for metric names, labels, and help strings.
//
// A Recorder is registered against an explicit prometheus.Registerer so that
// each server (and each test) owns its registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "todo"

// Login results.
const (
	LoginSuccess = "success"
	LoginFailure = "failure"
)

// Recorder holds the domain counters.
type Recorder struct {
	// UsersRegisteredTotal counts accounts created.
	UsersRegisteredTotal prometheus.Counter

	// LoginsTotal counts login attempts.
	// Label:
	//   - result: "success" or "failure"
	LoginsTotal *prometheus.CounterVec

	ItemsCreatedTotal   prometheus.Counter
	ItemsCompletedTotal prometheus.Counter
	ItemsUpdatedTotal   prometheus.Counter
	ItemsDeletedTotal   prometheus.Counter

	// OwnershipDeniedTotal counts mutations refused because the caller does
	// not own the item.
	// Label:
	//   - action: "complete", "delete", "edit"
	OwnershipDeniedTotal *prometheus.CounterVec
}

// NewRecorder registers all counters with reg. A nil reg gets a private
// registry, which keeps the metrics usable but unexported.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	f := promauto.With(reg)

	return &Recorder{
		UsersRegisteredTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "users_registered_total",
			Help:      "Total number of user accounts registered.",
		}),
		LoginsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Total number of login attempts, labelled by result.",
		}, []string{"result"}),
		ItemsCreatedTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "items_created_total",
			Help:      "Total number of todo items created.",
		}),
		ItemsCompletedTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "items_completed_total",
			Help:      "Total number of complete requests applied to owned items.",
		}),
		ItemsUpdatedTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "items_updated_total",
			Help:      "Total number of todo items edited.",
		}),
		ItemsDeletedTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "items_deleted_total",
			Help:      "Total number of todo items deleted.",
		}),
		OwnershipDeniedTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ownership_denied_total",
			Help:      "Mutations refused because the item belongs to another user.",
		}, []string{"action"}),
	}
}
