package seqid

import "github.com/prometheus/client_golang/prometheus"

var (
	assignedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fooddelivery_seqid_assigned_total",
			Help: "Total number of sequential identifiers assigned.",
		},
		[]string{"kind"},
	)

	collisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fooddelivery_seqid_collisions_total",
			Help: "Total number of inserts rejected because the sequential identifier was already taken.",
		},
		[]string{"kind"},
	)

	malformedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fooddelivery_seqid_malformed_total",
			Help: "Total number of assignments aborted by a malformed previous identifier.",
		},
		[]string{"kind"},
	)
)

func init() {
	prometheus.MustRegister(assignedTotal)
	prometheus.MustRegister(collisionsTotal)
	prometheus.MustRegister(malformedTotal)
}

// ObserveCollision records an insert rejected by the identifier's unique constraint.
func ObserveCollision(kind Kind) {
	collisionsTotal.WithLabelValues(kind.Name).Inc()
}
