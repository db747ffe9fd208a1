// Package metrics exposes the Prometheus collectors served at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mikiasgoitom/airhost/internal/domain/entity"
)

var (
	cacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "airhost",
		Subsystem: "listing_cache",
		Name:      "requests_total",
		Help:      "Listing cache lookups by kind (list, detail) and result (hit, miss).",
	}, []string{"kind", "result"})

	cacheLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "airhost",
		Subsystem: "listing_cache",
		Name:      "lookup_seconds",
		Help:      "Listing cache lookup latency by result.",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
	}, []string{"result"})

	reservationsPriced = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "airhost",
		Name:      "reservations_priced_total",
		Help:      "Stays priced by the pricing engine, by purpose (quote, create, update).",
	}, []string{"purpose"})

	reservationValue = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "airhost",
		Name:      "reservation_total_amount",
		Help:      "Total amount of created reservations.",
		Buckets:   prometheus.ExponentialBuckets(100, 2, 14),
	})

	cascadeDeletes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "airhost",
		Name:      "cascade_deleted_total",
		Help:      "Documents removed by cascade operations, by operation and entity.",
	}, []string{"operation", "entity"})

	cascadePulls = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "airhost",
		Name:      "cascade_references_pulled_total",
		Help:      "Listings whose review or reservation ids were pulled by cascade operations.",
	}, []string{"operation"})
)

func IncListHit()    { cacheRequests.WithLabelValues("list", "hit").Inc() }
func IncListMiss()   { cacheRequests.WithLabelValues("list", "miss").Inc() }
func IncDetailHit()  { cacheRequests.WithLabelValues("detail", "hit").Inc() }
func IncDetailMiss() { cacheRequests.WithLabelValues("detail", "miss").Inc() }

func AddHitDuration(seconds float64)  { cacheLatency.WithLabelValues("hit").Observe(seconds) }
func AddMissDuration(seconds float64) { cacheLatency.WithLabelValues("miss").Observe(seconds) }

// IncPriced counts one run of the pricing engine.
func IncPriced(purpose string) { reservationsPriced.WithLabelValues(purpose).Inc() }

func ObserveReservationTotal(total int64) { reservationValue.Observe(float64(total)) }

// ObserveCascade records the outcome of a cascade operation.
func ObserveCascade(operation string, result *entity.CascadeResult) {
	if result == nil {
		return
	}
	add := func(name string, n int64) {
		if n > 0 {
			cascadeDeletes.WithLabelValues(operation, name).Add(float64(n))
		}
	}
	add("user", result.UsersDeleted)
	add("listing", result.ListingsDeleted)
	add("review", result.ReviewsDeleted)
	add("reservation", result.ReservationsDeleted)
	if result.ReferencesPulled > 0 {
		cascadePulls.WithLabelValues(operation).Add(float64(result.ReferencesPulled))
	}
}
