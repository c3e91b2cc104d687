// Package metrics exposes Prometheus instrumentation for the order desk.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/JonMunkholm/orderdesk/internal/core"
)

// Product sources.
const (
	SourceManual = "manual"
	SourceImport = "import"
)

// Import row outcomes.
const (
	OutcomeAdded     = "added"
	OutcomeDuplicate = "duplicate"
	OutcomeIgnored   = "ignored"
)

// Order rejection reasons.
const (
	ReasonQuantity       = "quantity"
	ReasonUnknownUser    = "unknown_user"
	ReasonBlankUser      = "blank_user"
	ReasonUnknownProduct = "unknown_product"
	ReasonUnknown        = "unknown"
)

// DefaultNamespace prefixes every metric name when none is configured.
const DefaultNamespace = "orderdesk"

// StatsSource reports current store sizes. Satisfied by *core.Session.
type StatsSource interface {
	Stats() core.Stats
}

// Recorder holds the registered collectors. A nil *Recorder is valid and records nothing.
type Recorder struct {
	registerer prometheus.Registerer
	namespace  string

	productsAdded   *prometheus.CounterVec
	productsRemoved prometheus.Counter
	importRows      *prometheus.CounterVec
	ordersRecorded  prometheus.Counter
	ordersRejected  *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

// New creates a Recorder and registers its collectors with registerer.
// It panics if a collector with the same name is already registered.
func New(registerer prometheus.Registerer, namespace string) *Recorder {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	namespace = strings.TrimSpace(namespace)
	if namespace == "" {
		namespace = DefaultNamespace
	}

	r := &Recorder{
		registerer: registerer,
		namespace:  namespace,
		productsAdded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "products_added_total",
			Help:      "Products added to the catalog, by source.",
		}, []string{"source"}),
		productsRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "products_removed_total",
			Help:      "Products removed from the catalog.",
		}),
		importRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "import_rows_total",
			Help:      "Imported spreadsheet rows, by outcome.",
		}, []string{"outcome"}),
		ordersRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_recorded_total",
			Help:      "Order entries recorded in the ledger.",
		}),
		ordersRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_rejected_total",
			Help:      "Order entries rejected, by reason.",
		}, []string{"reason"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by method, route pattern and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency, by method and route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	registerer.MustRegister(
		r.productsAdded,
		r.productsRemoved,
		r.importRows,
		r.ordersRecorded,
		r.ordersRejected,
		r.httpRequests,
		r.httpDuration,
	)
	return r
}

// WatchStores registers gauges that read store sizes from src on every scrape.
func (r *Recorder) WatchStores(src StatsSource) error {
	if r == nil || src == nil {
		return nil
	}

	gauges := []prometheus.Collector{
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: r.namespace,
			Name:      "catalog_products",
			Help:      "Products currently in the catalog.",
		}, func() float64 { return float64(src.Stats().Products) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: r.namespace,
			Name:      "ledger_orders",
			Help:      "Order entries currently in the ledger.",
		}, func() float64 { return float64(src.Stats().Orders) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: r.namespace,
			Name:      "registry_users",
			Help:      "Users in the registry.",
		}, func() float64 { return float64(src.Stats().Users) }),
	}
	for _, g := range gauges {
		if err := r.registerer.Register(g); err != nil {
			return err
		}
	}
	return nil
}

// ProductAdded counts one product added from source.
func (r *Recorder) ProductAdded(source string) {
	if r == nil {
		return
	}
	r.productsAdded.WithLabelValues(source).Inc()
}

// ProductRemoved counts one product removal.
func (r *Recorder) ProductRemoved() {
	if r == nil {
		return
	}
	r.productsRemoved.Inc()
}

// ImportMerged records the row outcomes of one import batch.
func (r *Recorder) ImportMerged(res core.ImportResult) {
	if r == nil {
		return
	}
	r.importRows.WithLabelValues(OutcomeAdded).Add(float64(res.Added))
	r.importRows.WithLabelValues(OutcomeDuplicate).Add(float64(res.Skipped))
	r.importRows.WithLabelValues(OutcomeIgnored).Add(float64(res.Ignored))
	if res.Added > 0 {
		r.productsAdded.WithLabelValues(SourceImport).Add(float64(res.Added))
	}
}

// OrderRecorded counts one accepted order entry.
func (r *Recorder) OrderRecorded() {
	if r == nil {
		return
	}
	r.ordersRecorded.Inc()
}

// OrderRejected counts one rejected order entry, labelled by ClassifyOrderRejection.
func (r *Recorder) OrderRejected(err error) {
	if r == nil {
		return
	}
	r.ordersRejected.WithLabelValues(ClassifyOrderRejection(err)).Inc()
}

// ClassifyOrderRejection maps a ledger error to a low-cardinality reason label.
func ClassifyOrderRejection(err error) string {
	var ve *core.ValidationError
	switch {
	case errors.As(err, &ve):
		switch ve.Field {
		case core.FieldQuantity:
			return ReasonQuantity
		case core.FieldUserIndex:
			return ReasonUnknownUser
		case core.FieldUserName:
			return ReasonBlankUser
		}
	case errors.Is(err, core.ErrUnknownProduct):
		return ReasonUnknownProduct
	}
	return ReasonUnknown
}

// Middleware counts requests by chi route pattern. Unmatched routes are
// labelled "unmatched" to keep cardinality bounded.
func (r *Recorder) Middleware(next http.Handler) http.Handler {
	if r == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)

		next.ServeHTTP(ww, req)

		route := "unmatched"
		if rctx := chi.RouteContext(req.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		r.httpRequests.WithLabelValues(req.Method, route, strconv.Itoa(status)).Inc()
		r.httpDuration.WithLabelValues(req.Method, route).Observe(time.Since(start).Seconds())
	})
}
