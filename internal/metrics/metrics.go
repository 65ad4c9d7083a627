/**
 * @description
 * Prometheus instrumentation on a private registry, served by a side
 * listener so the metrics port stays off the public API surface.
 *
 * @dependencies
 * - github.com/prometheus/client_golang
 */

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry = prometheus.NewRegistry()

	// MatchesIngested counts successful match ingestions per provider
	MatchesIngested = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scrimline_matches_ingested_total",
			Help: "Match payloads committed to the canonical store",
		},
		[]string{"source"},
	)

	// IngestFailures counts rejected or failed ingestions by reason
	IngestFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scrimline_ingest_failures_total",
			Help: "Match payloads that were rejected or rolled back",
		},
		[]string{"reason"},
	)

	// PredictionsUpserted counts prediction rows written
	PredictionsUpserted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scrimline_predictions_upserted_total",
			Help: "Prediction rows inserted or overwritten",
		},
	)

	// OddsQuotesUpserted counts odds rows written
	OddsQuotesUpserted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scrimline_odds_quotes_upserted_total",
			Help: "Odds quote rows inserted or overwritten",
		},
	)

	// ValueBetEvaluations counts value-bet evaluation requests served
	ValueBetEvaluations = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scrimline_value_bet_evaluations_total",
			Help: "Value-bet evaluations computed",
		},
	)
)

func init() {
	registry.MustRegister(
		MatchesIngested,
		IngestFailures,
		PredictionsUpserted,
		OddsQuotesUpserted,
		ValueBetEvaluations,
	)
}

// Registry exposes the private registry for the side listener
func Registry() *prometheus.Registry {
	return registry
}

// Handler returns the HTTP handler serving the registry
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
