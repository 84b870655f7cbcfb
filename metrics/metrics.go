package metrics

import "github.com/prometheus/client_golang/prometheus"

// Key constants are exported primarily for documentation reasons. Typically,
// they will not be used programmatically outside of defining the collectors.

// Keys for bsuitor metrics.
const (
	RoundsTotalKey            = "bsuitor_rounds_total"
	ProposalsTotalKey         = "bsuitor_proposals_total"
	EvictionsTotalKey         = "bsuitor_evictions_total"
	RequeuedTotalKey          = "bsuitor_requeued_total"
	ProfilesTotalKey          = "bsuitor_profiles_total"
	MatchedWeightKey          = "bsuitor_matched_weight"
	ProfileDurationSecondsKey = "bsuitor_profile_duration_seconds"
	GraphVerticesKey          = "bsuitor_graph_vertices"
	GraphEdgesKey             = "bsuitor_graph_edges"

	// Proposal outcomes.
	Accepted = "accepted"
	Filtered = "filtered"
	Rejected = "rejected"
)

// Collectors for matching metrics.
var (
	RoundsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: RoundsTotalKey,
		Help: "Cumulative number of matching rounds.",
	})
	ProposalsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: ProposalsTotalKey,
		Help: "Cumulative number of examined proposals, by outcome.",
	}, []string{"outcome"})
	EvictionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: EvictionsTotalKey,
		Help: "Cumulative number of suitors displaced by a better proposal.",
	})
	RequeuedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: RequeuedTotalKey,
		Help: "Cumulative number of displaced vertices queued for a further round.",
	})
	ProfilesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: ProfilesTotalKey,
		Help: "Cumulative number of evaluated capacity profiles.",
	})
	MatchedWeight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: MatchedWeightKey,
		Help: "Total matched weight of the last evaluated profile.",
	})
	ProfileDurationSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    ProfileDurationSecondsKey,
		Help:    "Duration required to converge a capacity profile.",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
	})
	GraphVertices = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: GraphVerticesKey,
		Help: "Number of vertices of the loaded graph.",
	})
	GraphEdges = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: GraphEdgesKey,
		Help: "Number of distinct edges of the loaded graph.",
	})
)

// MatchingCollectors returns the metrics used by the matching engine.
func MatchingCollectors() []prometheus.Collector {
	return []prometheus.Collector{
		RoundsTotal,
		ProposalsTotal,
		EvictionsTotal,
		RequeuedTotal,
		ProfilesTotal,
		MatchedWeight,
		ProfileDurationSeconds,
		GraphVertices,
		GraphEdges,
	}
}
