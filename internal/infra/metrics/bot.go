package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		recipeRequests,
		rateLimitBlocks,
		feedbackVotes,
		cacheHits,
	)
}

var (
	recipeRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_requests_total",
			Help: "Recipe generation requests by meal type and outcome.",
		},
		[]string{"meal", "status"},
	)

	rateLimitBlocks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limit_blocks_total",
			Help: "Updates rejected by the per-user rate limit.",
		},
		[]string{"scope"},
	)

	feedbackVotes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedback_votes_total",
			Help: "Recipe feedback votes by direction.",
		},
		[]string{"vote"},
	)

	cacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_cache_total",
			Help: "Recipe cache lookups by result.",
		},
		[]string{"result"},
	)
)

func IncRecipeRequest(meal, status string) {
	recipeRequests.WithLabelValues(norm(meal), norm(status)).Inc()
}

func IncRateLimitBlock(scope string) {
	rateLimitBlocks.WithLabelValues(norm(scope)).Inc()
}

func IncFeedback(vote string) {
	feedbackVotes.WithLabelValues(norm(vote)).Inc()
}

func IncCache(result string) {
	cacheHits.WithLabelValues(norm(result)).Inc()
}
