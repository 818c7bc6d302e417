package model

// RecommendationCard is one server-ranked pick. Score comes from the server
// and is never recomputed client-side; cards keep arrival order.
type RecommendationCard struct {
	Symbol  string   `json:"symbol"`
	Name    string   `json:"name"`
	Score   float64  `json:"score"`
	Reasons []string `json:"reasons"`
}

// Sparkline holds the normalized mini-chart points for one recommendation.
type Sparkline struct {
	Symbol string
	Points []float64
}
