package endpoints

// Endpoints groups every endpoint exposed by the service.
type Endpoints struct {
	RecommendationEndpoint RecommendationEndpoint
}
