package retrieval

// SimilarityFromDistance converts a raw nearest-neighbor distance into a
// bounded similarity score. The transform 1/(1+d) maps distance 0 to 1.0
// and decays monotonically toward 0 as the distance grows, so no knowledge
// of the index's distance scale is needed. Input distances are assumed
// non-negative; the result is always in (0, 1].
func SimilarityFromDistance(distance float64) float64 {
	return 1.0 / (1.0 + distance)
}
