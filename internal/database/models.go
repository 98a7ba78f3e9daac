package database

// Stats holds aggregate counts for one user's reel store.
type Stats struct {
	TotalReels    int
	ScoredReels   int
	WithAIReport  int
	Categories    int
	FirstCreated  *string
	LatestCreated *string
}
