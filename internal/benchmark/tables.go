package benchmark

import "github.com/TobiSchelling/ReelIQ/internal/reel"

// Tier is a follower-count band.
type Tier string

const (
	Nano  Tier = "nano"
	Micro Tier = "micro"
	Mid   Tier = "mid"
	Macro Tier = "macro"
)

var tierLabels = map[Tier]string{
	Nano:  "Nano  (< 10 K)",
	Micro: "Micro (10 K – 50 K)",
	Mid:   "Mid   (50 K – 200 K)",
	Macro: "Macro (200 K+)",
}

// Label returns the display label of the tier.
func (t Tier) Label() string {
	return tierLabels[t]
}

// Benchmark is the industry average for one category and tier.
type Benchmark struct {
	AvgViews      float64 `json:"avg_views"`
	AvgRetention  float64 `json:"avg_retention"`
	AvgEngagement float64 `json:"avg_engagement"`
	AvgSaveRate   float64 `json:"avg_save_rate"`
}

type tableKey struct {
	category reel.Category
	tier     Tier
}

// 2025 estimates.
var industryBenchmarks = map[tableKey]Benchmark{
	{reel.Educational, Nano}:  {1_400, 0.54, 0.062, 0.028},
	{reel.Educational, Micro}: {5_200, 0.52, 0.045, 0.022},
	{reel.Educational, Mid}:   {18_000, 0.49, 0.030, 0.016},
	{reel.Educational, Macro}: {65_000, 0.46, 0.018, 0.010},

	{reel.Entertainment, Nano}:  {1_800, 0.50, 0.070, 0.020},
	{reel.Entertainment, Micro}: {7_500, 0.47, 0.050, 0.015},
	{reel.Entertainment, Mid}:   {28_000, 0.44, 0.032, 0.011},
	{reel.Entertainment, Macro}: {95_000, 0.40, 0.020, 0.007},

	{reel.Inspirational, Nano}:  {1_200, 0.48, 0.058, 0.030},
	{reel.Inspirational, Micro}: {4_500, 0.46, 0.042, 0.024},
	{reel.Inspirational, Mid}:   {16_000, 0.43, 0.027, 0.017},
	{reel.Inspirational, Macro}: {58_000, 0.40, 0.016, 0.011},

	{reel.Transactional, Nano}:  {900, 0.56, 0.050, 0.035},
	{reel.Transactional, Micro}: {3_500, 0.54, 0.038, 0.028},
	{reel.Transactional, Mid}:   {12_000, 0.51, 0.025, 0.020},
	{reel.Transactional, Macro}: {42_000, 0.48, 0.015, 0.013},

	{reel.Aesthetic, Nano}:  {1_600, 0.43, 0.065, 0.022},
	{reel.Aesthetic, Micro}: {6_200, 0.41, 0.048, 0.017},
	{reel.Aesthetic, Mid}:   {22_000, 0.38, 0.031, 0.012},
	{reel.Aesthetic, Macro}: {80_000, 0.35, 0.019, 0.008},
}

// Averages across categories, used when a category has no entry.
var tierFallback = map[Tier]Benchmark{
	Nano:  {1_400, 0.50, 0.061, 0.027},
	Micro: {5_400, 0.48, 0.045, 0.021},
	Mid:   {19_200, 0.45, 0.029, 0.015},
	Macro: {68_000, 0.42, 0.018, 0.010},
}

var categorySynonyms = map[string]reel.Category{
	"educational":   reel.Educational,
	"education":     reel.Educational,
	"tutorial":      reel.Educational,
	"how-to":        reel.Educational,
	"tips":          reel.Educational,
	"entertainment": reel.Entertainment,
	"funny":         reel.Entertainment,
	"comedy":        reel.Entertainment,
	"trending":      reel.Entertainment,
	"inspirational": reel.Inspirational,
	"motivation":    reel.Inspirational,
	"motivational":  reel.Inspirational,
	"lifestyle":     reel.Inspirational,
	"transactional": reel.Transactional,
	"product":       reel.Transactional,
	"sales":         reel.Transactional,
	"promo":         reel.Transactional,
	"promotional":   reel.Transactional,
	"aesthetic":     reel.Aesthetic,
	"fashion":       reel.Aesthetic,
	"beauty":        reel.Aesthetic,
	"style":         reel.Aesthetic,
}
