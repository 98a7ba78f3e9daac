package prescore

import "github.com/TobiSchelling/ReelIQ/internal/reel"

type durationBand struct {
	lo, hi int
	points int
}

// Bands are half-open [lo, hi).
var durationScores = map[reel.Category][]durationBand{
	reel.Educational: {
		{0, 15, 8},
		{15, 30, 16},
		{30, 60, 25},
		{60, 90, 20},
		{90, 999, 12},
	},
	reel.Inspirational: {
		{0, 15, 12},
		{15, 30, 25},
		{30, 60, 22},
		{60, 90, 14},
		{90, 999, 7},
	},
	reel.Transactional: {
		{0, 15, 20},
		{15, 45, 25},
		{45, 60, 18},
		{60, 90, 10},
		{90, 999, 5},
	},
	reel.Aesthetic: {
		{0, 15, 25},
		{15, 30, 22},
		{30, 60, 14},
		{60, 90, 8},
		{90, 999, 4},
	},
	reel.Entertainment: {
		{0, 15, 22},
		{15, 30, 25},
		{30, 60, 18},
		{60, 90, 10},
		{90, 999, 4},
	},
}

var hookPower = map[reel.HookType]int{
	reel.HookQuestion:        24,
	reel.HookTutorial:        23,
	reel.HookBoldStatement:   22,
	reel.HookStory:           20,
	reel.HookChallenge:       19,
	reel.HookBehindTheScenes: 16,
	reel.HookNone:            7,
}

// Rows follow reel.HookTypes order.
var alignmentMatrix = map[reel.Category][7]int{
	reel.Educational:   {24, 25, 18, 16, 12, 10, 6},
	reel.Inspirational: {20, 14, 24, 25, 16, 18, 6},
	reel.Transactional: {22, 20, 25, 16, 14, 18, 6},
	reel.Aesthetic:     {16, 14, 20, 22, 24, 25, 10},
	reel.Entertainment: {20, 14, 20, 22, 25, 18, 6},
}

const (
	neutralScore      = 12
	noBandScore       = 5
	alignmentLow      = 12
	captionLow        = 8
	maxComponentScore = 25
	maxTotal          = 100
)
