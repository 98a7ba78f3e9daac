package reel

import "strings"

// Category is one of the five content categories the benchmark tables know about.
// CategoryOther stands for any category outside that set and carries the
// neutral fallback values in every lookup table.
type Category int

const (
	CategoryOther Category = iota
	Educational
	Inspirational
	Transactional
	Aesthetic
	Entertainment
)

// Categories lists the known categories in display order.
var Categories = []Category{Educational, Inspirational, Transactional, Aesthetic, Entertainment}

var categoryNames = map[Category]string{
	CategoryOther: "Other",
	Educational:   "Educational",
	Inspirational: "Inspirational",
	Transactional: "Transactional",
	Aesthetic:     "Aesthetic",
	Entertainment: "Entertainment",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return categoryNames[CategoryOther]
}

// Known reports whether c is one of the five canonical categories.
func (c Category) Known() bool {
	return c >= Educational && c <= Entertainment
}

// ParseCategory maps a canonical category name to its enumeration value.
func ParseCategory(raw string) Category {
	s := strings.TrimSpace(raw)
	for _, c := range Categories {
		if categoryNames[c] == s {
			return c
		}
	}
	return CategoryOther
}

// HookType is the planned or used opening style of a reel.
type HookType int

const (
	HookOther HookType = iota
	HookQuestion
	HookTutorial
	HookBoldStatement
	HookStory
	HookChallenge
	HookBehindTheScenes
	HookNone
)

// HookTypes lists the known hook types in display order.
var HookTypes = []HookType{
	HookQuestion, HookTutorial, HookBoldStatement, HookStory,
	HookChallenge, HookBehindTheScenes, HookNone,
}

var hookNames = map[HookType]string{
	HookOther:           "Other",
	HookQuestion:        "Question",
	HookTutorial:        "Tutorial / How-To",
	HookBoldStatement:   "Bold Statement",
	HookStory:           "Story / Narrative",
	HookChallenge:       "Challenge / Trend",
	HookBehindTheScenes: "Behind the Scenes",
	HookNone:            "No Hook Planned",
}

func (h HookType) String() string {
	if name, ok := hookNames[h]; ok {
		return name
	}
	return hookNames[HookOther]
}

// ParseHookType maps a canonical hook type name to its enumeration value.
func ParseHookType(raw string) HookType {
	s := strings.TrimSpace(raw)
	for _, h := range HookTypes {
		if hookNames[h] == s {
			return h
		}
	}
	return HookOther
}
