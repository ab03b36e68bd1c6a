package player

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// StatKey names a dataset column. Keys equal the CSV header text.
type StatKey string

// Identity columns.
const (
	KeyName     StatKey = "Player Name"
	KeyTeam     StatKey = "Team"
	KeyPosition StatKey = "Position"
)

// Filter axes.
const (
	KeyAge    StatKey = "Age"
	KeyHeight StatKey = "Height"
)

// Rating columns. These are optional in the dataset.
const (
	KeyImpact          StatKey = "Impact"
	KeyAttackingRating StatKey = "Attacking Rating"
	KeyBlockingRating  StatKey = "Blocking Rating"
	KeyServingRating   StatKey = "Serving Rating"
	KeySettingRating   StatKey = "Setting Rating"
	KeyDefenseRating   StatKey = "Defense Rating"
	KeyReceivingRating StatKey = "Receiving Rating"
)

// Performance statistics.
const (
	KeyRunningSets         StatKey = "Running Sets"
	KeySettingErrors       StatKey = "Setting Errors"
	KeyStillSets           StatKey = "Still Sets"
	KeySetsPerMatch        StatKey = "Sets Per Match"
	KeySuccessfulReceives  StatKey = "Successful Receives"
	KeyReceivingErrors     StatKey = "Receiving Errors"
	KeyServiceReceptions   StatKey = "Service Receptions"
	KeyReceivesPerMatch    StatKey = "Receives Per Match"
	KeyAces                StatKey = "Aces"
	KeyServiceErrors       StatKey = "Service Errors"
	KeyServiceAttempts     StatKey = "Service Attempts"
	KeyServesPerMatch      StatKey = "Serves Per Match"
	KeyBlocks              StatKey = "Blocks"
	KeyBlockingErrors      StatKey = "Blocking Errors"
	KeyRebounds            StatKey = "Rebounds"
	KeyBlocksPerMatch      StatKey = "Blocks Per Match"
	KeyGreatSaves          StatKey = "Great Saves"
	KeyDefensiveErrors     StatKey = "Defensive Errors"
	KeyDefensiveReceptions StatKey = "Defensive Receptions"
	KeyDigsPerMatch        StatKey = "Digs Per Match"
	KeyKills               StatKey = "Kills"
	KeyAttackingErrors     StatKey = "Attacking Errors"
	KeyAttackingAttempts   StatKey = "Attacking Attempts"
	KeyAttacksPerMatch     StatKey = "Attacks Per Match"
)

// RatingKeys lists the rating columns in dataset order.
var RatingKeys = []StatKey{
	KeyImpact,
	KeyAttackingRating,
	KeyBlockingRating,
	KeyServingRating,
	KeySettingRating,
	KeyDefenseRating,
	KeyReceivingRating,
}

// PerformanceKeys lists the performance statistics in dataset order.
var PerformanceKeys = []StatKey{
	KeyRunningSets,
	KeySettingErrors,
	KeyStillSets,
	KeySetsPerMatch,
	KeySuccessfulReceives,
	KeyReceivingErrors,
	KeyServiceReceptions,
	KeyReceivesPerMatch,
	KeyAces,
	KeyServiceErrors,
	KeyServiceAttempts,
	KeyServesPerMatch,
	KeyBlocks,
	KeyBlockingErrors,
	KeyRebounds,
	KeyBlocksPerMatch,
	KeyGreatSaves,
	KeyDefensiveErrors,
	KeyDefensiveReceptions,
	KeyDigsPerMatch,
	KeyKills,
	KeyAttackingErrors,
	KeyAttackingAttempts,
	KeyAttacksPerMatch,
}

// Axes lists the statistics selectable for a plot axis, in menu order.
var Axes = append([]StatKey{KeyAge, KeyHeight}, PerformanceKeys...)

// IsAxis reports whether key can be plotted.
func IsAxis(key StatKey) bool {
	return slices.Contains(Axes, key)
}

// NumericKeys returns every numeric column the normalizer coerces, excluding Height
// which has its own extraction rule.
func NumericKeys() []StatKey {
	keys := make([]StatKey, 0, 1+len(RatingKeys)+len(PerformanceKeys))
	keys = append(keys, KeyAge)
	keys = append(keys, RatingKeys...)
	keys = append(keys, PerformanceKeys...)
	return keys
}

// AxisGroup bundles plot axes under a menu heading.
type AxisGroup struct {
	Name  string    `json:"name"`
	Stats []StatKey `json:"stats"`
}

// AxisGroups drive the axis typeahead.
var AxisGroups = []AxisGroup{
	{Name: "Attacking", Stats: []StatKey{KeyKills, KeyAttackingErrors, KeyAttackingAttempts, KeyAttacksPerMatch}},
	{Name: "Blocking", Stats: []StatKey{KeyBlocks, KeyBlockingErrors, KeyRebounds, KeyBlocksPerMatch}},
	{Name: "Serving", Stats: []StatKey{KeyAces, KeyServiceErrors, KeyServiceAttempts, KeyServesPerMatch}},
	{Name: "Setting", Stats: []StatKey{KeyRunningSets, KeySettingErrors, KeyStillSets, KeySetsPerMatch}},
	{Name: "Defense", Stats: []StatKey{KeyGreatSaves, KeyDefensiveErrors, KeyDigsPerMatch, KeyDefensiveReceptions}},
	{Name: "Receiving", Stats: []StatKey{KeySuccessfulReceives, KeyReceivingErrors, KeyServiceReceptions, KeyReceivesPerMatch}},
	{Name: "Other", Stats: []StatKey{KeyAge, KeyHeight}},
}

// VisibleAxes returns the stats of the named groups (every group when none is
// given) whose name contains query, case-insensitively. Unknown group names are
// ignored, so a selection of only unknown groups yields nothing.
func VisibleAxes(groups []string, query string) []StatKey {
	var stats []StatKey
	for _, g := range AxisGroups {
		if len(groups) == 0 || slices.Contains(groups, g.Name) {
			stats = append(stats, g.Stats...)
		}
	}
	lower := cases.Lower(language.Und)
	q := lower.String(strings.TrimSpace(query))
	if q == "" {
		return stats
	}
	out := stats[:0:0]
	for _, s := range stats {
		if strings.Contains(lower.String(string(s)), q) {
			out = append(out, s)
		}
	}
	return out
}
