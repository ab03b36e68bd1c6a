package player

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Record is one player row: identity, the two filter axes, and statistics.
// Records are shared between views and must not be mutated after load.
type Record struct {
	Name     string
	Team     string
	Position string
	Age      Value
	Height   Value
	Stats    map[StatKey]Value
}

// Value resolves any numeric key. Unknown keys yield an unknown Value.
func (r Record) Value(key StatKey) Value {
	switch key {
	case KeyAge:
		return r.Age
	case KeyHeight:
		return r.Height
	}
	return r.Stats[key]
}

// WithStat returns a copy of r with key set to v. The stats map is copied.
func (r Record) WithStat(key StatKey, v Value) Record {
	stats := make(map[StatKey]Value, len(r.Stats)+1)
	for k, sv := range r.Stats {
		stats[k] = sv
	}
	stats[key] = v
	r.Stats = stats
	return r
}

// DetailGroup is one page of the player detail view.
type DetailGroup struct {
	Label string
	Keys  []StatKey
}

// DetailGroups are shown one at a time in the lookup detail view.
var DetailGroups = []DetailGroup{
	{Label: "Basic Info", Keys: []StatKey{KeyImpact, KeyTeam, KeyPosition, KeyAge, KeyHeight}},
	{Label: "Attacking", Keys: []StatKey{KeyAttackingRating, KeyKills, KeyAttackingErrors, KeyAttackingAttempts, KeyAttacksPerMatch}},
	{Label: "Blocking", Keys: []StatKey{KeyBlockingRating, KeyBlocks, KeyBlockingErrors, KeyRebounds, KeyBlocksPerMatch}},
	{Label: "Serving", Keys: []StatKey{KeyServingRating, KeyAces, KeyServiceErrors, KeyServiceAttempts, KeyServesPerMatch}},
	{Label: "Setting", Keys: []StatKey{KeySettingRating, KeyRunningSets, KeySettingErrors, KeyStillSets, KeySetsPerMatch}},
	{Label: "Defense", Keys: []StatKey{KeyDefenseRating, KeyGreatSaves, KeyDefensiveErrors, KeyDefensiveReceptions, KeyDigsPerMatch}},
	{Label: "Receiving", Keys: []StatKey{KeyReceivingRating, KeySuccessfulReceives, KeyReceivingErrors, KeyServiceReceptions, KeyReceivesPerMatch}},
}

var countryNames = map[string]string{
	"ARG": "Argentina",
	"BRA": "Brazil",
	"BUL": "Bulgaria",
	"CAN": "Canada",
	"CHN": "China",
	"CUB": "Cuba",
	"FRA": "France",
	"GER": "Germany",
	"IRI": "Iran",
	"ITA": "Italy",
	"JPN": "Japan",
	"NED": "Netherlands",
	"POL": "Poland",
	"SLO": "Slovenia",
	"SRB": "Serbia",
	"TUR": "Turkey",
	"UKR": "Ukraine",
	"USA": "USA",
}

// CountryName maps a team code to its display name, or returns the code.
func CountryName(code string) string {
	if name, ok := countryNames[code]; ok {
		return name
	}
	return code
}

var wordRe = regexp.MustCompile(`\w+`)

// FormatPosition keeps the first letter of each word and lower-cases the rest,
// e.g. "OUTSIDE HITTER" -> "Outside Hitter".
func FormatPosition(pos string) string {
	return wordRe.ReplaceAllStringFunc(pos, func(w string) string {
		_, size := utf8.DecodeRuneInString(w)
		return w[:size] + strings.ToLower(w[size:])
	})
}
