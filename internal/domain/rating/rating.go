// Package rating derives category ratings from raw statistics when the dataset
// does not carry them.
package rating

import (
	"math"

	"github.com/okian/vnl/internal/domain/player"
)

// Category describes how one rating is derived.
type Category struct {
	Rating player.StatKey
	// Numerator terms are summed; a term with Neg subtracts.
	Numerator   []Term
	Denominator []Term
	Volume      player.StatKey
	EffExp      float64
	VolExp      float64
}

// Term is one signed statistic of an efficiency ratio.
type Term struct {
	Key player.StatKey
	Neg bool
}

func plus(k player.StatKey) Term  { return Term{Key: k} }
func minus(k player.StatKey) Term { return Term{Key: k, Neg: true} }

// Categories lists every derivable rating. Impact is not derivable.
var Categories = []Category{
	{
		Rating:      player.KeyAttackingRating,
		Numerator:   []Term{plus(player.KeyKills), minus(player.KeyAttackingErrors)},
		Denominator: []Term{plus(player.KeyAttackingAttempts)},
		Volume:      player.KeyAttacksPerMatch,
		EffExp:      0.5,
		VolExp:      1.2,
	},
	{
		Rating:      player.KeyBlockingRating,
		Numerator:   []Term{plus(player.KeyBlocks)},
		Denominator: []Term{plus(player.KeyBlocks), plus(player.KeyBlockingErrors), plus(player.KeyRebounds)},
		Volume:      player.KeyBlocksPerMatch,
		EffExp:      0.4,
		VolExp:      1.3,
	},
	{
		Rating:      player.KeyServingRating,
		Numerator:   []Term{plus(player.KeyAces)},
		Denominator: []Term{plus(player.KeyServiceAttempts)},
		Volume:      player.KeyServesPerMatch,
		EffExp:      0.6,
		VolExp:      1.1,
	},
	{
		Rating:      player.KeySettingRating,
		Numerator:   []Term{plus(player.KeyRunningSets)},
		Denominator: []Term{plus(player.KeyRunningSets), plus(player.KeyStillSets), plus(player.KeySettingErrors)},
		Volume:      player.KeySetsPerMatch,
		EffExp:      0.5,
		VolExp:      1.2,
	},
	{
		Rating:      player.KeyDefenseRating,
		Numerator:   []Term{plus(player.KeyGreatSaves), minus(player.KeyDefensiveErrors)},
		Denominator: []Term{plus(player.KeyDefensiveReceptions)},
		Volume:      player.KeyDigsPerMatch,
		EffExp:      0.4,
		VolExp:      1.3,
	},
	{
		Rating:      player.KeyReceivingRating,
		Numerator:   []Term{plus(player.KeySuccessfulReceives), minus(player.KeyReceivingErrors)},
		Denominator: []Term{plus(player.KeyServiceReceptions)},
		Volume:      player.KeyReceivesPerMatch,
		EffExp:      0.5,
		VolExp:      1.2,
	},
}

// Backfill returns copies of records with every category rating for which
// present reports false computed from the raw statistics. A nil present treats
// every rating as missing. Inputs are not modified.
func Backfill(records []player.Record, present func(player.StatKey) bool) []player.Record {
	out := make([]player.Record, len(records))
	copy(out, records)
	for _, c := range Categories {
		if present != nil && present(c.Rating) {
			continue
		}
		for i, v := range c.Compute(records) {
			out[i] = out[i].WithStat(c.Rating, v)
		}
	}
	return out
}

// Compute rates every record in c, returning one value per record. Ratings are
// scaled so the best record scores 100 and rounded to two decimals.
func (c Category) Compute(records []player.Record) []player.Value {
	maxVol := 0.0
	for _, r := range records {
		if v, ok := r.Value(c.Volume).Get(); ok {
			maxVol = max(maxVol, v)
		}
	}

	raws := make([]player.Value, len(records))
	maxRaw := 0.0
	for i, r := range records {
		raw := c.raw(r, maxVol)
		raws[i] = raw
		if v, ok := raw.Get(); ok {
			maxRaw = max(maxRaw, v)
		}
	}

	out := make([]player.Value, len(records))
	for i, raw := range raws {
		v, ok := raw.Get()
		switch {
		case !ok:
			out[i] = player.Unknown()
		case maxRaw <= 0:
			out[i] = player.Known(0)
		default:
			out[i] = player.Known(round2(100 * v / maxRaw))
		}
	}
	return out
}

func (c Category) raw(r player.Record, maxVol float64) player.Value {
	num, ok := sum(r, c.Numerator)
	if !ok {
		return player.Unknown()
	}
	den, ok := sum(r, c.Denominator)
	if !ok {
		return player.Unknown()
	}
	vol, ok := r.Value(c.Volume).Get()
	if !ok {
		return player.Unknown()
	}

	eff := 0.0
	if den > 0 {
		eff = num / den
	}
	volRatio := 0.0
	if maxVol > 0 {
		volRatio = vol / maxVol
	}
	return player.Known(math.Pow(max(eff, 0), c.EffExp) * math.Pow(max(volRatio, 0), c.VolExp))
}

func sum(r player.Record, terms []Term) (float64, bool) {
	total := 0.0
	for _, t := range terms {
		v, ok := r.Value(t.Key).Get()
		if !ok {
			return 0, false
		}
		if t.Neg {
			v = -v
		}
		total += v
	}
	return total, true
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
