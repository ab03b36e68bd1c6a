package rating_test

import (
	"math"
	"testing"

	"github.com/okian/vnl/internal/domain/player"
	"github.com/okian/vnl/internal/domain/rating"
	. "github.com/smartystreets/goconvey/convey"
)

func serving(name string, aces, attempts, perMatch player.Value) player.Record {
	return player.Record{
		Name: name,
		Stats: map[player.StatKey]player.Value{
			player.KeyAces:            aces,
			player.KeyServiceAttempts: attempts,
			player.KeyServesPerMatch:  perMatch,
		},
	}
}

func TestBackfill(t *testing.T) {
	Convey("Given players with serving statistics", t, func() {
		records := []player.Record{
			serving("Best", player.Known(10), player.Known(40), player.Known(20)),
			serving("Half", player.Known(10), player.Known(40), player.Known(10)),
			serving("Gap", player.Unknown(), player.Known(40), player.Known(20)),
			serving("Idle", player.Known(0), player.Known(0), player.Known(0)),
		}

		Convey("When backfilling every rating", func() {
			out := rating.Backfill(records, nil)

			Convey("Then the best server should score 100", func() {
				So(out[0].Value(player.KeyServingRating).Or(-1), ShouldEqual, 100)
			})

			Convey("And lower volume should scale by the volume exponent", func() {
				want := math.Round(100*math.Pow(0.5, 1.1)*100) / 100
				So(out[1].Value(player.KeyServingRating).Or(-1), ShouldEqual, want)
			})

			Convey("And unknown inputs should give an unknown rating", func() {
				So(out[2].Value(player.KeyServingRating).IsKnown(), ShouldBeFalse)
			})

			Convey("And a zero denominator should count as zero efficiency", func() {
				So(out[3].Value(player.KeyServingRating).Or(-1), ShouldEqual, 0)
			})

			Convey("And categories without inputs should stay unknown", func() {
				So(out[0].Value(player.KeyAttackingRating).IsKnown(), ShouldBeFalse)
			})

			Convey("And impact should never be computed", func() {
				So(out[0].Value(player.KeyImpact).IsKnown(), ShouldBeFalse)
			})

			Convey("And the input records should be untouched", func() {
				So(records[0].Value(player.KeyServingRating).IsKnown(), ShouldBeFalse)
			})
		})

		Convey("When the rating column is already present", func() {
			records[0] = records[0].WithStat(player.KeyServingRating, player.Known(42))
			out := rating.Backfill(records, func(k player.StatKey) bool { return k == player.KeyServingRating })

			Convey("Then the existing values should be kept", func() {
				So(out[0].Value(player.KeyServingRating).Or(-1), ShouldEqual, 42)
				So(out[1].Value(player.KeyServingRating).IsKnown(), ShouldBeFalse)
			})
		})
	})
}

func TestCompute(t *testing.T) {
	Convey("Given attacking statistics with negative efficiency", t, func() {
		r := player.Record{Stats: map[player.StatKey]player.Value{
			player.KeyKills:             player.Known(1),
			player.KeyAttackingErrors:   player.Known(5),
			player.KeyAttackingAttempts: player.Known(10),
			player.KeyAttacksPerMatch:   player.Known(3),
		}}

		Convey("When computing the attacking rating", func() {
			out := rating.Categories[0].Compute([]player.Record{r})

			Convey("Then efficiency should floor at zero", func() {
				So(out[0].Or(-1), ShouldEqual, 0)
			})
		})
	})
}
