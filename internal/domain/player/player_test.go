package player_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/okian/vnl/internal/domain/player"
	. "github.com/smartystreets/goconvey/convey"
)

func TestValue(t *testing.T) {
	Convey("Given optional numeric values", t, func() {
		Convey("When a finite number is wrapped", func() {
			v := player.Known(12.5)
			f, ok := v.Get()

			Convey("Then it should be known", func() {
				So(ok, ShouldBeTrue)
				So(f, ShouldEqual, 12.5)
				So(v.String(), ShouldEqual, "12.5")
			})
		})

		Convey("When a non-finite number is wrapped", func() {
			Convey("Then it should be unknown", func() {
				So(player.Known(math.NaN()).IsKnown(), ShouldBeFalse)
				So(player.Known(math.Inf(1)).IsKnown(), ShouldBeFalse)
				So(player.Known(math.Inf(-1)).IsKnown(), ShouldBeFalse)
			})
		})

		Convey("When the zero value is used", func() {
			var v player.Value

			Convey("Then it should be unknown and render a dash", func() {
				So(v.IsKnown(), ShouldBeFalse)
				So(v.Or(-1), ShouldEqual, -1)
				So(v.String(), ShouldEqual, "—")
			})
		})

		Convey("When encoding to JSON", func() {
			b, err := json.Marshal(map[string]player.Value{"a": player.Known(3), "b": player.Unknown()})

			Convey("Then unknown values should be null", func() {
				So(err, ShouldBeNil)
				So(string(b), ShouldEqual, `{"a":3,"b":null}`)
			})
		})

	})
}

func TestRecord(t *testing.T) {
	Convey("Given a record", t, func() {
		r := player.Record{
			Name:   "Alice",
			Age:    player.Known(25),
			Height: player.Unknown(),
			Stats:  map[player.StatKey]player.Value{player.KeyKills: player.Known(10)},
		}

		Convey("Then Value should resolve filter axes and stats", func() {
			So(r.Value(player.KeyAge).Or(0), ShouldEqual, 25)
			So(r.Value(player.KeyHeight).IsKnown(), ShouldBeFalse)
			So(r.Value(player.KeyKills).Or(0), ShouldEqual, 10)
			So(r.Value(player.KeyBlocks).IsKnown(), ShouldBeFalse)
		})

		Convey("When a stat is replaced", func() {
			next := r.WithStat(player.KeyKills, player.Known(11))

			Convey("Then the original should be untouched", func() {
				So(next.Value(player.KeyKills).Or(0), ShouldEqual, 11)
				So(r.Value(player.KeyKills).Or(0), ShouldEqual, 10)
			})
		})
	})
}

func TestCatalog(t *testing.T) {
	Convey("Given the statistic catalog", t, func() {
		Convey("Then axes should start with age and height followed by 24 stats", func() {
			So(len(player.PerformanceKeys), ShouldEqual, 24)
			So(len(player.Axes), ShouldEqual, 26)
			So(player.Axes[0], ShouldEqual, player.KeyAge)
			So(player.Axes[1], ShouldEqual, player.KeyHeight)
			So(player.IsAxis(player.KeyKills), ShouldBeTrue)
			So(player.IsAxis(player.KeyImpact), ShouldBeFalse)
			So(player.IsAxis("Nope"), ShouldBeFalse)
		})

		Convey("When no groups and no query are given", func() {
			all := player.VisibleAxes(nil, "")

			Convey("Then every grouped stat should be visible", func() {
				So(len(all), ShouldEqual, 26)
			})
		})

		Convey("When a group is selected", func() {
			got := player.VisibleAxes([]string{"Blocking"}, "")

			Convey("Then only its stats should be visible", func() {
				So(got, ShouldResemble, []player.StatKey{player.KeyBlocks, player.KeyBlockingErrors, player.KeyRebounds, player.KeyBlocksPerMatch})
			})
		})

		Convey("When a query narrows the list", func() {
			got := player.VisibleAxes(nil, "  PER MATCH ")

			Convey("Then matching should be case-insensitive", func() {
				So(len(got), ShouldEqual, 6)
				So(got, ShouldContain, player.KeyDigsPerMatch)
			})
		})

		Convey("When only unknown groups are selected", func() {
			Convey("Then nothing should be visible", func() {
				So(player.VisibleAxes([]string{"Bogus"}, ""), ShouldBeEmpty)
			})
		})
	})
}

func TestDisplayHelpers(t *testing.T) {
	Convey("Given display helpers", t, func() {
		Convey("Then country codes should map to names", func() {
			So(player.CountryName("BRA"), ShouldEqual, "Brazil")
			So(player.CountryName("XYZ"), ShouldEqual, "XYZ")
		})

		Convey("Then positions should be title-cased per word", func() {
			So(player.FormatPosition("OUTSIDE HITTER"), ShouldEqual, "Outside Hitter")
			So(player.FormatPosition("libero"), ShouldEqual, "libero")
			So(player.FormatPosition(""), ShouldEqual, "")
		})
	})
}
