package lookup_test

import (
	"testing"

	"github.com/okian/vnl/internal/domain/lookup"
	"github.com/okian/vnl/internal/domain/player"
	. "github.com/smartystreets/goconvey/convey"
)

func roster() []player.Record {
	return []player.Record{
		{Name: "Ana Silva", Team: "BRA"},
		{Name: "Bob Jones", Team: "USA"},
		{Name: "SILVANA Rossi", Team: "ITA"},
		{Name: "Émile Durand", Team: "FRA"},
	}
}

func names(records []player.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Name)
	}
	return out
}

func TestSearch(t *testing.T) {
	Convey("Given a roster", t, func() {
		records := roster()

		Convey("When the query is empty", func() {
			Convey("Then every player should match", func() {
				So(names(lookup.Search(records, "")), ShouldResemble, names(records))
			})
		})

		Convey("When the query differs in case", func() {
			Convey("Then matching should be case-insensitive and ordered", func() {
				So(names(lookup.Search(records, "silva")), ShouldResemble, []string{"Ana Silva", "SILVANA Rossi"})
			})
		})

		Convey("When the query has non-ASCII letters", func() {
			Convey("Then Unicode case folding should apply", func() {
				So(names(lookup.Search(records, "ÉMILE")), ShouldResemble, []string{"Émile Durand"})
			})
		})

		Convey("When nothing matches", func() {
			Convey("Then the result should be empty", func() {
				So(lookup.Search(records, "zzz"), ShouldBeEmpty)
			})
		})
	})
}

func TestDetail(t *testing.T) {
	Convey("Given a player record", t, func() {
		r := player.Record{
			Name:     "Ana Silva",
			Team:     "BRA",
			Position: "OUTSIDE HITTER",
			Age:      player.Known(27),
			Height:   player.Unknown(),
			Stats: map[player.StatKey]player.Value{
				player.KeyImpact: player.Known(87.5),
				player.KeyKills:  player.Known(120),
			},
		}

		Convey("When viewing the first group", func() {
			v := lookup.Detail(r, 0)

			Convey("Then basic info should be formatted for display", func() {
				So(v.Label, ShouldEqual, "Basic Info")
				So(v.GroupCount, ShouldEqual, len(player.DetailGroups))
				So(v.HasPrev, ShouldBeFalse)
				So(v.HasNext, ShouldBeTrue)
				So(v.Rows, ShouldResemble, []lookup.Row{
					{Key: player.KeyImpact, Value: "87.5"},
					{Key: player.KeyTeam, Value: "Brazil"},
					{Key: player.KeyPosition, Value: "Outside Hitter"},
					{Key: player.KeyAge, Value: "27"},
					{Key: player.KeyHeight, Value: "—"},
				})
			})
		})

		Convey("When viewing the attacking group", func() {
			v := lookup.Detail(r, 1)

			Convey("Then the rating and stats should be listed", func() {
				So(v.Label, ShouldEqual, "Attacking")
				So(v.Rows[0], ShouldResemble, lookup.Row{Key: player.KeyAttackingRating, Value: "—"})
				So(v.Rows[1], ShouldResemble, lookup.Row{Key: player.KeyKills, Value: "120"})
			})
		})

		Convey("When the index is out of range", func() {
			low := lookup.Detail(r, -3)
			high := lookup.Detail(r, 99)

			Convey("Then it should clamp without wrapping", func() {
				So(low.GroupIndex, ShouldEqual, 0)
				So(high.GroupIndex, ShouldEqual, len(player.DetailGroups)-1)
				So(high.Label, ShouldEqual, "Receiving")
				So(high.HasNext, ShouldBeFalse)
				So(high.HasPrev, ShouldBeTrue)
			})
		})

		Convey("When the team code is not in the country table", func() {
			r.Team = "XYZ"
			v := lookup.Detail(r, 0)

			Convey("Then the code should be shown as is", func() {
				So(v.Rows[1].Value, ShouldEqual, "XYZ")
			})
		})
	})
}
