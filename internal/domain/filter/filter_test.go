package filter_test

import (
	"testing"

	"github.com/okian/vnl/internal/domain/filter"
	"github.com/okian/vnl/internal/domain/player"
	. "github.com/smartystreets/goconvey/convey"
)

func rec(name, team, pos string, age, height player.Value) player.Record {
	return player.Record{Name: name, Team: team, Position: pos, Age: age, Height: height}
}

func names(records []player.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Name)
	}
	return out
}

func dataset() []player.Record {
	return []player.Record{
		rec("Alice", "USA", "OUTSIDE HITTER", player.Known(25), player.Known(180)),
		rec("Bob", "BRA", "LIBERO", player.Known(19), player.Unknown()),
		rec("Carol", "POL", "SETTER", player.Unknown(), player.Known(195)),
		rec("Dan", "USA", "LIBERO", player.Known(31), player.Known(201)),
	}
}

func TestApply(t *testing.T) {
	Convey("Given a dataset and its default filter", t, func() {
		data := dataset()
		def := filter.Defaults(data)

		Convey("Then the defaults should span the observed ranges", func() {
			So(def.Age, ShouldResemble, filter.Interval{Lo: 19, Hi: 31})
			So(def.Height, ShouldResemble, filter.Interval{Lo: 180, Hi: 201})
			So(def.Teams, ShouldBeEmpty)
		})

		Convey("When applying the defaults", func() {
			Convey("Then every record should pass in original order", func() {
				So(names(filter.Apply(data, def)), ShouldResemble, []string{"Alice", "Bob", "Carol", "Dan"})
			})
		})

		Convey("When restricting the age interval", func() {
			s := def
			s.Age = filter.Interval{Lo: 20, Hi: 30}

			Convey("Then records with unknown age should still pass", func() {
				So(names(filter.Apply(data, s)), ShouldResemble, []string{"Alice", "Carol"})
			})
		})

		Convey("When restricting the height interval", func() {
			s := def
			s.Height = filter.Interval{Lo: 190, Hi: 200}

			Convey("Then unknown heights should pass and bounds should be inclusive", func() {
				So(names(filter.Apply(data, s)), ShouldResemble, []string{"Bob", "Carol"})
				s.Height = filter.Interval{Lo: 180, Hi: 180}
				So(names(filter.Apply(data, s)), ShouldResemble, []string{"Alice", "Bob"})
			})
		})

		Convey("When selecting teams and positions", func() {
			s := def
			s.Teams = []string{"USA"}
			s.Positions = []string{"LIBERO", "SETTER"}

			Convey("Then both sets should be required", func() {
				So(names(filter.Apply(data, s)), ShouldResemble, []string{"Dan"})
			})
		})

		Convey("When the interval is inverted", func() {
			s := def
			s.Age = filter.Interval{Lo: 30, Hi: 20}

			Convey("Then only unknown ages should pass", func() {
				So(names(filter.Apply(data, s)), ShouldResemble, []string{"Carol"})
			})
		})

		Convey("When applying the same state twice", func() {
			s := def
			s.Teams = []string{"USA", "POL"}
			first := filter.Apply(data, s)
			second := filter.Apply(data, s)

			Convey("Then the result should be identical and the input untouched", func() {
				So(names(second), ShouldResemble, names(first))
				So(names(data), ShouldResemble, []string{"Alice", "Bob", "Carol", "Dan"})
			})
		})

		Convey("When widening a filter", func() {
			narrow := def
			narrow.Teams = []string{"USA"}
			narrow.Age = filter.Interval{Lo: 24, Hi: 26}
			wide := narrow
			wide.Teams = nil
			wide.Age = filter.Interval{Lo: 0, Hi: 100}

			Convey("Then the wider result should contain the narrower one", func() {
				n := names(filter.Apply(data, narrow))
				w := names(filter.Apply(data, wide))
				So(len(w), ShouldBeGreaterThanOrEqualTo, len(n))
				for _, name := range n {
					So(w, ShouldContain, name)
				}
				So(wide.Age.Covers(narrow.Age), ShouldBeTrue)
			})
		})
	})
}

func TestEndToEndExample(t *testing.T) {
	Convey("Given Alice aged 25 and Bob aged 19", t, func() {
		data := []player.Record{
			rec("Alice", "USA", "", player.Known(25), player.Known(180)),
			rec("Bob", "BRA", "", player.Known(19), player.Unknown()),
		}

		Convey("When filtering age to [20, 30]", func() {
			s := filter.Defaults(data)
			s.Age = filter.Interval{Lo: 20, Hi: 30}

			Convey("Then only Alice should remain", func() {
				So(names(filter.Apply(data, s)), ShouldResemble, []string{"Alice"})
			})
		})
	})
}

func TestObserve(t *testing.T) {
	Convey("Given records", t, func() {
		Convey("When observing facets", func() {
			f := filter.Observe(dataset())

			Convey("Then teams and positions should be sorted and distinct", func() {
				So(f.Teams, ShouldResemble, []string{"BRA", "POL", "USA"})
				So(f.Positions, ShouldResemble, []string{"LIBERO", "OUTSIDE HITTER", "SETTER"})
			})
		})

		Convey("When no finite ages or heights exist", func() {
			f := filter.Observe([]player.Record{rec("X", "A", "B", player.Unknown(), player.Unknown())})

			Convey("Then the fallback ranges should be used", func() {
				So(f.AgeRange, ShouldResemble, filter.FallbackAge)
				So(f.HeightRange, ShouldResemble, filter.FallbackHeight)
			})
		})

		Convey("When the dataset is empty", func() {
			f := filter.Observe(nil)

			Convey("Then sets should be empty, not nil", func() {
				So(f.Teams, ShouldNotBeNil)
				So(f.Teams, ShouldBeEmpty)
			})
		})
	})
}

func TestStateKey(t *testing.T) {
	Convey("Given two equivalent states", t, func() {
		a := filter.State{Teams: []string{"USA", "BRA"}, Age: filter.Interval{Lo: 1, Hi: 2}}
		b := filter.State{Teams: []string{"BRA", "USA", "USA"}, Age: filter.Interval{Lo: 1, Hi: 2}}

		Convey("Then their keys should match", func() {
			So(a.Key(), ShouldEqual, b.Key())
		})

		Convey("And a different interval should change the key", func() {
			b.Age.Hi = 3
			So(a.Key(), ShouldNotEqual, b.Key())
		})

		Convey("And moving a value between sets should change the key", func() {
			c := filter.State{Positions: []string{"USA", "BRA"}, Age: a.Age}
			So(a.Key(), ShouldNotEqual, c.Key())
		})
	})
}
