package dedupe_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	dedupe "github.com/okian/vnl/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryDeduper(t *testing.T) {
	Convey("Given a new InMemoryDeduper", t, func() {
		ctx := context.Background()
		d := dedupe.NewInMemoryDeduper()

		Convey("Then it should start empty", func() {
			So(d.Repeated(), ShouldBeEmpty)
		})

		Convey("When a name is new", func() {
			seen := d.SeenAndRecord(ctx, "Alice")

			Convey("Then it should be recorded", func() {
				So(seen, ShouldBeFalse)
				So(d.SeenAndRecord(ctx, "Alice"), ShouldBeTrue)
			})
		})

		Convey("When a name repeats", func() {
			d.SeenAndRecord(ctx, "Alice")
			d.SeenAndRecord(ctx, "Bob")
			second := d.SeenAndRecord(ctx, "Alice")
			third := d.SeenAndRecord(ctx, "Alice")
			d.SeenAndRecord(ctx, "Bob")

			Convey("Then it should report seen and list repeats once in first-seen order", func() {
				So(second, ShouldBeTrue)
				So(third, ShouldBeTrue)
				So(d.Repeated(), ShouldResemble, []string{"Alice", "Bob"})
			})
		})

		Convey("When a key func folds case", func() {
			folded := dedupe.NewInMemoryDeduper(dedupe.WithKeyFunc(strings.ToLower))
			folded.SeenAndRecord(ctx, "Alice")

			Convey("Then differently cased names should collide", func() {
				So(folded.SeenAndRecord(ctx, "ALICE"), ShouldBeTrue)
				So(folded.Repeated(), ShouldResemble, []string{"ALICE"})
			})
		})

		Convey("When a nil key func is given", func() {
			d := dedupe.NewInMemoryDeduper(dedupe.WithKeyFunc(nil))

			Convey("Then it should compare verbatim", func() {
				d.SeenAndRecord(ctx, "a")
				So(d.SeenAndRecord(ctx, "A"), ShouldBeFalse)
			})
		})
	})
}

func TestDedupeConcurrency(t *testing.T) {
	Convey("Given a deduper with concurrent access", t, func() {
		d := dedupe.NewInMemoryDeduper()
		const numGoroutines = 10
		const namesPerGoroutine = 100

		Convey("When multiple goroutines record names concurrently", func() {
			var wg sync.WaitGroup
			for i := 0; i < numGoroutines; i++ {
				wg.Add(1)
				go func(g int) {
					defer wg.Done()
					for j := 0; j < namesPerGoroutine; j++ {
						d.SeenAndRecord(context.Background(), fmt.Sprintf("player-%d-%d", g, j))
					}
				}(i)
			}
			wg.Wait()

			Convey("Then every name should be recorded once", func() {
				So(d.Repeated(), ShouldBeEmpty)
				So(d.SeenAndRecord(context.Background(), "player-0-0"), ShouldBeTrue)
				So(d.SeenAndRecord(context.Background(), "player-9-99"), ShouldBeTrue)
			})
		})
	})
}
