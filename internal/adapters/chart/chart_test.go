package chart_test

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"testing"

	"github.com/okian/vnl/internal/adapters/chart"
	"github.com/okian/vnl/internal/domain/projection"
	. "github.com/smartystreets/goconvey/convey"
)

func TestScatter(t *testing.T) {
	Convey("Given a renderer sized 320x240", t, func() {
		ctx := context.Background()
		r := chart.New(chart.WithSize(320, 240))
		points := []projection.Point{{X: 3, Y: 5}, {X: 10, Y: 8}, {X: 6, Y: 6}}
		bounds, _ := projection.ComputeBounds(points)

		Convey("Then the size should be reported", func() {
			w, h := r.Size()
			So(w, ShouldEqual, 320)
			So(h, ShouldEqual, 240)
		})

		Convey("When plotting several points", func() {
			img, err := r.Scatter(ctx, "Kills", "Aces", points, bounds)

			Convey("Then a PNG of the configured size should be produced", func() {
				So(err, ShouldBeNil)
				decoded, err := png.Decode(bytes.NewReader(img))
				So(err, ShouldBeNil)
				So(decoded.Bounds().Dx(), ShouldEqual, 320)
				So(decoded.Bounds().Dy(), ShouldEqual, 240)
			})
		})

		Convey("When plotting a single point", func() {
			one := points[:1]
			b, _ := projection.ComputeBounds(one)
			img, err := r.Scatter(ctx, "Kills", "Aces", one, b)

			Convey("Then it should still render", func() {
				So(err, ShouldBeNil)
				So(img, ShouldNotBeEmpty)
			})
		})

		Convey("When plotting zero-valued points", func() {
			zeros := []projection.Point{{X: 0, Y: 0}, {X: 0, Y: 0}}
			b, _ := projection.ComputeBounds(zeros)
			_, err := r.Scatter(ctx, "Aces", "Aces", zeros, b)

			Convey("Then the padded range should keep the renderer happy", func() {
				So(err, ShouldBeNil)
			})
		})

		Convey("When there is nothing to plot", func() {
			_, err := r.Scatter(ctx, "Kills", "Aces", nil, projection.Bounds{})

			Convey("Then it should report an empty chart", func() {
				So(errors.Is(err, chart.ErrEmpty), ShouldBeTrue)
			})
		})

		Convey("When the context is cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := r.Scatter(cctx, "Kills", "Aces", points, bounds)

			Convey("Then rendering should not start", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
			})
		})
	})
}
