package probe

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/okian/vnl/internal/adapters/http/api"
	service "github.com/okian/vnl/internal/app"
	"github.com/okian/vnl/internal/domain/filter"
	"github.com/okian/vnl/internal/domain/player"
	"github.com/okian/vnl/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.InitWith(logger.WithWriter(io.Discard)); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

const probeCSV = `Player Name,Team,Position,Age,Height,Kills,Blocks,Aces,Digs Per Match
Alice,USA,OUTSIDE HITTER,25,190 cm,10,8,3,1.5
Bob,BRA,LIBERO,19,180 cm,4,5,1,4.25
Carol,POL,SETTER,28,,1,2,6,2
Dan,USA,MIDDLE BLOCKER,31,205 cm,7,,2,0.5
Eve,JPN,OPPOSITE,,198 cm,12,6,4,
`

func writeCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stats.csv")
	if err := os.WriteFile(path, []byte(probeCSV), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// explorer starts an in-process explorer serving path.
func explorer(t *testing.T, path string) *httptest.Server {
	t.Helper()
	svc := service.New(service.WithSource(path), service.WithLogger(logger.Get()))
	if err := svc.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(context.Background(), mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func probeConfig(baseURL, path string) *Config {
	return &Config{
		BaseURL:         baseURL,
		Dataset:         path,
		DuplicatePolicy: "keep_first",
		Queries:         60,
		Lookups:         10,
		Workers:         4,
		Timeout:         5 * time.Second,
		ReadyTimeout:    2 * time.Second,
		Seed:            42,
	}
}

func TestRun(t *testing.T) {
	Convey("Given a running explorer and a local copy of its dataset", t, func() {
		path := writeCSV(t)
		srv := explorer(t, path)

		Convey("When probing it", func() {
			stats, err := Run(context.Background(), probeConfig(srv.URL, path))

			Convey("Then every projection and lookup should agree", func() {
				So(err, ShouldBeNil)
				So(stats.QueriesChecked, ShouldEqual, 60)
				So(stats.QueriesMatched, ShouldEqual, 60)
				So(stats.LookupsChecked, ShouldEqual, 5)
				So(stats.LookupsFailed, ShouldEqual, 0)
			})
		})
	})

	Convey("Given an explorer that drops a point", t, func() {
		path := writeCSV(t)
		upstream := explorer(t, path)
		liar := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			resp, err := http.Get(upstream.URL + r.URL.RequestURI())
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadGateway)
				return
			}
			defer resp.Body.Close()
			if r.URL.Path != "/projection" {
				w.WriteHeader(resp.StatusCode)
				_, _ = io.Copy(w, resp.Body)
				return
			}
			var body map[string]any
			_ = json.NewDecoder(resp.Body).Decode(&body)
			if pts, ok := body["points"].([]any); ok && len(pts) > 0 {
				body["points"] = pts[1:]
			}
			_ = json.NewEncoder(w).Encode(body)
		}))
		defer liar.Close()

		Convey("When probing it", func() {
			_, err := Run(context.Background(), probeConfig(liar.URL, path))

			Convey("Then it should report a mismatch", func() {
				So(errors.Is(err, ErrMismatch), ShouldBeTrue)
			})
		})
	})

	Convey("Given an explorer whose dataset failed to load", t, func() {
		missing := filepath.Join(t.TempDir(), "missing.csv")
		srv := explorer(t, missing)

		Convey("When probing it", func() {
			_, err := Run(context.Background(), probeConfig(srv.URL, missing))

			Convey("Then it should report the load failure", func() {
				So(errors.Is(err, ErrLoadFailed), ShouldBeTrue)
			})
		})
	})

	Convey("Given an explorer that never becomes ready", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"state":"loading"}`))
		}))
		defer srv.Close()
		cfg := probeConfig(srv.URL, writeCSV(t))
		cfg.ReadyTimeout = 600 * time.Millisecond

		Convey("When probing it", func() {
			_, err := Run(context.Background(), cfg)

			Convey("Then it should give up as unhealthy", func() {
				So(errors.Is(err, ErrUnhealthy), ShouldBeTrue)
			})
		})
	})
}

func TestGenerateQueries(t *testing.T) {
	Convey("Given observed facets", t, func() {
		facets := filter.Facets{
			Teams:       []string{"BRA", "POL", "USA"},
			Positions:   []string{"LIBERO", "MIDDLE, BLOCKER", "SETTER"},
			AgeRange:    filter.Interval{Lo: 19, Hi: 31},
			HeightRange: filter.Interval{Lo: 180, Hi: 205},
		}

		Convey("When generating with the same seed twice", func() {
			a := generateQueries(rand.New(rand.NewPCG(7, 3)), facets, 20)
			b := generateQueries(rand.New(rand.NewPCG(7, 3)), facets, 20)

			Convey("Then the queries should be identical", func() {
				So(len(a), ShouldEqual, 20)
				for i := range a {
					So(a[i].Values().Encode(), ShouldEqual, b[i].Values().Encode())
				}
			})

			Convey("And the first query should be the default filter", func() {
				So(a[0].Filter.Teams, ShouldBeEmpty)
				So(a[0].Filter.Age, ShouldResemble, facets.AgeRange)
			})

			Convey("And every query should stay inside the facets", func() {
				for _, q := range a {
					So(player.IsAxis(q.X), ShouldBeTrue)
					So(player.IsAxis(q.Y), ShouldBeTrue)
					So(facets.AgeRange.Covers(q.Filter.Age), ShouldBeTrue)
					So(facets.HeightRange.Covers(q.Filter.Height), ShouldBeTrue)
					So(q.Filter.Positions, ShouldNotContain, "MIDDLE, BLOCKER")
				}
			})
		})

		Convey("When encoding a query", func() {
			q := Query{
				Filter: filter.State{
					Teams:     []string{"USA", "BRA"},
					Positions: []string{"LIBERO"},
					Age:       filter.Interval{Lo: 20, Hi: 30.5},
					Height:    filter.Interval{Lo: 180, Hi: 200},
				},
				X: player.KeyKills, Y: player.KeyDigsPerMatch,
			}
			v := q.Values()

			Convey("Then it should use the explorer's parameter names", func() {
				So(v.Get("team"), ShouldEqual, "USA,BRA")
				So(v.Get("y"), ShouldEqual, "Digs Per Match")
				So(v.Get("age_max"), ShouldEqual, "30.5")
				So(strings.Contains(v.Encode(), "position=LIBERO"), ShouldBeTrue)
			})
		})
	})
}
