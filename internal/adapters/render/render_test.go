package render_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/okian/teampick/internal/adapters/render"
	"github.com/okian/teampick/internal/domain/scoring"
	"github.com/okian/teampick/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func team(name string, total float64, names ...string) types.TeamView {
	view := types.TeamView{Name: name, Total: total}
	for i, n := range names {
		view.Players = append(view.Players, types.PlayerCard{
			Index: i, Name: n, Position: "MID",
			Attack: 7, Defense: 6, Passing: 5, Pace: 4, Physical: 3,
			Overall: 5, Tier: scoring.Silver,
		})
	}
	return view
}

func TestParseView(t *testing.T) {
	Convey("Given view names", t, func() {
		Convey("Then card and pitch are accepted in any case", func() {
			v, err := render.ParseView("Pitch")
			So(err, ShouldBeNil)
			So(v, ShouldEqual, render.PitchView)

			v, err = render.ParseView("")
			So(err, ShouldBeNil)
			So(v, ShouldEqual, render.CardView)
		})

		Convey("Then anything else is rejected", func() {
			_, err := render.ParseView("grid")
			So(errors.Is(err, render.ErrUnknownView), ShouldBeTrue)
		})
	})
}

func TestDifferenceLine(t *testing.T) {
	Convey("Given differences", t, func() {
		Convey("Then they are shown with one decimal", func() {
			So(render.DifferenceLine(1), ShouldEqual, "Difference in team strength: 1.0 points")
			So(render.DifferenceLine(0.24), ShouldEqual, "Difference in team strength: 0.2 points")
			So(render.DifferenceLine(12.36), ShouldEqual, "Difference in team strength: 12.4 points")
		})
	})
}

func TestPlayerCard(t *testing.T) {
	Convey("Given a player card", t, func() {
		out := render.PlayerCard(types.PlayerCard{
			Name: "Ana", Position: "FWD",
			Attack: 9, Defense: 3, Passing: 7, Pace: 8, Physical: 6,
			Overall: 6.6, Tier: scoring.Silver,
		})

		Convey("Then it shows the name, position, overall and stats", func() {
			So(out, ShouldContainSubstring, "Ana")
			So(out, ShouldContainSubstring, "FWD - 6.6")
			So(out, ShouldContainSubstring, "Attack")
			So(out, ShouldContainSubstring, "Physical")
			So(out, ShouldContainSubstring, " 9")
		})
	})

	Convey("Given the tiers", t, func() {
		Convey("Then each has its colour", func() {
			So(render.TierColor(scoring.Gold), ShouldEqual, render.GoldColor)
			So(render.TierColor(scoring.Silver), ShouldEqual, render.SilverColor)
			So(render.TierColor(scoring.Bronze), ShouldEqual, render.BronzeColor)
		})
	})
}

func TestLineup(t *testing.T) {
	Convey("Given a balanced lineup", t, func() {
		lineup := types.Lineup{
			TeamA:      team("Team A", 22.5, "Ana", "Bo"),
			TeamB:      team("Team B", 21.5, "Cy", "Di"),
			Difference: 1,
		}

		Convey("When rendered as cards", func() {
			out := render.Lineup(lineup, render.CardView)

			Convey("Then both teams and the balance check are shown", func() {
				So(out, ShouldContainSubstring, "Team A (22.5)")
				So(out, ShouldContainSubstring, "Team B (21.5)")
				for _, n := range []string{"Ana", "Bo", "Cy", "Di"} {
					So(out, ShouldContainSubstring, n)
				}
				So(out, ShouldContainSubstring, "Balance Check")
				So(out, ShouldContainSubstring, "Difference in team strength: 1.0 points")
				So(out, ShouldNotContainSubstring, "Pitch View")
			})
		})

		Convey("When rendered on the pitch", func() {
			out := render.Lineup(lineup, render.PitchView)

			Convey("Then the pitch sits between the teams", func() {
				So(out, ShouldContainSubstring, "Pitch View")
				So(out, ShouldContainSubstring, "(o)")
				line := firstLineContaining(out, "(o)")
				So(strings.Index(line, "(o)"), ShouldBeGreaterThan, 20)
			})
		})
	})
}

func TestSplit(t *testing.T) {
	Convey("Given a manual split", t, func() {
		Convey("When it is valid", func() {
			diff := 3.0
			out := render.Split(types.SplitView{
				TeamA: team("Team A", 20, "Ana"), TeamB: team("Team B", 23, "Bo"),
				Valid: true, Difference: &diff,
			}, render.CardView)

			Convey("Then the difference is reported", func() {
				So(out, ShouldContainSubstring, "Difference in team strength: 3.0 points")
			})
		})

		Convey("When it is invalid", func() {
			out := render.Split(types.SplitView{
				TeamA:    team("Team A", 10, "Ana"),
				TeamB:    team("Team B", 35, "Bo"),
				Message:  "Assign exactly 5 players to Team A",
				Problems: []string{"team A has 1 players, want 5"},
			}, render.PitchView)

			Convey("Then the prompt replaces the difference", func() {
				So(out, ShouldContainSubstring, "Assign exactly 5 players to Team A")
				So(out, ShouldContainSubstring, "team A has 1 players, want 5")
				So(out, ShouldNotContainSubstring, "Difference in team strength")
			})
		})
	})
}

func firstLineContaining(s, sub string) string {
	for _, line := range strings.Split(s, "\n") {
		if strings.Contains(line, sub) {
			return line
		}
	}
	return ""
}
