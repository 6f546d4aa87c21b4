package cmd_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/teampick/internal/adapters/http/api"
	service "github.com/okian/teampick/internal/app"
	"github.com/okian/teampick/internal/cmd"
	"github.com/okian/teampick/internal/domain/types"
	"github.com/okian/teampick/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

// executeCommand runs the command tree with args and returns stdout and stderr.
func executeCommand(args ...string) (string, string, error) {
	root := cmd.NewRootCmd()
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// writeRoster writes ten players where player i has every rating equal to i.
func writeRoster(t *testing.T, n int) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("players:\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "  - name: P%d\n    position: MID\n    attack: %d\n    defense: %d\n    passing: %d\n    pace: %d\n    physical: %d\n",
			i, i, i, i, i, i)
	}
	path := filepath.Join(t.TempDir(), "roster.yaml")
	if err := os.WriteFile(path, []byte(b.String()), 0o600); err != nil {
		t.Fatalf("write roster: %v", err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TEAMPICK_CONFIG", "")
	_ = os.Unsetenv("TEAMPICK_CONFIG")
}

func TestRootCommand(t *testing.T) {
	Convey("Given the root command", t, func() {
		root := cmd.NewRootCmd()

		Convey("Then it has the expected subcommands", func() {
			So(root.Use, ShouldEqual, "teampick")
			names := map[string]bool{}
			for _, c := range root.Commands() {
				names[c.Name()] = true
			}
			for _, want := range []string{"balance", "split", "check"} {
				So(names[want], ShouldBeTrue)
			}
		})
	})
}

func TestBalanceCommand(t *testing.T) {
	Convey("Given a roster file of ten players", t, func() {
		clearEnv(t)
		path := writeRoster(t, 10)

		Convey("When balancing with card output", func() {
			out, _, err := executeCommand("balance", path)

			Convey("Then both teams and the difference are printed", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, "Team A")
				So(out, ShouldContainSubstring, "Team B")
				So(out, ShouldContainSubstring, "Difference in team strength: 1.0 points")
			})
		})

		Convey("When balancing with the pitch view", func() {
			out, _, err := executeCommand("balance", path, "--view", "pitch")

			Convey("Then the pitch is drawn", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, "Pitch View")
			})
		})

		Convey("When balancing with JSON output", func() {
			out, _, err := executeCommand("balance", path, "--json")

			Convey("Then a lineup document is printed", func() {
				So(err, ShouldBeNil)
				var lineup types.Lineup
				So(json.Unmarshal([]byte(out), &lineup), ShouldBeNil)
				So(lineup.Difference, ShouldEqual, 1.0)
				So(len(lineup.TeamA.Players), ShouldEqual, 5)
			})
		})

		Convey("When the view is unknown", func() {
			_, _, err := executeCommand("balance", path, "--view", "grid")

			Convey("Then the command fails", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})

	Convey("Given a roster file of nine players", t, func() {
		clearEnv(t)
		path := writeRoster(t, 9)

		Convey("Then balancing fails with the roster size problem", func() {
			_, _, err := executeCommand("balance", path)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "provide exactly 10 players")
		})
	})
}

func TestSplitCommand(t *testing.T) {
	Convey("Given a roster file of ten players", t, func() {
		clearEnv(t)
		path := writeRoster(t, 10)

		Convey("When Team A holds five players", func() {
			out, _, err := executeCommand("split", path, "--team-a", "0,2,4,6,8")

			Convey("Then the difference is printed", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, "Difference in team strength: 5.0 points")
			})
		})

		Convey("When Team A holds four players", func() {
			out, _, err := executeCommand("split", path, "--team-a", "0,1,2,3")

			Convey("Then the prompt is printed instead", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, "Assign exactly 5 players to Team A")
				So(out, ShouldNotContainSubstring, "Difference in team strength")
			})
		})

		Convey("When asking for JSON", func() {
			out, _, err := executeCommand("split", path, "--team-a", "0,1,2,3", "--json")

			Convey("Then the view reports valid=false", func() {
				So(err, ShouldBeNil)
				var view types.SplitView
				So(json.Unmarshal([]byte(out), &view), ShouldBeNil)
				So(view.Valid, ShouldBeFalse)
				So(view.Difference, ShouldBeNil)
			})
		})
	})
}

func TestCheckCommand(t *testing.T) {
	Convey("Given a running server", t, func() {
		clearEnv(t)
		So(logger.Init(logger.WithWriter(io.Discard)), ShouldBeNil)
		mux := http.NewServeMux()
		server := api.NewServer(service.New())
		server.Register(context.Background(), mux)
		srv := httptest.NewServer(server.Handler(mux))
		defer srv.Close()

		Convey("When checking it", func() {
			out, _, err := executeCommand("check", "--url", srv.URL, "--rounds", "10", "--workers", "2")

			Convey("Then every answer agrees", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, "rosters: 10")
				So(out, ShouldContainSubstring, "(mismatch 0)")
			})
		})
	})
}
