package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/teampick/internal/adapters/http/api"
	service "github.com/okian/teampick/internal/app"
	"github.com/okian/teampick/internal/domain/model"
	"github.com/okian/teampick/internal/domain/roster"
	"github.com/okian/teampick/internal/domain/types"
	"github.com/okian/teampick/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

// panickingDeps blows up on every business call.
type panickingDeps struct{}

func (panickingDeps) GetStats() map[string]interface{} { return nil }
func (panickingDeps) Positions() []model.Position      { return nil }

func (panickingDeps) Balance(context.Context, []roster.Entry) (types.Lineup, error) {
	panic("boom")
}

func (panickingDeps) Split(context.Context, []roster.Entry, []int) (types.SplitView, error) {
	panic("boom")
}

func rosterJSON(ratings ...int) string {
	players := make([]string, len(ratings))
	for i, r := range ratings {
		players[i] = fmt.Sprintf(
			`{"name":"P%d","position":"MID","attack":%d,"defense":%d,"passing":%d,"pace":%d,"physical":%d}`,
			i, r, r, r, r, r)
	}
	return "[" + strings.Join(players, ",") + "]"
}

func newMux(deps api.Dependencies, opts ...api.Option) (*api.Server, *http.ServeMux) {
	server := api.NewServer(deps, opts...)
	mux := http.NewServeMux()
	server.Register(context.Background(), mux)
	return server, mux
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

type errorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
}

func TestServer_Register(t *testing.T) {
	Convey("Given a new API server", t, func() {
		_, mux := newMux(service.New())

		Convey("Then health endpoint should expose metrics", func() {
			w := do(mux, http.MethodGet, "/healthz", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "teampick_")
		})

		Convey("Then stats endpoint should be accessible", func() {
			w := do(mux, http.MethodGet, "/stats", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			var stats map[string]any
			So(json.Unmarshal(w.Body.Bytes(), &stats), ShouldBeNil)
			So(stats, ShouldContainKey, "balanced")
		})

		Convey("Then positions endpoint lists the positions with GK first", func() {
			w := do(mux, http.MethodGet, "/positions", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"positions":["GK","DEF","MID","FWD"]`)
			So(w.Body.String(), ShouldContainSubstring, `"default":"GK"`)
		})

		Convey("Then wrong methods are not allowed", func() {
			for _, c := range []struct{ method, path, allow string }{
				{http.MethodGet, "/teams/balance", http.MethodPost},
				{http.MethodGet, "/teams/split", http.MethodPost},
				{http.MethodPost, "/positions", http.MethodGet},
				{http.MethodPost, "/stats", http.MethodGet},
				{http.MethodDelete, "/healthz", http.MethodGet},
			} {
				w := do(mux, c.method, c.path, "")
				So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
				So(w.Header().Get("Allow"), ShouldEqual, c.allow)
				So(w.Body.String(), ShouldContainSubstring, `"code":"method_not_allowed"`)
			}

			scrape := do(mux, http.MethodGet, "/healthz", "")
			So(scrape.Body.String(), ShouldContainSubstring, `error_type="method_not_allowed"`)
			So(scrape.Body.String(), ShouldNotContainSubstring, `error_type="not_found"`)
		})

		Convey("Then unknown paths are not found", func() {
			So(do(mux, http.MethodGet, "/unknown", "").Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestTeamsHandler_Balance(t *testing.T) {
	Convey("Given an API server backed by the service", t, func() {
		_, mux := newMux(service.New())

		Convey("When posting ten players rated 0 through 9", func() {
			w := do(mux, http.MethodPost, "/teams/balance", `{"players":`+rosterJSON(0, 1, 2, 3, 4, 5, 6, 7, 8, 9)+`}`)

			Convey("Then the lineup is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldEqual, "application/json; charset=utf-8")
				var lineup types.Lineup
				So(json.Unmarshal(w.Body.Bytes(), &lineup), ShouldBeNil)
				So(lineup.Difference, ShouldEqual, 1.0)
				So(len(lineup.TeamA.Players), ShouldEqual, 5)
				So(len(lineup.TeamB.Players), ShouldEqual, 5)
				So(lineup.TeamA.Name, ShouldEqual, "Team A")
			})
		})

		Convey("When posting nine players", func() {
			w := do(mux, http.MethodPost, "/teams/balance", `{"players":`+rosterJSON(1, 2, 3, 4, 5, 6, 7, 8, 9)+`}`)

			Convey("Then the roster size is rejected", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				var body errorBody
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body.Code, ShouldEqual, "invalid_roster_size")
				So(body.Message, ShouldContainSubstring, "provide exactly 10 players")
			})
		})

		Convey("When a rating is out of range", func() {
			players := strings.Replace(rosterJSON(1, 2, 3, 4, 5, 6, 7, 8, 9, 10), `"pace":4`, `"pace":14`, 1)
			w := do(mux, http.MethodPost, "/teams/balance", `{"players":`+players+`}`)

			Convey("Then the rating is rejected", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				var body errorBody
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body.Code, ShouldEqual, "rating_out_of_range")
			})
		})

		Convey("When a position is unknown", func() {
			players := strings.Replace(rosterJSON(1, 2, 3, 4, 5, 6, 7, 8, 9, 10), `"MID"`, `"SWEEPER"`, 1)
			w := do(mux, http.MethodPost, "/teams/balance", `{"players":`+players+`}`)

			Convey("Then the position is rejected", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(w.Body.String(), ShouldContainSubstring, `"code":"unknown_position"`)
			})
		})

		Convey("When the body is not JSON", func() {
			w := do(mux, http.MethodPost, "/teams/balance", `{"players":`)

			Convey("Then it is a bad request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(w.Body.String(), ShouldContainSubstring, `"code":"bad_request"`)
			})
		})
	})

	Convey("Given a server with a tiny body limit", t, func() {
		_, mux := newMux(service.New(), api.WithMaxBodyBytes(16))

		Convey("When posting a full roster", func() {
			w := do(mux, http.MethodPost, "/teams/balance", `{"players":`+rosterJSON(1, 2, 3, 4, 5, 6, 7, 8, 9, 10)+`}`)

			Convey("Then the payload is too large", func() {
				So(w.Code, ShouldEqual, http.StatusRequestEntityTooLarge)
				So(w.Body.String(), ShouldContainSubstring, `"code":"payload_too_large"`)
			})
		})
	})
}

func TestTeamsHandler_Split(t *testing.T) {
	Convey("Given an API server backed by the service", t, func() {
		_, mux := newMux(service.New())
		players := rosterJSON(0, 1, 2, 3, 4, 5, 6, 7, 8, 9)

		Convey("When team A holds five players", func() {
			w := do(mux, http.MethodPost, "/teams/split", `{"players":`+players+`,"team_a":[0,2,4,6,8]}`)

			Convey("Then the split is valid with a difference", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var view types.SplitView
				So(json.Unmarshal(w.Body.Bytes(), &view), ShouldBeNil)
				So(view.Valid, ShouldBeTrue)
				So(view.Difference, ShouldNotBeNil)
				So(*view.Difference, ShouldEqual, 5.0)
			})
		})

		Convey("When team A holds four players", func() {
			w := do(mux, http.MethodPost, "/teams/split", `{"players":`+players+`,"team_a":[0,1,2,3]}`)

			Convey("Then the split is answered as invalid, not as an error", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var view types.SplitView
				So(json.Unmarshal(w.Body.Bytes(), &view), ShouldBeNil)
				So(view.Valid, ShouldBeFalse)
				So(view.Difference, ShouldBeNil)
				So(view.Message, ShouldEqual, "Assign exactly 5 players to Team A")
				So(w.Body.String(), ShouldNotContainSubstring, `"difference"`)
			})
		})

		Convey("When the roster is short", func() {
			w := do(mux, http.MethodPost, "/teams/split", `{"players":`+rosterJSON(1, 2)+`,"team_a":[0]}`)

			Convey("Then the roster is rejected", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(w.Body.String(), ShouldContainSubstring, `"code":"invalid_roster_size"`)
			})
		})
	})
}

func TestServer_Handler(t *testing.T) {
	Convey("Given a server whose dependencies panic", t, func() {
		server, mux := newMux(panickingDeps{})
		h := server.Handler(mux)

		Convey("When a handler panics", func() {
			w := do(h, http.MethodPost, "/teams/balance", `{"players":[]}`)

			Convey("Then a 500 with the request id is returned", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
				var body errorBody
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body.Code, ShouldEqual, "internal_error")
				So(body.RequestID, ShouldNotBeEmpty)
				So(body.RequestID, ShouldEqual, w.Header().Get(api.RequestIDHeader))
			})
		})
	})

	Convey("Given the request id middleware", t, func() {
		var seen string
		h := api.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = api.GetRequestID(r.Context())
		}))

		Convey("When the client sends an id", func() {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(api.RequestIDHeader, "abc-123")
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			Convey("Then it is kept", func() {
				So(seen, ShouldEqual, "abc-123")
				So(w.Header().Get(api.RequestIDHeader), ShouldEqual, "abc-123")
			})
		})

		Convey("When the client sends none", func() {
			w := do(h, http.MethodGet, "/", "")

			Convey("Then one is generated", func() {
				So(seen, ShouldHaveLength, 36)
				So(w.Header().Get(api.RequestIDHeader), ShouldEqual, seen)
			})
		})

		Convey("Then a bare context has no id", func() {
			So(api.GetRequestID(context.Background()), ShouldBeEmpty)
		})
	})
}

func TestErrorHelpers(t *testing.T) {
	Convey("Given the API error helpers", t, func() {
		cause := errors.New("unexpected EOF")

		Convey("Then WrapKind matches both kind and cause", func() {
			err := api.WrapKind("api.balance", api.ErrBadRequest, cause)
			So(errors.Is(err, api.ErrBadRequest), ShouldBeTrue)
			So(errors.Is(err, cause), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "api.balance: bad request: unexpected EOF")
		})

		Convey("Then NewKind carries only the kind", func() {
			err := api.NewKind("api.recovery", api.ErrInternal)
			So(errors.Is(err, api.ErrInternal), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "api.recovery: internal error")
		})

		Convey("Then Wrap keeps nil as nil", func() {
			So(api.Wrap("api.x", nil), ShouldBeNil)
			So(errors.Is(api.Wrap("api.x", cause), cause), ShouldBeTrue)
			So(api.Wrap("api.x", cause).Error(), ShouldEqual, "api.x: unexpected EOF")
		})

		Convey("Then roster sentinels survive the wrapping", func() {
			err := api.WrapKind("api.balance", api.ErrRejected, model.ErrInvalidRosterSize)
			So(model.Reason(err), ShouldEqual, model.ReasonInvalidRosterSize)
		})
	})
}
