package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/battlesnakeio/classic/controller"
	"github.com/battlesnakeio/classic/rules"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func createAPIServer() *Server {
	return New(":1234", controller.New(controller.InMemStore()))
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	var buf *bytes.Buffer
	if body != "" {
		buf = bytes.NewBufferString(body)
	} else {
		buf = &bytes.Buffer{}
	}
	req, err := http.NewRequest(method, path, buf)
	require.NoError(t, err)
	rr := httptest.NewRecorder()

	s.hs.Handler.ServeHTTP(rr, req)
	return rr
}

func createGame(t *testing.T, s *Server) *CreateResponse {
	rr := do(t, s, "POST", "/games", `{"width": 6, "height": 6, "start": {"x": 3, "y": 3}, "seed": 11}`)
	require.Equal(t, http.StatusOK, rr.Code)

	cr := &CreateResponse{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), cr))
	return cr
}

func TestCreate(t *testing.T) {
	s := createAPIServer()
	cr := createGame(t, s)

	require.NotEmpty(t, cr.ID)
	require.Equal(t, cr.ID, cr.Game.ID)
	require.Equal(t, int32(6), cr.Game.Width)
	require.Equal(t, rules.Point{X: 3, Y: 3}, cr.Frame.Head)
	require.NotNil(t, cr.Frame.Food)
}

func TestCreateInvalid(t *testing.T) {
	s := createAPIServer()

	rr := do(t, s, "POST", "/games", `{"width": 2, "height": 6}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, s, "POST", "/games", `{`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestStatus(t *testing.T) {
	s := createAPIServer()
	cr := createGame(t, s)

	rr := do(t, s, "GET", "/games/"+cr.ID, "")
	require.Equal(t, http.StatusOK, rr.Code)

	sr := &StatusResponse{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), sr))
	require.Equal(t, cr.Frame, sr.Frame)
	require.Equal(t, []rules.Segment{
		{Point: rules.Point{X: 3, Y: 3}, Role: rules.RoleHead, Orientation: rules.DirectionUp},
	}, sr.Segments)
}

func TestStatusNotFound(t *testing.T) {
	s := createAPIServer()

	rr := do(t, s, "GET", "/games/abc_123", "")
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestMove(t *testing.T) {
	s := createAPIServer()
	cr := createGame(t, s)

	rr := do(t, s, "POST", "/games/"+cr.ID+"/move", `{"move": "a"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	mr := &MoveResponse{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), mr))
	require.Equal(t, rules.MoveMoved, mr.Outcome.Result)
	require.Equal(t, rules.Point{X: 2, Y: 3}, mr.Frame.Head)
	require.Equal(t, rules.DirectionLeft, mr.Frame.Heading)
	require.False(t, mr.BoardFull)

	// Unknown input keeps going.
	rr = do(t, s, "POST", "/games/"+cr.ID+"/move", `{"move": "jump"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), mr))
	require.Equal(t, rules.Point{X: 1, Y: 3}, mr.Frame.Head)
}

func TestMoveNoInputBeforeFirstMove(t *testing.T) {
	s := createAPIServer()
	cr := createGame(t, s)

	rr := do(t, s, "POST", "/games/"+cr.ID+"/move", `{}`)
	require.Equal(t, http.StatusOK, rr.Code)

	mr := &MoveResponse{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), mr))
	require.Equal(t, rules.MoveNone, mr.Outcome.Result)
	require.Equal(t, int64(0), mr.Frame.Turn)
}

func TestMoveAfterDeath(t *testing.T) {
	s := createAPIServer()
	cr := createGame(t, s)

	var mr MoveResponse
	for i := 0; i < 4; i++ {
		rr := do(t, s, "POST", "/games/"+cr.ID+"/move", `{"move": "up"}`)
		require.Equal(t, http.StatusOK, rr.Code)
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &mr))
	}
	require.Equal(t, rules.MoveDied, mr.Outcome.Result)
	require.Equal(t, rules.DeathCauseWallCollision, mr.Outcome.Cause)

	rr := do(t, s, "POST", "/games/"+cr.ID+"/move", `{"move": "up"}`)
	require.Equal(t, http.StatusConflict, rr.Code)
}

func TestMoveErrors(t *testing.T) {
	s := createAPIServer()
	cr := createGame(t, s)

	rr := do(t, s, "POST", "/games/missing/move", `{"move": "up"}`)
	require.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(t, s, "POST", "/games/"+cr.ID+"/move", `not json`)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	_, err := s.ctrl.Store.Lock(context.Background(), cr.ID, "")
	require.NoError(t, err)
	rr = do(t, s, "POST", "/games/"+cr.ID+"/move", `{"move": "up"}`)
	require.Equal(t, http.StatusConflict, rr.Code)
}

func TestMoveRateLimited(t *testing.T) {
	s := createAPIServer()
	cr := createGame(t, s)
	s.limiter = newMoveLimiter(0, 0)

	rr := do(t, s, "POST", "/games/"+cr.ID+"/move", `{"move": "up"}`)
	require.Equal(t, http.StatusTooManyRequests, rr.Code)
}

func TestMoveRateLimitedPerGame(t *testing.T) {
	s := createAPIServer()
	first := createGame(t, s)
	second := createGame(t, s)
	s.limiter = newMoveLimiter(0, 1)

	rr := do(t, s, "POST", "/games/"+first.ID+"/move", `{"move": "up"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	rr = do(t, s, "POST", "/games/"+first.ID+"/move", `{"move": "up"}`)
	require.Equal(t, http.StatusTooManyRequests, rr.Code)

	rr = do(t, s, "POST", "/games/"+second.ID+"/move", `{"move": "up"}`)
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestMoveLimiterPrunesIdleGames(t *testing.T) {
	l := newMoveLimiter(rate.Inf, 1)
	require.True(t, l.Allow("a"))
	require.Len(t, l.games, 1)

	l.games["a"].seen = time.Now().Add(-2 * limiterIdle)
	l.pruned = time.Now().Add(-2 * limiterIdle)
	require.True(t, l.Allow("b"))
	require.Len(t, l.games, 1)
	require.Contains(t, l.games, "b")
}

func TestMoveBoardFull(t *testing.T) {
	s := createAPIServer()
	ctx := context.Background()

	g := &rules.Game{ID: "full", Width: 3, Height: 3, Status: rules.GameStatusRunning}
	f := &rules.Frame{
		Head: rules.Point{X: 1, Y: 2},
		Body: []rules.Point{
			{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0},
			{X: 2, Y: 1}, {X: 1, Y: 1}, {X: 0, Y: 1},
			{X: 0, Y: 2},
		},
		Heading: rules.DirectionRight,
		Food:    &rules.Point{X: 2, Y: 2},
	}
	require.NoError(t, s.ctrl.Store.CreateGame(ctx, g, []*rules.Frame{f}))

	rr := do(t, s, "POST", "/games/full/move", `{"move": "right"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	mr := &MoveResponse{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), mr))
	require.True(t, mr.BoardFull)
	require.Nil(t, mr.Frame.Food)
	require.Len(t, mr.Segments, 9)
}

func TestListFrames(t *testing.T) {
	s := createAPIServer()
	cr := createGame(t, s)

	for i := 0; i < 2; i++ {
		rr := do(t, s, "POST", "/games/"+cr.ID+"/move", `{"move": "down"}`)
		require.Equal(t, http.StatusOK, rr.Code)
	}

	rr := do(t, s, "GET", "/games/"+cr.ID+"/frames", "")
	require.Equal(t, http.StatusOK, rr.Code)
	fr := &FramesResponse{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), fr))
	require.Len(t, fr.Frames, 3)

	rr = do(t, s, "GET", "/games/"+cr.ID+"/frames?offset=-1&limit=1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), fr))
	require.Len(t, fr.Frames, 1)
	require.Equal(t, int64(2), fr.Frames[0].Turn)

	rr = do(t, s, "GET", "/games/"+cr.ID+"/frames?offset=10", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, `{"frames":[]}`, strings.TrimSpace(rr.Body.String()))

	rr = do(t, s, "GET", "/games/"+cr.ID+"/frames?limit=x", "")
	require.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, s, "GET", "/games/missing/frames", "")
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCORS(t *testing.T) {
	s := createAPIServer()

	req, err := http.NewRequest("GET", "/games/missing", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://example.com")
	rr := httptest.NewRecorder()
	s.hs.Handler.ServeHTTP(rr, req)

	require.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestFramesSocket(t *testing.T) {
	s := createAPIServer()
	cr := createGame(t, s)

	// Run into the top wall: 3 moves and a death.
	for i := 0; i < 4; i++ {
		rr := do(t, s, "POST", "/games/"+cr.ID+"/move", `{"move": "up"}`)
		require.Equal(t, http.StatusOK, rr.Code)
	}

	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/socket/" + cr.ID
	c, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer c.Close()

	var frames []*rules.Frame
	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			require.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), err.Error())
			break
		}
		require.Equal(t, websocket.TextMessage, mt)
		f := &rules.Frame{}
		require.NoError(t, json.Unmarshal(message, f))
		frames = append(frames, f)
	}

	require.Len(t, frames, 5)
	for i, f := range frames {
		require.Equal(t, int64(i), f.Turn)
	}
	require.NotNil(t, frames[4].Death)
}

func TestFramesSocketNotFound(t *testing.T) {
	s := createAPIServer()
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/socket/missing"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
