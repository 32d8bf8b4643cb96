// Package api exposes the controller over HTTP. Frames can also be streamed
// as they are stored over a websocket.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/battlesnakeio/classic/config"
	"github.com/battlesnakeio/classic/controller"
	"github.com/battlesnakeio/classic/input"
	"github.com/battlesnakeio/classic/rules"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
)

const defaultFrameLimit = 100

// Server is the HTTP front of a controller.
type Server struct {
	hs       *http.Server
	ctrl     *controller.Controller
	limiter  *moveLimiter
	keymap   input.Keymap
	upgrader websocket.Upgrader
}

// New creates a server listening on addr. Nothing is served until
// WaitForExit is called.
func New(addr string, ctrl *controller.Controller) *Server {
	s := &Server{
		ctrl:    ctrl,
		limiter: newMoveLimiter(config.MoveRate, config.MoveBurstRate),
		keymap:  input.DefaultKeymap,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}

	router := httprouter.New()
	router.POST("/games", s.createGame)
	router.GET("/games/:id", s.gameStatus)
	router.POST("/games/:id/move", s.move)
	router.GET("/games/:id/frames", s.listFrames)
	router.GET("/socket/:id", s.framesSocket)

	s.hs = &http.Server{
		Addr:    addr,
		Handler: cors.Default().Handler(router),
	}
	return s
}

// Handler returns the http handler of the server.
func (s *Server) Handler() http.Handler {
	return s.hs.Handler
}

// WaitForExit serves until the server fails.
func (s *Server) WaitForExit() error {
	log.WithField("listen", s.hs.Addr).Info("classic api listening")
	return s.hs.ListenAndServe()
}

// CreateResponse is returned for a new game.
type CreateResponse struct {
	ID    string       `json:"id"`
	Game  *rules.Game  `json:"game"`
	Frame *rules.Frame `json:"frame"`
}

// StatusResponse describes a game and its current frame.
type StatusResponse struct {
	Game     *rules.Game     `json:"game"`
	Frame    *rules.Frame    `json:"frame"`
	Segments []rules.Segment `json:"segments"`
}

// MoveRequest carries a raw input name, see input.DefaultKeymap. Unknown
// names are treated as no input.
type MoveRequest struct {
	Move string `json:"move"`
}

// MoveResponse is the frame after a move and what the move did.
type MoveResponse struct {
	Frame     *rules.Frame      `json:"frame"`
	Outcome   rules.MoveOutcome `json:"outcome"`
	Segments  []rules.Segment   `json:"segments"`
	BoardFull bool              `json:"board_full"`
}

// FramesResponse is a page of stored frames.
type FramesResponse struct {
	Frames []*rules.Frame `json:"frames"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) createGame(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	cfg := rules.Config{}
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(err, "invalid create request"))
		return
	}

	game, frame, err := s.ctrl.Create(r.Context(), cfg)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &CreateResponse{ID: game.ID, Game: game, Frame: frame})
}

func (s *Server) gameStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	game, frame, err := s.ctrl.Status(r.Context(), ps.ByName("id"))
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &StatusResponse{
		Game:     game,
		Frame:    frame,
		Segments: rules.Segments(frame),
	})
}

func (s *Server) move(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if !s.limiter.Allow(ps.ByName("id")) {
		writeError(w, http.StatusTooManyRequests, errors.New("too many moves"))
		return
	}

	req := MoveRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(err, "invalid move request"))
		return
	}

	frame, outcome, err := s.ctrl.Move(r.Context(), ps.ByName("id"), s.keymap.Lookup(req.Move))
	boardFull := errors.Cause(err) == rules.ErrBoardFull
	if err != nil && !boardFull {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &MoveResponse{
		Frame:     frame,
		Outcome:   outcome,
		Segments:  rules.Segments(frame),
		BoardFull: boardFull,
	})
}

func (s *Server) listFrames(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	limit, err := queryInt(r, "limit", defaultFrameLimit)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	frames, err := s.ctrl.Frames(r.Context(), ps.ByName("id"), limit, offset)
	if err != nil {
		handleError(w, err)
		return
	}
	if frames == nil {
		frames = []*rules.Frame{}
	}
	writeJSON(w, http.StatusOK, &FramesResponse{Frames: frames})
}

// framesSocket streams every frame of a game, old and new, as JSON text
// messages. The socket is closed normally once the game is over and its last
// frame has been sent.
func (s *Server) framesSocket(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	ctx := r.Context()
	if _, err := s.ctrl.Store.GetGame(ctx, id); err != nil {
		handleError(w, err)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).WithField("game", id).Warn("unable to upgrade connection")
		return
	}
	defer func() {
		if err := conn.Close(); err != nil {
			log.WithError(err).Debug("unable to close websocket")
		}
	}()

	// The client never sends anything, reading only notices it going away.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	offset := 0
	for {
		// Status is read first so that a finished game has all of its frames
		// stored by the time they are listed.
		game, err := s.ctrl.Store.GetGame(ctx, id)
		if err != nil {
			closeSocket(conn, websocket.CloseInternalServerErr, err)
			return
		}
		frames, err := s.ctrl.Frames(ctx, id, defaultFrameLimit, offset)
		if err != nil {
			closeSocket(conn, websocket.CloseInternalServerErr, err)
			return
		}
		for _, f := range frames {
			if err := conn.WriteJSON(f); err != nil {
				log.WithError(err).WithField("game", id).Debug("websocket write failed")
				return
			}
		}
		offset += len(frames)

		if len(frames) == 0 && game.Status != rules.GameStatusRunning {
			closeSocket(conn, websocket.CloseNormalClosure, nil)
			return
		}
		if len(frames) > 0 {
			continue
		}

		select {
		case <-gone:
			return
		case <-time.After(config.SocketPollInterval):
		}
	}
}

func closeSocket(conn *websocket.Conn, code int, err error) {
	text := ""
	if err != nil {
		text = err.Error()
	}
	msg := websocket.FormatCloseMessage(code, text)
	if err := conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second)); err != nil {
		log.WithError(err).Debug("unable to send close message")
	}
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s", name)
	}
	return i, nil
}

func handleError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.Cause(err) {
	case controller.ErrNotFound:
		status = http.StatusNotFound
	case controller.ErrIsLocked, rules.ErrInvalidState:
		status = http.StatusConflict
	case rules.ErrConfiguration:
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		log.WithError(err).Error("request failed")
	}
	writeError(w, status, err)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, &errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("unable to write response")
	}
}
