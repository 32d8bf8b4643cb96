package commands

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/battlesnakeio/classic/controller/filestore"
	"github.com/battlesnakeio/classic/render"
	"github.com/battlesnakeio/classic/rules"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var archiveDir string

func init() {
	replayCmd.Flags().StringVarP(&gameID, "game-id", "g", "", "the game id of the game to replay")
	replayCmd.Flags().StringVar(&archiveDir, "archive-dir", "", "read the game from this file store directory instead of the api")
}

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "prints every frame of an existing game",
	Args:  requireGameID,
	Run: func(*cobra.Command, []string) {
		game, frames, err := loadGame()
		if err != nil {
			fmt.Println(err)
			return
		}
		for _, f := range frames {
			fmt.Println(render.Frame(game.Board(), f))
		}
	},
}

func loadGame() (*rules.Game, []*rules.Frame, error) {
	if archiveDir != "" {
		return filestore.ReadGame(archiveDir, gameID)
	}

	sr, err := getStatus(gameID)
	if err != nil {
		return nil, nil, err
	}
	frames, err := streamFrames(gameID)
	if err != nil {
		return nil, nil, err
	}
	return sr.Game, frames, nil
}

// streamFrames reads the frame socket until the server closes it. A game
// that is still running is followed until it ends.
func streamFrames(id string) ([]*rules.Frame, error) {
	u := url.URL{
		Scheme: "ws",
		Host:   strings.Replace(apiAddr, "http://", "", 1),
		Path:   fmt.Sprintf("/socket/%s", id),
	}
	log.WithField("url", u.String()).Debug("connecting to frame socket")

	c, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "dial")
	}
	defer func() {
		if err := c.Close(); err != nil {
			log.WithError(err).Warn("failure to close websocket connection")
		}
	}()

	var frames []*rules.Frame
	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return frames, nil
			}
			return frames, errors.Wrap(err, "read")
		}

		switch mt {
		case websocket.TextMessage:
			frame := &rules.Frame{}
			if err := json.Unmarshal(message, frame); err != nil {
				return frames, errors.Wrap(err, "unmarshal frame")
			}
			frames = append(frames, frame)
		default:
			log.WithField("type", mt).Warn("unhandled message type")
		}
	}
}
