// Package e2e plays whole games against a running api.
package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/battlesnakeio/classic/api"
	"github.com/battlesnakeio/classic/rules"
	"github.com/pkg/errors"
)

type client struct {
	apiURL string
	client *http.Client
}

func (c *client) do(method, path string, in, out interface{}) error {
	buf := &bytes.Buffer{}
	if in != nil {
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			return err
		}
	}
	req, err := http.NewRequest(method, fmt.Sprintf("%s%s", c.apiURL, path), buf)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("%s %s: %s", method, path, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *client) beginGame(cfg *rules.Config) (string, error) {
	res := &api.CreateResponse{}
	if err := c.do("POST", "/games", cfg, res); err != nil {
		return "", err
	}
	return res.ID, nil
}

func (c *client) move(gameID, move string) (*api.MoveResponse, error) {
	res := &api.MoveResponse{}
	err := c.do("POST", fmt.Sprintf("/games/%s/move", gameID), &api.MoveRequest{Move: move}, res)
	return res, err
}

func (c *client) gameStatus(gameID string) (*api.StatusResponse, *api.FramesResponse, error) {
	st := &api.StatusResponse{}
	if err := c.do("GET", fmt.Sprintf("/games/%s", gameID), nil, st); err != nil {
		return nil, nil, err
	}
	frames := &api.FramesResponse{}
	if err := c.do("GET", fmt.Sprintf("/games/%s/frames?limit=100000", gameID), nil, frames); err != nil {
		return nil, nil, err
	}
	return st, frames, nil
}
