package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
}

func apiError(resp *http.Response, data []byte) error {
	e := struct {
		Error string `json:"error"`
	}{}
	if err := json.Unmarshal(data, &e); err != nil || e.Error == "" {
		return errors.Errorf("api returned %s", resp.Status)
	}
	return errors.Errorf("api returned %s: %s", resp.Status, e.Error)
}

func decodeResponse(resp *http.Response, out interface{}) error {
	defer resp.Body.Close()

	data, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "unable to read response body")
	}
	if resp.StatusCode != http.StatusOK {
		return apiError(resp, data)
	}
	return errors.Wrap(json.Unmarshal(data, out), "unable to unmarshal response")
}

func getJSON(path string, out interface{}) error {
	resp, err := httpClient.Get(fmt.Sprintf("%s%s", apiAddr, path))
	if err != nil {
		return errors.Wrapf(err, "error while getting %s", path)
	}
	return decodeResponse(resp, out)
}

func postJSON(path string, in, out interface{}) error {
	data, err := json.Marshal(in)
	if err != nil {
		return errors.Wrap(err, "unable to marshal request")
	}
	resp, err := httpClient.Post(fmt.Sprintf("%s%s", apiAddr, path), "application/json", bytes.NewBuffer(data))
	if err != nil {
		return errors.Wrapf(err, "error while posting to %s", path)
	}
	return decodeResponse(resp, out)
}
