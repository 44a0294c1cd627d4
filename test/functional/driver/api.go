package driver

import (
	"bytes"
	"fmt"
	"net/http"
)

type APIDriver struct {
	baseURL string
	client  *http.Client
}

func NewAPIDriver(baseURL string) *APIDriver {
	return &APIDriver{
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

func (d *APIDriver) BaseURL() string {
	return d.baseURL
}

func (d *APIDriver) GetHealthz() (*http.Response, error) {
	return d.client.Get(fmt.Sprintf("%s/healthz", d.baseURL))
}

func (d *APIDriver) ListSensors() (*http.Response, error) {
	return d.client.Get(fmt.Sprintf("%s/sensors", d.baseURL))
}

func (d *APIDriver) ListBoards() (*http.Response, error) {
	return d.client.Get(fmt.Sprintf("%s/boards", d.baseURL))
}

// GenerateCode posts body verbatim so scenarios can send malformed JSON.
func (d *APIDriver) GenerateCode(body []byte) (*http.Response, error) {
	return d.client.Post(fmt.Sprintf("%s/generate-code", d.baseURL), "application/json", bytes.NewBuffer(body))
}

func (d *APIDriver) GetBuild(id string) (*http.Response, error) {
	return d.client.Get(fmt.Sprintf("%s/builds/%s", d.baseURL, id))
}
