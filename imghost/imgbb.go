package imghost

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Uploader stores one image and returns its public URL.
type Uploader interface {
	Upload(name string, data []byte) (string, error)
}

type ImgbbClient struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
}

func NewImgbbClient(apiKey string) *ImgbbClient {
	return &ImgbbClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    "https://api.imgbb.com/1/upload",
	}
}

type imgbbResponse struct {
	Success bool `json:"success"`
	Status  int  `json:"status"`
	Data    struct {
		URL string `json:"url"`
	} `json:"data"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *ImgbbClient) Upload(name string, data []byte) (string, error) {
	form := url.Values{}
	form.Set("key", c.apiKey)
	form.Set("name", name)
	form.Set("image", base64.StdEncoding.EncodeToString(data))

	resp, err := c.httpClient.Post(c.baseURL, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("imgbb upload failed: %w", err)
	}
	defer resp.Body.Close()

	var body imgbbResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("imgbb returned unreadable response: %w", err)
	}
	if !body.Success || body.Data.URL == "" {
		if body.Error.Message != "" {
			return "", fmt.Errorf("imgbb rejected upload: %s", body.Error.Message)
		}
		return "", fmt.Errorf("imgbb rejected upload with status %d", resp.StatusCode)
	}
	return body.Data.URL, nil
}
