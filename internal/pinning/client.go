package pinning

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gitlab.com/cptmarket/rental-router/internal/lib"
)

var ErrUploadFailed = errors.New("pinning upload failed")

// PinResult identifies pinned content on the network and through the
// configured HTTP gateway.
type PinResult struct {
	CID string
	URL string
}

type Client struct {
	endpoint   string
	gatewayURL string
	apiToken   string
	httpClient *http.Client
}

func NewClient(endpoint, gatewayURL, apiToken string) *Client {
	return &Client{
		endpoint:   strings.TrimRight(endpoint, "/"),
		gatewayURL: strings.TrimRight(gatewayURL, "/"),
		apiToken:   apiToken,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type pinResponse struct {
	IpfsHash string `json:"IpfsHash"`
}

// PinJSON pins an arbitrary JSON document and returns its content identifier.
func (c *Client) PinJSON(ctx context.Context, content interface{}) (*PinResult, error) {
	if c.apiToken == "" {
		return nil, lib.WrapError(ErrUploadFailed, errors.New("missing api token"))
	}

	payload, err := json.Marshal(map[string]interface{}{"pinataContent": content})
	if err != nil {
		return nil, lib.WrapError(ErrUploadFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/pinning/pinJSONToIPFS", bytes.NewReader(payload))
	if err != nil {
		return nil, lib.WrapError(ErrUploadFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

// PinFile uploads a local file as a multipart form and pins it.
func (c *Client) PinFile(ctx context.Context, path string) (*PinResult, error) {
	if c.apiToken == "" {
		return nil, lib.WrapError(ErrUploadFailed, errors.New("missing api token"))
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, lib.WrapError(ErrUploadFailed, err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, lib.WrapError(ErrUploadFailed, err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, lib.WrapError(ErrUploadFailed, err)
	}
	if err := writer.Close(); err != nil {
		return nil, lib.WrapError(ErrUploadFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/pinning/pinFileToIPFS", &body)
	if err != nil {
		return nil, lib.WrapError(ErrUploadFailed, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.do(req)
}

func (c *Client) do(req *http.Request) (*PinResult, error) {
	req.Header.Set("Authorization", "Bearer "+c.apiToken)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, lib.WrapError(ErrUploadFailed, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
		return nil, lib.WrapError(ErrUploadFailed, fmt.Errorf("status %d: %s", res.StatusCode, string(msg)))
	}

	var parsed pinResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, lib.WrapError(ErrUploadFailed, err)
	}
	if parsed.IpfsHash == "" {
		return nil, lib.WrapError(ErrUploadFailed, errors.New("response missing content hash"))
	}

	return &PinResult{
		CID: parsed.IpfsHash,
		URL: fmt.Sprintf("%s/ipfs/%s", c.gatewayURL, parsed.IpfsHash),
	}, nil
}
