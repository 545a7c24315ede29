package pinata

import (
	"context"
	"fmt"
	"strings"

	"github.com/ipasset-labs/nft-minter/internal/adapter"
	"github.com/ipasset-labs/nft-minter/internal/content"
)

const pinJSONPath = "/pinning/pinJSONToIPFS"

// Config holds the Pinata API configuration
type Config struct {
	APIURL string
	JWT    string
}

type client struct {
	apiURL string
	jwt    string
	http   adapter.HTTPClient
}

// NewClient creates a Pinata-backed content store
func NewClient(cfg Config, httpClient adapter.HTTPClient) content.Store {
	return &client{
		apiURL: strings.TrimSuffix(cfg.APIURL, "/"),
		jwt:    cfg.JWT,
		http:   httpClient,
	}
}

// pinJSONRequest is the pinJSONToIPFS request body
type pinJSONRequest struct {
	PinataContent  interface{}    `json:"pinataContent"`
	PinataMetadata pinataMetadata `json:"pinataMetadata"`
}

type pinataMetadata struct {
	Name string `json:"name"`
}

// pinJSONResponse is the pinJSONToIPFS response body
type pinJSONResponse struct {
	IpfsHash  string `json:"IpfsHash"`
	PinSize   int64  `json:"PinSize"`
	Timestamp string `json:"Timestamp"`
}

// Publish pins a JSON document via pinJSONToIPFS and returns its CID
func (c *client) Publish(ctx context.Context, name string, doc interface{}) (string, error) {
	payload := pinJSONRequest{
		PinataContent:  doc,
		PinataMetadata: pinataMetadata{Name: name},
	}
	headers := map[string]string{
		"Authorization": "Bearer " + c.jwt,
	}

	var resp pinJSONResponse
	if err := c.http.PostJSON(ctx, c.apiURL+pinJSONPath, headers, payload, &resp); err != nil {
		return "", fmt.Errorf("failed to pin content: %w", err)
	}
	if resp.IpfsHash == "" {
		return "", fmt.Errorf("pinata returned an empty CID")
	}

	return resp.IpfsHash, nil
}
