// Package carma talks to the CARMA carrier registry, a third-party XML
// lookup service used to reconcile operator records.
package carma

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"time"
)

const requestTimeout = 10 * time.Second

// Carrier is one registry record
type Carrier struct {
	DisplayName string `xml:"DisplayName"`
	CarrierCode string `xml:"CarrierCode"`
}

type carrierListRequest struct {
	XMLName xml.Name `xml:"CarrierListRequest"`
}

type carrierListResponse struct {
	XMLName  xml.Name  `xml:"CarrierListResponse"`
	Carriers []Carrier `xml:"Carriers>Carrier"`
}

// Client requests carrier records from the registry endpoint
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a registry client for the given endpoint
func NewClient(endpoint string) *Client {
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// ListCarriers fetches the full carrier list from the registry
func (c *Client) ListCarriers(ctx context.Context) ([]Carrier, error) {
	body, err := xml.Marshal(carrierListRequest{})
	if err != nil {
		return nil, fmt.Errorf("failed to build carrier request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create carrier request: %w", err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("carrier registry request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("carrier registry returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read carrier response: %w", err)
	}

	var parsed carrierListResponse
	if err := xml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse carrier response: %w", err)
	}
	return parsed.Carriers, nil
}
