package espn_client

import (
	"github.com/mcdev12/bowlpool/go/clients"
)

type ESPNClient struct {
	*clients.BaseClient
}

// NewESPNClient creates a client for the public ESPN site API. An empty baseURL uses BaseURL.
func NewESPNClient(baseURL string) *ESPNClient {
	if baseURL == "" {
		baseURL = BaseURL
	}
	client := &ESPNClient{
		BaseClient: clients.NewBaseClient(baseURL),
	}

	client.SetHeader("Accept", "application/json")

	return client
}
