package parser

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/exp/slog"

	. "github.com/DDugDDag/find-route/util"
)

const (
	DefaultAPIBaseURL = "https://apis.data.go.kr/6300000/"

	bike_route_endpoint   = "GetBycpListService/getBycpList"
	bike_storage_endpoint = "GetBystListService/getBystList"
)

//*******************************************
// open-api client
//*******************************************

// APIClient fetches the Daejeon bike-path and bike-storage datasets from
// the public open-data services.
type APIClient struct {
	base_url    string
	service_key string
	client      *http.Client
}

func NewAPIClient(base_url, service_key string) *APIClient {
	return &APIClient{
		base_url:    base_url,
		service_key: service_key,
		client:      &http.Client{Timeout: 30 * time.Second},
	}
}

// GetBikeRoutes fetches one page of bike-path segments.
func (self *APIClient) GetBikeRoutes(ctx context.Context, page_no, num_of_rows int) (List[BikeRouteRecord], error) {
	return fetch_items[BikeRouteRecord](ctx, self, bike_route_endpoint, page_no, num_of_rows)
}

// GetBikeStorages fetches one page of bike storages.
func (self *APIClient) GetBikeStorages(ctx context.Context, page_no, num_of_rows int) (List[BikeStorageRecord], error) {
	return fetch_items[BikeStorageRecord](ctx, self, bike_storage_endpoint, page_no, num_of_rows)
}

func fetch_items[T any](ctx context.Context, client *APIClient, endpoint string, page_no, num_of_rows int) (List[T], error) {
	url := fmt.Sprintf("%s%s?serviceKey=%s&pageNo=%d&numOfRows=%d&type=json",
		client.base_url, endpoint, client.service_key, page_no, num_of_rows)

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	response, err := client.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", endpoint, err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request %s: status %d", endpoint, response.StatusCode)
	}
	data, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}

	var envelope api_envelope[T]
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("decode %s: %w", endpoint, err)
	}
	items := envelope.items()
	slog.Debug("fetched open-api page", "endpoint", endpoint, "page", page_no, "items", items.Length())
	return items, nil
}
