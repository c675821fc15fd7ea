package services

import (
	"fmt"
	"os"
	"time"

	"github.com/fabriciomourateam/controle-de-pacientes-sub007/models"

	"github.com/go-resty/resty/v2"
)

// RemoteCatalog implements CatalogLookup against a separately hosted food
// catalog service. Selected when CATALOG_URL is set; otherwise the
// database-backed CatalogService is used.
type RemoteCatalog struct {
	client  *resty.Client
	baseURL string
}

func NewRemoteCatalog() *RemoteCatalog {
	return &RemoteCatalog{
		client: resty.New().
			SetTimeout(10 * time.Second).
			SetHeader("Accept", "application/json").
			SetAuthToken(os.Getenv("CATALOG_API_TOKEN")),
		baseURL: os.Getenv("CATALOG_URL"),
	}
}

type catalogBatchResponse struct {
	Foods []models.CatalogFood `json:"foods"`
}

func (r *RemoteCatalog) FindByNames(names []string) (map[string]models.CatalogFood, error) {
	out := make(map[string]models.CatalogFood, len(names))
	if len(names) == 0 {
		return out, nil
	}

	var body catalogBatchResponse
	resp, err := r.client.R().
		SetBody(map[string]any{"names": names, "active_only": true}).
		SetResult(&body).
		Post(r.baseURL + "/foods/batch")
	if err != nil {
		return nil, fmt.Errorf("catalog batch lookup failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("catalog batch lookup error %d: %s", resp.StatusCode(), resp.String())
	}

	for _, f := range body.Foods {
		if f.Active {
			out[f.Name] = f
		}
	}
	return out, nil
}

func (r *RemoteCatalog) FindSimilar(excluding string) ([]models.CatalogFood, error) {
	var body catalogBatchResponse
	resp, err := r.client.R().
		SetQueryParam("excluding", excluding).
		SetQueryParam("active_only", "true").
		SetResult(&body).
		Get(r.baseURL + "/foods")
	if err != nil {
		return nil, fmt.Errorf("catalog list failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("catalog list error %d: %s", resp.StatusCode(), resp.String())
	}

	foods := make([]models.CatalogFood, 0, len(body.Foods))
	for _, f := range body.Foods {
		if f.Active && f.Name != excluding {
			foods = append(foods, f)
		}
	}
	return foods, nil
}
