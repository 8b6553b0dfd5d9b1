package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"pairandomizer-backend/models"
)

// FetchErrorKind classifies catalog fetch failures
type FetchErrorKind string

const (
	FetchNetwork   FetchErrorKind = "network"
	FetchStatus    FetchErrorKind = "status"
	FetchSchema    FetchErrorKind = "schema"
	FetchCancelled FetchErrorKind = "cancelled"
)

// FetchError is returned for any failed catalog request
type FetchError struct {
	Kind       FetchErrorKind
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case FetchStatus:
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
	case FetchCancelled:
		return fmt.Sprintf("fetch %s: cancelled", e.URL)
	default:
		return fmt.Sprintf("fetch %s: %s error: %v", e.URL, e.Kind, e.Err)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// CatalogFetcher retrieves the index and scenario files from a catalog server
type CatalogFetcher struct {
	serverURL string
	client    *http.Client
	validate  *validator.Validate
	logger    *zap.Logger
}

// NewCatalogFetcher creates a fetcher rooted at serverURL
func NewCatalogFetcher(serverURL string, client *http.Client, logger *zap.Logger) *CatalogFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &CatalogFetcher{
		serverURL: strings.TrimRight(serverURL, "/"),
		client:    client,
		validate:  validator.New(),
		logger:    logger,
	}
}

// ServerURL returns the catalog server root
func (f *CatalogFetcher) ServerURL() string {
	return f.serverURL
}

// Wire documents mirror the catalog JSON. Keys that must be present decode
// into pointers so a missing key is told apart from an empty string.
type indexDocument struct {
	ServerName *string                `json:"server_name" validate:"required"`
	Comment    *string                `json:"comment" validate:"required"`
	Scenarios  []scenarioMetaDocument `json:"scenarios" validate:"required,dive"`
	Beta       *scenarioMetaDocument  `json:"beta"`
}

type scenarioMetaDocument struct {
	Name     *string `json:"name" validate:"required"`
	Lang     *string `json:"lang"`
	Filename *string `json:"filename" validate:"required,min=1"`
}

type scenarioDocument struct {
	Scenes []sceneDocument `json:"scenes" validate:"required,dive"`
}

type sceneDocument struct {
	Name     *string  `json:"name" validate:"required"`
	Messages []string `json:"messages" validate:"required"`
}

func (d scenarioMetaDocument) toModel() models.ScenarioMeta {
	return models.ScenarioMeta{Name: *d.Name, Lang: d.Lang, Filename: *d.Filename}
}

// FetchIndex performs GET {server}/res/json/index.json
func (f *CatalogFetcher) FetchIndex(ctx context.Context) (*models.Index, error) {
	var doc indexDocument
	if err := f.getJSON(ctx, f.serverURL+"/res/json/index.json", &doc); err != nil {
		return nil, err
	}

	index := &models.Index{
		ServerName: *doc.ServerName,
		Comment:    *doc.Comment,
		Scenarios:  make([]models.ScenarioMeta, 0, len(doc.Scenarios)),
	}
	for _, meta := range doc.Scenarios {
		index.Scenarios = append(index.Scenarios, meta.toModel())
	}
	if doc.Beta != nil {
		beta := doc.Beta.toModel()
		index.Beta = &beta
	}
	return index, nil
}

// FetchScenario performs GET {server}/res/json/{filename}
func (f *CatalogFetcher) FetchScenario(ctx context.Context, filename string) (*models.Scenario, error) {
	var doc scenarioDocument
	if err := f.getJSON(ctx, f.serverURL+"/res/json/"+filename, &doc); err != nil {
		return nil, err
	}

	scenario := &models.Scenario{Scenes: make([]models.Scene, 0, len(doc.Scenes))}
	for _, scene := range doc.Scenes {
		scenario.Scenes = append(scenario.Scenes, models.Scene{Name: *scene.Name, Messages: scene.Messages})
	}
	return scenario, nil
}

func (f *CatalogFetcher) getJSON(ctx context.Context, url string, v interface{}) error {
	f.logger.Debug("Fetching catalog file", zap.String("url", url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &FetchError{Kind: FetchNetwork, URL: url, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return classifyTransportError(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return &FetchError{Kind: FetchStatus, URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return classifyTransportError(url, err)
	}
	// Unmarshal rejects trailing data after the document
	if err := json.Unmarshal(body, v); err != nil {
		return &FetchError{Kind: FetchSchema, URL: url, Err: err}
	}
	if err := f.validate.Struct(v); err != nil {
		return &FetchError{Kind: FetchSchema, URL: url, Err: err}
	}
	return nil
}

func classifyTransportError(url string, err error) error {
	if errors.Is(err, context.Canceled) {
		return &FetchError{Kind: FetchCancelled, URL: url, Err: err}
	}
	return &FetchError{Kind: FetchNetwork, URL: url, Err: err}
}
