package content

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/padelcoach/padelcoach/internal/config"
	log "github.com/sirupsen/logrus"
)

const (
	moduleContentType   = "module"
	exerciseContentType = "exercise"

	// Content Delivery API page size. The catalog is small (tens of
	// entries) but the client still pages defensively.
	pageLimit = 1000
)

// Client talks to the content delivery service (Contentful CDA). It is
// constructed once with explicit configuration and injected into its
// consumers; no module-level state.
type Client struct {
	httpClient  *http.Client
	baseUrl     string
	spaceId     string
	environment string
	accessToken string
}

func NewClient(cfg config.Content) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		baseUrl:     cfg.BaseUrl,
		spaceId:     cfg.SpaceId,
		environment: cfg.Environment,
		accessToken: cfg.AccessToken,
	}
}

type entrySys struct {
	Id string `json:"id"`
}

type assetLink struct {
	Sys entrySys `json:"sys"`
}

type assetFile struct {
	Url         string `json:"url"`
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
}

type asset struct {
	Sys    entrySys `json:"sys"`
	Fields struct {
		Title string    `json:"title"`
		File  assetFile `json:"file"`
	} `json:"fields"`
}

type entry struct {
	Sys    entrySys        `json:"sys"`
	Fields json.RawMessage `json:"fields"`
}

type entriesResponse struct {
	Total    int     `json:"total"`
	Skip     int     `json:"skip"`
	Limit    int     `json:"limit"`
	Items    []entry `json:"items"`
	Includes struct {
		Asset []asset `json:"Asset"`
	} `json:"includes"`
}

type moduleFields struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Level        string     `json:"level"`
	Duration     int        `json:"duration"`
	Topics       []string   `json:"topics"`
	Content      string     `json:"content"`
	Presentation *assetLink `json:"presentation"`
	Document     *assetLink `json:"document"`
}

type exerciseFields struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Media       *assetLink `json:"media"`
}

// ListAllModules fetches every published module entry.
func (c *Client) ListAllModules(ctx context.Context) ([]Module, error) {
	var modules []Module
	err := c.fetchAll(ctx, moduleContentType, func(e entry, assets map[string]asset) error {
		var fields moduleFields
		if err := json.Unmarshal(e.Fields, &fields); err != nil {
			return fmt.Errorf("could not decode module entry %s: %w", e.Sys.Id, err)
		}
		modules = append(modules, Module{
			ExternalId:      e.Sys.Id,
			Title:           fields.Title,
			Description:     fields.Description,
			Level:           Level(fields.Level),
			DurationMinutes: fields.Duration,
			Topics:          fields.Topics,
			Content:         fields.Content,
			Presentation:    resolveAsset(fields.Presentation, assets),
			Document:        resolveAsset(fields.Document, assets),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return modules, nil
}

// ListAllExercises fetches every published exercise entry.
func (c *Client) ListAllExercises(ctx context.Context) ([]Exercise, error) {
	var exercises []Exercise
	err := c.fetchAll(ctx, exerciseContentType, func(e entry, assets map[string]asset) error {
		var fields exerciseFields
		if err := json.Unmarshal(e.Fields, &fields); err != nil {
			return fmt.Errorf("could not decode exercise entry %s: %w", e.Sys.Id, err)
		}
		exercises = append(exercises, Exercise{
			ExternalId:  e.Sys.Id,
			Title:       fields.Title,
			Description: fields.Description,
			Media:       resolveAsset(fields.Media, assets),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return exercises, nil
}

// fetchAll pages through all entries of a content type, passing each entry
// together with the page's linked assets to the mapping callback.
func (c *Client) fetchAll(ctx context.Context, contentType string, mapEntry func(entry, map[string]asset) error) error {
	skip := 0
	for {
		page, err := c.fetchPage(ctx, contentType, skip)
		if err != nil {
			return err
		}

		assets := make(map[string]asset, len(page.Includes.Asset))
		for _, a := range page.Includes.Asset {
			assets[a.Sys.Id] = a
		}
		for _, e := range page.Items {
			if err := mapEntry(e, assets); err != nil {
				return err
			}
		}

		skip += len(page.Items)
		if skip >= page.Total || len(page.Items) == 0 {
			return nil
		}
	}
}

func (c *Client) fetchPage(ctx context.Context, contentType string, skip int) (entriesResponse, error) {
	query := url.Values{}
	query.Set("access_token", c.accessToken)
	query.Set("content_type", contentType)
	query.Set("include", "1")
	query.Set("limit", strconv.Itoa(pageLimit))
	query.Set("skip", strconv.Itoa(skip))

	requestUrl := fmt.Sprintf("%s/spaces/%s/environments/%s/entries?%s",
		strings.TrimSuffix(c.baseUrl, "/"), c.spaceId, c.environment, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestUrl, nil)
	if err != nil {
		return entriesResponse{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Errorf("content service request failed: %v", err)
		return entriesResponse{}, fmt.Errorf("content service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("content service returned non-OK status: %d", resp.StatusCode)
		log.Error(err)
		return entriesResponse{}, err
	}

	var page entriesResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return entriesResponse{}, fmt.Errorf("could not decode content service response: %w", err)
	}
	return page, nil
}

func resolveAsset(link *assetLink, assets map[string]asset) *Attachment {
	if link == nil {
		return nil
	}
	a, ok := assets[link.Sys.Id]
	if !ok {
		// Unpublished or missing asset: the entry still renders, just
		// without the attachment.
		log.Debugf("asset %s not present in includes", link.Sys.Id)
		return nil
	}
	return &Attachment{
		Title:       a.Fields.Title,
		Url:         a.Fields.File.Url,
		FileName:    a.Fields.File.FileName,
		ContentType: a.Fields.File.ContentType,
	}
}
