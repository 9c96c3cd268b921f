package ner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/getzep/nerlog/internal"
	"github.com/getzep/nerlog/pkg/models"
)

var log = internal.GetLogger()

var _ models.Annotator = &NLPServerAnnotator{}

// NLPServerAnnotator calls a spaCy-backed NLP server over HTTP.
type NLPServerAnnotator struct {
	serverURL string
	language  string
	client    *http.Client
}

func NewNLPServerAnnotator(serverURL, language string, client *http.Client) *NLPServerAnnotator {
	if language == "" {
		language = "en"
	}
	return &NLPServerAnnotator{
		serverURL: strings.TrimRight(serverURL, "/"),
		language:  language,
		client:    client,
	}
}

func (a *NLPServerAnnotator) Name() string { return "nlp_server" }

// Annotate posts the text to /entities and flattens the grouped response into document order.
func (a *NLPServerAnnotator) Annotate(ctx context.Context, text string) ([]models.Entity, error) {
	recordID := uuid.NewString()
	requestBody := models.EntityRequest{
		Texts: []models.EntityRequestRecord{{
			UUID:     recordID,
			Text:     text,
			Language: a.language,
		}},
	}
	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		a.serverURL+"/entities",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("entity request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read entity response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(
			"entity request returned %d: %s",
			resp.StatusCode,
			truncate(string(bodyBytes), 200),
		)
	}

	var response models.EntityResponse
	if err := json.Unmarshal(bodyBytes, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal entity response: %w", err)
	}

	for _, r := range response.Texts {
		if r.UUID == recordID {
			return flattenEntities(r.Entities), nil
		}
	}
	if len(response.Texts) == 1 {
		log.Warnf("entity response uuid %q does not match request %q", response.Texts[0].UUID, recordID)
		return flattenEntities(response.Texts[0].Entities), nil
	}
	return nil, fmt.Errorf("entity response has no record for request %s", recordID)
}

// Ready checks that the server answers its health endpoint.
func (a *NLPServerAnnotator) Ready(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.serverURL+"/healthz", nil)
	if err != nil {
		return err
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned %d", resp.StatusCode)
	}
	return nil
}

type positioned struct {
	entity models.Entity
	start  int
}

// flattenEntities emits one entity per match, ordered by where the match starts. Records that
// carry no match offsets keep their relative order after every positioned match.
func flattenEntities(records []models.EntityRecord) []models.Entity {
	var spans []positioned
	var unplaced []models.Entity
	for _, r := range records {
		if len(r.Matches) == 0 {
			unplaced = append(unplaced, models.Entity{Text: r.Name, Label: r.Label})
			continue
		}
		for _, m := range r.Matches {
			text := m.Text
			if text == "" {
				text = r.Name
			}
			spans = append(spans, positioned{
				entity: models.Entity{Text: text, Label: r.Label},
				start:  m.Start,
			})
		}
	}
	sort.SliceStable(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	entities := make([]models.Entity, 0, len(spans)+len(unplaced))
	for _, s := range spans {
		entities = append(entities, s.entity)
	}
	return append(entities, unplaced...)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
