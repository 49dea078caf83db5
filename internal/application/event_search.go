package application

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/planning-backend/internal/domain/entity"
	"github.com/oksasatya/planning-backend/pkg/helpers"
)

const (
	defaultSearchSize = 10
	maxSearchSize     = 50
)

// EventSearch indexes events into Elasticsearch and queries them. A nil
// client disables both: indexing is skipped and searches return nothing.
type EventSearch struct {
	ES     *elasticsearch.Client
	Index  string
	Logger *logrus.Logger
}

func NewEventSearch(es *elasticsearch.Client, index string, logger *logrus.Logger) *EventSearch {
	if logger == nil {
		logger = helpers.NopLogger()
	}
	return &EventSearch{ES: es, Index: index, Logger: logger}
}

func (s *EventSearch) enabled() bool {
	return s != nil && s.ES != nil && s.Index != ""
}

// eventsMapping keeps date sortable and team filterable as a keyword.
const eventsMapping = `{
  "mappings": {
    "properties": {
      "id":          {"type": "keyword"},
      "date":        {"type": "date"},
      "time":        {"type": "keyword"},
      "team":        {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "users":       {"type": "keyword"},
      "title":       {"type": "text"},
      "description": {"type": "text"},
      "comments":    {"type": "keyword"}
    }
  }
}`

// EnsureIndex creates the events index when search is enabled.
func (s *EventSearch) EnsureIndex(ctx context.Context) error {
	if !s.enabled() {
		return nil
	}
	c, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return helpers.ESEnsureIndex(c, s.ES, s.Index, eventsMapping)
}

// IndexEvent stores e under its business id. Failures are logged.
func (s *EventSearch) IndexEvent(ctx context.Context, e *entity.Event) {
	if !s.enabled() {
		return
	}
	b, err := json.Marshal(newEventDocument(e))
	if err != nil {
		s.Logger.WithError(err).WithField("event_id", e.ID).Warn("es marshal failed")
		return
	}
	req := esapi.IndexRequest{Index: s.Index, DocumentID: e.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("event_id", e.ID).Warn("es index failed")
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		s.Logger.WithField("status", res.Status()).WithField("event_id", e.ID).Warn("es index response error")
	}
}

// Search runs a multi_match over title, description and team.
func (s *EventSearch) Search(ctx context.Context, q string, size int) ([]entity.Event, error) {
	if !s.enabled() || strings.TrimSpace(q) == "" {
		return []entity.Event{}, nil
	}
	if size <= 0 || size > maxSearchSize {
		size = defaultSearchSize
	}
	b, err := json.Marshal(searchQuery(q, size))
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.Index), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = res.Body.Close()
	}()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source entity.Event `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]entity.Event, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

// eventDocument is the indexed form of an event. The storage key stays out:
// "_id" is reserved in Elasticsearch sources.
type eventDocument struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	Time        string    `json:"time"`
	Team        string    `json:"team"`
	Users       []string  `json:"users"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Comments    []string  `json:"comments"`
}

func newEventDocument(e *entity.Event) eventDocument {
	return eventDocument{
		ID:          e.ID,
		Date:        e.Date,
		Time:        e.Time,
		Team:        e.Team,
		Users:       e.Users,
		Title:       e.Title,
		Description: e.Description,
		Comments:    e.Comments,
	}
}

func searchQuery(q string, size int) map[string]any {
	return map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "description", "team"},
			},
		},
		"sort": []any{map[string]any{"date": "asc"}},
		"size": size,
	}
}
