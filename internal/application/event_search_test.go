package application

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/planning-backend/internal/domain/entity"
)

func TestEventSearch_DisabledWithoutClient(t *testing.T) {
	s := NewEventSearch(nil, "events", nil)
	s.IndexEvent(context.Background(), &entity.Event{ID: "e1"})

	got, err := s.Search(context.Background(), "training", 5)
	require.NoError(t, err)
	assert.Empty(t, got)

	var nilSearch *EventSearch
	nilSearch.IndexEvent(context.Background(), &entity.Event{ID: "e1"})
}

func TestEventDocument_OmitsStorageKey(t *testing.T) {
	e := &entity.Event{Key: "k1", ID: "e1", Date: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), Team: "Blue"}
	b, err := json.Marshal(newEventDocument(e))
	require.NoError(t, err)

	assert.NotContains(t, string(b), `"_id"`)
	assert.Contains(t, string(b), `"id":"e1"`)

	var back entity.Event
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, "Blue", back.Team)
}

func TestSearchQuery(t *testing.T) {
	q := searchQuery("pool", 7)
	assert.Equal(t, 7, q["size"])
	mm := q["query"].(map[string]any)["multi_match"].(map[string]any)
	assert.Equal(t, "pool", mm["query"])
	assert.Contains(t, mm["fields"], "team")
}

func TestEventSearch_EnsureIndexDisabled(t *testing.T) {
	assert.NoError(t, NewEventSearch(nil, "events", nil).EnsureIndex(context.Background()))
}

func TestEventsMapping_IsValidJSON(t *testing.T) {
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(eventsMapping), &m))
	props := m["mappings"].(map[string]any)["properties"].(map[string]any)
	assert.Equal(t, "date", props["date"].(map[string]any)["type"])
}
