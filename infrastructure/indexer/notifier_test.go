package indexer

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNotifierDeliversEvents(t *testing.T) {
	var mu sync.Mutex
	var received []Event
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var event Event
		require.NoError(t, json.NewDecoder(r.Body).Decode(&event))
		mu.Lock()
		received = append(received, event)
		mu.Unlock()
	}))
	defer server.Close()

	n := NewNotifier(server.URL, zap.NewNop())
	n.Notify("M1", "created")
	n.Notify("M1", "content")
	n.Close()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, received, 2)
	assert.Equal(t, Event{ManifestationID: "M1", Kind: "created"}, received[0])
	assert.Equal(t, Event{ManifestationID: "M1", Kind: "content"}, received[1])
}

func TestNotifierDisabledDropsEvents(t *testing.T) {
	n := NewNotifier("", zap.NewNop())
	n.Notify("M1", "created")
	n.Close()
}

func TestNotifierSurvivesUnreachableEndpoint(t *testing.T) {
	n := NewNotifier("http://127.0.0.1:1/index", zap.NewNop())
	n.Notify("M1", "created")
	n.Close()
}
