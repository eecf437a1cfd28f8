package edge

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchAssignments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/controllers/ctrl-1/trains", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{
			"id": "train-1",
			"name": "Blue Switcher",
			"controller_id": "ctrl-1",
			"plugin_name": "simulated_dc",
			"plugin_config": {"supply_voltage": 16},
			"invert_directions": true
		}]`))
	}))
	defer server.Close()

	assignments, err := FetchAssignments(context.Background(), server.URL, "ctrl-1")
	require.NoError(t, err)
	require.Len(t, assignments, 1)

	assert.Equal(t, "train-1", assignments[0].TrainID)
	assert.Equal(t, "simulated_dc", assignments[0].PluginName)
	assert.True(t, assignments[0].InvertDirections)
	assert.JSONEq(t, `{"supply_voltage": 16}`, string(assignments[0].PluginConfig))
}

func TestFetchAssignmentsUnknownController(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "Controller not found", http.StatusNotFound)
	}))
	defer server.Close()

	_, err := FetchAssignments(context.Background(), server.URL, "stray")
	assert.ErrorIs(t, err, errAssignmentFetch)
}

func TestFetchAssignmentsCoreUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	_, err := FetchAssignments(context.Background(), server.URL, "ctrl-1")
	assert.ErrorIs(t, err, errAssignmentFetch)
}
