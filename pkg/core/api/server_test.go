package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/railyardhq/railyard/pkg/core"
	"github.com/railyardhq/railyard/pkg/models"
)

func newTestServer(t *testing.T) (*httptest.Server, *core.MockTrainService) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	service := core.NewMockTrainService(ctrl)

	server := httptest.NewServer(NewAPIServer(service).Router())
	t.Cleanup(server.Close)

	return server, service
}

func TestGetTrains(t *testing.T) {
	server, service := newTestServer(t)

	service.EXPECT().ListTrains().Return([]models.Train{
		{ID: "train-1", Name: "Blue Switcher", ControllerID: "ctrl-1"},
	}, nil)

	resp, err := http.Get(server.URL + "/api/trains")
	require.NoError(t, err)

	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var trains []models.Train
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&trains))
	require.Len(t, trains, 1)
	assert.Equal(t, "train-1", trains[0].ID)
}

func TestGetTrainNotFound(t *testing.T) {
	server, service := newTestServer(t)

	service.EXPECT().GetTrain("ghost").Return(nil, core.ErrTrainNotFound)

	resp, err := http.Get(server.URL + "/api/trains/ghost")
	require.NoError(t, err)

	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetTrainStatusIncludesLiveness(t *testing.T) {
	server, service := newTestServer(t)

	service.EXPECT().GetTrainStatus("train-1").Return(&core.TrainStatusView{
		Train:        &models.Train{ID: "train-1", ControllerID: "ctrl-1"},
		Status:       &models.TrainStatus{TrainID: "train-1", Speed: 40, Timestamp: time.Now()},
		ControllerID: "ctrl-1",
		Liveness:     core.Online,
	}, nil)

	resp, err := http.Get(server.URL + "/api/trains/train-1/status")
	require.NoError(t, err)

	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var view core.TrainStatusView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	assert.Equal(t, core.Online, view.Liveness)
	require.NotNil(t, view.Status)
	assert.Equal(t, 40, view.Status.Speed)
}

func TestPostCommand(t *testing.T) {
	server, service := newTestServer(t)

	var dispatched models.Command

	service.EXPECT().
		Dispatch(gomock.Any(), "train-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, trainID string, cmd models.Command) (*core.DispatchResult, error) {
			dispatched = cmd

			return &core.DispatchResult{
				TrainID: trainID,
				Topic:   "trains/" + trainID + "/commands",
				Action:  string(cmd.Action),
			}, nil
		})

	resp, err := http.Post(server.URL+"/api/trains/train-1/command",
		"application/json", strings.NewReader(`{"action":"setSpeed","speed":60}`))
	require.NoError(t, err)

	defer resp.Body.Close()

	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Equal(t, models.ActionSetSpeed, dispatched.Action)
	require.NotNil(t, dispatched.Speed)
	assert.Equal(t, 60, *dispatched.Speed)
}

func TestPostCommandErrors(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		body        string
		dispatchErr error // nil means the body never decodes and Dispatch is not reached
		wantStatus  int
	}{
		{
			name:        "invalid_action",
			path:        "/api/trains/train-1/command",
			body:        `{"action":"launch"}`,
			dispatchErr: models.ErrUnknownAction,
			wantStatus:  http.StatusBadRequest,
		},
		{
			name:        "speed_out_of_range",
			path:        "/api/trains/train-1/command",
			body:        `{"action":"setSpeed","speed":500}`,
			dispatchErr: models.ErrSpeedRange,
			wantStatus:  http.StatusBadRequest,
		},
		{
			name:       "unknown_field",
			path:       "/api/trains/train-1/command",
			body:       `{"action":"stop","warp":9}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:        "unknown_train",
			path:        "/api/trains/ghost/command",
			body:        `{"action":"stop"}`,
			dispatchErr: core.ErrTrainNotFound,
			wantStatus:  http.StatusNotFound,
		},
		{
			name:        "broker_down",
			path:        "/api/trains/train-1/command",
			body:        `{"action":"stop"}`,
			dispatchErr: core.ErrTransportUnavailable,
			wantStatus:  http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, service := newTestServer(t)

			if tt.dispatchErr != nil {
				service.EXPECT().
					Dispatch(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, tt.dispatchErr)
			}

			resp, err := http.Post(server.URL+tt.path, "application/json", strings.NewReader(tt.body))
			require.NoError(t, err)

			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestUpdateTrain(t *testing.T) {
	server, service := newTestServer(t)

	service.EXPECT().UpdateTrain("train-1", gomock.Any()).Return(nil)

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPut,
		server.URL+"/api/trains/train-1", strings.NewReader(`{"invert_directions":true}`))
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestGetControllerTrains(t *testing.T) {
	server, service := newTestServer(t)

	service.EXPECT().ListControllerTrains("ctrl-1").Return([]models.Train{
		{ID: "train-1", ControllerID: "ctrl-1", PluginName: "simulated_dc"},
	}, nil)

	resp, err := http.Get(server.URL + "/api/controllers/ctrl-1/trains")
	require.NoError(t, err)

	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var trains []models.Train
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&trains))
	require.Len(t, trains, 1)
	assert.Equal(t, "simulated_dc", trains[0].PluginName)
}

func TestGetControllerTrainsUnknownController(t *testing.T) {
	server, service := newTestServer(t)

	service.EXPECT().ListControllerTrains("stray").Return(nil, core.ErrControllerNotFound)

	resp, err := http.Get(server.URL + "/api/controllers/stray/trains")
	require.NoError(t, err)

	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCORSHeaders(t *testing.T) {
	server, service := newTestServer(t)

	service.EXPECT().ListTrains().Return(nil, nil)

	resp, err := http.Get(server.URL + "/api/trains")
	require.NoError(t, err)

	defer resp.Body.Close()

	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
