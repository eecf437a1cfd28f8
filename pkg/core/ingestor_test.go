package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/railyardhq/railyard/pkg/db"
	"github.com/railyardhq/railyard/pkg/models"
	"github.com/railyardhq/railyard/pkg/mqtt"
)

// startIngestor wires an ingestor to a mock transport and returns the
// captured topic handlers so tests can inject deliveries directly.
func startIngestor(t *testing.T, store db.Service, allowUnknown bool) (ing *Ingestor, status, heartbeat mqtt.Handler) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockMQTT := mqtt.NewMockClient(ctrl)

	mockMQTT.EXPECT().
		Subscribe(mqtt.AllStatusTopics, byte(mqtt.QoSTelemetry), gomock.Any()).
		DoAndReturn(func(_ string, _ byte, h mqtt.Handler) error {
			status = h
			return nil
		})
	mockMQTT.EXPECT().
		Subscribe(mqtt.AllHeartbeatTopics, byte(mqtt.QoSTelemetry), gomock.Any()).
		DoAndReturn(func(_ string, _ byte, h mqtt.Handler) error {
			heartbeat = h
			return nil
		})

	ing = NewIngestor(store, mockMQTT, allowUnknown)
	require.NoError(t, ing.Start(context.Background()))

	return ing, status, heartbeat
}

func TestIngestorStoresStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := db.NewMockService(ctrl)
	mockDB.EXPECT().GetTrain("train-1").Return(&models.Train{ID: "train-1"}, nil)
	mockDB.EXPECT().
		UpsertTrainStatus(gomock.Any()).
		DoAndReturn(func(status *models.TrainStatus) error {
			assert.Equal(t, "train-1", status.TrainID)
			assert.Equal(t, 42, status.Speed)
			assert.False(t, status.Timestamp.IsZero())
			return nil
		})

	ing, status, _ := startIngestor(t, mockDB, false)

	status("trains/train-1/status", []byte(`{"train_id":"train-1","speed":42,"voltage":7.2,"current":0.5}`))

	require.NoError(t, ing.Stop(context.Background()))
}

func TestIngestorTopicIsIdentitySource(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := db.NewMockService(ctrl)
	mockDB.EXPECT().GetTrain("train-1").Return(&models.Train{ID: "train-1"}, nil)
	mockDB.EXPECT().
		UpsertTrainStatus(gomock.Any()).
		DoAndReturn(func(status *models.TrainStatus) error {
			// Payload claimed train-9; the topic wins.
			assert.Equal(t, "train-1", status.TrainID)
			return nil
		})

	ing, status, _ := startIngestor(t, mockDB, false)

	status("trains/train-1/status", []byte(`{"train_id":"train-9","speed":10}`))

	require.NoError(t, ing.Stop(context.Background()))
}

func TestIngestorDropsMalformedStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No store expectations: every payload below must be dropped before
	// any write.
	mockDB := db.NewMockService(ctrl)

	ing, status, _ := startIngestor(t, mockDB, false)

	status("trains/train-1/status", []byte(`not json`))
	status("trains/train-1/status", []byte(`[1,2,3]`))
	status("trains/train-1/status", []byte(`{"train_id":"train-1","speed":400}`))
	status("bad/topic", []byte(`{"train_id":"train-1","speed":10}`))

	require.NoError(t, ing.Stop(context.Background()))
}

func TestIngestorStaleStatusRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := db.NewMockService(ctrl)
	mockDB.EXPECT().GetTrain("train-1").Return(&models.Train{ID: "train-1"}, nil)
	// The store reports the snapshot as older than what it already
	// holds; the ingestor logs and moves on without failing.
	mockDB.EXPECT().UpsertTrainStatus(gomock.Any()).Return(db.ErrStaleStatus)

	ing, status, _ := startIngestor(t, mockDB, false)

	old := time.Now().Add(-time.Hour).UTC().Format(time.RFC3339)
	status("trains/train-1/status", []byte(`{"train_id":"train-1","speed":10,"timestamp":"`+old+`"}`))

	require.NoError(t, ing.Stop(context.Background()))
}

func TestIngestorHeartbeatUnknownControllerPolicy(t *testing.T) {
	t.Run("rejected_by_default", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := db.NewMockService(ctrl)
		mockDB.EXPECT().ApplyHeartbeat(gomock.Any()).Return(db.ErrControllerNotFound)
		// No UpsertController: unknown controllers stay unknown.

		ing, _, heartbeat := startIngestor(t, mockDB, false)

		heartbeat("controllers/stray/heartbeat", []byte(`{"platform":"linux"}`))

		require.NoError(t, ing.Stop(context.Background()))
	})

	t.Run("registered_when_allowed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := db.NewMockService(ctrl)

		first := mockDB.EXPECT().ApplyHeartbeat(gomock.Any()).Return(db.ErrControllerNotFound)
		register := mockDB.EXPECT().
			UpsertController(gomock.Any()).
			DoAndReturn(func(c *models.Controller) error {
				assert.Equal(t, "stray", c.ID)
				assert.True(t, c.Enabled)
				return nil
			}).
			After(first)
		mockDB.EXPECT().ApplyHeartbeat(gomock.Any()).Return(nil).After(register)

		ing, _, heartbeat := startIngestor(t, mockDB, true)

		heartbeat("controllers/stray/heartbeat", []byte(`{"platform":"linux"}`))

		require.NoError(t, ing.Stop(context.Background()))
	})
}

func TestIngestorHeartbeatIdentityFromTopic(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := db.NewMockService(ctrl)
	mockDB.EXPECT().
		ApplyHeartbeat(gomock.Any()).
		DoAndReturn(func(hb *models.Heartbeat) error {
			assert.Equal(t, "ctrl-7", hb.ControllerID)
			assert.False(t, hb.Timestamp.IsZero())
			return nil
		})

	ing, _, heartbeat := startIngestor(t, mockDB, false)

	heartbeat("controllers/ctrl-7/heartbeat", []byte(`{"controller_id":"someone-else"}`))

	require.NoError(t, ing.Stop(context.Background()))
}
