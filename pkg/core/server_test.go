package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/railyardhq/railyard/pkg/db"
	"github.com/railyardhq/railyard/pkg/models"
)

func TestListControllerTrains(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := db.NewMockService(ctrl)
	s := &Server{store: mockDB}

	mockDB.EXPECT().GetController("ctrl-1").Return(&models.Controller{ID: "ctrl-1"}, nil)
	mockDB.EXPECT().ListTrainsForController("ctrl-1").Return([]models.Train{
		{ID: "train-1", ControllerID: "ctrl-1", PluginName: "simulated_dc"},
	}, nil)

	trains, err := s.ListControllerTrains("ctrl-1")
	require.NoError(t, err)
	require.Len(t, trains, 1)
	assert.Equal(t, "train-1", trains[0].ID)
}

func TestListControllerTrainsUnknownController(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := db.NewMockService(ctrl)
	s := &Server{store: mockDB}

	mockDB.EXPECT().GetController("stray").Return(nil, db.ErrControllerNotFound)

	_, err := s.ListControllerTrains("stray")
	assert.ErrorIs(t, err, ErrControllerNotFound)
}
