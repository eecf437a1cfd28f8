package core

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/railyardhq/railyard/pkg/db"
	"github.com/railyardhq/railyard/pkg/models"
)

func testStore(t *testing.T) db.Service {
	t.Helper()

	store, err := db.New(filepath.Join(t.TempDir(), "railyard.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}

func testManifest() *Manifest {
	enabled := true

	return &Manifest{
		Plugins: []ManifestPlugin{
			{
				Name:         "simulated_dc",
				HumanName:    "Simulated DC Throttle",
				Version:      "1.0.0",
				ConfigSchema: map[string]interface{}{"type": "object"},
			},
		},
		Controllers: []ManifestController{
			{
				ID:      "1d9bfcb2-94b1-4a0e-8c8f-0f2d8f6b4a11",
				Name:    "yard-east",
				Address: "10.0.0.5",
				Enabled: &enabled,
			},
		},
		Trains: []ManifestTrain{
			{
				ID:           "train-1",
				Name:         "Blue Switcher",
				ControllerID: "1d9bfcb2-94b1-4a0e-8c8f-0f2d8f6b4a11",
				PluginName:   "simulated_dc",
				PluginConfig: map[string]interface{}{"supply_voltage": 12.0},
			},
		},
	}
}

func TestReconcileIsIdempotent(t *testing.T) {
	store := testStore(t)
	r := NewReconciler(store)
	ctx := context.Background()

	require.NoError(t, r.Reconcile(ctx, testManifest()))
	require.NoError(t, r.Reconcile(ctx, testManifest()))

	controllers, err := store.ListControllers()
	require.NoError(t, err)
	assert.Len(t, controllers, 1)

	trains, err := store.ListTrains()
	require.NoError(t, err)
	assert.Len(t, trains, 1)

	plugins, err := store.ListPlugins()
	require.NoError(t, err)
	assert.Len(t, plugins, 1)
}

func TestReconcilePreservesRuntimeFields(t *testing.T) {
	store := testStore(t)
	r := NewReconciler(store)
	ctx := context.Background()

	require.NoError(t, r.Reconcile(ctx, testManifest()))

	// A heartbeat arrives between reconciles.
	seen := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.ApplyHeartbeat(&models.Heartbeat{
		ControllerID: "1d9bfcb2-94b1-4a0e-8c8f-0f2d8f6b4a11",
		Platform:     "linux",
		Timestamp:    seen,
	}))

	// Re-running the manifest must not wipe what the ingestor wrote.
	manifest := testManifest()
	manifest.Controllers[0].Address = "10.0.0.9"
	require.NoError(t, r.Reconcile(ctx, manifest))

	controller, err := store.GetController("1d9bfcb2-94b1-4a0e-8c8f-0f2d8f6b4a11")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.9", controller.Address, "declarative field follows the manifest")
	assert.Equal(t, seen.Unix(), controller.LastSeen.Unix(), "runtime field survives reconcile")
	assert.Equal(t, "linux", controller.Platform)
}

func TestReconcileInvalidManifestWritesNothing(t *testing.T) {
	store := testStore(t)
	r := NewReconciler(store)

	manifest := testManifest()
	manifest.Trains[0].ControllerID = "no-such-controller"

	err := r.Reconcile(context.Background(), manifest)
	require.ErrorIs(t, err, ErrInvalidManifest)

	controllers, err := store.ListControllers()
	require.NoError(t, err)
	assert.Empty(t, controllers, "validation failure must leave the store untouched")
}

func TestManifestUUIDGeneration(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		generate bool
		wantErr  bool
	}{
		{name: "placeholder", id: "${UUID}", generate: true},
		{name: "empty", id: "", generate: true},
		{name: "null_string", id: "null", generate: true},
		{name: "valid_uuid", id: "1d9bfcb2-94b1-4a0e-8c8f-0f2d8f6b4a11"},
		{name: "uppercase_normalized", id: "1D9BFCB2-94B1-4A0E-8C8F-0F2D8F6B4A11"},
		{name: "garbage", id: "not-a-uuid", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ensureUUID(tt.id, "test")
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidManifest)
				return
			}

			require.NoError(t, err)
			assert.Regexp(t, uuidPattern, id)

			if !tt.generate {
				assert.Equal(t, "1d9bfcb2-94b1-4a0e-8c8f-0f2d8f6b4a11", id)
			}
		})
	}
}

func TestLoadManifestFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.yaml")

	yaml := `
plugins:
  - name: simulated_dc
    human_name: Simulated DC Throttle
    version: 1.0.0
    config_schema:
      type: object
controllers:
  - id: ${UUID}
    name: yard-east
trains:
  - id: train-1
    name: Blue Switcher
    controller_id: ""
    plugin_name: simulated_dc
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	manifest, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Len(t, manifest.Plugins, 1)
	assert.Len(t, manifest.Controllers, 1)
	assert.Equal(t, "${UUID}", manifest.Controllers[0].ID)
}

func TestLoadManifestRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml: ["), 0o600))

	_, err := LoadManifest(path)
	assert.ErrorIs(t, err, ErrInvalidManifest)
}
