package core

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/railyardhq/railyard/pkg/db"
	"github.com/railyardhq/railyard/pkg/models"
)

// uuidPattern matches RFC 4122 textual UUIDs.
var uuidPattern = regexp.MustCompile(
	`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// Manifest is the declarative, human-edited source of truth for the
// layout: which plugins exist, which controllers run, and which trains
// they own.
type Manifest struct {
	Plugins     []ManifestPlugin     `yaml:"plugins"`
	Controllers []ManifestController `yaml:"controllers"`
	Trains      []ManifestTrain      `yaml:"trains"`
}

type ManifestPlugin struct {
	Name         string                 `yaml:"name"`
	HumanName    string                 `yaml:"human_name"`
	Version      string                 `yaml:"version"`
	ConfigSchema map[string]interface{} `yaml:"config_schema"`
}

type ManifestController struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Address     string `yaml:"address"`
	Enabled     *bool  `yaml:"enabled"`
}

type ManifestTrain struct {
	ID               string                 `yaml:"id"`
	Name             string                 `yaml:"name"`
	Description      string                 `yaml:"description"`
	Model            string                 `yaml:"model"`
	ControllerID     string                 `yaml:"controller_id"`
	PluginName       string                 `yaml:"plugin_name"`
	PluginConfig     map[string]interface{} `yaml:"plugin_config"`
	InvertDirections bool                   `yaml:"invert_directions"`
}

// LoadManifest reads and parses a YAML manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest '%s': %w", path, err)
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}

	return &manifest, nil
}

// Validate checks the manifest structure before any write happens.
// Validation is all-or-nothing: any error aborts reconciliation with
// no partial state.
func (m *Manifest) Validate() error {
	if m.Plugins == nil || m.Controllers == nil || m.Trains == nil {
		return fmt.Errorf("%w: plugins, controllers and trains sections are required",
			ErrInvalidManifest)
	}

	pluginNames := make(map[string]bool, len(m.Plugins))

	for idx, plugin := range m.Plugins {
		if plugin.Name == "" || plugin.HumanName == "" || plugin.Version == "" || plugin.ConfigSchema == nil {
			return fmt.Errorf("%w: plugin %d requires name, human_name, version and config_schema",
				ErrInvalidManifest, idx)
		}

		pluginNames[plugin.Name] = true
	}

	controllerIDs := make(map[string]bool, len(m.Controllers))

	for idx := range m.Controllers {
		controller := &m.Controllers[idx]
		if controller.Name == "" {
			return fmt.Errorf("%w: controller %d requires a name", ErrInvalidManifest, idx)
		}

		id, err := ensureUUID(controller.ID, controller.Name)
		if err != nil {
			return err
		}

		controller.ID = id
		controllerIDs[id] = true
	}

	for idx, train := range m.Trains {
		if train.ID == "" || train.Name == "" {
			return fmt.Errorf("%w: train %d requires id and name", ErrInvalidManifest, idx)
		}

		if !controllerIDs[train.ControllerID] {
			return fmt.Errorf("%w: train %s references unknown controller %q",
				ErrInvalidManifest, train.ID, train.ControllerID)
		}

		if !pluginNames[train.PluginName] {
			return fmt.Errorf("%w: train %s references unknown plugin %q",
				ErrInvalidManifest, train.ID, train.PluginName)
		}
	}

	return nil
}

// ensureUUID validates a controller ID, generating one for the ${UUID}
// placeholder or an empty value.
func ensureUUID(id, name string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(id))

	switch normalized {
	case "", "${uuid}", "null", "none":
		generated := uuid.NewString()
		log.Printf("Generated UUID for controller %q: %s", name, generated)

		return generated, nil
	}

	if !uuidPattern.MatchString(normalized) {
		return "", fmt.Errorf("%w: controller %q has invalid UUID %q",
			ErrInvalidManifest, name, id)
	}

	return normalized, nil
}

// Reconciler idempotently merges the manifest into the configuration
// store at startup.
type Reconciler struct {
	store db.Service
}

// NewReconciler creates a configuration reconciler.
func NewReconciler(store db.Service) *Reconciler {
	return &Reconciler{store: store}
}

// Reconcile upserts every plugin, controller and train definition.
// Records matched by identity are field-merged: declarative fields from
// the manifest overwrite, runtime fields (first_seen, last_seen,
// capability metadata) are preserved by the store layer. Re-running with
// an unchanged manifest is a no-op in effect.
func (r *Reconciler) Reconcile(ctx context.Context, manifest *Manifest) error {
	if err := manifest.Validate(); err != nil {
		return err
	}

	for idx := range manifest.Plugins {
		plugin, err := manifest.Plugins[idx].toModel()
		if err != nil {
			return err
		}

		if err := r.store.UpsertPlugin(plugin); err != nil {
			return err
		}
	}

	for idx := range manifest.Controllers {
		if err := r.store.UpsertController(manifest.Controllers[idx].toModel()); err != nil {
			return err
		}
	}

	for idx := range manifest.Trains {
		train, err := manifest.Trains[idx].toModel()
		if err != nil {
			return err
		}

		if err := r.store.UpsertTrain(train); err != nil {
			return err
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	log.Printf("Reconciled manifest: %d plugins, %d controllers, %d trains",
		len(manifest.Plugins), len(manifest.Controllers), len(manifest.Trains))

	return nil
}

func (p *ManifestPlugin) toModel() (*models.Plugin, error) {
	schema, err := json.Marshal(p.ConfigSchema)
	if err != nil {
		return nil, fmt.Errorf("%w: plugin %s schema: %w", ErrInvalidManifest, p.Name, err)
	}

	return &models.Plugin{
		Name:         p.Name,
		HumanName:    p.HumanName,
		Version:      p.Version,
		ConfigSchema: schema,
	}, nil
}

func (c *ManifestController) toModel() *models.Controller {
	enabled := true
	if c.Enabled != nil {
		enabled = *c.Enabled
	}

	return &models.Controller{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Address:     c.Address,
		Enabled:     enabled,
	}
}

func (t *ManifestTrain) toModel() (*models.Train, error) {
	var pluginConfig json.RawMessage

	if t.PluginConfig != nil {
		encoded, err := json.Marshal(t.PluginConfig)
		if err != nil {
			return nil, fmt.Errorf("%w: train %s plugin config: %w", ErrInvalidManifest, t.ID, err)
		}

		pluginConfig = encoded
	}

	return &models.Train{
		ID:               t.ID,
		Name:             t.Name,
		Description:      t.Description,
		Model:            t.Model,
		ControllerID:     t.ControllerID,
		PluginName:       t.PluginName,
		PluginConfig:     pluginConfig,
		InvertDirections: t.InvertDirections,
	}, nil
}
