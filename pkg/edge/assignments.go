package edge

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/railyardhq/railyard/pkg/config"
	"github.com/railyardhq/railyard/pkg/models"
)

var assignmentClient = &http.Client{
	Timeout: 10 * time.Second,
}

// FetchAssignments pulls this controller's train assignments from the
// core's fleet API. Controllers configured without a local train list
// call this at startup, so fleet changes live only in the core's
// manifest and a controller just needs its own ID to come up.
func FetchAssignments(ctx context.Context, coreURL, controllerID string) ([]config.TrainAssignment, error) {
	url := fmt.Sprintf("%s/api/controllers/%s/trains", strings.TrimRight(coreURL, "/"), controllerID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errAssignmentFetch, err)
	}

	resp, err := assignmentClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errAssignmentFetch, err)
	}

	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			log.Printf("failed to close response body: %v", err)
		}
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: core returned status %d", errAssignmentFetch, resp.StatusCode)
	}

	var trains []models.Train
	if err := json.NewDecoder(resp.Body).Decode(&trains); err != nil {
		return nil, fmt.Errorf("%w: %w", errAssignmentFetch, err)
	}

	assignments := make([]config.TrainAssignment, 0, len(trains))

	for _, train := range trains {
		assignments = append(assignments, config.TrainAssignment{
			TrainID:          train.ID,
			PluginName:       train.PluginName,
			PluginConfig:     train.PluginConfig,
			InvertDirections: train.InvertDirections,
		})
	}

	return assignments, nil
}
