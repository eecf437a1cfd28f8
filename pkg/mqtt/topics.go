package mqtt

import (
	"errors"
	"fmt"
	"strings"
)

// Topic scheme:
//
//	trains/{train_id}/commands       dispatcher -> controller, QoS 1
//	trains/{train_id}/status         controller -> ingestor,   QoS 0
//	controllers/{controller_id}/heartbeat  controller -> ingestor, QoS 0
const (
	trainPrefix      = "trains"
	controllerPrefix = "controllers"
	commandsSuffix   = "commands"
	statusSuffix     = "status"
	heartbeatSuffix  = "heartbeat"

	// AllStatusTopics matches every train's status channel.
	AllStatusTopics = trainPrefix + "/+/" + statusSuffix

	// AllHeartbeatTopics matches every controller's heartbeat channel.
	AllHeartbeatTopics = controllerPrefix + "/+/" + heartbeatSuffix

	topicParts = 3
)

var errBadTopic = errors.New("unexpected topic format")

// CommandTopic returns the command channel for a train.
func CommandTopic(trainID string) string {
	return fmt.Sprintf("%s/%s/%s", trainPrefix, trainID, commandsSuffix)
}

// StatusTopic returns the status channel for a train.
func StatusTopic(trainID string) string {
	return fmt.Sprintf("%s/%s/%s", trainPrefix, trainID, statusSuffix)
}

// HeartbeatTopic returns the heartbeat channel for a controller.
func HeartbeatTopic(controllerID string) string {
	return fmt.Sprintf("%s/%s/%s", controllerPrefix, controllerID, heartbeatSuffix)
}

// TrainFromTopic extracts the train ID from a trains/{id}/... topic.
func TrainFromTopic(topic string) (string, error) {
	return idFromTopic(topic, trainPrefix)
}

// ControllerFromTopic extracts the controller ID from a
// controllers/{id}/... topic.
func ControllerFromTopic(topic string) (string, error) {
	return idFromTopic(topic, controllerPrefix)
}

func idFromTopic(topic, prefix string) (string, error) {
	parts := strings.Split(topic, "/")
	if len(parts) != topicParts || parts[0] != prefix || parts[1] == "" {
		return "", fmt.Errorf("%w: %q", errBadTopic, topic)
	}

	return parts[1], nil
}
