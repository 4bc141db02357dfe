package repository

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/yourorg/crypto-tracker/internal/model"

	"go.uber.org/zap"
)

// AlertEventRepository persists fired alerts as an append-only JSON lines
// file: one serialized AlertEvent per physical line, UTF-8, never updated
// or deleted. The file is opened, appended and closed on every write;
// concurrent writers are not a designed-for scenario.
type AlertEventRepository struct {
	path   string
	logger *zap.Logger
}

// NewAlertEventRepository creates a new alert log repository writing to the
// given file path. The file is created on first append.
func NewAlertEventRepository(path string, logger *zap.Logger) *AlertEventRepository {
	return &AlertEventRepository{
		path:   path,
		logger: logger,
	}
}

// Append serializes the event as one JSON line at the end of the log file
func (r *AlertEventRepository) Append(event model.AlertEvent) error {
	line, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal alert event: %w", err)
	}

	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		r.logger.Error("Failed to open alert log", zap.Error(err), zap.String("path", r.path))
		return fmt.Errorf("failed to open alert log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		r.logger.Error("Failed to write alert log entry", zap.Error(err))
		return fmt.Errorf("failed to write alert log entry: %w", err)
	}

	return nil
}

// ReadRecent reads the whole file and returns the last n events,
// oldest-to-newest among those returned. A missing file yields an empty
// slice. Lines that fail to parse are skipped. Not designed for large
// files; the log is expected to stay small.
func (r *AlertEventRepository) ReadRecent(n int) ([]model.AlertEvent, error) {
	f, err := os.Open(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.AlertEvent{}, nil
		}
		return nil, fmt.Errorf("failed to open alert log: %w", err)
	}
	defer f.Close()

	var events []model.AlertEvent
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var event model.AlertEvent
		if err := json.Unmarshal(line, &event); err != nil {
			r.logger.Warn("Skipping malformed alert log line", zap.Error(err))
			continue
		}
		events = append(events, event)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read alert log: %w", err)
	}

	if n > 0 && len(events) > n {
		events = events[len(events)-n:]
	}
	if events == nil {
		events = []model.AlertEvent{}
	}
	return events, nil
}
