package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"

	errs "github.com/predictive-selection/evoagent/pkg/errors"
	"github.com/predictive-selection/evoagent/pkg/logging"
)

// taskRecord is the external custom-corpus schema. Prompt and ground
// truth are mandatory; everything else has defaults.
type taskRecord struct {
	Prompt      string   `json:"prompt" validate:"required"`
	GroundTruth string   `json:"ground_truth" validate:"required"`
	TaskType    string   `json:"task_type" validate:"omitempty,oneof=trivia estimation reasoning"`
	Difficulty  *float64 `json:"difficulty" validate:"omitempty,gte=0,lte=1"`
	TaskID      string   `json:"task_id"`
}

var validate = validator.New()

// LoadFromFile reads a custom task corpus from a JSON array. Any
// malformed entry rejects the entire file; a valid load replaces the
// built-in banks wholesale.
func LoadFromFile(path string) (*Corpus, error) {
	logger := logging.GetLogger()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(err, errs.ResourceNotFound, "tasks file not found")
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errs.Wrap(err, errs.ValidationFailed, "tasks file must contain a JSON array")
	}
	if len(raw) < 1 {
		return nil, errs.New(errs.ValidationFailed, "tasks file must contain at least 1 task")
	}

	ts := make([]Task, 0, len(raw))
	for i, entry := range raw {
		var rec taskRecord
		dec := json.NewDecoder(strings.NewReader(string(entry)))
		if err := dec.Decode(&rec); err != nil {
			return nil, errs.WithFields(
				errs.Wrap(err, errs.ValidationFailed, "task entry is not an object"),
				errs.Fields{"index": i})
		}
		if err := validate.Struct(rec); err != nil {
			return nil, errs.WithFields(
				errs.Wrap(err, errs.ValidationFailed, "invalid task entry"),
				errs.Fields{"index": i})
		}

		taskType := TaskReasoning
		switch strings.ToLower(rec.TaskType) {
		case "trivia":
			taskType = TaskTrivia
		case "estimation":
			taskType = TaskEstimation
		}

		difficulty := 0.5
		if rec.Difficulty != nil {
			difficulty = *rec.Difficulty
		}

		id := rec.TaskID
		if id == "" {
			id = fmt.Sprintf("custom_%03d", i+1)
		}

		ts = append(ts, Task{
			ID:          id,
			Type:        taskType,
			Prompt:      rec.Prompt,
			GroundTruth: rec.GroundTruth,
			Difficulty:  difficulty,
		})
	}

	if len(ts) < 10 {
		logger.Warn(context.Background(), "only %d tasks loaded; for meaningful evolution provide at least 15-20", len(ts))
	}
	logger.Info(context.Background(), "loaded %d custom tasks from %s", len(ts), path)

	return NewCorpus(ts), nil
}
