package filesource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/employee"
	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/pipeline"
)

// LocalRosterSource reads the roster from a single JSON file holding an array
// of roster records.
type LocalRosterSource struct {
	path string
}

func NewLocalRosterSource(path string) pipeline.RosterSource {
	return &LocalRosterSource{path: path}
}

// Load implements pipeline.RosterSource. A missing file is an empty roster;
// the pipeline then runs against the directory as it stands.
func (s *LocalRosterSource) Load(ctx context.Context) ([]employee.RosterRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Warn("Roster file not found, continuing with empty roster", "path", s.path)
			return []employee.RosterRecord{}, nil
		}
		return nil, fmt.Errorf("failed to read roster %s: %w", s.path, err)
	}

	var records []employee.RosterRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode roster %s: %w", s.path, err)
	}

	return records, nil
}
