package filesource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/pipeline"
	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/week"
)

// LocalWeekSource discovers week payloads as *.json files in a drop
// directory. Discovery is strict: a file that cannot be decoded or placed on
// the calendar fails the whole listing, because silently skipping a week
// would break the oldest-first ingestion order for everything after it.
type LocalWeekSource struct {
	dir string
	loc *time.Location

	mu     sync.Mutex
	byKey  map[string]string // week key -> file path
	scanOK bool
}

func NewLocalWeekSource(dir string, loc *time.Location) pipeline.WeekSource {
	return &LocalWeekSource{dir: dir, loc: loc}
}

// Available implements pipeline.WeekSource. A missing drop directory is an
// empty listing. When two files derive the same week key, the first in
// directory order names the week.
func (s *LocalWeekSource) Available(ctx context.Context) ([]week.WeekDescriptor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	descs, byKey, err := s.scan()
	if err != nil {
		return nil, err
	}
	s.byKey = byKey
	s.scanOK = true
	return descs, nil
}

// Content implements pipeline.WeekSource.
func (s *LocalWeekSource) Content(ctx context.Context, weekKey string) (week.WeekPayload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.scanOK {
		_, byKey, err := s.scan()
		if err != nil {
			return week.WeekPayload{}, err
		}
		s.byKey = byKey
		s.scanOK = true
	}

	path, ok := s.byKey[weekKey]
	if !ok {
		return week.WeekPayload{}, fmt.Errorf("week %s: %w", weekKey, week.ErrWeekNotFound)
	}

	payload, err := s.decode(path)
	if err != nil {
		return week.WeekPayload{}, err
	}
	if err := payload.Validate(s.loc); err != nil {
		return week.WeekPayload{}, fmt.Errorf("week file %s: %w", filepath.Base(path), err)
	}
	return payload, nil
}

func (s *LocalWeekSource) scan() ([]week.WeekDescriptor, map[string]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []week.WeekDescriptor{}, map[string]string{}, nil
		}
		return nil, nil, fmt.Errorf("failed to list weeks directory %s: %w", s.dir, err)
	}

	descs := make([]week.WeekDescriptor, 0, len(entries))
	byKey := make(map[string]string, len(entries))

	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}

		path := filepath.Join(s.dir, entry.Name())
		payload, err := s.decode(path)
		if err != nil {
			return nil, nil, err
		}
		if err := payload.Validate(s.loc); err != nil {
			return nil, nil, fmt.Errorf("week file %s: %w", entry.Name(), err)
		}

		desc := payload.Descriptor(s.loc)
		if _, taken := byKey[desc.WeekKey]; taken {
			slog.Warn("Duplicate week key in drop directory, keeping first file",
				"week_key", desc.WeekKey, "file", entry.Name())
			continue
		}
		byKey[desc.WeekKey] = path
		descs = append(descs, desc)
	}

	return descs, byKey, nil
}

func (s *LocalWeekSource) decode(path string) (week.WeekPayload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return week.WeekPayload{}, fmt.Errorf("failed to read week file %s: %w", filepath.Base(path), err)
	}

	var payload week.WeekPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return week.WeekPayload{}, fmt.Errorf("failed to decode week file %s: %w", filepath.Base(path), err)
	}
	return payload, nil
}
