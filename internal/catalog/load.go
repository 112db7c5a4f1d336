package catalog

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/verte-zerg/liftlog/internal/model"
)

// LoadFile reads extra exercises, one "id;name;muscle group" per line.
// Blank lines and lines starting with '#' are skipped.
func LoadFile(path string) ([]model.Exercise, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only catalog file.
			_ = cerr
		}
	}()

	var exercises []model.Exercise
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ex, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		exercises = append(exercises, ex)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return exercises, nil
}

func parseLine(line string) (model.Exercise, error) {
	parts := strings.Split(line, ";")
	if len(parts) != 3 {
		return model.Exercise{}, fmt.Errorf("expected 3 fields, got %d", len(parts))
	}
	ex := model.Exercise{
		ID:          strings.TrimSpace(parts[0]),
		Name:        strings.TrimSpace(parts[1]),
		MuscleGroup: model.MuscleGroup(strings.TrimSpace(parts[2])),
	}
	if ex.ID == "" || ex.Name == "" {
		return model.Exercise{}, fmt.Errorf("id and name must not be empty")
	}
	if !ex.MuscleGroup.Valid() {
		return model.Exercise{}, fmt.Errorf("unknown muscle group %q", ex.MuscleGroup)
	}
	return ex, nil
}
