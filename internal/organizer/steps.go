package organizer

import "stepfolio/internal/model"

func (s *Store) AddStep(taskID, text string) (bool, error) {
	text = cleanText(text)
	if text == "" {
		return false, nil
	}
	return s.editSteps(taskID, "step.add", func(steps []string) ([]string, bool) {
		return append(steps, text), true
	})
}

// EditStep replaces the step at index.
func (s *Store) EditStep(taskID string, index int, text string) (bool, error) {
	text = cleanText(text)
	if text == "" {
		return false, nil
	}
	return s.editSteps(taskID, "step.edit", func(steps []string) ([]string, bool) {
		if index < 0 || index >= len(steps) || steps[index] == text {
			return steps, false
		}
		steps[index] = text
		return steps, true
	})
}

// RemoveStep deletes the step at index; later steps shift down by one.
func (s *Store) RemoveStep(taskID string, index int) (bool, error) {
	return s.editSteps(taskID, "step.remove", func(steps []string) ([]string, bool) {
		if index < 0 || index >= len(steps) {
			return steps, false
		}
		return append(steps[:index], steps[index+1:]...), true
	})
}

// SwapSteps exchanges the steps at positions i and j.
func (s *Store) SwapSteps(taskID string, i, j int) (bool, error) {
	if i == j {
		return false, nil
	}
	return s.editSteps(taskID, "step.swap", func(steps []string) ([]string, bool) {
		if i < 0 || j < 0 || i >= len(steps) || j >= len(steps) {
			return steps, false
		}
		steps[i], steps[j] = steps[j], steps[i]
		return steps, true
	})
}

func (s *Store) ListSteps(taskID string) ([]string, bool) {
	t, ok := s.Task(taskID)
	if !ok {
		return nil, false
	}
	return t.Steps, true
}

func (s *Store) editSteps(taskID, op string, fn func([]string) ([]string, bool)) (bool, error) {
	ch, err := s.apply(func(fs []model.Folder) ([]model.Folder, *Change, error) {
		fi, ti := locateTask(fs, taskID)
		if fi < 0 {
			return fs, nil, nil
		}
		steps, ok := fn(fs[fi].Tasks[ti].Steps)
		if !ok {
			return fs, nil, nil
		}
		fs[fi].Tasks[ti].Steps = steps
		return fs, &Change{Op: op, Region: RegionSteps, FolderID: fs[fi].ID, TaskID: taskID}, nil
	})
	return ch != nil, err
}
