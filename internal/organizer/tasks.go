package organizer

import (
	"stepfolio/internal/model"
	"stepfolio/internal/store"
)

// CreateTask appends a task with no steps to a folder. It returns "" when the
// folder is unknown or name is blank.
func (s *Store) CreateTask(folderID, name string) (string, error) {
	name = cleanText(name)
	if name == "" {
		return "", nil
	}
	ch, err := s.apply(func(fs []model.Folder) ([]model.Folder, *Change, error) {
		i := folderIndex(fs, folderID)
		if i < 0 {
			return fs, nil, nil
		}
		id, err := s.issueID(fs, store.TaskIDPrefix)
		if err != nil {
			return nil, nil, err
		}
		fs[i].Tasks = append(fs[i].Tasks, model.Task{ID: id, Name: name, Steps: []string{}})
		return fs, &Change{Op: "task.create", Region: RegionTasks, FolderID: folderID, TaskID: id}, nil
	})
	if ch == nil {
		return "", err
	}
	return ch.TaskID, err
}

func (s *Store) RenameTask(taskID, name string) (bool, error) {
	name = cleanText(name)
	if name == "" {
		return false, nil
	}
	ch, err := s.apply(func(fs []model.Folder) ([]model.Folder, *Change, error) {
		fi, ti := locateTask(fs, taskID)
		if fi < 0 || fs[fi].Tasks[ti].Name == name {
			return fs, nil, nil
		}
		fs[fi].Tasks[ti].Name = name
		return fs, &Change{Op: "task.rename", Region: RegionTasks, FolderID: fs[fi].ID, TaskID: taskID}, nil
	})
	return ch != nil, err
}

// RemoveTask deletes a task from the given folder. Nothing happens when the task
// lives in a different folder.
func (s *Store) RemoveTask(folderID, taskID string) (bool, error) {
	ch, err := s.apply(func(fs []model.Folder) ([]model.Folder, *Change, error) {
		fi := folderIndex(fs, folderID)
		if fi < 0 {
			return fs, nil, nil
		}
		ti := taskIndexIn(fs[fi], taskID)
		if ti < 0 {
			return fs, nil, nil
		}
		fs[fi].Tasks = append(fs[fi].Tasks[:ti], fs[fi].Tasks[ti+1:]...)
		region := RegionTasks
		if fs[fi].IsRewards {
			region = RegionRewards
		}
		return fs, &Change{Op: "task.remove", Region: region, FolderID: folderID, TaskID: taskID}, nil
	})
	return ch != nil, err
}

// MoveTask takes a task out of fromFolderID and appends it to toFolderID.
// Moving a task onto the folder it is already in is a no-op.
func (s *Store) MoveTask(taskID, fromFolderID, toFolderID string) (bool, error) {
	if fromFolderID == toFolderID {
		return false, nil
	}
	ch, err := s.apply(func(fs []model.Folder) ([]model.Folder, *Change, error) {
		from, to := folderIndex(fs, fromFolderID), folderIndex(fs, toFolderID)
		if from < 0 || to < 0 {
			return fs, nil, nil
		}
		ti := taskIndexIn(fs[from], taskID)
		if ti < 0 {
			return fs, nil, nil
		}
		t := fs[from].Tasks[ti]
		fs[from].Tasks = append(fs[from].Tasks[:ti], fs[from].Tasks[ti+1:]...)
		fs[to].Tasks = append(fs[to].Tasks, t)
		return fs, &Change{Op: "task.move", Region: RegionTasks, FolderID: fromFolderID, TaskID: taskID, ToFolderID: toFolderID}, nil
	})
	return ch != nil, err
}

// SwapTasks exchanges the positions of two tasks within one folder.
func (s *Store) SwapTasks(folderID, a, b string) (bool, error) {
	if a == b {
		return false, nil
	}
	ch, err := s.apply(func(fs []model.Folder) ([]model.Folder, *Change, error) {
		fi := folderIndex(fs, folderID)
		if fi < 0 {
			return fs, nil, nil
		}
		i, j := taskIndexIn(fs[fi], a), taskIndexIn(fs[fi], b)
		if i < 0 || j < 0 {
			return fs, nil, nil
		}
		fs[fi].Tasks[i], fs[fi].Tasks[j] = fs[fi].Tasks[j], fs[fi].Tasks[i]
		return fs, &Change{Op: "task.swap", Region: RegionTasks, FolderID: folderID, TaskID: a}, nil
	})
	return ch != nil, err
}

func (s *Store) ListTasks(folderID string) ([]model.Task, bool) {
	var (
		out []model.Task
		ok  bool
	)
	s.read(func(fs []model.Folder) {
		if i := folderIndex(fs, folderID); i >= 0 {
			out, ok = fs[i].Clone().Tasks, true
		}
	})
	return out, ok
}

func (s *Store) Task(taskID string) (model.Task, bool) {
	var (
		out model.Task
		ok  bool
	)
	s.read(func(fs []model.Folder) {
		if fi, ti := locateTask(fs, taskID); fi >= 0 {
			out, ok = fs[fi].Tasks[ti].Clone(), true
		}
	})
	return out, ok
}

// FolderOfTask returns the folder that currently owns taskID.
func (s *Store) FolderOfTask(taskID string) (model.Folder, bool) {
	var (
		out model.Folder
		ok  bool
	)
	s.read(func(fs []model.Folder) {
		if fi, _ := locateTask(fs, taskID); fi >= 0 {
			out, ok = fs[fi].Clone(), true
		}
	})
	return out, ok
}
