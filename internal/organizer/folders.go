package organizer

import (
	"stepfolio/internal/model"
	"stepfolio/internal/store"
)

// CreateFolder appends a folder with no tasks. It returns "" when name is blank.
func (s *Store) CreateFolder(name string) (string, error) {
	name = cleanText(name)
	if name == "" {
		return "", nil
	}
	ch, err := s.apply(func(fs []model.Folder) ([]model.Folder, *Change, error) {
		id, err := s.issueID(fs, store.FolderIDPrefix)
		if err != nil {
			return nil, nil, err
		}
		fs = append(fs, model.Folder{ID: id, Name: name, Tasks: []model.Task{}})
		return fs, &Change{Op: "folder.create", Region: RegionFolders, FolderID: id}, nil
	})
	if ch == nil {
		return "", err
	}
	return ch.FolderID, err
}

// RenameFolder replaces a folder's name. The Rewards folder keeps its name.
func (s *Store) RenameFolder(id, name string) (bool, error) {
	name = cleanText(name)
	if name == "" {
		return false, nil
	}
	ch, err := s.apply(func(fs []model.Folder) ([]model.Folder, *Change, error) {
		i := folderIndex(fs, id)
		if i < 0 || fs[i].IsRewards || fs[i].Name == name {
			return fs, nil, nil
		}
		fs[i].Name = name
		return fs, &Change{Op: "folder.rename", Region: RegionFolders, FolderID: id}, nil
	})
	return ch != nil, err
}

// RemoveFolder deletes a folder and every task in it. The Rewards folder cannot be removed.
func (s *Store) RemoveFolder(id string) (bool, error) {
	ch, err := s.apply(func(fs []model.Folder) ([]model.Folder, *Change, error) {
		i := folderIndex(fs, id)
		if i < 0 || fs[i].IsRewards {
			return fs, nil, nil
		}
		fs = append(fs[:i], fs[i+1:]...)
		return fs, &Change{Op: "folder.remove", Region: RegionFolders, FolderID: id}, nil
	})
	return ch != nil, err
}

// SwapFolders exchanges the positions of two folders.
func (s *Store) SwapFolders(a, b string) (bool, error) {
	if a == b {
		return false, nil
	}
	ch, err := s.apply(func(fs []model.Folder) ([]model.Folder, *Change, error) {
		i, j := folderIndex(fs, a), folderIndex(fs, b)
		if i < 0 || j < 0 {
			return fs, nil, nil
		}
		fs[i], fs[j] = fs[j], fs[i]
		return fs, &Change{Op: "folder.swap", Region: RegionFolders, FolderID: a}, nil
	})
	return ch != nil, err
}

// ListFolders returns a copy of the collection in order.
func (s *Store) ListFolders() []model.Folder {
	var out []model.Folder
	s.read(func(fs []model.Folder) { out = model.CloneFolders(fs) })
	return out
}

func (s *Store) Folder(id string) (model.Folder, bool) {
	var (
		out model.Folder
		ok  bool
	)
	s.read(func(fs []model.Folder) {
		if i := folderIndex(fs, id); i >= 0 {
			out, ok = fs[i].Clone(), true
		}
	})
	return out, ok
}

// RewardsFolder returns the reserved Rewards folder. It always exists after Open.
func (s *Store) RewardsFolder() model.Folder {
	var out model.Folder
	s.read(func(fs []model.Folder) {
		for i := range fs {
			if fs[i].IsRewards {
				out = fs[i].Clone()
				return
			}
		}
	})
	return out
}

// Replace swaps in a whole collection (import). The input is normalized first, so
// the Rewards folder and id uniqueness hold afterwards.
func (s *Store) Replace(folders []model.Folder) error {
	_, err := s.apply(func([]model.Folder) ([]model.Folder, *Change, error) {
		next, _, err := normalize(folders, s.newID)
		if err != nil {
			return nil, nil, err
		}
		return next, &Change{Op: "folders.replace", Region: RegionFolders}, nil
	})
	return err
}
