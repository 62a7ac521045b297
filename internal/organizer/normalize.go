package organizer

import (
	"strings"

	"stepfolio/internal/model"
	"stepfolio/internal/store"
)

// normalize enforces the collection invariants on data this process did not write:
//   - exactly one Rewards folder, with the fixed id, fixed name and the flag set
//   - folder ids and task ids unique across the collection (later duplicates are re-issued)
//   - no nil slices
//
// It reports whether anything had to change.
func normalize(in []model.Folder, newID IDFunc) ([]model.Folder, bool, error) {
	fs := model.CloneFolders(in)
	changed := false

	taken := map[string]bool{}
	for _, f := range fs {
		taken[f.ID] = true
		for _, t := range f.Tasks {
			taken[t.ID] = true
		}
	}
	reissue := func(prefix string) (string, error) {
		id, err := newID(prefix, func(id string) bool { return taken[id] })
		if err != nil {
			return "", err
		}
		taken[id] = true
		return id, nil
	}

	// The reserved id belongs to the first folder carrying it; anything else
	// holding it is re-issued.
	seen := map[string]bool{model.RewardsFolderID: true}
	haveRewards := false
	for i := range fs {
		f := &fs[i]

		isRewardsID := f.ID == model.RewardsFolderID
		if isRewardsID && haveRewards {
			// A second folder with the reserved id: keep its tasks as an ordinary folder.
			isRewardsID = false
			f.ID = ""
		}
		if !isRewardsID && (strings.TrimSpace(f.ID) == "" || seen[f.ID]) {
			id, err := reissue(store.FolderIDPrefix)
			if err != nil {
				return nil, false, err
			}
			f.ID = id
			changed = true
		}
		seen[f.ID] = true

		if isRewardsID {
			haveRewards = true
			if !f.IsRewards || f.Name != model.RewardsFolderName {
				f.IsRewards = true
				f.Name = model.RewardsFolderName
				changed = true
			}
		} else if f.IsRewards {
			f.IsRewards = false
			changed = true
		}

		for j := range f.Tasks {
			t := &f.Tasks[j]
			if strings.TrimSpace(t.ID) == "" || seen[t.ID] {
				id, err := reissue(store.TaskIDPrefix)
				if err != nil {
					return nil, false, err
				}
				t.ID = id
				changed = true
			}
			seen[t.ID] = true
		}
	}

	if !haveRewards {
		fs = append(fs, newRewardsFolder())
		changed = true
	}
	return fs, changed, nil
}

func newRewardsFolder() model.Folder {
	return model.Folder{
		ID:        model.RewardsFolderID,
		Name:      model.RewardsFolderName,
		Tasks:     []model.Task{},
		IsRewards: true,
	}
}
