package organizer

import (
	"fmt"

	"stepfolio/internal/model"
	"stepfolio/internal/store"
)

// RewardName is the display name given to a reward entry.
func RewardName(text string) string {
	return fmt.Sprintf("Reward: %s", text)
}

// AppendReward returns fs with a reward task (no steps) appended to the Rewards
// folder, and that folder's id. The id is empty when text is blank or there is
// no Rewards folder. fs is modified in place.
func AppendReward(fs []model.Folder, id, text string) ([]model.Folder, string) {
	text = cleanText(text)
	if text == "" {
		return fs, ""
	}
	for i := range fs {
		if !fs[i].IsRewards {
			continue
		}
		fs[i].Tasks = append(fs[i].Tasks, model.Task{ID: id, Name: RewardName(text), Steps: []string{}})
		return fs, fs[i].ID
	}
	return fs, ""
}

// AddReward records a reward entry in the Rewards folder and returns its task id.
func (s *Store) AddReward(text string) (string, error) {
	if cleanText(text) == "" {
		return "", nil
	}
	ch, err := s.apply(func(fs []model.Folder) ([]model.Folder, *Change, error) {
		id, err := s.issueID(fs, store.TaskIDPrefix)
		if err != nil {
			return nil, nil, err
		}
		fs, folderID := AppendReward(fs, id, text)
		if folderID == "" {
			return fs, nil, nil
		}
		return fs, &Change{Op: "reward.add", Region: RegionRewards, FolderID: folderID, TaskID: id}, nil
	})
	if ch == nil {
		return "", err
	}
	return ch.TaskID, err
}
