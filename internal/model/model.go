package model

const (
	// RewardsFolderID is the fixed id of the reserved Rewards folder.
	RewardsFolderID = "rewards-folder"
	// RewardsFolderName is the fixed display name of the Rewards folder.
	RewardsFolderName = "Rewards"
)

type Folder struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Tasks []Task `json:"tasks"`

	// IsRewards marks the reserved Rewards folder. The JSON name predates this
	// program and is kept so exported data stays loadable.
	IsRewards bool `json:"isDefaultRewards"`
}

type Task struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Steps []string `json:"steps"`
}

// Clone returns a deep copy of the folder.
func (f Folder) Clone() Folder {
	out := f
	out.Tasks = make([]Task, len(f.Tasks))
	for i, t := range f.Tasks {
		out.Tasks[i] = t.Clone()
	}
	return out
}

// Clone returns a deep copy of the task.
func (t Task) Clone() Task {
	out := t
	out.Steps = append([]string{}, t.Steps...)
	return out
}

// CloneFolders deep-copies a folder collection. A nil input yields an empty slice.
func CloneFolders(fs []Folder) []Folder {
	out := make([]Folder, len(fs))
	for i, f := range fs {
		out[i] = f.Clone()
	}
	return out
}
