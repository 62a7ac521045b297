package organizer

// Region tells the View which part of the screen a Change affects.
type Region string

const (
	RegionFolders Region = "folders"
	RegionTasks   Region = "tasks"
	RegionSteps   Region = "steps"
	RegionRewards Region = "rewards"
)

// Change describes one applied mutation.
type Change struct {
	Op       string `json:"op"`
	Region   Region `json:"region"`
	FolderID string `json:"folderId,omitempty"`
	TaskID   string `json:"taskId,omitempty"`

	// ToFolderID is set for task.move.
	ToFolderID string `json:"toFolderId,omitempty"`
}
