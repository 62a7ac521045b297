package organizer

import "fmt"

// Prompter asks the user for a line of text, offering initial as the default.
// ok == false means the user cancelled.
type Prompter interface {
	Prompt(label, initial string) (value string, ok bool)
}

// PromptFunc adapts a function to Prompter.
type PromptFunc func(label, initial string) (string, bool)

func (f PromptFunc) Prompt(label, initial string) (string, bool) { return f(label, initial) }

// RenameFolderWith asks p for the new name. Cancel or blank input changes nothing.
func (s *Store) RenameFolderWith(p Prompter, id string) (bool, error) {
	f, ok := s.Folder(id)
	if !ok || f.IsRewards {
		return false, nil
	}
	name, ok := p.Prompt(fmt.Sprintf("Rename folder %q to:", f.Name), f.Name)
	if !ok {
		return false, nil
	}
	return s.RenameFolder(id, name)
}

func (s *Store) RenameTaskWith(p Prompter, taskID string) (bool, error) {
	t, ok := s.Task(taskID)
	if !ok {
		return false, nil
	}
	name, ok := p.Prompt(fmt.Sprintf("Rename task %q to:", t.Name), t.Name)
	if !ok {
		return false, nil
	}
	return s.RenameTask(taskID, name)
}

func (s *Store) EditStepWith(p Prompter, taskID string, index int) (bool, error) {
	t, ok := s.Task(taskID)
	if !ok || index < 0 || index >= len(t.Steps) {
		return false, nil
	}
	text, ok := p.Prompt("Edit step:", t.Steps[index])
	if !ok {
		return false, nil
	}
	return s.EditStep(taskID, index, text)
}
