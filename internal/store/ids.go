package store

import (
	"encoding/base32"
	"fmt"
	"strings"

	"stepfolio/internal/model"

	"github.com/google/uuid"
)

const (
	FolderIDPrefix = "fld"
	TaskIDPrefix   = "task"
)

var idEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// newRandomID returns prefix-<suffix> where suffix is n bytes of a random (v4) UUID
// in lowercase base32. The first 6 bytes of a v4 UUID carry no version bits.
// 5 bytes -> 8 chars ~= 40 bits (~1 trillion) of space.
func newRandomID(prefix string, n int) (string, error) {
	if n < 1 || n > 6 {
		n = 5
	}
	u, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	suffix := strings.ToLower(idEncoding.EncodeToString(u[:n]))
	return prefix + "-" + suffix, nil
}

// NewID returns an id that exists reports as unused. It never returns the
// reserved Rewards folder id.
func NewID(prefix string, exists func(string) bool) (string, error) {
	for _, n := range []int{5, 6} {
		for i := 0; i < 20; i++ {
			id, err := newRandomID(prefix, n)
			if err != nil {
				return "", fmt.Errorf("new id: %w", err)
			}
			if id == model.RewardsFolderID {
				continue
			}
			if exists != nil && exists(id) {
				continue
			}
			return id, nil
		}
	}
	return "", fmt.Errorf("new id: no free %s id after repeated collisions", prefix)
}

// IDsIn returns the set of all folder and task ids in the collection.
func IDsIn(folders []model.Folder) map[string]bool {
	out := map[string]bool{}
	for _, f := range folders {
		out[f.ID] = true
		for _, t := range f.Tasks {
			out[t.ID] = true
		}
	}
	return out
}
