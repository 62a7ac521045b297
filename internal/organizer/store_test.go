package organizer

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"stepfolio/internal/model"
	"stepfolio/internal/store"

	"github.com/stretchr/testify/require"
)

func TestOpen_BootstrapsRewardsFolder(t *testing.T) {
	s, kv := newTestStore(t)

	fs := s.ListFolders()
	require.Len(t, fs, 1)
	require.Equal(t, model.RewardsFolderID, fs[0].ID)
	require.Equal(t, model.RewardsFolderName, fs[0].Name)
	require.True(t, fs[0].IsRewards)
	require.NotNil(t, fs[0].Tasks)

	// Bootstrap is persisted.
	require.Equal(t, fs, persisted(t, kv))
	require.Equal(t, fs[0], s.RewardsFolder())
}

func TestOpen_KeepsExistingOrderAndAppendsRewardsAtEnd(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	snap := store.NewSnapshot(kv, "")
	require.NoError(t, snap.Save(ctx, []model.Folder{
		{ID: "fld-b", Name: "B", Tasks: []model.Task{}},
		{ID: "fld-a", Name: "A", Tasks: []model.Task{}},
	}))

	s, err := Open(ctx, snap, WithIDFunc(seqIDs()))
	require.NoError(t, err)
	require.Equal(t, []string{"fld-b", "fld-a", model.RewardsFolderID}, folderIDs(s.ListFolders()))
}

func TestOpen_DoesNotRewriteCleanData(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	snap := store.NewSnapshot(kv, "")
	clean := []model.Folder{
		{ID: "fld-a", Name: "A", Tasks: []model.Task{}},
		{ID: model.RewardsFolderID, Name: model.RewardsFolderName, IsRewards: true, Tasks: []model.Task{}},
	}
	require.NoError(t, snap.Save(ctx, clean))

	// Any write would fail; Open must not need one.
	kv.FailPuts = errors.New("read only")
	s, err := Open(ctx, snap)
	require.NoError(t, err)
	require.Equal(t, clean, s.ListFolders())
}

func TestOpen_MalformedDataStartsEmpty(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	require.NoError(t, kv.Put(ctx, store.DefaultStorageKey, []byte("not json at all")))

	s, err := Open(ctx, store.NewSnapshot(kv, ""), WithIDFunc(seqIDs()))
	require.NoError(t, err)
	require.Equal(t, []string{model.RewardsFolderID}, folderIDs(s.ListFolders()))
}

func TestOpen_PropagatesLoadError(t *testing.T) {
	_, err := Open(context.Background(), failingPersister{loadErr: errors.New("io")})
	require.Error(t, err)
}

type failingPersister struct{ loadErr error }

func (f failingPersister) Load(context.Context) ([]model.Folder, bool, error) {
	return nil, false, f.loadErr
}
func (f failingPersister) Save(context.Context, []model.Folder) error { return nil }

func TestFolders_CreateRenameRemove(t *testing.T) {
	s, kv := newTestStore(t)

	id, err := s.CreateFolder("  Chores  ")
	require.NoError(t, err)
	f, ok := s.Folder(id)
	require.True(t, ok)
	require.Equal(t, "Chores", f.Name)
	require.Empty(t, f.Tasks)
	require.False(t, f.IsRewards)

	// Appended at the end of the folder order.
	require.Equal(t, []string{model.RewardsFolderID, id}, folderIDs(s.ListFolders()))

	changed, err := s.RenameFolder(id, " House ")
	require.NoError(t, err)
	require.True(t, changed)
	f, _ = s.Folder(id)
	require.Equal(t, "House", f.Name)
	require.Equal(t, "House", persisted(t, kv)[1].Name)

	changed, err = s.RemoveFolder(id)
	require.NoError(t, err)
	require.True(t, changed)
	_, ok = s.Folder(id)
	require.False(t, ok)
	require.Len(t, persisted(t, kv), 1)
}

func TestFolders_BlankInputIsNoOp(t *testing.T) {
	s, kv := newTestStore(t)

	id, err := s.CreateFolder("   ")
	require.NoError(t, err)
	require.Empty(t, id)
	require.Len(t, persisted(t, kv), 1)

	fid := mustCreateFolder(t, s, "A")
	before := persisted(t, kv)
	changed, err := s.RenameFolder(fid, "\t ")
	require.NoError(t, err)
	require.False(t, changed)
	require.Equal(t, before, persisted(t, kv))
}

func TestFolders_UnknownIDsAreNoOps(t *testing.T) {
	s, _ := newTestStore(t)
	mustCreateFolder(t, s, "A")
	before := s.ListFolders()

	for _, fn := range []func() (bool, error){
		func() (bool, error) { return s.RenameFolder("fld-nope", "X") },
		func() (bool, error) { return s.RemoveFolder("fld-nope") },
		func() (bool, error) { return s.SwapFolders("fld-nope", model.RewardsFolderID) },
	} {
		changed, err := fn()
		require.NoError(t, err)
		require.False(t, changed)
	}
	require.Equal(t, before, s.ListFolders())
}

func TestRewardsFolder_CannotBeRenamedOrRemoved(t *testing.T) {
	s, kv := newTestStore(t)
	before := persisted(t, kv)

	changed, err := s.RenameFolder(model.RewardsFolderID, "Treats")
	require.NoError(t, err)
	require.False(t, changed)

	changed, err = s.RemoveFolder(model.RewardsFolderID)
	require.NoError(t, err)
	require.False(t, changed)

	require.Equal(t, before, persisted(t, kv))
	require.Equal(t, model.RewardsFolderName, s.RewardsFolder().Name)
}

func TestRemoveFolder_CascadesToTasks(t *testing.T) {
	s, _ := newTestStore(t)
	fid := mustCreateFolder(t, s, "A")
	tid := mustCreateTask(t, s, fid, "T")

	_, err := s.RemoveFolder(fid)
	require.NoError(t, err)
	_, ok := s.Task(tid)
	require.False(t, ok)
}

func TestSwapFolders(t *testing.T) {
	s, kv := newTestStore(t)
	a := mustCreateFolder(t, s, "A")
	b := mustCreateFolder(t, s, "B")

	changed, err := s.SwapFolders(model.RewardsFolderID, b)
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, []string{b, a, model.RewardsFolderID}, folderIDs(s.ListFolders()))
	require.Equal(t, []string{b, a, model.RewardsFolderID}, folderIDs(persisted(t, kv)))
}

func TestSwaps_EqualEndpointsAreIdentity(t *testing.T) {
	s, kv := newTestStore(t)
	fid := mustCreateFolder(t, s, "A")
	tid := mustCreateTask(t, s, fid, "T")
	_, err := s.AddStep(tid, "one")
	require.NoError(t, err)
	_, err = s.AddStep(tid, "two")
	require.NoError(t, err)
	before := persisted(t, kv)

	var fired int
	unsub := s.Subscribe(func(Change) { fired++ })
	defer unsub()

	changed, err := s.SwapFolders(fid, fid)
	require.NoError(t, err)
	require.False(t, changed)
	changed, err = s.SwapTasks(fid, tid, tid)
	require.NoError(t, err)
	require.False(t, changed)
	changed, err = s.SwapSteps(tid, 1, 1)
	require.NoError(t, err)
	require.False(t, changed)

	require.Zero(t, fired)
	require.Equal(t, before, persisted(t, kv))
}

func TestTasks_CreateRenameRemove(t *testing.T) {
	s, kv := newTestStore(t)
	fid := mustCreateFolder(t, s, "A")

	id, err := s.CreateTask("fld-missing", "T")
	require.NoError(t, err)
	require.Empty(t, id)
	id, err = s.CreateTask(fid, "  ")
	require.NoError(t, err)
	require.Empty(t, id)

	t1 := mustCreateTask(t, s, fid, "First")
	t2 := mustCreateTask(t, s, fid, "Second")
	tasks, ok := s.ListTasks(fid)
	require.True(t, ok)
	require.Equal(t, []string{t1, t2}, taskIDs(tasks))
	require.Equal(t, []string{}, tasks[0].Steps)

	changed, err := s.RenameTask(t1, "Premier")
	require.NoError(t, err)
	require.True(t, changed)
	task, _ := s.Task(t1)
	require.Equal(t, "Premier", task.Name)

	// Wrong folder: no-op.
	other := mustCreateFolder(t, s, "B")
	changed, err = s.RemoveTask(other, t1)
	require.NoError(t, err)
	require.False(t, changed)

	changed, err = s.RemoveTask(fid, t1)
	require.NoError(t, err)
	require.True(t, changed)
	tasks, _ = s.ListTasks(fid)
	require.Equal(t, []string{t2}, taskIDs(tasks))
	require.Equal(t, []string{t2}, taskIDs(persisted(t, kv)[1].Tasks))
}

func TestMoveTask_AppendsAtDestinationAndPreservesOthers(t *testing.T) {
	s, _ := newTestStore(t)
	src := mustCreateFolder(t, s, "Src")
	dst := mustCreateFolder(t, s, "Dst")
	bystander := mustCreateFolder(t, s, "Other")

	s1 := mustCreateTask(t, s, src, "s1")
	s2 := mustCreateTask(t, s, src, "s2")
	s3 := mustCreateTask(t, s, src, "s3")
	d1 := mustCreateTask(t, s, dst, "d1")
	o1 := mustCreateTask(t, s, bystander, "o1")
	_, err := s.AddStep(s2, "keep me")
	require.NoError(t, err)

	foldersBefore := folderIDs(s.ListFolders())

	changed, err := s.MoveTask(s2, src, dst)
	require.NoError(t, err)
	require.True(t, changed)

	srcTasks, _ := s.ListTasks(src)
	dstTasks, _ := s.ListTasks(dst)
	otherTasks, _ := s.ListTasks(bystander)
	require.Equal(t, []string{s1, s3}, taskIDs(srcTasks))
	require.Equal(t, []string{d1, s2}, taskIDs(dstTasks))
	require.Equal(t, []string{o1}, taskIDs(otherTasks))
	require.Equal(t, foldersBefore, folderIDs(s.ListFolders()))

	moved, _ := s.Task(s2)
	require.Equal(t, []string{"keep me"}, moved.Steps)
	owner, ok := s.FolderOfTask(s2)
	require.True(t, ok)
	require.Equal(t, dst, owner.ID)

	// Exactly one copy in the whole collection.
	count := 0
	for _, f := range s.ListFolders() {
		for _, task := range f.Tasks {
			if task.ID == s2 {
				count++
			}
		}
	}
	require.Equal(t, 1, count)
}

func TestMoveTask_NoOps(t *testing.T) {
	s, _ := newTestStore(t)
	a := mustCreateFolder(t, s, "A")
	b := mustCreateFolder(t, s, "B")
	ta := mustCreateTask(t, s, a, "ta")
	before := s.ListFolders()

	cases := []struct {
		name         string
		task, fr, to string
	}{
		{"missing source", ta, "fld-missing", b},
		{"missing destination", ta, a, "fld-missing"},
		{"task not in source", ta, b, a},
		{"same folder", ta, a, a},
		{"unknown task", "task-missing", a, b},
	}
	for _, tc := range cases {
		changed, err := s.MoveTask(tc.task, tc.fr, tc.to)
		require.NoError(t, err, tc.name)
		require.False(t, changed, tc.name)
	}
	require.Equal(t, before, s.ListFolders())
}

func TestSwapTasks(t *testing.T) {
	s, _ := newTestStore(t)
	fid := mustCreateFolder(t, s, "A")
	other := mustCreateFolder(t, s, "B")
	t1 := mustCreateTask(t, s, fid, "1")
	t2 := mustCreateTask(t, s, fid, "2")
	t3 := mustCreateTask(t, s, fid, "3")
	tb := mustCreateTask(t, s, other, "b")

	changed, err := s.SwapTasks(fid, t1, t3)
	require.NoError(t, err)
	require.True(t, changed)
	tasks, _ := s.ListTasks(fid)
	require.Equal(t, []string{t3, t2, t1}, taskIDs(tasks))

	// Endpoint in another folder.
	changed, err = s.SwapTasks(fid, t1, tb)
	require.NoError(t, err)
	require.False(t, changed)
}

func TestSteps_ExampleScenario(t *testing.T) {
	s, kv := newTestStore(t)
	fid := mustCreateFolder(t, s, "Chores")
	tid := mustCreateTask(t, s, fid, "Dishes")
	for _, st := range []string{"Rinse", "Scrub", "Dry"} {
		changed, err := s.AddStep(tid, st)
		require.NoError(t, err)
		require.True(t, changed)
	}

	changed, err := s.SwapSteps(tid, 0, 2)
	require.NoError(t, err)
	require.True(t, changed)
	steps, ok := s.ListSteps(tid)
	require.True(t, ok)
	require.Equal(t, []string{"Dry", "Scrub", "Rinse"}, steps)

	changed, err = s.RemoveStep(tid, 1)
	require.NoError(t, err)
	require.True(t, changed)
	steps, _ = s.ListSteps(tid)
	require.Equal(t, []string{"Dry", "Rinse"}, steps)
	require.Equal(t, []string{"Dry", "Rinse"}, persisted(t, kv)[1].Tasks[0].Steps)
}

func TestSteps_EditAndBounds(t *testing.T) {
	s, _ := newTestStore(t)
	fid := mustCreateFolder(t, s, "A")
	tid := mustCreateTask(t, s, fid, "T")

	changed, err := s.AddStep(tid, "   ")
	require.NoError(t, err)
	require.False(t, changed)
	changed, err = s.AddStep("task-missing", "x")
	require.NoError(t, err)
	require.False(t, changed)

	_, err = s.AddStep(tid, "a")
	require.NoError(t, err)
	_, err = s.AddStep(tid, "b")
	require.NoError(t, err)

	changed, err = s.EditStep(tid, 1, "  B  ")
	require.NoError(t, err)
	require.True(t, changed)

	for _, idx := range []int{-1, 2, 99} {
		changed, err = s.EditStep(tid, idx, "x")
		require.NoError(t, err)
		require.False(t, changed)
		changed, err = s.RemoveStep(tid, idx)
		require.NoError(t, err)
		require.False(t, changed)
		changed, err = s.SwapSteps(tid, 0, idx)
		require.NoError(t, err)
		require.False(t, changed)
	}
	changed, err = s.EditStep(tid, 0, "")
	require.NoError(t, err)
	require.False(t, changed)

	steps, _ := s.ListSteps(tid)
	require.Equal(t, []string{"a", "B"}, steps)
}

func TestRemoveStep_ShiftsLaterStepsAndEmpties(t *testing.T) {
	s, _ := newTestStore(t)
	fid := mustCreateFolder(t, s, "A")
	tid := mustCreateTask(t, s, fid, "T")
	for _, st := range []string{"a", "b", "c", "d"} {
		_, err := s.AddStep(tid, st)
		require.NoError(t, err)
	}

	_, err := s.RemoveStep(tid, 1)
	require.NoError(t, err)
	steps, _ := s.ListSteps(tid)
	require.Equal(t, []string{"a", "c", "d"}, steps)

	for len(steps) > 0 {
		_, err = s.RemoveStep(tid, 0)
		require.NoError(t, err)
		steps, _ = s.ListSteps(tid)
	}
	require.NotNil(t, steps)
	require.Empty(t, steps)
}

func TestText_IsNFCNormalized(t *testing.T) {
	s, _ := newTestStore(t)
	id := mustCreateFolder(t, s, "Cafe\u0301")
	f, _ := s.Folder(id)
	require.Equal(t, "Caf\u00e9", f.Name)

	// Same text in decomposed form is not a change.
	changed, err := s.RenameFolder(id, "Cafe\u0301")
	require.NoError(t, err)
	require.False(t, changed)
}

func TestAccessors_ReturnCopies(t *testing.T) {
	s, _ := newTestStore(t)
	fid := mustCreateFolder(t, s, "A")
	tid := mustCreateTask(t, s, fid, "T")
	_, err := s.AddStep(tid, "one")
	require.NoError(t, err)

	steps, _ := s.ListSteps(tid)
	steps[0] = "mutated"
	fs := s.ListFolders()
	fs[1].Tasks[0].Name = "mutated"

	task, _ := s.Task(tid)
	require.Equal(t, "T", task.Name)
	require.Equal(t, []string{"one"}, task.Steps)
}

func TestPersistFailure_LeavesStateUnchanged(t *testing.T) {
	s, kv := newTestStore(t)
	fid := mustCreateFolder(t, s, "A")
	before := s.ListFolders()

	var fired int
	s.Subscribe(func(Change) { fired++ })

	kv.FailPuts = errors.New("disk full")
	id, err := s.CreateTask(fid, "T")
	require.Error(t, err)
	require.ErrorIs(t, err, kv.FailPuts)
	require.Empty(t, id)

	changed, err := s.RenameFolder(fid, "B")
	require.Error(t, err)
	require.False(t, changed)

	require.Equal(t, before, s.ListFolders())
	require.Zero(t, fired)
}

func TestSubscribe_ReceivesChangesUntilUnsubscribed(t *testing.T) {
	s, _ := newTestStore(t)

	var got []Change
	unsub := s.Subscribe(func(c Change) {
		// Reading from the store inside a callback must not deadlock.
		_ = s.ListFolders()
		got = append(got, c)
	})

	fid := mustCreateFolder(t, s, "A")
	tid := mustCreateTask(t, s, fid, "T")
	_, err := s.AddStep(tid, "x")
	require.NoError(t, err)
	rid, err := s.AddReward("nap")
	require.NoError(t, err)

	require.Equal(t, []Change{
		{Op: "folder.create", Region: RegionFolders, FolderID: fid},
		{Op: "task.create", Region: RegionTasks, FolderID: fid, TaskID: tid},
		{Op: "step.add", Region: RegionSteps, FolderID: fid, TaskID: tid},
		{Op: "reward.add", Region: RegionRewards, FolderID: model.RewardsFolderID, TaskID: rid},
	}, got)

	unsub()
	mustCreateFolder(t, s, "B")
	require.Len(t, got, 4)
}

func TestIDs_StayUniqueUnderRandomOperations(t *testing.T) {
	kv := store.NewMemoryKV()
	// Real id generator, not the sequential test one.
	s, err := Open(context.Background(), store.NewSnapshot(kv, ""))
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(42))
	pickFolder := func() string {
		fs := s.ListFolders()
		return fs[rng.Intn(len(fs))].ID
	}
	pickTask := func() (string, string) {
		fs := s.ListFolders()
		f := fs[rng.Intn(len(fs))]
		if len(f.Tasks) == 0 {
			return f.ID, ""
		}
		return f.ID, f.Tasks[rng.Intn(len(f.Tasks))].ID
	}

	for i := 0; i < 400; i++ {
		switch rng.Intn(7) {
		case 0, 1:
			_, err = s.CreateFolder("f")
		case 2, 3:
			_, err = s.CreateTask(pickFolder(), "t")
		case 4:
			fid, tid := pickTask()
			_, err = s.MoveTask(tid, fid, pickFolder())
		case 5:
			_, err = s.RemoveFolder(pickFolder())
		case 6:
			_, err = s.AddReward("r")
		}
		require.NoError(t, err)

		seen := map[string]bool{}
		rewards := 0
		for _, f := range s.ListFolders() {
			require.False(t, seen[f.ID], "duplicate folder id %s", f.ID)
			seen[f.ID] = true
			if f.IsRewards {
				rewards++
			}
			for _, task := range f.Tasks {
				require.False(t, seen[task.ID], "duplicate task id %s", task.ID)
				seen[task.ID] = true
			}
		}
		require.Equal(t, 1, rewards)
	}
}
