package service_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dicapisar/taskboard/internal/domain"
	"github.com/dicapisar/taskboard/internal/repository/postgres"
	"github.com/dicapisar/taskboard/internal/service"
	"github.com/dicapisar/taskboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskService_CreateTask(t *testing.T) {
	cfg := testutil.TestConfig()
	testDB := testutil.NewTestDB(t)
	testCache := testutil.NewTestCache(t, cfg.CacheExpiration)
	repos := postgres.NewRepositories(testDB.DB, testCache.Repo)
	services := service.NewServices(repos, cfg)
	ctx := context.Background()

	due := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second)

	tests := []struct {
		name    string
		input   service.TaskInput
		wantErr error
		check   func(t *testing.T, task *domain.Task)
	}{
		{
			name:  "defaults applied",
			input: service.TaskInput{Title: "read chapter 3"},
			check: func(t *testing.T, task *domain.Task) {
				assert.Equal(t, domain.TaskStatusNotStarted, task.Status)
				assert.Equal(t, 1, task.Priority)
				assert.False(t, task.IsCompleted)
				assert.Nil(t, task.DueDate)
			},
		},
		{
			name: "all fields set",
			input: service.TaskInput{
				Title:       "submit assignment",
				Description: "upload the PDF before midnight",
				Priority:    3,
				DueDate:     &due,
				Status:      domain.TaskStatusInProgress,
				Subject:     "databases",
			},
			check: func(t *testing.T, task *domain.Task) {
				assert.Equal(t, domain.TaskStatusInProgress, task.Status)
				assert.Equal(t, 3, task.Priority)
				assert.Equal(t, "databases", task.Subject)
				require.NotNil(t, task.DueDate)
				assert.WithinDuration(t, due, *task.DueDate, time.Second)
			},
		},
		{
			name:    "empty title rejected",
			input:   service.TaskInput{Title: "   "},
			wantErr: domain.ErrEmptyTaskTitle,
		},
		{
			name:    "invalid status rejected",
			input:   service.TaskInput{Title: "valid", Status: domain.TaskStatus("paused")},
			wantErr: domain.ErrInvalidStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testDB.Truncate(t)

			owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

			task, err := services.Task.CreateTask(ctx, owner.ID, tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.NotZero(t, task.ID)
			assert.Equal(t, owner.ID, task.OwnerID)
			tt.check(t, task)
		})
	}
}

func TestTaskService_OwnershipScoping(t *testing.T) {
	cfg := testutil.TestConfig()
	testDB := testutil.NewTestDB(t)
	testCache := testutil.NewTestCache(t, cfg.CacheExpiration)
	repos := postgres.NewRepositories(testDB.DB, testCache.Repo)
	services := service.NewServices(repos, cfg)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	stranger, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	task := testutil.NewTaskBuilder(owner).WithTitle("private").Build(t, testDB.DB)

	// The owner sees the task.
	got, err := services.Task.GetTask(ctx, task.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "private", got.Title)

	// Everyone else gets not-found, never a permission error.
	_, err = services.Task.GetTask(ctx, task.ID, stranger.ID)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)

	_, err = services.Task.UpdateTask(ctx, task.ID, stranger.ID, service.TaskInput{Title: "hijacked"})
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)

	_, err = services.Task.ChangeTaskStatus(ctx, task.ID, stranger.ID, domain.TaskStatusCompleted)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)

	err = services.Task.DeleteTask(ctx, task.ID, stranger.ID)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)

	// The row is untouched after all of the stranger's attempts.
	got, err = services.Task.GetTask(ctx, task.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "private", got.Title)
}

func TestTaskService_GetTasksListsOnlyOwn(t *testing.T) {
	cfg := testutil.TestConfig()
	testDB := testutil.NewTestDB(t)
	testCache := testutil.NewTestCache(t, cfg.CacheExpiration)
	repos := postgres.NewRepositories(testDB.DB, testCache.Repo)
	services := service.NewServices(repos, cfg)
	ctx := context.Background()

	alice, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	bob, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	testutil.NewTaskBuilder(alice).WithTitle("a1").Build(t, testDB.DB)
	testutil.NewTaskBuilder(alice).WithTitle("a2").Build(t, testDB.DB)
	testutil.NewTaskBuilder(bob).WithTitle("b1").Build(t, testDB.DB)

	tasks, err := services.Task.GetTasks(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	for _, task := range tasks {
		assert.Equal(t, alice.ID, task.OwnerID)
	}

	tasks, err = services.Task.GetTasks(ctx, bob.ID)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestTaskService_ChangeTaskStatus(t *testing.T) {
	cfg := testutil.TestConfig()
	testDB := testutil.NewTestDB(t)
	testCache := testutil.NewTestCache(t, cfg.CacheExpiration)
	repos := postgres.NewRepositories(testDB.DB, testCache.Repo)
	services := service.NewServices(repos, cfg)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	task := testutil.NewTaskBuilder(owner).WithStatus(domain.TaskStatusCompleted).Build(t, testDB.DB)

	// Any transition between valid states is allowed, including
	// moving backwards from completed.
	for _, status := range []domain.TaskStatus{
		domain.TaskStatusNotStarted,
		domain.TaskStatusBlocked,
		domain.TaskStatusInProgress,
		domain.TaskStatusCompleted,
	} {
		updated, err := services.Task.ChangeTaskStatus(ctx, task.ID, owner.ID, status)
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}

	_, err := services.Task.ChangeTaskStatus(ctx, task.ID, owner.ID, domain.TaskStatus("archived"))
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestTaskService_UpdateTask(t *testing.T) {
	cfg := testutil.TestConfig()
	testDB := testutil.NewTestDB(t)
	testCache := testutil.NewTestCache(t, cfg.CacheExpiration)
	repos := postgres.NewRepositories(testDB.DB, testCache.Repo)
	services := service.NewServices(repos, cfg)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	task := testutil.NewTaskBuilder(owner).WithTitle("before").WithPriority(1).Build(t, testDB.DB)

	updated, err := services.Task.UpdateTask(ctx, task.ID, owner.ID, service.TaskInput{
		Title:       "after",
		Description: "rewritten",
		IsCompleted: true,
		Priority:    5,
		Status:      domain.TaskStatusCompleted,
		Subject:     "algorithms",
	})
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Title)
	assert.Equal(t, "rewritten", updated.Description)
	assert.True(t, updated.IsCompleted)
	assert.Equal(t, 5, updated.Priority)
	assert.Equal(t, domain.TaskStatusCompleted, updated.Status)
	assert.Equal(t, "algorithms", updated.Subject)

	// The change is durable, not just reflected in the return value.
	got, err := services.Task.GetTask(ctx, task.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", got.Title)
}

func TestTaskService_DeleteTask(t *testing.T) {
	cfg := testutil.TestConfig()
	testDB := testutil.NewTestDB(t)
	testCache := testutil.NewTestCache(t, cfg.CacheExpiration)
	repos := postgres.NewRepositories(testDB.DB, testCache.Repo)
	services := service.NewServices(repos, cfg)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	task := testutil.NewTaskBuilder(owner).Build(t, testDB.DB)

	require.NoError(t, services.Task.DeleteTask(ctx, task.ID, owner.ID))

	_, err := services.Task.GetTask(ctx, task.ID, owner.ID)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)

	// Deleting the same task again is not-found.
	err = services.Task.DeleteTask(ctx, task.ID, owner.ID)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestTaskService_ConcurrentCreates(t *testing.T) {
	cfg := testutil.TestConfig()
	testDB := testutil.NewTestDB(t)
	testCache := testutil.NewTestCache(t, cfg.CacheExpiration)
	repos := postgres.NewRepositories(testDB.DB, testCache.Repo)
	services := service.NewServices(repos, cfg)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	const workers = 8

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = services.Task.CreateTask(ctx, owner.ID, service.TaskInput{
				Title: fmt.Sprintf("task %d", i),
			})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "worker %d", i)
	}

	tasks, err := services.Task.GetTasks(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, tasks, workers)
}
