package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/dicapisar/taskboard/internal/domain"
	"github.com/dicapisar/taskboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func taskURL(ts *testutil.TestServer, id int, suffix string) string {
	return ts.APIURL(fmt.Sprintf("/tasks/%d%s", id, suffix))
}

func TestTaskHandler_CreateAndGet(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, cookie := testutil.NewUserBuilder().BuildAndLogin(t, ts)

	resp := doJSON(t, http.MethodPost, ts.APIURL("/tasks/"), cookie, map[string]any{
		"title":    "write report",
		"priority": 2,
		"subject":  "economics",
	})
	defer resp.Body.Close()

	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	var created domain.Task
	testutil.DecodeResponse(t, resp, &created)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "write report", created.Title)
	assert.Equal(t, 2, created.Priority)
	assert.Equal(t, domain.TaskStatusNotStarted, created.Status)

	getResp := doJSON(t, http.MethodGet, taskURL(ts, created.ID, ""), cookie, nil)
	defer getResp.Body.Close()

	testutil.AssertStatusCode(t, getResp, http.StatusOK)

	var fetched domain.Task
	testutil.DecodeResponse(t, getResp, &fetched)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "write report", fetched.Title)
}

func TestTaskHandler_CreateValidation(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, cookie := testutil.NewUserBuilder().BuildAndLogin(t, ts)

	tests := []struct {
		name    string
		body    map[string]any
		wantMsg string
	}{
		{
			name:    "empty title",
			body:    map[string]any{"title": ""},
			wantMsg: "Task title is required",
		},
		{
			name:    "invalid status",
			body:    map[string]any{"title": "ok", "status": "paused"},
			wantMsg: "Invalid task status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, http.MethodPost, ts.APIURL("/tasks/"), cookie, tt.body)
			defer resp.Body.Close()

			testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, tt.wantMsg)
		})
	}
}

func TestTaskHandler_ListScopedToOwner(t *testing.T) {
	ts := testutil.NewTestServer(t)

	alice, aliceCookie := testutil.NewUserBuilder().BuildAndLogin(t, ts)
	bob, bobCookie := testutil.NewUserBuilder().BuildAndLogin(t, ts)

	testutil.NewTaskBuilder(alice).WithTitle("a1").Build(t, ts.DB.DB)
	testutil.NewTaskBuilder(alice).WithTitle("a2").Build(t, ts.DB.DB)
	testutil.NewTaskBuilder(bob).WithTitle("b1").Build(t, ts.DB.DB)

	resp := doJSON(t, http.MethodGet, ts.APIURL("/tasks/"), aliceCookie, nil)
	defer resp.Body.Close()

	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var tasks []domain.Task
	testutil.DecodeResponse(t, resp, &tasks)
	require.Len(t, tasks, 2)
	for _, task := range tasks {
		assert.Equal(t, alice.ID, task.OwnerID)
	}

	bobResp := doJSON(t, http.MethodGet, ts.APIURL("/tasks/"), bobCookie, nil)
	defer bobResp.Body.Close()

	var bobTasks []domain.Task
	testutil.DecodeResponse(t, bobResp, &bobTasks)
	assert.Len(t, bobTasks, 1)
}

func TestTaskHandler_ForeignTaskIsNotFound(t *testing.T) {
	ts := testutil.NewTestServer(t)

	alice, _ := testutil.NewUserBuilder().BuildAndLogin(t, ts)
	_, bobCookie := testutil.NewUserBuilder().BuildAndLogin(t, ts)

	task := testutil.NewTaskBuilder(alice).Build(t, ts.DB.DB)

	for _, attempt := range []struct {
		method string
		url    string
		body   any
	}{
		{http.MethodGet, taskURL(ts, task.ID, ""), nil},
		{http.MethodPut, taskURL(ts, task.ID, ""), map[string]any{"title": "hijacked"}},
		{http.MethodPost, taskURL(ts, task.ID, "/status"), map[string]any{"status": "completed"}},
		{http.MethodDelete, taskURL(ts, task.ID, ""), nil},
	} {
		resp := doJSON(t, attempt.method, attempt.url, bobCookie, attempt.body)
		testutil.AssertErrorResponse(t, resp, http.StatusNotFound, "Task not found")
		resp.Body.Close()
	}
}

func TestTaskHandler_Update(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, cookie := testutil.NewUserBuilder().BuildAndLogin(t, ts)
	task := testutil.NewTaskBuilder(user).WithTitle("before").Build(t, ts.DB.DB)

	resp := doJSON(t, http.MethodPut, taskURL(ts, task.ID, ""), cookie, map[string]any{
		"title":        "after",
		"description":  "rewritten",
		"is_completed": true,
		"priority":     4,
		"status":       "completed",
	})
	defer resp.Body.Close()

	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var updated domain.Task
	testutil.DecodeResponse(t, resp, &updated)
	assert.Equal(t, "after", updated.Title)
	assert.True(t, updated.IsCompleted)
	assert.Equal(t, 4, updated.Priority)
	assert.Equal(t, domain.TaskStatusCompleted, updated.Status)
}

func TestTaskHandler_ChangeStatus(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, cookie := testutil.NewUserBuilder().BuildAndLogin(t, ts)
	task := testutil.NewTaskBuilder(user).WithStatus(domain.TaskStatusNotStarted).Build(t, ts.DB.DB)

	resp := doJSON(t, http.MethodPost, taskURL(ts, task.ID, "/status"), cookie, map[string]any{
		"status": "in_progress",
	})
	defer resp.Body.Close()

	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var updated domain.Task
	testutil.DecodeResponse(t, resp, &updated)
	assert.Equal(t, domain.TaskStatusInProgress, updated.Status)

	bad := doJSON(t, http.MethodPost, taskURL(ts, task.ID, "/status"), cookie, map[string]any{
		"status": "archived",
	})
	defer bad.Body.Close()

	testutil.AssertErrorResponse(t, bad, http.StatusBadRequest, "Invalid task status")
}

func TestTaskHandler_Delete(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, cookie := testutil.NewUserBuilder().BuildAndLogin(t, ts)
	task := testutil.NewTaskBuilder(user).Build(t, ts.DB.DB)

	resp := doJSON(t, http.MethodDelete, taskURL(ts, task.ID, ""), cookie, nil)
	defer resp.Body.Close()

	testutil.AssertStatusCode(t, resp, http.StatusOK)

	gone := doJSON(t, http.MethodGet, taskURL(ts, task.ID, ""), cookie, nil)
	defer gone.Body.Close()

	testutil.AssertErrorResponse(t, gone, http.StatusNotFound, "Task not found")
}

func TestTaskHandler_InvalidID(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, cookie := testutil.NewUserBuilder().BuildAndLogin(t, ts)

	resp := doJSON(t, http.MethodGet, ts.APIURL("/tasks/abc"), cookie, nil)
	defer resp.Body.Close()

	testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "Invalid task id")
}
