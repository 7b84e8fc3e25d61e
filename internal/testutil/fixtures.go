package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/dicapisar/taskboard/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	username string
	email    string
	password string
	roleID   int
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		username: fmt.Sprintf("testuser_%s", suffix),
		email:    fmt.Sprintf("testuser_%s@example.com", suffix),
		password: "testpassword123",
		roleID:   domain.StudentRoleID,
	}
}

// WithUsername sets the username
func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.username = username
	return b
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// AsAdmin assigns the admin role
func (b *UserBuilder) AsAdmin() *UserBuilder {
	b.roleID = domain.AdminRoleID
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		Username:     b.username,
		Email:        b.email,
		PasswordHash: string(hashedPassword),
		IsActive:     true,
		RoleID:       b.roleID,
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// LoginData matches the data section of the login response
type LoginData struct {
	SessionID string `json:"session_id"`
	UserID    int    `json:"user_id"`
	UserName  string `json:"user_name"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"is_admin"`
}

// BuildAndLogin creates the user in the database and logs in through
// the API, returning the user and the session cookie.
func (b *UserBuilder) BuildAndLogin(t *testing.T, ts *TestServer) (*domain.User, *http.Cookie) {
	t.Helper()

	user, password := b.Build(t, ts.DB.DB)

	reqBody := map[string]string{
		"email":    user.Email,
		"password": password,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.APIURL("/login"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to log in: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected login status code: %d", resp.StatusCode)
	}

	for _, cookie := range resp.Cookies() {
		if cookie.Name == "session_id" {
			return user, cookie
		}
	}

	t.Fatal("login response did not set a session cookie")
	return nil, nil
}

// TaskBuilder creates test tasks with a builder pattern
type TaskBuilder struct {
	title    string
	owner    *domain.User
	status   domain.TaskStatus
	priority int
	dueDate  *time.Time
	subject  string
}

// NewTaskBuilder creates a new TaskBuilder with default values
func NewTaskBuilder(owner *domain.User) *TaskBuilder {
	return &TaskBuilder{
		title:    fmt.Sprintf("task_%s", uuid.New().String()[:8]),
		owner:    owner,
		status:   domain.TaskStatusNotStarted,
		priority: 1,
	}
}

// WithTitle sets the title
func (b *TaskBuilder) WithTitle(title string) *TaskBuilder {
	b.title = title
	return b
}

// WithStatus sets the status
func (b *TaskBuilder) WithStatus(status domain.TaskStatus) *TaskBuilder {
	b.status = status
	return b
}

// WithPriority sets the priority
func (b *TaskBuilder) WithPriority(priority int) *TaskBuilder {
	b.priority = priority
	return b
}

// WithDueDate sets the due date
func (b *TaskBuilder) WithDueDate(due time.Time) *TaskBuilder {
	b.dueDate = &due
	return b
}

// WithSubject sets the subject
func (b *TaskBuilder) WithSubject(subject string) *TaskBuilder {
	b.subject = subject
	return b
}

// Build creates the task in the database
func (b *TaskBuilder) Build(t *testing.T, db *gorm.DB) *domain.Task {
	t.Helper()

	task := &domain.Task{
		Title:    b.title,
		OwnerID:  b.owner.ID,
		Status:   b.status,
		Priority: b.priority,
		DueDate:  b.dueDate,
		Subject:  b.subject,
	}

	if err := db.Create(task).Error; err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	return task
}
