package client

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yukikurage/task-tracker-api/internal/dto"
)

func TestNewState(t *testing.T) {
	assert.Equal(t, ViewLanding, NewState("").View)

	s := NewState("tok")
	assert.Equal(t, ViewDashboard, s.View)
	assert.Equal(t, "tok", s.Token)
}

func TestReduce(t *testing.T) {
	milk := dto.TaskDTO{ID: "1", Title: "buy milk"}
	eggs := dto.TaskDTO{ID: "2", Title: "eggs"}
	loggedIn := State{View: ViewDashboard, Token: "tok", Tasks: []dto.TaskDTO{milk, eggs}}

	tests := []struct {
		name   string
		start  State
		action Action
		check  func(t *testing.T, s State)
	}{
		{
			name:   "dashboard without token lands on login",
			start:  NewState(""),
			action: Navigate{To: ViewDashboard},
			check: func(t *testing.T, s State) {
				assert.Equal(t, ViewLogin, s.View)
			},
		},
		{
			name:   "navigate clears notice",
			start:  State{View: ViewLogin, Notice: NoticeAccountCreated},
			action: Navigate{To: ViewRegister},
			check: func(t *testing.T, s State) {
				assert.Equal(t, ViewRegister, s.View)
				assert.Empty(t, s.Notice)
			},
		},
		{
			name:   "registration moves to login",
			start:  State{View: ViewRegister},
			action: Registered{},
			check: func(t *testing.T, s State) {
				assert.Equal(t, ViewLogin, s.View)
				assert.Equal(t, NoticeAccountCreated, s.Notice)
				assert.Empty(t, s.Token)
			},
		},
		{
			name:   "login opens dashboard",
			start:  State{View: ViewLogin, Notice: NoticeAccountCreated},
			action: LoggedIn{Token: "tok"},
			check: func(t *testing.T, s State) {
				assert.Equal(t, ViewDashboard, s.View)
				assert.Equal(t, "tok", s.Token)
				assert.Empty(t, s.Notice)
			},
		},
		{
			name:   "logout clears everything",
			start:  loggedIn,
			action: LoggedOut{},
			check: func(t *testing.T, s State) {
				assert.Equal(t, ViewLanding, s.View)
				assert.Empty(t, s.Token)
				assert.Empty(t, s.Tasks)
			},
		},
		{
			name:   "failed load behaves as logout",
			start:  loggedIn,
			action: TasksLoaded{Err: errors.New("401")},
			check: func(t *testing.T, s State) {
				assert.Equal(t, ViewLanding, s.View)
				assert.Empty(t, s.Token)
				assert.Empty(t, s.Tasks)
			},
		},
		{
			name:   "tasks loaded",
			start:  State{View: ViewDashboard, Token: "tok"},
			action: TasksLoaded{Tasks: []dto.TaskDTO{milk}},
			check: func(t *testing.T, s State) {
				assert.Equal(t, []dto.TaskDTO{milk}, s.Tasks)
			},
		},
		{
			name:   "task added appends",
			start:  loggedIn,
			action: TaskAdded{Task: dto.TaskDTO{ID: "3", Title: "bread"}},
			check: func(t *testing.T, s State) {
				assert.Len(t, s.Tasks, 3)
				assert.Equal(t, "bread", s.Tasks[2].Title)
			},
		},
		{
			name:   "task toggled replaces in place",
			start:  loggedIn,
			action: TaskToggled{Task: dto.TaskDTO{ID: "2", Title: "eggs", IsCompleted: true}},
			check: func(t *testing.T, s State) {
				assert.False(t, s.Tasks[0].IsCompleted)
				assert.True(t, s.Tasks[1].IsCompleted)
			},
		},
		{
			name:   "task removed",
			start:  loggedIn,
			action: TaskRemoved{ID: "1"},
			check: func(t *testing.T, s State) {
				assert.Equal(t, []dto.TaskDTO{eggs}, s.Tasks)
			},
		},
		{
			name:   "failure sets notice",
			start:  State{View: ViewLogin},
			action: Failed{Message: "Invalid password"},
			check: func(t *testing.T, s State) {
				assert.Equal(t, ViewLogin, s.View)
				assert.Equal(t, "Invalid password", s.Notice)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, Reduce(tt.start, tt.action))
		})
	}
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	start := State{View: ViewDashboard, Token: "tok", Tasks: []dto.TaskDTO{{ID: "1"}}}

	Reduce(start, TaskToggled{Task: dto.TaskDTO{ID: "1", IsCompleted: true}})
	Reduce(start, TaskRemoved{ID: "1"})

	assert.Len(t, start.Tasks, 1)
	assert.False(t, start.Tasks[0].IsCompleted)
}

func TestView_String(t *testing.T) {
	assert.Equal(t, "dashboard", ViewDashboard.String())
	assert.Equal(t, "unknown", View(42).String())
}
