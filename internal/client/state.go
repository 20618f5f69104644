package client

import "github.com/yukikurage/task-tracker-api/internal/dto"

// View is the screen the front end is showing.
type View int

const (
	ViewLanding View = iota
	ViewLogin
	ViewRegister
	ViewDashboard
)

func (v View) String() string {
	switch v {
	case ViewLanding:
		return "landing"
	case ViewLogin:
		return "login"
	case ViewRegister:
		return "register"
	case ViewDashboard:
		return "dashboard"
	default:
		return "unknown"
	}
}

// NoticeAccountCreated is shown on the login view after a registration.
const NoticeAccountCreated = "Account created! Please log in."

// State is the front-end state. It changes only through Reduce.
type State struct {
	View   View
	Token  string
	Tasks  []dto.TaskDTO
	Notice string
}

// NewState restores the initial state from a persisted token.
func NewState(token string) State {
	if token != "" {
		return State{View: ViewDashboard, Token: token, Tasks: []dto.TaskDTO{}}
	}
	return State{View: ViewLanding, Tasks: []dto.TaskDTO{}}
}

// Action is an event fed into Reduce.
type Action interface {
	isAction()
}

type (
	Navigate    struct{ To View }
	LoggedIn    struct{ Token string }
	Registered  struct{}
	LoggedOut   struct{}
	TasksLoaded struct {
		Tasks []dto.TaskDTO
		Err   error
	}
	TaskAdded   struct{ Task dto.TaskDTO }
	TaskToggled struct{ Task dto.TaskDTO }
	TaskRemoved struct{ ID string }
	Failed      struct{ Message string }
)

func (Navigate) isAction()    {}
func (LoggedIn) isAction()    {}
func (Registered) isAction()  {}
func (LoggedOut) isAction()   {}
func (TasksLoaded) isAction() {}
func (TaskAdded) isAction()   {}
func (TaskToggled) isAction() {}
func (TaskRemoved) isAction() {}
func (Failed) isAction()      {}

// Reduce returns the state that follows s after a. s is not modified.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case Navigate:
		s.Notice = ""
		if a.To == ViewDashboard && s.Token == "" {
			s.View = ViewLogin
			return s
		}
		s.View = a.To

	case LoggedIn:
		s.Token = a.Token
		s.Notice = ""
		s.View = ViewDashboard

	case Registered:
		s.View = ViewLogin
		s.Notice = NoticeAccountCreated

	case LoggedOut:
		return NewState("")

	case TasksLoaded:
		// A failed load means the token is no longer usable.
		if a.Err != nil {
			return NewState("")
		}
		s.Tasks = cloneTasks(a.Tasks)

	case TaskAdded:
		s.Tasks = append(cloneTasks(s.Tasks), a.Task)

	case TaskToggled:
		tasks := cloneTasks(s.Tasks)
		for i := range tasks {
			if tasks[i].ID == a.Task.ID {
				tasks[i] = a.Task
			}
		}
		s.Tasks = tasks

	case TaskRemoved:
		tasks := make([]dto.TaskDTO, 0, len(s.Tasks))
		for _, t := range s.Tasks {
			if t.ID != a.ID {
				tasks = append(tasks, t)
			}
		}
		s.Tasks = tasks

	case Failed:
		s.Notice = a.Message
	}
	return s
}

func cloneTasks(tasks []dto.TaskDTO) []dto.TaskDTO {
	out := make([]dto.TaskDTO, len(tasks))
	copy(out, tasks)
	return out
}
