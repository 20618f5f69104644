// taskctl is a terminal front end for the task tracker API. It keeps the
// login token in a YAML session file the way the web client keeps it in
// local storage.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/pflag"
	"github.com/yukikurage/task-tracker-api/internal/client"
	"github.com/yukikurage/task-tracker-api/internal/dto"
)

const defaultAPI = "http://localhost:3000"

var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type app struct {
	sessionPath string
	session     *client.Session
	state       client.State
	api         *client.Client
	out         io.Writer
}

func newApp(apiURL, sessionPath string, out io.Writer) (*app, error) {
	session, err := client.LoadSession(sessionPath)
	if err != nil {
		return nil, err
	}
	if apiURL == "" {
		apiURL = session.API
	}
	if apiURL == "" {
		apiURL = defaultAPI
	}
	session.API = apiURL

	return &app{
		sessionPath: sessionPath,
		session:     session,
		state:       client.NewState(session.Token),
		api:         client.New(apiURL, client.WithToken(session.Token)),
		out:         out,
	}, nil
}

func run(ctx context.Context, args []string, out io.Writer) error {
	var apiURL, sessionPath string

	flagSet := pflag.NewFlagSet("taskctl", pflag.ContinueOnError)
	flagSet.SetInterspersed(false)
	flagSet.StringVar(&apiURL, "api", "", "API base URL (default: saved session or "+defaultAPI+")")
	flagSet.StringVar(&sessionPath, "state-file", client.DefaultSessionPath(), "path to the session file")
	flagSet.Usage = func() { printHelp(flagSet) }

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	rest := flagSet.Args()
	if len(rest) == 0 {
		printHelp(flagSet)
		return errUsage
	}

	a, err := newApp(apiURL, sessionPath, out)
	if err != nil {
		return err
	}
	if err := a.execute(ctx, rest[0], rest[1:]); err != nil {
		if errors.Is(err, errUnknownCommand) {
			printHelp(flagSet)
		}
		return err
	}
	return nil
}

var errUnknownCommand = errors.New("unknown command")

func (a *app) execute(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		return a.register(ctx, args)
	case "login":
		return a.login(ctx, args)
	case "logout":
		return a.logout()
	case "list":
		return a.list(ctx)
	case "add":
		return a.add(ctx, args)
	case "toggle":
		return a.toggle(ctx, args)
	case "delete":
		return a.delete(ctx, args)
	default:
		return fmt.Errorf("%w %q", errUnknownCommand, command)
	}
}

// dispatch applies action to the state and keeps the session file in step
// with the resulting token.
func (a *app) dispatch(action client.Action) error {
	a.state = client.Reduce(a.state, action)
	if a.state.Token == a.session.Token {
		return nil
	}

	a.session.Token = a.state.Token
	a.api.Token = a.state.Token
	if a.state.Token == "" {
		a.session.Username = ""
		if err := client.ClearSession(a.sessionPath); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Logged out")
		return nil
	}
	return client.SaveSession(a.sessionPath, a.session)
}

// fail records err as the visible notice. A token the server rejects ends
// the session.
func (a *app) fail(err error) error {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Status == http.StatusUnauthorized {
			return errors.Join(err, a.dispatch(client.LoggedOut{}))
		}
		return errors.Join(err, a.dispatch(client.Failed{Message: apiErr.Message}))
	}
	return errors.Join(err, a.dispatch(client.Failed{Message: err.Error()}))
}

func (a *app) register(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: taskctl register <username> <password>")
	}
	if err := a.dispatch(client.Navigate{To: client.ViewRegister}); err != nil {
		return err
	}
	if err := a.api.Register(ctx, args[0], args[1]); err != nil {
		return a.fail(err)
	}
	if err := a.dispatch(client.Registered{}); err != nil {
		return err
	}
	fmt.Fprintln(a.out, a.state.Notice)
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: taskctl login <username> <password>")
	}
	if err := a.dispatch(client.Navigate{To: client.ViewLogin}); err != nil {
		return err
	}
	res, err := a.api.Login(ctx, args[0], args[1])
	if err != nil {
		return a.fail(err)
	}

	a.session.Username = res.Username
	if err := a.dispatch(client.LoggedIn{Token: res.Token}); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Logged in as %s\n", res.Username)
	return nil
}

func (a *app) logout() error {
	if a.state.Token == "" {
		fmt.Fprintln(a.out, "Not logged in")
	}
	return a.dispatch(client.LoggedOut{})
}

func (a *app) list(ctx context.Context) error {
	if err := a.openDashboard(); err != nil {
		return err
	}
	tasks, err := a.api.ListTasks(ctx)
	if dispatchErr := a.dispatch(client.TasksLoaded{Tasks: tasks, Err: err}); dispatchErr != nil {
		return errors.Join(err, dispatchErr)
	}
	if err != nil {
		return fmt.Errorf("%w (session cleared, log in again)", err)
	}

	if len(a.state.Tasks) == 0 {
		fmt.Fprintln(a.out, "No tasks yet.")
		return nil
	}
	for _, task := range a.state.Tasks {
		printTask(a.out, task)
	}
	return nil
}

func (a *app) add(ctx context.Context, args []string) error {
	if err := a.openDashboard(); err != nil {
		return err
	}
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return fmt.Errorf("usage: taskctl add <title>")
	}
	task, err := a.api.CreateTask(ctx, title)
	if err != nil {
		return a.fail(err)
	}
	if err := a.dispatch(client.TaskAdded{Task: *task}); err != nil {
		return err
	}
	printTask(a.out, *task)
	return nil
}

func (a *app) toggle(ctx context.Context, args []string) error {
	if err := a.openDashboard(); err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("usage: taskctl toggle <id>")
	}
	task, err := a.api.ToggleTask(ctx, args[0])
	if err != nil {
		return a.fail(err)
	}
	if err := a.dispatch(client.TaskToggled{Task: *task}); err != nil {
		return err
	}
	printTask(a.out, *task)
	return nil
}

func (a *app) delete(ctx context.Context, args []string) error {
	if err := a.openDashboard(); err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("usage: taskctl delete <id>")
	}
	if err := a.api.DeleteTask(ctx, args[0]); err != nil {
		return a.fail(err)
	}
	if err := a.dispatch(client.TaskRemoved{ID: args[0]}); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Task deleted")
	return nil
}

// openDashboard navigates to the task view, which requires a token.
func (a *app) openDashboard() error {
	if err := a.dispatch(client.Navigate{To: client.ViewDashboard}); err != nil {
		return err
	}
	if a.state.View != client.ViewDashboard {
		return fmt.Errorf("not logged in, run \"taskctl login\" first")
	}
	return nil
}

func printTask(w io.Writer, task dto.TaskDTO) {
	mark := " "
	if task.IsCompleted {
		mark = "x"
	}
	fmt.Fprintf(w, "[%s] %s  %s\n", mark, task.ID, task.Title)
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `taskctl manages your tasks on a task tracker server.

Usage:
  taskctl [flags] <command> [args]

Commands:
  register <username> <password>   create an account
  login <username> <password>      log in and save the token
  logout                           forget the saved token
  list                             list your tasks
  add <title>                      add a task
  toggle <id>                      flip a task between done and not done
  delete <id>                      delete a task

Flags:
%s`, flagSet.FlagUsages())
}
