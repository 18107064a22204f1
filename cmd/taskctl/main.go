package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/bytedance/sonic"
	log "github.com/sirupsen/logrus"

	"taskmanager_web/internal/config"
	"taskmanager_web/internal/models"
	"taskmanager_web/internal/router"
	"taskmanager_web/internal/services"
)

const usage = `Usage: taskctl [-api <url>] <command> [options]

Commands:
  list                                   List all tasks
  get <id>                               Show one task
  create -title <t> [-description <d>] [-completed]
  update <id> -title <t> [-description <d>] [-completed]
  complete <id>                          Mark a task as completed
  delete <id>                            Delete a task
  open <path>                            Resolve a page path and fetch what it shows
`

var errUsage = errors.New("invalid usage")

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger := cfg.NewLogger()

	apiURL := flag.String("api", cfg.API.BaseURL, "Task API base URL")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	tasks := services.NewTaskService(*apiURL, cfg.API.Timeout, logger)
	if err := run(ctx, tasks, flag.Args(), os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
		}
		if services.IsNotFound(err) {
			logger.Errorf("Not found: %v", err)
			os.Exit(2)
		}
		logger.Fatalf("%v", err)
	}
}

// run executes one command against the task API and prints the result as JSON
func run(ctx context.Context, tasks *services.TaskService, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "list":
		list, err := tasks.GetAllTasks(ctx)
		if err != nil {
			return err
		}
		return printJSON(out, list)

	case "get":
		id, err := idArg(rest)
		if err != nil {
			return err
		}
		task, err := tasks.GetTaskByID(ctx, id)
		if err != nil {
			return err
		}
		return printJSON(out, task)

	case "create":
		task, err := taskFlags("create", rest)
		if err != nil {
			return err
		}
		created, err := tasks.CreateTask(ctx, task)
		if err != nil {
			return err
		}
		return printJSON(out, created)

	case "update":
		id, err := idArg(rest)
		if err != nil {
			return err
		}
		task, err := taskFlags("update", rest[1:])
		if err != nil {
			return err
		}
		updated, err := tasks.UpdateTask(ctx, id, task)
		if err != nil {
			return err
		}
		return printJSON(out, updated)

	case "complete":
		id, err := idArg(rest)
		if err != nil {
			return err
		}
		task, err := tasks.MarkTaskCompleted(ctx, id)
		if err != nil {
			return err
		}
		return printJSON(out, task)

	case "delete":
		id, err := idArg(rest)
		if err != nil {
			return err
		}
		if err := tasks.DeleteTask(ctx, id); err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "deleted task %d\n", id)
		return err

	case "open":
		if len(rest) != 1 {
			return fmt.Errorf("open needs exactly one path: %w", errUsage)
		}
		return open(ctx, tasks, rest[0], out)

	default:
		return fmt.Errorf("unknown command %q: %w", cmd, errUsage)
	}
}

// open resolves path through the route table and performs the fetch the
// matched page would do on load
func open(ctx context.Context, tasks *services.TaskService, path string, out io.Writer) error {
	m, ok := router.Resolve(path)
	if !ok {
		return fmt.Errorf("no page for %s", path)
	}
	fmt.Fprintf(out, "route %s -> view %s\n", m.Route.Name, m.Route.View)

	switch m.Route.View {
	case router.ViewTaskList:
		list, err := tasks.GetAllTasks(ctx)
		if err != nil {
			return err
		}
		return printJSON(out, list)
	case router.ViewTaskForm:
		idStr, isEdit := m.Params["id"]
		if !isEdit {
			return printJSON(out, models.Task{})
		}
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid task id %q", idStr)
		}
		task, err := tasks.GetTaskByID(ctx, id)
		if err != nil {
			return err
		}
		return printJSON(out, task)
	default:
		return fmt.Errorf("view %s has nothing to fetch", m.Route.View)
	}
}

func idArg(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("missing task id: %w", errUsage)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q: %w", args[0], errUsage)
	}
	return id, nil
}

func taskFlags(name string, args []string) (models.Task, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	title := fs.String("title", "", "Task title (mandatory)")
	description := fs.String("description", "", "Task description")
	completed := fs.Bool("completed", false, "Mark the task as completed")

	if err := fs.Parse(args); err != nil {
		return models.Task{}, fmt.Errorf("%s: %v: %w", name, err, errUsage)
	}
	if *title == "" {
		return models.Task{}, fmt.Errorf("%s: -title is mandatory: %w", name, errUsage)
	}
	return models.Task{Title: *title, Description: *description, Completed: *completed}, nil
}

func printJSON(out io.Writer, v interface{}) error {
	data, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}
