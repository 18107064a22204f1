package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"taskmanager_web/internal/models"
	"taskmanager_web/internal/router"
	"taskmanager_web/internal/services"
	"taskmanager_web/web/templates/pages"
	"taskmanager_web/web/templates/shared"
)

// notices shown on the list page after a redirect
var notices = map[string]string{
	"created":   "Task created.",
	"updated":   "Task updated.",
	"completed": "Task marked as completed.",
	"deleted":   "Task deleted.",
}

// TaskHandler serves the task pages and form actions
type TaskHandler struct {
	tasks  *services.TaskService
	logger *log.Logger
}

// NewTaskHandler creates the handler for the task pages. A nil logger
// falls back to the standard logrus logger.
func NewTaskHandler(tasks *services.TaskService, logger *log.Logger) *TaskHandler {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &TaskHandler{tasks: tasks, logger: logger}
}

// Views exposes the navigable pages for the route table
func (h *TaskHandler) Views() *router.Views {
	views := router.NewViews()
	views.Register(router.ViewTaskList, h.ListTasks)
	views.Register(router.ViewTaskForm, h.TaskFormPage)
	return views
}

// RegisterActions binds the form submission endpoints
func (h *TaskHandler) RegisterActions(e *echo.Echo) {
	e.POST(router.MustURLFor(router.RouteCreateTask, nil), h.StoreTask)
	e.POST(router.MustLookup(router.RouteEditTask).Path, h.UpdateTask)
	e.POST("/tasks/:id/complete", h.CompleteTask)
	e.POST("/tasks/:id/delete", h.DeleteTask)
}

// CompleteURL is the form action that marks task id completed
func CompleteURL(id int64) string {
	return fmt.Sprintf("/tasks/%d/complete", id)
}

// DeleteURL is the form action that deletes task id
func DeleteURL(id int64) string {
	return fmt.Sprintf("/tasks/%d/delete", id)
}

// ListTasks renders every task
func (h *TaskHandler) ListTasks(c echo.Context, _ router.Props) error {
	ctx := c.Request().Context()
	tasks, err := h.tasks.GetAllTasksAsync(ctx).Await(ctx)
	if err != nil {
		return err
	}

	rows := make([]pages.TaskRow, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, pages.TaskRow{
			Task:        t,
			EditURL:     editURL(t.ID),
			CompleteURL: CompleteURL(t.ID),
			DeleteURL:   DeleteURL(t.ID),
		})
	}

	props := pages.TaskListProps{
		LayoutProps: shared.LayoutProps{
			Title:     "Tasks",
			ActiveNav: router.RouteTasks,
			Breadcrumbs: []shared.Breadcrumb{
				{Title: "Tasks", URL: ""},
			},
			Flash: notices[c.QueryParam("notice")],
		},
		Rows: rows,
	}
	return render(c, http.StatusOK, pages.TaskList(props))
}

// TaskFormPage renders the create form, or the edit form when props carries an id
func (h *TaskHandler) TaskFormPage(c echo.Context, props router.Props) error {
	idStr, isEdit := props["id"]
	if !isEdit {
		return render(c, http.StatusOK, pages.TaskForm(createFormProps(models.Task{}, "")))
	}

	id, err := parseID(idStr)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	task, err := h.tasks.GetTaskByIDAsync(ctx, id).Await(ctx)
	if err != nil {
		return err
	}
	return render(c, http.StatusOK, pages.TaskForm(editFormProps(id, task, "")))
}

// StoreTask handles the create form submission
func (h *TaskHandler) StoreTask(c echo.Context) error {
	task := taskFromForm(c)

	created, err := h.tasks.CreateTask(c.Request().Context(), task)
	if err != nil {
		if msg, ok := rejection(err); ok {
			return render(c, http.StatusBadRequest, pages.TaskForm(createFormProps(task, msg)))
		}
		return err
	}

	h.logger.WithField("id", created.ID).Info("task created")
	return redirectToList(c, "created")
}

// UpdateTask handles the edit form submission
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return err
	}
	task := taskFromForm(c)

	if _, err := h.tasks.UpdateTask(c.Request().Context(), id, task); err != nil {
		if msg, ok := rejection(err); ok {
			return render(c, http.StatusBadRequest, pages.TaskForm(editFormProps(id, task, msg)))
		}
		return err
	}

	h.logger.WithField("id", id).Info("task updated")
	return redirectToList(c, "updated")
}

// CompleteTask marks a task as completed
func (h *TaskHandler) CompleteTask(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return err
	}
	if _, err := h.tasks.MarkTaskCompleted(c.Request().Context(), id); err != nil {
		return err
	}
	return redirectToList(c, "completed")
}

// DeleteTask removes a task
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return err
	}
	if err := h.tasks.DeleteTask(c.Request().Context(), id); err != nil {
		return err
	}

	h.logger.WithField("id", id).Info("task deleted")
	return redirectToList(c, "deleted")
}

// Healthz reports that the server is up
func Healthz(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func createFormProps(task models.Task, errMsg string) pages.TaskFormProps {
	return pages.TaskFormProps{
		LayoutProps: shared.LayoutProps{
			Title:     "Create Task",
			ActiveNav: router.RouteCreateTask,
			Breadcrumbs: []shared.Breadcrumb{
				{Title: "Tasks", URL: router.MustURLFor(router.RouteTasks, nil)},
				{Title: "Create Task", URL: ""},
			},
		},
		Action: router.MustURLFor(router.RouteCreateTask, nil),
		Task:   task,
		Error:  errMsg,
	}
}

func editFormProps(id int64, task models.Task, errMsg string) pages.TaskFormProps {
	return pages.TaskFormProps{
		LayoutProps: shared.LayoutProps{
			Title:     "Edit Task",
			ActiveNav: router.RouteEditTask,
			Breadcrumbs: []shared.Breadcrumb{
				{Title: "Tasks", URL: router.MustURLFor(router.RouteTasks, nil)},
				{Title: "Edit Task", URL: ""},
			},
		},
		IsEdit: true,
		Action: editURL(id),
		Task:   task,
		Error:  errMsg,
	}
}

func editURL(id int64) string {
	return router.MustURLFor(router.RouteEditTask, router.Props{"id": strconv.FormatInt(id, 10)})
}

func taskFromForm(c echo.Context) models.Task {
	return models.Task{
		Title:       strings.TrimSpace(c.FormValue("title")),
		Description: c.FormValue("description"),
		Completed:   c.FormValue("completed") == "on",
	}
}

// parseID turns a path id into a task id. Ids the API could never
// hold are reported as a missing task.
func parseID(value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound, "Task not found")
	}
	return id, nil
}

// rejection reports whether err is the API refusing the submitted
// fields, along with the message to show on the form
func rejection(err error) (string, bool) {
	statusErr, ok := services.AsStatusError(err)
	if !ok {
		return "", false
	}
	if statusErr.StatusCode != http.StatusBadRequest && statusErr.StatusCode != http.StatusUnprocessableEntity {
		return "", false
	}
	if statusErr.Message != "" {
		return statusErr.Message, true
	}
	return "The task could not be saved.", true
}

func redirectToList(c echo.Context, notice string) error {
	return c.Redirect(http.StatusSeeOther, router.MustURLFor(router.RouteTasks, nil)+"?notice="+notice)
}

func render(c echo.Context, code int, page templ.Component) error {
	var buf bytes.Buffer
	if err := page.Render(c.Request().Context(), &buf); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	return c.HTMLBlob(code, buf.Bytes())
}
