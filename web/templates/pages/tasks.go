package pages

import (
	"github.com/a-h/templ"

	"taskmanager_web/internal/models"
	"taskmanager_web/web/templates/shared"
)

// TaskRow is one line of the task list with its action links
type TaskRow struct {
	Task        models.Task
	EditURL     string
	CompleteURL string
	DeleteURL   string
}

// TaskListProps feeds the task list page
type TaskListProps struct {
	shared.LayoutProps
	Rows []TaskRow
}

// TaskList renders every task with edit, complete and delete actions
func TaskList(props TaskListProps) templ.Component {
	return component("task_list.html", props)
}

// TaskFormProps feeds the create and edit form
type TaskFormProps struct {
	shared.LayoutProps
	IsEdit bool
	// Action is where the form posts to
	Action string
	Task   models.Task
	Error  string
}

// TaskForm renders the create or edit form
func TaskForm(props TaskFormProps) templ.Component {
	return component("task_form.html", props)
}

// ErrorPageProps feeds the error page
type ErrorPageProps struct {
	shared.LayoutProps
	ErrorTitle   string
	ErrorMessage string
	BackLink     string
	BackText     string
}

// ErrorPage renders a friendly error message
func ErrorPage(props ErrorPageProps) templ.Component {
	return component("error.html", props)
}
