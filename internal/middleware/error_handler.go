package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"taskmanager_web/internal/services"
	"taskmanager_web/web/templates/pages"
	"taskmanager_web/web/templates/shared"
)

// statusClientClosedRequest is recorded when the browser went away before
// the page was ready
const statusClientClosedRequest = 499

// errorPage is what the user sees for a failed request
type errorPage struct {
	code    int
	title   string
	message string
	// quiet pages are not worth more than a debug line and get no body
	quiet bool
}

// CustomErrorHandler creates a custom error handler for Echo.
// Unmatched routes and missing tasks become a 404 page, task API
// failures become 502 unless the API rejected the request itself.
func CustomErrorHandler(logger *log.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		page := classify(err)

		entry := logger.WithError(err).WithFields(log.Fields{
			"method": c.Request().Method,
			"path":   c.Request().URL.Path,
			"status": page.code,
		})
		if page.quiet {
			entry.Debug("request cancelled")
			_ = c.NoContent(page.code)
			return
		}
		if page.code >= http.StatusInternalServerError {
			entry.Error("request failed")
		} else {
			entry.Warn("request failed")
		}

		props := pages.ErrorPageProps{
			LayoutProps: shared.LayoutProps{
				Title: page.title,
				Breadcrumbs: []shared.Breadcrumb{
					{Title: "Tasks", URL: "/"},
					{Title: "Error", URL: ""},
				},
			},
			ErrorTitle:   page.title,
			ErrorMessage: page.message,
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(page.code)
			return
		}

		var buf bytes.Buffer
		if renderErr := pages.ErrorPage(props).Render(c.Request().Context(), &buf); renderErr != nil {
			// Fallback to plain text if template fails
			logger.WithError(renderErr).Error("failed to render error page")
			_ = c.String(page.code, page.message)
			return
		}
		_ = c.HTMLBlob(page.code, buf.Bytes())
	}
}

func classify(err error) errorPage {
	if statusErr, ok := services.AsStatusError(err); ok {
		switch {
		case statusErr.StatusCode == http.StatusNotFound:
			return errorPage{
				code:    http.StatusNotFound,
				title:   "Task Not Found",
				message: messageOr(statusErr.Message, "The task you're looking for doesn't exist."),
			}
		case statusErr.StatusCode < http.StatusInternalServerError:
			return errorPage{
				code:    statusErr.StatusCode,
				title:   "Request Rejected",
				message: messageOr(statusErr.Message, "The task service rejected the request."),
			}
		default:
			return errorPage{
				code:    http.StatusBadGateway,
				title:   "Task Service Unavailable",
				message: "The task service failed to answer. Please try again later.",
			}
		}
	}

	if errors.Is(err, context.Canceled) {
		return errorPage{
			code:    statusClientClosedRequest,
			title:   "Request Cancelled",
			message: "The request was cancelled.",
			quiet:   true,
		}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) || errors.Is(err, context.DeadlineExceeded) {
		return errorPage{
			code:    http.StatusBadGateway,
			title:   "Task Service Unavailable",
			message: "The task service could not be reached. Please try again later.",
		}
	}

	var he *echo.HTTPError
	if !errors.As(err, &he) {
		return errorPage{
			code:    http.StatusInternalServerError,
			title:   "Internal Server Error",
			message: "Something went wrong. Please try again later.",
		}
	}

	msg, _ := he.Message.(string)
	switch he.Code {
	case http.StatusNotFound:
		if msg == "" || msg == http.StatusText(http.StatusNotFound) {
			msg = "The page you're looking for doesn't exist."
		}
		return errorPage{code: he.Code, title: "Page Not Found", message: msg}
	case http.StatusMethodNotAllowed:
		return errorPage{code: he.Code, title: "Method Not Allowed", message: messageOr(msg, "That action is not available here.")}
	case http.StatusBadRequest:
		return errorPage{code: he.Code, title: "Bad Request", message: messageOr(msg, "The request could not be processed.")}
	default:
		return errorPage{code: he.Code, title: http.StatusText(he.Code), message: messageOr(msg, "Something went wrong. Please try again later.")}
	}
}

func messageOr(msg, fallback string) string {
	if msg == "" {
		return fallback
	}
	return msg
}
