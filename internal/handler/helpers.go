package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"beacon/internal/domain"
	"beacon/internal/httputil"
)

// respondDomainError maps a domain error onto the RFC 7807 response.
// Compile errors are a special case: the broken source file is a server
// problem, so readers get a generic 500 while the detail goes to the log.
func respondDomainError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var compileErr *domain.CompileError
	if errors.As(err, &compileErr) {
		logger.Error("compile error reached request path",
			"source", compileErr.File,
			"line", compileErr.Line,
			"detail", compileErr.Message,
			"request_id", httputil.GetRequestID(r),
		)
		httputil.RespondError(w, http.StatusInternalServerError, "document failed to render")
		return
	}

	var httpErr domain.HTTPError
	if errors.As(err, &httpErr) {
		httputil.RespondError(w, httpErr.StatusCode(), httpErr.Error())
		return
	}

	logger.Error("unexpected error",
		"error", err,
		"path", r.URL.Path,
		"request_id", httputil.GetRequestID(r),
	)
	httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
}
