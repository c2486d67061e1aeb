package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/samandr77/microservices/acquiring/internal/entity"
)

type ErrorResponse struct {
	Message     string `json:"message"`
	Description string `json:"description,omitempty"`
}

func SendJSONErr(ctx context.Context, w http.ResponseWriter, code int, originErr error, msgToSend string) {
	if originErr == nil {
		originErr = errors.New(msgToSend)
	}

	if code >= http.StatusInternalServerError {
		slog.ErrorContext(ctx, "api error", "error", originErr.Error())
	} else {
		slog.WarnContext(ctx, "api error", "error", originErr.Error())
	}

	SendJSON(ctx, w, code, ErrorResponse{Message: msgToSend, Description: originErr.Error()})
}

func SendJSON(ctx context.Context, w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		slog.ErrorContext(ctx, "encode response", "error", err)
	}
}

// SendServiceErr maps service errors to HTTP status codes.
func SendServiceErr(ctx context.Context, w http.ResponseWriter, err error, msgToSend string) {
	switch {
	case errors.Is(err, entity.ErrInvalidArgument):
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Неверные параметры запроса")
	case errors.Is(err, entity.ErrUnauthenticated):
		SendJSONErr(ctx, w, http.StatusUnauthorized, err, "Пользователь не аутентифицирован")
	case errors.Is(err, entity.ErrForbidden):
		SendJSONErr(ctx, w, http.StatusForbidden, err, "Не хватает прав для выполнения действия")
	case errors.Is(err, entity.ErrNotFound):
		SendJSONErr(ctx, w, http.StatusNotFound, err, "Не найдено")
	case errors.Is(err, entity.ErrDismissNotAllowed):
		SendJSONErr(ctx, w, http.StatusConflict, err, "Платеж обрабатывается, закрыть нельзя")
	case errors.Is(err, entity.ErrAcquiring):
		SendJSONErr(ctx, w, http.StatusBadGateway, err, msgToSend)
	default:
		SendJSONErr(ctx, w, http.StatusInternalServerError, err, msgToSend)
	}
}
