package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/wonny/revenue-risk/internal/contracts"
)

type requestIDKey struct{}

// WithRequestID 요청 ID 를 context 에 저장
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID context 의 요청 ID (없으면 빈 문자열)
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Health returns server health status
func Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"service": "revenue-risk-api",
	})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// statusForError 입력 오류 → 400, 그 외 → 500
func statusForError(err error) int {
	if contracts.IsInputError(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
