package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/wonny/revenue-risk/internal/contracts"
	"github.com/wonny/revenue-risk/internal/pipeline"
	"github.com/wonny/revenue-risk/internal/series"
	"github.com/wonny/revenue-risk/pkg/logger"
)

// 업로드 필드명 (multipart)
const formFieldFile = "file"

var validate = validator.New()

// forecastQuery /api/forecast 쿼리 파라미터
type forecastQuery struct {
	Horizon int `validate:"gte=1,lte=3"`
}

// PipelineHandler handles forecast/risk API endpoints
// ⭐ SSOT: 파이프라인 API 핸들러는 이 구조체에서만
type PipelineHandler struct {
	orchestrator   *pipeline.Orchestrator
	preparer       *series.Preparer
	maxUploadBytes int64
	logger         *logger.Logger
}

// NewPipelineHandler creates a new pipeline handler
func NewPipelineHandler(
	orchestrator *pipeline.Orchestrator,
	preparer *series.Preparer,
	maxUploadBytes int64,
	log *logger.Logger,
) *PipelineHandler {
	return &PipelineHandler{
		orchestrator:   orchestrator,
		preparer:       preparer,
		maxUploadBytes: maxUploadBytes,
		logger:         log.WithField("component", "api.pipeline"),
	}
}

// Forecast runs the full pipeline on an uploaded CSV
// POST /api/forecast?horizon=3 (multipart "file" 또는 text/csv 본문)
func (h *PipelineHandler) Forecast(w http.ResponseWriter, r *http.Request) {
	query, err := h.parseQuery(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	revenue, status, err := h.readSeries(w, r)
	if err != nil {
		respondError(w, status, err.Error())
		return
	}

	result, narrative, err := h.orchestrator.RunWithNarrative(r.Context(), revenue, query.Horizon)
	if err != nil {
		h.logFailure(r, err)
		respondError(w, statusForError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, contracts.NewForecastResponse(result, narrative))
}

// Risk returns only the risk classification
// POST /api/risk
func (h *PipelineHandler) Risk(w http.ResponseWriter, r *http.Request) {
	revenue, status, err := h.readSeries(w, r)
	if err != nil {
		respondError(w, status, err.Error())
		return
	}

	result, err := h.orchestrator.RunDefault(r.Context(), revenue)
	if err != nil {
		h.logFailure(r, err)
		respondError(w, statusForError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, contracts.RiskResponse{
		Risk:           result.Risk.RiskLabel,
		CompositeScore: result.Risk.CompositeScore,
	})
}

// Config returns the active pipeline configuration and its hash
// GET /api/config
func (h *PipelineHandler) Config(w http.ResponseWriter, r *http.Request) {
	cfg := h.orchestrator.Config()
	hash, err := cfg.Hash()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to hash config")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"config": cfg,
		"hash":   hash,
	})
}

// parseQuery horizon 미지정 시 설정 기본값
func (h *PipelineHandler) parseQuery(r *http.Request) (forecastQuery, error) {
	query := forecastQuery{Horizon: h.orchestrator.Config().Horizon}

	if raw := r.URL.Query().Get("horizon"); raw != "" {
		horizon, err := strconv.Atoi(raw)
		if err != nil {
			return query, fmt.Errorf("horizon must be an integer")
		}
		query.Horizon = horizon
	}

	if err := validate.Struct(query); err != nil {
		return query, fmt.Errorf("horizon must be between 1 and 3")
	}
	return query, nil
}

// readSeries 요청 본문에서 CSV 를 읽어 월별 시계열로 변환
// 실패 시 응답 상태 코드도 함께 반환
func (h *PipelineHandler) readSeries(w http.ResponseWriter, r *http.Request) (contracts.RevenueSeries, int, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	body, closeFn, err := h.openUpload(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return contracts.RevenueSeries{}, http.StatusRequestEntityTooLarge, fmt.Errorf("upload exceeds %d bytes", h.maxUploadBytes)
		}
		return contracts.RevenueSeries{}, http.StatusBadRequest, err
	}
	defer closeFn()

	revenue, err := h.preparer.Read(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return contracts.RevenueSeries{}, http.StatusRequestEntityTooLarge, fmt.Errorf("upload exceeds %d bytes", h.maxUploadBytes)
		}
		return contracts.RevenueSeries{}, statusForError(err), err
	}
	return revenue, http.StatusOK, nil
}

// openUpload multipart 이면 "file" 필드, 아니면 본문 전체
func (h *PipelineHandler) openUpload(r *http.Request) (io.Reader, func(), error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if !strings.HasPrefix(mediaType, "multipart/") {
		return r.Body, func() {}, nil
	}

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		return nil, nil, fmt.Errorf("invalid multipart form: %w", err)
	}
	file, _, err := r.FormFile(formFieldFile)
	if err != nil {
		return nil, nil, fmt.Errorf("multipart field %q is required", formFieldFile)
	}
	return file, func() { _ = file.Close() }, nil
}

func (h *PipelineHandler) logFailure(r *http.Request, err error) {
	entry := h.logger.WithError(err).WithField("request_id", RequestID(r.Context()))
	if contracts.IsInputError(err) {
		entry.Warn("Rejected revenue series")
		return
	}
	entry.Error("Pipeline run failed")
}
