// Package server предоставляет HTTP API для анализа архивов чатов.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"telegram-chat-stats/internal/cache"
	"telegram-chat-stats/internal/pkg/config"
	"telegram-chat-stats/internal/usecase"
)

// ReportAnalyzer определяет интерфейс варианта использования, который строит
// отчеты по загруженным архивам.
type ReportAnalyzer interface {
	AnalyzeUpload(ctx context.Context, data []byte) (*usecase.Upload, error)
	Lookup(hash string) (*usecase.Upload, bool)
}

// Server представляет HTTP-сервер
type Server struct {
	HTTPServer *http.Server
	cfg        *config.Config
	analyzer   ReportAnalyzer
}

type errorResponse struct {
	Error string `json:"error"`
}

// New создает новый экземпляр Server. Если reports не nil, очистка
// просроченных отчетов выполняется до отмены ctx.
func New(ctx context.Context, cfg *config.Config, analyzer ReportAnalyzer, reports *cache.ReportCache) (*Server, error) {
	if analyzer == nil {
		return nil, errors.New("analyzer не может быть nil")
	}

	s := &Server{
		cfg:      cfg,
		analyzer: analyzer,
	}

	chiRouter := chi.NewRouter()

	// Промежуточное ПО
	chiRouter.Use(middleware.RequestID)
	chiRouter.Use(middleware.Logger)
	chiRouter.Use(middleware.Recoverer)

	chiRouter.Get("/health", s.handleHealth)

	chiRouter.Route("/api/v1", func(r chi.Router) {
		r.Post("/reports", s.handleCreateReport)
		r.Get("/reports/{hash}", s.handleGetReport)
	})

	s.HTTPServer = &http.Server{
		Addr:         cfg.Address(),
		Handler:      chiRouter,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	if reports != nil && cfg.Processing.CleanupInterval > 0 {
		reports.StartCleanupTicker(ctx, cfg.Processing.CleanupInterval)
	}

	return s, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleCreateReport принимает архив в поле формы "file" и возвращает отчет.
func (s *Server) handleCreateReport(w http.ResponseWriter, r *http.Request) {
	limit := s.cfg.MaxUploadBytes()
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := r.ParseMultipartForm(limit); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Архив превышает допустимый размер")
			return
		}
		writeError(w, http.StatusBadRequest, "Не удалось разобрать форму")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Не удалось получить файл из формы")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Не удалось прочитать загруженный файл")
		return
	}
	slog.Info("Получен архив", "size", len(data), "request_id", middleware.GetReqID(r.Context()))

	upload, err := s.analyzer.AnalyzeUpload(r.Context(), data)
	if err != nil {
		slog.Warn("Не удалось проанализировать архив", "error", err)
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	status := http.StatusCreated
	if upload.Cached {
		status = http.StatusOK
	}
	writeJSON(w, status, toResponse(upload))
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	hash := chi.URLParam(r, "hash")

	upload, ok := s.analyzer.Lookup(hash)
	if !ok {
		writeError(w, http.StatusNotFound, "Отчет не найден")
		return
	}
	writeJSON(w, http.StatusOK, toResponse(upload))
}

func toResponse(u *usecase.Upload) ReportResponse {
	return ReportResponse{ReportID: u.ReportID, Hash: u.Hash, Cached: u.Cached, Report: u.Report}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Не удалось записать ответ", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// ListenAndServe запускает HTTP-сервер
func (s *Server) ListenAndServe() error {
	return s.HTTPServer.ListenAndServe()
}

// Shutdown корректно завершает работу HTTP-сервера
func (s *Server) Shutdown(ctx context.Context) error {
	slog.Info("Завершение работы HTTP-сервера")
	return s.HTTPServer.Shutdown(ctx)
}
