package server

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/rs/zerolog"

	"pdf-rag-chat/internal/models"
)

const uploadField = "file"

// multipart parts above this size spill to temp files, it does not cap uploads
const multipartMemory = 32 << 20

type chatRequest struct {
	Query          *string        `json:"query"`
	MessageHistory models.History `json:"message_history"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status": "healthy",
		"chunks": s.index.Count(),
	})
}

// handleUpload handles POST /upload-file
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	header, err := uploadedFile(r)
	if err != nil {
		logger.Warn().Err(err).Msg("Rejected upload")
		s.respondPipelineError(w, r, err)
		return
	}

	f, err := header.Open()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to open uploaded file")
		respondError(w, http.StatusInternalServerError, "failed to read uploaded file")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to read uploaded file")
		respondError(w, http.StatusInternalServerError, "failed to read uploaded file")
		return
	}

	pages, err := s.pipeline.Ingest(ctx, header.Filename, data)
	if err != nil {
		s.respondPipelineError(w, r, err)
		return
	}

	logger.Info().Str("file", header.Filename).Int("pages", pages).Msg("Document indexed")
	respondJSON(w, http.StatusOK, messageResponse{Message: models.MsgUploadSuccess})
}

// uploadedFile finds the "file" form part. A part sent with an empty filename
// is stored by mime/multipart as a plain value, which is how an unselected
// file input arrives.
func uploadedFile(r *http.Request) (*multipart.FileHeader, error) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return nil, models.ErrNoFileProvided
	}
	form := r.MultipartForm
	if files := form.File[uploadField]; len(files) > 0 {
		if files[0].Filename == "" {
			return nil, models.ErrEmptyFilename
		}
		return files[0], nil
	}
	if _, ok := form.Value[uploadField]; ok {
		return nil, models.ErrEmptyFilename
	}
	return nil, models.ErrNoFileProvided
}

// handleChat handles POST /api/chat and streams the answer as raw text
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req chatRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil && !errors.Is(err, io.EOF) {
		logger.Warn().Err(err).Msg("Invalid chat request body")
		respondError(w, http.StatusBadRequest, models.MsgInvalidBody)
		return
	}
	if req.Query == nil {
		respondError(w, http.StatusBadRequest, models.MsgMissingQuery)
		return
	}

	fragments, err := s.pipeline.Answer(ctx, *req.Query, req.MessageHistory)
	if err != nil {
		s.respondPipelineError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	rc := http.NewResponseController(w)
	_ = rc.Flush()
	for fragment := range fragments {
		if _, err := io.WriteString(w, fragment); err != nil {
			logger.Info().Err(err).Msg("Client disconnected during stream")
			// drain so the producer can finish
			for range fragments {
			}
			return
		}
		_ = rc.Flush()
	}
}

func (s *Server) respondPipelineError(w http.ResponseWriter, r *http.Request, err error) {
	logger := zerolog.Ctx(r.Context())

	switch {
	case errors.Is(err, models.ErrNoFileProvided):
		respondError(w, http.StatusBadRequest, models.MsgNoFileProvided)
	case errors.Is(err, models.ErrEmptyFilename):
		respondError(w, http.StatusBadRequest, models.MsgNoSelectedFile)
	case errors.Is(err, models.ErrMissingQuery):
		respondError(w, http.StatusBadRequest, models.MsgMissingQuery)
	case errors.Is(err, models.ErrEmptyIndex):
		respondError(w, http.StatusBadRequest, models.MsgEmptyIndex)
	case errors.Is(err, models.ErrIngestion):
		logger.Warn().Err(err).Msg("Failed to ingest document")
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		logger.Error().Err(err).Msg("Request failed")
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}
