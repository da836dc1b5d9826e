package server

import (
	"encoding/json"
	"net/http"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/leko-robotics/leko-server/internal/pipeline"
	"github.com/leko-robotics/leko-server/internal/queue"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleHealthDeep(w http.ResponseWriter, r *http.Request) {
	report := s.checker.Run(r.Context())
	status := http.StatusOK
	if !report.Healthy {
		status = http.StatusServiceUnavailable
	}
	respondJSON(w, status, report)
}

type askRequest struct {
	Text string `json:"text"`
}

// handleAsk runs the question pipeline. A malformed or empty body is not a
// client error here: the child-facing contract answers with a gentle
// re-prompt instead of a 4xx.
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		req.Text = ""
	}

	result, err := s.pipeline.Ask(r.Context(), req.Text)
	if err != nil {
		if eris.Is(err, pipeline.ErrNotConfigured) {
			respondError(w, http.StatusInternalServerError, codeConfigMissing, "completion provider credential is not set")
			return
		}
		zap.L().Error("ask failed",
			zap.String("request_id", RequestIDFromContext(r.Context())),
			zap.Error(err),
		)
		respondError(w, http.StatusInternalServerError, codeInternalError, "unexpected error")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

type commandRequest struct {
	RobotID string `json:"robot_id"`
	Type    string `json:"type"`
	Text    string `json:"text"`
}

func (s *Server) handleCommandCreate(w http.ResponseWriter, r *http.Request) {
	var req commandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, codeInvalidRequest, "invalid request body")
		return
	}
	if req.RobotID == "" || req.Type == "" {
		respondError(w, http.StatusBadRequest, codeInvalidRequest, "robot_id and type are required")
		return
	}

	cmd, err := s.queue.Enqueue(r.Context(), queue.Command{
		RobotID: req.RobotID,
		Type:    req.Type,
		Text:    req.Text,
	})
	if err != nil {
		zap.L().Error("enqueue command failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, codeInternalError, "could not store command")
		return
	}

	zap.L().Info("command enqueued",
		zap.String("command_id", cmd.ID),
		zap.String("robot_id", cmd.RobotID),
		zap.String("type", cmd.Type),
	)
	respondJSON(w, http.StatusCreated, cmd)
}

// handleCommandNext pops the oldest pending command. An empty queue is a
// normal condition: 200 with a null body, so robots can poll cheaply.
func (s *Server) handleCommandNext(w http.ResponseWriter, r *http.Request) {
	cmd, err := s.queue.DequeueNext(r.Context())
	if err != nil {
		zap.L().Error("dequeue command failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, codeInternalError, "could not read command")
		return
	}

	respondJSON(w, http.StatusOK, map[string]*queue.Command{"command": cmd})
}

// maxVisionBytes bounds the uploaded image size (10 MiB).
const maxVisionBytes = 10 << 20

// handleVision accepts an image upload and acknowledges it. Image
// understanding happens in an external collaborator; this endpoint only
// validates and reports the upload.
func (s *Server) handleVision(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxVisionBytes)
	if err := r.ParseMultipartForm(maxVisionBytes); err != nil {
		respondError(w, http.StatusBadRequest, codeInvalidRequest, "multipart form with an image field is required")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		respondError(w, http.StatusBadRequest, codeInvalidRequest, "image field is required")
		return
	}
	defer file.Close()

	respondJSON(w, http.StatusOK, map[string]any{
		"status":   "received",
		"filename": header.Filename,
		"size":     header.Size,
		"robot_id": r.FormValue("robot_id"),
		"question": r.FormValue("question"),
	})
}
