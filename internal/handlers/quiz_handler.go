package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/finlit/backend/internal/services"
)

type QuizHandler struct {
	service   *services.QuizService
	validator *services.ValidationHelper
}

func NewQuizHandler(service *services.QuizService) *QuizHandler {
	return &QuizHandler{
		service:   service,
		validator: services.NewValidationHelper(),
	}
}

// SubmitQuiz grades a quiz submission and applies the outcome
// @Summary Submit quiz
// @Description Grade answers for a lesson, update progress, unlock the next lesson on pass
// @Tags lessons
// @Accept json
// @Produce json
// @Param request body object{userId=string,lessonId=string,answers=[]int} true "Quiz submission"
// @Success 200 {object} models.QuizResult
// @Failure 400 {object} services.ErrorResponse
// @Failure 500 {object} services.ErrorResponse
// @Router /quiz/submit [post]
func (h *QuizHandler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID   string `json:"userId"`
		LessonID string `json:"lessonId"`
		Answers  []*int `json:"answers"`
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1_048_576)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		log.Printf("[QUIZ] SubmitQuiz - Decode error: %v", err)
		services.SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		log.Printf("[QUIZ] SubmitQuiz - Multiple JSON objects detected")
		services.SendErrorResponse(w, "Request body must only contain a single JSON object", http.StatusBadRequest, nil)
		return
	}

	if req.LessonID == "" || req.Answers == nil {
		services.SendErrorResponse(w, "Missing lessonId or answers", http.StatusBadRequest, nil)
		return
	}

	// The demo front-end submits without a user; grade against the seed user.
	if req.UserID == "" {
		req.UserID = "1"
	}

	log.Printf("[QUIZ] SubmitQuiz - Request: user=%s, lesson=%s, answers=%d", req.UserID, req.LessonID, len(req.Answers))

	result, err := h.service.SubmitQuiz(req.UserID, req.LessonID, req.Answers)
	if err != nil {
		if errors.Is(err, services.ErrQuizNotFound) {
			services.SendErrorResponse(w, "Quiz not found", http.StatusBadRequest, nil)
			return
		}
		log.Printf("[QUIZ] SubmitQuiz - Service error: %v", err)
		services.SendErrorResponse(w, err.Error(), http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
