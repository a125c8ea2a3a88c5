package sdk

import (
	"encoding/json"
	"time"

	"github.com/ethanbaker/api/pkg/api_types"
)

// ApiResponse represents a standard API response structure
type ApiResponse[T any] struct {
	Status  api_types.StatusType `json:"status"`          // Status message
	Code    int                  `json:"code"`            // Status code
	Message string               `json:"message"`         // Human-readable message
	Data    T                    `json:"data,omitempty"`  // Optional data field for successful responses
	Error   any                  `json:"error,omitempty"` // Optional errors field for error responses
}

// AsGinResponse converts the ApiResponse to a format suitable for Gin framework
func (r ApiResponse[T]) AsGinResponse() (int, any) {
	return r.Code, r
}

// AsJSON converts the ApiResponse to a format suitable for JSON responses
func (r ApiResponse[T]) AsJSON() (string, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func NewSuccess(message string) ApiResponse[any] {
	return ApiResponse[any]{
		Status:  api_types.StatusSuccess,
		Code:    200,
		Message: message,
	}
}

func NewSuccessResponse[T any](message string, data T) ApiResponse[T] {
	return ApiResponse[T]{
		Status:  api_types.StatusSuccess,
		Code:    200,
		Message: message,
		Data:    data,
	}
}

func NewCreatedResponse[T any](message string, data T) ApiResponse[T] {
	return ApiResponse[T]{
		Status:  api_types.StatusSuccess,
		Code:    201,
		Message: message,
		Data:    data,
	}
}

func NewErrorResponse(code int, message string, err any) ApiResponse[any] {
	return ApiResponse[any]{
		Status:  api_types.StatusError,
		Code:    code,
		Message: message,
		Error:   err,
	}
}

/** Auth Module DTOs */

// SignupRequest represents the request to register a new user
type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse represents a user in API responses. The password hash is
// never included
type UserResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

/** AI Module DTOs */

// GreetingResponse represents the personalized dashboard greeting
type GreetingResponse struct {
	Greeting string `json:"greeting"`
}

/** Interview Module DTOs */

// CreateSessionRequest represents the request body for starting an interview
type CreateSessionRequest struct {
	Candidate    string `json:"candidate" binding:"required"`
	Role         string `json:"role" binding:"required"`
	Description  string `json:"description" binding:"required"`
	Difficulty   string `json:"difficulty" binding:"required"`
	NumQuestions int    `json:"num_questions" binding:"required"`
}

// Answer represents one recorded answer within a session
type Answer struct {
	Index      int    `json:"index"`
	Question   string `json:"question"`
	Transcript string `json:"transcript"`
	VideoURL   string `json:"video_url"`
}

// Session represents an interview session
type Session struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Candidate    string    `json:"candidate"`
	Role         string    `json:"role"`
	Difficulty   string    `json:"difficulty"`
	NumQuestions int       `json:"num_questions"`
	Intro        string    `json:"intro"`
	Questions    []string  `json:"questions"`
	Answers      []Answer  `json:"answers"`
}

// SaveAnswerResponse represents the result of recording one answer
type SaveAnswerResponse struct {
	VideoURL   string `json:"video_url"`
	SavedCount int    `json:"saved_count"`
}

// SkillRating scores one rubric skill in an evaluation
type SkillRating struct {
	Name   string  `json:"name"`
	Rating float64 `json:"rating"`
	Note   string  `json:"note"`
}

// QuestionRating scores one answered question in an evaluation
type QuestionRating struct {
	Index        int     `json:"index"`
	Rating       float64 `json:"rating"`
	Strengths    string  `json:"strengths"`
	Improvements string  `json:"improvements"`
}

// Evaluation represents the scored assessment of a session
type Evaluation struct {
	OverallSummary string           `json:"overall_summary"`
	OverallRating  float64          `json:"overall_rating"`
	Skills         []SkillRating    `json:"skills"`
	PerQuestion    []QuestionRating `json:"per_question"`
}

// ReportResponse represents a full evaluation report. Evaluation is nil when
// the service output could not be parsed; RawText then carries the raw output
type ReportResponse struct {
	Session    Session     `json:"session"`
	Evaluation *Evaluation `json:"evaluation,omitempty"`
	RawText    string      `json:"raw_text,omitempty"`
}
