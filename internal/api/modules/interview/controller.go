package interview_module

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ethanbaker/interview/internal/interview"
	"github.com/ethanbaker/interview/internal/stores/session"
	"github.com/ethanbaker/interview/pkg/sdk"
)

// CreateSession handles POST requests to start a new interview session
func CreateSession(c *gin.Context) {
	// Parse request body
	var req sdk.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Could not parse request body", err.Error()).AsGinResponse())
		return
	}

	// Create the session using the manager
	s, err := manager.CreateSession(c.Request.Context(), interview.CreateParams{
		Candidate:   req.Candidate,
		Role:        req.Role,
		Description: req.Description,
		Difficulty:  req.Difficulty,
		Count:       req.NumQuestions,
	})
	if errors.Is(err, interview.ErrInvalidInput) {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Invalid session parameters", err.Error()).AsGinResponse())
		return
	}
	if err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to create session", err.Error()).AsGinResponse())
		return
	}

	c.JSON(sdk.NewCreatedResponse("Session created successfully", toSDKSession(s)).AsGinResponse())
}

// GetSession handles GET requests to retrieve an existing session by ID
func GetSession(c *gin.Context) {
	id := c.Param("id")

	// Retrieve the session using the manager
	s, err := manager.GetSession(c.Request.Context(), id)
	if errors.Is(err, session.ErrNotFound) {
		c.JSON(sdk.NewErrorResponse(http.StatusNotFound, "Session not found", nil).AsGinResponse())
		return
	}
	if err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to get session", err.Error()).AsGinResponse())
		return
	}

	c.JSON(sdk.NewSuccessResponse("Session retrieved successfully", toSDKSession(s)).AsGinResponse())
}

// SaveAnswer handles multipart POST requests to record an answer. The form
// carries the question index, the question text, the transcript, and the
// video recording
func SaveAnswer(c *gin.Context) {
	id := c.Param("id")

	index, err := strconv.Atoi(c.PostForm("index"))
	if err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Form field 'index' must be an integer", err.Error()).AsGinResponse())
		return
	}

	question := c.PostForm("question")
	transcript := c.PostForm("transcript")

	header, err := c.FormFile("video")
	if err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Form file 'video' is required", err.Error()).AsGinResponse())
		return
	}

	video, err := header.Open()
	if err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to read uploaded video", err.Error()).AsGinResponse())
		return
	}
	defer video.Close()

	// Record the answer using the manager
	count, videoURL, err := manager.RecordAnswer(c.Request.Context(), id, index, question, transcript, video, filepath.Ext(header.Filename))
	if errors.Is(err, interview.ErrInvalidInput) {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Invalid answer parameters", err.Error()).AsGinResponse())
		return
	}
	if errors.Is(err, session.ErrNotFound) {
		c.JSON(sdk.NewErrorResponse(http.StatusNotFound, "Session not found", nil).AsGinResponse())
		return
	}
	if err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to save answer", err.Error()).AsGinResponse())
		return
	}

	resp := sdk.SaveAnswerResponse{
		VideoURL:   videoURL,
		SavedCount: count,
	}

	c.JSON(sdk.NewSuccessResponse("Answer saved successfully", resp).AsGinResponse())
}

// GetReport handles GET requests for a session's evaluation report
func GetReport(c *gin.Context) {
	id := c.Param("id")

	// Generate the report using the manager
	report, err := manager.GenerateReport(c.Request.Context(), id)
	if errors.Is(err, session.ErrNotFound) {
		c.JSON(sdk.NewErrorResponse(http.StatusNotFound, "Session not found", nil).AsGinResponse())
		return
	}
	if err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to generate report", err.Error()).AsGinResponse())
		return
	}

	c.JSON(sdk.NewSuccessResponse("Report generated successfully", toSDKReport(report)).AsGinResponse())
}

// Helper method to convert an internal session to an sdk session
func toSDKSession(s *session.Session) sdk.Session {
	resp := sdk.Session{
		ID:           s.ID,
		CreatedAt:    s.CreatedAt,
		Candidate:    s.Candidate,
		Role:         s.Role,
		Difficulty:   s.Difficulty,
		NumQuestions: s.NumQuestions,
		Intro:        s.Intro,
		Questions:    s.Questions,
		Answers:      []sdk.Answer{},
	}

	for _, a := range s.Answers.Sorted() {
		resp.Answers = append(resp.Answers, sdk.Answer{
			Index:      a.Index,
			Question:   a.Question,
			Transcript: a.Transcript,
			VideoURL:   a.VideoURL,
		})
	}

	return resp
}

// Helper method to convert an internal report to an sdk report
func toSDKReport(r *interview.Report) sdk.ReportResponse {
	resp := sdk.ReportResponse{
		Session: toSDKSession(r.Session),
		RawText: r.RawText,
	}

	if r.Evaluation != nil {
		evaluation := &sdk.Evaluation{
			OverallSummary: r.Evaluation.OverallSummary,
			OverallRating:  r.Evaluation.OverallRating,
			Skills:         []sdk.SkillRating{},
			PerQuestion:    []sdk.QuestionRating{},
		}

		for _, s := range r.Evaluation.Skills {
			evaluation.Skills = append(evaluation.Skills, sdk.SkillRating(s))
		}
		for _, q := range r.Evaluation.PerQuestion {
			evaluation.PerQuestion = append(evaluation.PerQuestion, sdk.QuestionRating(q))
		}

		resp.Evaluation = evaluation
	}

	return resp
}
