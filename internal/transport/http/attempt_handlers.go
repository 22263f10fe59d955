package http

import (
	"net/http"
	"strconv"

	"flagforge/internal/domain"

	"github.com/gin-gonic/gin"
)

type submitRequest struct {
	Answers answerList `json:"answers"`
}

type submitResponse struct {
	AttemptID int64  `json:"attemptId"`
	Verdict   string `json:"verdict"`
	Message   string `json:"message"`
}

func (s *Server) handleSubmit(c *gin.Context) {
	challengeID, err := pathID(c, "problemId")
	if err != nil {
		return
	}
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	ident, _ := CurrentIdentity(c)
	attempt, message, err := s.submissions.Submit(c.Request.Context(), ident, challengeID, req.Answers)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, submitResponse{
		AttemptID: attempt.ID,
		Verdict:   string(attempt.Verdict),
		Message:   message,
	})
}

func (s *Server) handleMyAttempts(c *gin.Context) {
	challengeID, err := pathID(c, "problemId")
	if err != nil {
		return
	}
	ident, _ := CurrentIdentity(c)
	attempts, err := s.submissions.Attempts(c.Request.Context(), ident.UserID, challengeID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, attempts)
}

func (s *Server) handleSolvedSet(c *gin.Context) {
	ident, _ := CurrentIdentity(c)
	solved, err := s.stats.SolvedSet(c.Request.Context(), ident.UserID)
	if err != nil {
		fail(c, err)
		return
	}
	if solved == nil {
		solved = []int64{}
	}
	c.JSON(http.StatusOK, solved)
}

func (s *Server) handleLeaderboard(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid limit"})
			return
		}
		limit = parsed
	}
	rows, err := s.stats.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		fail(c, err)
		return
	}
	if rows == nil {
		rows = []domain.LeaderboardRow{}
	}
	c.JSON(http.StatusOK, rows)
}
