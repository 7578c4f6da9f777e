package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/parkshare/parkshare-web/services/web/models"
	"github.com/parkshare/parkshare-web/services/web/view"
)

// handleV1ListSpots returns the catalog in display order
// GET /api/v1/spots
func (s *Server) handleV1ListSpots(c *gin.Context) {
	spots := s.catalog.List()
	c.JSON(http.StatusOK, gin.H{
		"data": spots,
		"meta": gin.H{
			"count": len(spots),
		},
	})
}

// handleV1GetSpot returns a single spot
// GET /api/v1/spots/:id
func (s *Server) handleV1GetSpot(c *gin.Context) {
	spot, ok := s.catalog.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "spot not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": spot})
}

// handleV1State returns the session state, or the initial state when the
// caller has no session yet
// GET /api/v1/session/state
func (s *Server) handleV1State(c *gin.Context) {
	v, ok := c.Get(controllerKey)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"data": view.InitialState()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": v.(*view.Controller).State()})
}

type searchRequest struct {
	Query string `json:"query"`
}

// handleV1Search starts a search; a blank query leaves the state unchanged
// POST /api/v1/session/search
func (s *Server) handleV1Search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctrl := controllerFrom(c)
	ctrl.Search(req.Query)
	c.JSON(http.StatusOK, gin.H{"data": ctrl.State()})
}

// POST /api/v1/session/select/:id
func (s *Server) handleV1Select(c *gin.Context) {
	ctrl := controllerFrom(c)
	if !ctrl.SelectSpot(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "spot not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": ctrl.State()})
}

// POST /api/v1/session/navigate/:view
func (s *Server) handleV1Navigate(c *gin.Context) {
	mode, err := models.ParseViewMode(c.Param("view"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctrl := controllerFrom(c)
	ctrl.Navigate(mode)
	c.JSON(http.StatusOK, gin.H{"data": ctrl.State()})
}

// GET /api/v1/session/chat
func (s *Server) handleV1ChatLog(c *gin.Context) {
	st := controllerFrom(c).State()
	c.JSON(http.StatusOK, gin.H{
		"data": st.Chat,
		"meta": gin.H{
			"count":   len(st.Chat),
			"pending": st.ChatPending,
		},
	})
}

type chatRequest struct {
	Message string `json:"message"`
}

// handleV1SendChat appends a message; the reply arrives asynchronously
// POST /api/v1/session/chat
func (s *Server) handleV1SendChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctrl := controllerFrom(c)
	accepted := ctrl.SendChat(req.Message) != nil
	st := ctrl.State()
	c.JSON(http.StatusOK, gin.H{
		"data": st.Chat,
		"meta": gin.H{
			"accepted": accepted,
			"pending":  st.ChatPending,
		},
	})
}
