package http

import "github.com/gin-gonic/gin"

// registerV1Routes sets up the JSON API.
// Groups: /api/v1/spots (catalog), /api/v1/session (per-session view state)
func (s *Server) registerV1Routes() {
	v1 := s.engine.Group("/api/v1")
	v1.Use(apiVersionMiddleware())

	// Catalog endpoints - no session needed
	spots := v1.Group("/spots")
	{
		spots.GET("", s.handleV1ListSpots)
		spots.GET("/:id", s.handleV1GetSpot)
	}

	// Reading state does not start a session
	v1.GET("/session/state", s.lookupSession(), s.handleV1State)

	// Session endpoints - share the page session cookie
	session := v1.Group("/session", s.sessionMiddleware())
	{
		session.POST("/search", s.handleV1Search)
		session.POST("/select/:id", s.handleV1Select)
		session.POST("/navigate/:view", s.handleV1Navigate)
		session.GET("/chat", s.handleV1ChatLog)
		session.POST("/chat", s.handleV1SendChat)
	}
}

func apiVersionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-API-Version", "v1")
		c.Next()
	}
}
