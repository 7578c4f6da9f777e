package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/parkshare/parkshare-web/services/web/models"
	"github.com/parkshare/parkshare-web/services/web/view"
)

const (
	sessionCookie = "parkshare_session"
	controllerKey = "controller"
)

// sessionMiddleware resolves the session cookie to a controller, starting a
// new session for unknown or missing cookies.
func (s *Server) sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, _ := c.Cookie(sessionCookie)
		id, ctrl, created := s.sessions.GetOrCreate(cookie)
		if created {
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(sessionCookie, id, 0, "/", "", false, true)
		}
		c.Set(controllerKey, ctrl)
		c.Next()
	}
}

// lookupSession attaches the controller for a known session cookie but never
// creates one. Handlers behind it must cope with a missing controller.
func (s *Server) lookupSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if cookie, err := c.Cookie(sessionCookie); err == nil && cookie != "" {
			if ctrl, ok := s.sessions.Get(cookie); ok {
				c.Set(controllerKey, ctrl)
			}
		}
		c.Next()
	}
}

func controllerFrom(c *gin.Context) *view.Controller {
	return c.MustGet(controllerKey).(*view.Controller)
}

type pageData struct {
	view.State
	Spots      []models.ParkingSpot
	Categories []string
	Refresh    bool
}

// Is reports whether the page is showing mode.
func (p pageData) Is(mode string) bool {
	return string(p.CurrentView) == mode
}

func isUserMessage(m models.ChatMessage) bool {
	return m.Role == models.RoleUser
}

func (s *Server) render(c *gin.Context, status int) {
	ctrl := controllerFrom(c)
	st := ctrl.State()

	// The detail view never renders without a spot.
	if st.CurrentView == models.ViewListingDetail && st.SelectedSpot == nil {
		st.CurrentView = models.ViewHome
	}

	c.HTML(status, "page.html", pageData{
		State:      st,
		Spots:      ctrl.Catalog().List(),
		Categories: view.Categories,
		Refresh:    st.InsightLoading || st.ChatPending,
	})
}

func backHome(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/")
}

// GET /
func (s *Server) handlePage(c *gin.Context) {
	s.render(c, http.StatusOK)
}

// GET /spots/:id
func (s *Server) handleSpotPage(c *gin.Context) {
	ctrl := controllerFrom(c)
	if !ctrl.SelectSpot(c.Param("id")) {
		s.render(c, http.StatusNotFound)
		return
	}
	s.render(c, http.StatusOK)
}

// POST /search
func (s *Server) handleSearchForm(c *gin.Context) {
	ctrl := controllerFrom(c)
	query := c.PostForm("q")
	ctrl.SetQuery(query)
	ctrl.Search(query)
	backHome(c)
}

// POST /category
func (s *Server) handleCategoryForm(c *gin.Context) {
	controllerFrom(c).PickCategory(c.PostForm("label"))
	backHome(c)
}

// POST /navigate/:view
func (s *Server) handleNavigateForm(c *gin.Context) {
	mode, err := models.ParseViewMode(c.Param("view"))
	if err == nil {
		controllerFrom(c).Navigate(mode)
	}
	backHome(c)
}

// POST /chat
func (s *Server) handleChatForm(c *gin.Context) {
	ctrl := controllerFrom(c)
	ctrl.OpenChat()
	ctrl.SendChat(c.PostForm("message"))
	backHome(c)
}

func (s *Server) handleChatOpen(c *gin.Context) {
	controllerFrom(c).OpenChat()
	backHome(c)
}

func (s *Server) handleChatClose(c *gin.Context) {
	controllerFrom(c).CloseChat()
	backHome(c)
}
