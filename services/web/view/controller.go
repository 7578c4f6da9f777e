package view

import (
	"context"
	"strings"
	"sync"

	"github.com/parkshare/parkshare-web/services/web/assistant"
	"github.com/parkshare/parkshare-web/services/web/catalog"
	"github.com/parkshare/parkshare-web/services/web/models"
)

// Greeting seeds every chat log.
const Greeting = "Hi! I'm your ParkShare assistant. Need help finding a spot near you?"

// State is everything a page render needs for one session.
type State struct {
	CurrentView    models.ViewMode       `json:"currentView"`
	SelectedSpot   *models.ParkingSpot   `json:"selectedSpot"`
	SearchQuery    string                `json:"searchQuery"`
	LastInsight    *models.InsightResult `json:"lastInsight"`
	InsightLoading bool                  `json:"insightLoading"`

	ChatOpen    bool                 `json:"chatOpen"`
	Chat        []models.ChatMessage `json:"chat"`
	ChatPending bool                 `json:"chatPending"`

	// ChatDraft holds text sent while a reply was pending, so the input can
	// show it again.
	ChatDraft string `json:"chatDraft"`
}

func (s State) clone() State {
	out := s
	if s.SelectedSpot != nil {
		spot := s.SelectedSpot.Clone()
		out.SelectedSpot = &spot
	}
	if s.LastInsight != nil {
		insight := s.LastInsight.Clone()
		out.LastInsight = &insight
	}
	out.Chat = append([]models.ChatMessage(nil), s.Chat...)
	return out
}

// Controller owns one session's State. All mutation happens under mu; AI
// calls run on their own goroutines and apply results when they resolve.
type Controller struct {
	ctx      context.Context
	catalog  *catalog.Store
	insights assistant.InsightFetcher
	chat     assistant.ChatSender

	mu    sync.Mutex
	state State
}

// NewController starts a session on the home view. ctx bounds the AI calls
// the controller issues, which outlive the request that triggered them.
func NewController(ctx context.Context, store *catalog.Store, insights assistant.InsightFetcher, chat assistant.ChatSender) *Controller {
	return &Controller{
		ctx:      ctx,
		catalog:  store,
		insights: insights,
		chat:     chat,
		state:    InitialState(),
	}
}

// InitialState is the state of a session that has not done anything yet:
// the home view and a chat log holding only the greeting.
func InitialState() State {
	return State{
		CurrentView: models.ViewHome,
		Chat:        []models.ChatMessage{{Role: models.RoleAssistant, Text: Greeting}},
	}
}

// State returns a deep copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

func (c *Controller) Catalog() *catalog.Store {
	return c.catalog
}

// SelectSpot opens the detail view for id. Unknown ids leave state untouched.
func (c *Controller) SelectSpot(id string) bool {
	spot, ok := c.catalog.Get(id)
	if !ok {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.SelectedSpot = &spot
	c.state.CurrentView = models.ViewListingDetail
	return true
}

// SetQuery records the search box text without running a search.
func (c *Controller) SetQuery(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.SearchQuery = query
}

// Search switches to the search view and fetches insights for query. A
// blank query is ignored and nil is returned. Otherwise the returned channel
// closes once the result has been applied.
//
// Overlapping searches are not fenced: whichever response arrives last
// wins, and it also clears InsightLoading.
func (c *Controller) Search(query string) <-chan struct{} {
	if strings.TrimSpace(query) == "" {
		return nil
	}

	c.mu.Lock()
	c.state.SearchQuery = query
	c.state.InsightLoading = true
	c.state.CurrentView = models.ViewSearch
	c.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		result := c.insights.FetchInsights(c.ctx, query)

		c.mu.Lock()
		c.state.LastInsight = &result
		c.state.InsightLoading = false
		c.mu.Unlock()
	}()
	return done
}

// PickCategory searches for a category shortcut label.
func (c *Controller) PickCategory(label string) <-chan struct{} {
	return c.Search(label)
}

// Navigate switches the top-level view. The detail view needs a selected
// spot; without one the controller falls back to home.
func (c *Controller) Navigate(mode models.ViewMode) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch mode {
	case models.ViewHome, models.ViewSearch, models.ViewHost:
		c.state.CurrentView = mode
	case models.ViewListingDetail:
		if c.state.SelectedSpot != nil {
			c.state.CurrentView = mode
		} else {
			c.state.CurrentView = models.ViewHome
		}
	}
}

func (c *Controller) OpenChat() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.ChatOpen = true
}

func (c *Controller) CloseChat() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.ChatOpen = false
}

// SendChat appends text to the log and asks the assistant for a reply.
// Blank text, or a send while a reply is still pending, is ignored and nil
// is returned; text sent while pending is kept as ChatDraft. Every accepted
// message gets exactly one assistant reply.
func (c *Controller) SendChat(text string) <-chan struct{} {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	c.mu.Lock()
	if c.state.ChatPending {
		c.state.ChatDraft = text
		c.mu.Unlock()
		return nil
	}
	c.state.ChatDraft = ""
	c.state.Chat = append(c.state.Chat, models.ChatMessage{Role: models.RoleUser, Text: text})
	c.state.ChatPending = true
	c.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		reply := c.chat.SendMessage(c.ctx, text, c.catalog.Snapshot())
		if reply == "" {
			reply = assistant.ChatNoTextReply
		}

		c.mu.Lock()
		c.state.Chat = append(c.state.Chat, models.ChatMessage{Role: models.RoleAssistant, Text: reply})
		c.state.ChatPending = false
		c.mu.Unlock()
	}()
	return done
}
