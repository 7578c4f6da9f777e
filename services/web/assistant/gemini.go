package assistant

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/parkshare/parkshare-web/services/web/models"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-3-flash-preview"

// Fallback texts shown in place of a model reply.
const (
	NoInsightsText     = "No insights found."
	InsightFailureText = "Sorry, I couldn't fetch real-time data at the moment."
	ChatFailureText    = "Sorry, I'm having trouble connecting."
	ChatNoTextReply    = "I'm sorry, I encountered an error processing that."
)

const defaultSourceTitle = "Source"

var errMissingAPIKey = errors.New("gemini api key is not configured")

// InsightFetcher produces a market summary for a free-text location query.
// Implementations never fail; errors degrade to fallback text.
type InsightFetcher interface {
	FetchInsights(ctx context.Context, query string) models.InsightResult
}

// ChatSender exchanges one user message for one assistant reply, grounded
// on a serialized catalog. Implementations never fail.
type ChatSender interface {
	SendMessage(ctx context.Context, userText, catalogSnapshot string) string
}

// Options configures the Gemini client.
type Options struct {
	APIKey  string
	Model   string
	Timeout time.Duration

	// BaseURL and HTTPClient override the provider endpoint (tests, proxies).
	BaseURL    string
	HTTPClient *http.Client
}

// Gemini implements InsightFetcher and ChatSender on the Gemini API.
type Gemini struct {
	client  *genai.Client
	initErr error
	model   string
	timeout time.Duration
}

// NewGemini builds the client. A missing key or a construction failure is
// remembered and every later call returns the fallback text.
func NewGemini(ctx context.Context, opts Options) *Gemini {
	g := &Gemini{model: opts.Model, timeout: opts.Timeout}
	if g.model == "" {
		g.model = DefaultModel
	}

	if strings.TrimSpace(opts.APIKey) == "" {
		g.initErr = errMissingAPIKey
		log.Printf("gemini disabled: %v", g.initErr)
		return g
	}

	cfg := &genai.ClientConfig{
		APIKey:     opts.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: opts.HTTPClient,
	}
	if opts.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		g.initErr = fmt.Errorf("create genai client: %w", err)
		log.Printf("gemini disabled: %v", g.initErr)
		return g
	}
	g.client = client
	return g
}

// Model returns the model identifier requests are sent to.
func (g *Gemini) Model() string {
	return g.model
}

func insightPrompt(location string) string {
	return fmt.Sprintf("What are the average parking rates and best parking areas in %s? Provide a helpful summary for someone looking to rent a spot.", location)
}

func systemInstruction(catalogSnapshot string) string {
	return "You are ParkShare AI, a helpful assistant for a car park rental platform.\n" +
		"You help users find the best parking spots based on their needs.\n" +
		"Context of available spots: " + catalogSnapshot + ".\n" +
		"Be concise, friendly, and professional."
}

func (g *Gemini) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout > 0 {
		return context.WithTimeout(ctx, g.timeout)
	}
	return context.WithCancel(ctx)
}

// FetchInsights asks the model, with Google Search grounding enabled, for
// parking rates around query.
func (g *Gemini) FetchInsights(ctx context.Context, query string) models.InsightResult {
	resp, err := g.generateInsights(ctx, query)
	if err != nil {
		log.Printf("gemini insights error: %v", err)
		return models.InsightResult{Text: InsightFailureText, Sources: []models.GroundingSource{}}
	}
	return insightFromResponse(resp)
}

func (g *Gemini) generateInsights(ctx context.Context, query string) (*genai.GenerateContentResponse, error) {
	if g.initErr != nil {
		return nil, g.initErr
	}

	ctx, cancel := g.callContext(ctx)
	defer cancel()

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(insightPrompt(query)), &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	})
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}
	if resp == nil {
		return nil, errors.New("empty response")
	}
	return resp, nil
}

// SendMessage opens a fresh chat seeded with the catalog and sends one message.
func (g *Gemini) SendMessage(ctx context.Context, userText, catalogSnapshot string) string {
	resp, err := g.chat(ctx, userText, catalogSnapshot)
	if err != nil {
		log.Printf("gemini chat error: %v", err)
		return ChatFailureText
	}

	text := responseText(resp)
	if text == "" {
		return ChatNoTextReply
	}
	return text
}

func (g *Gemini) chat(ctx context.Context, userText, catalogSnapshot string) (*genai.GenerateContentResponse, error) {
	if g.initErr != nil {
		return nil, g.initErr
	}

	ctx, cancel := g.callContext(ctx)
	defer cancel()

	session, err := g.client.Chats.Create(ctx, g.model, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction(catalogSnapshot), genai.RoleUser),
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("create chat: %w", err)
	}

	resp, err := session.SendMessage(ctx, genai.Part{Text: userText})
	if err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}
	return resp, nil
}

func insightFromResponse(resp *genai.GenerateContentResponse) models.InsightResult {
	result := models.InsightResult{Text: responseText(resp), Sources: []models.GroundingSource{}}
	if result.Text == "" {
		result.Text = NoInsightsText
	}

	cand := topCandidate(resp)
	if cand == nil || cand.GroundingMetadata == nil {
		return result
	}
	for _, chunk := range cand.GroundingMetadata.GroundingChunks {
		if chunk == nil || chunk.Web == nil {
			continue
		}
		title := chunk.Web.Title
		if title == "" {
			title = defaultSourceTitle
		}
		result.Sources = append(result.Sources, models.GroundingSource{Title: title, URI: chunk.Web.URI})
	}
	return result
}

func topCandidate(resp *genai.GenerateContentResponse) *genai.Candidate {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}
	return resp.Candidates[0]
}

// responseText joins the text parts of the top candidate, skipping thoughts.
func responseText(resp *genai.GenerateContentResponse) string {
	cand := topCandidate(resp)
	if cand == nil || cand.Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range cand.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String()
}
