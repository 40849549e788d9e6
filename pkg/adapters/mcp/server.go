// Package mcp exposes the assistant as an MCP server so agent hosts
// can ask it questions as a tool. State handling matches the HTTP
// adapter: the caller carries a session id, the server carries the
// thread state.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	florence "github.com/impact-cms/florence"
	"github.com/impact-cms/florence/pkg/domain"
	"github.com/impact-cms/florence/pkg/session"
)

// Version is stamped by the build; the MCP handshake reports it.
var Version = "dev"

// AskResponse is the structured tool output, mirroring the HTTP wire
// shape.
type AskResponse struct {
	SessionID string  `json:"session_id"`
	Answer    string  `json:"answer"`
	IsGuess   bool    `json:"is_guess"`
	Source    string  `json:"model_source"`
	Mode      string  `json:"answer_mode"`
	Confident float64 `json:"confidence"`
}

// Server wraps the assistant as an MCP server.
type Server struct {
	assistant *florence.Assistant
	sessions  *session.Manager
	mcpServer *server.MCPServer
	log       *slog.Logger
}

// NewServer creates an MCP server over the assistant.
func NewServer(assistant *florence.Assistant, sessions *session.Manager, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		assistant: assistant,
		sessions:  sessions,
		mcpServer: server.NewMCPServer("florence-mcp", Version),
		log:       log,
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and shuts
// down gracefully when ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{Addr: addr, Handler: mux}

	serverErrors := make(chan error, 1)
	go func() {
		s.log.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	askTool := mcp.NewTool("ask_florence",
		mcp.WithDescription("Ask the assistant a question about claims, billing, billables, invoices, or reports. Pass the returned session_id on follow-up questions to keep conversational context."),
		mcp.WithString("question", mcp.Required(), mcp.Description("The question to ask")),
		mcp.WithString("session_id", mcp.Description("Session id from a previous call (optional)")),
		mcp.WithNumber("claim_id", mcp.Description("Claim id the question is about (optional)")),
		mcp.WithString("page_context", mcp.Description("Host page context, e.g. claim_detail (optional)")),
		mcp.WithOutputSchema[AskResponse](),
	)
	s.mcpServer.AddTool(askTool, mcp.NewStructuredToolHandler(s.handleAsk))

	s.mcpServer.AddTool(mcp.NewTool("list_capabilities",
		mcp.WithDescription("List the question shapes the assistant answers deterministically."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonBytes, _ := json.Marshal(s.assistant.Capabilities())
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) handleAsk(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (AskResponse, error) {
	question, _ := args["question"].(string)
	if question == "" {
		return AskResponse{}, fmt.Errorf("question is required")
	}

	sessionID, _ := args["session_id"].(string)
	if sessionID == "" {
		sessionID = newSessionID()
	}

	raw := map[string]any{}
	if claimID, ok := args["claim_id"]; ok {
		raw["claim_id"] = claimID
	}
	if pc, ok := args["page_context"].(string); ok && pc != "" {
		raw["page_context"] = pc
	}
	tc, err := domain.DecodeTurnContext(raw)
	if err != nil {
		return AskResponse{}, fmt.Errorf("invalid turn context: %w", err)
	}

	var resp *domain.Response
	err = s.sessions.WithLock(ctx, sessionID, func(ctx context.Context) error {
		state, err := s.sessions.Store().Load(ctx, sessionID)
		if err != nil {
			state = domain.NewThreadState()
		}
		resp, err = s.assistant.HandleTurn(ctx, state, question, tc)
		if err != nil {
			return err
		}
		return s.sessions.Store().Save(ctx, sessionID, resp.StateUpdate)
	})
	if err != nil {
		return AskResponse{}, fmt.Errorf("turn failed: %w", err)
	}

	out := AskResponse{
		SessionID: sessionID,
		Answer:    resp.Answer,
		IsGuess:   resp.IsGuess,
		Source:    resp.ModelSource,
		Mode:      string(resp.AnswerMode),
	}
	if resp.Confidence != nil {
		out.Confident = *resp.Confidence
	}
	return out, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource("florence://capabilities", "Assistant Capabilities",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.assistant.Capabilities())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal capabilities: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "florence://capabilities",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
