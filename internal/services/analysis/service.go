package analysis

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/adk/agent"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/genai"

	"stockagent/internal/adapters/errors/noop"
	"stockagent/internal/metrics"
	"stockagent/pkg/errors"
	"stockagent/pkg/logger"
)

// DefaultQuery is the question asked when none is given.
const DefaultQuery = "Summarize the latest news about Adobe and its stock price."

// Result is the outcome of one query: exactly one of Response and Err is meaningful.
type Result struct {
	Response string
	Err      error
}

// OK reports whether the query produced a response.
func (r Result) OK() bool {
	return r.Err == nil
}

// Text returns the response, or the error formatted for display.
func (r Result) Text() string {
	if r.Err != nil {
		return "Error analyzing stock: " + r.Err.Error()
	}
	return r.Response
}

// Options configures a Service.
type Options struct {
	AppName string
	UserID  string
	// Timeout bounds a whole query; zero leaves it to the caller's context
	Timeout time.Duration
	Tracker errors.Tracker
}

// Service issues single queries to an agent through an in-memory session.
type Service struct {
	agent    agent.Agent
	runner   *runner.Runner
	sessions session.Service
	appName  string
	userID   string
	timeout  time.Duration
	tracker  errors.Tracker
	log      *logger.Logger
}

// NewService wraps ag in an ADK runner.
func NewService(ag agent.Agent, opts Options) (*Service, error) {
	if ag == nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "agent is required")
	}
	if opts.AppName == "" {
		opts.AppName = "stockagent"
	}
	if opts.UserID == "" {
		opts.UserID = "cli"
	}
	if opts.Tracker == nil {
		opts.Tracker = noop.New()
	}

	sessions := session.InMemoryService()

	r, err := runner.New(runner.Config{
		AppName:        opts.AppName,
		Agent:          ag,
		SessionService: sessions,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create ADK runner")
	}

	return &Service{
		agent:    ag,
		runner:   r,
		sessions: sessions,
		appName:  opts.AppName,
		userID:   opts.UserID,
		timeout:  opts.Timeout,
		tracker:  opts.Tracker,
		log:      logger.Get().With("component", "analysis_service", "agent", ag.Name()),
	}, nil
}

// Analyze runs query once. Failures are returned inside the Result, never as a panic.
func (s *Service) Analyze(ctx context.Context, query string) Result {
	start := time.Now()

	response, err := s.run(ctx, query)
	metrics.RecordAgentQuery(s.agent.Name(), time.Since(start), err)

	if err != nil {
		s.log.Errorw("Query failed", "error", err, "kind", errors.Kind(err), "duration", time.Since(start))
		_ = s.tracker.CaptureError(ctx, err, map[string]string{
			"component": "analysis_service",
			"agent":     s.agent.Name(),
		})
		return Result{Err: err}
	}

	s.log.Infow("Query complete", "duration", time.Since(start), "chars", len(response))
	return Result{Response: response}
}

func (s *Service) run(ctx context.Context, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", errors.Wrapf(errors.ErrInvalidInput, "query is empty")
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	sessionID := uuid.New().String()
	if _, err := s.sessions.Create(ctx, &session.CreateRequest{
		AppName:   s.appName,
		UserID:    s.userID,
		SessionID: sessionID,
	}); err != nil {
		return "", errors.Wrap(err, "failed to create session")
	}

	input := genai.NewContentFromText(query, genai.RoleUser)
	runConfig := agent.RunConfig{
		StreamingMode: agent.StreamingModeNone,
	}

	var final string
	for event, err := range s.runner.Run(ctx, s.userID, sessionID, input, runConfig) {
		if err != nil {
			return "", errors.Wrap(err, "agent execution failed")
		}
		if event == nil || event.LLMResponse.Partial {
			continue
		}
		if event.LLMResponse.ErrorMessage != "" {
			return "", errors.Wrapf(errors.ErrExternal, "model error: %s", event.LLMResponse.ErrorMessage)
		}

		if event.LLMResponse.Content != nil {
			for _, part := range event.LLMResponse.Content.Parts {
				if part.FunctionCall != nil {
					s.log.Debugw("Tool call", "author", event.Author, "tool", part.FunctionCall.Name)
					s.tracker.AddBreadcrumb(ctx, part.FunctionCall.Name, "tool_call", map[string]interface{}{
						"author": event.Author,
						"args":   part.FunctionCall.Args,
					})
				}
			}
		}

		if event.IsFinalResponse() {
			if text := eventText(event); text != "" {
				final = text
			}
		}
	}

	if final == "" {
		return "", errors.Wrapf(errors.ErrInternal, "agent %s returned no response", s.agent.Name())
	}
	return final, nil
}

func eventText(event *session.Event) string {
	if event.LLMResponse.Content == nil {
		return ""
	}
	var parts []string
	for _, part := range event.LLMResponse.Content.Parts {
		if part != nil && part.Text != "" && !part.Thought {
			parts = append(parts, part.Text)
		}
	}
	return strings.TrimSpace(strings.Join(parts, ""))
}
