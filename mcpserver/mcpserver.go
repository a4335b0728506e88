// Package mcpserver exposes a dungeon session as a Model Context Protocol
// tool, so an agent can play over Streamable HTTP.
package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/nathoo/dungeonexplorer/engine"
	"github.com/nathoo/dungeonexplorer/types"
)

// Version is reported in the MCP implementation info.
const Version = "v1.0.0"

// CommandInput is the argument of the command tool.
type CommandInput struct {
	Command string `json:"command" jsonschema:"Game command to execute, e.g. 'look', 'go 2', 'solve echo', 'attack'"`
	Reset   bool   `json:"reset,omitempty" jsonschema:"Start a new game before executing the command"`
	Seed    *int64 `json:"seed,omitempty" jsonschema:"Seed to use when resetting the game"`
}

// CommandOutput is the result of the command tool.
type CommandOutput struct {
	Output string  `json:"output" jsonschema:"Game narration"`
	State  Summary `json:"state" jsonschema:"Summary of the current game state"`
}

// Summary is a compact view of the session for agents.
type Summary struct {
	Turn       int      `json:"turn"`
	Room       int      `json:"room"`
	RoomName   string   `json:"room_name"`
	Exits      []int    `json:"exits"`
	Health     int      `json:"health"`
	MaxHealth  int      `json:"max_health"`
	Level      int      `json:"level"`
	Experience int      `json:"experience"`
	Inventory  []string `json:"inventory"`
	InCombat   bool     `json:"in_combat"`
	Monster    string   `json:"monster,omitempty"`
	GameOver   bool     `json:"game_over"`
}

// Server serialises tool calls onto one session.
type Server struct {
	mu   sync.Mutex
	def  *types.WorldDef
	opts engine.Options
	eng  *engine.Engine
}

// New starts a session for def.
func New(def *types.WorldDef, opts engine.Options) (*Server, error) {
	eng, err := engine.New(def, opts)
	if err != nil {
		return nil, err
	}
	return &Server{def: def, opts: opts, eng: eng}, nil
}

// Summarize describes the state of eng.
func Summarize(eng *engine.Engine) Summary {
	room := eng.World.Current()
	p := eng.Player
	s := Summary{
		Turn:       eng.Turn,
		Room:       room.ID,
		RoomName:   room.Name,
		Health:     p.Health,
		MaxHealth:  p.MaxHealth,
		Level:      p.Level(),
		Experience: p.Experience,
		Inventory:  []string{},
		Exits:      []int{},
		InCombat:   eng.InCombat(),
		GameOver:   eng.GameOver(),
	}
	for _, edge := range room.Exits() {
		s.Exits = append(s.Exits, edge.To)
	}
	for _, it := range p.Inventory.Items() {
		s.Inventory = append(s.Inventory, it.Name)
	}
	if enc := eng.Encounter(); enc != nil {
		s.Monster = enc.Monster.Name
	} else if m := room.LiveMonster(); m != nil {
		s.Monster = m.Name
	}
	return s
}

// HandleCommand runs one command, or resets the session first.
func (s *Server) HandleCommand(ctx context.Context, _ *mcp.CallToolRequest, input *CommandInput) (*mcp.CallToolResult, *CommandOutput, error) {
	if input == nil {
		input = &CommandInput{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if input.Reset {
		opts := s.opts
		if input.Seed != nil {
			opts.Seed = *input.Seed
		}
		eng, err := engine.New(s.def, opts)
		if err != nil {
			return nil, nil, fmt.Errorf("reset: %w", err)
		}
		s.eng = eng
		slog.Info("mcp session reset", "seed", opts.Seed)
		if strings.TrimSpace(input.Command) == "" {
			return nil, &CommandOutput{
				Output: strings.Join(eng.Intro(), "\n"),
				State:  Summarize(eng),
			}, nil
		}
	}

	cmd := strings.TrimSpace(input.Command)
	if cmd == "" {
		cmd = "look"
	}
	result := s.eng.Step(ctx, cmd)
	return nil, &CommandOutput{
		Output: strings.Join(result.Output, "\n"),
		State:  Summarize(s.eng),
	}, nil
}

// Handler returns the MCP endpoint. Requests with a foreign Origin header
// are refused, and a non-empty token is required as a bearer token.
func (s *Server) Handler(token string, origins []string) http.Handler {
	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    "dungeonexplorer",
		Version: Version,
	}, nil)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "command",
		Description: "Send a command to the dungeon and return the narration plus a state summary.",
	}, s.HandleCommand)

	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return mcpServer
	}, &mcp.StreamableHTTPOptions{
		Stateless:    true,
		JSONResponse: true,
		Logger:       slog.Default(),
	})

	originSet := map[string]struct{}{}
	for _, origin := range origins {
		originSet[origin] = struct{}{}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !allowedOrigin(r, originSet) {
			http.Error(w, "Forbidden origin", http.StatusForbidden)
			return
		}
		if token != "" && r.Header.Get("Authorization") != "Bearer "+token {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		handler.ServeHTTP(w, r)
	})
}

func allowedOrigin(r *http.Request, allowed map[string]struct{}) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	_, ok := allowed[origin]
	return ok
}

// ListenAndServe serves the endpoint at /mcp on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr, token string) error {
	mux := http.NewServeMux()
	mux.Handle("/mcp", s.Handler(token, nil))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		slog.Info("mcp server listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
