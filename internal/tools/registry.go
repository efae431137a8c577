package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ErrUnknownTool is returned by Call for names the registry does not hold.
var ErrUnknownTool = errors.New("unknown tool")

// ArgumentError lists every schema violation found in a tool's arguments.
type ArgumentError struct {
	Tool     string
	Problems []string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid arguments for %s: %s", e.Tool, strings.Join(e.Problems, ", "))
}

type entry struct {
	def     Definition
	schema  *gojsonschema.Schema
	handler Handler
}

// Registry maps tool names to their definition and handler. It is built once
// at startup and read-only afterwards.
type Registry struct {
	entries map[string]entry
	order   []string
}

// NewRegistry registers the Steam tools backed by svc.
func NewRegistry(svc *Service) (*Registry, error) {
	r := &Registry{entries: make(map[string]entry)}

	if err := r.Register(
		Definition{
			Name:        ListSteamFriendsName,
			Description: "List friends for steam id. Includes names, online states and steam ids.",
			InputSchema: steamIDSchema("The 64-bit Steam ID whose friends to list."),
		},
		func(ctx context.Context, args map[string]any) (string, error) {
			friends, err := svc.ListFriends(ctx, args["steam_id"].(string))
			if err != nil {
				return "", err
			}
			return encodeJSON(friends)
		},
	); err != nil {
		return nil, err
	}

	if err := r.Register(
		Definition{
			Name:        ListSteamGamesName,
			Description: "List all steam games for steam id.",
			InputSchema: steamIDSchema("The 64-bit Steam ID whose owned games to list."),
		},
		func(ctx context.Context, args map[string]any) (string, error) {
			games, err := svc.ListGames(ctx, args["steam_id"].(string))
			if err != nil {
				return "", err
			}
			return encodeJSON(games)
		},
	); err != nil {
		return nil, err
	}

	if err := r.Register(
		Definition{
			Name:        GetMySteamIDName,
			Description: "Get my steam id.",
			InputSchema: map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			},
		},
		func(ctx context.Context, args map[string]any) (string, error) {
			return svc.MySteamID(), nil
		},
	); err != nil {
		return nil, err
	}

	return r, nil
}

// Register adds a tool. The input schema is compiled up front so a bad schema
// fails registration rather than the first call.
func (r *Registry) Register(def Definition, handler Handler) error {
	if def.Name == "" {
		return errors.New("tool name is required")
	}
	if _, exists := r.entries[def.Name]; exists {
		return fmt.Errorf("tool %s already registered", def.Name)
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(def.InputSchema))
	if err != nil {
		return fmt.Errorf("compile schema for %s: %w", def.Name, err)
	}
	r.entries[def.Name] = entry{def: def, schema: schema, handler: handler}
	r.order = append(r.order, def.Name)
	return nil
}

// Definitions returns the registered tools in registration order.
func (r *Registry) Definitions() []Definition {
	defs := make([]Definition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.entries[name].def)
	}
	return defs
}

// Lookup returns the definition registered under name.
func (r *Registry) Lookup(name string) (Definition, bool) {
	e, ok := r.entries[name]
	return e.def, ok
}

// Call validates args against the tool's schema and runs it.
func (r *Registry) Call(ctx context.Context, name string, args map[string]any) (string, error) {
	e, ok := r.entries[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	if args == nil {
		args = map[string]any{}
	}
	if err := validate(e, args); err != nil {
		return "", err
	}
	return e.handler(ctx, args)
}

func validate(e entry, args map[string]any) error {
	result, err := e.schema.Validate(gojsonschema.NewGoLoader(args))
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}
	problems := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return &ArgumentError{Tool: e.def.Name, Problems: problems}
}
