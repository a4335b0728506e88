// Package engine provides the Step() orchestrator that wires together
// parsing, the room graph, puzzles, combat and events into a single turn.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/nathoo/dungeonexplorer/engine/combat"
	"github.com/nathoo/dungeonexplorer/engine/entity"
	"github.com/nathoo/dungeonexplorer/engine/events"
	"github.com/nathoo/dungeonexplorer/engine/parser"
	"github.com/nathoo/dungeonexplorer/engine/rng"
	"github.com/nathoo/dungeonexplorer/engine/stats"
	"github.com/nathoo/dungeonexplorer/engine/world"
	"github.com/nathoo/dungeonexplorer/telemetry"
	"github.com/nathoo/dungeonexplorer/types"
)

// Options tune a new session. The zero value is a usable default.
type Options struct {
	Seed int64
	// Capacity overrides the world's inventory size when positive.
	Capacity int
	// EncounterChance is the random encounter percentage. Zero keeps the
	// default, negative disables encounters.
	EncounterChance int
	// Source replaces the seeded RNG for every roll. Saves still record
	// the seeded RNG.
	Source rng.Source
	Tracer trace.Tracer
	Logger *slog.Logger
	Clock  func() time.Time
}

// Engine holds the world, the player and the turn state of one session.
type Engine struct {
	Def    *types.WorldDef
	World  *world.Graph
	Player *entity.Player
	RNG    *rng.RNG
	Stats  *stats.Stats
	Turn   int

	encounter     *combat.Encounter
	encounterRoom *world.Room
	gameOver      bool

	src    rng.Source
	tracer trace.Tracer
	log    *slog.Logger
	sinks  []events.Sink
}

// New creates a session from a compiled world.
func New(def *types.WorldDef, opts Options) (*Engine, error) {
	e := &Engine{
		Def:    def,
		RNG:    rng.NewRNG(opts.Seed),
		tracer: opts.Tracer,
		log:    opts.Logger,
	}
	if e.tracer == nil {
		e.tracer = telemetry.NoopTracer()
	}
	if e.log == nil {
		e.log = slog.Default()
	}
	e.src = opts.Source
	if e.src == nil {
		e.src = e.RNG
	}
	if opts.Clock != nil {
		e.Stats = stats.NewWithClock(opts.Clock)
	} else {
		e.Stats = stats.New()
	}
	e.sinks = []events.Sink{e.Stats}

	g, err := buildWorld(def, e.src)
	if err != nil {
		return nil, fmt.Errorf("building world: %w", err)
	}
	switch {
	case opts.EncounterChance < 0:
		g.EncounterChance = 0
	case opts.EncounterChance > 0:
		g.EncounterChance = opts.EncounterChance
	}
	e.World = g

	p, err := newPlayer(def.Player, opts.Capacity)
	if err != nil {
		return nil, err
	}
	e.Player = p

	// The start room counts as visited.
	start := g.Current()
	start.Visited = true
	events.Publish([]types.Event{events.New(events.RoomVisited, "room", start.ID, "name", start.Name)}, e.sinks...)

	return e, nil
}

// AddSink registers an extra observer for every event the session emits.
func (e *Engine) AddSink(s events.Sink) {
	e.sinks = append(e.sinks, s)
}

// InCombat reports whether an encounter is in progress.
func (e *Engine) InCombat() bool { return e.encounter != nil }

// Encounter returns the fight in progress, or nil.
func (e *Engine) Encounter() *combat.Encounter { return e.encounter }

// GameOver reports whether the player has been defeated.
func (e *Engine) GameOver() bool { return e.gameOver }

// Intro returns the title banner, the world intro and the starting room.
func (e *Engine) Intro() []string {
	out := []string{
		"=================================",
		"       " + e.Def.Game.Title,
		"=================================",
	}
	if e.Def.Game.Intro != "" {
		out = append(out, e.Def.Game.Intro, "")
	}
	return append(out, e.describeRoom(e.World.Current())...)
}

// Look describes the current room without spending a turn.
func (e *Engine) Look() []string { return e.describeRoom(e.World.Current()) }

// Help lists the game commands without spending a turn.
func (e *Engine) Help() []string { return slices.Clone(helpLines) }

// turn accumulates the events and narration of one Step, in order.
type turn struct {
	events []types.Event
	output []string
}

func (t *turn) say(lines ...string) {
	t.output = append(t.output, lines...)
}

// emit records events, renders them and runs the world's handlers.
func (e *Engine) emit(t *turn, evts []types.Event) {
	if len(evts) == 0 {
		return
	}
	t.events = append(t.events, evts...)
	t.say(render(evts)...)
	t.say(events.Dispatch(evts, e.Def.Handlers)...)
}

// Step processes one player command and returns the result.
func (e *Engine) Step(ctx context.Context, input string) types.Result {
	ctx, span := e.tracer.Start(ctx, "engine.step")
	defer span.End()

	if e.gameOver {
		return types.Result{Output: []string{"Game over. Use /load to restore a save or /quit to exit."}}
	}

	intent := parser.Parse(input)
	span.SetAttributes(
		attribute.String("verb", intent.Verb),
		attribute.Int("turn", e.Turn),
		attribute.Int("room", e.World.Current().ID),
	)

	if intent.Verb == "" {
		return types.Result{Output: []string{"What do you want to do?"}}
	}

	var t turn
	if e.encounter != nil {
		e.combatCommand(ctx, intent, &t)
	} else {
		e.command(ctx, intent, &t)
	}

	events.Publish(t.events, e.sinks...)
	e.Turn++
	span.SetAttributes(attribute.Int("events", len(t.events)))

	return types.Result{Events: t.events, Output: t.output}
}

// tagRoom adds the room id to events that do not carry one, so room-scoped
// handlers can match them.
func tagRoom(evts []types.Event, room int) []types.Event {
	for i := range evts {
		if evts[i].Data == nil {
			evts[i].Data = map[string]any{}
		}
		if _, ok := evts[i].Data["room"]; !ok {
			evts[i].Data["room"] = room
		}
	}
	return evts
}

func sortedRoomIDs(def *types.WorldDef) []int {
	ids := make([]int, 0, len(def.Rooms))
	for id := range def.Rooms {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
