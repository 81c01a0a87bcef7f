// Package caption renders leaderboard entries into display lines.
package caption

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/ddoberne/statcast-highlight-tool/internal/statcast"
)

// Resolver maps a numeric player id to a display name.
type Resolver interface {
	ResolveName(ctx context.Context, playerID int) (string, error)
}

// Generator builds caption lines, resolving each distinct player id once.
// A resolution failure falls back to the literal id and never aborts caption
// generation for other entries.
type Generator struct {
	resolver Resolver
	names    map[int]string
}

// New creates a caption generator over a name resolver.
func New(resolver Resolver) *Generator {
	return &Generator{resolver: resolver, names: make(map[int]string)}
}

// Line formats one caption: "<rank>) <date> <pitcher> to <batter>, <flavor>".
// The flavor clause is omitted, with its comma, when flavor is empty.
func (g *Generator) Line(ctx context.Context, rank int, p statcast.Pitch, flavor string) string {
	pitcher := g.name(ctx, p.PitcherID)
	batter := g.name(ctx, p.BatterID)
	if flavor != "" {
		flavor = ", " + flavor
	}
	return fmt.Sprintf("%d) %s %s to %s%s", rank, p.GameDate, pitcher, batter, flavor)
}

func (g *Generator) name(ctx context.Context, playerID int) string {
	if name, ok := g.names[playerID]; ok {
		return name
	}
	name, err := g.resolver.ResolveName(ctx, playerID)
	if err != nil {
		log.Printf("Name lookup failed for %d, using id: %v", playerID, err)
		name = strconv.Itoa(playerID)
	}
	g.names[playerID] = name
	return name
}
