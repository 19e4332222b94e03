package mcd

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/llehouerou/go-mcd/schema"
)

// ErrCursorLoop is returned when the server hands out a cursor it already
// returned, which would otherwise page forever.
var ErrCursorLoop = errors.New("pagination cursor repeated")

// PageFunc fetches the page after the cursor after, the first page when
// after is empty.
type PageFunc[N any] func(ctx context.Context, after string) (*schema.RelayConnection[N], error)

// CollectAll reads every page of a connection and returns the nodes in
// order. It stops after maxPages pages when maxPages > 0; the nodes read
// so far are returned without error in that case.
func CollectAll[N any](ctx context.Context, maxPages int, fetch PageFunc[N]) ([]N, error) {
	var nodes []N
	seen := make(map[string]struct{})
	after := ""
	for page := 0; maxPages <= 0 || page < maxPages; page++ {
		if err := ctx.Err(); err != nil {
			return nodes, err
		}
		conn, err := fetch(ctx, after)
		if err != nil {
			return nodes, fmt.Errorf("page %d: %w", page+1, err)
		}
		nodes = append(nodes, conn.Nodes()...)

		next, ok := conn.NextCursor()
		if !ok {
			return nodes, nil
		}
		if _, dup := seen[next]; dup {
			return nodes, fmt.Errorf("%w: %q", ErrCursorLoop, next)
		}
		seen[next] = struct{}{}
		after = next
	}
	return nodes, nil
}

func collect[N any](ctx context.Context, c *Client, what string, fetch PageFunc[N]) ([]N, error) {
	nodes, err := CollectAll(ctx, c.maxPages, fetch)
	c.logger.Debug("collected pages",
		zap.String("connection", what),
		zap.Int("nodes", len(nodes)),
		zap.Error(err),
	)
	return nodes, err
}

// AllTables returns every table matching p. p.After is ignored.
func (c *Client) AllTables(ctx context.Context, p TablesParams) ([]schema.WarehouseTable, error) {
	return collect[schema.WarehouseTable](ctx, c, "tables", func(ctx context.Context, after string) (*schema.TableConnection, error) {
		p.After = after
		return c.GetTables(ctx, p)
	})
}

// AllIncidents returns every incident matching p. p.After is ignored.
func (c *Client) AllIncidents(ctx context.Context, p IncidentsParams) ([]schema.Incident, error) {
	return collect[schema.Incident](ctx, c, "incidents", func(ctx context.Context, after string) (*schema.IncidentConnection, error) {
		p.After = after
		return c.GetIncidents(ctx, p)
	})
}

// AllCustomRules returns every custom rule matching p. p.After is
// ignored.
func (c *Client) AllCustomRules(ctx context.Context, p CustomRulesParams) ([]schema.CustomRule, error) {
	return collect[schema.CustomRule](ctx, c, "custom rules", func(ctx context.Context, after string) (*schema.CustomRuleConnection, error) {
		p.After = after
		return c.GetCustomRules(ctx, p)
	})
}

// AllObjectProperties returns every object property matching p. p.After
// is ignored.
func (c *Client) AllObjectProperties(ctx context.Context, p ObjectPropertiesParams) ([]schema.ObjectProperty, error) {
	return collect[schema.ObjectProperty](ctx, c, "object properties", func(ctx context.Context, after string) (*schema.ObjectPropertyConnection, error) {
		p.After = after
		return c.GetObjectProperties(ctx, p)
	})
}

// AllUsers returns every user of the account matching p. p.After is
// ignored.
func (c *Client) AllUsers(ctx context.Context, p UsersParams) ([]schema.User, error) {
	return collect[schema.User](ctx, c, "users", func(ctx context.Context, after string) (*schema.UserConnection, error) {
		p.After = after
		return c.GetUsersInAccount(ctx, p)
	})
}
