package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	mcd "github.com/llehouerou/go-mcd"
	"github.com/llehouerou/go-mcd/schema"
)

// maxWarehouseFetches bounds the warehouses listed at the same time.
const maxWarehouseFetches = 4

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the user and account owning the API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			user, err := c.GetUser(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(user)
		},
	}
}

func newTablesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Work with tables",
	}

	var (
		warehouses []string
		search     string
		deleted    bool
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List the tables of one or more warehouses",
		Long: `List the tables of the given warehouses, or of every warehouse of the
account when --warehouse is not set. Warehouses are read concurrently.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			ids, err := parseUUIDs(warehouses)
			if err != nil {
				return err
			}
			if len(ids) == 0 {
				user, err := c.GetUser(cmd.Context())
				if err != nil {
					return err
				}
				if user.Account != nil {
					for _, w := range user.Account.Warehouses {
						ids = append(ids, w.UUID)
					}
				}
			}

			results := make([][]schema.WarehouseTable, len(ids))
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(maxWarehouseFetches)
			for i, id := range ids {
				g.Go(func() error {
					p := mcd.TablesParams{WarehouseUUID: &id, Search: search}
					if deleted {
						p.IsDeleted = &deleted
					}
					tables, err := c.AllTables(ctx, p)
					if err != nil {
						return fmt.Errorf("warehouse %s: %w", id, err)
					}
					a.logger.Debug("listed warehouse tables",
						zap.Stringer("warehouse", id),
						zap.Int("tables", len(tables)),
					)
					results[i] = tables
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			all := []schema.WarehouseTable{}
			for _, tables := range results {
				all = append(all, tables...)
			}
			return a.print(all)
		},
	}
	list.Flags().StringSliceVarP(&warehouses, "warehouse", "w", nil, "warehouse uuid, repeatable (default every warehouse)")
	list.Flags().StringVar(&search, "search", "", "only tables whose name contains this text")
	list.Flags().BoolVar(&deleted, "deleted", false, "list deleted tables instead")

	cmd.AddCommand(list)
	return cmd
}

func newIncidentsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "incidents",
		Short: "Work with incidents",
	}

	var (
		since      time.Duration
		severities []string
		types      []string
		warehouse  string
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List incidents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := mcd.IncidentsParams{}
			if since > 0 {
				p.StartTime = time.Now().Add(-since)
			}
			for _, s := range severities {
				sev := schema.IncidentSeverity(strings.ToUpper(s))
				if !sev.IsValid() {
					return fmt.Errorf("unknown severity %q", s)
				}
				p.Severities = append(p.Severities, sev)
			}
			for _, s := range types {
				typ := schema.IncidentType(strings.ToUpper(s))
				if !typ.IsValid() {
					return fmt.Errorf("unknown incident type %q", s)
				}
				p.IncidentTypes = append(p.IncidentTypes, typ)
			}
			if warehouse != "" {
				id, err := uuid.Parse(warehouse)
				if err != nil {
					return fmt.Errorf("warehouse: %w", err)
				}
				p.WarehouseUUID = &id
			}

			c, err := a.client()
			if err != nil {
				return err
			}
			incidents, err := c.AllIncidents(cmd.Context(), p)
			if err != nil {
				return err
			}
			if incidents == nil {
				incidents = []schema.Incident{}
			}
			return a.print(incidents)
		},
	}
	list.Flags().DurationVar(&since, "since", 24*time.Hour, "only incidents newer than this; 0 lists all")
	list.Flags().StringSliceVar(&severities, "severity", nil, "severity filter, e.g. SEV_1, repeatable")
	list.Flags().StringSliceVar(&types, "type", nil, "incident type filter, e.g. ANOMALIES, repeatable")
	list.Flags().StringVarP(&warehouse, "warehouse", "w", "", "warehouse uuid")

	cmd.AddCommand(list)
	return cmd
}

func newMonitorsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "monitors",
		Short: "Work with monitors",
	}

	var (
		types  []string
		search string
		limit  int
		offset int
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List monitors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := mcd.MonitorsParams{Search: search, Limit: limit, Offset: offset}
			for _, s := range types {
				typ := schema.MonitorType(strings.ToUpper(s))
				if !typ.IsValid() {
					return fmt.Errorf("unknown monitor type %q", s)
				}
				p.Types = append(p.Types, typ)
			}

			c, err := a.client()
			if err != nil {
				return err
			}
			monitors, err := c.GetMonitors(cmd.Context(), p)
			if err != nil {
				return err
			}
			if monitors == nil {
				monitors = []schema.Monitor{}
			}
			return a.print(monitors)
		},
	}
	list.Flags().StringSliceVar(&types, "type", nil, "monitor type filter, e.g. FRESHNESS, repeatable")
	list.Flags().StringVar(&search, "search", "", "only monitors matching this text")
	list.Flags().IntVar(&limit, "limit", 0, "maximum number of monitors (default server side)")
	list.Flags().IntVar(&offset, "offset", 0, "monitors to skip")

	cmd.AddCommand(list)
	return cmd
}

func parseUUIDs(values []string) ([]schema.UUID, error) {
	ids := make([]schema.UUID, 0, len(values))
	for _, v := range values {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, fmt.Errorf("invalid uuid %q: %w", v, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
