package mcd

import (
	"context"
	"time"

	"github.com/llehouerou/go-mcd/graphql"
	"github.com/llehouerou/go-mcd/schema"
)

// Optional variables are pointers with omitempty: a variable left out of
// the payload takes the argument's default in the schema.

// GetUser returns the user owning the API key.
func (c *Client) GetUser(ctx context.Context) (*schema.User, error) {
	var q struct {
		GetUser *schema.User `graphql:"getUser"`
	}
	if err := c.gql.Query(ctx, &q, nil, graphql.OperationName("GetUser")); err != nil {
		return nil, err
	}
	if q.GetUser == nil {
		return nil, notFound("user", "of the API key")
	}
	return q.GetUser, nil
}

// GetWarehouse returns the warehouse with the given uuid.
func (c *Client) GetWarehouse(ctx context.Context, id schema.UUID) (*schema.Warehouse, error) {
	var q struct {
		GetWarehouse *schema.Warehouse `graphql:"getWarehouse(uuid: $uuid)"`
	}
	vars := struct {
		UUID schema.UUID `json:"uuid"`
	}{id}
	if err := c.gql.Query(ctx, &q, vars, graphql.OperationName("GetWarehouse")); err != nil {
		return nil, err
	}
	if q.GetWarehouse == nil {
		return nil, notFound("warehouse", id)
	}
	return q.GetWarehouse, nil
}

// TablesParams filters GetTables. Zero fields are not sent.
type TablesParams struct {
	WarehouseUUID *schema.UUID
	Search        string
	IsDeleted     *bool
	// First is the page size, 100 by default.
	First int
	After string
}

type tablesVars struct {
	DwID      *schema.UUID `json:"dwId,omitempty"`
	Search    *string      `json:"search,omitempty"`
	IsDeleted *bool        `json:"isDeleted,omitempty"`
	First     *int         `json:"first,omitempty"`
	After     *string      `json:"after,omitempty"`
}

// GetTables returns one page of tables.
func (c *Client) GetTables(ctx context.Context, p TablesParams) (*schema.TableConnection, error) {
	var q struct {
		GetTables *schema.TableConnection `graphql:"getTables(dwId: $dwId, search: $search, isDeleted: $isDeleted, first: $first, after: $after)"`
	}
	vars := tablesVars{
		DwID:      p.WarehouseUUID,
		Search:    optString(p.Search),
		IsDeleted: p.IsDeleted,
		First:     optInt(p.First),
		After:     optString(p.After),
	}
	if err := c.gql.Query(ctx, &q, vars, graphql.OperationName("GetTables")); err != nil {
		return nil, err
	}
	return q.GetTables, nil
}

// TableLookup identifies a table by MCON, or by full table id within a
// warehouse.
type TableLookup struct {
	Mcon          string
	FullTableID   string
	WarehouseUUID *schema.UUID
}

// GetTable returns one table.
func (c *Client) GetTable(ctx context.Context, lookup TableLookup) (*schema.WarehouseTable, error) {
	var q struct {
		GetTable *schema.WarehouseTable `graphql:"getTable(mcon: $mcon, fullTableId: $fullTableId, dwId: $dwId)"`
	}
	vars := struct {
		Mcon        *string      `json:"mcon,omitempty"`
		FullTableID *string      `json:"fullTableId,omitempty"`
		DwID        *schema.UUID `json:"dwId,omitempty"`
	}{
		Mcon:        optString(lookup.Mcon),
		FullTableID: optString(lookup.FullTableID),
		DwID:        lookup.WarehouseUUID,
	}
	if err := c.gql.Query(ctx, &q, vars, graphql.OperationName("GetTable")); err != nil {
		return nil, err
	}
	if q.GetTable == nil {
		key := lookup.Mcon
		if key == "" {
			key = lookup.FullTableID
		}
		return nil, notFound("table", key)
	}
	return q.GetTable, nil
}

// GetDailyRowCounts returns the daily row counts of a table. Zero dates
// leave the range open.
func (c *Client) GetDailyRowCounts(ctx context.Context, mcon string, start, end time.Time) ([]schema.RowCountPoint, error) {
	var q struct {
		GetDailyRowCounts []schema.RowCountPoint `graphql:"getDailyRowCounts(mcon: $mcon, startDate: $startDate, endDate: $endDate)"`
	}
	vars := struct {
		Mcon      string       `json:"mcon"`
		StartDate *schema.Date `json:"startDate,omitempty"`
		EndDate   *schema.Date `json:"endDate,omitempty"`
	}{
		Mcon:      mcon,
		StartDate: optDate(start),
		EndDate:   optDate(end),
	}
	if err := c.gql.Query(ctx, &q, vars, graphql.OperationName("GetDailyRowCounts")); err != nil {
		return nil, err
	}
	return q.GetDailyRowCounts, nil
}

// IncidentsParams filters GetIncidents. Zero fields are not sent.
type IncidentsParams struct {
	First         int
	After         string
	StartTime     time.Time
	EndTime       time.Time
	IncidentTypes []schema.IncidentType
	Severities    []schema.IncidentSeverity
	WarehouseUUID *schema.UUID
}

type incidentsVars struct {
	First         *int                       `json:"first,omitempty"`
	After         *string                    `json:"after,omitempty"`
	StartTime     *schema.DateTime           `json:"startTime,omitempty"`
	EndTime       *schema.DateTime           `json:"endTime,omitempty"`
	IncidentTypes *[]schema.IncidentType     `json:"incidentTypes,omitempty"`
	Severities    *[]schema.IncidentSeverity `json:"severities,omitempty"`
	DwID          *schema.UUID               `json:"dwId,omitempty"`
}

// GetIncidents returns one page of incidents.
func (c *Client) GetIncidents(ctx context.Context, p IncidentsParams) (*schema.IncidentConnection, error) {
	var q struct {
		GetIncidents *schema.IncidentConnection `graphql:"getIncidents(first: $first, after: $after, startTime: $startTime, endTime: $endTime, incidentTypes: $incidentTypes, severities: $severities, dwId: $dwId)"`
	}
	vars := incidentsVars{
		First:         optInt(p.First),
		After:         optString(p.After),
		StartTime:     optDateTime(p.StartTime),
		EndTime:       optDateTime(p.EndTime),
		IncidentTypes: optSlice(p.IncidentTypes),
		Severities:    optSlice(p.Severities),
		DwID:          p.WarehouseUUID,
	}
	if err := c.gql.Query(ctx, &q, vars, graphql.OperationName("GetIncidents")); err != nil {
		return nil, err
	}
	return q.GetIncidents, nil
}

// GetIncident returns an incident with its first events. eventsFirst <= 0
// lets the server pick how many.
func (c *Client) GetIncident(ctx context.Context, id schema.UUID, eventsFirst int) (*schema.IncidentDetail, error) {
	var q struct {
		GetIncident *schema.IncidentDetail `graphql:"getIncident(uuid: $uuid)"`
	}
	vars := struct {
		UUID        schema.UUID `json:"uuid"`
		EventsFirst *int        `json:"eventsFirst,omitempty"`
	}{
		UUID:        id,
		EventsFirst: optInt(eventsFirst),
	}
	if err := c.gql.Query(ctx, &q, vars, graphql.OperationName("GetIncident")); err != nil {
		return nil, err
	}
	if q.GetIncident == nil {
		return nil, notFound("incident", id)
	}
	return q.GetIncident, nil
}

// MonitorsParams filters GetMonitors. Monitors are paged by offset.
type MonitorsParams struct {
	Types    []schema.MonitorType
	Statuses []schema.MonitorStatus
	Search   string
	Limit    int
	Offset   int
}

// GetMonitors returns the monitors matching p.
func (c *Client) GetMonitors(ctx context.Context, p MonitorsParams) ([]schema.Monitor, error) {
	var q struct {
		GetMonitors []schema.Monitor `graphql:"getMonitors(monitorTypes: $monitorTypes, statuses: $statuses, search: $search, limit: $limit, offset: $offset)"`
	}
	vars := struct {
		MonitorTypes *[]schema.MonitorType   `json:"monitorTypes,omitempty"`
		Statuses     *[]schema.MonitorStatus `json:"statuses,omitempty"`
		Search       *string                 `json:"search,omitempty"`
		Limit        *int                    `json:"limit,omitempty"`
		Offset       *int                    `json:"offset,omitempty"`
	}{
		MonitorTypes: optSlice(p.Types),
		Statuses:     optSlice(p.Statuses),
		Search:       optString(p.Search),
		Limit:        optInt(p.Limit),
		Offset:       optInt(p.Offset),
	}
	if err := c.gql.Query(ctx, &q, vars, graphql.OperationName("GetMonitors")); err != nil {
		return nil, err
	}
	return q.GetMonitors, nil
}

// GetMonitor returns the monitor with the given uuid.
func (c *Client) GetMonitor(ctx context.Context, id schema.UUID) (*schema.Monitor, error) {
	var q struct {
		GetMonitor *schema.Monitor `graphql:"getMonitor(uuid: $uuid)"`
	}
	vars := struct {
		UUID schema.UUID `json:"uuid"`
	}{id}
	if err := c.gql.Query(ctx, &q, vars, graphql.OperationName("GetMonitor")); err != nil {
		return nil, err
	}
	if q.GetMonitor == nil {
		return nil, notFound("monitor", id)
	}
	return q.GetMonitor, nil
}

// CustomRulesParams filters GetCustomRules. Deleted rules are left out
// unless IsDeleted says otherwise.
type CustomRulesParams struct {
	First         int
	After         string
	WarehouseUUID *schema.UUID
	IsDeleted     *bool
}

// GetCustomRules returns one page of custom rules.
func (c *Client) GetCustomRules(ctx context.Context, p CustomRulesParams) (*schema.CustomRuleConnection, error) {
	var q struct {
		GetCustomRules *schema.CustomRuleConnection `graphql:"getCustomRules(first: $first, after: $after, warehouseUuid: $warehouseUuid, isDeleted: $isDeleted)"`
	}
	vars := struct {
		First         *int         `json:"first,omitempty"`
		After         *string      `json:"after,omitempty"`
		WarehouseUUID *schema.UUID `json:"warehouseUuid,omitempty"`
		IsDeleted     *bool        `json:"isDeleted,omitempty"`
	}{
		First:         optInt(p.First),
		After:         optString(p.After),
		WarehouseUUID: p.WarehouseUUID,
		IsDeleted:     p.IsDeleted,
	}
	if err := c.gql.Query(ctx, &q, vars, graphql.OperationName("GetCustomRules")); err != nil {
		return nil, err
	}
	return q.GetCustomRules, nil
}

// ObjectPropertiesParams filters GetObjectProperties.
type ObjectPropertiesParams struct {
	MconID       string
	PropertyName string
	First        int
	After        string
}

// GetObjectProperties returns one page of object properties.
func (c *Client) GetObjectProperties(ctx context.Context, p ObjectPropertiesParams) (*schema.ObjectPropertyConnection, error) {
	var q struct {
		GetObjectProperties *schema.ObjectPropertyConnection `graphql:"getObjectProperties(mconId: $mconId, propertyName: $propertyName, first: $first, after: $after)"`
	}
	vars := struct {
		MconID       *string `json:"mconId,omitempty"`
		PropertyName *string `json:"propertyName,omitempty"`
		First        *int    `json:"first,omitempty"`
		After        *string `json:"after,omitempty"`
	}{
		MconID:       optString(p.MconID),
		PropertyName: optString(p.PropertyName),
		First:        optInt(p.First),
		After:        optString(p.After),
	}
	if err := c.gql.Query(ctx, &q, vars, graphql.OperationName("GetObjectProperties")); err != nil {
		return nil, err
	}
	return q.GetObjectProperties, nil
}

// GetTableLineage returns the lineage of a table. hops <= 0 means one hop.
func (c *Client) GetTableLineage(
	ctx context.Context,
	mcon string,
	direction schema.LineageDirection,
	hops int,
) (*schema.TableLineage, error) {
	var q struct {
		GetTableLineage *schema.TableLineage `graphql:"getTableLineage(mcon: $mcon, direction: $direction, hops: $hops)"`
	}
	vars := struct {
		Mcon      string                  `json:"mcon"`
		Direction schema.LineageDirection `json:"direction"`
		Hops      *int                    `json:"hops,omitempty"`
	}{
		Mcon:      mcon,
		Direction: direction,
		Hops:      optInt(hops),
	}
	if err := c.gql.Query(ctx, &q, vars, graphql.OperationName("GetTableLineage")); err != nil {
		return nil, err
	}
	if q.GetTableLineage == nil {
		return nil, notFound("table", mcon)
	}
	return q.GetTableLineage, nil
}

// GetDomains returns every domain of the account.
func (c *Client) GetDomains(ctx context.Context) ([]schema.Domain, error) {
	var q struct {
		GetDomains []schema.Domain `graphql:"getDomains"`
	}
	if err := c.gql.Query(ctx, &q, nil, graphql.OperationName("GetDomains")); err != nil {
		return nil, err
	}
	return q.GetDomains, nil
}

// GetDomain returns the domain with the given uuid.
func (c *Client) GetDomain(ctx context.Context, id schema.UUID) (*schema.Domain, error) {
	var q struct {
		GetDomain *schema.Domain `graphql:"getDomain(uuid: $uuid)"`
	}
	vars := struct {
		UUID schema.UUID `json:"uuid"`
	}{id}
	if err := c.gql.Query(ctx, &q, vars, graphql.OperationName("GetDomain")); err != nil {
		return nil, err
	}
	if q.GetDomain == nil {
		return nil, notFound("domain", id)
	}
	return q.GetDomain, nil
}

// GetAuthorizationGroups returns the authorization groups of the account
// with their members.
func (c *Client) GetAuthorizationGroups(ctx context.Context) ([]schema.AuthorizationGroup, error) {
	var q struct {
		GetAuthorizationGroups []schema.AuthorizationGroup `graphql:"getAuthorizationGroups"`
	}
	if err := c.gql.Query(ctx, &q, nil, graphql.OperationName("GetAuthorizationGroups")); err != nil {
		return nil, err
	}
	return q.GetAuthorizationGroups, nil
}

// UsersParams filters GetUsersInAccount.
type UsersParams struct {
	First  int
	After  string
	Search string
}

// GetUsersInAccount returns one page of the users of the account.
func (c *Client) GetUsersInAccount(ctx context.Context, p UsersParams) (*schema.UserConnection, error) {
	var q struct {
		GetUsersInAccount *schema.UserConnection `graphql:"getUsersInAccount(first: $first, after: $after, search: $search)"`
	}
	vars := struct {
		First  *int    `json:"first,omitempty"`
		After  *string `json:"after,omitempty"`
		Search *string `json:"search,omitempty"`
	}{
		First:  optInt(p.First),
		After:  optString(p.After),
		Search: optString(p.Search),
	}
	if err := c.gql.Query(ctx, &q, vars, graphql.OperationName("GetUsersInAccount")); err != nil {
		return nil, err
	}
	return q.GetUsersInAccount, nil
}

// GetCircuitBreakerRuleState returns the state of a circuit breaker run.
func (c *Client) GetCircuitBreakerRuleState(ctx context.Context, jobExecutionUUID schema.UUID) (*schema.CircuitBreakerState, error) {
	var q struct {
		GetCircuitBreakerRuleState *schema.CircuitBreakerState `graphql:"getCircuitBreakerRuleState(jobExecutionUuid: $jobExecutionUuid)"`
	}
	vars := struct {
		JobExecutionUUID schema.UUID `json:"jobExecutionUuid"`
	}{jobExecutionUUID}
	if err := c.gql.Query(ctx, &q, vars, graphql.OperationName("GetCircuitBreakerRuleState")); err != nil {
		return nil, err
	}
	if q.GetCircuitBreakerRuleState == nil {
		return nil, notFound("circuit breaker run", jobExecutionUUID)
	}
	return q.GetCircuitBreakerRuleState, nil
}

// Node returns the object with the given relay id.
func (c *Client) Node(ctx context.Context, id graphql.ID) (*schema.NodeResult, error) {
	var q struct {
		Node *schema.NodeResult `graphql:"node(id: $id)"`
	}
	vars := struct {
		ID graphql.ID `json:"id"`
	}{id}
	if err := c.gql.Query(ctx, &q, vars, graphql.OperationName("Node")); err != nil {
		return nil, err
	}
	if q.Node == nil {
		return nil, notFound("node", id)
	}
	return q.Node, nil
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optInt(n int) *int {
	if n <= 0 {
		return nil
	}
	return &n
}

func optSlice[T any](s []T) *[]T {
	if len(s) == 0 {
		return nil
	}
	return &s
}

func optDateTime(t time.Time) *schema.DateTime {
	if t.IsZero() {
		return nil
	}
	return schema.NewDateTime(t)
}

func optDate(t time.Time) *schema.Date {
	if t.IsZero() {
		return nil
	}
	d := schema.NewDate(t)
	return &d
}
