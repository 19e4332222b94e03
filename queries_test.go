package mcd_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mcd "github.com/llehouerou/go-mcd"
	"github.com/llehouerou/go-mcd/schema"
)

var (
	warehouseID = uuid.MustParse("1f0e2d3c-4b5a-4978-8695-a4b3c2d1e0f9")
	incidentID  = uuid.MustParse("0b9d8c7e-6f5a-4e3d-8c2b-1a0f9e8d7c6b")
	monitorID   = uuid.MustParse("6d4c1f3e-9f0a-4b8e-8f2f-6a7d1c2b3e4f")
)

func TestClient_GetUser(t *testing.T) {
	api := newFakeAPI(t)
	api.reply("GetUser", userData)
	c := api.client()

	u, err := c.GetUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.Equal(t, "c-1", u.CognitoUserID)
	require.NotNil(t, u.Account)
	require.NotNil(t, u.Account.Name)
	assert.Equal(t, "Acme", *u.Account.Name)
	require.Len(t, u.Account.Warehouses, 1)
	assert.Equal(t, warehouseID, u.Account.Warehouses[0].UUID)
	assert.Equal(t, schema.WarehouseTypeSnowflake, u.Account.Warehouses[0].ConnectionType)
	assert.Nil(t, api.last().Variables)
}

func TestClient_GetWarehouse_notFound(t *testing.T) {
	api := newFakeAPI(t)
	api.reply("GetWarehouse", `{"getWarehouse":null}`)
	c := api.client()

	_, err := c.GetWarehouse(context.Background(), warehouseID)
	require.ErrorIs(t, err, mcd.ErrNotFound)
	assert.Equal(t, map[string]any{"uuid": warehouseID.String()}, api.last().Variables)
}

func TestClient_GetTables(t *testing.T) {
	tests := []struct {
		name   string
		params mcd.TablesParams
		want   map[string]any
	}{
		{
			name:   "defaults are not sent",
			params: mcd.TablesParams{},
			want:   map[string]any{},
		},
		{
			name: "every filter",
			params: mcd.TablesParams{
				WarehouseUUID: &warehouseID,
				Search:        "orders",
				IsDeleted:     ptr(false),
				First:         25,
				After:         "c1",
			},
			want: map[string]any{
				"dwId":      warehouseID.String(),
				"search":    "orders",
				"isDeleted": false,
				"first":     float64(25),
				"after":     "c1",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeAPI(t)
			api.reply("GetTables", `{"getTables":{
				"edges":[{"node":{"mcon":"MCON++a++b++table++orders","fullTableId":"db:s.orders","isImportant":true,"path":["db","s","orders"]},"cursor":"c2"}],
				"pageInfo":{"hasNextPage":false,"hasPreviousPage":true,"endCursor":"c2"}
			}}`)
			c := api.client()

			conn, err := c.GetTables(context.Background(), tt.params)
			require.NoError(t, err)
			tables := conn.Nodes()
			require.Len(t, tables, 1)
			assert.Equal(t, "db:s.orders", tables[0].FullTableID)
			assert.True(t, tables[0].IsImportant)
			assert.Equal(t, []string{"db", "s", "orders"}, tables[0].Path)
			_, more := conn.NextCursor()
			assert.False(t, more)

			got := api.last().Variables
			if got == nil {
				got = map[string]any{}
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_GetTable(t *testing.T) {
	api := newFakeAPI(t)
	api.reply("GetTable", `{"getTable":{"mcon":"MCON++a++b++table++orders","fullTableId":"db:s.orders","lastObserved":"2024-03-01T10:00:00Z"}}`)
	c := api.client()

	table, err := c.GetTable(context.Background(), mcd.TableLookup{FullTableID: "db:s.orders", WarehouseUUID: &warehouseID})
	require.NoError(t, err)
	assert.Equal(t, "MCON++a++b++table++orders", table.Mcon)
	require.NotNil(t, table.LastObserved)
	assert.True(t, table.LastObserved.Equal(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, map[string]any{
		"fullTableId": "db:s.orders",
		"dwId":        warehouseID.String(),
	}, api.last().Variables)

	api.reply("GetTable", `{"getTable":null}`)
	_, err = c.GetTable(context.Background(), mcd.TableLookup{Mcon: "MCON++missing"})
	require.ErrorIs(t, err, mcd.ErrNotFound)
	assert.Contains(t, err.Error(), "MCON++missing")
}

func TestClient_GetDailyRowCounts(t *testing.T) {
	api := newFakeAPI(t)
	api.reply("GetDailyRowCounts", `{"getDailyRowCounts":[
		{"date":"2024-03-01","rowCount":"9007199254740993"},
		{"date":"2024-03-02","rowCount":null}
	]}`)
	c := api.client()

	start := time.Date(2024, 3, 1, 23, 30, 0, 0, time.UTC)
	points, err := c.GetDailyRowCounts(context.Background(), "MCON++t", start, time.Time{})
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, "2024-03-01", points[0].Date.String())
	require.NotNil(t, points[0].RowCount)
	assert.Equal(t, schema.BigInt(9007199254740993), *points[0].RowCount)
	assert.Nil(t, points[1].RowCount)
	assert.Equal(t, map[string]any{"mcon": "MCON++t", "startDate": "2024-03-01"}, api.last().Variables)
}

func TestClient_GetIncidents(t *testing.T) {
	api := newFakeAPI(t)
	api.reply("GetIncidents", `{"getIncidents":{
		"edges":[{"node":{"uuid":"0b9d8c7e-6f5a-4e3d-8c2b-1a0f9e8d7c6b","incidentType":"ANOMALIES","incidentTime":"2024-03-01T10:00:00Z","severity":"SEV_1"},"cursor":"a"}],
		"pageInfo":{"hasNextPage":true,"hasPreviousPage":false,"endCursor":"a"}
	}}`)
	c := api.client()

	conn, err := c.GetIncidents(context.Background(), mcd.IncidentsParams{
		StartTime:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Severities: []schema.IncidentSeverity{schema.IncidentSeveritySev1, schema.IncidentSeveritySev2},
	})
	require.NoError(t, err)
	incidents := conn.Nodes()
	require.Len(t, incidents, 1)
	assert.Equal(t, incidentID, incidents[0].UUID)
	require.NotNil(t, incidents[0].Severity)
	assert.Equal(t, schema.IncidentSeveritySev1, *incidents[0].Severity)
	cursor, more := conn.NextCursor()
	assert.True(t, more)
	assert.Equal(t, "a", cursor)

	assert.Equal(t, map[string]any{
		"startTime":  "2024-03-01T00:00:00Z",
		"severities": []any{"SEV_1", "SEV_2"},
	}, api.last().Variables)
}

func TestClient_GetIncident(t *testing.T) {
	api := newFakeAPI(t)
	api.reply("GetIncident", `{"getIncident":{
		"uuid":"0b9d8c7e-6f5a-4e3d-8c2b-1a0f9e8d7c6b",
		"incidentType":"SCHEMA_CHANGES",
		"incidentTime":"2024-03-01T10:00:00Z",
		"events":{
			"edges":[{"node":{"eventType":"SCHEMA_CHANGE","eventGeneratedTime":"2024-03-01T09:59:00Z","details":{"added":["col_a"]}},"cursor":"e1"}],
			"pageInfo":{"hasNextPage":false,"hasPreviousPage":false}
		}
	}}`)
	c := api.client()

	inc, err := c.GetIncident(context.Background(), incidentID, 5)
	require.NoError(t, err)
	assert.Equal(t, schema.IncidentTypeSchemaChanges, inc.IncidentType)
	events := inc.Events.Nodes()
	require.Len(t, events, 1)
	var details struct {
		Added []string `json:"added"`
	}
	require.NoError(t, events[0].Details.Decode(&details))
	assert.Equal(t, []string{"col_a"}, details.Added)

	call := api.last()
	assert.Contains(t, call.Query, "events(first: $eventsFirst)")
	assert.Equal(t, map[string]any{"uuid": incidentID.String(), "eventsFirst": float64(5)}, call.Variables)
}

func TestClient_GetMonitors(t *testing.T) {
	api := newFakeAPI(t)
	api.reply("GetMonitors", `{"getMonitors":[
		{"uuid":"6d4c1f3e-9f0a-4b8e-8f2f-6a7d1c2b3e4f","monitorType":"FRESHNESS","createdTime":"2024-01-01T00:00:00Z","isPaused":false,
		 "configuration":{"__typename":"FreshnessConfiguration","mcon":"MCON++t","thresholdMinutes":90}},
		{"uuid":"7e5d2a4f-0a1b-4c9f-9a3a-7b8e2d3c4f5a","monitorType":"CUSTOM_SQL","createdTime":"2024-01-01T00:00:00Z","isPaused":true,
		 "configuration":{"__typename":"CustomSqlConfiguration","sql":"select 1","comparisons":[]}}
	]}`)
	c := api.client()

	monitors, err := c.GetMonitors(context.Background(), mcd.MonitorsParams{
		Types:  []schema.MonitorType{schema.MonitorTypeFreshness, schema.MonitorTypeCustomSQL},
		Search: "orders",
		Limit:  50,
	})
	require.NoError(t, err)
	require.Len(t, monitors, 2)

	fresh, ok := monitors[0].Configuration.AsFreshness()
	require.True(t, ok)
	assert.Equal(t, 90, fresh.ThresholdMinutes)
	_, ok = monitors[0].Configuration.AsCustomSQL()
	assert.False(t, ok)

	custom, ok := monitors[1].Configuration.AsCustomSQL()
	require.True(t, ok)
	assert.Equal(t, "select 1", custom.SQL)
	assert.True(t, monitors[1].IsPaused)

	assert.Equal(t, map[string]any{
		"monitorTypes": []any{"FRESHNESS", "CUSTOM_SQL"},
		"search":       "orders",
		"limit":        float64(50),
	}, api.last().Variables)
}

func TestClient_GetMonitor_notFound(t *testing.T) {
	api := newFakeAPI(t)
	api.reply("GetMonitor", `{"getMonitor":null}`)
	c := api.client()

	_, err := c.GetMonitor(context.Background(), monitorID)
	assert.ErrorIs(t, err, mcd.ErrNotFound)
}

func TestClient_GetCustomRules(t *testing.T) {
	api := newFakeAPI(t)
	api.reply("GetCustomRules", `{"getCustomRules":{
		"edges":[{"node":{"uuid":"7e5d2a4f-0a1b-4c9f-9a3a-7b8e2d3c4f5a","ruleType":"CUSTOM_SQL","customSql":"select count(*) from t","isPaused":false,"createdTime":"2024-01-01T00:00:00Z",
			"comparisons":[{"comparisonType":"THRESHOLD","operator":"GT","threshold":0}]},"cursor":"r1"}],
		"pageInfo":{"hasNextPage":false,"hasPreviousPage":false}
	}}`)
	c := api.client()

	conn, err := c.GetCustomRules(context.Background(), mcd.CustomRulesParams{WarehouseUUID: &warehouseID})
	require.NoError(t, err)
	rules := conn.Nodes()
	require.Len(t, rules, 1)
	require.Len(t, rules[0].Comparisons, 1)
	assert.Equal(t, schema.ComparisonOperatorGT, rules[0].Comparisons[0].Operator)
	require.NotNil(t, rules[0].Comparisons[0].Threshold)
	assert.Zero(t, *rules[0].Comparisons[0].Threshold)
	assert.Equal(t, map[string]any{"warehouseUuid": warehouseID.String()}, api.last().Variables)
}

func TestClient_GetObjectProperties(t *testing.T) {
	api := newFakeAPI(t)
	api.reply("GetObjectProperties", `{"getObjectProperties":{
		"edges":[{"node":{"mconId":"MCON++t","propertyName":"owner","propertyValue":"data-eng"},"cursor":"p1"}],
		"pageInfo":{"hasNextPage":false,"hasPreviousPage":false}
	}}`)
	c := api.client()

	conn, err := c.GetObjectProperties(context.Background(), mcd.ObjectPropertiesParams{MconID: "MCON++t"})
	require.NoError(t, err)
	props := conn.Nodes()
	require.Len(t, props, 1)
	assert.Equal(t, "owner", props[0].PropertyName)
	assert.Equal(t, "data-eng", *props[0].PropertyValue)
	assert.Equal(t, map[string]any{"mconId": "MCON++t"}, api.last().Variables)
}

func TestClient_GetTableLineage(t *testing.T) {
	api := newFakeAPI(t)
	api.reply("GetTableLineage", `{"getTableLineage":{
		"mcon":"MCON++t",
		"direction":"DOWNSTREAM",
		"hops":1,
		"connectedTables":[{"mcon":"MCON++t","objectType":"table","displayName":"t"},{"mcon":"MCON++u","objectType":"table","displayName":"u"}],
		"flattenedEdges":[{"source":{"mcon":"MCON++t","objectType":"table"},"destination":{"mcon":"MCON++u","objectType":"table"}}]
	}}`)
	c := api.client()

	lineage, err := c.GetTableLineage(context.Background(), "MCON++t", schema.LineageDirectionDownstream, 0)
	require.NoError(t, err)
	assert.Len(t, lineage.ConnectedTables, 2)
	require.Len(t, lineage.FlattenedEdges, 1)
	assert.Equal(t, "MCON++u", lineage.FlattenedEdges[0].Destination.Mcon)
	assert.Nil(t, lineage.FlattenedEdges[0].ExpireAt)
	assert.Equal(t, map[string]any{"mcon": "MCON++t", "direction": "DOWNSTREAM"}, api.last().Variables)
}

func TestClient_GetDomains(t *testing.T) {
	api := newFakeAPI(t)
	api.reply("GetDomains", `{"getDomains":[{"uuid":"8e6c1a30-7b2f-4c8e-9d1a-2f3b4c5d6e7f","name":"finance","assignments":["MCON++t"]}]}`)
	api.reply("GetDomain", `{"getDomain":null}`)
	c := api.client()

	domains, err := c.GetDomains(context.Background())
	require.NoError(t, err)
	require.Len(t, domains, 1)
	assert.Equal(t, "finance", domains[0].Name)
	assert.Equal(t, []string{"MCON++t"}, domains[0].Assignments)

	_, err = c.GetDomain(context.Background(), domains[0].UUID)
	assert.ErrorIs(t, err, mcd.ErrNotFound)
}

func TestClient_GetAuthorizationGroups(t *testing.T) {
	api := newFakeAPI(t)
	api.reply("GetAuthorizationGroups", `{"getAuthorizationGroups":[
		{"name":"analysts","label":"Analysts","permissions":["Monitors/View"],"isManaged":false,"users":[{"email":"ada@example.com"}]}
	]}`)
	c := api.client()

	groups, err := c.GetAuthorizationGroups(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, []string{"Monitors/View"}, groups[0].Permissions)
	require.Len(t, groups[0].Users, 1)
	assert.Equal(t, "ada@example.com", groups[0].Users[0].Email)
}

func TestClient_GetUsersInAccount(t *testing.T) {
	api := newFakeAPI(t)
	api.reply("GetUsersInAccount", `{"getUsersInAccount":{
		"edges":[{"node":{"email":"ada@example.com","cognitoUserId":"c-1","isSsoUser":true},"cursor":"u1"}],
		"pageInfo":{"hasNextPage":false,"hasPreviousPage":false}
	}}`)
	c := api.client()

	conn, err := c.GetUsersInAccount(context.Background(), mcd.UsersParams{Search: "ada", First: 10})
	require.NoError(t, err)
	users := conn.Nodes()
	require.Len(t, users, 1)
	assert.True(t, users[0].IsSSOUser)
	assert.Equal(t, map[string]any{"search": "ada", "first": float64(10)}, api.last().Variables)
}

func TestClient_Node(t *testing.T) {
	api := newFakeAPI(t)
	api.reply("Node", `{"node":{"__typename":"Warehouse","id":"V2g6MQ==","uuid":"1f0e2d3c-4b5a-4978-8695-a4b3c2d1e0f9","name":"prod","connectionType":"BIGQUERY"}}`)
	c := api.client()

	n, err := c.Node(context.Background(), "V2g6MQ==")
	require.NoError(t, err)
	wh, ok := n.AsWarehouse()
	require.True(t, ok)
	assert.Equal(t, schema.WarehouseTypeBigQuery, wh.ConnectionType)
	_, ok = n.AsIncident()
	assert.False(t, ok)
	assert.Equal(t, map[string]any{"id": "V2g6MQ=="}, api.last().Variables)
}

func ptr[T any](v T) *T {
	return &v
}
