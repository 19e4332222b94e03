package mcd

import (
	"context"
	"fmt"
	"time"

	"github.com/llehouerou/go-mcd/graphql"
	"github.com/llehouerou/go-mcd/schema"
)

// MonitorInput creates a monitor, or updates the one named by UUID.
// Threshold settings only apply to the monitor types using them.
type MonitorInput struct {
	MonitorType      schema.MonitorType
	UUID             *schema.UUID
	Mcons            []string
	Description      string
	Notes            string
	Schedule         *schema.ScheduleConfigInput
	Tags             []schema.TagKeyValuePairInput
	ThresholdMinutes *int
	Sensitivity      string
}

// CreateOrUpdateMonitor creates or updates a monitor.
func (c *Client) CreateOrUpdateMonitor(ctx context.Context, in MonitorInput) (*schema.Monitor, error) {
	var m struct {
		CreateOrUpdateMonitor *schema.CreateOrUpdateMonitorPayload `graphql:"createOrUpdateMonitor(monitorType: $monitorType, uuid: $uuid, mcons: $mcons, description: $description, notes: $notes, schedule: $schedule, tags: $tags, thresholdMinutes: $thresholdMinutes, sensitivity: $sensitivity)"`
	}
	vars := struct {
		MonitorType      schema.MonitorType             `json:"monitorType"`
		UUID             *schema.UUID                   `json:"uuid,omitempty"`
		Mcons            *[]string                      `json:"mcons,omitempty"`
		Description      *string                        `json:"description,omitempty"`
		Notes            *string                        `json:"notes,omitempty"`
		Schedule         *schema.ScheduleConfigInput    `json:"schedule,omitempty"`
		Tags             *[]schema.TagKeyValuePairInput `json:"tags,omitempty"`
		ThresholdMinutes *int                           `json:"thresholdMinutes,omitempty"`
		Sensitivity      *string                        `json:"sensitivity,omitempty"`
	}{
		MonitorType:      in.MonitorType,
		UUID:             in.UUID,
		Mcons:            optSlice(in.Mcons),
		Description:      optString(in.Description),
		Notes:            optString(in.Notes),
		Schedule:         in.Schedule,
		Tags:             optSlice(in.Tags),
		ThresholdMinutes: in.ThresholdMinutes,
		Sensitivity:      optString(in.Sensitivity),
	}
	if err := c.gql.Mutate(ctx, &m, vars, graphql.OperationName("CreateOrUpdateMonitor")); err != nil {
		return nil, err
	}
	if m.CreateOrUpdateMonitor == nil || m.CreateOrUpdateMonitor.Monitor == nil {
		return nil, fmt.Errorf("create or update %s monitor: %w", in.MonitorType, ErrUnsuccessful)
	}
	return m.CreateOrUpdateMonitor.Monitor, nil
}

// PauseMonitor pauses or resumes a monitor.
func (c *Client) PauseMonitor(ctx context.Context, id schema.UUID, pause bool) (*schema.Monitor, error) {
	var m struct {
		PauseMonitor *schema.PauseMonitorPayload `graphql:"pauseMonitor(uuid: $uuid, pause: $pause)"`
	}
	vars := struct {
		UUID  schema.UUID `json:"uuid"`
		Pause bool        `json:"pause"`
	}{id, pause}
	if err := c.gql.Mutate(ctx, &m, vars, graphql.OperationName("PauseMonitor")); err != nil {
		return nil, err
	}
	if m.PauseMonitor == nil || m.PauseMonitor.Monitor == nil {
		return nil, notFound("monitor", id)
	}
	return m.PauseMonitor.Monitor, nil
}

// DeleteMonitor deletes a monitor. ErrUnsuccessful if the server did not.
func (c *Client) DeleteMonitor(ctx context.Context, id schema.UUID) error {
	var m struct {
		DeleteMonitor *schema.DeleteMonitorPayload `graphql:"deleteMonitor(monitorId: $monitorId)"`
	}
	vars := struct {
		MonitorID schema.UUID `json:"monitorId"`
	}{id}
	if err := c.gql.Mutate(ctx, &m, vars, graphql.OperationName("DeleteMonitor")); err != nil {
		return err
	}
	if m.DeleteMonitor == nil || !m.DeleteMonitor.Success {
		return fmt.Errorf("delete monitor %s: %w", id, ErrUnsuccessful)
	}
	return nil
}

// CustomRuleInput creates a custom SQL rule, or updates the one named by
// UUID.
type CustomRuleInput struct {
	WarehouseUUID schema.UUID
	SQL           string
	Comparisons   []schema.CustomRuleComparisonInput
	Schedule      schema.ScheduleConfigInput
	Description   string
	UUID          *schema.UUID
}

// CreateCustomRule creates or updates a custom SQL rule.
func (c *Client) CreateCustomRule(ctx context.Context, in CustomRuleInput) (*schema.CustomRule, error) {
	var m struct {
		CreateCustomRule *schema.CreateCustomRulePayload `graphql:"createCustomRule(dwId: $dwId, customSql: $customSql, comparisons: $comparisons, scheduleConfig: $scheduleConfig, description: $description, customRuleUuid: $customRuleUuid)"`
	}
	comparisons := in.Comparisons
	if comparisons == nil {
		comparisons = []schema.CustomRuleComparisonInput{}
	}
	vars := struct {
		DwID           schema.UUID                        `json:"dwId"`
		CustomSQL      string                             `json:"customSql"`
		Comparisons    []schema.CustomRuleComparisonInput `json:"comparisons"`
		ScheduleConfig schema.ScheduleConfigInput         `json:"scheduleConfig"`
		Description    *string                            `json:"description,omitempty"`
		CustomRuleUUID *schema.UUID                       `json:"customRuleUuid,omitempty"`
	}{
		DwID:           in.WarehouseUUID,
		CustomSQL:      in.SQL,
		Comparisons:    comparisons,
		ScheduleConfig: in.Schedule,
		Description:    optString(in.Description),
		CustomRuleUUID: in.UUID,
	}
	if err := c.gql.Mutate(ctx, &m, vars, graphql.OperationName("CreateCustomRule")); err != nil {
		return nil, err
	}
	if m.CreateCustomRule == nil || m.CreateCustomRule.CustomRule == nil {
		return nil, fmt.Errorf("create custom rule: %w", ErrUnsuccessful)
	}
	return m.CreateCustomRule.CustomRule, nil
}

// TriggerCircuitBreakerRule starts a run of a circuit breaker rule and
// returns the job execution uuid to poll. See TriggerCircuitBreaker.
func (c *Client) TriggerCircuitBreakerRule(ctx context.Context, ruleUUID schema.UUID) (schema.UUID, error) {
	var m struct {
		TriggerCircuitBreakerRule *schema.TriggerCircuitBreakerRulePayload `graphql:"triggerCircuitBreakerRule(ruleUuid: $ruleUuid)"`
	}
	vars := struct {
		RuleUUID schema.UUID `json:"ruleUuid"`
	}{ruleUUID}
	if err := c.gql.Mutate(ctx, &m, vars, graphql.OperationName("TriggerCircuitBreakerRule")); err != nil {
		return schema.UUID{}, err
	}
	if m.TriggerCircuitBreakerRule == nil {
		return schema.UUID{}, fmt.Errorf("trigger rule %s: %w", ruleUUID, ErrUnsuccessful)
	}
	return m.TriggerCircuitBreakerRule.JobExecutionUUID, nil
}

// CreateOrUpdateObjectProperty sets a property on the object identified by
// mconID. A nil value clears it.
func (c *Client) CreateOrUpdateObjectProperty(ctx context.Context, mconID, name string, value *string) (*schema.ObjectProperty, error) {
	var m struct {
		CreateOrUpdateObjectProperty *schema.CreateOrUpdateObjectPropertyPayload `graphql:"createOrUpdateObjectProperty(mconId: $mconId, propertyName: $propertyName, propertyValue: $propertyValue)"`
	}
	vars := struct {
		MconID        string  `json:"mconId"`
		PropertyName  string  `json:"propertyName"`
		PropertyValue *string `json:"propertyValue,omitempty"`
	}{mconID, name, value}
	if err := c.gql.Mutate(ctx, &m, vars, graphql.OperationName("CreateOrUpdateObjectProperty")); err != nil {
		return nil, err
	}
	if m.CreateOrUpdateObjectProperty == nil || m.CreateOrUpdateObjectProperty.ObjectProperty == nil {
		return nil, fmt.Errorf("set property %q on %s: %w", name, mconID, ErrUnsuccessful)
	}
	return m.CreateOrUpdateObjectProperty.ObjectProperty, nil
}

// DeleteObjectProperty removes a property from the object identified by
// mconID.
func (c *Client) DeleteObjectProperty(ctx context.Context, mconID, name string) error {
	var m struct {
		DeleteObjectProperty *schema.DeleteObjectPropertyPayload `graphql:"deleteObjectProperty(mconId: $mconId, propertyName: $propertyName)"`
	}
	vars := struct {
		MconID       string `json:"mconId"`
		PropertyName string `json:"propertyName"`
	}{mconID, name}
	if err := c.gql.Mutate(ctx, &m, vars, graphql.OperationName("DeleteObjectProperty")); err != nil {
		return err
	}
	if m.DeleteObjectProperty == nil || !m.DeleteObjectProperty.Success {
		return fmt.Errorf("delete property %q on %s: %w", name, mconID, ErrUnsuccessful)
	}
	return nil
}

// LineageNodeInput creates a custom lineage node, or updates the one
// with the same source object.
type LineageNodeInput struct {
	ObjectType   string
	ObjectID     string
	ResourceName string
	Name         string
	Properties   []schema.ObjectPropertyInput
}

// CreateOrUpdateLineageNode adds a custom node to the lineage graph.
func (c *Client) CreateOrUpdateLineageNode(ctx context.Context, in LineageNodeInput) (*schema.LineageNode, error) {
	var m struct {
		CreateOrUpdateLineageNode *schema.CreateOrUpdateLineageNodePayload `graphql:"createOrUpdateLineageNode(objectType: $objectType, objectId: $objectId, resourceName: $resourceName, name: $name, properties: $properties)"`
	}
	vars := struct {
		ObjectType   string                        `json:"objectType"`
		ObjectID     string                        `json:"objectId"`
		ResourceName string                        `json:"resourceName"`
		Name         *string                       `json:"name,omitempty"`
		Properties   *[]schema.ObjectPropertyInput `json:"properties,omitempty"`
	}{
		ObjectType:   in.ObjectType,
		ObjectID:     in.ObjectID,
		ResourceName: in.ResourceName,
		Name:         optString(in.Name),
		Properties:   optSlice(in.Properties),
	}
	if err := c.gql.Mutate(ctx, &m, vars, graphql.OperationName("CreateOrUpdateLineageNode")); err != nil {
		return nil, err
	}
	if m.CreateOrUpdateLineageNode == nil || m.CreateOrUpdateLineageNode.Node == nil {
		return nil, fmt.Errorf("create lineage node %s: %w", in.ObjectID, ErrUnsuccessful)
	}
	return m.CreateOrUpdateLineageNode.Node, nil
}

// DeleteLineageNode removes a custom lineage node.
func (c *Client) DeleteLineageNode(ctx context.Context, mcon string) error {
	var m struct {
		DeleteLineageNode *schema.DeleteLineageNodePayload `graphql:"deleteLineageNode(mcon: $mcon)"`
	}
	vars := struct {
		Mcon string `json:"mcon"`
	}{mcon}
	if err := c.gql.Mutate(ctx, &m, vars, graphql.OperationName("DeleteLineageNode")); err != nil {
		return err
	}
	if m.DeleteLineageNode == nil || !m.DeleteLineageNode.Success {
		return fmt.Errorf("delete lineage node %s: %w", mcon, ErrUnsuccessful)
	}
	return nil
}

// CreateOrUpdateLineageEdge links source to destination. A non-zero
// expireAt makes the edge temporary.
func (c *Client) CreateOrUpdateLineageEdge(
	ctx context.Context,
	source, destination schema.NodeInput,
	expireAt time.Time,
) (*schema.LineageEdge, error) {
	var m struct {
		CreateOrUpdateLineageEdge *schema.CreateOrUpdateLineageEdgePayload `graphql:"createOrUpdateLineageEdge(source: $source, destination: $destination, expireAt: $expireAt)"`
	}
	vars := struct {
		Source      schema.NodeInput `json:"source"`
		Destination schema.NodeInput `json:"destination"`
		ExpireAt    *schema.DateTime `json:"expireAt,omitempty"`
	}{source, destination, optDateTime(expireAt)}
	if err := c.gql.Mutate(ctx, &m, vars, graphql.OperationName("CreateOrUpdateLineageEdge")); err != nil {
		return nil, err
	}
	if m.CreateOrUpdateLineageEdge == nil || m.CreateOrUpdateLineageEdge.Edge == nil {
		return nil, fmt.Errorf("create lineage edge %s -> %s: %w", source.ObjectID, destination.ObjectID, ErrUnsuccessful)
	}
	return m.CreateOrUpdateLineageEdge.Edge, nil
}

// SetIncidentFeedback records feedback on an incident.
func (c *Client) SetIncidentFeedback(ctx context.Context, incidentID schema.UUID, feedback schema.IncidentFeedback) (*schema.Incident, error) {
	var m struct {
		SetIncidentFeedback *schema.UpdateIncidentPayload `graphql:"setIncidentFeedback(incidentId: $incidentId, feedback: $feedback)"`
	}
	vars := struct {
		IncidentID schema.UUID             `json:"incidentId"`
		Feedback   schema.IncidentFeedback `json:"feedback"`
	}{incidentID, feedback}
	if err := c.gql.Mutate(ctx, &m, vars, graphql.OperationName("SetIncidentFeedback")); err != nil {
		return nil, err
	}
	return updatedIncident(m.SetIncidentFeedback, incidentID)
}

// SetIncidentSeverity changes the severity of an incident.
func (c *Client) SetIncidentSeverity(ctx context.Context, incidentID schema.UUID, severity schema.IncidentSeverity) (*schema.Incident, error) {
	var m struct {
		SetIncidentSeverity *schema.UpdateIncidentPayload `graphql:"setIncidentSeverity(incidentId: $incidentId, severity: $severity)"`
	}
	vars := struct {
		IncidentID schema.UUID             `json:"incidentId"`
		Severity   schema.IncidentSeverity `json:"severity"`
	}{incidentID, severity}
	if err := c.gql.Mutate(ctx, &m, vars, graphql.OperationName("SetIncidentSeverity")); err != nil {
		return nil, err
	}
	return updatedIncident(m.SetIncidentSeverity, incidentID)
}

// SetIncidentOwner assigns an incident to owner, usually an email address.
func (c *Client) SetIncidentOwner(ctx context.Context, incidentID schema.UUID, owner string) (*schema.Incident, error) {
	var m struct {
		SetIncidentOwner *schema.UpdateIncidentPayload `graphql:"setIncidentOwner(incidentId: $incidentId, owner: $owner)"`
	}
	vars := struct {
		IncidentID schema.UUID `json:"incidentId"`
		Owner      string      `json:"owner"`
	}{incidentID, owner}
	if err := c.gql.Mutate(ctx, &m, vars, graphql.OperationName("SetIncidentOwner")); err != nil {
		return nil, err
	}
	return updatedIncident(m.SetIncidentOwner, incidentID)
}

func updatedIncident(p *schema.UpdateIncidentPayload, id schema.UUID) (*schema.Incident, error) {
	if p == nil || p.Incident == nil {
		return nil, notFound("incident", id)
	}
	return p.Incident, nil
}

// DomainInput creates a domain, or updates the one named by UUID.
type DomainInput struct {
	UUID        *schema.UUID
	Name        string
	Description string
	// Assignments are the MCONs or full table ids the domain covers.
	Assignments []string
}

// CreateOrUpdateDomain creates a domain, or updates the one named by
// in.UUID.
func (c *Client) CreateOrUpdateDomain(ctx context.Context, in DomainInput) (*schema.Domain, error) {
	var m struct {
		CreateOrUpdateDomain *schema.CreateOrUpdateDomainPayload `graphql:"createOrUpdateDomain(uuid: $uuid, name: $name, description: $description, assignments: $assignments)"`
	}
	vars := struct {
		UUID        *schema.UUID `json:"uuid,omitempty"`
		Name        string       `json:"name"`
		Description *string      `json:"description,omitempty"`
		Assignments *[]string    `json:"assignments,omitempty"`
	}{
		UUID:        in.UUID,
		Name:        in.Name,
		Description: optString(in.Description),
		Assignments: optSlice(in.Assignments),
	}
	if err := c.gql.Mutate(ctx, &m, vars, graphql.OperationName("CreateOrUpdateDomain")); err != nil {
		return nil, err
	}
	if m.CreateOrUpdateDomain == nil || m.CreateOrUpdateDomain.Domain == nil {
		return nil, fmt.Errorf("create or update domain %q: %w", in.Name, ErrUnsuccessful)
	}
	return m.CreateOrUpdateDomain.Domain, nil
}

// DeleteDomain deletes a domain. A domain that does not exist yields
// ErrNotFound.
func (c *Client) DeleteDomain(ctx context.Context, id schema.UUID) error {
	var m struct {
		DeleteDomain *schema.DeleteDomainPayload `graphql:"deleteDomain(uuid: $uuid)"`
	}
	vars := struct {
		UUID schema.UUID `json:"uuid"`
	}{id}
	if err := c.gql.Mutate(ctx, &m, vars, graphql.OperationName("DeleteDomain")); err != nil {
		return err
	}
	if m.DeleteDomain == nil || m.DeleteDomain.Deleted == 0 {
		return notFound("domain", id)
	}
	return nil
}

// AuthorizationGroupInput creates an authorization group, or updates the
// one with the same name.
type AuthorizationGroupInput struct {
	Name                 string
	Label                string
	Description          string
	Permissions          []string
	DomainRestrictionIDs []schema.UUID
}

// CreateOrUpdateAuthorizationGroup creates an authorization group, or
// replaces the one with the same name.
func (c *Client) CreateOrUpdateAuthorizationGroup(ctx context.Context, in AuthorizationGroupInput) (*schema.AuthorizationGroup, error) {
	var m struct {
		CreateOrUpdateAuthorizationGroup *schema.CreateOrUpdateAuthorizationGroupPayload `graphql:"createOrUpdateAuthorizationGroup(name: $name, label: $label, description: $description, permissions: $permissions, domainRestrictionIds: $domainRestrictionIds)"`
	}
	permissions := in.Permissions
	if permissions == nil {
		permissions = []string{}
	}
	vars := struct {
		Name                 string         `json:"name"`
		Label                string         `json:"label"`
		Description          *string        `json:"description,omitempty"`
		Permissions          []string       `json:"permissions"`
		DomainRestrictionIDs *[]schema.UUID `json:"domainRestrictionIds,omitempty"`
	}{
		Name:                 in.Name,
		Label:                in.Label,
		Description:          optString(in.Description),
		Permissions:          permissions,
		DomainRestrictionIDs: optSlice(in.DomainRestrictionIDs),
	}
	if err := c.gql.Mutate(ctx, &m, vars, graphql.OperationName("CreateOrUpdateAuthorizationGroup")); err != nil {
		return nil, err
	}
	if m.CreateOrUpdateAuthorizationGroup == nil || m.CreateOrUpdateAuthorizationGroup.AuthorizationGroup == nil {
		return nil, fmt.Errorf("create or update authorization group %q: %w", in.Name, ErrUnsuccessful)
	}
	return m.CreateOrUpdateAuthorizationGroup.AuthorizationGroup, nil
}

// TestDatabaseCredentials checks connection details without saving them.
// On success the returned key is passed to AddConnection.
func (c *Client) TestDatabaseCredentials(
	ctx context.Context,
	connectionType schema.ConnectionType,
	details schema.ConnectionDetailsInput,
) (*schema.TestCredentialsPayload, error) {
	var m struct {
		TestDatabaseCredentials *schema.TestCredentialsPayload `graphql:"testDatabaseCredentials(connectionType: $connectionType, details: $details)"`
	}
	vars := struct {
		ConnectionType schema.ConnectionType         `json:"connectionType"`
		Details        schema.ConnectionDetailsInput `json:"details"`
	}{connectionType, details}
	if err := c.gql.Mutate(ctx, &m, vars, graphql.OperationName("TestDatabaseCredentials")); err != nil {
		return nil, err
	}
	if m.TestDatabaseCredentials == nil {
		return nil, fmt.Errorf("test %s credentials: %w", connectionType, ErrUnsuccessful)
	}
	return m.TestDatabaseCredentials, nil
}

// AddConnectionInput adds a connection from tested credentials.
type AddConnectionInput struct {
	Key               string
	ConnectionType    schema.ConnectionType
	WarehouseUUID     *schema.UUID
	DataCollectorUUID *schema.UUID
	Name              string
}

// AddConnection adds a connection to a warehouse using a key returned by
// TestDatabaseCredentials.
func (c *Client) AddConnection(ctx context.Context, in AddConnectionInput) (*schema.Connection, error) {
	var m struct {
		AddConnection *schema.AddConnectionPayload `graphql:"addConnection(key: $key, connectionType: $connectionType, dwId: $dwId, dcId: $dcId, name: $name)"`
	}
	vars := struct {
		Key            string                `json:"key"`
		ConnectionType schema.ConnectionType `json:"connectionType"`
		DwID           *schema.UUID          `json:"dwId,omitempty"`
		DcID           *schema.UUID          `json:"dcId,omitempty"`
		Name           *string               `json:"name,omitempty"`
	}{
		Key:            in.Key,
		ConnectionType: in.ConnectionType,
		DwID:           in.WarehouseUUID,
		DcID:           in.DataCollectorUUID,
		Name:           optString(in.Name),
	}
	if err := c.gql.Mutate(ctx, &m, vars, graphql.OperationName("AddConnection")); err != nil {
		return nil, err
	}
	if m.AddConnection == nil || m.AddConnection.Connection == nil {
		return nil, fmt.Errorf("add %s connection: %w", in.ConnectionType, ErrUnsuccessful)
	}
	return m.AddConnection.Connection, nil
}
