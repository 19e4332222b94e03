package schema

import (
	"errors"
	"fmt"
)

// Mutation payloads.

type CreateOrUpdateMonitorPayload struct {
	Monitor *Monitor `json:"monitor,omitempty"`
}

type PauseMonitorPayload struct {
	Monitor *Monitor `json:"monitor,omitempty"`
}

type DeleteMonitorPayload struct {
	Success bool `json:"success"`
}

type CreateCustomRulePayload struct {
	CustomRule *CustomRule `json:"customRule,omitempty"`
}

type TriggerCircuitBreakerRulePayload struct {
	JobExecutionUUID UUID `json:"jobExecutionUuid"`
}

type CreateOrUpdateObjectPropertyPayload struct {
	ObjectProperty *ObjectProperty `json:"objectProperty,omitempty"`
}

type DeleteObjectPropertyPayload struct {
	Success bool `json:"success"`
}

type CreateOrUpdateLineageNodePayload struct {
	Node *LineageNode `json:"node,omitempty"`
}

type DeleteLineageNodePayload struct {
	Success bool `json:"success"`
}

type CreateOrUpdateLineageEdgePayload struct {
	Edge *LineageEdge `json:"edge,omitempty"`
}

// UpdateIncidentPayload is returned by the setIncident* mutations.
type UpdateIncidentPayload struct {
	Incident *Incident `json:"incident,omitempty"`
}

type CreateOrUpdateDomainPayload struct {
	Domain *Domain `json:"domain,omitempty"`
}

// DeleteDomainPayload reports how many domains were deleted.
type DeleteDomainPayload struct {
	Deleted int `json:"deleted"`
}

type CreateOrUpdateAuthorizationGroupPayload struct {
	AuthorizationGroup *AuthorizationGroup `json:"authorizationGroup,omitempty"`
}

// TestCredentialsPayload is the result of testDatabaseCredentials. Key is
// set when the credentials work and is passed on to addConnection.
type TestCredentialsPayload struct {
	Key         *string            `json:"key,omitempty"`
	Success     bool               `json:"success"`
	Validations []ValidationResult `json:"validations,omitempty"`
	Warnings    []ValidationResult `json:"warnings,omitempty"`
}

type AddConnectionPayload struct {
	Connection *Connection `json:"connection,omitempty"`
}

// CircuitBreakerState is the state of one circuit breaker run.
type CircuitBreakerState struct {
	JobExecutionUUID UUID                 `json:"jobExecutionUuid"`
	Status           CircuitBreakerStatus `json:"status"`
	Log              *JSONString          `json:"log,omitempty"`
	CreatedTime      *DateTime            `json:"createdTime,omitempty"`
}

// CircuitBreakerLogEntry is one entry of CircuitBreakerState.Log.
type CircuitBreakerLogEntry struct {
	Stage   string `json:"stage,omitempty"`
	Message string `json:"message,omitempty"`
	Payload struct {
		BreachCount *int64 `json:"breach_count,omitempty"`
		Error       string `json:"error,omitempty"`
	} `json:"payload"`
}

// ErrNoBreachCount is returned by Breached when the log does not end with
// a breach count.
var ErrNoBreachCount = errors.New("circuit breaker log has no breach_count")

// LogEntries decodes the run log. A missing log has no entries.
func (s *CircuitBreakerState) LogEntries() ([]CircuitBreakerLogEntry, error) {
	if s.Log == nil {
		return nil, nil
	}
	var entries []CircuitBreakerLogEntry
	if err := s.Log.Decode(&entries); err != nil {
		return nil, fmt.Errorf("circuit breaker log: %w", err)
	}
	return entries, nil
}

// Breached reports whether the run found the rule in breach, i.e. whether
// the breach_count of the last log entry is positive.
func (s *CircuitBreakerState) Breached() (bool, error) {
	entries, err := s.LogEntries()
	if err != nil {
		return false, err
	}
	if len(entries) == 0 {
		return false, ErrNoBreachCount
	}
	last := entries[len(entries)-1]
	if last.Payload.BreachCount == nil {
		return false, ErrNoBreachCount
	}
	return *last.Payload.BreachCount > 0, nil
}
