package schema

import "slices"

// Enums decode leniently: a token unknown to this version of the package
// is kept as is and reported by IsValid, so that newer server values do
// not break older clients.

// WarehouseType is the WarehouseType enum.
type WarehouseType string

const (
	WarehouseTypeSnowflake       WarehouseType = "SNOWFLAKE"
	WarehouseTypeRedshift        WarehouseType = "REDSHIFT"
	WarehouseTypeBigQuery        WarehouseType = "BIGQUERY"
	WarehouseTypeDatabricks      WarehouseType = "DATABRICKS"
	WarehouseTypeDataLake        WarehouseType = "DATA_LAKE"
	WarehouseTypePostgres        WarehouseType = "POSTGRES"
	WarehouseTypeTransactionalDB WarehouseType = "TRANSACTIONAL_DB"
)

// Values returns every WarehouseType in schema order.
func (WarehouseType) Values() []WarehouseType {
	return []WarehouseType{
		WarehouseTypeSnowflake,
		WarehouseTypeRedshift,
		WarehouseTypeBigQuery,
		WarehouseTypeDatabricks,
		WarehouseTypeDataLake,
		WarehouseTypePostgres,
		WarehouseTypeTransactionalDB,
	}
}

// IsValid reports whether e is a known WarehouseType.
func (e WarehouseType) IsValid() bool { return slices.Contains(e.Values(), e) }

func (e WarehouseType) String() string { return string(e) }

// ConnectionType is the ConnectionType enum: the kind of an integration.
type ConnectionType string

const (
	ConnectionTypeSnowflake  ConnectionType = "SNOWFLAKE"
	ConnectionTypeRedshift   ConnectionType = "REDSHIFT"
	ConnectionTypeBigQuery   ConnectionType = "BIGQUERY"
	ConnectionTypeDatabricks ConnectionType = "DATABRICKS"
	ConnectionTypeHiveMySQL  ConnectionType = "HIVE_MYSQL"
	ConnectionTypeGlue       ConnectionType = "GLUE"
	ConnectionTypePresto     ConnectionType = "PRESTO"
	ConnectionTypeAthena     ConnectionType = "ATHENA"
	ConnectionTypeTableau    ConnectionType = "TABLEAU"
	ConnectionTypeLooker     ConnectionType = "LOOKER"
	ConnectionTypeDBT        ConnectionType = "DBT"
	ConnectionTypeAirflow    ConnectionType = "AIRFLOW"
	ConnectionTypePowerBI    ConnectionType = "POWER_BI"
)

// Values returns every ConnectionType in schema order.
func (ConnectionType) Values() []ConnectionType {
	return []ConnectionType{
		ConnectionTypeSnowflake,
		ConnectionTypeRedshift,
		ConnectionTypeBigQuery,
		ConnectionTypeDatabricks,
		ConnectionTypeHiveMySQL,
		ConnectionTypeGlue,
		ConnectionTypePresto,
		ConnectionTypeAthena,
		ConnectionTypeTableau,
		ConnectionTypeLooker,
		ConnectionTypeDBT,
		ConnectionTypeAirflow,
		ConnectionTypePowerBI,
	}
}

// IsValid reports whether e is a known ConnectionType.
func (e ConnectionType) IsValid() bool { return slices.Contains(e.Values(), e) }

func (e ConnectionType) String() string { return string(e) }

// IncidentType is the IncidentType enum.
type IncidentType string

const (
	IncidentTypeAnomalies             IncidentType = "ANOMALIES"
	IncidentTypeSchemaChanges         IncidentType = "SCHEMA_CHANGES"
	IncidentTypeDeletedTables         IncidentType = "DELETED_TABLES"
	IncidentTypeJSONSchemaChanges     IncidentType = "JSON_SCHEMA_CHANGES"
	IncidentTypeMetricAnomalies       IncidentType = "METRIC_ANOMALIES"
	IncidentTypeCustomRuleAnomalies   IncidentType = "CUSTOM_RULE_ANOMALIES"
	IncidentTypePseudoIntegrationTest IncidentType = "PSEUDO_INTEGRATION_TEST"
	IncidentTypeDBTErrors             IncidentType = "DBT_ERRORS"
)

// Values returns every IncidentType in schema order.
func (IncidentType) Values() []IncidentType {
	return []IncidentType{
		IncidentTypeAnomalies,
		IncidentTypeSchemaChanges,
		IncidentTypeDeletedTables,
		IncidentTypeJSONSchemaChanges,
		IncidentTypeMetricAnomalies,
		IncidentTypeCustomRuleAnomalies,
		IncidentTypePseudoIntegrationTest,
		IncidentTypeDBTErrors,
	}
}

// IsValid reports whether e is a known IncidentType.
func (e IncidentType) IsValid() bool { return slices.Contains(e.Values(), e) }

func (e IncidentType) String() string { return string(e) }

// IncidentSeverity is the IncidentSeverity enum. SEV_1 is the most severe.
type IncidentSeverity string

const (
	IncidentSeveritySev1 IncidentSeverity = "SEV_1"
	IncidentSeveritySev2 IncidentSeverity = "SEV_2"
	IncidentSeveritySev3 IncidentSeverity = "SEV_3"
	IncidentSeveritySev4 IncidentSeverity = "SEV_4"
)

// Values returns every IncidentSeverity in schema order.
func (IncidentSeverity) Values() []IncidentSeverity {
	return []IncidentSeverity{
		IncidentSeveritySev1,
		IncidentSeveritySev2,
		IncidentSeveritySev3,
		IncidentSeveritySev4,
	}
}

// IsValid reports whether e is a known IncidentSeverity.
func (e IncidentSeverity) IsValid() bool { return slices.Contains(e.Values(), e) }

func (e IncidentSeverity) String() string { return string(e) }

// IncidentFeedback is the IncidentFeedback enum: the status a user gives
// an incident.
type IncidentFeedback string

const (
	IncidentFeedbackFixed          IncidentFeedback = "FIXED"
	IncidentFeedbackExpected       IncidentFeedback = "EXPECTED"
	IncidentFeedbackNoActionNeeded IncidentFeedback = "NO_ACTION_NEEDED"
	IncidentFeedbackFalsePositive  IncidentFeedback = "FALSE_POSITIVE"
	IncidentFeedbackHelpful        IncidentFeedback = "HELPFUL"
	IncidentFeedbackNotHelpful     IncidentFeedback = "NOT_HELPFUL"
	IncidentFeedbackInvestigating  IncidentFeedback = "INVESTIGATING"
)

// Values returns every IncidentFeedback in schema order.
func (IncidentFeedback) Values() []IncidentFeedback {
	return []IncidentFeedback{
		IncidentFeedbackFixed,
		IncidentFeedbackExpected,
		IncidentFeedbackNoActionNeeded,
		IncidentFeedbackFalsePositive,
		IncidentFeedbackHelpful,
		IncidentFeedbackNotHelpful,
		IncidentFeedbackInvestigating,
	}
}

// IsValid reports whether e is a known IncidentFeedback.
func (e IncidentFeedback) IsValid() bool { return slices.Contains(e.Values(), e) }

func (e IncidentFeedback) String() string { return string(e) }

// EventType is the EventType enum.
type EventType string

const (
	EventTypeFreshnessAnomaly  EventType = "FRESHNESS_ANOMALY"
	EventTypeVolumeAnomaly     EventType = "VOLUME_ANOMALY"
	EventTypeSchemaChange      EventType = "SCHEMA_CHANGE"
	EventTypeDeletedTable      EventType = "DELETED_TABLE"
	EventTypeCustomRuleAnomaly EventType = "CUSTOM_RULE_ANOMALY"
	EventTypeDistAnomaly       EventType = "DIST_ANOMALY"
)

// Values returns every EventType in schema order.
func (EventType) Values() []EventType {
	return []EventType{
		EventTypeFreshnessAnomaly,
		EventTypeVolumeAnomaly,
		EventTypeSchemaChange,
		EventTypeDeletedTable,
		EventTypeCustomRuleAnomaly,
		EventTypeDistAnomaly,
	}
}

// IsValid reports whether e is a known EventType.
func (e EventType) IsValid() bool { return slices.Contains(e.Values(), e) }

func (e EventType) String() string { return string(e) }

// MonitorType is the MonitorType enum.
type MonitorType string

const (
	MonitorTypeFreshness    MonitorType = "FRESHNESS"
	MonitorTypeVolume       MonitorType = "VOLUME"
	MonitorTypeStats        MonitorType = "STATS"
	MonitorTypeCategories   MonitorType = "CATEGORIES"
	MonitorTypeCustomSQL    MonitorType = "CUSTOM_SQL"
	MonitorTypeFieldQuality MonitorType = "FIELD_QUALITY"
	MonitorTypeTableMetric  MonitorType = "TABLE_METRIC"
	MonitorTypeJSONSchema   MonitorType = "JSON_SCHEMA"
)

// Values returns every MonitorType in schema order.
func (MonitorType) Values() []MonitorType {
	return []MonitorType{
		MonitorTypeFreshness,
		MonitorTypeVolume,
		MonitorTypeStats,
		MonitorTypeCategories,
		MonitorTypeCustomSQL,
		MonitorTypeFieldQuality,
		MonitorTypeTableMetric,
		MonitorTypeJSONSchema,
	}
}

// IsValid reports whether e is a known MonitorType.
func (e MonitorType) IsValid() bool { return slices.Contains(e.Values(), e) }

func (e MonitorType) String() string { return string(e) }

// MonitorStatus is the MonitorStatus enum.
type MonitorStatus string

const (
	MonitorStatusEnabled  MonitorStatus = "ENABLED"
	MonitorStatusPaused   MonitorStatus = "PAUSED"
	MonitorStatusSnoozed  MonitorStatus = "SNOOZED"
	MonitorStatusError    MonitorStatus = "ERROR"
	MonitorStatusNoData   MonitorStatus = "NO_DATA"
	MonitorStatusTraining MonitorStatus = "TRAINING"
)

// Values returns every MonitorStatus in schema order.
func (MonitorStatus) Values() []MonitorStatus {
	return []MonitorStatus{
		MonitorStatusEnabled,
		MonitorStatusPaused,
		MonitorStatusSnoozed,
		MonitorStatusError,
		MonitorStatusNoData,
		MonitorStatusTraining,
	}
}

// IsValid reports whether e is a known MonitorStatus.
func (e MonitorStatus) IsValid() bool { return slices.Contains(e.Values(), e) }

func (e MonitorStatus) String() string { return string(e) }

// ScheduleType is the ScheduleType enum.
type ScheduleType string

const (
	ScheduleTypeFixed   ScheduleType = "FIXED"
	ScheduleTypeDynamic ScheduleType = "DYNAMIC"
	ScheduleTypeManual  ScheduleType = "MANUAL"
	ScheduleTypeLoose   ScheduleType = "LOOSE"
)

// Values returns every ScheduleType in schema order.
func (ScheduleType) Values() []ScheduleType {
	return []ScheduleType{
		ScheduleTypeFixed,
		ScheduleTypeDynamic,
		ScheduleTypeManual,
		ScheduleTypeLoose,
	}
}

// IsValid reports whether e is a known ScheduleType.
func (e ScheduleType) IsValid() bool { return slices.Contains(e.Values(), e) }

func (e ScheduleType) String() string { return string(e) }

// ComparisonOperator is the ComparisonOperator enum used by custom rule
// comparisons. AUTO lets the platform pick a threshold.
type ComparisonOperator string

const (
	ComparisonOperatorGT   ComparisonOperator = "GT"
	ComparisonOperatorGTE  ComparisonOperator = "GTE"
	ComparisonOperatorLT   ComparisonOperator = "LT"
	ComparisonOperatorLTE  ComparisonOperator = "LTE"
	ComparisonOperatorEQ   ComparisonOperator = "EQ"
	ComparisonOperatorNEQ  ComparisonOperator = "NEQ"
	ComparisonOperatorAuto ComparisonOperator = "AUTO"
)

// Values returns every ComparisonOperator in schema order.
func (ComparisonOperator) Values() []ComparisonOperator {
	return []ComparisonOperator{
		ComparisonOperatorGT,
		ComparisonOperatorGTE,
		ComparisonOperatorLT,
		ComparisonOperatorLTE,
		ComparisonOperatorEQ,
		ComparisonOperatorNEQ,
		ComparisonOperatorAuto,
	}
}

// IsValid reports whether e is a known ComparisonOperator.
func (e ComparisonOperator) IsValid() bool { return slices.Contains(e.Values(), e) }

func (e ComparisonOperator) String() string { return string(e) }

// LineageDirection is the LineageDirection enum.
type LineageDirection string

const (
	LineageDirectionUpstream   LineageDirection = "UPSTREAM"
	LineageDirectionDownstream LineageDirection = "DOWNSTREAM"
)

// Values returns every LineageDirection in schema order.
func (LineageDirection) Values() []LineageDirection {
	return []LineageDirection{LineageDirectionUpstream, LineageDirectionDownstream}
}

// IsValid reports whether e is a known LineageDirection.
func (e LineageDirection) IsValid() bool { return slices.Contains(e.Values(), e) }

func (e LineageDirection) String() string { return string(e) }

// CircuitBreakerStatus is the CircuitBreakerStatus enum. A run ends in
// PROCESSING_COMPLETE or HAS_ERROR.
type CircuitBreakerStatus string

const (
	CircuitBreakerStatusPending            CircuitBreakerStatus = "PENDING"
	CircuitBreakerStatusProcessingStart    CircuitBreakerStatus = "PROCESSING_START"
	CircuitBreakerStatusProcessingComplete CircuitBreakerStatus = "PROCESSING_COMPLETE"
	CircuitBreakerStatusHasError           CircuitBreakerStatus = "HAS_ERROR"
)

// Values returns every CircuitBreakerStatus in schema order.
func (CircuitBreakerStatus) Values() []CircuitBreakerStatus {
	return []CircuitBreakerStatus{
		CircuitBreakerStatusPending,
		CircuitBreakerStatusProcessingStart,
		CircuitBreakerStatusProcessingComplete,
		CircuitBreakerStatusHasError,
	}
}

// IsValid reports whether e is a known CircuitBreakerStatus.
func (e CircuitBreakerStatus) IsValid() bool { return slices.Contains(e.Values(), e) }

func (e CircuitBreakerStatus) String() string { return string(e) }

// IsTerminal reports whether a run in status e has finished.
func (e CircuitBreakerStatus) IsTerminal() bool {
	return e == CircuitBreakerStatusProcessingComplete || e == CircuitBreakerStatusHasError
}
