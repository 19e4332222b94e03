package schema

// Input objects are sent as variables. Required fields are values; nil
// optional fields are left out of the payload so server defaults apply.

// TagKeyValuePairInput is the TagKeyValuePairInput input.
type TagKeyValuePairInput struct {
	Name  string  `json:"name"`
	Value *string `json:"value,omitempty"`
}

// ObjectPropertyInput is the ObjectPropertyInput input.
type ObjectPropertyInput struct {
	PropertyName  string  `json:"propertyName"`
	PropertyValue *string `json:"propertyValue,omitempty"`
}

// NodeInput is the NodeInput input: a lineage node named by its source
// object.
type NodeInput struct {
	ObjectType   string `json:"objectType"`
	ObjectID     string `json:"objectId"`
	ResourceName string `json:"resourceName"`
}

// ScheduleConfigInput is the ScheduleConfigInput input.
type ScheduleConfigInput struct {
	ScheduleType    ScheduleType `json:"scheduleType"`
	IntervalMinutes *int         `json:"intervalMinutes,omitempty"`
	StartTime       *DateTime    `json:"startTime,omitempty"`
	Timezone        *string      `json:"timezone,omitempty"`
}

// CustomRuleComparisonInput is the CustomRuleComparisonInput input.
type CustomRuleComparisonInput struct {
	ComparisonType      string             `json:"comparisonType"`
	Operator            ComparisonOperator `json:"operator"`
	Threshold           *float64           `json:"threshold,omitempty"`
	Baseline            *float64           `json:"baseline,omitempty"`
	IsThresholdRelative *bool              `json:"isThresholdRelative,omitempty"`
}

// ConnectionDetailsInput is the ConnectionDetailsInput input.
type ConnectionDetailsInput struct {
	Host      *string `json:"host,omitempty"`
	Port      *int    `json:"port,omitempty"`
	DBName    *string `json:"dbName,omitempty"`
	User      *string `json:"user,omitempty"`
	Password  *string `json:"password,omitempty"`
	Role      *string `json:"role,omitempty"`
	Warehouse *string `json:"warehouse,omitempty"`
	Account   *string `json:"account,omitempty"`
}
