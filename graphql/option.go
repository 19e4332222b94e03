package graphql

// OptionType identifies what an Option contributes to an operation.
type OptionType string

const (
	optionTypeOperationName OptionType = "operation_name"

	// OptionTypeOperationDirective marks options rendered as directives
	// after the operation name, e.g. "@cached(ttl: 60)".
	OptionTypeOperationDirective OptionType = "operation_directive"
)

// Option customises the operation header built around a selection set.
type Option interface {
	// Type reports how the option is rendered.
	Type() OptionType
	// String returns the rendered option.
	String() string
}

type operationNameOption struct {
	name string
}

func (o operationNameOption) Type() OptionType { return optionTypeOperationName }

func (o operationNameOption) String() string { return o.name }

// OperationName names the operation, e.g. "query GetTables(...)". Named
// operations show up in server-side logs and traces.
func OperationName(name string) Option {
	return operationNameOption{name: name}
}
