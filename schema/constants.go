package schema

// Custom string types for type safety.
type (
	// Operator represents a comparison operator inside an Expression.
	Operator string

	// WarningKind represents the class of a non-fatal evaluation warning.
	WarningKind string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for persistence.
	DatabaseBackend string
)

// All expression operators supported by the evaluator.
const (
	OpGTE      Operator = ">="
	OpGT       Operator = ">"
	OpEQ       Operator = "=="
	OpNE       Operator = "!="
	OpLT       Operator = "<"
	OpLTE      Operator = "<="
	OpIncludes Operator = "includes"
)

// All warning kinds emitted by the evaluator.
const (
	WarnUnresolvedPath      WarningKind = "unresolved_path"
	WarnCoercionFailure     WarningKind = "coercion_failure"
	WarnDisqualifierSkipped WarningKind = "disqualifier_skipped"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// ValidOperators lists all valid expression operators.
var ValidOperators = map[Operator]struct{}{
	OpGTE:      {},
	OpGT:       {},
	OpEQ:       {},
	OpNE:       {},
	OpLT:       {},
	OpLTE:      {},
	OpIncludes: {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// OrderedComparison reports whether op requires an ordering between operands
// (as opposed to plain equality or membership).
func (op Operator) OrderedComparison() bool {
	switch op {
	case OpGTE, OpGT, OpLT, OpLTE:
		return true
	default:
		return false
	}
}
