package litetable

// Operation identifies a mutation recorded in the write-ahead log.
type Operation int

const (
	OperationUnknown Operation = iota
	OperationInsert
	OperationDelete
)

func (o Operation) String() string {
	switch o {
	case OperationInsert:
		return "INSERT"
	case OperationDelete:
		return "DELETE"
	default:
		return "UNKNOWN"
	}
}
