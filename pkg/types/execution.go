package types

import (
	"google.golang.org/protobuf/types/known/timestamppb"
)

// ExecutionStatus is the lifecycle state of a function execution.
type ExecutionStatus int32

const (
	ExecutionStatusUnknown ExecutionStatus = iota
	ExecutionStatusPending
	ExecutionStatusStarted
	ExecutionStatusSuccess
	ExecutionStatusFailed
)

var executionStatusNames = map[ExecutionStatus]string{
	ExecutionStatusUnknown: "STATUS_UNKNOWN",
	ExecutionStatusPending: "STATUS_PENDING",
	ExecutionStatusStarted: "STATUS_STARTED",
	ExecutionStatusSuccess: "STATUS_SUCCESS",
	ExecutionStatusFailed:  "STATUS_FAILED",
}

func (s ExecutionStatus) String() string {
	if name, ok := executionStatusNames[s]; ok {
		return name
	}
	return executionStatusNames[ExecutionStatusUnknown]
}

// ParseExecutionStatus maps a stored status name back to its value.
func ParseExecutionStatus(name string) ExecutionStatus {
	for s, n := range executionStatusNames {
		if n == name {
			return s
		}
	}
	return ExecutionStatusUnknown
}

// ExecutionRecord is one document in the executions collection.
type ExecutionRecord struct {
	ExecutionID       string
	Service           string
	Status            ExecutionStatus
	Timestamp         *timestamppb.Timestamp
	UserID            string
	TriggerType       string
	StartTime         *timestamppb.Timestamp
	EndTime           *timestamppb.Timestamp
	ErrorMessage      string
	InputsJSON        string
	OutputsJSON       string
	ParentExecutionID string
}
