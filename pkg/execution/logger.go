package execution

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/fitfuel/fitfuel-server/pkg/types"
)

// Database interface for Firestore operations
type Database interface {
	SetExecution(ctx context.Context, record *types.ExecutionRecord) error
	UpdateExecution(ctx context.Context, id string, data map[string]interface{}) error
}

// ExecutionOptions contains optional fields for execution logging
type ExecutionOptions struct {
	UserID      string
	TriggerType string
	Inputs      interface{}
}

// encodeJSON returns "" when v is nil or cannot be encoded.
func encodeJSON(v interface{}) string {
	if v == nil {
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

func newExecutionID(service string) string {
	return fmt.Sprintf("%s-%d", service, time.Now().UnixNano())
}

// LogPending creates an execution record with PENDING status and captured inputs
func LogPending(ctx context.Context, db Database, service string, opts ExecutionOptions) (string, error) {
	execID := newExecutionID(service)
	now := timestamppb.Now()

	record := &types.ExecutionRecord{
		ExecutionID: execID,
		Service:     service,
		Status:      types.ExecutionStatusPending,
		Timestamp:   now,
		StartTime:   now,
		UserID:      opts.UserID,
		TriggerType: opts.TriggerType,
		InputsJSON:  encodeJSON(opts.Inputs),
	}

	if err := db.SetExecution(ctx, record); err != nil {
		return execID, fmt.Errorf("failed to log execution pending: %w", err)
	}

	return execID, nil
}

// LogStart updates an execution record to STARTED status and adds inputs/metadata
func LogStart(ctx context.Context, db Database, execID string, inputs interface{}, opts *ExecutionOptions) error {
	now := timestamppb.Now()

	updates := map[string]interface{}{
		"status":     types.ExecutionStatusStarted.String(),
		"start_time": now.AsTime(),
	}

	// Update metadata if provided (wasn't available at Pending time)
	if opts != nil {
		if opts.UserID != "" {
			updates["user_id"] = opts.UserID
		}
		if opts.TriggerType != "" {
			updates["trigger_type"] = opts.TriggerType
		}
	}

	if in := encodeJSON(inputs); in != "" {
		updates["inputs_json"] = in
	}

	if err := db.UpdateExecution(ctx, execID, updates); err != nil {
		return fmt.Errorf("failed to log execution start: %w", err)
	}

	return nil
}

// LogChildExecutionStart creates an execution record with STARTED status and links it to a parent
func LogChildExecutionStart(ctx context.Context, db Database, service string, parentExecutionID string, opts ExecutionOptions) (string, error) {
	execID := newExecutionID(service)
	now := timestamppb.Now()

	record := &types.ExecutionRecord{
		ExecutionID:       execID,
		Service:           service,
		Status:            types.ExecutionStatusStarted,
		Timestamp:         now,
		StartTime:         now,
		UserID:            opts.UserID,
		TriggerType:       opts.TriggerType,
		InputsJSON:        encodeJSON(opts.Inputs),
		ParentExecutionID: parentExecutionID,
	}

	if err := db.SetExecution(ctx, record); err != nil {
		return execID, fmt.Errorf("failed to log child execution start: %w", err)
	}

	return execID, nil
}

// LogSuccess updates an execution record with SUCCESS status
func LogSuccess(ctx context.Context, db Database, execID string, outputs interface{}) error {
	return LogExecutionStatus(ctx, db, execID, types.ExecutionStatusSuccess, outputs)
}

// LogFailure updates an execution record with FAILED status
func LogFailure(ctx context.Context, db Database, execID string, err error, outputs interface{}) error {
	now := timestamppb.Now()

	updates := map[string]interface{}{
		"status":        types.ExecutionStatusFailed.String(),
		"timestamp":     now.AsTime(),
		"end_time":      now.AsTime(),
		"error_message": err.Error(),
	}

	if out := encodeJSON(outputs); out != "" {
		updates["outputs_json"] = out
	}

	if updateErr := db.UpdateExecution(ctx, execID, updates); updateErr != nil {
		return fmt.Errorf("failed to log execution failure: %w", updateErr)
	}

	return nil
}

// LogExecutionStatus updates an execution record with a terminal status
func LogExecutionStatus(ctx context.Context, db Database, execID string, status types.ExecutionStatus, outputs interface{}) error {
	now := timestamppb.Now()

	updates := map[string]interface{}{
		"status":    status.String(),
		"timestamp": now.AsTime(),
		"end_time":  now.AsTime(),
	}

	if out := encodeJSON(outputs); out != "" {
		updates["outputs_json"] = out
	}

	if err := db.UpdateExecution(ctx, execID, updates); err != nil {
		return fmt.Errorf("failed to log execution status %v: %w", status, err)
	}

	return nil
}
