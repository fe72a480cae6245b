package core

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

func (r *Registry) observeOperation(
	ctx context.Context,
	startedAt time.Time,
	operation string,
	err error,
	fields map[string]any,
) {
	r.observe(ctx, startedAt, operation, err, fields, "info")
}

// observeDebug is observeOperation for hot read paths; successes are logged
// at debug level.
func (r *Registry) observeDebug(
	ctx context.Context,
	startedAt time.Time,
	operation string,
	err error,
	fields map[string]any,
) {
	r.observe(ctx, startedAt, operation, err, fields, "debug")
}

func (r *Registry) observe(
	ctx context.Context,
	startedAt time.Time,
	operation string,
	err error,
	fields map[string]any,
	successLevel string,
) {
	if r == nil {
		return
	}
	operation = normalizeOperation(operation)
	if operation == "" {
		operation = "unknown"
	}
	status := "success"
	if err != nil {
		status = "failure"
	}

	contextFields := cloneFields(fields)
	contextFields["event_type"] = operation
	contextFields["status"] = status
	contextFields["duration_ms"] = time.Since(startedAt).Milliseconds()
	if err != nil {
		contextFields["error"] = err.Error()
		enrichErrorFields(contextFields, err)
	}

	tags := map[string]string{
		"operation": operation,
		"status":    status,
	}
	for _, key := range []string{"app_name", "credential_kind"} {
		if value := strings.TrimSpace(fmt.Sprint(contextFields[key])); value != "" && value != "<nil>" {
			tags[key] = value
		}
	}

	r.recordCounter(ctx, metricName(operation, "total"), 1, tags)
	r.recordHistogram(ctx, metricName(operation, "duration_ms"), float64(time.Since(startedAt).Milliseconds()), tags)

	if err != nil {
		r.logWithLevel(ctx, "warn", "app "+operation+" failed", contextFields)
		return
	}
	r.logWithLevel(ctx, successLevel, "app "+operation+" succeeded", contextFields)
}

func enrichErrorFields(fields map[string]any, err error) {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return
	}
	fields["error_category"] = richErr.Category.String()
	if richErr.TextCode != "" {
		fields["error_text_code"] = richErr.TextCode
	}
	if richErr.Code != 0 {
		fields["error_code"] = richErr.Code
	}
}

func (r *Registry) logError(ctx context.Context, message string, fields map[string]any) {
	r.logWithLevel(ctx, "error", message, fields)
}

func (r *Registry) logWithLevel(ctx context.Context, level string, message string, fields map[string]any) {
	if r == nil || r.logger == nil {
		return
	}
	fields = redactSensitiveMap(fields)
	logger := r.logger
	if ctx != nil {
		logger = logger.WithContext(ctx)
	}
	if fieldsLogger, ok := logger.(FieldsLogger); ok {
		logger = fieldsLogger.WithFields(fields)
	}
	args := flattenFields(fields)
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "error":
		logger.Error(message, args...)
	case "warn":
		logger.Warn(message, args...)
	case "debug":
		logger.Debug(message, args...)
	default:
		logger.Info(message, args...)
	}
}

func (r *Registry) recordCounter(ctx context.Context, name string, value int64, tags map[string]string) {
	if r == nil || r.metricsRecorder == nil {
		return
	}
	r.metricsRecorder.IncCounter(ctx, strings.TrimSpace(name), value, cloneTags(tags))
}

func (r *Registry) recordHistogram(ctx context.Context, name string, value float64, tags map[string]string) {
	if r == nil || r.metricsRecorder == nil {
		return
	}
	r.metricsRecorder.ObserveHistogram(ctx, strings.TrimSpace(name), value, cloneTags(tags))
}

func cloneFields(fields map[string]any) map[string]any {
	if len(fields) == 0 {
		return map[string]any{}
	}
	copied := make(map[string]any, len(fields))
	for key, value := range fields {
		copied[key] = value
	}
	return copied
}

func flattenFields(fields map[string]any) []any {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	args := make([]any, 0, len(keys)*2)
	for _, key := range keys {
		args = append(args, key, fields[key])
	}
	return args
}

func normalizeOperation(operation string) string {
	operation = strings.TrimSpace(strings.ToLower(operation))
	operation = strings.ReplaceAll(operation, " ", "_")
	operation = strings.ReplaceAll(operation, "-", "_")
	return operation
}
