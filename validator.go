package rtverify

import (
	"context"

	"go.uber.org/multierr"
)

// ValidatorOption configures a Validator.
type ValidatorOption func(*Validator)

// Validator runs the checks with logging and event emission around them.
// The verdict is identical to Validate, or to ValidateAll when
// Config.Aggregate is set.
type Validator struct {
	cfg       *Config
	logger    Logger
	observers []ObserverFunc
}

// NewValidator creates a Validator. Without options it uses DefaultConfig
// and discards logs.
func NewValidator(opts ...ValidatorOption) *Validator {
	v := &Validator{
		cfg:       DefaultConfig(),
		logger:    nopLogger{},
		observers: make([]ObserverFunc, 0),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// WithLogger sets the logger.
func WithLogger(logger Logger) ValidatorOption {
	return func(v *Validator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// WithConfig sets the configuration.
func WithConfig(cfg *Config) ValidatorOption {
	return func(v *Validator) {
		if cfg != nil {
			v.cfg = cfg
		}
	}
}

// WithObserver registers an observer for validation events.
func WithObserver(observers ...ObserverFunc) ValidatorOption {
	return func(v *Validator) {
		v.observers = append(v.observers, observers...)
	}
}

// Validate checks app. ctx is only passed on to observers; the checks
// themselves never block.
func (v *Validator) Validate(ctx context.Context, app *App) error {
	if app == nil {
		return ErrAppNil
	}

	runID := generateEventID()
	data := ValidationEventData{
		RunID:     runID,
		Resources: len(app.resources),
		Tasks:     len(app.tasks),
		Aggregate: v.cfg.Aggregate,
	}
	v.emit(ctx, EventTypeValidationStarted, runID, data)

	var diags []*Diagnostic
	for _, c := range checks {
		found := runCheck(c, app, !v.cfg.Aggregate)
		v.logger.Debug("Check finished", "run", runID, "check", c.name, "diagnostics", len(found))
		diags = append(diags, found...)
		if len(found) > 0 && !v.cfg.Aggregate {
			break
		}
	}

	if len(diags) == 0 {
		v.logger.Info("Specification is valid", "run", runID, "resources", data.Resources, "tasks", data.Tasks)
		v.emit(ctx, EventTypeValidationPassed, runID, data)
		return nil
	}

	for _, d := range diags {
		v.logger.Error("Specification is invalid", "run", runID, "kind", d.KindName(), "ident", d.Ident, "task", d.Task, "span", d.Span.String())
	}
	data.Diagnostics = diagnosticRows(diags)
	v.emit(ctx, EventTypeValidationFailed, runID, data)

	if !v.cfg.Aggregate {
		return diags[0]
	}
	var err error
	for _, d := range diags {
		err = multierr.Append(err, d)
	}
	return err
}

func (v *Validator) emit(ctx context.Context, eventType, runID string, data ValidationEventData) {
	if !v.cfg.EmitEvents || len(v.observers) == 0 {
		return
	}
	event := NewCloudEvent(eventType, v.cfg.EventSource, data, map[string]interface{}{extensionRunID: runID})
	for _, observer := range v.observers {
		if err := observer(ctx, event); err != nil {
			v.logger.Warn("Observer failed", "eventType", eventType, "run", runID, "error", err)
		}
	}
}
