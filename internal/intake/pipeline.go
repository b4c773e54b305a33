package intake

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	apperrors "trucking-site/internal/common/errors"
	"trucking-site/internal/common/logger"
	"trucking-site/internal/common/metrics"
	"trucking-site/internal/common/observability"
	"trucking-site/internal/common/validation"
	"trucking-site/internal/models"
	"trucking-site/internal/notify"
	"trucking-site/internal/store"
)

// Policy fixes one pipeline's behavior at construction: its schema, its
// collection, whether dedup runs, and how store unavailability surfaces.
type Policy struct {
	// Kind labels the pipeline in logs and metrics: "contact" or "application".
	Kind string
	// Collection is the store collection records are written to.
	Collection string
	// IDPrefix, when set, makes the pipeline generate the record id itself
	// and write with Set. When empty the store assigns the id via Add.
	IDPrefix string
	// Schema validates the raw payload.
	Schema validation.Schema
	// RequireContact enforces the phone-or-email cross-field rule.
	RequireContact bool
	// DedupEnabled runs the duplicate guard before persisting.
	DedupEnabled bool
	// SoftUnavailable makes an unprovisioned store indistinguishable from
	// success to the client. When false the client gets a 503 body.
	SoftUnavailable bool
	// UnavailableMessage is the client message when SoftUnavailable is false.
	UnavailableMessage string
	// WriteFailureMessage is the client message when a write fails.
	WriteFailureMessage string
}

// Receipt is the outcome of an accepted (or soft-accepted) submission.
type Receipt struct {
	ID string
	// Record is nil when the store was unavailable and the policy soft-fails.
	Record store.Document
	// Stored is false for soft-accepted submissions that were never written.
	Stored bool
}

// Pipeline runs one form's submissions through validation, the duplicate
// guard, record building and persistence, in that order. Stages short
// circuit: a failed stage stops the run and later stages see nothing.
type Pipeline struct {
	policy       Policy
	store        store.DocumentStore
	guard        *Guard
	notifier     notify.Notifier
	clock        Clock
	ids          IDGenerator
	storeTimeout time.Duration
	obs          *observability.Observability
	logger       logger.Logger
}

// Option adjusts pipeline construction.
type Option func(*Pipeline)

// WithClock injects a deterministic clock.
func WithClock(clock Clock) Option {
	return func(p *Pipeline) {
		p.clock = clock
		if p.guard != nil {
			p.guard.clock = clock
		}
	}
}

// WithIDGenerator injects a deterministic id generator.
func WithIDGenerator(ids IDGenerator) Option {
	return func(p *Pipeline) { p.ids = ids }
}

// WithObservability attaches metrics and tracing.
func WithObservability(obs *observability.Observability) Option {
	return func(p *Pipeline) { p.obs = obs }
}

// New creates a pipeline. guard may be nil when the policy disables dedup;
// notifier may be nil to skip dispatch alerts.
func New(policy Policy, docStore store.DocumentStore, guard *Guard, notifier notify.Notifier, storeTimeout time.Duration, log logger.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{
		policy:       policy,
		store:        docStore,
		guard:        guard,
		notifier:     notifier,
		clock:        SystemClock{},
		storeTimeout: storeTimeout,
		logger:       log,
	}
	p.ids = NewIDGenerator(p.clock)
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process runs one submission through the pipeline. The returned error is
// always a *StandardError; the HTTP layer maps its code to a status.
func (p *Pipeline) Process(ctx context.Context, input map[string]interface{}) (*Receipt, error) {
	start := p.clock.Now()
	metrics.SubmissionsReceived.WithLabelValues(p.policy.Kind).Inc()

	receipt, err := p.process(ctx, input)

	elapsed := time.Since(start)
	metrics.SubmissionDuration.WithLabelValues(p.policy.Kind).Observe(elapsed.Seconds())
	if p.obs != nil {
		p.obs.RecordSubmissionDuration(ctx, p.policy.Kind, elapsed)
	}

	if err != nil {
		reason := "internal"
		if stdErr := apperrors.AsStandard(err); stdErr != nil {
			reason = strings.ToLower(string(stdErr.Code))
		}
		metrics.SubmissionsRejected.WithLabelValues(p.policy.Kind, reason).Inc()
		if p.obs != nil {
			p.obs.RecordSubmission(ctx, p.policy.Kind, "rejected")
		}
		return nil, err
	}

	metrics.SubmissionsAccepted.WithLabelValues(p.policy.Kind).Inc()
	if p.obs != nil {
		p.obs.RecordSubmission(ctx, p.policy.Kind, "accepted")
	}
	return receipt, nil
}

func (p *Pipeline) process(ctx context.Context, input map[string]interface{}) (*Receipt, error) {
	ctx, endSpan := p.startSpan(ctx, "intake.process")
	defer endSpan()

	fields, verr := p.validate(ctx, input)
	if verr != nil {
		return nil, verr
	}

	email := NormalizeEmail(stringField(fields, "email"))
	phoneClean := CleanPhone(stringField(fields, "phone"))

	if p.policy.RequireContact && email == "" && phoneClean == "" {
		return nil, apperrors.NewMissingContactChannelError()
	}

	dedupRan := false
	if p.policy.DedupEnabled && p.guard != nil {
		if err := p.checkDuplicate(ctx, email, phoneClean); err != nil {
			return nil, err
		}
		dedupRan = true
	}

	receipt, err := p.persist(ctx, fields)
	if err != nil && dedupRan {
		// The record was never written; free the reservation so the
		// sender can retry inside the window.
		p.guard.Release(ctx, p.policy.Collection, email, phoneClean)
	}
	return receipt, err
}

func (p *Pipeline) validate(ctx context.Context, input map[string]interface{}) (map[string]interface{}, error) {
	_, endSpan := p.startSpan(ctx, "intake.validate")
	defer endSpan()

	fields, verr := validation.Validate(input, p.policy.Schema)
	if verr != nil {
		p.logger.Debug("submission rejected by validation", map[string]interface{}{
			"kind":  p.policy.Kind,
			"field": verr.Field,
		})
		return nil, apperrors.NewValidationError(verr.Field, verr.Message)
	}
	return fields, nil
}

func (p *Pipeline) checkDuplicate(ctx context.Context, email, phoneClean string) error {
	ctx, endSpan := p.startSpan(ctx, "intake.dedup")
	defer endSpan()

	ctx, cancel := context.WithTimeout(ctx, p.storeTimeout)
	defer cancel()

	noun := "submission"
	if p.policy.Kind == "application" {
		noun = "application"
	}

	err := p.guard.Check(ctx, p.policy.Collection, noun, email, phoneClean)
	if err == nil {
		return nil
	}
	if stdErr := apperrors.AsStandard(err); stdErr != nil {
		p.logger.Info("duplicate submission rejected", map[string]interface{}{
			"kind":    p.policy.Kind,
			"details": stdErr.Details,
		})
		return err
	}
	if errors.Is(err, store.ErrStoreUnavailable) && p.policy.SoftUnavailable {
		// Nothing to match against; the persist stage soft-accepts anyway.
		return nil
	}
	// Lookup failure, not a duplicate. Classify like a failed write.
	return p.storeFailure(err)
}

func (p *Pipeline) persist(ctx context.Context, fields map[string]interface{}) (*Receipt, error) {
	ctx, endSpan := p.startSpan(ctx, "intake.persist", attribute.String("collection", p.policy.Collection))
	defer endSpan()

	now := p.clock.Now()
	var (
		id     string
		record interface{}
	)
	if p.policy.IDPrefix != "" {
		id = p.ids.NewID(p.policy.IDPrefix)
	}

	switch p.policy.Kind {
	case "contact":
		record = BuildContactRecord(fields, id, now)
	case "application":
		record = BuildApplicationRecord(fields, now)
	default:
		return nil, apperrors.NewInternalError(fmt.Errorf("unknown pipeline kind %q", p.policy.Kind))
	}

	doc, err := store.ToDocument(record)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.storeTimeout)
	defer cancel()

	if p.policy.IDPrefix != "" {
		err = p.store.Set(ctx, p.policy.Collection, id, doc)
	} else {
		id, err = p.store.Add(ctx, p.policy.Collection, doc)
	}
	if err != nil {
		metrics.StoreCalls.WithLabelValues("write", "error").Inc()
		if errors.Is(err, store.ErrStoreUnavailable) && p.policy.SoftUnavailable {
			p.logger.Warn("store unavailable, accepting submission without persisting", map[string]interface{}{
				"kind": p.policy.Kind,
				"id":   id,
			})
			return &Receipt{ID: id, Stored: false}, nil
		}
		return nil, p.storeFailure(err)
	}
	metrics.StoreCalls.WithLabelValues("write", "success").Inc()

	p.logger.Info("submission persisted", map[string]interface{}{
		"kind":       p.policy.Kind,
		"collection": p.policy.Collection,
		"id":         id,
	})

	receipt := &Receipt{ID: id, Record: doc, Stored: true}
	p.sendNotification(record, id)
	return receipt, nil
}

// storeFailure maps a raw store error onto the client contract: an
// unprovisioned store and a failed call produce different codes.
func (p *Pipeline) storeFailure(err error) error {
	if errors.Is(err, store.ErrStoreUnavailable) {
		return apperrors.NewStoreUnavailableError(p.policy.UnavailableMessage)
	}
	p.logger.Error("store call failed", map[string]interface{}{
		"kind":  p.policy.Kind,
		"error": err.Error(),
	})
	return apperrors.NewStoreWriteError(p.policy.WriteFailureMessage, err)
}

// sendNotification runs the dispatch alert in the background so delivery
// latency and failures never affect the response.
func (p *Pipeline) sendNotification(record interface{}, id string) {
	if p.notifier == nil {
		return
	}

	event := notify.Event{Kind: p.policy.Kind, ID: id}
	switch r := record.(type) {
	case *models.ContactSubmission:
		event.Name = r.Name
		event.Email = r.Email
		event.Topic = r.Topic
		event.Summary = r.Message
	case *models.DriverApplication:
		event.Name = strings.TrimSpace(r.FirstName + " " + r.LastName)
		event.Email = r.Email
		event.Phone = r.Phone
		event.HasCDL = r.HasCDL
		event.Summary = fmt.Sprintf("CDL: %t, experience: %dy %dm", r.HasCDL, r.YearsExperience, r.MonthsExperience)
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		p.notifier.SubmissionAccepted(ctx, event)
	}()
}

func (p *Pipeline) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, func()) {
	if p.obs == nil {
		return ctx, func() {}
	}
	return p.obs.StartSpan(ctx, name, attrs...)
}
