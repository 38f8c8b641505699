// Package gate runs the admission pipeline: normalize, validate, then
// accept or reject, attaching derived metadata to accepted messages and
// handing them to delivery.
package gate

import (
	"context"

	"go.uber.org/zap"

	"github.com/ezchajim/azilut/internal/anchor"
	"github.com/ezchajim/azilut/internal/interpret"
	"github.com/ezchajim/azilut/internal/model"
	"github.com/ezchajim/azilut/internal/router"
	"github.com/ezchajim/azilut/internal/spiral"
)

// State is a message's position in the admission state machine. Rejected
// and Delivered are terminal; Accepted transitions to Delivered in the
// same Submit call and is not independently observable.
type State int

const (
	StateCreated State = iota
	StateNormalized
	StateRejected
	StateAccepted
	StateDelivered
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateNormalized:
		return "normalized"
	case StateRejected:
		return "rejected"
	case StateAccepted:
		return "accepted"
	case StateDelivered:
		return "delivered"
	default:
		return "unknown"
	}
}

// Outcome is the structured feedback Submit returns to the producer.
// Content and purpose change logs stay separately addressable.
type Outcome struct {
	State          State
	Verdict        model.Verdict
	ContentChanges []model.ChangeRecord
	PurposeChanges []model.ChangeRecord
}

// Rejected reports whether the message was turned away. Rejection is
// final for the message; a producer must construct and resubmit a
// corrected one.
func (o *Outcome) Rejected() bool { return o.State == StateRejected }

// Normalizer rewrites text and audits every change. Satisfied by the
// glossary normalizer and its caching wrapper.
type Normalizer interface {
	Normalize(text string) (string, []model.ChangeRecord)
}

// Gate is the admission state machine. It is stateless across calls;
// distinct messages may be submitted concurrently with no coordination
// beyond the router's own.
type Gate struct {
	normalizer Normalizer
	validator  *anchor.Validator
	interp     interpret.Interpreter
	router     *router.Router
	logger     *zap.Logger
}

// New wires a gate. A nil interpreter defaults to the heuristic one; a
// nil logger disables logging.
func New(normalizer Normalizer, interp interpret.Interpreter, deliverTo *router.Router, logger *zap.Logger) *Gate {
	if interp == nil {
		interp = interpret.NewHeuristic()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gate{
		normalizer: normalizer,
		validator:  anchor.NewValidator(interp),
		interp:     interp,
		router:     deliverTo,
		logger:     logger,
	}
}

// Router returns the delivery router the gate hands accepted messages to.
func (g *Gate) Router() *router.Router { return g.router }

// Submit runs one message through the full pipeline. No transition is
// skipped: the message is normalized before it is scored, and only an
// anchored message reaches delivery.
func (g *Gate) Submit(ctx context.Context, msg *model.Message) *Outcome {
	// CREATED -> NORMALIZED: content and purpose are rewritten as
	// separate strings with separate audit logs.
	content, contentChanges := g.normalizer.Normalize(msg.Content)
	purpose, purposeChanges := g.normalizer.Normalize(msg.Purpose)
	msg.Content = content
	msg.Purpose = purpose

	outcome := &Outcome{
		State:          StateNormalized,
		ContentChanges: contentChanges,
		PurposeChanges: purposeChanges,
	}

	// NORMALIZED -> REJECTED | ACCEPTED
	verdict := g.validator.Validate(ctx, msg)
	msg.Verdict = &verdict
	outcome.Verdict = verdict

	if !verdict.Anchored {
		remediation := ""
		if len(verdict.Remediation) > 0 {
			remediation = verdict.Remediation[0]
		}
		g.logger.Warn("message not anchored, rejecting",
			zap.String("message_id", msg.ID),
			zap.String("sender", msg.SenderID),
			zap.Float64("score", verdict.Score),
			zap.String("remediation", remediation),
			zap.Strings("missing_aspects", verdict.MissingAspects),
		)
		outcome.State = StateRejected
		return outcome
	}
	outcome.State = StateAccepted

	// ACCEPTED -> DELIVERED: attach derived metadata, then hand off.
	msg.SpiralGrade = spiral.Grade(msg.Content)
	if msg.InterpretationTag == "" {
		if results, err := g.interp.Interpret(ctx, msg.Content); err == nil {
			if tag, ok := interpret.Tag(results); ok {
				msg.InterpretationTag = tag
			}
		} else {
			// Interpretation is decorative; its failure never holds
			// up delivery.
			g.logger.Warn("interpretation failed, leaving tag unset",
				zap.String("message_id", msg.ID),
				zap.Error(err),
			)
		}
	}

	g.router.Deliver(msg)
	outcome.State = StateDelivered

	g.logger.Info("message delivered",
		zap.String("message_id", msg.ID),
		zap.String("sender", msg.SenderID),
		zap.String("recipient", msg.RecipientID),
		zap.Float64("score", verdict.Score),
		zap.String("interpretation_tag", msg.InterpretationTag),
		zap.Int("spiral_grade", msg.SpiralGrade),
	)
	return outcome
}
