package services

import (
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/status"
)

// TransitionRequest asks for one machine of an order to reach Target.
type TransitionRequest struct {
	Machine status.Machine
	Target  status.State
	Details order.TransitionDetails
	Actor   order.Actor
}

// TransitionEngine plans state changes. It never guesses a target and never
// touches the aggregate it is given: the plan is a proposed copy that the
// caller persists or discards.
type TransitionEngine struct {
	rules ConsistencyRules
}

func NewTransitionEngine(rules ConsistencyRules) TransitionEngine {
	return TransitionEngine{rules: rules}
}

// IsNoOp reports whether the requested machine already is in the target state.
func (e TransitionEngine) IsNoOp(current *order.Order, req TransitionRequest) bool {
	s := current.StateOf(req.Machine)
	return s != nil && req.Target != nil && s == req.Target
}

// Plan returns the proposed aggregate with the change, its cascades and its
// pending events applied. It fails with IllegalTransitionError when the edge
// is not in the machine's graph and with ConsistencyViolationError when the
// proposed aggregate breaks a rule.
func (e TransitionEngine) Plan(current *order.Order, req TransitionRequest, now time.Time) (*order.Order, error) {
	if err := current.Validate(); err != nil {
		return nil, err
	}

	proposed := current.Clone()
	if err := proposed.Transition(req.Machine, req.Target, req.Details, req.Actor, now); err != nil {
		return nil, err
	}
	if err := e.rules.Evaluate(proposed); err != nil {
		return nil, err
	}
	return proposed, nil
}

// Verify evaluates the consistency rules against an aggregate changed outside
// of Plan, such as after attaching a payment.
func (e TransitionEngine) Verify(o *order.Order) error {
	return e.rules.Evaluate(o)
}
