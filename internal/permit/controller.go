package permit

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/zaqiyusuf/gatepass/internal/api"
	"github.com/zaqiyusuf/gatepass/internal/domain"
	"github.com/zaqiyusuf/gatepass/internal/pricing"
)

var (
	// ErrDraftIncomplete indicates a required field is missing. Wrapped
	// errors name the field.
	ErrDraftIncomplete = errors.New("draft incomplete")

	// ErrSubmitInFlight indicates a submission is already running.
	ErrSubmitInFlight = errors.New("submission already in progress")
)

// Controller drives the four-step wizard over a single Draft and submits
// the assembled payload exactly once. Step transitions validate the current
// step's required fields before advancing, so a user can no longer reach
// the summary with an empty header.
type Controller struct {
	draft   *Draft
	step    Step
	backend api.PermitAPI
	rates   pricing.Rates

	submitting atomic.Bool
}

// NewController starts a wizard at the header step.
func NewController(draft *Draft, backend api.PermitAPI) *Controller {
	return &Controller{
		draft:   draft,
		step:    StepHeader,
		backend: backend,
		rates:   pricing.DefaultRates(),
	}
}

// Draft exposes the controller's draft to the step forms.
func (c *Controller) Draft() *Draft { return c.draft }

// Step returns the current wizard step.
func (c *Controller) Step() Step { return c.step }

// SetRates overrides the pricing rates used for the summary total.
func (c *Controller) SetRates(r pricing.Rates) { c.rates = r }

// Advance validates the current step and moves forward. At the summary it
// is a no-op: the step never leaves the four-step range.
func (c *Controller) Advance() error {
	if err := c.validateStep(c.step); err != nil {
		return err
	}
	if c.step < StepSummary {
		c.step++
	}
	return nil
}

// Back moves to the previous step, clamped at the header.
func (c *Controller) Back() {
	if c.step > StepHeader {
		c.step--
	}
}

// validateStep checks the fields a step must have before the user leaves it.
// Vehicle and personnel lists may be empty; emptiness never blocks.
func (c *Controller) validateStep(s Step) error {
	if s != StepHeader {
		return nil
	}
	switch {
	case c.draft.DocumentNumber == "":
		return fmt.Errorf("%w: document number is required", ErrDraftIncomplete)
	case c.draft.TenantID == "":
		return fmt.Errorf("%w: tenant is required", ErrDraftIncomplete)
	case c.draft.CustomerID == "":
		return fmt.Errorf("%w: customer is required", ErrDraftIncomplete)
	}
	return nil
}

// Total returns the display-only permit total for the current draft.
func (c *Controller) Total() int {
	return c.rates.Total(len(c.draft.Personnel))
}

// CanSubmit reports whether the wizard has reached the summary step.
func (c *Controller) CanSubmit() bool { return c.step == StepSummary }

// Submit sends the assembled payload. The precondition is re-checked here:
// a missing document number or tenant aborts with no network call. Editing
// drafts update with their id; new drafts create without one. A second
// Submit while one is running returns ErrSubmitInFlight.
func (c *Controller) Submit(ctx context.Context) (*domain.EntryPermit, error) {
	if c.draft.DocumentNumber == "" {
		return nil, fmt.Errorf("%w: document number is required", ErrDraftIncomplete)
	}
	if c.draft.TenantID == "" {
		return nil, fmt.Errorf("%w: tenant is required", ErrDraftIncomplete)
	}

	if !c.submitting.CompareAndSwap(false, true) {
		return nil, ErrSubmitInFlight
	}
	defer c.submitting.Store(false)

	payload := c.draft.Payload()
	if c.draft.IsEdit() {
		return c.backend.UpdatePermit(ctx, payload)
	}
	payload.ID = ""
	return c.backend.CreatePermit(ctx, payload)
}
