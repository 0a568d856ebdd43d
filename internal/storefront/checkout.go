package storefront

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"plugshop/internal/domain/cartsettings"
)

type Step int

const (
	StepCart Step = iota + 1
	StepService
	StepCustomer
	StepSummary
)

func (s Step) String() string {
	switch s {
	case StepCart:
		return "cart"
	case StepService:
		return "service"
	case StepCustomer:
		return "customer"
	case StepSummary:
		return "summary"
	}
	return "unknown"
}

var (
	ErrUnknownService  = errors.New("service not offered")
	ErrUnknownTimeSlot = errors.New("time slot not offered by the selected service")
	ErrUnknownPayment  = errors.New("payment method not offered")
)

type CustomerInfo struct {
	FirstName         string `json:"firstName"`
	LastName          string `json:"lastName"`
	Phone             string `json:"phone"`
	Address           string `json:"address"`
	AddressComplement string `json:"addressComplement"`
}

// CheckoutState is a snapshot of everything the customer entered so far.
type CheckoutState struct {
	Step      Step
	ServiceID string
	TimeSlot  string
	PaymentID string
	Customer  CustomerInfo
}

// Wizard walks the customer through cart, service, contact details and
// summary. Steps only move one at a time; a Next whose guard fails does
// nothing, and CanNext tells the caller why the button should be disabled.
type Wizard struct {
	cart     *Cart
	settings *cartsettings.Settings
	state    CheckoutState
}

func NewWizard(cart *Cart, settings *cartsettings.Settings) *Wizard {
	if settings == nil {
		settings = cartsettings.Default()
	}
	return &Wizard{
		cart:     cart,
		settings: settings,
		state:    CheckoutState{Step: StepCart},
	}
}

// SetSettings swaps the cart settings, e.g. after a refresh. Selections are
// kept even if they are no longer offered; the guards re-check them.
func (w *Wizard) SetSettings(s *cartsettings.Settings) {
	if s == nil {
		s = cartsettings.Default()
	}
	w.settings = s
}

func (w *Wizard) Settings() *cartsettings.Settings { return w.settings }

func (w *Wizard) Step() Step { return w.state.Step }

func (w *Wizard) State() CheckoutState { return w.state }

// SelectService picks an enabled service and clears the time slot.
func (w *Wizard) SelectService(id string) error {
	svc, ok := w.settings.Service(id)
	if !ok || !svc.Enabled {
		return ErrUnknownService
	}
	w.state.ServiceID = svc.ID
	w.state.TimeSlot = ""
	return nil
}

// SelectTimeSlot picks one of the selected service's slots by value.
func (w *Wizard) SelectTimeSlot(value string) error {
	svc, ok := w.Service()
	if !ok || !svc.HasSlot(value) {
		return ErrUnknownTimeSlot
	}
	w.state.TimeSlot = value
	return nil
}

func (w *Wizard) SelectPayment(id string) error {
	pm, ok := w.settings.Payment(id)
	if !ok || !pm.Enabled {
		return ErrUnknownPayment
	}
	w.state.PaymentID = pm.ID
	return nil
}

func (w *Wizard) SetCustomer(info CustomerInfo) {
	w.state.Customer = info
}

// Service returns the selected service, if any.
func (w *Wizard) Service() (cartsettings.Service, bool) {
	if w.state.ServiceID == "" {
		return cartsettings.Service{}, false
	}
	return w.settings.Service(w.state.ServiceID)
}

func (w *Wizard) Payment() (cartsettings.PaymentMethod, bool) {
	if w.state.PaymentID == "" {
		return cartsettings.PaymentMethod{}, false
	}
	return w.settings.Payment(w.state.PaymentID)
}

// NeedsAddress reports whether step 3 asks for an address. Until a service is
// picked it assumes one is needed.
func (w *Wizard) NeedsAddress() bool {
	svc, ok := w.Service()
	return !ok || svc.NeedsAddress()
}

// CanNext reports whether Next would advance from the current step.
func (w *Wizard) CanNext() bool {
	switch w.state.Step {
	case StepCart:
		return !w.cart.IsEmpty()
	case StepService:
		svc, ok := w.Service()
		return ok && svc.Enabled && svc.HasSlot(w.state.TimeSlot)
	case StepCustomer:
		c := w.state.Customer
		if blank(c.FirstName) || blank(c.LastName) || blank(c.Phone) {
			return false
		}
		if pm, ok := w.Payment(); !ok || !pm.Enabled {
			return false
		}
		return !w.NeedsAddress() || !blank(c.Address)
	}
	return false
}

// Next advances one step when the current step is complete.
func (w *Wizard) Next() {
	if w.CanNext() {
		w.state.Step++
	}
}

// Back returns to the previous step without clearing anything.
func (w *Wizard) Back() {
	if w.state.Step > StepCart {
		w.state.Step--
	}
}

// Totals are the checkout totals, including the selected service's fee.
func (w *Wizard) Totals() Totals {
	fee := decimal.Zero
	if svc, ok := w.Service(); ok {
		fee = decimal.NewFromFloat(svc.Fee)
	}
	return w.cart.TotalsWithFee(fee)
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }
