package cartsettings

import "time"

type TimeSlot struct {
	Label string `json:"label" validate:"required"`
	Value string `json:"value" validate:"required"`
}

// Service is a fulfilment option (delivery, shipping, meetup) offered at
// checkout.
type Service struct {
	ID          string     `json:"id"`
	Name        string     `json:"name" validate:"required"`
	Label       string     `json:"label" validate:"required"`
	Description string     `json:"description"`
	Fee         float64    `json:"fee" validate:"gte=0"`
	Enabled     bool       `json:"enabled"`
	TimeSlots   []TimeSlot `json:"timeSlots" validate:"dive"`
	// RequiresAddress is nil for records written before the flag existed.
	RequiresAddress *bool      `json:"requiresAddress,omitempty"`
	CreatedAt       *time.Time `json:"createdAt,omitempty"`
	UpdatedAt       *time.Time `json:"updatedAt,omitempty"`
}

// NeedsAddress reports whether the customer must give a delivery address.
// Services that never set the flag require one.
func (s Service) NeedsAddress() bool {
	return s.RequiresAddress == nil || *s.RequiresAddress
}

// HasSlot reports whether value is one of the service's time slots.
func (s Service) HasSlot(value string) bool {
	for _, ts := range s.TimeSlots {
		if ts.Value == value {
			return true
		}
	}
	return false
}

type PaymentMethod struct {
	ID        string     `json:"id"`
	Label     string     `json:"label" validate:"required"`
	Enabled   bool       `json:"enabled"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

type ContactLink struct {
	ID       string   `json:"id"`
	Name     string   `json:"name" validate:"required"`
	Icon     string   `json:"icon" validate:"required"`
	URL      string   `json:"url" validate:"required,url"`
	Services []string `json:"services,omitempty"`
}

type AlertMessage struct {
	Text    string `json:"text"`
	Enabled bool   `json:"enabled"`
}

type ButtonColors struct {
	Continue          string `json:"continue"`
	Back              string `json:"back"`
	Promo             string `json:"promo"`
	Copy              string `json:"copy"`
	ClearCart         string `json:"clearCart"`
	SelectedSlot      string `json:"selectedSlot"`
	UnselectedSlot    string `json:"unselectedSlot"`
	SelectedPayment   string `json:"selectedPayment"`
	UnselectedPayment string `json:"unselectedPayment"`
}

type Settings struct {
	Services       []Service       `json:"services"`
	PaymentMethods []PaymentMethod `json:"paymentMethods"`
	PromoEnabled   bool            `json:"promoEnabled"`
	AlertMessage   *AlertMessage   `json:"alertMessage,omitempty"`
	ContactLinks   []ContactLink   `json:"contactLinks"`
	ButtonColors   ButtonColors    `json:"buttonColors"`
}

// Update is a partial write. Nil lists and pointers leave the stored value as is.
type Update struct {
	Services       []Service       `json:"services" validate:"omitempty,dive"`
	PaymentMethods []PaymentMethod `json:"paymentMethods" validate:"omitempty,dive"`
	PromoEnabled   *bool           `json:"promoEnabled"`
	AlertMessage   *AlertMessage   `json:"alertMessage"`
	ContactLinks   []ContactLink   `json:"contactLinks" validate:"omitempty,dive"`
	ButtonColors   *ButtonColors   `json:"buttonColors"`
}

func DefaultButtonColors() ButtonColors {
	return ButtonColors{
		Continue:          "#000000",
		Back:              "#666666",
		Promo:             "#000000",
		Copy:              "#000000",
		ClearCart:         "#ff0000",
		SelectedSlot:      "#000000",
		UnselectedSlot:    "#cccccc",
		SelectedPayment:   "#000000",
		UnselectedPayment: "#cccccc",
	}
}

// Default is what the storefront sees before an admin saves anything.
func Default() *Settings {
	return &Settings{
		Services:       []Service{},
		PaymentMethods: []PaymentMethod{},
		PromoEnabled:   true,
		ContactLinks:   []ContactLink{},
		ButtonColors:   DefaultButtonColors(),
	}
}

// EnabledServices returns the services a customer may pick, in configured order.
func (s *Settings) EnabledServices() []Service {
	out := make([]Service, 0, len(s.Services))
	for _, svc := range s.Services {
		if svc.Enabled {
			out = append(out, svc)
		}
	}
	return out
}

func (s *Settings) EnabledPayments() []PaymentMethod {
	out := make([]PaymentMethod, 0, len(s.PaymentMethods))
	for _, pm := range s.PaymentMethods {
		if pm.Enabled {
			out = append(out, pm)
		}
	}
	return out
}

func (s *Settings) Service(id string) (Service, bool) {
	for _, svc := range s.Services {
		if svc.ID == id {
			return svc, true
		}
	}
	return Service{}, false
}

func (s *Settings) Payment(id string) (PaymentMethod, bool) {
	for _, pm := range s.PaymentMethods {
		if pm.ID == id {
			return pm, true
		}
	}
	return PaymentMethod{}, false
}

// Merge applies u on top of s and returns the result; s is not modified.
func (s *Settings) Merge(u Update) *Settings {
	out := *s
	if u.Services != nil {
		out.Services = u.Services
	}
	if u.PaymentMethods != nil {
		out.PaymentMethods = u.PaymentMethods
	}
	if u.PromoEnabled != nil {
		out.PromoEnabled = *u.PromoEnabled
	}
	if u.AlertMessage != nil {
		am := *u.AlertMessage
		out.AlertMessage = &am
	}
	if u.ContactLinks != nil {
		out.ContactLinks = u.ContactLinks
	}
	if u.ButtonColors != nil {
		out.ButtonColors = *u.ButtonColors
	}
	return &out
}
