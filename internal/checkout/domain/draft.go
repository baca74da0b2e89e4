package domain

import (
	"fmt"
	"regexp"
	"strings"
)

type Step int

const (
	StepShipping Step = iota + 1
	StepBilling
	StepPayment
	StepReview
)

func (s Step) String() string {
	switch s {
	case StepShipping:
		return "shipping"
	case StepBilling:
		return "billing"
	case StepPayment:
		return "payment"
	case StepReview:
		return "review"
	default:
		return "unknown"
	}
}

type Address struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Address2  string `json:"address2"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
}

type PaymentMethod string

const (
	MethodCredit PaymentMethod = "credit"
	MethodPayPal PaymentMethod = "paypal"
	MethodApple  PaymentMethod = "apple"
)

type Payment struct {
	Method     PaymentMethod `json:"method"`
	CardNumber string        `json:"cardNumber"`
	CardName   string        `json:"cardName"`
	CardExpiry string        `json:"cardExpiry"`
	CardCVV    string        `json:"cardCVV"`
}

// Draft is the wizard's working state: step index plus per-step field
// sets. It lives in memory only and is discarded after a successful
// order.
type Draft struct {
	ID                    string
	Step                  Step
	Shipping              Address
	Billing               Address
	BillingSameAsShipping bool
	Payment               Payment
	TermsAccepted         bool
}

func NewDraft(id string) *Draft {
	return &Draft{ID: id, Step: StepShipping}
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError blocks a step transition; it carries one message per
// invalid field.
type ValidationError struct {
	Step   Step
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s step: %d invalid field(s)", e.Step, len(e.Fields))
}

var (
	emailRe  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	zipRe    = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	expiryRe = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
)

const (
	msgRequired = "This field is required"
	msgEmail    = "Please enter a valid email address"
	msgZip      = "Please enter a valid ZIP code"
	msgExpiry   = "Please enter a valid expiry date (MM/YY)"
)

// Apply merges raw field values into the draft's active step. Unknown
// fields are ignored.
func (d *Draft) Apply(fields map[string]string) {
	switch d.Step {
	case StepShipping:
		applyAddress(&d.Shipping, fields)
	case StepBilling:
		if v, ok := fields["sameAsShipping"]; ok {
			d.BillingSameAsShipping = v == "true" || v == "1"
		}
		if d.BillingSameAsShipping {
			d.Billing = d.Shipping
		} else {
			applyAddress(&d.Billing, fields)
		}
	case StepPayment:
		if v, ok := fields["method"]; ok {
			d.Payment.Method = PaymentMethod(v)
		}
		if v, ok := fields["cardNumber"]; ok {
			d.Payment.CardNumber = FormatCardNumber(v)
		}
		if v, ok := fields["cardName"]; ok {
			d.Payment.CardName = v
		}
		if v, ok := fields["cardExpiry"]; ok {
			d.Payment.CardExpiry = FormatCardExpiry(v)
		}
		if v, ok := fields["cardCVV"]; ok {
			d.Payment.CardCVV = v
		}
	}
}

func applyAddress(a *Address, fields map[string]string) {
	set := func(dst *string, key string) {
		if v, ok := fields[key]; ok {
			*dst = strings.TrimSpace(v)
		}
	}
	set(&a.FirstName, "firstName")
	set(&a.LastName, "lastName")
	set(&a.Email, "email")
	set(&a.Phone, "phone")
	set(&a.Address, "address")
	set(&a.Address2, "address2")
	set(&a.City, "city")
	set(&a.State, "state")
	set(&a.Zip, "zip")
}

// ValidateStep checks the active step's required fields and formats. A
// nil return permits the next transition.
func (d *Draft) ValidateStep() *ValidationError {
	var fields []FieldError

	switch d.Step {
	case StepShipping:
		fields = validateAddress(d.Shipping, true)
	case StepBilling:
		if !d.BillingSameAsShipping {
			fields = validateAddress(d.Billing, false)
		}
	case StepPayment:
		fields = d.validatePayment()
	case StepReview:
		// Confirmation requirements (terms, non-empty cart) are
		// enforced at order placement.
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Step: d.Step, Fields: fields}
}

func validateAddress(a Address, withEmail bool) []FieldError {
	var errs []FieldError
	require := func(field, value string) {
		if strings.TrimSpace(value) == "" {
			errs = append(errs, FieldError{Field: field, Message: msgRequired})
		}
	}

	require("firstName", a.FirstName)
	require("lastName", a.LastName)
	if withEmail {
		if strings.TrimSpace(a.Email) == "" {
			errs = append(errs, FieldError{Field: "email", Message: msgRequired})
		} else if !emailRe.MatchString(a.Email) {
			errs = append(errs, FieldError{Field: "email", Message: msgEmail})
		}
	}
	require("address", a.Address)
	require("city", a.City)
	require("state", a.State)
	if strings.TrimSpace(a.Zip) == "" {
		errs = append(errs, FieldError{Field: "zip", Message: msgRequired})
	} else if !zipRe.MatchString(a.Zip) {
		errs = append(errs, FieldError{Field: "zip", Message: msgZip})
	}

	return errs
}

func (d *Draft) validatePayment() []FieldError {
	var errs []FieldError

	switch d.Payment.Method {
	case MethodCredit:
		if digitsOnly(d.Payment.CardNumber) == "" {
			errs = append(errs, FieldError{Field: "cardNumber", Message: msgRequired})
		}
		if strings.TrimSpace(d.Payment.CardName) == "" {
			errs = append(errs, FieldError{Field: "cardName", Message: msgRequired})
		}
		if strings.TrimSpace(d.Payment.CardExpiry) == "" {
			errs = append(errs, FieldError{Field: "cardExpiry", Message: msgRequired})
		} else if !expiryRe.MatchString(d.Payment.CardExpiry) {
			errs = append(errs, FieldError{Field: "cardExpiry", Message: msgExpiry})
		}
		if strings.TrimSpace(d.Payment.CardCVV) == "" {
			errs = append(errs, FieldError{Field: "cardCVV", Message: msgRequired})
		}
	case MethodPayPal, MethodApple:
		// External wallet; nothing to collect here.
	default:
		errs = append(errs, FieldError{Field: "method", Message: msgRequired})
	}

	return errs
}

// FormatCardNumber strips non-digits and regroups into blocks of four.
func FormatCardNumber(s string) string {
	digits := digitsOnly(s)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FormatCardExpiry strips non-digits and inserts the MM/YY separator.
func FormatCardExpiry(s string) string {
	digits := digitsOnly(s)
	if len(digits) <= 2 {
		return digits
	}
	if len(digits) > 4 {
		digits = digits[:4]
	}
	return digits[:2] + "/" + digits[2:]
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
