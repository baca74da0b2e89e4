package domain

import "testing"

func validShippingFields() map[string]string {
	return map[string]string{
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"email":     "ada@example.com",
		"address":   "1 Analytical Way",
		"city":      "London",
		"state":     "LN",
		"zip":       "12345",
	}
}

func TestValidateShipping(t *testing.T) {
	t.Run("complete address passes", func(t *testing.T) {
		d := NewDraft("d1")
		d.Apply(validShippingFields())
		if verr := d.ValidateStep(); verr != nil {
			t.Fatalf("expected valid, got %v (%+v)", verr, verr.Fields)
		}
	})

	t.Run("missing first name blocks with a single field error", func(t *testing.T) {
		d := NewDraft("d1")
		fields := validShippingFields()
		fields["firstName"] = "   "
		d.Apply(fields)

		verr := d.ValidateStep()
		if verr == nil {
			t.Fatal("expected a validation error")
		}
		if len(verr.Fields) != 1 || verr.Fields[0].Field != "firstName" {
			t.Fatalf("expected one firstName error, got %+v", verr.Fields)
		}
		if verr.Fields[0].Message != "This field is required" {
			t.Fatalf("message = %q", verr.Fields[0].Message)
		}
		if d.Step != StepShipping {
			t.Fatalf("step moved to %v", d.Step)
		}
	})

	t.Run("email format", func(t *testing.T) {
		for in, ok := range map[string]bool{
			"ada@example.com":  true,
			"a@b.co":           true,
			"no-at-sign":       false,
			"two@@signs.com":   false,
			"spaces in@it.com": false,
			"missing@tld":      false,
		} {
			d := NewDraft("d1")
			fields := validShippingFields()
			fields["email"] = in
			d.Apply(fields)
			verr := d.ValidateStep()
			if ok && verr != nil {
				t.Fatalf("email %q should pass, got %+v", in, verr.Fields)
			}
			if !ok && verr == nil {
				t.Fatalf("email %q should fail", in)
			}
		}
	})

	t.Run("zip format", func(t *testing.T) {
		for in, ok := range map[string]bool{
			"12345":      true,
			"12345-6789": true,
			"1234":       false,
			"123456":     false,
			"12345-67":   false,
			"abcde":      false,
		} {
			d := NewDraft("d1")
			fields := validShippingFields()
			fields["zip"] = in
			d.Apply(fields)
			verr := d.ValidateStep()
			if ok && verr != nil {
				t.Fatalf("zip %q should pass, got %+v", in, verr.Fields)
			}
			if !ok && verr == nil {
				t.Fatalf("zip %q should fail", in)
			}
		}
	})
}

func TestBillingStep(t *testing.T) {
	t.Run("same as shipping copies the address and passes", func(t *testing.T) {
		d := NewDraft("d1")
		d.Apply(validShippingFields())
		d.Step = StepBilling
		d.Apply(map[string]string{"sameAsShipping": "true"})

		if verr := d.ValidateStep(); verr != nil {
			t.Fatalf("expected valid, got %+v", verr.Fields)
		}
		if d.Billing.FirstName != "Ada" || d.Billing.Zip != "12345" {
			t.Fatalf("billing not copied: %+v", d.Billing)
		}
	})

	t.Run("separate billing needs its own fields but no email", func(t *testing.T) {
		d := NewDraft("d1")
		d.Step = StepBilling
		d.Apply(map[string]string{
			"sameAsShipping": "false",
			"firstName":      "Grace",
			"lastName":       "Hopper",
			"address":        "2 Compiler Rd",
			"city":           "Arlington",
			"state":          "VA",
			"zip":            "22201",
		})
		if verr := d.ValidateStep(); verr != nil {
			t.Fatalf("expected valid without email, got %+v", verr.Fields)
		}
	})
}

func TestPaymentStep(t *testing.T) {
	t.Run("credit card requires all card fields", func(t *testing.T) {
		d := NewDraft("d1")
		d.Step = StepPayment
		d.Apply(map[string]string{"method": "credit"})

		verr := d.ValidateStep()
		if verr == nil {
			t.Fatal("expected a validation error")
		}
		if len(verr.Fields) != 4 {
			t.Fatalf("expected 4 missing card fields, got %+v", verr.Fields)
		}
	})

	t.Run("complete credit card passes", func(t *testing.T) {
		d := NewDraft("d1")
		d.Step = StepPayment
		d.Apply(map[string]string{
			"method":     "credit",
			"cardNumber": "4111111111111111",
			"cardName":   "Ada Lovelace",
			"cardExpiry": "12/27",
			"cardCVV":    "123",
		})
		if verr := d.ValidateStep(); verr != nil {
			t.Fatalf("expected valid, got %+v", verr.Fields)
		}
	})

	t.Run("wallet methods need no card data", func(t *testing.T) {
		d := NewDraft("d1")
		d.Step = StepPayment
		d.Apply(map[string]string{"method": "paypal"})
		if verr := d.ValidateStep(); verr != nil {
			t.Fatalf("expected valid, got %+v", verr.Fields)
		}
	})

	t.Run("unknown method is rejected", func(t *testing.T) {
		d := NewDraft("d1")
		d.Step = StepPayment
		d.Apply(map[string]string{"method": "barter"})
		verr := d.ValidateStep()
		if verr == nil || verr.Fields[0].Field != "method" {
			t.Fatalf("expected method error, got %+v", verr)
		}
	})

	t.Run("invalid expiry", func(t *testing.T) {
		for _, in := range []string{"13/25", "00/25", "1/25"} {
			d := NewDraft("d1")
			d.Step = StepPayment
			d.Payment = Payment{
				Method:     MethodCredit,
				CardNumber: "4111 1111 1111 1111",
				CardName:   "Ada",
				CardExpiry: in,
				CardCVV:    "123",
			}
			verr := d.ValidateStep()
			if verr == nil {
				t.Fatalf("expiry %q should fail", in)
			}
		}
	})
}

func TestFormatters(t *testing.T) {
	t.Run("card number groups of four", func(t *testing.T) {
		for in, want := range map[string]string{
			"4111111111111111":  "4111 1111 1111 1111",
			"4111-1111-1111":    "4111 1111 1111",
			"41 11":             "4111",
			"":                  "",
			"4a1b1c1d1e1f1g1h1": "4111 1111 1",
		} {
			if got := FormatCardNumber(in); got != want {
				t.Fatalf("FormatCardNumber(%q) = %q, want %q", in, got, want)
			}
		}
	})

	t.Run("expiry separator", func(t *testing.T) {
		for in, want := range map[string]string{
			"1227":   "12/27",
			"12/27":  "12/27",
			"12":     "12",
			"1":      "1",
			"122734": "12/27",
		} {
			if got := FormatCardExpiry(in); got != want {
				t.Fatalf("FormatCardExpiry(%q) = %q, want %q", in, got, want)
			}
		}
	})
}
