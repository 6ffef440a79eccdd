package validator

import "testing"

func TestPasswordRule(t *testing.T) {
	cases := []struct {
		password string
		valid    bool
	}{
		{"Str0ngpass", true},
		{"weakpass", false},
		{"SHOUTING1", false},
		{"NoDigitsHere", false},
		{"Sh0rt", false},
	}
	for _, tc := range cases {
		err := ValidatorInstance.ValidateValue(tc.password, "password")
		if (err == nil) != tc.valid {
			t.Errorf("password %q: valid = %v, want %v", tc.password, err == nil, tc.valid)
		}
	}
}

func TestValidateStruct(t *testing.T) {
	type payload struct {
		Email string `validate:"required,email"`
	}
	if errs := ValidatorInstance.ValidateStruct(payload{Email: "a@b.com"}); errs != nil {
		t.Fatalf("expected valid payload, got %v", *errs)
	}
	errs := ValidatorInstance.ValidateStruct(payload{Email: "not-an-email"})
	if errs == nil || len(*errs) != 1 {
		t.Fatalf("expected one validation error, got %v", errs)
	}
}
