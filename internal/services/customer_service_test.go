package services

import "testing"

func TestValidatePhoneNumberAccepts(t *testing.T) {
	for _, phone := range []string{
		"01012345678",
		"01198765432",
		"01200000000",
		"01555555555",
	} {
		if err := ValidatePhoneNumber(phone); err != nil {
			t.Fatalf("ValidatePhoneNumber(%q) = %v, want nil", phone, err)
		}
	}
}

func TestValidatePhoneNumberRejects(t *testing.T) {
	cases := map[string]string{
		"0101234567":   "too short",
		"010123456789": "too long",
		"01312345678":  "bad prefix",
		"02012345678":  "landline prefix",
		"0101234567a":  "non-digit",
		"":             "empty",
	}
	for phone, why := range cases {
		if err := ValidatePhoneNumber(phone); err == nil {
			t.Fatalf("ValidatePhoneNumber(%q) accepted (%s)", phone, why)
		}
	}
}
