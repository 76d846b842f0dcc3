package test

import (
	"testing"

	"personhood-verifier/pkg/reasoncodes"
)

func TestTransientReasonCodes(t *testing.T) {
	tests := []struct {
		code      reasoncodes.ReasonCode
		transient bool
	}{
		{reasoncodes.StaleRoot, true},
		{reasoncodes.Timeout, true},
		{reasoncodes.Unavailable, true},
		{reasoncodes.MalformedRequest, false},
		{reasoncodes.InvalidProof, false},
		{reasoncodes.AlreadyConsumed, false},
		{reasoncodes.ErrUnmarshal, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := tt.code.Transient(); got != tt.transient {
				t.Errorf("Expected Transient() to be %t for %s", tt.transient, tt.code)
			}
		})
	}
}
