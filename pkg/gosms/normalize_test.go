package gosms

import "testing"

func TestNormalizeSMS(t *testing.T) {
	got, err := NormalizeSMS("+1 801 555 0100")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "+18015550100" {
		t.Errorf("normalized = %q, want +18015550100", got)
	}
}

func TestNormalizeSMSRejectsMissingPlus(t *testing.T) {
	if _, err := NormalizeSMS("8015550100"); err == nil {
		t.Error("expected error for number without +")
	}
}

func TestNormalizeSMSRejectsEmpty(t *testing.T) {
	if _, err := NormalizeSMS(""); err == nil {
		t.Error("expected error for empty number")
	}
}
