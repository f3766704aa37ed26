package theme

import "testing"

func TestByName(t *testing.T) {
	for _, th := range All {
		if got := ByName(th.Name); got.Name != th.Name {
			t.Errorf("ByName(%q) = %q", th.Name, got.Name)
		}
	}
	if got := ByName("no-such-theme"); got.Name != FlexokiDark.Name {
		t.Errorf("unknown theme = %q, want %q", got.Name, FlexokiDark.Name)
	}
}

func TestSetActive(t *testing.T) {
	defer SetActive(FlexokiDark.Name)

	SetActive("terminal")
	if Active.Name != "terminal" {
		t.Fatalf("Active = %q", Active.Name)
	}
	if Active.Signed(true) != Terminal.Gain || Active.Signed(false) != Terminal.Loss {
		t.Error("Signed should map to gain/loss colors")
	}
}
