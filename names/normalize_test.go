package names

import (
	"reflect"
	"testing"
)

func TestClean(t *testing.T) {
	tests := []struct {
		in         string
		want       string
		wantTokens int
	}{
		{"John Smith", "John Smith", 2},
		{"Sanders 1991-2002", "Sanders", 1},
		{"Bernie Sanders 1991-2002", "Bernie Sanders", 2},
		{"J.R. Smith", "Smith", 1},
		{"J. R. Smith", "Smith", 1},
		{"John Lewis III", "John Lewis", 2},
		{"Hal Rogers IV", "Hal Rogers", 2},
		{"J.D. Vance 2022", "Vance", 1},
		{"", "", 0},
		// Fully consumed inputs stop stripping rather than erroring.
		{"J.R.", "J.R", 1},
		{"1991-2002", "1991-2002", 1},
		{"III", "III", 1},
	}
	for _, tt := range tests {
		got, tokens := Clean(tt.in)
		if got != tt.want || tokens != tt.wantTokens {
			t.Errorf("Clean(%q) = (%q, %d), want (%q, %d)", tt.in, got, tokens, tt.want, tt.wantTokens)
		}
	}
}

func TestFoldLower(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Raúl Grijalva", "raul grijalva"},
		{"Luján", "lujan"},
		{"Smith", "smith"},
	}
	for _, tt := range tests {
		if got := FoldLower(tt.in); got != tt.want {
			t.Errorf("FoldLower(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSurnameSegments(t *testing.T) {
	got := SurnameSegments("ocasio-cortez")
	want := []string{"ocasio", "ocasiocortez", "cortez"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SurnameSegments = %v, want %v", got, want)
	}

	plain := SurnameSegments("smith")
	if !reflect.DeepEqual(plain, []string{"smith"}) {
		t.Errorf("SurnameSegments(smith) = %v", plain)
	}
}

func TestNicknameVariants(t *testing.T) {
	n := DefaultNicknames()

	v := n.Variants("Bob")
	if _, ok := v["robert"]; !ok {
		t.Fatalf("Variants(Bob) missing robert: %v", v)
	}
	if _, ok := v["bob"]; !ok {
		t.Fatalf("Variants(Bob) missing bob itself: %v", v)
	}

	// Two-letter forms are filtered out.
	for got := range n.Variants("Albert") {
		if len(got) < 3 {
			t.Errorf("Variants(Albert) contains short form %q", got)
		}
	}

	// Thomas and Tom share a variant set member.
	a, b := n.Variants("Thomas"), n.Variants("Tom")
	shared := false
	for k := range a {
		if _, ok := b[k]; ok {
			shared = true
			break
		}
	}
	if !shared {
		t.Error("Variants(Thomas) and Variants(Tom) do not overlap")
	}
}
