package langid

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "english",
			text: "It was the best of times and the worst of times, there was wisdom and there was foolishness.",
			want: "en",
		},
		{
			name: "german",
			text: "Es war einmal ein Mann, der hatte nicht viel, und die Frau war auch nicht reich, aber sie waren glücklich.",
			want: "de",
		},
		{
			name: "spanish",
			text: "En un lugar de la Mancha, de cuyo nombre no quiero acordarme, vivía un hidalgo de los de lanza en astillero.",
			want: "es",
		},
		{
			name: "french",
			text: "Nous sommes partis vers le village, et les enfants qui ne voulaient pas rester sont venus avec nous.",
			want: "fr",
		},
	}

	for _, tt := range tests {
		if got := Detect(tt.text); got != tt.want {
			t.Errorf("%s: Detect = %q, want %q", tt.name, got, tt.want)
		}
	}
}

// An empty text scores zero everywhere; the first language in the table
// wins so the result is stable.
func TestDetect_EmptyTextIsDeterministic(t *testing.T) {
	if got := Detect(""); got != "de" {
		t.Errorf("Detect(\"\") = %q, want deterministic first table entry %q", got, "de")
	}
}

func TestSupported(t *testing.T) {
	for _, code := range []string{"en", "de", "es", "fr"} {
		if !Supported(code) {
			t.Errorf("Supported(%q) = false, want true", code)
		}
	}
	for _, code := range []string{"it", "ru", ""} {
		if Supported(code) {
			t.Errorf("Supported(%q) = true, want false", code)
		}
	}
}
