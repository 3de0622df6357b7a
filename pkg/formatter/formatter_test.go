package formatter

import "testing"

func TestFormatNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-45000, "-45,000"},
	}

	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEscapeMarkdownV2(t *testing.T) {
	t.Parallel()

	got := EscapeMarkdownV2("c++ (v1.2) is_fun!")
	want := `c\+\+ \(v1\.2\) is\_fun\!`
	if got != want {
		t.Fatalf("EscapeMarkdownV2() = %q, want %q", got, want)
	}
}
