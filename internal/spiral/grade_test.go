package spiral

import "testing"

func TestGrade(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{
			name: "empty text reads as full cycle",
			text: "",
			want: 360,
		},
		{
			name: "single letter",
			text: "A", // 65
			want: 65,
		},
		{
			name: "digits and punctuation are ignored",
			text: "A 123 !?",
			want: 65,
		},
		{
			name: "exact multiple of the cycle reads as 360",
			text: "ZZZZ", // 4 * 90
			want: 360,
		},
		{
			name: "sum wraps around the cycle",
			text: "ZZZZA", // 360 + 65
			want: 65,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Grade(tt.text); got != tt.want {
				t.Errorf("Grade(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestGrade_NeverZero(t *testing.T) {
	inputs := []string{"", "ZZZZ", "!!!", "Azilut", "אין סוף", "Tiqqun Olam"}
	for _, in := range inputs {
		got := Grade(in)
		if got < 1 || got > 360 {
			t.Errorf("Grade(%q) = %d, out of range [1, 360]", in, got)
		}
	}
}
