package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseClockDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		want   float64
		wantOK bool
	}{
		{name: "hours minutes seconds", input: "1:02:30", want: 62.5, wantOK: true},
		{name: "zero hours", input: "0:05:15", want: 5.25, wantOK: true},
		{name: "minutes seconds", input: "4:13", want: 4 + 13.0/60, wantOK: true},
		{name: "long video", input: "12:00:00", want: 720, wantOK: true},
		{name: "padded parts", input: " 3: 07 ", want: 3 + 7.0/60, wantOK: true},
		{name: "seconds over sixty are kept", input: "0:90", want: 1.5, wantOK: true},
		{name: "letters", input: "abc", wantOK: false},
		{name: "four parts", input: "1:2:3:4", wantOK: false},
		{name: "single number", input: "42", wantOK: false},
		{name: "empty", input: "", wantOK: false},
		{name: "missing marker", input: "NaN", wantOK: false},
		{name: "empty part", input: "1::30", wantOK: false},
		{name: "fractional seconds", input: "1:30.5", wantOK: false},
		{name: "just a colon", input: ":", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := ParseClockDuration(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseClockDuration_ExactArithmetic(t *testing.T) {
	t.Parallel()

	for h := 0; h < 4; h++ {
		for m := 0; m < 60; m += 7 {
			for s := 0; s < 60; s += 11 {
				got, ok := ParseClockDuration(formatClock(h, m, s))
				assert.True(t, ok)
				assert.Equal(t, float64(h*60+m)+float64(s)/60, got)

				got, ok = ParseClockDuration(formatClock(-1, m, s))
				assert.True(t, ok)
				assert.Equal(t, float64(m)+float64(s)/60, got)
			}
		}
	}
}

func TestParseISODuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		want   float64
		wantOK bool
	}{
		{name: "minutes and seconds", input: "PT5M30S", want: 5.5, wantOK: true},
		{name: "hours minutes seconds", input: "PT1H2M30S", want: 62.5, wantOK: true},
		{name: "seconds only", input: "PT45S", want: 0.75, wantOK: true},
		{name: "hours only", input: "PT2H", want: 120, wantOK: true},
		{name: "default zero", input: "PT0M0S", want: 0, wantOK: true},
		{name: "days and hours", input: "P1DT2H", want: 26 * 60, wantOK: true},
		{name: "days only", input: "P1D", want: 24 * 60, wantOK: true},
		{name: "weeks", input: "P1W", want: 7 * 24 * 60, wantOK: true},
		{name: "fractional seconds", input: "PT1M30.5S", want: 1 + 30.5/60, wantOK: true},
		{name: "comma decimal", input: "PT0,5M", want: 0.5, wantOK: true},
		{name: "missing prefix", input: "5M30S", wantOK: false},
		{name: "empty", input: "", wantOK: false},
		{name: "bare P", input: "P", wantOK: false},
		{name: "bare PT", input: "PT", wantOK: false},
		{name: "years are not fixed length", input: "P1Y", wantOK: false},
		{name: "months are not fixed length", input: "P2M", wantOK: false},
		{name: "out of order", input: "PT30S5M", wantOK: false},
		{name: "repeated designator", input: "PT5M5M", wantOK: false},
		{name: "designator without number", input: "PTM", wantOK: false},
		{name: "number without designator", input: "PT5", wantOK: false},
		{name: "negative", input: "PT-5S", wantOK: false},
		{name: "trailing time designator", input: "P1DT", wantOK: false},
		{name: "leading minus", input: "-PT5M", wantOK: false},
		{name: "garbage", input: "abc", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := ParseISODuration(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

// formatClock renders h:mm:ss, or m:ss when h is negative.
func formatClock(h, m, s int) string {
	pad := func(n int) string {
		if n < 10 {
			return "0" + string(rune('0'+n))
		}
		return string(rune('0'+n/10)) + string(rune('0'+n%10))
	}
	if h < 0 {
		return pad(m) + ":" + pad(s)
	}
	return string(rune('0'+h)) + ":" + pad(m) + ":" + pad(s)
}
