package indicator

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		name    string
		rsi     float64
		defined bool
		want    Status
	}{
		{"undefined", 0, false, StatusCalculating},
		{"oversold", 29.9, true, StatusOversold},
		{"boundary oversold is neutral", 30, true, StatusNeutral},
		{"neutral", 50, true, StatusNeutral},
		{"boundary overbought is neutral", 70, true, StatusNeutral},
		{"overbought", 70.1, true, StatusOverbought},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.rsi, tc.defined, DefaultOversold, DefaultOverbought)
			if got != tc.want {
				t.Errorf("Classify(%v, %v) = %s, want %s", tc.rsi, tc.defined, got, tc.want)
			}
		})
	}
}

func TestClassify_CustomThresholds(t *testing.T) {
	if got := Classify(15, true, 20, 80); got != StatusOversold {
		t.Errorf("expected Oversold, got %s", got)
	}
	if got := Classify(85, true, 20, 80); got != StatusOverbought {
		t.Errorf("expected Overbought, got %s", got)
	}
}
