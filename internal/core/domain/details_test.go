package domain

import "testing"

func TestDetailsAliasResolution(t *testing.T) {
	tests := []struct {
		name    string
		details Details
		keys    []string
		want    float64
		wantOK  bool
	}{
		{
			name:    "snake_case present",
			details: Details{"missed_percentage": 5.0},
			keys:    []string{"missed_percentage"},
			want:    5.0,
			wantOK:  true,
		},
		{
			name:    "camelCase fallback",
			details: Details{"missedPercentage": 5.0},
			keys:    []string{"missed_percentage"},
			want:    5.0,
			wantOK:  true,
		},
		{
			name:    "first alias wins",
			details: Details{"missed_percentage": 5.0, "missedPercentage": 9.0},
			keys:    []string{"missed_percentage"},
			want:    5.0,
			wantOK:  true,
		},
		{
			name:    "ordered alias list",
			details: Details{"pct": 7.0},
			keys:    []string{"missed_percentage", "pct"},
			want:    7.0,
			wantOK:  true,
		},
		{
			name:    "absent",
			details: Details{"other": 1.0},
			keys:    []string{"missed_percentage"},
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.details.Float(tt.keys...)
			if ok != tt.wantOK {
				t.Fatalf("expected ok=%v, got %v", tt.wantOK, ok)
			}
			if ok && got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestDetailsFloatCoercion(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		want   float64
		wantOK bool
	}{
		{name: "float64", value: 3.5, want: 3.5, wantOK: true},
		{name: "int", value: 3, want: 3.0, wantOK: true},
		{name: "numeric string", value: "3.5", want: 3.5, wantOK: true},
		{name: "integer string", value: "1000000", want: 1000000.0, wantOK: true},
		{name: "garbage string", value: "abc", wantOK: false},
		{name: "nil", value: nil, wantOK: false},
		{name: "bool", value: true, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Details{"v": tt.value}
			got, ok := d.Float("v")
			if ok != tt.wantOK {
				t.Fatalf("expected ok=%v, got %v", tt.wantOK, ok)
			}
			if ok && got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestDetailsInt(t *testing.T) {
	d := Details{"weight": "12345678901234", "epochIndex": 7.0}

	if got, ok := d.Int("weight"); !ok || got != 12345678901234 {
		t.Errorf("expected 12345678901234, got %d (ok=%v)", got, ok)
	}
	// camelCase fallback plus float truncation
	if got, ok := d.Int("epoch_index"); !ok || got != 7 {
		t.Errorf("expected 7, got %d (ok=%v)", got, ok)
	}
	if _, ok := d.Int("missing"); ok {
		t.Error("expected ok=false for missing key")
	}
}

func TestDetailsStr(t *testing.T) {
	d := Details{"host": "gpu-01", "id": ""}

	if got := d.StrOr("unknown-host", "host"); got != "gpu-01" {
		t.Errorf("expected gpu-01, got %s", got)
	}
	// Empty string falls back to the default
	if got := d.StrOr("fallback", "id"); got != "fallback" {
		t.Errorf("expected fallback, got %s", got)
	}
	if got := d.Str("missing"); got != "" {
		t.Errorf("expected empty string, got %s", got)
	}
}

func TestDetailsMapAndSlice(t *testing.T) {
	d := Details{
		"epochGroupData": map[string]any{
			"validation_weights": []any{map[string]any{"weight": 1.0}},
		},
	}

	block, ok := d.Map("epoch_group_data")
	if !ok {
		t.Fatal("expected nested block under camelCase alias")
	}
	entries, ok := block.Slice("validation_weights")
	if !ok || len(entries) != 1 {
		t.Fatalf("expected 1 validation weight entry, got %d (ok=%v)", len(entries), ok)
	}
}
