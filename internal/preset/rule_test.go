package preset

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseRule(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		want    Rule
		wantErr bool
	}{
		{
			name: "bare severity",
			in:   "error",
			want: Rule{Severity: Error},
		},
		{
			name: "numeric severity",
			in:   0,
			want: Rule{Severity: Off},
		},
		{
			name: "tuple with options",
			in:   []any{"error", "single"},
			want: Rule{Severity: Error, Options: []any{"single"}},
		},
		{
			name: "tuple with object option",
			in:   []any{"warn", map[string]any{"max": 2}},
			want: Rule{Severity: Warn, Options: []any{map[string]any{"max": 2}}},
		},
		{
			name: "tuple with severity only",
			in:   []any{"off"},
			want: Rule{Severity: Off},
		},
		{
			name:    "empty tuple",
			in:      []any{},
			wantErr: true,
		},
		{
			name:    "bad severity in tuple",
			in:      []any{"loud", "x"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRule(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRule: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseRule mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRuleValue(t *testing.T) {
	if got := (Rule{Severity: Warn}).Value(); got != "warn" {
		t.Errorf("Value() = %v, want %q", got, "warn")
	}

	r := Rule{Severity: Error, Options: []any{"always"}}
	want := []any{"error", "always"}
	if diff := cmp.Diff(want, r.Value()); diff != "" {
		t.Errorf("Value() mismatch (-want +got):\n%s", diff)
	}
}

func TestRuleJSON(t *testing.T) {
	var r Rule
	if err := json.Unmarshal([]byte(`["error", {"maximum": 3}]`), &r); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if r.Severity != Error {
		t.Errorf("Severity = %v, want error", r.Severity)
	}

	out, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(out) != `["error",{"maximum":3}]` {
		t.Errorf("Marshal = %s", out)
	}
	if r.String() != `error [{"maximum":3}]` {
		t.Errorf("String() = %q", r.String())
	}
}
