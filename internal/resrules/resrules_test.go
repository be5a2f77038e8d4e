package resrules

import "testing"

func TestRuleText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Rule
		err   bool
	}{
		{name: "code", input: "RES010", want: AccessedWithoutCheck()},
		{name: "lowercase code", input: "res030", want: UnusedUnchecked()},
		{name: "name", input: "AbortInFallibleContext", want: AbortInFallibleContext()},
		{name: "padded", input: "  RES021 ", want: AccessedOnOkPath()},
		{name: "unknown", input: "RES999", err: true},
		{name: "empty", input: "", err: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Rule
			err := r.UnmarshalText([]byte(tt.input))
			if tt.err {
				if err == nil {
					t.Fatalf("expected error for %q, got rule %s", tt.input, r)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r != tt.want {
				t.Errorf("got %s, want %s", r, tt.want)
			}
		})
	}
}

func TestRuleString(t *testing.T) {
	if got := AccessedOnNotOkPath().String(); got != "RES020: AccessedOnNotOkPath" {
		t.Errorf("unexpected string %q", got)
	}
	if got := Rule(100).String(); got != "rule-unknown(100)" {
		t.Errorf("unexpected string for unknown rule %q", got)
	}
	for _, r := range All() {
		if r.Description() == "" {
			t.Errorf("rule %s has no description", r)
		}
	}
}
