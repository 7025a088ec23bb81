package policy

import "testing"

func TestDefault_WeightsSumToOne(t *testing.T) {
	cfg := Default()
	sum := cfg.WeightAccuracy + cfg.WeightDepth + cfg.WeightClarity + cfg.WeightRelevance
	if sum < 0.999 || sum > 1.001 {
		t.Errorf("weights sum = %.4f, want 1.0", sum)
	}
}

func TestDefault_Validates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default config failed validation: %v", err)
	}
}

func TestValidate_RejectsBadWeights(t *testing.T) {
	cfg := Default()
	cfg.WeightAccuracy = 0.5 // sum now 1.1
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for weights not summing to 1.0")
	}
}

func TestValidate_RejectsInvertedThresholds(t *testing.T) {
	cfg := Default()
	cfg.CriticalScore = 5.0 // above weak
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for critical threshold above weak threshold")
	}
}

func TestValidate_RejectsPerfectFallbackCeiling(t *testing.T) {
	cfg := Default()
	cfg.FallbackScoreCeiling = 10.0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for fallback ceiling at the evaluator maximum")
	}
}

func TestDifficulty_Ordering(t *testing.T) {
	if !(Easy < Medium && Medium < Hard) {
		t.Error("difficulty ordering broken")
	}
}

func TestParseDifficulty(t *testing.T) {
	for _, d := range []Difficulty{Easy, Medium, Hard} {
		got, err := ParseDifficulty(d.String())
		if err != nil {
			t.Fatalf("ParseDifficulty(%q): %v", d.String(), err)
		}
		if got != d {
			t.Errorf("ParseDifficulty(%q) = %v, want %v", d.String(), got, d)
		}
	}
	if _, err := ParseDifficulty("expert"); err == nil {
		t.Error("expected error for unknown difficulty")
	}
}
