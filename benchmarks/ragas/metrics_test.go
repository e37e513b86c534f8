// ABOUTME: Tests for deterministic RAGAS metric calculations
// ABOUTME: Covers faithfulness scoring, recall scoring, and pass/fail evaluation

package ragas

import "testing"

func TestCalculateFaithfulness(t *testing.T) {
	m := NewMetricsCalculator()

	tests := []struct {
		name      string
		answer    string
		expected  []string
		forbidden []string
		wantScore float64
	}{
		{
			name:      "perfect match",
			answer:    "The uptime guarantee is 99.9% per month.",
			expected:  []string{"99.9%"},
			forbidden: []string{"$5"},
			wantScore: 1.0,
		},
		{
			name:      "case insensitive",
			answer:    "data is encrypted with aes-256",
			expected:  []string{"AES-256"},
			wantScore: 1.0,
		},
		{
			name:      "missing expected item",
			answer:    "I don't know.",
			expected:  []string{"99.9%"},
			wantScore: 0.5,
		},
		{
			name:      "forbidden item present",
			answer:    "The SLA is 99.9% and plans start at $5.",
			expected:  []string{"99.9%"},
			forbidden: []string{"$5"},
			wantScore: 0.5,
		},
		{
			name:      "missing and forbidden",
			answer:    "Plans start at $5.",
			expected:  []string{"99.9%"},
			forbidden: []string{"$5"},
			wantScore: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, _ := m.CalculateFaithfulness(tt.answer, tt.expected, tt.forbidden)
			if score != tt.wantScore {
				t.Errorf("CalculateFaithfulness() = %.2f, want %.2f", score, tt.wantScore)
			}
		})
	}
}

func TestCalculateContextRecall(t *testing.T) {
	m := NewMetricsCalculator()

	tests := []struct {
		name      string
		cited     []string
		expected  []string
		wantScore float64
	}{
		{
			name:      "all expected cited",
			cited:     []string{"sla.txt", "pricing.txt"},
			expected:  []string{"sla.txt"},
			wantScore: 1.0,
		},
		{
			name:      "half cited",
			cited:     []string{"sla.txt"},
			expected:  []string{"sla.txt", "pricing.txt"},
			wantScore: 0.5,
		},
		{
			name:      "nothing cited",
			cited:     nil,
			expected:  []string{"sla.txt"},
			wantScore: 0.0,
		},
		{
			name:      "no expectations",
			cited:     nil,
			expected:  nil,
			wantScore: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, _ := m.CalculateContextRecall(tt.cited, tt.expected)
			if score != tt.wantScore {
				t.Errorf("CalculateContextRecall() = %.2f, want %.2f", score, tt.wantScore)
			}
		})
	}
}

func TestEvaluateScenario(t *testing.T) {
	m := NewMetricsCalculator()
	scenario := GetScenarioSLA()

	result := m.EvaluateScenario(scenario, "The guarantee is 99.9% uptime.", []string{"sla.txt"})
	if result.Status != "PASS" {
		t.Errorf("Status = %q, want PASS (overall %.2f)", result.Status, result.OverallScore)
	}
	if result.OverallScore != 1.0 {
		t.Errorf("OverallScore = %.2f, want 1.0", result.OverallScore)
	}

	result = m.EvaluateScenario(scenario, "No idea.", nil)
	if result.Status != "FAIL" {
		t.Errorf("Status = %q, want FAIL", result.Status)
	}
}
