// ABOUTME: Test scenario data for RAGAS benchmarks over a fixed document corpus
// ABOUTME: Defines question turns, expected answer content, and retrieval ground truth

package ragas

import "github.com/acmecloud/askdocs/internal/models"

// Scenario represents a complete RAGAS benchmark test.
type Scenario struct {
	ID          string
	Name        string
	Description string
	Documents   []models.Document
	Turns       []QuestionTurn
	GroundTruth GroundTruth
}

// QuestionTurn represents a single question in a test conversation.
type QuestionTurn struct {
	TurnNumber int
	Question   string
}

// GroundTruth defines expected outcomes for RAGAS evaluation.
type GroundTruth struct {
	// Expected answer for the final query turn
	FinalQueryTurn      int
	ExpectedInResponse  []string // Strings that MUST appear in the answer
	ForbiddenInResponse []string // Strings that MUST NOT appear in the answer

	// Retrieval expectations
	ExpectedSources []string // Documents the answer should cite
}

// Result represents the outcome of a benchmark test.
type Result struct {
	TestID             string         `json:"test_id"`
	TestName           string         `json:"test_name"`
	FaithfulnessScore  float64        `json:"faithfulness_score"`
	ContextRecallScore float64        `json:"context_recall_score"`
	OverallScore       float64        `json:"overall_score"`
	Status             string         `json:"status"` // "PASS" or "FAIL"
	Details            map[string]any `json:"details,omitempty"`
}

// corpus is the shared document set used by all scenarios.
var corpus = []models.Document{
	{
		Source: "sla.txt",
		Text: "AcmeCloud Service Level Agreement. The object storage service " +
			"guarantees 99.9% monthly uptime. If uptime falls below 99.9%, " +
			"customers receive a 10% service credit. If uptime falls below " +
			"99.0%, the credit increases to 25%. Credits are applied to the " +
			"next billing cycle automatically.",
	},
	{
		Source: "pricing.txt",
		Text: "AcmeCloud Pricing. The Starter plan costs $5 per month and " +
			"includes 100 GB of storage. The Business plan costs $50 per month " +
			"and includes 2 TB of storage plus priority support. Egress traffic " +
			"is billed at $0.01 per GB on all plans.",
	},
	{
		Source: "security.txt",
		Text: "AcmeCloud Security Overview. All data is encrypted at rest with " +
			"AES-256 and in transit with TLS 1.3. Access keys can be rotated at " +
			"any time from the console. Keys are never stored in plaintext.",
	},
}

// GetScenarioSLA returns the uptime guarantee scenario.
func GetScenarioSLA() Scenario {
	return Scenario{
		ID:          "sla",
		Name:        "SLA uptime question",
		Description: "A single question whose answer lives entirely in sla.txt.",
		Documents:   corpus,
		Turns: []QuestionTurn{
			{TurnNumber: 1, Question: "What uptime does the object storage service guarantee?"},
		},
		GroundTruth: GroundTruth{
			FinalQueryTurn:      1,
			ExpectedInResponse:  []string{"99.9%"},
			ForbiddenInResponse: []string{"$5", "AES-256"},
			ExpectedSources:     []string{"sla.txt"},
		},
	}
}

// GetScenarioPricing returns the plan comparison scenario.
func GetScenarioPricing() Scenario {
	return Scenario{
		ID:          "pricing",
		Name:        "Plan pricing question",
		Description: "Answer must combine both plan prices from pricing.txt.",
		Documents:   corpus,
		Turns: []QuestionTurn{
			{TurnNumber: 1, Question: "How much do the Starter and Business plans cost?"},
		},
		GroundTruth: GroundTruth{
			FinalQueryTurn:      1,
			ExpectedInResponse:  []string{"$5", "$50"},
			ForbiddenInResponse: []string{"99.9%"},
			ExpectedSources:     []string{"pricing.txt"},
		},
	}
}

// GetScenarioFollowUp returns the conversational follow-up scenario. The
// second question only makes sense with the first turn in session memory.
func GetScenarioFollowUp() Scenario {
	return Scenario{
		ID:          "followup",
		Name:        "Conversational follow-up",
		Description: "A follow-up question that relies on session memory to resolve 'it'.",
		Documents:   corpus,
		Turns: []QuestionTurn{
			{TurnNumber: 1, Question: "What is the monthly uptime guarantee?"},
			{TurnNumber: 2, Question: "And what happens if it is not met?"},
		},
		GroundTruth: GroundTruth{
			FinalQueryTurn:      2,
			ExpectedInResponse:  []string{"credit"},
			ForbiddenInResponse: []string{"TLS 1.3"},
			ExpectedSources:     []string{"sla.txt"},
		},
	}
}

// AllScenarios returns every benchmark scenario in run order.
func AllScenarios() []Scenario {
	return []Scenario{
		GetScenarioSLA(),
		GetScenarioPricing(),
		GetScenarioFollowUp(),
	}
}
