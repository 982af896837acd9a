package entity

type InsightType string

const (
	InsightPrediction     InsightType = "prediction"
	InsightRecommendation InsightType = "recommendation"
	InsightAlert          InsightType = "alert"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// AIInsight is generated elsewhere and only ever read by the CRM.
type AIInsight struct {
	ID          string      `json:"id"`
	Type        InsightType `json:"type"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Confidence  int         `json:"confidence"` // 0-100
	Priority    Priority    `json:"priority"`
	CreatedAt   string      `json:"created_at"`
}
