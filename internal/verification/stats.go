package verification

import (
	"society-console-backend/internal/domain"
	"society-console-backend/internal/engine"
)

type CategoryProgress struct {
	Total      int     `json:"total"`
	Completed  int     `json:"completed"`
	Percentage float64 `json:"percentage"`
}

type Stats struct {
	Total                int                                              `json:"total"`
	Completed            int                                              `json:"completed"`
	InProgress           int                                              `json:"in_progress"`
	Pending              int                                              `json:"pending"`
	Rejected             int                                              `json:"rejected"`
	Required             int                                              `json:"required"`
	RequiredCompleted    int                                              `json:"required_completed"`
	CompletionPercentage int                                              `json:"completion_percentage"`
	CanActivate          bool                                             `json:"can_activate"`
	ByCategory           map[domain.VerificationCategory]CategoryProgress `json:"by_category"`
	ByPriority           map[domain.VerificationPriority]int              `json:"by_priority"`
}

// ComputeStats aggregates the checklist. Per-category percentages are
// category-scoped completion rates.
func ComputeStats(items []domain.VerificationItem) Stats {
	st := Stats{
		Total:      len(items),
		ByCategory: make(map[domain.VerificationCategory]CategoryProgress, len(domain.VerificationCategories)),
		ByPriority: map[domain.VerificationPriority]int{
			domain.PriorityHigh:   0,
			domain.PriorityMedium: 0,
			domain.PriorityLow:    0,
		},
	}
	for _, c := range domain.VerificationCategories {
		st.ByCategory[c] = CategoryProgress{}
	}

	for _, it := range items {
		cp := st.ByCategory[it.Category]
		cp.Total++
		switch it.Status {
		case domain.VerificationCompleted:
			st.Completed++
			cp.Completed++
		case domain.VerificationInProgress:
			st.InProgress++
		case domain.VerificationRejected:
			st.Rejected++
		default:
			st.Pending++
		}
		st.ByCategory[it.Category] = cp
		st.ByPriority[it.Priority]++
		if it.IsRequired {
			st.Required++
			if it.Status == domain.VerificationCompleted {
				st.RequiredCompleted++
			}
		}
	}

	for c, cp := range st.ByCategory {
		cp.Percentage = engine.Percentage(cp.Completed, cp.Total)
		st.ByCategory[c] = cp
	}
	st.CompletionPercentage = CompletionPercentage(items)
	st.CanActivate = st.Required == st.RequiredCompleted
	return st
}
