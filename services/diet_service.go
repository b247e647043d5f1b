package services

import "ovacare/backend/models"

// NutritionSummary 是一天飲食紀錄的營養總和
type NutritionSummary struct {
	TotalCalories float64 `json:"total_calories"`
	TotalProtein  float64 `json:"total_protein"`
	TotalCarbs    float64 `json:"total_carbs"`
	TotalFats     float64 `json:"total_fats"`
	EntryCount    int     `json:"entry_count"`
}

// SumNutrition 加總一組飲食紀錄的營養值
func SumNutrition(entries []models.DietEntry) NutritionSummary {
	summary := NutritionSummary{EntryCount: len(entries)}
	for _, entry := range entries {
		summary.TotalCalories += entry.Calories
		summary.TotalProtein += entry.Protein
		summary.TotalCarbs += entry.Carbs
		summary.TotalFats += entry.Fats
	}
	return summary
}
