package dto

// AdminStatsResponse reports system counters for the admin panel.
type AdminStatsResponse struct {
	TotalUsers   int   `json:"totalUsers"`
	TotalQuizzes int64 `json:"totalQuizzes"`
	ActiveUsers  int   `json:"activeUsers"`
	APIUsage     int64 `json:"apiUsage"`
}

// AdminConfigResponse is the runtime configuration view. The provider key
// is masked; only its presence is revealed.
type AdminConfigResponse struct {
	ProviderAPIKey           string `json:"providerApiKey"`
	MaxQuestionsPerQuiz      int    `json:"maxQuestionsPerQuiz"`
	EnablePDFUpload          bool   `json:"enablePdfUpload"`
	EnableFallbackGeneration bool   `json:"enableFallbackGeneration"`
}

// UpdateAPIConfigRequest updates the provider credential at runtime.
type UpdateAPIConfigRequest struct {
	ProviderAPIKey string `json:"providerApiKey"`
}

// UpdateSystemConfigRequest updates quiz limits and feature toggles.
// Pointer fields distinguish "not provided" from zero values.
type UpdateSystemConfigRequest struct {
	MaxQuestionsPerQuiz      *int  `json:"maxQuestionsPerQuiz,omitempty"`
	EnablePDFUpload          *bool `json:"enablePdfUpload,omitempty"`
	EnableFallbackGeneration *bool `json:"enableFallbackGeneration,omitempty"`
}

// AdminUsersResponse lists registered accounts.
type AdminUsersResponse struct {
	Success bool           `json:"success"`
	Users   []UserResponse `json:"users"`
}
