package models

import "time"

// AIModelConfig describes one configured translation model.
type AIModelConfig struct {
	LastEdited   time.Time `json:"lastEdited"`
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Provider     string    `json:"provider"`
	Model        string    `json:"model"`
	BaseURL      string    `json:"baseUrl,omitempty"`
	APIKey       string    `json:"apiKey,omitempty"` // APIKey секрет, не участвует в сравнении при синхронизации
	SystemPrompt string    `json:"systemPrompt,omitempty"`
	Temperature  float64   `json:"temperature,omitempty"`
	MaxTokens    int       `json:"maxTokens,omitempty"`
	IsDefault    bool      `json:"isDefault,omitempty"`
}

// SettingsID is the fixed id of the settings pseudo-entity.
const SettingsID = "app-settings"

// AppSettings holds global application preferences.
type AppSettings struct {
	LastEdited        time.Time `json:"lastEdited"`
	Theme             string    `json:"theme,omitempty"`
	Language          string    `json:"language,omitempty"`
	TargetLanguage    string    `json:"targetLanguage,omitempty"`
	DefaultModelID    string    `json:"defaultModelId,omitempty"`
	FontFamily        string    `json:"fontFamily,omitempty"`
	FontSize          int       `json:"fontSize,omitempty"`
	ParallelRequests  int       `json:"parallelRequests,omitempty"`
	ShowOriginalText  bool      `json:"showOriginalText,omitempty"`
	AutoTranslateNext bool      `json:"autoTranslateNext,omitempty"`
}

// CoverHistoryItem is a previously used cover image.
type CoverHistoryItem struct {
	AddedAt    time.Time `json:"addedAt"`
	ID         string    `json:"id"`
	URL        string    `json:"url"`
	NovelID    string    `json:"novelId,omitempty"`
	NovelTitle string    `json:"novelTitle,omitempty"`
}

// SettingsPayload is the content of the remote settings file.
type SettingsPayload struct {
	AppSettings  *AppSettings       `json:"appSettings"`
	AIModels     []AIModelConfig    `json:"aiModels"`
	CoverHistory []CoverHistoryItem `json:"coverHistory,omitempty"`
}
