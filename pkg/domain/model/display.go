package model

import "time"

// Display holds the presentation texts the presenter falls back to
type Display struct {
	BenefitsPlaceholder string
	CautionsPlaceholder string
	LoadingMessages     []string
	LoadingInterval     time.Duration
}

// DefaultDisplay returns the built-in presentation texts
func DefaultDisplay() *Display {
	return &Display{
		BenefitsPlaceholder: "No benefits information available",
		CautionsPlaceholder: "No specific cautions available",
		LoadingMessages: []string{
			"Examining plant features... 🌱",
			"Consulting our herbal database... 📚",
			"Identifying plant species... 🔍",
			"Almost there... ✨",
		},
		LoadingInterval: 2 * time.Second,
	}
}

// FirstLoadingMessage returns the message shown when loading starts
func (d *Display) FirstLoadingMessage() string {
	if len(d.LoadingMessages) == 0 {
		return ""
	}
	return d.LoadingMessages[0]
}
