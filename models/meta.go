package models

// CategoryInfo describes one of the static skill categories.
type CategoryInfo struct {
	Key            string `json:"key"`
	Name           string `json:"name"`
	AverageCredits int    `json:"average_credits"`
	Description    string `json:"description"`
}

// CreditSystem describes how the daily credit economy works.
type CreditSystem struct {
	DailyCredits bool   `json:"daily_credits"`
	Note         string `json:"note"`
}

// PricingOption is one of the vendor pricing types.
type PricingOption struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// VendorPricing lists the available pricing options for vendors.
type VendorPricing struct {
	Options []PricingOption `json:"options"`
}

// PricingModel is the full static pricing structure, embedding the category
// catalog so clients need a single fetch.
type PricingModel struct {
	CreditSystem  CreditSystem   `json:"credit_system"`
	VendorPricing VendorPricing  `json:"vendor_pricing"`
	Categories    []CategoryInfo `json:"categories"`
}

// Categories returns the fixed category catalog. The keys are stable
// identifiers referenced by vendor offerings.
func Categories() []CategoryInfo {
	return []CategoryInfo{
		{Key: "entertainment", Name: "Entertainment", AverageCredits: 10,
			Description: "Fun skills: sports tricks, gaming coaching, creative hobbies."},
		{Key: "trades", Name: "Trades", AverageCredits: 45,
			Description: "Blue-collar skills: plumbing, electrical, mechanic, etc."},
		{Key: "regulation", Name: "Regulation", AverageCredits: 20,
			Description: "Wellness & health: fitness, nutrition, mental health."},
		{Key: "network", Name: "NetWork", AverageCredits: 40,
			Description: "Internet careers: ecommerce, trading, coding, streaming."},
		{Key: "education", Name: "Education", AverageCredits: 20,
			Description: "School and life skills from grade 7 to university, plus misc."},
	}
}

// Pricing returns the static pricing model.
func Pricing() PricingModel {
	return PricingModel{
		CreditSystem: CreditSystem{
			DailyCredits: true,
			Note:         "Users receive daily credits to learn or exchange skills. Exchanging costs fewer credits than pure learning.",
		},
		VendorPricing: VendorPricing{
			Options: []PricingOption{
				{Type: "one_time", Description: "Great for single sessions or compact courses."},
				{Type: "subscription", Description: "Best for ongoing programs like dropshipping or trading."},
			},
		},
		Categories: Categories(),
	}
}
