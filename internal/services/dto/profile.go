package dto

type UpdateInfluencerProfileRequest struct {
	DisplayName *string  `json:"display_name,omitempty"`
	Bio         *string  `json:"bio,omitempty"`
	City        *string  `json:"city,omitempty"`
	Platforms   []string `json:"platforms,omitempty"`
	Categories  []string `json:"categories,omitempty"`
	IsPublic    *bool    `json:"is_public,omitempty"`
}

type UpdateBrandProfileRequest struct {
	CompanyName *string `json:"company_name,omitempty"`
	Website     *string `json:"website,omitempty"`
	City        *string `json:"city,omitempty"`
}
