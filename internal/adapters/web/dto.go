package web

import (
	"time"

	"bizcard/internal/domain"
	"bizcard/pkg/socialurl"
)

// JSON field names match the database columns.

type personalInfoJSON struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	JobTitle  string `json:"job_title"`
	Company   string `json:"company"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Website   string `json:"website"`
	Bio       string `json:"bio"`
}

type addressJSON struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

type socialAccountJSON struct {
	ID             string    `json:"id"`
	BusinessCardID string    `json:"business_card_id"`
	Platform       string    `json:"platform"`
	Username       string    `json:"username"`
	ProfileURL     string    `json:"profile_url"`
	IsValid        bool      `json:"is_valid"`
	DisplayOrder   int       `json:"display_order"`
	CreatedAt      time.Time `json:"created_at"`
}

type cardJSON struct {
	ID             string              `json:"id"`
	UserID         string              `json:"user_id"`
	Title          string              `json:"title"`
	PersonalInfo   personalInfoJSON    `json:"personal_info"`
	Address        addressJSON         `json:"address"`
	IsPublic       bool                `json:"is_public"`
	ShareURL       string              `json:"share_url"`
	SocialAccounts []socialAccountJSON `json:"social_accounts"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

type socialAccountInputJSON struct {
	ID       string `json:"id,omitempty"`
	Platform string `json:"platform"`
	Username string `json:"username"`
}

type cardRequest struct {
	Title          string                   `json:"title"`
	PersonalInfo   personalInfoJSON         `json:"personal_info"`
	Address        addressJSON              `json:"address"`
	IsPublic       *bool                    `json:"is_public"`
	SocialAccounts []socialAccountInputJSON `json:"social_accounts"`
}

type visibilityRequest struct {
	IsPublic *bool `json:"is_public"`
}

type previewRequest struct {
	SocialAccounts []socialAccountInputJSON `json:"social_accounts"`
}

type resolveJSON struct {
	Platform   string `json:"platform"`
	Username   string `json:"username"`
	ProfileURL string `json:"profile_url"`
	IsValid    bool   `json:"is_valid"`
}

type errorJSON struct {
	Error string `json:"error"`
}

func toCardJSON(c *domain.BusinessCard, baseURL string) cardJSON {
	out := cardJSON{
		ID:     c.ID,
		UserID: c.UserID,
		Title:  c.Title,
		PersonalInfo: personalInfoJSON{
			FirstName: c.PersonalInfo.FirstName,
			LastName:  c.PersonalInfo.LastName,
			JobTitle:  c.PersonalInfo.JobTitle,
			Company:   c.PersonalInfo.Company,
			Email:     c.PersonalInfo.Email,
			Phone:     c.PersonalInfo.Phone,
			Website:   c.PersonalInfo.Website,
			Bio:       c.PersonalInfo.Bio,
		},
		Address: addressJSON{
			Street:  c.Address.Street,
			City:    c.Address.City,
			State:   c.Address.State,
			ZipCode: c.Address.ZipCode,
			Country: c.Address.Country,
		},
		IsPublic:       c.IsPublic,
		ShareURL:       domain.ShareURL(baseURL, c.ID),
		SocialAccounts: make([]socialAccountJSON, len(c.SocialAccounts)),
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
	for i := range c.SocialAccounts {
		out.SocialAccounts[i] = toSocialAccountJSON(&c.SocialAccounts[i])
	}
	return out
}

func toSocialAccountJSON(a *domain.SocialAccount) socialAccountJSON {
	return socialAccountJSON{
		ID:             a.ID,
		BusinessCardID: a.BusinessCardID,
		Platform:       a.Platform,
		Username:       a.Username,
		ProfileURL:     a.ProfileURL,
		IsValid:        a.IsValid,
		DisplayOrder:   a.DisplayOrder,
		CreatedAt:      a.CreatedAt,
	}
}

func toResolveJSON(r socialurl.Result) resolveJSON {
	return resolveJSON{
		Platform:   r.Platform,
		Username:   r.Username,
		ProfileURL: r.ProfileURL,
		IsValid:    r.IsValid,
	}
}

func (r cardRequest) toInput() domain.CardInput {
	input := domain.CardInput{
		Title: r.Title,
		PersonalInfo: domain.PersonalInfo{
			FirstName: r.PersonalInfo.FirstName,
			LastName:  r.PersonalInfo.LastName,
			JobTitle:  r.PersonalInfo.JobTitle,
			Company:   r.PersonalInfo.Company,
			Email:     r.PersonalInfo.Email,
			Phone:     r.PersonalInfo.Phone,
			Website:   r.PersonalInfo.Website,
			Bio:       r.PersonalInfo.Bio,
		},
		Address: domain.Address{
			Street:  r.Address.Street,
			City:    r.Address.City,
			State:   r.Address.State,
			ZipCode: r.Address.ZipCode,
			Country: r.Address.Country,
		},
		IsPublic: r.IsPublic,
	}
	for _, s := range r.SocialAccounts {
		input.SocialAccounts = append(input.SocialAccounts, s.toInput())
	}
	return input
}

func (s socialAccountInputJSON) toInput() domain.SocialAccountInput {
	return domain.SocialAccountInput{ID: s.ID, Platform: s.Platform, Username: s.Username}
}
