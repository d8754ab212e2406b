// Package fixtures provides card fixtures shared by adapter tests.
package fixtures

import "bizcard/internal/domain"

// SeedYAML is a two-card import document: a public card with a mix of
// valid and unresolvable social accounts, and a private card without any.
func SeedYAML() string {
	return `
cards:
  - title: Staff Engineer
    public: true
    personal_info:
      first_name: Ada
      last_name: Lovelace
      job_title: Engineer
      company: Analytical Engines
      email: ada@example.com
      phone: "+44 20 7946 0000"
      website: https://ada.example.com
      bio: First programmer.
    address:
      street: 12 St James's Square
      city: London
      zip_code: SW1Y 4JH
      country: UK
    social_accounts:
      - platform: GitHub
        username: "@ada"
      - platform: myspace
        username: ada
      - platform: Linked In
        username: ada-lovelace
  - title: Personal
    personal_info:
      first_name: Grace
`
}

// RTLSeedYAML holds a card whose text is right-to-left.
func RTLSeedYAML() string {
	return `
cards:
  - title: مهندس
    personal_info:
      first_name: أحمد
    social_accounts:
      - platform: telegram
        username: "@ahmed"
`
}

// PublicCard returns a fully populated published card with one valid and
// one unresolvable social account.
func PublicCard() *domain.BusinessCard {
	card := &domain.BusinessCard{
		ID:     "6ba7b810-9dad-11d1-80b4-00c04fd430c8",
		UserID: "user-1",
		Title:  "Staff Engineer",
		PersonalInfo: domain.PersonalInfo{
			FirstName: "Ada",
			LastName:  "Lovelace",
			JobTitle:  "Engineer",
			Company:   "Analytical Engines",
			Email:     "ada@example.com",
			Phone:     "+44 20 7946 0000",
			Website:   "https://ada.example.com",
			Bio:       "First <programmer>.",
		},
		Address: domain.Address{
			Street:  "12 St James's Square",
			City:    "London",
			ZipCode: "SW1Y 4JH",
			Country: "UK",
		},
		IsPublic: true,
	}
	card.SocialAccounts = []domain.SocialAccount{
		domain.NewSocialAccount(card.ID, "github", "@ada", 0),
		domain.NewSocialAccount(card.ID, "myspace", "ada", 1),
	}
	card.SocialAccounts[0].ID = "11111111-1111-4111-8111-111111111111"
	card.SocialAccounts[1].ID = "22222222-2222-4222-8222-222222222222"
	return card
}
