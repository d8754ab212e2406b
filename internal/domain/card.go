// Package domain contains the core business entities and rules.
package domain

import (
	"strings"
	"time"

	"bizcard/pkg/socialurl"
)

// BusinessCard is a user's digital business card.
type BusinessCard struct {
	ID             string
	UserID         string // Owner, asserted by the upstream gateway
	Title          string
	PersonalInfo   PersonalInfo
	Address        Address
	IsPublic       bool // Published cards are readable at their share URL
	SocialAccounts []SocialAccount
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PersonalInfo holds the contact details printed on a card.
type PersonalInfo struct {
	FirstName string
	LastName  string
	JobTitle  string
	Company   string
	Email     string
	Phone     string
	Website   string
	Bio       string
}

// Address is the postal address printed on a card.
type Address struct {
	Street  string
	City    string
	State   string
	ZipCode string
	Country string
}

// SocialAccount is a persisted social media link belonging to a card.
// Platform, Username, ProfileURL and IsValid are the resolver output, stored verbatim.
type SocialAccount struct {
	ID             string
	BusinessCardID string
	Platform       string
	Username       string
	ProfileURL     string
	IsValid        bool
	DisplayOrder   int
	CreatedAt      time.Time
}

// NewSocialAccount resolves platform and username and returns an unsaved account.
func NewSocialAccount(cardID, platform, username string, order int) SocialAccount {
	acct := SocialAccount{
		BusinessCardID: cardID,
		DisplayOrder:   order,
	}
	acct.Resolve(platform, username)
	return acct
}

// Resolve overwrites the link fields with a fresh resolution of platform and username.
func (s *SocialAccount) Resolve(platform, username string) {
	res := socialurl.Generate(platform, username)
	s.Platform = res.Platform
	s.Username = res.Username
	s.ProfileURL = res.ProfileURL
	s.IsValid = res.IsValid
}

// FullName joins first and last name, skipping blanks.
func (c *BusinessCard) FullName() string {
	return strings.TrimSpace(strings.Join([]string{
		strings.TrimSpace(c.PersonalInfo.FirstName),
		strings.TrimSpace(c.PersonalInfo.LastName),
	}, " "))
}

// ValidSocialAccounts returns the accounts that resolved to a profile URL.
func (c *BusinessCard) ValidSocialAccounts() []SocialAccount {
	var valid []SocialAccount
	for _, s := range c.SocialAccounts {
		if s.IsValid {
			valid = append(valid, s)
		}
	}
	return valid
}

// SocialAccountByID finds one of the card's accounts.
func (c *BusinessCard) SocialAccountByID(id string) (SocialAccount, bool) {
	for _, s := range c.SocialAccounts {
		if s.ID == id {
			return s, true
		}
	}
	return SocialAccount{}, false
}

// CardInput is the editor payload used to create or update a card.
type CardInput struct {
	Title          string
	PersonalInfo   PersonalInfo
	Address        Address
	IsPublic       *bool // nil keeps the current visibility on update, private on create
	SocialAccounts []SocialAccountInput
}

// SocialAccountInput is one platform/username row from the editor.
// ID is empty for rows that have not been saved yet.
type SocialAccountInput struct {
	ID       string
	Platform string
	Username string
}

// Blank reports whether the row lacks a platform or a username.
func (s SocialAccountInput) Blank() bool {
	return s.Platform == "" || s.Username == ""
}

// Apply copies the editable card fields from input onto c.
func (c *BusinessCard) Apply(input CardInput) {
	c.Title = input.Title
	c.PersonalInfo = input.PersonalInfo
	c.Address = input.Address
	if input.IsPublic != nil {
		c.IsPublic = *input.IsPublic
	}
}
