// Package vcard exports business cards as vCard 4.0 contacts.
package vcard

import (
	"io"
	"regexp"
	"strings"

	govcard "github.com/emersion/go-vcard"

	"bizcard/internal/domain"
)

// ContentType is the MIME type of Encode's output.
const ContentType = "text/vcard; charset=utf-8"

// FieldSocialProfile carries one social profile URL per valid account.
const FieldSocialProfile = "X-SOCIALPROFILE"

// Build converts card into a vCard. shareURL, if set, becomes the SOURCE.
// Only social accounts that resolved to a profile URL are included.
func Build(card *domain.BusinessCard, shareURL string) govcard.Card {
	vc := make(govcard.Card)
	p := card.PersonalInfo

	fn := card.FullName()
	if fn == "" {
		fn = card.Title
	}
	if fn == "" {
		fn = "Business card"
	}
	vc.SetValue(govcard.FieldFormattedName, fn)
	vc.SetName(&govcard.Name{GivenName: p.FirstName, FamilyName: p.LastName})
	vc.SetValue(govcard.FieldKind, string(govcard.KindIndividual))
	vc.SetValue(govcard.FieldUID, "urn:uuid:"+card.ID)

	setIf(vc, govcard.FieldTitle, p.JobTitle)
	setIf(vc, govcard.FieldOrganization, p.Company)
	setIf(vc, govcard.FieldEmail, p.Email)
	setIf(vc, govcard.FieldTelephone, p.Phone)
	setIf(vc, govcard.FieldURL, p.Website)
	setIf(vc, govcard.FieldNote, p.Bio)
	setIf(vc, govcard.FieldSource, shareURL)

	a := card.Address
	if a != (domain.Address{}) {
		vc.AddAddress(&govcard.Address{
			StreetAddress: a.Street,
			Locality:      a.City,
			Region:        a.State,
			PostalCode:    a.ZipCode,
			Country:       a.Country,
		})
	}

	for _, s := range card.ValidSocialAccounts() {
		vc.Add(FieldSocialProfile, &govcard.Field{
			Value:  s.ProfileURL,
			Params: govcard.Params{govcard.ParamType: {strings.ToLower(s.Platform)}},
		})
	}

	if !card.UpdatedAt.IsZero() {
		vc.SetValue(govcard.FieldRevision, card.UpdatedAt.UTC().Format("20060102T150405Z"))
	}

	govcard.ToV4(vc)
	return vc
}

// Encode writes card to w as a vCard 4.0 document.
func Encode(w io.Writer, card *domain.BusinessCard, shareURL string) error {
	return govcard.NewEncoder(w).Encode(Build(card, shareURL))
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// FileName suggests a download name such as "ada-lovelace.vcf".
func FileName(card *domain.BusinessCard) string {
	name := strings.Trim(unsafeFileChars.ReplaceAllString(strings.ToLower(card.FullName()), "-"), "-")
	if name == "" {
		name = "card"
	}
	return name + ".vcf"
}

func setIf(vc govcard.Card, field, value string) {
	if value = strings.TrimSpace(value); value != "" {
		vc.SetValue(field, value)
	}
}
