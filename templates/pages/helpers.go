package pages

import (
	"strings"

	"bizcard/internal/domain"
)

// cardTitle prefers the holder's name and falls back to the card title.
func cardTitle(card *domain.BusinessCard) string {
	if name := card.FullName(); name != "" {
		return name
	}
	return card.Title
}

func cardRole(card *domain.BusinessCard) string {
	return joinNonEmpty(" · ", card.PersonalInfo.JobTitle, card.PersonalInfo.Company)
}

func cardAddress(card *domain.BusinessCard) string {
	a := card.Address
	return joinNonEmpty(", ", a.Street, a.City, a.State, a.ZipCode, a.Country)
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
