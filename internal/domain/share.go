package domain

import (
	"strings"

	"github.com/google/uuid"
)

// ValidateID checks that id is a canonical UUID, the format of every card and
// social account identifier.
func ValidateID(id string) error {
	if len(id) != 36 {
		return ErrInvalidCardID
	}
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidCardID
	}
	return nil
}

// ShareURL is the public address of a published card.
func ShareURL(baseURL, cardID string) string {
	return strings.TrimRight(baseURL, "/") + "/card/" + cardID
}
