// Package seed reads card definitions from YAML for bulk import.
//
//	cards:
//	  - title: Staff Engineer
//	    public: true
//	    personal_info:
//	      first_name: Ada
//	      email: ada@example.com
//	    address:
//	      city: London
//	    social_accounts:
//	      - platform: github
//	        username: ada
package seed

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"bizcard/internal/domain"
)

// ErrNoCards is returned when the document holds no cards.
var ErrNoCards = errors.New("no cards in seed file")

type rawFile struct {
	Cards []rawCard `yaml:"cards"`
}

type rawCard struct {
	Title        string `yaml:"title"`
	Public       *bool  `yaml:"public"`
	PersonalInfo struct {
		FirstName string `yaml:"first_name"`
		LastName  string `yaml:"last_name"`
		JobTitle  string `yaml:"job_title"`
		Company   string `yaml:"company"`
		Email     string `yaml:"email"`
		Phone     string `yaml:"phone"`
		Website   string `yaml:"website"`
		Bio       string `yaml:"bio"`
	} `yaml:"personal_info"`
	Address struct {
		Street  string `yaml:"street"`
		City    string `yaml:"city"`
		State   string `yaml:"state"`
		ZipCode string `yaml:"zip_code"`
		Country string `yaml:"country"`
	} `yaml:"address"`
	SocialAccounts []struct {
		Platform string `yaml:"platform"`
		Username string `yaml:"username"`
	} `yaml:"social_accounts"`
}

// LoadFile reads and parses the seed file at path.
func LoadFile(path string) ([]domain.CardInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f)
}

// Parse decodes a seed document. Unknown keys are rejected so typos do not
// silently drop data.
func Parse(r io.Reader) ([]domain.CardInput, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var raw rawFile
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoCards
		}
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	if len(raw.Cards) == 0 {
		return nil, ErrNoCards
	}

	inputs := make([]domain.CardInput, len(raw.Cards))
	for i, c := range raw.Cards {
		inputs[i] = domain.CardInput{
			Title: c.Title,
			PersonalInfo: domain.PersonalInfo{
				FirstName: c.PersonalInfo.FirstName,
				LastName:  c.PersonalInfo.LastName,
				JobTitle:  c.PersonalInfo.JobTitle,
				Company:   c.PersonalInfo.Company,
				Email:     c.PersonalInfo.Email,
				Phone:     c.PersonalInfo.Phone,
				Website:   c.PersonalInfo.Website,
				Bio:       c.PersonalInfo.Bio,
			},
			Address: domain.Address{
				Street:  c.Address.Street,
				City:    c.Address.City,
				State:   c.Address.State,
				ZipCode: c.Address.ZipCode,
				Country: c.Address.Country,
			},
			IsPublic: c.Public,
		}
		for _, s := range c.SocialAccounts {
			inputs[i].SocialAccounts = append(inputs[i].SocialAccounts, domain.SocialAccountInput{
				Platform: s.Platform,
				Username: s.Username,
			})
		}
	}
	return inputs, nil
}
