package answers

import (
	"strings"

	"github.com/goliatone/go-formfill/pkg/schema"
)

// Profile is the identity-attribute bag supplied by the caller's profile
// collaborator. All attributes are optional.
type Profile struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	DateOfBirth string `json:"dateOfBirth"`
	USI         string `json:"usi"`
}

// candidateKeys is the fixed enumeration order for prefill matching; the
// first key whose token appears in the field name or label wins.
var candidateKeys = []string{
	"firstName",
	"lastName",
	"fullName",
	"email",
	"phone",
	"address",
	"dateOfBirth",
	"usi",
}

func (p Profile) value(key string) string {
	switch key {
	case "firstName":
		return p.FirstName
	case "lastName":
		return p.LastName
	case "fullName":
		return p.FullName
	case "email":
		return p.Email
	case "phone":
		return p.Phone
	case "address":
		return p.Address
	case "dateOfBirth":
		return p.DateOfBirth
	case "usi":
		return p.USI
	default:
		return ""
	}
}

// ProfileFromUser maps a loose user object (as returned by typical profile
// endpoints) onto the Profile bag, applying the usual attribute fallbacks:
// givenName/surname for names, mobile for phone, address parts joined when
// no full address is present, dob for dateOfBirth.
func ProfileFromUser(user map[string]any) Profile {
	if user == nil {
		return Profile{}
	}
	str := func(keys ...string) string {
		for _, key := range keys {
			if value, ok := user[key].(string); ok && value != "" {
				return value
			}
		}
		return ""
	}

	profile := Profile{
		FirstName:   str("firstName", "givenName"),
		LastName:    str("lastName", "surname"),
		Email:       str("email"),
		Phone:       str("phone", "mobile"),
		DateOfBirth: str("dateOfBirth", "dob"),
		USI:         str("usi"),
	}
	profile.FullName = strings.TrimSpace(profile.FirstName + " " + profile.LastName)

	if address, ok := user["address"].(map[string]any); ok {
		if full, ok := address["full"].(string); ok && full != "" {
			profile.Address = full
		} else {
			var parts []string
			for _, key := range []string{"street", "city", "state", "postalCode"} {
				if part, ok := address[key].(string); ok && part != "" {
					parts = append(parts, part)
				}
			}
			profile.Address = strings.Join(parts, ", ")
		}
	} else {
		profile.Address = str("address")
	}
	return profile
}

// prefill copies profile attributes into recognized identity fields. A
// field is recognized when any candidate key token appears, case
// insensitively, in its name or label. Prefill never overwrites a non-empty
// answer and never fabricates values for attributes the profile lacks.
func prefill(store Store, fields []schema.Field, profile Profile) {
	for _, field := range fields {
		if field.Name == "" {
			continue
		}
		name := strings.ToLower(field.Name)
		label := strings.ToLower(field.Label)

		var matched string
		for _, key := range candidateKeys {
			token := strings.ToLower(key)
			if strings.Contains(name, token) || strings.Contains(label, token) {
				matched = profile.value(key)
				break
			}
		}
		if matched == "" {
			continue
		}
		if IsEmptyValue(store[field.Name]) {
			store[field.Name] = matched
		}
	}
}
