// Package validation holds the pure, stateless field checks shared by the
// services. Each validator returns a human-readable message, or "" when the
// value is acceptable.
package validation

import (
	"errors"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/immxrtalbeast/simplewish/internal/domain"
)

const (
	maxEventDescriptionLength = 256
	maxItemDescriptionLength  = 128
	maxNicknameLength         = 24
	maxAvatarLength           = 24
)

// NormalizeURL coerces bare domains to https and returns the canonical
// absolute form.
func NormalizeURL(raw string) (string, error) {
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Host == "" {
		return "", &url.Error{Op: "parse", URL: raw, Err: errors.New("empty host")}
	}
	return u.String(), nil
}

func EventName(name string) string {
	if utf8.RuneCountInString(name) < 3 {
		return "That event name is too short, minimum of 3 characters"
	}
	return ""
}

func EventDescription(description string) string {
	if utf8.RuneCountInString(description) > maxEventDescriptionLength {
		return "Please enter a shorter description, maximum of 256 characters"
	}
	return ""
}

// EventDate accepts the datetime-local wire format or RFC 3339 and rejects
// past dates.
func EventDate(dateString string, now time.Time) string {
	if dateString == "" {
		return "Please enter a valid date"
	}
	date, err := ParseEventDate(dateString)
	if err != nil {
		return "Please enter a valid date"
	}
	if date.Before(now) {
		return "That date has already passed"
	}
	return ""
}

// ParseEventDate parses the formats EventDate accepts.
func ParseEventDate(dateString string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, dateString); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04", dateString)
}

func EventCode(code string) string {
	if code == "" {
		return "Please enter a unique code"
	}
	return ""
}

func ItemName(name string) string {
	if name == "" {
		return "Please enter a name for this item"
	}
	return ""
}

func ItemDescription(description string) string {
	if utf8.RuneCountInString(description) > maxItemDescriptionLength {
		return "Please enter a shorter description, max 128 characters"
	}
	return ""
}

// ItemLink accepts an empty link or anything NormalizeURL can handle.
func ItemLink(link string) string {
	if link == "" {
		return ""
	}
	if _, err := NormalizeURL(link); err != nil {
		return "Please enter a valid URL, or leave empty"
	}
	return ""
}

// ItemQuantity allows UnlimitedQuantity or any strictly positive count.
func ItemQuantity(quantity int) string {
	if quantity < domain.UnlimitedQuantity || quantity == 0 {
		return "Please enter a quantity greater than zero"
	}
	return ""
}

func Nickname(nickname string) string {
	if nickname == "" {
		return "Please enter a valid name to use for this event"
	}
	if utf8.RuneCountInString(nickname) > maxNicknameLength {
		return "Name is too long, max 24 characters"
	}
	return ""
}

func Avatar(avatar string) string {
	if utf8.RuneCountInString(avatar) > maxAvatarLength {
		return "Avatar seed too long, max 24 characters"
	}
	return ""
}

func Username(username string) string {
	n := utf8.RuneCountInString(username)
	if n < 3 || n > 16 {
		return "Username must be 3-16 characters long"
	}
	return ""
}

func Password(password string) string {
	if utf8.RuneCountInString(password) < 6 {
		return "Password must be at least 6 characters long"
	}
	return ""
}
