package domain

import (
	"context"
	"regexp"
	"strings"
)

// emailRegexp is the conservative email-likeness pattern. It must match the
// entire value: local part of letters/digits/._%+-, an @, a domain with at
// least one dot, and a final label of two or more letters.
var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// IsEmailAddress reports whether value looks like an email address. The value
// is trimmed and lowercased before matching. This is the single classifier
// used by both column profiling and dispatch filtering so the two can never
// disagree on validity.
func IsEmailAddress(value string) bool {
	return emailRegexp.MatchString(strings.ToLower(strings.TrimSpace(value)))
}

// Mailer delivers one message through the external mail-send capability.
// token is the bearer access token of the signed-in user; providers that send
// on their own authority (SES) ignore it.
type Mailer interface {
	Send(ctx context.Context, token, to, subject, htmlBody string) error
}
