package gservice

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// OutboundMessage describes a draft to be created: a plain-text email plus
// the Gmail thread it belongs to.
type OutboundMessage struct {
	To        string
	Subject   string
	Body      string
	InReplyTo string // Message-Id of the message being answered, optional
	ThreadID  string
}

// Raw assembles the RFC 2822 message and encodes it the way the Gmail API
// expects raw drafts: base64url over CRLF-terminated headers and body.
func (o OutboundMessage) Raw() string {
	var b strings.Builder

	if o.To != "" {
		fmt.Fprintf(&b, "To: %s\r\n", o.To)
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", o.Subject)
	if o.InReplyTo != "" {
		fmt.Fprintf(&b, "In-Reply-To: %s\r\n", o.InReplyTo)
		fmt.Fprintf(&b, "References: %s\r\n", o.InReplyTo)
	}
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(o.Body)

	return base64.URLEncoding.EncodeToString([]byte(b.String()))
}

// ReplySubject normalizes a subject for a reply: exactly one "Re: " prefix.
func ReplySubject(subject string) string {
	if strings.HasPrefix(strings.ToLower(subject), "re:") {
		return subject
	}
	if subject == "" {
		return "Re: (no subject)"
	}

	return "Re: " + subject
}

// ReplyRecipient picks the reply address from the original headers:
// Reply-To, then From, then To, first present wins.
func ReplyRecipient(headers map[string]string) string {
	for _, name := range []string{"Reply-To", "From", "To"} {
		if v := headers[name]; v != "" {
			return v
		}
	}

	return ""
}
