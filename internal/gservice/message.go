package gservice

import (
	"encoding/base64"

	"google.golang.org/api/gmail/v1"
)

// HeaderMap flattens a message's payload headers into a name->value map.
// Later duplicates overwrite earlier ones, matching Gmail's own ordering.
func HeaderMap(msg *gmail.Message) map[string]string {
	headers := make(map[string]string)
	if msg == nil || msg.Payload == nil {
		return headers
	}

	for _, h := range msg.Payload.Headers {
		headers[h.Name] = h.Value
	}

	return headers
}

// PlainTextBody returns the first text/plain body part of a message, decoded.
// Messages without a text/plain part yield the empty string.
func PlainTextBody(msg *gmail.Message) string {
	if msg == nil || msg.Payload == nil {
		return ""
	}

	return plainTextFromPart(msg.Payload)
}

func plainTextFromPart(part *gmail.MessagePart) string {
	if part.MimeType == "text/plain" && part.Body != nil && part.Body.Data != "" {
		return decodeBase64URL(part.Body.Data)
	}

	for _, p := range part.Parts {
		if body := plainTextFromPart(p); body != "" {
			return body
		}
	}

	return ""
}

func decodeBase64URL(data string) string {
	decoded, err := base64.URLEncoding.DecodeString(data)
	if err != nil {
		decoded, err = base64.RawURLEncoding.DecodeString(data)
		if err != nil {
			return data
		}
	}
	return string(decoded)
}
