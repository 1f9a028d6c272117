package vedicweb

import (
	"net/url"
	"strings"
)

// TelLink builds a tel: link from a phone number, stripping separators.
func TelLink(phone string) string {
	var b strings.Builder
	b.WriteString("tel:")
	for _, r := range phone {
		if r == '+' || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MailtoLink builds a mailto: link, optionally with a subject.
func MailtoLink(email, subject string) string {
	link := "mailto:" + email
	if subject != "" {
		link += "?subject=" + url.QueryEscape(subject)
	}
	return link
}

// WhatsAppLink builds a wa.me chat link with a prefilled message. The number
// must be digits only with country code, no plus sign.
func WhatsAppLink(number, text string) string {
	number = strings.TrimPrefix(strings.TrimSpace(number), "+")
	link := "https://wa.me/" + number
	if text != "" {
		link += "?text=" + url.QueryEscape(text)
	}
	return link
}

// TelegramLink builds a t.me link from a handle, tolerating a leading @.
func TelegramLink(handle string) string {
	return "https://t.me/" + strings.TrimPrefix(strings.TrimSpace(handle), "@")
}

// TwitterShareLink builds a tweet intent link for sharing a page.
func TwitterShareLink(text, pageURL string) string {
	v := url.Values{}
	if text != "" {
		v.Set("text", text)
	}
	if pageURL != "" {
		v.Set("url", pageURL)
	}
	return "https://twitter.com/intent/tweet?" + v.Encode()
}
