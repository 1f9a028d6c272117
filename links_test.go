package vedicweb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTelLink(t *testing.T) {
	assert.Equal(t, "tel:+919876543210", TelLink("+91 98765 43210"))
	assert.Equal(t, "tel:18005551234", TelLink("1-800-555-1234"))
}

func TestMailtoLink(t *testing.T) {
	assert.Equal(t, "mailto:om@example.com", MailtoLink("om@example.com", ""))
	assert.Equal(t, "mailto:om@example.com?subject=Birth+Chart+Reading",
		MailtoLink("om@example.com", "Birth Chart Reading"))
}

func TestWhatsAppLink(t *testing.T) {
	assert.Equal(t, "https://wa.me/919876543210", WhatsAppLink("919876543210", ""))
	assert.Equal(t, "https://wa.me/919876543210?text=Namaste%2C+I+need+guidance",
		WhatsAppLink("+919876543210", "Namaste, I need guidance"))
}

func TestTelegramLink(t *testing.T) {
	assert.Equal(t, "https://t.me/vedicsages", TelegramLink("@vedicsages"))
	assert.Equal(t, "https://t.me/vedicsages", TelegramLink("vedicsages"))
}

func TestTwitterShareLink(t *testing.T) {
	link := TwitterShareLink("Saturn Transits", "https://example.com/blog/saturn-transits/")
	assert.Contains(t, link, "https://twitter.com/intent/tweet?")
	assert.Contains(t, link, "text=Saturn+Transits")
	assert.Contains(t, link, "url=https%3A%2F%2Fexample.com%2Fblog%2Fsaturn-transits%2F")
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "saturn-transits-2025", Slugify("Saturn Transits 2025!"))
	assert.Equal(t, "om-namah-shivaya", Slugify("  Om: Namah / Shivaya  "))
}

func TestBuildURL(t *testing.T) {
	assert.Equal(t, "https://example.com/blog/mars/", BuildURL("https://example.com", "blog", "mars"))
	assert.Equal(t, "https://example.com", BuildURL("https://example.com"))
}
