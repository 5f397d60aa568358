// file: middleware/locale.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// LocaleKey is the gin context key carrying the resolved language.
const LocaleKey = "lang"

// Locale resolves the response language for the request: an explicit
// ?lang= query wins, then the Accept-Language header. Arabic is the
// default, matching the primary audience.
func Locale() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := strings.ToLower(c.Query("lang"))
		if lang == "" {
			accept := strings.ToLower(c.GetHeader("Accept-Language"))
			if strings.HasPrefix(accept, "en") {
				lang = "en"
			}
		}
		if lang != "en" {
			lang = "ar"
		}

		c.Set(LocaleKey, lang)
		c.Next()
	}
}

// Lang returns the language resolved by Locale, defaulting to Arabic.
func Lang(c *gin.Context) string {
	if lang, ok := c.Get(LocaleKey); ok {
		if s, ok := lang.(string); ok {
			return s
		}
	}
	return "ar"
}
