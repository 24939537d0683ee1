package i18n

import (
	"strings"

	"github.com/khoborpatra/khoborpatra/internal/constants"

	"github.com/gin-gonic/gin"
)

// ResolveLocale picks the response language from the lang query
// parameter, then the Accept-Language header, falling back to English.
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return constants.LocaleEn
	}
	if lang := normalize(c.Query("lang")); lang != "" {
		return lang
	}
	header := c.GetHeader("Accept-Language")
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if lang := normalize(tag); lang != "" {
			return lang
		}
	}
	return constants.LocaleEn
}

func normalize(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for _, locale := range constants.SupportedLocales {
		if tag == locale || strings.HasPrefix(tag, locale+"-") {
			return locale
		}
	}
	return ""
}

// T resolves a message key for a locale. Missing translations fall back
// to English, then to the key itself so a typo stays visible.
func T(locale, key string) string {
	if catalog, ok := catalogs[locale]; ok {
		if msg, ok := catalog[key]; ok {
			return msg
		}
	}
	if msg, ok := catalogs[constants.LocaleEn][key]; ok {
		return msg
	}
	return key
}
