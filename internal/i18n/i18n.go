package i18n

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

var (
	bundle          *goi18n.Bundle
	localizer       *goi18n.Localizer
	currentLanguage = language.English
	supported       = []language.Tag{
		language.English,
		language.Slovak,
	}
	supportedMatcher = language.NewMatcher(supported)
)

//go:embed locales/*.toml
var localeFS embed.FS

// Init initializes the i18n bundle and chooses the best language using:
//  1. langOverride (from --lang)
//  2. CONNHUB_LANG environment variable
//  3. LC_ALL / LC_MESSAGES / LANG
//  4. platform preferences (Windows)
//  5. Fallback to English
func Init(langOverride string) error {
	b := goi18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, tag := range supported {
		file := fmt.Sprintf("locales/active.%s.toml", tag.String())
		if _, err := b.LoadMessageFileFS(localeFS, file); err != nil {
			return fmt.Errorf("load %s: %w", file, err)
		}
	}

	chosen := selectLanguage(langOverride)
	bundle = b
	localizer = goi18n.NewLocalizer(bundle, chosen.String(), language.English.String())
	currentLanguage = chosen
	return nil
}

// T translates a message by ID with optional template data.
// If translation fails, it falls back to the message ID to avoid empty output.
func T(id string, data ...map[string]interface{}) string {
	templateData := map[string]interface{}{}
	if len(data) > 0 && data[0] != nil {
		templateData = data[0]
	}

	if localizer == nil {
		if err := Init(""); err != nil {
			fmt.Fprintf(os.Stderr, "i18n init failed: %v\n", err)
			return id
		}
	}

	msg, err := localizer.Localize(&goi18n.LocalizeConfig{
		MessageID:      id,
		TemplateData:   templateData,
		PluralCount:    findPluralCount(templateData),
		DefaultMessage: &goi18n.Message{ID: id, Other: id},
	})
	if err != nil || msg == "" {
		return id
	}
	return msg
}

// CurrentLanguage returns the chosen language tag.
func CurrentLanguage() language.Tag {
	return currentLanguage
}

func selectLanguage(langOverride string) language.Tag {
	var candidates []string
	if langOverride != "" {
		candidates = append(candidates, langOverride)
	}
	for _, key := range []string{"CONNHUB_LANG", "LC_ALL", "LC_MESSAGES", "LANG"} {
		if val := strings.TrimSpace(os.Getenv(key)); val != "" {
			candidates = append(candidates, val)
		}
	}
	if len(candidates) == 0 {
		candidates = append(candidates, getPlatformLocales()...)
	}

	var tags []language.Tag
	for _, cand := range candidates {
		if tag, ok := parseLocale(cand); ok {
			tags = append(tags, tag)
		}
	}
	if len(tags) == 0 {
		return language.English
	}

	_, idx, conf := supportedMatcher.Match(tags...)
	if conf == language.No {
		return language.English
	}
	return supported[idx]
}

// parseLocale accepts POSIX forms such as sk_SK.UTF-8 as well as BCP 47.
func parseLocale(s string) (language.Tag, bool) {
	clean := strings.TrimSpace(s)
	if idx := strings.IndexAny(clean, ".@"); idx >= 0 {
		clean = clean[:idx]
	}
	clean = strings.ReplaceAll(clean, "_", "-")
	if clean == "" || strings.EqualFold(clean, "C") || strings.EqualFold(clean, "POSIX") {
		return language.Und, false
	}
	tag, err := language.Parse(clean)
	if err != nil {
		return language.Und, false
	}
	return tag, true
}

func findPluralCount(data map[string]interface{}) interface{} {
	for _, key := range []string{"count", "Count", "total", "Total"} {
		if val, ok := data[key]; ok {
			return val
		}
	}
	return nil
}
