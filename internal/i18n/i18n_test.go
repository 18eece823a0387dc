package i18n

import (
	"sort"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func clearLocaleEnv(t *testing.T) {
	for _, key := range []string{"CONNHUB_LANG", "LC_ALL", "LC_MESSAGES", "LANG"} {
		t.Setenv(key, "")
	}
}

func TestInitSlovak(t *testing.T) {
	clearLocaleEnv(t)
	require.NoError(t, Init("sk"))
	assert.Equal(t, language.Slovak, CurrentLanguage())

	assert.Equal(t, "Zrušené.", T("cache.clearCancelled"))
	assert.Equal(t, "Odstránená 1 položka.", T("cache.removed", map[string]interface{}{"Count": 1}))
	assert.Equal(t, "Odstránené 3 položky.", T("cache.removed", map[string]interface{}{"Count": 3}))
	assert.Equal(t, "Odstránených 7 položiek.", T("cache.removed", map[string]interface{}{"Count": 7}))
}

func TestTranslateEnglish(t *testing.T) {
	clearLocaleEnv(t)
	require.NoError(t, Init("en"))

	assert.Equal(t, "Removed 1 cache entry.", T("cache.removed", map[string]interface{}{"Count": 1}))
	assert.Equal(t, "Removed 0 cache entries.", T("cache.removed", map[string]interface{}{"Count": 0}))
	assert.Equal(t, "Configuration template written to /tmp/c.yaml",
		T("config.written", map[string]interface{}{"Path": "/tmp/c.yaml"}))
	assert.Equal(t, "no.such.message", T("no.such.message"))
}

func TestSelectLanguage(t *testing.T) {
	clearLocaleEnv(t)
	assert.Equal(t, language.Slovak, selectLanguage("sk_SK.UTF-8"))
	assert.Equal(t, language.English, selectLanguage("de"))

	t.Setenv("CONNHUB_LANG", "sk")
	assert.Equal(t, language.Slovak, selectLanguage(""))
	assert.Equal(t, language.English, selectLanguage("en"))
}

func TestParseLocale(t *testing.T) {
	_, ok := parseLocale("C")
	assert.False(t, ok)
	_, ok = parseLocale("POSIX")
	assert.False(t, ok)

	tag, ok := parseLocale("sk_SK@euro")
	require.True(t, ok)
	base, _ := tag.Base()
	assert.Equal(t, "sk", base.String())
}

func messageIDs(t *testing.T, file string) []string {
	data, err := localeFS.ReadFile(file)
	require.NoError(t, err)
	var raw map[string]interface{}
	require.NoError(t, toml.Unmarshal(data, &raw))
	ids := make([]string, 0, len(raw))
	for id := range raw {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func TestLocalesDefineSameMessages(t *testing.T) {
	en := messageIDs(t, "locales/active.en.toml")
	sk := messageIDs(t, "locales/active.sk.toml")
	assert.NotEmpty(t, en)
	assert.Equal(t, en, sk)
}
