//go:build !windows

package i18n

// Outside Windows the locale comes from environment variables only.
func getPlatformLocales() []string {
	return nil
}
