package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/huanfeng/connhub-cli/pkg/models"
)

// FormatLifecycle returns the human label of a lifecycle state
func FormatLifecycle(state models.LifecycleState) string {
	switch state {
	case models.LifecycleRequested:
		return "Requested"
	case models.LifecycleActive:
		return "Active"
	case models.LifecycleWithError:
		return "With error"
	case models.LifecycleInPublishProcess:
		return "Publishing..."
	}
	return string(state)
}

// FormatCapability title-cases every word: LIVE_SYNC -> Live Sync
func FormatCapability(capability string) string {
	words := strings.Split(strings.ToLower(capability), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// FormatCapabilitySentence capitalizes only the first word: LIVE_SYNC -> Live sync
func FormatCapabilitySentence(capability string) string {
	s := strings.ToLower(strings.ReplaceAll(capability, "_", " "))
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// FormatFramework names the connector framework
func FormatFramework(framework string) string {
	switch strings.ToUpper(framework) {
	case "":
		return "Unknown"
	case "CONNID":
		return "Java-based"
	case "SCIM_REST":
		return "Low-code"
	}
	return framework
}

// TimeSinceUpdate describes how long ago t was, relative to now
func TimeSinceUpdate(t *time.Time, now time.Time) string {
	if t == nil || t.IsZero() {
		return "Unknown"
	}
	diff := now.Sub(*t)
	if diff < 0 {
		diff = -diff
	}
	const day = 24 * time.Hour
	days := int(diff / day)
	if diff%day != 0 {
		days++
	}
	months := days / 30
	years := days / 365

	switch {
	case years > 0:
		return "Updated " + plural(years, "year") + " ago"
	case months > 0:
		return "Updated " + plural(months, "month") + " ago"
	case days > 0:
		return "Updated " + plural(days, "day") + " ago"
	}
	return "Updated today"
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
