package scoresync

import (
	"strings"

	"github.com/mcdev12/bowlpool/go/internal/models"
)

// statusKeywords is checked in order; the first keyword contained in the feed status wins.
var statusKeywords = []struct {
	keywords []string
	status   models.ContestStatus
}{
	{[]string{"final", "complete"}, models.ContestStatusFinal},
	{[]string{"progress", "live"}, models.ContestStatusInProgress},
	{[]string{"scheduled", "pre"}, models.ContestStatusNotStarted},
	{[]string{"cancel", "postpone"}, models.ContestStatusCanceled},
}

// MapStatus maps a feed status name such as "STATUS_FINAL" onto a contest status.
// Anything unrecognised is treated as not started.
func MapStatus(feedStatus string) models.ContestStatus {
	s := strings.ToLower(feedStatus)
	for _, entry := range statusKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(s, kw) {
				return entry.status
			}
		}
	}
	return models.ContestStatusNotStarted
}
