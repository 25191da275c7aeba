package telegram

import (
	"fmt"
	"strings"

	"go-social-insights/internal/entity"
)

// FormatRunSummary renders an analysis run outcome as a Telegram Markdown
// message.
func FormatRunSummary(run *entity.AnalysisRun) string {
	var sb strings.Builder

	switch run.Status {
	case entity.RunStatusCompleted:
		sb.WriteString("✅ *Analysis run completed*\n")
	case entity.RunStatusFailed:
		sb.WriteString("🚨 *Analysis run failed*\n")
	default:
		sb.WriteString(fmt.Sprintf("*Analysis run %s*\n", run.Status))
	}

	sb.WriteString(fmt.Sprintf("Run ID: `%d`\n", run.ID))
	sb.WriteString(fmt.Sprintf("Posts analyzed: %d\n", run.PostsAnalyzed))
	sb.WriteString(fmt.Sprintf("Clusters created: %d\n", run.ClustersCreated))
	sb.WriteString(fmt.Sprintf("Duration: %dms\n", run.DurationMs))

	if run.ErrorMessage.Valid && run.ErrorMessage.String != "" {
		sb.WriteString(fmt.Sprintf("Detail: `%s`\n", run.ErrorMessage.String))
	}

	return sb.String()
}
