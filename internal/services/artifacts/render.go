package artifacts

import (
	"fmt"
	"strings"
	"time"

	"github.com/killallgit/clipper-api/internal/models"
)

// Render produces the artifact body for a processed clip: a plain text
// manifest of the clip and the stage results attached to it.
func Render(clip *models.Clip) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "Clip: %s\n", clip.Name)
	fmt.Fprintf(&b, "ID: %s\n", clip.ID)
	fmt.Fprintf(&b, "Source: %s\n", clip.SourceRef)
	if clip.Metadata.Title != "" {
		fmt.Fprintf(&b, "Title: %s\n", clip.Metadata.Title)
	}
	fmt.Fprintf(&b, "Window: %s\n", formatWindow(clip))
	fmt.Fprintf(&b, "Created: %s\n", clip.CreatedAt.UTC().Format(time.RFC3339))

	b.WriteString("\nFeatures:\n")
	if len(clip.Results) == 0 {
		b.WriteString("  (none)\n")
	}
	for i, r := range clip.Results {
		fmt.Fprintf(&b, "  %d. %s [%s]: %s (confidence %.2f)\n", i+1, r.Name, r.FeatureID, r.Outcome, r.Confidence)
	}

	return []byte(b.String())
}

func formatWindow(clip *models.Clip) string {
	if clip.EndTime == nil {
		return fmt.Sprintf("%.2fs - end (%.2fs)", clip.StartTime, clip.Window())
	}
	return fmt.Sprintf("%.2fs - %.2fs (%.2fs)", clip.StartTime, *clip.EndTime, clip.Window())
}
