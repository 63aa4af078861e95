package flamewhisper

import (
	"time"

	"github.com/google/uuid"
)

// Snapshot is one saved analysis: the source image, the report text that
// was generated for it and when.
type Snapshot struct {
	ID         string    `json:"id,omitempty"`
	ImageSrc   string    `json:"imageSrc"`
	ReportText string    `json:"reportText"`
	Time       time.Time `json:"time"`
}

// NewSnapshot records report for imageSrc at now. The timestamp is kept in
// UTC without a monotonic reading so it survives a JSON round trip intact.
func NewSnapshot(imageSrc string, report Report, now time.Time) Snapshot {
	return Snapshot{
		ID:         uuid.NewString(),
		ImageSrc:   imageSrc,
		ReportText: report.Text(),
		Time:       now.UTC(),
	}
}

// ExportFilename is the download name for an exported snapshot.
func ExportFilename(t time.Time) string {
	return "brigid-snapshot-" + t.UTC().Format("20060102-150405") + ".png"
}
