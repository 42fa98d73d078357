package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClipState is the lifecycle state of a clip
type ClipState string

const (
	ClipStateCreated    ClipState = "created"
	ClipStateProcessing ClipState = "processing"
	ClipStateCompleted  ClipState = "completed"
	ClipStateFailed     ClipState = "failed"
)

// IsTerminal reports whether no further transition is allowed from s
func (s ClipState) IsTerminal() bool {
	return s == ClipStateCompleted || s == ClipStateFailed
}

// CanTransitionTo reports whether next is a legal successor of s
func (s ClipState) CanTransitionTo(next ClipState) bool {
	switch s {
	case ClipStateCreated:
		return next == ClipStateProcessing
	case ClipStateProcessing:
		return next == ClipStateCompleted || next == ClipStateFailed
	default:
		return false
	}
}

// MaxDescriptionLength caps the stored source description, in characters
const MaxDescriptionLength = 500

// SourceMetadata describes the source video as reported by the media fetcher
type SourceMetadata struct {
	Title       string  `json:"title"`
	Duration    float64 `json:"duration"` // seconds
	Thumbnail   string  `json:"thumbnail,omitempty"`
	Description string  `json:"description,omitempty"`
	ViewCount   int64   `json:"view_count"`
	Uploader    string  `json:"uploader,omitempty"`
}

// Normalize clamps the duration and truncates the description
func (m SourceMetadata) Normalize() SourceMetadata {
	if m.Duration < 0 {
		m.Duration = 0
	}
	if runes := []rune(m.Description); len(runes) > MaxDescriptionLength {
		m.Description = string(runes[:MaxDescriptionLength])
	}
	return m
}

// Value implements driver.Valuer for SourceMetadata
func (m SourceMetadata) Value() (driver.Value, error) {
	return json.Marshal(m)
}

// Scan implements sql.Scanner for SourceMetadata
func (m *SourceMetadata) Scan(value any) error {
	return scanJSON(value, m)
}

// FeatureList is the ordered list of requested feature identifiers
type FeatureList []string

// Value implements driver.Valuer for FeatureList
func (f FeatureList) Value() (driver.Value, error) {
	if f == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal([]string(f))
}

// Scan implements sql.Scanner for FeatureList
func (f *FeatureList) Scan(value any) error {
	return scanJSON(value, f)
}

// FeatureStageResult records the outcome of applying one feature to one clip
type FeatureStageResult struct {
	FeatureID  string    `json:"feature_id"`
	Name       string    `json:"name"`
	Outcome    string    `json:"outcome"`
	Confidence float64   `json:"confidence"`
	AppliedAt  time.Time `json:"applied_at"`
}

// StageResults is the ordered list of stage results, one per requested feature
type StageResults []FeatureStageResult

// Value implements driver.Valuer for StageResults
func (r StageResults) Value() (driver.Value, error) {
	if r == nil {
		return json.Marshal([]FeatureStageResult{})
	}
	return json.Marshal([]FeatureStageResult(r))
}

// Scan implements sql.Scanner for StageResults
func (r *StageResults) Scan(value any) error {
	return scanJSON(value, r)
}

func scanJSON(value any, target any) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported JSON column type %T", value)
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, target)
}

// Clip is a request to cut a time window out of a source video and run
// an ordered list of feature stages over it
type Clip struct {
	ID        string `json:"id" gorm:"primaryKey;size:36"`
	OwnerID   string `json:"owner_id" gorm:"not null;index;size:128"`
	SourceRef string `json:"source_ref" gorm:"not null;size:2048"`
	Name      string `json:"name" gorm:"size:255"`

	StartTime float64  `json:"start_time" gorm:"not null"`
	EndTime   *float64 `json:"end_time,omitempty"`

	Metadata SourceMetadata `json:"metadata" gorm:"type:json"`
	Features FeatureList    `json:"features" gorm:"type:json"`
	Results  StageResults   `json:"results" gorm:"type:json"`

	State           ClipState `json:"state" gorm:"not null;size:20;index"`
	DownloadLocator *string   `json:"download_locator,omitempty" gorm:"size:512"`
	SizeBytes       *int64    `json:"size_bytes,omitempty"`
	FailureReason   string    `json:"failure_reason,omitempty" gorm:"size:500"`

	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns an id, default display name and initial state
func (c *Clip) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.Name == "" {
		c.Name = DefaultClipName(c.ID)
	}
	if c.State == "" {
		c.State = ClipStateCreated
	}
	return nil
}

// TableName returns the table name for the Clip model
func (Clip) TableName() string {
	return "clips"
}

// DefaultClipName derives the display name used when the request omits one
func DefaultClipName(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return "Clip " + id
}

// IsOwnedBy reports whether the clip belongs to the given identity id
func (c *Clip) IsOwnedBy(userID string) bool {
	return c.OwnerID != "" && c.OwnerID == userID
}

// Window returns the requested duration in seconds, or the remainder of
// the source when the end is open
func (c *Clip) Window() float64 {
	if c.EndTime != nil {
		return *c.EndTime - c.StartTime
	}
	if d := c.Metadata.Duration - c.StartTime; d > 0 {
		return d
	}
	return 0
}
