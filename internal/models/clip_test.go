package models

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "models.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(All()...))
	return db
}

func TestClip_BeforeCreate(t *testing.T) {
	tests := []struct {
		name      string
		clip      Clip
		wantID    string
		wantName  string
		wantState ClipState
	}{
		{
			name:      "generates id, name and state",
			clip:      Clip{},
			wantState: ClipStateCreated,
		},
		{
			name:      "keeps existing id and derives name from it",
			clip:      Clip{ID: "0123456789abcdef"},
			wantID:    "0123456789abcdef",
			wantName:  "Clip 01234567",
			wantState: ClipStateCreated,
		},
		{
			name:      "keeps provided name and state",
			clip:      Clip{Name: "Launch teaser", State: ClipStateProcessing},
			wantName:  "Launch teaser",
			wantState: ClipStateProcessing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.clip.BeforeCreate(nil))

			assert.NotEmpty(t, tt.clip.ID)
			if tt.wantID != "" {
				assert.Equal(t, tt.wantID, tt.clip.ID)
			}
			if tt.wantName != "" {
				assert.Equal(t, tt.wantName, tt.clip.Name)
			} else {
				assert.Equal(t, "Clip "+tt.clip.ID[:8], tt.clip.Name)
			}
			assert.Equal(t, tt.wantState, tt.clip.State)
		})
	}
}

func TestClipState_Transitions(t *testing.T) {
	tests := []struct {
		from, to ClipState
		allowed  bool
	}{
		{ClipStateCreated, ClipStateProcessing, true},
		{ClipStateCreated, ClipStateFailed, false},
		{ClipStateCreated, ClipStateCompleted, false},
		{ClipStateProcessing, ClipStateCompleted, true},
		{ClipStateProcessing, ClipStateFailed, true},
		{ClipStateProcessing, ClipStateCreated, false},
		{ClipStateCompleted, ClipStateFailed, false},
		{ClipStateCompleted, ClipStateProcessing, false},
		{ClipStateFailed, ClipStateCompleted, false},
		{ClipStateFailed, ClipStateProcessing, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}

	assert.True(t, ClipStateCompleted.IsTerminal())
	assert.True(t, ClipStateFailed.IsTerminal())
	assert.False(t, ClipStateCreated.IsTerminal())
	assert.False(t, ClipStateProcessing.IsTerminal())
}

func TestSourceMetadata_Normalize(t *testing.T) {
	long := strings.Repeat("é", MaxDescriptionLength+20)
	m := SourceMetadata{Duration: -3, Description: long}.Normalize()

	assert.Equal(t, 0.0, m.Duration)
	assert.Equal(t, MaxDescriptionLength, len([]rune(m.Description)))

	short := SourceMetadata{Duration: 212, Description: "ok"}.Normalize()
	assert.Equal(t, 212.0, short.Duration)
	assert.Equal(t, "ok", short.Description)
}

func TestClip_Window(t *testing.T) {
	end := 40.0
	assert.Equal(t, 30.0, (&Clip{StartTime: 10, EndTime: &end}).Window())
	assert.Equal(t, 202.0, (&Clip{StartTime: 10, Metadata: SourceMetadata{Duration: 212}}).Window())
	assert.Equal(t, 0.0, (&Clip{StartTime: 300, Metadata: SourceMetadata{Duration: 212}}).Window())
}

func TestClip_JSONColumnsRoundTrip(t *testing.T) {
	db := openTestDB(t)

	end := 10.0
	applied := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	clip := &Clip{
		OwnerID:   "user-1",
		SourceRef: "https://www.youtube.com/watch?v=abc",
		EndTime:   &end,
		Metadata:  SourceMetadata{Title: "Demo", Duration: 212, ViewCount: 42},
		Features:  FeatureList{"auto_captions", "translation"},
		Results: StageResults{
			{FeatureID: "auto_captions", Name: "Auto Captioning", Outcome: "done", Confidence: 0.95, AppliedAt: applied},
		},
	}
	require.NoError(t, db.Create(clip).Error)

	var loaded Clip
	require.NoError(t, db.First(&loaded, "id = ?", clip.ID).Error)

	assert.Equal(t, "Demo", loaded.Metadata.Title)
	assert.Equal(t, 212.0, loaded.Metadata.Duration)
	assert.Equal(t, FeatureList{"auto_captions", "translation"}, loaded.Features)
	require.Len(t, loaded.Results, 1)
	assert.Equal(t, 0.95, loaded.Results[0].Confidence)
	assert.True(t, applied.Equal(loaded.Results[0].AppliedAt))
	assert.Equal(t, ClipStateCreated, loaded.State)
	require.NotNil(t, loaded.EndTime)
	assert.Equal(t, 10.0, *loaded.EndTime)
	assert.Nil(t, loaded.DownloadLocator)
}

func TestVideoLookup_BeforeCreate(t *testing.T) {
	db := openTestDB(t)

	lookup := &VideoLookup{OwnerID: "user-1", SourceRef: "https://youtu.be/abc"}
	require.NoError(t, db.Create(lookup).Error)
	assert.Len(t, lookup.ID, 36)

	var count int64
	require.NoError(t, db.Model(&VideoLookup{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
