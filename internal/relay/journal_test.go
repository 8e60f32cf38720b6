package relay

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lllllllleong/bookorderflow/internal/models"
)

func TestMemJournalLifecycle(t *testing.T) {
	ctx := context.Background()
	journal := NewMemJournal()

	id, err := journal.Create(ctx, models.OrderRecord{
		UserID:    "user-1",
		SourceURL: "https://books.example.com/source.pdf",
		Status:    string(models.StatusFetching),
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	require.NoError(t, journal.SetStatus(ctx, id, models.StatusNormalizing))
	rec, ok := journal.Record(id)
	require.True(t, ok)
	assert.Equal(t, string(models.StatusNormalizing), rec.Status)

	require.NoError(t, journal.RecordResult(ctx, id, 39, "https://assets.test/a.pdf", "ord_123"))
	rec, ok = journal.Record(id)
	require.True(t, ok)
	assert.Equal(t, string(models.StatusCompleted), rec.Status)
	assert.Equal(t, 39, rec.PageCount)
	assert.Equal(t, "https://assets.test/a.pdf", rec.AssetURL)
	assert.Equal(t, "ord_123", rec.GelatoOrderID)
}

func TestMemJournalMarkFailed(t *testing.T) {
	ctx := context.Background()
	journal := NewMemJournal()

	id, err := journal.Create(ctx, models.OrderRecord{UserID: "user-1"})
	require.NoError(t, err)

	require.NoError(t, journal.MarkFailed(ctx, id, "Failed to download PDF: unexpected status 404"))
	rec, ok := journal.Record(id)
	require.True(t, ok)
	assert.Equal(t, string(models.StatusFailed), rec.Status)
	assert.Contains(t, rec.ErrorDetails, "unexpected status 404")
}

func TestMemJournalRejectsUnknownID(t *testing.T) {
	journal := NewMemJournal()

	assert.Error(t, journal.SetStatus(context.Background(), "rec-999999", models.StatusFetching))
	assert.Error(t, journal.MarkFailed(context.Background(), "rec-999999", "boom"))
}
