package relay

import (
	"context"
	"fmt"
	"sync"

	"cloud.google.com/go/firestore"

	"github.com/Lllllllleong/bookorderflow/internal/models"
)

// OrderJournal records each request's progress through the pipeline:
// RECEIVED -> FETCHING -> NORMALIZING -> PUBLISHING -> SUBMITTING ->
// COMPLETED, with FAILED reachable from every state. It is internal
// bookkeeping only; no read API is exposed to callers.
type OrderJournal interface {
	Create(ctx context.Context, rec models.OrderRecord) (string, error)
	SetStatus(ctx context.Context, id string, status models.OrderStatus) error
	MarkFailed(ctx context.Context, id, details string) error
	RecordResult(ctx context.Context, id string, pageCount int, assetURL, gelatoOrderID string) error
}

// FirestoreJournal persists order records to a Firestore collection.
type FirestoreJournal struct {
	client     *firestore.Client
	collection string
}

func NewFirestoreJournal(client *firestore.Client, collection string) *FirestoreJournal {
	return &FirestoreJournal{client: client, collection: collection}
}

func (j *FirestoreJournal) Create(ctx context.Context, rec models.OrderRecord) (string, error) {
	docRef, _, err := j.client.Collection(j.collection).Add(ctx, rec)
	if err != nil {
		return "", fmt.Errorf("failed to create order record: %w", err)
	}
	return docRef.ID, nil
}

func (j *FirestoreJournal) SetStatus(ctx context.Context, id string, status models.OrderStatus) error {
	return j.update(ctx, id, []firestore.Update{
		{Path: "status", Value: string(status)},
	})
}

func (j *FirestoreJournal) MarkFailed(ctx context.Context, id, details string) error {
	return j.update(ctx, id, []firestore.Update{
		{Path: "status", Value: string(models.StatusFailed)},
		{Path: "errorDetails", Value: details},
	})
}

func (j *FirestoreJournal) RecordResult(ctx context.Context, id string, pageCount int, assetURL, gelatoOrderID string) error {
	return j.update(ctx, id, []firestore.Update{
		{Path: "status", Value: string(models.StatusCompleted)},
		{Path: "pageCount", Value: pageCount},
		{Path: "assetUrl", Value: assetURL},
		{Path: "gelatoOrderId", Value: gelatoOrderID},
	})
}

func (j *FirestoreJournal) update(ctx context.Context, id string, updates []firestore.Update) error {
	if _, err := j.client.Collection(j.collection).Doc(id).Update(ctx, updates); err != nil {
		return fmt.Errorf("failed to update order record %s: %w", id, err)
	}
	return nil
}

// MemJournal keeps order records in memory. Used in tests and when no
// Firestore project is configured.
type MemJournal struct {
	mu      sync.Mutex
	seq     int
	records map[string]models.OrderRecord
}

func NewMemJournal() *MemJournal {
	return &MemJournal{records: make(map[string]models.OrderRecord)}
}

func (j *MemJournal) Create(_ context.Context, rec models.OrderRecord) (string, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.seq++
	id := fmt.Sprintf("rec-%06d", j.seq)
	j.records[id] = rec
	return id, nil
}

func (j *MemJournal) SetStatus(_ context.Context, id string, status models.OrderStatus) error {
	return j.mutate(id, func(rec *models.OrderRecord) {
		rec.Status = string(status)
	})
}

func (j *MemJournal) MarkFailed(_ context.Context, id, details string) error {
	return j.mutate(id, func(rec *models.OrderRecord) {
		rec.Status = string(models.StatusFailed)
		rec.ErrorDetails = details
	})
}

func (j *MemJournal) RecordResult(_ context.Context, id string, pageCount int, assetURL, gelatoOrderID string) error {
	return j.mutate(id, func(rec *models.OrderRecord) {
		rec.Status = string(models.StatusCompleted)
		rec.PageCount = pageCount
		rec.AssetURL = assetURL
		rec.GelatoOrderID = gelatoOrderID
	})
}

// Record returns a snapshot of a stored record.
func (j *MemJournal) Record(id string) (models.OrderRecord, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	rec, ok := j.records[id]
	return rec, ok
}

// Len reports the number of records created so far.
func (j *MemJournal) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.records)
}

func (j *MemJournal) mutate(id string, fn func(*models.OrderRecord)) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	rec, ok := j.records[id]
	if !ok {
		return fmt.Errorf("no order record with id %s", id)
	}
	fn(&rec)
	j.records[id] = rec
	return nil
}
