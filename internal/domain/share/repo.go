package share

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Repo is the Firestore-backed store for share records.
type Repo struct {
	fs         *firestore.Client
	collection string
	log        *zap.Logger
}

func NewRepo(fs *firestore.Client, collection string, log *zap.Logger) *Repo {
	return &Repo{fs: fs, collection: collection, log: log}
}

func (r *Repo) col() *firestore.CollectionRef {
	return r.fs.Collection(r.collection)
}

// FetchPending returns up to limit undelivered records, oldest first.
// Documents that fail to decode are logged and skipped, never fatal.
func (r *Repo) FetchPending(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	q := r.col().Query.
		Where("delivered", "==", false).
		OrderBy("createdAt", firestore.Asc).
		Limit(limit)

	iter := q.Documents(ctx)
	defer iter.Stop()

	var records []Record
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			if status.Code(err) == codes.Unauthenticated || status.Code(err) == codes.PermissionDenied {
				return nil, fmt.Errorf("%w: %v", ErrAuth, err)
			}
			return nil, fmt.Errorf("%w: %v", ErrQuery, err)
		}

		rec, err := FromDoc(doc)
		if err != nil {
			r.log.Warn("skipping malformed record",
				zap.String("id", doc.Ref.ID),
				zap.Error(err))
			continue
		}
		records = append(records, rec)
	}

	return records, nil
}

// MarkDelivered flags a record as consumed. The TTL policy on expiredAt
// cleans the document up later. A record the TTL already evicted is a
// no-op, not an error.
func (r *Repo) MarkDelivered(ctx context.Context, id string) error {
	_, err := r.col().Doc(id).Update(ctx, []firestore.Update{
		{Path: "delivered", Value: true},
		{Path: "deliveredAt", Value: time.Now().UTC()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrRetire, err)
	}
	return nil
}

// Delete removes a record outright. Deleting a nonexistent document
// already succeeds in Firestore, so eviction races are covered.
func (r *Repo) Delete(ctx context.Context, id string) error {
	_, err := r.col().Doc(id).Delete(ctx)
	if err != nil && status.Code(err) != codes.NotFound {
		return fmt.Errorf("%w: %v", ErrRetire, err)
	}
	return nil
}

// Create writes a new pending record. Used by the producer CLI.
func (r *Repo) Create(ctx context.Context, rawURL string, ttl time.Duration) (*Record, error) {
	decoded, err := DecodeURL(rawURL)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	rec := Record{
		URL:       decoded,
		CreatedAt: now,
		ExpiredAt: now.Add(ttl),
		Delivered: false,
	}

	ref := r.col().NewDoc()
	if _, err := ref.Set(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to create share record: %w", err)
	}
	rec.ID = ref.ID

	return &rec, nil
}
