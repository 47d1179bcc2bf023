package storage

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/nijamuddin66526-boop/offerzon/internal/models"
)

const dealsCollection = "deals"

// Client wraps the Firestore listing store. Deals live in a single collection
// ordered by createdAt descending; writes are insert-one and delete-by-id
// only, never update-in-place.
type Client struct {
	client *firestore.Client
}

func New(ctx context.Context, projectID string) (*Client, error) {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("firestore.NewClient: %w", err)
	}
	return &Client{client: client}, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

func (c *Client) dealsQuery() firestore.Query {
	return c.client.Collection(dealsCollection).OrderBy("createdAt", firestore.Desc)
}

// ListDeals fetches the full collection once, newest first.
func (c *Client) ListDeals(ctx context.Context) ([]models.Deal, error) {
	iter := c.dealsQuery().Documents(ctx)
	defer iter.Stop()

	deals := make([]models.Deal, 0, 64)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate deals: %w", err)
		}

		deal, err := decodeDeal(doc)
		if err != nil {
			slog.Warn("Skipping undecodable deal document", "id", doc.Ref.ID, "error", err)
			continue
		}
		deals = append(deals, deal)
	}
	return deals, nil
}

// Watch subscribes to the collection and invokes fn with a full snapshot on
// every change. It blocks until the context is cancelled (returning nil) or
// the listener fails (returning the error). Callers keep their previous
// snapshot on failure; there is no retry here.
func (c *Client) Watch(ctx context.Context, fn func([]models.Deal)) error {
	snaps := c.dealsQuery().Snapshots(ctx)
	defer snaps.Stop()

	for {
		snap, err := snaps.Next()
		if err != nil {
			if status.Code(err) == codes.Canceled || ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("deals snapshot listener failed: %w", err)
		}

		deals, err := decodeSnapshot(snap)
		if err != nil {
			slog.Warn("Dropping undecodable deals snapshot", "error", err)
			continue
		}
		fn(deals)
	}
}

func decodeSnapshot(snap *firestore.QuerySnapshot) ([]models.Deal, error) {
	deals := make([]models.Deal, 0, 64)
	for {
		doc, err := snap.Documents.Next()
		if err == iterator.Done {
			return deals, nil
		}
		if err != nil {
			return nil, err
		}

		deal, err := decodeDeal(doc)
		if err != nil {
			slog.Warn("Skipping undecodable deal document", "id", doc.Ref.ID, "error", err)
			continue
		}
		deals = append(deals, deal)
	}
}

func decodeDeal(doc *firestore.DocumentSnapshot) (models.Deal, error) {
	var deal models.Deal
	if err := doc.DataTo(&deal); err != nil {
		return models.Deal{}, fmt.Errorf("failed to unmarshal deal data: %w", err)
	}
	deal.ID = doc.Ref.ID
	return deal, nil
}

// CreateDeal inserts one document and returns its generated ID.
func (c *Client) CreateDeal(ctx context.Context, deal models.Deal) (string, error) {
	docRef := c.client.Collection(dealsCollection).NewDoc()
	if _, err := docRef.Create(ctx, deal); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return "", models.ErrDealExists
		}
		return "", fmt.Errorf("failed to create deal: %w", err)
	}
	return docRef.ID, nil
}

// DeleteDeal removes the document with the given ID.
func (c *Client) DeleteDeal(ctx context.Context, id string) error {
	docRef := c.client.Collection(dealsCollection).Doc(id)

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return models.ErrDealNotFound
		}
		return fmt.Errorf("failed to load deal %s for delete: %w", id, err)
	}
	if !doc.Exists() {
		return models.ErrDealNotFound
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete deal %s: %w", id, err)
	}
	return nil
}
