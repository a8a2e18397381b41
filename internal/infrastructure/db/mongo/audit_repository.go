package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/talenthub/job-board/internal/core/domain"
)

const auditCollection = "auth_events"

// AuditRepository persists auth events to the auth_events collection.
type AuditRepository struct {
	db *mongo.Database
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Record(ctx context.Context, event domain.AuthEvent) error {
	doc := bson.M{
		"type":        string(event.Type),
		"subject":     event.Subject,
		"role":        string(event.Role),
		"remote_ip":   event.RemoteIP,
		"timestamp":   event.Timestamp.UTC(),
		"recorded_at": time.Now().UTC(),
	}

	if _, err := r.db.Collection(auditCollection).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert auth event: %w", err)
	}
	return nil
}
