package customerRepo

import (
	"context"
	"errors"
	"time"

	"adeonabot/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Create inserts a new customer record and returns its user ID.
// The caller is expected to have generated the 8-character identifier.
func (r *mongoCustomerRepo) Create(ctx context.Context, record models.CustomerRecord) (string, error) {
	if record.Status == "" {
		record.Status = models.StatusActive
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	_, err := r.coll.InsertOne(ctx, record)
	if err != nil {
		return "", err
	}
	return record.UserID, nil
}

// FindByUserID returns a customer record by its user ID.
func (r *mongoCustomerRepo) FindByUserID(ctx context.Context, userID string) (*models.CustomerRecord, error) {
	var record models.CustomerRecord
	err := r.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// DeleteByUserID removes a customer record by user ID.
func (r *mongoCustomerRepo) DeleteByUserID(ctx context.Context, userID string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"userId": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// UpdateStatus sets the status field of a customer record.
func (r *mongoCustomerRepo) UpdateStatus(ctx context.Context, userID string, status string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// Stats counts records by status for the admin surface.
func (r *mongoCustomerRepo) Stats(ctx context.Context) (*models.CustomerStats, error) {
	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	active, err := r.coll.CountDocuments(ctx, bson.M{"status": models.StatusActive})
	if err != nil {
		return nil, err
	}
	return &models.CustomerStats{
		TotalCustomers:     int(total),
		ActiveCustomers:    int(active),
		CancelledCustomers: int(total - active),
	}, nil
}
