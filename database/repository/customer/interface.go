package customerRepo

import (
	"context"
	"errors"

	"adeonabot/database"
	"adeonabot/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrRecordNotFound is returned when no record matches the given identifier.
var ErrRecordNotFound = errors.New("customer record not found")

// CustomerRepository is the record store contract for committed service
// requests. Missing records surface as ErrRecordNotFound, never as raw
// driver errors.
type CustomerRepository interface {
	Create(ctx context.Context, record models.CustomerRecord) (string, error)
	FindByUserID(ctx context.Context, userID string) (*models.CustomerRecord, error)
	DeleteByUserID(ctx context.Context, userID string) error
	UpdateStatus(ctx context.Context, userID string, status string) error
	Stats(ctx context.Context) (*models.CustomerStats, error)
}

type mongoCustomerRepo struct {
	coll *mongo.Collection
}

// NewMongoCustomerRepo returns a new CustomerRepository instance using MongoDB.
func NewMongoCustomerRepo() CustomerRepository {
	db := database.MongoClient.Database("adeonabot")
	return &mongoCustomerRepo{
		coll: db.Collection("customer_records"),
	}
}
