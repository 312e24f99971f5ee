package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/habitaly/portal/internal/core/domain"
)

const (
	favoritesCollection     = "favorites"
	contractsCollection     = "contracts"
	notificationsCollection = "notifications"
)

// MongoCountsRepository derives navigation badge counts from the
// marketplace collections. Navigation itself only passes these through.
type MongoCountsRepository struct {
	favorites     *mongo.Collection
	contracts     *mongo.Collection
	notifications *mongo.Collection
}

func NewCountsRepository(db *mongo.Database) *MongoCountsRepository {
	return &MongoCountsRepository{
		favorites:     db.Collection(favoritesCollection),
		contracts:     db.Collection(contractsCollection),
		notifications: db.Collection(notificationsCollection),
	}
}

func (r *MongoCountsRepository) BadgeCounts(ctx context.Context, userID string) (domain.BadgeCounts, error) {
	var counts domain.BadgeCounts

	favs, err := r.favorites.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		return counts, fmt.Errorf("count favorites: %w", err)
	}

	contracts, err := r.contracts.CountDocuments(ctx, bson.M{"user_id": userID, "status": bson.M{"$ne": "archived"}})
	if err != nil {
		return counts, fmt.Errorf("count contracts: %w", err)
	}

	unread, err := r.notifications.CountDocuments(ctx, bson.M{"user_id": userID, "read": false})
	if err != nil {
		return counts, fmt.Errorf("count notifications: %w", err)
	}

	counts.Favorites = int(favs)
	counts.Contracts = int(contracts)
	counts.UnreadNotifications = int(unread)
	return counts, nil
}
