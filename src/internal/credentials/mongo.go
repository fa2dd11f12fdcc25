package credentials

import (
	"context"
	"errors"

	"auth-session-svc/src/clients"
	"auth-session-svc/src/internal/models"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type userDocument struct {
	Username     string `bson:"username"`
	PasswordHash string `bson:"password_hash"`
}

// MongoVerifier checks credentials against a users collection holding
// bcrypt password hashes.
type MongoVerifier struct {
	collection *mongo.Collection
}

func NewMongoVerifier(db *clients.MongoDB, collectionName string) *MongoVerifier {
	return &MongoVerifier{
		collection: db.Database.Collection(collectionName),
	}
}

func (v *MongoVerifier) Verify(ctx context.Context, username, password string) (bool, error) {
	filter := bson.M{
		"username":   username,
		"deleted_at": bson.M{"$exists": false},
	}

	var user userDocument
	err := v.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Unknown user looks identical to a wrong password.
			return false, nil
		}
		logrus.WithError(err).WithField("username", username).Error("Failed to look up user")
		return false, models.ErrDatabaseQuery
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return false, nil
	}

	return true, nil
}
