package mongo

import (
	"context"
	"fmt"
	"time"

	"segmentation-service/internal/segmentation"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
)

const clientsCollection = "clients"

// clientDoc mirrors a document of the clients collection.
type clientDoc struct {
	ID                     bson.RawValue   `bson:"_id"`
	FirstName              string          `bson:"firstName"`
	LastName               string          `bson:"lastName"`
	BirthDate              *time.Time      `bson:"birthDate,omitempty"`
	Gender                 string          `bson:"gender"`
	Country                string          `bson:"country"`
	PreferredContactMethod string          `bson:"preferredContactMethod"`
	Languages              []string        `bson:"languages"`
	Preferences            []string        `bson:"preferences"`
	Tags                   []bson.RawValue `bson:"tags"`
	Subscriptions          []string        `bson:"subscriptions"`
	TelegramConfirmed      bool            `bson:"telegramConfirmed"`
}

// Connect opens a client and verifies the deployment is reachable.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	return client, nil
}

// ClientSource reads active clients from a MongoDB database.
type ClientSource struct {
	coll *mongo.Collection
}

func NewClientSource(db *mongo.Database) *ClientSource {
	return &ClientSource{
		coll: db.Collection(clientsCollection, options.Collection().SetReadConcern(readconcern.Majority())),
	}
}

// LoadClients reads every client not explicitly marked inactive, ordered by id.
func (s *ClientSource) LoadClients(ctx context.Context) ([]segmentation.ClientRecord, error) {
	filter := bson.M{"isActive": bson.M{"$ne": false}}
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer cur.Close(ctx)

	var docs []clientDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode clients: %w", err)
	}

	out := make([]segmentation.ClientRecord, 0, len(docs))
	for _, d := range docs {
		rec, err := d.record()
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func (d clientDoc) record() (segmentation.ClientRecord, error) {
	id, ok := idString(d.ID)
	if !ok {
		return segmentation.ClientRecord{}, fmt.Errorf("client has unsupported _id type %s", d.ID.Type)
	}
	rec := segmentation.ClientRecord{
		ID:                     id,
		FirstName:              d.FirstName,
		LastName:               d.LastName,
		Gender:                 d.Gender,
		Country:                d.Country,
		PreferredContactMethod: d.PreferredContactMethod,
		Languages:              d.Languages,
		Preferences:            d.Preferences,
		Subscriptions:          d.Subscriptions,
		TelegramConfirmed:      d.TelegramConfirmed,
	}
	if d.BirthDate != nil {
		rec.BirthDate = d.BirthDate.UTC()
	}
	for _, t := range d.Tags {
		// tags are either names or references to tag documents
		if s, ok := idString(t); ok {
			rec.Tags = append(rec.Tags, s)
		}
	}
	return rec, nil
}

func idString(v bson.RawValue) (string, bool) {
	switch v.Type {
	case bsontype.ObjectID:
		return v.ObjectID().Hex(), true
	case bsontype.String:
		return v.StringValue(), true
	default:
		return "", false
	}
}
