// Package mongo reads the user's mood log from MongoDB.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/PabloGalante/farum-triage/internal/domain"
)

const (
	DefaultCollection = "moods"
	connectTimeout    = 10 * time.Second
)

type moodDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	SessionID    string             `bson:"session_id"`
	EmotionLabel domain.Emotion     `bson:"emotion_label"`
	Timestamp    time.Time          `bson:"timestamp"`
}

type MoodStore struct {
	coll *mongo.Collection
}

// Connect opens a client and returns a store over db.collection.
func Connect(ctx context.Context, url, db, collection string) (*MoodStore, error) {
	if collection == "" {
		collection = DefaultCollection
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(url))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return NewMoodStore(client.Database(db).Collection(collection)), nil
}

func NewMoodStore(coll *mongo.Collection) *MoodStore {
	return &MoodStore{coll: coll}
}

func (s *MoodStore) Close(ctx context.Context) error {
	return s.coll.Database().Client().Disconnect(ctx)
}

// AppendMood records one entry of the mood log.
func (s *MoodStore) AppendMood(ctx context.Context, sessionID domain.SessionID, entry domain.MoodEntry) error {
	_, err := s.coll.InsertOne(ctx, moodDoc{
		ID:           primitive.NewObjectID(),
		SessionID:    string(sessionID),
		EmotionLabel: entry.EmotionLabel,
		Timestamp:    entry.Timestamp,
	})
	if err != nil {
		return fmt.Errorf("mongo AppendMood: %w", err)
	}
	return nil
}

// RecentMoods returns the last `limit` entries, oldest first.
// If limit <= 0, returns all.
func (s *MoodStore) RecentMoods(ctx context.Context, sessionID domain.SessionID, limit int) ([]domain.MoodEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := s.coll.Find(ctx, bson.M{"session_id": string(sessionID)}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo RecentMoods: %w", err)
	}

	var docs []moodDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo RecentMoods decode: %w", err)
	}

	out := make([]domain.MoodEntry, len(docs))
	for i, d := range docs {
		out[len(docs)-1-i] = domain.MoodEntry{EmotionLabel: d.EmotionLabel, Timestamp: d.Timestamp}
	}
	return out, nil
}
