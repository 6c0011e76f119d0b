package mongo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/PabloGalante/farum-triage/internal/adapters/storage/mongo"
	"github.com/PabloGalante/farum-triage/internal/domain"
)

func TestMoodStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("recent moods oldest first", func(mt *mtest.T) {
		base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		first := mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "session_id", Value: "s1"}, {Key: "emotion_label", Value: "sad"}, {Key: "timestamp", Value: base.Add(time.Hour)}},
			bson.D{{Key: "session_id", Value: "s1"}, {Key: "emotion_label", Value: "happy"}, {Key: "timestamp", Value: base}},
		)
		mt.AddMockResponses(first)

		store := mongo.NewMoodStore(mt.Coll)
		moods, err := store.RecentMoods(context.Background(), "s1", 2)
		require.NoError(mt, err)
		require.Len(mt, moods, 2)
		assert.Equal(mt, domain.EmotionHappy, moods[0].EmotionLabel)
		assert.Equal(mt, domain.EmotionSad, moods[1].EmotionLabel)
	})

	mt.Run("append", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		store := mongo.NewMoodStore(mt.Coll)
		err := store.AppendMood(context.Background(), "s1", domain.MoodEntry{
			EmotionLabel: domain.EmotionAnxious,
			Timestamp:    time.Now(),
		})
		assert.NoError(mt, err)
	})

	mt.Run("query failure", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Message: "bad query",
		}))

		store := mongo.NewMoodStore(mt.Coll)
		_, err := store.RecentMoods(context.Background(), "s1", 3)
		assert.Error(mt, err)
	})
}
