package store

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/passages/pkg/story"
)

const (
	passagesCollection = "passages"
	countersCollection = "counters"
	passageCounter     = "passage"
)

// MongoSaver upserts one document per passage into the passages collection.
// Ids come from a counter document in the counters collection.
type MongoSaver struct {
	client   *mongo.Client
	passages *mongo.Collection
	counters *mongo.Collection
	logger   *log.Logger
}

// NewMongoSaver connects to uri and uses database db.
func NewMongoSaver(ctx context.Context, uri, db string, logger *log.Logger) (*MongoSaver, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	database := client.Database(db)
	return &MongoSaver{
		client:   client,
		passages: database.Collection(passagesCollection),
		counters: database.Collection(countersCollection),
		logger:   orDiscard(logger),
	}, nil
}

func (s *MongoSaver) Save(ctx context.Context, ref story.SaveRef, delta story.Delta) (string, error) {
	id := ref.ID
	if id == "" {
		next, err := s.nextID(ctx)
		if err != nil {
			return "", err
		}
		id = next
	}

	opts := options.Update().SetUpsert(true)
	if _, err := s.passages.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": setDoc(ref, delta)}, opts); err != nil {
		return "", fmt.Errorf("save passage %s: %w", id, err)
	}
	s.logger.Debug("mongo store saved passage", "id", id, "fields", delta.Fields())
	return id, nil
}

func (s *MongoSaver) nextID(ctx context.Context) (string, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := s.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": passageCounter},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&counter)
	if err != nil {
		return "", fmt.Errorf("allocate passage id: %w", err)
	}
	return strconv.FormatInt(counter.Seq, 10), nil
}

func (s *MongoSaver) Reserve(ctx context.Context, id string) error {
	n, ok := seqNumber(id)
	if !ok {
		return nil
	}
	opts := options.Update().SetUpsert(true)
	if _, err := s.counters.UpdateOne(ctx, bson.M{"_id": passageCounter}, reserveDoc(n), opts); err != nil {
		return fmt.Errorf("reserve passage id %s: %w", id, err)
	}
	return nil
}

// reserveDoc raises the counter to n without ever lowering it.
func reserveDoc(n int64) bson.M {
	return bson.M{"$max": bson.M{"seq": n}}
}

func (s *MongoSaver) Close() error {
	return s.client.Disconnect(context.Background())
}

// setDoc builds the $set document for delta; the owning story is always set
// when known.
func setDoc(ref story.SaveRef, delta story.Delta) bson.M {
	doc := bson.M{}
	for k, v := range delta {
		doc[k] = v
	}
	if ref.Story != "" {
		doc[story.FieldStory] = ref.Story
	}
	return doc
}

var _ Store = (*MongoSaver)(nil)
