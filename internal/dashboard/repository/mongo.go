package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/scratchboard/dashboard/internal/dashboard"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultRecordID is the _id of the single dashboard record.
const DefaultRecordID = "dashboard"

// MongoRepo keeps the document as one record in a collection. The document
// is stored as its JSON text so extra link fields round-trip unchanged.
type MongoRepo struct {
	col *mongo.Collection
	id  string
}

type mongoRecord struct {
	ID        string    `bson:"_id"`
	Payload   string    `bson:"payload"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func NewMongoRepo(col *mongo.Collection, id string) *MongoRepo {
	if id == "" {
		id = DefaultRecordID
	}
	return &MongoRepo{col: col, id: id}
}

func (m *MongoRepo) Load(ctx context.Context) (*dashboard.Document, error) {
	var rec mongoRecord
	if err := m.col.FindOne(ctx, bson.M{"_id": m.id}).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find dashboard record: %w", err)
	}
	var doc dashboard.Document
	if err := json.Unmarshal([]byte(rec.Payload), &doc); err != nil {
		return nil, fmt.Errorf("decode dashboard record: %w", err)
	}
	doc.Normalize()
	return &doc, nil
}

func (m *MongoRepo) Save(ctx context.Context, doc *dashboard.Document) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	rec := mongoRecord{ID: m.id, Payload: string(b), UpdatedAt: time.Now().UTC()}
	opts := options.Replace().SetUpsert(true)
	if _, err := m.col.ReplaceOne(ctx, bson.M{"_id": m.id}, rec, opts); err != nil {
		return fmt.Errorf("replace dashboard record: %w", err)
	}
	return nil
}

func (m *MongoRepo) Ping(ctx context.Context) error {
	return m.col.Database().Client().Ping(ctx, nil)
}
