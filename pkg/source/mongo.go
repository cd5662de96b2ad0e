package source

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/cloudweights/pkg/cloud"
)

// Defaults for [MongoConfig].
const (
	DefaultMongoDatabase   = "cloudweights"
	DefaultMongoCollection = "word_counts"
)

// MongoConfig holds connection settings for [Mongo].
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// countDoc is one stored (corpus, term) row. Rank keeps the table order.
type countDoc struct {
	Corpus string `bson:"corpus"`
	Term   string `bson:"term"`
	Count  int64  `bson:"count"`
	Rank   int    `bson:"rank"`
}

// Mongo serves counts from a MongoDB collection holding one document per
// (corpus, term). Documents are returned in rank order, so a table imported
// with [Mongo.Import] reads back exactly as it was written.
type Mongo struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongo connects to MongoDB, pings the server and ensures the
// (corpus, rank) index exists.
func NewMongo(ctx context.Context, cfg MongoConfig) (*Mongo, error) {
	if cfg.Database == "" {
		cfg.Database = DefaultMongoDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultMongoCollection
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("%w: mongo connect: %w", ErrUnavailable, err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%w: mongo ping: %w", ErrUnavailable, err)
	}

	coll := client.Database(cfg.Database).Collection(cfg.Collection)
	_, err = coll.Indexes().CreateOne(connectCtx, mongo.IndexModel{
		Keys: bson.D{{Key: "corpus", Value: 1}, {Key: "rank", Value: 1}},
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%w: mongo index: %w", ErrUnavailable, err)
	}
	return &Mongo{client: client, coll: coll}, nil
}

// Fetch reads the documents for corpus in rank order.
func (m *Mongo) Fetch(ctx context.Context, corpus string) ([]cloud.RawCount, error) {
	cur, err := m.coll.Find(ctx,
		bson.D{{Key: "corpus", Value: corpus}},
		options.Find().SetSort(bson.D{{Key: "rank", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: mongo find: %w", ErrUnavailable, err)
	}

	var docs []countDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: mongo decode: %w", ErrUnavailable, err)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, corpus)
	}
	return countsFromDocs(docs)
}

func countsFromDocs(docs []countDoc) ([]cloud.RawCount, error) {
	counts := make([]cloud.RawCount, len(docs))
	for i, d := range docs {
		if d.Count < 0 {
			return nil, fmt.Errorf("%w: negative count %d for %q", ErrUnavailable, d.Count, d.Term)
		}
		counts[i] = cloud.RawCount{Term: d.Term, Count: uint64(d.Count)}
	}
	return counts, nil
}

func docsFromCounts(corpus string, counts []cloud.RawCount) []any {
	docs := make([]any, len(counts))
	for i, c := range counts {
		docs[i] = countDoc{Corpus: corpus, Term: c.Term, Count: int64(c.Count), Rank: i}
	}
	return docs
}

// Corpora lists the distinct corpus identifiers in the collection.
func (m *Mongo) Corpora(ctx context.Context) ([]string, error) {
	values, err := m.coll.Distinct(ctx, "corpus", bson.D{})
	if err != nil {
		return nil, fmt.Errorf("%w: mongo distinct: %w", ErrUnavailable, err)
	}
	ids := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			ids = append(ids, s)
		}
	}
	slices.Sort(ids)
	return ids, nil
}

// Import replaces the stored tables with the catalog's contents.
func (m *Mongo) Import(ctx context.Context, catalog *Catalog) error {
	for _, id := range catalog.Corpora() {
		counts, _ := catalog.Lookup(id)
		if _, err := m.coll.DeleteMany(ctx, bson.D{{Key: "corpus", Value: id}}); err != nil {
			return fmt.Errorf("%w: mongo import %s: %w", ErrUnavailable, id, err)
		}
		if len(counts) == 0 {
			continue
		}
		if _, err := m.coll.InsertMany(ctx, docsFromCounts(id, counts)); err != nil {
			return fmt.Errorf("%w: mongo import %s: %w", ErrUnavailable, id, err)
		}
	}
	return nil
}

// Close disconnects from the server.
func (m *Mongo) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}

var (
	_ Source = (*Mongo)(nil)
	_ Lister = (*Mongo)(nil)
)
