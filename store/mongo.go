package store

import (
	"context"
	"fmt"

	"github.com/streammon/control/errors"
	"github.com/streammon/control/instance"
	svcmongo "github.com/streammon/control/svc/mongo"
	"github.com/streammon/control/structures"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NewMongo returns Stores backed by the shared document database.
func NewMongo(db instance.Mongo) Stores {
	return Stores{
		Streams: mongoStreams{db},
		Users:   mongoUsers{db},
		Reports: mongoReports{db},
		Images:  mongoImages{db},
		Alerts:  mongoAlerts{db},
		Globals: mongoGlobals{db},
	}
}

type mongoStreams struct {
	db instance.Mongo
}

func (s mongoStreams) List(ctx context.Context) ([]structures.StreamConfig, error) {
	cur, err := s.db.Collection(svcmongo.CollectionNameStreamConfigs).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list stream configs: %w", err)
	}

	var out []structures.StreamConfig
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode stream configs: %w", err)
	}

	return out, nil
}

func (s mongoStreams) Insert(ctx context.Context, cfg structures.StreamConfig) (primitive.ObjectID, error) {
	col := s.db.Collection(svcmongo.CollectionNameStreamConfigs)

	res, err := col.InsertOne(ctx, bson.M{
		"title":   cfg.Title,
		"uri":     cfg.URI,
		"audio":   cfg.Audio,
		"enabled": cfg.Enabled,
	})
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert stream config: %w", err)
	}

	id := res.InsertedID.(primitive.ObjectID)

	// schema v1 keeps a string mirror of _id on every config
	if _, err := col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"streamId": id.Hex()}}); err != nil {
		return id, fmt.Errorf("backfill streamId: %w", err)
	}

	return id, nil
}

func (s mongoStreams) Update(ctx context.Context, id primitive.ObjectID, cfg structures.StreamConfig) error {
	_, err := s.db.Collection(svcmongo.CollectionNameStreamConfigs).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"title":   cfg.Title,
			"uri":     cfg.URI,
			"audio":   cfg.Audio,
			"enabled": cfg.Enabled,
		}},
	)
	if err != nil {
		return fmt.Errorf("update stream config: %w", err)
	}

	return nil
}

func (s mongoStreams) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.db.Collection(svcmongo.CollectionNameStreamConfigs).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete stream config: %w", err)
	}

	return nil
}

type mongoUsers struct {
	db instance.Mongo
}

func (s mongoUsers) List(ctx context.Context) ([]structures.User, error) {
	cur, err := s.db.Collection(svcmongo.CollectionNameUsers).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	var out []structures.User
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	return out, nil
}

func (s mongoUsers) FindByLogin(ctx context.Context, username, password string) (structures.User, error) {
	var u structures.User

	err := s.db.Collection(svcmongo.CollectionNameUsers).
		FindOne(ctx, bson.M{"username": username, "password": password}).
		Decode(&u)
	if err == svcmongo.ErrNoDocuments {
		return structures.User{}, errors.ErrNotFound
	}
	if err != nil {
		return structures.User{}, fmt.Errorf("find user: %w", err)
	}

	return u, nil
}

func (s mongoUsers) Insert(ctx context.Context, u structures.User) (primitive.ObjectID, error) {
	col := s.db.Collection(svcmongo.CollectionNameUsers)

	res, err := col.InsertOne(ctx, bson.M{
		"enabled":        u.Enabled,
		"username":       u.Username,
		"pushover_id":    u.PushoverID,
		"pushover_token": u.PushoverToken,
		"password":       u.Password,
	})
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert user: %w", err)
	}

	id := res.InsertedID.(primitive.ObjectID)

	if _, err := col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"userId": id.Hex()}}); err != nil {
		return id, fmt.Errorf("backfill userId: %w", err)
	}

	return id, nil
}

func (s mongoUsers) Update(ctx context.Context, id primitive.ObjectID, u structures.User) error {
	_, err := s.db.Collection(svcmongo.CollectionNameUsers).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"enabled":        u.Enabled,
			"username":       u.Username,
			"pushover_id":    u.PushoverID,
			"pushover_token": u.PushoverToken,
			"password":       u.Password,
		}},
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	return nil
}

func (s mongoUsers) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.db.Collection(svcmongo.CollectionNameUsers).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	return nil
}

type mongoReports struct {
	db instance.Mongo
}

func (s mongoReports) ByTitle(ctx context.Context, title string) (structures.StreamReport, error) {
	var r structures.StreamReport

	err := s.db.Collection(svcmongo.CollectionNameStreamReports).
		FindOne(ctx, bson.M{"title": title}).
		Decode(&r)
	if err == svcmongo.ErrNoDocuments {
		return structures.StreamReport{}, errors.ErrNotFound
	}
	if err != nil {
		return structures.StreamReport{}, fmt.Errorf("find stream report: %w", err)
	}

	return r, nil
}

type mongoImages struct {
	db instance.Mongo
}

func (s mongoImages) ByStream(ctx context.Context, title string) (structures.StreamImage, error) {
	var img structures.StreamImage

	err := s.db.Collection(svcmongo.CollectionNameStreamImages).
		FindOne(ctx, bson.M{"stream": title}).
		Decode(&img)
	if err == svcmongo.ErrNoDocuments {
		return structures.StreamImage{}, errors.ErrNotFound
	}
	if err != nil {
		return structures.StreamImage{}, fmt.Errorf("find stream image: %w", err)
	}

	return img, nil
}

type mongoAlerts struct {
	db instance.Mongo
}

func (s mongoAlerts) Latest(ctx context.Context, limit int64) ([]structures.StreamAlert, error) {
	opts := options.Find().
		SetSort(bson.M{"timestamp": -1}).
		SetLimit(limit)

	cur, err := s.db.Collection(svcmongo.CollectionNameStreamAlerts).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list stream alerts: %w", err)
	}

	var out []structures.StreamAlert
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode stream alerts: %w", err)
	}

	return out, nil
}

type mongoGlobals struct {
	db instance.Mongo
}

func (s mongoGlobals) Get(ctx context.Context) (structures.GlobalConfig, error) {
	var g structures.GlobalConfig

	err := s.db.Collection(svcmongo.CollectionNameGlobalConfigs).
		FindOne(ctx, bson.M{"global_configs": structures.GlobalConfigKey}).
		Decode(&g)
	if err == svcmongo.ErrNoDocuments {
		return structures.GlobalConfig{}, errors.ErrNotFound
	}
	if err != nil {
		return structures.GlobalConfig{}, fmt.Errorf("find global config: %w", err)
	}

	return g, nil
}

func (s mongoGlobals) SetRestartDue(ctx context.Context, due bool) error {
	_, err := s.db.Collection(svcmongo.CollectionNameGlobalConfigs).UpdateOne(ctx,
		bson.M{"global_configs": structures.GlobalConfigKey},
		bson.M{"$set": bson.M{"restart_due": due}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("set restart_due: %w", err)
	}

	return nil
}
