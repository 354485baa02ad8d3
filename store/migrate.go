package store

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/streammon/control/instance"
	svcmongo "github.com/streammon/control/svc/mongo"
	"github.com/streammon/control/structures"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SchemaVersion is the schema generation this build writes and expects.
// v1 mirrors every _id into a string streamId/userId field and stamps
// dependent telemetry records with the streamId of their config, so a
// future cutover away from title-keyed joins has backfilled data.
const SchemaVersion int32 = 1

// Migrate brings an existing database up to SchemaVersion. It is safe to
// run on every startup: a database already at the current version is left
// untouched.
func Migrate(ctx context.Context, db instance.Mongo) error {
	globals := db.Collection(svcmongo.CollectionNameGlobalConfigs)

	var g structures.GlobalConfig
	err := globals.FindOne(ctx, bson.M{"global_configs": structures.GlobalConfigKey}).Decode(&g)
	if err != nil && err != svcmongo.ErrNoDocuments {
		return fmt.Errorf("read schema version: %w", err)
	}

	if g.SchemaVersion >= SchemaVersion {
		return nil
	}

	logrus.WithFields(logrus.Fields{
		"from": g.SchemaVersion,
		"to":   SchemaVersion,
	}).Info("migrating schema")

	if err := mirrorIDs(ctx, db, svcmongo.CollectionNameStreamConfigs, "streamId"); err != nil {
		return err
	}
	if err := mirrorIDs(ctx, db, svcmongo.CollectionNameUsers, "userId"); err != nil {
		return err
	}

	for _, c := range []struct {
		name instance.CollectionName
		key  string
	}{
		{svcmongo.CollectionNameStreamAlerts, "stream"},
		{svcmongo.CollectionNameStreamImages, "stream"},
		{svcmongo.CollectionNameStreamReports, "title"},
	} {
		if err := stampStreamID(ctx, db, c.name, c.key); err != nil {
			return err
		}
	}

	_, err = globals.UpdateOne(ctx,
		bson.M{"global_configs": structures.GlobalConfigKey},
		bson.M{"$set": bson.M{"schema_version": SchemaVersion}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("write schema version: %w", err)
	}

	return nil
}

// mirrorIDs copies each document's _id into a string field.
func mirrorIDs(ctx context.Context, db instance.Mongo, name instance.CollectionName, field string) error {
	col := db.Collection(name)

	cur, err := col.Find(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("scan %s: %w", name, err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var doc struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return fmt.Errorf("decode %s: %w", name, err)
		}

		_, err := col.UpdateOne(ctx, bson.M{"_id": doc.ID}, bson.M{"$set": bson.M{field: doc.ID.Hex()}})
		if err != nil {
			return fmt.Errorf("mirror id on %s: %w", name, err)
		}
	}

	return cur.Err()
}

// stampStreamID copies the owning config's streamId onto each telemetry
// record, resolved through the title join. Records whose title no longer
// matches a config are orphans and are skipped.
func stampStreamID(ctx context.Context, db instance.Mongo, name instance.CollectionName, titleKey string) error {
	col := db.Collection(name)
	configs := db.Collection(svcmongo.CollectionNameStreamConfigs)

	cur, err := col.Find(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("scan %s: %w", name, err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		raw := bson.M{}
		if err := cur.Decode(&raw); err != nil {
			return fmt.Errorf("decode %s: %w", name, err)
		}

		id, _ := raw["_id"].(primitive.ObjectID)
		title, _ := raw[titleKey].(string)
		if title == "" {
			continue
		}

		var cfg structures.StreamConfig
		err := configs.FindOne(ctx, bson.M{"title": title}).Decode(&cfg)
		if err == svcmongo.ErrNoDocuments {
			logrus.WithFields(logrus.Fields{
				"collection": name,
				"title":      title,
			}).Warn("orphaned telemetry record, skipping streamId stamp")
			continue
		}
		if err != nil {
			return fmt.Errorf("resolve config for %s: %w", name, err)
		}

		_, err = col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"streamId": cfg.ID.Hex()}})
		if err != nil {
			return fmt.Errorf("stamp streamId on %s: %w", name, err)
		}
	}

	return cur.Err()
}
