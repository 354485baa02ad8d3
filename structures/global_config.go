package structures

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GlobalConfigKey is the value of the field that addresses the singleton
// global_configs document. Workers filter on {global_configs: "1"}, so the
// key is part of the worker contract and must not change.
const GlobalConfigKey = "1"

// GlobalConfig structure is the singleton MongoDB object in the schema
// "global_configs". Exactly one instance exists, created on first use via
// upsert. The coordinator sets restart_due; workers clear it after reloading.
type GlobalConfig struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"-"`             // ObjectID		primary-key
	Key           string             `bson:"global_configs" json:"-"`            // string		singleton filter key, always "1"
	RestartDue    bool               `bson:"restart_due" json:"restart_due"`     // boolean		level-triggered restart broadcast
	SchemaVersion int32              `bson:"schema_version" json:"schema_version"` // int32
}
