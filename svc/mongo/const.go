package mongo

import "github.com/streammon/control/instance"

// Collection names are fixed by the worker contract: external monitor
// processes read stream_configs/users/global_configs and write the
// telemetry collections under exactly these names.
const (
	CollectionNameGlobalConfigs instance.CollectionName = "global_configs"
	CollectionNameStreamConfigs instance.CollectionName = "stream_configs"
	CollectionNameStreamReports instance.CollectionName = "stream_reports"
	CollectionNameStreamImages  instance.CollectionName = "stream_images"
	CollectionNameStreamAlerts  instance.CollectionName = "stream_alerts"
	CollectionNameUsers         instance.CollectionName = "users"
)
