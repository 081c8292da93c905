// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/carpoolhub/internal/app/system/realtime"
	"github.com/dalemusser/carpoolhub/internal/app/system/workers"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app.
//
// Hub and Snapshots are long-lived back ends shared by the handlers and
// torn down in Shutdown. Snapshots is nil when the refresher is disabled.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	Hub       *realtime.Hub
	Snapshots *workers.SnapshotRefresher
}
