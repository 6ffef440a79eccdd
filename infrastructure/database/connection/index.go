package connection

import (
	"zsecure.app/infrastructure/database/connection/cache"
	"zsecure.app/infrastructure/database/connection/datastore"
)

func ConnectToDatabase() {
	datastore.ConnectToDatabase()
	cache.ConnectToCache()
}
