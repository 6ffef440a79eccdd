package repository

import (
	"sync"

	"zsecure.app/entities"
	"zsecure.app/infrastructure/database/connection/datastore"
	"zsecure.app/infrastructure/database/repository/mongo"
)

var securityEventOnce = sync.Once{}

var securityEventRepository mongo.MongoRepository[entities.SecurityEvent]

func SecurityEventRepo() *mongo.MongoRepository[entities.SecurityEvent] {
	securityEventOnce.Do(func() {
		securityEventRepository = mongo.MongoRepository[entities.SecurityEvent]{Model: datastore.SecurityEventModel}
	})
	return &securityEventRepository
}
