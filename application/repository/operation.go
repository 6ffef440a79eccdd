package repository

import (
	"sync"

	"zsecure.app/entities"
	"zsecure.app/infrastructure/database/connection/datastore"
	"zsecure.app/infrastructure/database/repository/mongo"
)

var operationOnce = sync.Once{}

var operationRepository mongo.MongoRepository[entities.Operation]

func OperationRepo() *mongo.MongoRepository[entities.Operation] {
	operationOnce.Do(func() {
		operationRepository = mongo.MongoRepository[entities.Operation]{Model: datastore.OperationModel}
	})
	return &operationRepository
}
