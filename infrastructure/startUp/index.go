package startup

import (
	"zsecure.app/infrastructure/biometric"
	"zsecure.app/infrastructure/database"
	"zsecure.app/infrastructure/database/connection/datastore"
	fileupload "zsecure.app/infrastructure/file_upload"
	"zsecure.app/infrastructure/logger"
)

// Used to start services such as loggers, databases, queues, etc.
func StartServices() {
	logger.InitializeLogger()
	database.SetUpDatabase()
	fileupload.InitialiseFileUploader()
	biometric.InitialiseFaceModel()
}

// Used to clean up after services that have been shutdown.
func CleanUpServices() {
	datastore.CleanUp()
}
