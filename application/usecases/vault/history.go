package vault_usecases

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	apperrors "zsecure.app/application/appErrors"
	"zsecure.app/application/controller/dto"
	"zsecure.app/application/repository"
	"zsecure.app/entities"
)

const defaultHistoryPageSize = 25

// OperationHistoryUseCase lists a user's vault operations newest first,
// cursor-paginated on the ULID primary key.
func OperationHistoryUseCase(ctx any, userID string, filter *dto.OperationHistoryFilterDTO, deviceID *string) (*[]entities.Operation, error) {
	query := map[string]any{
		"userID": userID,
	}
	if filter.Type != nil {
		query["type"] = *filter.Type
	}
	if filter.LastID != nil {
		query["_id"] = bson.M{"$lt": *filter.LastID}
	}
	pageSize := filter.PageSize
	if pageSize == 0 {
		pageSize = defaultHistoryPageSize
	}

	operationRepo := repository.OperationRepo()
	operations, err := operationRepo.FindManyByFilter(query,
		options.Find().SetSort(bson.M{"_id": -1}).SetLimit(pageSize))
	if err != nil {
		apperrors.UnknownError(ctx, err, nil, *deviceID)
		return nil, err
	}
	return operations, nil
}
