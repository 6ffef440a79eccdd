package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"zsecure.app/infrastructure/logger"
)

func (repo *MongoRepository[T]) CreateOne(ctx context.Context, payload T) (*T, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	c, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	parsed := payload.ParseModel().(*T)
	_, err := repo.Model.InsertOne(c, parsed)
	if err != nil {
		logger.Error("mongo error occured while running CreateOne", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	return parsed, nil
}

func (repo *MongoRepository[T]) FindByID(id string, opts ...*options.FindOneOptions) (*T, error) {
	return repo.FindOneByFilter(map[string]any{"_id": id}, opts...)
}

func (repo *MongoRepository[T]) FindOneByFilter(filter map[string]any, opts ...*options.FindOneOptions) (*T, error) {
	c, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var result T
	err := repo.Model.FindOne(c, normaliseFilter(filter), opts...).Decode(&result)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		logger.Error("mongo error occured while running FindOneByFilter", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	return &result, nil
}

func (repo *MongoRepository[T]) FindManyByFilter(filter map[string]any, opts ...*options.FindOptions) (*[]T, error) {
	c, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	cursor, err := repo.Model.Find(c, normaliseFilter(filter), opts...)
	if err != nil {
		logger.Error("mongo error occured while running FindManyByFilter", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	var results []T
	if err := cursor.All(c, &results); err != nil {
		logger.Error("mongo error occured while decoding FindManyByFilter results", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	return &results, nil
}

func (repo *MongoRepository[T]) UpdatePartialByID(id string, payload map[string]any) (bool, error) {
	return repo.UpdatePartialByFilter(map[string]any{"_id": id}, payload)
}

func (repo *MongoRepository[T]) UpdatePartialByFilter(filter map[string]any, payload map[string]any) (bool, error) {
	c, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	payload["updatedAt"] = time.Now()
	result, err := repo.Model.UpdateOne(c, normaliseFilter(filter), bson.M{"$set": payload})
	if err != nil {
		logger.Error("mongo error occured while running UpdatePartialByFilter", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return false, err
	}
	return result.MatchedCount == 1, nil
}

func (repo *MongoRepository[T]) DeleteByID(id string) (int64, error) {
	c, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	result, err := repo.Model.DeleteOne(c, bson.M{"_id": id})
	if err != nil {
		logger.Error("mongo error occured while running DeleteByID", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return 0, err
	}
	return result.DeletedCount, nil
}

func (repo *MongoRepository[T]) DeleteManyByFilter(filter map[string]any) (int64, error) {
	c, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	result, err := repo.Model.DeleteMany(c, normaliseFilter(filter))
	if err != nil {
		logger.Error("mongo error occured while running DeleteManyByFilter", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return 0, err
	}
	return result.DeletedCount, nil
}

func (repo *MongoRepository[T]) CountDocs(filter map[string]any) (int64, error) {
	c, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	count, err := repo.Model.CountDocuments(c, normaliseFilter(filter))
	if err != nil {
		logger.Error("mongo error occured while running CountDocs", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return 0, err
	}
	return count, nil
}

func normaliseFilter(filter map[string]any) bson.M {
	parsed := bson.M{}
	for key, value := range filter {
		parsed[key] = value
	}
	return parsed
}
