package repository

import (
	"context"
	"os"
	"time"

	"main/model"
	"main/pkg/apperrors"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PromptsRepo struct {
	MongoCollection *mongo.Collection
}

func GetPromptsRepo(client *mongo.Client) *PromptsRepo {
	return &PromptsRepo{
		MongoCollection: client.Database(os.Getenv("MONGO_DB")).Collection("prompts"),
	}
}

// Create inserts a new prompt. The store assigns the id and stamps
// created_at; whatever the caller put in those fields is overwritten.
func (r *PromptsRepo) Create(ctx context.Context, prompt *model.Prompt) (string, error) {
	timer := utils.TrackDBOperation("insert", "prompts")
	defer timer.ObserveDuration()

	prompt.ID = utils.GeneratePromptID()
	prompt.CreatedAt = time.Now().UnixMilli()

	if _, err := r.MongoCollection.InsertOne(ctx, prompt); err != nil {
		utils.TrackError("database", "prompt_creation_failed")
		return "", apperrors.Wrap(apperrors.ErrTransient, err)
	}
	return prompt.ID, nil
}

// FindByOwner returns all prompts for an owner, newest first. Ties on
// created_at fall back to _id so the order never thrashes between reads.
func (r *PromptsRepo) FindByOwner(ctx context.Context, ownerID string) ([]*model.Prompt, error) {
	timer := utils.TrackDBOperation("find", "prompts")
	defer timer.ObserveDuration()

	opts := options.Find().SetSort(bson.D{
		{Key: "created_at", Value: -1},
		{Key: "_id", Value: 1},
	})

	cursor, err := r.MongoCollection.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		utils.TrackError("database", "prompt_list_failed")
		return nil, apperrors.Wrap(apperrors.ErrTransient, err)
	}
	defer cursor.Close(ctx)

	prompts := make([]*model.Prompt, 0)
	if err = cursor.All(ctx, &prompts); err != nil {
		utils.TrackError("database", "prompt_decode_failed")
		return nil, apperrors.Wrap(apperrors.ErrTransient, err)
	}
	return prompts, nil
}

// FindByID fetches a prompt regardless of owner. The service layer turns an
// owner mismatch into a permission error.
func (r *PromptsRepo) FindByID(ctx context.Context, id string) (*model.Prompt, error) {
	timer := utils.TrackDBOperation("find", "prompts")
	defer timer.ObserveDuration()

	var prompt model.Prompt
	err := r.MongoCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&prompt)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		utils.TrackError("database", "prompt_lookup_failed")
		return nil, apperrors.Wrap(apperrors.ErrTransient, err)
	}
	return &prompt, nil
}

// Replace rewrites the full document. Partial patches are not supported;
// the caller is responsible for echoing the immutable fields.
func (r *PromptsRepo) Replace(ctx context.Context, id string, prompt *model.Prompt) error {
	timer := utils.TrackDBOperation("replace", "prompts")
	defer timer.ObserveDuration()

	prompt.ID = id
	result, err := r.MongoCollection.ReplaceOne(ctx, bson.M{"_id": id}, prompt)
	if err != nil {
		utils.TrackError("database", "prompt_update_failed")
		return apperrors.Wrap(apperrors.ErrTransient, err)
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete removes a prompt by id. Deleting an id that is already gone is not
// an error.
func (r *PromptsRepo) Delete(ctx context.Context, id string) error {
	timer := utils.TrackDBOperation("delete", "prompts")
	defer timer.ObserveDuration()

	if _, err := r.MongoCollection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		utils.TrackError("database", "prompt_deletion_failed")
		return apperrors.Wrap(apperrors.ErrTransient, err)
	}
	return nil
}

// CountByOwner counts the prompts an owner has
func (r *PromptsRepo) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	timer := utils.TrackDBOperation("count", "prompts")
	defer timer.ObserveDuration()

	count, err := r.MongoCollection.CountDocuments(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrTransient, err)
	}
	return int(count), nil
}
