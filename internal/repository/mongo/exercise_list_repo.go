package mongo

import (
	"alcyxob/fitcoach-api/internal/domain"
	"alcyxob/fitcoach-api/internal/repository"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const exerciseListCollectionName = "exercise_lists"

type exerciseListDocument struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"userId"`
	Name      string    `bson:"name"`
	Items     []string  `bson:"items"`
	CreatedAt time.Time `bson:"createdAt"`
}

// mongoExerciseListRepository implements repository.ExerciseListRepository
type mongoExerciseListRepository struct {
	collection *mongo.Collection
}

// NewMongoExerciseListRepository creates a new exercise list repository backed by MongoDB.
func NewMongoExerciseListRepository(db *mongo.Database) repository.ExerciseListRepository {
	return &mongoExerciseListRepository{
		collection: db.Collection(exerciseListCollectionName),
	}
}

// Create inserts a new exercise list into the database.
func (r *mongoExerciseListRepository) Create(ctx context.Context, list *domain.ExerciseList) error {
	if list.Name == "" || list.UserID == "" {
		return errors.New("exercise list name and user ID are required")
	}
	list.ID = uuid.NewString()
	list.CreatedAt = time.Now().UTC()

	_, err := r.collection.InsertOne(ctx, exerciseListDocument{
		ID:        list.ID,
		UserID:    list.UserID,
		Name:      list.Name,
		Items:     list.Items,
		CreatedAt: list.CreatedAt,
	})
	return err
}

// ListByUser retrieves all exercise lists of a user, newest first.
func (r *mongoExerciseListRepository) ListByUser(ctx context.Context, userID string) ([]domain.ExerciseList, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []exerciseListDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	lists := make([]domain.ExerciseList, 0, len(docs))
	for _, d := range docs {
		lists = append(lists, d.toDomain())
	}
	return lists, nil
}

// GetByID retrieves an exercise list owned by userID.
func (r *mongoExerciseListRepository) GetByID(ctx context.Context, id, userID string) (*domain.ExerciseList, error) {
	var doc exerciseListDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "userId": userID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	l := doc.toDomain()
	return &l, nil
}

// Delete removes an exercise list, ensuring it belongs to userID.
func (r *mongoExerciseListRepository) Delete(ctx context.Context, id, userID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (d exerciseListDocument) toDomain() domain.ExerciseList {
	items := d.Items
	if items == nil {
		items = []string{}
	}
	return domain.ExerciseList{
		ID:        d.ID,
		UserID:    d.UserID,
		Name:      d.Name,
		Items:     items,
		CreatedAt: d.CreatedAt.UTC(),
	}
}

// EnsureExerciseListIndexes creates necessary indexes for the exercise_lists collection.
func EnsureExerciseListIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
