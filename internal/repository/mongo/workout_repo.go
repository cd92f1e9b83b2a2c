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

const workoutCollectionName = "workout_programs"

// workoutDocument is the stored shape of a saved program. Program and
// preferences are kept as JSON text, same as the relational backend.
type workoutDocument struct {
	ID              string    `bson:"_id"`
	UserID          string    `bson:"userId"`
	Title           string    `bson:"title"`
	InputText       *string   `bson:"inputText,omitempty"`
	PreferencesJSON *string   `bson:"preferencesJson,omitempty"`
	ProgramJSON     string    `bson:"programJson"`
	CreatedAt       time.Time `bson:"createdAt"`
}

// mongoWorkoutRepository implements repository.WorkoutRepository
type mongoWorkoutRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutRepository creates a new Workout repository.
func NewMongoWorkoutRepository(db *mongo.Database) repository.WorkoutRepository {
	return &mongoWorkoutRepository{
		collection: db.Collection(workoutCollectionName),
	}
}

// Create inserts a new saved program.
func (r *mongoWorkoutRepository) Create(ctx context.Context, workout *domain.WorkoutProgram) error {
	if workout.UserID == "" {
		return errors.New("workout requires a user id")
	}
	programJSON, err := repository.EncodeProgram(workout.Program)
	if err != nil {
		return err
	}
	prefsJSON, err := repository.EncodePreferences(workout.Preferences)
	if err != nil {
		return err
	}

	workout.ID = uuid.NewString()
	workout.CreatedAt = time.Now().UTC()
	if workout.Title == "" {
		workout.Title = domain.DefaultWorkoutTitle
	}

	_, err = r.collection.InsertOne(ctx, workoutDocument{
		ID:              workout.ID,
		UserID:          workout.UserID,
		Title:           workout.Title,
		InputText:       workout.InputText,
		PreferencesJSON: prefsJSON,
		ProgramJSON:     programJSON,
		CreatedAt:       workout.CreatedAt,
	})
	return err
}

// ListByUser retrieves the owner's programs, newest first.
func (r *mongoWorkoutRepository) ListByUser(ctx context.Context, userID string) ([]domain.WorkoutProgram, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetProjection(bson.M{"_id": 1, "userId": 1, "title": 1, "createdAt": 1})

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []workoutDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	workouts := make([]domain.WorkoutProgram, 0, len(docs))
	for _, d := range docs {
		workouts = append(workouts, domain.WorkoutProgram{
			ID:        d.ID,
			UserID:    d.UserID,
			Title:     d.Title,
			CreatedAt: d.CreatedAt.UTC(),
		})
	}
	return workouts, nil
}

// GetByID retrieves a single program; the filter includes the owner.
func (r *mongoWorkoutRepository) GetByID(ctx context.Context, id, userID string) (*domain.WorkoutProgram, error) {
	var doc workoutDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "userId": userID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return doc.toDomain()
}

// UpdateTitle renames a program owned by userID.
func (r *mongoWorkoutRepository) UpdateTitle(ctx context.Context, id, userID, title string) (*domain.WorkoutProgram, error) {
	filter := bson.M{"_id": id, "userId": userID}
	update := bson.M{"$set": bson.M{"title": title}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc workoutDocument
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return doc.toDomain()
}

// Delete removes a program, ensuring it belongs to userID.
func (r *mongoWorkoutRepository) Delete(ctx context.Context, id, userID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return err
	}
	// Missing and foreign-owned look the same to the caller.
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (d workoutDocument) toDomain() (*domain.WorkoutProgram, error) {
	prefs, err := repository.DecodePreferences(d.PreferencesJSON)
	if err != nil {
		return nil, err
	}
	program, err := repository.DecodeProgram(d.ProgramJSON)
	if err != nil {
		return nil, err
	}
	return &domain.WorkoutProgram{
		ID:          d.ID,
		UserID:      d.UserID,
		Title:       d.Title,
		InputText:   d.InputText,
		Preferences: prefs,
		Program:     program,
		CreatedAt:   d.CreatedAt.UTC(),
	}, nil
}

// EnsureWorkoutIndexes creates necessary indexes. Call during startup.
func EnsureWorkoutIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			// Main query pattern: the owner's programs, newest first
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
