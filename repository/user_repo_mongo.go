package repository

import (
	"context"
	"errors"
	"time"

	"beneficiarydesk/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

const userCollection = "app_user"

type MongoUserRepo struct {
	DB     *mongo.Client
	DBName string
}

func NewMongoUserRepo(db *mongo.Client, dbName string) *MongoUserRepo {
	return &MongoUserRepo{DB: db, DBName: dbName}
}

func (r *MongoUserRepo) users() *mongo.Collection {
	return r.DB.Database(r.DBName).Collection(userCollection)
}

// EnsureIndexes creates the unique email index. Called once at startup.
func (r *MongoUserRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.users().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *MongoUserRepo) CreateUser(user *models.AppUser) error {
	ctx := context.Background()

	if user.Password == "" {
		return errors.New("password cannot be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	user.Role = models.NormalizeRole(user.Role)

	if user.ID == "" {
		user.ID = primitive.NewObjectID().Hex()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	_, err = r.users().InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateKey
	}
	return err
}

func (r *MongoUserRepo) GetUserByEmail(email string) (*models.AppUser, error) {
	ctx := context.Background()
	user := &models.AppUser{}

	err := r.users().FindOne(ctx, bson.M{"email": email}).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (r *MongoUserRepo) GetUserByID(id string) (*models.AppUser, error) {
	ctx := context.Background()
	user := &models.AppUser{}

	err := r.users().FindOne(ctx, bson.M{"_id": id}).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *MongoUserRepo) ListUsers(excludeID string) ([]*models.AppUser, error) {
	ctx := context.Background()

	filter := bson.M{}
	if excludeID != "" {
		filter["_id"] = bson.M{"$ne": excludeID}
	}

	cur, err := r.users().Find(ctx, filter,
		options.Find().
			SetProjection(bson.M{"password": 0}).
			SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*models.AppUser
	for cur.Next(ctx) {
		var u models.AppUser
		if err := cur.Decode(&u); err != nil {
			return nil, err
		}
		out = append(out, &u)
	}
	return out, cur.Err()
}

func (r *MongoUserRepo) UpdateUser(id string, update UserUpdate) (*models.AppUser, error) {
	ctx := context.Background()

	set := bson.M{}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.Role != nil {
		set["role"] = models.NormalizeRole(*update.Role)
	}
	if len(set) == 0 {
		return r.GetUserByID(id)
	}

	user := &models.AppUser{}
	err := r.users().FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().
			SetReturnDocument(options.After).
			SetProjection(bson.M{"password": 0}),
	).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateKey
		}
		return nil, err
	}
	return user, nil
}

func (r *MongoUserRepo) DeleteUser(id string) error {
	ctx := context.Background()

	res, err := r.users().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
