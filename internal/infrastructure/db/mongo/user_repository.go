package mongo

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/warehouse-suite/user-service/internal/core/domain"
)

const usersCollection = "users"

// MongoUserRepository persists user accounts in the "users" collection.
// Every operation is a direct round-trip; there is no caching layer.
type MongoUserRepository struct {
	coll *mongo.Collection
	log  zerolog.Logger
}

func NewUserRepository(db *mongo.Database, log zerolog.Logger) *MongoUserRepository {
	return &MongoUserRepository{coll: db.Collection(usersCollection), log: log}
}

// userDoc is the canonical persisted shape. Reads do not decode into this
// struct directly: documents written by the predecessor system use
// underscore-prefixed keys, so the read path goes through the factory.
type userDoc struct {
	Code     string `bson:"cod_user"`
	Username string `bson:"username"`
	Password string `bson:"password"`
	Name     string `bson:"name"`
	Surname  string `bson:"surname"`
	Role     string `bson:"role"`
}

// usernameFilter matches a username under either persisted naming convention.
func usernameFilter(username string) bson.M {
	return bson.M{"$or": bson.A{
		bson.M{"username": username},
		bson.M{"_username": username},
	}}
}

func codeFilter(code string) bson.M {
	return bson.M{"$or": bson.A{
		bson.M{"cod_user": code},
		bson.M{"_codUser": code},
	}}
}

func (r *MongoUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, usernameFilter(username))
}

func (r *MongoUserRepository) FindByCode(ctx context.Context, code string) (*domain.User, error) {
	return r.findOne(ctx, codeFilter(code))
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var doc bson.M
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		r.log.Error().Err(err).Msg("find user")
		return nil, fmt.Errorf("find user: %w", err)
	}
	return docToUser(doc), nil
}

// Create inserts a new account document. Uniqueness of username and user code
// is enforced by the collection's unique indexes, not here.
func (r *MongoUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	doc := userDoc{
		Code:     user.Code,
		Username: user.Username,
		Password: user.Password,
		Name:     user.Name,
		Surname:  user.Surname,
		Role:     user.Role,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		r.log.Error().Err(err).Msg("insert user")
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	return &created, nil
}

func (r *MongoUserRepository) ListAll(ctx context.Context) ([]domain.User, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		r.log.Error().Err(err).Msg("list users")
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		r.log.Error().Err(err).Msg("decode users")
		return nil, fmt.Errorf("decode users: %w", err)
	}

	users := make([]domain.User, 0, len(docs))
	for _, doc := range docs {
		users = append(users, *docToUser(doc))
	}
	return users, nil
}

// Update applies a partial update to the first document matching filter and
// returns the post-update entity. A filter matching nothing yields
// domain.ErrUserNotFound, never a silent success.
func (r *MongoUserRepository) Update(ctx context.Context, filter, update map[string]any) (*domain.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc bson.M
	err := r.coll.FindOneAndUpdate(ctx, bson.M(filter), bson.M(update), opts).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		r.log.Error().Err(err).Msg("update user")
		return nil, fmt.Errorf("update user: %w", err)
	}
	return docToUser(doc), nil
}

// docToUser normalizes a raw document, tolerant of both persisted naming
// conventions, into the canonical entity.
func docToUser(doc bson.M) *domain.User {
	u := domain.UserFromDocument(doc)
	return &u
}
