package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/todo-list/internal/core/domain"
)

type TodoRepository struct {
	coll *mongo.Collection
	ids  *sequence
}

func NewTodoRepository(db *mongo.Database) *TodoRepository {
	return &TodoRepository{
		coll: db.Collection(collectionTodos),
		ids:  newSequence(db, collectionTodos),
	}
}

type mongoTodo struct {
	ID        int64      `bson:"_id"`
	Content   string     `bson:"content"`
	Completed bool       `bson:"completed"`
	DueDate   *time.Time `bson:"due_date"`
	Priority  string     `bson:"priority"`
	Category  string     `bson:"category"`
	UserID    int64      `bson:"user_id"`
}

var byID = options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

func (r *TodoRepository) Create(ctx context.Context, item *domain.TodoItem) (*domain.TodoItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.ids.next(ctx)
	if err != nil {
		return nil, err
	}
	doc := mongoTodo{
		ID:        id,
		Content:   item.Content,
		Completed: item.Completed,
		DueDate:   item.DueDate,
		Priority:  item.Priority,
		Category:  item.Category,
		UserID:    int64(item.UserID),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TodoRepository) FindByID(ctx context.Context, id uint) (*domain.TodoItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoTodo
	if err := r.coll.FindOne(ctx, bson.M{"_id": int64(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("find item: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TodoRepository) Update(ctx context.Context, item *domain.TodoItem) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": int64(item.ID)}, bson.M{"$set": bson.M{
		"content":  item.Content,
		"due_date": item.DueDate,
		"priority": item.Priority,
		"category": item.Category,
	}})
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (r *TodoRepository) MarkCompleted(ctx context.Context, id uint) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": int64(id)}, bson.M{"$set": bson.M{"completed": true}})
	if err != nil {
		return fmt.Errorf("complete item: %w", err)
	}
	return nil
}

func (r *TodoRepository) Delete(ctx context.Context, id uint) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": int64(id)}); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

func (r *TodoRepository) ListByOwner(ctx context.Context, ownerID uint) ([]*domain.TodoItem, error) {
	return r.find(ctx, bson.M{"user_id": int64(ownerID)})
}

// SearchByOwner uses a case-insensitive regex over the quoted substring.
func (r *TodoRepository) SearchByOwner(ctx context.Context, ownerID uint, substr string) ([]*domain.TodoItem, error) {
	return r.find(ctx, bson.M{
		"user_id": int64(ownerID),
		"content": primitive.Regex{Pattern: regexp.QuoteMeta(substr), Options: "i"},
	})
}

func (r *TodoRepository) CountByOwner(ctx context.Context, ownerID uint) (int64, error) {
	return r.count(ctx, bson.M{"user_id": int64(ownerID)})
}

func (r *TodoRepository) CountCompletedByOwner(ctx context.Context, ownerID uint) (int64, error) {
	return r.count(ctx, bson.M{"user_id": int64(ownerID), "completed": true})
}

func (r *TodoRepository) Ping(ctx context.Context) error {
	return r.coll.Database().Client().Ping(ctx, nil)
}

func (r *TodoRepository) find(ctx context.Context, filter bson.M) ([]*domain.TodoItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, filter, byID)
	if err != nil {
		return nil, fmt.Errorf("find items: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoTodo
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}

	items := make([]*domain.TodoItem, 0, len(docs))
	for i := range docs {
		items = append(items, docs[i].toDomain())
	}
	return items, nil
}

func (r *TodoRepository) count(ctx context.Context, filter bson.M) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return n, nil
}

func (d *mongoTodo) toDomain() *domain.TodoItem {
	item := &domain.TodoItem{
		ID:        uint(d.ID),
		Content:   d.Content,
		Completed: d.Completed,
		Priority:  d.Priority,
		Category:  d.Category,
		UserID:    uint(d.UserID),
	}
	if d.DueDate != nil {
		due := d.DueDate.UTC()
		item.DueDate = &due
	}
	return item
}
