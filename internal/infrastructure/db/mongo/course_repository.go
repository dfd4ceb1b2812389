package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/unihub/portal/internal/core/domain"
)

const collectionCourses = "courses"

// CourseRepository implements ports.CourseRepository using MongoDB.
// Save is a compare-and-swap on the version field.
type CourseRepository struct {
	col *mongo.Collection
}

func NewCourseRepository(db *mongo.Database) *CourseRepository {
	return &CourseRepository{col: db.Collection(collectionCourses)}
}

type courseDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	TeacherID   string             `bson:"teacher_id,omitempty"`
	StudentIDs  []string           `bson:"student_ids"`
	Version     int64              `bson:"version"`
}

func (d courseDocument) toDomain() *domain.Course {
	students := d.StudentIDs
	if students == nil {
		students = []string{}
	}
	return &domain.Course{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		TeacherID:   d.TeacherID,
		StudentIDs:  students,
		Version:     d.Version,
	}
}

func (r *CourseRepository) Create(ctx context.Context, c *domain.Course) (*domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	students := c.StudentIDs
	if students == nil {
		students = []string{}
	}
	doc := courseDocument{
		Title:       c.Title,
		Description: c.Description,
		TeacherID:   c.TeacherID,
		StudentIDs:  students,
		Version:     1,
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert course: %w", err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *CourseRepository) FindByID(ctx context.Context, id string) (*domain.Course, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrCourseNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc courseDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, fmt.Errorf("find course: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *CourseRepository) List(ctx context.Context) ([]*domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "title", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find courses: %w", err)
	}
	var docs []courseDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode courses: %w", err)
	}
	out := make([]*domain.Course, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// Save writes c only when the stored version still equals c.Version.
func (r *CourseRepository) Save(ctx context.Context, c *domain.Course) error {
	oid, ok := objectID(c.ID)
	if !ok {
		return domain.ErrCourseNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	students := c.StudentIDs
	if students == nil {
		students = []string{}
	}
	filter := bson.M{"_id": oid, "version": c.Version}
	update := bson.M{"$set": bson.M{
		"title":       c.Title,
		"description": c.Description,
		"teacher_id":  c.TeacherID,
		"student_ids": students,
		"version":     c.Version + 1,
	}}

	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	if res.MatchedCount == 0 {
		n, err := r.col.CountDocuments(ctx, bson.M{"_id": oid}, options.Count().SetLimit(1))
		if err != nil {
			return fmt.Errorf("count course: %w", err)
		}
		if n == 0 {
			return domain.ErrCourseNotFound
		}
		return domain.ErrVersionConflict
	}
	c.Version++
	return nil
}

func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrCourseNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCourseNotFound
	}
	return nil
}
