package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/staffdesk/employee-api/internal/core/domain"
	"github.com/staffdesk/employee-api/internal/core/ports"
)

const employeesCollection = "employees"

// EmployeeRepository implements ports.EmployeeRepository on MongoDB. It is
// a plain data-access layer: all scoping filters come from the caller.
type EmployeeRepository struct {
	coll *mongo.Collection
}

func NewEmployeeRepository(db *mongo.Database) *EmployeeRepository {
	return &EmployeeRepository{coll: db.Collection(employeesCollection)}
}

// mongoEmployee mirrors the stored document. Field names are camelCase for
// compatibility with documents written by earlier versions of the system.
type mongoEmployee struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Name       string             `bson:"name"`
	Position   string             `bson:"position,omitempty"`
	Department string             `bson:"department,omitempty"`
	Salary     float64            `bson:"salary,omitempty"`
	CreatedBy  string             `bson:"createdBy"`
	CreatedAt  time.Time          `bson:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt"`
}

func (me mongoEmployee) toDomain() *domain.Employee {
	return &domain.Employee{
		ID:         me.ID.Hex(),
		Name:       me.Name,
		Position:   me.Position,
		Department: me.Department,
		Salary:     me.Salary,
		CreatedBy:  me.CreatedBy,
		CreatedAt:  me.CreatedAt,
		UpdatedAt:  me.UpdatedAt,
	}
}

// Insert stores a new record and returns its generated id.
func (r *EmployeeRepository) Insert(ctx context.Context, e *domain.Employee) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoEmployee{
		Name:       e.Name,
		Position:   e.Position,
		Department: e.Department,
		Salary:     e.Salary,
		CreatedBy:  e.CreatedBy,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return "", err
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.New("unexpected inserted id type")
	}
	return oid.Hex(), nil
}

// FindByID retrieves a single record. An id that is not valid ObjectID hex
// cannot match any document and is reported as not found.
func (r *EmployeeRepository) FindByID(ctx context.Context, id string) (*domain.Employee, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrEmployeeNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var me mongoEmployee
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&me); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}
	return me.toDomain(), nil
}

// FindMany returns records matching filter, sorted by updatedAt descending
// with _id descending as tie-break so the ordering is deterministic.
func (r *EmployeeRepository) FindMany(ctx context.Context, filter ports.EmployeeFilter) ([]*domain.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.CreatedBy != "" {
		query["createdBy"] = filter.CreatedBy
	}

	sort := bson.D{{Key: "updatedAt", Value: -1}, {Key: "_id", Value: -1}}
	cursor, err := r.coll.Find(ctx, query, options.Find().SetSort(sort))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := make([]*domain.Employee, 0)
	for cursor.Next(ctx) {
		var me mongoEmployee
		if err := cursor.Decode(&me); err != nil {
			return nil, err
		}
		out = append(out, me.toDomain())
	}
	return out, cursor.Err()
}

// UpdateByID applies the non-nil fields of update plus the updatedAt stamp
// and reports the matched and modified counts.
func (r *EmployeeRepository) UpdateByID(ctx context.Context, id string, update domain.EmployeeUpdate) (int64, int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updatedAt": update.UpdatedAt}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Position != nil {
		set["position"] = *update.Position
	}
	if update.Department != nil {
		set["department"] = *update.Department
	}
	if update.Salary != nil {
		set["salary"] = *update.Salary
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return 0, 0, err
	}
	return res.MatchedCount, res.ModifiedCount, nil
}

// DeleteByID removes a record and reports the deleted count.
func (r *EmployeeRepository) DeleteByID(ctx context.Context, id string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// EnsureIndexes creates the query indexes used by list scoping and sorting.
func (r *EmployeeRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdBy", Value: 1}}},
		{Keys: bson.D{{Key: "updatedAt", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
