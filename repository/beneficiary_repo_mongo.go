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
)

const (
	beneficiaryCollection = "beneficiary"
	counterCollection     = "token_counter"
)

type MongoBeneficiaryRepo struct {
	DB     *mongo.Client
	DBName string
}

func NewMongoBeneficiaryRepo(db *mongo.Client, dbName string) *MongoBeneficiaryRepo {
	return &MongoBeneficiaryRepo{DB: db, DBName: dbName}
}

func (r *MongoBeneficiaryRepo) beneficiaries() *mongo.Collection {
	return r.DB.Database(r.DBName).Collection(beneficiaryCollection)
}

func (r *MongoBeneficiaryRepo) counters() *mongo.Collection {
	return r.DB.Database(r.DBName).Collection(counterCollection)
}

// EnsureIndexes creates the unique cnic/token indexes and the listing sort
// index. Called once at startup.
func (r *MongoBeneficiaryRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.beneficiaries().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "cnic", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "token_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		},
	})
	return err
}

// nextTokenID reserves the next sequence number for the day in one atomic
// increment. The upsert creates the day's counter on first use; the returned
// document is the post-increment state, so two concurrent callers always see
// distinct sequence numbers.
func (r *MongoBeneficiaryRepo) nextTokenID(ctx context.Context, now time.Time) (string, error) {
	day := TokenDay(now)

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters().FindOneAndUpdate(ctx,
		bson.M{"_id": day},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().
			SetUpsert(true).
			SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return "", err
	}

	return FormatTokenID(day, counter.Seq), nil
}

func (r *MongoBeneficiaryRepo) Register(b *models.Beneficiary) error {
	ctx := context.Background()

	// Fail fast on a known cnic so a duplicate registration doesn't burn a
	// sequence number. The unique index still catches the racing case.
	count, err := r.beneficiaries().CountDocuments(ctx, bson.M{"cnic": b.CNIC})
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateKey
	}

	now := time.Now()
	tokenID, err := r.nextTokenID(ctx, now)
	if err != nil {
		return err
	}

	b.ID = primitive.NewObjectID().Hex()
	b.TokenID = tokenID
	if b.Status == "" {
		b.Status = models.StatusPending
	}
	b.CreatedAt = now
	b.UpdatedAt = now

	_, err = r.beneficiaries().InsertOne(ctx, b)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateKey
	}
	return err
}

func (r *MongoBeneficiaryRepo) FindByID(id string) (*models.Beneficiary, error) {
	return r.findOne(bson.M{"_id": id})
}

func (r *MongoBeneficiaryRepo) FindByToken(tokenID string) (*models.Beneficiary, error) {
	return r.findOne(bson.M{"token_id": tokenID})
}

func (r *MongoBeneficiaryRepo) findOne(filter bson.M) (*models.Beneficiary, error) {
	ctx := context.Background()

	var b models.Beneficiary
	err := r.beneficiaries().FindOne(ctx, filter).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	r.populateCreatedBy(ctx, &b)
	return &b, nil
}

func (r *MongoBeneficiaryRepo) List(filter ListFilter, page, limit int64) ([]*models.Beneficiary, int64, error) {
	ctx := context.Background()

	query := bson.M{}
	if filter.TokenID != "" {
		query["token_id"] = filter.TokenID
	} else if filter.CNIC != "" {
		query["cnic"] = filter.CNIC
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	cur, err := r.beneficiaries().Find(ctx, query,
		options.Find().
			SetSort(bson.D{{Key: "created_at", Value: -1}}).
			SetSkip((page-1)*limit).
			SetLimit(limit),
	)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var out []*models.Beneficiary
	for cur.Next(ctx) {
		var b models.Beneficiary
		if err := cur.Decode(&b); err != nil {
			return nil, 0, err
		}
		r.populateCreatedBy(ctx, &b)
		out = append(out, &b)
	}
	if err := cur.Err(); err != nil {
		return nil, 0, err
	}

	total, err := r.beneficiaries().CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	return out, total, nil
}

// populateCreatedBy loads the registering user's name and role, like the
// original's populate('createdBy', 'name role'). Best effort: a deleted user
// just leaves the summary empty.
func (r *MongoBeneficiaryRepo) populateCreatedBy(ctx context.Context, b *models.Beneficiary) {
	if b.CreatedBy == "" {
		return
	}
	var summary models.UserSummary
	err := r.DB.Database(r.DBName).Collection(userCollection).
		FindOne(ctx,
			bson.M{"_id": b.CreatedBy},
			options.FindOne().SetProjection(bson.M{"name": 1, "role": 1}),
		).Decode(&summary)
	if err != nil {
		return
	}
	b.CreatedByUser = &summary
}

func (r *MongoBeneficiaryRepo) UpdateStatusRemarks(id string, update BeneficiaryUpdate) (*models.Beneficiary, error) {
	ctx := context.Background()

	set := bson.M{}
	if update.Status != nil {
		if !models.ValidStatus(*update.Status) {
			return nil, ErrInvalidStatus
		}
		set["status"] = *update.Status
	}
	if update.Remarks != nil {
		set["remarks"] = *update.Remarks
	}
	if len(set) == 0 {
		return r.FindByID(id)
	}
	set["updated_at"] = time.Now()

	var b models.Beneficiary
	err := r.beneficiaries().FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	r.populateCreatedBy(ctx, &b)
	return &b, nil
}

// DashboardStats runs one $facet aggregation so every count reflects the same
// snapshot of the collection.
func (r *MongoBeneficiaryRepo) DashboardStats() (*models.DashboardStats, error) {
	ctx := context.Background()

	startOfDay := StartOfDay(time.Now())
	pipeline := []bson.M{
		{"$facet": bson.M{
			"total": []bson.M{
				{"$count": "count"},
			},
			"today": []bson.M{
				{"$match": bson.M{"created_at": bson.M{"$gte": startOfDay}}},
				{"$count": "count"},
			},
			"byStatus": []bson.M{
				{"$group": bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}},
			},
		}},
	}

	cur, err := r.beneficiaries().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var facets []struct {
		Total []struct {
			Count int64 `bson:"count"`
		} `bson:"total"`
		Today []struct {
			Count int64 `bson:"count"`
		} `bson:"today"`
		ByStatus []struct {
			Status string `bson:"_id"`
			Count  int64  `bson:"count"`
		} `bson:"byStatus"`
	}
	if err := cur.All(ctx, &facets); err != nil {
		return nil, err
	}

	stats := &models.DashboardStats{}
	if len(facets) == 0 {
		return stats, nil
	}

	f := facets[0]
	if len(f.Total) > 0 {
		stats.TotalBeneficiaries = f.Total[0].Count
	}
	if len(f.Today) > 0 {
		stats.VisitorsToday = f.Today[0].Count
	}
	for _, group := range f.ByStatus {
		switch group.Status {
		case models.StatusPending:
			stats.StatusBreakdown.Pending = group.Count
		case models.StatusInProgress:
			stats.StatusBreakdown.InProgress = group.Count
		case models.StatusCompleted:
			stats.StatusBreakdown.Completed = group.Count
		}
	}
	return stats, nil
}
