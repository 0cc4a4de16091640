package repository

import (
	"database/sql"
	"errors"
	"strconv"
	"time"

	"beneficiarydesk/models"
)

type PostgresBeneficiaryRepo struct {
	DB *sql.DB
}

func NewPostgresBeneficiaryRepo(db *sql.DB) *PostgresBeneficiaryRepo {
	return &PostgresBeneficiaryRepo{DB: db}
}

// Register runs the counter bump and the insert in one transaction. The
// counter upsert is a single statement, so concurrent registrations serialize
// on the day row and each sees its own sequence number; a failed insert rolls
// the bump back instead of leaving a gap.
func (r *PostgresBeneficiaryRepo) Register(b *models.Beneficiary) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	day := TokenDay(now)

	var seq int64
	err = tx.QueryRow(`
		INSERT INTO token_counter (day, seq)
		VALUES ($1, 1)
		ON CONFLICT (day) DO UPDATE SET seq = token_counter.seq + 1
		RETURNING seq
	`, day).Scan(&seq)
	if err != nil {
		return err
	}

	b.TokenID = FormatTokenID(day, seq)
	if b.Status == "" {
		b.Status = models.StatusPending
	}
	b.CreatedAt = now
	b.UpdatedAt = now

	createdBy, err := strconv.ParseInt(b.CreatedBy, 10, 64)
	if err != nil {
		return errors.New("invalid created_by id")
	}

	var id int64
	err = tx.QueryRow(`
		INSERT INTO beneficiary (cnic, name, phone, address, purpose, token_id, status, remarks, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`, b.CNIC, b.Name, b.Phone, b.Address, b.Purpose, b.TokenID, b.Status, b.Remarks, createdBy, b.CreatedAt, b.UpdatedAt).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateKey
		}
		return err
	}

	b.ID = strconv.FormatInt(id, 10)
	return tx.Commit()
}

const beneficiarySelect = `
	SELECT b.id, b.cnic, b.name, b.phone, b.address, b.purpose, b.token_id,
	       b.status, b.remarks, b.created_by, b.created_at, b.updated_at,
	       u.name, u.role
	FROM beneficiary b
	LEFT JOIN app_user u ON u.id = b.created_by
`

func scanBeneficiary(scan func(dest ...interface{}) error) (*models.Beneficiary, error) {
	b := &models.Beneficiary{}
	var id int64
	var createdBy sql.NullInt64
	var creatorName, creatorRole sql.NullString

	err := scan(&id, &b.CNIC, &b.Name, &b.Phone, &b.Address, &b.Purpose, &b.TokenID,
		&b.Status, &b.Remarks, &createdBy, &b.CreatedAt, &b.UpdatedAt,
		&creatorName, &creatorRole)
	if err != nil {
		return nil, err
	}

	b.ID = strconv.FormatInt(id, 10)
	if createdBy.Valid {
		b.CreatedBy = strconv.FormatInt(createdBy.Int64, 10)
	}
	if creatorName.Valid {
		b.CreatedByUser = &models.UserSummary{
			ID:   b.CreatedBy,
			Name: creatorName.String,
			Role: creatorRole.String,
		}
	}
	return b, nil
}

func (r *PostgresBeneficiaryRepo) FindByID(id string) (*models.Beneficiary, error) {
	numID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, ErrNotFound
	}

	b, err := scanBeneficiary(r.DB.QueryRow(beneficiarySelect+`WHERE b.id = $1`, numID).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return b, err
}

func (r *PostgresBeneficiaryRepo) FindByToken(tokenID string) (*models.Beneficiary, error) {
	b, err := scanBeneficiary(r.DB.QueryRow(beneficiarySelect+`WHERE b.token_id = $1`, tokenID).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return b, err
}

func (r *PostgresBeneficiaryRepo) List(filter ListFilter, page, limit int64) ([]*models.Beneficiary, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	where := ""
	args := []interface{}{}
	switch {
	case filter.TokenID != "":
		where = `WHERE b.token_id = $1`
		args = append(args, filter.TokenID)
	case filter.CNIC != "":
		where = `WHERE b.cnic = $1`
		args = append(args, filter.CNIC)
	}

	query := beneficiarySelect + where +
		` ORDER BY b.created_at DESC LIMIT ` + strconv.FormatInt(limit, 10) +
		` OFFSET ` + strconv.FormatInt((page-1)*limit, 10)

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*models.Beneficiary
	for rows.Next() {
		b, err := scanBeneficiary(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	countQuery := `SELECT count(*) FROM beneficiary b ` + where
	if err := r.DB.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return out, total, nil
}

func (r *PostgresBeneficiaryRepo) UpdateStatusRemarks(id string, update BeneficiaryUpdate) (*models.Beneficiary, error) {
	numID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, ErrNotFound
	}

	if update.Status != nil && !models.ValidStatus(*update.Status) {
		return nil, ErrInvalidStatus
	}
	if update.Status == nil && update.Remarks == nil {
		return r.FindByID(id)
	}

	res, err := r.DB.Exec(`
		UPDATE beneficiary
		SET status = COALESCE($2, status),
		    remarks = COALESCE($3, remarks),
		    updated_at = now()
		WHERE id = $1
	`, numID, update.Status, update.Remarks)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrNotFound
	}

	return r.FindByID(id)
}

// DashboardStats is a single statement, so all counts come from one snapshot.
func (r *PostgresBeneficiaryRepo) DashboardStats() (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}
	err := r.DB.QueryRow(`
		SELECT count(*),
		       count(*) FILTER (WHERE created_at >= $1),
		       count(*) FILTER (WHERE status = 'pending'),
		       count(*) FILTER (WHERE status = 'in-progress'),
		       count(*) FILTER (WHERE status = 'completed')
		FROM beneficiary
	`, StartOfDay(time.Now())).Scan(
		&stats.TotalBeneficiaries,
		&stats.VisitorsToday,
		&stats.StatusBreakdown.Pending,
		&stats.StatusBreakdown.InProgress,
		&stats.StatusBreakdown.Completed,
	)
	if err != nil {
		return nil, err
	}
	return stats, nil
}
