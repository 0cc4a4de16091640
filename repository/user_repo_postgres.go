package repository

import (
	"database/sql"
	"errors"
	"strconv"
	"time"

	"beneficiarydesk/models"

	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

type PostgresUserRepo struct {
	DB *sql.DB
}

func NewPostgresUserRepo(db *sql.DB) *PostgresUserRepo {
	return &PostgresUserRepo{DB: db}
}

func (r *PostgresUserRepo) CreateUser(user *models.AppUser) error {
	if user.Password == "" {
		return errors.New("password cannot be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	user.Role = models.NormalizeRole(user.Role)

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	var id int64
	err = r.DB.QueryRow(`
		INSERT INTO app_user (name, email, password, role, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, user.Name, user.Email, user.Password, user.Role, user.CreatedAt).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateKey
		}
		return err
	}

	user.ID = strconv.FormatInt(id, 10)
	return nil
}

func (r *PostgresUserRepo) GetUserByEmail(email string) (*models.AppUser, error) {
	user := &models.AppUser{}
	var id int64
	err := r.DB.QueryRow(`
		SELECT id, name, email, password, role, created_at
		FROM app_user
		WHERE email = $1
	`, email).Scan(&id, &user.Name, &user.Email, &user.Password, &user.Role, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	user.ID = strconv.FormatInt(id, 10)
	return user, nil
}

func (r *PostgresUserRepo) GetUserByID(id string) (*models.AppUser, error) {
	numID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, ErrNotFound
	}

	user := &models.AppUser{}
	err = r.DB.QueryRow(`
		SELECT id, name, email, role, created_at
		FROM app_user
		WHERE id = $1
	`, numID).Scan(&numID, &user.Name, &user.Email, &user.Role, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	user.ID = strconv.FormatInt(numID, 10)
	return user, nil
}

func (r *PostgresUserRepo) ListUsers(excludeID string) ([]*models.AppUser, error) {
	excludeNum, err := strconv.ParseInt(excludeID, 10, 64)
	if err != nil {
		excludeNum = 0
	}

	rows, err := r.DB.Query(`
		SELECT id, name, email, role, created_at
		FROM app_user
		WHERE id <> $1
		ORDER BY created_at DESC
	`, excludeNum)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.AppUser
	for rows.Next() {
		user := &models.AppUser{}
		var id int64
		if err := rows.Scan(&id, &user.Name, &user.Email, &user.Role, &user.CreatedAt); err != nil {
			return nil, err
		}
		user.ID = strconv.FormatInt(id, 10)
		out = append(out, user)
	}
	return out, rows.Err()
}

func (r *PostgresUserRepo) UpdateUser(id string, update UserUpdate) (*models.AppUser, error) {
	numID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, ErrNotFound
	}

	role := update.Role
	if role != nil {
		normalized := models.NormalizeRole(*role)
		role = &normalized
	}

	user := &models.AppUser{}
	err = r.DB.QueryRow(`
		UPDATE app_user
		SET name = COALESCE($2, name),
		    email = COALESCE($3, email),
		    role = COALESCE($4, role)
		WHERE id = $1
		RETURNING id, name, email, role, created_at
	`, numID, update.Name, update.Email, role).
		Scan(&numID, &user.Name, &user.Email, &user.Role, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, ErrDuplicateKey
		}
		return nil, err
	}

	user.ID = strconv.FormatInt(numID, 10)
	return user, nil
}

func (r *PostgresUserRepo) DeleteUser(id string) error {
	numID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return ErrNotFound
	}

	res, err := r.DB.Exec(`DELETE FROM app_user WHERE id = $1`, numID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
