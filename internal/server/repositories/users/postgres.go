package users

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/jobportal/internal/common"
	"github.com/dmitrijs2005/jobportal/internal/dbx"
	"github.com/dmitrijs2005/jobportal/internal/server/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	skills, err := encodeSkills(user.Profile.Skills)
	if err != nil {
		return nil, err
	}

	query :=
		`INSERT INTO users (fullname, email, phone_number, password, role, bio, skills)
         VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at
		 `

	err = r.db.QueryRowContext(ctx, query,
		user.FullName, user.Email, user.PhoneNumber, user.Password, string(user.Role), user.Profile.Bio, skills).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		return nil, translate(err)
	}

	return user, nil
}

const selectUser = `SELECT id, fullname, email, phone_number, password, role, bio, skills, created_at, updated_at FROM users`

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, selectUser+` WHERE email = $1`, email)
}

// GetUserByID treats an id that is not a UUID as a missing record.
func (r *PostgresRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrorNotFound
	}
	return r.getOne(ctx, selectUser+` WHERE id = $1`, id)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg string) (*models.User, error) {
	var (
		user   models.User
		role   string
		skills []byte
	)

	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.FullName, &user.Email, &user.PhoneNumber, &user.Password,
		&role, &user.Profile.Bio, &skills, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}

	user.Role = models.Role(role)
	if user.Profile.Skills, err = decodeSkills(skills); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *PostgresRepository) Update(ctx context.Context, user *models.User) (*models.User, error) {
	skills, err := encodeSkills(user.Profile.Skills)
	if err != nil {
		return nil, err
	}

	query :=
		`UPDATE users SET fullname = $2, email = $3, phone_number = $4, bio = $5, skills = $6, updated_at = now()
		 WHERE id = $1
		 RETURNING updated_at
		 `

	err = r.db.QueryRowContext(ctx, query,
		user.ID, user.FullName, user.Email, user.PhoneNumber, user.Profile.Bio, skills).
		Scan(&user.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}

	return user, nil
}

func translate(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrorNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", common.ErrorAlreadyExists, pgErr.ConstraintName)
	}

	return fmt.Errorf("db error: %w", err)
}

func encodeSkills(skills []string) (string, error) {
	if skills == nil {
		skills = []string{}
	}
	b, err := json.Marshal(skills)
	if err != nil {
		return "", fmt.Errorf("encoding skills: %w", err)
	}
	return string(b), nil
}

func decodeSkills(raw []byte) ([]string, error) {
	skills := []string{}
	if len(raw) == 0 {
		return skills, nil
	}
	if err := json.Unmarshal(raw, &skills); err != nil {
		return nil, fmt.Errorf("decoding skills: %w", err)
	}
	return skills, nil
}
