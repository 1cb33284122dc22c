package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aussiebroadwan/folio/internal/backend/domain"
	"github.com/aussiebroadwan/folio/internal/backend/store"
	"github.com/aussiebroadwan/folio/pkg/idx"

	sq "github.com/Masterminds/squirrel"
)

const usersTable = "users"

var userColumns = []string{
	"id", "username", "email", "password_hash", "display_name", "tagline", "bio",
	"avatar_url", "avatar_public_id",
	"social_instagram", "social_twitter", "social_website", "social_email",
	"default_columns", "default_gap", "theme",
	"is_active", "created_at", "updated_at",
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.DisplayName, &u.Tagline, &u.Bio,
		&u.Avatar.URL, &u.Avatar.PublicID,
		&u.SocialLinks.Instagram, &u.SocialLinks.Twitter, &u.SocialLinks.Website, &u.SocialLinks.Email,
		&u.PortfolioSettings.DefaultColumns, &u.PortfolioSettings.DefaultGap, &u.PortfolioSettings.Theme,
		&u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

func (s *Store) findOne(ctx context.Context, q sq.Sqlizer) (domain.User, error) {
	query, args, err := s.sb.Select(userColumns...).From(usersTable).Where(q).Limit(1).ToSql()
	if err != nil {
		return domain.User{}, fmt.Errorf("sqlite: build select: %w", err)
	}

	u, err := scanUser(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (s *Store) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	return s.findOne(ctx, sq.Eq{"email": domain.NormalizeIdentity(email)})
}

func (s *Store) FindByID(ctx context.Context, id string) (domain.User, error) {
	if !idx.Valid(id) {
		return domain.User{}, store.ErrNotFound
	}
	return s.findOne(ctx, sq.Eq{"id": id})
}

func (s *Store) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	query, args, err := s.sb.Select("COUNT(1)").From(usersTable).Where(sq.Or{
		sq.Eq{"username": domain.NormalizeIdentity(username)},
		sq.Eq{"email": domain.NormalizeIdentity(email)},
	}).ToSql()
	if err != nil {
		return false, fmt.Errorf("sqlite: build count: %w", err)
	}

	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) Create(ctx context.Context, u domain.User) (domain.User, error) {
	if u.ID == "" {
		u.ID = idx.New()
	}
	u.Username = domain.NormalizeIdentity(u.Username)
	u.Email = domain.NormalizeIdentity(u.Email)

	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = u.CreatedAt
	}

	query, args, err := s.sb.Insert(usersTable).Columns(userColumns...).Values(
		u.ID, u.Username, u.Email, u.PasswordHash, u.DisplayName, u.Tagline, u.Bio,
		u.Avatar.URL, u.Avatar.PublicID,
		u.SocialLinks.Instagram, u.SocialLinks.Twitter, u.SocialLinks.Website, u.SocialLinks.Email,
		u.PortfolioSettings.DefaultColumns, u.PortfolioSettings.DefaultGap, u.PortfolioSettings.Theme,
		u.IsActive, u.CreatedAt.UTC(), u.UpdatedAt.UTC(),
	).ToSql()
	if err != nil {
		return domain.User{}, fmt.Errorf("sqlite: build insert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return domain.User{}, mapConstraint(err)
	}
	return u, nil
}

func (s *Store) UpdateByID(ctx context.Context, id string, up domain.ProfileUpdate) (domain.User, error) {
	set := profileColumns(up)
	set["updated_at"] = time.Now().UTC()

	query, args, err := s.sb.Update(usersTable).SetMap(set).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return domain.User{}, fmt.Errorf("sqlite: build update: %w", err)
	}

	var updated domain.User
	err = s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err != nil {
			return err
		} else if n == 0 {
			return store.ErrNotFound
		}

		sel, selArgs, err := s.sb.Select(userColumns...).From(usersTable).Where(sq.Eq{"id": id}).ToSql()
		if err != nil {
			return err
		}
		updated, err = scanUser(tx.QueryRowContext(ctx, sel, selArgs...))
		return mapNotFound(err)
	})
	if err != nil {
		return domain.User{}, err
	}
	return updated, nil
}

func (s *Store) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	query, args, err := s.sb.Update(usersTable).
		Set("password_hash", hash).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("sqlite: build update: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func profileColumns(up domain.ProfileUpdate) map[string]any {
	set := make(map[string]any, 12)
	if up.DisplayName != nil {
		set["display_name"] = *up.DisplayName
	}
	if up.Tagline != nil {
		set["tagline"] = *up.Tagline
	}
	if up.Bio != nil {
		set["bio"] = *up.Bio
	}
	if a := up.Avatar; a != nil {
		set["avatar_url"] = a.URL
		set["avatar_public_id"] = a.PublicID
	}
	if l := up.SocialLinks; l != nil {
		set["social_instagram"] = l.Instagram
		set["social_twitter"] = l.Twitter
		set["social_website"] = l.Website
		set["social_email"] = l.Email
	}
	if p := up.PortfolioSettings; p != nil {
		set["default_columns"] = p.DefaultColumns
		set["default_gap"] = p.DefaultGap
		set["theme"] = p.Theme
	}
	return set
}
