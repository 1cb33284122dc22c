package mongo

import (
	"context"
	"time"

	"github.com/aussiebroadwan/folio/internal/backend/domain"
	"github.com/aussiebroadwan/folio/internal/backend/store"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type userDoc struct {
	ID                bson.ObjectID `bson:"_id,omitempty"`
	Username          string        `bson:"username"`
	Email             string        `bson:"email"`
	Password          string        `bson:"password"`
	DisplayName       string        `bson:"displayName"`
	Tagline           string        `bson:"tagline"`
	Bio               string        `bson:"bio"`
	Avatar            avatarDoc     `bson:"avatar"`
	SocialLinks       socialDoc     `bson:"socialLinks"`
	PortfolioSettings settingsDoc   `bson:"portfolioSettings"`
	IsActive          bool          `bson:"isActive"`
	CreatedAt         time.Time     `bson:"createdAt"`
	UpdatedAt         time.Time     `bson:"updatedAt"`
}

type avatarDoc struct {
	URL      string `bson:"url"`
	PublicID string `bson:"publicID"`
}

type socialDoc struct {
	Instagram string `bson:"instagram"`
	Twitter   string `bson:"twitter"`
	Website   string `bson:"website"`
	Email     string `bson:"email"`
}

type settingsDoc struct {
	DefaultColumns int    `bson:"defaultColumns"`
	DefaultGap     int    `bson:"defaultGap"`
	Theme          string `bson:"theme"`
}

func toDoc(u domain.User) userDoc {
	return userDoc{
		Username:          u.Username,
		Email:             u.Email,
		Password:          u.PasswordHash,
		DisplayName:       u.DisplayName,
		Tagline:           u.Tagline,
		Bio:               u.Bio,
		Avatar:            avatarDoc(u.Avatar),
		SocialLinks:       socialDoc(u.SocialLinks),
		PortfolioSettings: settingsDoc(u.PortfolioSettings),
		IsActive:          u.IsActive,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}

func (d userDoc) toDomain() domain.User {
	return domain.User{
		ID:                d.ID.Hex(),
		Username:          d.Username,
		Email:             d.Email,
		PasswordHash:      d.Password,
		DisplayName:       d.DisplayName,
		Tagline:           d.Tagline,
		Bio:               d.Bio,
		Avatar:            domain.Avatar(d.Avatar),
		SocialLinks:       domain.SocialLinks(d.SocialLinks),
		PortfolioSettings: domain.PortfolioSettings(d.PortfolioSettings),
		IsActive:          d.IsActive,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

func (s *Store) findOne(ctx context.Context, filter bson.D) (domain.User, error) {
	var doc userDoc
	if err := s.users.FindOne(ctx, filter).Decode(&doc); err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return doc.toDomain(), nil
}

func (s *Store) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	return s.findOne(ctx, bson.D{{Key: "email", Value: domain.NormalizeIdentity(email)}})
}

func (s *Store) FindByID(ctx context.Context, id string) (domain.User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return domain.User{}, store.ErrNotFound
	}
	return s.findOne(ctx, bson.D{{Key: "_id", Value: oid}})
}

func (s *Store) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	filter := bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "username", Value: domain.NormalizeIdentity(username)}},
		bson.D{{Key: "email", Value: domain.NormalizeIdentity(email)}},
	}}}

	n, err := s.users.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) Create(ctx context.Context, u domain.User) (domain.User, error) {
	u.Username = domain.NormalizeIdentity(u.Username)
	u.Email = domain.NormalizeIdentity(u.Email)

	// BSON dates keep millisecond precision
	now := time.Now().UTC().Truncate(time.Millisecond)
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = u.CreatedAt
	}

	doc := toDoc(u)
	if u.ID != "" {
		oid, err := bson.ObjectIDFromHex(u.ID)
		if err != nil {
			return domain.User{}, err
		}
		doc.ID = oid
	} else {
		doc.ID = bson.NewObjectID()
	}

	if _, err := s.users.InsertOne(ctx, doc); err != nil {
		return domain.User{}, mapDuplicate(err)
	}

	u.ID = doc.ID.Hex()
	return u, nil
}

func (s *Store) UpdateByID(ctx context.Context, id string, up domain.ProfileUpdate) (domain.User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return domain.User{}, store.ErrNotFound
	}

	set := profileSet(up)
	set = append(set, bson.E{Key: "updatedAt", Value: time.Now().UTC()})

	var doc userDoc
	err = s.users.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: set}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return doc.toDomain(), nil
}

func (s *Store) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return store.ErrNotFound
	}

	res, err := s.users.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "password", Value: hash},
			{Key: "updatedAt", Value: time.Now().UTC()},
		}}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func profileSet(up domain.ProfileUpdate) bson.D {
	set := bson.D{}
	if up.DisplayName != nil {
		set = append(set, bson.E{Key: "displayName", Value: *up.DisplayName})
	}
	if up.Tagline != nil {
		set = append(set, bson.E{Key: "tagline", Value: *up.Tagline})
	}
	if up.Bio != nil {
		set = append(set, bson.E{Key: "bio", Value: *up.Bio})
	}
	if up.Avatar != nil {
		set = append(set, bson.E{Key: "avatar", Value: avatarDoc(*up.Avatar)})
	}
	if up.SocialLinks != nil {
		set = append(set, bson.E{Key: "socialLinks", Value: socialDoc(*up.SocialLinks)})
	}
	if up.PortfolioSettings != nil {
		set = append(set, bson.E{Key: "portfolioSettings", Value: settingsDoc(*up.PortfolioSettings)})
	}
	return set
}
