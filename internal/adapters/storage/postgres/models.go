package postgres

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"pet-social/internal/domain/follows"
	"pet-social/internal/domain/matches"
	"pet-social/internal/domain/medical"
	"pet-social/internal/domain/pets"
	"pet-social/internal/domain/posts"
	"pet-social/internal/domain/users"
)

// Filas gorm. No usamos tags `default:` para booleanos: gorm omitiría el false.

type userRow struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Email     string `gorm:"size:255;not null;uniqueIndex:idx_users_email"`
	Username  string `gorm:"size:64;not null;uniqueIndex:idx_users_username"`
	Password  string `gorm:"not null"`
	Name      string
	Bio       string
	Avatar    string
	Location  string
	Role      string `gorm:"size:32;not null"`
	CreatedAt time.Time
}

func (userRow) TableName() string { return "users" }

type petRow struct {
	ID                  int64 `gorm:"primaryKey;autoIncrement"`
	OwnerID             int64 `gorm:"not null;index:idx_pets_owner"`
	Name                string
	Species             string
	Breed               string
	Age                 int
	Gender              string `gorm:"size:16"`
	Weight              float64
	Color               string
	Bio                 string
	IsPublic            bool `gorm:"not null;index:idx_pets_public"`
	Photos              datatypes.JSON
	MicrochipID         string
	LastVaccinationDate *time.Time
	NextCheckupDate     *time.Time
	HealthTips          string
	Recommendations     datatypes.JSON
	CreatedAt           time.Time
}

func (petRow) TableName() string { return "pets" }

type postRow struct {
	ID            int64 `gorm:"primaryKey;autoIncrement"`
	PetID         int64 `gorm:"not null;index:idx_posts_pet"`
	UserID        int64 `gorm:"not null;index:idx_posts_user"`
	ImageURL      string
	Caption       string
	Location      string
	LikesCount    int       `gorm:"not null"`
	CommentsCount int       `gorm:"not null"`
	CreatedAt     time.Time `gorm:"index:idx_posts_created"`
}

func (postRow) TableName() string { return "posts" }

type likeRow struct {
	ID        int64 `gorm:"primaryKey;autoIncrement"`
	UserID    int64 `gorm:"not null;index:idx_likes_pair,unique"`
	PostID    int64 `gorm:"not null;index:idx_likes_pair,unique;index:idx_likes_post"`
	CreatedAt time.Time
}

func (likeRow) TableName() string { return "likes" }

type commentRow struct {
	ID        int64 `gorm:"primaryKey;autoIncrement"`
	PostID    int64 `gorm:"not null;index:idx_comments_post"`
	UserID    int64 `gorm:"not null"`
	Content   string
	CreatedAt time.Time
}

func (commentRow) TableName() string { return "comments" }

type followRow struct {
	ID            int64 `gorm:"primaryKey;autoIncrement"`
	FollowerID    int64 `gorm:"not null;index:idx_follows_pair,unique"`
	FollowedPetID int64 `gorm:"not null;index:idx_follows_pair,unique;index:idx_follows_pet"`
	CreatedAt     time.Time
}

func (followRow) TableName() string { return "follows" }

// matchRow: par normalizado (pet_id1 < pet_id2) + swiper.
type matchRow struct {
	ID             int64  `gorm:"primaryKey;autoIncrement"`
	UserID         int64  `gorm:"not null;index:idx_matches_swipe,unique"`
	PetID1         int64  `gorm:"column:pet_id1;not null;index:idx_matches_swipe,unique"`
	PetID2         int64  `gorm:"column:pet_id2;not null;index:idx_matches_swipe,unique"`
	SwipeDirection string `gorm:"size:8;not null"`
	IsMatch        bool   `gorm:"not null"`
	CreatedAt      time.Time
}

func (matchRow) TableName() string { return "matches" }

type recordRow struct {
	ID            int64  `gorm:"primaryKey;autoIncrement"`
	PetID         int64  `gorm:"not null;index:idx_medical_pet"`
	Type          string `gorm:"size:32"`
	Date          time.Time
	Diagnosis     string
	Treatment     string
	Notes         string
	Cost          float64
	VetName       string
	Prescriptions datatypes.JSON
	NextDueDate   *time.Time
	Completed     bool `gorm:"not null"`
	CreatedAt     time.Time
}

func (recordRow) TableName() string { return "medical_records" }

// --- conversiones ---

func utc(t time.Time) time.Time { return t.UTC() }

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC().Truncate(time.Microsecond)
	return &v
}

func userFromRow(r userRow) users.User {
	return users.User{
		ID:        r.ID,
		Email:     r.Email,
		Username:  r.Username,
		Password:  r.Password,
		Name:      r.Name,
		Bio:       r.Bio,
		Avatar:    r.Avatar,
		Location:  r.Location,
		Role:      r.Role,
		CreatedAt: utc(r.CreatedAt),
	}
}

func userToRow(u users.User) userRow {
	return userRow{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		Password:  u.Password,
		Name:      u.Name,
		Bio:       u.Bio,
		Avatar:    u.Avatar,
		Location:  u.Location,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

func petFromRow(r petRow) (pets.Pet, error) {
	p := pets.Pet{
		ID:                  r.ID,
		OwnerID:             r.OwnerID,
		Name:                r.Name,
		Species:             r.Species,
		Breed:               r.Breed,
		Age:                 r.Age,
		Gender:              pets.Gender(r.Gender),
		Weight:              r.Weight,
		Color:               r.Color,
		Bio:                 r.Bio,
		IsPublic:            r.IsPublic,
		Photos:              []string{},
		MicrochipID:         r.MicrochipID,
		LastVaccinationDate: utcPtr(r.LastVaccinationDate),
		NextCheckupDate:     utcPtr(r.NextCheckupDate),
		HealthTips:          r.HealthTips,
		CreatedAt:           utc(r.CreatedAt),
	}
	if len(r.Photos) > 0 {
		if err := json.Unmarshal(r.Photos, &p.Photos); err != nil {
			return pets.Pet{}, err
		}
	}
	if len(r.Recommendations) > 0 {
		p.Recommendations = json.RawMessage(append([]byte(nil), r.Recommendations...))
	}
	return p, nil
}

func petToRow(p pets.Pet) (petRow, error) {
	photos, err := json.Marshal(p.Photos)
	if err != nil {
		return petRow{}, err
	}
	r := petRow{
		ID:                  p.ID,
		OwnerID:             p.OwnerID,
		Name:                p.Name,
		Species:             p.Species,
		Breed:               p.Breed,
		Age:                 p.Age,
		Gender:              string(p.Gender),
		Weight:              p.Weight,
		Color:               p.Color,
		Bio:                 p.Bio,
		IsPublic:            p.IsPublic,
		Photos:              datatypes.JSON(photos),
		MicrochipID:         p.MicrochipID,
		LastVaccinationDate: utcPtr(p.LastVaccinationDate),
		NextCheckupDate:     utcPtr(p.NextCheckupDate),
		HealthTips:          p.HealthTips,
		CreatedAt:           p.CreatedAt,
	}
	if len(p.Recommendations) > 0 {
		r.Recommendations = datatypes.JSON(p.Recommendations)
	}
	return r, nil
}

func postFromRow(r postRow) posts.Post {
	return posts.Post{
		ID:            r.ID,
		PetID:         r.PetID,
		UserID:        r.UserID,
		ImageURL:      r.ImageURL,
		Caption:       r.Caption,
		Location:      r.Location,
		LikesCount:    r.LikesCount,
		CommentsCount: r.CommentsCount,
		CreatedAt:     utc(r.CreatedAt),
	}
}

func postsFromRows(rows []postRow) []posts.Post {
	out := make([]posts.Post, 0, len(rows))
	for _, r := range rows {
		out = append(out, postFromRow(r))
	}
	return out
}

func likeFromRow(r likeRow) posts.Like {
	return posts.Like{ID: r.ID, UserID: r.UserID, PostID: r.PostID, CreatedAt: utc(r.CreatedAt)}
}

func commentFromRow(r commentRow) posts.Comment {
	return posts.Comment{
		ID:        r.ID,
		PostID:    r.PostID,
		UserID:    r.UserID,
		Content:   r.Content,
		CreatedAt: utc(r.CreatedAt),
	}
}

func followFromRow(r followRow) follows.Follow {
	return follows.Follow{
		ID:            r.ID,
		FollowerID:    r.FollowerID,
		FollowedPetID: r.FollowedPetID,
		CreatedAt:     utc(r.CreatedAt),
	}
}

func matchFromRow(r matchRow) matches.Match {
	return matches.Match{
		ID:             r.ID,
		UserID:         r.UserID,
		PetID1:         r.PetID1,
		PetID2:         r.PetID2,
		SwipeDirection: matches.Direction(r.SwipeDirection),
		IsMatch:        r.IsMatch,
		CreatedAt:      utc(r.CreatedAt),
	}
}

func recordFromRow(r recordRow) (medical.Record, error) {
	rec := medical.Record{
		ID:            r.ID,
		PetID:         r.PetID,
		Type:          r.Type,
		Date:          utc(r.Date),
		Diagnosis:     r.Diagnosis,
		Treatment:     r.Treatment,
		Notes:         r.Notes,
		Cost:          r.Cost,
		VetName:       r.VetName,
		Prescriptions: []medical.Prescription{},
		NextDueDate:   utcPtr(r.NextDueDate),
		Completed:     r.Completed,
		CreatedAt:     utc(r.CreatedAt),
	}
	if len(r.Prescriptions) > 0 {
		if err := json.Unmarshal(r.Prescriptions, &rec.Prescriptions); err != nil {
			return medical.Record{}, err
		}
	}
	return rec, nil
}

func recordToRow(rec medical.Record) (recordRow, error) {
	rx, err := json.Marshal(rec.Prescriptions)
	if err != nil {
		return recordRow{}, err
	}
	return recordRow{
		ID:            rec.ID,
		PetID:         rec.PetID,
		Type:          rec.Type,
		Date:          rec.Date.UTC().Truncate(time.Microsecond),
		Diagnosis:     rec.Diagnosis,
		Treatment:     rec.Treatment,
		Notes:         rec.Notes,
		Cost:          rec.Cost,
		VetName:       rec.VetName,
		Prescriptions: datatypes.JSON(rx),
		NextDueDate:   utcPtr(rec.NextDueDate),
		Completed:     rec.Completed,
		CreatedAt:     rec.CreatedAt,
	}, nil
}
