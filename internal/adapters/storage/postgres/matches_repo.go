package postgres

import (
	"context"

	"gorm.io/gorm"

	"pet-social/internal/domain/matches"
	"pet-social/internal/domain/pets"
	"pet-social/internal/platform/apperr"
)

type matchRepo struct{ s *Store }

func (r *matchRepo) Create(ctx context.Context, m matches.Match) (matches.Match, error) {
	m = m.Normalized()
	row := matchRow{
		UserID:         m.UserID,
		PetID1:         m.PetID1,
		PetID2:         m.PetID2,
		SwipeDirection: string(m.SwipeDirection),
		IsMatch:        m.IsMatch,
		CreatedAt:      r.s.now(),
	}
	if err := r.s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return matches.Match{}, translate(err)
	}
	return matchFromRow(row), nil
}

func (r *matchRepo) GetByID(ctx context.Context, id int64) (matches.Match, error) {
	var row matchRow
	if err := r.s.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return matches.Match{}, translate(err)
	}
	return matchFromRow(row), nil
}

func (r *matchRepo) Get(ctx context.Context, userID, petA, petB int64) (matches.Match, error) {
	pair := matches.NewPair(petA, petB)
	var row matchRow
	err := r.s.db.WithContext(ctx).
		Where("user_id = ? AND pet_id1 = ? AND pet_id2 = ?", userID, pair.A, pair.B).
		First(&row).Error
	if err != nil {
		return matches.Match{}, translate(err)
	}
	return matchFromRow(row), nil
}

func (r *matchRepo) ListByUser(ctx context.Context, userID int64) ([]matches.Match, error) {
	var rows []matchRow
	if err := r.s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	out := make([]matches.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}
	return out, nil
}

// ListPotential excluye mascotas propias y cualquier mascota que ya aparezca
// en un match que involucre a una mascota del usuario.
func (r *matchRepo) ListPotential(ctx context.Context, userID int64) ([]pets.Pet, error) {
	db := r.s.db.WithContext(ctx)
	own := db.Model(&petRow{}).Select("id").Where("owner_id = ?", userID)
	touched := func(col string) *gorm.DB {
		return db.Model(&matchRow{}).Select(col).Where("pet_id1 IN (?) OR pet_id2 IN (?)", own, own)
	}
	q := db.Where("is_public = ? AND owner_id <> ?", true, userID).
		Where("id NOT IN (?)", touched("pet_id1")).
		Where("id NOT IN (?)", touched("pet_id2"))
	return findPets(q)
}

// MarkMutual promueve todas las filas a IsMatch=true en una transacción.
func (r *matchRepo) MarkMutual(ctx context.Context, ids ...int64) error {
	if len(ids) == 0 {
		return nil
	}
	return r.s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&matchRow{}).Where("id IN ?", ids).Update("is_match", true)
		if res.Error != nil {
			return translate(res.Error)
		}
		if res.RowsAffected != int64(len(ids)) {
			return apperr.ErrNotFound
		}
		return nil
	})
}
