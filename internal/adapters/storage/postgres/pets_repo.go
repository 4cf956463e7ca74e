package postgres

import (
	"context"
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"pet-social/internal/domain/pets"
	"pet-social/internal/platform/apperr"
)

type petRepo struct{ s *Store }

func (r *petRepo) Create(ctx context.Context, p pets.Pet) (pets.Pet, error) {
	p = p.WithDefaults()
	p.ID = 0
	p.CreatedAt = r.s.now()
	row, err := petToRow(p)
	if err != nil {
		return pets.Pet{}, err
	}
	if err := r.s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return pets.Pet{}, translate(err)
	}
	return petFromRow(row)
}

func (r *petRepo) GetByID(ctx context.Context, id int64) (pets.Pet, error) {
	var row petRow
	if err := r.s.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return pets.Pet{}, translate(err)
	}
	return petFromRow(row)
}

func (r *petRepo) ListByOwner(ctx context.Context, ownerID int64) ([]pets.Pet, error) {
	return findPets(r.s.db.WithContext(ctx).Where("owner_id = ?", ownerID))
}

func (r *petRepo) ListPublic(ctx context.Context) ([]pets.Pet, error) {
	return findPets(r.s.db.WithContext(ctx).Where("is_public = ?", true))
}

func (r *petRepo) Update(ctx context.Context, id int64, pa pets.Patch) (pets.Pet, error) {
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return pets.Pet{}, err
	}
	cols := petPatchColumns(pa)
	if len(cols) == 0 {
		return p, nil
	}
	pa.Apply(&p)
	row, err := petToRow(p)
	if err != nil {
		return pets.Pet{}, err
	}
	// Solo las columnas del patch: lo demás (p.ej. recommendations) puede
	// haber cambiado desde la lectura.
	res := r.s.db.WithContext(ctx).Model(&petRow{ID: id}).Select(cols).Updates(&row)
	if res.Error != nil {
		return pets.Pet{}, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return pets.Pet{}, apperr.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func petPatchColumns(pa pets.Patch) []string {
	var cols []string
	add := func(set bool, col string) {
		if set {
			cols = append(cols, col)
		}
	}
	add(pa.Name != nil, "name")
	add(pa.Species != nil, "species")
	add(pa.Breed != nil, "breed")
	add(pa.Age != nil, "age")
	add(pa.Gender != nil, "gender")
	add(pa.Weight != nil, "weight")
	add(pa.Color != nil, "color")
	add(pa.Bio != nil, "bio")
	add(pa.IsPublic != nil, "is_public")
	add(pa.Photos != nil, "photos")
	add(pa.MicrochipID != nil, "microchip_id")
	add(pa.LastVaccinationDate != nil, "last_vaccination_date")
	add(pa.NextCheckupDate != nil, "next_checkup_date")
	add(pa.HealthTips != nil, "health_tips")
	return cols
}

func (r *petRepo) SetRecommendations(ctx context.Context, id int64, doc json.RawMessage) (pets.Pet, error) {
	res := r.s.db.WithContext(ctx).Model(&petRow{}).Where("id = ?", id).
		Update("recommendations", datatypes.JSON(doc))
	if res.Error != nil {
		return pets.Pet{}, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return pets.Pet{}, apperr.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// findPets ejecuta q ordenando por id ascendente.
func findPets(q *gorm.DB) ([]pets.Pet, error) {
	var rows []petRow
	if err := q.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	out := make([]pets.Pet, 0, len(rows))
	for _, row := range rows {
		p, err := petFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
