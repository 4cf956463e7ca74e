package postgres

import (
	"context"

	"pet-social/internal/domain/medical"
	"pet-social/internal/platform/apperr"
)

type medicalRepo struct{ s *Store }

func (r *medicalRepo) Create(ctx context.Context, rec medical.Record) (medical.Record, error) {
	rec = rec.WithDefaults()
	rec.ID = 0
	rec.CreatedAt = r.s.now()
	row, err := recordToRow(rec)
	if err != nil {
		return medical.Record{}, err
	}
	if err := r.s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return medical.Record{}, translate(err)
	}
	return recordFromRow(row)
}

func (r *medicalRepo) GetByID(ctx context.Context, id int64) (medical.Record, error) {
	var row recordRow
	if err := r.s.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return medical.Record{}, translate(err)
	}
	return recordFromRow(row)
}

func (r *medicalRepo) ListByPet(ctx context.Context, petID int64) ([]medical.Record, error) {
	var rows []recordRow
	err := r.s.db.WithContext(ctx).Where("pet_id = ?", petID).
		Order("date DESC").Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	out := make([]medical.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := recordFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *medicalRepo) Update(ctx context.Context, id int64, p medical.Patch) (medical.Record, error) {
	rec, err := r.GetByID(ctx, id)
	if err != nil {
		return medical.Record{}, err
	}
	p.Apply(&rec)
	row, err := recordToRow(rec)
	if err != nil {
		return medical.Record{}, err
	}
	res := r.s.db.WithContext(ctx).Model(&recordRow{ID: id}).Select("*").Updates(&row)
	if res.Error != nil {
		return medical.Record{}, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return medical.Record{}, apperr.ErrNotFound
	}
	return recordFromRow(row)
}

func (r *medicalRepo) Delete(ctx context.Context, id int64) error {
	res := r.s.db.WithContext(ctx).Delete(&recordRow{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
