package memory

import (
	"context"
	"slices"

	"pet-social/internal/domain/medical"
	"pet-social/internal/platform/apperr"
	"pet-social/internal/ports/storage"
)

type medicalRepo struct{ s *Store }

func cloneRecord(r medical.Record) medical.Record {
	r.Prescriptions = slices.Clone(r.Prescriptions)
	if r.Prescriptions == nil {
		r.Prescriptions = []medical.Prescription{}
	}
	return r
}

func (r *medicalRepo) Create(ctx context.Context, rec medical.Record) (medical.Record, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec = cloneRecord(rec.WithDefaults())
	rec.ID = r.s.nextID("medical")
	rec = normalizeRecordDates(rec)
	rec.CreatedAt = r.s.now()
	r.s.records[rec.ID] = rec
	return cloneRecord(rec), nil
}

func (r *medicalRepo) GetByID(ctx context.Context, id int64) (medical.Record, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, ok := r.s.records[id]
	if !ok {
		return medical.Record{}, apperr.ErrNotFound
	}
	return cloneRecord(rec), nil
}

func (r *medicalRepo) ListByPet(ctx context.Context, petID int64) ([]medical.Record, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]medical.Record, 0)
	for _, rec := range r.s.records {
		if rec.PetID == petID {
			out = append(out, cloneRecord(rec))
		}
	}
	slices.SortFunc(out, func(a, b medical.Record) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return cmpID(b.ID, a.ID)
	})
	return out, nil
}

func (r *medicalRepo) Update(ctx context.Context, id int64, p medical.Patch) (medical.Record, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.records[id]
	if !ok {
		return medical.Record{}, apperr.ErrNotFound
	}
	p.Apply(&rec)
	rec = normalizeRecordDates(rec)
	r.s.records[id] = cloneRecord(rec)
	return cloneRecord(rec), nil
}

func (r *medicalRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.records[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(r.s.records, id)
	return nil
}

func normalizeRecordDates(r medical.Record) medical.Record {
	r.Date = storage.Timestamp(r.Date)
	if r.NextDueDate != nil {
		t := storage.Timestamp(*r.NextDueDate)
		r.NextDueDate = &t
	}
	return r
}
