package service

import (
	"context"
	"sort"
	"strings"

	"github.com/timtruong/timtruong-backend/internal/model"
	"github.com/timtruong/timtruong-backend/internal/repository"
)

// ─── Universities ─────────────────────────────────────────────────────

type fakeUniversityRepo struct {
	rows   map[int]*model.University
	nextID int
}

func newFakeUniversityRepo(unis ...model.University) *fakeUniversityRepo {
	r := &fakeUniversityRepo{rows: map[int]*model.University{}}
	for _, u := range unis {
		u := u
		r.rows[u.ID] = &u
		if u.ID > r.nextID {
			r.nextID = u.ID
		}
	}
	return r
}

func (r *fakeUniversityRepo) List(_ context.Context, f model.UniversityFilter) ([]model.University, error) {
	out := []model.University{}
	for _, u := range r.rows {
		if f.Search != "" && !strings.Contains(strings.ToLower(u.Name+" "+u.Code), strings.ToLower(f.Search)) {
			continue
		}
		if f.Type != "" && u.Type != f.Type {
			continue
		}
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeUniversityRepo) ListSimple(context.Context) ([]model.UniversitySimple, error) {
	out := []model.UniversitySimple{}
	for _, u := range r.rows {
		out = append(out, model.UniversitySimple{ID: u.ID, Name: u.Name, Code: u.Code})
	}
	return out, nil
}

func (r *fakeUniversityRepo) GetByID(_ context.Context, id int) (*model.University, error) {
	u, ok := r.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUniversityRepo) GetByCode(_ context.Context, code string) (*model.University, error) {
	for _, u := range r.rows {
		if u.Code == code {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUniversityRepo) NameTaken(_ context.Context, name string, excludeID int) (bool, error) {
	for _, u := range r.rows {
		if strings.EqualFold(u.Name, name) && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUniversityRepo) Create(_ context.Context, u *model.University) error {
	r.nextID++
	u.ID = r.nextID
	cp := *u
	r.rows[u.ID] = &cp
	return nil
}

func (r *fakeUniversityRepo) Update(_ context.Context, u *model.University) error {
	if _, ok := r.rows[u.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *u
	r.rows[u.ID] = &cp
	return nil
}

func (r *fakeUniversityRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

// ─── Campuses ─────────────────────────────────────────────────────────

type fakeCampusRepo struct {
	rows   map[int]*model.Campus
	nextID int
}

func newFakeCampusRepo() *fakeCampusRepo {
	return &fakeCampusRepo{rows: map[int]*model.Campus{}}
}

func (r *fakeCampusRepo) List(_ context.Context, f model.CampusFilter) ([]model.Campus, error) {
	out := []model.Campus{}
	for _, c := range r.rows {
		if f.University != "" && c.UniversityCode != f.University {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeCampusRepo) GetByID(_ context.Context, id int) (*model.Campus, error) {
	c, ok := r.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCampusRepo) NameTaken(_ context.Context, universityID int, name string, excludeID int) (bool, error) {
	for _, c := range r.rows {
		if c.UniversityID == universityID && strings.EqualFold(c.Name, name) && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCampusRepo) Create(_ context.Context, c *model.Campus) error {
	r.nextID++
	c.ID = r.nextID
	cp := *c
	r.rows[c.ID] = &cp
	return nil
}

func (r *fakeCampusRepo) Update(_ context.Context, c *model.Campus) error {
	if _, ok := r.rows[c.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *c
	r.rows[c.ID] = &cp
	return nil
}

func (r *fakeCampusRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

// ─── Majors ───────────────────────────────────────────────────────────

type fakeMajorRepo struct {
	rows   map[int]*model.Major
	nextID int
	// requirements is consulted to emulate ON DELETE CASCADE.
	requirements *fakeRequirementRepo
}

func newFakeMajorRepo() *fakeMajorRepo {
	return &fakeMajorRepo{rows: map[int]*model.Major{}, nextID: 100}
}

func (r *fakeMajorRepo) ListByUniversity(_ context.Context, universityID int) ([]model.Major, error) {
	out := []model.Major{}
	for _, m := range r.rows {
		if m.UniversityID == universityID {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeMajorRepo) GetByID(_ context.Context, id int) (*model.Major, error) {
	m, ok := r.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMajorRepo) FindByName(_ context.Context, universityID int, name string) (*model.Major, error) {
	for _, m := range r.rows {
		if m.UniversityID == universityID && strings.EqualFold(m.Name, name) {
			cp := *m
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeMajorRepo) Create(_ context.Context, m *model.Major) error {
	r.nextID++
	m.ID = r.nextID
	cp := *m
	r.rows[m.ID] = &cp
	return nil
}

func (r *fakeMajorRepo) Update(_ context.Context, m *model.Major) error {
	existing, ok := r.rows[m.ID]
	if !ok {
		return repository.ErrNotFound
	}
	m.UniversityID = existing.UniversityID
	cp := *m
	r.rows[m.ID] = &cp
	return nil
}

func (r *fakeMajorRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.rows, id)
	if r.requirements != nil {
		for rid, req := range r.requirements.rows {
			if req.MajorID == id {
				delete(r.requirements.rows, rid)
			}
		}
	}
	return nil
}

// ─── Admission requirements ───────────────────────────────────────────

type fakeRequirementRepo struct {
	rows   map[int]*model.AdmissionRequirement
	nextID int
}

func newFakeRequirementRepo() *fakeRequirementRepo {
	return &fakeRequirementRepo{rows: map[int]*model.AdmissionRequirement{}, nextID: 1000}
}

func (r *fakeRequirementRepo) ListByExamType(context.Context, model.ExamType) ([]model.AdmissionRecord, error) {
	return nil, nil
}

func (r *fakeRequirementRepo) ListByMajor(_ context.Context, majorID int) ([]model.AdmissionRequirement, error) {
	out := []model.AdmissionRequirement{}
	for _, req := range r.rows {
		if req.MajorID == majorID {
			out = append(out, *req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeRequirementRepo) GetByID(_ context.Context, id int) (*model.AdmissionRequirement, error) {
	req, ok := r.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *req
	return &cp, nil
}

func (r *fakeRequirementRepo) Create(_ context.Context, req *model.AdmissionRequirement) error {
	r.nextID++
	req.ID = r.nextID
	cp := *req
	r.rows[req.ID] = &cp
	return nil
}

func (r *fakeRequirementRepo) Update(_ context.Context, req *model.AdmissionRequirement) error {
	if _, ok := r.rows[req.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *req
	r.rows[req.ID] = &cp
	return nil
}

func (r *fakeRequirementRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *fakeRequirementRepo) Upsert(ctx context.Context, req *model.AdmissionRequirement) (bool, error) {
	for _, existing := range r.rows {
		if existing.MajorID == req.MajorID && existing.ExamType == req.ExamType &&
			existing.Year == req.Year && sameCombination(existing.SubjectCombination, req.SubjectCombination) {
			req.ID = existing.ID
			cp := *req
			r.rows[req.ID] = &cp
			return false, nil
		}
	}
	return true, r.Create(ctx, req)
}

func sameCombination(a, b *model.SubjectCombination) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
