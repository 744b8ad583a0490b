// Package testutil repositorios en memoria para tests de casos de uso y handlers.
// Implementan los mismos puertos que los adaptadores PostgreSQL.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Mamba1099/milk-farm-sub002/internal/domain"
	"github.com/Mamba1099/milk-farm-sub002/internal/domain/entity"
	"github.com/Mamba1099/milk-farm-sub002/internal/domain/repository"
)

var (
	_ repository.UserRepository         = (*UserRepo)(nil)
	_ repository.AnimalRepository       = (*AnimalRepo)(nil)
	_ repository.ProductionRepository   = (*ProductionRepo)(nil)
	_ repository.DailySummaryRepository = (*SummaryRepo)(nil)
	_ repository.ServingRepository      = (*ServingRepo)(nil)
	_ repository.SaleRepository         = (*SaleRepo)(nil)
)

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	end := len(list)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return list[offset:end]
}

// ── Users ─────────────────────────────────────────────────────────────────────

// UserRepo UserRepository en memoria.
type UserRepo struct {
	mu    sync.Mutex
	items map[string]entity.User
}

// NewUserRepo construye el repositorio vacío.
func NewUserRepo() *UserRepo { return &UserRepo{items: map[string]entity.User{}} }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range r.items {
		if it.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.items[u.ID] = *u
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.items[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.items {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[u.ID] = *u
	return nil
}

func (r *UserRepo) List(_ context.Context, limit, offset int) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := make([]*entity.User, 0, len(r.items))
	for _, u := range r.items {
		u := u
		list = append(list, &u)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Email < list[j].Email })
	return page(list, limit, offset), nil
}

func (r *UserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *UserRepo) ExistsWithRole(_ context.Context, role string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.items {
		if u.Role == role {
			return true, nil
		}
	}
	return false, nil
}

// ── Animals ───────────────────────────────────────────────────────────────────

// AnimalRepo AnimalRepository en memoria.
type AnimalRepo struct {
	mu    sync.Mutex
	items map[string]entity.Animal
}

// NewAnimalRepo construye el repositorio vacío.
func NewAnimalRepo() *AnimalRepo { return &AnimalRepo{items: map[string]entity.Animal{}} }

func (r *AnimalRepo) Create(_ context.Context, a *entity.Animal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range r.items {
		if it.TagNumber == a.TagNumber {
			return domain.ErrDuplicate
		}
	}
	r.items[a.ID] = *a
	return nil
}

func (r *AnimalRepo) GetByID(_ context.Context, id string) (*entity.Animal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.items[id]; ok {
		return &a, nil
	}
	return nil, nil
}

func (r *AnimalRepo) GetByTag(_ context.Context, tag string) (*entity.Animal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.items {
		if a.TagNumber == tag {
			a := a
			return &a, nil
		}
	}
	return nil, nil
}

func (r *AnimalRepo) Update(_ context.Context, a *entity.Animal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[a.ID] = *a
	return nil
}

func (r *AnimalRepo) List(_ context.Context, f repository.AnimalFilter, limit, offset int) ([]*entity.Animal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []*entity.Animal
	for _, a := range r.items {
		if f.Type != "" && a.Type != f.Type {
			continue
		}
		if f.Gender != "" && a.Gender != f.Gender {
			continue
		}
		a := a
		list = append(list, &a)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].TagNumber < list[j].TagNumber })
	return page(list, limit, offset), nil
}

func (r *AnimalRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *AnimalRepo) CountByType(_ context.Context) (map[string]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[string]int{}
	for _, a := range r.items {
		out[a.Type]++
	}
	return out, nil
}

// ── Production ────────────────────────────────────────────────────────────────

// ProductionRepo ProductionRepository en memoria.
type ProductionRepo struct {
	mu    sync.Mutex
	items map[string]entity.ProductionRecord
}

// NewProductionRepo construye el repositorio vacío.
func NewProductionRepo() *ProductionRepo {
	return &ProductionRepo{items: map[string]entity.ProductionRecord{}}
}

func (r *ProductionRepo) Create(_ context.Context, p *entity.ProductionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range r.items {
		if it.AnimalID == p.AnimalID && sameDay(it.Date, p.Date) {
			return domain.ErrDuplicate
		}
	}
	r.items[p.ID] = *p
	return nil
}

func (r *ProductionRepo) GetByID(_ context.Context, id string) (*entity.ProductionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.items[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *ProductionRepo) Update(_ context.Context, p *entity.ProductionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[p.ID] = *p
	return nil
}

func (r *ProductionRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *ProductionRepo) ListByDate(ctx context.Context, date time.Time) ([]*entity.ProductionRecord, error) {
	return r.ListBetween(ctx, date, date)
}

func (r *ProductionRepo) ListBetween(_ context.Context, from, to time.Time) ([]*entity.ProductionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []*entity.ProductionRecord
	for _, p := range r.items {
		if p.Date.Before(from) || p.Date.After(to) {
			continue
		}
		p := p
		list = append(list, &p)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Date.Equal(list[j].Date) {
			return list[i].AnimalID < list[j].AnimalID
		}
		return list[i].Date.Before(list[j].Date)
	})
	return list, nil
}

// SummaryRepo DailySummaryRepository en memoria.
type SummaryRepo struct {
	mu    sync.Mutex
	items map[string]entity.DailySummary
}

// NewSummaryRepo construye el repositorio vacío.
func NewSummaryRepo() *SummaryRepo { return &SummaryRepo{items: map[string]entity.DailySummary{}} }

func key(t time.Time) string { return t.Format("2006-01-02") }

func (r *SummaryRepo) Upsert(_ context.Context, s *entity.DailySummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[key(s.Date)] = *s
	return nil
}

func (r *SummaryRepo) GetByDate(_ context.Context, date time.Time) (*entity.DailySummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.items[key(date)]; ok {
		return &s, nil
	}
	return nil, nil
}

func (r *SummaryRepo) LastBefore(_ context.Context, date time.Time) (*entity.DailySummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var best *entity.DailySummary
	for _, s := range r.items {
		if !s.Date.Before(date) {
			continue
		}
		if best == nil || s.Date.After(best.Date) {
			s := s
			best = &s
		}
	}
	return best, nil
}

func (r *SummaryRepo) ListBetween(_ context.Context, from, to time.Time) ([]*entity.DailySummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []*entity.DailySummary
	for _, s := range r.items {
		if s.Date.Before(from) || s.Date.After(to) {
			continue
		}
		s := s
		list = append(list, &s)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Date.Before(list[j].Date) })
	return list, nil
}

// LedgerTx TxRunner en memoria: ejecuta fn con los repositorios directamente.
type LedgerTx struct {
	Production *ProductionRepo
	Summaries  *SummaryRepo
}

func (t *LedgerTx) RunLedger(ctx context.Context, fn func(
	prodRepo repository.ProductionRepository,
	summaryRepo repository.DailySummaryRepository,
) error) error {
	return fn(t.Production, t.Summaries)
}

// ── Servings ──────────────────────────────────────────────────────────────────

// ServingRepo ServingRepository en memoria.
type ServingRepo struct {
	mu    sync.Mutex
	items map[string]entity.Serving
}

// NewServingRepo construye el repositorio vacío.
func NewServingRepo() *ServingRepo { return &ServingRepo{items: map[string]entity.Serving{}} }

func (r *ServingRepo) Create(_ context.Context, s *entity.Serving) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[s.ID] = *s
	return nil
}

func (r *ServingRepo) GetByID(_ context.Context, id string) (*entity.Serving, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.items[id]; ok {
		return &s, nil
	}
	return nil, nil
}

func (r *ServingRepo) Update(_ context.Context, s *entity.Serving) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[s.ID] = *s
	return nil
}

func (r *ServingRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *ServingRepo) List(_ context.Context, femaleID string, limit, offset int) ([]*entity.Serving, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []*entity.Serving
	for _, s := range r.items {
		if femaleID != "" && s.FemaleID != femaleID {
			continue
		}
		s := s
		list = append(list, &s)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ServedAt.After(list[j].ServedAt) })
	return page(list, limit, offset), nil
}

// CountPending número de servicios pendientes.
func (r *ServingRepo) CountPending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, s := range r.items {
		if s.Outcome == entity.OutcomePending {
			n++
		}
	}
	return n
}

// ── Sales ─────────────────────────────────────────────────────────────────────

// SaleRepo SaleRepository en memoria.
type SaleRepo struct {
	mu    sync.Mutex
	items map[string]entity.Sale
}

// NewSaleRepo construye el repositorio vacío.
func NewSaleRepo() *SaleRepo { return &SaleRepo{items: map[string]entity.Sale{}} }

func (r *SaleRepo) Create(_ context.Context, s *entity.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[s.ID] = *s
	return nil
}

func (r *SaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.items[id]; ok {
		return &s, nil
	}
	return nil, nil
}

func (r *SaleRepo) Update(_ context.Context, s *entity.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[s.ID] = *s
	return nil
}

func (r *SaleRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *SaleRepo) ListBetween(_ context.Context, from, to time.Time, limit, offset int) ([]*entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []*entity.Sale
	for _, s := range r.items {
		if s.Date.Before(from) || s.Date.After(to) {
			continue
		}
		s := s
		list = append(list, &s)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Date.Before(list[j].Date) })
	return page(list, limit, offset), nil
}

// ── Dashboard ─────────────────────────────────────────────────────────────────

// DashboardRepo DashboardRepository calculado sobre los repositorios en memoria.
type DashboardRepo struct {
	Production *ProductionRepo
	Sales      *SaleRepo
	Servings   *ServingRepo
}

func (r *DashboardRepo) ProductionTotals(ctx context.Context, date time.Time) (decimal.Decimal, decimal.Decimal, error) {
	recs, _ := r.Production.ListByDate(ctx, date)
	am, pm := decimal.Zero, decimal.Zero
	for _, p := range recs {
		if v := p.NetAM(); v != nil {
			am = am.Add(*v)
		}
		if v := p.NetPM(); v != nil {
			pm = pm.Add(*v)
		}
	}
	return am, pm, nil
}

func (r *DashboardRepo) SalesTotals(ctx context.Context, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	sales, _ := r.Sales.ListBetween(ctx, from, to, 0, 0)
	liters, amount := decimal.Zero, decimal.Zero
	for _, s := range sales {
		liters = liters.Add(s.Quantity)
		amount = amount.Add(s.TotalAmount)
	}
	return liters, amount, nil
}

func (r *DashboardRepo) CountPendingServings(context.Context) (int, error) {
	return r.Servings.CountPending(), nil
}
