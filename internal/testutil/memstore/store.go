// Package memstore implementa los puertos de repository en memoria para tests.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/esferaordo/ordo-api/internal/domain"
	"github.com/esferaordo/ordo-api/internal/domain/entity"
	"github.com/esferaordo/ordo-api/internal/domain/repository"
)

var (
	_ repository.UserRepository        = UserRepo{}
	_ repository.TenantRepository      = TenantRepo{}
	_ repository.LojaRepository        = LojaRepo{}
	_ repository.MemberRepository      = MemberRepo{}
	_ repository.PaymentRepository     = PaymentRepo{}
	_ repository.ChargeRepository      = ChargeRepo{}
	_ repository.MeetingRepository     = MeetingRepo{}
	_ repository.AttendanceRepository  = AttendanceRepo{}
	_ repository.InviteTokenRepository = InviteRepo{}
	_ repository.InventoryRepository   = InventoryRepo{}
)

// Store estado compartido por todos los repos en memoria.
type Store struct {
	mu          sync.Mutex
	Tenants     map[string]*entity.Tenant
	Lojas       map[string]*entity.Loja
	Users       map[string]*entity.User
	Members     map[string]*entity.Member
	Payments    []*entity.MemberPayment
	Charges     []*entity.DuesCharge
	Meetings    map[string]*entity.Meeting
	Attendances []*entity.Attendance
	Tokens      []*entity.PasswordInviteToken
	Items       map[string]*entity.InventoryItem
	Movements   []*entity.InventoryMovement
}

// New crea un store vacío.
func New() *Store {
	return &Store{
		Tenants:  map[string]*entity.Tenant{},
		Lojas:    map[string]*entity.Loja{},
		Users:    map[string]*entity.User{},
		Members:  map[string]*entity.Member{},
		Meetings: map[string]*entity.Meeting{},
		Items:    map[string]*entity.InventoryItem{},
	}
}

// Repos devuelve todos los repos sobre este store.
func (s *Store) Repos() repository.TxRepos {
	return repository.TxRepos{
		Users:      UserRepo{s},
		Invites:    InviteRepo{s},
		Payments:   PaymentRepo{s},
		Charges:    ChargeRepo{s},
		Attendance: AttendanceRepo{s},
		Inventory:  InventoryRepo{s},
	}
}

// TxRunner ejecuta fn con los repos del store (sin rollback).
type TxRunner struct{ S *Store }

func (r TxRunner) Run(_ context.Context, fn func(repository.TxRepos) error) error {
	return fn(r.S.Repos())
}

// ── Users / Tenants / Lojas ──────────────────────────────────────────────────

type UserRepo struct{ s *Store }

func NewUserRepo(s *Store) UserRepo { return UserRepo{s} }

func (r UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.Users {
		if x.TenantID == u.TenantID && strings.EqualFold(x.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *u
	r.s.Users[u.ID] = &cp
	return nil
}

func (r UserRepo) get(pred func(*entity.User) bool) *entity.User {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := make([]string, 0, len(r.s.Users))
	for id := range r.s.Users {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if u := r.s.Users[id]; pred(u) {
			cp := *u
			return &cp
		}
	}
	return nil
}

func (r UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.get(func(u *entity.User) bool { return u.ID == id }), nil
}

func (r UserRepo) GetByIDAndTenant(_ context.Context, id, tenantID string) (*entity.User, error) {
	return r.get(func(u *entity.User) bool { return u.ID == id && u.TenantID == tenantID }), nil
}

func (r UserRepo) GetByEmailAndTenant(_ context.Context, email, tenantID string) (*entity.User, error) {
	return r.get(func(u *entity.User) bool { return strings.EqualFold(u.Email, email) && u.TenantID == tenantID }), nil
}

func (r UserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.get(func(u *entity.User) bool { return strings.EqualFold(u.Email, email) }), nil
}

func (r UserRepo) UpdatePassword(_ context.Context, id, hash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.Users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (r UserRepo) Activate(_ context.Context, id, hash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.Users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	u.Status = entity.UserStatusActive
	return nil
}

func (r UserRepo) ListByTenant(_ context.Context, tenantID string) ([]entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.User
	for _, u := range r.s.Users {
		if u.TenantID == tenantID {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i].Email) < strings.ToLower(out[j].Email) })
	return out, nil
}

func (r UserRepo) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.Users[u.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	for _, x := range r.s.Users {
		if x.ID != u.ID && x.TenantID == cur.TenantID && strings.EqualFold(x.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	cur.Email = u.Email
	cur.Name = u.Name
	cur.Role = u.Role
	cur.Status = u.Status
	cur.LojaID = u.LojaID
	cur.UpdatedAt = u.UpdatedAt
	return nil
}

// Delete replica ON DELETE SET NULL en members y CASCADE en tokens.
func (r UserRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.Users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.s.Users, id)
	for _, m := range r.s.Members {
		if m.UserID != nil && *m.UserID == id {
			m.UserID = nil
		}
	}
	kept := r.s.Tokens[:0]
	for _, t := range r.s.Tokens {
		if t.UserID != id {
			kept = append(kept, t)
		}
	}
	r.s.Tokens = kept
	return nil
}

type TenantRepo struct{ s *Store }

func NewTenantRepo(s *Store) TenantRepo { return TenantRepo{s} }

func (r TenantRepo) GetByID(_ context.Context, id string) (*entity.Tenant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if t, ok := r.s.Tenants[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, nil
}

type LojaRepo struct{ s *Store }

func NewLojaRepo(s *Store) LojaRepo { return LojaRepo{s} }

func (r LojaRepo) GetByID(_ context.Context, tenantID, id string) (*entity.Loja, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if l, ok := r.s.Lojas[id]; ok && l.TenantID == tenantID {
		cp := *l
		return &cp, nil
	}
	return nil, nil
}

func (r LojaRepo) ListByTenant(_ context.Context, tenantID string) ([]entity.Loja, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.Loja
	for _, l := range r.s.Lojas {
		if l.TenantID == tenantID {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r LojaRepo) FirstByTenant(ctx context.Context, tenantID string) (*entity.Loja, error) {
	all, _ := r.ListByTenant(ctx, tenantID)
	if len(all) == 0 {
		return nil, nil
	}
	return &all[0], nil
}

func (r LojaRepo) Create(_ context.Context, l *entity.Loja) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *l
	r.s.Lojas[l.ID] = &cp
	return nil
}

func (r LojaRepo) Update(_ context.Context, l *entity.Loja) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.Lojas[l.ID]
	if !ok || cur.TenantID != l.TenantID {
		return domain.ErrNotFound
	}
	cp := *l
	cp.CreatedAt = cur.CreatedAt
	r.s.Lojas[l.ID] = &cp
	return nil
}

// ── Members ──────────────────────────────────────────────────────────────────

type MemberRepo struct{ s *Store }

func NewMemberRepo(s *Store) MemberRepo { return MemberRepo{s} }

func (r MemberRepo) Create(_ context.Context, m *entity.Member) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *m
	r.s.Members[m.ID] = &cp
	return nil
}

func (r MemberRepo) List(_ context.Context, f repository.MemberFilter) ([]entity.Member, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.Member
	for _, m := range r.s.Members {
		if m.TenantID != f.TenantID {
			continue
		}
		if f.LojaID != nil && m.LojaID != *f.LojaID {
			continue
		}
		if f.PotenciaID != nil {
			l, ok := r.s.Lojas[m.LojaID]
			if !ok || l.PotenciaID == nil || *l.PotenciaID != *f.PotenciaID {
				continue
			}
		}
		if f.Situacao != nil && m.Situacao != *f.Situacao {
			continue
		}
		if f.OnlyID != nil && m.ID != *f.OnlyID {
			continue
		}
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NomeCompleto < out[j].NomeCompleto })
	return out, nil
}

func (r MemberRepo) find(pred func(*entity.Member) bool) *entity.Member {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.Members {
		if pred(m) {
			cp := *m
			return &cp
		}
	}
	return nil
}

func (r MemberRepo) GetByID(_ context.Context, tenantID, id string) (*entity.Member, error) {
	return r.find(func(m *entity.Member) bool { return m.ID == id && m.TenantID == tenantID }), nil
}

func (r MemberRepo) GetByUserID(_ context.Context, tenantID, userID string) (*entity.Member, error) {
	return r.find(func(m *entity.Member) bool {
		return m.TenantID == tenantID && m.UserID != nil && *m.UserID == userID
	}), nil
}

func (r MemberRepo) GetByEmail(_ context.Context, tenantID, email string) (*entity.Member, error) {
	return r.find(func(m *entity.Member) bool {
		return m.TenantID == tenantID && strings.EqualFold(m.Email, email)
	}), nil
}

func (r MemberRepo) LinkUser(_ context.Context, memberID, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if m, ok := r.s.Members[memberID]; ok {
		id := userID
		m.UserID = &id
	}
	return nil
}

func (r MemberRepo) Update(_ context.Context, m *entity.Member) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.Members[m.ID]
	if !ok || cur.TenantID != m.TenantID {
		return domain.ErrMemberNotFound
	}
	cur.NomeCompleto = m.NomeCompleto
	cur.Email = m.Email
	cur.Class = m.Class
	cur.Situacao = m.Situacao
	cur.CondicaoMensalidade = m.CondicaoMensalidade
	return nil
}

// Delete replica las FKs de member_payments, dues_charges y attendances.
func (r MemberRepo) Delete(_ context.Context, tenantID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.Members[id]
	if !ok || cur.TenantID != tenantID {
		return domain.ErrMemberNotFound
	}
	for _, p := range r.s.Payments {
		if p.MemberID == id {
			return domain.ErrConflict
		}
	}
	for _, c := range r.s.Charges {
		if c.MemberID == id {
			return domain.ErrConflict
		}
	}
	for _, a := range r.s.Attendances {
		if a.MemberID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.Members, id)
	return nil
}

func (r MemberRepo) CountActive(_ context.Context, tenantID, lojaID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, m := range r.s.Members {
		if m.TenantID == tenantID && m.LojaID == lojaID && m.Situacao == entity.MemberSituacaoAtivo {
			n++
		}
	}
	return n, nil
}

// ── Payments / Charges ───────────────────────────────────────────────────────

type PaymentRepo struct{ s *Store }

func NewPaymentRepo(s *Store) PaymentRepo { return PaymentRepo{s} }

func (r PaymentRepo) Create(_ context.Context, p *entity.MemberPayment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *p
	r.s.Payments = append(r.s.Payments, &cp)
	return nil
}

func (r PaymentRepo) ListForGrid(_ context.Context, tenantID string, memberIDs []string, paymentType string, years []int) ([]entity.MemberPayment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := map[string]bool{}
	for _, id := range memberIDs {
		ids[id] = true
	}
	ys := map[int]bool{}
	for _, y := range years {
		ys[y] = true
	}
	var out []entity.MemberPayment
	for _, p := range r.s.Payments {
		if p.TenantID == tenantID && ids[p.MemberID] && p.PaymentType == paymentType && ys[p.ReferenceYear] {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r PaymentRepo) ExistsConfirmed(_ context.Context, tenantID, memberID, paymentType string, year int, month *int) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.Payments {
		if p.TenantID == tenantID && p.MemberID == memberID && p.PaymentType == paymentType &&
			p.ReferenceYear == year && sameMonth(p.ReferenceMonth, month) && p.Status == entity.PaymentStatusConfirmed {
			return true, nil
		}
	}
	return false, nil
}

func (r PaymentRepo) ListByMember(_ context.Context, tenantID, memberID string) ([]entity.MemberPayment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.MemberPayment
	for _, p := range r.s.Payments {
		if p.TenantID == tenantID && p.MemberID == memberID && p.Amount.IsPositive() {
			out = append(out, *p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PaymentDate.After(out[j].PaymentDate) })
	return out, nil
}

func sameMonth(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

type ChargeRepo struct{ s *Store }

func NewChargeRepo(s *Store) ChargeRepo { return ChargeRepo{s} }

func (r ChargeRepo) ListForSummary(_ context.Context, tenantID, lojaID, periodType string, year int) ([]entity.DuesCharge, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.DuesCharge
	for _, c := range r.s.Charges {
		if c.TenantID == tenantID && c.LojaID == lojaID && c.Type == periodType && c.Year == year {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r ChargeRepo) UpsertPaid(_ context.Context, c *entity.DuesCharge) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.Charges {
		if x.MemberID == c.MemberID && x.Type == c.Type && x.Year == c.Year && sameMonth(x.Month, c.Month) {
			x.Status = entity.ChargeStatusPaid
			x.PaymentID = c.PaymentID
			return nil
		}
	}
	cp := *c
	cp.Status = entity.ChargeStatusPaid
	r.s.Charges = append(r.s.Charges, &cp)
	return nil
}

// ── Meetings / Attendance ────────────────────────────────────────────────────

type MeetingRepo struct{ s *Store }

func NewMeetingRepo(s *Store) MeetingRepo { return MeetingRepo{s} }

func (r MeetingRepo) GetByID(_ context.Context, tenantID, id string) (*entity.Meeting, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if m, ok := r.s.Meetings[id]; ok && m.TenantID == tenantID {
		cp := *m
		return &cp, nil
	}
	return nil, nil
}

func (r MeetingRepo) List(_ context.Context, f repository.MeetingFilter) ([]entity.Meeting, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.Meeting
	for _, m := range r.s.Meetings {
		if m.TenantID != f.TenantID {
			continue
		}
		if f.LojaID != nil && m.LojaID != *f.LojaID {
			continue
		}
		if f.Tipo != nil && m.Tipo != *f.Tipo {
			continue
		}
		if (f.From != nil && m.Date.Before(*f.From)) || (f.To != nil && m.Date.After(*f.To)) {
			continue
		}
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r MeetingRepo) Create(_ context.Context, m *entity.Meeting) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *m
	r.s.Meetings[m.ID] = &cp
	return nil
}

func (r MeetingRepo) Update(_ context.Context, m *entity.Meeting) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.Meetings[m.ID]
	if !ok || cur.TenantID != m.TenantID {
		return domain.ErrNotFound
	}
	cp := *m
	cp.LojaID = cur.LojaID
	cp.CreatedAt = cur.CreatedAt
	r.s.Meetings[m.ID] = &cp
	return nil
}

func (r MeetingRepo) Delete(_ context.Context, tenantID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.Meetings[id]
	if !ok || cur.TenantID != tenantID {
		return domain.ErrNotFound
	}
	delete(r.s.Meetings, id)
	kept := r.s.Attendances[:0]
	for _, a := range r.s.Attendances {
		if a.MeetingID != id {
			kept = append(kept, a)
		}
	}
	r.s.Attendances = kept
	return nil
}

type AttendanceRepo struct{ s *Store }

func NewAttendanceRepo(s *Store) AttendanceRepo { return AttendanceRepo{s} }

func (r AttendanceRepo) CountByStatus(_ context.Context, tenantID string, lojaID *string, from, to time.Time) (map[string]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := map[string]int{}
	for _, a := range r.s.Attendances {
		m, ok := r.s.Meetings[a.MeetingID]
		if !ok || a.TenantID != tenantID {
			continue
		}
		if lojaID != nil && m.LojaID != *lojaID {
			continue
		}
		if m.Date.Before(from) || m.Date.After(to) {
			continue
		}
		out[a.Status]++
	}
	return out, nil
}

func (r AttendanceRepo) ListByMeeting(_ context.Context, tenantID, meetingID string) ([]entity.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.Attendance
	for _, a := range r.s.Attendances {
		if a.TenantID == tenantID && a.MeetingID == meetingID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r AttendanceRepo) ListByMeetings(_ context.Context, tenantID string, meetingIDs []string) ([]entity.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := make(map[string]bool, len(meetingIDs))
	for _, id := range meetingIDs {
		ids[id] = true
	}
	var out []entity.Attendance
	for _, a := range r.s.Attendances {
		if a.TenantID == tenantID && ids[a.MeetingID] {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r AttendanceRepo) Upsert(_ context.Context, a *entity.Attendance) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.Attendances {
		if x.MeetingID == a.MeetingID && x.MemberID == a.MemberID {
			x.Status = a.Status
			x.Notes = a.Notes
			x.UpdatedAt = a.UpdatedAt
			return nil
		}
	}
	cp := *a
	r.s.Attendances = append(r.s.Attendances, &cp)
	return nil
}

// ── Invite tokens ────────────────────────────────────────────────────────────

type InviteRepo struct{ s *Store }

func NewInviteRepo(s *Store) InviteRepo { return InviteRepo{s} }

func (r InviteRepo) Create(_ context.Context, t *entity.PasswordInviteToken) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *t
	r.s.Tokens = append(r.s.Tokens, &cp)
	return nil
}

func (r InviteRepo) GetByHash(_ context.Context, hash string) (*entity.PasswordInviteToken, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.Tokens {
		if t.TokenHash == hash {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r InviteRepo) MarkUsed(_ context.Context, hash string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.Tokens {
		if t.TokenHash == hash && t.UsedAt == nil {
			ts := at
			t.UsedAt = &ts
		}
	}
	return nil
}

func (r InviteRepo) InvalidateUser(_ context.Context, userID string, at time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, t := range r.s.Tokens {
		if t.UserID == userID && t.UsedAt == nil {
			ts := at
			t.UsedAt = &ts
			n++
		}
	}
	return n, nil
}

func (r InviteRepo) Consume(_ context.Context, hash string, now time.Time) (string, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.Tokens {
		if t.TokenHash == hash && t.Usable(now) {
			ts := now
			t.UsedAt = &ts
			return t.UserID, true, nil
		}
	}
	return "", false, nil
}

// ── Inventory ────────────────────────────────────────────────────────────────

type InventoryRepo struct{ s *Store }

func NewInventoryRepo(s *Store) InventoryRepo { return InventoryRepo{s} }

func (r InventoryRepo) CreateItem(_ context.Context, item *entity.InventoryItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.Items {
		if x.TenantID == item.TenantID && x.SKU != nil && item.SKU != nil && *x.SKU == *item.SKU {
			return domain.ErrDuplicate
		}
	}
	cp := *item
	r.s.Items[item.ID] = &cp
	return nil
}

func (r InventoryRepo) GetItem(_ context.Context, tenantID, id string) (*entity.InventoryItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if it, ok := r.s.Items[id]; ok && it.TenantID == tenantID {
		cp := *it
		return &cp, nil
	}
	return nil, nil
}

func (r InventoryRepo) GetItemForUpdate(ctx context.Context, tenantID, id string) (*entity.InventoryItem, error) {
	return r.GetItem(ctx, tenantID, id)
}

func (r InventoryRepo) ListItems(_ context.Context, f repository.InventoryFilter) ([]entity.InventoryItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.InventoryItem
	q := strings.ToLower(f.Query)
	for _, it := range r.s.Items {
		if it.TenantID != f.TenantID || (!f.IncludeArchived && it.ArchivedAt != nil) {
			continue
		}
		if f.LojaID != nil && (it.LojaID == nil || *it.LojaID != *f.LojaID) {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(it.Name), q) {
			continue
		}
		out = append(out, *it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r InventoryRepo) UpdateStock(_ context.Context, item *entity.InventoryItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.Items[item.ID]
	if !ok {
		return domain.ErrNotFound
	}
	it.QtyOnHand = item.QtyOnHand
	it.AvgCost = item.AvgCost
	it.LastPurchaseCost = item.LastPurchaseCost
	return nil
}

func (r InventoryRepo) Archive(_ context.Context, item *entity.InventoryItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.Items[item.ID]
	if !ok {
		return domain.ErrNotFound
	}
	it.ArchivedAt = item.ArchivedAt
	it.ArchivedBy = item.ArchivedBy
	it.ArchiveReason = item.ArchiveReason
	it.QtyOnHand = item.QtyOnHand
	return nil
}

func (r InventoryRepo) CreateMovement(_ context.Context, m *entity.InventoryMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *m
	r.s.Movements = append(r.s.Movements, &cp)
	return nil
}

func (r InventoryRepo) ListMovements(_ context.Context, tenantID, itemID string, limit int) ([]entity.InventoryMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.InventoryMovement
	for i := len(r.s.Movements) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		m := r.s.Movements[i]
		if m.TenantID == tenantID && m.ItemID == itemID {
			out = append(out, *m)
		}
	}
	return out, nil
}
