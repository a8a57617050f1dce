package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/esferaordo/ordo-api/internal/application/attendance"
	"github.com/esferaordo/ordo-api/internal/application/auth"
	"github.com/esferaordo/ordo-api/internal/application/billing"
	"github.com/esferaordo/ordo-api/internal/application/inventory"
	"github.com/esferaordo/ordo-api/internal/application/invite"
	"github.com/esferaordo/ordo-api/internal/application/loja"
	"github.com/esferaordo/ordo-api/internal/application/member"
	"github.com/esferaordo/ordo-api/internal/application/user"
	"github.com/esferaordo/ordo-api/internal/domain/entity"
	"github.com/esferaordo/ordo-api/internal/domain/role"
	"github.com/esferaordo/ordo-api/internal/infrastructure/pdf"
	apphttp "github.com/esferaordo/ordo-api/internal/interfaces/http"
	"github.com/esferaordo/ordo-api/internal/testutil/memstore"
	"github.com/esferaordo/ordo-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture compartida
// ──────────────────────────────────────────────────────────────────────────────

const (
	testSecret   = "test-secret-key-for-unit-tests"
	testIssuer   = "ordo-test"
	testCookie   = "auth-token"
	testPassword = "segredo123"

	tenantID = "10000000-0000-0000-0000-000000000001"
	lojaA    = "20000000-0000-0000-0000-00000000000a"
	lojaB    = "20000000-0000-0000-0000-00000000000b"

	userSaas     = "30000000-0000-0000-0000-000000000001"
	userLodge    = "30000000-0000-0000-0000-000000000002"
	userMember   = "30000000-0000-0000-0000-000000000003"
	userTreasury = "30000000-0000-0000-0000-000000000004"
	userInvited  = "30000000-0000-0000-0000-000000000005"
	userSys      = "30000000-0000-0000-0000-000000000006"

	memberBruno   = "40000000-0000-0000-0000-000000000001"
	memberAlberto = "40000000-0000-0000-0000-000000000002"
	memberCarlos  = "40000000-0000-0000-0000-000000000003"

	meetingPast   = "50000000-0000-0000-0000-000000000001"
	meetingFuture = "50000000-0000-0000-0000-000000000002"
)

var (
	hashOnce sync.Once
	pwHash   string
)

func passwordHash(t *testing.T) string {
	t.Helper()
	hashOnce.Do(func() {
		h, err := auth.HashPassword(testPassword)
		require.NoError(t, err)
		pwHash = h
	})
	return pwHash
}

type testEnv struct {
	app      *fiber.App
	store    *memstore.Store
	sessions *auth.SessionManager
}

func strPtr(s string) *string { return &s }

func newTestEnv(t *testing.T, customize ...func(*apphttp.RouterDeps)) *testEnv {
	t.Helper()
	s := memstore.New()
	hash := passwordHash(t)
	now := time.Now()

	s.Tenants[tenantID] = &entity.Tenant{ID: tenantID, Name: "Grande Oriente Paulista", Timezone: "America/Sao_Paulo"}
	s.Lojas[lojaA] = &entity.Loja{ID: lojaA, TenantID: tenantID, Name: "Loja Acácia", Situacao: entity.LojaSituacaoAtiva}
	s.Lojas[lojaB] = &entity.Loja{ID: lojaB, TenantID: tenantID, Name: "Loja Cedro", Situacao: entity.LojaSituacaoAtiva}

	addUser := func(id, email string, r role.Role, status string, loja *string) {
		u := &entity.User{ID: id, TenantID: tenantID, Email: email, Name: strings.Split(email, "@")[0], Role: r, Status: status, LojaID: loja, CreatedAt: now}
		if status == entity.UserStatusActive {
			u.PasswordHash = hash
		}
		s.Users[id] = u
	}
	addUser(userSaas, "root@ordo.org", role.SaasAdmin, entity.UserStatusActive, nil)
	addUser(userLodge, "veneravel@acacia.org", role.LodgeAdmin, entity.UserStatusActive, strPtr(lojaA))
	addUser(userMember, "bruno@acacia.org", role.Member, entity.UserStatusActive, strPtr(lojaA))
	addUser(userTreasury, "tesouro@acacia.org", role.Treasurer, entity.UserStatusActive, strPtr(lojaA))
	addUser(userInvited, "novo@acacia.org", role.Member, entity.UserStatusInvited, strPtr(lojaA))
	addUser(userSys, "sys@ordo.org", role.SysAdmin, entity.UserStatusActive, nil)

	s.Members[memberBruno] = &entity.Member{ID: memberBruno, TenantID: tenantID, LojaID: lojaA, NomeCompleto: "Bruno Lima", Email: "bruno@acacia.org", Situacao: entity.MemberSituacaoAtivo}
	s.Members[memberAlberto] = &entity.Member{ID: memberAlberto, TenantID: tenantID, LojaID: lojaA, NomeCompleto: "Alberto Souza", Email: "alberto@acacia.org", Situacao: entity.MemberSituacaoAtivo}
	s.Members[memberCarlos] = &entity.Member{ID: memberCarlos, TenantID: tenantID, LojaID: lojaB, NomeCompleto: "Carlos Reis", Email: "carlos@cedro.org", Situacao: entity.MemberSituacaoAtivo}

	s.Meetings[meetingPast] = &entity.Meeting{ID: meetingPast, TenantID: tenantID, LojaID: lojaA, Title: "Sessão ordinária", Date: now.AddDate(0, 0, -2)}
	s.Meetings[meetingFuture] = &entity.Meeting{ID: meetingFuture, TenantID: tenantID, LojaID: lojaA, Title: "Sessão magna", Date: now.AddDate(0, 0, 3)}

	log := logger.Nop()
	users := memstore.NewUserRepo(s)
	lojas := memstore.NewLojaRepo(s)
	tenants := memstore.NewTenantRepo(s)
	members := memstore.NewMemberRepo(s)
	meetings := memstore.NewMeetingRepo(s)
	attendances := memstore.NewAttendanceRepo(s)
	loc := time.FixedZone("UTC-3", -3*60*60)
	tx := memstore.TxRunner{S: s}

	sessions := auth.NewSessionManager(auth.SessionConfig{Secret: testSecret, Issuer: testIssuer, TTL: 7 * 24 * time.Hour}, users, log)
	tokens := invite.NewTokenStore(memstore.NewInviteRepo(s), 48*time.Hour)

	deps := apphttp.RouterDeps{
		AuthUC:       auth.NewAuthUseCase(sessions, users, tenants, lojas),
		InviteUC:     invite.NewInviteUseCase(users, tokens, tx, mailerFunc(func(invite.InviteMessage) {}), invite.Config{BaseURL: "https://app.ordo.org", ExposeLink: true}, log),
		BillingUC:    billing.NewBillingUseCase(members, lojas, memstore.NewPaymentRepo(s), memstore.NewChargeRepo(s), tx, log),
		AttendanceUC: attendance.NewAttendanceUseCase(tenants, meetings, members, attendances, tx, loc, log),
		MeetingUC:    attendance.NewMeetingUseCase(tenants, lojas, meetings, members, attendances, loc, log),
		MemberUC:     member.NewMemberUseCase(members, lojas, log),
		UserUC:       user.NewUserUseCase(users, lojas, tx, log),
		LojaUC:       loja.NewLojaUseCase(lojas, log),
		InventoryUC:  inventory.NewInventoryUseCase(memstore.NewInventoryRepo(s), lojas, tx, pdf.NewMarotoPDFGenerator(), log),
		Cookie:       apphttp.CookieConfig{Name: testCookie, MaxAge: 7 * 24 * time.Hour},
		LoginLimit:   apphttp.RateLimitConfig{RequestsPerWindow: 1000, Window: time.Minute, Burst: 1000},
		Log:          log,
	}
	for _, fn := range customize {
		fn(&deps)
	}

	app := apphttp.NewApp(apphttp.AppConfig{Name: "ordo-test", ExposeErrors: true}, log)
	apphttp.Router(app, deps)
	return &testEnv{app: app, store: s, sessions: sessions}
}

// mailerFunc adapta una función a invite.Mailer.
type mailerFunc func(invite.InviteMessage)

func (f mailerFunc) SendInvite(_ context.Context, msg invite.InviteMessage) error {
	f(msg)
	return nil
}

// tokenFor firma una sesión válida para el usuario del store.
func (e *testEnv) tokenFor(t *testing.T, userID string) string {
	t.Helper()
	u := e.store.Users[userID]
	require.NotNil(t, u)
	tok, err := e.sessions.CreateToken(auth.Payload{UserID: u.ID, Email: u.Email, TenantID: u.TenantID})
	require.NoError(t, err)
	return tok
}

// do lanza la petición; token != "" viaja en la cookie de sesión.
func (e *testEnv) do(t *testing.T, method, path string, body interface{}, token string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: testCookie, Value: token})
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == testCookie {
			return c
		}
	}
	return nil
}
