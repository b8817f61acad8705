package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/refinance-service/internal/application/usecase"
	"github.com/bibbank/refinance-service/internal/domain/service"
	"github.com/bibbank/refinance-service/internal/infrastructure/messaging"
	"github.com/bibbank/refinance-service/internal/infrastructure/persistence/memory"
	"github.com/bibbank/refinance-service/internal/presentation/rest"
	"github.com/bibbank/refinance-service/internal/presentation/rest/middleware"
	"github.com/bibbank/refinance-service/pkg/auth"
)

const applicantJSON = `{
	"income": {"employment_type": "Permanent", "fixed_salary": 8500, "fixed_allowance": 500, "rental": 1200},
	"commitments": {"car_loans": 800, "credit_card_outstanding": 5000},
	"property": {"market_value": 600000, "outstanding_balance": 380000, "current_rate_percent": 4.5, "remaining_tenure_years": 25},
	"credit": {"debt_management_program": false, "bankruptcy": false, "severe_late_payments": false},
	"request": {"goal": "cash_out", "desired_cash_out": 50000, "desired_tenure_years": 30}
}`

const contactJSON = `{"name": "Aisyah", "phone": "+60123456789", "email": "aisyah@example.com"}`

type testServer struct {
	handler  http.Handler
	adminTok string
	userTok  string
}

func newTestServer(t *testing.T, limiter *middleware.RateLimiter) testServer {
	t.Helper()

	jwtSvc, err := auth.NewJWTService(auth.JWTConfig{Secret: "test-secret", Issuer: "test", Expiration: time.Hour})
	require.NoError(t, err)
	adminTok, err := jwtSvc.GenerateToken("ops-1", "Ops", []string{auth.RoleOperator})
	require.NoError(t, err)
	userTok, err := jwtSvc.GenerateToken("svc-1", "", []string{auth.RoleService})
	require.NoError(t, err)

	repo := memory.NewApplicationRepo()
	pub := messaging.NewLogEventPublisher(nil)
	policy := service.DefaultPolicy()
	evaluator := service.NewEligibilityEvaluator(policy)
	quotes := usecase.NewQuickQuoteUseCase(service.NewQuickQuoteEstimator(policy), nil, time.Minute, nil, nil)

	h := rest.NewHandler(rest.UseCases{
		Evaluate:     usecase.NewEvaluateEligibilityUseCase(evaluator, 3.55, nil),
		QuickQuote:   quotes,
		CaptureLead:  usecase.NewCaptureLeadUseCase(quotes, repo, pub),
		Submit:       usecase.NewSubmitApplicationUseCase(repo, pub, evaluator, 3.55, nil),
		Proceed:      usecase.NewProceedToSubmissionUseCase(repo, pub),
		Get:          usecase.NewGetApplicationUseCase(repo),
		List:         usecase.NewListApplicationsUseCase(repo),
		Reevaluate:   usecase.NewReevaluateApplicationUseCase(repo, pub, evaluator, nil),
		UpdateStatus: usecase.NewUpdateApplicationStatusUseCase(repo, pub),
		SetLinkSent:  usecase.NewSetLinkSentUseCase(repo, pub),
		Trash:        usecase.NewTrashApplicationUseCase(repo, pub),
		Savings:      usecase.NewCompareSavingsUseCase(service.NewSavingsCalculator()),
	}, nil)

	health := rest.NewHealthHandler("refinance-service", map[string]rest.ReadinessCheck{
		"database": func(context.Context) error { return nil },
	}, nil)

	return testServer{
		handler: rest.NewRouter(h, rest.RouterConfig{
			JWT:     jwtSvc,
			Limiter: limiter,
			Health:  health,
			Metrics: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }),
		}),
		adminTok: adminTok,
		userTok:  userTok,
	}
}

func (s testServer) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestEvaluateEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)

	t.Run("approves a qualifying applicant", func(t *testing.T) {
		rec := srv.do(t, http.MethodPost, "/v1/eligibility", `{"applicant": `+applicantJSON+`}`, "")

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		body := decodeBody(t, rec)
		decision := body["decision"].(map[string]any)
		assert.Equal(t, true, decision["approved"])
		assert.Equal(t, "MYR", body["currency"])
		assert.Len(t, body["schedule"], 30)
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	})

	t.Run("lists field errors for invalid input", func(t *testing.T) {
		bad := strings.Replace(applicantJSON, `"Permanent"`, `"astronaut"`, 1)
		rec := srv.do(t, http.MethodPost, "/v1/eligibility", `{"applicant": `+bad+`}`, "")

		require.Equal(t, http.StatusBadRequest, rec.Code)
		var resp struct {
			Fields []struct {
				Field string `json:"field"`
			} `json:"fields"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotEmpty(t, resp.Fields)
		assert.Equal(t, "income.employment_type", resp.Fields[0].Field)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		rec := srv.do(t, http.MethodPost, "/v1/eligibility", `{"applicant":`, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		rec := srv.do(t, http.MethodPost, "/v1/eligibility", `{"applicant": `+applicantJSON+`, "extra": 1}`, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects an empty body", func(t *testing.T) {
		rec := srv.do(t, http.MethodPost, "/v1/eligibility", "", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestQuickQuoteEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := srv.do(t, http.MethodPost, "/v1/quick-quote",
		`{"goal": "SAVE_INTEREST", "outstanding_balance": 400000, "current_installment": 2300, "estimated_value": 550000}`, "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["approximate"])
	assert.NotEmpty(t, body["headline"])
}

func TestApplicationLifecycle(t *testing.T) {
	srv := newTestServer(t, nil)

	// Capture a lead, then submit the full intake against it.
	rec := srv.do(t, http.MethodPost, "/v1/leads", `{"contact": `+contactJSON+`, "quote": {"goal": "CASH_OUT", "outstanding_balance": 380000, "current_installment": 2200, "estimated_value": 600000}}`, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	lead := decodeBody(t, rec)
	assert.Equal(t, "LEAD", lead["stage"])
	id := lead["id"].(string)

	rec = srv.do(t, http.MethodPost, "/v1/applications", `{"lead_id": "`+id+`", "contact": `+contactJSON+`, "applicant": `+applicantJSON+`}`, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	app := decodeBody(t, rec)
	assert.Equal(t, id, app["id"])
	assert.Equal(t, "ELIGIBILITY", app["stage"])
	assert.Equal(t, "APPROVED", app["status"])

	rec = srv.do(t, http.MethodGet, "/v1/applications/"+id, "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodPost, "/v1/applications/"+id+"/submission", "", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "SUBMISSION", decodeBody(t, rec)["stage"])

	t.Run("admin routes require an operator token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, srv.do(t, http.MethodGet, "/v1/admin/applications?stage=SUBMISSION", "", "").Code)
		assert.Equal(t, http.StatusForbidden, srv.do(t, http.MethodGet, "/v1/admin/applications?stage=SUBMISSION", "", srv.userTok).Code)
	})

	t.Run("lists the stage", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/v1/admin/applications?stage=submission&limit=10", "", srv.adminTok)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		body := decodeBody(t, rec)
		assert.Equal(t, "SUBMISSION", body["stage"])
		assert.Len(t, body["applications"], 1)
	})

	t.Run("rejects a non-numeric limit", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/v1/admin/applications?stage=LEAD&limit=ten", "", srv.adminTok)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("re-evaluates at a new rate", func(t *testing.T) {
		rec := srv.do(t, http.MethodPost, "/v1/admin/applications/"+id+"/reevaluate", `{"rate_percent": 4.0}`, srv.adminTok)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		body := decodeBody(t, rec)
		assert.Equal(t, "4", body["application"].(map[string]any)["rate_percent"])
		assert.NotNil(t, body["income_breakdown"])
	})

	t.Run("overrides the status", func(t *testing.T) {
		rec := srv.do(t, http.MethodPut, "/v1/admin/applications/"+id+"/status", `{"status": "rejected"}`, srv.adminTok)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "REJECTED", decodeBody(t, rec)["status"])
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		rec := srv.do(t, http.MethodPut, "/v1/admin/applications/"+id+"/status", `{"status": "maybe"}`, srv.adminTok)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("marks the link sent", func(t *testing.T) {
		rec := srv.do(t, http.MethodPost, "/v1/admin/applications/"+id+"/link-sent", `{"sent": true}`, srv.adminTok)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, true, decodeBody(t, rec)["link_sent"])
	})

	t.Run("moves to trash once", func(t *testing.T) {
		rec := srv.do(t, http.MethodPost, "/v1/admin/applications/"+id+"/trash", "", srv.adminTok)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "TRASH", decodeBody(t, rec)["stage"])

		rec = srv.do(t, http.MethodPost, "/v1/admin/applications/"+id+"/trash", "", srv.adminTok)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestGetApplication_NotFound(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := srv.do(t, http.MethodGet, "/v1/applications/missing", "", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCompareSavingsEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := srv.do(t, http.MethodPost, "/v1/savings-comparison",
		`{"balance": 300000, "current_rate_percent": 4.5, "current_installment": 2000, "new_rate_percent": 3.5, "new_tenure_years": 25}`, "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["valid"])
	assert.Len(t, body["schedule"], 25)
}

func TestPublicRoutesAreRateLimited(t *testing.T) {
	srv := newTestServer(t, middleware.NewRateLimiter(0.001, 1))
	body := `{"goal": "SAVE_INTEREST", "outstanding_balance": 400000, "current_installment": 2300, "estimated_value": 550000}`

	assert.Equal(t, http.StatusOK, srv.do(t, http.MethodPost, "/v1/quick-quote", body, "").Code)
	assert.Equal(t, http.StatusTooManyRequests, srv.do(t, http.MethodPost, "/v1/quick-quote", body, "").Code)
	assert.Equal(t, http.StatusOK, srv.do(t, http.MethodGet, "/healthz", "", "").Code)
}

func TestHealth(t *testing.T) {
	t.Run("ready when every check passes", func(t *testing.T) {
		srv := newTestServer(t, nil)

		rec := srv.do(t, http.MethodGet, "/readyz", "", "")

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "ready", body["status"])
		assert.Equal(t, map[string]any{"database": "ok"}, body["checks"])
	})

	t.Run("unavailable when a check fails", func(t *testing.T) {
		health := rest.NewHealthHandler("refinance-service", map[string]rest.ReadinessCheck{
			"database": func(context.Context) error { return nil },
			"cache":    func(context.Context) error { return errors.New("connection refused") },
		}, nil)
		mux := http.NewServeMux()
		health.RegisterRoutes(mux)

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "unavailable", body["status"])
		assert.Equal(t, "connection refused", body["checks"].(map[string]any)["cache"])
	})

	t.Run("liveness names the service", func(t *testing.T) {
		srv := newTestServer(t, nil)

		rec := srv.do(t, http.MethodGet, "/healthz", "", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "refinance-service", decodeBody(t, rec)["service"])
	})
}
