package payroll_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-fuelops/internal/payroll"
	payrollerrors "go-fuelops/internal/payroll/errors"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error json.RawMessage `json:"error"`
}

func mustDecodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakePayrollSettler struct {
	settleFn      func(ctx context.Context, companyID, actorID, id string, req payroll.SettleRequest) (payroll.PaymentEventResponse, error)
	settleBatchFn func(ctx context.Context, companyID, actorID string, req payroll.SettleBatchRequest) (payroll.SettleBatchResult, error)
}

func (f *fakePayrollSettler) Calculate(ctx context.Context, companyID, actorID string, req payroll.CalculateRequest) (payroll.PayrollResponse, error) {
	return payroll.PayrollResponse{}, nil
}

func (f *fakePayrollSettler) RunBatch(ctx context.Context, companyID, actorID string, req payroll.RunBatchRequest) (payroll.BatchRunResult, error) {
	return payroll.BatchRunResult{}, nil
}

func (f *fakePayrollSettler) Settle(ctx context.Context, companyID, actorID, id string, req payroll.SettleRequest) (payroll.PaymentEventResponse, error) {
	return f.settleFn(ctx, companyID, actorID, id, req)
}

func (f *fakePayrollSettler) SettleBatch(ctx context.Context, companyID, actorID string, req payroll.SettleBatchRequest) (payroll.SettleBatchResult, error) {
	return f.settleBatchFn(ctx, companyID, actorID, req)
}

func (f *fakePayrollSettler) Cancel(ctx context.Context, companyID, id string) error { return nil }

func (f *fakePayrollSettler) GetByID(ctx context.Context, companyID, id string) (payroll.PayrollResponse, error) {
	return payroll.PayrollResponse{}, nil
}

func (f *fakePayrollSettler) GetByEmployeeAndPeriod(ctx context.Context, companyID, employeeID, payPeriod string) (payroll.PayrollResponse, error) {
	return payroll.PayrollResponse{}, nil
}

func (f *fakePayrollSettler) GetAllByPeriod(ctx context.Context, companyID, payPeriod, status string) ([]payroll.PayrollResponse, error) {
	return nil, nil
}

func (f *fakePayrollSettler) GetPaymentEvents(ctx context.Context, companyID, payrollID string) ([]payroll.PaymentEventResponse, error) {
	return nil, nil
}

func (f *fakePayrollSettler) GetYearToDate(ctx context.Context, companyID, employeeID string, year int) (payroll.YearToDateResponse, error) {
	return payroll.YearToDateResponse{}, nil
}

func (f *fakePayrollSettler) GeneratePayslip(ctx context.Context, companyID, payrollID string) (string, error) {
	return "", nil
}

func newSettleContext(t *testing.T, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest(http.MethodPost, "/payrolls/settle", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("company_id", uuid.NewString())
	c.Set("employee_id", uuid.NewString())

	return c, w
}

func TestPayrollHandler_Settle_Idempotency(t *testing.T) {
	recordID := uuid.New().String()
	settleBody := `{"payment_date":"2025-08-01","payment_method":"BANK_TRANSFER"}`

	settled := payroll.PaymentEventResponse{
		ID:            uuid.New().String(),
		PayrollID:     recordID,
		Amount:        "58261.36",
		PaymentDate:   "2025-08-01",
		PaymentMethod: "BANK_TRANSFER",
		ReferenceNo:   "PAY-000001",
	}

	t.Run("caches response and releases lock on success", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()
		svc := &fakePayrollSettler{
			settleFn: func(ctx context.Context, _, _, id string, _ payroll.SettleRequest) (payroll.PaymentEventResponse, error) {
				assert.Equal(t, recordID, id)
				return settled, nil
			},
		}
		h := payroll.NewHandlerWithRedis(svc, rdb)

		cacheKey := "idemp:/payrolls/:id/settle:user:key-1"
		lockKey := cacheKey + ":lock"

		payload, err := json.Marshal(settled)
		assert.NoError(t, err)
		redisMock.ExpectSet(cacheKey, payload, 24*time.Hour).SetVal("OK")
		redisMock.ExpectDel(lockKey).SetVal(1)

		c, w := newSettleContext(t, settleBody)
		c.Params = gin.Params{{Key: "id", Value: recordID}}
		c.Set("idempotency_cache_key", cacheKey)
		c.Set("idempotency_lock_key", lockKey)

		h.Settle(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := mustDecodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("releases lock without caching on service error", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()
		svc := &fakePayrollSettler{
			settleFn: func(ctx context.Context, _, _, _ string, _ payroll.SettleRequest) (payroll.PaymentEventResponse, error) {
				return payroll.PaymentEventResponse{}, payrollerrors.ErrAlreadySettled
			},
		}
		h := payroll.NewHandlerWithRedis(svc, rdb)

		lockKey := "idemp:/payrolls/:id/settle:user:key-2:lock"
		// Hanya Del: respons error tidak boleh masuk cache idempotency
		redisMock.ExpectDel(lockKey).SetVal(1)

		c, w := newSettleContext(t, settleBody)
		c.Params = gin.Params{{Key: "id", Value: recordID}}
		c.Set("idempotency_cache_key", "idemp:/payrolls/:id/settle:user:key-2")
		c.Set("idempotency_lock_key", lockKey)

		h.Settle(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := mustDecodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("works without idempotency key", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()
		svc := &fakePayrollSettler{
			settleFn: func(ctx context.Context, _, _, _ string, _ payroll.SettleRequest) (payroll.PaymentEventResponse, error) {
				return settled, nil
			},
		}
		h := payroll.NewHandlerWithRedis(svc, rdb)

		c, w := newSettleContext(t, settleBody)
		c.Params = gin.Params{{Key: "id", Value: recordID}}

		h.Settle(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})
}

func TestPayrollHandler_SettleBatch_Idempotency(t *testing.T) {
	result := payroll.SettleBatchResult{
		SuccessCount: 2,
		Results: []payroll.SettleItemResult{
			{PayrollID: uuid.NewString(), Status: payroll.BatchItemSuccess},
			{PayrollID: uuid.NewString(), Status: payroll.BatchItemSuccess},
		},
	}

	rdb, redisMock := redismock.NewClientMock()
	svc := &fakePayrollSettler{
		settleBatchFn: func(ctx context.Context, _, _ string, req payroll.SettleBatchRequest) (payroll.SettleBatchResult, error) {
			assert.Len(t, req.PayrollIDs, 2)
			return result, nil
		},
	}
	h := payroll.NewHandlerWithRedis(svc, rdb)

	cacheKey := "idemp:/payrolls/settle-batch:user:key-3"
	lockKey := cacheKey + ":lock"

	payload, err := json.Marshal(result)
	assert.NoError(t, err)
	redisMock.ExpectSet(cacheKey, payload, 24*time.Hour).SetVal("OK")
	redisMock.ExpectDel(lockKey).SetVal(1)

	body := `{"payroll_ids":["` + result.Results[0].PayrollID + `","` + result.Results[1].PayrollID + `"],"payment_date":"2025-08-01","payment_method":"BANK_TRANSFER"}`
	c, w := newSettleContext(t, body)
	c.Set("idempotency_cache_key", cacheKey)
	c.Set("idempotency_lock_key", lockKey)

	h.SettleBatch(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}
