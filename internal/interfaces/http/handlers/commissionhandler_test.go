package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/servio-inc/servio/internal/application/commission/usecases"
	"github.com/servio-inc/servio/internal/domain/commission"
	"github.com/servio-inc/servio/internal/infrastructure/persistence/migrations"
	"github.com/servio-inc/servio/internal/infrastructure/repository"
	"github.com/servio-inc/servio/internal/shared/db"
	"github.com/servio-inc/servio/internal/shared/logger"
)

func setupCommissionRouter(t *testing.T) (*gin.Engine, commission.RecordRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migrations.MigrateCommissionTables(gdb))

	log := logger.NewNoop()
	recordRepo := repository.NewCommissionRecordRepository(gdb, log)
	policyRepo := repository.NewCommissionPolicyRepository(gdb, log)

	handler := NewCommissionHandler(
		usecases.NewGetPolicyUseCase(policyRepo, log),
		usecases.NewUpdatePolicyUseCase(policyRepo, log),
		usecases.NewListCommissionsUseCase(recordRepo, log),
		usecases.NewMarkCommissionsPaidUseCase(recordRepo, db.NewTransactionManager(gdb), log),
		log)

	engine := gin.New()
	engine.PATCH("/commissions/:id/status", handler.UpdateStatus)
	return engine, recordRepo
}

func seedPendingCommission(t *testing.T, repo commission.RecordRepository, cid string) {
	t.Helper()

	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	record, err := commission.NewRecord(cid, 7, 42, commission.TypeOnboarding, 990, "txn_commission", now)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), record))
}

func TestCommissionHandler_UpdateStatus(t *testing.T) {
	patchStatus := func(engine *gin.Engine, cid, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPatch, "/commissions/"+cid+"/status", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		return w
	}

	t.Run("marks a pending record paid", func(t *testing.T) {
		engine, repo := setupCommissionRouter(t)
		seedPendingCommission(t, repo, "com_single1")

		w := patchStatus(engine, "com_single1", `{"status":"paid"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var envelope struct {
			Data struct {
				Status string `json:"status"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
		assert.Equal(t, "paid", envelope.Data.Status)

		record, err := repo.GetByCID(context.Background(), "com_single1")
		require.NoError(t, err)
		assert.Equal(t, commission.StatusPaid, record.Status())
	})

	t.Run("paid record conflicts on repeat", func(t *testing.T) {
		engine, repo := setupCommissionRouter(t)
		seedPendingCommission(t, repo, "com_single2")

		require.Equal(t, http.StatusOK, patchStatus(engine, "com_single2", `{"status":"paid"}`).Code)
		assert.Equal(t, http.StatusConflict, patchStatus(engine, "com_single2", `{"status":"paid"}`).Code)
	})

	t.Run("only paid is an accepted target status", func(t *testing.T) {
		engine, repo := setupCommissionRouter(t)
		seedPendingCommission(t, repo, "com_single3")

		w := patchStatus(engine, "com_single3", `{"status":"refunded"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		record, err := repo.GetByCID(context.Background(), "com_single3")
		require.NoError(t, err)
		assert.Equal(t, commission.StatusPending, record.Status())
	})

	t.Run("unknown record is not found", func(t *testing.T) {
		engine, _ := setupCommissionRouter(t)

		w := patchStatus(engine, "com_missing", `{"status":"paid"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
