package service_test

import (
	"testing"

	"warehouse/internal/model"
	"warehouse/internal/repository"
	"warehouse/internal/service"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditRecordKeepsEntryWhenDetailsCannotBeEncoded(t *testing.T) {
	f := newFixture(t)
	log, hook := logtest.NewNullLogger()
	audit := service.NewAuditService(repository.NewAuditRepository(f.db), log)

	audit.Record(f.ctx, service.AuditEntry{
		ActorID:    f.qcManager.UserID,
		Action:     model.ActionInventoryPost,
		EntityType: model.EntityInventory,
		EntityID:   "rec-1",
		Details:    map[string]interface{}{"stream": make(chan int)},
	})

	logs, total, err := audit.GetAuditLogs(f.ctx, repository.AuditFilter{EntityID: "rec-1", Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	assert.Equal(t, "{}", logs[0].Details)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "failed to encode audit details", entry.Message)
	assert.Equal(t, "rec-1", entry.Data["entity_id"])
}
