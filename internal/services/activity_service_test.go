package services

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/agrolime/limeportal/internal/database"
	"github.com/agrolime/limeportal/internal/models"
	"github.com/agrolime/limeportal/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditLogs(t *testing.T) {
	db := testutil.NewDB(t)

	RecordAudit(db, "admin1", AuditCreate, "liming_products", "p1", map[string]string{"name": "Dolomite"})
	RecordAudit(db, "admin1", AuditDelete, "liming_products", "p1", nil)
	RecordAudit(db, "admin2", AuditRole, "profiles", "u1", map[string]string{"role": "admin"})

	logs, err := ListAuditLogs(db, 0)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, AuditRole, logs[0].Action, "newest first")

	var details map[string]string
	require.NoError(t, json.Unmarshal(logs[0].Details.JSON, &details))
	assert.Equal(t, "admin", details["role"])
	assert.Empty(t, logs[1].Details.JSON)

	logs, err = ListAuditLogs(db, 2)
	require.NoError(t, err)
	assert.Len(t, logs, 2)
}

func TestRecordAuditSwallowsErrors(t *testing.T) {
	db := testutil.NewDB(t)
	require.NoError(t, db.Migrator().DropTable(&models.AuditLog{}))

	assert.NotPanics(t, func() {
		RecordAudit(db, "admin1", AuditUpdate, "leads", "l1", nil)
	})
}

func TestCalculatorUsage(t *testing.T) {
	db := testutil.NewDB(t)

	RecordCalculatorUsage(db, "convert", map[string]interface{}{"value": 10}, map[string]float64{"result": 17.9})
	RecordCalculatorUsage(db, "convert", map[string]interface{}{"value": 1}, map[string]float64{"result": 1.79})
	RecordCalculatorUsage(db, "liming", map[string]interface{}{"ph": 4.8}, nil)

	stats, err := UsageStats(db)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, UsageCount{Calculator: "convert", Count: 2}, stats[0])
	assert.Equal(t, UsageCount{Calculator: "liming", Count: 1}, stats[1])

	require.NoError(t, database.Close(db))
	assert.NotPanics(t, func() {
		RecordCalculatorUsage(db, "convert", nil, nil)
	})
}

func TestLeads(t *testing.T) {
	db := testutil.NewDB(t)

	bad := map[string]LeadInput{
		"name":    {Email: "a@example.com", Consent: true},
		"email":   {Name: "Jan", Email: "not-an-email", Consent: true},
		"consent": {Name: "Jan", Email: "jan@example.com"},
		"area":    {Name: "Jan", Email: "jan@example.com", Consent: true, AreaHa: area(-3)},
		"NaN":     {Name: "Jan", Email: "jan@example.com", Consent: true, AreaHa: area(math.NaN())},
		"inf":     {Name: "Jan", Email: "jan@example.com", Consent: true, AreaHa: area(math.Inf(1))},
	}
	for name, in := range bad {
		_, err := CreateLead(db, in)
		assert.ErrorIs(t, err, ErrValidation, name)
	}
	assert.Zero(t, testutil.Count(t, db, &models.Lead{}))

	lead, err := CreateLead(db, LeadInput{Name: "Jan Kowalski", Email: "jan@example.com", Consent: true, AreaHa: area(40)})
	require.NoError(t, err)
	assert.Equal(t, models.LeadNew, lead.Status)
	assert.Equal(t, "contact_form", lead.Source)

	_, err = UpdateLeadStatus(db, lead.ID, "won")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = UpdateLeadStatus(db, "missing", models.LeadContacted)
	assert.ErrorIs(t, err, ErrNotFound)

	updated, err := UpdateLeadStatus(db, lead.ID, models.LeadContacted)
	require.NoError(t, err)
	assert.Equal(t, models.LeadContacted, updated.Status)

	leads, err := ListLeads(db, models.LeadNew)
	require.NoError(t, err)
	assert.Empty(t, leads)
	leads, err = ListLeads(db, "")
	require.NoError(t, err)
	assert.Len(t, leads, 1)
}
