package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/simecdev/simec-api/internal/model"
	"github.com/simecdev/simec-api/pkg/logger"
	"github.com/simecdev/simec-api/pkg/metrics"
)

var testNow = time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

type engineMocks struct {
	orders     *mockOrderRepo
	alerts     *mockAlertRepo
	contracts  *mockContractRepo
	insurance  *mockInsuranceRepo
	subs       *mockSubscriptionRepo
	sent       *mockSentRepo
	dispatcher *mockDispatcher
}

func newTestEngine() (*Engine, *engineMocks) {
	m := &engineMocks{
		orders:     new(mockOrderRepo),
		alerts:     new(mockAlertRepo),
		contracts:  new(mockContractRepo),
		insurance:  new(mockInsuranceRepo),
		subs:       new(mockSubscriptionRepo),
		sent:       new(mockSentRepo),
		dispatcher: new(mockDispatcher),
	}
	log := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
	engine := NewEngine(
		m.orders, m.alerts, m.contracts, m.insurance, m.subs, m.sent,
		m.dispatcher, nil, log, metrics.New("test"),
		func() time.Time { return testNow },
		Config{InternalWindowDays: 30, BaseURL: "http://simec.local"},
	)
	return engine, m
}

func scheduledOrder(start time.Time) *model.MaintenanceOrder {
	return &model.MaintenanceOrder{
		Base:           model.Base{ID: uuid.New()},
		OrderNumber:    "OS-2026-0042",
		EquipmentID:    uuid.New(),
		Status:         model.MaintenanceStatusScheduled,
		ScheduledStart: start,
		ScheduledEnd:   start.Add(2 * time.Hour),
	}
}

func inProgressOrder(end time.Time) *model.MaintenanceOrder {
	return &model.MaintenanceOrder{
		Base:           model.Base{ID: uuid.New()},
		OrderNumber:    "OS-2026-0043",
		EquipmentID:    uuid.New(),
		Status:         model.MaintenanceStatusInProgress,
		ScheduledStart: end.Add(-2 * time.Hour),
		ScheduledEnd:   end,
	}
}

func TestSweepStatusTransitions(t *testing.T) {
	ctx := context.Background()

	t.Run("finished order gets exactly one confirmation alert", func(t *testing.T) {
		engine, m := newTestEngine()
		finished := inProgressOrder(testNow.Add(-time.Minute))

		m.orders.On("StartDue", ctx, testNow).Return(int64(1), nil).Once()
		m.orders.On("FinishDue", ctx, testNow).Return([]*model.MaintenanceOrder{finished}, nil).Once()
		m.alerts.On("Upsert", ctx, mock.MatchedBy(func(a *model.Alert) bool {
			return a.ID == fmt.Sprintf("maint-confirm-%s", finished.ID) &&
				a.Category == model.AlertCategoryMaintenance &&
				a.Priority == model.AlertPriorityHigh
		})).Return(nil).Once()

		err := engine.SweepStatusTransitions(ctx, testNow)

		assert.NoError(t, err)
		m.orders.AssertExpectations(t)
		m.alerts.AssertExpectations(t)
	})

	t.Run("no transitions means no alerts", func(t *testing.T) {
		engine, m := newTestEngine()

		m.orders.On("StartDue", ctx, testNow).Return(int64(0), nil).Once()
		m.orders.On("FinishDue", ctx, testNow).Return([]*model.MaintenanceOrder{}, nil).Once()

		err := engine.SweepStatusTransitions(ctx, testNow)

		assert.NoError(t, err)
		m.alerts.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("later sweeps do not regenerate the confirmation alert", func(t *testing.T) {
		engine, m := newTestEngine()
		finished := inProgressOrder(testNow.Add(-time.Minute))

		m.orders.On("StartDue", ctx, mock.Anything).Return(int64(0), nil)
		m.orders.On("FinishDue", ctx, mock.Anything).Return([]*model.MaintenanceOrder{finished}, nil).Once()
		m.orders.On("FinishDue", ctx, mock.Anything).Return([]*model.MaintenanceOrder{}, nil)
		m.alerts.On("Upsert", ctx, mock.Anything).Return(nil)

		assert.NoError(t, engine.SweepStatusTransitions(ctx, testNow))
		assert.NoError(t, engine.SweepStatusTransitions(ctx, testNow.Add(time.Minute)))

		m.alerts.AssertNumberOfCalls(t, "Upsert", 1)
	})

	t.Run("store failure propagates", func(t *testing.T) {
		engine, m := newTestEngine()

		m.orders.On("StartDue", ctx, testNow).Return(int64(0), errors.New("db down")).Once()

		err := engine.SweepStatusTransitions(ctx, testNow)

		assert.Error(t, err)
		m.orders.AssertNotCalled(t, "FinishDue", mock.Anything, mock.Anything)
	})
}

func TestGenerateProximityAlerts_FirstMatchWins(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name          string
		minutesToGo   int
		expectedLabel string
	}{
		{"8 minutes out fires the 10-minute threshold only", 8, "start-10min"},
		{"45 minutes out fires the 60-minute threshold", 45, "start-60min"},
		{"65 minutes out fires nothing", 65, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			engine, m := newTestEngine()
			order := scheduledOrder(testNow.Add(time.Duration(tc.minutesToGo) * time.Minute))

			m.orders.On("ListUpcoming", ctx, testNow).Return([]*model.MaintenanceOrder{order}, nil).Once()

			if tc.expectedLabel != "" {
				wantID := fmt.Sprintf("maint-prox-%s-%s", order.ID, tc.expectedLabel)
				m.alerts.On("Exists", ctx, wantID).Return(false, nil).Once()
				m.alerts.On("Upsert", ctx, mock.MatchedBy(func(a *model.Alert) bool {
					return a.ID == wantID
				})).Return(nil).Once()
			}

			err := engine.GenerateProximityAlerts(ctx, testNow)

			assert.NoError(t, err)
			m.alerts.AssertExpectations(t)
			if tc.expectedLabel == "" {
				m.alerts.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
				m.alerts.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestGenerateProximityAlerts_EndBoundary(t *testing.T) {
	ctx := context.Background()
	engine, m := newTestEngine()
	order := inProgressOrder(testNow.Add(8 * time.Minute))

	wantID := fmt.Sprintf("maint-prox-%s-end-10min", order.ID)
	m.orders.On("ListUpcoming", ctx, testNow).Return([]*model.MaintenanceOrder{order}, nil).Once()
	m.alerts.On("Exists", ctx, wantID).Return(false, nil).Once()
	m.alerts.On("Upsert", ctx, mock.MatchedBy(func(a *model.Alert) bool {
		return a.ID == wantID && a.Priority == model.AlertPriorityHigh
	})).Return(nil).Once()

	assert.NoError(t, engine.GenerateProximityAlerts(ctx, testNow))
	m.alerts.AssertExpectations(t)
}

func TestGenerateProximityAlerts_Idempotent(t *testing.T) {
	ctx := context.Background()
	engine, m := newTestEngine()
	order := scheduledOrder(testNow.Add(8 * time.Minute))
	wantID := fmt.Sprintf("maint-prox-%s-start-10min", order.ID)

	m.orders.On("ListUpcoming", ctx, testNow).Return([]*model.MaintenanceOrder{order}, nil)
	m.alerts.On("Exists", ctx, wantID).Return(false, nil).Once()
	m.alerts.On("Exists", ctx, wantID).Return(true, nil)
	m.alerts.On("Upsert", ctx, mock.Anything).Return(nil)

	assert.NoError(t, engine.GenerateProximityAlerts(ctx, testNow))
	assert.NoError(t, engine.GenerateProximityAlerts(ctx, testNow))

	m.alerts.AssertNumberOfCalls(t, "Upsert", 1)
}

func TestGenerateProximityAlerts_SkipsUnusableSchedule(t *testing.T) {
	ctx := context.Background()
	engine, m := newTestEngine()
	broken := &model.MaintenanceOrder{
		Base:        model.Base{ID: uuid.New()},
		OrderNumber: "OS-2026-0099",
		Status:      model.MaintenanceStatusInProgress,
	}
	valid := scheduledOrder(testNow.Add(8 * time.Minute))

	m.orders.On("ListUpcoming", ctx, testNow).Return([]*model.MaintenanceOrder{broken, valid}, nil).Once()
	m.alerts.On("Exists", ctx, mock.Anything).Return(false, nil).Once()
	m.alerts.On("Upsert", ctx, mock.MatchedBy(func(a *model.Alert) bool {
		return a.ID == fmt.Sprintf("maint-prox-%s-start-10min", valid.ID)
	})).Return(nil).Once()

	assert.NoError(t, engine.GenerateProximityAlerts(ctx, testNow))
	m.alerts.AssertExpectations(t)
}

func activeContract(end time.Time) *model.ServiceContract {
	return &model.ServiceContract{
		Base:           model.Base{ID: uuid.New()},
		ContractNumber: "CT-2026-007",
		Vendor:         "MedTech Ltda",
		Status:         model.ContractStatusActive,
		StartDate:      end.AddDate(-1, 0, 0),
		EndDate:        end,
	}
}

func subscription(lead int) *model.NotificationSubscription {
	return &model.NotificationSubscription{
		Base:            model.Base{ID: uuid.New()},
		Name:            "Engenharia Clínica",
		Email:           fmt.Sprintf("lead%d@hospital.example", lead),
		Active:          true,
		LeadTimeDays:    lead,
		NotifyContracts: true,
	}
}

func TestProcessContractExpirations_AlertWithinWindow(t *testing.T) {
	ctx := context.Background()
	engine, m := newTestEngine()
	contract := activeContract(testNow.AddDate(0, 0, 25))
	wantID := fmt.Sprintf("contract-%s", contract.ID)

	m.contracts.On("ListActive", ctx).Return([]*model.ServiceContract{contract}, nil).Once()
	m.alerts.On("Exists", ctx, wantID).Return(false, nil).Once()
	m.alerts.On("Upsert", ctx, mock.MatchedBy(func(a *model.Alert) bool {
		return a.ID == wantID &&
			a.Category == model.AlertCategoryContract &&
			a.Priority == model.AlertPriorityHigh &&
			a.Title == "Contrato CT-2026-007 (MedTech Ltda) vence em 25 dia(s)"
	})).Return(nil).Once()
	m.subs.On("ListActiveForCategory", ctx, model.AlertCategoryContract).Return([]*model.NotificationSubscription{}, nil).Once()

	assert.NoError(t, engine.ProcessContractExpirations(ctx, testNow))
	m.alerts.AssertExpectations(t)
}

func TestProcessContractExpirations_OutsideWindowNoAlert(t *testing.T) {
	ctx := context.Background()
	engine, m := newTestEngine()
	contract := activeContract(testNow.AddDate(0, 0, 45))

	m.contracts.On("ListActive", ctx).Return([]*model.ServiceContract{contract}, nil).Once()
	// Subscriber windows are independent of the 30-day system alert window.
	sub := subscription(60)
	m.subs.On("ListActiveForCategory", ctx, model.AlertCategoryContract).Return([]*model.NotificationSubscription{sub}, nil).Once()
	m.sent.On("Exists", ctx, model.AlertCategoryContract, contract.ID, sub.ID).Return(false, nil).Once()
	m.dispatcher.On("SendNotification", ctx, mock.Anything).Return(nil).Once()
	m.sent.On("Create", ctx, mock.Anything).Return(nil).Once()

	assert.NoError(t, engine.ProcessContractExpirations(ctx, testNow))

	m.alerts.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	m.dispatcher.AssertExpectations(t)
	m.sent.AssertExpectations(t)
}

func TestDispatchExpirationNotifications_LeadTimeGating(t *testing.T) {
	ctx := context.Background()
	engine, m := newTestEngine()
	contract := activeContract(testNow.AddDate(0, 0, 20))

	shortLead := subscription(10)
	longLead := subscription(40)

	m.contracts.On("ListActive", ctx).Return([]*model.ServiceContract{contract}, nil).Once()
	m.alerts.On("Exists", ctx, mock.Anything).Return(false, nil)
	m.alerts.On("Upsert", ctx, mock.Anything).Return(nil)
	m.subs.On("ListActiveForCategory", ctx, model.AlertCategoryContract).
		Return([]*model.NotificationSubscription{shortLead, longLead}, nil).Once()
	m.sent.On("Exists", ctx, model.AlertCategoryContract, contract.ID, longLead.ID).Return(false, nil).Once()
	m.dispatcher.On("SendNotification", ctx, mock.MatchedBy(func(msg *model.NotificationMessage) bool {
		return msg.Recipient == longLead.Email
	})).Return(nil).Once()
	m.sent.On("Create", ctx, mock.MatchedBy(func(r *model.SentNotificationRecord) bool {
		return r.SubscriptionID == longLead.ID && r.EntityID == contract.ID
	})).Return(nil).Once()

	assert.NoError(t, engine.ProcessContractExpirations(ctx, testNow))

	// 20 days out exceeds the 10-day lead, so the short lead never fires.
	m.sent.AssertNotCalled(t, "Exists", ctx, model.AlertCategoryContract, contract.ID, shortLead.ID)
	m.dispatcher.AssertNumberOfCalls(t, "SendNotification", 1)
}

func TestDispatchExpirationNotifications_NoResend(t *testing.T) {
	ctx := context.Background()
	engine, m := newTestEngine()
	contract := activeContract(testNow.AddDate(0, 0, 5))
	sub := subscription(10)

	m.contracts.On("ListActive", ctx).Return([]*model.ServiceContract{contract}, nil)
	m.alerts.On("Exists", ctx, mock.Anything).Return(false, nil)
	m.alerts.On("Upsert", ctx, mock.Anything).Return(nil)
	m.subs.On("ListActiveForCategory", ctx, model.AlertCategoryContract).
		Return([]*model.NotificationSubscription{sub}, nil)
	m.sent.On("Exists", ctx, model.AlertCategoryContract, contract.ID, sub.ID).Return(false, nil).Once()
	m.sent.On("Exists", ctx, model.AlertCategoryContract, contract.ID, sub.ID).Return(true, nil)
	m.dispatcher.On("SendNotification", ctx, mock.Anything).Return(nil)
	m.sent.On("Create", ctx, mock.Anything).Return(nil)

	assert.NoError(t, engine.ProcessContractExpirations(ctx, testNow))
	assert.NoError(t, engine.ProcessContractExpirations(ctx, testNow))

	m.dispatcher.AssertNumberOfCalls(t, "SendNotification", 1)
	m.sent.AssertNumberOfCalls(t, "Create", 1)
}

func TestDispatchExpirationNotifications_FailureLeavesNoRecord(t *testing.T) {
	ctx := context.Background()
	engine, m := newTestEngine()
	contract := activeContract(testNow.AddDate(0, 0, 5))
	sub := subscription(10)

	m.contracts.On("ListActive", ctx).Return([]*model.ServiceContract{contract}, nil).Once()
	m.alerts.On("Exists", ctx, mock.Anything).Return(false, nil)
	m.alerts.On("Upsert", ctx, mock.Anything).Return(nil)
	m.subs.On("ListActiveForCategory", ctx, model.AlertCategoryContract).
		Return([]*model.NotificationSubscription{sub}, nil).Once()
	m.sent.On("Exists", ctx, model.AlertCategoryContract, contract.ID, sub.ID).Return(false, nil).Once()
	m.dispatcher.On("SendNotification", ctx, mock.Anything).Return(errors.New("smtp timeout")).Once()

	assert.NoError(t, engine.ProcessContractExpirations(ctx, testNow))

	m.sent.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProcessInsuranceExpirations(t *testing.T) {
	ctx := context.Background()
	engine, m := newTestEngine()
	policy := &model.InsurancePolicy{
		Base:         model.Base{ID: uuid.New()},
		PolicyNumber: "AP-9912",
		Insurer:      "Seguradora Brasil",
		Status:       model.InsuranceStatusActive,
		EndDate:      testNow.AddDate(0, 0, 12),
	}
	wantID := fmt.Sprintf("insurance-%s", policy.ID)

	m.insurance.On("ListActive", ctx).Return([]*model.InsurancePolicy{policy}, nil).Once()
	m.alerts.On("Exists", ctx, wantID).Return(false, nil).Once()
	m.alerts.On("Upsert", ctx, mock.MatchedBy(func(a *model.Alert) bool {
		return a.ID == wantID &&
			a.Category == model.AlertCategoryInsurance &&
			a.Priority == model.AlertPriorityMedium
	})).Return(nil).Once()
	m.subs.On("ListActiveForCategory", ctx, model.AlertCategoryInsurance).
		Return([]*model.NotificationSubscription{}, nil).Once()

	assert.NoError(t, engine.ProcessInsuranceExpirations(ctx, testNow))
	m.alerts.AssertExpectations(t)
}

func TestRun_StageFailureDoesNotStopLaterStages(t *testing.T) {
	engine, m := newTestEngine()

	m.orders.On("StartDue", mock.Anything, mock.Anything).Return(int64(0), errors.New("db down")).Once()
	m.orders.On("ListUpcoming", mock.Anything, mock.Anything).Return([]*model.MaintenanceOrder{}, nil).Once()
	m.contracts.On("ListActive", mock.Anything).Return([]*model.ServiceContract{}, nil).Once()
	m.insurance.On("ListActive", mock.Anything).Return([]*model.InsurancePolicy{}, nil).Once()

	engine.Run(context.Background())

	m.orders.AssertExpectations(t)
	m.contracts.AssertExpectations(t)
	m.insurance.AssertExpectations(t)
}
