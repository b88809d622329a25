package lifecycle

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/simecdev/simec-api/internal/email"
	"github.com/simecdev/simec-api/internal/model"
	"github.com/simecdev/simec-api/internal/repository"
	"github.com/simecdev/simec-api/pkg/logger"
	"github.com/simecdev/simec-api/pkg/messaging"
	"github.com/simecdev/simec-api/pkg/metrics"
)

const defaultInternalWindowDays = 30

// Clock supplies the sweep timestamp, injectable for deterministic tests.
type Clock func() time.Time

type boundaryKind int

const (
	boundaryStart boundaryKind = iota
	boundaryEnd
)

type proximityThreshold struct {
	limit    time.Duration
	boundary boundaryKind
	priority model.AlertPriority
	label    string
}

// Ordered tightest-first per boundary; the first matching threshold wins and
// evaluation stops for that order, so a single pass never stacks proximity
// alerts and the most imminent threshold always takes precedence (an order 8
// minutes from its start fires start-10min, never start-60min).
var proximityThresholds = []proximityThreshold{
	{limit: 10 * time.Minute, boundary: boundaryStart, priority: model.AlertPriorityMedium, label: "start-10min"},
	{limit: 60 * time.Minute, boundary: boundaryStart, priority: model.AlertPriorityLow, label: "start-60min"},
	{limit: 10 * time.Minute, boundary: boundaryEnd, priority: model.AlertPriorityHigh, label: "end-10min"},
}

type Config struct {
	InternalWindowDays int
	BaseURL            string
}

// Engine advances maintenance orders through their lifecycle and derives
// deduplicated alerts and expiration notifications from store state. Every
// write is an independently committed idempotent upsert, so a sweep that
// fails midway is safe to re-run.
type Engine struct {
	orders        repository.MaintenanceOrderRepository
	alerts        repository.AlertRepository
	contracts     repository.ContractRepository
	insurance     repository.InsuranceRepository
	subscriptions repository.SubscriptionRepository
	sent          repository.SentNotificationRepository
	dispatcher    email.Service
	broker        messaging.Broker
	logger        *logger.Logger
	metrics       *metrics.Metrics
	clock         Clock
	cfg           Config
}

func NewEngine(
	orders repository.MaintenanceOrderRepository,
	alerts repository.AlertRepository,
	contracts repository.ContractRepository,
	insurance repository.InsuranceRepository,
	subscriptions repository.SubscriptionRepository,
	sent repository.SentNotificationRepository,
	dispatcher email.Service,
	broker messaging.Broker,
	log *logger.Logger,
	m *metrics.Metrics,
	clock Clock,
	cfg Config,
) *Engine {
	if clock == nil {
		clock = time.Now
	}
	if cfg.InternalWindowDays <= 0 {
		cfg.InternalWindowDays = defaultInternalWindowDays
	}
	return &Engine{
		orders:        orders,
		alerts:        alerts,
		contracts:     contracts,
		insurance:     insurance,
		subscriptions: subscriptions,
		sent:          sent,
		dispatcher:    dispatcher,
		broker:        broker,
		logger:        log,
		metrics:       m,
		clock:         clock,
		cfg:           cfg,
	}
}

// Run executes one full sweep: status transitions, then proximity alerts,
// then contract and insurance expirations. A failing stage is logged and the
// remaining stages still run; the next sweep retries everything.
func (e *Engine) Run(ctx context.Context) {
	now := e.clock().UTC()
	timer := time.Now()

	stages := []struct {
		name string
		fn   func(context.Context, time.Time) error
	}{
		{"status_sweep", e.SweepStatusTransitions},
		{"proximity_alerts", e.GenerateProximityAlerts},
		{"contract_expirations", e.ProcessContractExpirations},
		{"insurance_expirations", e.ProcessInsuranceExpirations},
	}

	for _, stage := range stages {
		if err := stage.fn(ctx, now); err != nil {
			e.metrics.SweepStageFailures.WithLabelValues(stage.name).Inc()
			e.logger.Error(err, "sweep stage failed", "stage", stage.name)
		}
	}

	e.metrics.SweepRuns.Inc()
	e.metrics.SweepDuration.Observe(time.Since(timer).Seconds())
}

// SweepStatusTransitions advances scheduled orders whose window opened and
// in-progress orders whose window closed. The confirm alert upserted here is
// the only notification generated at the end-of-service boundary.
func (e *Engine) SweepStatusTransitions(ctx context.Context, now time.Time) error {
	started, err := e.orders.StartDue(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to start due orders: %w", err)
	}
	if started > 0 {
		e.metrics.OrdersStarted.Add(float64(started))
		e.logger.Info("maintenance orders started", "count", started)
	}

	finished, err := e.orders.FinishDue(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to finish due orders: %w", err)
	}

	for _, order := range finished {
		alert := &model.Alert{
			ID:          maintenanceConfirmKey(order.ID).String(),
			Title:       "Manutenção aguardando confirmação",
			Subtitle:    fmt.Sprintf("OS %s encerrou a janela de serviço", order.OrderNumber),
			Category:    model.AlertCategoryMaintenance,
			Priority:    model.AlertPriorityHigh,
			Link:        e.orderLink(order.ID),
			TriggeredAt: now,
		}
		if err := e.alerts.Upsert(ctx, alert); err != nil {
			return fmt.Errorf("failed to upsert confirmation alert: %w", err)
		}
		e.metrics.AlertsCreated.WithLabelValues(string(model.AlertCategoryMaintenance)).Inc()
		e.publishAlert(ctx, alert)
	}

	if len(finished) > 0 {
		e.metrics.OrdersFinished.Add(float64(len(finished)))
		e.logger.Info("maintenance orders awaiting confirmation", "count", len(finished))
	}
	return nil
}

// GenerateProximityAlerts creates at most one alert per order per sweep for
// the most imminent applicable threshold. Existing (order, threshold) pairs
// are a no-op.
func (e *Engine) GenerateProximityAlerts(ctx context.Context, now time.Time) error {
	orders, err := e.orders.ListUpcoming(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to list upcoming orders: %w", err)
	}

	for _, order := range orders {
		boundary, at, ok := relevantBoundary(order)
		if !ok {
			e.logger.Debug("skipping order without usable schedule", "order_id", order.ID.String())
			continue
		}

		remaining := at.Sub(now)
		for _, th := range proximityThresholds {
			if th.boundary != boundary {
				continue
			}
			if remaining <= 0 || remaining > th.limit {
				continue
			}

			key := proximityKey(order.ID, th.label)
			exists, err := e.alerts.Exists(ctx, key.String())
			if err != nil {
				return fmt.Errorf("failed to check proximity alert: %w", err)
			}
			if !exists {
				alert := e.proximityAlert(order, th, remaining, now)
				if err := e.alerts.Upsert(ctx, alert); err != nil {
					return fmt.Errorf("failed to upsert proximity alert: %w", err)
				}
				e.metrics.AlertsCreated.WithLabelValues(string(model.AlertCategoryMaintenance)).Inc()
				e.publishAlert(ctx, alert)
			}
			// First match wins, fired or not.
			break
		}
	}
	return nil
}

func (e *Engine) proximityAlert(order *model.MaintenanceOrder, th proximityThreshold, remaining time.Duration, now time.Time) *model.Alert {
	minutes := int(remaining.Minutes())

	var title string
	if th.boundary == boundaryStart {
		title = fmt.Sprintf("Manutenção inicia em %d minuto(s)", minutes)
	} else {
		title = fmt.Sprintf("Manutenção encerra em %d minuto(s)", minutes)
	}

	return &model.Alert{
		ID:          proximityKey(order.ID, th.label).String(),
		Title:       title,
		Subtitle:    fmt.Sprintf("OS %s", order.OrderNumber),
		Category:    model.AlertCategoryMaintenance,
		Priority:    th.priority,
		Link:        e.orderLink(order.ID),
		TriggeredAt: now,
	}
}

// relevantBoundary picks the boundary the thresholds apply to: the start for
// scheduled orders, the end for in-progress ones.
func relevantBoundary(order *model.MaintenanceOrder) (boundaryKind, time.Time, bool) {
	switch order.Status {
	case model.MaintenanceStatusScheduled:
		if order.ScheduledStart.IsZero() {
			return 0, time.Time{}, false
		}
		return boundaryStart, order.ScheduledStart, true
	case model.MaintenanceStatusInProgress:
		if order.ScheduledEnd.IsZero() {
			return 0, time.Time{}, false
		}
		return boundaryEnd, order.ScheduledEnd, true
	default:
		return 0, time.Time{}, false
	}
}

// expiringEntity is the common shape of anything with an active status and
// an end date that should raise an alert and notify subscribers.
type expiringEntity struct {
	category model.AlertCategory
	id       uuid.UUID
	label    string
	endDate  time.Time
	priority model.AlertPriority
	link     string
	details  []model.DetailPair
}

func (e *Engine) ProcessContractExpirations(ctx context.Context, now time.Time) error {
	contracts, err := e.contracts.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active contracts: %w", err)
	}

	for _, c := range contracts {
		if c.EndDate.IsZero() {
			e.logger.Debug("skipping contract without end date", "contract_id", c.ID.String())
			continue
		}
		entity := expiringEntity{
			category: model.AlertCategoryContract,
			id:       c.ID,
			label:    fmt.Sprintf("Contrato %s (%s)", c.ContractNumber, c.Vendor),
			endDate:  c.EndDate,
			priority: model.AlertPriorityHigh,
			link:     fmt.Sprintf("%s/contratos/%s", e.cfg.BaseURL, c.ID),
			details: []model.DetailPair{
				{Label: "Contrato", Value: c.ContractNumber},
				{Label: "Fornecedor", Value: c.Vendor},
				{Label: "Vigência até", Value: c.EndDate.UTC().Format("02/01/2006")},
			},
		}
		if err := e.processExpiration(ctx, now, entity); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) ProcessInsuranceExpirations(ctx context.Context, now time.Time) error {
	policies, err := e.insurance.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active insurance policies: %w", err)
	}

	for _, p := range policies {
		if p.EndDate.IsZero() {
			e.logger.Debug("skipping policy without end date", "policy_id", p.ID.String())
			continue
		}
		entity := expiringEntity{
			category: model.AlertCategoryInsurance,
			id:       p.ID,
			label:    fmt.Sprintf("Seguro %s (%s)", p.PolicyNumber, p.Insurer),
			endDate:  p.EndDate,
			priority: model.AlertPriorityMedium,
			link:     fmt.Sprintf("%s/seguros/%s", e.cfg.BaseURL, p.ID),
			details: []model.DetailPair{
				{Label: "Apólice", Value: p.PolicyNumber},
				{Label: "Seguradora", Value: p.Insurer},
				{Label: "Vigência até", Value: p.EndDate.UTC().Format("02/01/2006")},
			},
		}
		if err := e.processExpiration(ctx, now, entity); err != nil {
			return err
		}
	}
	return nil
}

// processExpiration maintains the system-wide alert for the entity and then
// dispatches per-subscriber notifications. The two are separate dedup
// domains: the alert dedups on its synthetic id, each email on its
// (category, entity, subscription) sent record.
func (e *Engine) processExpiration(ctx context.Context, now time.Time, entity expiringEntity) error {
	days := daysBetween(now, entity.endDate)

	if now.Before(entity.endDate) && days <= e.cfg.InternalWindowDays {
		key := e.expirationKey(entity)
		exists, err := e.alerts.Exists(ctx, key.String())
		if err != nil {
			return fmt.Errorf("failed to check expiration alert: %w", err)
		}

		alert := &model.Alert{
			ID:          key.String(),
			Title:       fmt.Sprintf("%s vence em %d dia(s)", entity.label, days),
			Subtitle:    fmt.Sprintf("Vigência até %s", entity.endDate.UTC().Format("02/01/2006")),
			Category:    entity.category,
			Priority:    entity.priority,
			Link:        entity.link,
			TriggeredAt: now,
		}
		if err := e.alerts.Upsert(ctx, alert); err != nil {
			return fmt.Errorf("failed to upsert expiration alert: %w", err)
		}
		if !exists {
			e.metrics.AlertsCreated.WithLabelValues(string(entity.category)).Inc()
			e.publishAlert(ctx, alert)
		}
	}

	return e.dispatchExpirationNotifications(ctx, now, entity, days)
}

// dispatchExpirationNotifications emails every opted-in subscription whose
// lead-time window covers the entity, at most once per (entity,
// subscription) pair. A failed dispatch leaves no sent record, so the next
// sweep retries it.
func (e *Engine) dispatchExpirationNotifications(ctx context.Context, now time.Time, entity expiringEntity, days int) error {
	if !now.Before(entity.endDate) {
		return nil
	}

	subs, err := e.subscriptions.ListActiveForCategory(ctx, entity.category)
	if err != nil {
		return fmt.Errorf("failed to list subscriptions: %w", err)
	}

	for _, sub := range subs {
		if days > sub.LeadTimeDays {
			continue
		}

		already, err := e.sent.Exists(ctx, entity.category, entity.id, sub.ID)
		if err != nil {
			return fmt.Errorf("failed to check sent record: %w", err)
		}
		if already {
			continue
		}

		msg := &model.NotificationMessage{
			Recipient:     sub.Email,
			RecipientName: sub.Name,
			Subject:       fmt.Sprintf("SIMEC: %s vence em %d dia(s)", entity.label, days),
			Title:         "Vencimento próximo",
			Message:       fmt.Sprintf("%s vence em %d dia(s).", entity.label, days),
			Details:       entity.details,
			ActionLabel:   "Ver detalhes",
			ActionURL:     entity.link,
		}

		if err := e.dispatcher.SendNotification(ctx, msg); err != nil {
			e.metrics.NotificationsFailed.Inc()
			e.logger.Error(err, "failed to dispatch expiration notification",
				"category", string(entity.category),
				"entity_id", entity.id.String(),
				"subscription_id", sub.ID.String(),
			)
			continue
		}

		record := &model.SentNotificationRecord{
			Category:       entity.category,
			EntityID:       entity.id,
			SubscriptionID: sub.ID,
			SentAt:         now,
		}
		if err := e.sent.Create(ctx, record); err != nil {
			return fmt.Errorf("failed to record sent notification: %w", err)
		}
		e.metrics.NotificationsSent.Inc()
	}
	return nil
}

func (e *Engine) expirationKey(entity expiringEntity) AlertKey {
	if entity.category == model.AlertCategoryInsurance {
		return insuranceKey(entity.id)
	}
	return contractKey(entity.id)
}

func (e *Engine) orderLink(orderID uuid.UUID) string {
	return fmt.Sprintf("%s/manutencoes/%s", e.cfg.BaseURL, orderID)
}

// publishAlert notifies connected clients through the broker. Best effort;
// the alert row is already persisted.
func (e *Engine) publishAlert(ctx context.Context, alert *model.Alert) {
	if e.broker == nil {
		return
	}
	if err := e.broker.Publish(ctx, "alerts", alert); err != nil {
		e.logger.Error(err, "failed to publish alert event", "alert_id", alert.ID)
	}
}
