package core

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/23f3000115/agency-os/module/core/domain"
	"github.com/23f3000115/agency-os/module/core/internal/auth"
	"github.com/23f3000115/agency-os/module/core/internal/handler/consumer"
	handler "github.com/23f3000115/agency-os/module/core/internal/handler/http"
	"github.com/23f3000115/agency-os/module/core/internal/handler/subscriber"
	"github.com/23f3000115/agency-os/module/core/internal/repository/database/postgres"
	"github.com/23f3000115/agency-os/module/core/internal/repository/publisher/rabbitmq"
	"github.com/23f3000115/agency-os/module/core/service"
)

type Options struct {
	Office          domain.Office
	DistanceMethod  service.DistanceMethod
	DisplayTimezone *time.Location
	JWTSecret       []byte
	Logger          *slog.Logger
}

type Module struct {
	AttendanceSvc *service.AttendanceService
	GeofenceSvc   *service.GeofenceService
	PayrollSvc    *service.PayrollService

	profiles   *postgres.ProfileRepo
	jwtSecret  []byte
	logger     *slog.Logger
	attendance *handler.AttendanceHandler
	payroll    *handler.PayrollHandler
	tasks      *handler.TaskHandler
	clients    *handler.ClientHandler
	messages   *handler.MessageHandler
	staff      *handler.StaffHandler
	subscriber *subscriber.ClockSubscriber
}

func Build(db *sql.DB, amqpConn *amqp.Connection, mqttClient mqtt.Client, opts Options) (*Module, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	attendanceRepo := postgres.NewAttendanceRepo(db)
	profileRepo := postgres.NewProfileRepo(db)
	taskRepo := postgres.NewTaskRepo(db)
	clientRepo := postgres.NewClientRepo(db)
	messageRepo := postgres.NewMessageRepo(db)

	eventPub, err := rabbitmq.NewEventPublisher(amqpConn)
	if err != nil {
		return nil, fmt.Errorf("event publisher: %w", err)
	}

	geofenceSvc := service.NewGeofenceService(opts.Office, opts.DistanceMethod)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, geofenceSvc, eventPub, logger)
	payrollSvc := service.NewPayrollService(attendanceRepo, profileRepo, logger)
	taskSvc := service.NewTaskService(taskRepo)
	clientSvc := service.NewClientService(clientRepo)
	messageSvc := service.NewMessageService(messageRepo, clientRepo, eventPub, logger)
	staffSvc := service.NewStaffService(profileRepo)

	return &Module{
		AttendanceSvc: attendanceSvc,
		GeofenceSvc:   geofenceSvc,
		PayrollSvc:    payrollSvc,
		profiles:      profileRepo,
		jwtSecret:     opts.JWTSecret,
		logger:        logger,
		attendance:    handler.NewAttendanceHandler(attendanceSvc, geofenceSvc, opts.DisplayTimezone),
		payroll:       handler.NewPayrollHandler(payrollSvc, opts.DisplayTimezone),
		tasks:         handler.NewTaskHandler(taskSvc),
		clients:       handler.NewClientHandler(clientSvc),
		messages:      handler.NewMessageHandler(messageSvc),
		staff:         handler.NewStaffHandler(staffSvc),
		subscriber:    subscriber.NewClockSubscriber(mqttClient, attendanceSvc, auth.NewVerifier(opts.JWTSecret), profileRepo, logger),
	}, nil
}

// RegisterRoutes mounts the API under /api/v1. Every route needs a valid token;
// owner routes additionally need the owner role.
func (m *Module) RegisterRoutes(r *gin.RouterGroup) {
	api := r.Group("/api/v1",
		handler.RequestLogger(m.logger),
		handler.Authenticate(m.jwtSecret, m.profiles, m.logger),
	)
	owner := api.Group("", handler.RequireRole(domain.RoleOwner))

	m.attendance.Register(api, owner)
	m.payroll.Register(owner)
	m.tasks.Register(api, owner)
	m.clients.Register(api, owner)
	m.messages.Register(api)
	m.staff.Register(api, owner)
}

func (m *Module) StartSubscribers() error {
	return m.subscriber.Start()
}

// Relay moves queued client messages from RabbitMQ to the MQTT outbox.
type Relay struct {
	ch    *amqp.Channel
	relay *consumer.MessageRelay
}

func BuildRelay(db *sql.DB, amqpConn *amqp.Connection, mqttClient mqtt.Client, logger *slog.Logger) (*Relay, error) {
	ch, err := amqpConn.Channel()
	if err != nil {
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}
	if err := rabbitmq.Declare(ch); err != nil {
		_ = ch.Close()
		return nil, err
	}

	deliverer := consumer.NewMQTTDeliverer(mqttClient, 5*time.Second)
	return &Relay{
		ch:    ch,
		relay: consumer.NewMessageRelay(ch, postgres.NewMessageRepo(db), deliverer, logger),
	}, nil
}

func (r *Relay) Run(ctx context.Context) error {
	return r.relay.Run(ctx)
}

func (r *Relay) Close() error {
	return r.ch.Close()
}
