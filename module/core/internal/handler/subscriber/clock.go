package subscriber

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/23f3000115/agency-os/module/core/domain"
	"github.com/23f3000115/agency-os/module/core/internal/auth"
)

const TopicPattern = "agency/employee/+/clock"

const (
	ActionIn  = "in"
	ActionOut = "out"
)

type tokenVerifier interface {
	Subject(token string) (uuid.UUID, error)
}

type clockService interface {
	ClockIn(ctx context.Context, employeeID uuid.UUID, reported *domain.Coordinate) (*domain.AttendanceInterval, domain.GeofenceResult, error)
	ClockOut(ctx context.Context, employeeID uuid.UUID, comments string) (*domain.AttendanceInterval, error)
}

// ClockMessage is the punch a kiosk publishes. Token is the employee's access
// token from the identity provider.
type ClockMessage struct {
	EmployeeID string   `json:"employee_id"`
	Token      string   `json:"token"`
	Action     string   `json:"action"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
	Comments   string   `json:"comments,omitempty"`
	Timestamp  int64    `json:"timestamp"`
}

var errMissingToken = errors.New("missing token")

type ClockSubscriber struct {
	client   mqtt.Client
	clockSvc clockService
	verifier tokenVerifier
	profiles auth.ProfileLookup
	logger   *slog.Logger
}

func NewClockSubscriber(client mqtt.Client, clockSvc clockService, verifier tokenVerifier, profiles auth.ProfileLookup, logger *slog.Logger) *ClockSubscriber {
	if logger == nil {
		logger = slog.Default()
	}
	return &ClockSubscriber{
		client:   client,
		clockSvc: clockSvc,
		verifier: verifier,
		profiles: profiles,
		logger:   logger.With("subscriber", "clock"),
	}
}

func (s *ClockSubscriber) Start() error {
	token := s.client.Subscribe(TopicPattern, 1, s.handleMessage)
	token.Wait()
	return token.Error()
}

func (s *ClockSubscriber) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	var raw ClockMessage
	if err := json.Unmarshal(msg.Payload(), &raw); err != nil {
		s.logger.Warn("invalid clock message", "topic", msg.Topic(), "error", err)
		return
	}

	employeeID, err := validateClockMessage(msg.Topic(), &raw)
	if err != nil {
		s.logger.Warn("validation error", "topic", msg.Topic(), "error", err)
		return
	}

	ctx := context.Background()
	if err := s.authorize(ctx, employeeID, raw.Token); err != nil {
		s.logger.Warn("unauthorized clock message", "topic", msg.Topic(), "employee_id", employeeID, "error", err)
		return
	}

	log := s.logger.With("employee_id", employeeID, "action", raw.Action,
		"punched_at", time.Unix(raw.Timestamp, 0).UTC())

	switch raw.Action {
	case ActionIn:
		shift, result, err := s.clockSvc.ClockIn(ctx, employeeID, domain.NewCoordinate(raw.Latitude, raw.Longitude))
		if errors.Is(err, domain.ErrOutsideGeofence) {
			log.Info("clock in rejected", "distance", result.DisplayDistance())
			return
		}
		if err != nil {
			log.Error("clock in error", "error", err)
			return
		}
		log.Info("clocked in", "attendance_id", shift.ID, "distance", result.DisplayDistance())
	case ActionOut:
		shift, err := s.clockSvc.ClockOut(ctx, employeeID, raw.Comments)
		if err != nil {
			log.Error("clock out error", "error", err)
			return
		}
		log.Info("clocked out", "attendance_id", shift.ID)
	}
}

// authorize accepts a punch only when the token was issued to the punching
// employee and their profile still has the employee role.
func (s *ClockSubscriber) authorize(ctx context.Context, employeeID uuid.UUID, token string) error {
	if token == "" {
		return errMissingToken
	}
	subject, err := s.verifier.Subject(token)
	if err != nil {
		return err
	}
	if subject != employeeID {
		return fmt.Errorf("%w: token issued for %s", domain.ErrForbidden, subject)
	}
	principal, err := auth.Resolve(ctx, s.profiles, subject)
	if err != nil {
		return err
	}
	if principal.Role != domain.RoleEmployee {
		return fmt.Errorf("%w: role %s cannot punch", domain.ErrForbidden, principal.Role)
	}
	return nil
}

// validateClockMessage checks the payload and that it was published on the
// employee's own topic.
func validateClockMessage(topic string, msg *ClockMessage) (uuid.UUID, error) {
	id, err := uuid.Parse(msg.EmployeeID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("employee_id: must be a uuid")
	}
	if parts := strings.Split(topic, "/"); len(parts) != 4 || parts[2] != msg.EmployeeID {
		return uuid.Nil, fmt.Errorf("employee_id: does not match topic %s", topic)
	}
	if msg.Action != ActionIn && msg.Action != ActionOut {
		return uuid.Nil, fmt.Errorf("action: must be %q or %q", ActionIn, ActionOut)
	}
	if (msg.Latitude == nil) != (msg.Longitude == nil) {
		return uuid.Nil, fmt.Errorf("latitude, longitude: must be sent together")
	}
	if c := domain.NewCoordinate(msg.Latitude, msg.Longitude); c != nil {
		if err := c.Validate(); err != nil {
			return uuid.Nil, err
		}
	}
	if msg.Timestamp <= 0 {
		return uuid.Nil, fmt.Errorf("timestamp: must be positive")
	}
	return id, nil
}

// ClockTopic is the topic a kiosk publishes employeeID's punches on.
func ClockTopic(employeeID uuid.UUID) string {
	return "agency/employee/" + employeeID.String() + "/clock"
}
