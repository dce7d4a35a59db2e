package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/bryokn/ClassiConnect/internal/config"
	"github.com/bryokn/ClassiConnect/internal/entity"
)

const (
	ListingCreatedSubject  = "listing.created"
	ListingReportedSubject = "listing.reported"
)

type Publisher struct {
	nc     *nats.Conn
	logger *zap.Logger
}

func NewNATSPublisher(cfg *config.NATSConfig, logger *zap.Logger) (*Publisher, error) {
	opts := []nats.Option{
		nats.Timeout(cfg.ConnectTimeout),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			logger.Warn("NATS disconnected", zap.Error(err))
		}),
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	logger.Info("Successfully connected to NATS", zap.String("url", nc.ConnectedUrl()))

	return &Publisher{nc: nc, logger: logger}, nil
}

func (p *Publisher) publish(subject string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error("Failed to marshal payload for NATS publishing",
			zap.Error(err), zap.String("subject", subject))
		return fmt.Errorf("failed to marshal payload for %s: %w", subject, err)
	}

	if err := p.nc.Publish(subject, data); err != nil {
		p.logger.Error("Failed to publish NATS message",
			zap.String("subject", subject), zap.Error(err))
		return fmt.Errorf("failed to publish NATS message for %s: %w", subject, err)
	}
	p.logger.Info("Published NATS message", zap.String("subject", subject))
	return nil
}

func (p *Publisher) PublishListingCreated(ctx context.Context, listing *entity.Listing) error {
	return p.publish(ListingCreatedSubject, listing)
}

type reportedEventPayload struct {
	ListingID  string `json:"listingId"`
	ReportedBy string `json:"reportedBy"`
	Status     string `json:"status"`
}

func (p *Publisher) PublishListingReported(ctx context.Context, report *entity.Interaction) error {
	return p.publish(ListingReportedSubject, reportedEventPayload{
		ListingID:  report.ListingID,
		ReportedBy: report.UserID,
		Status:     string(report.ReportStatus),
	})
}

func (p *Publisher) Close() {
	if p.nc != nil && !p.nc.IsClosed() {
		if err := p.nc.Drain(); err != nil {
			p.logger.Error("Error draining NATS connection", zap.Error(err))
		}
		p.nc.Close()
		p.logger.Info("NATS publisher connection closed")
	}
}
