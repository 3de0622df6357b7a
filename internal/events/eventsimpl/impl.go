package eventsimpl

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/analysis"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/domain"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/events"
	"github.com/orgball2608/sentiment-trend-analyzer/pkg/config"
	"github.com/orgball2608/sentiment-trend-analyzer/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In
	LC fx.Lifecycle

	Config *config.Config
	Logger logger.Logger
}

// NATSObserver publishes a completion event per run. Without a publisher it
// does nothing.
type NATSObserver struct {
	publisher events.Publisher
	subject   string
	logger    logger.Logger
}

var _ analysis.Observer = (*NATSObserver)(nil)

func New(opts Opts) (*NATSObserver, error) {
	log := opts.Logger.WithComponent("NATSObserver")

	if opts.Config.NATS.URL == "" {
		log.Info("NATS_URL not set, completion events disabled")
		return NewWithPublisher(nil, opts.Config.NATS.Subject, opts.Logger), nil
	}

	conn, err := connect(opts.Config.NATS.URL, log)
	if err != nil {
		return nil, err
	}

	opts.LC.Append(fx.Hook{
		OnStop: func(context.Context) error {
			log.Info("Draining NATS connection")
			return conn.Drain()
		},
	})

	return NewWithPublisher(conn, opts.Config.NATS.Subject, opts.Logger), nil
}

func NewWithPublisher(publisher events.Publisher, subject string, log logger.Logger) *NATSObserver {
	return &NATSObserver{
		publisher: publisher,
		subject:   subject,
		logger:    log.WithComponent("NATSObserver"),
	}
}

func connect(url string, log logger.Logger) (*nats.Conn, error) {
	options := []nats.Option{
		nats.Name("sentiment-trend-analyzer"),
		nats.MaxReconnects(10),
		nats.ReconnectWait(2 * time.Second),
		nats.Timeout(5 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn("NATS disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(*nats.Conn) {
			log.Info("NATS connection closed")
		}),
	}

	nc, err := nats.Connect(url, options...)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to NATS: %w", err)
	}

	log.Info("Connected to NATS", "url", nc.ConnectedUrl())
	return nc, nil
}

func (o *NATSObserver) Name() string { return "nats" }

func (o *NATSObserver) OnAnalysisCompleted(_ context.Context, summary domain.AnalysisSummary) error {
	if o.publisher == nil {
		return nil
	}

	data, err := json.Marshal(events.NewAnalysisCompleted(summary))
	if err != nil {
		return fmt.Errorf("failed to encode completion event: %w", err)
	}

	if err := o.publisher.Publish(o.subject, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", o.subject, err)
	}

	o.logger.Debug("Published completion event", "subject", o.subject, "run_id", summary.RunID)
	return nil
}
