package mqtt

import (
	"context"
	"errors"
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"bodycomp-notion/internal/domain/journal"
	"bodycomp-notion/internal/domain/measurements"
	"bodycomp-notion/internal/platform/logger"
	"bodycomp-notion/internal/platform/metrics"
	"bodycomp-notion/internal/ports/store"
)

var (
	ErrBrokerRequired = errors.New("mqtt broker url required")
)

const (
	DefaultTopic    = "bodycomp/measurements"
	DefaultClientID = "bodycomp-notion"

	// Cada mensaje hace hasta 3 llamadas a Notion.
	messageTimeout = 30 * time.Second
)

// Ingester es el subconjunto de measurements.Service que usa el subscriber.
type Ingester interface {
	Ingest(ctx context.Context, source journal.Source, m measurements.Measurement) (store.Row, error)
}

type Options struct {
	BrokerURL string
	ClientID  string
	Topic     string
	QoS       byte
}

// Subscriber escucha el topic de la balanza y pasa cada payload por la misma
// ingesta que POST /create.
type Subscriber struct {
	opts Options
	svc  Ingester
	log  logger.Logger

	raw paho.Client
	ctx context.Context
}

func NewSubscriber(opts Options, svc Ingester, log logger.Logger) (*Subscriber, error) {
	opts.BrokerURL = strings.TrimSpace(opts.BrokerURL)
	if opts.BrokerURL == "" {
		return nil, ErrBrokerRequired
	}
	if strings.TrimSpace(opts.Topic) == "" {
		opts.Topic = DefaultTopic
	}
	if strings.TrimSpace(opts.ClientID) == "" {
		opts.ClientID = DefaultClientID
	}

	return &Subscriber{
		opts: opts,
		svc:  svc,
		log:  logger.Scope(log, "MQTT"),
		ctx:  context.Background(),
	}, nil
}

// Start arranca la conexión y vuelve enseguida: paho reintenta en segundo
// plano hasta que el broker responda, así un broker caído no frena el HTTP.
// ctx acota las ingestas en curso y corta la espera de conexión.
func (s *Subscriber) Start(ctx context.Context) {
	s.ctx = ctx

	o := paho.NewClientOptions()
	o.AddBroker(s.opts.BrokerURL)
	o.SetClientID(s.opts.ClientID)
	o.SetConnectRetry(true)
	o.SetConnectRetryInterval(2 * time.Second)
	o.SetAutoReconnect(true)
	// al reconectar hay que volver a suscribirse (clean session)
	o.SetOnConnectHandler(func(c paho.Client) {
		token := c.Subscribe(s.opts.Topic, s.opts.QoS, s.handle)
		if token.Wait() && token.Error() != nil {
			s.log.Error("subscribe failed", map[string]any{
				"topic": s.opts.Topic,
				"err":   token.Error(),
			})
			return
		}
		s.log.Info("subscribed", map[string]any{"topic": s.opts.Topic})
	})
	o.SetConnectionLostHandler(func(_ paho.Client, err error) {
		s.log.Warn("connection lost", map[string]any{"err": err})
	})

	s.raw = paho.NewClient(o)
	token := s.raw.Connect()

	go func() {
		select {
		case <-token.Done():
			if err := token.Error(); err != nil {
				s.log.Error("mqtt connect failed", map[string]any{
					"broker": s.opts.BrokerURL,
					"err":    err,
				})
			}
		case <-ctx.Done():
		}
	}()
}

// Connected indica si hay sesión activa con el broker.
func (s *Subscriber) Connected() bool {
	return s.raw != nil && s.raw.IsConnectionOpen()
}

func (s *Subscriber) Close() {
	if s.raw == nil {
		return
	}
	s.raw.Disconnect(250)
}

func (s *Subscriber) handle(_ paho.Client, msg paho.Message) {
	s.handlePayload(s.ctx, msg.Payload())
}

// handlePayload devuelve el outcome contado en métricas (accepted|rejected|failed).
func (s *Subscriber) handlePayload(ctx context.Context, payload []byte) string {
	m, err := measurements.ParseCreateRequest(payload)
	if err != nil {
		metrics.MQTTMessagesTotal.WithLabelValues("rejected").Inc()
		metrics.IngestionsTotal.WithLabelValues(string(journal.SourceMQTT), "rejected").Inc()
		s.log.Warn("invalid payload", map[string]any{
			"err":     err,
			"payload": string(payload),
		})
		return "rejected"
	}

	ctx, cancel := context.WithTimeout(ctx, messageTimeout)
	defer cancel()

	row, err := s.svc.Ingest(ctx, journal.SourceMQTT, m)
	if err != nil {
		metrics.MQTTMessagesTotal.WithLabelValues("failed").Inc()
		// el service ya logueó el detalle
		return "failed"
	}

	metrics.MQTTMessagesTotal.WithLabelValues("accepted").Inc()
	s.log.Info("measurement ingested", map[string]any{"page_id": row.ID})
	return "accepted"
}
