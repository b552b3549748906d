package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/kafka"
	"fulfillment/internal/adapters/out/logsink"
	"fulfillment/internal/adapters/out/memory"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/rabbitmq"
	"fulfillment/internal/core/application/notifier"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"
	"fulfillment/internal/pkg/keylock"
	"fulfillment/internal/pkg/metrics"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	logger     *slog.Logger
	uowFactory ports.UnitOfWorkFactory
	reader     ports.OrderReader
	locker     *keylock.Locker
	engine     services.TransitionEngine
	metrics    *metrics.Metrics
	notifier   *notifier.Notifier
	closers    []func() error
}

// NewCompositionRoot wires the application. gormDB is only used with
// postgres storage and may be nil otherwise.
func NewCompositionRoot(ctx context.Context, configs Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		configs: configs,
		logger:  logger,
		locker:  keylock.New(configs.LockTimeout),
		engine:  services.NewTransitionEngine(services.NewConsistencyRules()),
		metrics: metrics.New(),
	}

	switch configs.Storage {
	case StorageMemory:
		store := memory.NewStore()
		c.uowFactory, c.reader = store, store
	default:
		if gormDB == nil {
			return nil, errors.New("postgres storage needs a database connection")
		}
		factory := postgres.NewGormUnitOfWorkFactory(gormDB)
		c.uowFactory, c.reader = factory, factory.Reader()
	}

	sink, err := c.newEventSink(ctx)
	if err != nil {
		return nil, err
	}
	c.notifier = notifier.New(sink, notifier.Config{
		Workers:            configs.NotifierWorkers,
		QueueSize:          configs.NotifierQueueSize,
		RedeliveryCapacity: configs.RedeliveryCapacity,
		PublishTimeout:     configs.NotifierPublishTimeout,
	}, c.metrics, logger)

	return c, nil
}

func (c *CompositionRoot) newEventSink(ctx context.Context) (ports.EventSink, error) {
	switch c.configs.EventSink {
	case EventSinkRabbitMQ:
		publisher, err := rabbitmq.NewPublisher(ctx, c.configs.RabbitMQURL, c.configs.RabbitMQExchange, c.logger)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, publisher.Close)
		return publisher, nil
	case EventSinkKafka:
		writer, err := kafka.NewWriter(c.configs.KafkaBrokers, c.configs.KafkaTopic)
		if err != nil {
			return nil, err
		}
		producer := kafka.NewProducer(writer, c.logger)
		c.closers = append(c.closers, producer.Close)
		return producer, nil
	case EventSinkLog:
		return logsink.New(c.logger), nil
	default:
		return nil, fmt.Errorf("unknown event sink %q", c.configs.EventSink)
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), time.Now)
}

func (c *CompositionRoot) CreateAttachPaymentCommandHandler() commands.AttachPaymentCommandHandler {
	return commands.NewAttachPaymentCommandHandler(c.orderUoWFactory(), c.locker, c.notifier, c.engine, time.Now)
}

func (c *CompositionRoot) CreateReviseItemsCommandHandler() commands.ReviseItemsCommandHandler {
	return commands.NewReviseItemsCommandHandler(c.orderUoWFactory(), c.locker, c.engine, time.Now)
}

func (c *CompositionRoot) CreateApplyTransitionCommandHandler() commands.ApplyTransitionCommandHandler {
	return commands.NewApplyTransitionCommandHandler(
		c.orderUoWFactory(), c.locker, c.notifier, c.metrics, c.engine, time.Now,
	)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.reader)
}

func (c *CompositionRoot) CreateGetOrderRecordQueryHandler() queries.GetOrderRecordQueryHandler {
	return queries.NewGetOrderRecordQueryHandler(c.reader)
}

func (c *CompositionRoot) CreateListActiveOrdersQueryHandler() queries.ListActiveOrdersQueryHandler {
	return queries.NewListActiveOrdersQueryHandler(c.reader)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateAttachPaymentCommandHandler(),
		c.CreateReviseItemsCommandHandler(),
		c.CreateApplyTransitionCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateGetOrderRecordQueryHandler(),
		c.CreateListActiveOrdersQueryHandler(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.notifier, c.configs.RedeliverySchedule, c.logger)
}

func (c *CompositionRoot) Notifier() *notifier.Notifier {
	return c.notifier
}

func (c *CompositionRoot) Metrics() *metrics.Metrics {
	return c.metrics
}

// Close stops the notifier and releases the event sink.
func (c *CompositionRoot) Close() error {
	c.notifier.Stop()
	var errList []error
	for _, closeFn := range c.closers {
		errList = append(errList, closeFn())
	}
	return errors.Join(errList...)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
