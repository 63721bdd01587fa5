package cmd

import (
	"log/slog"

	"buyback/internal/adapters/out/postgres"
	"buyback/internal/adapters/out/shiplabel"
	"buyback/internal/adapters/out/ticketing"
	"buyback/internal/core/application/services"
	"buyback/internal/core/application/usecases/commands"
	"buyback/internal/core/application/usecases/queries"
	domainservices "buyback/internal/core/domain/services"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	logger     *slog.Logger

	numberGenerator *services.NumberGenerator
	threadBinder    *services.ThreadBinder
	labelResolver   *services.LabelResolver
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB)

	ticketingClient, err := ticketing.NewClient(config.TicketingBaseURL, config.TicketingToken)
	if err != nil {
		return CompositionRoot{}, err
	}

	labelClient, err := shiplabel.NewClient(config.LabelAPIURL, config.LabelAPIKey)
	if err != nil {
		return CompositionRoot{}, err
	}

	labelRouter, err := domainservices.NewLabelRouter(domainservices.Party{
		Name:       config.BusinessName,
		Street:     config.BusinessStreet,
		City:       config.BusinessCity,
		State:      config.BusinessState,
		PostalCode: config.BusinessPostalCode,
		Country:    config.BusinessCountry,
		Phone:      config.BusinessPhone,
	})
	if err != nil {
		return CompositionRoot{}, err
	}

	threadBinder, err := services.NewThreadBinder(ticketingClient, uowFactory, logger)
	if err != nil {
		return CompositionRoot{}, err
	}

	labelResolver, err := services.NewLabelResolver(labelRouter, labelClient)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		gormDB:          gormDB,
		uowFactory:      *uowFactory,
		logger:          logger,
		numberGenerator: services.NewNumberGenerator(),
		threadBinder:    threadBinder,
		labelResolver:   labelResolver,
	}, nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateSubmitOrderCommandHandler() commands.SubmitOrderCommandHandler {
	return commands.NewSubmitOrderCommandHandler(c.orderUoWFactory(), c.numberGenerator)
}

func (c *CompositionRoot) CreateGenerateLabelCommandHandler() commands.GenerateLabelCommandHandler {
	return commands.NewGenerateLabelCommandHandler(
		c.orderUoWFactory(), c.labelResolver, c.threadBinder, c.logger)
}

func (c *CompositionRoot) CreateGenerateReturnLabelCommandHandler() commands.GenerateReturnLabelCommandHandler {
	return commands.NewGenerateReturnLabelCommandHandler(
		c.orderUoWFactory(), c.labelResolver, c.logger)
}

func (c *CompositionRoot) CreateSubmitReofferCommandHandler() commands.SubmitReofferCommandHandler {
	return commands.NewSubmitReofferCommandHandler(c.orderUoWFactory(), c.threadBinder, c.logger)
}

func (c *CompositionRoot) CreateResolveReofferCommandHandler() commands.ResolveReofferCommandHandler {
	return commands.NewResolveReofferCommandHandler(c.orderUoWFactory(), c.threadBinder, c.logger)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateSweepExpiredReoffersCommandHandler() commands.SweepExpiredReoffersCommandHandler {
	return commands.NewSweepExpiredReoffersCommandHandler(c.orderUoWFactory(), c.threadBinder, c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
