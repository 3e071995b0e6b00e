package bootstrap

import (
	"context"

	"roombook/internal/infra/notify"
	"roombook/internal/pkg/config"
	"roombook/internal/usecase/commands"

	"go.uber.org/fx"
)

var NotifyModule = fx.Module("notify",
	fx.Provide(
		NewNotifier,
	),
)

func NewNotifier(lc fx.Lifecycle, cfg config.Config) commands.Notifier {
	notifier := notify.NewNotifier(cfg.AMQP)

	if closer, ok := notifier.(*notify.AMQPNotifier); ok {
		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				closer.Close()
				return nil
			},
		})
	}

	return notifier
}
