// Comando de barrido de créditos vencidos. Pensado para correr una vez al
// día desde cron: marca overdue las ventas a crédito impagas con due_date
// pasada y pone a sus clientes en lista negra.
package main

import (
	"context"
	"time"

	"github.com/tu-usuario/planta-pos/internal/application/overdue"
	"github.com/tu-usuario/planta-pos/internal/infrastructure/postgres"
	"github.com/tu-usuario/planta-pos/pkg/config"
	"github.com/tu-usuario/planta-pos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})

	loc, err := time.LoadLocation(cfg.Sweep.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("tz", cfg.Sweep.Timezone).Msg("zona horaria inválida")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	sweeper := overdue.NewSweeper(
		postgres.NewSaleRepository(pool),
		postgres.NewCustomerRepository(pool),
		log,
	)

	result, err := sweeper.Sweep(ctx, time.Now().In(loc))
	if err != nil {
		log.Fatal().Err(err).Msg("barrido de vencidos")
	}
	log.Info().
		Int("sales_marked", result.SalesMarked).
		Int("customers_blacklisted", result.CustomersBlacklisted).
		Msg("barrido finalizado")
}
