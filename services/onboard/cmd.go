package onboard

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Fasscorp/Fassimo/pkg/httpserver"
	"github.com/Fasscorp/Fassimo/pkg/koanf"
	"github.com/Fasscorp/Fassimo/pkg/postgres"
	"github.com/Fasscorp/Fassimo/services/onboard/api"
	"github.com/Fasscorp/Fassimo/services/onboard/assistant"
	"github.com/Fasscorp/Fassimo/services/onboard/config"
	"github.com/Fasscorp/Fassimo/services/onboard/db"
	"github.com/Fasscorp/Fassimo/services/onboard/orchestrator"
	"github.com/Fasscorp/Fassimo/services/onboard/repository"
	"github.com/Fasscorp/Fassimo/services/onboard/tools"
	"github.com/Fasscorp/Fassimo/services/onboard/topics"
)

func Command() *cobra.Command {
	cnf := koanf.Provide("onboard", config.OnboardConfig{
		Http: koanf.HttpServer{Address: ":8080"},
		OpenAI: config.OpenAI{
			ModelName: "gpt-3.5-turbo",
		},
		Orchestrator: config.Orchestrator{
			PollIntervalMillis: 500,
			MaxAttempts:        60,
		},
	})

	cmd := &cobra.Command{
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := zap.NewProduction()
			if err != nil {
				return err
			}

			logger = logger.Named("onboard")

			orm, err := postgres.NewClient(&postgres.Config{
				Host:    cnf.Postgres.Host,
				Port:    cnf.Postgres.Port,
				User:    cnf.Postgres.Username,
				Passwd:  cnf.Postgres.Password,
				DB:      cnf.Postgres.DB,
				SSLMode: cnf.Postgres.SSLMode,
			}, logger)
			if err != nil {
				return fmt.Errorf("new postgres client: %w", err)
			}

			database := db.Database{Orm: orm}
			if err := database.Initialize(); err != nil {
				return fmt.Errorf("initialize database: %w", err)
			}

			oc, err := assistant.New(logger, cnf.OpenAI)
			if err != nil {
				return err
			}

			topicTable, err := topics.Load(cnf.TopicsPath)
			if err != nil {
				return err
			}

			registry := tools.NewRegistry(logger,
				tools.NewSaveCustomerData(logger, repository.NewCustomerSQL(database)),
				tools.NewSaveBrandingData(logger, repository.NewBrandingSQL(database), repository.NewTaskSQL(database)),
			)

			orch := orchestrator.New(logger, oc, registry,
				time.Duration(cnf.Orchestrator.PollIntervalMillis)*time.Millisecond,
				cnf.Orchestrator.MaxAttempts,
			)

			cmd.SilenceUsage = true

			return httpserver.RegisterAndStart(
				logger,
				cnf.Http.Address,
				api.New(logger, oc, orch, registry, topicTable, database),
			)
		},
	}

	return cmd
}
