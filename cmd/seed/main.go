package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"levefit-companion/internal/config"
	"levefit-companion/internal/domain"
	pg "levefit-companion/internal/infra/db/postgres"
	"levefit-companion/internal/infra/logging"
	"levefit-companion/internal/usecase"
)

// seed bulk-issues access codes for a sales batch. Codes are printed once;
// the database never stores them in any recoverable form other than the
// code column itself.
func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	count := flag.Int("n", 50, "number of access codes to issue")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, false)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 4)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	logger := logging.New(cfg.Log, false)
	accessUC := usecase.NewAccessUseCase(
		pg.NewAccessCodeRepo(pool),
		pg.NewProfileRepo(pool),
		pg.NewTxManager(pool),
		cfg.Store.Timeout,
		logger,
	)

	issued := 0
	for issued < *count {
		code, err := accessUC.Issue(ctx, accessUC.GenerateCandidateCode())
		if errors.Is(err, domain.ErrCodeAlreadyExists) {
			// Collision with an existing code; just try another candidate.
			continue
		}
		if err != nil {
			log.Fatalf("issue code: %v", err)
		}
		fmt.Println(code.Code)
		issued++
	}

	fmt.Printf("issued %d access codes\n", issued)
}
