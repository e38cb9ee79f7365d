package api

import (
	"context"
	"errors"
	"os"
	"time"

	"cargo-charter/charterdesk/internal/chat"
	"cargo-charter/charterdesk/internal/common"
	"cargo-charter/charterdesk/internal/db"
	"cargo-charter/charterdesk/internal/db/repositories"
	"cargo-charter/charterdesk/internal/geo"
	"cargo-charter/charterdesk/internal/providers"
	"cargo-charter/charterdesk/internal/services"
)

type Repositories struct {
	Operators *repositories.OperatorRepository
	Movements *repositories.MovementRepository
	Geography *repositories.GeographyRepository
	Config    *repositories.ConfigRepository
	Keys      repositories.KeysRepo
}

type Services struct {
	Cache     common.CacheInterface
	Config    *common.AppConfigService
	Operators *services.OperatorService
	Movements *services.MovementService
	Profile   *services.ProfileService
	Chat      *services.ChatService
	Geography *services.GeographyService
}

type Dependencies struct {
	Repo     *Repositories
	Services *Services
}

func InitDependencies() (*Dependencies, error) {

	signingSecret := os.Getenv("CHARTERDESK_SIGNING_SECRET")
	if signingSecret == "" {
		return nil, errors.New("CHARTERDESK_SIGNING_SECRET is not set")
	}

	repos := &Repositories{
		Operators: repositories.NewOperatorRepository(db.DB),
		Movements: repositories.NewMovementRepository(db.DB),
		Geography: repositories.NewGeographyRepository(db.PgDB),
		Config:    repositories.NewConfigRepository(db.PgDB),
		Keys:      *repositories.NewApiKeysRepo(db.DB),
	}

	cacheSvc := common.NewCacheFromEnv(600, 1200)
	configSvc := common.NewAppConfigService(repos.Config, cacheSvc)

	// The continuation TTL is read once at startup; changing it in
	// app_configs takes effect on the next boot.
	continuationTTL := time.Duration(configSvc.GetIntVal(
		context.Background(), common.ConfigKeyContinuationTTL, 15)) * time.Minute
	continuations := chat.NewContinuationService([]byte(signingSecret), cacheSvc, continuationTTL)

	regions := geo.NewClassifier(geo.DefaultRegions())
	airportSource := providers.NewOurAirportsProvider()

	svcs := &Services{
		Cache:     cacheSvc,
		Config:    configSvc,
		Operators: services.NewOperatorService(repos.Operators, cacheSvc, configSvc),
		Movements: services.NewMovementService(repos.Movements, repos.Operators, regions, configSvc),
		Profile:   services.NewProfileService(repos.Operators, repos.Movements, cacheSvc, configSvc),
		Chat:      services.NewChatService(continuations, configSvc),
		Geography: services.NewGeographyService(airportSource, repos.Geography, cacheSvc, configSvc),
	}

	return &Dependencies{
		Repo:     repos,
		Services: svcs,
	}, nil
}
