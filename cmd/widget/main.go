package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/repository"
	"app/internal/server"
	"app/internal/usecase"
	"app/internal/view"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// .envは任意（無ければ環境変数だけで動く）
	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	if cfg.GoEnv == "dev" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// カタログは起動時に一度だけ取得。失敗しても空カタログで続行する
	// （商品一覧が空になるだけで、カートの読み書きはカタログに依存しない）。
	fetcher := infraRepo.NewCatalogHTTPFetcher(http.DefaultClient, cfg.CatalogURL)
	catalogUC := usecase.NewCatalogUsecase(fetcher)
	if err := catalogUC.Load(context.Background()); err != nil {
		log.Warn().Err(err).Msg("starting with empty catalog")
	}

	codec := usecase.NewSignedCartCodec(cfg.CartSigningSecret)
	ttl := time.Duration(cfg.CartCookieTTLDays) * 24 * time.Hour

	// 永続化先の選択
	var jarFor handler.CookieJarFactory
	switch cfg.CartStorage {
	case config.CartStorageDB:
		gormDB, err := db.Connect(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("db connect failed")
		}
		if err := gormDB.AutoMigrate(&model.CartCookie{}); err != nil {
			log.Fatal().Err(err).Msg("db migrate failed")
		}
		jarFor = infraRepo.GormJarFactory(gormDB, cfg.CartCookieName+"_session", ttl)
	default:
		jarFor = infraRepo.EchoJarFactory()
	}

	newCart := func(jar repository.CookieJar) *usecase.CartUsecase {
		return usecase.NewCartUsecase(catalogUC, jar, codec, cfg.CartCookieName, ttl)
	}

	v, err := view.New()
	if err != nil {
		log.Fatal().Err(err).Msg("view setup failed")
	}

	widgetH := handler.NewWidgetHandler(catalogUC, v, jarFor, newCart)

	e, err := server.New(v, widgetH)
	if err != nil {
		log.Fatal().Err(err).Msg("server setup failed")
	}

	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	log.Info().Str("addr", addr).Str("storage", cfg.CartStorage).Msg("cart widget starting")
	if err := server.Start(addr, e); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
