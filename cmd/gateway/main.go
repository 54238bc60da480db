package main

import (
	"flag"
	"os"

	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/config"
	"github.com/go-kratos/kratos/v2/config/env"
	"github.com/go-kratos/kratos/v2/config/file"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"

	"voxagent/internal/biz"
	"voxagent/internal/conf"
	"voxagent/internal/search/factory"
	"voxagent/internal/server"
	"voxagent/internal/service"
)

// go build -ldflags "-X main.Version=x.y.z"
var (
	// Name is the service name.
	Name string = "gateway"
	// Version is the service version.
	Version string
	// flagconf is the config file path flag.
	flagconf string

	id, _ = os.Hostname()
)

func init() {
	flag.StringVar(&flagconf, "conf", "configs/config.yaml", "config path, eg: -conf config.yaml")
}

func newApp(logger log.Logger, hs *http.Server) *kratos.App {
	return kratos.New(
		kratos.ID(id),
		kratos.Name(Name),
		kratos.Version(Version),
		kratos.Metadata(map[string]string{}),
		kratos.Logger(logger),
		kratos.Server(hs),
	)
}

func main() {
	flag.Parse()
	logger := log.With(log.NewStdLogger(os.Stdout),
		"ts", log.DefaultTimestamp,
		"caller", log.DefaultCaller,
		"service.id", id,
		"service.name", Name,
		"service.version", Version,
	)

	// Credentials enter through ${ENV_VAR} placeholders in the config file,
	// resolved from the environment once at startup.
	c := config.New(
		config.WithSource(
			env.NewSource(),
			file.NewSource(flagconf),
		),
	)
	defer c.Close()

	if err := c.Load(); err != nil {
		panic(err)
	}

	var bc conf.Bootstrap
	if err := c.Scan(&bc); err != nil {
		panic(err)
	}

	helper := log.NewHelper(logger)

	// Missing credentials do not abort startup. The gateway keeps serving and
	// answers every search with the configuration failure instead.
	searcher, err := factory.NewSearcher(bc.Search)
	if err != nil {
		helper.Warnf("search provider unavailable: %v", err)
		searcher = nil
	}

	uc := biz.NewSearchUseCase(searcher, bc.Search, bc.Concurrency, logger)
	svc := service.NewSearchService(uc, logger)
	hs := server.NewHTTPServer(bc.Server, svc, logger)

	if err := newApp(logger, hs).Run(); err != nil {
		panic(err)
	}
}
